package dto

// NewCategoryRequest carries the payload for category creation
type NewCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=50"`
}

// UpdateCategoryRequest carries the payload for category rename
type UpdateCategoryRequest struct {
	ID   int64  `json:"id" binding:"required"`
	Name string `json:"name" binding:"required,min=1,max=50"`
}

// CategoryResponse is the category view
type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
