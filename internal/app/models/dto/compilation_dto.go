package dto

// NewCompilationRequest carries the payload for compilation creation
type NewCompilationRequest struct {
	Title  string  `json:"title" binding:"required,min=1,max=120"`
	Pinned bool    `json:"pinned"`
	Events []int64 `json:"events"`
}

// CompilationResponse is the compilation view with its enriched events
type CompilationResponse struct {
	ID     int64                `json:"id"`
	Title  string               `json:"title"`
	Pinned bool                 `json:"pinned"`
	Events []EventShortResponse `json:"events"`
}
