package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventum-app/eventum/internal/app/models/dto"
	"github.com/eventum-app/eventum/internal/app/services"
	"github.com/eventum-app/eventum/internal/middleware"
	"github.com/eventum-app/eventum/internal/pkg/helpers"
)

// CategoryController handles category operations
type CategoryController struct {
	categoryService *services.CategoryService
}

// NewCategoryController creates a new CategoryController
func NewCategoryController(categoryService *services.CategoryService) *CategoryController {
	return &CategoryController{categoryService: categoryService}
}

// CreateCategory registers a new category
// @Summary Create category (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.NewCategoryRequest true "Category information"
// @Success 201 {object} dto.APIResponse{data=dto.CategoryResponse}
// @Failure 409 {object} dto.ErrorResponse "Name already exists"
// @Router /admin/categories [post]
func (c *CategoryController) CreateCategory(ctx *gin.Context) {
	var req dto.NewCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindingError(ctx, err)
		return
	}

	category, err := c.categoryService.Create(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(category))
}

// UpdateCategory renames a category
// @Summary Rename category (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateCategoryRequest true "Category information"
// @Success 200 {object} dto.APIResponse{data=dto.CategoryResponse}
// @Router /admin/categories [patch]
func (c *CategoryController) UpdateCategory(ctx *gin.Context) {
	var req dto.UpdateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindingError(ctx, err)
		return
	}

	category, err := c.categoryService.Update(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(category))
}

// DeleteCategory removes a category no event references
// @Summary Delete category (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param categoryId path int true "Category ID"
// @Success 200 {object} dto.APIResponse
// @Failure 409 {object} dto.ErrorResponse "Category still referenced by events"
// @Router /admin/categories/{categoryId} [delete]
func (c *CategoryController) DeleteCategory(ctx *gin.Context) {
	categoryID, ok := parseIDParam(ctx, "categoryId")
	if !ok {
		return
	}

	if err := c.categoryService.Delete(ctx, categoryID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Category deleted"))
}

// ListCategories lists categories
// @Summary Browse categories
// @Tags public
// @Produce json
// @Param from query int false "Zero-based offset" default(0)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=[]dto.CategoryResponse}
// @Router /categories [get]
func (c *CategoryController) ListCategories(ctx *gin.Context) {
	from, size := helpers.ParseOffsetParams(ctx)
	categories, err := c.categoryService.List(ctx, from, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(categories))
}

// GetCategory retrieves one category
// @Summary Get category
// @Tags public
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} dto.APIResponse{data=dto.CategoryResponse}
// @Failure 404 {object} dto.ErrorResponse "Category not found"
// @Router /categories/{id} [get]
func (c *CategoryController) GetCategory(ctx *gin.Context) {
	categoryID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	category, err := c.categoryService.GetByID(ctx, categoryID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(category))
}
