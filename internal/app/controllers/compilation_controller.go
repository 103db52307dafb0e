package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventum-app/eventum/internal/app/models/dto"
	"github.com/eventum-app/eventum/internal/app/services"
	"github.com/eventum-app/eventum/internal/middleware"
	"github.com/eventum-app/eventum/internal/pkg/helpers"
)

// CompilationController handles curated event compilations
type CompilationController struct {
	compilationService *services.CompilationService
}

// NewCompilationController creates a new CompilationController
func NewCompilationController(compilationService *services.CompilationService) *CompilationController {
	return &CompilationController{compilationService: compilationService}
}

// CreateCompilation registers a new compilation
// @Summary Create compilation (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.NewCompilationRequest true "Compilation information"
// @Success 201 {object} dto.APIResponse{data=dto.CompilationResponse}
// @Router /admin/compilations [post]
func (c *CompilationController) CreateCompilation(ctx *gin.Context) {
	var req dto.NewCompilationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindingError(ctx, err)
		return
	}

	compilation, err := c.compilationService.Create(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(compilation))
}

// DeleteCompilation removes a compilation
// @Summary Delete compilation (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param compId path int true "Compilation ID"
// @Success 200 {object} dto.APIResponse
// @Router /admin/compilations/{compId} [delete]
func (c *CompilationController) DeleteCompilation(ctx *gin.Context) {
	compID, ok := parseIDParam(ctx, "compId")
	if !ok {
		return
	}

	if err := c.compilationService.Delete(ctx, compID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Compilation deleted"))
}

// PinCompilation pins a compilation to the main page
// @Summary Pin compilation (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param compId path int true "Compilation ID"
// @Success 200 {object} dto.APIResponse
// @Router /admin/compilations/{compId}/pin [patch]
func (c *CompilationController) PinCompilation(ctx *gin.Context) {
	c.setPinned(ctx, true, "Compilation pinned")
}

// UnpinCompilation removes a compilation from the main page
// @Summary Unpin compilation (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param compId path int true "Compilation ID"
// @Success 200 {object} dto.APIResponse
// @Router /admin/compilations/{compId}/pin [delete]
func (c *CompilationController) UnpinCompilation(ctx *gin.Context) {
	c.setPinned(ctx, false, "Compilation unpinned")
}

func (c *CompilationController) setPinned(ctx *gin.Context, pinned bool, message string) {
	compID, ok := parseIDParam(ctx, "compId")
	if !ok {
		return
	}

	if err := c.compilationService.SetPinned(ctx, compID, pinned); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse(message))
}

// AddEvent links an event to a compilation
// @Summary Add event to compilation (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param compId path int true "Compilation ID"
// @Param eventId path int true "Event ID"
// @Success 200 {object} dto.APIResponse
// @Router /admin/compilations/{compId}/events/{eventId} [patch]
func (c *CompilationController) AddEvent(ctx *gin.Context) {
	compID, ok := parseIDParam(ctx, "compId")
	if !ok {
		return
	}
	eventID, ok := parseIDParam(ctx, "eventId")
	if !ok {
		return
	}

	if err := c.compilationService.AddEvent(ctx, compID, eventID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Event added to compilation"))
}

// RemoveEvent unlinks an event from a compilation
// @Summary Remove event from compilation (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param compId path int true "Compilation ID"
// @Param eventId path int true "Event ID"
// @Success 200 {object} dto.APIResponse
// @Router /admin/compilations/{compId}/events/{eventId} [delete]
func (c *CompilationController) RemoveEvent(ctx *gin.Context) {
	compID, ok := parseIDParam(ctx, "compId")
	if !ok {
		return
	}
	eventID, ok := parseIDParam(ctx, "eventId")
	if !ok {
		return
	}

	if err := c.compilationService.RemoveEvent(ctx, compID, eventID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Event removed from compilation"))
}

// ListCompilations lists compilations
// @Summary Browse compilations
// @Tags public
// @Produce json
// @Param pinned query bool false "Filter by pinned state"
// @Param from query int false "Zero-based offset" default(0)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=[]dto.CompilationResponse}
// @Router /compilations [get]
func (c *CompilationController) ListCompilations(ctx *gin.Context) {
	from, size := helpers.ParseOffsetParams(ctx)
	compilations, err := c.compilationService.List(ctx, queryBoolPtr(ctx, "pinned"), from, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(compilations))
}

// GetCompilation retrieves one compilation
// @Summary Get compilation
// @Tags public
// @Produce json
// @Param id path int true "Compilation ID"
// @Success 200 {object} dto.APIResponse{data=dto.CompilationResponse}
// @Failure 404 {object} dto.ErrorResponse "Compilation not found"
// @Router /compilations/{id} [get]
func (c *CompilationController) GetCompilation(ctx *gin.Context) {
	compID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	compilation, err := c.compilationService.GetByID(ctx, compID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(compilation))
}
