package statsvc

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eventum-app/eventum/internal/app/models/dto"
	"github.com/eventum-app/eventum/internal/middleware"
)

// Controller handles the stats service HTTP surface
type Controller struct {
	service *StatsService
}

// NewController creates a new Controller
func NewController(service *StatsService) *Controller {
	return &Controller{service: service}
}

// RecordHit registers one endpoint hit
// @Summary Record an endpoint hit
// @Tags stats
// @Accept json
// @Produce json
// @Param request body dto.EndpointHitRequest true "Recorded hit"
// @Success 201 {object} dto.APIResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid payload"
// @Router /hit [post]
func (c *Controller) RecordHit(ctx *gin.Context) {
	var req dto.EndpointHitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid hit data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.service.RecordHit(ctx, req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewMessageResponse("Hit recorded"))
}

// GetStats serves aggregated hit counts
// @Summary Query aggregated hit counts
// @Tags stats
// @Produce json
// @Param start query string true "Window start, format 2006-01-02 15:04:05"
// @Param end query string true "Window end"
// @Param uris query []string false "URIs to aggregate; all when absent"
// @Param unique query bool false "Count each client ip once per uri" default(false)
// @Success 200 {object} []dto.ViewStatsResponse
// @Router /stats [get]
func (c *Controller) GetStats(ctx *gin.Context) {
	unique := false
	if v, err := strconv.ParseBool(ctx.DefaultQuery("unique", "false")); err == nil {
		unique = v
	}

	stats, err := c.service.GetStats(ctx, ctx.Query("start"), ctx.Query("end"), ctx.QueryArray("uris"), unique)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	// Bare array rather than the API envelope: the main service's client
	// decodes this payload directly.
	ctx.JSON(http.StatusOK, stats)
}

// RegisterRoutes mounts the stats endpoints on the router
func (c *Controller) RegisterRoutes(router *gin.Engine) {
	router.POST("/hit", c.RecordHit)
	router.GET("/stats", c.GetStats)
}
