package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventum-app/eventum/internal/app/models"
	"github.com/eventum-app/eventum/internal/app/models/dto"
	"github.com/eventum-app/eventum/internal/app/services"
	"github.com/eventum-app/eventum/internal/middleware"
	"github.com/eventum-app/eventum/internal/pkg/helpers"
)

// AdminEventController handles the moderation-side event operations
type AdminEventController struct {
	eventService *services.EventService
}

// NewAdminEventController creates a new AdminEventController
func NewAdminEventController(eventService *services.EventService) *AdminEventController {
	return &AdminEventController{eventService: eventService}
}

// ListEvents lists events matching the admin filter
// @Summary Search events (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param users query []int false "Initiator ids"
// @Param states query []string false "Event states"
// @Param categories query []int false "Category ids"
// @Param rangeStart query string false "Start of event date window"
// @Param rangeEnd query string false "End of event date window"
// @Param from query int false "Zero-based offset" default(0)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=[]dto.EventFullResponse}
// @Router /admin/events [get]
func (c *AdminEventController) ListEvents(ctx *gin.Context) {
	rangeStart, ok := queryTime(ctx, "rangeStart")
	if !ok {
		return
	}
	rangeEnd, ok := queryTime(ctx, "rangeEnd")
	if !ok {
		return
	}

	var states []models.EventState
	for _, raw := range ctx.QueryArray("states") {
		state := models.EventState(raw)
		if state.IsValid() {
			states = append(states, state)
		}
	}

	from, size := helpers.ParseOffsetParams(ctx)
	filter := dto.AdminEventFilter{
		Users:      queryInt64List(ctx, "users"),
		States:     states,
		Categories: queryInt64List(ctx, "categories"),
		RangeStart: rangeStart,
		RangeEnd:   rangeEnd,
		From:       from,
		Size:       size,
	}

	events, err := c.eventService.ListAdmin(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(events))
}

// UpdateEvent applies an administrative edit to any event
// @Summary Edit event (admin)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventId path int true "Event ID"
// @Param request body dto.AdminUpdateEventRequest true "Event patch"
// @Success 200 {object} dto.APIResponse{data=dto.EventFullResponse}
// @Router /admin/events/{eventId} [put]
func (c *AdminEventController) UpdateEvent(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "eventId")
	if !ok {
		return
	}

	var patch dto.AdminUpdateEventRequest
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		bindingError(ctx, err)
		return
	}

	event, err := c.eventService.AdminUpdate(ctx, eventID, patch)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(event))
}

// PublishEvent publishes a pending event
// @Summary Publish event
// @Description Publishes a pending event that starts more than an hour from now; otherwise the event is returned unchanged.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param eventId path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.EventFullResponse}
// @Router /admin/events/{eventId}/publish [patch]
func (c *AdminEventController) PublishEvent(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "eventId")
	if !ok {
		return
	}

	event, err := c.eventService.Publish(ctx, eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(event))
}

// RejectEvent rejects a pending event
// @Summary Reject event
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param eventId path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.EventFullResponse}
// @Router /admin/events/{eventId}/reject [patch]
func (c *AdminEventController) RejectEvent(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "eventId")
	if !ok {
		return
	}

	event, err := c.eventService.Reject(ctx, eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(event))
}
