package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventum-app/eventum/internal/app/models/dto"
	"github.com/eventum-app/eventum/internal/app/services"
	"github.com/eventum-app/eventum/internal/middleware"
	"github.com/eventum-app/eventum/internal/pkg/helpers"
)

// PrivateEventController handles the initiator-facing event operations
type PrivateEventController struct {
	eventService *services.EventService
}

// NewPrivateEventController creates a new PrivateEventController
func NewPrivateEventController(eventService *services.EventService) *PrivateEventController {
	return &PrivateEventController{eventService: eventService}
}

// CreateEvent handles event creation
// @Summary Create an event
// @Description Creates a new event draft in the PENDING state
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path int true "Initiator ID"
// @Param request body dto.NewEventRequest true "Event draft"
// @Success 201 {object} dto.APIResponse{data=dto.EventFullResponse} "Event created"
// @Failure 400 {object} dto.ErrorResponse "Invalid payload or scheduling window violated"
// @Failure 403 {object} dto.ErrorResponse "Path user does not match caller"
// @Router /users/{userId}/events [post]
func (c *PrivateEventController) CreateEvent(ctx *gin.Context) {
	userID, ok := authorizedPathUser(ctx)
	if !ok {
		return
	}

	var req dto.NewEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		bindingError(ctx, err)
		return
	}

	event, err := c.eventService.Create(ctx, userID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(event))
}

// ListOwnEvents lists the caller's events
// @Summary List own events
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param userId path int true "Initiator ID"
// @Param from query int false "Zero-based offset" default(0)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=[]dto.EventShortResponse}
// @Router /users/{userId}/events [get]
func (c *PrivateEventController) ListOwnEvents(ctx *gin.Context) {
	userID, ok := authorizedPathUser(ctx)
	if !ok {
		return
	}

	from, size := helpers.ParseOffsetParams(ctx)
	events, err := c.eventService.ListOwn(ctx, userID, from, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(events))
}

// GetOwnEvent retrieves one of the caller's events in full
// @Summary Get own event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param userId path int true "Initiator ID"
// @Param eventId path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.EventFullResponse}
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /users/{userId}/events/{eventId} [get]
func (c *PrivateEventController) GetOwnEvent(ctx *gin.Context) {
	userID, ok := authorizedPathUser(ctx)
	if !ok {
		return
	}
	eventID, ok := parseIDParam(ctx, "eventId")
	if !ok {
		return
	}

	event, err := c.eventService.GetOwn(ctx, userID, eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(event))
}

// UpdateEvent applies the caller's partial edit to a non-published event
// @Summary Edit own event
// @Description Applies only the non-empty fields of the patch. Editing a canceled event resubmits it for moderation.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path int true "Initiator ID"
// @Param request body dto.UpdateEventRequest true "Event patch"
// @Success 200 {object} dto.APIResponse{data=dto.EventFullResponse}
// @Failure 409 {object} dto.ErrorResponse "Event already published"
// @Router /users/{userId}/events [patch]
func (c *PrivateEventController) UpdateEvent(ctx *gin.Context) {
	userID, ok := authorizedPathUser(ctx)
	if !ok {
		return
	}

	var patch dto.UpdateEventRequest
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		bindingError(ctx, err)
		return
	}

	event, err := c.eventService.Update(ctx, userID, patch)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(event))
}

// CancelEvent cancels the caller's pending event
// @Summary Cancel own event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param userId path int true "Initiator ID"
// @Param eventId path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.EventFullResponse}
// @Failure 409 {object} dto.ErrorResponse "Event is not pending"
// @Router /users/{userId}/events/{eventId} [patch]
func (c *PrivateEventController) CancelEvent(ctx *gin.Context) {
	userID, ok := authorizedPathUser(ctx)
	if !ok {
		return
	}
	eventID, ok := parseIDParam(ctx, "eventId")
	if !ok {
		return
	}

	event, err := c.eventService.Cancel(ctx, userID, eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(event))
}

// ListEventRequests lists participation requests for the caller's event
// @Summary List requests for own event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param userId path int true "Initiator ID"
// @Param eventId path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.RequestResponse}
// @Router /users/{userId}/events/{eventId}/requests [get]
func (c *PrivateEventController) ListEventRequests(ctx *gin.Context) {
	userID, ok := authorizedPathUser(ctx)
	if !ok {
		return
	}
	eventID, ok := parseIDParam(ctx, "eventId")
	if !ok {
		return
	}

	requests, err := c.eventService.ListEventRequests(ctx, userID, eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(requests))
}

// ConfirmRequest admits a pending request against the event's capacity
// @Summary Confirm a participation request
// @Description Confirms a pending request. Filling the last slot rejects all remaining pending requests.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param userId path int true "Initiator ID"
// @Param eventId path int true "Event ID"
// @Param reqId path int true "Request ID"
// @Success 200 {object} dto.APIResponse{data=dto.RequestResponse}
// @Failure 409 {object} dto.ErrorResponse "Participant limit reached"
// @Router /users/{userId}/events/{eventId}/requests/{reqId}/confirm [patch]
func (c *PrivateEventController) ConfirmRequest(ctx *gin.Context) {
	userID, ok := authorizedPathUser(ctx)
	if !ok {
		return
	}
	eventID, ok := parseIDParam(ctx, "eventId")
	if !ok {
		return
	}
	requestID, ok := parseIDParam(ctx, "reqId")
	if !ok {
		return
	}

	request, err := c.eventService.ConfirmRequest(ctx, userID, eventID, requestID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(request))
}

// RejectRequest refuses a participation request
// @Summary Reject a participation request
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param userId path int true "Initiator ID"
// @Param eventId path int true "Event ID"
// @Param reqId path int true "Request ID"
// @Success 200 {object} dto.APIResponse{data=dto.RequestResponse}
// @Failure 400 {object} dto.ErrorResponse "Request already rejected or canceled"
// @Router /users/{userId}/events/{eventId}/requests/{reqId}/reject [patch]
func (c *PrivateEventController) RejectRequest(ctx *gin.Context) {
	userID, ok := authorizedPathUser(ctx)
	if !ok {
		return
	}
	eventID, ok := parseIDParam(ctx, "eventId")
	if !ok {
		return
	}
	requestID, ok := parseIDParam(ctx, "reqId")
	if !ok {
		return
	}

	request, err := c.eventService.RejectRequest(ctx, userID, eventID, requestID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(request))
}
