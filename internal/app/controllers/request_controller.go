package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eventum-app/eventum/internal/app/models/dto"
	"github.com/eventum-app/eventum/internal/app/services"
	"github.com/eventum-app/eventum/internal/middleware"
	"github.com/eventum-app/eventum/internal/pkg/helpers"
)

// RequestController handles participation request operations
type RequestController struct {
	requestService *services.RequestService
}

// NewRequestController creates a new RequestController
func NewRequestController(requestService *services.RequestService) *RequestController {
	return &RequestController{requestService: requestService}
}

// SubmitRequest files a participation request for an event
// @Summary Submit a participation request
// @Description Resubmitting against the same event returns the existing request. Unmoderated events confirm immediately.
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param userId path int true "Requester ID"
// @Param eventId query int true "Event ID"
// @Success 201 {object} dto.APIResponse{data=dto.RequestResponse}
// @Failure 400 {object} dto.ErrorResponse "Self-request, unpublished event or limit reached"
// @Router /users/{userId}/requests [post]
func (c *RequestController) SubmitRequest(ctx *gin.Context) {
	userID, ok := authorizedPathUser(ctx)
	if !ok {
		return
	}

	eventID, err := strconv.ParseInt(ctx.Query("eventId"), 10, 64)
	if err != nil || eventID <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid eventId").
			WithField("eventId").
			WithDetails("eventId must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	request, err := c.requestService.Submit(ctx, userID, eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(request))
}

// ListOwnRequests lists the caller's participation requests
// @Summary List own requests
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param userId path int true "Requester ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.RequestResponse}
// @Router /users/{userId}/requests [get]
func (c *RequestController) ListOwnRequests(ctx *gin.Context) {
	userID, ok := authorizedPathUser(ctx)
	if !ok {
		return
	}

	requests, err := c.requestService.ListOwn(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(requests))
}

// CancelRequest withdraws the caller's own request
// @Summary Cancel own request
// @Description Cancellation is always accepted, including for confirmed requests.
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param userId path int true "Requester ID"
// @Param requestId path int true "Request ID"
// @Success 200 {object} dto.APIResponse{data=dto.RequestResponse}
// @Router /users/{userId}/requests/{requestId}/cancel [patch]
func (c *RequestController) CancelRequest(ctx *gin.Context) {
	userID, ok := authorizedPathUser(ctx)
	if !ok {
		return
	}
	requestID, ok := parseIDParam(ctx, "requestId")
	if !ok {
		return
	}

	request, err := c.requestService.Cancel(ctx, userID, requestID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(request))
}

// ListRequests lists requests matching the admin filter
// @Summary Search requests (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param requesters query []int false "Requester ids"
// @Param events query []int false "Event ids"
// @Param rangeStart query string false "Start of creation window"
// @Param rangeEnd query string false "End of creation window"
// @Param from query int false "Zero-based offset" default(0)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=[]dto.RequestResponse}
// @Router /admin/requests [get]
func (c *RequestController) ListRequests(ctx *gin.Context) {
	rangeStart, ok := queryTime(ctx, "rangeStart")
	if !ok {
		return
	}
	rangeEnd, ok := queryTime(ctx, "rangeEnd")
	if !ok {
		return
	}

	from, size := helpers.ParseOffsetParams(ctx)
	filter := dto.RequestFilter{
		Requesters: queryInt64List(ctx, "requesters"),
		Events:     queryInt64List(ctx, "events"),
		RangeStart: rangeStart,
		RangeEnd:   rangeEnd,
		From:       from,
		Size:       size,
	}

	requests, err := c.requestService.ListAdmin(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(requests))
}
