package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventum-app/eventum/internal/app/models/dto"
	"github.com/eventum-app/eventum/internal/app/services"
	"github.com/eventum-app/eventum/internal/middleware"
	"github.com/eventum-app/eventum/internal/pkg/helpers"
)

// PublicEventController handles anonymous event browsing
type PublicEventController struct {
	eventService *services.EventService
}

// NewPublicEventController creates a new PublicEventController
func NewPublicEventController(eventService *services.EventService) *PublicEventController {
	return &PublicEventController{eventService: eventService}
}

// ListEvents lists published events
// @Summary Browse published events
// @Description Without a time range only upcoming events are returned. The listing is counted as a view.
// @Tags public
// @Produce json
// @Param text query string false "Free-text search over title and annotation"
// @Param categories query []int false "Category ids"
// @Param paid query bool false "Paid flag"
// @Param rangeStart query string false "Start of event date window"
// @Param rangeEnd query string false "End of event date window"
// @Param onlyAvailable query bool false "Only events with free slots" default(false)
// @Param sort query string false "EVENT_DATE or VIEWS"
// @Param from query int false "Zero-based offset" default(0)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=[]dto.EventShortResponse}
// @Router /events [get]
func (c *PublicEventController) ListEvents(ctx *gin.Context) {
	rangeStart, ok := queryTime(ctx, "rangeStart")
	if !ok {
		return
	}
	rangeEnd, ok := queryTime(ctx, "rangeEnd")
	if !ok {
		return
	}

	onlyAvailable := false
	if v := queryBoolPtr(ctx, "onlyAvailable"); v != nil {
		onlyAvailable = *v
	}

	from, size := helpers.ParseOffsetParams(ctx)
	filter := dto.PublicEventFilter{
		Text:          ctx.Query("text"),
		Categories:    queryInt64List(ctx, "categories"),
		Paid:          queryBoolPtr(ctx, "paid"),
		RangeStart:    rangeStart,
		RangeEnd:      rangeEnd,
		OnlyAvailable: onlyAvailable,
		Sort:          dto.EventSort(ctx.DefaultQuery("sort", string(dto.EventSortByDate))),
		From:          from,
		Size:          size,
	}

	events, err := c.eventService.ListPublic(ctx, filter, ctx.Request.URL.Path, ctx.ClientIP())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(events))
}

// GetEvent retrieves one published event
// @Summary Get published event
// @Description Retrieves a published event in full. The retrieval is counted as a view.
// @Tags public
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.EventFullResponse}
// @Failure 404 {object} dto.ErrorResponse "Event not found or not published"
// @Router /events/{id} [get]
func (c *PublicEventController) GetEvent(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	event, err := c.eventService.GetPublic(ctx, eventID, ctx.Request.URL.Path, ctx.ClientIP())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(event))
}
