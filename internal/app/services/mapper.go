package services

import (
	"time"

	"github.com/eventum-app/eventum/internal/app/models"
	"github.com/eventum-app/eventum/internal/app/models/dto"
	"github.com/eventum-app/eventum/internal/pkg/helpers"
)

func formatTime(t time.Time) string {
	return t.Format(helpers.StatsTimeLayout)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

func toCategoryResponse(category *models.Category) *dto.CategoryResponse {
	if category == nil {
		return nil
	}
	return &dto.CategoryResponse{ID: category.ID, Name: category.Name}
}

func toUserShortResponse(user *models.User) *dto.UserShortResponse {
	if user == nil {
		return nil
	}
	return &dto.UserShortResponse{ID: user.ID, Name: user.Name}
}

func toUserResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{ID: user.ID, Name: user.Name, Email: user.Email}
}

func toEventFullResponse(event *models.Event, confirmed, views int64) dto.EventFullResponse {
	return dto.EventFullResponse{
		ID:                event.ID,
		Title:             event.Title,
		Annotation:        event.Annotation,
		Description:       event.Description,
		Category:          toCategoryResponse(event.Category),
		Initiator:         toUserShortResponse(event.Initiator),
		Location:          dto.LocationDto{Lat: event.Location.Lat, Lon: event.Location.Lon},
		EventDate:         formatTime(event.EventDate),
		Paid:              event.Paid,
		ParticipantLimit:  event.ParticipantLimit,
		RequestModeration: event.RequestModeration,
		CreatedOn:         formatTime(event.CreatedOn),
		PublishedOn:       formatTimePtr(event.PublishedOn),
		State:             event.State,
		ConfirmedRequests: confirmed,
		Views:             views,
	}
}

func toEventShortResponse(event *models.Event, confirmed, views int64) dto.EventShortResponse {
	return dto.EventShortResponse{
		ID:                event.ID,
		Title:             event.Title,
		Annotation:        event.Annotation,
		Category:          toCategoryResponse(event.Category),
		Initiator:         toUserShortResponse(event.Initiator),
		EventDate:         formatTime(event.EventDate),
		Paid:              event.Paid,
		ConfirmedRequests: confirmed,
		Views:             views,
	}
}

func toRequestResponse(request *models.Request) dto.RequestResponse {
	return dto.RequestResponse{
		ID:        request.ID,
		Event:     request.EventID,
		Requester: request.RequesterID,
		Created:   formatTime(request.Created),
		Status:    request.Status,
	}
}

func toRequestResponses(requests []models.Request) []dto.RequestResponse {
	responses := make([]dto.RequestResponse, 0, len(requests))
	for i := range requests {
		responses = append(responses, toRequestResponse(&requests[i]))
	}
	return responses
}
