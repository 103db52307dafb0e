package services

import (
	"context"

	"github.com/eventum-app/eventum/internal/app/models"
	"github.com/eventum-app/eventum/internal/app/models/dto"
)

// EventStore is the event persistence surface the services depend on
type EventStore interface {
	Create(ctx context.Context, event *models.Event) error
	Update(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	GetByIDAndState(ctx context.Context, id int64, state models.EventState) (*models.Event, error)
	ListByInitiator(ctx context.Context, initiatorID int64, from, size int) ([]models.Event, error)
	ListAdmin(ctx context.Context, filter dto.AdminEventFilter) ([]models.Event, error)
	ListPublic(ctx context.Context, filter dto.PublicEventFilter) ([]models.Event, error)
	ListByIDs(ctx context.Context, ids []int64) ([]models.Event, error)
}

// RequestStore is the participation request persistence surface
type RequestStore interface {
	Create(ctx context.Context, request *models.Request) error
	GetByID(ctx context.Context, id int64) (*models.Request, error)
	GetByRequesterAndID(ctx context.Context, requesterID, id int64) (*models.Request, error)
	GetByRequesterAndEvent(ctx context.Context, requesterID, eventID int64) (*models.Request, error)
	ListByRequester(ctx context.Context, requesterID int64) ([]models.Request, error)
	ListByEvent(ctx context.Context, eventID int64) ([]models.Request, error)
	ListAdmin(ctx context.Context, filter dto.RequestFilter) ([]models.Request, error)
	UpdateStatus(ctx context.Context, id int64, status models.RequestStatus) error
	CountConfirmed(ctx context.Context, eventID int64) (int64, error)
	CountConfirmedByEventIDs(ctx context.Context, eventIDs []int64) (map[int64]int64, error)
	ConfirmWithinLimit(ctx context.Context, requestID, eventID int64, limit int32) (*models.Request, error)
}

// UserStore is the user directory surface
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, ids []int64, from, size int) ([]models.User, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// CategoryStore is the category directory surface
type CategoryStore interface {
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) (bool, error)
	GetByID(ctx context.Context, id int64) (*models.Category, error)
	List(ctx context.Context, from, size int) ([]models.Category, error)
	CountEvents(ctx context.Context, id int64) (int64, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// CompilationStore is the compilation persistence surface
type CompilationStore interface {
	Create(ctx context.Context, compilation *models.Compilation, eventIDs []int64) error
	GetByID(ctx context.Context, id int64) (*models.Compilation, []int64, error)
	List(ctx context.Context, pinned *bool, from, size int) ([]models.Compilation, map[int64][]int64, error)
	SetPinned(ctx context.Context, id int64, pinned bool) (bool, error)
	AddEvent(ctx context.Context, compilationID, eventID int64) error
	RemoveEvent(ctx context.Context, compilationID, eventID int64) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// HitCounter is the external view-counting boundary
type HitCounter interface {
	RecordHit(ctx context.Context, uri, ip string)
	HitCounts(ctx context.Context, eventIDs []int64) map[int64]int64
}
