package services

import (
	"context"
	"sync"
	"time"

	"github.com/eventum-app/eventum/internal/app/models"
	"github.com/eventum-app/eventum/internal/app/models/dto"
	"github.com/eventum-app/eventum/internal/pkg/apperrors"
)

// In-memory stores backing the service tests. stubRequests serializes
// ConfirmWithinLimit behind a mutex, mirroring the per-event row lock the
// SQL implementation takes.

type stubEvents struct {
	mu     sync.Mutex
	nextID int64
	events map[int64]*models.Event
}

func newStubEvents() *stubEvents {
	return &stubEvents{events: make(map[int64]*models.Event)}
}

func (s *stubEvents) Create(_ context.Context, event *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	event.ID = s.nextID
	copied := *event
	s.events[event.ID] = &copied
	return nil
}

func (s *stubEvents) Update(_ context.Context, event *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *event
	s.events[event.ID] = &copied
	return nil
}

func (s *stubEvents) GetByID(_ context.Context, id int64) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, ok := s.events[id]
	if !ok {
		return nil, nil
	}
	copied := *event
	return &copied, nil
}

func (s *stubEvents) GetByIDAndState(ctx context.Context, id int64, state models.EventState) (*models.Event, error) {
	event, err := s.GetByID(ctx, id)
	if err != nil || event == nil || event.State != state {
		return nil, err
	}
	return event, nil
}

func (s *stubEvents) ListByInitiator(_ context.Context, initiatorID int64, _, _ int) ([]models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var events []models.Event
	for _, event := range s.events {
		if event.InitiatorID == initiatorID {
			events = append(events, *event)
		}
	}
	return events, nil
}

func (s *stubEvents) ListAdmin(_ context.Context, _ dto.AdminEventFilter) ([]models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var events []models.Event
	for _, event := range s.events {
		events = append(events, *event)
	}
	return events, nil
}

func (s *stubEvents) ListPublic(_ context.Context, _ dto.PublicEventFilter) ([]models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var events []models.Event
	for _, event := range s.events {
		if event.State == models.EventStatePublished {
			events = append(events, *event)
		}
	}
	return events, nil
}

func (s *stubEvents) ListByIDs(_ context.Context, ids []int64) ([]models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var events []models.Event
	for _, id := range ids {
		if event, ok := s.events[id]; ok {
			events = append(events, *event)
		}
	}
	return events, nil
}

type stubRequests struct {
	mu       sync.Mutex
	nextID   int64
	requests map[int64]*models.Request
}

func newStubRequests() *stubRequests {
	return &stubRequests{requests: make(map[int64]*models.Request)}
}

func (s *stubRequests) Create(_ context.Context, request *models.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.requests {
		if existing.RequesterID == request.RequesterID && existing.EventID == request.EventID {
			return apperrors.NewConflictError("participation request already exists")
		}
	}
	s.nextID++
	request.ID = s.nextID
	copied := *request
	s.requests[request.ID] = &copied
	return nil
}

func (s *stubRequests) GetByID(_ context.Context, id int64) (*models.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	request, ok := s.requests[id]
	if !ok {
		return nil, nil
	}
	copied := *request
	return &copied, nil
}

func (s *stubRequests) GetByRequesterAndID(ctx context.Context, requesterID, id int64) (*models.Request, error) {
	request, err := s.GetByID(ctx, id)
	if err != nil || request == nil || request.RequesterID != requesterID {
		return nil, err
	}
	return request, nil
}

func (s *stubRequests) GetByRequesterAndEvent(_ context.Context, requesterID, eventID int64) (*models.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, request := range s.requests {
		if request.RequesterID == requesterID && request.EventID == eventID {
			copied := *request
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *stubRequests) ListByRequester(_ context.Context, requesterID int64) ([]models.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var requests []models.Request
	for _, request := range s.requests {
		if request.RequesterID == requesterID {
			requests = append(requests, *request)
		}
	}
	return requests, nil
}

func (s *stubRequests) ListByEvent(_ context.Context, eventID int64) ([]models.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var requests []models.Request
	for _, request := range s.requests {
		if request.EventID == eventID {
			requests = append(requests, *request)
		}
	}
	return requests, nil
}

func (s *stubRequests) ListAdmin(_ context.Context, _ dto.RequestFilter) ([]models.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var requests []models.Request
	for _, request := range s.requests {
		requests = append(requests, *request)
	}
	return requests, nil
}

func (s *stubRequests) UpdateStatus(_ context.Context, id int64, status models.RequestStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if request, ok := s.requests[id]; ok {
		request.Status = status
	}
	return nil
}

func (s *stubRequests) CountConfirmed(_ context.Context, eventID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.countConfirmedLocked(eventID), nil
}

func (s *stubRequests) countConfirmedLocked(eventID int64) int64 {
	var count int64
	for _, request := range s.requests {
		if request.EventID == eventID && request.Status == models.RequestStatusConfirmed {
			count++
		}
	}
	return count
}

func (s *stubRequests) CountConfirmedByEventIDs(_ context.Context, eventIDs []int64) (map[int64]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := make(map[int64]int64)
	for _, id := range eventIDs {
		if count := s.countConfirmedLocked(id); count > 0 {
			counts[id] = count
		}
	}
	return counts, nil
}

func (s *stubRequests) ConfirmWithinLimit(_ context.Context, requestID, eventID int64, limit int32) (*models.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := s.countConfirmedLocked(eventID)
	if limit > 0 && count >= int64(limit) {
		return nil, apperrors.NewCapacityExceededError("the participant limit has been reached")
	}

	request, ok := s.requests[requestID]
	if !ok || request.EventID != eventID || request.Status != models.RequestStatusPending {
		return nil, apperrors.NewValidationError("request is not pending")
	}
	request.Status = models.RequestStatusConfirmed

	if limit > 0 && count+1 >= int64(limit) {
		for _, other := range s.requests {
			if other.EventID == eventID && other.Status == models.RequestStatusPending {
				other.Status = models.RequestStatusRejected
			}
		}
	}

	copied := *request
	return &copied, nil
}

type stubUsers struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*models.User
}

func newStubUsers() *stubUsers {
	return &stubUsers{users: make(map[int64]*models.User)}
}

func (s *stubUsers) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	s.nextID++
	user.ID = s.nextID
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *stubUsers) GetByID(_ context.Context, id int64) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (s *stubUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *stubUsers) List(_ context.Context, _ []int64, _, _ int) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var users []models.User
	for _, user := range s.users {
		users = append(users, *user)
	}
	return users, nil
}

func (s *stubUsers) Delete(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return false, nil
	}
	delete(s.users, id)
	return true, nil
}

type stubCategories struct {
	mu         sync.Mutex
	nextID     int64
	categories map[int64]*models.Category
}

func newStubCategories() *stubCategories {
	return &stubCategories{categories: make(map[int64]*models.Category)}
}

func (s *stubCategories) Create(_ context.Context, category *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	category.ID = s.nextID
	copied := *category
	s.categories[category.ID] = &copied
	return nil
}

func (s *stubCategories) Update(_ context.Context, category *models.Category) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[category.ID]; !ok {
		return false, nil
	}
	copied := *category
	s.categories[category.ID] = &copied
	return true, nil
}

func (s *stubCategories) GetByID(_ context.Context, id int64) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	category, ok := s.categories[id]
	if !ok {
		return nil, nil
	}
	copied := *category
	return &copied, nil
}

func (s *stubCategories) List(_ context.Context, _, _ int) ([]models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var categories []models.Category
	for _, category := range s.categories {
		categories = append(categories, *category)
	}
	return categories, nil
}

func (s *stubCategories) CountEvents(_ context.Context, _ int64) (int64, error) {
	return 0, nil
}

func (s *stubCategories) Delete(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[id]; !ok {
		return false, nil
	}
	delete(s.categories, id)
	return true, nil
}

// stubHits mirrors the real client's contract: every requested id is present
// in the result, unknown ids map to zero.
type stubHits struct {
	mu       sync.Mutex
	counts   map[int64]int64
	recorded []string
}

func newStubHits() *stubHits {
	return &stubHits{counts: make(map[int64]int64)}
}

func (s *stubHits) RecordHit(_ context.Context, uri, _ string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recorded = append(s.recorded, uri)
}

func (s *stubHits) HitCounts(_ context.Context, eventIDs []int64) map[int64]int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := make(map[int64]int64, len(eventIDs))
	for _, id := range eventIDs {
		counts[id] = s.counts[id]
	}
	return counts
}

// fixture bundles the stub stores behind a wired EventService and RequestService
type fixture struct {
	events     *stubEvents
	requests   *stubRequests
	users      *stubUsers
	categories *stubCategories
	hits       *stubHits

	eventService   *EventService
	requestService *RequestService
}

func newFixture() *fixture {
	f := &fixture{
		events:     newStubEvents(),
		requests:   newStubRequests(),
		users:      newStubUsers(),
		categories: newStubCategories(),
		hits:       newStubHits(),
	}
	aggregator := NewStatsAggregator(f.requests, f.hits)
	f.eventService = NewEventService(f.events, f.requests, f.users, f.categories, aggregator, f.hits)
	f.requestService = NewRequestService(f.requests, f.events, f.users)
	return f
}

func (f *fixture) addUser(name string) int64 {
	user := &models.User{Name: name, Email: name + "@example.com", RoleType: models.RoleUser}
	_ = f.users.Create(context.Background(), user)
	return user.ID
}

func (f *fixture) addCategory(name string) int64 {
	category := &models.Category{Name: name}
	_ = f.categories.Create(context.Background(), category)
	return category.ID
}

func (f *fixture) addRequest(requesterID, eventID int64, status models.RequestStatus) int64 {
	request := &models.Request{
		EventID:     eventID,
		RequesterID: requesterID,
		Created:     time.Now().UTC(),
		Status:      status,
	}
	_ = f.requests.Create(context.Background(), request)
	return request.ID
}

func (f *fixture) addEvent(initiatorID, categoryID int64, state models.EventState, limit int32, moderation bool) int64 {
	event := &models.Event{
		Title:             "Test event",
		Annotation:        "An annotation long enough to be plausible",
		Description:       "A description long enough to be plausible",
		CategoryID:        categoryID,
		InitiatorID:       initiatorID,
		EventDate:         time.Now().UTC().Add(48 * time.Hour),
		ParticipantLimit:  limit,
		RequestModeration: moderation,
		CreatedOn:         time.Now().UTC(),
		State:             state,
	}
	_ = f.events.Create(context.Background(), event)
	return event.ID
}
