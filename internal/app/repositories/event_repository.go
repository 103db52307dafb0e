package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eventum-app/eventum/internal/app/models"
	"github.com/eventum-app/eventum/internal/app/models/dto"
	"github.com/eventum-app/eventum/internal/pkg/helpers"
)

// EventRepository handles database operations for events
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

// eventColumns lists the selected columns for event queries, joined with the
// category and initiator names so list views don't fan out per row.
var eventColumns = []string{
	"e.id", "e.title", "e.annotation", "e.description",
	"e.category_id", "e.initiator_id", "e.lat", "e.lon",
	"e.event_date", "e.paid", "e.participant_limit", "e.request_moderation",
	"e.created_on", "e.published_on", "e.state",
	"c.name AS category_name", "u.name AS initiator_name",
}

func eventSelect() squirrel.SelectBuilder {
	return squirrel.Select(eventColumns...).
		From("events e").
		Join("categories c ON c.id = e.category_id").
		Join("users u ON u.id = e.initiator_id").
		PlaceholderFormat(squirrel.Dollar)
}

func scanEvent(row pgx.Row) (*models.Event, error) {
	var e models.Event
	var categoryName, initiatorName string
	err := row.Scan(
		&e.ID, &e.Title, &e.Annotation, &e.Description,
		&e.CategoryID, &e.InitiatorID, &e.Location.Lat, &e.Location.Lon,
		&e.EventDate, &e.Paid, &e.ParticipantLimit, &e.RequestModeration,
		&e.CreatedOn, &e.PublishedOn, &e.State,
		&categoryName, &initiatorName,
	)
	if err != nil {
		return nil, err
	}
	e.Category = &models.Category{ID: e.CategoryID, Name: categoryName}
	e.Initiator = &models.User{ID: e.InitiatorID, Name: initiatorName}
	return &e, nil
}

// Create inserts a new event and fills in its generated id
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	query := squirrel.Insert("events").
		Columns("title", "annotation", "description", "category_id", "initiator_id",
			"lat", "lon", "event_date", "paid", "participant_limit",
			"request_moderation", "created_on", "state").
		Values(event.Title, event.Annotation, event.Description, event.CategoryID, event.InitiatorID,
			event.Location.Lat, event.Location.Lon, event.EventDate, event.Paid, event.ParticipantLimit,
			event.RequestModeration, event.CreatedOn, event.State).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&event.ID); err != nil {
		return fmt.Errorf("error inserting event: %w", err)
	}
	return nil
}

// Update persists all mutable event fields
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	query := squirrel.Update("events").
		Set("title", event.Title).
		Set("annotation", event.Annotation).
		Set("description", event.Description).
		Set("category_id", event.CategoryID).
		Set("lat", event.Location.Lat).
		Set("lon", event.Location.Lon).
		Set("event_date", event.EventDate).
		Set("paid", event.Paid).
		Set("participant_limit", event.ParticipantLimit).
		Set("request_moderation", event.RequestModeration).
		Set("published_on", event.PublishedOn).
		Set("state", event.State).
		Where(squirrel.Eq{"id": event.ID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error updating event: %w", err)
	}
	return nil
}

// GetByID retrieves an event by id. Returns (nil, nil) when absent.
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	return r.getOne(ctx, eventSelect().Where(squirrel.Eq{"e.id": id}))
}

// GetByIDAndState retrieves an event only when it is in the given state. Returns (nil, nil) when absent.
func (r *EventRepository) GetByIDAndState(ctx context.Context, id int64, state models.EventState) (*models.Event, error) {
	return r.getOne(ctx, eventSelect().Where(squirrel.Eq{"e.id": id, "e.state": state}))
}

func (r *EventRepository) getOne(ctx context.Context, query squirrel.SelectBuilder) (*models.Event, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	event, err := scanEvent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying event: %w", err)
	}
	return event, nil
}

// ListByInitiator retrieves the initiator's events with offset pagination
func (r *EventRepository) ListByInitiator(ctx context.Context, initiatorID int64, from, size int) ([]models.Event, error) {
	offset, limit := helpers.ClampOffsetLimit(from, size)
	query := eventSelect().
		Where(squirrel.Eq{"e.initiator_id": initiatorID}).
		OrderBy("e.id").
		Offset(offset).
		Limit(limit)

	return r.list(ctx, query)
}

// ListAdmin retrieves events matching the admin filter, newest event date first
func (r *EventRepository) ListAdmin(ctx context.Context, filter dto.AdminEventFilter) ([]models.Event, error) {
	query := eventSelect()

	if len(filter.Users) > 0 {
		query = query.Where(squirrel.Eq{"e.initiator_id": filter.Users})
	}
	if len(filter.States) > 0 {
		query = query.Where(squirrel.Eq{"e.state": filter.States})
	}
	if len(filter.Categories) > 0 {
		query = query.Where(squirrel.Eq{"e.category_id": filter.Categories})
	}
	if filter.RangeStart != nil {
		query = query.Where(squirrel.GtOrEq{"e.event_date": *filter.RangeStart})
	}
	if filter.RangeEnd != nil {
		query = query.Where(squirrel.Lt{"e.event_date": *filter.RangeEnd})
	}

	offset, limit := helpers.ClampOffsetLimit(filter.From, filter.Size)
	query = query.OrderBy("e.event_date DESC").Offset(offset).Limit(limit)

	return r.list(ctx, query)
}

// ListPublic retrieves published events matching the public filter.
// onlyAvailable keeps events whose confirmed count is still below their limit.
func (r *EventRepository) ListPublic(ctx context.Context, filter dto.PublicEventFilter) ([]models.Event, error) {
	query := eventSelect().Where(squirrel.Eq{"e.state": models.EventStatePublished})

	if filter.Text != "" {
		pattern := "%" + filter.Text + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"e.title": pattern},
			squirrel.ILike{"e.annotation": pattern},
		})
	}
	if len(filter.Categories) > 0 {
		query = query.Where(squirrel.Eq{"e.category_id": filter.Categories})
	}
	if filter.Paid != nil {
		query = query.Where(squirrel.Eq{"e.paid": *filter.Paid})
	}
	if filter.RangeStart != nil {
		query = query.Where(squirrel.GtOrEq{"e.event_date": *filter.RangeStart})
	}
	if filter.RangeEnd != nil {
		query = query.Where(squirrel.Lt{"e.event_date": *filter.RangeEnd})
	}
	if filter.OnlyAvailable {
		query = query.Where("(e.participant_limit = 0 OR " +
			"(SELECT COUNT(*) FROM requests r WHERE r.event_id = e.id AND r.status = 'CONFIRMED') < e.participant_limit)")
	}

	offset, limit := helpers.ClampOffsetLimit(filter.From, filter.Size)
	if filter.Sort == dto.EventSortByDate {
		query = query.OrderBy("e.event_date ASC")
	} else {
		query = query.OrderBy("e.id")
	}
	query = query.Offset(offset).Limit(limit)

	return r.list(ctx, query)
}

// ListByIDs retrieves the events with the given ids
func (r *EventRepository) ListByIDs(ctx context.Context, ids []int64) ([]models.Event, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.list(ctx, eventSelect().Where(squirrel.Eq{"e.id": ids}).OrderBy("e.id"))
}

func (r *EventRepository) list(ctx context.Context, query squirrel.SelectBuilder) ([]models.Event, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		events = append(events, *event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return events, nil
}
