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
	"github.com/eventum-app/eventum/internal/db"
	"github.com/eventum-app/eventum/internal/pkg/apperrors"
	"github.com/eventum-app/eventum/internal/pkg/dberrors"
	"github.com/eventum-app/eventum/internal/pkg/helpers"
)

// RequestRepository handles database operations for participation requests
type RequestRepository struct {
	db *pgxpool.Pool
}

// NewRequestRepository creates a new RequestRepository
func NewRequestRepository(db *pgxpool.Pool) *RequestRepository {
	return &RequestRepository{db: db}
}

var requestColumns = []string{"id", "event_id", "requester_id", "created", "status"}

func requestSelect() squirrel.SelectBuilder {
	return squirrel.Select(requestColumns...).
		From("requests").
		PlaceholderFormat(squirrel.Dollar)
}

func scanRequest(row pgx.Row) (*models.Request, error) {
	var req models.Request
	err := row.Scan(&req.ID, &req.EventID, &req.RequesterID, &req.Created, &req.Status)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// Create inserts a new participation request. A duplicate requester/event pair
// surfaces as apperrors.ErrConflict via the unique constraint.
func (r *RequestRepository) Create(ctx context.Context, request *models.Request) error {
	query := squirrel.Insert("requests").
		Columns("event_id", "requester_id", "created", "status").
		Values(request.EventID, request.RequesterID, request.Created, request.Status).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&request.ID); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_requests_requester_event") {
			return apperrors.NewConflictError("participation request already exists")
		}
		return fmt.Errorf("error inserting request: %w", err)
	}
	return nil
}

// GetByID retrieves a request by id. Returns (nil, nil) when absent.
func (r *RequestRepository) GetByID(ctx context.Context, id int64) (*models.Request, error) {
	return r.getOne(ctx, requestSelect().Where(squirrel.Eq{"id": id}))
}

// GetByRequesterAndID retrieves a request owned by the given requester. Returns (nil, nil) when absent.
func (r *RequestRepository) GetByRequesterAndID(ctx context.Context, requesterID, id int64) (*models.Request, error) {
	return r.getOne(ctx, requestSelect().Where(squirrel.Eq{"id": id, "requester_id": requesterID}))
}

// GetByRequesterAndEvent retrieves the requester's request for an event. Returns (nil, nil) when absent.
func (r *RequestRepository) GetByRequesterAndEvent(ctx context.Context, requesterID, eventID int64) (*models.Request, error) {
	return r.getOne(ctx, requestSelect().Where(squirrel.Eq{"requester_id": requesterID, "event_id": eventID}))
}

func (r *RequestRepository) getOne(ctx context.Context, query squirrel.SelectBuilder) (*models.Request, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	request, err := scanRequest(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying request: %w", err)
	}
	return request, nil
}

// ListByRequester retrieves all requests submitted by the given user
func (r *RequestRepository) ListByRequester(ctx context.Context, requesterID int64) ([]models.Request, error) {
	return r.list(ctx, requestSelect().Where(squirrel.Eq{"requester_id": requesterID}).OrderBy("id"))
}

// ListByEvent retrieves all requests targeting the given event
func (r *RequestRepository) ListByEvent(ctx context.Context, eventID int64) ([]models.Request, error) {
	return r.list(ctx, requestSelect().Where(squirrel.Eq{"event_id": eventID}).OrderBy("id"))
}

// ListAdmin retrieves requests matching the admin filter
func (r *RequestRepository) ListAdmin(ctx context.Context, filter dto.RequestFilter) ([]models.Request, error) {
	query := requestSelect()

	if len(filter.Requesters) > 0 {
		query = query.Where(squirrel.Eq{"requester_id": filter.Requesters})
	}
	if len(filter.Events) > 0 {
		query = query.Where(squirrel.Eq{"event_id": filter.Events})
	}
	if filter.RangeStart != nil {
		query = query.Where(squirrel.GtOrEq{"created": *filter.RangeStart})
	}
	if filter.RangeEnd != nil {
		query = query.Where(squirrel.Lt{"created": *filter.RangeEnd})
	}

	offset, limit := helpers.ClampOffsetLimit(filter.From, filter.Size)
	query = query.OrderBy("created DESC").Offset(offset).Limit(limit)

	return r.list(ctx, query)
}

func (r *RequestRepository) list(ctx context.Context, query squirrel.SelectBuilder) ([]models.Request, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var requests []models.Request
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		requests = append(requests, *request)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return requests, nil
}

// UpdateStatus sets a request's status
func (r *RequestRepository) UpdateStatus(ctx context.Context, id int64, status models.RequestStatus) error {
	query := squirrel.Update("requests").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error updating request status: %w", err)
	}
	return nil
}

// CountConfirmed returns the number of confirmed requests for an event
func (r *RequestRepository) CountConfirmed(ctx context.Context, eventID int64) (int64, error) {
	sql, args, err := squirrel.Select("COUNT(*)").
		From("requests").
		Where(squirrel.Eq{"event_id": eventID, "status": models.RequestStatusConfirmed}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting confirmed requests: %w", err)
	}
	return count, nil
}

// CountConfirmedByEventIDs returns confirmed request counts for the given
// events in a single grouped query. Events without confirmed requests are
// absent from the map.
func (r *RequestRepository) CountConfirmedByEventIDs(ctx context.Context, eventIDs []int64) (map[int64]int64, error) {
	counts := make(map[int64]int64)
	if len(eventIDs) == 0 {
		return counts, nil
	}

	sql, args, err := squirrel.Select("event_id", "COUNT(*)").
		From("requests").
		Where(squirrel.Eq{"event_id": eventIDs, "status": models.RequestStatusConfirmed}).
		GroupBy("event_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var eventID, count int64
		if err := rows.Scan(&eventID, &count); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		counts[eventID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return counts, nil
}

// ConfirmWithinLimit moves a pending request to CONFIRMED inside one
// transaction that holds a row lock on the event, so concurrent confirmations
// for the same event serialize and the participant limit is never exceeded.
// When the confirmation fills the last slot, every remaining pending request
// for the event is rejected in the same transaction.
//
// Returns apperrors.ErrCapacityExceeded when the event is already full.
func (r *RequestRepository) ConfirmWithinLimit(ctx context.Context, requestID, eventID int64, limit int32) (*models.Request, error) {
	var confirmed *models.Request

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var lockedID int64
		err := tx.QueryRow(ctx, "SELECT id FROM events WHERE id = $1 FOR UPDATE", eventID).Scan(&lockedID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrEventNotFound
			}
			return fmt.Errorf("error locking event row: %w", err)
		}

		var count int64
		err = tx.QueryRow(ctx,
			"SELECT COUNT(*) FROM requests WHERE event_id = $1 AND status = $2",
			eventID, models.RequestStatusConfirmed).Scan(&count)
		if err != nil {
			return fmt.Errorf("error counting confirmed requests: %w", err)
		}

		if limit > 0 && count >= int64(limit) {
			return apperrors.NewCapacityExceededError("the participant limit has been reached")
		}

		row := tx.QueryRow(ctx,
			"UPDATE requests SET status = $1 WHERE id = $2 AND event_id = $3 AND status = $4 RETURNING id, event_id, requester_id, created, status",
			models.RequestStatusConfirmed, requestID, eventID, models.RequestStatusPending)
		confirmed, err = scanRequest(row)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewValidationError("request is not pending")
			}
			return fmt.Errorf("error confirming request: %w", err)
		}

		if limit > 0 && count+1 >= int64(limit) {
			_, err = tx.Exec(ctx,
				"UPDATE requests SET status = $1 WHERE event_id = $2 AND status = $3",
				models.RequestStatusRejected, eventID, models.RequestStatusPending)
			if err != nil {
				return fmt.Errorf("error rejecting pending requests: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return confirmed, nil
}
