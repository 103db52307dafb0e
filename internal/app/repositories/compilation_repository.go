package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eventum-app/eventum/internal/app/models"
	"github.com/eventum-app/eventum/internal/db"
	"github.com/eventum-app/eventum/internal/pkg/helpers"
)

// CompilationRepository handles database operations for event compilations
type CompilationRepository struct {
	db *pgxpool.Pool
}

// NewCompilationRepository creates a new CompilationRepository
func NewCompilationRepository(db *pgxpool.Pool) *CompilationRepository {
	return &CompilationRepository{db: db}
}

// Create inserts a compilation and its event links in one transaction
func (r *CompilationRepository) Create(ctx context.Context, compilation *models.Compilation, eventIDs []int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		sql, args, err := squirrel.Insert("compilations").
			Columns("title", "pinned").
			Values(compilation.Title, compilation.Pinned).
			Suffix("RETURNING id").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("error building SQL: %w", err)
		}
		if err := tx.QueryRow(ctx, sql, args...).Scan(&compilation.ID); err != nil {
			return fmt.Errorf("error inserting compilation: %w", err)
		}
		return insertCompilationEvents(ctx, tx, compilation.ID, eventIDs)
	})
}

// SetPinned pins or unpins a compilation. Returns (false, nil) when absent.
func (r *CompilationRepository) SetPinned(ctx context.Context, id int64, pinned bool) (bool, error) {
	tag, err := r.db.Exec(ctx, "UPDATE compilations SET pinned = $1 WHERE id = $2", pinned, id)
	if err != nil {
		return false, fmt.Errorf("error updating compilation pin: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// AddEvent links an event to a compilation. Adding an already linked event is a no-op.
func (r *CompilationRepository) AddEvent(ctx context.Context, compilationID, eventID int64) error {
	_, err := r.db.Exec(ctx,
		"INSERT INTO compilation_events (compilation_id, event_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
		compilationID, eventID)
	if err != nil {
		return fmt.Errorf("error linking compilation event: %w", err)
	}
	return nil
}

// RemoveEvent unlinks an event from a compilation. Returns (false, nil) when the link did not exist.
func (r *CompilationRepository) RemoveEvent(ctx context.Context, compilationID, eventID int64) (bool, error) {
	tag, err := r.db.Exec(ctx,
		"DELETE FROM compilation_events WHERE compilation_id = $1 AND event_id = $2",
		compilationID, eventID)
	if err != nil {
		return false, fmt.Errorf("error unlinking compilation event: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func insertCompilationEvents(ctx context.Context, tx pgx.Tx, compilationID int64, eventIDs []int64) error {
	if len(eventIDs) == 0 {
		return nil
	}
	insert := squirrel.Insert("compilation_events").
		Columns("compilation_id", "event_id").
		PlaceholderFormat(squirrel.Dollar)
	for _, eventID := range eventIDs {
		insert = insert.Values(compilationID, eventID)
	}
	sql, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}
	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error inserting compilation events: %w", err)
	}
	return nil
}

// GetByID retrieves a compilation with its linked event ids. Returns (nil, nil, nil) when absent.
func (r *CompilationRepository) GetByID(ctx context.Context, id int64) (*models.Compilation, []int64, error) {
	var compilation models.Compilation
	err := r.db.QueryRow(ctx, "SELECT id, title, pinned FROM compilations WHERE id = $1", id).
		Scan(&compilation.ID, &compilation.Title, &compilation.Pinned)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("error querying compilation: %w", err)
	}

	eventIDs, err := r.eventIDsFor(ctx, []int64{id})
	if err != nil {
		return nil, nil, err
	}
	return &compilation, eventIDs[id], nil
}

// List retrieves compilations with their linked event ids, optionally filtered by pinned
func (r *CompilationRepository) List(ctx context.Context, pinned *bool, from, size int) ([]models.Compilation, map[int64][]int64, error) {
	query := squirrel.Select("id", "title", "pinned").
		From("compilations").
		PlaceholderFormat(squirrel.Dollar)
	if pinned != nil {
		query = query.Where(squirrel.Eq{"pinned": *pinned})
	}

	offset, limit := helpers.ClampOffsetLimit(from, size)
	sql, args, err := query.OrderBy("id").Offset(offset).Limit(limit).ToSql()
	if err != nil {
		return nil, nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var compilations []models.Compilation
	var ids []int64
	for rows.Next() {
		var compilation models.Compilation
		if err := rows.Scan(&compilation.ID, &compilation.Title, &compilation.Pinned); err != nil {
			return nil, nil, fmt.Errorf("error scanning row: %w", err)
		}
		compilations = append(compilations, compilation)
		ids = append(ids, compilation.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating rows: %w", err)
	}

	eventIDs, err := r.eventIDsFor(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	return compilations, eventIDs, nil
}

func (r *CompilationRepository) eventIDsFor(ctx context.Context, compilationIDs []int64) (map[int64][]int64, error) {
	links := make(map[int64][]int64)
	if len(compilationIDs) == 0 {
		return links, nil
	}

	sql, args, err := squirrel.Select("compilation_id", "event_id").
		From("compilation_events").
		Where(squirrel.Eq{"compilation_id": compilationIDs}).
		OrderBy("event_id").
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
		var compilationID, eventID int64
		if err := rows.Scan(&compilationID, &eventID); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		links[compilationID] = append(links[compilationID], eventID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return links, nil
}

// Delete removes a compilation and its links. Returns (false, nil) when absent.
func (r *CompilationRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM compilations WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("error deleting compilation: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
