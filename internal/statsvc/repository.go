package statsvc

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

// HitRepository handles database operations for endpoint hits
type HitRepository struct {
	db *pgxpool.Pool
}

// NewHitRepository creates a new HitRepository
func NewHitRepository(db *pgxpool.Pool) *HitRepository {
	return &HitRepository{db: db}
}

// Save stores one endpoint hit
func (r *HitRepository) Save(ctx context.Context, hit *EndpointHit) error {
	query := squirrel.Insert("endpoint_hits").
		Columns("app", "uri", "ip", "ts").
		Values(hit.App, hit.URI, hit.IP, hit.Timestamp).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&hit.ID); err != nil {
		return fmt.Errorf("error inserting endpoint hit: %w", err)
	}
	return nil
}

// Stats aggregates hit counts per app and uri inside [start, end), most hit
// first. With unique set, each client ip counts once per uri. An empty uris
// slice aggregates over all tracked uris.
func (r *HitRepository) Stats(ctx context.Context, start, end time.Time, uris []string, unique bool) ([]ViewStats, error) {
	hitsExpr := "COUNT(*)"
	if unique {
		hitsExpr = "COUNT(DISTINCT ip)"
	}

	query := squirrel.Select("app", "uri", hitsExpr+" AS hits").
		From("endpoint_hits").
		Where(squirrel.GtOrEq{"ts": start}).
		Where(squirrel.Lt{"ts": end}).
		GroupBy("app", "uri").
		OrderBy("hits DESC").
		PlaceholderFormat(squirrel.Dollar)
	if len(uris) > 0 {
		query = query.Where(squirrel.Eq{"uri": uris})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var stats []ViewStats
	for rows.Next() {
		var stat ViewStats
		if err := rows.Scan(&stat.App, &stat.URI, &stat.Hits); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		stats = append(stats, stat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return stats, nil
}
