package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eventum-app/eventum/internal/app/models"
	"github.com/eventum-app/eventum/internal/pkg/apperrors"
	"github.com/eventum-app/eventum/internal/pkg/dberrors"
	"github.com/eventum-app/eventum/internal/pkg/helpers"
)

// CategoryRepository handles database operations for categories
type CategoryRepository struct {
	db *pgxpool.Pool
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create inserts a new category. A duplicate name surfaces as apperrors.ErrConflict.
func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	sql, args, err := squirrel.Insert("categories").
		Columns("name").
		Values(category.Name).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&category.ID); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_categories_name") {
			return apperrors.NewConflictError("category name already exists")
		}
		return fmt.Errorf("error inserting category: %w", err)
	}
	return nil
}

// Update renames a category. Returns (false, nil) when the category did not exist.
func (r *CategoryRepository) Update(ctx context.Context, category *models.Category) (bool, error) {
	sql, args, err := squirrel.Update("categories").
		Set("name", category.Name).
		Where(squirrel.Eq{"id": category.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_categories_name") {
			return false, apperrors.NewConflictError("category name already exists")
		}
		return false, fmt.Errorf("error updating category: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// GetByID retrieves a category by id. Returns (nil, nil) when absent.
func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	sql, args, err := squirrel.Select("id", "name").
		From("categories").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var category models.Category
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&category.ID, &category.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying category: %w", err)
	}
	return &category, nil
}

// List retrieves categories with offset pagination
func (r *CategoryRepository) List(ctx context.Context, from, size int) ([]models.Category, error) {
	offset, limit := helpers.ClampOffsetLimit(from, size)
	sql, args, err := squirrel.Select("id", "name").
		From("categories").
		OrderBy("id").
		Offset(offset).
		Limit(limit).
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

	var categories []models.Category
	for rows.Next() {
		var category models.Category
		if err := rows.Scan(&category.ID, &category.Name); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return categories, nil
}

// CountEvents returns how many events reference the category
func (r *CategoryRepository) CountEvents(ctx context.Context, id int64) (int64, error) {
	sql, args, err := squirrel.Select("COUNT(*)").
		From("events").
		Where(squirrel.Eq{"category_id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting events: %w", err)
	}
	return count, nil
}

// Delete removes a category. Returns (false, nil) when the category did not exist.
func (r *CategoryRepository) Delete(ctx context.Context, id int64) (bool, error) {
	sql, args, err := squirrel.Delete("categories").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("error deleting category: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
