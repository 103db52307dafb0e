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

// UserRepository handles database operations for users
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

var userColumns = []string{"id", "name", "email", "password", "role_type", "created_at"}

func userSelect() squirrel.SelectBuilder {
	return squirrel.Select(userColumns...).
		From("users").
		PlaceholderFormat(squirrel.Dollar)
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.RoleType, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user. A duplicate email surfaces as
// apperrors.ErrEmailAlreadyExists via the unique constraint.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := squirrel.Insert("users").
		Columns("name", "email", "password", "role_type", "created_at").
		Values(user.Name, user.Email, user.Password, user.RoleType, user.CreatedAt).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&user.ID); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "uq_users_email") {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error inserting user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by id. Returns (nil, nil) when absent.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getOne(ctx, userSelect().Where(squirrel.Eq{"id": id}))
}

// GetByEmail retrieves a user by email. Returns (nil, nil) when absent.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, userSelect().Where(squirrel.Eq{"email": email}))
}

func (r *UserRepository) getOne(ctx context.Context, query squirrel.SelectBuilder) (*models.User, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying user: %w", err)
	}
	return user, nil
}

// List retrieves users, optionally restricted to the given ids
func (r *UserRepository) List(ctx context.Context, ids []int64, from, size int) ([]models.User, error) {
	query := userSelect()
	if len(ids) > 0 {
		query = query.Where(squirrel.Eq{"id": ids})
	}

	offset, limit := helpers.ClampOffsetLimit(from, size)
	sql, args, err := query.OrderBy("id").Offset(offset).Limit(limit).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return users, nil
}

// Delete removes a user by id. Returns (false, nil) when the user did not exist.
func (r *UserRepository) Delete(ctx context.Context, id int64) (bool, error) {
	sql, args, err := squirrel.Delete("users").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("error deleting user: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
