package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/bookstore/backend/internal/model"
	"github.com/bookstore/backend/internal/query"
)

const userColumns = "id, email, username, password_hash, full_name, is_active, created_at, updated_at"

func (db *Postgres) CreateUser(ctx context.Context, user model.User) (*model.User, error) {
	query := `
		INSERT INTO users (id, email, username, password_hash, full_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING ` + userColumns
	row := db.Pool.QueryRow(ctx, query,
		user.ID,
		user.Email,
		user.Username,
		user.PasswordHash,
		user.FullName,
	)
	return scanUser(row)
}

func (db *Postgres) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(db.Pool.QueryRow(ctx, query, id))
}

func (db *Postgres) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return scanUser(db.Pool.QueryRow(ctx, query, username))
}

// ListUsers returns one page of users plus the total count for the same
// filter. Results are ordered by (created_at, id) so successive pages are
// stable between mutations.
func (db *Postgres) ListUsers(ctx context.Context, page query.Page, filter query.UserFilter) ([]model.User, int64, error) {
	var b query.SQLBuilder
	filter.Apply(&b)
	where, countArgs := b.Clause()

	var total int64
	countSQL := fmt.Sprintf(`SELECT COUNT(*) FROM users %s`, where)
	if err := db.Pool.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	listSQL := fmt.Sprintf(
		`SELECT %s FROM users %s ORDER BY created_at, id LIMIT %s OFFSET %s`,
		userColumns, where, b.NextArg(page.Limit), b.NextArg(page.Skip),
	)
	rows, err := db.Pool.Query(ctx, listSQL, b.Args()...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (db *Postgres) UpdateUser(ctx context.Context, user model.User) (*model.User, error) {
	query := `
		UPDATE users
		SET email = $1, username = $2, password_hash = $3, full_name = $4, is_active = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING ` + userColumns
	row := db.Pool.QueryRow(ctx, query,
		user.Email,
		user.Username,
		user.PasswordHash,
		user.FullName,
		user.IsActive,
		user.ID,
	)
	return scanUser(row)
}

func (db *Postgres) DeleteUser(ctx context.Context, id uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanUser(row pgx.Row) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.PasswordHash,
		&user.FullName,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
