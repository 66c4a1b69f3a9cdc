package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/central/authentication-service/pkg/user"
)

// UserRepository implements user.Repository backed by PostgreSQL (pgx).
// Lookups are exact-match; email is compared case-sensitively.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) (*UserRepository, error) {
	repo := &UserRepository{pool: pool}
	if err := repo.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *UserRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS central_users (
			user_code TEXT PRIMARY KEY,
			username TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			phone_number TEXT NOT NULL DEFAULT '',
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);
	`)
	return err
}

const userColumns = `user_code, username, email, phone_number, password_hash, role, created_at`

func (r *UserRepository) Create(ctx context.Context, u user.User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO central_users (user_code, username, email, phone_number, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, u.UserCode, u.Username, u.Email, u.PhoneNumber, u.PasswordHash, string(u.Role), u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			// Distinguish which constraint lost the race: email conflicts
			// are caller errors, user_code conflicts trigger a regenerate.
			if pgErr.ConstraintName == "central_users_pkey" {
				return user.ErrCodeTaken
			}
			return user.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, userCode string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM central_users WHERE user_code = $1`, userCode)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *UserRepository) FindByUserCode(ctx context.Context, userCode string) (user.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM central_users WHERE user_code = $1
	`, userCode)
	return scanUser(row)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (user.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM central_users WHERE email = $1
	`, email)
	return scanUser(row)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) ([]user.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM central_users WHERE username = $1
	`, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) FindByUsernameAndEmail(ctx context.Context, username, email string) (user.User, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM central_users WHERE username = $1 AND email = $2
	`, username, email)
	return scanUser(row)
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM central_users WHERE email = $1)
	`, email).Scan(&exists)
	return exists, err
}

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	var role string
	var createdAt time.Time
	if err := row.Scan(&u.UserCode, &u.Username, &u.Email, &u.PhoneNumber, &u.PasswordHash, &role, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	u.Role = user.Role(role)
	u.CreatedAt = createdAt.UTC()
	return u, nil
}
