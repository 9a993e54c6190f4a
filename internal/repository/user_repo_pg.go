package repository

import (
	"context"
	"errors"
	"time"

	"github.com/blenbot/flight-booking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	UpdateProfile(ctx context.Context, id int64, name, email string) (*domain.User, error)
	SetResetCode(ctx context.Context, email, code string, expires time.Time) error
	ResetPassword(ctx context.Context, email, code, passwordHash string) error
	List(ctx context.Context) ([]domain.User, error)
}

type PGUserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) UserRepository {
	return &PGUserRepository{db: db}
}

const userColumns = `id, name, email, password_hash, role, reset_code, reset_code_expires, created_at, updated_at`

func scanUser(row pgx.Row, u *domain.User) error {
	return row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.ResetCode, &u.ResetCodeExpires, &u.CreatedAt, &u.UpdatedAt)
}

func (r *PGUserRepository) Create(ctx context.Context, user *domain.User) error {
	err := r.db.QueryRow(ctx, `INSERT INTO users (name, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`,
		user.Name, user.Email, user.PasswordHash, user.Role).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		// 23505: unique_violation on users.email
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *PGUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email=$1 AND deleted_at IS NULL`, email)
	var u domain.User
	if err := scanUser(row, &u); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *PGUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1 AND deleted_at IS NULL`, id)
	var u domain.User
	if err := scanUser(row, &u); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *PGUserRepository) UpdateProfile(ctx context.Context, id int64, name, email string) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `UPDATE users SET name=$1, email=$2, updated_at=now()
		WHERE id=$3 AND deleted_at IS NULL
		RETURNING `+userColumns, name, email, id)
	var u domain.User
	if err := scanUser(row, &u); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return &u, nil
}

func (r *PGUserRepository) SetResetCode(ctx context.Context, email, code string, expires time.Time) error {
	res, err := r.db.Exec(ctx, `UPDATE users SET reset_code=$1, reset_code_expires=$2, updated_at=now() WHERE email=$3 AND deleted_at IS NULL`, code, expires, email)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ResetPassword consumes an unexpired reset code: the new hash is stored
// and the code is nulled in the same statement.
func (r *PGUserRepository) ResetPassword(ctx context.Context, email, code, passwordHash string) error {
	res, err := r.db.Exec(ctx, `UPDATE users SET password_hash=$1, reset_code=NULL, reset_code_expires=NULL, updated_at=now()
		WHERE email=$2 AND reset_code=$3 AND reset_code_expires > now() AND deleted_at IS NULL`, passwordHash, email, code)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrInvalidResetCode
	}
	return nil
}

func (r *PGUserRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users WHERE deleted_at IS NULL ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		var u domain.User
		if err := scanUser(rows, &u); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

var _ UserRepository = (*PGUserRepository)(nil)
