package postgres

import (
	"context"
	"database/sql"
	"errors"

	"bookingcalendar/internal/domain"
)

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) CreateIfAbsent(ctx context.Context, u *domain.User) (bool, error) {
	query := `
		INSERT INTO users (email, password_hash, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO NOTHING
		RETURNING id
	`
	created := false
	err := withConn(ctx, r.DB, func(conn *sql.Conn) error {
		err := conn.QueryRowContext(ctx, query, u.Email, u.PasswordHash, u.Name).Scan(&u.ID)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return translateError(err)
		}
		created = true
		return nil
	})
	return created, err
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, bool, error) {
	query := `
		SELECT id, email, password_hash, name
		FROM users
		WHERE email = $1
	`
	u := &domain.User{}
	var name sql.NullString
	err := withConn(ctx, r.DB, func(conn *sql.Conn) error {
		return conn.QueryRowContext(ctx, query, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &name)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	u.Name = nullStringPtr(name)
	return u, true, nil
}
