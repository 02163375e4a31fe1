package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"bookingcalendar/internal/domain"

	"github.com/lib/pq"
)

const pingTimeout = 5 * time.Second

//go:embed schema.sql
var schemaSQL string

// Open returns a Postgres handle that does not keep idle connections, so every repository call
// dials, uses and releases its own connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxIdleConns(0)

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// InitSchema creates every table that does not exist yet. Running it twice is a no-op.
func InitSchema(ctx context.Context, db *sql.DB) error {
	return withConn(ctx, db, func(conn *sql.Conn) error {
		if _, err := conn.ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
		return nil
	})
}

// withConn scopes one unit of work to a dedicated connection and releases it on every exit path.
func withConn(ctx context.Context, db *sql.DB, fn func(conn *sql.Conn) error) error {
	conn, err := db.Conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()
	return fn(conn)
}

func nullInt64Ptr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}

func nullStringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

// integrityViolationClass is the SQLSTATE class for integrity constraint violations.
const integrityViolationClass = "23"

// translateError classifies integrity violations as domain.ConstraintError and returns every
// other error untouched.
func translateError(err error) error {
	var perr *pq.Error
	if errors.As(err, &perr) && perr.Code.Class() == integrityViolationClass {
		return &domain.ConstraintError{Constraint: perr.Constraint, Err: err}
	}
	return err
}
