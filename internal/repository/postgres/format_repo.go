package postgres

import (
	"context"
	"database/sql"

	"bookingcalendar/internal/domain"
)

type formatRepository struct {
	DB *sql.DB
}

// NewFormatRepository returns a domain.FormatRepository implemented with Postgres.
func NewFormatRepository(db *sql.DB) domain.FormatRepository {
	return &formatRepository{DB: db}
}

func (r *formatRepository) Create(ctx context.Context, f *domain.Format) error {
	if f.Color == "" {
		f.Color = domain.DefaultFormatColor
	}
	query := `
		INSERT INTO formats (name, color)
		VALUES ($1, $2)
		RETURNING id
	`
	return withConn(ctx, r.DB, func(conn *sql.Conn) error {
		return translateError(conn.QueryRowContext(ctx, query, f.Name, f.Color).Scan(&f.ID))
	})
}

func (r *formatRepository) List(ctx context.Context) ([]*domain.Format, error) {
	query := `
		SELECT id, name, color
		FROM formats
		ORDER BY name
	`
	formats := make([]*domain.Format, 0)
	err := withConn(ctx, r.DB, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			f := &domain.Format{}
			var color sql.NullString
			if err := rows.Scan(&f.ID, &f.Name, &color); err != nil {
				return err
			}
			f.Color = color.String
			formats = append(formats, f)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return formats, nil
}
