package postgres

import (
	"context"
	"database/sql"

	"bookingcalendar/internal/domain"
)

type serviceRepository struct {
	DB *sql.DB
}

// NewServiceRepository returns a domain.ServiceRepository implemented with Postgres.
func NewServiceRepository(db *sql.DB) domain.ServiceRepository {
	return &serviceRepository{DB: db}
}

func (r *serviceRepository) Create(ctx context.Context, s *domain.Service) error {
	query := `
		INSERT INTO services (name, description)
		VALUES ($1, $2)
		RETURNING id
	`
	return withConn(ctx, r.DB, func(conn *sql.Conn) error {
		return translateError(conn.QueryRowContext(ctx, query, s.Name, s.Description).Scan(&s.ID))
	})
}

func (r *serviceRepository) List(ctx context.Context) ([]*domain.Service, error) {
	query := `
		SELECT id, name, description
		FROM services
		ORDER BY name
	`
	services := make([]*domain.Service, 0)
	err := withConn(ctx, r.DB, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			s := &domain.Service{}
			var desc sql.NullString
			if err := rows.Scan(&s.ID, &s.Name, &desc); err != nil {
				return err
			}
			s.Description = nullStringPtr(desc)
			services = append(services, s)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return services, nil
}
