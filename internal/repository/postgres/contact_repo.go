package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"bookingcalendar/internal/domain"
)

// Promoters and tour managers share the (id, name, contact) shape and differ only by table.
const (
	promotersTable    = "promoters"
	tourManagersTable = "tour_managers"
)

func createContact(ctx context.Context, db *sql.DB, table string, c *domain.Contact) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, contact)
		VALUES ($1, $2)
		RETURNING id
	`, table)
	return withConn(ctx, db, func(conn *sql.Conn) error {
		return translateError(conn.QueryRowContext(ctx, query, c.Name, c.Contact).Scan(&c.ID))
	})
}

func listContacts(ctx context.Context, db *sql.DB, table string) ([]*domain.Contact, error) {
	query := fmt.Sprintf(`
		SELECT id, name, contact
		FROM %s
		ORDER BY name
	`, table)
	contacts := make([]*domain.Contact, 0)
	err := withConn(ctx, db, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			c := &domain.Contact{}
			var contact sql.NullString
			if err := rows.Scan(&c.ID, &c.Name, &contact); err != nil {
				return err
			}
			c.Contact = nullStringPtr(contact)
			contacts = append(contacts, c)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return contacts, nil
}

type promoterRepository struct {
	DB *sql.DB
}

// NewPromoterRepository returns a domain.PromoterRepository implemented with Postgres.
func NewPromoterRepository(db *sql.DB) domain.PromoterRepository {
	return &promoterRepository{DB: db}
}

func (r *promoterRepository) Create(ctx context.Context, p *domain.Promoter) error {
	return createContact(ctx, r.DB, promotersTable, (*domain.Contact)(p))
}

func (r *promoterRepository) List(ctx context.Context) ([]*domain.Promoter, error) {
	contacts, err := listContacts(ctx, r.DB, promotersTable)
	if err != nil {
		return nil, err
	}
	promoters := make([]*domain.Promoter, len(contacts))
	for i, c := range contacts {
		promoters[i] = (*domain.Promoter)(c)
	}
	return promoters, nil
}

type tourManagerRepository struct {
	DB *sql.DB
}

// NewTourManagerRepository returns a domain.TourManagerRepository implemented with Postgres.
func NewTourManagerRepository(db *sql.DB) domain.TourManagerRepository {
	return &tourManagerRepository{DB: db}
}

func (r *tourManagerRepository) Create(ctx context.Context, m *domain.TourManager) error {
	return createContact(ctx, r.DB, tourManagersTable, (*domain.Contact)(m))
}

func (r *tourManagerRepository) List(ctx context.Context) ([]*domain.TourManager, error) {
	contacts, err := listContacts(ctx, r.DB, tourManagersTable)
	if err != nil {
		return nil, err
	}
	managers := make([]*domain.TourManager, len(contacts))
	for i, c := range contacts {
		managers[i] = (*domain.TourManager)(c)
	}
	return managers, nil
}
