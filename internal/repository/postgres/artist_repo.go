package postgres

import (
	"context"
	"database/sql"

	"bookingcalendar/internal/domain"
)

type artistRepository struct {
	DB *sql.DB
}

// NewArtistRepository returns a domain.ArtistRepository implemented with Postgres.
func NewArtistRepository(db *sql.DB) domain.ArtistRepository {
	return &artistRepository{DB: db}
}

func (r *artistRepository) Create(ctx context.Context, a *domain.Artist) error {
	roleTags, err := encodeList(a.RoleTags)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO artists (name, role_tags, contact)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	return withConn(ctx, r.DB, func(conn *sql.Conn) error {
		return translateError(conn.QueryRowContext(ctx, query, a.Name, roleTags, a.Contact).Scan(&a.ID))
	})
}

func (r *artistRepository) List(ctx context.Context) ([]*domain.Artist, error) {
	query := `
		SELECT id, name, role_tags, contact
		FROM artists
		ORDER BY name
	`
	artists := make([]*domain.Artist, 0)
	err := withConn(ctx, r.DB, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			a := &domain.Artist{}
			var roleTags, contact sql.NullString
			if err := rows.Scan(&a.ID, &a.Name, &roleTags, &contact); err != nil {
				return err
			}
			a.RoleTags = decodeList(roleTags, parseStrings)
			a.Contact = nullStringPtr(contact)
			artists = append(artists, a)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return artists, nil
}
