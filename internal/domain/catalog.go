package domain

import "context"

// DefaultFormatColor is the display colour given to formats created without one.
const DefaultFormatColor = "#2b8cbe"

// Artist is a performer that can be booked on events.
// swagger:model Artist
type Artist struct {
	ID       int64                `json:"id"`
	Name     string               `json:"name"`
	RoleTags EmbeddedList[string] `json:"role_tags" swaggertype:"array,string"`
	Contact  *string              `json:"contact"`
}

// NewArtist returns an unsaved artist.
func NewArtist(name string, roleTags []string, contact *string) *Artist {
	return &Artist{Name: name, RoleTags: NewEmbeddedList(roleTags...), Contact: contact}
}

// Format is a kind of show; Color is only a display hint.
// swagger:model Format
type Format struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// NewFormat returns an unsaved format, falling back to DefaultFormatColor.
func NewFormat(name, color string) *Format {
	if color == "" {
		color = DefaultFormatColor
	}
	return &Format{Name: name, Color: color}
}

// Contact is the shape shared by promoters and tour managers.
type Contact struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Contact *string `json:"contact"`
}

// Promoter organises events.
// swagger:model Promoter
type Promoter Contact

// TourManager accompanies artists on tour.
// swagger:model TourManager
type TourManager Contact

// Service is an extra that can be attached to an event.
// swagger:model Service
type Service struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// ArtistRepository is append-only: create and list by name.
type ArtistRepository interface {
	Create(ctx context.Context, a *Artist) error
	List(ctx context.Context) ([]*Artist, error)
}

// FormatRepository is append-only: create and list by name.
type FormatRepository interface {
	Create(ctx context.Context, f *Format) error
	List(ctx context.Context) ([]*Format, error)
}

// PromoterRepository is append-only: create and list by name.
type PromoterRepository interface {
	Create(ctx context.Context, p *Promoter) error
	List(ctx context.Context) ([]*Promoter, error)
}

// TourManagerRepository is append-only: create and list by name.
type TourManagerRepository interface {
	Create(ctx context.Context, m *TourManager) error
	List(ctx context.Context) ([]*TourManager, error)
}

// ServiceRepository is append-only: create and list by name.
type ServiceRepository interface {
	Create(ctx context.Context, s *Service) error
	List(ctx context.Context) ([]*Service, error)
}

// CatalogService exposes the reference entities events point at.
type CatalogService interface {
	ListArtists(ctx context.Context) ([]*Artist, error)
	CreateArtist(ctx context.Context, a *Artist) error
	ListFormats(ctx context.Context) ([]*Format, error)
	CreateFormat(ctx context.Context, f *Format) error
	ListPromoters(ctx context.Context) ([]*Promoter, error)
	CreatePromoter(ctx context.Context, p *Promoter) error
	ListTourManagers(ctx context.Context) ([]*TourManager, error)
	CreateTourManager(ctx context.Context, m *TourManager) error
	ListServices(ctx context.Context) ([]*Service, error)
	CreateService(ctx context.Context, s *Service) error
}
