package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bookingcalendar/internal/domain"
)

type catalogService struct {
	artistRepo      domain.ArtistRepository
	formatRepo      domain.FormatRepository
	promoterRepo    domain.PromoterRepository
	tourManagerRepo domain.TourManagerRepository
	serviceRepo     domain.ServiceRepository
	contextTimeout  time.Duration
}

// Catalog groups the reference-entity repositories a CatalogService is built from.
type Catalog struct {
	Artists      domain.ArtistRepository
	Formats      domain.FormatRepository
	Promoters    domain.PromoterRepository
	TourManagers domain.TourManagerRepository
	Services     domain.ServiceRepository
}

func NewCatalogService(repos Catalog, timeout time.Duration) domain.CatalogService {
	return &catalogService{
		artistRepo:      repos.Artists,
		formatRepo:      repos.Formats,
		promoterRepo:    repos.Promoters,
		tourManagerRepo: repos.TourManagers,
		serviceRepo:     repos.Services,
		contextTimeout:  timeout,
	}
}

func requireName(name *string) error {
	*name = strings.TrimSpace(*name)
	if *name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	return nil
}

// cleanTags trims tags and drops empty ones, keeping order.
func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func (s *catalogService) ListArtists(ctx context.Context) ([]*domain.Artist, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	artists, err := s.artistRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list artists: %w", err)
	}
	return artists, nil
}

func (s *catalogService) CreateArtist(ctx context.Context, a *domain.Artist) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	if err := requireName(&a.Name); err != nil {
		return err
	}
	if !a.RoleTags.IsRaw() {
		a.RoleTags = domain.NewEmbeddedList(cleanTags(a.RoleTags.Items)...)
	}
	if err := s.artistRepo.Create(ctx, a); err != nil {
		return fmt.Errorf("failed to create artist: %w", err)
	}
	return nil
}

func (s *catalogService) ListFormats(ctx context.Context) ([]*domain.Format, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	formats, err := s.formatRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list formats: %w", err)
	}
	return formats, nil
}

func (s *catalogService) CreateFormat(ctx context.Context, f *domain.Format) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	if err := requireName(&f.Name); err != nil {
		return err
	}
	if f.Color = strings.TrimSpace(f.Color); f.Color == "" {
		f.Color = domain.DefaultFormatColor
	}
	if err := s.formatRepo.Create(ctx, f); err != nil {
		return fmt.Errorf("failed to create format: %w", err)
	}
	return nil
}

func (s *catalogService) ListPromoters(ctx context.Context) ([]*domain.Promoter, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	promoters, err := s.promoterRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list promoters: %w", err)
	}
	return promoters, nil
}

func (s *catalogService) CreatePromoter(ctx context.Context, p *domain.Promoter) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	if err := requireName(&p.Name); err != nil {
		return err
	}
	if err := s.promoterRepo.Create(ctx, p); err != nil {
		return fmt.Errorf("failed to create promoter: %w", err)
	}
	return nil
}

func (s *catalogService) ListTourManagers(ctx context.Context) ([]*domain.TourManager, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	managers, err := s.tourManagerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tour managers: %w", err)
	}
	return managers, nil
}

func (s *catalogService) CreateTourManager(ctx context.Context, m *domain.TourManager) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	if err := requireName(&m.Name); err != nil {
		return err
	}
	if err := s.tourManagerRepo.Create(ctx, m); err != nil {
		return fmt.Errorf("failed to create tour manager: %w", err)
	}
	return nil
}

func (s *catalogService) ListServices(ctx context.Context) ([]*domain.Service, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	services, err := s.serviceRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

func (s *catalogService) CreateService(ctx context.Context, svc *domain.Service) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	if err := requireName(&svc.Name); err != nil {
		return err
	}
	if err := s.serviceRepo.Create(ctx, svc); err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}
