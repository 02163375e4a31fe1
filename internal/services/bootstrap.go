package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bookingcalendar/internal/domain"
)

type bootstrapService struct {
	userRepo       domain.UserRepository
	artistRepo     domain.ArtistRepository
	formatRepo     domain.FormatRepository
	hasher         domain.PasswordHasher
	seed           *SeedData
	contextTimeout time.Duration
}

// NewBootstrapService prepares a fresh store from seed. A nil seed makes both procedures no-ops.
func NewBootstrapService(
	userRepo domain.UserRepository,
	artistRepo domain.ArtistRepository,
	formatRepo domain.FormatRepository,
	hasher domain.PasswordHasher,
	seed *SeedData,
	timeout time.Duration,
) domain.BootstrapService {
	if seed == nil {
		seed = &SeedData{}
	}
	return &bootstrapService{
		userRepo:       userRepo,
		artistRepo:     artistRepo,
		formatRepo:     formatRepo,
		hasher:         hasher,
		seed:           seed,
		contextTimeout: timeout,
	}
}

// EnsureDefaultUsers creates each seed account whose email is not registered yet. Existing
// accounts keep their password.
func (s *bootstrapService) EnsureDefaultUsers(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	for _, su := range s.seed.Users {
		email := normalizeEmail(su.Email)
		if _, found, err := s.userRepo.GetByEmail(ctx, email); err != nil {
			return fmt.Errorf("failed to look up user %s: %w", email, err)
		} else if found {
			continue
		}
		hash, err := s.hasher.Hash(su.Password)
		if err != nil {
			return err
		}
		var name *string
		if su.Name != "" {
			name = &su.Name
		}
		if _, err := s.userRepo.CreateIfAbsent(ctx, domain.NewUser(email, hash, name)); err != nil {
			return fmt.Errorf("failed to create user %s: %w", email, err)
		}
	}
	return nil
}

// Seed inserts the demo artists and formats only when no artist exists yet.
func (s *bootstrapService) Seed(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	existing, err := s.artistRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list artists: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}
	for _, sa := range s.seed.Artists {
		var contact *string
		if sa.Contact != "" {
			contact = &sa.Contact
		}
		if err := s.artistRepo.Create(ctx, domain.NewArtist(sa.Name, sa.RoleTags, contact)); err != nil {
			return fmt.Errorf("failed to seed artist %q: %w", sa.Name, err)
		}
	}
	for _, sf := range s.seed.Formats {
		if err := s.formatRepo.Create(ctx, domain.NewFormat(sf.Name, sf.Color)); err != nil {
			return fmt.Errorf("failed to seed format %q: %w", sf.Name, err)
		}
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}
