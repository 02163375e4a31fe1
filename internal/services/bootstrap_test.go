package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"bookingcalendar/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSeed_builtin(t *testing.T) {
	seed, err := LoadSeed("")
	require.NoError(t, err)

	require.Len(t, seed.Users, 2)
	assert.Equal(t, "admin@example.com", seed.Users[0].Email)
	assert.Equal(t, "user@example.com", seed.Users[1].Email)
	require.Len(t, seed.Artists, 3)
	assert.Equal(t, []string{"band"}, seed.Artists[0].RoleTags)
	require.Len(t, seed.Formats, 3)
	assert.Equal(t, "#ff7f0e", seed.Formats[0].Color)
}

func TestLoadSeed_file(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte("artists:\n  - name: Solo\n"), 0o600))

	seed, err := LoadSeed(path)
	require.NoError(t, err)
	assert.Empty(t, seed.Users)
	require.Len(t, seed.Artists, 1)
	assert.Equal(t, "Solo", seed.Artists[0].Name)

	_, err = LoadSeed(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestParseSeed_rejects_unknown_keys(t *testing.T) {
	_, err := ParseSeed([]byte("artist:\n  - name: Typo\n"))
	require.Error(t, err)
}

func TestBootstrapService_EnsureDefaultUsers_is_idempotent(t *testing.T) {
	ctx := context.Background()
	seed, err := LoadSeed("")
	require.NoError(t, err)
	users := newFakeUserRepo()
	hasher := &fakeHasher{}
	svc := NewBootstrapService(users, newFakeArtistRepo(), newFakeFormatRepo(), hasher, seed, testTimeout)

	require.NoError(t, svc.EnsureDefaultUsers(ctx))
	require.NoError(t, svc.EnsureDefaultUsers(ctx))

	assert.Len(t, users.byEmail, 2)
	assert.Equal(t, 2, hasher.calls, "existing users are not re-hashed")
	admin := users.byEmail["admin@example.com"]
	require.NotNil(t, admin)
	assert.Equal(t, "hashed:admin123", admin.PasswordHash)
	require.NotNil(t, admin.Name)
	assert.Equal(t, "Admin", *admin.Name)
}

func TestBootstrapService_EnsureDefaultUsers_store_error(t *testing.T) {
	users := newFakeUserRepo()
	users.err = errStore
	seed := &SeedData{Users: []SeedUser{{Email: "a@example.com", Password: "x"}}}
	svc := NewBootstrapService(users, nil, nil, &fakeHasher{}, seed, testTimeout)
	require.ErrorIs(t, svc.EnsureDefaultUsers(context.Background()), errStore)
}

func TestBootstrapService_Seed(t *testing.T) {
	ctx := context.Background()
	seed, err := LoadSeed("")
	require.NoError(t, err)

	t.Run("fresh store gets demo artists and formats", func(t *testing.T) {
		artists, formats := newFakeArtistRepo(), newFakeFormatRepo()
		svc := NewBootstrapService(newFakeUserRepo(), artists, formats, &fakeHasher{}, seed, testTimeout)

		require.NoError(t, svc.Seed(ctx))
		require.NoError(t, svc.Seed(ctx))

		assert.Len(t, artists.items, 3)
		assert.Len(t, formats.items, 3)
		assert.Equal(t, "swingers@agency.it", *artists.items[0].Contact)
	})

	t.Run("existing artist blocks seeding", func(t *testing.T) {
		artists, formats := newFakeArtistRepo(), newFakeFormatRepo()
		require.NoError(t, artists.Create(ctx, domain.NewArtist("Already here", nil, nil)))
		svc := NewBootstrapService(newFakeUserRepo(), artists, formats, &fakeHasher{}, seed, testTimeout)

		require.NoError(t, svc.Seed(ctx))
		assert.Len(t, artists.items, 1)
		assert.Empty(t, formats.items)
	})

	t.Run("nil seed is a no-op", func(t *testing.T) {
		artists := newFakeArtistRepo()
		svc := NewBootstrapService(newFakeUserRepo(), artists, newFakeFormatRepo(), &fakeHasher{}, nil, testTimeout)
		require.NoError(t, svc.Seed(ctx))
		require.NoError(t, svc.EnsureDefaultUsers(ctx))
		assert.Empty(t, artists.items)
	})
}
