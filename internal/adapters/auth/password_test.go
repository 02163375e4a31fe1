package auth

import (
	"strings"
	"testing"

	"bookingcalendar/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_Hash_and_Compare(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	password := "admin123"

	hash, err := h.Hash(password)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$2a$"), "hash should be a bcrypt string")
	assert.NotContains(t, hash, password)

	require.NoError(t, h.Compare(hash, password))
}

func TestBcryptHasher_Hash_is_salted(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	a, err := h.Hash("user123")
	require.NoError(t, err)
	b, err := h.Hash("user123")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestBcryptHasher_Compare_wrong_password(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	hash, err := h.Hash("correct")
	require.NoError(t, err)

	err = h.Compare(hash, "wrong")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestBcryptHasher_Compare_malformed_hash(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	err := h.Compare("not-a-hash", "anything")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestNewBcryptHasher_out_of_range_cost_uses_default(t *testing.T) {
	h := NewBcryptHasher(0).(*bcryptHasher)
	assert.Equal(t, bcrypt.DefaultCost, h.cost)
}
