package partner

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates active customer with valid fields", func(t *testing.T) {
		customer, err := NewCustomer(tenantID, "Nimal Perera", "0771234567")
		require.NoError(t, err)
		assert.Equal(t, tenantID, customer.TenantID)
		assert.Equal(t, "Nimal Perera", customer.Name)
		assert.Equal(t, "0771234567", customer.Phone)
		assert.Equal(t, CustomerStatusActive, customer.Status)
		assert.True(t, customer.IsActive())
		assert.Nil(t, customer.Phone2)
		assert.Nil(t, customer.Email)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewCustomer(tenantID, "", "0771234567")
		assert.Error(t, err)
	})

	t.Run("rejects non-canonical phone", func(t *testing.T) {
		for _, phone := range []string{"", "771234567", "+94771234567", "07712345678", "07712345a7"} {
			_, err := NewCustomer(tenantID, "Nimal", phone)
			assert.Error(t, err, "phone %q should be rejected", phone)
		}
	})
}

func TestCustomer_SetSecondaryPhone(t *testing.T) {
	customer, err := NewCustomer(uuid.New(), "Nimal", "0771234567")
	require.NoError(t, err)

	t.Run("accepts a distinct canonical phone", func(t *testing.T) {
		require.NoError(t, customer.SetSecondaryPhone("0719876543"))
		require.NotNil(t, customer.Phone2)
		assert.Equal(t, "0719876543", *customer.Phone2)
	})

	t.Run("rejects same phone as primary", func(t *testing.T) {
		err := customer.SetSecondaryPhone("0771234567")
		assert.Error(t, err)
	})

	t.Run("empty string clears it", func(t *testing.T) {
		require.NoError(t, customer.SetSecondaryPhone(""))
		assert.Nil(t, customer.Phone2)
	})
}

func TestCustomer_SetEmail(t *testing.T) {
	customer, err := NewCustomer(uuid.New(), "Nimal", "0771234567")
	require.NoError(t, err)

	t.Run("lowercases valid email", func(t *testing.T) {
		require.NoError(t, customer.SetEmail("Nimal.Perera@Example.COM"))
		require.NotNil(t, customer.Email)
		assert.Equal(t, "nimal.perera@example.com", *customer.Email)
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		assert.Error(t, customer.SetEmail("not-an-email"))
	})

	t.Run("empty string clears it", func(t *testing.T) {
		require.NoError(t, customer.SetEmail(""))
		assert.Nil(t, customer.Email)
	})
}

func TestCustomer_MatchesPhone(t *testing.T) {
	customer, err := NewCustomer(uuid.New(), "Nimal", "0771234567")
	require.NoError(t, err)
	require.NoError(t, customer.SetSecondaryPhone("0719876543"))

	assert.True(t, customer.MatchesPhone("0771234567"))
	assert.True(t, customer.MatchesPhone("0719876543"))
	assert.False(t, customer.MatchesPhone("0700000000"))
	assert.False(t, customer.MatchesPhone(""))
}

func TestCustomer_StatusTransitions(t *testing.T) {
	customer, err := NewCustomer(uuid.New(), "Nimal", "0771234567")
	require.NoError(t, err)

	assert.Error(t, customer.Activate(), "already active")
	require.NoError(t, customer.Deactivate())
	assert.False(t, customer.IsActive())
	assert.Error(t, customer.Deactivate(), "already inactive")
	require.NoError(t, customer.Activate())
	assert.True(t, customer.IsActive())
}
