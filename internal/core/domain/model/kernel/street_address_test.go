package kernel_test

import (
	"testing"

	"ordering/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStreetAddress(t *testing.T) {
	t.Run("creates address with generated id", func(t *testing.T) {
		addr, err := kernel.NewStreetAddress("1 Main St", "10001", "New York")

		require.NoError(t, err)
		require.NoError(t, addr.Validate())
		require.NoError(t, addr.ID().Validate())
		assert.Equal(t, "1 Main St", addr.Street())
		assert.Equal(t, "10001", addr.PostalCode())
		assert.Equal(t, "New York", addr.City())
	})

	t.Run("requires all components", func(t *testing.T) {
		cases := []struct {
			name   string
			street string
			postal string
			city   string
		}{
			{"missing street", "", "10001", "New York"},
			{"missing postal code", "1 Main St", "", "New York"},
			{"missing city", "1 Main St", "10001", ""},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := kernel.NewStreetAddress(tc.street, tc.postal, tc.city)
				require.Error(t, err)
			})
		}
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var addr kernel.StreetAddress
		require.ErrorIs(t, addr.Validate(), kernel.ErrStreetAddressIsNotConstructed)
	})
}

func TestStreetAddress_IsEqual(t *testing.T) {
	t.Run("compares components, not generated id", func(t *testing.T) {
		first, err := kernel.NewStreetAddress("1 Main St", "10001", "New York")
		require.NoError(t, err)
		second, err := kernel.NewStreetAddress("1 Main St", "10001", "New York")
		require.NoError(t, err)

		assert.False(t, first.ID().IsEqual(second.ID()))
		assert.True(t, first.IsEqual(second))
	})
}

func TestRestoreStreetAddress(t *testing.T) {
	t.Run("keeps the original id", func(t *testing.T) {
		id := kernel.NewUUID()

		addr, err := kernel.RestoreStreetAddress(id, "1 Main St", "10001", "New York")

		require.NoError(t, err)
		assert.True(t, addr.ID().IsEqual(id))
	})

	t.Run("rejects zero id", func(t *testing.T) {
		var id kernel.UUID
		_, err := kernel.RestoreStreetAddress(id, "1 Main St", "10001", "New York")
		require.Error(t, err)
	})
}
