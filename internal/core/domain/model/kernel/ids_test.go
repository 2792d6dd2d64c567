package kernel_test

import (
	"testing"

	"ordering/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypedIDs_Construction(t *testing.T) {
	t.Run("new ids are valid and unique", func(t *testing.T) {
		first := kernel.NewOrderID()
		second := kernel.NewOrderID()

		require.NoError(t, first.Validate())
		require.NoError(t, second.Validate())
		assert.False(t, first.IsEqual(second))
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var id kernel.TrackingID
		require.Error(t, id.Validate())
	})

	t.Run("from string round trip", func(t *testing.T) {
		id := kernel.NewProductID()

		restored, err := kernel.ProductIDFromString(id.String())

		require.NoError(t, err)
		assert.True(t, id.IsEqual(restored))
	})

	t.Run("rejects malformed strings", func(t *testing.T) {
		_, err := kernel.CustomerIDFromString("not-a-uuid")
		require.Error(t, err)
	})
}

func TestTypedIDs_Equality(t *testing.T) {
	t.Run("same underlying uuid compares equal", func(t *testing.T) {
		u := kernel.NewUUID()

		first := kernel.OrderIDFromUUID(u)
		second, err := kernel.OrderIDFromString(u.String())
		require.NoError(t, err)

		assert.True(t, first.IsEqual(second))
		assert.True(t, first.UUID().IsEqual(u))
	})

	t.Run("usable as map keys", func(t *testing.T) {
		tracking := kernel.NewTrackingID()
		seen := map[kernel.TrackingID]int{tracking: 1}

		restored, err := kernel.TrackingIDFromString(tracking.String())
		require.NoError(t, err)

		assert.Equal(t, 1, seen[restored])
	})
}
