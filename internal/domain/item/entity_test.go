//go:build unit

package item_test

import (
	"testing"
	"time"

	"rentshare/internal/domain/item"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ownerID := uuid.New()
	available := true

	t.Run("basic success case", func(t *testing.T) {
		actual, err := item.NewItem(now, ownerID, "Ladder", "3m aluminium ladder", &available)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, ownerID, actual.OwnerID())
		assert.True(t, actual.Available())
		assert.True(t, actual.IsOwnedBy(ownerID))
		assert.False(t, actual.IsOwnedBy(uuid.New()))
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := item.NewItem(now, ownerID, "  ", "desc", &available)
		assert.ErrorIs(t, err, item.ErrIncompleteItem)
		assert.Contains(t, err.Error(), "name is missing")
	})

	t.Run("all problems reported at once", func(t *testing.T) {
		_, err := item.NewItem(now, ownerID, "", "", nil)
		require.ErrorIs(t, err, item.ErrIncompleteItem)
		assert.Contains(t, err.Error(), "name is missing")
		assert.Contains(t, err.Error(), "description is missing")
		assert.Contains(t, err.Error(), "availability is missing")
	})
}

func TestItemApply(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	itm := item.Reconstruct(uuid.New(), uuid.New(), "Ladder", "3m ladder", true, now, now)

	t.Run("partial update touches only supplied fields", func(t *testing.T) {
		newName := "Tall Ladder"
		itm.Apply(&newName, nil, nil)
		assert.Equal(t, "Tall Ladder", itm.Name())
		assert.Equal(t, "3m ladder", itm.Description())
		assert.True(t, itm.Available())
	})

	t.Run("availability can be toggled off", func(t *testing.T) {
		unavailable := false
		itm.Apply(nil, nil, &unavailable)
		assert.False(t, itm.Available())
	})
}
