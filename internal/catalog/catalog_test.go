package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_Known(t *testing.T) {
	for _, id := range []string{"fire-cookie", "ice-cookie", "lightning-cookie"} {
		a, ok := Lookup(id)
		require.True(t, ok, id)
		assert.Equal(t, id, a.ID)
		assert.Positive(t, a.Health)
	}
}

func TestLookup_Miss(t *testing.T) {
	a, ok := Lookup("cake-cookie")
	assert.False(t, ok)
	assert.Nil(t, a)
}

func TestLookup_DefaultExists(t *testing.T) {
	_, ok := Lookup(DefaultID)
	assert.True(t, ok)
}

func TestAll_ReturnsCopy(t *testing.T) {
	all := All()
	require.NotEmpty(t, all)
	all[0].Health = -1

	a, ok := Lookup(all[0].ID)
	require.True(t, ok)
	assert.NotEqual(t, -1, a.Health)
}

func TestAll_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for _, a := range All() {
		assert.False(t, seen[a.ID], "duplicate id %s", a.ID)
		seen[a.ID] = true
	}
}
