package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFavoriteSet(t *testing.T) {
	set := NewFavoriteSet("a", "b")

	assert.Equal(t, 2, set.Len())
	assert.True(t, set.Contains("a"))
	assert.False(t, set.Contains("c"))

	// Adding an existing member is a no-op.
	set.Add("a")
	assert.Equal(t, 2, set.Len())

	set.Add("c")
	assert.True(t, set.Contains("c"))

	set.Remove("b")
	assert.False(t, set.Contains("b"))

	// Removing an absent member is a no-op.
	set.Remove("b")
	assert.Equal(t, 2, set.Len())

	assert.ElementsMatch(t, []string{"a", "c"}, set.IDs())
}

func TestFavoriteKey(t *testing.T) {
	// Toggles address a single map entry, so concurrent toggles on different
	// targets cannot clobber each other.
	assert.Equal(t, "favorites.64f1c0ffee", favoriteKey("64f1c0ffee"))
}
