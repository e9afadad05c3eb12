package seed_test

import (
	"testing"

	"github.com/noelzubin/cmdref/store/seed"
	"github.com/stretchr/testify/assert"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	s := seed.Default()
	assert.Equal(t, seed.Categories, s.Categories())
	for _, c := range seed.Categories {
		assert.NotEmpty(t, s.Topics(c), c)
	}

	// each call builds an independent store
	other := seed.Default()
	assert.NoError(t, other.DeleteCategory(seed.Categories[0]))
	assert.Len(t, s.Categories(), len(seed.Categories))
}
