package search_test

import (
	"testing"

	"github.com/noelzubin/cmdref/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resultSet(titles ...string) search.ResultSet {
	var rs search.ResultSet
	for _, title := range titles {
		rs.Results = append(rs.Results, search.Result{Category: "A", Title: title})
	}
	return rs
}

func TestNavigator(t *testing.T) {
	t.Parallel()

	t.Run("starts before the first result", func(t *testing.T) {
		t.Parallel()
		n := search.NewNavigator(resultSet("a", "b", "c"))
		assert.Equal(t, -1, n.Index())
		_, ok := n.Current()
		assert.False(t, ok)

		pos, total := n.Position()
		assert.Equal(t, 1, pos)
		assert.Equal(t, 3, total)
		assert.Equal(t, "Result 1 of 3", n.Counter())
	})

	t.Run("previous from the start lands on the last result", func(t *testing.T) {
		t.Parallel()
		n := search.NewNavigator(resultSet("a", "b", "c"))
		n.Previous()
		assert.Equal(t, 2, n.Index())

		n.Next()
		assert.Equal(t, 0, n.Index())
	})

	t.Run("next wraps around", func(t *testing.T) {
		t.Parallel()
		n := search.NewNavigator(resultSet("a", "b", "c"))
		var seen []int
		for i := 0; i < 5; i++ {
			n.Next()
			seen = append(seen, n.Index())
		}
		assert.Equal(t, []int{0, 1, 2, 0, 1}, seen)

		r, ok := n.Current()
		require.True(t, ok)
		assert.Equal(t, "b", r.Title)
		assert.Equal(t, "Result 2 of 3", n.Counter())
	})

	t.Run("previous wraps around", func(t *testing.T) {
		t.Parallel()
		n := search.NewNavigator(resultSet("a", "b", "c"))
		n.Next()
		n.Previous()
		assert.Equal(t, 2, n.Index())
		n.Previous()
		assert.Equal(t, 1, n.Index())
	})

	t.Run("empty result set ignores navigation", func(t *testing.T) {
		t.Parallel()
		n := search.NewNavigator(search.ResultSet{})
		n.Next()
		n.Previous()
		assert.Equal(t, -1, n.Index())
		assert.Equal(t, 0, n.Len())
		assert.Empty(t, n.Counter())
		pos, total := n.Position()
		assert.Zero(t, pos)
		assert.Zero(t, total)
	})

	t.Run("single result", func(t *testing.T) {
		t.Parallel()
		n := search.NewNavigator(resultSet("a"))
		n.Previous()
		assert.Equal(t, 0, n.Index())
		n.Next()
		assert.Equal(t, 0, n.Index())
	})

	t.Run("captures results at creation", func(t *testing.T) {
		t.Parallel()
		rs := resultSet("a", "b")
		n := search.NewNavigator(rs)
		rs.Results[0].Title = "changed"
		n.Next()
		r, _ := n.Current()
		assert.Equal(t, "a", r.Title)
	})
}
