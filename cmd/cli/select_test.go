package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIndex(t *testing.T) {
	t.Run("valid selection", func(t *testing.T) {
		index, err := parseIndex("2", 3)
		require.NoError(t, err)
		assert.Equal(t, 2, index)
	})

	t.Run("empty defaults to 1", func(t *testing.T) {
		index, err := parseIndex("", 3)
		require.NoError(t, err)
		assert.Equal(t, 1, index)
	})

	t.Run("whitespace is trimmed", func(t *testing.T) {
		index, err := parseIndex("  3 ", 3)
		require.NoError(t, err)
		assert.Equal(t, 3, index)
	})

	t.Run("non-numeric input", func(t *testing.T) {
		_, err := parseIndex("abc", 3)
		assert.Error(t, err)
	})

	t.Run("out of range", func(t *testing.T) {
		_, err := parseIndex("0", 3)
		assert.Error(t, err)
		_, err = parseIndex("4", 3)
		assert.Error(t, err)
	})
}

func TestParseIndexList(t *testing.T) {
	t.Run("comma separated", func(t *testing.T) {
		indices, err := parseIndexList("1,3", 3)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 3}, indices)
	})

	t.Run("empty defaults to 1", func(t *testing.T) {
		indices, err := parseIndexList("", 3)
		require.NoError(t, err)
		assert.Equal(t, []int{1}, indices)
	})

	t.Run("spaces around entries", func(t *testing.T) {
		indices, err := parseIndexList(" 2 , 1 ", 3)
		require.NoError(t, err)
		assert.Equal(t, []int{2, 1}, indices)
	})

	t.Run("out-of-range entries are dropped", func(t *testing.T) {
		indices, err := parseIndexList("0,2,9", 3)
		require.NoError(t, err)
		assert.Equal(t, []int{2}, indices)
	})

	t.Run("non-numeric entry", func(t *testing.T) {
		_, err := parseIndexList("1,x", 3)
		assert.Error(t, err)
	})
}
