package sequence

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIterator(t *testing.T) {
	t.Run("From And Collect", func(t *testing.T) {
		require.Equal(t, []int{1, 2, 3}, From([]int{1, 2, 3}).Collect())
		require.Empty(t, From([]int{}).Collect())
	})

	t.Run("FromMap Yields Values", func(t *testing.T) {
		got := FromMap(map[string]int{"a": 1, "b": 2}).Collect()
		sort.Ints(got)
		require.Equal(t, []int{1, 2}, got)
	})

	t.Run("Filter", func(t *testing.T) {
		even := From([]int{1, 2, 3, 4, 5, 6}).
			Filter(func(v int) bool { return v%2 == 0 }).
			Collect()
		require.Equal(t, []int{2, 4, 6}, even)
	})

	t.Run("Map", func(t *testing.T) {
		doubled := Map(From([]int{1, 2, 3}), func(v int) int { return v * 2 }).Collect()
		require.Equal(t, []int{2, 4, 6}, doubled)

		strs := Map(From([]int{1, 2}), func(v int) string {
			return string(rune('a' + v - 1))
		}).Collect()
		require.Equal(t, []string{"a", "b"}, strs)
	})

	t.Run("Count", func(t *testing.T) {
		require.Equal(t, 3, From([]int{1, 2, 3}).Count())
		require.Equal(t, 1, From([]int{1, 2, 3}).Filter(func(v int) bool { return v == 2 }).Count())
	})

	t.Run("Pull Early Stop", func(t *testing.T) {
		next, stop := From([]int{1, 2, 3}).Pull()
		v, ok := next()
		require.True(t, ok)
		require.Equal(t, 1, v)
		stop()
		_, ok = next()
		require.False(t, ok)
	})
}
