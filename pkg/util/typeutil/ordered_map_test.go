package typeutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderedMapKeepsInsertionOrder(t *testing.T) {
	m := NewOrderedMap[string, int]()
	m.Set("c", 1)
	m.Set("a", 2)
	m.Set("b", 3)
	m.Set("a", 20)

	assert.Equal(t, []string{"c", "a", "b"}, m.Keys())
	v, ok := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 20, v)
	assert.Equal(t, 3, m.Len())
}

func TestOrderedMapDelete(t *testing.T) {
	m := NewOrderedMap[string, int](4)
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("c", 3)

	assert.True(t, m.Delete("b"))
	assert.False(t, m.Delete("b"))
	m.Set("b", 4)
	assert.Equal(t, []string{"a", "c", "b"}, m.Keys())
}

func TestOrderedMapRangeStops(t *testing.T) {
	m := NewOrderedMap[int, string]()
	for i := 0; i < 5; i++ {
		m.Set(i, "v")
	}
	var seen []int
	m.Range(func(k int, _ string) bool {
		seen = append(seen, k)
		return k < 2
	})
	assert.Equal(t, []int{0, 1, 2}, seen)
}

func TestOrderedMapRangeEntries(t *testing.T) {
	m := NewOrderedMap[string, int]()
	m.Set("x", 1)
	m.Set("y", 2)
	m.Set("z", 3)

	var keys []any
	require.NoError(t, m.RangeEntries(true, func(k, _ any) error {
		keys = append(keys, k)
		return nil
	}))
	assert.Equal(t, []any{"x", "y", "z"}, keys)

	pairs := map[any]any{}
	require.NoError(t, m.RangeEntries(false, func(k, v any) error {
		pairs[k] = v
		return nil
	}))
	assert.Equal(t, map[any]any{"x": 1, "y": 2, "z": 3}, pairs)

	var nilMap *OrderedMap[string, int]
	assert.NoError(t, nilMap.RangeEntries(true, func(_, _ any) error { return assert.AnError }))
	assert.Equal(t, 0, nilMap.Len())
}
