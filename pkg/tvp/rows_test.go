package tvp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowStoreAppendAssignsDenseIndices(t *testing.T) {
	var s RowStore

	assert.Equal(t, 0, s.Append([]interface{}{int32(1)}))
	assert.Equal(t, 1, s.Append([]interface{}{int32(2)}))
	assert.Equal(t, 2, s.Len())

	row, ok := s.Row(1)
	require.True(t, ok)
	assert.Equal(t, []interface{}{int32(2)}, row)
}

func TestRowStoreClearResetsIndex(t *testing.T) {
	var s RowStore
	s.Append([]interface{}{nil})
	s.Append([]interface{}{nil})

	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0, s.Append([]interface{}{nil}))
}

func TestIteratorWalksInInsertionOrder(t *testing.T) {
	var s RowStore
	for i := 0; i < 5; i++ {
		s.Append([]interface{}{i})
	}

	it := s.Iterator()
	var seen []int
	for it.Next() {
		assert.Equal(t, len(seen), it.Index())
		seen = append(seen, it.Row()[0].(int))
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4}, seen)
}

func TestIteratorIsRestartable(t *testing.T) {
	var s RowStore
	s.Append([]interface{}{"a"})
	s.Append([]interface{}{"b"})

	it := s.Iterator()
	for it.Next() {
	}

	it.Reset()
	require.True(t, it.Next())
	assert.Equal(t, "a", it.Row()[0])
}

func TestIteratorIsALiveView(t *testing.T) {
	var s RowStore
	s.Append([]interface{}{"a"})

	it := s.Iterator()
	require.True(t, it.Next())

	// A row appended mid-iteration is visible to the same iterator.
	s.Append([]interface{}{"b"})
	require.True(t, it.Next())
	assert.Equal(t, "b", it.Row()[0])
	assert.False(t, it.Next())
}
