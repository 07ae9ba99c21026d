package tvp

// RowStore is an append-only ordered collection of fully coerced rows. Row
// indices are dense, 0-based, assigned in insertion order, and reset only by
// Clear. Rows are immutable once appended; there is no update or delete.
type RowStore struct {
	rows [][]interface{}
}

// Append stores row at the next sequential index and returns that index.
func (s *RowStore) Append(row []interface{}) int {
	s.rows = append(s.rows, row)
	return len(s.rows) - 1
}

// Len returns the number of stored rows.
func (s *RowStore) Len() int {
	return len(s.rows)
}

// Row returns the row at index.
func (s *RowStore) Row(index int) ([]interface{}, bool) {
	if index < 0 || index >= len(s.rows) {
		return nil, false
	}
	return s.rows[index], true
}

// Clear empties the store and resets the next index to 0.
func (s *RowStore) Clear() {
	s.rows = s.rows[:0]
}

// Iterator returns a restartable iterator over the rows in insertion order.
// The iterator is a live view over the store, not a snapshot.
func (s *RowStore) Iterator() *RowIterator {
	return &RowIterator{store: s, index: -1}
}

// RowIterator walks a RowStore in insertion order.
//
//	it := table.Iterator()
//	for it.Next() {
//	    encode(it.Index(), it.Row())
//	}
type RowIterator struct {
	store *RowStore
	index int
}

// Next advances to the next row, returning false once the rows are
// exhausted.
func (it *RowIterator) Next() bool {
	it.index++
	return it.index < it.store.Len()
}

// Index returns the current row's index.
func (it *RowIterator) Index() int {
	return it.index
}

// Row returns the current row. Cells are positionally aligned with the
// table's column order; callers must not mutate them.
func (it *RowIterator) Row() []interface{} {
	row, _ := it.store.Row(it.index)
	return row
}

// Reset rewinds the iterator so the rows can be walked again.
func (it *RowIterator) Reset() {
	it.index = -1
}
