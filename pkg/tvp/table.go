// Package tvp implements the in-memory staging table for SQL Server
// table-valued parameters: an ordered set of typed columns plus an
// append-only set of rows, with per-cell type coercion and widen-only
// width metadata for the wire encoder that eventually consumes it.
package tvp

import (
	stderrors "errors"
	"sync"

	"github.com/NxtCent1/tvpstage/pkg/errors"
	"github.com/NxtCent1/tvpstage/pkg/sqltype"
)

// Table is the staging facade: one column registry, one row store, one
// coercion engine. It is created empty, grows through AddColumn/AddRow, and
// is reset in place by Clear — the same instance stays usable afterwards.
//
// Each public method holds the table's lock for its whole duration, so an
// AddRow is atomic with respect to concurrent column additions and clears.
// There is no cross-call isolation: an iterator is a live view, and callers
// interleaving iteration with mutation must coordinate externally.
type Table struct {
	mu      sync.Mutex
	name    string
	columns ColumnRegistry
	rows    RowStore
	coercer Coercer
}

// Option configures a Table at construction time.
type Option func(*Table)

// WithName sets the server-side type name the TVP will be sent as (the name
// used in CREATE TYPE). It is carried for the encoder, not validated here.
func WithName(name string) Option {
	return func(t *Table) { t.name = name }
}

// WithExtendedTemporalTypes enables the timezone-qualified temporal
// categories for this table.
func WithExtendedTemporalTypes() Option {
	return func(t *Table) { t.coercer.ExtendedTemporal = true }
}

// New creates an empty staging table.
func New(opts ...Option) *Table {
	t := &Table{}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Name returns the table's server-side type name, if one was set.
func (t *Table) Name() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.name
}

// AddColumn declares a column with zero initial precision and scale and
// returns its index. It fails with a duplicate_column error if name
// case-insensitively matches an existing column.
func (t *Table) AddColumn(name string, typ sqltype.Category) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.columns.Add(ColumnDescriptor{Name: name, Type: typ})
}

// AddColumnDescriptor declares a column from a fully formed descriptor,
// preserving the caller's initial precision and scale. The same name
// uniqueness contract as AddColumn applies.
func (t *Table) AddColumnDescriptor(desc ColumnDescriptor) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.columns.Add(desc)
}

// AddRow coerces values against the declared columns in order and, if every
// cell succeeds, appends the row and returns its index. Rows shorter than
// the column count are padded with NULLs; rows longer fail with
// too_many_values before anything is coerced.
//
// The row is atomic: if any cell fails, no row is appended and no column
// metadata is widened, including for cells that had already coerced.
func (t *Table) AddRow(values []interface{}) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	columnCount := t.columns.Len()
	if len(values) > columnCount {
		return 0, errors.Newf(errors.ErrorTypeTooManyValues,
			"row has %d values but table has %d columns", len(values), columnCount).
			WithDetail("values", len(values)).
			WithDetail("columns", columnCount)
	}

	row := make([]interface{}, columnCount)
	widenings := make([]Widening, columnCount)
	for i := 0; i < columnCount; i++ {
		desc, _ := t.columns.Get(i)

		var raw interface{}
		if i < len(values) {
			raw = values[i]
		}

		cell, widening, err := t.coercer.Coerce(desc, raw)
		if err != nil {
			var se *errors.Error
			if stderrors.As(err, &se) {
				se.WithDetail("column", desc.Name).WithDetail("position", i)
			}
			return 0, err
		}
		row[i] = cell
		widenings[i] = widening
	}

	// Widen only after the whole row coerced, so a failed row never leaves
	// partial metadata behind.
	for i, w := range widenings {
		t.columns.Widen(i, w.Precision, w.Scale)
	}
	return t.rows.Append(row), nil
}

// ColumnMetadata returns a copy of the column descriptors in column order,
// reflecting all widening applied so far.
func (t *Table) ColumnMetadata() []ColumnDescriptor {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.columns.Descriptors()
}

// Iterator returns a restartable iterator over rows in insertion order. It
// is a live view: rows added after the iterator is obtained are visible to
// it, and Clear invalidates its contents.
func (t *Table) Iterator() *RowIterator {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rows.Iterator()
}

// ColumnCount returns the number of declared columns.
func (t *Table) ColumnCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.columns.Len()
}

// RowCount returns the number of staged rows.
func (t *Table) RowCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rows.Len()
}

// Clear discards all columns and rows and resets both index counters to 0.
// The table itself remains valid and reusable.
func (t *Table) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.columns.Clear()
	t.rows.Clear()
}
