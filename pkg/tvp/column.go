package tvp

import (
	"strings"

	"github.com/NxtCent1/tvpstage/pkg/errors"
	"github.com/NxtCent1/tvpstage/pkg/sqltype"
)

// ColumnDescriptor describes one column of a staged table: its name, SQL
// type category, and the width metadata the wire encoder sizes buffers from.
// Precision and scale are widened as rows are staged and never shrink.
type ColumnDescriptor struct {
	Name      string           `json:"name"`
	Type      sqltype.Category `json:"type"`
	Precision int              `json:"precision"`
	Scale     int              `json:"scale"`
}

// ColumnRegistry is an ordered, append-only collection of column
// descriptors. A column's identity is its position: indices are dense,
// 0-based, assigned at insertion, and reset only by Clear. Names must be
// pairwise distinct under case-insensitive comparison.
type ColumnRegistry struct {
	cols []ColumnDescriptor
}

// Add appends a descriptor and returns its index. It fails with a
// duplicate_column error if the name case-insensitively matches an existing
// column; the registry is unchanged on failure.
func (r *ColumnRegistry) Add(desc ColumnDescriptor) (int, error) {
	for _, existing := range r.cols {
		if strings.EqualFold(existing.Name, desc.Name) {
			return 0, errors.Newf(errors.ErrorTypeDuplicateColumn,
				"column %q already declared", desc.Name).
				WithDetail("column", desc.Name)
		}
	}
	r.cols = append(r.cols, desc)
	return len(r.cols) - 1, nil
}

// Get returns the descriptor at index.
func (r *ColumnRegistry) Get(index int) (ColumnDescriptor, bool) {
	if index < 0 || index >= len(r.cols) {
		return ColumnDescriptor{}, false
	}
	return r.cols[index], true
}

// Len returns the number of declared columns.
func (r *ColumnRegistry) Len() int {
	return len(r.cols)
}

// Widen grows the stored precision and scale of the column at index to the
// componentwise max of the current and supplied values. Widths never shrink,
// so calling it with values already covered is a no-op.
func (r *ColumnRegistry) Widen(index, precision, scale int) {
	if index < 0 || index >= len(r.cols) {
		return
	}
	col := &r.cols[index]
	if precision > col.Precision {
		col.Precision = precision
	}
	if scale > col.Scale {
		col.Scale = scale
	}
}

// Descriptors returns a copy of the descriptors in column order.
func (r *ColumnRegistry) Descriptors() []ColumnDescriptor {
	out := make([]ColumnDescriptor, len(r.cols))
	copy(out, r.cols)
	return out
}

// Clear removes every column and resets the index counter to 0.
func (r *ColumnRegistry) Clear() {
	r.cols = r.cols[:0]
}
