package dataset

import (
	"github.com/plotwire/plotwire/pkg/errors"
)

// Column is a single column of values. Cells are float64, string, bool, or
// nil for missing values.
type Column []any

// Floats converts the column to float64 values.
// Returns false if any non-nil cell is not numeric. Nil cells become NaN
// markers via [NaN].
func (c Column) Floats() ([]float64, bool) {
	out := make([]float64, len(c))
	for i, v := range c {
		switch x := v.(type) {
		case float64:
			out[i] = x
		case int:
			out[i] = float64(x)
		case nil:
			out[i] = NaN
		default:
			return nil, false
		}
	}
	return out, true
}

// IsNumeric reports whether every non-nil cell in the column is numeric.
func (c Column) IsNumeric() bool {
	_, ok := c.Floats()
	return ok
}

// Strings converts the column to display strings.
func (c Column) Strings() []string {
	out := make([]string, len(c))
	for i, v := range c {
		out[i] = formatCell(v)
	}
	return out
}

// Table is read-only access to tabular data.
// Implementations must return columns of identical length.
type Table interface {
	// Names returns the column names in declaration order.
	Names() []string

	// Len returns the number of rows.
	Len() int

	// Column returns the named column.
	Column(name string) (Column, error)
}

// MemTable is an in-memory Table backed by a column map.
type MemTable struct {
	names []string
	cols  map[string]Column
	rows  int
}

// FromColumns creates a MemTable from named columns.
// Column order follows names. All columns must have the same length.
func FromColumns(names []string, cols map[string]Column) (*MemTable, error) {
	t := &MemTable{cols: make(map[string]Column, len(names))}
	for i, name := range names {
		if err := errors.ValidateColumnName(name); err != nil {
			return nil, err
		}
		col, ok := cols[name]
		if !ok {
			return nil, errors.New(errors.ErrCodeColumnNotFound, "column %q missing from data", name)
		}
		if i == 0 {
			t.rows = len(col)
		} else if len(col) != t.rows {
			return nil, errors.New(errors.ErrCodeInvalidDataset,
				"column %q has %d rows, want %d", name, len(col), t.rows)
		}
		t.names = append(t.names, name)
		t.cols[name] = col
	}
	return t, nil
}

// Names returns the column names in declaration order.
func (t *MemTable) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Len returns the number of rows.
func (t *MemTable) Len() int { return t.rows }

// Column returns the named column.
func (t *MemTable) Column(name string) (Column, error) {
	col, ok := t.cols[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeColumnNotFound, "no column %q", name)
	}
	return col, nil
}

// Ensure MemTable implements Table.
var _ Table = (*MemTable)(nil)

// Shared wraps a Table with a selection group key so that multiple widgets
// built from the same table can link their selections.
type Shared struct {
	Table

	// Group identifies the selection group. Widgets sharing a group key
	// receive each other's selection events.
	Group string
}

// Share wraps a table in a selection group.
func Share(t Table, group string) *Shared {
	return &Shared{Table: t, Group: group}
}
