package dataset

import (
	"github.com/plotwire/plotwire/pkg/errors"
)

// Expr is a deferred column reference. It names a column of whatever table
// the figure is bound to when the expression is evaluated, not a snapshot of
// the column at construction time.
type Expr struct {
	column string
}

// Col creates an expression referring to the named column.
func Col(name string) Expr {
	return Expr{column: name}
}

// ColumnName returns the referenced column name.
func (e Expr) ColumnName() string { return e.column }

// String returns the expression in display form.
func (e Expr) String() string { return "~" + e.column }

// Eval resolves the expression against a table.
func (e Expr) Eval(t Table) (Column, error) {
	if err := errors.ValidateColumnName(e.column); err != nil {
		return nil, err
	}
	return t.Column(e.column)
}
