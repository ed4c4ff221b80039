package figure

import (
	"github.com/plotwire/plotwire/pkg/dataset"
)

// MappingKind discriminates the Mapping variant.
type MappingKind int

const (
	// MappingConstant is a fixed value applied to every row.
	MappingConstant MappingKind = iota

	// MappingColumn is a deferred column expression, resolved against the
	// source dataset at build time.
	MappingColumn
)

// Mapping is a tagged variant: either a constant value or a column
// expression tied to the dataset it was declared against.
type Mapping struct {
	Kind     MappingKind
	Value    any          // constant value, Kind == MappingConstant
	Expr     dataset.Expr // column expression, Kind == MappingColumn
	SourceID string       // dataset the expression binds to, Kind == MappingColumn
}

// Constant creates a constant mapping.
func Constant(v any) Mapping {
	return Mapping{Kind: MappingConstant, Value: v}
}

// ColumnExpr creates a deferred column mapping bound to a dataset.
func ColumnExpr(e dataset.Expr, sourceID string) Mapping {
	return Mapping{Kind: MappingColumn, Expr: e, SourceID: sourceID}
}

// IsColumn reports whether the mapping is a deferred column expression.
func (m Mapping) IsColumn() bool { return m.Kind == MappingColumn }

// Resolve evaluates the mapping against a table. Constants broadcast to a
// column of n rows; column expressions evaluate against the table.
func (m Mapping) Resolve(t dataset.Table, n int) (dataset.Column, error) {
	if m.Kind == MappingColumn {
		return m.Expr.Eval(t)
	}
	col := make(dataset.Column, n)
	for i := range col {
		col[i] = m.Value
	}
	return col, nil
}

// asMapping lifts a raw attribute value into a Mapping. Expression values
// become deferred column mappings bound to sourceID; everything else is a
// constant.
func asMapping(v any, sourceID string) Mapping {
	if e, ok := v.(dataset.Expr); ok {
		return ColumnExpr(e, sourceID)
	}
	return Constant(v)
}
