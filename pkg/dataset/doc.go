// Package dataset provides the tabular data abstraction that figures bind to.
//
// Figures never copy data at construction time. Instead they hold a reference
// to a [Table] and resolve column expressions against it when the figure is
// built for rendering. This keeps construction cheap and lets the same figure
// definition follow a table through later transformations.
//
// # Core Types
//
//   - [Table]: read-only column access to tabular data
//   - [MemTable]: in-memory implementation, loadable from CSV or JSON records
//   - [Shared]: a table wrapper carrying a cross-widget selection group key
//   - [Expr]: a deferred column reference, resolved at build time
//
// # Usage
//
//	tbl, _ := dataset.ReadCSV(f)
//	x := dataset.Col("sepal_length")
//	col, _ := x.Eval(tbl)
//
// # Concurrency
//
// Tables are safe for concurrent reads but not concurrent writes.
package dataset
