// Package grid provides the tabular representation of a search equation.
//
// A Grid is an ordered list of columns. Each column is one AND-group and each
// cell in a column is one OR-term. Columns are padded with absent cells so that
// every column has the same length; the row index of a cell carries no meaning
// beyond giving the table a rectangular shape.
//
// This package contains value types only. It imports nothing internal, so both
// conversion directions (internal/equation) and the file adapters
// (internal/tablefile) can share it.
package grid
