// Package matrix holds the per-user binary activity matrix the scoring
// engine consumes, plus the collaborators that produce and filter it:
// CSV codec, raw event-log ingestion, and cohort filtering.
package matrix

import "fmt"

// Matrix is a rectangular binary activity matrix: one row per user, one
// column per calendar day in chronological order. Row order is user
// identity (0-based id). Constructing a Matrix directly bypasses
// validation; use New for checked construction.
type Matrix [][]int8

// New validates rows and returns them as a Matrix. Rows must all share
// the same length and contain only 0/1 cells.
func New(rows [][]int8) (Matrix, error) {
	for i, row := range rows {
		if i > 0 && len(row) != len(rows[0]) {
			return nil, fmt.Errorf("row %d: %w: got %d columns, want %d", i, ErrRagged, len(row), len(rows[0]))
		}
		if err := ValidateRow(row); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
	}
	return Matrix(rows), nil
}

// ValidateRow checks that every cell of one user's row is binary.
func ValidateRow(row []int8) error {
	for j, cell := range row {
		if cell != 0 && cell != 1 {
			return fmt.Errorf("column %d: %w: %d", j, ErrBadCell, cell)
		}
	}
	return nil
}

// Users returns the number of rows.
func (m Matrix) Users() int {
	return len(m)
}

// Days returns the number of columns, 0 for an empty matrix.
func (m Matrix) Days() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// Row returns one user's sequence, or nil when id is out of range.
func (m Matrix) Row(id int) []int8 {
	if id < 0 || id >= len(m) {
		return nil
	}
	return m[id]
}

// First returns a view of a row's first k days. k is clamped to the row
// length; k <= 0 yields an empty view.
func First(row []int8, k int) []int8 {
	if k < 0 {
		k = 0
	}
	if k < len(row) {
		return row[:k]
	}
	return row
}

// Last returns a view of a row's last k days. k is clamped to the row
// length; k <= 0 yields an empty view.
func Last(row []int8, k int) []int8 {
	if k < 0 {
		k = 0
	}
	if k < len(row) {
		return row[len(row)-k:]
	}
	return row
}

// FirstK returns a view restricted to the first k columns. k is clamped
// to the matrix width; k <= 0 yields empty rows.
func (m Matrix) FirstK(k int) Matrix {
	out := make(Matrix, len(m))
	for i, row := range m {
		out[i] = First(row, k)
	}
	return out
}

// LastK returns a view restricted to the last k columns. k is clamped
// to the matrix width; k <= 0 yields empty rows.
func (m Matrix) LastK(k int) Matrix {
	out := make(Matrix, len(m))
	for i, row := range m {
		out[i] = Last(row, k)
	}
	return out
}
