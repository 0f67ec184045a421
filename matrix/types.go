// SPDX-License-Identifier: MIT

// Package matrix: the interfaces shared by Dense, MatrixView and the kernels.
package matrix

// Reader is the read side every kernel accepts: both *Dense and *MatrixView
// satisfy it, so operations work on windows and transposes without copies.
type Reader interface {
	// Rows returns the number of rows.
	Rows() int

	// Cols returns the number of columns.
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i<0, i>=Rows(), j<0 or j>=Cols().
	// Complexity: O(1).
	At(i, j int) (float64, error)
}

// Matrix represents a two-dimensional mutable array of float64 values that
// owns its storage.
//
// Complexity notes: all methods are expected O(1) except Clone (O(r*c)).
type Matrix interface {
	Reader

	// Set assigns the value v at position (i, j).
	// Returns ErrOutOfRange if indices are invalid, ErrNaNInf per policy.
	// Complexity: O(1).
	Set(i, j int, v float64) error

	// Clone returns a deep copy of the matrix.
	// The returned Matrix is independent of the original.
	// Complexity: O(rows*cols).
	Clone() Matrix
}

var _ Reader = (*MatrixView)(nil)
