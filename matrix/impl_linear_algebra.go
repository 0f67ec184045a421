// SPDX-License-Identifier: MIT
// Package matrix provides operations on any Reader (Dense or MatrixView):
// matrix multiplication, transpose and matrix-vector product. All functions
// perform strict fail-fast validation and return wrapped sentinels on
// dimension mismatches.
//
// Purpose:
//   - Keep one read path for kernels: operands backed by an mdspan Grid are
//     read through it directly (windows and transposes included); any other
//     Reader is first copied into a scratch Dense.
//   - Define operation tags for determinism and error reporting.

package matrix

import "github.com/pkg/errors"

// ZeroSum is the initial value of accumulations.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opAdd       = "Add"
	opSub       = "Sub"
	opMul       = "Mul"
	opTranspose = "Transpose"
	opScale     = "Scale"
	opHadamard  = "Hadamard"
	opMatVec    = "MatVec"
	opAllClose  = "AllClose"
)

// matrixErrorf wraps err with an operation tag. errors.Is still matches the sentinel.
// Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return errors.Wrap(err, tag)
}

// gridOf returns the Grid behind m when m is one of ours.
func gridOf(m Reader) (Grid, bool) {
	switch x := m.(type) {
	case *Dense:
		return x.g, true
	case *MatrixView:
		return x.g, true
	}

	return Grid{}, false
}

// readerOf returns an unchecked element reader for m.
// Implementation:
//   - Stage 1: Grid-backed operands read through their view (no copy).
//   - Stage 2: foreign Readers are copied once via At, propagating errors.
//
// Complexity: O(1) for Grid-backed operands, O(r*c) otherwise.
func readerOf(tag string, m Reader) (func(i, j int) float64, error) {
	g, ok := gridOf(m)
	if !ok {
		r, c := m.Rows(), m.Cols()
		tmp := newDense(r, c, defaultOptions())
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				v, err := m.At(i, j)
				if err != nil {
					return nil, matrixErrorf(tag, errors.Wrapf(err, "At(%d,%d)", i, j))
				}
				*tmp.g.At(i, j) = v
			}
		}
		g = tmp.g
	}

	return func(i, j int) float64 { return *g.At(i, j) }, nil
}

// Mul computes the matrix product a×b into a fresh Dense.
//
// Implementation:
//   - Stage 1: ValidateMulCompatible(a, b).
//   - Stage 2: i→k→j loop; rows of a are swept once and zero a[i,k] are skipped.
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (inner mismatch).
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
func Mul(a, b Reader) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	ra, err := readerOf(opMul, a)
	if err != nil {
		return nil, err
	}
	rb, err := readerOf(opMul, b)
	if err != nil {
		return nil, err
	}

	aRows, aCols, bCols := a.Rows(), a.Cols(), b.Cols()
	res := newDense(aRows, bCols, defaultOptions())
	var av float64
	for i := 0; i < aRows; i++ {
		for k := 0; k < aCols; k++ {
			av = ra(i, k)
			if av == 0 {
				continue // skip zero for performance
			}
			for j := 0; j < bCols; j++ {
				*res.g.At(i, j) += av * rb(k, j)
			}
		}
	}

	return res, nil
}

// Transpose returns a new Dense with rows and columns swapped (mᵀ).
// The input is never mutated. For a no-copy transpose use Dense.T().
// Complexity: Time O(r*c), Space O(r*c).
func Transpose(m Reader) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	rm, err := readerOf(opTranspose, m)
	if err != nil {
		return nil, err
	}

	r, c := m.Rows(), m.Cols()
	res := newDense(c, r, defaultOptions())
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			*res.g.At(j, i) = rm(i, j)
		}
	}

	return res, nil
}

// MatVec computes y = m·x.
// Errors: ErrNilMatrix (nil matrix or vector), ErrDimensionMismatch (len(x) != Cols).
// Complexity: Time O(r*c), Space O(r).
func MatVec(m Reader, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	rm, err := readerOf(opMatVec, m)
	if err != nil {
		return nil, err
	}

	r, c := m.Rows(), m.Cols()
	y := make([]float64, r)
	for i := 0; i < r; i++ {
		sum := ZeroSum
		for j := 0; j < c; j++ {
			sum += rm(i, j) * x[j]
		}
		y[i] = sum
	}

	return y, nil
}
