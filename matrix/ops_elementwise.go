// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Element-wise kernels (Add, Sub, Hadamard, Scale) and the AllClose comparison.
//   - Keep all loops deterministic (fixed i→j order) and allocation-minimal:
//     one output Dense per call, no temporaries proportional to size.
//
// AI-Hints:
//   - Operands may be windows or transposes (MatrixView); no copy is made for them.

package matrix

import (
	"math"

	"github.com/pkg/errors"
)

// zipWith builds out[i,j] = f(a[i,j], b[i,j]) for same-shape operands.
func zipWith(tag string, a, b Reader, f func(x, y float64) float64) (*Dense, error) {
	if err := ValidateSameShape(a, b); err != nil {
		return nil, matrixErrorf(tag, err)
	}
	ra, err := readerOf(tag, a)
	if err != nil {
		return nil, err
	}
	rb, err := readerOf(tag, b)
	if err != nil {
		return nil, err
	}

	r, c := a.Rows(), a.Cols()
	out := newDense(r, c, defaultOptions())
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			*out.g.At(i, j) = f(ra(i, j), rb(i, j))
		}
	}

	return out, nil
}

// Add returns a + b.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: Time O(r*c), Space O(r*c).
func Add(a, b Reader) (*Dense, error) {
	return zipWith(opAdd, a, b, func(x, y float64) float64 { return x + y })
}

// Sub returns a - b.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: Time O(r*c), Space O(r*c).
func Sub(a, b Reader) (*Dense, error) {
	return zipWith(opSub, a, b, func(x, y float64) float64 { return x - y })
}

// Hadamard returns the element-wise product a ⊙ b.
// Errors: ErrNilMatrix, ErrDimensionMismatch.
func Hadamard(a, b Reader) (*Dense, error) {
	return zipWith(opHadamard, a, b, func(x, y float64) float64 { return x * y })
}

// Scale returns alpha·m.
// Errors: ErrNilMatrix, ErrNaNInf when alpha is not finite.
// Complexity: Time O(r*c), Space O(r*c).
func Scale(m Reader, alpha float64) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	if isNonFinite(alpha) {
		return nil, matrixErrorf(opScale, errors.Wrapf(ErrNaNInf, "alpha=%g", alpha))
	}
	rm, err := readerOf(opScale, m)
	if err != nil {
		return nil, err
	}

	r, c := m.Rows(), m.Cols()
	out := newDense(r, c, defaultOptions())
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			*out.g.At(i, j) = alpha * rm(i, j)
		}
	}

	return out, nil
}

// AllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// Returns (true,nil) if all elements satisfy the relation; (false,nil) otherwise.
// NaN != anything; +Inf equals +Inf; -Inf equals -Inf. Deterministic.
//
// Policy:
//   - a and b must be non-nil and have identical shapes.
//   - rtol, atol are treated as |rtol|, |atol| (negative values are normalized).
//
// Complexity: Time O(r*c), Space O(1).
func AllClose(a, b Reader, rtol, atol float64) (bool, error) {
	if err := ValidateSameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	ra, err := readerOf(opAllClose, a)
	if err != nil {
		return false, err
	}
	rb, err := readerOf(opAllClose, b)
	if err != nil {
		return false, err
	}

	rtol, atol = math.Abs(rtol), math.Abs(atol)
	r, c := a.Rows(), a.Cols()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if !isClose(ra(i, j), rb(i, j), rtol, atol) {
				return false, nil
			}
		}
	}

	return true, nil
}

// isClose compares one pair under the AllClose relation.
func isClose(x, y, rtol, atol float64) bool {
	switch {
	case math.IsNaN(x) || math.IsNaN(y):
		return false
	case math.IsInf(x, 0) || math.IsInf(y, 0):
		return x == y
	}

	return math.Abs(x-y) <= atol+rtol*math.Abs(y)
}

// Equal reports whether a and b match within the tolerance the Dense a was built with
// (WithEpsilon, used as atol with rtol = 0).
func (m *Dense) Equal(b Reader) (bool, error) {
	return AllClose(m, b, 0, m.eps)
}
