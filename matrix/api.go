// SPDX-License-Identifier: MIT
// Package matrix — public API facades.
//
// Purpose:
//   - Provide thin, well-documented entry points for common tasks across the package.
//   - Avoid any logic duplication — each facade delegates to the canonical implementation.
//
// AI-Hints:
//   - Use NewIdentity/NewZeros to build matrices with explicit shape and neutral elements.
//   - Kernels accept Reader, so windows (Dense.View) and transposes (Dense.T) can be
//     passed directly.

package matrix

// ---------- Constructors & Utilities ----------

// NewZeros returns a new zero-initialized *Dense of size rows×cols.
// It is a thin alias of NewDense with an intention-revealing name.
//
// Note: Returns (*Dense, error) to surface ErrInvalidDimensions.
func NewZeros(rows, cols int, opts ...Option) (*Dense, error) {
	return NewDense(rows, cols, opts...)
}

// NewIdentity returns I_n (n×n identity; ones on the diagonal, zeros elsewhere).
// Complexity: O(n^2) zeroing (constructor) + O(n) writes on the diagonal.
func NewIdentity(n int, opts ...Option) (*Dense, error) {
	I, err := NewDense(n, n, opts...)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		*I.g.At(i, i) = 1.0 // in range after shape validation
	}

	return I, nil
}

// CloneMatrix returns m.Clone(); nil for a nil matrix.
func CloneMatrix(m Matrix) Matrix {
	if ValidateNotNil(m) != nil {
		return nil
	}

	return m.Clone()
}

// ---------- Aliases (discoverability) ----------

// Sum is an alias of Add.
func Sum(a, b Reader) (*Dense, error) { return Add(a, b) }

// Diff is an alias of Sub.
func Diff(a, b Reader) (*Dense, error) { return Sub(a, b) }

// Product is an alias of Mul.
func Product(a, b Reader) (*Dense, error) { return Mul(a, b) }

// ScaleBy is an alias of Scale.
func ScaleBy(m Reader, alpha float64) (*Dense, error) { return Scale(m, alpha) }

// MatVecMul is an alias of MatVec.
func MatVecMul(m Reader, x []float64) ([]float64, error) { return MatVec(m, x) }
