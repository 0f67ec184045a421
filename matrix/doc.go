// Package matrix offers a float64 Dense matrix built on an mdspan view.
//
// The matrix package provides:
//
//   - Dense: an owning r×c matrix whose storage is an mdspan.Buffer, addressed
//     through a rank-2 strided view (Grid). Storage order is row-major by
//     default or column-major with WithColumnMajor.
//   - MatrixView: O(1) windows (Dense.View) and transposes (Dense.T) that
//     share the base storage. Materialize copies one into a new Dense.
//   - Kernels over any Reader: Add, Sub, Hadamard, Scale, Mul, Transpose,
//     MatVec and AllClose.
//
// Public methods never panic on user input; they return sentinel errors
// (ErrOutOfRange, ErrBadShape, ErrNaNInf, ...) wrapped with call-site context
// and matchable with errors.Is. The numeric policy (NaN/Inf rejection) is set
// at construction and inherited by every view.
//
// See the examples in this package for usage patterns.
package matrix
