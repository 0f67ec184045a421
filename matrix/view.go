// SPDX-License-Identifier: MIT

// Package matrix - MatrixView: no-copy windows and transposes over a Dense.
//
// A MatrixView shares the Buffer of the Dense it came from. It carries only a
// Grid (strided rank-2 mdspan view) and the numeric policy of its base, so
// creating one is O(1) and writes through it are visible in the base.

package matrix

import "github.com/pkg/errors"

// MatrixView is a strided window over a Dense's storage.
// It intentionally does NOT implement Matrix: Clone on a view would be
// ambiguous (copy the window or the base?). Use Materialize instead.
type MatrixView struct {
	g   Grid   // window over the base buffer
	pol policy // inherited numeric guard
}

func viewErrorf(method string, row, col int, err error) error {
	return errors.Wrapf(err, "MatrixView.%s(%d,%d)", method, row, col)
}

// Rows returns the number of rows in the window.
func (v *MatrixView) Rows() int { return v.g.Extent(0) }

// Cols returns the number of columns in the window.
func (v *MatrixView) Cols() int { return v.g.Extent(1) }

// Strides returns the (row, col) element strides in the base storage.
func (v *MatrixView) Strides() []int { return v.g.Strides() }

// IsContiguous reports whether the window covers a gap-free run of storage.
func (v *MatrixView) IsContiguous() bool { return v.g.IsContiguous() }

// Grid exposes the underlying mdspan view.
func (v *MatrixView) Grid() Grid { return v.g }

// At returns the element at (row,col) relative to the window, or ErrOutOfRange.
func (v *MatrixView) At(row, col int) (float64, error) {
	if !inBounds(row, col, v.Rows(), v.Cols()) {
		return 0, viewErrorf(ctxAt, row, col, ErrOutOfRange)
	}

	return *v.g.At(row, col), nil
}

// Set writes into the base storage at (row,col) relative to the window.
// Errors: ErrOutOfRange, ErrNaNInf (inherited policy).
func (v *MatrixView) Set(row, col int, val float64) error {
	if !inBounds(row, col, v.Rows(), v.Cols()) {
		return viewErrorf(ctxSet, row, col, ErrOutOfRange)
	}
	if v.pol.reject(val) {
		return viewErrorf(ctxSet, row, col, ErrNaNInf)
	}
	*v.g.At(row, col) = val

	return nil
}

// View narrows the window further; offsets are relative to this view.
func (v *MatrixView) View(r0, c0, rows, cols int) (*MatrixView, error) {
	if r0 < 0 || c0 < 0 || rows < 0 || cols < 0 || r0+rows > v.Rows() || c0+cols > v.Cols() {
		return nil, errors.Wrapf(ErrBadShape, "MatrixView.%s(%d,%d,%d,%d)", ctxView, r0, c0, rows, cols)
	}
	g, err := window(v.g, r0, c0, rows, cols)
	if err != nil {
		return nil, errors.Wrapf(err, "MatrixView.%s", ctxView)
	}

	return &MatrixView{g: g, pol: v.pol}, nil
}

// T returns the transpose of the window, still sharing storage.
func (v *MatrixView) T() *MatrixView { return &MatrixView{g: transposed(v.g), pol: v.pol} }

// Do visits the window in row-major order; see Dense.Do.
func (v *MatrixView) Do(f func(i, j int, val float64) bool) { doGrid(v.g, f) }

// Apply rewrites the window in place; see Dense.Apply.
func (v *MatrixView) Apply(f func(i, j int, val float64) float64) error {
	return applyGrid(v.g, v.pol, "MatrixView", f)
}

// Materialize copies the window into a new Dense.
// The result inherits the view's numeric policy; opts are applied on top
// (e.g. WithColumnMajor to pick the storage order of the copy).
// Zero-area windows yield a 0×k or k×0 Dense.
// Complexity: Time O(rows*cols), Space O(rows*cols).
func (v *MatrixView) Materialize(opts ...Option) *Dense {
	o := defaultOptions()
	o.validateNaNInf, o.allowInf = v.pol.validateNaNInf, v.pol.allowInf
	for _, set := range opts {
		set(&o)
	}
	res := newDense(v.Rows(), v.Cols(), o)
	v.g.Each(func(idx []int, ref *float64) bool {
		*res.g.At(idx[0], idx[1]) = *ref
		return true
	})

	return res
}

// String renders the window like Dense.String.
func (v *MatrixView) String() string { return formatGrid(v.g) }
