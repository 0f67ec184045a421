// SPDX-License-Identifier: MIT

// Package matrix - Dense storage & safe accessors.
//
// Purpose:
//   - Own a float64 buffer (mdspan.Buffer) and address it through a single
//     strided mdspan view (Grid), so row-major and column-major storage,
//     windows and transposes all share one access path.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Keep algorithmic determinism (fixed row-major visiting order).
//   - Support no-copy views (MatrixView) and copy-based submatrix extraction (Induced).
//   - Enforce a numeric policy (optional rejection of NaN/Inf) from a single source of truth.
//
// AI-Hints:
//   - Use View(r0,c0,h,w) to avoid copies for windows; mutations reflect in the base matrix.
//   - Use T() for a no-copy transpose; Materialize it when a Dense is needed.
//   - Use Induced(rows, cols) to materialize a submatrix (copy) for independent lifetime/shape.
//   - DefaultValidateNaNInf is on; insert only finite values unless you explicitly disable it.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); Clone: O(r*c); View/T: O(1); Induced: O(r'*c').

package matrix

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/katalvlaran/mdview/mdspan"
)

// ---------- error context tags ----------

const (
	ctxAt     = "At"      // method tag used in error wrappers
	ctxSet    = "Set"     // method tag used in error wrappers
	ctxApply  = "Apply"   // method tag used in error wrappers
	ctxView   = "View"    // ctor tag for Dense.View
	ctxInduce = "Induced" // ctor/tag for Dense.Induced
	ctxFrom   = "NewDenseFrom"
)

// ---------- Formatting literals  ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// Grid is the mdspan view type behind every Dense and MatrixView: a rank-2
// strided view over a shared Buffer.
type Grid = mdspan.View[float64, mdspan.Shared[float64], *float64, mdspan.StrideMapping, mdspan.SharedOffset[float64]]

// denseErrorf wraps a sentinel with a uniform Dense context and callsite indices.
// The sentinel stays matchable with errors.Is.
func denseErrorf(method string, row, col int, err error) error {
	return errors.Wrapf(err, "Dense.%s(%d,%d)", method, row, col)
}

// Dense is a concrete owning matrix.
//   - r,c hold dimensions (rows, cols).
//   - buf owns r*c elements; g addresses them in the configured storage order.
//   - pol is the numeric guard applied by Set/Apply (inherited by views).
type Dense struct {
	r, c     int                     // row and column counts (>=0; zero only via internal constructors)
	buf      *mdspan.Buffer[float64] // owning storage (len == r*c)
	g        Grid                    // rank-2 view over buf
	pol      policy                  // numeric guard
	eps      float64                 // tolerance for AllClose
	colMajor bool                    // storage order of buf
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ Matrix       = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense creates an r×c zero matrix.
// MAIN DESCRIPTION:
//   - Public constructor for Dense with strict shape validation and option-driven policy.
//
// Implementation:
//   - Stage 1: validate rows>0 && cols>0; else ErrInvalidDimensions.
//   - Stage 2: resolve options (numeric policy, storage order).
//   - Stage 3: allocate a zero-filled Buffer and build the strided view.
//
// Behavior highlights:
//   - No panics on user errors; returns sentinel errors.
//   - Public constructor forbids empty dimensions to avoid accidental 0×0 matrices.
//
// Errors:
//   - ErrInvalidDimensions (shape contract violation).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int, opts ...Option) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "NewDense(%d,%d)", rows, cols)
	}

	return newDense(rows, cols, gatherOptions(opts...)), nil
}

// NewDenseFrom creates an r×c matrix initialized from data given in row-major
// order, whatever the configured storage order.
// Errors:
//   - ErrInvalidDimensions, ErrBadShape (len(data) != r*c), ErrNaNInf (policy).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDenseFrom(rows, cols int, data []float64, opts ...Option) (*Dense, error) {
	m, err := NewDense(rows, cols, opts...)
	if err != nil {
		return nil, err
	}
	if len(data) != rows*cols {
		return nil, errors.Wrapf(ErrBadShape, "%s: %d values for %dx%d", ctxFrom, len(data), rows, cols)
	}
	var k int
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := data[k]
			if m.pol.reject(v) {
				return nil, denseErrorf(ctxFrom, i, j, ErrNaNInf)
			}
			*m.g.At(i, j) = v
			k++
		}
	}

	return m, nil
}

// newDense allocates without validating the shape (zero sizes allowed).
func newDense(rows, cols int, o Options) *Dense {
	buf := mdspan.NewBuffer[float64](rows * cols)
	e := mdspan.DynamicExtents(rows, cols)
	var m mdspan.StrideMapping
	if o.columnMajor {
		m = mdspan.ToStride(mdspan.NewLeftMapping(e))
	} else {
		m = mdspan.ToStride(mdspan.NewRightMapping(e))
	}

	return &Dense{
		r:        rows,
		c:        cols,
		buf:      buf,
		g:        mdspan.NewShared(buf, m),
		pol:      policy{validateNaNInf: o.validateNaNInf, allowInf: o.allowInf},
		eps:      o.eps,
		colMajor: o.columnMajor,
	}
}

// options reconstructs the Options a matrix was built with.
func (m *Dense) options() Options {
	return Options{eps: m.eps, validateNaNInf: m.pol.validateNaNInf, allowInf: m.pol.allowInf, columnMajor: m.colMajor}
}

// Rows returns the row count. No side effects.
// Complexity: O(1).
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count. No side effects.
// Complexity: O(1).
func (m *Dense) Cols() int { return m.c }

// Shape packs Rows() and Cols() into a single call for convenience.
// Complexity: O(1).
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

// IsColumnMajor reports the storage order of the underlying buffer.
func (m *Dense) IsColumnMajor() bool { return m.colMajor }

// Strides returns the (row, col) element strides of the storage.
func (m *Dense) Strides() []int { return m.g.Strides() }

// Grid exposes the underlying mdspan view. Writes through it bypass the numeric policy.
func (m *Dense) Grid() Grid { return m.g }

// RawData returns the storage in storage order (shared, not copied).
func (m *Dense) RawData() []float64 { return m.g.Span() }

// inBounds reports whether (row,col) addresses an element.
func inBounds(row, col, rows, cols int) bool {
	return row >= 0 && row < rows && col >= 0 && col < cols
}

// At returns the element at (row,col) or ErrOutOfRange.
// Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	if !inBounds(row, col, m.r, m.c) {
		return 0, denseErrorf(ctxAt, row, col, ErrOutOfRange)
	}

	return *m.g.At(row, col), nil
}

// Set writes v at (row,col).
// Errors:
//   - ErrOutOfRange for invalid indices, ErrNaNInf when the policy rejects v.
//
// Complexity: O(1).
func (m *Dense) Set(row, col int, v float64) error {
	if !inBounds(row, col, m.r, m.c) {
		return denseErrorf(ctxSet, row, col, ErrOutOfRange)
	}
	if m.pol.reject(v) {
		return denseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	*m.g.At(row, col) = v

	return nil
}

// Clone returns a deep copy with the same options and storage order.
// Complexity: Time O(r*c), Space O(r*c).
func (m *Dense) Clone() Matrix {
	cp := newDense(m.r, m.c, m.options())
	copy(cp.buf.Data(), m.buf.Data()) // identical layout: copy storage as-is

	return cp
}

// String renders rows as lines with comma-separated values (%g).
// Intended for debugging; not for hot paths.
func (m *Dense) String() string { return formatGrid(m.g) }

// formatGrid renders any rank-2 grid row by row.
func formatGrid(g Grid) string {
	var b strings.Builder
	rows, cols := g.Extent(0), g.Extent(1)
	for i := 0; i < rows; i++ {
		b.WriteString(_fmtRowOpen)
		for j := 0; j < cols; j++ {
			b.WriteString(fmt.Sprintf("%g", *g.At(i, j)))
			if j+1 < cols {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}

// View creates a no-copy window [r0:r0+rows, c0:c0+cols) over the same storage.
// MAIN DESCRIPTION:
//   - Lightweight submatrix referencing the base buffer (shared storage).
//
// Implementation:
//   - Stage 1: validate window bounds; allow zero-area.
//   - Stage 2: slice the grid with two ranges (mdspan.SubspanChecked).
//
// Behavior highlights:
//   - Writes via view reflect in base; policy is inherited.
//
// Errors:
//   - ErrBadShape when the window is invalid.
//
// Complexity:
//   - Time O(1), Space O(1).
func (m *Dense) View(r0, c0, rows, cols int) (*MatrixView, error) {
	if r0 < 0 || c0 < 0 || rows < 0 || cols < 0 || r0+rows > m.r || c0+cols > m.c {
		return nil, errors.Wrapf(ErrBadShape, "Dense.%s(%d,%d,%d,%d)", ctxView, r0, c0, rows, cols)
	}
	g, err := window(m.g, r0, c0, rows, cols)
	if err != nil {
		return nil, errors.Wrapf(err, "Dense.%s", ctxView)
	}

	return &MatrixView{g: g, pol: m.pol}, nil
}

// T returns the transpose as a no-copy view.
// Complexity: O(1).
func (m *Dense) T() *MatrixView {
	return &MatrixView{g: transposed(m.g), pol: m.pol}
}

// Induced materializes a copy submatrix using explicit index sets.
// MAIN DESCRIPTION:
//   - Copy rows/cols at the given index lists (duplicates allowed).
//
// Implementation:
//   - Stage 1: validate every index.
//   - Stage 2: allocate the result with the base options.
//   - Stage 3: nested loops i→j copying through both grids.
//
// Errors:
//   - ErrOutOfRange (index outside bounds).
//
// Complexity:
//   - Time O(rp*cp), Space O(rp*cp).
//
// Notes:
//   - Zero-area returns a legal Dense with zero-length storage.
func (m *Dense) Induced(rowsIdx, colsIdx []int) (*Dense, error) {
	for _, ri := range rowsIdx {
		if ri < 0 || ri >= m.r {
			return nil, errors.Wrapf(ErrOutOfRange, "Dense.%s: row index %d", ctxInduce, ri)
		}
	}
	for _, cj := range colsIdx {
		if cj < 0 || cj >= m.c {
			return nil, errors.Wrapf(ErrOutOfRange, "Dense.%s: col index %d", ctxInduce, cj)
		}
	}

	res := newDense(len(rowsIdx), len(colsIdx), m.options())
	for i, ri := range rowsIdx {
		for j, cj := range colsIdx {
			*res.g.At(i, j) = *m.g.At(ri, cj)
		}
	}

	return res, nil
}

// Do visits each element (i,j) in row-major order and calls f(i,j,v).
// Read-only visitor; stops early when f returns false.
// Complexity: Time O(r*c), Space O(1).
func (m *Dense) Do(f func(i, j int, v float64) bool) { doGrid(m.g, f) }

// Apply replaces each element with f(i,j,v) in-place, row-major.
// Behavior highlights:
//   - Respects the numeric policy (rejects NaN/±Inf when enabled).
//   - Early error aborts; elements written before the error remain updated.
//
// Returns:
//   - error: ErrNaNInf when the transformer produced a rejected value.
//
// Complexity:
//   - Time O(r*c), Space O(1).
func (m *Dense) Apply(f func(i, j int, v float64) float64) error {
	return applyGrid(m.g, m.pol, "Dense", f)
}

// ---------- grid helpers shared by Dense and MatrixView ----------

// window slices g to [r0,r0+rows) × [c0,c0+cols).
func window(g Grid, r0, c0, rows, cols int) (Grid, error) {
	return mdspan.SubspanChecked[float64, mdspan.Shared[float64], *float64, mdspan.StrideMapping,
		mdspan.SharedOffset[float64], mdspan.SharedOffset[float64]](
		g, mdspan.Range(r0, r0+rows), mdspan.Range(c0, c0+cols))
}

// transposed swaps the two dimensions of g without touching storage.
func transposed(g Grid) Grid {
	e := mdspan.DynamicExtents(g.Extent(1), g.Extent(0))
	m := mdspan.NewStrideMapping(e, []int{g.Stride(1), g.Stride(0)})

	return mdspan.NewView[float64, mdspan.Shared[float64], *float64](g.Data(), m, g.Accessor())
}

func doGrid(g Grid, f func(i, j int, v float64) bool) {
	g.Each(func(idx []int, ref *float64) bool {
		return f(idx[0], idx[1], *ref)
	})
}

func applyGrid(g Grid, pol policy, owner string, f func(i, j int, v float64) float64) error {
	var err error
	g.Each(func(idx []int, ref *float64) bool {
		nv := f(idx[0], idx[1], *ref)
		if pol.reject(nv) {
			err = errors.Wrapf(ErrNaNInf, "%s.%s(%d,%d)", owner, ctxApply, idx[0], idx[1])
			return false
		}
		*ref = nv

		return true
	})

	return err
}
