// SPDX-License-Identifier: MIT

// Package mdspan - shape descriptor (Shape + Extents).
//
// Purpose:
//   - Shape declares a fixed-rank pattern in which each dimension is either a
//     static size or the Dynamic marker.
//   - Extents binds a Shape to the runtime values of its dynamic dimensions.
//   - Static queries (Rank, RankDynamic, StaticExtent) live on Shape and need
//     no Extents instance.
//
// Storage:
//   - Shape keeps the declared dims plus a per-dimension slot index into the
//     dynamic value array (-1 for static dims). Both slices are never mutated
//     after construction, so copies of Shape/Extents share them freely.
//   - Extents stores exactly RankDynamic() ints; static dims cost nothing per instance.
//
// AI-Hints:
//   - Build the Shape once (package-level var) and call Shape.Extents(dyn...) per view.
//   - Use ConvertExtents to re-declare a runtime shape as a (partially) static one.

package mdspan

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Dynamic marks a dimension whose size is supplied at construction time.
const Dynamic = -1

// outOfRankExtent is returned by extent queries past the declared rank.
const outOfRankExtent = 1

// Shape is the declared (static) part of a shape descriptor.
// The zero value is the rank-0 shape.
type Shape struct {
	dims []int // declared sizes; Dynamic for runtime slots
	slot []int // slot[k] = index into Extents.dyn, or -1 when dims[k] is static
	nDyn int   // number of Dynamic entries in dims
}

// NewShape declares a shape. Each entry is a non-negative static size or Dynamic.
// It panics on any other negative value, which is a programmer error.
func NewShape(dims ...int) Shape {
	s := Shape{
		dims: make([]int, len(dims)),
		slot: make([]int, len(dims)),
	}
	for k, d := range dims {
		if d < Dynamic {
			panic(errors.Wrapf(ErrNegativeExtent, "NewShape: dim %d = %d", k, d))
		}
		s.dims[k] = d
		if d == Dynamic {
			s.slot[k] = s.nDyn
			s.nDyn++
		} else {
			s.slot[k] = -1
		}
	}

	return s
}

// Rank returns the number of dimensions.
func (s Shape) Rank() int { return len(s.dims) }

// RankDynamic returns the number of Dynamic dimensions.
func (s Shape) RankDynamic() int { return s.nDyn }

// StaticExtent returns the declared size of dimension k, Dynamic for runtime
// dims, and 1 for k outside [0, Rank()).
func (s Shape) StaticExtent(k int) int {
	if k < 0 || k >= len(s.dims) {
		return outOfRankExtent
	}

	return s.dims[k]
}

// IsDynamic reports whether dimension k is supplied at runtime.
func (s Shape) IsDynamic(k int) bool {
	return k >= 0 && k < len(s.dims) && s.dims[k] == Dynamic
}

// Equal reports whether both shapes declare the same pattern.
func (s Shape) Equal(o Shape) bool {
	if len(s.dims) != len(o.dims) {
		return false
	}
	for k := range s.dims {
		if s.dims[k] != o.dims[k] {
			return false
		}
	}

	return true
}

// String renders the pattern as "[5 ? 3]".
func (s Shape) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for k, d := range s.dims {
		if k > 0 {
			b.WriteByte(' ')
		}
		if d == Dynamic {
			b.WriteByte('?')
		} else {
			b.WriteString(strconv.Itoa(d))
		}
	}
	b.WriteByte(']')

	return b.String()
}

// Extents binds the shape to dyn, assigned in dimension order to the Dynamic
// slots only. It panics with ErrDynamicCount when len(dyn) != RankDynamic()
// and with ErrNegativeExtent on a negative value.
func (s Shape) Extents(dyn ...int) Extents {
	e, err := s.TryExtents(dyn...)
	if err != nil {
		panic(err)
	}

	return e
}

// TryExtents is the recoverable twin of Extents.
// MAIN DESCRIPTION:
//   - Validate the dynamic value count and signs, then copy them into a fresh Extents.
//
// Errors:
//   - ErrDynamicCount, ErrNegativeExtent (wrapped with the shape for context).
//
// Complexity:
//   - Time O(rank_dynamic), Space O(rank_dynamic).
func (s Shape) TryExtents(dyn ...int) (Extents, error) {
	if len(dyn) != s.nDyn {
		return Extents{}, errors.Wrapf(ErrDynamicCount, "Shape%s.Extents: got %d values, want %d", s, len(dyn), s.nDyn)
	}
	vals := make([]int, len(dyn)) // own copy: callers may reuse their slice
	for i, v := range dyn {
		if v < 0 {
			return Extents{}, errors.Wrapf(ErrNegativeExtent, "Shape%s.Extents: value %d = %d", s, i, v)
		}
		vals[i] = v
	}

	return Extents{shape: s, dyn: vals}, nil
}

// Extents is a shape descriptor: a Shape plus the runtime sizes of its
// Dynamic dims. It is an immutable value; the zero value has rank 0.
type Extents struct {
	shape Shape
	dyn   []int
}

// StaticExtents returns extents whose every dimension is static.
func StaticExtents(sizes ...int) Extents {
	return NewShape(sizes...).Extents()
}

// DynamicExtents returns extents whose every dimension is Dynamic.
func DynamicExtents(sizes ...int) Extents {
	dims := make([]int, len(sizes))
	for k := range dims {
		dims[k] = Dynamic
	}

	return NewShape(dims...).Extents(sizes...)
}

// Shape returns the declared pattern.
func (e Extents) Shape() Shape { return e.shape }

// Rank returns the number of dimensions.
func (e Extents) Rank() int { return len(e.shape.dims) }

// RankDynamic returns the number of runtime-sized dimensions.
func (e Extents) RankDynamic() int { return e.shape.nDyn }

// StaticExtent returns the declared size of dimension k (Dynamic for runtime dims).
func (e Extents) StaticExtent(k int) int { return e.shape.StaticExtent(k) }

// Extent returns the actual size of dimension k, or 1 past the rank.
func (e Extents) Extent(k int) int {
	if k < 0 || k >= len(e.shape.dims) {
		return outOfRankExtent
	}
	if j := e.shape.slot[k]; j >= 0 {
		return e.dyn[j]
	}

	return e.shape.dims[k]
}

// Product returns the product of extents over the half-open dimension range [from, to).
// An empty range yields 1.
func (e Extents) Product(from, to int) int {
	p := 1
	for k := from; k < to; k++ {
		p *= e.Extent(k)
	}

	return p
}

// Size returns the number of elements addressed by the extents (1 for rank 0).
func (e Extents) Size() int { return e.Product(0, e.Rank()) }

// Dims returns a fresh slice holding every extent in dimension order.
func (e Extents) Dims() []int {
	out := make([]int, e.Rank())
	for k := range out {
		out[k] = e.Extent(k)
	}

	return out
}

// Equal compares rank and then every extent; the static/dynamic mix is ignored.
func (e Extents) Equal(o Extents) bool {
	if e.Rank() != o.Rank() {
		return false
	}
	for k := 0; k < e.Rank(); k++ {
		if e.Extent(k) != o.Extent(k) {
			return false
		}
	}

	return true
}

// String renders the actual sizes, e.g. "(5,4,3)".
func (e Extents) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for k := 0; k < e.Rank(); k++ {
		if k > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(e.Extent(k)))
	}
	b.WriteByte(')')

	return b.String()
}

// ConvertExtents re-declares src under the pattern to.
// MAIN DESCRIPTION:
//   - Cross-shape conversion between equal-rank shapes with any static/dynamic mix.
//
// Implementation:
//   - Stage 1: ranks must match.
//   - Stage 2: every static dim of to must equal the runtime extent of src.
//   - Stage 3: collect the runtime values for the Dynamic dims of to.
//
// Errors:
//   - ErrRankMismatch, ErrExtentMismatch.
//
// Complexity:
//   - Time O(rank), Space O(rank_dynamic).
func ConvertExtents(src Extents, to Shape) (Extents, error) {
	if src.Rank() != to.Rank() {
		return Extents{}, errors.Wrapf(ErrRankMismatch, "ConvertExtents: %s -> %s", src, to)
	}
	dyn := make([]int, 0, to.nDyn)
	for k := 0; k < to.Rank(); k++ {
		ext := src.Extent(k)
		if d := to.dims[k]; d != Dynamic {
			if d != ext {
				return Extents{}, errors.Wrapf(ErrExtentMismatch, "ConvertExtents: dim %d: %d != %d", k, ext, d)
			}
			continue
		}
		dyn = append(dyn, ext)
	}

	return Extents{shape: to, dyn: dyn}, nil
}

// MustConvertExtents is ConvertExtents with assertion semantics: it panics on mismatch.
func MustConvertExtents(src Extents, to Shape) Extents {
	e, err := ConvertExtents(src, to)
	if err != nil {
		panic(err)
	}

	return e
}
