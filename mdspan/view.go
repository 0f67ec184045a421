// SPDX-License-Identifier: MIT

// Package mdspan - the View type.
//
// Purpose:
//   - View composes an accessor policy A, a layout mapping M (which embeds the
//     Extents) and a base handle H into a non-owning multidimensional window.
//   - Every query delegates to the mapping; every element access is
//     accessor.Access(handle, mapping.Offset(idx...)).
//
// Construction forms:
//   - New / FromExtents: data + shape, the mapping is built by a layout policy.
//   - FromMapping:       data + mapping, Basic accessor.
//   - NewView:           handle + mapping + accessor, fully explicit.
//   - NewAligned / NewAtomic / NewShared: accessor-specific forms that assert
//     their handle preconditions.
//
// Behavior highlights:
//   - The zero View is the empty view (rank 0, nil handle).
//   - Views are values: copying a View never copies elements.
//   - Index count is checked (panic with ErrIndexCount); index values are not.
//
// AI-Hints:
//   - Span[T] is the row-major []T view most callers want.
//   - Subspan always yields a StrideMapping view over the same memory.

package mdspan

import (
	"reflect"

	"github.com/pkg/errors"

	"github.com/katalvlaran/mdview/atomicref"
)

// View is a multidimensional view over handle type H with element type T and
// reference type R, laid out by M and accessed through A.
type View[T, H, R any, M Mapping, A Accessor[T, H, R]] struct {
	acc A
	m   M
	h   H
}

// Span is the row-major view over a plain slice.
type Span[T any] = View[T, []T, *T, RightMapping, Basic[T]]

// LeftSpan is the column-major view over a plain slice.
type LeftSpan[T any] = View[T, []T, *T, LeftMapping, Basic[T]]

// StridedSpan is the arbitrary-stride view over a plain slice (what Subspan returns for a Span).
type StridedSpan[T any] = View[T, []T, *T, StrideMapping, Basic[T]]

// AtomicSpan is the row-major view whose elements are accessed atomically.
type AtomicSpan[T atomicref.Value] = View[T, []T, atomicref.Ref[T], RightMapping, Atomic[T]]

// SharedSpan is the row-major view over a reference-counted Buffer.
type SharedSpan[T any] = View[T, Shared[T], *T, RightMapping, SharedOffset[T]]

// ---------- Constructors ----------

// New builds a row-major view over data from a shape and its dynamic extents.
// It panics on a dynamic-extent count mismatch (see Shape.Extents); data is not
// checked against the required span size.
func New[T any](data []T, shape Shape, dyn ...int) Span[T] {
	return Span[T]{m: NewRightMapping(shape.Extents(dyn...)), h: data}
}

// TryNew is the recoverable twin of New; it also rejects data shorter than
// the required span size.
func TryNew[T any](data []T, shape Shape, dyn ...int) (Span[T], error) {
	e, err := shape.TryExtents(dyn...)
	if err != nil {
		return Span[T]{}, err
	}
	m := NewRightMapping(e)
	if err = ValidateSpan(m, len(data)); err != nil {
		return Span[T]{}, err
	}

	return Span[T]{m: m, h: data}, nil
}

// FromExtents builds a view with the Basic accessor, using layout to derive the mapping.
//
//	v := mdspan.FromExtents(data, mdspan.NewLeftMapping, e)
func FromExtents[T any, M Mapping](data []T, layout func(Extents) M, e Extents) View[T, []T, *T, M, Basic[T]] {
	return View[T, []T, *T, M, Basic[T]]{m: layout(e), h: data}
}

// FromMapping builds a view from data and a mapping; the accessor is Basic.
func FromMapping[T any, M Mapping](data []T, m M) View[T, []T, *T, M, Basic[T]] {
	return View[T, []T, *T, M, Basic[T]]{m: m, h: data}
}

// NewView builds a view from all three parts.
func NewView[T, H, R any, M Mapping, A Accessor[T, H, R]](h H, m M, a A) View[T, H, R, M, A] {
	return View[T, H, R, M, A]{acc: a, m: m, h: h}
}

// NewAligned builds a view whose handle is asserted to start at an align-byte
// boundary. It panics with ErrMisaligned otherwise.
func NewAligned[T any, M Mapping](data []T, m M, align int) View[T, []T, *T, M, Aligned[T]] {
	a := NewAlignedAccessor[T](align)
	a.Check(data)

	return View[T, []T, *T, M, Aligned[T]]{acc: a, m: m, h: data}
}

// NewAtomic builds a view whose elements are accessed through atomicref.Ref.
// It panics with ErrMisaligned when data violates the atomic alignment.
func NewAtomic[T atomicref.Value, M Mapping](data []T, m M) View[T, []T, atomicref.Ref[T], M, Atomic[T]] {
	var a Atomic[T]
	a.Check(data)

	return View[T, []T, atomicref.Ref[T], M, Atomic[T]]{acc: a, m: m, h: data}
}

// NewShared builds a view over a Buffer; derived views keep referencing it.
func NewShared[T any, M Mapping](buf *Buffer[T], m M) View[T, Shared[T], *T, M, SharedOffset[T]] {
	return View[T, Shared[T], *T, M, SharedOffset[T]]{m: m, h: buf.Handle()}
}

// ConvertView rebuilds src with a converted mapping and a new accessor over
// the same handle. The conversion is only as checked as conv is.
func ConvertView[T, H, R any, M1, M2 Mapping, A1 Accessor[T, H, R], A2 Accessor[T, H, R]](
	src View[T, H, R, M1, A1], conv func(M1) (M2, error), acc A2,
) (View[T, H, R, M2, A2], error) {
	m, err := conv(src.m)
	if err != nil {
		return View[T, H, R, M2, A2]{}, errors.Wrap(err, "ConvertView")
	}

	return View[T, H, R, M2, A2]{acc: acc, m: m, h: src.h}, nil
}

// ---------- Element access ----------

// At returns the reference for the multi-index idx.
// It panics with ErrIndexCount when len(idx) != Rank().
func (v View[T, H, R, M, A]) At(idx ...int) R {
	return v.acc.Access(v.h, v.m.Offset(idx...))
}

// Index is the rank-1 subscript. It panics with ErrRankMismatch on other ranks.
func (v View[T, H, R, M, A]) Index(i int) R {
	if r := v.m.Extents().Rank(); r != 1 {
		panicf(ErrRankMismatch, "View.Index: rank %d", r)
	}

	return v.acc.Access(v.h, v.m.Offset(i))
}

// ---------- Shape queries ----------

// Rank returns the number of dimensions.
func (v View[T, H, R, M, A]) Rank() int { return v.m.Extents().Rank() }

// RankDynamic returns the number of runtime-sized dimensions.
func (v View[T, H, R, M, A]) RankDynamic() int { return v.m.Extents().RankDynamic() }

// Extent returns the size of dimension k (1 past the rank).
func (v View[T, H, R, M, A]) Extent(k int) int { return v.m.Extents().Extent(k) }

// StaticExtent returns the declared size of dimension k (Dynamic for runtime dims).
func (v View[T, H, R, M, A]) StaticExtent(k int) int { return v.m.Extents().StaticExtent(k) }

// Extents returns the shape descriptor.
func (v View[T, H, R, M, A]) Extents() Extents { return v.m.Extents() }

// Size returns the number of addressable index tuples.
func (v View[T, H, R, M, A]) Size() int { return v.m.Extents().Size() }

// IsEmpty reports whether the view addresses no element: a zero-sized shape
// or a rank-0 view over a nil handle (the zero View).
func (v View[T, H, R, M, A]) IsEmpty() bool { return v.Size() == 0 || v.Rank() == 0 && isZero(v.h) }

// ---------- Mapping queries ----------

// Stride returns the stride of dimension r.
func (v View[T, H, R, M, A]) Stride(r int) int { return v.m.Stride(r) }

// Strides returns every stride in dimension order.
func (v View[T, H, R, M, A]) Strides() []int { return Strides(v.m) }

// RequiredSpanSize returns the minimum number of elements the handle must cover.
func (v View[T, H, R, M, A]) RequiredSpanSize() int { return v.m.RequiredSpanSize() }

func (v View[T, H, R, M, A]) IsUnique() bool     { return v.m.IsUnique() }
func (v View[T, H, R, M, A]) IsContiguous() bool { return v.m.IsContiguous() }
func (v View[T, H, R, M, A]) IsStrided() bool    { return v.m.IsStrided() }

// The IsAlways* queries ask the mapping instance; M may be an interface type.
func (v View[T, H, R, M, A]) IsAlwaysUnique() bool     { return v.m.IsAlwaysUnique() }
func (v View[T, H, R, M, A]) IsAlwaysContiguous() bool { return v.m.IsAlwaysContiguous() }
func (v View[T, H, R, M, A]) IsAlwaysStrided() bool    { return v.m.IsAlwaysStrided() }

// ---------- Parts ----------

// Mapping returns a copy of the layout mapping.
func (v View[T, H, R, M, A]) Mapping() M { return v.m }

// Accessor returns a copy of the accessor policy.
func (v View[T, H, R, M, A]) Accessor() A { return v.acc }

// Data returns the base handle.
func (v View[T, H, R, M, A]) Data() H { return v.h }

// Span decays the handle and returns its first RequiredSpanSize elements.
// It panics for Atomic views (ErrAtomicDecay) and with ErrSpanTooShort when
// the handle is shorter than the mapping needs. An empty handle yields nil.
func (v View[T, H, R, M, A]) Span() []T {
	d := v.acc.Decay(v.h)
	if len(d) == 0 {
		return nil
	}
	if err := ValidateSpan(v.m, len(d)); err != nil {
		panic(errors.Wrap(err, "View.Span"))
	}

	return d[:v.m.RequiredSpanSize()]
}

// Each visits every multi-index in row-major order and calls fn with the
// index and its reference; it stops early when fn returns false. The idx
// slice is reused between calls.
// Complexity: O(Size()*rank) time, O(rank) space.
func (v View[T, H, R, M, A]) Each(fn func(idx []int, ref R) bool) {
	e := v.m.Extents()
	rank := e.Rank()
	if e.Size() == 0 || v.IsEmpty() {
		return
	}
	idx := make([]int, rank)
	for {
		if !fn(idx, v.At(idx...)) {
			return
		}
		// odometer increment, last dimension fastest
		k := rank - 1
		for ; k >= 0; k-- {
			idx[k]++
			if idx[k] < e.Extent(k) {
				break
			}
			idx[k] = 0
		}
		if k < 0 {
			return
		}
	}
}

// ---------- Pointer-reference helpers ----------

// Get reads the element at idx of a view whose reference type is *T.
func Get[T, H any, M Mapping, A Accessor[T, H, *T]](v View[T, H, *T, M, A], idx ...int) T {
	return *v.At(idx...)
}

// Set writes val at idx of a view whose reference type is *T.
func Set[T, H any, M Mapping, A Accessor[T, H, *T]](v View[T, H, *T, M, A], val T, idx ...int) {
	*v.At(idx...) = val
}

// Collect copies the viewed elements into a new slice in row-major index order.
func Collect[T, H any, M Mapping, A Accessor[T, H, *T]](v View[T, H, *T, M, A]) []T {
	out := make([]T, 0, v.Size())
	v.Each(func(_ []int, ref *T) bool {
		out = append(out, *ref)
		return true
	})

	return out
}

// isZero reports whether a handle is its type's zero value (nil slice, nil buffer).
func isZero[H any](h H) bool {
	switch x := any(h).(type) {
	case interface{ IsNil() bool }:
		return x.IsNil()
	default:
		rv := reflect.ValueOf(h)
		return !rv.IsValid() || rv.Kind() == reflect.Slice && rv.IsNil()
	}
}
