// SPDX-License-Identifier: MIT

// Package mdspan - subspan (slicing) deduction.
//
// Purpose:
//   - Derive a view over a sub-region of an existing view without copying.
//   - Each dimension of the source receives exactly one Slice specifier:
//     All keeps the dimension (same static/dynamic-ness), Range keeps a
//     closed-open part of it (always Dynamic in the result), Index fixes it
//     and removes it from the result.
//
// Implementation:
//   - One left-to-right pass carries an accumulator (new dims, new strides,
//     running offset); see DeduceSubspan.
//   - The result mapping is always StrideMapping and the result accessor is
//     the source accessor's OffsetPolicy().
//
// AI-Hints:
//   - Subspan panics on a specifier-count mismatch only; use SubspanChecked
//     to validate ranges and indices against the extents as well.

package mdspan

import (
	"strconv"

	"github.com/pkg/errors"
)

// SliceKind enumerates the three specifier forms.
type SliceKind uint8

const (
	// KindAll keeps the whole dimension.
	KindAll SliceKind = iota
	// KindIndex fixes the dimension at one index.
	KindIndex
	// KindRange keeps the closed-open index range [first, last).
	KindRange
)

// String returns "all", "index" or "range".
func (k SliceKind) String() string {
	switch k {
	case KindAll:
		return "all"
	case KindIndex:
		return "index"
	case KindRange:
		return "range"
	default:
		return "SliceKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Slice is one per-dimension subspan specifier. The zero value is All.
type Slice struct {
	kind   SliceKind
	first  int
	second int
}

// All keeps a whole dimension.
var All = Slice{kind: KindAll}

// Index fixes a dimension at i; the dimension disappears from the result.
func Index(i int) Slice { return Slice{kind: KindIndex, first: i} }

// Range keeps indices [first, last) of a dimension.
func Range(first, last int) Slice { return Slice{kind: KindRange, first: first, second: last} }

// Kind reports the specifier form.
func (s Slice) Kind() SliceKind { return s.kind }

// Bounds returns the index (KindIndex: i, i+1), the range (KindRange) or (0, 0) for All.
func (s Slice) Bounds() (first, last int) {
	switch s.kind {
	case KindIndex:
		return s.first, s.first + 1
	case KindRange:
		return s.first, s.second
	default:
		return 0, 0
	}
}

// String renders the specifier in the CLI notation: ":", "2" or "1:3".
func (s Slice) String() string {
	switch s.kind {
	case KindIndex:
		return strconv.Itoa(s.first)
	case KindRange:
		return strconv.Itoa(s.first) + ":" + strconv.Itoa(s.second)
	default:
		return ":"
	}
}

// DeduceSubspan computes the shape, strides and base offset of a subspan.
// MAIN DESCRIPTION:
//   - Walk the dimensions left to right with one specifier each.
//
// Implementation:
//   - All:   emit StaticExtent(k) (static size or Dynamic) with value Extent(k); keep strides[k].
//   - Range: emit Dynamic with value last-first; keep strides[k]; offset += first*strides[k].
//   - Index: emit nothing; offset += i*strides[k].
//
// Behavior highlights:
//   - Panics with ErrSliceCount when len(slices) != e.Rank(), or ErrStrideCount
//     when len(strides) != e.Rank().
//   - Indices and ranges are not checked against the extents.
//
// Complexity:
//   - Time O(rank), Space O(rank).
func DeduceSubspan(e Extents, strides []int, slices ...Slice) (Extents, []int, int) {
	rank := e.Rank()
	if len(slices) != rank {
		panicf(ErrSliceCount, "DeduceSubspan: got %d specifiers for rank %d", len(slices), rank)
	}
	if len(strides) != rank {
		panicf(ErrStrideCount, "DeduceSubspan: got %d strides for rank %d", len(strides), rank)
	}

	var (
		dims       = make([]int, 0, rank)
		dyn        = make([]int, 0, rank)
		newStrides = make([]int, 0, rank)
		offset     int
	)
	for k, s := range slices {
		switch s.kind {
		case KindIndex:
			offset += s.first * strides[k]
		case KindRange:
			dims = append(dims, Dynamic)
			dyn = append(dyn, s.second-s.first)
			newStrides = append(newStrides, strides[k])
			offset += s.first * strides[k]
		default:
			st := e.StaticExtent(k)
			dims = append(dims, st)
			if st == Dynamic {
				dyn = append(dyn, e.Extent(k))
			}
			newStrides = append(newStrides, strides[k])
		}
	}

	return NewShape(dims...).Extents(dyn...), newStrides, offset
}

// Subspan slices v with one specifier per dimension.
// The result shares v's memory, uses a StrideMapping and the accessor
// v.Accessor().OffsetPolicy(); its handle is Offset(v.Data(), offset).
// A result addressing no element is shifted as well when offset lies within
// v's required span; past it the source handle is kept unshifted.
//
//	sub := mdspan.Subspan(v, mdspan.Index(2), mdspan.Range(1, 3), mdspan.All)
//
// Panics with ErrSliceCount when len(slices) != v.Rank().
func Subspan[T, H, R any, M Mapping, A OffsetAccessor[T, H, R, O], O Accessor[T, H, R]](
	v View[T, H, R, M, A], slices ...Slice,
) View[T, H, R, StrideMapping, O] {
	e, strides, offset := DeduceSubspan(v.m.Extents(), Strides(v.m), slices...)
	m := NewStrideMapping(e, strides)
	policy := v.acc.OffsetPolicy()
	h := v.h
	if offset != 0 && (e.Size() > 0 || offset <= v.m.RequiredSpanSize()) {
		h = v.acc.Offset(v.h, offset)
	}

	return View[T, H, R, StrideMapping, O]{acc: policy, m: m, h: h}
}

// SubspanChecked is Subspan with every specifier validated against v's extents.
// Errors:
//   - ErrSliceCount:      len(slices) != v.Rank().
//   - ErrIndexOutOfRange: an Index outside [0, extent).
//   - ErrSliceRange:      a Range with first < 0, first > last or last > extent.
func SubspanChecked[T, H, R any, M Mapping, A OffsetAccessor[T, H, R, O], O Accessor[T, H, R]](
	v View[T, H, R, M, A], slices ...Slice,
) (View[T, H, R, StrideMapping, O], error) {
	if err := ValidateSlices(v.m.Extents(), slices...); err != nil {
		return View[T, H, R, StrideMapping, O]{}, err
	}

	return Subspan[T, H, R, M, A, O](v, slices...), nil
}

// ValidateSlices checks a specifier list against e without building anything.
func ValidateSlices(e Extents, slices ...Slice) error {
	if len(slices) != e.Rank() {
		return errors.Wrapf(ErrSliceCount, "got %d specifiers for rank %d", len(slices), e.Rank())
	}
	for k, s := range slices {
		ext := e.Extent(k)
		switch s.kind {
		case KindIndex:
			if s.first < 0 || s.first >= ext {
				return errors.Wrapf(ErrIndexOutOfRange, "dim %d: index %d, extent %d", k, s.first, ext)
			}
		case KindRange:
			if s.first < 0 || s.first > s.second || s.second > ext {
				return errors.Wrapf(ErrSliceRange, "dim %d: range [%d,%d), extent %d", k, s.first, s.second, ext)
			}
		}
	}

	return nil
}
