// SPDX-License-Identifier: MIT

// Package mdspan - layout mapping contract.
//
// A Mapping turns a multi-index into a linear offset and reports strides,
// the required span size and uniqueness/contiguity/stridedness. Three
// strategies are provided:
//   - RightMapping:  row-major, last index has stride 1.
//   - LeftMapping:   column-major, first index has stride 1.
//   - StrideMapping: explicit per-dimension strides (the result of Subspan).
//
// No mapping validates indices against extents: out-of-range indices produce
// a well-defined but meaningless offset.

package mdspan

// Mapping is the layout contract consumed by View.
// The IsAlways* methods depend only on the concrete type and are valid on a zero value.
type Mapping interface {
	// Extents returns the embedded shape descriptor.
	Extents() Extents
	// Offset maps a multi-index of length Extents().Rank() to a linear offset.
	Offset(idx ...int) int
	// Stride returns the distance between consecutive indices of dimension r.
	Stride(r int) int
	// RequiredSpanSize is the minimum number of elements the handle must cover.
	RequiredSpanSize() int

	IsUnique() bool
	IsContiguous() bool
	IsStrided() bool

	IsAlwaysUnique() bool
	IsAlwaysContiguous() bool
	IsAlwaysStrided() bool
}

// LayoutFunc is a layout policy: it builds a mapping of kind M from a shape.
// NewRightMapping and NewLeftMapping satisfy it.
type LayoutFunc[M Mapping] func(Extents) M

// IsAlwaysUnique reports the static uniqueness of mapping kind M without an instance.
// M must be a concrete mapping type; for an interface type such as Mapping the
// IsAlways* functions report false. Ask an instance in that case.
func IsAlwaysUnique[M Mapping]() bool {
	var m M
	if any(m) == nil {
		return false // interface type: no static answer
	}

	return m.IsAlwaysUnique()
}

// IsAlwaysContiguous reports the static contiguity of mapping kind M without an instance.
func IsAlwaysContiguous[M Mapping]() bool {
	var m M
	if any(m) == nil {
		return false // interface type: no static answer
	}

	return m.IsAlwaysContiguous()
}

// IsAlwaysStrided reports the static stridedness of mapping kind M without an instance.
func IsAlwaysStrided[M Mapping]() bool {
	var m M
	if any(m) == nil {
		return false // interface type: no static answer
	}

	return m.IsAlwaysStrided()
}

// Strides collects m.Stride(r) for every dimension.
func Strides(m Mapping) []int {
	rank := m.Extents().Rank()
	out := make([]int, rank)
	for r := 0; r < rank; r++ {
		out[r] = m.Stride(r)
	}

	return out
}

// ToStride re-expresses any strided mapping as a StrideMapping with the same
// extents and strides, so offsets agree for every index.
func ToStride(m Mapping) StrideMapping {
	return NewStrideMapping(m.Extents(), Strides(m))
}

// checkIndexCount panics with ErrIndexCount when len(idx) != rank.
func checkIndexCount(method string, rank int, idx []int) {
	if len(idx) != rank {
		panicf(ErrIndexCount, "%s: got %d indices for rank %d", method, len(idx), rank)
	}
}
