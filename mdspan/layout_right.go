// SPDX-License-Identifier: MIT

package mdspan

// RightMapping is the row-major layout:
//
//	offset = ((i0*N1 + i1)*N2 + i2)*N3 + ...
//
// The right-most index varies fastest. Always unique, contiguous and strided.
type RightMapping struct {
	ext Extents
}

var _ Mapping = RightMapping{}

// NewRightMapping builds a row-major mapping over e. It is a LayoutFunc.
func NewRightMapping(e Extents) RightMapping { return RightMapping{ext: e} }

// Extents returns the embedded shape.
func (m RightMapping) Extents() Extents { return m.ext }

// Offset computes the row-major linear offset.
// MAIN DESCRIPTION:
//   - Horner scheme: each step multiplies the running sum by the extent of
//     the current dimension before adding its index.
//
// Behavior highlights:
//   - Panics with ErrIndexCount if len(idx) != rank; indices are not bounds-checked.
//
// Complexity:
//   - Time O(rank), Space O(1).
func (m RightMapping) Offset(idx ...int) int {
	checkIndexCount("RightMapping.Offset", m.ext.Rank(), idx)
	sum := 0
	for k, i := range idx {
		sum = sum*m.ext.Extent(k) + i
	}

	return sum
}

// Stride returns the product of the extents strictly right of r.
func (m RightMapping) Stride(r int) int { return m.ext.Product(r+1, m.ext.Rank()) }

// RequiredSpanSize returns the product of all extents.
func (m RightMapping) RequiredSpanSize() int { return m.ext.Size() }

func (RightMapping) IsUnique() bool     { return true }
func (RightMapping) IsContiguous() bool { return true }
func (RightMapping) IsStrided() bool    { return true }

func (RightMapping) IsAlwaysUnique() bool     { return true }
func (RightMapping) IsAlwaysContiguous() bool { return true }
func (RightMapping) IsAlwaysStrided() bool    { return true }

// Convert re-declares the mapping's shape under to (see ConvertExtents).
func (m RightMapping) Convert(to Shape) (RightMapping, error) {
	e, err := ConvertExtents(m.ext, to)
	if err != nil {
		return RightMapping{}, err
	}

	return RightMapping{ext: e}, nil
}

// Equal reports whether both mappings have equal extents.
func (m RightMapping) Equal(o RightMapping) bool { return m.ext.Equal(o.ext) }
