// SPDX-License-Identifier: MIT

package mdspan

// LeftMapping is the column-major layout:
//
//	offset = i0 + N0*(i1 + N1*(i2 + N2*(...)))
//
// The left-most index varies fastest. Always unique, contiguous and strided.
type LeftMapping struct {
	ext Extents
}

var _ Mapping = LeftMapping{}

// NewLeftMapping builds a column-major mapping over e. It is a LayoutFunc.
func NewLeftMapping(e Extents) LeftMapping { return LeftMapping{ext: e} }

// Extents returns the embedded shape.
func (m LeftMapping) Extents() Extents { return m.ext }

// Offset computes the column-major linear offset, folding from the last
// index inwards. Panics with ErrIndexCount if len(idx) != rank.
func (m LeftMapping) Offset(idx ...int) int {
	checkIndexCount("LeftMapping.Offset", m.ext.Rank(), idx)
	sum := 0
	for k := len(idx) - 1; k >= 0; k-- {
		sum = idx[k] + m.ext.Extent(k)*sum
	}

	return sum
}

// Stride returns the product of the extents strictly left of r.
func (m LeftMapping) Stride(r int) int { return m.ext.Product(0, r) }

// RequiredSpanSize returns the product of all extents.
func (m LeftMapping) RequiredSpanSize() int { return m.ext.Size() }

func (LeftMapping) IsUnique() bool     { return true }
func (LeftMapping) IsContiguous() bool { return true }
func (LeftMapping) IsStrided() bool    { return true }

func (LeftMapping) IsAlwaysUnique() bool     { return true }
func (LeftMapping) IsAlwaysContiguous() bool { return true }
func (LeftMapping) IsAlwaysStrided() bool    { return true }

// Convert re-declares the mapping's shape under to (see ConvertExtents).
func (m LeftMapping) Convert(to Shape) (LeftMapping, error) {
	e, err := ConvertExtents(m.ext, to)
	if err != nil {
		return LeftMapping{}, err
	}

	return LeftMapping{ext: e}, nil
}

// Equal reports whether both mappings have equal extents.
func (m LeftMapping) Equal(o LeftMapping) bool { return m.ext.Equal(o.ext) }
