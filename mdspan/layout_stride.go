// SPDX-License-Identifier: MIT

// Package mdspan - arbitrary-stride layout.
//
// Purpose:
//   - Address elements as offset = Σ i_k * stride_k with explicit strides.
//   - Every Subspan result uses this layout, whatever the source layout was.
//
// Contiguity:
//   - Computed once at construction: order dimensions by ascending stride
//     (stable, ties keep dimension order); the mapping is contiguous iff
//     each stride equals the previous stride times the previous extent.
//
// AI-Hints:
//   - Use ToStride(m) to turn a right/left mapping into an equivalent StrideMapping.

package mdspan

import "github.com/pkg/errors"

// StrideMapping is the arbitrary-stride layout. Always unique and strided;
// contiguity is a runtime property.
type StrideMapping struct {
	ext     Extents
	strides []int // len == ext.Rank(); never mutated after construction
	contig  bool
}

var _ Mapping = StrideMapping{}

// NewStrideMapping builds a strided mapping. It panics with ErrStrideCount
// when len(strides) != e.Rank().
func NewStrideMapping(e Extents, strides []int) StrideMapping {
	m, err := TryStrideMapping(e, strides)
	if err != nil {
		panic(err)
	}

	return m
}

// TryStrideMapping is the recoverable twin of NewStrideMapping.
// MAIN DESCRIPTION:
//   - Copy strides and compute the contiguity flag.
//
// Implementation:
//   - Stage 1: validate the stride count.
//   - Stage 2: insertion-sort a permutation p so that strides[p[i]] <= strides[p[i+1]].
//   - Stage 3: contiguous iff strides[p[i]] == strides[p[i-1]] * extent(p[i-1]) for i >= 1.
//
// Errors:
//   - ErrStrideCount.
//
// Complexity:
//   - Time O(rank^2) (rank is small), Space O(rank).
func TryStrideMapping(e Extents, strides []int) (StrideMapping, error) {
	rank := e.Rank()
	if len(strides) != rank {
		return StrideMapping{}, errors.Wrapf(ErrStrideCount, "StrideMapping: got %d strides for rank %d", len(strides), rank)
	}
	st := append([]int(nil), strides...)

	p := make([]int, rank)
	for i := 0; i < rank; i++ {
		j := i
		for j > 0 && st[i] < st[p[j-1]] {
			p[j] = p[j-1]
			j--
		}
		p[j] = i
	}
	contig := true
	for i := 1; i < rank; i++ {
		prev := p[i-1]
		if st[p[i]] != st[prev]*e.Extent(prev) {
			contig = false
			break
		}
	}

	return StrideMapping{ext: e, strides: st, contig: contig}, nil
}

// Extents returns the embedded shape.
func (m StrideMapping) Extents() Extents { return m.ext }

// Offset returns Σ idx[k]*stride[k]. Panics with ErrIndexCount if len(idx) != rank.
func (m StrideMapping) Offset(idx ...int) int {
	checkIndexCount("StrideMapping.Offset", len(m.strides), idx)
	sum := 0
	for k, i := range idx {
		sum += i * m.strides[k]
	}

	return sum
}

// Stride returns the stored stride of dimension r.
func (m StrideMapping) Stride(r int) int { return m.strides[r] }

// RequiredSpanSize returns the highest addressable offset plus one:
// 1 + Σ stride(r)*(extent(r)-1). A mapping with any zero extent addresses
// nothing and needs 0 elements.
func (m StrideMapping) RequiredSpanSize() int {
	hi := 0
	for r, s := range m.strides {
		ext := m.ext.Extent(r)
		if ext == 0 {
			return 0
		}
		hi += s * (ext - 1)
	}

	return hi + 1
}

func (StrideMapping) IsUnique() bool       { return true }
func (m StrideMapping) IsContiguous() bool { return m.contig }
func (StrideMapping) IsStrided() bool      { return true }

func (StrideMapping) IsAlwaysUnique() bool     { return true }
func (StrideMapping) IsAlwaysContiguous() bool { return false }
func (StrideMapping) IsAlwaysStrided() bool    { return true }

// Strides returns a copy of the stride array.
func (m StrideMapping) Strides() []int { return append([]int(nil), m.strides...) }

// Equal reports equal extents and equal strides.
func (m StrideMapping) Equal(o StrideMapping) bool {
	if !m.ext.Equal(o.ext) || len(m.strides) != len(o.strides) {
		return false
	}
	for r := range m.strides {
		if m.strides[r] != o.strides[r] {
			return false
		}
	}

	return true
}
