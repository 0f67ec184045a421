// Package mdspan_test contains unit tests for the three layout mappings.
package mdspan_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/mdview/mdspan"
)

// LayoutSuite shares the 5x4x3x2x1 fixture used by every layout law.
type LayoutSuite struct {
	suite.Suite
	ext mdspan.Extents
}

func (s *LayoutSuite) SetupTest() {
	s.ext = mdspan.NewShape(5, 4, 3, 2, 1).Extents()
}

// TestRightMapping checks the row-major worked example.
func (s *LayoutSuite) TestRightMapping() {
	m := mdspan.NewRightMapping(s.ext)

	s.Require().Equal(107, m.Offset(4, 1, 2, 1, 0))                 // 4*24 + 1*6 + 2*2 + 1*1
	s.Require().Equal([]int{24, 6, 2, 1, 1}, mdspan.Strides(m))     // stride law
	s.Require().Equal(120, m.RequiredSpanSize())                     // product of extents
	s.Require().True(m.IsUnique() && m.IsContiguous() && m.IsStrided())
	s.Require().True(mdspan.IsAlwaysContiguous[mdspan.RightMapping]())
}

// TestLeftMapping checks the column-major worked example.
func (s *LayoutSuite) TestLeftMapping() {
	m := mdspan.NewLeftMapping(s.ext)

	s.Require().Equal(109, m.Offset(4, 1, 2, 1, 0))                 // 4 + 1*5 + 2*20 + 1*60
	s.Require().Equal([]int{1, 5, 20, 60, 120}, mdspan.Strides(m))  // stride law
	s.Require().Equal(120, m.RequiredSpanSize())
	s.Require().True(mdspan.IsAlwaysUnique[mdspan.LeftMapping]())
}

// TestRoundTrip re-derives each mapping from its own extents and compares every offset.
func (s *LayoutSuite) TestRoundTrip() {
	right := mdspan.NewRightMapping(s.ext)
	left := mdspan.NewLeftMapping(s.ext)
	rr := mdspan.NewRightMapping(right.Extents())
	ll := mdspan.NewLeftMapping(left.Extents())
	sr := mdspan.ToStride(right)

	forEachIndex(s.ext, func(idx []int) {
		s.Require().Equal(right.Offset(idx...), rr.Offset(idx...)) // right round trip
		s.Require().Equal(left.Offset(idx...), ll.Offset(idx...))  // left round trip
		s.Require().Equal(right.Offset(idx...), sr.Offset(idx...)) // stride equivalent
	})
}

// TestUniqueOffsets verifies right/left mappings hit each offset exactly once.
func (s *LayoutSuite) TestUniqueOffsets() {
	for _, m := range []mdspan.Mapping{mdspan.NewRightMapping(s.ext), mdspan.NewLeftMapping(s.ext)} {
		seen := make(map[int]bool, s.ext.Size())
		forEachIndex(s.ext, func(idx []int) {
			off := m.Offset(idx...)
			s.Require().False(seen[off]) // never revisited
			s.Require().Less(off, m.RequiredSpanSize())
			seen[off] = true
		})
		s.Require().Len(seen, s.ext.Size()) // dense cover
	}
}

// TestIndexCountPanics ensures a wrong index count is rejected by every mapping.
func (s *LayoutSuite) TestIndexCountPanics() {
	s.Require().Panics(func() { mdspan.NewRightMapping(s.ext).Offset(1, 2) })
	s.Require().Panics(func() { mdspan.NewLeftMapping(s.ext).Offset(1, 2, 3, 4, 0, 0) })
	s.Require().Panics(func() { mdspan.ToStride(mdspan.NewRightMapping(s.ext)).Offset() })
}

func TestLayoutSuite(t *testing.T) {
	suite.Run(t, new(LayoutSuite))
}

// TestStrideContiguity covers the sorted-stride contiguity law.
func TestStrideContiguity(t *testing.T) {
	cases := []struct {
		name    string
		ext     mdspan.Extents
		strides []int
		contig  bool
	}{
		{"column-major", mdspan.StaticExtents(3, 4), []int{1, 3}, true},
		{"row-major", mdspan.StaticExtents(3, 4), []int{4, 1}, true},
		{"padded rows", mdspan.StaticExtents(3, 4), []int{5, 1}, false},
		{"rank 1", mdspan.StaticExtents(4), []int{1}, true},
		{"transposed rows", mdspan.StaticExtents(2, 3, 4), []int{12, 1, 3}, true},
		{"unit extent in the middle", mdspan.StaticExtents(5, 4, 3, 2, 1), []int{24, 6, 2, 1, 1}, false}, // tie orders dim 3 before dim 4
		{"rank 0", mdspan.StaticExtents(), nil, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := mdspan.TryStrideMapping(tc.ext, tc.strides)
			require.NoError(t, err)
			require.Equal(t, tc.contig, m.IsContiguous())
			require.True(t, m.IsUnique() && m.IsStrided())
		})
	}
	require.False(t, mdspan.IsAlwaysContiguous[mdspan.StrideMapping]()) // runtime property only
}

// TestStrideRequiredSpanSize covers the highest-offset-plus-one rule and its edge cases.
func TestStrideRequiredSpanSize(t *testing.T) {
	m := mdspan.NewStrideMapping(mdspan.StaticExtents(3, 4), []int{10, 2})
	require.Equal(t, 1+2*10+3*2, m.RequiredSpanSize()) // 27

	empty := mdspan.NewStrideMapping(mdspan.StaticExtents(3, 0), []int{1, 3})
	require.Equal(t, 0, empty.RequiredSpanSize()) // zero extent addresses nothing

	scalar := mdspan.NewStrideMapping(mdspan.StaticExtents(), nil)
	require.Equal(t, 1, scalar.RequiredSpanSize()) // rank 0 addresses one element
	require.Equal(t, 0, scalar.Offset())
}

// TestStrideCountMismatch covers both construction paths.
func TestStrideCountMismatch(t *testing.T) {
	_, err := mdspan.TryStrideMapping(mdspan.StaticExtents(2, 2), []int{1})
	require.ErrorIs(t, err, mdspan.ErrStrideCount)
	require.Panics(t, func() { mdspan.NewStrideMapping(mdspan.StaticExtents(2), []int{1, 1}) })
}

// TestStrideMappingOwnsStrides ensures caller slices are copied in and out.
func TestStrideMappingOwnsStrides(t *testing.T) {
	st := []int{3, 1}
	m := mdspan.NewStrideMapping(mdspan.StaticExtents(2, 3), st)
	st[0] = 100 // mutate the input

	require.Equal(t, 3, m.Stride(0))
	out := m.Strides()
	out[1] = 100 // mutate the output
	require.Equal(t, 1, m.Stride(1))
	require.True(t, m.Equal(mdspan.ToStride(mdspan.NewRightMapping(mdspan.StaticExtents(2, 3)))))
}

// TestMappingConvert re-declares mapping shapes.
func TestMappingConvert(t *testing.T) {
	r := mdspan.NewRightMapping(mdspan.DynamicExtents(2, 3))
	got, err := r.Convert(mdspan.NewShape(2, 3))
	require.NoError(t, err)
	require.True(t, got.Equal(r))
	require.Equal(t, 0, got.Extents().RankDynamic())

	l := mdspan.NewLeftMapping(mdspan.DynamicExtents(2, 3))
	_, err = l.Convert(mdspan.NewShape(3, 2))
	require.ErrorIs(t, err, mdspan.ErrExtentMismatch)
}

// TestRankZeroMappings covers the scalar layouts.
func TestRankZeroMappings(t *testing.T) {
	e := mdspan.StaticExtents()
	require.Equal(t, 0, mdspan.NewRightMapping(e).Offset())
	require.Equal(t, 0, mdspan.NewLeftMapping(e).Offset())
	require.Equal(t, 1, mdspan.NewRightMapping(e).RequiredSpanSize())
	require.Equal(t, 0, mdspan.NewLeftMapping(mdspan.StaticExtents(3, 0)).RequiredSpanSize())
}

// forEachIndex visits every multi-index of e in row-major order.
func forEachIndex(e mdspan.Extents, fn func(idx []int)) {
	if e.Size() == 0 {
		return
	}
	idx := make([]int, e.Rank())
	for {
		fn(idx)
		k := e.Rank() - 1
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
