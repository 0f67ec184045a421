// Package matrix_test contains unit tests for MatrixView windows and transposes.
package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/mdview/matrix"
)

// ViewSuite works on a 3x4 matrix holding 0..11 in row-major order.
type ViewSuite struct {
	suite.Suite
	m *matrix.Dense
}

func (s *ViewSuite) SetupTest() {
	data := make([]float64, 12)
	for i := range data {
		data[i] = float64(i)
	}
	m, err := matrix.NewDenseFrom(3, 4, data)
	s.Require().NoError(err)
	s.m = m
}

// TestWindowSharesStorage reads and writes through a 2x2 window.
func (s *ViewSuite) TestWindowSharesStorage() {
	v, err := s.m.View(1, 1, 2, 2)
	s.Require().NoError(err)

	s.Require().Equal(2, v.Rows())
	s.Require().Equal(2, v.Cols())
	s.Require().Equal(5.0, mustAt(s.T(), v, 0, 0))  // m[1,1]
	s.Require().Equal(10.0, mustAt(s.T(), v, 1, 1)) // m[2,2]
	s.Require().Equal([]int{4, 1}, v.Strides())      // base strides

	s.Require().NoError(v.Set(0, 1, 99))             // write through the window
	s.Require().Equal(99.0, mustAt(s.T(), s.m, 1, 2)) // visible in the base
}

// TestWindowContiguity distinguishes full-row bands from narrow windows.
func (s *ViewSuite) TestWindowContiguity() {
	band, err := s.m.View(1, 0, 2, 4)
	s.Require().NoError(err)
	s.Require().True(band.IsContiguous()) // two full rows

	narrow, err := s.m.View(0, 1, 3, 2)
	s.Require().NoError(err)
	s.Require().False(narrow.IsContiguous()) // gaps between rows
}

// TestWindowBounds covers invalid and zero-area windows.
func (s *ViewSuite) TestWindowBounds() {
	_, err := s.m.View(2, 2, 2, 3)
	s.Require().ErrorIs(err, matrix.ErrBadShape) // spills past both edges

	_, err = s.m.View(-1, 0, 1, 1)
	s.Require().ErrorIs(err, matrix.ErrBadShape)

	empty, err := s.m.View(3, 0, 0, 4)
	s.Require().NoError(err)
	s.Require().Equal(0, empty.Rows())
	s.Require().Equal(0, empty.Materialize().Rows())

	v, err := s.m.View(0, 0, 1, 1)
	s.Require().NoError(err)
	_, err = v.At(1, 0)
	s.Require().ErrorIs(err, matrix.ErrOutOfRange) // relative to the window
}

// TestTranspose checks the swapped-stride view.
func (s *ViewSuite) TestTranspose() {
	tt := s.m.T()

	s.Require().Equal(4, tt.Rows())
	s.Require().Equal(3, tt.Cols())
	s.Require().Equal([]int{1, 4}, tt.Strides())
	s.Require().Equal(6.0, mustAt(s.T(), tt, 2, 1)) // m[1,2]
	s.Require().True(tt.IsContiguous())             // covers the whole buffer

	s.Require().NoError(tt.Set(3, 0, -1))
	s.Require().Equal(-1.0, mustAt(s.T(), s.m, 0, 3))

	back := tt.T()
	s.Require().Equal(s.m.String(), back.String()) // double transpose
}

// TestNestedWindowOfTranspose narrows a transposed view.
func (s *ViewSuite) TestNestedWindowOfTranspose() {
	w, err := s.m.T().View(1, 1, 2, 2)
	s.Require().NoError(err)

	s.Require().Equal("[5, 9]\n[6, 10]\n", w.String())
}

// TestMaterialize copies a window into an independent Dense.
func (s *ViewSuite) TestMaterialize() {
	v, err := s.m.View(1, 2, 2, 2)
	s.Require().NoError(err)

	d := v.Materialize(matrix.WithColumnMajor())
	s.Require().Equal("[6, 7]\n[10, 11]\n", d.String())
	s.Require().True(d.IsColumnMajor())

	s.Require().NoError(d.Set(0, 0, 0))
	s.Require().Equal(6.0, mustAt(s.T(), s.m, 1, 2)) // independent copy
}

// TestPolicyInherited verifies the base policy flows into views.
func (s *ViewSuite) TestPolicyInherited() {
	v, err := s.m.View(0, 0, 1, 1)
	s.Require().NoError(err)
	s.Require().ErrorIs(v.Set(0, 0, math.NaN()), matrix.ErrNaNInf)
	s.Require().ErrorIs(v.Apply(func(_, _ int, _ float64) float64 { return math.Inf(1) }), matrix.ErrNaNInf)
}

// TestDoOnWindow visits in row-major window order.
func (s *ViewSuite) TestDoOnWindow() {
	v, err := s.m.View(0, 2, 2, 2)
	s.Require().NoError(err)

	var got []float64
	v.Do(func(_, _ int, val float64) bool {
		got = append(got, val)
		return true
	})
	s.Require().Equal([]float64{2, 3, 6, 7}, got)
}

func TestViewSuite(t *testing.T) {
	suite.Run(t, new(ViewSuite))
}

// TestViewOnColumnMajor checks windows over column-major storage.
func TestViewOnColumnMajor(t *testing.T) {
	m := mustFrom(t, 2, 3, []float64{1, 2, 3, 4, 5, 6}, matrix.WithColumnMajor())
	v, err := m.View(0, 1, 2, 2)
	require.NoError(t, err)

	require.Equal(t, []int{1, 2}, v.Strides())
	require.True(t, v.IsContiguous()) // whole columns in column-major storage
	require.Equal(t, "[2, 3]\n[5, 6]\n", v.String())
}
