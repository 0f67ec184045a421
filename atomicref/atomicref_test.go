// Package atomicref_test contains unit tests for atomic references over plain memory.
package atomicref_test

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/mdview/atomicref"
)

// TestLoadStoreExchange covers the basic operations for each width.
func TestLoadStoreExchange(t *testing.T) {
	var i32 int32
	r32 := atomicref.New(&i32)
	r32.Store(-7)
	require.Equal(t, int32(-7), r32.Load())           // signed round trip through uint32
	require.Equal(t, int32(-7), r32.Exchange(3))      // old value
	require.Equal(t, int32(3), i32)                   // plain memory updated

	var f64 float64
	rf := atomicref.New(&f64)
	rf.Store(math.Pi, atomicref.Release)
	require.Equal(t, math.Pi, rf.Load(atomicref.Acquire)) // bit pattern preserved
	require.Same(t, &f64, rf.Pointer())
	require.True(t, rf.IsLockFree())

	var f32 float32 = 1.5
	require.Equal(t, float32(1.5), atomicref.New(&f32).Load(atomicref.Relaxed))
}

// TestFetchArithmetic covers fetch-and-modify and the operator forms.
func TestFetchArithmetic(t *testing.T) {
	var u uint64 = 10
	r := atomicref.New(&u)

	require.Equal(t, uint64(10), r.FetchAdd(5)) // previous
	require.Equal(t, uint64(15), r.FetchSub(3)) // previous
	require.Equal(t, uint64(14), r.Add(2))      // new value
	require.Equal(t, uint64(10), r.Sub(4))      // new value

	var f float32 = 0.5
	require.Equal(t, float32(2), atomicref.New(&f).Add(1.5)) // floats use the CAS loop
}

// TestBitwise covers the integer-only fetch operations.
func TestBitwise(t *testing.T) {
	var v uint32 = 0b1100
	r := atomicref.New(&v)

	require.Equal(t, uint32(0b1100), atomicref.FetchAnd(r, 0b0110))
	require.Equal(t, uint32(0b0100), atomicref.FetchOr(r, 0b0001))
	require.Equal(t, uint32(0b0101), atomicref.FetchXor(r, 0b1111))
	require.Equal(t, uint32(0b1010), v)
}

// TestNewPreconditions covers nil and misaligned targets.
func TestNewPreconditions(t *testing.T) {
	require.Panics(t, func() { atomicref.New[int64](nil) })
	require.Equal(t, uintptr(8), atomicref.RequiredAlignment[int64]())
	require.Equal(t, uintptr(4), atomicref.RequiredAlignment[float32]())
}

// CompareExchangeSuite groups the compare-exchange contract.
type CompareExchangeSuite struct {
	suite.Suite
	v int64
	r atomicref.Ref[int64]
}

func (s *CompareExchangeSuite) SetupTest() {
	s.v = 5
	s.r = atomicref.New(&s.v)
}

// TestStrongSuccess swaps when expected matches.
func (s *CompareExchangeSuite) TestStrongSuccess() {
	expected := int64(5)
	s.Require().True(s.r.CompareExchangeStrong(&expected, 9))
	s.Require().Equal(int64(9), s.v)
	s.Require().Equal(int64(5), expected) // untouched on success
}

// TestStrongFailureLoadsCurrent writes the observed value back.
func (s *CompareExchangeSuite) TestStrongFailureLoadsCurrent() {
	expected := int64(1)
	s.Require().False(s.r.CompareExchangeStrong(&expected, 9))
	s.Require().Equal(int64(5), expected) // observed value
	s.Require().Equal(int64(5), s.v)      // unchanged
}

// TestWeakRetryLoop is the canonical compare-exchange loop.
func (s *CompareExchangeSuite) TestWeakRetryLoop() {
	expected := int64(0)
	for !s.r.CompareExchangeWeak(&expected, expected*2, atomicref.AcqRel, atomicref.Acquire) {
	}
	s.Require().Equal(int64(10), s.v)
}

// TestInvalidOrders panics on orders that make no sense for the operation.
func (s *CompareExchangeSuite) TestInvalidOrders() {
	expected := int64(5)
	s.Require().Panics(func() { s.r.CompareExchangeStrong(&expected, 1, atomicref.Acquire, atomicref.SeqCst) }) // failure stronger
	s.Require().Panics(func() { s.r.CompareExchangeStrong(&expected, 1, atomicref.SeqCst, atomicref.Release) }) // release failure
	s.Require().Panics(func() { s.r.CompareExchangeWeak(&expected, 1, atomicref.SeqCst, atomicref.SeqCst, atomicref.SeqCst) })
	s.Require().Panics(func() { s.r.Load(atomicref.Release) })
	s.Require().Panics(func() { s.r.Store(1, atomicref.Acquire) })
	s.Require().Panics(func() { s.r.FetchAdd(1, atomicref.MemoryOrder(42)) })
	s.Require().NotPanics(func() { s.r.CompareExchangeStrong(&expected, 1, atomicref.AcqRel, atomicref.Relaxed) })
}

func TestCompareExchangeSuite(t *testing.T) {
	suite.Run(t, new(CompareExchangeSuite))
}

// TestConcurrentCounters checks no update is lost under contention, for ints and floats.
func TestConcurrentCounters(t *testing.T) {
	const workers, rounds = 16, 500
	var (
		n  int64
		f  float64
		wg sync.WaitGroup
	)
	rn, rf := atomicref.New(&n), atomicref.New(&f)

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				rn.FetchAdd(1)
				rf.FetchAdd(0.5)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, int64(workers*rounds), rn.Load())
	require.Equal(t, float64(workers*rounds)/2, rf.Load()) // exact: halves are representable
}

// TestMemoryOrderString covers the enumeration names.
func TestMemoryOrderString(t *testing.T) {
	require.Equal(t, "seq_cst", atomicref.SeqCst.String())
	require.Equal(t, "acq_rel", atomicref.AcqRel.String())
	require.Equal(t, "invalid", atomicref.MemoryOrder(9).String())
}
