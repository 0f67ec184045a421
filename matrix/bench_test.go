// Package matrix_test provides benchmarks for core matrix package operations,
// using deterministic random fill for Dense matrices.
package matrix_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/katalvlaran/mdview/matrix"
)

// benchSizes are the matrix sizes to benchmark.
var benchSizes = []int{64, 128, 256}

// sinks to defeat dead-code elimination
var (
	sinkM *matrix.Dense
	sinkV []float64
	sinkF float64
)

// randDense builds an n×n Dense filled from a fixed seed.
func randDense(b *testing.B, n int, seed int64) *matrix.Dense {
	b.Helper()
	rng := rand.New(rand.NewSource(seed))
	data := make([]float64, n*n)
	for i := range data {
		data[i] = rng.Float64()
	}
	m, err := matrix.NewDenseFrom(n, n, data)
	if err != nil {
		b.Fatal(err)
	}

	return m
}

func BenchmarkAdd(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			A := randDense(b, n, 1337)
			B := randDense(b, n, 4242)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m, err := matrix.Add(A, B)
				if err != nil {
					b.Fatal(err)
				}
				sinkM = m
			}
		})
	}
}

func BenchmarkMul(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			A := randDense(b, n, 7)
			B := randDense(b, n, 8)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m, err := matrix.Mul(A, B)
				if err != nil {
					b.Fatal(err)
				}
				sinkM = m
			}
		})
	}
}

// BenchmarkMulTransposedView multiplies through a no-copy transpose.
func BenchmarkMulTransposedView(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			A := randDense(b, n, 9)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m, err := matrix.Mul(A.T(), A)
				if err != nil {
					b.Fatal(err)
				}
				sinkM = m
			}
		})
	}
}

func BenchmarkMatVec(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			A := randDense(b, n, 11)
			x := make([]float64, n)
			for i := range x {
				x[i] = float64(i)
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				y, err := matrix.MatVec(A, x)
				if err != nil {
					b.Fatal(err)
				}
				sinkV = y
			}
		})
	}
}

// BenchmarkViewAt reads a window element by element through the checked accessor.
func BenchmarkViewAt(b *testing.B) {
	A := randDense(b, 256, 3)
	v, err := A.View(64, 64, 128, 128)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var s float64
		for r := 0; r < v.Rows(); r++ {
			for c := 0; c < v.Cols(); c++ {
				x, _ := v.At(r, c)
				s += x
			}
		}
		sinkF = s
	}
}
