// SPDX-License-Identifier: MIT

package mdspan

import "github.com/pkg/errors"

// Aligned is a plain accessor that additionally guarantees its handle starts
// at a multiple of Alignment() bytes. The guarantee is asserted when the view
// is built (NewAligned); derived views fall back to Basic, since offsetting
// can break alignment.
type Aligned[T any] struct {
	align int // bytes, power of two
}

var _ OffsetAccessor[float64, []float64, *float64, Basic[float64]] = Aligned[float64]{}

// NewAlignedAccessor returns an accessor asserting align-byte alignment.
// It panics when align is not a positive power of two.
func NewAlignedAccessor[T any](align int) Aligned[T] {
	if !isPowerOfTwo(align) {
		panic(errors.Errorf("mdspan: NewAlignedAccessor: alignment %d is not a power of two", align))
	}

	return Aligned[T]{align: align}
}

// Alignment returns the asserted byte alignment (1 for the zero value).
func (a Aligned[T]) Alignment() int {
	if a.align == 0 {
		return 1
	}

	return a.align
}

// Check panics with ErrMisaligned when h does not honor the alignment.
func (a Aligned[T]) Check(h []T) {
	if err := ValidateAlignment(h, a.Alignment()); err != nil {
		panic(err)
	}
}

// Access returns &h[i].
func (Aligned[T]) Access(h []T, i int) *T { return &h[i] }

// Offset returns h[i:].
func (Aligned[T]) Offset(h []T, i int) []T { return h[i:] }

// Decay returns h unchanged.
func (Aligned[T]) Decay(h []T) []T { return h }

// OffsetPolicy drops the alignment guarantee.
func (Aligned[T]) OffsetPolicy() Basic[T] { return Basic[T]{} }
