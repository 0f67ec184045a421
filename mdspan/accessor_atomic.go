// SPDX-License-Identifier: MIT

package mdspan

import (
	"unsafe"

	"github.com/pkg/errors"

	"github.com/katalvlaran/mdview/atomicref"
)

// Atomic accesses every element through an atomicref.Ref, so concurrent
// writers can share one view. Raw access would bypass atomicity: Decay panics
// with ErrAtomicDecay. The offset policy is Atomic itself.
type Atomic[T atomicref.Value] struct{}

var _ OffsetAccessor[int64, []int64, atomicref.Ref[int64], Atomic[int64]] = Atomic[int64]{}

// Check panics with ErrMisaligned when h[0] violates atomicref.RequiredAlignment.
func (Atomic[T]) Check(h []T) {
	if len(h) == 0 {
		return
	}
	align := atomicref.RequiredAlignment[T]()
	if uintptr(unsafe.Pointer(&h[0]))%align != 0 {
		panicf(ErrMisaligned, "Atomic.Check: alignment %d", align)
	}
}

// Access returns an atomic reference to h[i].
func (Atomic[T]) Access(h []T, i int) atomicref.Ref[T] { return atomicref.New(&h[i]) }

// Offset returns h[i:].
func (Atomic[T]) Offset(h []T, i int) []T { return h[i:] }

// Decay always panics: atomically accessed data has no raw escape hatch.
func (Atomic[T]) Decay([]T) []T {
	panic(errors.WithStack(ErrAtomicDecay))
}

// OffsetPolicy returns Atomic.
func (Atomic[T]) OffsetPolicy() Atomic[T] { return Atomic[T]{} }
