// SPDX-License-Identifier: MIT

package mdspan

// Shared is the handle of SharedOffset: a Buffer reference plus an element offset.
type Shared[T any] struct {
	buf *Buffer[T]
	off int
}

// Buffer returns the referenced allocation.
func (h Shared[T]) Buffer() *Buffer[T] { return h.buf }

// Off returns the element offset into the buffer.
func (h Shared[T]) Off() int { return h.off }

// IsNil reports whether the handle references no buffer.
func (h Shared[T]) IsNil() bool { return h.buf == nil }

// SharedOffset addresses a Buffer through (buffer, offset) handles, so views
// derived by Subspan keep referring to the same allocation.
type SharedOffset[T any] struct{}

var _ OffsetAccessor[float64, Shared[float64], *float64, SharedOffset[float64]] = SharedOffset[float64]{}

// Access returns a pointer to element h.off+i of the buffer.
func (SharedOffset[T]) Access(h Shared[T], i int) *T { return &h.buf.Data()[h.off+i] }

// Offset composes i with the stored offset.
func (SharedOffset[T]) Offset(h Shared[T], i int) Shared[T] {
	return Shared[T]{buf: h.buf, off: h.off + i}
}

// Decay returns the buffer storage starting at the handle's offset.
func (SharedOffset[T]) Decay(h Shared[T]) []T {
	if h.buf == nil {
		return nil
	}

	return h.buf.Data()[h.off:]
}

// OffsetPolicy returns SharedOffset.
func (SharedOffset[T]) OffsetPolicy() SharedOffset[T] { return SharedOffset[T]{} }
