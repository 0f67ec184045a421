// SPDX-License-Identifier: MIT

// Package mdspan - owning, reference-counted storage for shared views.
//
// Purpose:
//   - Buffer is the one component of this package that owns memory. Views
//     over a Buffer use the SharedOffset accessor, whose handle carries the
//     buffer plus an element offset, so every derived view keeps a reference
//     to the same allocation.
//   - Retain/Release track logical owners; the last Release drops the storage
//     and any later access panics with ErrBufferReleased.
//
// Configuration follows the functional-options pattern: BufferOption values
// are applied in order by NewBuffer; constructors panic only on nonsensical
// parameters (programmer error).

package mdspan

import (
	"sync/atomic"

	"github.com/pkg/errors"
)

// ---------- Defaults ----------

const (
	// DefaultBufferRefs is the owner count of a freshly created Buffer.
	DefaultBufferRefs = 1
)

const (
	panicBufferLen     = "mdspan: NewBuffer: length must be non-negative"
	panicBufferDataLen = "mdspan: WithData: data length differs from buffer length"
)

// BufferOption configures a Buffer under construction.
type BufferOption[T any] func(*bufferOptions[T])

type bufferOptions[T any] struct {
	fill    *T  // value for every element; nil keeps the zero value
	data    []T // adopt this slice instead of allocating
	adopted bool
}

// WithFill initializes every element to v.
func WithFill[T any](v T) BufferOption[T] {
	return func(o *bufferOptions[T]) { o.fill = &v }
}

// WithData adopts data as the buffer storage without copying. Its length
// must equal the buffer length.
func WithData[T any](data []T) BufferOption[T] {
	return func(o *bufferOptions[T]) {
		o.data = data
		o.adopted = true
	}
}

// Buffer is an owning allocation of n elements shared by reference.
type Buffer[T any] struct {
	data []T
	refs atomic.Int64
}

// NewBuffer allocates (or adopts) n elements.
// MAIN DESCRIPTION:
//   - Gather options, then allocate or adopt storage and apply the fill value.
//
// Behavior highlights:
//   - Panics on n < 0 or on WithData with a different length.
//   - The returned buffer has one owner (DefaultBufferRefs).
//
// Complexity:
//   - Time O(n) (zeroing or fill), Space O(n) unless adopted.
func NewBuffer[T any](n int, opts ...BufferOption[T]) *Buffer[T] {
	if n < 0 {
		panic(panicBufferLen)
	}
	var o bufferOptions[T]
	for _, opt := range opts {
		opt(&o)
	}
	data := o.data
	if o.adopted {
		if len(data) != n {
			panic(panicBufferDataLen)
		}
	} else {
		data = make([]T, n)
	}
	if o.fill != nil {
		for i := range data {
			data[i] = *o.fill
		}
	}
	b := &Buffer[T]{data: data}
	b.refs.Store(DefaultBufferRefs)

	return b
}

// Len returns the number of elements, 0 once released.
func (b *Buffer[T]) Len() int { return len(b.data) }

// Data returns the storage. It panics with ErrBufferReleased after the last Release.
func (b *Buffer[T]) Data() []T {
	if b.data == nil && b.refs.Load() <= 0 {
		panic(errors.WithStack(ErrBufferReleased))
	}

	return b.data
}

// Handle returns a SharedOffset handle to the first element.
func (b *Buffer[T]) Handle() Shared[T] { return Shared[T]{buf: b} }

// Refs returns the current owner count.
func (b *Buffer[T]) Refs() int64 { return b.refs.Load() }

// Retain registers one more owner and returns b.
// It panics with ErrBufferReleased, leaving the count untouched, once the
// last owner has released the buffer.
func (b *Buffer[T]) Retain() *Buffer[T] {
	for {
		n := b.refs.Load()
		if n <= 0 {
			panic(errors.WithStack(ErrBufferReleased))
		}
		if b.refs.CompareAndSwap(n, n+1) {
			return b
		}
	}
}

// Release drops one owner; the last one frees the storage.
// It reports whether the storage was freed.
func (b *Buffer[T]) Release() bool {
	n := b.refs.Add(-1)
	switch {
	case n < 0:
		panic(errors.WithStack(ErrBufferReleased))
	case n == 0:
		b.data = nil
		return true
	default:
		return false
	}
}
