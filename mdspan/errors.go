// SPDX-License-Identifier: MIT
// Package mdspan: sentinel error set.
// Every message is prefixed with "mdspan: " for grep-ability. Recoverable
// constructors (Try*, Convert*, *Checked) return these sentinels, possibly
// wrapped with call-site context; callers match them with errors.Is.
//
// Contract violations that the Go type system cannot reject at compile time
// (index count != rank, wrong number of dynamic extents, wrong slice count)
// panic with one of these sentinels wrapped by errors.Wrapf, so a recovered
// value can still be classified with errors.Is.

package mdspan

import "github.com/pkg/errors"

var (
	// ErrDynamicCount is raised when the number of runtime extents differs
	// from Shape.RankDynamic().
	ErrDynamicCount = errors.New("mdspan: dynamic extent count mismatch")

	// ErrNegativeExtent is raised when a dimension size is negative
	// (other than the Dynamic marker in a Shape declaration).
	ErrNegativeExtent = errors.New("mdspan: negative extent")

	// ErrRankMismatch signals two shapes/views of different rank, or a
	// rank-specific operation (Index) used on a view of another rank.
	ErrRankMismatch = errors.New("mdspan: rank mismatch")

	// ErrExtentMismatch signals a cross-shape conversion where a static
	// extent of the target disagrees with the runtime extent of the source.
	ErrExtentMismatch = errors.New("mdspan: extent mismatch")

	// ErrIndexCount is raised when a multi-index has a length other than the rank.
	ErrIndexCount = errors.New("mdspan: index count does not match rank")

	// ErrStrideCount signals an explicit stride array whose length differs from the rank.
	ErrStrideCount = errors.New("mdspan: stride count does not match rank")

	// ErrSliceCount signals a subspan call whose specifier count differs from the rank.
	ErrSliceCount = errors.New("mdspan: slice specifier count does not match rank")

	// ErrSliceRange signals a range specifier with first > last or outside the extent.
	ErrSliceRange = errors.New("mdspan: invalid slice range")

	// ErrIndexOutOfRange signals an index specifier outside [0, extent).
	ErrIndexOutOfRange = errors.New("mdspan: index out of range")

	// ErrMisaligned is raised by aligned and atomic accessors when the
	// handle address violates the required alignment.
	ErrMisaligned = errors.New("mdspan: handle is not aligned")

	// ErrAtomicDecay is raised when raw access to atomically accessed data is requested.
	ErrAtomicDecay = errors.New("mdspan: cannot decay an atomic handle to raw memory")

	// ErrBufferReleased is raised when a released Buffer is accessed.
	ErrBufferReleased = errors.New("mdspan: buffer already released")

	// ErrSpanTooShort signals backing data shorter than the mapping's required span size.
	ErrSpanTooShort = errors.New("mdspan: data shorter than required span size")
)
