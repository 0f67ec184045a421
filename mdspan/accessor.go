// SPDX-License-Identifier: MIT

// Package mdspan - accessor policies.
//
// An accessor turns (handle, linear offset) into an element reference (Access)
// or into a new handle i elements ahead (Offset), and can decay a handle to
// a plain slice for lower-level APIs (Decay). Each accessor names the policy
// used for views derived by Subspan through OffsetPolicy.
//
// Provided policies:
//
//	Basic[T]        handle []T,        reference *T
//	Aligned[T]      handle []T,        reference *T,               offset policy Basic[T]
//	Atomic[T]       handle []T,        reference atomicref.Ref[T], Decay panics
//	SharedOffset[T] handle Shared[T],  reference *T
//
// Handles are Go slices rather than raw pointers, so element access is
// memory-safe even though the layout performs no bounds checking.

package mdspan

// Accessor is the access-policy contract for element type T, handle type H
// and reference type R.
type Accessor[T, H, R any] interface {
	// Access returns a reference to the element i positions past h.
	Access(h H, i int) R
	// Offset returns a handle addressing i elements past h.
	Offset(h H, i int) H
	// Decay exposes h as a plain slice.
	Decay(h H) []T
}

// OffsetAccessor is an Accessor that names the accessor O to use for views
// derived from it by slicing.
type OffsetAccessor[T, H, R any, O Accessor[T, H, R]] interface {
	Accessor[T, H, R]
	OffsetPolicy() O
}

// Basic is the plain accessor: handle []T, reference *T.
type Basic[T any] struct{}

var _ OffsetAccessor[int, []int, *int, Basic[int]] = Basic[int]{}

// Access returns &h[i].
func (Basic[T]) Access(h []T, i int) *T { return &h[i] }

// Offset returns h[i:].
func (Basic[T]) Offset(h []T, i int) []T { return h[i:] }

// Decay returns h unchanged.
func (Basic[T]) Decay(h []T) []T { return h }

// OffsetPolicy returns Basic: offsetting a plain slice keeps it plain.
func (Basic[T]) OffsetPolicy() Basic[T] { return Basic[T]{} }
