// SPDX-License-Identifier: MIT

// Package mdspan provides non-owning multidimensional views over linear memory.
//
// A View is assembled from three independent policies:
//
//	shape    Extents        rank + per-dimension size, each static or Dynamic
//	layout   Mapping        multi-index -> linear offset (RightMapping, LeftMapping, StrideMapping)
//	access   Accessor       (handle, offset) -> element reference (Basic, Aligned, Atomic, SharedOffset)
//
// The view stores one value of each policy plus a base handle and never
// copies elements. All policy types are generic type parameters of View, so
// every concrete combination is compiled on its own with no interface dispatch
// on the indexing path.
//
// Quick start:
//
//	data := make([]float64, 5*4*3)
//	v := mdspan.New(data, mdspan.NewShape(5, mdspan.Dynamic, 3), 4)
//	*v.At(4, 1, 2) = 1          // data[4*12+1*3+2]
//	row := mdspan.Subspan(v, mdspan.Index(4), mdspan.All, mdspan.All)
//	_ = row.Extents()           // (4,3)
//
// Error model:
//
//   - Contract violations the compiler cannot catch in Go (index count vs.
//     rank, dynamic-extent count, specifier count, Index on rank != 1)
//     panic with a sentinel from errors.go wrapped by github.com/pkg/errors.
//   - Runtime assertions (alignment, atomic decay, shape conversion) panic
//     the same way; recoverable twins (TryNew, TryExtents, ConvertExtents,
//     SubspanChecked) return the sentinels instead.
//   - Index values are never bounds-checked by a mapping.
//
// Concurrency: views, shapes and mappings are immutable values and are safe
// to share. Element mutation through Basic views must be synchronized by the
// caller; Atomic views hand out atomicref.Ref values instead.
package mdspan
