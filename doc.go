// Package mdview is a toolkit for multidimensional views over flat memory:
// non-owning arrays with a shape, a layout and an access policy, plus the
// pieces built on top of them.
//
// What is inside:
//
//	mdspan/    — Shape/Extents, layouts (right, left, stride), accessors
//	             (basic, aligned, atomic, shared-offset), View and Subspan
//	atomicref/ — atomic operations on plain, properly aligned memory
//	matrix/    — float64 Dense matrix with no-copy windows and transposes
//	cmd/mdspan-inspect/ — CLI that prints layouts, offsets and subspans
//
// Quick example:
//
//	data := make([]float64, 120)
//	v := mdspan.New(data, mdspan.NewShape(5, mdspan.Dynamic, 3, mdspan.Dynamic, 1), 4, 2)
//	*v.At(4, 1, 2, 1, 0) = 1 // offset 107 in row-major order
//
//	row := mdspan.Subspan(v, mdspan.Index(2), mdspan.Range(1, 3), mdspan.All, mdspan.All, mdspan.Index(0))
//	fmt.Println(row.Extents(), row.Strides()) // (2,3,2) [6 2 1]
//
// Views never own or copy memory (except matrix.Dense, which owns a
// reference-counted mdspan.Buffer). Contract violations such as a wrong
// index count panic with a sentinel error; recoverable constructors return it.
package mdview
