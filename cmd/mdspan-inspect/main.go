// SPDX-License-Identifier: MIT

// Command mdspan-inspect prints how a multidimensional shape is laid out in
// memory: extents, strides, required span size, layout properties, the
// offset of a multi-index and the result of slicing it.
//
// Every flag can also come from the environment (MDSPAN_SHAPE, MDSPAN_LAYOUT,
// ...) or from a config file given with --config.
//
//	mdspan-inspect describe --shape 5,?,3,?,1 --dynamic 4,2 --index 4,1,2,1,0 --slice 2,1:3,:,:,0
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
