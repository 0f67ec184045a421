// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/katalvlaran/mdview/mdspan"
)

// Supported --layout values.
const (
	layoutRight  = "right"
	layoutLeft   = "left"
	layoutStride = "stride"
)

func newDescribeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Print extents, strides, properties, an offset and a subspan",
		Example: "  mdspan-inspect describe --shape 5,?,3,?,1 --dynamic 4,2 --index 4,1,2,1,0\n" +
			"  mdspan-inspect describe --shape 5,?,3,?,1 --dynamic 4,2 --layout left --slice 2,1:3,:,:,0 --values",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := resolve(v)
			if err != nil {
				return err
			}

			return describe(cmd.OutOrStdout(), c)
		},
	}

	f := cmd.Flags()
	f.String(flagShape, "", `comma-separated dims, "?" for dynamic (e.g. 5,?,3)`)
	f.String(flagDynamic, "", "values of the dynamic dims, in order")
	f.String(flagLayout, layoutRight, "layout: right, left or stride")
	f.String(flagStrides, "", "explicit strides for --layout stride")
	f.String(flagIndex, "", "multi-index whose offset is printed")
	f.String(flagSlice, "", `subspan specifiers: N, A:B or ":" per dim`)
	f.Bool(flagValues, false, "print the subspan elements of a 0..n-1 sequence")

	return cmd
}

// buildMapping resolves the layout name into a mapping over e.
func buildMapping(e mdspan.Extents, layout, strides string) (mdspan.Mapping, error) {
	switch strings.ToLower(layout) {
	case layoutRight:
		return mdspan.NewRightMapping(e), nil
	case layoutLeft:
		return mdspan.NewLeftMapping(e), nil
	case layoutStride:
		st, err := parseInts(flagStrides, strides)
		if err != nil {
			return nil, err
		}
		m, err := mdspan.TryStrideMapping(e, st)
		if err != nil {
			return nil, errors.Wrap(err, "--strides")
		}

		return m, nil
	}

	return nil, errors.Wrapf(ErrBadFlag, "--layout %q", layout)
}

// checkIndex validates a multi-index against e.
func checkIndex(e mdspan.Extents, idx []int) error {
	if len(idx) != e.Rank() {
		return errors.Wrapf(mdspan.ErrIndexCount, "--index: %d values for rank %d", len(idx), e.Rank())
	}
	for k, i := range idx {
		if i >= e.Extent(k) {
			return errors.Wrapf(mdspan.ErrIndexOutOfRange, "--index: dim %d = %d, extent %d", k, i, e.Extent(k))
		}
	}

	return nil
}

// describe renders the report for c to w.
// Implementation:
//   - Stage 1: parse the shape and bind the dynamic values.
//   - Stage 2: build the mapping and print its properties.
//   - Stage 3: optional offset of --index.
//   - Stage 4: optional subspan of --slice, over a view of 0..n-1 when --values is set.
func describe(w io.Writer, c config) error {
	shape, err := parseShape(c.Shape)
	if err != nil {
		return err
	}
	dyn, err := parseInts(flagDynamic, c.Dynamic)
	if err != nil {
		return err
	}
	e, err := shape.TryExtents(dyn...)
	if err != nil {
		return errors.Wrap(err, "--dynamic")
	}
	m, err := buildMapping(e, c.Layout, c.Strides)
	if err != nil {
		return err
	}

	p := printer{w: w}
	p.line("extents", e.String())
	p.line("shape", shape.String())
	p.line("layout", strings.ToLower(c.Layout))
	p.line("strides", fmt.Sprint(mdspan.Strides(m)))
	p.line("required span", fmt.Sprint(m.RequiredSpanSize()))
	p.line("size", fmt.Sprint(e.Size()))
	p.line("unique", fmt.Sprint(m.IsUnique()))
	p.line("contiguous", fmt.Sprint(m.IsContiguous()))
	p.line("strided", fmt.Sprint(m.IsStrided()))

	if c.Index != "" {
		idx, err := parseInts(flagIndex, c.Index)
		if err != nil {
			return err
		}
		if err := checkIndex(e, idx); err != nil {
			return err
		}
		p.line(fmt.Sprintf("offset(%s)", c.Index), fmt.Sprint(m.Offset(idx...)))
	}

	if c.Slice != "" {
		if err := describeSubspan(&p, m, c); err != nil {
			return err
		}
	}

	return p.err
}

// describeSubspan prints the deduced subspan of m for c.Slice.
func describeSubspan(p *printer, m mdspan.Mapping, c config) error {
	slices, err := parseSlices(c.Slice)
	if err != nil {
		return err
	}
	e := m.Extents()
	if err := mdspan.ValidateSlices(e, slices...); err != nil {
		return errors.Wrap(err, "--slice")
	}
	subE, subStrides, offset := mdspan.DeduceSubspan(e, mdspan.Strides(m), slices...)
	sub := mdspan.NewStrideMapping(subE, subStrides)

	p.line(fmt.Sprintf("subspan[%s]", c.Slice), "")
	p.line("  extents", subE.String())
	p.line("  shape", subE.Shape().String())
	p.line("  strides", fmt.Sprint(subStrides))
	p.line("  offset", fmt.Sprint(offset))
	p.line("  contiguous", fmt.Sprint(sub.IsContiguous()))

	if c.Values {
		data := make([]float64, m.RequiredSpanSize())
		for i := range data {
			data[i] = float64(i)
		}
		view := mdspan.FromMapping(data, mdspan.ToStride(m))
		p.line("  values", fmt.Sprint(mdspan.Collect(mdspan.Subspan(view, slices...))))
	}

	return nil
}

// printer writes aligned "key: value" lines and keeps the first write error.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(key, val string) {
	if p.err != nil {
		return
	}
	if val == "" {
		_, p.err = fmt.Fprintf(p.w, "%s:\n", key)
		return
	}
	_, p.err = fmt.Fprintf(p.w, "%-18s %s\n", key+":", val)
}
