// SPDX-License-Identifier: MIT

package main

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/katalvlaran/mdview/mdspan"
)

// ErrBadFlag is returned for flag or config values that do not parse.
var ErrBadFlag = errors.New("mdspan-inspect: invalid value")

const (
	dynamicToken = "?"
	allToken     = ":"
	rangeSep     = ":"
	listSep      = ","
)

// splitList splits "a,b,c" into trimmed fields; an empty string yields none.
func splitList(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, listSep)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	return parts
}

// parseInts parses a comma-separated list of non-negative integers.
func parseInts(flag, s string) ([]int, error) {
	fields := splitList(s)
	out := make([]int, 0, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 {
			return nil, errors.Wrapf(ErrBadFlag, "--%s: item %d = %q", flag, i, f)
		}
		out = append(out, n)
	}

	return out, nil
}

// parseShape parses "5,?,3" into a Shape; "?" marks a dynamic dimension.
// An empty string is the rank-0 shape.
func parseShape(s string) (mdspan.Shape, error) {
	fields := splitList(s)
	dims := make([]int, 0, len(fields))
	for i, f := range fields {
		if f == dynamicToken {
			dims = append(dims, mdspan.Dynamic)
			continue
		}
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 {
			return mdspan.Shape{}, errors.Wrapf(ErrBadFlag, "--shape: dim %d = %q", i, f)
		}
		dims = append(dims, n)
	}

	return mdspan.NewShape(dims...), nil
}

// parseSlices parses "2,1:3,:" into specifiers: an integer is an Index,
// "a:b" a half-open Range and ":" All.
func parseSlices(s string) ([]mdspan.Slice, error) {
	fields := splitList(s)
	out := make([]mdspan.Slice, 0, len(fields))
	for i, f := range fields {
		switch {
		case f == allToken:
			out = append(out, mdspan.All)
		case strings.Contains(f, rangeSep):
			lo, hi, _ := strings.Cut(f, rangeSep)
			first, err1 := strconv.Atoi(strings.TrimSpace(lo))
			last, err2 := strconv.Atoi(strings.TrimSpace(hi))
			if err1 != nil || err2 != nil {
				return nil, errors.Wrapf(ErrBadFlag, "--slice: item %d = %q", i, f)
			}
			out = append(out, mdspan.Range(first, last))
		default:
			n, err := strconv.Atoi(f)
			if err != nil {
				return nil, errors.Wrapf(ErrBadFlag, "--slice: item %d = %q", i, f)
			}
			out = append(out, mdspan.Index(n))
		}
	}

	return out, nil
}
