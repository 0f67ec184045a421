// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/mdview/mdspan"
)

// run executes the command tree with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	err := cmd.Execute()

	return out.String(), err
}

// report parses "key: value" lines; indented keys get a "sub." prefix.
func report(out string) map[string]string {
	r := make(map[string]string)
	for _, line := range strings.Split(out, "\n") {
		key, val, ok := strings.Cut(line, ": ")
		if !ok {
			continue
		}
		if strings.HasPrefix(key, "  ") {
			key = "sub." + strings.TrimSpace(key)
		}
		r[key] = strings.TrimSpace(val)
	}

	return r
}

// TestDescribeRight reproduces the row-major worked example.
func TestDescribeRight(t *testing.T) {
	out, err := run(t, "describe", "--shape", "5,?,3,?,1", "--dynamic", "4,2",
		"--index", "4,1,2,1,0", "--slice", "2,1:3,:,:,0")
	require.NoError(t, err)
	r := report(out)

	require.Equal(t, "(5,4,3,2,1)", r["extents"])
	require.Equal(t, "[5 ? 3 ? 1]", r["shape"])
	require.Equal(t, "[24 6 2 1 1]", r["strides"])
	require.Equal(t, "120", r["required span"])
	require.Equal(t, "true", r["contiguous"])
	require.Equal(t, "107", r["offset(4,1,2,1,0)"])
	require.Contains(t, out, "subspan[2,1:3,:,:,0]:\n")
	require.Equal(t, "(2,3,2)", r["sub.extents"])
	require.Equal(t, "[? 3 ?]", r["sub.shape"])
	require.Equal(t, "[6 2 1]", r["sub.strides"])
	require.Equal(t, "54", r["sub.offset"])
	require.Equal(t, "true", r["sub.contiguous"])
}

// TestDescribeLeft reproduces the column-major worked example.
func TestDescribeLeft(t *testing.T) {
	out, err := run(t, "describe", "--shape", "5,?,3,?,1", "--dynamic", "4,2", "--layout", "LEFT",
		"--index", "4,1,2,1,0", "--slice", "2,1:3,:,:,0")
	require.NoError(t, err)
	r := report(out)

	require.Equal(t, "left", r["layout"])
	require.Equal(t, "[1 5 20 60 120]", r["strides"])
	require.Equal(t, "109", r["offset(4,1,2,1,0)"])
	require.Equal(t, "[5 20 60]", r["sub.strides"])
	require.Equal(t, "7", r["sub.offset"])
	require.Equal(t, "false", r["sub.contiguous"])
}

// TestDescribeValues prints subspan elements of the 0..n-1 sequence.
func TestDescribeValues(t *testing.T) {
	out, err := run(t, "describe", "--shape", "2,3", "--slice", "1,:", "--values")
	require.NoError(t, err)
	require.Equal(t, "[3 4 5]", report(out)["sub.values"])

	out, err = run(t, "describe", "--shape", "2,3", "--layout", "left", "--slice", ":,1", "--values")
	require.NoError(t, err)
	require.Equal(t, "[2 3]", report(out)["sub.values"]) // column 1 in column-major storage
}

// TestDescribeStride uses explicit strides.
func TestDescribeStride(t *testing.T) {
	out, err := run(t, "describe", "--shape", "2,3", "--layout", "stride", "--strides", "1,2")
	require.NoError(t, err)
	r := report(out)
	require.Equal(t, "[1 2]", r["strides"])
	require.Equal(t, "true", r["contiguous"])

	out, err = run(t, "describe", "--shape", "2,3", "--layout", "stride", "--strides", "4,1")
	require.NoError(t, err)
	require.Equal(t, "false", report(out)["contiguous"]) // padded rows
	require.Equal(t, "7", report(out)["required span"])

	_, err = run(t, "describe", "--shape", "2,3", "--layout", "stride", "--strides", "1")
	require.ErrorIs(t, err, mdspan.ErrStrideCount)
}

// TestDescribeErrors covers the sentinel surface.
func TestDescribeErrors(t *testing.T) {
	_, err := run(t, "describe", "--shape", "2,3", "--layout", "diagonal")
	require.ErrorIs(t, err, ErrBadFlag)

	_, err = run(t, "describe", "--shape", "2,?", "--dynamic", "1,2")
	require.ErrorIs(t, err, mdspan.ErrDynamicCount)

	_, err = run(t, "describe", "--shape", "2,3", "--index", "2,0")
	require.ErrorIs(t, err, mdspan.ErrIndexOutOfRange)

	_, err = run(t, "describe", "--shape", "2,3", "--index", "1")
	require.ErrorIs(t, err, mdspan.ErrIndexCount)

	_, err = run(t, "describe", "--shape", "2,3", "--slice", "0,2:1")
	require.ErrorIs(t, err, mdspan.ErrSliceRange)

	_, err = run(t, "describe", "--shape", "2,3", "extra")
	require.Error(t, err) // no positional args
}

// TestDescribeFromEnv reads settings from MDSPAN_* variables.
func TestDescribeFromEnv(t *testing.T) {
	t.Setenv("MDSPAN_SHAPE", "?,3")
	t.Setenv("MDSPAN_DYNAMIC", "2")
	t.Setenv("MDSPAN_LAYOUT", "left")

	out, err := run(t, "describe")
	require.NoError(t, err)
	r := report(out)
	require.Equal(t, "(2,3)", r["extents"])
	require.Equal(t, "[1 2]", r["strides"])

	out, err = run(t, "describe", "--layout", "right") // flag beats env
	require.NoError(t, err)
	require.Equal(t, "[3 1]", report(out)["strides"])
}

// TestDescribeFromConfigFile reads settings from a yaml file.
func TestDescribeFromConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inspect.yaml")
	cfg := "shape: \"4,?\"\ndynamic: \"3\"\nlayout: left\nindex: \"3,2\"\n"
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o600))

	out, err := run(t, "describe", "--config", path)
	require.NoError(t, err)
	r := report(out)
	require.Equal(t, "(4,3)", r["extents"])
	require.Equal(t, "[1 4]", r["strides"])
	require.Equal(t, "11", r["offset(3,2)"])

	_, err = run(t, "describe", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
