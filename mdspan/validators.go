// SPDX-License-Identifier: MIT
// Package: mdspan
//
// Purpose:
//   - Single source of truth for checks shared by constructors and the
//     checked subspan path.
//   - Validators return wrapped sentinels; assertion helpers panic with them.
//
// Note:
//   - Nothing here runs on the indexing hot path (At/Offset only count indices).

package mdspan

import (
	"unsafe"

	"github.com/pkg/errors"
)

// panicf aborts with a sentinel wrapped in call-site context and a stack trace.
func panicf(sentinel error, format string, args ...any) {
	panic(errors.Wrapf(sentinel, format, args...))
}

// ValidateSpan reports ErrSpanTooShort when n elements cannot back mapping m.
func ValidateSpan(m Mapping, n int) error {
	if need := m.RequiredSpanSize(); n < need {
		return errors.Wrapf(ErrSpanTooShort, "ValidateSpan: have %d, need %d", n, need)
	}

	return nil
}

// ValidateAlignment reports ErrMisaligned when the first element of h is not
// a multiple of align bytes. Empty slices are trivially aligned.
func ValidateAlignment[T any](h []T, align int) error {
	if len(h) == 0 || align <= 1 {
		return nil
	}
	addr := uintptr(unsafe.Pointer(&h[0]))
	if addr%uintptr(align) != 0 {
		return errors.Wrapf(ErrMisaligned, "ValidateAlignment: address %#x, alignment %d", addr, align)
	}

	return nil
}

// isPowerOfTwo reports whether n is a positive power of two.
func isPowerOfTwo(n int) bool { return n > 0 && n&(n-1) == 0 }
