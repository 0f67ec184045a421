// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for Dense construction and the
// numeric policy. This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that enforces invariants.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each flag impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
//
// Notes:
//   - Storage order is a construction-time choice: row-major (default) or
//     column-major. Both are addressed through the same strided mdspan view,
//     so every public method behaves identically; only Strides() and the
//     raw buffer order differ.
//   - Numeric policy:
//   - validateNaNInf controls whether Set/Apply/ingestion reject NaN/Inf at all.
//   - allowInf is a narrow exception for +Inf (e.g. "no path" distances).
//     Under validation, NaN and -Inf remain rejected even when allowInf=true.
package matrix

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultEpsilon defines the non-negative tolerance used by AllClose-style checks.
	DefaultEpsilon = 1e-9

	// DefaultValidateNaNInf toggles strict finite-value validation on ingestion and Set.
	DefaultValidateNaNInf = true

	// DefaultAllowInf permits +Inf values under validation.
	DefaultAllowInf = false

	// DefaultColumnMajor selects the storage order of new matrices (false = row-major).
	DefaultColumnMajor = false
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicEpsilonInvalid = "matrix: WithEpsilon: eps must be finite, non-negative"
)

// ---------- Public option type (functional) ----------

// Option mutates internal options. Safe to apply repeatedly (idempotent).
// Constructors MUST panic only on nonsensical values (programmer error).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept `...Option` and resolve
// them via gatherOptions.
type Options struct {
	eps            float64 // >= 0; DefaultEpsilon
	validateNaNInf bool    // DefaultValidateNaNInf
	allowInf       bool    // DefaultAllowInf (+Inf only)
	columnMajor    bool    // DefaultColumnMajor
}

// ---------- Constructors (WithX) ----------

// WithEpsilon sets the numeric tolerance eps used by AllClose.
// Implementation:
//   - Stage 1: validate eps is finite and ≥ 0.
//   - Stage 2: return a setter that writes eps into Options.
//
// Errors:
//   - Panics with a stable message when eps is invalid.
//
// Complexity:
//   - Time O(1), Space O(1).
func WithEpsilon(eps float64) Option {
	if isNonFinite(eps) || eps < 0 {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.eps = eps }
}

// WithValidateNaNInf enables strict finite-value validation (the default).
// When enabled, NaN and -Inf are always rejected; +Inf is rejected unless
// WithAllowInf is also given.
func WithValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = true }
}

// WithNoValidateNaNInf disables NaN/Inf validation (use with care).
// The flag propagates only on creation; existing matrices are unaffected.
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

// WithAllowInf permits +Inf entries under validation. It does NOT imply
// "allow NaN": NaN and -Inf are still rejected.
func WithAllowInf() Option {
	return func(o *Options) { o.allowInf = true }
}

// WithColumnMajor stores new matrices in column-major order.
func WithColumnMajor() Option {
	return func(o *Options) { o.columnMajor = true }
}

// WithRowMajor stores new matrices in row-major order (the default).
func WithRowMajor() Option {
	return func(o *Options) { o.columnMajor = false }
}

// ---------- Resolution ----------

// NewMatrixOptions resolves opts on top of the defaults.
// The resulting Options is read through its accessor methods.
func NewMatrixOptions(opts ...Option) Options {
	return gatherOptions(opts...)
}

// Epsilon returns the resolved tolerance.
func (o Options) Epsilon() float64 { return o.eps }

// ValidateNaNInf reports whether the numeric guard is enabled.
func (o Options) ValidateNaNInf() bool { return o.validateNaNInf }

// AllowInf reports whether +Inf passes the numeric guard.
func (o Options) AllowInf() bool { return o.allowInf }

// ColumnMajor reports the resolved storage order.
func (o Options) ColumnMajor() bool { return o.columnMajor }

// defaultOptions returns the documented defaults (single source of truth).
func defaultOptions() Options {
	return Options{
		eps:            DefaultEpsilon,
		validateNaNInf: DefaultValidateNaNInf,
		allowInf:       DefaultAllowInf,
		columnMajor:    DefaultColumnMajor,
	}
}

// gatherOptions applies user-provided Option setters on top of defaults.
// Implementation:
//   - Stage 1: start from defaultOptions().
//   - Stage 2: apply setters in order (last-writer-wins).
//
// Complexity:
//   - Time O(k), Space O(1) for k=len(user).
func gatherOptions(user ...Option) Options {
	o := defaultOptions()
	for _, set := range user {
		set(&o) // apply in order; last-writer-wins semantics
	}

	return o
}

// policy is the numeric guard carried by every Dense and inherited by its views.
type policy struct {
	validateNaNInf bool
	allowInf       bool
}

// reject reports whether v violates the policy.
func (p policy) reject(v float64) bool {
	if !p.validateNaNInf {
		return false
	}
	if math.IsNaN(v) || math.IsInf(v, -1) {
		return true
	}

	return math.IsInf(v, 1) && !p.allowInf
}

// isNonFinite reports NaN or ±Inf.
func isNonFinite(x float64) bool { return math.IsNaN(x) || math.IsInf(x, 0) }
