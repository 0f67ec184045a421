// SPDX-License-Identifier: MIT

// Package atomicref provides Ref, an atomic reference to a value that lives
// in ordinary memory (a slice element, a struct field), so plain data can be
// accessed atomically without being declared as an atomic type.
//
// Memory orders:
//
//	Every operation accepts an optional MemoryOrder (SeqCst by default).
//	sync/atomic is sequentially consistent, which satisfies every weaker
//	order, so Relaxed/Acquire/Release only document intent. Orders that are
//	meaningless for an operation (a Release load, an Acquire store, a
//	failure order stronger than the success order) panic with ErrInvalidOrder.
//
// Supported element types are 32- and 64-bit integers and floats (see Value).
// 64-bit values must be 8-byte aligned; New asserts RequiredAlignment.
package atomicref

import (
	"sync/atomic"
	"unsafe"

	"github.com/pkg/errors"
)

var (
	// ErrMisaligned is raised by New when the target violates RequiredAlignment.
	ErrMisaligned = errors.New("atomicref: pointer is not aligned")

	// ErrInvalidOrder is raised when a memory order is not valid for the operation.
	ErrInvalidOrder = errors.New("atomicref: invalid memory order")

	// ErrNilPointer is raised by New on a nil target.
	ErrNilPointer = errors.New("atomicref: nil pointer")
)

// Integer is the set of integer element types.
type Integer interface {
	~int32 | ~int64 | ~uint32 | ~uint64
}

// Float is the set of floating-point element types.
type Float interface {
	~float32 | ~float64
}

// Value is the set of element types Ref can operate on.
type Value interface {
	Integer | Float
}

// MemoryOrder mirrors the C++ memory_order enumeration.
type MemoryOrder uint8

const (
	SeqCst MemoryOrder = iota // default
	Relaxed
	Consume
	Acquire
	Release
	AcqRel
)

func (o MemoryOrder) String() string {
	switch o {
	case SeqCst:
		return "seq_cst"
	case Relaxed:
		return "relaxed"
	case Consume:
		return "consume"
	case Acquire:
		return "acquire"
	case Release:
		return "release"
	case AcqRel:
		return "acq_rel"
	default:
		return "invalid"
	}
}

// strength orders the memory orders for the success/failure rule of compare-exchange.
func (o MemoryOrder) strength() int {
	switch o {
	case Relaxed:
		return 0
	case Consume:
		return 1
	case Acquire, Release:
		return 2
	case AcqRel:
		return 3
	default:
		return 4
	}
}

// Ref is an atomic reference to a *T. It is a small value and is copied freely;
// all copies refer to the same element.
type Ref[T Value] struct {
	p *T
}

// RequiredAlignment returns the byte alignment a target of type T must have.
func RequiredAlignment[T Value]() uintptr {
	var zero T
	return unsafe.Sizeof(zero)
}

// New returns an atomic reference to *p.
// It panics with ErrNilPointer or ErrMisaligned (programmer errors).
func New[T Value](p *T) Ref[T] {
	if p == nil {
		panic(errors.WithStack(ErrNilPointer))
	}
	if align := RequiredAlignment[T](); uintptr(unsafe.Pointer(p))%align != 0 {
		panic(errors.Wrapf(ErrMisaligned, "atomicref.New: %p, alignment %d", p, align))
	}

	return Ref[T]{p: p}
}

// IsLockFree reports whether operations are lock-free; 32/64-bit atomics always are.
func (r Ref[T]) IsLockFree() bool { return true }

// Pointer returns the referenced address.
func (r Ref[T]) Pointer() *T { return r.p }

// Load atomically reads the value. Valid orders: SeqCst, Relaxed, Consume, Acquire.
func (r Ref[T]) Load(order ...MemoryOrder) T {
	checkLoadOrder("Load", order)
	return r.load()
}

// Store atomically writes v. Valid orders: SeqCst, Relaxed, Release.
func (r Ref[T]) Store(v T, order ...MemoryOrder) {
	checkStoreOrder("Store", order)
	if is64[T]() {
		atomic.StoreUint64((*uint64)(unsafe.Pointer(r.p)), bits64(v))
		return
	}
	atomic.StoreUint32((*uint32)(unsafe.Pointer(r.p)), bits32(v))
}

// Exchange atomically replaces the value with v and returns the old value.
func (r Ref[T]) Exchange(v T, order ...MemoryOrder) T {
	checkOrders("Exchange", order)
	if is64[T]() {
		return from64[T](atomic.SwapUint64((*uint64)(unsafe.Pointer(r.p)), bits64(v)))
	}

	return from32[T](atomic.SwapUint32((*uint32)(unsafe.Pointer(r.p)), bits32(v)))
}

// CompareExchangeStrong stores desired if the current value equals *expected
// (bitwise) and returns true; otherwise it loads the current value into
// *expected and returns false. orders are (success[, failure]).
func (r Ref[T]) CompareExchangeStrong(expected *T, desired T, orders ...MemoryOrder) bool {
	checkCASOrders("CompareExchangeStrong", orders)
	for {
		if r.cas(*expected, desired) {
			return true
		}
		// Comparison is bitwise; retry only if the value moved back to *expected.
		if cur := r.load(); bits64(cur) != bits64(*expected) {
			*expected = cur
			return false
		}
	}
}

// CompareExchangeWeak behaves like CompareExchangeStrong; sync/atomic never
// fails spuriously, so the weak form never does either.
func (r Ref[T]) CompareExchangeWeak(expected *T, desired T, orders ...MemoryOrder) bool {
	checkCASOrders("CompareExchangeWeak", orders)
	if r.cas(*expected, desired) {
		return true
	}
	*expected = r.load()

	return false
}

// FetchAdd atomically adds delta and returns the previous value.
func (r Ref[T]) FetchAdd(delta T, order ...MemoryOrder) T {
	checkOrders("FetchAdd", order)
	return r.update(func(old T) T { return old + delta })
}

// FetchSub atomically subtracts delta and returns the previous value.
func (r Ref[T]) FetchSub(delta T, order ...MemoryOrder) T {
	checkOrders("FetchSub", order)
	return r.update(func(old T) T { return old - delta })
}

// Add atomically adds delta and returns the new value (operator+=).
func (r Ref[T]) Add(delta T) T { return r.FetchAdd(delta) + delta }

// Sub atomically subtracts delta and returns the new value (operator-=).
func (r Ref[T]) Sub(delta T) T { return r.FetchSub(delta) - delta }

// FetchAnd atomically stores *r & v and returns the previous value.
func FetchAnd[T Integer](r Ref[T], v T, order ...MemoryOrder) T {
	checkOrders("FetchAnd", order)
	return r.update(func(old T) T { return old & v })
}

// FetchOr atomically stores *r | v and returns the previous value.
func FetchOr[T Integer](r Ref[T], v T, order ...MemoryOrder) T {
	checkOrders("FetchOr", order)
	return r.update(func(old T) T { return old | v })
}

// FetchXor atomically stores *r ^ v and returns the previous value.
func FetchXor[T Integer](r Ref[T], v T, order ...MemoryOrder) T {
	checkOrders("FetchXor", order)
	return r.update(func(old T) T { return old ^ v })
}

// ---------- internals ----------

func (r Ref[T]) load() T {
	if is64[T]() {
		return from64[T](atomic.LoadUint64((*uint64)(unsafe.Pointer(r.p))))
	}

	return from32[T](atomic.LoadUint32((*uint32)(unsafe.Pointer(r.p))))
}

func (r Ref[T]) cas(old, desired T) bool {
	if is64[T]() {
		return atomic.CompareAndSwapUint64((*uint64)(unsafe.Pointer(r.p)), bits64(old), bits64(desired))
	}

	return atomic.CompareAndSwapUint32((*uint32)(unsafe.Pointer(r.p)), bits32(old), bits32(desired))
}

// update applies f in a CAS loop and returns the value f was applied to.
func (r Ref[T]) update(f func(T) T) T {
	for {
		old := r.load()
		if r.cas(old, f(old)) {
			return old
		}
	}
}

func is64[T Value]() bool {
	var zero T
	return unsafe.Sizeof(zero) == 8
}

// bits64 returns the raw bit pattern of v widened to 64 bits.
func bits64[T Value](v T) uint64 {
	if is64[T]() {
		return *(*uint64)(unsafe.Pointer(&v))
	}

	return uint64(*(*uint32)(unsafe.Pointer(&v)))
}

func bits32[T Value](v T) uint32 { return *(*uint32)(unsafe.Pointer(&v)) }

func from64[T Value](b uint64) T { return *(*T)(unsafe.Pointer(&b)) }

func from32[T Value](b uint32) T { return *(*T)(unsafe.Pointer(&b)) }

func pick(order []MemoryOrder) MemoryOrder {
	if len(order) == 0 {
		return SeqCst
	}

	return order[0]
}

func checkOrders(op string, order []MemoryOrder) {
	if o := pick(order); o > AcqRel {
		panic(errors.Wrapf(ErrInvalidOrder, "%s: %d", op, o))
	}
}

func checkLoadOrder(op string, order []MemoryOrder) {
	checkOrders(op, order)
	if o := pick(order); o == Release || o == AcqRel {
		panic(errors.Wrapf(ErrInvalidOrder, "%s: %s", op, o))
	}
}

func checkStoreOrder(op string, order []MemoryOrder) {
	checkOrders(op, order)
	if o := pick(order); o == Consume || o == Acquire || o == AcqRel {
		panic(errors.Wrapf(ErrInvalidOrder, "%s: %s", op, o))
	}
}

// checkCASOrders validates (success[, failure]); failure may not be
// Release/AcqRel nor stronger than success.
func checkCASOrders(op string, orders []MemoryOrder) {
	if len(orders) > 2 {
		panic(errors.Wrapf(ErrInvalidOrder, "%s: %d orders", op, len(orders)))
	}
	checkOrders(op, orders)
	if len(orders) < 2 {
		return
	}
	success, failure := orders[0], orders[1]
	checkOrders(op, orders[1:])
	if failure == Release || failure == AcqRel || failure.strength() > success.strength() {
		panic(errors.Wrapf(ErrInvalidOrder, "%s: failure order %s with success order %s", op, failure, success))
	}
}
