// Copyright (c) 2024 The winsafe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package automation wraps the OLE automation string type. A BSTR is a
// length-prefixed wide-character buffer: the allocator stores the byte count
// in a 4-byte field immediately before the data pointer and appends a NUL
// terminator element after the data. Interior NULs are therefore
// representable, unlike the NUL-terminated string families.
package automation

import (
	"errors"
	"hash/maphash"
	"iter"
	"math"
	"runtime"
	"unicode/utf16"
	"unsafe"
)

// BSTR is a raw pointer to the data portion of an automation string. The
// allocation it denotes is owned by the OLE automation allocator and must be
// freed with SysFreeString and nothing else.
type BSTR uintptr

var (
	// ErrAllocFailed is returned when SysAllocStringLen reports exhaustion.
	ErrAllocFailed = errors.New("automation: failed to allocate a BSTR")

	// ErrLenTooLarge is returned when a requested element count does not fit
	// the allocator's 32-bit size field.
	ErrLenTooLarge = errors.New("automation: length does not fit in a uint32")

	// ErrSeqTooLong is returned by NewBStrFromSeq when the sequence produces
	// more elements than declared.
	ErrSeqTooLong = errors.New("automation: sequence produced more elements than declared")

	// ErrSeqTooShort is returned by NewBStrFromSeq when the sequence produces
	// fewer elements than declared.
	ErrSeqTooShort = errors.New("automation: sequence produced fewer elements than declared")
)

// liveAllocs tracks the balance of SysAllocStringLen/SysFreeString calls made
// through this package. Tests compare deltas to prove that failed
// constructors do not leak.
var liveAllocs int

func allocBStr(src *uint16, n uint32) BSTR {
	bs := sysAllocStringLen(src, n)
	if bs != 0 {
		liveAllocs++
	}
	return bs
}

func freeBStr(bs BSTR) {
	if bs != 0 {
		sysFreeString(bs)
		liveAllocs--
	}
}

// BStr is the sole owner of one automation string. Destroying it without
// reading invokes SysFreeString exactly once, through Close or through a
// best-effort finalizer. The contents may or may not be valid UTF-16.
type BStr struct {
	raw BSTR
}

func newOwned(bs BSTR) *BStr {
	b := &BStr{raw: bs}
	runtime.SetFinalizer(b, (*BStr).finalize)
	return b
}

func (b *BStr) finalize() {
	if b.raw != 0 {
		freeBStr(b.raw)
		b.raw = 0
	}
}

// NewBStr allocates an automation string holding the UTF-16 encoding of s.
// Interior NULs in s are preserved.
func NewBStr(s string) (*BStr, error) {
	return NewBStrFromWide(utf16.Encode([]rune(s)))
}

// NewBStrFromWide allocates an automation string holding a copy of w.
func NewBStrFromWide(w []uint16) (*BStr, error) {
	if uint64(len(w)) > math.MaxUint32 {
		return nil, ErrLenTooLarge
	}
	var src *uint16
	if len(w) > 0 {
		src = &w[0]
	}
	bs := allocBStr(src, uint32(len(w)))
	if bs == 0 {
		return nil, ErrAllocFailed
	}
	return newOwned(bs), nil
}

// NewBStrFromSeq allocates an automation string of exactly count elements
// (UTF-16 code units, not bytes) and fills it from seq. A sequence that
// produces more than count elements fails with ErrSeqTooLong; fewer, with
// ErrSeqTooShort. On either mismatch the partially filled allocation is
// freed before returning, so truncation bugs are never silently accepted and
// nothing leaks.
func NewBStrFromSeq(seq iter.Seq[uint16], count int) (*BStr, error) {
	if count < 0 || uint64(count) > math.MaxUint32 {
		return nil, ErrLenTooLarge
	}
	bs := allocBStr(nil, uint32(count))
	if bs == 0 {
		return nil, ErrAllocFailed
	}
	dst := unsafe.Slice((*uint16)(unsafe.Pointer(bs)), count)
	written := 0
	for c := range seq {
		if written == count {
			freeBStr(bs)
			return nil, ErrSeqTooLong
		}
		dst[written] = c
		written++
	}
	if written != count {
		freeBStr(bs)
		return nil, ErrSeqTooShort
	}
	return newOwned(bs), nil
}

// BStrFromRaw takes ownership of raw, which must have been produced by
// SysAllocStringLen or similar. Panics if raw is null.
func BStrFromRaw(raw BSTR) *BStr {
	if raw == 0 {
		panic("automation: BStrFromRaw called with a null BSTR")
	}
	return newOwned(raw)
}

// Raw returns the underlying BSTR without transferring ownership.
func (b *BStr) Raw() BSTR {
	return b.raw
}

// IsNil reports whether ownership has already been given up via Close or
// IntoRaw.
func (b *BStr) IsNil() bool {
	return b.raw == 0
}

// IntoRaw transfers ownership of the underlying BSTR to the caller without
// freeing it. The caller becomes responsible for SysFreeString.
func (b *BStr) IntoRaw() BSTR {
	raw := b.raw
	b.raw = 0
	runtime.SetFinalizer(b, nil)
	return raw
}

// Close frees the string. SysFreeString cannot fail, so Close always returns
// nil. Close is idempotent.
func (b *BStr) Close() error {
	if b.raw != 0 {
		freeBStr(b.raw)
		b.raw = 0
		runtime.SetFinalizer(b, nil)
	}
	return nil
}

// Ref returns a borrowed view covering the whole buffer, including the
// trailing terminator element. The view is invalidated by Close and IntoRaw,
// and b must be kept reachable for as long as the view is in use. Ref panics
// if ownership has already been given up.
func (b *BStr) Ref() *BStrRef {
	if b.raw == 0 {
		panic("automation: Ref called on a closed BStr")
	}
	ref := BStrRefFromPtr((*uint16)(unsafe.Pointer(b.raw)))
	runtime.KeepAlive(b)
	return ref
}

// Len returns the length in BYTES, excluding the terminator. See BStrRef.Len.
func (b *BStr) Len() int {
	n := b.Ref().Len()
	runtime.KeepAlive(b)
	return n
}

// IsEmpty reports whether the string has no data elements.
func (b *BStr) IsEmpty() bool {
	empty := b.Ref().IsEmpty()
	runtime.KeepAlive(b)
	return empty
}

// Wide returns the code units excluding the terminator. The slice aliases
// the foreign allocation; see Ref for its lifetime.
func (b *BStr) Wide() []uint16 {
	w := b.Ref().Wide()
	runtime.KeepAlive(b)
	return w
}

// ContainsNul reports whether the data contains an interior NUL element.
func (b *BStr) ContainsNul() bool {
	found := b.Ref().ContainsNul()
	runtime.KeepAlive(b)
	return found
}

// String decodes the contents lossily.
func (b *BStr) String() string {
	s := b.Ref().String()
	runtime.KeepAlive(b)
	return s
}

// Decode decodes the contents strictly, failing on unpaired surrogates.
func (b *BStr) Decode() (string, error) {
	s, err := b.Ref().Decode()
	runtime.KeepAlive(b)
	return s, err
}

// Equal reports whether b and o hold identical code-unit sequences.
// Allocation identity is irrelevant.
func (b *BStr) Equal(o *BStr) bool {
	eq := b.Ref().Equal(o.Ref())
	runtime.KeepAlive(b)
	runtime.KeepAlive(o)
	return eq
}

// EqualString compares the contents against the UTF-16 encoding of s,
// terminator excluded.
func (b *BStr) EqualString(s string) bool {
	eq := b.Ref().EqualString(s)
	runtime.KeepAlive(b)
	return eq
}

// Hash hashes the code-unit sequence, terminator included. Equal contents
// hash equally under the same seed, across owned and borrowed values.
func (b *BStr) Hash(seed maphash.Seed) uint64 {
	h := b.Ref().Hash(seed)
	runtime.KeepAlive(b)
	return h
}

// Clone allocates an independent copy through the same allocator.
func (b *BStr) Clone() (*BStr, error) {
	c, err := b.Ref().Clone()
	runtime.KeepAlive(b)
	return c, err
}
