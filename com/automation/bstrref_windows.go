// Copyright (c) 2024 The winsafe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package automation

import (
	"hash/maphash"
	"unicode/utf16"
	"unsafe"

	"github.com/winsafe-dev/winsafe/internal"
	"golang.org/x/exp/slices"
)

// BStrRef is a borrowed, non-owning view of an automation string. It never
// allocates or frees. The pointer and the length derived from the allocation
// header travel together in one value and are never separated; code must not
// reconstruct a view from a bare pointer/length pair it assembled itself.
//
// A BStrRef is valid only as long as the allocation behind it: for a view
// obtained from BStr.Ref, until that BStr is closed.
type BStrRef struct {
	// data spans the whole buffer including the terminator element.
	data []uint16
}

// BStrRefFromPtr builds a view from a raw BSTR data pointer by reading the
// 4-byte byte count stored immediately before it. This is the one place in
// the module that reads through a pointer offset before the nominal start of
// the object; its safety rests entirely on the allocator's documented
// layout. p must be non-null (panics otherwise), must point at a live
// allocation produced by SysAllocStringLen or similar, and must denote a
// wide-character string, i.e. a byte count divisible by 2 (panics otherwise).
func BStrRefFromPtr(p *uint16) *BStrRef {
	if p == nil {
		panic("automation: BStrRefFromPtr called with a nil pointer")
	}
	byteLen := *(*uint32)(unsafe.Add(unsafe.Pointer(p), -4))
	if byteLen%2 != 0 {
		panic("automation: BSTR byte count is not divisible by 2")
	}
	return &BStrRef{data: unsafe.Slice(p, byteLen/2+1)}
}

// Ptr returns a pointer to the data. It is guaranteed non-nil, including for
// the empty string.
func (r *BStrRef) Ptr() *uint16 {
	return &r.data[0]
}

// Len returns the length in BYTES, excluding the terminator element. Wide
// characters occupy two bytes, so Len of a BStr built from "Test" is 8, not
// 4. This deliberately mirrors the allocator's own convention and differs
// from the element counts reported by the NUL-terminated string families.
func (r *BStrRef) Len() int {
	return (len(r.data) - 1) * 2
}

// IsEmpty reports whether the string has no data elements.
func (r *BStrRef) IsEmpty() bool {
	return r.Len() == 0
}

// Wide returns the code units excluding the terminator. Interior NULs, if
// any, are included.
func (r *BStrRef) Wide() []uint16 {
	return r.data[:len(r.data)-1]
}

// WideWithNul returns the code units including the terminator. The result is
// only usable as a NUL-terminated string if ContainsNul reports false.
func (r *BStrRef) WideWithNul() []uint16 {
	return r.data
}

// ContainsNul reports whether the data contains an interior NUL element.
func (r *BStrRef) ContainsNul() bool {
	return slices.Contains(r.Wide(), 0)
}

// String decodes the contents lossily, substituting U+FFFD for unpaired
// surrogates. Interior NULs do not stop the decode.
func (r *BStrRef) String() string {
	return internal.DecodeWideLossy(r.Wide())
}

// Decode decodes the contents strictly, failing on unpaired surrogates.
func (r *BStrRef) Decode() (string, error) {
	return internal.DecodeWide(r.Wide())
}

// Equal reports whether r and o hold identical code-unit sequences,
// terminator excluded.
func (r *BStrRef) Equal(o *BStrRef) bool {
	return slices.Equal(r.Wide(), o.Wide())
}

// EqualString compares the contents against the UTF-16 encoding of s,
// terminator excluded. This matches how the platform compares automation
// strings with native text.
func (r *BStrRef) EqualString(s string) bool {
	return slices.Equal(r.Wide(), utf16.Encode([]rune(s)))
}

// Compare orders r against o by code-unit sequence.
func (r *BStrRef) Compare(o *BStrRef) int {
	return slices.Compare(r.Wide(), o.Wide())
}

// Hash hashes the code-unit sequence including the terminator. Because every
// view ends with exactly one terminator element, equal contents hash equally
// even though Equal ignores the terminator.
func (r *BStrRef) Hash(seed maphash.Seed) uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	for _, c := range r.data {
		h.WriteByte(byte(c))
		h.WriteByte(byte(c >> 8))
	}
	return h.Sum64()
}

// Clone promotes the borrowed view to an independent owned copy, allocated
// through the same allocator.
func (r *BStrRef) Clone() (*BStr, error) {
	return NewBStrFromWide(r.Wide())
}
