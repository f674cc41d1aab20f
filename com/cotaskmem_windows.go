// Copyright (c) 2024 The winsafe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package com

import (
	"errors"
	"runtime"
	"unsafe"

	"github.com/winsafe-dev/winsafe/internal"
	"golang.org/x/sys/windows"
)

// ErrAllocFailed is returned when the COM task allocator reports exhaustion.
var ErrAllocFailed = errors.New("com: CoTaskMemAlloc failed")

// CoTaskMemString owns a NUL-terminated wide-character buffer allocated by
// CoTaskMemAlloc and releases it via CoTaskMemFree. System calls such as
// SHGetKnownFolderPath hand their output to the caller in this form.
//
// The length is not stored; Len and every accessor derived from it rescan
// the buffer for the terminator, so cache the result if it is reused. Text
// containing an interior NUL cannot be represented past the first one.
type CoTaskMemString struct {
	p *uint16
}

// NewCoTaskMemString copies s, re-encoded as UTF-16 with a terminating NUL,
// into a fresh CoTaskMemAlloc allocation. s must not contain interior NULs.
func NewCoTaskMemString(s string) (*CoTaskMemString, error) {
	buf, err := windows.UTF16FromString(s)
	if err != nil {
		return nil, err
	}
	raw := coTaskMemAlloc(uintptr(len(buf)) * 2)
	if raw == 0 {
		return nil, ErrAllocFailed
	}
	copy(unsafe.Slice((*uint16)(unsafe.Pointer(raw)), len(buf)), buf)
	return CoTaskMemStringFromPtr((*uint16)(unsafe.Pointer(raw))), nil
}

// CoTaskMemStringFromPtr takes ownership of p, which must be a non-nil
// pointer to a NUL-terminated wide string allocated by the COM task
// allocator. Panics if p is nil.
func CoTaskMemStringFromPtr(p *uint16) *CoTaskMemString {
	if p == nil {
		panic("com: CoTaskMemStringFromPtr called with a nil pointer")
	}
	s := &CoTaskMemString{p: p}
	runtime.SetFinalizer(s, (*CoTaskMemString).finalize)
	return s
}

func (s *CoTaskMemString) finalize() {
	if s.p != nil {
		windows.CoTaskMemFree(unsafe.Pointer(s.p))
		s.p = nil
	}
}

// Ptr returns the underlying pointer without transferring ownership.
func (s *CoTaskMemString) Ptr() *uint16 {
	return s.p
}

// Len returns the number of UTF-16 code units before the terminator. This is
// an O(n) scan on every call. Note that this counts elements, not bytes,
// unlike the length-prefixed automation.BStrRef.Len.
func (s *CoTaskMemString) Len() int {
	n := internal.WideLen(s.p)
	runtime.KeepAlive(s)
	return n
}

// IsEmpty reports whether the string has no code units. O(n), like Len.
func (s *CoTaskMemString) IsEmpty() bool {
	return s.Len() == 0
}

// Wide returns the code units up to (and excluding) the terminator. The
// slice aliases the foreign allocation: it is invalidated by Close, and s
// must be kept reachable for as long as the slice is in use.
func (s *CoTaskMemString) Wide() []uint16 {
	w := unsafe.Slice(s.p, s.Len())
	runtime.KeepAlive(s)
	return w
}

// String decodes the contents lossily, substituting U+FFFD for unpaired
// surrogates.
func (s *CoTaskMemString) String() string {
	str := internal.DecodeWideLossy(s.Wide())
	runtime.KeepAlive(s)
	return str
}

// Decode decodes the contents strictly, failing on unpaired surrogates.
func (s *CoTaskMemString) Decode() (string, error) {
	str, err := internal.DecodeWide(s.Wide())
	runtime.KeepAlive(s)
	return str, err
}

// Close releases the buffer. CoTaskMemFree cannot fail, so Close always
// returns nil; it exists to satisfy io.Closer-shaped callers. Close is
// idempotent.
func (s *CoTaskMemString) Close() error {
	if s.p != nil {
		p := s.p
		s.p = nil
		runtime.SetFinalizer(s, nil)
		windows.CoTaskMemFree(unsafe.Pointer(p))
	}
	return nil
}
