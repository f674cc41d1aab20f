// Copyright (c) 2024 The winsafe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package winsafe

import (
	"runtime"
	"unsafe"

	"github.com/winsafe-dev/winsafe/internal"
	"golang.org/x/sys/windows"
)

// LocalString owns a NUL-terminated wide-character buffer allocated by the
// LocalAlloc family and releases it via LocalFree. It is produced by system
// calls such as FormatMessageW that allocate their output on the local heap.
//
// The length is not stored: every Len, Wide, or decode call rescans the
// buffer for the terminator, so callers reusing the result should cache it.
// Text containing an interior NUL cannot be represented past the first one.
type LocalString struct {
	p *uint16
}

// LocalStringFromPtr takes ownership of p, which must be a non-nil pointer to
// a NUL-terminated wide string allocated by the LocalAlloc family. Panics if
// p is nil: a null result from the producing call must already have been
// checked by the caller.
func LocalStringFromPtr(p *uint16) *LocalString {
	if p == nil {
		panic("winsafe: LocalStringFromPtr called with a nil pointer")
	}
	s := &LocalString{p: p}
	runtime.SetFinalizer(s, (*LocalString).finalize)
	return s
}

func (s *LocalString) finalize() {
	if s.p != nil {
		windows.LocalFree(windows.Handle(unsafe.Pointer(s.p)))
		s.p = nil
	}
}

// Ptr returns the underlying pointer without transferring ownership.
func (s *LocalString) Ptr() *uint16 {
	return s.p
}

// Len returns the number of UTF-16 code units before the terminator. This is
// an O(n) scan on every call. Note that this counts elements, not bytes,
// unlike the length-prefixed automation.BStrRef.Len.
func (s *LocalString) Len() int {
	n := internal.WideLen(s.p)
	runtime.KeepAlive(s)
	return n
}

// IsEmpty reports whether the string has no code units. O(n), like Len.
func (s *LocalString) IsEmpty() bool {
	return s.Len() == 0
}

// Wide returns the code units up to (and excluding) the terminator. The slice
// aliases the foreign allocation: it is invalidated by Destroy, and s must be
// kept reachable for as long as the slice is in use.
func (s *LocalString) Wide() []uint16 {
	w := unsafe.Slice(s.p, s.Len())
	runtime.KeepAlive(s)
	return w
}

// String decodes the contents lossily, substituting U+FFFD for unpaired
// surrogates.
func (s *LocalString) String() string {
	str := internal.DecodeWideLossy(s.Wide())
	runtime.KeepAlive(s)
	return str
}

// Decode decodes the contents strictly, failing on unpaired surrogates.
func (s *LocalString) Decode() (string, error) {
	str, err := internal.DecodeWide(s.Wide())
	runtime.KeepAlive(s)
	return str, err
}

// Destroy releases the buffer. On failure the receiver retains ownership so
// the caller may retry; the returned error is the OS error from LocalFree.
// Destroy after a successful Destroy is a no-op returning nil.
func (s *LocalString) Destroy() error {
	if s.p == nil {
		return nil
	}
	p := s.p
	s.p = nil
	runtime.SetFinalizer(s, nil)
	if _, err := windows.LocalFree(windows.Handle(unsafe.Pointer(p))); err != nil {
		s.p = p
		runtime.SetFinalizer(s, (*LocalString).finalize)
		return err
	}
	return nil
}
