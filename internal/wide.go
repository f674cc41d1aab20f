// Copyright (c) 2024 The winsafe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build windows

// Package internal contains wide-character helpers shared by the string
// wrappers in this module.
package internal

import (
	"fmt"
	"unicode/utf16"
	"unsafe"
)

// WideLen returns the number of UTF-16 code units preceding the first NUL
// code unit at p. p must point to a NUL-terminated wide-character buffer.
// This rescans the buffer on every call.
func WideLen(p *uint16) int {
	n := 0
	for ptr := unsafe.Pointer(p); *(*uint16)(ptr) != 0; ptr = unsafe.Add(ptr, 2) {
		n++
	}
	return n
}

// DecodeWideLossy decodes s as UTF-16, substituting U+FFFD for unpaired
// surrogates. Unlike windows.UTF16ToString it does not stop at interior NULs.
func DecodeWideLossy(s []uint16) string {
	return string(utf16.Decode(s))
}

// DecodeError reports the position of the first invalid code unit found by
// DecodeWide.
type DecodeError struct {
	Index int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid UTF-16: unpaired surrogate at code unit %d", e.Index)
}

// DecodeWide decodes s as UTF-16, failing on the first unpaired surrogate.
func DecodeWide(s []uint16) (string, error) {
	out := make([]rune, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c < 0xD800 || c > 0xDFFF:
			out = append(out, rune(c))
		case c < 0xDC00 && i+1 < len(s) && s[i+1] >= 0xDC00 && s[i+1] <= 0xDFFF:
			out = append(out, utf16.DecodeRune(rune(c), rune(s[i+1])))
			i++
		default:
			return "", &DecodeError{Index: i}
		}
	}
	return string(out), nil
}
