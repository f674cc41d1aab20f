// Copyright (c) 2024 The winsafe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package winsafe

import (
	"fmt"
	"strings"
	"syscall"

	"golang.org/x/sys/windows"
)

// HRESULT is equivalent to the HRESULT type in the Win32 API.
type HRESULT int32

type (
	hrFacility uint16
	hrCode     uint16
)

const (
	hrS_OK          = HRESULT(0)
	hrS_FALSE       = HRESULT(1)
	hrE_NOTIMPL     = HRESULT(-((0x80004001 ^ 0xFFFFFFFF) + 1))
	hrE_POINTER     = HRESULT(-((0x80004003 ^ 0xFFFFFFFF) + 1))
	hrE_FAIL        = HRESULT(-((0x80004005 ^ 0xFFFFFFFF) + 1))
	hrE_UNEXPECTED  = HRESULT(-((0x8000FFFF ^ 0xFFFFFFFF) + 1))
	hrE_OUTOFMEMORY = HRESULT(-((0x8007000E ^ 0xFFFFFFFF) + 1))
)

const (
	hrFailBit       = HRESULT(-((0x80000000 ^ 0xFFFFFFFF) + 1))
	hrFacilityWin32 = hrFacility(7)
)

// Succeeded returns true when hr represents a success status.
func (hr HRESULT) Succeeded() bool {
	return hr >= 0
}

// Failed returns true when hr represents a failure status.
func (hr HRESULT) Failed() bool {
	return hr < 0
}

func (hr HRESULT) facility() hrFacility {
	return hrFacility((uint32(hr) >> 16) & 0x7FF)
}

func (hr HRESULT) code() hrCode {
	return hrCode(uint32(hr) & 0xFFFF)
}

func hresultFromErrno(e syscall.Errno) HRESULT {
	if e == 0 {
		return hrS_OK
	}
	return HRESULT(int32(uint32(e)&0xFFFF | uint32(hrFacilityWin32)<<16 | 0x80000000))
}

// Error is an HRESULT adapted to Go's error interface. Two Errors wrapping
// the same status compare equal, so well-known statuses may be exposed as
// package-level sentinels and matched with errors.Is.
type Error HRESULT

// ErrorFromHRESULT wraps hr, including success statuses; callers that only
// want failures must check hr.Failed first.
func ErrorFromHRESULT(hr HRESULT) Error {
	return Error(hr)
}

// ErrorFromErrno wraps a Win32 error code using the standard
// HRESULT_FROM_WIN32 mapping.
func ErrorFromErrno(e syscall.Errno) Error {
	return Error(hresultFromErrno(e))
}

// AsHRESULT returns the wrapped status.
func (e Error) AsHRESULT() HRESULT {
	return HRESULT(e)
}

// Failed returns true when e wraps a failure status.
func (e Error) Failed() bool {
	return HRESULT(e).Failed()
}

// AsErrno extracts the Win32 error code when e originated from one.
func (e Error) AsErrno() (syscall.Errno, bool) {
	hr := HRESULT(e)
	switch {
	case hr == hrS_OK:
		return 0, true
	case hr.Failed() && hr.facility() == hrFacilityWin32:
		return syscall.Errno(hr.code()), true
	default:
		return 0, false
	}
}

func (e Error) Error() string {
	hr := HRESULT(e)
	msg, err := hr.Message()
	if err != nil {
		return fmt.Sprintf("HRESULT(0x%08X)", uint32(hr))
	}
	s := strings.TrimSpace(msg.String())
	msg.Destroy()
	return s
}

// Message formats hr against the system message table. The result is a wide
// string owned by the LocalAlloc family.
func (hr HRESULT) Message() (*LocalString, error) {
	return hr.MessageFromModule(nil)
}

// MessageFromModule formats hr, additionally consulting the message table of
// mod when it is non-nil. mod must remain loaded for the duration of the
// call.
func (hr HRESULT) MessageFromModule(mod *Module) (*LocalString, error) {
	flags := uint32(windows.FORMAT_MESSAGE_ALLOCATE_BUFFER |
		windows.FORMAT_MESSAGE_FROM_SYSTEM |
		windows.FORMAT_MESSAGE_IGNORE_INSERTS)
	var source uintptr
	if mod != nil {
		flags |= windows.FORMAT_MESSAGE_FROM_HMODULE
		source = uintptr(mod.Raw())
	}

	// FORMAT_MESSAGE_ALLOCATE_BUFFER makes the "buffer" argument an out
	// pointer that receives a LocalAlloc'd string.
	var p *uint16
	n, err := formatMessage(flags, source, uint32(hr), 0, &p, 0, nil)
	if n == 0 || p == nil {
		if err == nil {
			err = syscall.EINVAL
		}
		return nil, err
	}
	return LocalStringFromPtr(p), nil
}
