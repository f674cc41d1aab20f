// Copyright (c) 2024 The winsafe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build windows

package winsafe

import (
	"errors"
	"syscall"
	"testing"

	"golang.org/x/sys/windows"
)

type hrTestCase struct {
	hr              HRESULT
	expectFacility  hrFacility
	expectCode      hrCode
	expectSucceeded bool
}

var hrTestCases = []hrTestCase{
	hrTestCase{hrS_OK, 0, 0, true},
	hrTestCase{hrS_FALSE, 0, 1, true},
	hrTestCase{hrE_NOTIMPL, 0, 0x4001, false},
	hrTestCase{hrE_POINTER, 0, 0x4003, false},
	hrTestCase{hrE_FAIL, 0, 0x4005, false},
	hrTestCase{hrE_UNEXPECTED, 0, 0xFFFF, false},
	hrTestCase{hrE_OUTOFMEMORY, hrFacilityWin32, 0x000E, false},
}

func TestHRESULT(t *testing.T) {
	for _, tc := range hrTestCases {
		hr := tc.hr
		if hr.Succeeded() != tc.expectSucceeded {
			t.Errorf("hr 0x%08X Succeeded() got %v, want %v", uint32(hr), hr.Succeeded(), tc.expectSucceeded)
		}
		if hr.Failed() == tc.expectSucceeded {
			t.Errorf("hr 0x%08X Failed() got %v, want %v", uint32(hr), hr.Failed(), !tc.expectSucceeded)
		}
		if hr.facility() != tc.expectFacility {
			t.Errorf("hr 0x%08X facility() got %v, want %v", uint32(hr), hr.facility(), tc.expectFacility)
		}
		if hr.code() != tc.expectCode {
			t.Errorf("hr 0x%08X code() got %v, want %v", uint32(hr), hr.code(), tc.expectCode)
		}
	}
}

func TestErrorFromErrno(t *testing.T) {
	e := ErrorFromErrno(syscall.Errno(windows.ERROR_ACCESS_DENIED))
	if !e.Failed() {
		t.Error("Failed() got false, want true")
	}
	hr := e.AsHRESULT()
	if hr.facility() != hrFacilityWin32 {
		t.Errorf("facility() got %v, want %v", hr.facility(), hrFacilityWin32)
	}
	errno, ok := e.AsErrno()
	if !ok {
		t.Fatal("AsErrno() ok got false, want true")
	}
	if errno != syscall.Errno(windows.ERROR_ACCESS_DENIED) {
		t.Errorf("AsErrno() got %v, want %v", errno, windows.ERROR_ACCESS_DENIED)
	}
}

func TestErrorFromErrnoZero(t *testing.T) {
	e := ErrorFromErrno(0)
	if e.Failed() {
		t.Error("Failed() got true, want false")
	}
	if errno, ok := e.AsErrno(); !ok || errno != 0 {
		t.Errorf("AsErrno() got (%v, %v), want (0, true)", errno, ok)
	}
}

func TestErrorSentinelEquality(t *testing.T) {
	a := error(ErrorFromHRESULT(hrE_FAIL))
	b := error(ErrorFromHRESULT(hrE_FAIL))
	if !errors.Is(a, b) {
		t.Error("two Errors wrapping the same status do not compare equal")
	}
	if errors.Is(a, error(ErrorFromHRESULT(hrE_UNEXPECTED))) {
		t.Error("Errors wrapping distinct statuses compare equal")
	}
}

func TestErrorMessage(t *testing.T) {
	e := ErrorFromErrno(syscall.Errno(windows.ERROR_FILE_NOT_FOUND))
	msg := e.Error()
	if msg == "" {
		t.Error("Error() returned an empty message for a well-known code")
	}
}

func TestHRESULTMessage(t *testing.T) {
	msg, err := hrE_OUTOFMEMORY.Message()
	if err != nil {
		t.Fatalf("Message: %v", err)
	}
	defer msg.Destroy()
	if msg.IsEmpty() {
		t.Error("Message() produced an empty string for a well-known status")
	}
	if got, want := msg.Len(), len(msg.Wide()); got != want {
		t.Errorf("Len() got %d, want %d", got, want)
	}
}
