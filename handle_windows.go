// Copyright (c) 2024 The winsafe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package winsafe

import (
	"runtime"

	"golang.org/x/sys/windows"
)

// closeHandle is swapped out by tests that need to simulate release failures.
var closeHandle = windows.CloseHandle

// Handle owns a single kernel handle and releases it via CloseHandle exactly
// once: either through Close, or through a best-effort finalizer whose result
// is discarded. A live Handle always denotes a handle that has not yet been
// released.
//
// A Handle may be handed to another thread, but a single Handle must not be
// used from two goroutines simultaneously without external synchronization.
type Handle struct {
	raw windows.Handle
}

// AcquireHandle takes ownership of raw, which must be a valid handle obtained
// from a successful system call. AcquireHandle panics if raw is zero or
// INVALID_HANDLE_VALUE; a failed system call must be checked before ownership
// is transferred here.
func AcquireHandle(raw windows.Handle) *Handle {
	if raw == 0 || raw == windows.InvalidHandle {
		panic("winsafe: AcquireHandle called with a null handle")
	}
	h := &Handle{raw: raw}
	runtime.SetFinalizer(h, (*Handle).finalize)
	return h
}

func (h *Handle) finalize() {
	if h.raw != 0 {
		// There is no way to surface an error from an implicit release.
		closeHandle(h.raw)
		h.raw = 0
	}
}

// Peek returns the underlying handle without transferring ownership. The
// returned value is only guaranteed valid while h is alive and unreleased.
func (h *Handle) Peek() windows.Handle {
	return h.raw
}

// ReleaseRaw transfers ownership of the underlying handle to the caller
// without releasing it. h is left closed: neither Close nor the finalizer
// will touch the handle afterwards.
func (h *Handle) ReleaseRaw() windows.Handle {
	raw := h.raw
	h.raw = 0
	runtime.SetFinalizer(h, nil)
	return raw
}

// Close releases the underlying handle. On failure h retains ownership so the
// caller may retry Close or fall back to the finalizer; the returned error is
// the OS error from CloseHandle. After a successful Close (or ReleaseRaw)
// further Close calls return nil without reaching the OS.
func (h *Handle) Close() error {
	if h.raw == 0 {
		return nil
	}
	raw := h.raw
	h.raw = 0
	runtime.SetFinalizer(h, nil)
	if err := closeHandle(raw); err != nil {
		h.raw = raw
		runtime.SetFinalizer(h, (*Handle).finalize)
		return err
	}
	return nil
}
