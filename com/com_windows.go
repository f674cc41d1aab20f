// Copyright (c) 2024 The winsafe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package com

import (
	"sync"
	"syscall"
	"unsafe"

	"github.com/winsafe-dev/winsafe"
)

const (
	hrREGDB_E_CLASSNOTREG   = winsafe.HRESULT(-((0x80040154 ^ 0xFFFFFFFF) + 1))
	hrCLASS_E_NOAGGREGATION = winsafe.HRESULT(-((0x80040110 ^ 0xFFFFFFFF) + 1))
	hrCO_E_NOTINITIALIZED   = winsafe.HRESULT(-((0x800401F0 ^ 0xFFFFFFFF) + 1))
	hrE_NOINTERFACE         = winsafe.HRESULT(-((0x80004002 ^ 0xFFFFFFFF) + 1))
)

// Well-known instantiation failures, matchable with errors.Is. Any other
// failing status from the runtime is surfaced as an opaque winsafe.Error
// carrying the raw code.
var (
	ErrClassNotRegistered = error(winsafe.ErrorFromHRESULT(hrREGDB_E_CLASSNOTREG))
	ErrNoAggregation      = error(winsafe.ErrorFromHRESULT(hrCLASS_E_NOAGGREGATION))
	ErrNotInitialized     = error(winsafe.ErrorFromHRESULT(hrCO_E_NOTINITIALIZED))
	ErrNoInterface        = error(winsafe.ErrorFromHRESULT(hrE_NOINTERFACE))
)

var startRuntimeOnce = sync.OnceValue(func() error {
	var cookie uintptr
	if hr := coIncrementMTAUsage(&cookie); hr.Failed() {
		return winsafe.ErrorFromHRESULT(hr)
	}
	return nil
})

// StartRuntime joins this process to the multithreaded COM apartment. The
// initialization is process-wide and permanent for the remaining life of the
// process; repeated calls return the first outcome.
func StartRuntime() error {
	return startRuntimeOnce()
}

// IUnknownABI is the raw ABI layout of a COM interface pointer: a pointer to
// a vtable whose first three entries are QueryInterface, AddRef and Release.
type IUnknownABI struct {
	Vtbl *uintptr
}

// AddRef increments the object's reference count via its vtable.
func (abi *IUnknownABI) AddRef() uint32 {
	method := unsafe.Slice(abi.Vtbl, 3)[1]
	rc, _, _ := syscall.SyscallN(method, uintptr(unsafe.Pointer(abi)))
	return uint32(rc)
}

// Release decrements the object's reference count via its vtable and returns
// the new count.
func (abi *IUnknownABI) Release() uint32 {
	method := unsafe.Slice(abi.Vtbl, 3)[2]
	rc, _, _ := syscall.SyscallN(method, uintptr(unsafe.Pointer(abi)))
	return uint32(rc)
}

// CreateInstance instantiates clsid in the given context and returns the
// requested interface as a raw ABI pointer. The caller owns the reference and
// must Release it. StartRuntime must have succeeded first, otherwise the
// runtime reports ErrNotInitialized.
func CreateInstance(clsid *CLSID, iid *IID, ctx CLSCTX) (*IUnknownABI, error) {
	var pv *IUnknownABI
	if hr := coCreateInstance(clsid, nil, uint32(ctx), iid, &pv); hr.Failed() {
		return nil, winsafe.ErrorFromHRESULT(hr)
	}
	return pv, nil
}
