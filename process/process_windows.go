// Copyright (c) 2024 The winsafe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package process wraps process handles and toolhelp snapshot enumeration in
// owning types built on winsafe.Handle.
package process

import (
	"runtime"

	"github.com/winsafe-dev/winsafe"
	"golang.org/x/sys/windows"
)

// Access is the set of access rights requested when opening a process.
type Access uint32

const (
	AccessTerminate               = Access(windows.PROCESS_TERMINATE)
	AccessSynchronize             = Access(windows.SYNCHRONIZE)
	AccessQueryLimitedInformation = Access(windows.PROCESS_QUERY_LIMITED_INFORMATION)
)

// Wait interval sentinels: 0 polls, Forever blocks until the process exits.
const Forever = uint32(windows.INFINITE)

// WaitStatus is the non-failure outcome of a Wait call.
type WaitStatus uint32

const (
	WaitSignaled  = WaitStatus(windows.WAIT_OBJECT_0)
	WaitAbandoned = WaitStatus(windows.WAIT_ABANDONED)
	WaitTimeout   = WaitStatus(windows.WAIT_TIMEOUT)
)

// Process owns a handle to a running (or exited) process.
type Process struct {
	h *winsafe.Handle
}

// Open opens an existing process by id with the requested access rights. A
// null handle from the OS is reported as the last OS error.
func Open(access Access, pid uint32) (*Process, error) {
	h, err := windows.OpenProcess(uint32(access), false, pid)
	if err != nil {
		return nil, err
	}
	return &Process{h: winsafe.AcquireHandle(h)}, nil
}

// Raw returns the underlying handle without transferring ownership.
func (p *Process) Raw() windows.Handle {
	return p.h.Peek()
}

// Terminate signals the process to terminate with the given exit code.
// Requires AccessTerminate.
func (p *Process) Terminate(exitCode uint32) error {
	err := windows.TerminateProcess(p.h.Peek(), exitCode)
	runtime.KeepAlive(p)
	return err
}

// Wait blocks until the process exits or millis elapses: 0 polls, Forever
// waits indefinitely. Requires AccessSynchronize. The wait outcome is
// returned as a value; only WAIT_FAILED becomes an error.
func (p *Process) Wait(millis uint32) (WaitStatus, error) {
	event, err := windows.WaitForSingleObject(p.h.Peek(), millis)
	runtime.KeepAlive(p)
	if err != nil {
		return 0, err
	}
	return WaitStatus(event), nil
}

// Close releases the process handle. On failure the receiver keeps a usable
// handle so the caller may retry.
func (p *Process) Close() error {
	return p.h.Close()
}
