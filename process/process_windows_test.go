// Copyright (c) 2024 The winsafe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build windows

package process

import (
	"testing"

	"golang.org/x/sys/windows"
)

func TestOpenSelfWaitPolls(t *testing.T) {
	p, err := Open(AccessSynchronize|AccessQueryLimitedInformation, windows.GetCurrentProcessId())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer p.Close()

	if p.Raw() == 0 {
		t.Error("Raw() got 0 for an open process")
	}

	// We are still running, so a poll must time out rather than block.
	status, err := p.Wait(0)
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if status != WaitTimeout {
		t.Errorf("Wait(0) got %v, want WaitTimeout", status)
	}
}

func TestOpenNonexistent(t *testing.T) {
	// PID 4 is the System process; opening it for termination is denied to
	// normal callers, so a failed Open must yield no Process at all.
	if p, err := Open(AccessTerminate, 4); err == nil {
		p.Close()
		t.Skip("running with privileges that can open the System process")
	}
}

func TestTerminateAndWait(t *testing.T) {
	cmd := startSleeper(t)

	p, err := Open(AccessTerminate|AccessSynchronize|AccessQueryLimitedInformation, uint32(cmd.Process.Pid))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer p.Close()

	const exitCode = 42
	if err := p.Terminate(exitCode); err != nil {
		t.Fatalf("Terminate: %v", err)
	}
	status, err := p.Wait(Forever)
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if status != WaitSignaled {
		t.Errorf("Wait got %v, want WaitSignaled", status)
	}

	var code uint32
	if err := windows.GetExitCodeProcess(p.Raw(), &code); err != nil {
		t.Fatalf("GetExitCodeProcess: %v", err)
	}
	if code != exitCode {
		t.Errorf("exit code got %d, want %d", code, exitCode)
	}
}

func TestProcessCloseIdempotent(t *testing.T) {
	p, err := Open(AccessQueryLimitedInformation, windows.GetCurrentProcessId())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("second Close: got %v, want nil", err)
	}
}
