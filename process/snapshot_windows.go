// Copyright (c) 2024 The winsafe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package process

import (
	"iter"
	"runtime"
	"unsafe"

	"github.com/winsafe-dev/winsafe"
	"golang.org/x/exp/slices"
	"golang.org/x/sys/windows"
)

// SnapshotFlags selects what a toolhelp snapshot captures.
type SnapshotFlags uint32

const (
	SnapHeapList = SnapshotFlags(windows.TH32CS_SNAPHEAPLIST)
	SnapProcess  = SnapshotFlags(windows.TH32CS_SNAPPROCESS)
	SnapThread   = SnapshotFlags(windows.TH32CS_SNAPTHREAD)
	SnapModule   = SnapshotFlags(windows.TH32CS_SNAPMODULE)
	SnapModule32 = SnapshotFlags(windows.TH32CS_SNAPMODULE32)
	SnapAll      = SnapshotFlags(windows.TH32CS_SNAPALL)
)

// process32First is swapped out by tests that need to simulate a snapshot
// with no entries.
var process32First = windows.Process32First

// Snapshot owns a toolhelp snapshot of system state taken at construction
// time.
type Snapshot struct {
	h *winsafe.Handle
}

// NewSnapshot captures a snapshot of the whole system. INVALID_HANDLE_VALUE
// from the OS is reported as the last OS error.
func NewSnapshot(flags SnapshotFlags) (*Snapshot, error) {
	h, err := windows.CreateToolhelp32Snapshot(uint32(flags), 0)
	if err != nil {
		return nil, err
	}
	return &Snapshot{h: winsafe.AcquireHandle(h)}, nil
}

// Processes begins enumerating the process entries captured in the snapshot.
// The snapshot must not be closed or used for another enumeration until the
// returned iterator is exhausted; enumeration position is state held by the
// snapshot handle itself. A fresh iterator must be requested to enumerate
// again.
func (s *Snapshot) Processes() *ProcessIter {
	it := &ProcessIter{snap: s}
	it.cur.Size = uint32(unsafe.Sizeof(it.cur))
	it.step(process32First)
	return it
}

// Close releases the snapshot handle. On failure the receiver keeps a usable
// handle so the caller may retry.
func (s *Snapshot) Close() error {
	return s.h.Close()
}

// ProcessIter lazily walks the process entries of one Snapshot. The sequence
// is finite and not restartable; once exhausted it stays exhausted. Each
// yielded ProcessEntry is a self-contained copy and remains valid after the
// iterator advances.
type ProcessIter struct {
	snap    *Snapshot
	cur     windows.ProcessEntry32
	hasMore bool
	err     error
}

func (it *ProcessIter) step(advance func(windows.Handle, *windows.ProcessEntry32) error) {
	err := advance(it.snap.h.Peek(), &it.cur)
	runtime.KeepAlive(it.snap)
	switch err {
	case nil:
		it.hasMore = true
	case windows.ERROR_NO_MORE_FILES:
		it.hasMore = false
	default:
		it.hasMore = false
		it.err = err
	}
}

// Next yields the next entry. It returns false once the snapshot is
// exhausted, permanently.
func (it *ProcessIter) Next() (ProcessEntry, bool) {
	if !it.hasMore {
		return ProcessEntry{}, false
	}
	entry := ProcessEntry{raw: it.cur}
	it.step(windows.Process32Next)
	return entry, true
}

// Err returns the first enumeration failure other than clean exhaustion, if
// any. Like a bufio.Scanner, check it after the loop.
func (it *ProcessIter) Err() error {
	return it.err
}

// All adapts the iterator for range-over-func loops.
func (it *ProcessIter) All() iter.Seq[ProcessEntry] {
	return func(yield func(ProcessEntry) bool) {
		for e, ok := it.Next(); ok; e, ok = it.Next() {
			if !yield(e) {
				return
			}
		}
	}
}

// ProcessEntry is an owned copy of one process record from a snapshot.
type ProcessEntry struct {
	raw windows.ProcessEntry32
}

// PID returns the process id.
func (e *ProcessEntry) PID() uint32 {
	return e.raw.ProcessID
}

// ParentPID returns the id of the process that created this one.
func (e *ProcessEntry) ParentPID() uint32 {
	return e.raw.ParentProcessID
}

// NumThreads returns the number of execution threads started by the process.
func (e *ProcessEntry) NumThreads() uint32 {
	return e.raw.Threads
}

// ThreadBasePriority returns the base priority of threads created by this
// process.
func (e *ProcessEntry) ThreadBasePriority() int32 {
	return e.raw.PriClassBase
}

// ExeNameWide returns the executable name as the raw code units recorded in
// the snapshot, truncated at the first NUL. The contents may or may not be
// valid UTF-16.
func (e *ProcessEntry) ExeNameWide() []uint16 {
	name := e.raw.ExeFile[:]
	if i := slices.Index(name, uint16(0)); i >= 0 {
		name = name[:i]
	}
	return name
}

// ExeName returns the executable name as a string. This allocates per call,
// so cache the result.
func (e *ProcessEntry) ExeName() string {
	return windows.UTF16ToString(e.raw.ExeFile[:])
}
