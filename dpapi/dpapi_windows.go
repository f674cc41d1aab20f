// Copyright (c) 2024 The winsafe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dpapi wraps the data protection API. Both directions hand their
// output back in buffers owned by the local heap, so the package is built on
// an owning DataBlob with the same fallible-release contract as
// winsafe.Handle.
package dpapi

import (
	"math"
	"runtime"
	"unsafe"

	"github.com/winsafe-dev/winsafe"
	"golang.org/x/sys/windows"
)

const lmemFixed = 0x0000

// DataBlob owns a byte buffer allocated by the LocalAlloc family and
// releases it via LocalFree.
type DataBlob struct {
	raw windows.DataBlob
}

// NewDataBlob copies data into a fresh LocalAlloc buffer. Allocation failure
// is surfaced as the OS error. Panics if len(data) overflows the blob's
// 32-bit size field.
func NewDataBlob(data []byte) (*DataBlob, error) {
	if uint64(len(data)) > math.MaxUint32 {
		panic("dpapi: blob length does not fit in a uint32")
	}
	ptr, err := windows.LocalAlloc(lmemFixed, uint32(len(data)))
	if err != nil {
		return nil, err
	}
	copy(unsafe.Slice((*byte)(unsafe.Pointer(ptr)), len(data)), data)
	return blobFromRaw(windows.DataBlob{
		Size: uint32(len(data)),
		Data: (*byte)(unsafe.Pointer(ptr)),
	}), nil
}

func blobFromRaw(raw windows.DataBlob) *DataBlob {
	b := &DataBlob{raw: raw}
	runtime.SetFinalizer(b, (*DataBlob).finalize)
	return b
}

func (b *DataBlob) finalize() {
	if b.raw.Data != nil {
		windows.LocalFree(windows.Handle(unsafe.Pointer(b.raw.Data)))
		b.raw = windows.DataBlob{}
	}
}

// Len returns the number of bytes in the blob.
func (b *DataBlob) Len() int {
	return int(b.raw.Size)
}

// IsEmpty reports whether the blob holds no bytes.
func (b *DataBlob) IsEmpty() bool {
	return b.Len() == 0
}

// Bytes returns the contents. The slice aliases the foreign allocation and
// is invalidated by Destroy.
func (b *DataBlob) Bytes() []byte {
	return unsafe.Slice(b.raw.Data, b.raw.Size)
}

// Destroy releases the buffer. On failure the receiver retains ownership so
// the caller may retry. Destroy after a successful Destroy is a no-op
// returning nil.
func (b *DataBlob) Destroy() error {
	if b.raw.Data == nil {
		return nil
	}
	raw := b.raw
	b.raw = windows.DataBlob{}
	runtime.SetFinalizer(b, nil)
	if _, err := windows.LocalFree(windows.Handle(unsafe.Pointer(raw.Data))); err != nil {
		b.raw = raw
		runtime.SetFinalizer(b, (*DataBlob).finalize)
		return err
	}
	return nil
}

// Secret is the result of a successful Unprotect.
type Secret struct {
	// Data is the decrypted payload.
	Data *DataBlob

	// Description is the optional description recorded when the data was
	// protected; nil when none was recorded.
	Description *winsafe.LocalString
}

// Protect encrypts data for the current user, tagging it with an optional
// description.
func Protect(data []byte, description string) (*DataBlob, error) {
	in, err := NewDataBlob(data)
	if err != nil {
		return nil, err
	}
	defer in.Destroy()

	var descPtr *uint16
	if description != "" {
		descPtr, err = windows.UTF16PtrFromString(description)
		if err != nil {
			return nil, err
		}
	}

	var out windows.DataBlob
	err = windows.CryptProtectData(&in.raw, descPtr, nil, 0, nil, windows.CRYPTPROTECT_UI_FORBIDDEN, &out)
	if err != nil {
		return nil, err
	}
	return blobFromRaw(out), nil
}

// Unprotect decrypts data previously produced by Protect (or any
// CryptProtectData caller in the same scope).
func Unprotect(encrypted []byte) (*Secret, error) {
	in, err := NewDataBlob(encrypted)
	if err != nil {
		return nil, err
	}
	defer in.Destroy()

	var out windows.DataBlob
	var descPtr *uint16
	err = windows.CryptUnprotectData(&in.raw, &descPtr, nil, 0, nil, windows.CRYPTPROTECT_UI_FORBIDDEN, &out)

	// The description is handed back even in some failure modes; wrapping it
	// first guarantees it is released either way.
	var description *winsafe.LocalString
	if descPtr != nil {
		description = winsafe.LocalStringFromPtr(descPtr)
	}
	if err != nil {
		return nil, err
	}
	return &Secret{Data: blobFromRaw(out), Description: description}, nil
}
