// Copyright (c) 2024 The winsafe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shell wraps shell folder-path lookups, handing ownership of the
// returned buffers to the string wrappers in package com.
package shell

import (
	"fmt"
	"unsafe"

	"github.com/winsafe-dev/winsafe/com"
	"golang.org/x/sys/windows"
)

// FolderID names a known folder.
type FolderID int

const (
	// FolderDesktop is the current user's desktop.
	FolderDesktop FolderID = iota

	// FolderLocalAppData is the data repository for local, non-roaming
	// applications.
	FolderLocalAppData
)

func (id FolderID) guid() *windows.KNOWNFOLDERID {
	switch id {
	case FolderDesktop:
		return windows.FOLDERID_Desktop
	case FolderLocalAppData:
		return windows.FOLDERID_LocalAppData
	default:
		panic(fmt.Sprintf("shell: unknown FolderID %d", int(id)))
	}
}

// KnownFolderPath returns the path of a known folder as a string owned by
// the COM task allocator. Panics if the call succeeds yet hands back a nil
// path, which the API contract forbids.
func KnownFolderPath(id FolderID) (*com.CoTaskMemString, error) {
	var p *uint16
	if err := shGetKnownFolderPath(id.guid(), 0, 0, &p); err != nil {
		// The out pointer must be freed even on failure.
		if p != nil {
			windows.CoTaskMemFree(unsafe.Pointer(p))
		}
		return nil, err
	}
	if p == nil {
		panic("shell: SHGetKnownFolderPath succeeded with a nil path")
	}
	return com.CoTaskMemStringFromPtr(p), nil
}

// CSIDL is a legacy constant special item ID list value.
type CSIDL int32

const (
	// CSIDLDesktop is the desktop.
	CSIDLDesktop CSIDL = 0x0000
)

// SpecialFolderPath looks up a folder path by CSIDL, optionally creating the
// folder. This API is considered legacy; prefer KnownFolderPath. The second
// return value reports whether the path could be located.
func SpecialFolderPath(csidl CSIDL, create bool) (string, bool) {
	var buf [windows.MAX_PATH + 1]uint16
	if !shGetSpecialFolderPath(0, &buf[0], int32(csidl), create) {
		return "", false
	}
	return windows.UTF16ToString(buf[:]), true
}
