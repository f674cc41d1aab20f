// Copyright (c) 2024 The winsafe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package com wraps the small slice of the COM runtime this module needs:
// process-wide runtime startup, raw object instantiation, and ownership of
// wide strings allocated by the COM task allocator.
package com

import (
	"encoding/binary"

	"github.com/google/uuid"
	"golang.org/x/sys/windows"
)

// IID is a GUID that represents an interface ID.
type IID windows.GUID

// CLSID is a GUID that represents a class ID.
type CLSID windows.GUID

// CLSCTX selects the execution context for CreateInstance. OR-combinations
// are deliberately not defined; callers must name the one context they mean.
type CLSCTX uint32

const (
	CLSCTX_INPROC_SERVER = CLSCTX(0x1)
	CLSCTX_LOCAL_SERVER  = CLSCTX(0x4)
	CLSCTX_REMOTE_SERVER = CLSCTX(0x10)
)

// GUIDFromString parses s, with or without braces, into a GUID in the
// Windows mixed-endian layout.
func GUIDFromString(s string) (windows.GUID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return windows.GUID{}, err
	}
	b := [16]byte(u)
	return windows.GUID{
		Data1: binary.BigEndian.Uint32(b[0:4]),
		Data2: binary.BigEndian.Uint16(b[4:6]),
		Data3: binary.BigEndian.Uint16(b[6:8]),
		Data4: [8]byte(b[8:16]),
	}, nil
}

// MustGUID is GUIDFromString for well-known constant GUIDs; it panics on a
// malformed string.
func MustGUID(s string) windows.GUID {
	g, err := GUIDFromString(s)
	if err != nil {
		panic("com: MustGUID(" + s + "): " + err.Error())
	}
	return g
}
