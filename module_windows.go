// Copyright (c) 2024 The winsafe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package winsafe

import (
	"runtime"

	"golang.org/x/sys/windows"
)

// Module owns a loaded DLL and releases it via FreeLibrary. It deliberately
// does not embed Handle: module handles belong to a different release pairing
// than CloseHandle and mixing the two must be impossible by construction.
type Module struct {
	h windows.Handle
}

// LoadModule loads the named DLL. The DLL's initialization code runs on this
// call; loading an untrusted module is inherently unsafe.
func LoadModule(name string) (*Module, error) {
	h, err := windows.LoadLibrary(name)
	if err != nil {
		return nil, err
	}
	m := &Module{h: h}
	runtime.SetFinalizer(m, (*Module).finalize)
	return m, nil
}

func (m *Module) finalize() {
	if m.h != 0 {
		windows.FreeLibrary(m.h)
		m.h = 0
	}
}

// Raw returns the underlying HMODULE without transferring ownership.
func (m *Module) Raw() windows.Handle {
	return m.h
}

// Close unloads the module. On failure the receiver retains ownership and the
// caller may retry. Close after a successful Close is a no-op returning nil.
func (m *Module) Close() error {
	if m.h == 0 {
		return nil
	}
	h := m.h
	m.h = 0
	runtime.SetFinalizer(m, nil)
	if err := windows.FreeLibrary(h); err != nil {
		m.h = h
		runtime.SetFinalizer(m, (*Module).finalize)
		return err
	}
	return nil
}
