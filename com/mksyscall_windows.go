// Copyright (c) 2024 The winsafe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build windows

package com

//go:generate go run golang.org/x/sys/windows/mkwinsyscall -output zsyscall_windows.go mksyscall_windows.go
//go:generate go run golang.org/x/tools/cmd/goimports -w zsyscall_windows.go

//sys coIncrementMTAUsage(cookie *uintptr) (hr winsafe.HRESULT) = ole32.CoIncrementMTAUsage
//sys coCreateInstance(clsid *CLSID, unkOuter *IUnknownABI, clsctx uint32, iid *IID, ppv **IUnknownABI) (hr winsafe.HRESULT) = ole32.CoCreateInstance
//sys coTaskMemAlloc(size uintptr) (mem uintptr) = ole32.CoTaskMemAlloc
