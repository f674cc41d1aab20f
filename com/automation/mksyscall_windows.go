// Copyright (c) 2024 The winsafe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build windows

package automation

//go:generate go run golang.org/x/sys/windows/mkwinsyscall -output zsyscall_windows.go mksyscall_windows.go
//go:generate go run golang.org/x/tools/cmd/goimports -w zsyscall_windows.go

//sys sysAllocStringLen(src *uint16, n uint32) (bs BSTR) = oleaut32.SysAllocStringLen
//sys sysFreeString(bs BSTR) = oleaut32.SysFreeString
