// Copyright (c) 2024 The winsafe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build windows

package winsafe

//go:generate go run golang.org/x/sys/windows/mkwinsyscall -output zsyscall_windows.go mksyscall_windows.go
//go:generate go run golang.org/x/tools/cmd/goimports -w zsyscall_windows.go

//sys formatMessage(flags uint32, source uintptr, messageID uint32, languageID uint32, buffer **uint16, size uint32, args *byte) (n uint32, err error) = kernel32.FormatMessageW
//sys getUserName(buf *uint16, size *uint32) (err error) = advapi32.GetUserNameW
