// Copyright (c) 2024 The winsafe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build windows

package shell

//go:generate go run golang.org/x/sys/windows/mkwinsyscall -output zsyscall_windows.go mksyscall_windows.go
//go:generate go run golang.org/x/tools/cmd/goimports -w zsyscall_windows.go

//sys shGetKnownFolderPath(id *windows.KNOWNFOLDERID, flags uint32, token windows.Token, path **uint16) (ret error) = shell32.SHGetKnownFolderPath
//sys shGetSpecialFolderPath(owner windows.HWND, path *uint16, csidl int32, create bool) (ok bool) = shell32.SHGetSpecialFolderPathW
