// Copyright (c) 2024 The winsafe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build tools

package winsafe

// Keep the generators used by the //go:generate directives in this module
// pinned in go.mod.
import (
	_ "golang.org/x/sys/windows/mkwinsyscall"
	_ "golang.org/x/tools/cmd/goimports"
)
