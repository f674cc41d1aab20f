// Copyright (c) 2024 The winsafe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package winsafe

import "golang.org/x/sys/windows"

// unLen is UNLEN from lmcons.h, the maximum username length.
const unLen = 256

// CurrentUserName returns the name of the user associated with the current
// thread.
func CurrentUserName() (string, error) {
	var buf [unLen + 1]uint16
	size := uint32(len(buf))
	if err := getUserName(&buf[0], &size); err != nil {
		return "", err
	}
	// size includes the terminating NUL on success.
	return windows.UTF16ToString(buf[:size-1]), nil
}
