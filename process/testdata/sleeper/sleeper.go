// Copyright (c) 2024 The winsafe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Sleeper blocks until killed. It exists to give tests a child process to
// terminate.
package main

import "time"

func main() {
	time.Sleep(5 * time.Minute)
}
