// Copyright (c) 2024 The winsafe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package winsafe provides safe, owning wrappers around manually-managed
// Windows resources: kernel handles that must be released through a specific,
// possibly-failing system call, and foreign-allocated wide-character strings
// that must be freed by the allocator family that produced them.
//
// Every owning type in this module follows the same contract: the wrapped
// value is released exactly once, either through an explicit fallible release
// method (Close or Destroy) that leaves the receiver usable for a retry on
// failure, or through a best-effort finalizer whose result is discarded
// because there is no channel to report an error from an implicit teardown.
package winsafe
