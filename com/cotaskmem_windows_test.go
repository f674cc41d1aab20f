// Copyright (c) 2024 The winsafe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build windows

package com

import (
	"runtime"
	"sync"
	"testing"
)

func TestCoTaskMemStringRoundtrip(t *testing.T) {
	const text = "hello_world!"
	s, err := NewCoTaskMemString(text)
	if err != nil {
		t.Fatalf("NewCoTaskMemString: %v", err)
	}
	defer s.Close()

	// Len counts UTF-16 elements, not bytes.
	if got := s.Len(); got != len(text) {
		t.Errorf("Len() got %d, want %d", got, len(text))
	}
	if s.IsEmpty() {
		t.Error("IsEmpty() got true")
	}
	if got := s.String(); got != text {
		t.Errorf("String() got %q, want %q", got, text)
	}
	strict, err := s.Decode()
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if strict != text {
		t.Errorf("Decode() got %q, want %q", strict, text)
	}
}

func TestCoTaskMemStringEmpty(t *testing.T) {
	s, err := NewCoTaskMemString("")
	if err != nil {
		t.Fatalf("NewCoTaskMemString: %v", err)
	}
	defer s.Close()

	// The empty string still owns a one-element allocation.
	if s.Ptr() == nil {
		t.Error("Ptr() got nil for the empty string")
	}
	if got := s.Len(); got != 0 {
		t.Errorf("Len() got %d, want 0", got)
	}
	if !s.IsEmpty() {
		t.Error("IsEmpty() got false")
	}
}

func TestCoTaskMemStringInteriorNulRejected(t *testing.T) {
	if _, err := NewCoTaskMemString("a\x00b"); err == nil {
		t.Error("NewCoTaskMemString accepted an interior NUL")
	}
}

func TestCoTaskMemStringCloseIdempotent(t *testing.T) {
	s, err := NewCoTaskMemString("x")
	if err != nil {
		t.Fatalf("NewCoTaskMemString: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close: got %v, want nil", err)
	}
	if s.Ptr() != nil {
		t.Error("Ptr() non-nil after Close")
	}
}

func TestCoTaskMemStringAccessorsOutliveReceiver(t *testing.T) {
	const want = "the quick brown fox jumps over the lazy dog"

	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				runtime.GC()
			}
		}
	}()
	defer wg.Wait()
	defer close(stop)

	// The receiver's last use is the accessor call itself, so the decode must
	// hold the buffer live on its own; the finalizer must not free it
	// mid-read.
	for i := 0; i < 100; i++ {
		s, err := NewCoTaskMemString(want)
		if err != nil {
			t.Fatalf("NewCoTaskMemString: %v", err)
		}
		if got := s.String(); got != want {
			t.Fatalf("String() got %q, want %q", got, want)
		}
	}
}

func TestCoTaskMemStringFromPtrNilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("CoTaskMemStringFromPtr(nil) did not panic")
		}
	}()
	CoTaskMemStringFromPtr(nil)
}
