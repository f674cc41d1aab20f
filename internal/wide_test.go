// Copyright (c) 2024 The winsafe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build windows

package internal

import (
	"errors"
	"testing"
	"unicode/utf16"
)

func TestWideLen(t *testing.T) {
	for _, tc := range []struct {
		buf  []uint16
		want int
	}{
		{[]uint16{0}, 0},
		{[]uint16{'a', 0}, 1},
		{[]uint16{'a', 'b', 'c', 0}, 3},
		{[]uint16{'a', 0, 'b', 0}, 1},
	} {
		if got := WideLen(&tc.buf[0]); got != tc.want {
			t.Errorf("WideLen(%v) got %d, want %d", tc.buf, got, tc.want)
		}
	}
}

func TestDecodeWide(t *testing.T) {
	valid := utf16.Encode([]rune("héllo \U0001F600 world"))
	got, err := DecodeWide(valid)
	if err != nil {
		t.Fatalf("DecodeWide(valid): %v", err)
	}
	if want := "héllo \U0001F600 world"; got != want {
		t.Errorf("DecodeWide got %q, want %q", got, want)
	}
	if lossy := DecodeWideLossy(valid); lossy != got {
		t.Errorf("lossy decode of valid input got %q, want %q", lossy, got)
	}
}

func TestDecodeWideUnpairedSurrogate(t *testing.T) {
	for _, tc := range []struct {
		name      string
		buf       []uint16
		wantIndex int
	}{
		{"lone high", []uint16{'a', 0xD800, 'b'}, 1},
		{"lone low", []uint16{0xDC00}, 0},
		{"high at end", []uint16{'a', 'b', 0xDBFF}, 2},
		{"high then high", []uint16{0xD800, 0xD800, 0xDC00}, 0},
	} {
		_, err := DecodeWide(tc.buf)
		var de *DecodeError
		if !errors.As(err, &de) {
			t.Errorf("%s: got %v, want *DecodeError", tc.name, err)
			continue
		}
		if de.Index != tc.wantIndex {
			t.Errorf("%s: Index got %d, want %d", tc.name, de.Index, tc.wantIndex)
		}
	}
}

func TestDecodeWideInteriorNul(t *testing.T) {
	buf := []uint16{'a', 0, 'b'}
	got, err := DecodeWide(buf)
	if err != nil {
		t.Fatalf("DecodeWide: %v", err)
	}
	if want := "a\x00b"; got != want {
		t.Errorf("DecodeWide got %q, want %q", got, want)
	}
}
