// Copyright (c) 2024 The winsafe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build windows

package process

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/tc-hib/winres"
)

// Stamped onto test child processes so they run with real OS version
// semantics instead of compatibility-shimmed ones.
const manifestContents = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<assembly xmlns="urn:schemas-microsoft-com:asm.v1" manifestVersion="1.0" xmlns:asmv3="urn:schemas-microsoft-com:asm.v3">
	<compatibility xmlns="urn:schemas-microsoft-com:compatibility.v1">
		<application>
			<supportedOS Id="{e2011457-1546-43c5-a5fe-008deee3d3f0}" />
			<supportedOS Id="{35138b9a-5d96-4fbd-8e2d-a2440225f93a}" />
			<supportedOS Id="{4a2f28e3-53b9-4441-ba9c-d69d4a4a6e38}" />
			<supportedOS Id="{1f676c76-80e1-4239-95bb-83d0f6d0da78}" />
			<supportedOS Id="{8e0f7a12-bfb3-4fe8-b9a5-48fd50a15a9a}" />
		</application>
	</compatibility>
</assembly>`

func addManifest(outPath, inPath string) (err error) {
	inf, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer inf.Close()

	outf, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer func() {
		outf.Close()
		if err != nil {
			os.Remove(outPath)
		}
	}()

	var rs winres.ResourceSet
	if err := rs.Set(winres.RT_MANIFEST, winres.ID(1), 0, []byte(manifestContents)); err != nil {
		return err
	}

	return rs.WriteToEXE(outf, inf, winres.ForceCheckSum())
}

// buildSleeper compiles the sleeper helper into t's temp dir and stamps its
// manifest.
func buildSleeper(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	plain := filepath.Join(dir, "sleeper_plain.exe")
	out, err := exec.Command("go", "build", "-o", plain, "./testdata/sleeper").CombinedOutput()
	if err != nil {
		t.Fatalf("building sleeper: %v\n%s", err, out)
	}
	stamped := filepath.Join(dir, "sleeper.exe")
	if err := addManifest(stamped, plain); err != nil {
		t.Fatalf("stamping sleeper manifest: %v", err)
	}
	return stamped
}

// startSleeper launches the helper and arranges for it to be reaped however
// the test ends.
func startSleeper(t *testing.T) *exec.Cmd {
	t.Helper()
	cmd := exec.Command(buildSleeper(t))
	if err := cmd.Start(); err != nil {
		t.Fatalf("starting sleeper: %v", err)
	}
	t.Cleanup(func() {
		cmd.Process.Kill()
		cmd.Wait()
	})
	return cmd
}
