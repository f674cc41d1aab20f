// Copyright (c) 2024 The winsafe Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command pslist dumps the process table from a toolhelp snapshot.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/winsafe-dev/winsafe"
	"github.com/winsafe-dev/winsafe/process"
	"github.com/winsafe-dev/winsafe/shell"
	"go.uber.org/zap"
)

var (
	nameFilter  = flag.String("name", "", "only list processes whose executable name contains this substring")
	showFolders = flag.Bool("folders", false, "also print the current user's known folder paths")
	verbose     = flag.Bool("v", false, "enable debug logging")
)

func main() {
	flag.Parse()

	cfg := zap.NewDevelopmentConfig()
	if !*verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	log := zap.Must(cfg.Build())
	defer log.Sync()

	if err := run(log); err != nil {
		log.Fatal("pslist failed", zap.Error(err))
	}
}

func run(log *zap.Logger) error {
	if user, err := winsafe.CurrentUserName(); err != nil {
		log.Warn("could not determine current user", zap.Error(err))
	} else {
		fmt.Printf("user: %s\n", user)
	}

	if *showFolders {
		printFolders(log)
	}

	snap, err := process.NewSnapshot(process.SnapProcess)
	if err != nil {
		return fmt.Errorf("creating snapshot: %w", err)
	}
	defer snap.Close()

	fmt.Printf("%8s %8s %8s  %s\n", "PID", "PPID", "THREADS", "NAME")
	n := 0
	it := snap.Processes()
	for entry := range it.All() {
		name := entry.ExeName()
		if *nameFilter != "" && !strings.Contains(strings.ToLower(name), strings.ToLower(*nameFilter)) {
			continue
		}
		fmt.Printf("%8d %8d %8d  %s\n", entry.PID(), entry.ParentPID(), entry.NumThreads(), name)
		n++
	}
	if err := it.Err(); err != nil {
		return fmt.Errorf("enumerating processes: %w", err)
	}
	log.Debug("enumeration complete", zap.Int("matched", n))

	if n == 0 && *nameFilter != "" {
		fmt.Fprintf(os.Stderr, "no process matched %q\n", *nameFilter)
	}
	return nil
}

func printFolders(log *zap.Logger) {
	for _, f := range []struct {
		name string
		id   shell.FolderID
	}{
		{"desktop", shell.FolderDesktop},
		{"local app data", shell.FolderLocalAppData},
	} {
		path, err := shell.KnownFolderPath(f.id)
		if err != nil {
			log.Warn("known folder lookup failed", zap.String("folder", f.name), zap.Error(err))
			continue
		}
		fmt.Printf("%s: %s\n", f.name, path)
		path.Close()
	}
}
