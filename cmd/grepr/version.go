package main

import (
	"fmt"
	"runtime"
)

var (
	version = "dev"
	commit  = "unknown"
)

// versionString is printed by --version.
func versionString() string {
	return fmt.Sprintf("grepr v%s\nCommit: %s\nGo version: %s\nOS/Arch: %s/%s\n",
		version, commit, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
