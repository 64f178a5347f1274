// ============================================================================
// sccalc - Scriptable Calculator
// ============================================================================
//
// Package:     version
// Description: Central version information for the sccalc binary
// Author:      msto63
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"

	mdwstore "github.com/msto63/sccalc/foundation/calc/store"
)

const (
	// App is the program name used in banners and the bare-version form.
	App = "sccalc"

	// ScriptVersion is the script language level, also visible to scripts as
	// the script_version variable.
	ScriptVersion = mdwstore.ScriptVersion
)

// Build information, set via -ldflags at release time
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Short returns "sccalc v1.0.0".
func Short() string {
	return fmt.Sprintf("%s v%s", App, Version)
}

// Info returns the multi-line build description printed by the version command
func Info() string {
	return fmt.Sprintf("%s\n  Git Commit:     %s\n  Build Date:     %s\n  Script Version: %d\n  Go Version:     %s\n  OS/Arch:        %s/%s\n",
		Short(), GitCommit, BuildDate, ScriptVersion, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
