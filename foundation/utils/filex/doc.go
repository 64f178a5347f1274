// Package filex implements the file helpers used by sccalc.
//
// Package: filex
// Title: File Operations for sccalc Foundation
// Description: Existence checks, home directory expansion, and whole-file
//              reads and writes. Writes always close the file and report a
//              failing close, which iterator persistence maps to its own
//              status code.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation with comprehensive file utilities
// - 2025-01-26 v0.1.1: Enhanced documentation
// - 2026-10-19 v0.2.0: Reduced to the calculator's needs
//
// Errors
//
// Read and write failures are returned as *OpError, which unwraps to the
// underlying os error, so callers can classify them with errors.Is:
//
//	err := filex.WriteString(path, "1,2,3", 0644)
//	switch {
//	case err == nil:
//	case errors.Is(err, filex.ErrIsDirectory):
//	case errors.Is(err, fs.ErrPermission):
//	case filex.IsCloseError(err):
//	}
package filex
