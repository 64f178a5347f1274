// File: filex.go
// Title: Core File Utilities
// Description: File helpers used by script loading, iterator persistence and
//              the history database: existence checks, home expansion,
//              whole-file reads and writes that always release the handle.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation with comprehensive file utilities
// - 2026-10-19 v0.2.0: Trimmed to calculator needs, close errors surfaced,
//                      home expansion and parent directory creation

package filex

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrIsDirectory is returned when a file operation targets a directory.
var ErrIsDirectory = errors.New("is a directory")

// OpError describes a failed file operation. Op is "open", "read", "write"
// or "close".
type OpError struct {
	Op   string
	Path string
	Err  error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("failed to %s file %s: %v", e.Op, e.Path, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// IsCloseError reports whether err came from closing a written file.
func IsCloseError(err error) bool {
	var opErr *OpError
	return errors.As(err, &opErr) && opErr.Op == "close"
}

// ===============================
// File Existence and Basic Info
// ===============================

// Exists checks if a file or directory exists
func Exists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// IsFile checks if the path exists and is a regular file
func IsFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// IsDir checks if the path exists and is a directory
func IsDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// Size returns the size of a file in bytes
func Size(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("failed to get size of %s: %w", path, err)
	}
	return info.Size(), nil
}

// FormatSize formats a size in bytes to a human-readable string
func FormatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	units := []string{"KB", "MB", "GB", "TB", "PB"}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), units[exp])
}

// ===============================
// Paths
// ===============================

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// EnsureParentDir creates the directory that will hold path.
func EnsureParentDir(path string, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, perm); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// ===============================
// Reading and Writing
// ===============================

// ReadString reads the entire file as a string. A directory yields
// ErrIsDirectory rather than a platform-specific read error.
func ReadString(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", &OpError{Op: "open", Path: path, Err: err}
	}
	defer file.Close()

	if info, err := file.Stat(); err == nil && info.IsDir() {
		return "", &OpError{Op: "read", Path: path, Err: ErrIsDirectory}
	}

	content, err := io.ReadAll(file)
	if err != nil {
		return "", &OpError{Op: "read", Path: path, Err: err}
	}
	return string(content), nil
}

// WriteString writes content to path, truncating an existing file. The file
// is closed on every path and a failing close is returned as an error.
func WriteString(path, content string, perm os.FileMode) (err error) {
	if IsDir(path) {
		return &OpError{Op: "open", Path: path, Err: ErrIsDirectory}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return &OpError{Op: "open", Path: path, Err: err}
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = &OpError{Op: "close", Path: path, Err: cerr}
		}
	}()

	if _, err := io.WriteString(file, content); err != nil {
		return &OpError{Op: "write", Path: path, Err: err}
	}
	return nil
}
