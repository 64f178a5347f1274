// File: persist.go
// Title: Iterator Persistence
// Description: Saves iterators as comma-joined decimal text and loads them
//              back. Failures are reported as numeric status codes that
//              scripts can test.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-19
// Modified: 2026-10-19
//
// Change History:
// - 2026-10-19 v0.1.0: Initial implementation

package script

import (
	"errors"
	"io/fs"
	"strings"

	mdwstore "github.com/msto63/sccalc/foundation/calc/store"
	mdwfilex "github.com/msto63/sccalc/foundation/utils/filex"
	mdwmathx "github.com/msto63/sccalc/foundation/utils/mathx"
)

// Status is the result code of a persistence command
type Status int

const (
	StatusOK              Status = 0
	StatusPermission      Status = 1
	StatusEncoding        Status = 2
	StatusDeserialization Status = 3
	StatusNotFound        Status = 4
	StatusDirectory       Status = 5
)

const fileMode = 0o644

// EncodeIterator renders it as comma-joined values.
func EncodeIterator(it *mdwstore.Iterator) string {
	values := it.Values()
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = v.String()
	}
	return strings.Join(parts, ",")
}

// DecodeIterator parses comma-joined values. Whitespace around fields is
// ignored and blank content is an empty iterator.
func DecodeIterator(content string) (*mdwstore.Iterator, error) {
	it := mdwstore.NewIterator()
	if strings.TrimSpace(content) == "" {
		return it, nil
	}
	for _, field := range strings.Split(content, ",") {
		v, err := mdwmathx.NewDecimal(strings.TrimSpace(field))
		if err != nil {
			return nil, err
		}
		it.Push(v)
	}
	return it, nil
}

// WriteIterator saves it to path.
func WriteIterator(path string, it *mdwstore.Iterator) Status {
	path, err := mdwfilex.ExpandHome(path)
	if err != nil {
		return StatusEncoding
	}
	err = mdwfilex.WriteString(path, EncodeIterator(it), fileMode)
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, mdwfilex.ErrIsDirectory):
		return StatusDirectory
	case errors.Is(err, fs.ErrPermission):
		return StatusPermission
	default:
		return StatusEncoding
	}
}

// ReadIterator loads an iterator from path. The iterator is nil unless
// the status is StatusOK.
func ReadIterator(path string) (*mdwstore.Iterator, Status) {
	path, err := mdwfilex.ExpandHome(path)
	if err != nil {
		return nil, StatusEncoding
	}
	content, err := mdwfilex.ReadString(path)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist):
		return nil, StatusNotFound
	case errors.Is(err, mdwfilex.ErrIsDirectory):
		return nil, StatusDirectory
	case errors.Is(err, fs.ErrPermission):
		return nil, StatusPermission
	default:
		return nil, StatusEncoding
	}

	it, err := DecodeIterator(content)
	if err != nil {
		return nil, StatusDeserialization
	}
	return it, StatusOK
}
