// Package loader reads scanner JSON exports from disk.
package loader

import (
	"errors"
	"fmt"

	"github.com/scanreport/scanreport/pkg/finding"
	"github.com/scanreport/scanreport/pkg/iohelper"
	"github.com/scanreport/scanreport/pkg/jsonutil"
)

// Error describes a file that could not be loaded. It matches
// finding.ErrMalformed via errors.Is.
type Error struct {
	Path   string
	Offset int64 // byte offset of a syntax error, or -1
	Err    error
}

func (e *Error) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("malformed input %s at byte %d: %v", e.Path, e.Offset, e.Err)
	}
	return fmt.Sprintf("malformed input %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() []error {
	return []error{finding.ErrMalformed, e.Err}
}

// Load reads path and parses it into a generic JSON tree. Any failure,
// including a missing file, is an *Error wrapping finding.ErrMalformed.
func Load(path string) (any, error) {
	return LoadLimit(path, iohelper.InputMaxSize)
}

// LoadLimit is Load with an explicit size ceiling.
func LoadLimit(path string, maxSize int64) (any, error) {
	data, err := iohelper.ReadFile(path, maxSize)
	if err != nil {
		return nil, &Error{Path: path, Offset: -1, Err: err}
	}
	tree, err := jsonutil.UnmarshalTree(data)
	if err != nil {
		off, ok := jsonutil.ErrorOffset(err)
		if !ok {
			off = -1
		}
		return nil, &Error{Path: path, Offset: off, Err: err}
	}
	return tree, nil
}

// IsMalformed reports whether err is a load failure.
func IsMalformed(err error) bool {
	return errors.Is(err, finding.ErrMalformed)
}
