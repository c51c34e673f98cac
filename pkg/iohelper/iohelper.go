// Package iohelper provides size-limited file and stream reads.
package iohelper

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Size limits for the inputs the pipeline reads.
const (
	// TemplateMaxSize bounds report templates (4MB).
	TemplateMaxSize int64 = 4 * 1024 * 1024

	// ImageMaxSize bounds rendered chart images (32MB).
	ImageMaxSize int64 = 32 * 1024 * 1024

	// InputMaxSize bounds scanner JSON exports (256MB).
	InputMaxSize int64 = 256 * 1024 * 1024
)

// ErrTooLarge is returned when a read exceeds its limit.
var ErrTooLarge = errors.New("iohelper: content exceeds size limit")

// ReadLimited reads from r up to maxSize bytes. If r holds more than
// maxSize bytes, ErrTooLarge is returned. A nil r yields an empty slice.
func ReadLimited(r io.Reader, maxSize int64) ([]byte, error) {
	if r == nil {
		return []byte{}, nil
	}
	data, err := io.ReadAll(io.LimitReader(r, maxSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxSize {
		return nil, fmt.Errorf("%w (%d bytes)", ErrTooLarge, maxSize)
	}
	return data, nil
}

// ReadFile opens path and reads at most maxSize bytes from it.
func ReadFile(path string, maxSize int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if st, err := f.Stat(); err == nil && st.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	return ReadLimited(f, maxSize)
}
