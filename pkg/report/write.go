package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/scanreport/scanreport/pkg/defaults"
)

// Format is a report output format.
type Format string

const (
	FormatHTML      Format = "html"
	FormatPDF       Format = "pdf"
	FormatPDFChrome Format = "pdf-chrome"
)

// ParseFormat validates a -format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatHTML, FormatPDF, FormatPDFChrome:
		return f, nil
	}
	return "", fmt.Errorf("unknown report format %q", s)
}

// Ext returns the file extension of the format's artifact.
func (f Format) Ext() string {
	if f == FormatHTML {
		return "html"
	}
	return "pdf"
}

// WriteFileAtomic writes data to path through a temporary file in the
// same directory, so readers never observe a partial report.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, defaults.DirPerm); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(defaults.FilePerm); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
