// Package templateresolver resolves template references to file paths or embedded content.
//
// It implements a resolution chain: explicit path → on-disk templates directory →
// SCAN_REPORT_TEMPLATE_DIR env var → embedded FS fallback.
// This ensures the bundled report templates are always available regardless of
// installation method.
//
// Usage:
//
//	// Resolve the bundled bandit report template
//	text, source, err := templateresolver.ReadText("bandit", templateresolver.KindReport)
//
//	// Write every bundled template to ./my-templates for editing
//	written, err := templateresolver.Extract("my-templates", false)
package templateresolver

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/scanreport/scanreport/pkg/defaults"
	"github.com/scanreport/scanreport/pkg/iohelper"
	"github.com/scanreport/scanreport/templates"
)

// ErrNotFound is returned when no step of the chain finds the template.
var ErrNotFound = errors.New("templateresolver: template not found")

// ErrExists is returned by Extract when a target file is already present.
var ErrExists = errors.New("templateresolver: file already exists")

// Kind identifies the template category for resolution.
type Kind string

const (
	// KindReport resolves HTML report templates from html/.
	KindReport Kind = "html"

	// KindReportConfig resolves report config YAML files from report-configs/.
	KindReportConfig Kind = "report-configs"
)

// extensions maps each Kind to its expected file extension.
var extensions = map[Kind]string{
	KindReport:       ".html",
	KindReportConfig: ".yaml",
}

// Result holds a resolved template's content and metadata.
type Result struct {
	// Source describes where the template was found (e.g. "embedded:html/bandit.html", "disk:/path").
	Source string

	// Content is a ReadCloser for the template data. Caller must close it.
	Content io.ReadCloser
}

// validKind reports whether kind is a recognized template category.
func validKind(kind Kind) bool {
	_, ok := extensions[kind]
	return ok
}

// locateResult describes where a template was found during resolution.
type locateResult struct {
	source   string // e.g. "disk:/path", "env:/path", "embedded:rel"
	diskPath string // non-empty for disk/env sources
	rel      string // relative path in embedded FS
}

// isFile reports whether path names an existing regular file.
func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// locate implements the resolution chain shared by Resolve and ReadText.
func locate(value string, kind Kind) (*locateResult, error) {
	if value == "" {
		return nil, fmt.Errorf("templateresolver: empty template reference")
	}
	if !validKind(kind) {
		return nil, fmt.Errorf("templateresolver: unknown kind %q", kind)
	}

	// Paths with separators, and bare file names present in the working
	// directory, are always read from disk.
	if strings.ContainsAny(value, "/\\") || isFile(value) {
		return &locateResult{source: "disk:" + value, diskPath: value}, nil
	}

	// Short name resolution: add extension if missing.
	name := value
	ext := extensions[kind]
	if !strings.HasSuffix(name, ext) {
		name += ext
	}
	rel := string(kind) + "/" + name

	// 1. On-disk ./templates/<kind>/<name><ext>
	diskPath := filepath.Join(defaults.TemplateDir, string(kind), name)
	if isFile(diskPath) {
		return &locateResult{source: "disk:" + diskPath, diskPath: diskPath, rel: rel}, nil
	}

	// 2. SCAN_REPORT_TEMPLATE_DIR env var
	if envDir := os.Getenv(defaults.TemplateDirEnv); envDir != "" {
		envPath := filepath.Join(envDir, string(kind), name)
		if isFile(envPath) {
			return &locateResult{source: "env:" + envPath, diskPath: envPath, rel: rel}, nil
		}
	}

	// 3. Embedded FS
	if f, err := templates.FS.Open(rel); err == nil {
		f.Close()
		return &locateResult{source: "embedded:" + rel, rel: rel}, nil
	}

	return nil, fmt.Errorf("%w: %q (kind=%s): tried disk, env, embedded", ErrNotFound, value, kind)
}

// Resolve resolves a template reference to its content.
//
// The value parameter can be:
//   - A filesystem path (contains / or \, or an existing file) → read from disk
//   - A short name (e.g. "bandit") → look up via resolution chain
//   - A filename with extension (e.g. "bandit.html") → same resolution chain
//
// Resolution order for short names:
//  1. On-disk ./templates/<kind>/<name><ext>
//  2. SCAN_REPORT_TEMPLATE_DIR env var: <dir>/<kind>/<name><ext>
//  3. Embedded FS fallback (always available)
func Resolve(value string, kind Kind) (*Result, error) {
	loc, err := locate(value, kind)
	if err != nil {
		return nil, err
	}

	if loc.diskPath != "" {
		f, openErr := os.Open(loc.diskPath)
		if openErr != nil {
			if errors.Is(openErr, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %q", ErrNotFound, loc.diskPath)
			}
			return nil, fmt.Errorf("templateresolver: opening %q: %w", loc.diskPath, openErr)
		}
		return &Result{Source: loc.source, Content: f}, nil
	}

	data, openErr := templates.FS.Open(loc.rel)
	if openErr != nil {
		return nil, fmt.Errorf("templateresolver: opening embedded %q: %w", loc.rel, openErr)
	}
	return &Result{Source: loc.source, Content: data}, nil
}

// ReadText resolves value and reads it whole, bounded by
// iohelper.TemplateMaxSize. It returns the text and its source.
func ReadText(value string, kind Kind) (string, string, error) {
	res, err := Resolve(value, kind)
	if err != nil {
		return "", "", err
	}
	defer res.Content.Close()

	data, err := iohelper.ReadLimited(res.Content, iohelper.TemplateMaxSize)
	if err != nil {
		return "", "", fmt.Errorf("templateresolver: reading %s: %w", res.Source, err)
	}
	return string(data), res.Source, nil
}

// Extract writes every embedded template under dir, keeping the
// <kind>/<name> layout so dir can serve as SCAN_REPORT_TEMPLATE_DIR.
// Existing files are left alone unless overwrite is set. It returns the
// paths written.
func Extract(dir string, overwrite bool) ([]string, error) {
	if dir == "" {
		return nil, fmt.Errorf("templateresolver: empty target directory")
	}

	var written []string
	err := fs.WalkDir(templates.FS, ".", func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		dest := filepath.Join(dir, filepath.FromSlash(path))
		if d.IsDir() {
			return os.MkdirAll(dest, defaults.DirPerm)
		}
		if !overwrite && isFile(dest) {
			return fmt.Errorf("%w: %s", ErrExists, dest)
		}
		data, readErr := templates.FS.ReadFile(path)
		if readErr != nil {
			return readErr
		}
		if writeErr := os.WriteFile(dest, data, defaults.FilePerm); writeErr != nil {
			return writeErr
		}
		written = append(written, dest)
		return nil
	})
	if err != nil {
		return written, fmt.Errorf("templateresolver: extracting templates: %w", err)
	}
	return written, nil
}

// ListCategory returns metadata for all templates in a category from the embedded FS.
func ListCategory(kind Kind) ([]TemplateInfo, error) {
	if !validKind(kind) {
		return nil, fmt.Errorf("templateresolver: unknown kind %q", kind)
	}

	infos := make([]TemplateInfo, 0)
	err := fs.WalkDir(templates.FS, string(kind), func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		infos = append(infos, parseTemplateInfo(path, kind))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("templateresolver: listing %s: %w", kind, err)
	}
	return infos, nil
}

// TemplateInfo holds metadata about a single template.
type TemplateInfo struct {
	// Name is the short name (e.g. "bandit", "default").
	Name string `json:"name"`

	// Path is the relative path within the embedded FS (e.g. "html/bandit.html").
	Path string `json:"path"`

	// Kind is the template category.
	Kind Kind `json:"kind"`
}

// parseTemplateInfo extracts info from an embedded FS path.
func parseTemplateInfo(path string, kind Kind) TemplateInfo {
	base := filepath.Base(path)
	return TemplateInfo{
		Name: strings.TrimSuffix(base, filepath.Ext(base)),
		Path: path,
		Kind: kind,
	}
}
