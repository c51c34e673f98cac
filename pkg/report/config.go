package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/scanreport/scanreport/pkg/chart"
	"github.com/scanreport/scanreport/pkg/defaults"
	"github.com/scanreport/scanreport/pkg/iohelper"
)

// Config is the YAML report profile: per-organization branding, chart
// sizing and export defaults.
type Config struct {
	// Name is the profile identifier (e.g., "default", "compact")
	Name string `yaml:"name" json:"name"`

	// Branding customizes titles, colors, and company information
	Branding BrandingConfig `yaml:"branding" json:"branding"`

	// Charts configures chart rendering
	Charts ChartsConfig `yaml:"charts" json:"charts"`

	// Export configures default export options
	Export ExportConfig `yaml:"export" json:"export"`
}

// BrandingConfig holds organization branding information.
type BrandingConfig struct {
	// Title overrides the per-tool report title when set
	Title string `yaml:"title" json:"title"`

	// CompanyName appears in the report header
	CompanyName string `yaml:"company_name" json:"company_name"`

	// AccentColor is the primary brand color (hex, e.g., "#0066cc")
	AccentColor string `yaml:"accent_color" json:"accent_color"`

	// FooterText appears at the bottom of each page
	FooterText string `yaml:"footer_text" json:"footer_text"`
}

// ChartsConfig customizes chart rendering.
type ChartsConfig struct {
	// Width and Height of each PNG in pixels
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`

	// TopN is the bucket limit of "top files" charts
	TopN int `yaml:"top_n" json:"top_n"`

	// ColorPalette is the list of colors for labels without a fixed color
	ColorPalette []string `yaml:"color_palette" json:"color_palette"`
}

// ExportConfig sets default export behavior.
type ExportConfig struct {
	// PageSize of native PDFs: "A4", "Letter", "Legal"
	PageSize string `yaml:"page_size" json:"page_size"`

	// Landscape orients native PDF pages horizontally
	Landscape bool `yaml:"landscape" json:"landscape"`

	// CSVExcelCompatible writes a UTF-8 BOM in CSV exports
	CSVExcelCompatible bool `yaml:"csv_excel_compatible" json:"csv_excel_compatible"`
}

// ErrConfig marks an unreadable or invalid report profile.
var ErrConfig = errors.New("report: invalid config")

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

var pageSizes = []string{"A4", "A3", "Letter", "Legal"}

// DefaultConfig returns the built-in report profile.
func DefaultConfig() *Config {
	return &Config{
		Name: "default",
		Branding: BrandingConfig{
			AccentColor: "#1e293b",
			FooterText:  "Generated by " + defaults.ToolName,
		},
		Charts: ChartsConfig{
			Width:        defaults.ChartWidth,
			Height:       defaults.ChartHeight,
			TopN:         defaults.TopN,
			ColorPalette: slices.Clone(chart.DefaultPalette),
		},
		Export: ExportConfig{
			PageSize: defaults.PDFPageSize,
		},
	}
}

// LoadConfig loads a profile from a YAML file. Fields the file omits
// keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := iohelper.ReadFile(path, iohelper.TemplateMaxSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return ParseConfig(path, data)
}

// ParseConfig decodes a profile read from source (used in messages).
func ParseConfig(source string, data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConfig, source, err)
	}
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConfig, source, err)
	}
	return cfg, nil
}

// SaveConfig writes a profile to a YAML file.
func SaveConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), defaults.DirPerm); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, defaults.FilePerm)
}

// MergeConfig applies non-zero fields of override onto base.
func MergeConfig(base, override *Config) *Config {
	if override == nil {
		return base
	}
	if override.Name != "" {
		base.Name = override.Name
	}

	if override.Branding.Title != "" {
		base.Branding.Title = override.Branding.Title
	}
	if override.Branding.CompanyName != "" {
		base.Branding.CompanyName = override.Branding.CompanyName
	}
	if override.Branding.AccentColor != "" {
		base.Branding.AccentColor = override.Branding.AccentColor
	}
	if override.Branding.FooterText != "" {
		base.Branding.FooterText = override.Branding.FooterText
	}

	if override.Charts.Width > 0 {
		base.Charts.Width = override.Charts.Width
	}
	if override.Charts.Height > 0 {
		base.Charts.Height = override.Charts.Height
	}
	if override.Charts.TopN > 0 {
		base.Charts.TopN = override.Charts.TopN
	}
	if len(override.Charts.ColorPalette) > 0 {
		base.Charts.ColorPalette = slices.Clone(override.Charts.ColorPalette)
	}

	if override.Export.PageSize != "" {
		base.Export.PageSize = override.Export.PageSize
	}
	base.Export.Landscape = base.Export.Landscape || override.Export.Landscape
	base.Export.CSVExcelCompatible = base.Export.CSVExcelCompatible || override.Export.CSVExcelCompatible
	return base
}

// ValidateConfig checks a profile for invalid values.
func ValidateConfig(cfg *Config) error {
	if cfg.Branding.AccentColor != "" && !hexColor.MatchString(cfg.Branding.AccentColor) {
		return fmt.Errorf("invalid accent_color %q: want #RGB or #RRGGBB", cfg.Branding.AccentColor)
	}
	for i, c := range cfg.Charts.ColorPalette {
		if !hexColor.MatchString(c) {
			return fmt.Errorf("invalid color_palette[%d] %q: want #RGB or #RRGGBB", i, c)
		}
	}
	if cfg.Charts.Width < 200 || cfg.Charts.Width > 8000 {
		return fmt.Errorf("charts.width %d out of range [200, 8000]", cfg.Charts.Width)
	}
	if cfg.Charts.Height < 150 || cfg.Charts.Height > 8000 {
		return fmt.Errorf("charts.height %d out of range [150, 8000]", cfg.Charts.Height)
	}
	if cfg.Charts.TopN < 1 {
		return fmt.Errorf("charts.top_n must be at least 1, got %d", cfg.Charts.TopN)
	}
	if !slices.Contains(pageSizes, cfg.Export.PageSize) {
		return fmt.Errorf("export.page_size %q not one of %v", cfg.Export.PageSize, pageSizes)
	}
	return nil
}
