package config

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/adrg/xdg"

	"github.com/rico-chet/languagetool/internal/report"
	"github.com/rico-chet/languagetool/internal/rules"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "ruleoverview"

	// DefaultRootDir reads the project from the working directory, which is
	// where the website build runs the tool.
	DefaultRootDir = "."

	// DefaultFormat is the report format written when none is requested.
	DefaultFormat = report.FormatHTML

	// DefaultProductName is shown in the report banner.
	DefaultProductName = "LanguageTool"
)

// Log formats accepted by LogFormat.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config holds all configuration options for ruleoverview.
// It is populated from defaults, the configuration file, the environment
// and CLI flags, in that order, and passed down explicitly.
type Config struct {
	// RootDir is the root of the LanguageTool project tree.
	RootDir string

	// CatalogPath is an optional language catalog file replacing the
	// built-in catalog.
	CatalogPath string

	// Format is the report format: html, markdown, json or text.
	Format string

	// OutputFile is the file the report is written to.
	// When empty, the report goes to stdout.
	OutputFile string

	// Tee also writes the report to stdout when OutputFile is set.
	Tee bool

	// ProductVersion overrides the version shown in the banner.
	// When empty, the catalog's version is used.
	ProductVersion string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// LogFormat selects the log handler: text or json.
	LogFormat string

	// ConfigFilePath is the path to the configuration file.
	// If empty, FindConfigFile searches the default locations.
	ConfigFilePath string

	// Save stores the generated overview in the run history database.
	Save bool

	// DBDir is the directory holding the run history database.
	// Defaults to the XDG data directory (~/.local/share/ruleoverview on Linux).
	DBDir string

	// RulesDir, JavaRulesDir and WebsiteDir locate the rule resources
	// relative to RootDir.
	RulesDir     string
	JavaRulesDir string
	WebsiteDir   string

	// SourceSuffix selects the files counted as Java rules.
	SourceSuffix string

	// SourceURL, BrowseURL and SiteURL are link templates; {lang} is
	// replaced by the language code.
	SourceURL string
	BrowseURL string
	SiteURL   string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		RootDir:      DefaultRootDir,
		Format:       DefaultFormat,
		LogFormat:    LogFormatText,
		DBDir:        XDGDataDir(),
		RulesDir:     rules.DefaultRulesDir,
		JavaRulesDir: rules.DefaultJavaRulesDir,
		WebsiteDir:   rules.DefaultWebsiteDir,
		SourceSuffix: rules.DefaultSourceSuffix,
		SourceURL:    report.DefaultSourceURL,
		BrowseURL:    report.DefaultBrowseURL,
		SiteURL:      report.DefaultSiteURL,
	}
}

// XDGDataDir returns the XDG data directory for ruleoverview.
// On Linux: ~/.local/share/ruleoverview
// On macOS: ~/Library/Application Support/ruleoverview
// On Windows: %LOCALAPPDATA%\ruleoverview
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for ruleoverview.
// On Linux: ~/.config/ruleoverview
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Layout returns the rule resource layout described by the configuration.
func (c *Config) Layout() rules.Layout {
	layout := rules.DefaultLayout()
	layout.RulesDir = c.RulesDir
	layout.JavaRulesDir = c.JavaRulesDir
	layout.WebsiteDir = c.WebsiteDir
	return layout
}

// Links returns the link templates used by the report writers.
func (c *Config) Links() report.Links {
	return report.Links{
		Source: c.SourceURL,
		Browse: c.BrowseURL,
		Site:   c.SiteURL,
	}
}

// Validate checks if the configuration is valid.
// It returns the first error found.
func (c *Config) Validate() error {
	if c.RootDir == "" {
		return ErrEmptyRootDir
	}

	if !slices.Contains(report.Formats(), strings.ToLower(c.Format)) {
		return ErrInvalidFormat
	}

	if c.LogFormat != LogFormatText && c.LogFormat != LogFormatJSON {
		return ErrInvalidLogFormat
	}

	if c.SourceSuffix == "" {
		return ErrEmptySourceSuffix
	}

	if c.RulesDir == "" || c.JavaRulesDir == "" || c.WebsiteDir == "" {
		return ErrEmptyLayoutPath
	}

	// The site link may be a fixed page, but show and browse are per language.
	for _, tmpl := range []string{c.SourceURL, c.BrowseURL} {
		if !strings.Contains(tmpl, report.LangPlaceholder) {
			return ErrMissingPlaceholder
		}
	}

	return nil
}
