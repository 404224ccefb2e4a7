package config

// LayoutConfig overrides the location of rule resources.
type LayoutConfig struct {
	RulesDir     string `yaml:"rulesDir,omitempty"`
	JavaRulesDir string `yaml:"javaRulesDir,omitempty"`
	WebsiteDir   string `yaml:"websiteDir,omitempty"`

	// SourceSuffix selects Java rule files, e.g. ".java".
	SourceSuffix string `yaml:"sourceSuffix,omitempty"`
}

// LinksConfig overrides the report link templates.
type LinksConfig struct {
	Source string `yaml:"source,omitempty"`
	Browse string `yaml:"browse,omitempty"`
	Site   string `yaml:"site,omitempty"`
}

// File represents the structure of the .ruleoverview configuration file.
// Every field is optional; empty values keep the current setting.
type File struct {
	Root    string `yaml:"root,omitempty"`
	Catalog string `yaml:"catalog,omitempty"`
	Format  string `yaml:"format,omitempty"`
	Output  string `yaml:"output,omitempty"`
	Version string `yaml:"version,omitempty"`

	// Save turns on run history for every invocation.
	Save bool `yaml:"save,omitempty"`

	// DBDir is where the run history database lives.
	DBDir string `yaml:"dbDir,omitempty"`

	// LogFormat is text or json.
	LogFormat string `yaml:"logFormat,omitempty"`

	Layout LayoutConfig `yaml:"layout,omitempty"`
	Links  LinksConfig  `yaml:"links,omitempty"`
}

// Apply copies the values set in the file onto cfg.
func (f *File) Apply(cfg *Config) {
	setString(&cfg.RootDir, f.Root)
	setString(&cfg.CatalogPath, f.Catalog)
	setString(&cfg.Format, f.Format)
	setString(&cfg.OutputFile, f.Output)
	setString(&cfg.ProductVersion, f.Version)
	setString(&cfg.DBDir, f.DBDir)
	setString(&cfg.LogFormat, f.LogFormat)
	if f.Save {
		cfg.Save = true
	}

	setString(&cfg.RulesDir, f.Layout.RulesDir)
	setString(&cfg.JavaRulesDir, f.Layout.JavaRulesDir)
	setString(&cfg.WebsiteDir, f.Layout.WebsiteDir)
	setString(&cfg.SourceSuffix, f.Layout.SourceSuffix)

	setString(&cfg.SourceURL, f.Links.Source)
	setString(&cfg.BrowseURL, f.Links.Browse)
	setString(&cfg.SiteURL, f.Links.Site)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
