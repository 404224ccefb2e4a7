package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"slices"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"gopkg.in/yaml.v3"
)

//go:embed languages.yaml
var defaultCatalog []byte

// Contributor is a person maintaining the rules of a language.
type Contributor struct {
	Name   string `yaml:"name" json:"name"`
	URL    string `yaml:"url,omitempty" json:"url,omitempty"`
	Remark string `yaml:"remark,omitempty" json:"remark,omitempty"`
}

// Language is one language of the catalog.
type Language struct {
	Code        string        `yaml:"code" json:"code"`
	Name        string        `yaml:"name" json:"name"`
	Maintainers []Contributor `yaml:"maintainers,omitempty" json:"maintainers,omitempty"`

	// Demo marks the placeholder language used by tests of the checker.
	// It is never reported.
	Demo bool `yaml:"demo,omitempty" json:"demo,omitempty"`
}

// Detection holds the language identifier's data.
type Detection struct {
	// Supported lists the codes the identifier can recognize.
	Supported []string `yaml:"supported" json:"supported"`
}

// Catalog is the full set of languages of a product.
type Catalog struct {
	Product   string     `yaml:"product" json:"product"`
	Version   string     `yaml:"version" json:"version"`
	Detection Detection  `yaml:"detection" json:"detection"`
	Languages []Language `yaml:"languages" json:"languages"`
}

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog from a YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided catalog path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes, completes and validates a YAML catalog.
// Languages without a display name get the English name of their code.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	for i := range c.Languages {
		lang := &c.Languages[i]
		if lang.Name == "" {
			lang.Name = displayName(lang.Code)
		}
	}

	return &c, nil
}

// Validate checks codes and maintainer entries, returning the first problem.
func (c *Catalog) Validate() error {
	if len(c.Languages) == 0 {
		return ErrNoLanguages
	}

	seen := make(map[string]bool, len(c.Languages))
	for _, lang := range c.Languages {
		code := lang.Code
		if strings.TrimSpace(code) == "" {
			return ErrEmptyCode
		}
		// Codes name directories, so they are used exactly as written.
		if strings.TrimSpace(code) != code {
			return fmt.Errorf("%w: %q has surrounding whitespace", ErrInvalidCode, code)
		}
		if seen[code] {
			return fmt.Errorf("%w: %q", ErrDuplicateCode, code)
		}
		seen[code] = true

		if !lang.Demo {
			if _, err := language.Parse(code); err != nil {
				return fmt.Errorf("%w: %q: %v", ErrInvalidCode, code, err)
			}
		}

		for _, m := range lang.Maintainers {
			if strings.TrimSpace(m.Name) == "" {
				return fmt.Errorf("%w (language %q)", ErrEmptyMaintainerName, code)
			}
		}
	}

	return nil
}

// Reported returns the languages that appear in a report: every language
// except demo entries, sorted by display name. Byte-wise ordering is used, so
// upper case sorts before lower case.
func (c *Catalog) Reported() []Language {
	out := make([]Language, 0, len(c.Languages))
	for _, lang := range c.Languages {
		if lang.Demo {
			continue
		}
		out = append(out, lang)
	}
	slices.SortStableFunc(out, func(a, b Language) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out
}

// Lookup returns the language with the given code.
func (c *Catalog) Lookup(code string) (Language, bool) {
	for _, lang := range c.Languages {
		if lang.Code == code {
			return lang, true
		}
	}
	return Language{}, false
}

func displayName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	if name := display.English.Languages().Name(tag); name != "" {
		return name
	}
	return code
}
