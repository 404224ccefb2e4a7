// Package overview builds the rule overview of all reported languages.
package overview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rico-chet/languagetool/internal/catalog"
	"github.com/rico-chet/languagetool/internal/identify"
	"github.com/rico-chet/languagetool/internal/model"
	"github.com/rico-chet/languagetool/internal/pipeline"
)

// ErrNoJavaRules is returned when no language has a Java rule directory,
// which means the rule data is not where the generator looks for it.
var ErrNoJavaRules = errors.New("no Java rules found")

// Generator builds overviews from a catalog and a rule source.
type Generator struct {
	catalog *catalog.Catalog
	source  pipeline.RuleSource
	version string
	now     func() time.Time
	logger  *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithVersion overrides the product version from the catalog.
func WithVersion(version string) Option {
	return func(g *Generator) {
		g.version = version
	}
}

// WithClock sets the function returning the generation time.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// WithLogger sets the logger for the generator and its pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// NewGenerator creates a Generator.
func NewGenerator(c *catalog.Catalog, source pipeline.RuleSource, opts ...Option) *Generator {
	g := &Generator{
		catalog: c,
		source:  source,
		version: c.Version,
		now:     time.Now,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Build produces one row per non-demo language, sorted by display name.
// It returns ErrNoJavaRules if no language has a Java rule directory.
func (g *Generator) Build(ctx context.Context) (*model.Overview, error) {
	detector := identify.NewDetector(g.catalog.Detection.Supported)

	p, err := pipeline.DefaultPipeline(g.source, g.catalog, detector, pipeline.WithLogger(g.logger))
	if err != nil {
		return nil, fmt.Errorf("failed to set up row pipeline: %w", err)
	}
	g.logger.Debug("row pipeline ready", "steps", p.StepNames())

	ov := model.NewOverview(g.catalog.Product, g.version, g.now())

	for _, lang := range g.catalog.Reported() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row := model.Row{Code: lang.Code, Name: lang.Name}
		if err := p.Execute(ctx, &row); err != nil {
			return nil, fmt.Errorf("language %s: %w", lang.Code, err)
		}

		if row.HasJavaDir {
			ov.JavaRuleLanguages++
		}
		ov.Rows = append(ov.Rows, row)

		g.logger.Debug("language counted",
			"language", row.Code,
			"xmlRules", row.XMLRules,
			"javaRules", row.JavaRules,
			"falseFriends", row.FalseFriends,
		)
	}

	if ov.JavaRuleLanguages == 0 {
		return nil, ErrNoJavaRules
	}

	g.logger.Info("overview built",
		"languages", len(ov.Rows),
		"javaRuleLanguages", ov.JavaRuleLanguages,
	)

	return ov, nil
}
