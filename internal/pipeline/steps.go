package pipeline

import (
	"context"
	"log/slog"

	"github.com/rico-chet/languagetool/internal/catalog"
	"github.com/rico-chet/languagetool/internal/model"
	"github.com/rico-chet/languagetool/internal/rules"
)

// RuleSource is the read-only view of rule resources the steps need.
// *rules.Source implements it.
type RuleSource interface {
	Grammar(code string) (text string, ok bool, err error)
	FalseFriends() (text string, ok bool, err error)
	JavaRuleFiles(code string) (names []string, ok bool, err error)
	HasWebsite(code string) bool
}

// AutoDetector reports whether language identification supports a code.
// *identify.Detector implements it.
type AutoDetector interface {
	IsAutoDetected(code string) bool
}

// WebsiteStep records whether the language has its own website directory.
type WebsiteStep struct {
	source RuleSource
}

// NewWebsiteStep creates a WebsiteStep.
func NewWebsiteStep(source RuleSource) *WebsiteStep {
	return &WebsiteStep{source: source}
}

// Name returns the step name.
func (s *WebsiteStep) Name() string {
	return "website"
}

// Do executes the website step.
func (s *WebsiteStep) Do(_ context.Context, row *model.Row) error {
	row.HasWebsite = s.source.HasWebsite(row.Code)
	return nil
}

// XMLRulesStep counts the pattern rules of the language's grammar file.
type XMLRulesStep struct {
	source RuleSource
	logger *slog.Logger
}

// NewXMLRulesStep creates an XMLRulesStep.
func NewXMLRulesStep(source RuleSource, logger *slog.Logger) *XMLRulesStep {
	return &XMLRulesStep{source: source, logger: logger}
}

// Name returns the step name.
func (s *XMLRulesStep) Name() string {
	return "xml_rules"
}

// Do executes the XML rules step.
func (s *XMLRulesStep) Do(_ context.Context, row *model.Row) error {
	text, ok, err := s.source.Grammar(row.Code)
	if err != nil {
		return err
	}
	if !ok {
		s.logger.Debug("no grammar file", "language", row.Code)
		row.HasGrammar = false
		row.XMLRules = 0
		return nil
	}

	row.HasGrammar = true
	row.XMLRules = rules.CountXMLRules(text)
	row.GrammarDigest = rules.Digest(text)
	return nil
}

// JavaRulesStep counts the Java rules of the language.
type JavaRulesStep struct {
	source RuleSource
	logger *slog.Logger
}

// NewJavaRulesStep creates a JavaRulesStep.
func NewJavaRulesStep(source RuleSource, logger *slog.Logger) *JavaRulesStep {
	return &JavaRulesStep{source: source, logger: logger}
}

// Name returns the step name.
func (s *JavaRulesStep) Name() string {
	return "java_rules"
}

// Do executes the Java rules step.
func (s *JavaRulesStep) Do(_ context.Context, row *model.Row) error {
	names, ok, err := s.source.JavaRuleFiles(row.Code)
	if err != nil {
		return err
	}
	if !ok {
		s.logger.Debug("no java rule directory", "language", row.Code)
		row.HasJavaDir = false
		row.JavaRules = 0
		return nil
	}

	row.HasJavaDir = true
	row.JavaRules = rules.CountJavaRules(len(names))
	return nil
}

// FalseFriendsStep counts false friend patterns and looks up auto-detection.
// The shared false-friends file is read once, when the step is created.
type FalseFriendsStep struct {
	stripped string
	present  bool
	detector AutoDetector
}

// NewFalseFriendsStep reads the false-friends file from source and creates
// the step.
func NewFalseFriendsStep(source RuleSource, detector AutoDetector) (*FalseFriendsStep, error) {
	text, ok, err := source.FalseFriends()
	if err != nil {
		return nil, err
	}
	return &FalseFriendsStep{
		stripped: rules.StripMarkup(text),
		present:  ok,
		detector: detector,
	}, nil
}

// Name returns the step name.
func (s *FalseFriendsStep) Name() string {
	return "false_friends"
}

// Do executes the false friends step.
func (s *FalseFriendsStep) Do(_ context.Context, row *model.Row) error {
	row.AutoDetected = s.detector.IsAutoDetected(row.Code)
	row.HasFalseFriends = s.present
	if !s.present {
		row.FalseFriends = 0
		return nil
	}
	row.FalseFriends = rules.CountFalseFriends(s.stripped, row.Code)
	return nil
}

// MaintainersStep copies the language's maintainers from the catalog.
type MaintainersStep struct {
	catalog *catalog.Catalog
}

// NewMaintainersStep creates a MaintainersStep.
func NewMaintainersStep(c *catalog.Catalog) *MaintainersStep {
	return &MaintainersStep{catalog: c}
}

// Name returns the step name.
func (s *MaintainersStep) Name() string {
	return "maintainers"
}

// Do executes the maintainers step.
func (s *MaintainersStep) Do(_ context.Context, row *model.Row) error {
	lang, ok := s.catalog.Lookup(row.Code)
	if !ok {
		row.Maintainers = nil
		return nil
	}

	row.Maintainers = make([]model.Maintainer, 0, len(lang.Maintainers))
	for _, c := range lang.Maintainers {
		row.Maintainers = append(row.Maintainers, model.Maintainer{
			Name:   c.Name,
			URL:    c.URL,
			Remark: c.Remark,
		})
	}
	return nil
}

// DefaultPipeline creates a pipeline with all row steps, in report column
// order. It reads the false-friends file once. A failing step does not stop
// the others, so every broken file of a language is logged in one run; opts
// may turn this off.
func DefaultPipeline(source RuleSource, c *catalog.Catalog, detector AutoDetector, opts ...Option) (*Pipeline, error) {
	p := New(append([]Option{WithContinueOnError(true)}, opts...)...)

	falseFriends, err := NewFalseFriendsStep(source, detector)
	if err != nil {
		return nil, err
	}

	p.AddSteps(
		NewWebsiteStep(source),
		NewXMLRulesStep(source, p.logger),
		NewJavaRulesStep(source, p.logger),
		falseFriends,
		NewMaintainersStep(c),
	)

	return p, nil
}
