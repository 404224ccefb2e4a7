package rules

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
)

// Default locations, relative to the project root.
const (
	DefaultRulesDir         = "src/rules"
	DefaultJavaRulesDir     = "src/java/org/languagetool/rules"
	DefaultWebsiteDir       = "website/www"
	DefaultGrammarFile      = "grammar.xml"
	DefaultFalseFriendsFile = "false-friends.xml"
)

// Layout describes where rule resources live inside the project tree.
// All paths are slash separated and relative to the root of the Source.
type Layout struct {
	RulesDir         string
	JavaRulesDir     string
	WebsiteDir       string
	GrammarFile      string
	FalseFriendsFile string
}

// DefaultLayout returns the layout of the LanguageTool source tree.
func DefaultLayout() Layout {
	return Layout{
		RulesDir:         DefaultRulesDir,
		JavaRulesDir:     DefaultJavaRulesDir,
		WebsiteDir:       DefaultWebsiteDir,
		GrammarFile:      DefaultGrammarFile,
		FalseFriendsFile: DefaultFalseFriendsFile,
	}
}

// GrammarPath returns the path of a language's grammar file.
func (l Layout) GrammarPath(code string) string {
	return path.Join(l.RulesDir, code, l.GrammarFile)
}

// FalseFriendsPath returns the path of the shared false-friends file.
func (l Layout) FalseFriendsPath() string {
	return path.Join(l.RulesDir, l.FalseFriendsFile)
}

// JavaRulesPath returns the directory holding a language's Java rules.
func (l Layout) JavaRulesPath(code string) string {
	return path.Join(l.JavaRulesDir, code)
}

// WebsitePath returns a language's website directory.
func (l Layout) WebsitePath(code string) string {
	return path.Join(l.WebsiteDir, code)
}

// Source gives read-only access to the rule resources of a project tree.
type Source struct {
	fsys   fs.FS
	layout Layout
	filter FileFilter
}

// Option configures a Source.
type Option func(*Source)

// WithLayout overrides the default resource layout.
func WithLayout(layout Layout) Option {
	return func(s *Source) {
		s.layout = layout
	}
}

// WithFileFilter sets the predicate selecting Java rule source files.
func WithFileFilter(filter FileFilter) Option {
	return func(s *Source) {
		s.filter = filter
	}
}

// NewSource creates a Source reading from fsys, typically os.DirFS(root).
func NewSource(fsys fs.FS, opts ...Option) *Source {
	s := &Source{
		fsys:   fsys,
		layout: DefaultLayout(),
		filter: SuffixFilter(DefaultSourceSuffix),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Layout returns the layout the source reads from.
func (s *Source) Layout() Layout {
	return s.layout
}

// Grammar returns the content of a language's grammar file.
// ok is false if the file does not exist.
func (s *Source) Grammar(code string) (text string, ok bool, err error) {
	return s.readOptional(s.layout.GrammarPath(code))
}

// FalseFriends returns the content of the shared false-friends file.
// ok is false if the file does not exist.
func (s *Source) FalseFriends() (text string, ok bool, err error) {
	return s.readOptional(s.layout.FalseFriendsPath())
}

// JavaRuleFiles lists the files in a language's Java rule directory that pass
// the source filter. ok is false if the directory does not exist.
func (s *Source) JavaRuleFiles(code string) (names []string, ok bool, err error) {
	dir := s.layout.JavaRulesPath(code)
	entries, err := fs.ReadDir(s.fsys, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	names = make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if s.filter(e.Name()) {
			names = append(names, e.Name())
		}
	}
	return names, true, nil
}

// HasWebsite reports whether a language specific website directory exists.
func (s *Source) HasWebsite(code string) bool {
	info, err := fs.Stat(s.fsys, s.layout.WebsitePath(code))
	return err == nil && info.IsDir()
}

func (s *Source) readOptional(name string) (string, bool, error) {
	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return string(data), true, nil
}
