package pipeline

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/rico-chet/languagetool/internal/catalog"
	"github.com/rico-chet/languagetool/internal/identify"
	"github.com/rico-chet/languagetool/internal/model"
	"github.com/rico-chet/languagetool/internal/rules"
)

func testSource() *rules.Source {
	return rules.NewSource(fstest.MapFS{
		"src/rules/de/grammar.xml": {Data: []byte(`<!-- <rule id="X"> --><rules lang="de">
<rule id="A"></rule>
<rulegroup id="G"><rule></rule><rule></rule></rulegroup>
</rules>`)},
		"src/rules/false-friends.xml": {Data: []byte(`<rules>
<rule><pattern lang="de">a</pattern><translation lang="en">b</translation></rule>
<rule><pattern lang="en">c</pattern><translation lang="de">d</translation></rule>
<rule><pattern lang="de">e</pattern><translation lang="en">f</translation></rule>
</rules>`)},
		"src/java/org/languagetool/rules/de/GermanRule.java":    {Data: []byte("")},
		"src/java/org/languagetool/rules/de/CaseRule.java":      {Data: []byte("")},
		"src/java/org/languagetool/rules/de/AgreementRule.java": {Data: []byte("")},
		"src/java/org/languagetool/rules/en/EnglishRule.java":   {Data: []byte("")},
		"website/www/de/index.php":                              {Data: []byte("")},
	})
}

func testCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		Product: "LanguageTool",
		Version: "1.0",
		Languages: []catalog.Language{
			{Code: "de", Name: "German", Maintainers: []catalog.Contributor{
				{Name: "Daniel Naber", URL: "http://www.danielnaber.de"},
			}},
			{Code: "en", Name: "English"},
			{Code: "pl", Name: "Polish"},
		},
	}
}

func TestDefaultPipeline(t *testing.T) {
	t.Parallel()

	p, err := DefaultPipeline(testSource(), testCatalog(), identify.NewDetector([]string{"de"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("steps follow report column order", func(t *testing.T) {
		t.Parallel()

		want := []string{"website", "xml_rules", "java_rules", "false_friends", "maintainers"}
		if diff := cmp.Diff(want, p.StepNames()); diff != "" {
			t.Errorf("step names mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("fills a complete row", func(t *testing.T) {
		t.Parallel()

		row := model.Row{Code: "de", Name: "German"}
		if err := p.Execute(context.Background(), &row); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := model.Row{
			Code:            "de",
			Name:            "German",
			HasWebsite:      true,
			HasGrammar:      true,
			XMLRules:        3,
			HasJavaDir:      true,
			JavaRules:       2,
			HasFalseFriends: true,
			FalseFriends:    2,
			AutoDetected:    true,
			Maintainers:     []model.Maintainer{{Name: "Daniel Naber", URL: "http://www.danielnaber.de"}},
		}
		if diff := cmp.Diff(want, row, cmpopts.IgnoreFields(model.Row{}, "GrammarDigest")); diff != "" {
			t.Errorf("row mismatch (-want +got):\n%s", diff)
		}
		if row.GrammarDigest == "" {
			t.Error("expected grammar digest")
		}
	})

	t.Run("base class alone counts zero", func(t *testing.T) {
		t.Parallel()

		row := model.Row{Code: "en", Name: "English"}
		if err := p.Execute(context.Background(), &row); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !row.HasJavaDir || row.JavaRules != 0 {
			t.Errorf("expected existing dir with 0 rules, got HasJavaDir=%v JavaRules=%d", row.HasJavaDir, row.JavaRules)
		}
		if row.HasGrammar || row.XMLRules != 0 {
			t.Errorf("expected no grammar, got HasGrammar=%v XMLRules=%d", row.HasGrammar, row.XMLRules)
		}
		if row.FalseFriends != 1 {
			t.Errorf("expected 1 false friend, got %d", row.FalseFriends)
		}
		if row.AutoDetected {
			t.Error("en is not in the supported set of this test")
		}
	})

	t.Run("absent resources give zero counts", func(t *testing.T) {
		t.Parallel()

		row := model.Row{Code: "pl", Name: "Polish"}
		if err := p.Execute(context.Background(), &row); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if row.HasWebsite || row.HasGrammar || row.HasJavaDir {
			t.Errorf("expected nothing present, got %+v", row)
		}
		if row.XMLRules != 0 || row.JavaRules != 0 || row.FalseFriends != 0 {
			t.Errorf("expected zero counts, got %+v", row)
		}
		if len(row.Maintainers) != 0 {
			t.Errorf("expected no maintainers, got %v", row.Maintainers)
		}
	})
}

func TestFalseFriendsStepWithoutFile(t *testing.T) {
	t.Parallel()

	step, err := NewFalseFriendsStep(rules.NewSource(fstest.MapFS{}), identify.NewDetector(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	row := model.Row{Code: "uk"}
	if err := step.Do(context.Background(), &row); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if row.HasFalseFriends || row.FalseFriends != 0 {
		t.Errorf("expected no false friends, got %+v", row)
	}
	if !row.AutoDetected {
		t.Error("uk is an additional auto-detected code")
	}
}

// failingSource returns an error for every read.
type failingSource struct{}

var errRead = errors.New("read failed")

func (failingSource) Grammar(string) (string, bool, error)         { return "", false, errRead }
func (failingSource) FalseFriends() (string, bool, error)           { return "", false, errRead }
func (failingSource) JavaRuleFiles(string) ([]string, bool, error) { return nil, false, errRead }
func (failingSource) HasWebsite(string) bool                        { return false }

func TestStepsPropagateReadErrors(t *testing.T) {
	t.Parallel()

	t.Run("default pipeline fails on false friends read", func(t *testing.T) {
		t.Parallel()

		_, err := DefaultPipeline(failingSource{}, testCatalog(), identify.NewDetector(nil))
		if !errors.Is(err, errRead) {
			t.Errorf("expected read error, got %v", err)
		}
	})

	t.Run("xml rules step", func(t *testing.T) {
		t.Parallel()

		step := NewXMLRulesStep(failingSource{}, New().logger)
		if err := step.Do(context.Background(), &model.Row{Code: "de"}); !errors.Is(err, errRead) {
			t.Errorf("expected read error, got %v", err)
		}
	})

	t.Run("java rules step", func(t *testing.T) {
		t.Parallel()

		step := NewJavaRulesStep(failingSource{}, New().logger)
		if err := step.Do(context.Background(), &model.Row{Code: "de"}); !errors.Is(err, errRead) {
			t.Errorf("expected read error, got %v", err)
		}
	})
}

// brokenGrammarSource fails to read grammar files only.
type brokenGrammarSource struct {
	*rules.Source
}

func (brokenGrammarSource) Grammar(string) (string, bool, error) { return "", false, errRead }

func TestDefaultPipelineContinuesAfterFailedStep(t *testing.T) {
	t.Parallel()

	t.Run("later steps still fill the row", func(t *testing.T) {
		t.Parallel()

		p, err := DefaultPipeline(brokenGrammarSource{testSource()}, testCatalog(), identify.NewDetector([]string{"de"}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		row := model.Row{Code: "de", Name: "German"}
		if err := p.Execute(context.Background(), &row); !errors.Is(err, errRead) {
			t.Errorf("expected grammar read error, got %v", err)
		}
		if row.JavaRules != 2 || row.FalseFriends != 2 || len(row.Maintainers) != 1 {
			t.Errorf("expected later steps to run, got %+v", row)
		}
	})

	t.Run("option turns it off", func(t *testing.T) {
		t.Parallel()

		p, err := DefaultPipeline(brokenGrammarSource{testSource()}, testCatalog(), identify.NewDetector(nil),
			WithContinueOnError(false))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		row := model.Row{Code: "de", Name: "German"}
		if err := p.Execute(context.Background(), &row); !errors.Is(err, errRead) {
			t.Errorf("expected grammar read error, got %v", err)
		}
		if row.HasJavaDir {
			t.Errorf("expected pipeline to stop at the grammar step, got %+v", row)
		}
	})
}
