package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/rico-chet/languagetool/internal/model"
)

// TestNewCompareCmd tests the compare command creation.
func TestNewCompareCmd(t *testing.T) {
	t.Parallel()

	cmd := NewCompareCmd()

	if cmd.Use != "compare" {
		t.Errorf("expected use 'compare', got %q", cmd.Use)
	}
	for _, name := range []string{"list", "with-run-id", "json", "db-dir"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("expected %s flag", name)
		}
	}
}

func createOverview(rows ...model.Row) *model.Overview {
	ov := model.NewOverview("LanguageTool", "1.0", time.Date(2010, time.March, 5, 0, 0, 0, 0, time.UTC))
	ov.Rows = rows
	return ov
}

func TestCompareOverviews(t *testing.T) {
	t.Parallel()

	previous := createOverview(
		model.Row{Code: "de", Name: "German", XMLRules: 3, JavaRules: 1, FalseFriends: 2, GrammarDigest: "a"},
		model.Row{Code: "en", Name: "English", XMLRules: 10, GrammarDigest: "b"},
		model.Row{Code: "fr", Name: "French", XMLRules: 5, GrammarDigest: "c"},
		model.Row{Code: "sv", Name: "Swedish"},
	)
	current := createOverview(
		model.Row{Code: "de", Name: "German", XMLRules: 5, JavaRules: 1, FalseFriends: 1, GrammarDigest: "a2"},
		model.Row{Code: "en", Name: "English", XMLRules: 10, GrammarDigest: "b2"},
		model.Row{Code: "fr", Name: "French", XMLRules: 5, GrammarDigest: "c"},
		model.Row{Code: "ml", Name: "Malayalam"},
	)

	result := compareOverviews("prev", previous, "cur", current)

	t.Run("reports count deltas", func(t *testing.T) {
		t.Parallel()

		want := []LanguageChange{
			{Code: "de", Name: "German", XMLRulesDelta: 2, FalseFriendsDelta: -1, GrammarChanged: true},
			{Code: "en", Name: "English", GrammarChanged: true},
		}
		if diff := cmp.Diff(want, result.Changes); diff != "" {
			t.Errorf("changes mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("reports added and removed languages", func(t *testing.T) {
		t.Parallel()

		if diff := cmp.Diff([]string{"ml"}, result.AddedLanguages); diff != "" {
			t.Errorf("added mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]string{"sv"}, result.RemovedLanguages); diff != "" {
			t.Errorf("removed mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("counts unchanged languages", func(t *testing.T) {
		t.Parallel()

		if result.UnchangedCount != 1 {
			t.Errorf("expected 1 unchanged language, got %d", result.UnchangedCount)
		}
	})

	t.Run("summarizes totals", func(t *testing.T) {
		t.Parallel()

		if result.PreviousRun.XMLRules != 18 || result.CurrentRun.XMLRules != 20 {
			t.Errorf("unexpected totals: %+v %+v", result.PreviousRun, result.CurrentRun)
		}
		if result.CurrentRun.ID != "cur" {
			t.Errorf("expected current ID 'cur', got %q", result.CurrentRun.ID)
		}
	})

	t.Run("text output", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if err := outputComparisonText(&buf, result); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{
			"[~] German (de): xml +2, java 0, false friends -1, grammar.xml changed",
			"Added Languages: ml",
			"Removed Languages: sv",
			"Unchanged: 1 languages",
		} {
			if !strings.Contains(buf.String(), want) {
				t.Errorf("expected output to contain %q, got:\n%s", want, buf.String())
			}
		}
	})
}

func TestFormatDelta(t *testing.T) {
	t.Parallel()

	tests := map[int]string{3: "+3", 0: "0", -2: "-2"}
	for delta, want := range tests {
		if got := formatDelta(delta); got != want {
			t.Errorf("formatDelta(%d) = %q, want %q", delta, got, want)
		}
	}
}

// TestCompareSavedRuns saves two overviews and compares them end to end.
func TestCompareSavedRuns(t *testing.T) {
	env := setupTestEnv(t, true)

	if _, err := execute(t, env.args("--save")...); err != nil {
		t.Fatalf("first run failed: %v", err)
	}

	t.Run("one run is not enough", func(t *testing.T) {
		_, err := execute(t, "compare", "--db-dir", env.dbDir)
		if err == nil || !strings.Contains(err.Error(), "at least 2 runs") {
			t.Errorf("expected error about run count, got %v", err)
		}
	})

	// One more rule for German.
	writeFile(t, env.root, "src/rules/de/grammar.xml",
		strings.Replace(testGrammar, "</rules>", "<rule id=\"C\"></rule></rules>", 1))

	if _, err := execute(t, env.args("--save")...); err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	t.Run("json comparison", func(t *testing.T) {
		output, err := execute(t, "compare", "--db-dir", env.dbDir, "--json")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var result ComparisonResult
		if err := json.Unmarshal([]byte(output), &result); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}

		want := []LanguageChange{{Code: "de", Name: "German", XMLRulesDelta: 1, GrammarChanged: true}}
		if diff := cmp.Diff(want, result.Changes); diff != "" {
			t.Errorf("changes mismatch (-want +got):\n%s", diff)
		}
		if result.UnchangedCount != 1 {
			t.Errorf("expected French unchanged, got %d", result.UnchangedCount)
		}
	})

	t.Run("list runs", func(t *testing.T) {
		output, err := execute(t, "compare", "--db-dir", env.dbDir, "--list")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output, "Saved runs (2)") {
			t.Errorf("expected two runs, got:\n%s", output)
		}
	})

	t.Run("unknown run id", func(t *testing.T) {
		_, err := execute(t, "compare", "--db-dir", env.dbDir, "--with-run-id", "missing")
		if err == nil || !strings.Contains(err.Error(), "run not found") {
			t.Errorf("expected run not found, got %v", err)
		}
	})
}

func TestCompareWithoutHistory(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetArgs([]string{"compare", "--db-dir", filepath.Join(t.TempDir(), "none")})
	cmd.SetOut(&stdout)
	cmd.SetErr(&stdout)

	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "no run history") {
		t.Errorf("expected missing history error, got %v", err)
	}
}
