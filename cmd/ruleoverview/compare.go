package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rico-chet/languagetool/internal/config"
	"github.com/rico-chet/languagetool/internal/database"
	"github.com/rico-chet/languagetool/internal/model"
)

// NewCompareCmd creates the compare command.
// This command compares saved overviews from the run history database.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare rule counts with a previous run",
		Long: `Compare displays how rule counts changed between two saved overviews.

It shows, per language:
- Changes in XML rule, Java rule and false friend counts
- Whether grammar.xml changed even when its rule count did not
- Languages added to or removed from the report

Overviews are saved with 'ruleoverview --save'. By default the two most
recent runs are compared.

Examples:
  # Compare the latest two runs
  ruleoverview compare

  # List saved runs
  ruleoverview compare --list

  # Compare the latest run with a specific one
  ruleoverview compare --with-run-id 3f1c...

  # Output comparison in JSON format
  ruleoverview compare --json`,
		Args: cobra.NoArgs,
		RunE: runCompareCmd,
	}

	cmd.Flags().BoolP("list", "l", false,
		"List saved runs")
	cmd.Flags().StringP("with-run-id", "i", "",
		"Compare the latest run with the run of this ID (use --list to see IDs)")
	cmd.Flags().BoolP("json", "j", false,
		"Output comparison result in JSON format")
	cmd.Flags().String("db-dir", config.XDGDataDir(),
		"Directory of the run history database")

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, _ []string) error {
	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}
	listRuns, err := cmd.Flags().GetBool("list")
	if err != nil {
		return err
	}
	withRunID, err := cmd.Flags().GetString("with-run-id")
	if err != nil {
		return err
	}
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	db, err := database.Open(dbDir, database.Options{CreateIfNotExists: false})
	if err != nil {
		return fmt.Errorf("no run history (use 'ruleoverview --save' first): %w", err)
	}
	defer db.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if listRuns {
		return listRunHistory(ctx, db, out)
	}

	result, err := runComparison(ctx, db, withRunID)
	if err != nil {
		return err
	}

	if jsonOutput {
		return outputComparisonJSON(out, result)
	}
	return outputComparisonText(out, result)
}

// listRunHistory lists all saved runs, newest first.
func listRunHistory(ctx context.Context, db *database.HistoryDB, out io.Writer) error {
	runs, err := db.ListRuns(ctx, 0)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Fprintln(out, "No saved runs found in the database.")
		fmt.Fprintln(out, "\nUse 'ruleoverview --save' to save an overview.")
		return nil
	}

	fmt.Fprintf(out, "Saved runs (%d):\n\n", len(runs))
	fmt.Fprintf(out, "  %-36s  %-20s  %-10s  %s\n", "ID", "Date", "Version", "Languages")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 82))
	for _, run := range runs {
		fmt.Fprintf(out, "  %-36s  %-20s  %-10s  %d\n",
			run.ID,
			run.GeneratedAt.Format("2006-01-02 15:04:05"),
			run.Version,
			run.Languages,
		)
	}

	fmt.Fprintln(out, "\nUse 'ruleoverview compare' to compare the latest two runs.")
	return nil
}

// runComparison loads the runs to compare. The latest run is always the
// current one; the previous one is withRunID or the run before the latest.
func runComparison(ctx context.Context, db *database.HistoryDB, withRunID string) (*ComparisonResult, error) {
	runs, err := db.ListRuns(ctx, 2)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	if len(runs) == 0 {
		return nil, errors.New("no saved runs found (use 'ruleoverview --save' first)")
	}

	previousID := withRunID
	if previousID == "" {
		if len(runs) < 2 {
			return nil, fmt.Errorf("at least 2 runs are required for comparison (found %d)", len(runs))
		}
		previousID = runs[1].ID
	}
	if previousID == runs[0].ID {
		return nil, errors.New("cannot compare the latest run with itself")
	}

	current, err := db.LoadOverview(ctx, runs[0].ID)
	if err != nil {
		return nil, err
	}
	previous, err := db.LoadOverview(ctx, previousID)
	if err != nil {
		return nil, err
	}

	return compareOverviews(previousID, previous, runs[0].ID, current), nil
}

// ComparisonResult holds the result of comparing two overviews.
type ComparisonResult struct {
	// PreviousRun describes the older overview.
	PreviousRun RunSummary `json:"previous_run"`

	// CurrentRun describes the newer overview.
	CurrentRun RunSummary `json:"current_run"`

	// Changes lists languages whose counts or grammar changed, in the
	// order of the current report.
	Changes []LanguageChange `json:"changes,omitempty"`

	// AddedLanguages are codes only present in the current run.
	AddedLanguages []string `json:"added_languages,omitempty"`

	// RemovedLanguages are codes only present in the previous run.
	RemovedLanguages []string `json:"removed_languages,omitempty"`

	// UnchangedCount is the number of languages without any change.
	UnchangedCount int `json:"unchanged_count"`
}

// RunSummary contains the totals of one run.
type RunSummary struct {
	ID           string    `json:"id"`
	Version      string    `json:"version"`
	GeneratedAt  time.Time `json:"generated_at"`
	XMLRules     int       `json:"xml_rules"`
	JavaRules    int       `json:"java_rules"`
	FalseFriends int       `json:"false_friends"`
}

// LanguageChange describes how one language changed between runs.
type LanguageChange struct {
	Code              string `json:"code"`
	Name              string `json:"name"`
	XMLRulesDelta     int    `json:"xml_rules_delta"`
	JavaRulesDelta    int    `json:"java_rules_delta"`
	FalseFriendsDelta int    `json:"false_friends_delta"`

	// GrammarChanged is true if grammar.xml differs, even with the same count.
	GrammarChanged bool `json:"grammar_changed"`
}

func summarize(id string, ov *model.Overview) RunSummary {
	return RunSummary{
		ID:           id,
		Version:      ov.Version,
		GeneratedAt:  ov.GeneratedAt,
		XMLRules:     ov.TotalXMLRules(),
		JavaRules:    ov.TotalJavaRules(),
		FalseFriends: ov.TotalFalseFriends(),
	}
}

// compareOverviews compares two overviews language by language.
func compareOverviews(previousID string, previous *model.Overview, currentID string, current *model.Overview) *ComparisonResult {
	result := &ComparisonResult{
		PreviousRun: summarize(previousID, previous),
		CurrentRun:  summarize(currentID, current),
	}

	for _, cur := range current.Rows {
		prev := previous.Row(cur.Code)
		if prev == nil {
			result.AddedLanguages = append(result.AddedLanguages, cur.Code)
			continue
		}

		change := LanguageChange{
			Code:              cur.Code,
			Name:              cur.Name,
			XMLRulesDelta:     cur.XMLRules - prev.XMLRules,
			JavaRulesDelta:    cur.JavaRules - prev.JavaRules,
			FalseFriendsDelta: cur.FalseFriends - prev.FalseFriends,
			GrammarChanged:    cur.GrammarDigest != prev.GrammarDigest,
		}
		if change.XMLRulesDelta == 0 && change.JavaRulesDelta == 0 &&
			change.FalseFriendsDelta == 0 && !change.GrammarChanged {
			result.UnchangedCount++
			continue
		}
		result.Changes = append(result.Changes, change)
	}

	for _, prev := range previous.Rows {
		if current.Row(prev.Code) == nil {
			result.RemovedLanguages = append(result.RemovedLanguages, prev.Code)
		}
	}

	return result
}

// outputComparisonJSON outputs the comparison result in JSON format.
func outputComparisonJSON(out io.Writer, result *ComparisonResult) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// outputComparisonText outputs the comparison result in human-readable text format.
func outputComparisonText(out io.Writer, result *ComparisonResult) error {
	prev, cur := result.PreviousRun, result.CurrentRun

	fmt.Fprintln(out, "Rule Overview Comparison")
	fmt.Fprintln(out, strings.Repeat("=", 60))

	fmt.Fprintf(out, "\nPrevious run: %s  (%s, version %s)\n", prev.GeneratedAt.Format("2006-01-02 15:04:05"), prev.ID, prev.Version)
	fmt.Fprintf(out, "Current run:  %s  (%s, version %s)\n", cur.GeneratedAt.Format("2006-01-02 15:04:05"), cur.ID, cur.Version)

	fmt.Fprintln(out, "\nTotals:")
	fmt.Fprintf(out, "  %-14s  %-10s  %-10s  %-10s\n", "Rules", "Previous", "Current", "Change")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 50))
	fmt.Fprintf(out, "  %-14s  %-10d  %-10d  %-10s\n", "XML", prev.XMLRules, cur.XMLRules, formatDelta(cur.XMLRules-prev.XMLRules))
	fmt.Fprintf(out, "  %-14s  %-10d  %-10d  %-10s\n", "Java", prev.JavaRules, cur.JavaRules, formatDelta(cur.JavaRules-prev.JavaRules))
	fmt.Fprintf(out, "  %-14s  %-10d  %-10d  %-10s\n", "False friends", prev.FalseFriends, cur.FalseFriends, formatDelta(cur.FalseFriends-prev.FalseFriends))

	if len(result.Changes) > 0 {
		fmt.Fprintf(out, "\nChanged Languages (%d):\n", len(result.Changes))
		for _, c := range result.Changes {
			line := fmt.Sprintf("  [~] %s (%s): xml %s, java %s, false friends %s",
				c.Name, c.Code,
				formatDelta(c.XMLRulesDelta), formatDelta(c.JavaRulesDelta), formatDelta(c.FalseFriendsDelta))
			if c.GrammarChanged {
				line += ", grammar.xml changed"
			}
			fmt.Fprintln(out, line)
		}
	}

	if len(result.AddedLanguages) > 0 {
		fmt.Fprintf(out, "\nAdded Languages: %s\n", strings.Join(result.AddedLanguages, ", "))
	}
	if len(result.RemovedLanguages) > 0 {
		fmt.Fprintf(out, "\nRemoved Languages: %s\n", strings.Join(result.RemovedLanguages, ", "))
	}

	if result.UnchangedCount > 0 {
		fmt.Fprintf(out, "\nUnchanged: %d languages\n", result.UnchangedCount)
	}

	return nil
}

// formatDelta formats a numeric delta with sign for display.
func formatDelta(delta int) string {
	if delta > 0 {
		return "+" + strconv.Itoa(delta)
	}
	return strconv.Itoa(delta)
}
