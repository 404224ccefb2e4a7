package database

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/rico-chet/languagetool/internal/model"
)

// setupTestDB creates a temporary database for testing.
func setupTestDB(t *testing.T) *HistoryDB {
	t.Helper()

	db, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return db
}

// createTestOverview creates an overview with two languages.
func createTestOverview(at time.Time, germanRules int) *model.Overview {
	ov := model.NewOverview("LanguageTool", "1.0", at)
	ov.JavaRuleLanguages = 1
	ov.Rows = []model.Row{
		{
			Code: "en", Name: "English",
			HasGrammar: true, XMLRules: 10, GrammarDigest: "abc",
			HasFalseFriends: true, FalseFriends: 4, AutoDetected: true,
			Maintainers: []model.Maintainer{{Name: "Daniel Naber"}},
		},
		{
			Code: "de", Name: "German",
			HasWebsite: true,
			HasGrammar: true, XMLRules: germanRules,
			HasJavaDir: true, JavaRules: 2,
			HasFalseFriends: true, FalseFriends: 5, AutoDetected: true,
		},
	}
	return ov
}

// TestOpen tests database opening and creation.
func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database in new directory", func(t *testing.T) {
		t.Parallel()

		dbDir := filepath.Join(t.TempDir(), "newdir", "subdir")
		db, err := Open(dbDir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		if _, err := os.Stat(filepath.Join(dbDir, FileName)); os.IsNotExist(err) {
			t.Error("database file was not created")
		}
		if db.Path() != filepath.Join(dbDir, FileName) {
			t.Errorf("unexpected path %q", db.Path())
		}
	})

	t.Run("CreateIfNotExists=false returns error when database does not exist", func(t *testing.T) {
		t.Parallel()

		_, err := Open(filepath.Join(t.TempDir(), "missing"), Options{CreateIfNotExists: false})
		if err == nil {
			t.Fatal("expected error for missing database")
		}
		if !strings.Contains(err.Error(), "database not found") {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("reopens existing database", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		db, err := Open(dir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		if _, err := db.SaveOverview(context.Background(), createTestOverview(time.Now(), 3)); err != nil {
			t.Fatalf("failed to save: %v", err)
		}
		_ = db.Close()

		db, err = Open(dir, Options{CreateIfNotExists: false})
		if err != nil {
			t.Fatalf("failed to reopen database: %v", err)
		}
		defer db.Close()

		runs, err := db.ListRuns(context.Background(), 0)
		if err != nil {
			t.Fatalf("failed to list runs: %v", err)
		}
		if len(runs) != 1 {
			t.Errorf("expected 1 run, got %d", len(runs))
		}
	})
}

// TestDefaultOptions tests the default options.
func TestDefaultOptions(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	if !opts.CreateIfNotExists || !opts.EnableWAL {
		t.Errorf("unexpected defaults: %+v", opts)
	}
}

func TestSaveAndLoadOverview(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()

	at := time.Date(2010, time.March, 5, 12, 30, 0, 0, time.UTC)
	saved := createTestOverview(at, 3)

	id, err := db.SaveOverview(ctx, saved)
	if err != nil {
		t.Fatalf("failed to save overview: %v", err)
	}
	if id == "" {
		t.Fatal("expected run ID")
	}

	loaded, err := db.LoadOverview(ctx, id)
	if err != nil {
		t.Fatalf("failed to load overview: %v", err)
	}

	if !loaded.GeneratedAt.Equal(at) {
		t.Errorf("expected generated_at %v, got %v", at, loaded.GeneratedAt)
	}
	if loaded.JavaRuleLanguages != 1 {
		t.Errorf("expected 1 Java rule language, got %d", loaded.JavaRuleLanguages)
	}

	// Maintainers are not part of the history.
	want := saved.Rows
	want[0].Maintainers = nil
	if diff := cmp.Diff(want, loaded.Rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadOverviewNotFound(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)

	_, err := db.LoadOverview(context.Background(), "00000000-0000-0000-0000-000000000000")
	if !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}

func TestListRuns(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()

	base := time.Date(2010, time.March, 5, 0, 0, 0, 0, time.UTC)
	var ids []string
	for i := range 3 {
		id, err := db.SaveOverview(ctx, createTestOverview(base.AddDate(0, 0, i), 3+i))
		if err != nil {
			t.Fatalf("failed to save overview %d: %v", i, err)
		}
		ids = append(ids, id)
	}

	t.Run("newest first", func(t *testing.T) {
		t.Parallel()

		runs, err := db.ListRuns(ctx, 0)
		if err != nil {
			t.Fatalf("failed to list runs: %v", err)
		}
		if len(runs) != 3 {
			t.Fatalf("expected 3 runs, got %d", len(runs))
		}
		got := []string{runs[0].ID, runs[1].ID, runs[2].ID}
		want := []string{ids[2], ids[1], ids[0]}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("order mismatch (-want +got):\n%s", diff)
		}
		if runs[0].Languages != 2 {
			t.Errorf("expected 2 languages, got %d", runs[0].Languages)
		}
	})

	t.Run("limit", func(t *testing.T) {
		t.Parallel()

		runs, err := db.ListRuns(ctx, 2)
		if err != nil {
			t.Fatalf("failed to list runs: %v", err)
		}
		if len(runs) != 2 || runs[0].ID != ids[2] {
			t.Errorf("unexpected runs: %+v", runs)
		}
	})
}

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  time.Time
	}{
		{input: "2010-03-05T12:30:00Z", want: time.Date(2010, time.March, 5, 12, 30, 0, 0, time.UTC)},
		{input: "2010-03-05 12:30:00", want: time.Date(2010, time.March, 5, 12, 30, 0, 0, time.UTC)},
		{input: "not a time", want: time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := parseTimestamp(tt.input); !got.Equal(tt.want) {
				t.Errorf("parseTimestamp(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
