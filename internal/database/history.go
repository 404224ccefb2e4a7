package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/rico-chet/languagetool/internal/model"
)

// FileName is the database file created inside the database directory.
const FileName = "ruleoverview.db"

// ErrRunNotFound is returned when a run ID is not in the database.
var ErrRunNotFound = errors.New("run not found")

// HistoryDB provides SQLite-based storage for generated overviews.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB in the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file, mode=rwc creates it.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Path returns the database file path.
func (hdb *HistoryDB) Path() string {
	return hdb.dbPath
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	-- One row per saved overview
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		seq INTEGER NOT NULL UNIQUE,
		product TEXT NOT NULL,
		version TEXT NOT NULL,
		generated_at DATETIME NOT NULL,
		java_rule_languages INTEGER NOT NULL DEFAULT 0,
		saved_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_runs_generated ON runs(generated_at);

	-- Per-language counts of a run
	CREATE TABLE IF NOT EXISTS language_counts (
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		code TEXT NOT NULL,
		name TEXT NOT NULL,
		has_website INTEGER NOT NULL DEFAULT 0,
		has_grammar INTEGER NOT NULL DEFAULT 0,
		xml_rules INTEGER NOT NULL DEFAULT 0,
		grammar_digest TEXT,
		has_java_dir INTEGER NOT NULL DEFAULT 0,
		java_rules INTEGER NOT NULL DEFAULT 0,
		has_false_friends INTEGER NOT NULL DEFAULT 0,
		false_friends INTEGER NOT NULL DEFAULT 0,
		auto_detected INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (run_id, code)
	);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// Run is the metadata of a saved overview.
type Run struct {
	// ID is the run's UUID.
	ID string `json:"id"`

	// Product and Version identify what was counted.
	Product string `json:"product"`
	Version string `json:"version"`

	// GeneratedAt is when the overview was built.
	GeneratedAt time.Time `json:"generated_at"`

	// Languages is the number of language rows stored for the run.
	Languages int `json:"languages"`
}

// SaveOverview stores an overview and returns the new run's ID.
// Maintainers are not stored; they come from the catalog, not the rules.
func (hdb *HistoryDB) SaveOverview(ctx context.Context, overview *model.Overview) (string, error) {
	id := uuid.NewString()

	tx, err := hdb.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	_, err = tx.ExecContext(ctx, `
	INSERT INTO runs (id, seq, product, version, generated_at, java_rule_languages)
	VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM runs), ?, ?, ?, ?)
	`,
		id,
		overview.Product,
		overview.Version,
		overview.GeneratedAt.UTC().Format(time.RFC3339Nano),
		overview.JavaRuleLanguages,
	)
	if err != nil {
		return "", fmt.Errorf("failed to save run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO language_counts (
		run_id, position, code, name, has_website, has_grammar, xml_rules, grammar_digest,
		has_java_dir, java_rules, has_false_friends, false_friends, auto_detected
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return "", fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for i, r := range overview.Rows {
		_, err := stmt.ExecContext(ctx,
			id, i, r.Code, r.Name,
			r.HasWebsite, r.HasGrammar, r.XMLRules, nullString(r.GrammarDigest),
			r.HasJavaDir, r.JavaRules,
			r.HasFalseFriends, r.FalseFriends,
			r.AutoDetected,
		)
		if err != nil {
			return "", fmt.Errorf("failed to save counts for %s: %w", r.Code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit run: %w", err)
	}

	return id, nil
}

// ListRuns returns saved runs, newest first. A limit of zero or less
// returns all runs.
func (hdb *HistoryDB) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `
	SELECT r.id, r.product, r.version, r.generated_at, COUNT(l.code)
	FROM runs r
	LEFT JOIN language_counts l ON l.run_id = r.id
	GROUP BY r.id
	ORDER BY r.seq DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := hdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var generatedAt string
		if err := rows.Scan(&run.ID, &run.Product, &run.Version, &generatedAt, &run.Languages); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.GeneratedAt = parseTimestamp(generatedAt)
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// LoadOverview rebuilds the overview saved under id.
// It returns ErrRunNotFound if there is no such run.
func (hdb *HistoryDB) LoadOverview(ctx context.Context, id string) (*model.Overview, error) {
	var product, version, generatedAt string
	var javaRuleLanguages int
	err := hdb.db.QueryRowContext(ctx, `
	SELECT product, version, generated_at, java_rule_languages FROM runs WHERE id = ?
	`, id).Scan(&product, &version, &generatedAt, &javaRuleLanguages)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	overview := model.NewOverview(product, version, parseTimestamp(generatedAt))
	overview.JavaRuleLanguages = javaRuleLanguages

	rows, err := hdb.db.QueryContext(ctx, `
	SELECT code, name, has_website, has_grammar, xml_rules, grammar_digest,
		has_java_dir, java_rules, has_false_friends, false_friends, auto_detected
	FROM language_counts
	WHERE run_id = ?
	ORDER BY position
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get language counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r model.Row
		var digest sql.NullString
		if err := rows.Scan(
			&r.Code, &r.Name, &r.HasWebsite, &r.HasGrammar, &r.XMLRules, &digest,
			&r.HasJavaDir, &r.JavaRules, &r.HasFalseFriends, &r.FalseFriends, &r.AutoDetected,
		); err != nil {
			return nil, fmt.Errorf("failed to scan language counts: %w", err)
		}
		r.GrammarDigest = digest.String
		overview.Rows = append(overview.Rows, r)
	}

	return overview, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	time.RFC3339Nano,          // What SaveOverview writes
	time.RFC3339,              // Full RFC3339 format
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
