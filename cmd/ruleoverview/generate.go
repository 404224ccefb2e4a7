package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rico-chet/languagetool/internal/catalog"
	"github.com/rico-chet/languagetool/internal/config"
	"github.com/rico-chet/languagetool/internal/database"
	"github.com/rico-chet/languagetool/internal/log"
	"github.com/rico-chet/languagetool/internal/model"
	"github.com/rico-chet/languagetool/internal/overview"
	"github.com/rico-chet/languagetool/internal/report"
	"github.com/rico-chet/languagetool/internal/rules"
)

// runRootCmd generates the overview.
func runRootCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd.ErrOrStderr(), cfg.Verbose, cfg.LogFormat)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return runGenerate(ctx, cfg, cmd.OutOrStdout(), logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig resolves the configuration: defaults, then the config file,
// then the environment, then flags given on the command line.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// An explicitly given config file must exist; the default locations
	// are optional.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		file.Apply(cfg)
	} else if cfg.ConfigFilePath != "" {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	if err := config.ApplyEnv(cfg, config.DefaultEnvFile); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	stringFlags := map[string]*string{
		"root":            &cfg.RootDir,
		"catalog":         &cfg.CatalogPath,
		"format":          &cfg.Format,
		"output":          &cfg.OutputFile,
		"product-version": &cfg.ProductVersion,
		"db-dir":          &cfg.DBDir,
		"log-format":      &cfg.LogFormat,
	}
	for name, dst := range stringFlags {
		if !flags.Changed(name) {
			continue
		}
		if *dst, err = flags.GetString(name); err != nil {
			return nil, err
		}
	}

	if flags.Changed("save") {
		if cfg.Save, err = flags.GetBool("save"); err != nil {
			return nil, err
		}
	}
	if cfg.Tee, err = flags.GetBool("tee"); err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)

	return cfg, nil
}

// setupLogger creates a structured logger based on verbosity and format.
func setupLogger(w io.Writer, verbose bool, format string) *slog.Logger {
	if format == config.LogFormatJSON {
		return log.NewJSONLogger(w, verbose)
	}
	return log.NewLogger(w, verbose)
}

// loadCatalog returns the configured catalog or the built-in one.
func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.CatalogPath == "" {
		return catalog.Default()
	}
	return catalog.Load(cfg.CatalogPath)
}

// runGenerate builds the overview and writes it. Nothing is written when
// building fails.
func runGenerate(ctx context.Context, cfg *config.Config, stdout io.Writer, logger *slog.Logger) error {
	info, err := os.Stat(cfg.RootDir)
	if err != nil {
		return fmt.Errorf("invalid root directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("invalid root directory: %s is not a directory", cfg.RootDir)
	}

	c, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	source := rules.NewSource(os.DirFS(cfg.RootDir),
		rules.WithLayout(cfg.Layout()),
		rules.WithFileFilter(rules.SuffixFilter(cfg.SourceSuffix)),
	)

	opts := []overview.Option{overview.WithLogger(logger)}
	if cfg.ProductVersion != "" {
		opts = append(opts, overview.WithVersion(cfg.ProductVersion))
	}

	logger.Info("building overview",
		"root", cfg.RootDir,
		"languages", len(c.Reported()),
		"format", cfg.Format,
	)

	ov, err := overview.NewGenerator(c, source, opts...).Build(ctx)
	if err != nil {
		return err
	}

	if err := outputReport(cfg, ov, stdout); err != nil {
		return err
	}

	if cfg.Save {
		return saveOverview(ctx, cfg, ov, logger)
	}
	return nil
}

// outputReport writes the overview in the configured format to the output
// file, or to stdout if none is set.
func outputReport(cfg *config.Config, ov *model.Overview, stdout io.Writer) error {
	if cfg.OutputFile == "" {
		return writeReport(cfg, ov, stdout)
	}

	dir := filepath.Dir(cfg.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(cfg.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	return writeAndClose(cfg, ov, f, stdout)
}

// writeAndClose writes the report to file and closes it. With Tee, stdout
// gets a copy. A close error is returned when the write succeeded.
func writeAndClose(cfg *config.Config, ov *model.Overview, file io.WriteCloser, stdout io.Writer) (err error) {
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()

	outputs := []io.Writer{file}
	if cfg.Tee {
		outputs = append(outputs, stdout)
	}
	return writeReport(cfg, ov, outputs...)
}

// writeReport renders the overview once per output.
func writeReport(cfg *config.Config, ov *model.Overview, outputs ...io.Writer) error {
	writers := make([]report.Writer, 0, len(outputs))
	for _, output := range outputs {
		w, err := report.New(cfg.Format, output, cfg.Links(), cfg.Verbose)
		if err != nil {
			return err
		}
		writers = append(writers, w)
	}

	if _, err := report.NewMultiWriter(writers...).Write(ov); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// saveOverview stores the overview in the run history database.
func saveOverview(ctx context.Context, cfg *config.Config, ov *model.Overview, logger *slog.Logger) error {
	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	id, err := db.SaveOverview(ctx, ov)
	if err != nil {
		return fmt.Errorf("failed to save overview: %w", err)
	}

	logger.Info("overview saved to database", "run", id, "path", db.Path())
	return nil
}
