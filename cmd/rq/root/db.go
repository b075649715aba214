package root

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"

	"readquest/internal/app"
	"readquest/internal/assist"
	"readquest/internal/catalog"
	"readquest/internal/config"
	"readquest/internal/storage"
	"readquest/internal/ui"
)

// loadConfig reads the environment and applies the persistent flags on top.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	f := cmd.Flags()
	if f.Changed("db") {
		cfg.DBPath = flags.dbPath
	}
	if f.Changed("name") {
		cfg.DisplayName = flags.displayName
	}
	if f.Changed("level-policy") {
		cfg.LevelPolicy = flags.levelPolicy
	}
	if f.Changed("verbose") {
		cfg.Verbose = flags.verbose
	}
	return cfg, nil
}

func newLogger(cfg config.Config, errOut io.Writer) *log.Logger {
	if !cfg.Verbose {
		return log.New(io.Discard, "", 0)
	}
	return log.New(errOut, "rq: ", log.Ltime)
}

// openCoordinator wires config, store and collaborators. A database that
// cannot be opened is not fatal: the command runs on memory and says so.
func openCoordinator(ctx context.Context, cmd *cobra.Command) (*app.Coordinator, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	policy, err := cfg.Policy()
	if err != nil {
		return nil, nil, err
	}
	logger := newLogger(cfg, cmd.ErrOrStderr())

	opts := app.Options{
		Logger:      logger,
		Policy:      policy,
		Catalog:     catalog.Default(),
		DisplayName: cfg.DisplayName,
	}
	if ai := assist.NewOpenAI(assist.OpenAIConfig{
		APIKey:  cfg.OpenAIKey(),
		BaseURL: cfg.BaseURL,
		Model:   cfg.Model,
		Timeout: cfg.AITimeout,
	}); ai != nil {
		opts.Shards = ai
		opts.Recognizer = ai
	} else {
		logger.Printf("no OpenAI key configured, using fallbacks")
	}

	var store storage.Store
	path, err := storage.ResolveDBPath(cfg.DBPath)
	if err == nil {
		logger.Printf("database: %s", path)
		store, err = storage.OpenSQLiteStore(ctx, path, logger)
	}
	if err != nil {
		warn(cmd, fmt.Sprintf("progress will not be saved: %v", err))
		store = storage.NewMemoryStore()
		opts.Degraded = true
	}

	coord := app.Open(ctx, store, opts)
	shown := coord.Warnings()
	for _, w := range shown {
		warn(cmd, w)
	}
	if coord.Onboarding() {
		coord.CompleteOnboarding(ctx, cfg.DisplayName)
		fmt.Fprintf(cmd.ErrOrStderr(), "%s Welcome, %s. Your journey begins.\n", ui.IconSparkle, coord.Stats().DisplayName)
	}
	cleanup := func() {
		for _, w := range coord.Warnings()[len(shown):] {
			warn(cmd, w)
		}
		_ = coord.Close()
	}
	return coord, cleanup, nil
}

func warn(cmd *cobra.Command, msg string) {
	fmt.Fprintln(cmd.ErrOrStderr(), ui.Warn.Render(ui.IconWarn+" "+msg))
}

// confirm asks a y/N question on the command's input. Anything but y/yes is no.
func confirm(cmd *cobra.Command, question string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", question)
	var answer string
	if _, err := fmt.Fscanln(cmd.InOrStdin(), &answer); err != nil {
		return false
	}
	switch answer {
	case "y", "Y", "yes", "YES", "Yes":
		return true
	}
	return false
}
