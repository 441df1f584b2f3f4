package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/phonix/internal/config"
	"github.com/abhisek/phonix/internal/logging"
	"github.com/abhisek/phonix/internal/store"
)

var (
	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "phonix",
	Short: "Phoneme-level pronunciation practice scheduler",
	Long: "Phonix tracks how well a learner produces each phoneme and schedules " +
		"practice phrases for the sounds that need the most work.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A .env file is optional.
		_ = godotenv.Load()

		path, _ := cmd.Flags().GetString("config")
		if path == "" {
			path = config.DefaultPath()
		}
		c, err := config.Load(path)
		if err != nil {
			return err
		}
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			c.Logging.Level = "debug"
		}
		l, err := logging.New(c.Logging)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		cfg, logger = c, l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides PHONIX_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/phonix/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(queueCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(phrasesCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the configured path (PHONIX_DB env var or config file), then the
// default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg != nil && cfg.Database.Path != "" {
		return cfg.Database.Path, store.EnsureDir(cfg.Database.Path)
	}
	return store.DefaultDBPath()
}
