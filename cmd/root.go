package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/arcanaland/hanzicards/internal/config"
	"github.com/arcanaland/hanzicards/internal/store"
)

var (
	dbFlag  string
	verbose bool
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "hanzicards",
	Short: "Tool for keeping and practicing Chinese vocabulary cards",
	Long: `Hanzicards keeps a small database of Chinese vocabulary cards (character,
categories, pinyin) and exchanges it with the Pleco flashcard XML format.

The database location comes from --db, then the HANZICARDS_DB environment
variable, then db_path in $XDG_CONFIG_HOME/hanzicards/config.toml.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
		slog.SetDefault(slog.New(handler))
	},
}

func init() {
	RootCmd.PersistentFlags().StringVar(&dbFlag, "db", "", "Path to the card database")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// openStore resolves the database path and loads the store from it
func openStore() (*store.Store, string, error) {
	dbPath, err := config.ResolveDBPath(dbFlag)
	if err != nil {
		return nil, "", err
	}

	s, err := store.Load(dbPath)
	if err != nil {
		return nil, "", err
	}
	return s, dbPath, nil
}
