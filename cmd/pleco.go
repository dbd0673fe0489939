package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/arcanaland/hanzicards/internal/config"
	"github.com/arcanaland/hanzicards/internal/pleco"
)

var exportDir string

// importCmd reads a Pleco flashcard export into the database
var importCmd = &cobra.Command{
	Use:   "import [pleco.xml]",
	Short: "Import cards from a Pleco flashcard XML file",
	Long: `Import reads every card of a Pleco flashcard export and adds it to the
database, replacing cards with the same character. The database is only saved
when the whole file was read successfully.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, dbPath, err := openStore()
		if err != nil {
			return err
		}

		n, err := pleco.Import(args[0], dbPath, s)
		if err != nil {
			if errors.Is(err, pleco.ErrParse) {
				return fmt.Errorf("%w (%d cards read before the error were not saved)", err, n)
			}
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d cards into %s\n", n, dbPath)
		return nil
	},
}

// exportCmd writes the cards of one category as a Pleco flashcard file
var exportCmd = &cobra.Command{
	Use:   "export [category]",
	Short: "Export a category to a Pleco flashcard XML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := openStore()
		if err != nil {
			return err
		}

		dir := exportDir
		if dir == "" {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			dir = cfg.ExportDir
		}

		path, err := pleco.ExportCategory(dir, args[0], s, time.Now())
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Exported to", path)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(importCmd)
	RootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportDir, "dir", "d", "", "Directory for the export file (default export_dir from config)")
}
