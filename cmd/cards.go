package cmd

import (
	"fmt"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/hanzicards/internal/card"
	"github.com/arcanaland/hanzicards/internal/category"
	"github.com/arcanaland/hanzicards/internal/config"
)

var (
	addCategory string
	addPinyin   string
	lsCategory  string
)

// initCmd creates the config file and records the database location
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the config file and database location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if _, err := config.LoadConfig(); err != nil {
			return fmt.Errorf("error initializing config: %w", err)
		}

		if dbFlag != "" {
			if err := config.SetDBPath(dbFlag); err != nil {
				return fmt.Errorf("error setting database path: %w", err)
			}
		}

		dbPath, err := config.ResolveDBPath(dbFlag)
		if err != nil {
			return err
		}

		fmt.Fprintln(out, "Config file initialized at:", config.GetConfigFilePath())
		fmt.Fprintln(out, "Cards will be stored in:", dbPath)
		return nil
	},
}

// addCmd adds or replaces a card
var addCmd = &cobra.Command{
	Use:   "add [character]",
	Short: "Add a card, replacing any card with the same character",
	Example: `  hanzicards add 你好 --category Greetings --pinyin ni3hao3
  hanzicards add 吃饭 -c Food,HSK1`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		character := strings.TrimSpace(args[0])
		if character == "" {
			return fmt.Errorf("character must not be empty")
		}

		s, dbPath, err := openStore()
		if err != nil {
			return err
		}

		_, replaced := s.Get(character)
		s.Put(card.New(character, splitCategories(addCategory), addPinyin))

		if err := s.Save(dbPath); err != nil {
			return fmt.Errorf("error saving cards: %w", err)
		}

		if replaced {
			fmt.Fprintf(cmd.OutOrStdout(), "Replaced %s\n", character)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", character)
		}
		return nil
	},
}

// rmCmd removes a card
var rmCmd = &cobra.Command{
	Use:   "rm [character]",
	Short: "Remove a card",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, dbPath, err := openStore()
		if err != nil {
			return err
		}

		if !s.Delete(args[0]) {
			return fmt.Errorf("card not found: %s", args[0])
		}

		if err := s.Save(dbPath); err != nil {
			return fmt.Errorf("error saving cards: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
		return nil
	},
}

// lsCmd lists cards, optionally limited to one category
var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List cards",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		s, _, err := openStore()
		if err != nil {
			return err
		}

		cards := s.Cards()
		if lsCategory != "" {
			var ok bool
			cards, ok = category.Build(s).Lookup(lsCategory)
			if !ok {
				return fmt.Errorf("category not found: %s", lsCategory)
			}
		}

		if len(cards) == 0 {
			fmt.Fprintln(out, "No cards found.")
			fmt.Fprintln(out, "Run 'hanzicards add' or 'hanzicards import' to create some.")
			return nil
		}

		for _, c := range cards {
			line := "  " + colorize.HiWhiteString(c.Character)
			if c.Pinyin != "" {
				line += "  " + colorize.CyanString(c.Pinyin)
			}
			if len(c.Categories) > 0 {
				line += "  [" + strings.Join(c.Categories, ", ") + "]"
			}
			fmt.Fprintln(out, line)
		}
		return nil
	},
}

// splitCategories turns a comma separated flag into labels
func splitCategories(flag string) []string {
	var labels []string
	for _, label := range strings.Split(flag, ",") {
		if label = strings.TrimSpace(label); label != "" {
			labels = append(labels, label)
		}
	}
	return labels
}

func init() {
	RootCmd.AddCommand(initCmd)
	RootCmd.AddCommand(addCmd)
	RootCmd.AddCommand(rmCmd)
	RootCmd.AddCommand(lsCmd)

	addCmd.Flags().StringVarP(&addCategory, "category", "c", "", "Comma separated categories")
	addCmd.Flags().StringVarP(&addPinyin, "pinyin", "p", "", "Pinyin for the character")
	lsCmd.Flags().StringVarP(&lsCategory, "category", "c", "", "Only list cards in this category")
}
