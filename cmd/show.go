package cmd

import (
	"fmt"
	"io"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/hanzicards/internal/card"
	"github.com/arcanaland/hanzicards/internal/category"
)

var showCmd = &cobra.Command{
	Use:   "show [character]",
	Short: "Display a single card",
	Long: `Show displays a card and the other cards sharing its categories.

Examples:
  hanzicards show 你好
  hanzicards --db ./data show 吃饭`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := openStore()
		if err != nil {
			return err
		}

		c, ok := s.Get(args[0])
		if !ok {
			return fmt.Errorf("card not found: %s", args[0])
		}

		displayCard(cmd.OutOrStdout(), c, category.Build(s))
		return nil
	},
}

// categoriesCmd lists every category with its card count
var categoriesCmd = &cobra.Command{
	Use:     "categories",
	Aliases: []string{"cats"},
	Short:   "List categories and how many cards each holds",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		s, _, err := openStore()
		if err != nil {
			return err
		}

		idx := category.Build(s)
		if len(idx) == 0 {
			fmt.Fprintln(out, "No categories found.")
			return nil
		}

		for _, name := range idx.Names() {
			fmt.Fprintf(out, "  %s (%d)\n", colorize.HiWhiteString(name), len(idx[name]))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(showCmd)
	RootCmd.AddCommand(categoriesCmd)
}

// displayCard prints the card fields followed by related characters
func displayCard(out io.Writer, c card.Card, idx category.Index) {
	width := terminalWidth()

	var infoLines []string
	infoLines = append(infoLines, colorize.CyanString("Character:  ")+colorize.HiWhiteString(c.Character))
	if c.Pinyin != "" {
		infoLines = append(infoLines, colorize.CyanString("Pinyin:     ")+colorize.HiWhiteString(c.Pinyin))
	}
	if len(c.Categories) > 0 {
		infoLines = append(infoLines, colorize.CyanString("Categories: ")+
			colorize.HiWhiteString(strings.Join(c.Categories, ", ")))
	}

	for _, label := range c.Categories {
		related, ok := idx.Lookup(label)
		if !ok {
			continue
		}
		var others []string
		for _, r := range related {
			if r.Character != c.Character {
				others = append(others, r.Character)
			}
		}
		if len(others) == 0 {
			continue
		}

		infoLines = append(infoLines, "")
		infoLines = append(infoLines, colorize.CyanString("Also in %s:", label))
		infoLines = append(infoLines, wrapText(strings.Join(others, " "), width-4)...)
	}

	fmt.Fprintln(out)
	for _, line := range infoLines {
		fmt.Fprintln(out, "  "+line)
	}
	fmt.Fprintln(out)
}
