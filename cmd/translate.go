package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/arcanaland/hanzicards/internal/card"
	"github.com/arcanaland/hanzicards/internal/category"
	"github.com/arcanaland/hanzicards/internal/config"
	"github.com/arcanaland/hanzicards/internal/translate"
)

var (
	promptKind       string
	promptContext    string
	generateCategory string
	generateFromOCR  bool
)

// newCompleter builds the LLM client from config; tests replace it
var newCompleter = func() (translate.Completer, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	return translate.NewOpenAIClient(translate.Options{
		Model:       cfg.OpenAIModel,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
	})
}

var translateCmd = &cobra.Command{
	Use:   "translate [character]",
	Short: "Ask the LLM for a practice sentence or notes about a character",
	Example: `  hanzicards translate 散步
  hanzicards translate 散步 --kind info --context "keep it short"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		completer, err := newCompleter()
		if err != nil {
			return err
		}

		prompt := translate.CharacterPrompt(args[0], promptKind, promptContext)
		reply, err := completer.Complete(cmd.Context(), prompt)
		if err != nil {
			return err
		}

		printReply(cmd.OutOrStdout(), reply)
		return nil
	},
}

var translateCategoryCmd = &cobra.Command{
	Use:   "translate-category [category]",
	Short: "Ask the LLM for practice sentences covering a whole category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := openStore()
		if err != nil {
			return err
		}

		prompt, err := translate.CategoryPrompt(category.Build(s), args[0], promptKind, promptContext)
		if err != nil {
			return err
		}

		completer, err := newCompleter()
		if err != nil {
			return err
		}

		reply, err := completer.Complete(cmd.Context(), prompt)
		if err != nil {
			return err
		}

		printReply(cmd.OutOrStdout(), reply)
		return nil
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate [text]",
	Short: "Extract words from text with the LLM and add them as cards",
	Long: `Generate sends a block of text (for example a pasted vocabulary list) to the
LLM, asks for a comma separated list of words, and adds every word that is not
already in the database as a card in the given category. Existing cards are
tagged with the category instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if generateCategory == "" {
			return fmt.Errorf("--category is required")
		}

		s, dbPath, err := openStore()
		if err != nil {
			return err
		}

		completer, err := newCompleter()
		if err != nil {
			return err
		}

		kind := translate.KindGenerateCSV
		if generateFromOCR {
			kind = translate.KindGenerateCSVPNG
		}

		reply, err := completer.Complete(cmd.Context(), translate.CharacterPrompt(args[0], kind, promptContext))
		if err != nil {
			return err
		}

		added, tagged := 0, 0
		for _, word := range translate.ParseCSV(reply) {
			existing, exists := s.Get(word)
			switch {
			case !exists:
				s.Put(card.New(word, []string{generateCategory}, ""))
				added++
			case existing.HasCategory(generateCategory):
				slog.Debug("card already in category", "character", word)
			default:
				cats := append(append([]string{}, existing.Categories...), generateCategory)
				s.Put(card.New(word, cats, existing.Pinyin))
				tagged++
			}
		}

		if added+tagged > 0 {
			if err := s.Save(dbPath); err != nil {
				return fmt.Errorf("error saving cards: %w", err)
			}
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Added %d cards to %s, tagged %d existing cards\n", added, generateCategory, tagged)
		return nil
	},
}

func printReply(out io.Writer, reply string) {
	for _, line := range wrapText(reply, terminalWidth()-2) {
		fmt.Fprintln(out, line)
	}
}

func init() {
	RootCmd.AddCommand(translateCmd)
	RootCmd.AddCommand(translateCategoryCmd)
	RootCmd.AddCommand(generateCmd)

	for _, c := range []*cobra.Command{translateCmd, translateCategoryCmd} {
		c.Flags().StringVarP(&promptKind, "kind", "k", translate.KindTranslation, "Prompt kind: translation or info")
		c.Flags().StringVar(&promptContext, "context", "", "Extra context appended to the prompt")
	}
	generateCmd.Flags().StringVarP(&generateCategory, "category", "c", "", "Category for the new cards")
	generateCmd.Flags().BoolVar(&generateFromOCR, "ocr-text", false, "Treat the text as a noisy OCR dump of numbered phrases")
	generateCmd.Flags().StringVar(&promptContext, "context", "", "Extra context appended to the prompt")
}
