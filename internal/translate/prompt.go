package translate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/arcanaland/hanzicards/internal/category"
)

// ErrCategoryNotFound is returned when a category prompt names an unknown category
var ErrCategoryNotFound = errors.New("category not found")

// Prompt kinds understood by CharacterPrompt and CategoryPrompt
const (
	KindTranslation    = "translation"
	KindGenerateCSV    = "generate-csv"
	KindGenerateCSVPNG = "generate-csv-png"
	KindInfo           = "info"
)

// CharacterPrompt builds the prompt of the given kind for a character or a
// block of text. An unknown kind asks for general information.
func CharacterPrompt(character, kind, context string) string {
	var base string
	switch kind {
	case KindTranslation:
		base = fmt.Sprintf("Generate a english sentence using the translation of the character '%s'. "+
			"The purpose of the sentence is for someone to practice translating the english sentence into colloquial chinese. "+
			"Make the sentence at least 20 words long.", character)
	case KindGenerateCSV:
		base = fmt.Sprintf("Generate a comma separated list of words from the set '%s'. "+
			"It needs to be usable as a input to code (no extra spaces, one comma between each word). "+
			"Each newline or comma indicates a new word. A word will have between 2-4 distinct characters.", character)
	case KindGenerateCSVPNG:
		base = fmt.Sprintf("Generate a comma separated list of chinese phrases from this set of phrases. '%s'. "+
			"It needs to be usable as a input to code (no extra spaces, one comma between each word). "+
			"The set of phrases is somewhat inconsistently formatted, but generally in the form 607“散步sunZbu where we want to parse 607,散步. "+
			"Each phrase will have between 1-4 distinct characters.", character)
	default:
		base = fmt.Sprintf("Provide comprehensive information about the Chinese character '%s' "+
			"including pronunciation, meaning, usage, and cultural context.", character)
	}
	return withContext(base, context)
}

// CategoryPrompt builds a prompt covering every card in one category
func CategoryPrompt(idx category.Index, label, kind, context string) (string, error) {
	cards, ok := idx.Lookup(label)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrCategoryNotFound, label)
	}

	characters := make([]string, 0, len(cards))
	for _, c := range cards {
		characters = append(characters, c.Character)
	}
	joined := strings.Join(characters, ",")

	var base string
	switch kind {
	case KindTranslation:
		base = fmt.Sprintf("Generate a english sentence for each character using the translation of the characters '%s'. "+
			"The purpose of each sentence is for someone to practice translating the english sentence into colloquial chinese. "+
			"Make each sentence around 12 words long. Limit to 20 sentences.", joined)
	default:
		base = fmt.Sprintf("Provide comprehensive information about the Chinese characters '%s' "+
			"including pronunciation, meaning, usage, and cultural context.", joined)
	}
	return withContext(base, context), nil
}

func withContext(base, context string) string {
	if context == "" {
		return base
	}
	return base + " Context: " + context
}

// ParseCSV splits a generate-csv reply into distinct words, in order of first
// appearance. Commas, ideographic commas and newlines all separate words.
func ParseCSV(reply string) []string {
	fields := strings.FieldsFunc(reply, func(r rune) bool {
		return r == ',' || r == '，' || r == '、' || r == '\n' || r == '\r'
	})

	seen := make(map[string]bool, len(fields))
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		w := strings.TrimSpace(f)
		if w == "" || seen[w] {
			continue
		}
		seen[w] = true
		words = append(words, w)
	}
	return words
}
