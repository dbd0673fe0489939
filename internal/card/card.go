package card

import "strings"

// Card represents a single vocabulary entry
type Card struct {
	Character  string   `json:"character"` // Headword, also the store key
	Categories []string `json:"category"`  // Free-text tags in their original case
	Pinyin     string   `json:"pinyin"`    // Phonetic transcription, may be empty
}

// New builds a card, copying categories so later changes to the caller's slice
// do not leak into the record
func New(character string, categories []string, pinyin string) Card {
	cats := make([]string, len(categories))
	copy(cats, categories)
	return Card{
		Character:  character,
		Categories: cats,
		Pinyin:     pinyin,
	}
}

// PrimaryCategory returns the first category or an empty string
func (c Card) PrimaryCategory() string {
	if len(c.Categories) == 0 {
		return ""
	}
	return c.Categories[0]
}

// HasCategory reports whether the card carries label, ignoring case
func (c Card) HasCategory(label string) bool {
	for _, cat := range c.Categories {
		if strings.EqualFold(cat, label) {
			return true
		}
	}
	return false
}
