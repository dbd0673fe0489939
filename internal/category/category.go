package category

import (
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/arcanaland/hanzicards/internal/card"
)

// Lister is anything that can enumerate its cards in a stable order
type Lister interface {
	Cards() []card.Card
}

// Index maps a lowercased category label to the cards carrying it
type Index map[string][]card.Card

// Build groups every card under each of its categories. Labels differing
// only by case share one bucket; the cards keep their original labels.
func Build(l Lister) Index {
	// A Caser holds state, so each call gets its own
	lower := cases.Lower(language.Und)

	index := make(Index)
	for _, c := range l.Cards() {
		for _, cat := range c.Categories {
			key := lower.String(cat)
			index[key] = append(index[key], c)
		}
	}
	return index
}

// Names returns the category keys in sorted order
func (idx Index) Names() []string {
	names := make([]string, 0, len(idx))
	for name := range idx {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the cards for label, matching it case-insensitively
func (idx Index) Lookup(label string) ([]card.Card, bool) {
	cards, ok := idx[Normalize(label)]
	return cards, ok
}

// Normalize lowercases label the same way Build does
func Normalize(label string) string {
	return cases.Lower(language.Und).String(label)
}
