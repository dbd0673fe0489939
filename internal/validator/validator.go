package validator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/arcanaland/hanzicards/internal/card"
	"github.com/arcanaland/hanzicards/internal/category"
)

type ValidationResults struct {
	Errors   []string
	Warnings []string
}

type Validator struct {
	Cards   category.Lister
	Results ValidationResults
}

func NewValidator(cards category.Lister) *Validator {
	return &Validator{
		Cards:   cards,
		Results: ValidationResults{},
	}
}

func (v *Validator) Validate() ValidationResults {
	cards := v.Cards.Cards()
	for _, c := range cards {
		v.validateCard(c)
	}
	v.validateCategorySpelling(cards)

	return v.Results
}

// validateCard checks the fields of a single card
func (v *Validator) validateCard(c card.Card) {
	if strings.TrimSpace(c.Character) == "" {
		v.Results.Errors = append(v.Results.Errors, "card with an empty character")
		return
	}

	if len(c.Categories) == 0 {
		v.Results.Warnings = append(v.Results.Warnings,
			fmt.Sprintf("%s has no categories", c.Character))
	} else {
		for _, cat := range c.Categories {
			if strings.TrimSpace(cat) == "" {
				v.Results.Warnings = append(v.Results.Warnings,
					fmt.Sprintf("%s has an empty category", c.Character))
				break
			}
		}
	}

	if c.Pinyin == "" {
		v.Results.Warnings = append(v.Results.Warnings,
			fmt.Sprintf("%s has no pinyin", c.Character))
	}
}

// validateCategorySpelling warns about labels that only differ by case,
// since they are merged into one category
func (v *Validator) validateCategorySpelling(cards []card.Card) {
	spellings := make(map[string]map[string]bool)
	for _, c := range cards {
		for _, cat := range c.Categories {
			key := category.Normalize(cat)
			if spellings[key] == nil {
				spellings[key] = make(map[string]bool)
			}
			spellings[key][cat] = true
		}
	}

	keys := make([]string, 0, len(spellings))
	for key := range spellings {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if len(spellings[key]) < 2 {
			continue
		}
		variants := make([]string, 0, len(spellings[key]))
		for spelling := range spellings[key] {
			variants = append(variants, spelling)
		}
		sort.Strings(variants)
		v.Results.Warnings = append(v.Results.Warnings,
			fmt.Sprintf("category %s is spelled several ways: %s", key, strings.Join(variants, ", ")))
	}
}
