package pleco

import (
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/arcanaland/hanzicards/internal/card"
	"github.com/arcanaland/hanzicards/internal/category"
)

// Metadata written on the plecoflash root element
const (
	formatVersion = "2"
	creator       = "hanzicards"
	generator     = "Pleco 2.0 Flashcard Exporter"
	platform      = "iPhone OS"
)

// UnknownCategoryError is returned when exporting a category no card carries
type UnknownCategoryError struct {
	Category  string
	Available []string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("category %s not found, available categories: %s",
		e.Category, strings.Join(e.Available, ", "))
}

// Export writes cards to w as a Pleco flashcard document stamped with now
func Export(w io.Writer, cards []card.Card, now time.Time) error {
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")

	created := strconv.FormatInt(now.Unix(), 10)

	tokens := []xml.Token{
		xml.ProcInst{Target: "xml", Inst: []byte(`version="1.0" encoding="UTF-8"`)},
		start("plecoflash",
			"formatversion", formatVersion,
			"creator", creator,
			"generator", generator,
			"platform", platform,
			"created", created),
		start("cards"),
	}

	for _, c := range cards {
		tokens = append(tokens,
			start("card", "language", "chinese", "created", created, "modified", created),
			start("entry"),
			start("headword", "charset", "sc"),
			xml.CharData(c.Character),
			end("headword"),
		)
		if c.Pinyin != "" {
			tokens = append(tokens,
				start("pron", "system", "hypy", "tones", "numbers"),
				xml.CharData(c.Pinyin),
				end("pron"),
			)
		}
		tokens = append(tokens, end("entry"))

		if cat := c.PrimaryCategory(); cat != "" {
			tokens = append(tokens, start("catassign", "category", cat))
		} else {
			slog.Warn("no category for card", "character", c.Character)
			tokens = append(tokens, start("catassign"))
		}
		tokens = append(tokens, end("catassign"), end("card"))
	}

	tokens = append(tokens, end("cards"), end("plecoflash"))

	for _, tok := range tokens {
		if err := enc.EncodeToken(tok); err != nil {
			return fmt.Errorf("error writing pleco xml: %w", err)
		}
	}
	if err := enc.Flush(); err != nil {
		return fmt.Errorf("error writing pleco xml: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// ExportCategory writes the cards of one category to a timestamped file in
// dir and returns its path
func ExportCategory(dir, label string, cards category.Lister, now time.Time) (string, error) {
	idx := category.Build(cards)
	selected, ok := idx.Lookup(label)
	if !ok {
		return "", &UnknownCategoryError{Category: label, Available: idx.Names()}
	}

	path := filepath.Join(dir, ExportFileName(label, now))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	if err := Export(f, selected, now); err != nil {
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close export file: %w", err)
	}

	slog.Info("exported category", "category", label, "cards", len(selected), "path", path)
	return path, nil
}

// ExportFileName names an export of label made at now
func ExportFileName(label string, now time.Time) string {
	safe := strings.NewReplacer("/", "_", `\`, "_", " ", "_").Replace(label)
	return fmt.Sprintf("%s-%d-%d-%d_%02d%02d.xml",
		safe, now.Year(), int(now.Month()), now.Day(), now.Hour(), now.Minute())
}

// start builds a start element from alternating attribute names and values
func start(name string, attrs ...string) xml.StartElement {
	el := xml.StartElement{Name: xml.Name{Local: name}}
	for i := 0; i+1 < len(attrs); i += 2 {
		el.Attr = append(el.Attr, xml.Attr{Name: xml.Name{Local: attrs[i]}, Value: attrs[i+1]})
	}
	return el
}

func end(name string) xml.EndElement {
	return xml.EndElement{Name: xml.Name{Local: name}}
}
