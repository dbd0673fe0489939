package pleco

import (
	"bufio"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/text/encoding/ianaindex"

	"github.com/arcanaland/hanzicards/internal/card"
	"github.com/arcanaland/hanzicards/internal/store"
)

// ErrParse marks a document that is not well-formed or cannot be decoded
var ErrParse = errors.New("pleco parse error")

// Sink receives each card as soon as its element closes
type Sink interface {
	Put(card.Card)
}

// parser is the state threaded through every token of one document
type parser struct {
	sink  Sink
	state nesting

	// Accumulators for the card being read, cleared when it closes
	character string
	category  string
	pinyin    string

	count int
}

// Parse reads a Pleco flashcard document from r and puts every completed card
// into sink in document order. It returns how many cards were put. On error,
// cards closed before the failure have already reached sink.
func Parse(r io.Reader, sink Sink) (int, error) {
	d := xml.NewDecoder(r)
	d.CharsetReader = charsetReader

	p := &parser{sink: sink}
	var boundary int64
	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			if endsBetweenTokens(err, d.InputOffset(), boundary) {
				slog.Debug("document ended with unclosed elements", "state", p.state.String())
				break
			}
			return p.count, fmt.Errorf("%w: %w", ErrParse, err)
		}
		p.handle(tok)
		boundary = d.InputOffset()
	}
	return p.count, nil
}

// endsBetweenTokens reports whether err is the decoder complaining about open
// elements at a clean end of input. A tag cut off mid-way has consumed bytes
// past the last token, so it is still reported.
func endsBetweenTokens(err error, offset, boundary int64) bool {
	var syntaxErr *xml.SyntaxError
	if !errors.As(err, &syntaxErr) {
		return false
	}
	return syntaxErr.Msg == "unexpected EOF" && offset == boundary
}

func (p *parser) handle(tok xml.Token) {
	switch t := tok.(type) {
	case xml.StartElement:
		p.start(t)
	case xml.EndElement:
		p.end(t)
	case xml.CharData:
		p.text(string(t))
	}
}

// start opens a tracked element. Self-closing elements arrive as a start
// immediately followed by an end, so catassign is read here.
func (p *parser) start(t xml.StartElement) {
	name := t.Name.Local
	if f, ok := tracked[name]; ok {
		p.state = p.state.enter(f)
		return
	}

	if name == "catassign" && p.state.has(inCard) {
		for _, attr := range t.Attr {
			if attr.Name.Local == "category" {
				p.category = attr.Value
			}
		}
	}
}

func (p *parser) end(t xml.EndElement) {
	f, ok := tracked[t.Name.Local]
	if !ok {
		return
	}
	if f == inCard && p.state.has(inCard) {
		p.emit()
	}
	p.state = p.state.leave(f)
}

// text fills an empty accumulator; later text in the same element is ignored
func (p *parser) text(raw string) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return
	}

	switch {
	case p.state.has(inHeadword):
		if p.character == "" {
			p.character = s
		}
	case p.state.has(inPron):
		if p.pinyin == "" {
			p.pinyin = s
		}
	}
}

func (p *parser) emit() {
	if p.character == "" {
		slog.Warn("skipping card without a headword", "category", p.category)
	} else {
		p.sink.Put(card.New(p.character, []string{p.category}, p.pinyin))
		p.count++
		slog.Debug("imported card", "character", p.character, "category", p.category)
	}

	p.character = ""
	p.category = ""
	p.pinyin = ""
}

// charsetReader decodes documents declaring a non UTF-8 encoding
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", label, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported encoding %q", label)
	}
	return enc.NewDecoder().Reader(input), nil
}

// Import parses the Pleco file at xmlPath into s and saves s to dbPath. The
// store is only saved when the whole document parsed.
func Import(xmlPath, dbPath string, s *store.Store) (int, error) {
	slog.Info("importing", "file", xmlPath)

	f, err := os.Open(xmlPath)
	if err != nil {
		return 0, fmt.Errorf("%w: opening %s: %w", store.ErrIO, xmlPath, err)
	}
	defer f.Close()

	n, err := Parse(bufio.NewReader(f), s)
	if err != nil {
		return n, fmt.Errorf("importing %s: %w", xmlPath, err)
	}

	if err := s.Save(dbPath); err != nil {
		return n, err
	}

	slog.Info("import complete", "file", xmlPath, "cards", n)
	return n, nil
}
