package pleco

// nesting is the set of containment flags currently open. Only the paths
// card, card/entry, card/entry/headword and card/entry/pron are reachable
// because enter refuses a flag whose parents are not already set.
type nesting uint8

const (
	inCard nesting = 1 << iota
	inEntry
	inHeadword
	inPron
)

// parents lists the flags that must be open before each flag can be entered
var parents = map[nesting]nesting{
	inCard:     0,
	inEntry:    inCard,
	inHeadword: inCard | inEntry,
	inPron:     inCard | inEntry,
}

// tracked maps element names to the flag they open
var tracked = map[string]nesting{
	"card":     inCard,
	"entry":    inEntry,
	"headword": inHeadword,
	"pron":     inPron,
}

func (n nesting) has(f nesting) bool {
	return n&f == f
}

// enter opens f when its parents are open and is a no-op otherwise
func (n nesting) enter(f nesting) nesting {
	if !n.has(parents[f]) {
		return n
	}
	return n | f
}

// leave clears exactly f
func (n nesting) leave(f nesting) nesting {
	return n &^ f
}

func (n nesting) String() string {
	switch {
	case n.has(inCard | inEntry | inHeadword):
		return "card/entry/headword"
	case n.has(inCard | inEntry | inPron):
		return "card/entry/pron"
	case n.has(inCard | inEntry):
		return "card/entry"
	case n.has(inCard):
		return "card"
	default:
		return "idle"
	}
}
