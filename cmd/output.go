package cmd

import (
	"os"
	"strings"

	"golang.org/x/term"
	"golang.org/x/text/width"
)

// terminalWidth returns the width of stdout, or 80 when it is not a terminal
func terminalWidth() int {
	cols, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || cols <= 0 {
		return 80
	}
	return cols
}

// wrapText wraps text to a number of terminal columns, keeping existing
// line breaks
func wrapText(text string, columns int) []string {
	// Ensure width is reasonable
	if columns < 10 {
		columns = 40
	}

	var result []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			result = append(result, "")
			continue
		}

		currentLine := ""
		for _, word := range words {
			if currentLine == "" {
				// First word on the line, always add it
				currentLine = word
			} else if displayWidth(currentLine)+1+displayWidth(word) <= columns {
				currentLine += " " + word
			} else {
				result = append(result, currentLine)
				currentLine = word
			}
		}
		result = append(result, currentLine)
	}

	return result
}

// displayWidth counts terminal columns; wide and fullwidth runes take two
func displayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}
