// pkg/lineedit/style.go

package lineedit

import (
	"fmt"
	"strings"

	cerr "github.com/cockroachdb/errors"
)

// Style selects how keystrokes are captured and displayed.
type Style int

const (
	// Basic echoes every key and returns the line on confirm.
	Basic Style = iota
	// Masked echoes a mask glyph in place of every character.
	Masked
	// Instant reads a single key and echoes it upper-cased.
	Instant
)

var styleNames = [...]string{
	Basic:   "basic",
	Masked:  "masked",
	Instant: "instant",
}

func (s Style) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Style(%d)", int(s))
	}
	return styleNames[s]
}

// Valid reports whether s is one of the defined styles.
func (s Style) Valid() bool {
	return s >= Basic && s <= Instant
}

// ParseStyle maps a style name (case-insensitive) to a Style.
func ParseStyle(name string) (Style, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, candidate := range styleNames {
		if candidate == n {
			return Style(i), nil
		}
	}
	return Basic, cerr.WithHint(
		cerr.Newf("unknown input style %q", name),
		"valid styles are basic, masked and instant",
	)
}
