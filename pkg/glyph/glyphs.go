// Package glyph defines the symbols used when rendering tasks, time blocks,
// and matrix quadrants on the terminal.
package glyph

import "fmt"

type Glyph struct {
	Key     string
	Symbol  string
	Meaning string
}

const (
	escape     = "\x1b"
	resetCode  = 0
	boldCode   = 1
	faintCode  = 2
	strikeCode = 9
)

func Strike(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, strikeCode, in, escape, resetCode)
}

func Bold(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, boldCode, in, escape, resetCode)
}

func Faint(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, faintCode, in, escape, resetCode)
}

// Priority maps the task source's inverted ordinal (4 = most urgent) to its
// display glyph. Out-of-range values fall back to the lowest priority.
func Priority(p int) Glyph {
	switch p {
	case 4:
		return Glyph{Key: "4", Symbol: "‼", Meaning: "P1 urgent"}
	case 3:
		return Glyph{Key: "3", Symbol: "!", Meaning: "P2 high"}
	case 2:
		return Glyph{Key: "2", Symbol: "·", Meaning: "P3 medium"}
	default:
		return Glyph{Key: "1", Symbol: " ", Meaning: "P4 low"}
	}
}

// PriorityName returns the user-facing priority name, e.g. "P1" for ordinal 4.
func PriorityName(p int) string {
	if p < 1 || p > 4 {
		p = 1
	}
	return fmt.Sprintf("P%d", 5-p)
}

// Category glyphs distinguish personal from professional tasks.
func Category(c string) Glyph {
	switch c {
	case "pessoal":
		return Glyph{Key: "p", Symbol: "⌂", Meaning: "personal"}
	default:
		return Glyph{Key: "w", Symbol: "⚒", Meaning: "professional"}
	}
}

// Block glyphs mark the background type of a schedule slot.
func Block(t string) Glyph {
	switch t {
	case "personal":
		return Glyph{Key: "p", Symbol: "░", Meaning: "personal block"}
	case "break":
		return Glyph{Key: "b", Symbol: "·", Meaning: "break block"}
	default:
		return Glyph{Key: "w", Symbol: " ", Meaning: "work block"}
	}
}

// Quadrant glyphs label the four Eisenhower quadrants.
func Quadrant(q int) Glyph {
	switch q {
	case 1:
		return Glyph{Key: "1", Symbol: "◆", Meaning: "urgent and important"}
	case 2:
		return Glyph{Key: "2", Symbol: "◇", Meaning: "important"}
	case 3:
		return Glyph{Key: "3", Symbol: "▲", Meaning: "urgent"}
	default:
		return Glyph{Key: "4", Symbol: "△", Meaning: "neither"}
	}
}

func (g Glyph) String() string {
	return g.Symbol
}
