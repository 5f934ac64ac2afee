// Package glyph defines the symbols used to render checklist items.
package glyph

import "fmt"

type Glyph struct {
	Key     string
	Symbol  string
	Meaning string
}

const (
	escape    = "\x1b"
	resetCode = 0
	boldCode  = 1
	dimCode   = 2
)

func Bold(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, boldCode, in, escape, resetCode)
}

func Dim(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, dimCode, in, escape, resetCode)
}

func DefaultGlyphs() []Glyph {
	g := make([]Glyph, 0, 6)

	g = append(g, Glyph{
		Key:     " ",
		Symbol:  "☐",
		Meaning: "item to check",
	}, Glyph{
		Key:     "x",
		Symbol:  "☑",
		Meaning: "item checked",
	}, Glyph{
		Key:     ">",
		Symbol:  "→",
		Meaning: "next expected item",
	}, Glyph{
		Key:     "!",
		Symbol:  "⚠",
		Meaning: "item skipped out of order",
	}, Glyph{
		Key:     "*",
		Symbol:  "✷",
		Meaning: "critical item",
	}, Glyph{
		Key:     "-",
		Symbol:  "▸",
		Meaning: "collapsed section",
	})

	return g
}

func (g Glyph) String() string {
	return g.Symbol
}

type Mark int

const (
	Unchecked Mark = iota
	Checked
	Next
	Warned
	Critical
	Collapsed
)

func (m Mark) Glyph() Glyph {
	return DefaultGlyphs()[m]
}

func (m Mark) String() string {
	return m.Glyph().String()
}

// ForItem picks the mark for an item given its derived state.
func ForItem(checked, highlighted, warned bool) Mark {
	switch {
	case warned:
		return Warned
	case highlighted:
		return Next
	case checked:
		return Checked
	default:
		return Unchecked
	}
}
