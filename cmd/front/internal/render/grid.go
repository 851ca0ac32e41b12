// Package render draws query results as a grid of text cards.
package render

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

const (
	DefaultColumns = 4
	DefaultWidth   = 28
)

type Card struct {
	Title string
	Lines []string
}

type Grid struct {
	Columns int
	Width   int // ширина карточки без рамки
}

// Render пишет карточки рядами по g.Columns. Строки длиннее ширины обрезаются.
func (g Grid) Render(w io.Writer, cards []Card) error {
	cols := g.Columns
	if cols <= 0 {
		cols = DefaultColumns
	}
	width := g.Width
	if width <= 0 {
		width = DefaultWidth
	}

	for start := 0; start < len(cards); start += cols {
		end := min(start+cols, len(cards))
		if err := g.renderRow(w, cards[start:end], width); err != nil {
			return err
		}
	}
	return nil
}

func (g Grid) renderRow(w io.Writer, row []Card, width int) error {
	height := 0
	for _, c := range row {
		height = max(height, len(c.Lines))
	}

	border := "+" + strings.Repeat("-", width+2) + "+"
	sep := " "

	lines := make([]string, 0, height+4)
	lines = append(lines, join(row, sep, func(Card) string { return border }))
	lines = append(lines, join(row, sep, func(c Card) string { return cell(c.Title, width) }))
	lines = append(lines, join(row, sep, func(Card) string { return "|" + strings.Repeat("=", width+2) + "|" }))
	for i := 0; i < height; i++ {
		lines = append(lines, join(row, sep, func(c Card) string {
			if i < len(c.Lines) {
				return cell(c.Lines[i], width)
			}
			return cell("", width)
		}))
	}
	lines = append(lines, join(row, sep, func(Card) string { return border }))

	for _, l := range lines {
		if _, err := fmt.Fprintln(w, strings.TrimRight(l, " ")); err != nil {
			return err
		}
	}
	return nil
}

func join(row []Card, sep string, f func(Card) string) string {
	parts := make([]string, len(row))
	for i, c := range row {
		parts[i] = f(c)
	}
	return strings.Join(parts, sep)
}

func cell(s string, width int) string {
	s = Truncate(strings.ReplaceAll(s, "\n", " "), width)
	return "| " + s + strings.Repeat(" ", width-utf8.RuneCountInString(s)) + " |"
}

// Truncate обрезает строку до width рун, заменяя хвост на "..."
func Truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	if width <= 3 {
		return string([]rune(s)[:width])
	}
	return string([]rune(s)[:width-3]) + "..."
}
