// Package itemize splits a line of grid text into runs that can be shaped
// in one go without drifting off the column grid.
//
// Runs of ASCII non-whitespace are kept together, so a word is usually
// one run. Every other grapheme is a run by itself because its width in
// the font is not known up front. Whitespace separates runs and is never
// part of one.
package itemize

import (
	"iter"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Itemize yields the (byte offset, byte length) of each run in line.
// The sequence can be ranged over any number of times.
func Itemize(line string) iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		start := -1
		g := uniseg.NewGraphemes(line)
		for g.Next() {
			from, to := g.Positions()
			space, ascii := classify(g.Str())

			if start >= 0 && (space || !ascii) {
				if !yield(start, from-start) {
					return
				}
				start = -1
			}
			switch {
			case space:
			case !ascii:
				if !yield(from, to-from) {
					return
				}
			case start < 0:
				start = from
			}
		}
		if start >= 0 {
			yield(start, len(line)-start)
		}
	}
}

// Spans collects Itemize(line) into a slice of [offset, length] pairs.
func Spans(line string) [][2]int {
	var out [][2]int
	for off, n := range Itemize(line) {
		out = append(out, [2]int{off, n})
	}
	return out
}

// classify reports whether the grapheme is whitespace and whether it is
// pure ASCII. A grapheme counts as whitespace only while its leading
// runes are, so a space followed by a combining mark is not.
func classify(grapheme string) (space, ascii bool) {
	space, ascii = true, true
	for _, r := range grapheme {
		if space {
			if unicode.IsSpace(r) {
				continue
			}
			space = false
		}
		if r >= utf8.RuneSelf {
			ascii = false
			break
		}
	}
	return space, ascii
}
