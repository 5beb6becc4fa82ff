// Package mbchar implements the grapheme iterator of §4.3: it yields one
// logical character at a time from a UTF-8 byte string, folding a trailing
// variation selector or combining voiced/semi-voiced mark into the
// preceding base character.
package mbchar

import (
	"kanjitools/kana"
	"kanjitools/unicodeblock"
	"kanjitools/utf8"
)

// Grapheme is the unit the iterator yields: a base Code plus an optional
// non-spacing Follower.
type Grapheme struct {
	Bytes       string     // the raw bytes consumed from the source string
	Base        utf8.Code  // the base code point
	Follower    utf8.Code  // 0 when there is no follower
	Resolved    string     // the logical display string for this grapheme
	IsVariant   bool       // Follower is a variation selector
	IsCombining bool       // Follower is a combining voiced/semi-voiced mark
}

// Mode selects whether the iterator yields single-byte (ASCII) characters
// or silently skips past them.
type Mode int

const (
	// MBOnly advances past single-byte characters without yielding them.
	MBOnly Mode = iota
	// IncludeSingleByte yields every character, multi-byte or not.
	IncludeSingleByte
)

// Iterator walks a byte string one grapheme at a time.
type Iterator struct {
	data []byte
	mode Mode

	pos            int
	errors         int
	variants       int
	combiningMarks int
}

// New creates an Iterator over s in the given Mode.
func New(s string, mode Mode) *Iterator {
	return &Iterator{data: []byte(s), mode: mode}
}

// Reset restores the starting position and zeros the error/variant/
// combining-mark counters.
func (it *Iterator) Reset() {
	it.pos = 0
	it.errors = 0
	it.variants = 0
	it.combiningMarks = 0
}

// Errors, Variants and CombiningMarks report the running counters
// accumulated since construction or the last Reset.
func (it *Iterator) Errors() int         { return it.errors }
func (it *Iterator) Variants() int       { return it.variants }
func (it *Iterator) CombiningMarks() int { return it.combiningMarks }

// Next yields the next Grapheme, or ok==false at end of input.
func (it *Iterator) Next() (Grapheme, bool) {
	for it.pos < len(it.data) {
		res := utf8.DecodeRune(it.data[it.pos:])
		if !res.Valid {
			it.errors++
			it.pos++
			continue
		}

		if res.Size == 1 {
			start := it.pos
			it.pos++
			if it.mode == MBOnly {
				continue
			}
			return Grapheme{
				Bytes:    string(it.data[start:it.pos]),
				Base:     res.Code,
				Resolved: string(res.Code),
			}, true
		}

		start := it.pos
		baseEnd := it.pos + res.Size
		g := Grapheme{Base: res.Code}

		if baseEnd+3 <= len(it.data) {
			follower := utf8.DecodeRune(it.data[baseEnd : baseEnd+3])
			if follower.Valid && follower.Size == 3 && unicodeblock.IsNonSpacing(follower.Code) {
				g.Follower = follower.Code
				if unicodeblock.IsVariationSelector(follower.Code) {
					g.IsVariant = true
					it.variants++
					g.Bytes = string(it.data[start : baseEnd+3])
					g.Resolved = g.Bytes
				} else {
					g.IsCombining = true
					it.combiningMarks++
					g.Bytes = string(it.data[start : baseEnd+3])
					if precomposed, ok := kana.ResolvePrecomposed(string(res.Code), follower.Code); ok {
						g.Resolved = precomposed
					} else {
						g.Resolved = g.Bytes
					}
				}
				it.pos = baseEnd + 3
				return g, true
			}
		}

		g.Bytes = string(it.data[start:baseEnd])
		g.Resolved = g.Bytes
		it.pos = baseEnd
		return g, true
	}
	return Grapheme{}, false
}

// All drains the iterator into a slice, mainly useful for tests.
func (it *Iterator) All() []Grapheme {
	var out []Grapheme
	for {
		g, ok := it.Next()
		if !ok {
			return out
		}
		out = append(out, g)
	}
}
