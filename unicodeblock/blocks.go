// Package unicodeblock classifies code points and graphemes into the
// Japanese-relevant Unicode block ranges (§4.2) and provides the predicates
// (isHiragana, isKanji, ...) the rest of kanjitools is built on.
package unicodeblock

import "kanjitools/utf8"

// Code is an alias of utf8.Code so callers don't need to import utf8 just
// to name the type.
type Code = utf8.Code

// Block is an inclusive code point range, optionally named and versioned.
// Official Unicode blocks satisfy Start%16==0, End%16==15, Start<End;
// unofficial single-point "blocks" (used for wide-display tables) don't.
type Block struct {
	Start, End Code
	Version    string
	Name       string
}

func (b Block) contains(c Code) bool { return c >= b.Start && c <= b.End }

// Official Unicode blocks relevant to Japanese text. Declared in ascending
// Start order as required by InRange's short-circuit.
var (
	HiraganaBlocks = []Block{
		{Start: 0x3040, End: 0x309F, Version: "1.1", Name: "Hiragana"},
	}
	KatakanaBlocks = []Block{
		{Start: 0x30A0, End: 0x30FF, Version: "1.1", Name: "Katakana"},
		{Start: 0x31F0, End: 0x31FF, Version: "3.2", Name: "KatakanaPhoneticExtensions"},
		{Start: 0xFF65, End: 0xFF9F, Version: "1.1", Name: "HalfwidthKatakana"},
	}
	// KanjiBlocks covers CJK Unified Ideographs, Extension A and the CJK
	// Compatibility Ideographs.
	KanjiBlocks = []Block{
		{Start: 0x3400, End: 0x4DBF, Version: "3.0", Name: "CJKExtensionA"},
		{Start: 0x4E00, End: 0x9FFF, Version: "1.1", Name: "CJKUnified"},
		{Start: 0xF900, End: 0xFAFF, Version: "1.1", Name: "CJKCompatibilityIdeographs"},
	}
	// KanjiCompatibilityBlocks covers only the compatibility-ideograph
	// range.
	KanjiCompatibilityBlocks = []Block{
		{Start: 0xF900, End: 0xFAFF, Version: "1.1", Name: "CJKCompatibilityIdeographs"},
	}
	// VariationSelectors are the non-spacing selectors a grapheme can
	// attach to its base character (§3.1, §4.2).
	VariationSelectors = []Block{
		{Start: 0xFE00, End: 0xFE0F, Version: "3.2", Name: "VariationSelectors"},
	}
	// WideSpace is the single ideographic space, a common "unofficial"
	// single-point block used by isMBPunctuation.
	WideSpace = Block{Start: 0x3000, End: 0x3000, Name: "IdeographicSpace"}

	// CombiningVoiced and CombiningSemiVoiced are the two combining marks
	// (§3.1) a grapheme's follower may also be, besides a variation
	// selector.
	CombiningVoiced     Code = 0x3099
	CombiningSemiVoiced Code = 0x309A
)

// KanaBlocks is Hiragana ∪ Katakana.
func KanaBlocks() []Block {
	all := append([]Block{}, HiraganaBlocks...)
	return append(all, KatakanaBlocks...)
}

// InRange reports whether code falls in any of blocks, short-circuiting as
// soon as code < block.Start since blocks are ascending.
func InRange(code Code, blocks []Block) bool {
	for _, b := range blocks {
		if code < b.Start {
			return false
		}
		if b.contains(code) {
			return true
		}
	}
	return false
}

// IsHiragana, IsKatakana, IsKana and IsKanji test a single code point.
func IsHiragana(c Code) bool { return InRange(c, HiraganaBlocks) }
func IsKatakana(c Code) bool { return InRange(c, KatakanaBlocks) }
func IsKana(c Code) bool     { return IsHiragana(c) || IsKatakana(c) }
func IsKanji(c Code) bool    { return InRange(c, KanjiBlocks) }
func IsKanjiCompatibility(c Code) bool {
	return InRange(c, KanjiCompatibilityBlocks)
}

// IsVariationSelector reports whether c is one of U+FE00..U+FE0F.
func IsVariationSelector(c Code) bool { return InRange(c, VariationSelectors) }

// IsCombiningMark reports whether c is the combining voiced or
// semi-voiced mark.
func IsCombiningMark(c Code) bool { return c == CombiningVoiced || c == CombiningSemiVoiced }

// IsNonSpacing reports whether c can follow a base character as the second
// half of a grapheme: a variation selector or a combining voice mark.
func IsNonSpacing(c Code) bool { return IsVariationSelector(c) || IsCombiningMark(c) }

// MaxMBSize is the maximum byte length of one encoded multi-byte character
// kanjitools deals with (4 bytes for the widest UTF-8 code point).
const MaxMBSize = 4

// InWCharRange implements the grapheme-aware predicate of §4.2: s succeeds
// when it is longer than one byte, no longer than MaxMBSize*2 bytes (when
// sizeOne is set), and decodes to either one code in blocks, or one code in
// blocks followed by one non-spacing code.
func InWCharRange(s string, sizeOne bool, blocks ...[]Block) bool {
	if len(s) <= 1 {
		return false
	}
	if sizeOne && len(s) > MaxMBSize*2 {
		return false
	}
	codes := utf8.FromUtf8(s, 2)
	if len(codes) == 0 {
		return false
	}
	inAny := func(c Code) bool {
		for _, blk := range blocks {
			if InRange(c, blk) {
				return true
			}
		}
		return false
	}
	if !inAny(codes[0]) {
		return false
	}
	if len(codes) == 1 {
		return true
	}
	return IsNonSpacing(codes[1])
}

// IsMBPunctuation reports whether s is the wide ideographic space or, when
// includeSpace is true, the ASCII space ' '. No other whitespace matches.
func IsMBPunctuation(s string, includeSpace bool) bool {
	codes := utf8.FromUtf8(s, 1)
	if len(codes) != 1 {
		return false
	}
	if codes[0] == WideSpace.Start {
		return true
	}
	return includeSpace && codes[0] == ' '
}
