// Package kana implements the kana tables and the Romaji/Hiragana/Katakana
// converter (§3.4, §4.8). The tables are built once, lazily, on first use
// (§5) and are immutable afterwards; the converter owns its working state
// on the stack and is safe to run concurrently from distinct instances.
package kana

// CharType names the three scripts the converter moves between.
type CharType int

const (
	Hiragana CharType = iota
	Katakana
	Romaji
)

var charTypeNames = [...]string{"Hiragana", "Katakana", "Romaji"}

func (t CharType) String() string {
	if int(t) < 0 || int(t) >= len(charTypeNames) {
		return "Unknown"
	}
	return charTypeNames[t]
}

// Flag is a bitmask of converter options (§4.8.3).
type Flag uint8

const (
	None          Flag = 0
	Hepburn       Flag = 1
	Kunrei        Flag = 2
	NoProlongMark Flag = 4
	RemoveSpaces  Flag = 8
)

func (f Flag) Has(o Flag) bool { return f&o != 0 }

// ProlongMark is the long-vowel symbol 'ー'.
const ProlongMark = "ー"

// Kana is a Monograph (one kana) or Digraph (two kana, the second a small
// vowel/y-kana/small-wa) together with its canonical Romaji spelling and
// any Hepburn/Kunrei-shiki overrides and extra input variants (§3.4).
//
// Hepburn and Kunrei are empty when the canonical Romaji already is the
// Hepburn (resp. Kunrei) spelling - only kana whose romanizations genuinely
// diverge (ji/di, shi/si, tsu/tu, ...) carry an override.
type Kana struct {
	Romaji   string
	Hiragana string
	Katakana string
	Hepburn  string
	Kunrei   string
	Variants []string // extra romaji spellings that also map to this Kana

	dakuten    *Kana // plain -> its voiced form
	hanDakuten *Kana // plain -> its semi-voiced form (h-row only)
	plain      *Kana // voiced/semi-voiced -> its plain parent
}

// Dakuten returns the voiced form of a plain Kana, or nil.
func (k *Kana) Dakuten() *Kana { return k.dakuten }

// HanDakuten returns the semi-voiced form of a plain 'h'-row Kana, or nil.
func (k *Kana) HanDakuten() *Kana { return k.hanDakuten }

// Plain returns the unaccented parent of a dakuten/han-dakuten Kana, or nil
// if k is already plain.
func (k *Kana) Plain() *Kana { return k.plain }

// IsDigraph reports whether k is a two-character kana (6 bytes of
// Hiragana/Katakana) rather than a Monograph.
func (k *Kana) IsDigraph() bool { return len(k.Hiragana) > 3 }

// romajiFor selects which romaji spelling to emit for flags, per §4.8.1's
// flush-resolution rule: Hepburn wins when both flags are set and an
// override exists; Kunrei is consulted only when no Hepburn override does.
func (k *Kana) romajiFor(flags Flag) string {
	if flags.Has(Hepburn) && k.Hepburn != "" {
		return k.Hepburn
	}
	if flags.Has(Kunrei) && k.Kunrei != "" {
		return k.Kunrei
	}
	return k.Romaji
}

// get returns k's representation in the given target script.
func (k *Kana) get(target CharType, flags Flag) string {
	switch target {
	case Hiragana:
		return k.Hiragana
	case Katakana:
		return k.Katakana
	default:
		return k.romajiFor(flags)
	}
}

// IterationMark is ゝ/ヽ (plain) or ゞ/ヾ (accented); it resolves to the
// previously committed Kana (§3.4, §4.4).
type IterationMark struct {
	Hiragana string
	Katakana string
	Accented bool
}

func (m IterationMark) matches(t CharType, s string) bool {
	switch t {
	case Hiragana:
		return m.Hiragana == s
	case Katakana:
		return m.Katakana == s
	}
	return false
}
