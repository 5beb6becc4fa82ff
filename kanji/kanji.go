// Package kanji holds the Kanji tagged-variant record (§3.3), its Ucd and
// Radical satellite tables (§3.2, §4.6), and the KanjiData aggregator that
// loads and cross-validates the ten reference files (§4.7).
package kanji

import (
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("kanjitools.kanji")
}

// Kanji is a tagged variant discriminated by Type (§9 DESIGN NOTES: "abstract
// base class with virtual getters" replaced by a plain enum tag plus a
// struct carrying only the fields each variant actually populates). Common
// fields are set for every Type; the others are zero-valued when unused by
// that variant.
type Kanji struct {
	Type Type

	Name               string
	CompatibilityName  string // set only when Name carries a variation selector
	RadicalNumber      uint8
	Strokes            uint8
	Pinyin             string
	MorohashiID        string
	NelsonIDs          []int

	// Jouyou / Jinmei / Extra / Frequency / Kentei
	Number    uint32 // Jouyou/Jinmei/Extra ordinal, 0 if not applicable
	Grade     Grade
	HasGrade  bool
	Level     Level
	HasLevel  bool
	Kyu       Kyu
	HasKyu    bool
	Frequency uint32
	HasFrequency bool
	Year      *uint16
	OldNames  []string
	Meaning   string
	Reading   string
	Reason    JinmeiReason
	HasReason bool

	// LinkedJinmei / LinkedOld
	Link *Kanji
}

// IsVariant mirrors the original's variation-selector check used to decide
// whether to insert into the compatibility-name secondary map (§3.3 last
// bullet).
func (k *Kanji) IsVariant() bool { return k.CompatibilityName != "" }

// effectiveReading returns Reading for variants that own one, or derives it
// from Link for LinkedJinmei/LinkedOld (§3.3).
func (k *Kanji) effectiveReading() string {
	if k.Link != nil && k.Reading == "" {
		return k.Link.effectiveReading()
	}
	return k.Reading
}

// effectiveMeaning mirrors effectiveReading for Meaning.
func (k *Kanji) effectiveMeaning() string {
	if k.Link != nil && k.Meaning == "" {
		return k.Link.effectiveMeaning()
	}
	return k.Meaning
}
