package kana

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertKitte(t *testing.T) {
	assert.Equal(t, "きって", Convert("kitte", Romaji, Hiragana, None))
}

func TestConvertTokyoProlong(t *testing.T) {
	assert.Equal(t, "とーきょー", Convert("tōkyō", Romaji, Hiragana, None))
	assert.Equal(t, "とおきょお", Convert("tōkyō", Romaji, Hiragana, NoProlongMark))
}

func TestConvertKanIRoundTrip(t *testing.T) {
	assert.Equal(t, "かんい", Convert("kan'i", Romaji, Hiragana, None))
	assert.Equal(t, "kan'i", Convert("かんい", Hiragana, Romaji, None))
}

func TestConvertRamen(t *testing.T) {
	assert.Equal(t, "rāmen", Convert("ラーメン", Katakana, Romaji, None))
	assert.Equal(t, "rāmen", Convert("ラーメン", Katakana, Romaji, Hepburn))
}

func TestConvertChidimuOverrides(t *testing.T) {
	assert.Equal(t, "chidimu", Convert("ちぢむ", Hiragana, Romaji, None))
	assert.Equal(t, "chijimu", Convert("ちぢむ", Hiragana, Romaji, Hepburn))
	assert.Equal(t, "tizimu", Convert("ちぢむ", Hiragana, Romaji, Kunrei))
	assert.Equal(t, "tijimu", Convert("ちぢむ", Hiragana, Romaji, Hepburn|Kunrei))
}

func TestConvertIterationMarks(t *testing.T) {
	assert.Equal(t, "kokokoro", Convert("ここゝろ", Hiragana, Romaji, None))
	assert.Equal(t, "kokogoro", Convert("ここゞろ", Hiragana, Romaji, None))
}

func TestConvertSokuonDigraph(t *testing.T) {
	assert.Equal(t, "gakkou", Convert("がっこう", Hiragana, Romaji, None))
	assert.Equal(t, "matcha", Convert("まっちゃ", Hiragana, Romaji, None))
}

func TestConvertHiraganaKatakanaInverse(t *testing.T) {
	inputs := []string{"がっこう", "ちゃんぽん", "とーきょー", "ちぇっく"}
	for _, h := range inputs {
		k := Convert(h, Hiragana, Katakana, None)
		back := Convert(k, Katakana, Hiragana, None)
		assert.Equal(t, h, back, "round trip for %q", h)
	}
	// An iteration mark is expanded to the kana it repeats, so it does not
	// survive a round trip.
	assert.Equal(t, "コココロ", Convert("ここゝろ", Hiragana, Katakana, None))
}

func TestConvertRomajiRoundTrip(t *testing.T) {
	for _, romaji := range []string{"kitte", "kokoro", "sakura", "nihongo"} {
		h := Convert(romaji, Romaji, Hiragana, None)
		back := Convert(h, Hiragana, Romaji, None)
		assert.Equal(t, romaji, back, "round trip for %q", romaji)
	}
}

func TestTablesInvariants(t *testing.T) {
	tb := Get()
	for _, k := range tb.hiragana {
		assert.Same(t, k, tb.hiragana[k.Hiragana])
	}
	for _, k := range tb.katakana {
		assert.Same(t, k, tb.katakana[k.Katakana])
	}
	for _, k := range tb.romaji {
		if k.Romaji != "" {
			assert.NotNil(t, tb.romaji[k.Romaji])
		}
	}
}

func TestDakutenPlainBackPointer(t *testing.T) {
	tb := Get()
	ka := tb.hiragana["か"]
	assert.NotNil(t, ka.Dakuten())
	assert.Same(t, ka, ka.Dakuten().Plain())

	ha := tb.hiragana["は"]
	assert.NotNil(t, ha.HanDakuten())
	assert.Same(t, ha, ha.HanDakuten().Plain())
}

func TestCharTypeString(t *testing.T) {
	assert.Equal(t, "Hiragana", Hiragana.String())
	assert.Equal(t, "Katakana", Katakana.String())
	assert.Equal(t, "Romaji", Romaji.String())
}

func TestFlagHas(t *testing.T) {
	f := Hepburn | NoProlongMark
	assert.True(t, f.Has(Hepburn))
	assert.True(t, f.Has(NoProlongMark))
	assert.False(t, f.Has(Kunrei))
}
