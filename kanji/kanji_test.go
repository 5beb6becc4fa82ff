package kanji

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGradeStringAndParse(t *testing.T) {
	assert.Equal(t, "G1", G1.String())
	assert.Equal(t, "S", SGrade.String())
	g, ok := ParseGrade("G6")
	assert.True(t, ok)
	assert.Equal(t, G6, g)
	_, ok = ParseGrade("G7")
	assert.False(t, ok)
}

func TestLevelLoadOrder(t *testing.T) {
	assert.Equal(t, []Level{N5, N4, N3, N2, N1}, jlptLoadOrder)
	assert.Equal(t, "n5", N5.fileName())
	assert.Equal(t, "n1", N1.fileName())
}

func TestKyuLoadOrder(t *testing.T) {
	assert.Equal(t, K1, kenteiLoadOrder[len(kenteiLoadOrder)-1])
	assert.Equal(t, "kj2", KJ2.fileName())
	k, ok := ParseKyu("K3")
	assert.True(t, ok)
	assert.Equal(t, K3, k)
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "Jouyou", Jouyou.String())
	assert.Equal(t, "Ucd", UcdType.String())
}

func TestKanjiIsVariantAndEffective(t *testing.T) {
	base := &Kanji{Name: "辻", Meaning: "crossroads", Reading: "つじ"}
	variant := &Kanji{Name: "辻" + string(rune(0xFE00)), CompatibilityName: "辻", Type: LinkedOld, Link: base}
	assert.True(t, variant.IsVariant())
	assert.False(t, base.IsVariant())
	assert.Equal(t, "crossroads", variant.effectiveMeaning())
	assert.Equal(t, "つじ", variant.effectiveReading())
}
