package unicodeblock

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsHiraganaKatakanaKanji(t *testing.T) {
	assert.True(t, IsHiragana('あ'))
	assert.False(t, IsHiragana('ア'))
	assert.True(t, IsKatakana('ア'))
	assert.True(t, IsKana('あ'))
	assert.True(t, IsKana('ア'))
	assert.True(t, IsKanji('漢'))
	assert.False(t, IsKanji('あ'))
}

func TestInWCharRangeSingle(t *testing.T) {
	assert.True(t, InWCharRange("漢", true, KanjiBlocks))
	assert.False(t, InWCharRange("A", true, KanjiBlocks))
}

func TestInWCharRangeWithVariationSelector(t *testing.T) {
	s := "辻" + string(rune(0xFE00))
	assert.True(t, InWCharRange(s, true, KanjiBlocks))
}

func TestIsMBPunctuation(t *testing.T) {
	assert.True(t, IsMBPunctuation("　", false))
	assert.False(t, IsMBPunctuation("A", false))
	assert.True(t, IsMBPunctuation(" ", true))
	assert.False(t, IsMBPunctuation(" ", false))
}

func TestInRangeShortCircuit(t *testing.T) {
	blocks := []Block{{Start: 100, End: 200}, {Start: 300, End: 400}}
	assert.False(t, InRange(50, blocks))
	assert.True(t, InRange(150, blocks))
	assert.True(t, InRange(350, blocks))
	assert.False(t, InRange(250, blocks))
}
