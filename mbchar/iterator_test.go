package mbchar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIteratorSkipsAsciiInMBOnlyMode(t *testing.T) {
	it := New("a漢b", MBOnly)
	all := it.All()
	require.Len(t, all, 1)
	assert.Equal(t, "漢", all[0].Bytes)
}

func TestIteratorIncludesSingleByte(t *testing.T) {
	it := New("aき", IncludeSingleByte)
	all := it.All()
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].Bytes)
	assert.Equal(t, "き", all[1].Bytes)
}

func TestIteratorFoldsVariationSelector(t *testing.T) {
	s := "辻" + string(rune(0xFE00))
	it := New(s, IncludeSingleByte)
	all := it.All()
	require.Len(t, all, 1)
	assert.True(t, all[0].IsVariant)
	assert.Equal(t, s, all[0].Bytes)
	assert.Equal(t, 1, it.Variants())
}

func TestIteratorFoldsCombiningVoicedMark(t *testing.T) {
	s := "か" + string(rune(0x3099))
	it := New(s, IncludeSingleByte)
	all := it.All()
	require.Len(t, all, 1)
	assert.True(t, all[0].IsCombining)
	assert.Equal(t, "が", all[0].Resolved)
	assert.Equal(t, 1, it.CombiningMarks())
}

func TestIteratorResetClearsCounters(t *testing.T) {
	s := "辻" + string(rune(0xFE00))
	it := New(s, IncludeSingleByte)
	it.All()
	assert.Equal(t, 1, it.Variants())
	it.Reset()
	assert.Equal(t, 0, it.Variants())
	assert.Equal(t, 0, it.Errors())
}

func TestIteratorCountsDecodeErrors(t *testing.T) {
	it := New(string([]byte{0xFF, 'a'}), IncludeSingleByte)
	all := it.All()
	require.Len(t, all, 1)
	assert.Equal(t, "a", all[0].Bytes)
	assert.Equal(t, 1, it.Errors())
}
