package utf8

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kanjitools/kerrors"
)

func TestRoundTripAllCodePoints(t *testing.T) {
	// Property 1/2: encode/decode round-trips for a representative sample
	// spanning every encoded length, including the Japanese script ranges.
	samples := []Code{0x00, 0x41, 0x7F, 0x80, 0x7FF, 0x800, 0x3042, 0xFFFF, 0x10000, 0x10FFFF}
	for _, c := range samples {
		s := ToUtf8(c)
		got := FromUtf8(s, 0)
		require.Len(t, got, 1)
		assert.Equal(t, c, got[0])
		assert.Equal(t, s, ToUtf8String(got))
	}
}

func TestDecodeSurrogateIsReplacementChar(t *testing.T) {
	// A surrogate encoded via the canonical 3-byte form (CESU-8 style).
	s := []byte{0xED, 0xA0, 0x80} // would decode to 0xD800 if allowed
	res := DecodeRune(s)
	assert.False(t, res.Valid)
	assert.Equal(t, kerrors.InvalidCodePoint, res.Kind)
	assert.Equal(t, ReplacementChar, res.Code)
}

func TestDecodeOverlong(t *testing.T) {
	// Overlong 2-byte encoding of NUL (0xC0 0x80).
	res := DecodeRune([]byte{0xC0, 0x80})
	assert.False(t, res.Valid)
	assert.Equal(t, kerrors.Overlong, res.Kind)
}

func TestDecodeTooLong(t *testing.T) {
	res := DecodeRune([]byte{0xF8, 0x80, 0x80, 0x80, 0x80})
	assert.False(t, res.Valid)
	assert.Equal(t, kerrors.CharTooLong, res.Kind)
	assert.Equal(t, 1, res.Size)
}

func TestDecodeMissingBytes(t *testing.T) {
	res := DecodeRune([]byte{0xE3, 0x81})
	assert.False(t, res.Valid)
	assert.Equal(t, kerrors.MissingBytes, res.Kind)
}

func TestDecodeStrayContinuation(t *testing.T) {
	res := DecodeRune([]byte{0x80})
	assert.False(t, res.Valid)
	assert.Equal(t, kerrors.ContinuationByte, res.Kind)
}

func TestDecodeBadContinuation(t *testing.T) {
	// Leading byte announces 3-byte sequence, second byte isn't 10xxxxxx.
	res := DecodeRune([]byte{0xE3, 0x41, 0x81})
	assert.False(t, res.Valid)
	assert.Equal(t, kerrors.ContinuationByte, res.Kind)
	assert.Equal(t, 1, res.Size) // skip only the offending lead byte
}

func TestFromUtf8MaxCodes(t *testing.T) {
	got := FromUtf8("日本語です", 2)
	assert.Len(t, got, 2)
	assert.Equal(t, []Code{'日', '本'}, got)
}

func TestParseCodeArg(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Code
	}{
		{"4e00", 0x4E00},
		{"4E00", 0x4E00},
		{"u4e00", 0x4E00},
		{"U+4E00", 0x4E00},
		{"2f800", 0x2F800},
	} {
		got, err := ParseCodeArg(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	_, err := ParseCodeArg("xyz")
	assert.Error(t, err)
}

func TestToHexBrackets(t *testing.T) {
	assert.Equal(t, "4E00", ToHex(0x4E00, false))
	assert.Equal(t, "[4E00]", ToHex(0x4E00, true))
}

func TestDisplayWidth(t *testing.T) {
	assert.Equal(t, 1, DisplayWidth('A'))
	assert.Equal(t, 2, DisplayWidth(0x4E00)) // 一
	assert.Equal(t, 3, DisplayWidthString("a一"))
}
