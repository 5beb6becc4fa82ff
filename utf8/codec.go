// Package utf8 implements a validating UTF-8 decoder/encoder operating one
// code point at a time (§4.1). Unlike the standard library's unicode/utf8,
// invalid input is not just reported: the decoder recovers by emitting the
// Unicode replacement character and resuming at the next plausible boundary,
// matching the "never fail, always produce something displayable" contract
// kanjitools needs when scanning arbitrary Japanese-adjacent text.
package utf8

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"kanjitools/kerrors"
)

// Code is a Unicode scalar value in [0, 0x10FFFF] excluding surrogates.
type Code = rune

const (
	// ReplacementChar is emitted in place of any code point the decoder
	// could not make sense of.
	ReplacementChar Code = 0xFFFD

	maxCode   Code = 0x10FFFF
	surLow    Code = 0xD800
	surHigh   Code = 0xDFFF
)

// DecodeResult is the outcome of decoding a single code point from the head
// of a byte slice.
type DecodeResult struct {
	Code  Code
	Size  int  // bytes consumed; 0 only when the input is empty
	Valid bool // false when Code == ReplacementChar because of an error
	Kind  kerrors.Utf8ErrorKind
}

// DecodeRune decodes one code point from the head of s. It never returns an
// error value: on invalid input it returns a DecodeResult with
// Code==ReplacementChar, Valid==false and the specific failure Kind, along
// with the number of bytes the caller should skip before trying again.
func DecodeRune(s []byte) DecodeResult {
	if len(s) == 0 {
		return DecodeResult{Code: ReplacementChar, Size: 0, Valid: false, Kind: kerrors.MissingBytes}
	}

	b0 := s[0]
	switch {
	case b0&0x80 == 0x00: // 0xxxxxxx
		return DecodeResult{Code: Code(b0), Size: 1, Valid: true}
	case b0&0xE0 == 0xC0: // 110xxxxx
		return decodeMulti(s, 2, Code(b0&0x1F), 0x80)
	case b0&0xF0 == 0xE0: // 1110xxxx
		return decodeMulti(s, 3, Code(b0&0x0F), 0x800)
	case b0&0xF8 == 0xF0: // 11110xxx
		return decodeMulti(s, 4, Code(b0&0x07), 0x10000)
	case b0&0xC0 == 0x80: // 10xxxxxx - stray continuation byte
		return DecodeResult{Code: ReplacementChar, Size: 1, Valid: false, Kind: kerrors.ContinuationByte}
	default: // 11111xxx - too long to be valid UTF-8
		return DecodeResult{Code: ReplacementChar, Size: 1, Valid: false, Kind: kerrors.CharTooLong}
	}
}

func decodeMulti(s []byte, length int, lead Code, minimum Code) DecodeResult {
	if len(s) < length {
		return DecodeResult{Code: ReplacementChar, Size: len(s), Valid: false, Kind: kerrors.MissingBytes}
	}
	code := lead
	for i := 1; i < length; i++ {
		b := s[i]
		if b&0xC0 != 0x80 {
			// Skip only the bytes that would have belonged to this
			// sequence, not the non-continuation byte itself.
			return DecodeResult{Code: ReplacementChar, Size: i, Valid: false, Kind: kerrors.ContinuationByte}
		}
		code = code<<6 | Code(b&0x3F)
	}
	if code < minimum {
		return DecodeResult{Code: ReplacementChar, Size: length, Valid: false, Kind: kerrors.Overlong}
	}
	if (code >= surLow && code <= surHigh) || code > maxCode {
		return DecodeResult{Code: ReplacementChar, Size: length, Valid: false, Kind: kerrors.InvalidCodePoint}
	}
	return DecodeResult{Code: code, Size: length, Valid: true}
}

// FromUtf8 decodes s into a sequence of code points. maxCodes, when > 0,
// stops decoding once that many code points have been produced.
func FromUtf8(s string, maxCodes int) []Code {
	b := []byte(s)
	var out []Code
	for i := 0; i < len(b); {
		if maxCodes > 0 && len(out) >= maxCodes {
			break
		}
		res := DecodeRune(b[i:])
		out = append(out, res.Code)
		if res.Size <= 0 {
			i++
		} else {
			i += res.Size
		}
	}
	return out
}

// EncodeRune writes the canonical minimum-length UTF-8 encoding of c,
// substituting ReplacementChar for surrogate or out-of-range values.
func EncodeRune(c Code) []byte {
	if (c >= surLow && c <= surHigh) || c > maxCode || c < 0 {
		c = ReplacementChar
	}
	switch {
	case c < 0x80:
		return []byte{byte(c)}
	case c < 0x800:
		return []byte{
			byte(0xC0 | c>>6),
			byte(0x80 | c&0x3F),
		}
	case c < 0x10000:
		return []byte{
			byte(0xE0 | c>>12),
			byte(0x80 | (c>>6)&0x3F),
			byte(0x80 | c&0x3F),
		}
	default:
		return []byte{
			byte(0xF0 | c>>18),
			byte(0x80 | (c>>12)&0x3F),
			byte(0x80 | (c>>6)&0x3F),
			byte(0x80 | c&0x3F),
		}
	}
}

// ToUtf8 encodes a single code point as a UTF-8 string.
func ToUtf8(c Code) string {
	return string(EncodeRune(c))
}

// ToUtf8String re-encodes a sequence of code points back into a UTF-8
// string, the inverse of FromUtf8 for valid input (testable property 2).
func ToUtf8String(codes []Code) string {
	var sb strings.Builder
	for _, c := range codes {
		sb.Write(EncodeRune(c))
	}
	return sb.String()
}

// ToHex renders a code point as uppercase hex, zero padded to at least 4
// digits, optionally wrapped in brackets (e.g. "[4E00]").
func ToHex(c Code, brackets bool) string {
	h := fmt.Sprintf("%04X", c)
	if brackets {
		return "[" + h + "]"
	}
	return h
}

// ToBinary renders a code point in base-2, useful when explaining how the
// decoder classified a leading byte.
func ToBinary(c Code) string {
	return strconv.FormatInt(int64(c), 2)
}

// DisplayWidth returns how many terminal columns c occupies, per
// go-runewidth's East Asian Width handling - most kanji and kana report 2.
func DisplayWidth(c Code) int {
	return runewidth.RuneWidth(c)
}

// DisplayWidthString sums DisplayWidth over every code point in s, for
// aligning columns of mixed Japanese/ASCII text.
func DisplayWidthString(s string) int {
	return runewidth.StringWidth(s)
}

// ParseCodeArg parses a CLI "u" argument: a case-insensitive 4 or 5 digit
// hex string, optionally prefixed with "U+" or "u", into a Code.
func ParseCodeArg(arg string) (Code, error) {
	s := strings.TrimPrefix(strings.TrimPrefix(arg, "U+"), "u")
	s = strings.TrimPrefix(s, "U+")
	if len(s) != 4 && len(s) != 5 {
		return 0, fmt.Errorf("expected 4 or 5 hex digits, got %q", arg)
	}
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return 0, fmt.Errorf("invalid hex digit %q in %q", r, arg)
		}
	}
	v, err := strconv.ParseInt(s, 16, 32)
	if err != nil {
		return 0, err
	}
	return Code(v), nil
}
