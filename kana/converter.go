package kana

import (
	"strings"

	"kanjitools/utf8"
)

// groupState tracks what kind of kana the in-progress group currently
// holds while converting Hiragana/Katakana source text (§4.8.1).
type groupState int

const (
	stateNew groupState = iota
	stateSmallTsu
	stateDone
)

// narrowDelimiters maps wide Japanese punctuation to its narrow Romaji
// equivalent, used only when the target script is Romaji (§4.8.1 step 4).
var narrowDelimiters = map[string]string{
	"　": " ",
	"、": ",",
	"。": ".",
	"！": "!",
	"？": "?",
	"…": "...",
}

var macronVowels = map[rune]rune{
	'ā': 'a', 'ī': 'i', 'ū': 'u', 'ē': 'e', 'ō': 'o',
}

var plainVowelKana = map[rune]string{'a': "あ", 'i': "い", 'u': "う", 'e': "え", 'o': "お"}

// isRepeatingConsonant accepts every lowercase ASCII letter except the 8
// non-repeaters (a i u e o l n x); it is used to decide whether a small-tsu/sokuon can double
// the following consonant (§4.8.2).
func isRepeatingConsonant(c byte) bool {
	if c < 'a' || c > 'z' {
		return false
	}
	switch c {
	case 'a', 'i', 'u', 'e', 'o', 'l', 'n', 'x':
		return false
	}
	return true
}

// Convert transliterates s from source to target using flags (§4.8).
func Convert(s string, source, target CharType, flags Flag) string {
	if source == target {
		return s
	}
	if source == Romaji {
		return convertFromRomaji(s, target, flags)
	}
	return convertFromKana(s, source, target, flags)
}

// --- §4.8.1: Kana -> Kana or Kana -> Romaji ---

type kanaConverterState struct {
	tables   *Tables
	srcMap   map[string]*Kana
	source   CharType
	target   CharType
	flags    Flag
	result   []string
	group    strings.Builder
	prevKana *Kana
	state    groupState
	pendingN bool
}

func convertFromKana(s string, source, target CharType, flags Flag) string {
	st := &kanaConverterState{
		tables: Get(),
		source: source,
		target: target,
		flags:  flags,
	}
	st.srcMap = st.tables.GetMap(source)

	for i := 0; i < len(s); {
		res := utf8.DecodeRune([]byte(s)[i:])
		size := res.Size
		if size <= 0 {
			size = 1
		}
		c := s[i : i+size]
		i += size
		st.step(c)
	}
	st.flush()
	return strings.Join(st.result, "")
}

func (st *kanaConverterState) emit(token string) {
	if st.pendingN && st.target == Romaji {
		if r := []rune(token); len(r) > 0 {
			first := r[0]
			if isVowel(first) || st.startsYKana(token) {
				token = "'" + token
			}
		}
	}
	st.pendingN = false
	st.result = append(st.result, token)
	if token == "n" && st.target == Romaji {
		st.pendingN = true
	}
}

func (st *kanaConverterState) startsYKana(romaji string) bool {
	return strings.HasPrefix(romaji, "y")
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'i', 'u', 'e', 'o':
		return true
	}
	return false
}

func (st *kanaConverterState) commit(k *Kana) {
	st.emit(k.get(st.target, st.flags))
	st.prevKana = k
}

func (st *kanaConverterState) commitRaw(s string) {
	st.emit(s)
}

func (st *kanaConverterState) step(c string) {
	if c == ProlongMark {
		st.flush()
		st.applyProlong()
		return
	}
	if mark, accented, ok := st.tables.IterationMarkFor(st.source, c); ok {
		st.flush()
		st.applyIterationMark(mark, accented)
		return
	}
	if _, ok := st.srcMap[c]; ok {
		st.extendGroup(c)
		return
	}
	st.flush()
	if st.target == Romaji {
		if narrow, ok := narrowDelimiters[c]; ok {
			st.commitRaw(narrow)
			return
		}
	}
	st.commitRaw(c)
}

func (st *kanaConverterState) applyProlong() {
	if st.prevKana == nil {
		st.commitRaw(ProlongMark)
		return
	}
	if st.target != Romaji {
		st.commitRaw(ProlongMark)
		return
	}
	// Replace the trailing vowel of the last emitted romaji token with its
	// macron form, rather than appending a literal prolong mark.
	if len(st.result) == 0 {
		st.commitRaw(ProlongMark)
		return
	}
	last := st.result[len(st.result)-1]
	if last == "" {
		st.commitRaw(ProlongMark)
		return
	}
	lastRune := []rune(last)
	tail := lastRune[len(lastRune)-1]
	macron, ok := macronFor(tail)
	if !ok {
		st.commitRaw(ProlongMark)
		return
	}
	lastRune[len(lastRune)-1] = macron
	st.result[len(st.result)-1] = string(lastRune)
}

func macronFor(vowel rune) (rune, bool) {
	switch vowel {
	case 'a':
		return 'ā', true
	case 'i':
		return 'ī', true
	case 'u':
		return 'ū', true
	case 'e':
		return 'ē', true
	case 'o':
		return 'ō', true
	}
	return 0, false
}

func (st *kanaConverterState) applyIterationMark(mark IterationMark, accented bool) {
	if st.prevKana == nil {
		// No preceding kana to repeat; pass through unchanged.
		st.commitRaw(mark.get(st.source))
		return
	}
	if !accented {
		st.emit(st.prevKana.get(st.target, st.flags))
		return
	}
	accentedKana := st.prevKana.dakuten
	if accentedKana == nil {
		accentedKana = st.prevKana.hanDakuten
	}
	if accentedKana == nil {
		// No voiced form exists; fall back to the plain repetition.
		st.emit(st.prevKana.get(st.target, st.flags))
		return
	}
	st.emit(accentedKana.get(st.target, st.flags))
	st.prevKana = accentedKana
}

func (m IterationMark) get(ct CharType) string {
	if ct == Katakana {
		return m.Katakana
	}
	return m.Hiragana
}

// extendGroup implements §4.8.1 step 3's grouping rules.
func (st *kanaConverterState) extendGroup(c string) {
	smallTsuRepr := st.tables.smallTsu.get(st.source, st.flags)
	nRepr := st.tables.n.get(st.source, st.flags)

	if c == smallTsuRepr && st.group.Len() == 0 {
		st.group.WriteString(c)
		st.state = stateSmallTsu
		return
	}
	if c == nRepr {
		st.flush()
		st.group.WriteString(c)
		st.state = stateDone
		return
	}
	if st.state == stateDone {
		st.flush()
		st.group.WriteString(c)
		st.state = stateNew
		return
	}
	if st.canFormDigraph(c) {
		st.group.WriteString(c)
		st.state = stateDone
		return
	}
	if st.groupHoldsNormalKana() {
		st.flush()
		st.group.WriteString(c)
		st.state = stateNew
		return
	}
	st.group.WriteString(c)
}

// canFormDigraph reports whether c (a small vowel/y-kana/small-wa) combines
// with the kana currently trailing the group into a registered Digraph.
func (st *kanaConverterState) canFormDigraph(c string) bool {
	g := st.group.String()
	if len(g) < 3 {
		return false
	}
	trailing := g[len(g)-3:]
	_, ok := st.srcMap[trailing+c]
	return ok
}

func (st *kanaConverterState) groupHoldsNormalKana() bool {
	g := st.group.String()
	smallTsuRepr := st.tables.smallTsu.get(st.source, st.flags)
	if g == "" {
		return false
	}
	if g == smallTsuRepr {
		return false
	}
	if len(g) == 3 {
		return true
	}
	// group is smallTsu + something: that something is a normal kana.
	return strings.HasPrefix(g, smallTsuRepr)
}

func (st *kanaConverterState) flush() {
	if st.group.Len() == 0 {
		return
	}
	gs := st.group.String()
	defer st.group.Reset()

	if k, ok := st.srcMap[gs]; ok {
		st.commit(k)
		return
	}

	smallTsuRepr := st.tables.smallTsu.get(st.source, st.flags)
	if strings.HasPrefix(gs, smallTsuRepr) && len(gs) > len(smallTsuRepr) {
		remainder := gs[len(smallTsuRepr):]
		if remK, ok := st.srcMap[remainder]; ok {
			st.flushSokuon(remK)
			return
		}
		// Fallback: commit the small-tsu literally, then the remainder.
		st.commit(st.tables.smallTsu)
		if remK, ok := st.srcMap[remainder]; ok {
			st.commit(remK)
		} else {
			st.commitRaw(remainder)
		}
		return
	}

	st.commitRaw(gs)
}

func (st *kanaConverterState) flushSokuon(remK *Kana) {
	if st.target != Romaji {
		st.emit(st.tables.smallTsu.get(st.target, st.flags) + remK.get(st.target, st.flags))
		st.prevKana = remK
		return
	}
	romaji := remK.romajiFor(st.flags)
	consonant := romaji[0]
	if !isRepeatingConsonant(consonant) {
		st.commit(st.tables.smallTsu)
		st.commit(remK)
		return
	}
	doubled := string(consonant)
	if consonant == 'c' {
		doubled = "t"
	}
	st.emit(doubled + romaji)
	st.prevKana = remK
}

// --- §4.8.2: Romaji -> Kana ---

// narrowWordDelimiters splits Romaji input into words (§4.8.2). Space,
// apostrophe and dash are handled specially in the scan loop below; the
// rest just pass through unchanged once any pending letters are flushed.
const narrowWordDelimiters = " !\"#$%&()*+,-./:;<=>?@[\\]^_`{|}~'"

func isDelimiter(b byte) bool {
	return strings.IndexByte(narrowWordDelimiters, b) >= 0
}

type romajiConverterState struct {
	tables   *Tables
	romajiMp map[string]*Kana
	target   CharType
	flags    Flag
	result   strings.Builder
	letters  string
}

func convertFromRomaji(s string, target CharType, flags Flag) string {
	st := &romajiConverterState{
		tables:   Get(),
		target:   target,
		flags:    flags,
		romajiMp: Get().romaji,
	}

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r < 0x80 {
			b := byte(r)
			if isDelimiter(b) {
				st.flushWord()
				st.emitDelimiter(b)
				continue
			}
			if r >= 'A' && r <= 'Z' {
				r += 'a' - 'A'
			}
			if r < 'a' || r > 'z' {
				st.flushWord()
				st.result.WriteRune(r)
				continue
			}
			st.appendLetter(byte(r))
			continue
		}
		if plain, ok := macronVowels[r]; ok {
			st.appendLetter(byte(plain))
			st.appendProlong(byte(plain))
			continue
		}
		st.flushWord()
		st.result.WriteRune(r)
	}
	st.flushWord()
	return st.result.String()
}

func (st *romajiConverterState) emitDelimiter(b byte) {
	switch b {
	case ' ':
		if !st.flags.Has(RemoveSpaces) {
			st.result.WriteString("　")
		}
	case '\'', '-':
		// consumed silently, no output
	default:
		st.result.WriteByte(b)
	}
}

// appendLetter appends c to the accumulating letters buffer, attempting a
// longest-match lookup (or the 3-letter correction rules) after every
// append, per §4.8.2.
func (st *romajiConverterState) appendLetter(c byte) {
	st.letters += string(c)

	if st.letters == "n" {
		// Wait for the next letter: "na", "ni", ... "nya" all start with
		// n, and a lone n may also be followed by a second n.
		return
	}
	if len(st.letters) == 2 && st.letters[0] == 'n' && st.letters[1] == 'n' {
		st.commitKana(st.tables.n)
		st.letters = "n"
		return
	}
	if k, ok := st.romajiMp[st.letters]; ok {
		st.commitKana(k)
		st.letters = ""
		return
	}
	if len(st.letters) >= 3 {
		st.correctLetters()
	}
}

// correctLetters applies §4.8.2's repeating-consonant and leading-n
// correction rules once 3 unmatched letters have accumulated.
func (st *romajiConverterState) correctLetters() {
	if st.letters[0] == 'n' {
		st.commitKana(st.tables.n)
		st.letters = st.letters[1:]
		if k, ok := st.romajiMp[st.letters]; ok {
			st.commitKana(k)
			st.letters = ""
		}
		return
	}
	if isRepeatingConsonant(st.letters[0]) &&
		(st.letters[0] == st.letters[1] || (st.letters[0] == 't' && st.letters[1] == 'c')) {
		st.commitKana(st.tables.smallTsu)
		st.letters = st.letters[1:]
		if k, ok := st.romajiMp[st.letters]; ok {
			st.commitKana(k)
			st.letters = ""
		}
		return
	}
	// No correction applies: the leading letter cannot start a kana on
	// its own; emit it unconverted and keep scanning with the rest.
	st.result.WriteByte(st.letters[0])
	st.letters = st.letters[1:]
}

func (st *romajiConverterState) commitKana(k *Kana) {
	st.result.WriteString(k.get(st.target, st.flags))
}

// appendProlong appends the prolong mark (or, for a Hiragana target with
// NoProlongMark set, the plain vowel kana) after vowel has been processed
// through the normal letter-accumulation logic above.
func (st *romajiConverterState) appendProlong(vowel byte) {
	if st.target == Hiragana && st.flags.Has(NoProlongMark) {
		if kanaStr, ok := plainVowelKana[rune(vowel)]; ok {
			st.result.WriteString(kanaStr)
			return
		}
	}
	st.result.WriteString(ProlongMark)
}

func (st *romajiConverterState) flushWord() {
	if st.letters == "" {
		return
	}
	if st.letters == "n" {
		st.commitKana(st.tables.n)
		st.letters = ""
		return
	}
	if k, ok := st.romajiMp[st.letters]; ok {
		st.commitKana(k)
		st.letters = ""
		return
	}
	for len(st.letters) >= 3 {
		before := st.letters
		st.correctLetters()
		if st.letters == before {
			break
		}
	}
	if st.letters != "" {
		st.result.WriteString(st.letters)
		st.letters = ""
	}
}

