package kana

import "sync"

// Tables is the immutable, lazily-built holder for every static Kana and
// IterationMark (§5, §9 DESIGN NOTES: "cyclic global initialization"
// replaced with a one-shot holder built by a single function).
type Tables struct {
	romaji   map[string]*Kana
	hiragana map[string]*Kana
	katakana map[string]*Kana

	smallTsu *Kana
	n        *Kana

	plainIteration    IterationMark
	accentedIteration IterationMark
}

var (
	tablesOnce sync.Once
	tables     *Tables
)

// Get returns the process-wide Tables, building them on first call.
func Get() *Tables {
	tablesOnce.Do(func() { tables = build() })
	return tables
}

// GetMap returns the lookup map for t (Hiragana, Katakana or Romaji).
func (t *Tables) GetMap(ct CharType) map[string]*Kana {
	switch ct {
	case Hiragana:
		return t.hiragana
	case Katakana:
		return t.katakana
	default:
		return t.romaji
	}
}

// SmallTsu is the sokuon っ/ッ, kept as a global reference into the table.
func (t *Tables) SmallTsu() *Kana { return t.smallTsu }

// N is ん/ン, kept as a global reference into the table.
func (t *Tables) N() *Kana { return t.n }

// PlainIterationMark and AccentedIterationMark are ゝ/ヽ and ゞ/ヾ.
func (t *Tables) PlainIterationMark() IterationMark    { return t.plainIteration }
func (t *Tables) AccentedIterationMark() IterationMark { return t.accentedIteration }

// IterationMarkFor returns the iteration mark (plain or accented) matching
// s in script t, or ok==false.
func (t *Tables) IterationMarkFor(ct CharType, s string) (mark IterationMark, accented, ok bool) {
	if t.plainIteration.matches(ct, s) {
		return t.plainIteration, false, true
	}
	if t.accentedIteration.matches(ct, s) {
		return t.accentedIteration, true, true
	}
	return IterationMark{}, false, false
}

// ResolvePrecomposed finds the dakuten/han-dakuten Kana formed by base
// (a single plain Hiragana or Katakana letter) plus a combining voiced or
// semi-voiced mark. Used by mbchar's grapheme iterator (§4.3 step 2).
func ResolvePrecomposed(base string, mark rune) (string, bool) {
	t := Get()
	k := t.hiragana[base]
	if k == nil {
		k = t.katakana[base]
	}
	if k == nil {
		return "", false
	}
	var accented *Kana
	switch mark {
	case 0x3099: // combining voiced sound mark
		accented = k.dakuten
	case 0x309A: // combining semi-voiced sound mark
		accented = k.hanDakuten
	}
	if accented == nil {
		return "", false
	}
	if _, isHiragana := t.hiragana[base]; isHiragana {
		return accented.Hiragana, true
	}
	return accented.Katakana, true
}

func mono(romaji, hiragana, katakana string) *Kana {
	return &Kana{Romaji: romaji, Hiragana: hiragana, Katakana: katakana}
}

func monoV(romaji, hiragana, katakana string, kunreiFirst bool, variants ...string) *Kana {
	k := mono(romaji, hiragana, katakana)
	if kunreiFirst && len(variants) > 0 {
		k.Kunrei = variants[0]
		variants = variants[1:]
	}
	k.Variants = variants
	return k
}

func monoHK(romaji, hiragana, katakana, hepburn, kunrei string) *Kana {
	k := mono(romaji, hiragana, katakana)
	k.Hepburn = hepburn
	k.Kunrei = kunrei
	return k
}

// dakuten links plain -> voiced and voiced -> plain.
func dakuten(plain, voiced *Kana) *Kana {
	plain.dakuten = voiced
	voiced.plain = plain
	return voiced
}

// hanDakuten links plain -> semi-voiced and semi-voiced -> plain.
func hanDakuten(plain, semiVoiced *Kana) *Kana {
	plain.hanDakuten = semiVoiced
	semiVoiced.plain = plain
	return semiVoiced
}

func build() *Tables {
	t := &Tables{
		romaji:   map[string]*Kana{},
		hiragana: map[string]*Kana{},
		katakana: map[string]*Kana{},
	}

	put := func(k *Kana) *Kana {
		t.romaji[k.Romaji] = k
		addAlt := func(alt string) {
			if alt != "" {
				if _, exists := t.romaji[alt]; !exists {
					t.romaji[alt] = k
				}
			}
		}
		addAlt(k.Hepburn)
		addAlt(k.Kunrei)
		for _, v := range k.Variants {
			addAlt(v)
		}
		t.hiragana[k.Hiragana] = k
		t.katakana[k.Katakana] = k
		return k
	}

	// --- Monographs: the 46-sound gojūon table plus obsolete wi/we. ---
	put(mono("a", "あ", "ア"))
	put(mono("i", "い", "イ"))
	put(mono("u", "う", "ウ"))
	put(mono("e", "え", "エ"))
	put(mono("o", "お", "オ"))
	ka := put(mono("ka", "か", "カ"))
	ki := put(mono("ki", "き", "キ"))
	ku := put(mono("ku", "く", "ク"))
	ke := put(mono("ke", "け", "ケ"))
	ko := put(mono("ko", "こ", "コ"))
	sa := put(mono("sa", "さ", "サ"))
	shi := put(monoV("shi", "し", "シ", true, "si"))
	su := put(mono("su", "す", "ス"))
	se := put(mono("se", "せ", "セ"))
	so := put(mono("so", "そ", "ソ"))
	ta := put(mono("ta", "た", "タ"))
	chi := put(monoV("chi", "ち", "チ", true, "ti"))
	tsu := put(monoV("tsu", "つ", "ツ", true, "tu"))
	te := put(mono("te", "て", "テ"))
	to := put(mono("to", "と", "ト"))
	na := put(mono("na", "な", "ナ"))
	ni := put(mono("ni", "に", "ニ"))
	nu := put(mono("nu", "ぬ", "ヌ"))
	ne := put(mono("ne", "ね", "ネ"))
	no := put(mono("no", "の", "ノ"))
	ha := put(mono("ha", "は", "ハ"))
	hi := put(mono("hi", "ひ", "ヒ"))
	fu := put(monoV("fu", "ふ", "フ", true, "hu"))
	he := put(mono("he", "へ", "ヘ"))
	ho := put(mono("ho", "ほ", "ホ"))
	ma := put(mono("ma", "ま", "マ"))
	mi := put(mono("mi", "み", "ミ"))
	mu := put(mono("mu", "む", "ム"))
	me := put(mono("me", "め", "メ"))
	mo := put(mono("mo", "も", "モ"))
	put(mono("ya", "や", "ヤ"))
	put(mono("yu", "ゆ", "ユ"))
	put(mono("yo", "よ", "ヨ"))
	ra := put(mono("ra", "ら", "ラ"))
	ri := put(mono("ri", "り", "リ"))
	ru := put(mono("ru", "る", "ル"))
	re := put(mono("re", "れ", "レ"))
	ro := put(mono("ro", "ろ", "ロ"))
	put(mono("wa", "わ", "ワ"))
	put(monoHK("wyi", "ゐ", "ヰ", "i", "i"))
	put(monoHK("wye", "ゑ", "ヱ", "e", "e"))
	put(monoHK("wo", "を", "ヲ", "o", "o"))
	n := put(mono("n", "ん", "ン"))
	t.n = n

	// --- Dakuten (voiced) monographs. ---
	dakuten(ka, put(mono("ga", "が", "ガ")))
	dakuten(ki, put(mono("gi", "ぎ", "ギ")))
	dakuten(ku, put(mono("gu", "ぐ", "グ")))
	dakuten(ke, put(mono("ge", "げ", "ゲ")))
	dakuten(ko, put(mono("go", "ご", "ゴ")))
	dakuten(sa, put(mono("za", "ざ", "ザ")))
	dakuten(shi, put(monoV("ji", "じ", "ジ", true, "zi")))
	dakuten(su, put(mono("zu", "ず", "ズ")))
	dakuten(se, put(mono("ze", "ぜ", "ゼ")))
	dakuten(so, put(mono("zo", "ぞ", "ゾ")))
	dakuten(ta, put(mono("da", "だ", "ダ")))
	dakuten(chi, put(monoHK("di", "ぢ", "ヂ", "ji", "zi")))
	dakuten(tsu, put(monoHK("du", "づ", "ヅ", "zu", "zu")))
	dakuten(te, put(mono("de", "で", "デ")))
	dakuten(to, put(mono("do", "ど", "ド")))
	dakuten(ha, put(mono("ba", "ば", "バ")))
	dakuten(hi, put(mono("bi", "び", "ビ")))
	dakuten(fu, put(mono("bu", "ぶ", "ブ")))
	dakuten(he, put(mono("be", "べ", "ベ")))
	dakuten(ho, put(mono("bo", "ぼ", "ボ")))

	// --- Han-dakuten (semi-voiced), h-row only. ---
	hanDakuten(ha, put(mono("pa", "ぱ", "パ")))
	hanDakuten(hi, put(mono("pi", "ぴ", "ピ")))
	hanDakuten(fu, put(mono("pu", "ぷ", "プ")))
	hanDakuten(he, put(mono("pe", "ぺ", "ペ")))
	hanDakuten(ho, put(mono("po", "ぽ", "ポ")))

	// --- Small kana. ---
	put(monoV("la", "ぁ", "ァ", false, "xa"))
	put(monoV("li", "ぃ", "ィ", false, "xi"))
	put(monoV("lu", "ぅ", "ゥ", false, "xu"))
	put(monoV("le", "ぇ", "ェ", false, "xe"))
	put(monoV("lo", "ぉ", "ォ", false, "xo"))
	put(monoV("lya", "ゃ", "ャ", false, "xya"))
	put(monoV("lyu", "ゅ", "ュ", false, "xyu"))
	put(monoV("lyo", "ょ", "ョ", false, "xyo"))
	put(monoV("lwa", "ゎ", "ヮ", false, "xwa"))
	t.smallTsu = put(monoV("ltu", "っ", "ッ", false, "xtu"))

	// --- Y-row digraphs (consonant + small y-kana), each its own entry. ---
	type digraphSpec struct {
		romaji, hira, kata string
		kunrei             string // "" when romaji is already both
	}
	putDigraphs := func(specs []digraphSpec) {
		for _, s := range specs {
			k := mono(s.romaji, s.hira, s.kata)
			if s.kunrei != "" {
				k.Kunrei = s.kunrei
			}
			put(k)
		}
	}

	putDigraphs([]digraphSpec{
		{"kya", "きゃ", "キャ", ""}, {"kyu", "きゅ", "キュ", ""}, {"kyo", "きょ", "キョ", ""},
		{"sha", "しゃ", "シャ", "sya"}, {"shu", "しゅ", "シュ", "syu"}, {"sho", "しょ", "ショ", "syo"},
		{"cha", "ちゃ", "チャ", "tya"}, {"chu", "ちゅ", "チュ", "tyu"}, {"cho", "ちょ", "チョ", "tyo"},
		{"nya", "にゃ", "ニャ", ""}, {"nyu", "にゅ", "ニュ", ""}, {"nyo", "にょ", "ニョ", ""},
		{"hya", "ひゃ", "ヒャ", ""}, {"hyu", "ひゅ", "ヒュ", ""}, {"hyo", "ひょ", "ヒョ", ""},
		{"mya", "みゃ", "ミャ", ""}, {"myu", "みゅ", "ミュ", ""}, {"myo", "みょ", "ミョ", ""},
		{"rya", "りゃ", "リャ", ""}, {"ryu", "りゅ", "リュ", ""}, {"ryo", "りょ", "リョ", ""},
	})
	putDigraphs([]digraphSpec{
		{"gya", "ぎゃ", "ギャ", ""}, {"gyu", "ぎゅ", "ギュ", ""}, {"gyo", "ぎょ", "ギョ", ""},
		{"ja", "じゃ", "ジャ", "zya"}, {"ju", "じゅ", "ジュ", "zyu"}, {"jo", "じょ", "ジョ", "zyo"},
		{"bya", "びゃ", "ビャ", ""}, {"byu", "びゅ", "ビュ", ""}, {"byo", "びょ", "ビョ", ""},
		{"pya", "ぴゃ", "ピャ", ""}, {"pyu", "ぴゅ", "ピュ", ""}, {"pyo", "ぴょ", "ピョ", ""},
	})

	// --- Iteration marks (ゝ/ヽ plain, ゞ/ヾ accented). ---
	t.plainIteration = IterationMark{Hiragana: "ゝ", Katakana: "ヽ", Accented: false}
	t.accentedIteration = IterationMark{Hiragana: "ゞ", Katakana: "ヾ", Accented: true}

	return t
}
