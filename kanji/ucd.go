package kanji

import (
	"strconv"
	"strings"

	"kanjitools/columnfile"
	"kanjitools/kerrors"
)

// Link is one (code, name) pair in a Ucd row's LinkCodes/LinkNames columns.
type Link struct {
	Code rune
	Name string
}

// Ucd is one row of ucd.txt (§3.2).
type Ucd struct {
	Code           rune
	Name           string
	Block          string
	Version        string
	Radical        uint8
	Strokes        uint8
	VStrokes       *uint8
	Pinyin         string
	MorohashiID    string // numeric, optionally followed by a 'P' suffix
	NelsonIDs      []int
	Sources        string
	JSource        string
	Joyo           bool
	Jinmei         bool
	Links          []Link
	LinkType       string
	LinkedReadings bool // LinkType ends with '*'
	Meaning        string
	On             string
	Kun            string
}

// HasReading reports whether the Ucd entry has an On or Kun reading.
func (u *Ucd) HasReading() bool { return u.On != "" || u.Kun != "" }

// UcdTable is the primary-key store for ucd.txt plus its two auxiliary
// link indexes (§3.2, §4.5).
type UcdTable struct {
	byName       map[string]*Ucd
	linkedJinmei map[string]string   // nonVariantName -> variant name, one-to-one
	linkedOther  map[string][]string // nonVariantName -> variant names, one-to-many
}

const (
	ucdCode = iota
	ucdName
	ucdBlock
	ucdVersion
	ucdRadical
	ucdStrokes
	ucdVStrokes
	ucdPinyin
	ucdMorohashiID
	ucdNelsonIDs
	ucdSources
	ucdJSource
	ucdJoyo
	ucdJinmei
	ucdLinkCodes
	ucdLinkNames
	ucdLinkType
	ucdMeaning
	ucdOn
	ucdKun
)

var ucdColumns = []columnfile.Column{
	{ID: ucdCode, Name: "Code"},
	{ID: ucdName, Name: "Name"},
	{ID: ucdBlock, Name: "Block"},
	{ID: ucdVersion, Name: "Version"},
	{ID: ucdRadical, Name: "Radical"},
	{ID: ucdStrokes, Name: "Strokes"},
	{ID: ucdVStrokes, Name: "VStrokes"},
	{ID: ucdPinyin, Name: "Pinyin"},
	{ID: ucdMorohashiID, Name: "MorohashiId"},
	{ID: ucdNelsonIDs, Name: "NelsonIds"},
	{ID: ucdSources, Name: "Sources"},
	{ID: ucdJSource, Name: "JSource"},
	{ID: ucdJoyo, Name: "Joyo"},
	{ID: ucdJinmei, Name: "Jinmei"},
	{ID: ucdLinkCodes, Name: "LinkCodes"},
	{ID: ucdLinkNames, Name: "LinkNames"},
	{ID: ucdLinkType, Name: "LinkType"},
	{ID: ucdMeaning, Name: "Meaning"},
	{ID: ucdOn, Name: "On"},
	{ID: ucdKun, Name: "Kun"},
}

// LoadUcdTable reads ucd.txt per §4.5.
func LoadUcdTable(path string) (*UcdTable, []error) {
	cf, err := columnfile.Open(path, ucdColumns, '\t')
	if err != nil {
		return nil, []error{err}
	}

	t := &UcdTable{
		byName:       map[string]*Ucd{},
		linkedJinmei: map[string]string{},
		linkedOther:  map[string][]string{},
	}
	var errs []error

	for cf.NextRow() {
		u, err := parseUcdRow(cf)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := u.validate(); err != nil {
			errs = append(errs, kerrors.NewCatalogInvariantError(u.Name, err.Error()))
			continue
		}
		if _, exists := t.byName[u.Name]; exists {
			errs = append(errs, kerrors.NewCatalogInvariantError(u.Name, "duplicate Ucd name"))
			continue
		}
		t.byName[u.Name] = u

		if u.Jinmei && len(u.Links) > 0 {
			for _, l := range u.Links {
				if _, exists := t.linkedJinmei[l.Name]; exists {
					errs = append(errs, kerrors.NewCatalogInvariantError(u.Name, "duplicate linkedJinmei target "+l.Name))
					continue
				}
				t.linkedJinmei[l.Name] = u.Name
			}
		} else if len(u.Links) > 0 {
			for _, l := range u.Links {
				t.linkedOther[l.Name] = append(t.linkedOther[l.Name], u.Name)
			}
		}
	}
	if err := cf.Err(); err != nil {
		errs = append(errs, err)
	}
	return t, errs
}

func parseUcdRow(cf *columnfile.ColumnFile) (*Ucd, error) {
	u := &Ucd{}
	var err error
	if u.Code, err = cf.GetCode(ucdCode); err != nil {
		return nil, err
	}
	if u.Name, err = cf.Get(ucdName); err != nil {
		return nil, err
	}
	if u.Block, err = cf.Get(ucdBlock); err != nil {
		return nil, err
	}
	if u.Version, err = cf.Get(ucdVersion); err != nil {
		return nil, err
	}
	if u.Radical, err = cf.GetU8(ucdRadical); err != nil {
		return nil, err
	}
	if u.Strokes, err = cf.GetU8(ucdStrokes); err != nil {
		return nil, err
	}
	if u.VStrokes, err = cf.GetOptU8(ucdVStrokes); err != nil {
		return nil, err
	}
	if u.Pinyin, err = cf.Get(ucdPinyin); err != nil {
		return nil, err
	}
	if u.MorohashiID, err = cf.Get(ucdMorohashiID); err != nil {
		return nil, err
	}
	nelson, err := cf.Get(ucdNelsonIDs)
	if err != nil {
		return nil, err
	}
	if nelson != "" {
		for _, s := range strings.Split(nelson, ",") {
			n, convErr := strconv.Atoi(strings.TrimSpace(s))
			if convErr != nil {
				return nil, kerrors.NewDataFileError("ucd.txt", cf.CurrentRow(), "NelsonIds", nelson, "not a comma list of integers")
			}
			u.NelsonIDs = append(u.NelsonIDs, n)
		}
	}
	if u.Sources, err = cf.Get(ucdSources); err != nil {
		return nil, err
	}
	if u.JSource, err = cf.Get(ucdJSource); err != nil {
		return nil, err
	}
	if u.Joyo, err = cf.GetBool(ucdJoyo); err != nil {
		return nil, err
	}
	if u.Jinmei, err = cf.GetBool(ucdJinmei); err != nil {
		return nil, err
	}
	linkCodes, err := cf.Get(ucdLinkCodes)
	if err != nil {
		return nil, err
	}
	linkNames, err := cf.Get(ucdLinkNames)
	if err != nil {
		return nil, err
	}
	if u.LinkType, err = cf.Get(ucdLinkType); err != nil {
		return nil, err
	}
	u.LinkedReadings = strings.HasSuffix(u.LinkType, "*")
	if linkCodes != "" || linkNames != "" {
		codes := strings.Split(linkCodes, ",")
		names := strings.Split(linkNames, ",")
		if len(codes) != len(names) {
			return nil, kerrors.NewDataFileError("ucd.txt", cf.CurrentRow(), "LinkCodes/LinkNames", linkCodes, "mismatched link count")
		}
		for i := range codes {
			code, convErr := strconv.ParseUint(codes[i], 16, 32)
			if convErr != nil {
				return nil, kerrors.NewDataFileError("ucd.txt", cf.CurrentRow(), "LinkCodes", codes[i], "not hex")
			}
			u.Links = append(u.Links, Link{Code: rune(code), Name: names[i]})
		}
	}
	if u.Meaning, err = cf.Get(ucdMeaning); err != nil {
		return nil, err
	}
	if u.On, err = cf.Get(ucdOn); err != nil {
		return nil, err
	}
	if u.Kun, err = cf.Get(ucdKun); err != nil {
		return nil, err
	}
	return u, nil
}

func (u *Ucd) validate() error {
	required := 0
	if u.On != "" {
		required++
	}
	if u.Kun != "" {
		required++
	}
	if u.MorohashiID != "" {
		required++
	}
	if u.JSource != "" {
		required++
	}
	if required != 1 {
		return kerrors.NewCatalogInvariantError(u.Name, "expected exactly one of {on, kun, morohashi, j-source}")
	}
	if u.Joyo && len(u.Links) > 0 {
		return kerrors.NewCatalogInvariantError(u.Name, "joyo record has links")
	}
	if u.Joyo && u.Meaning == "" {
		return kerrors.NewCatalogInvariantError(u.Name, "joyo record has no meaning")
	}
	if (len(u.Links) > 0) != (u.LinkType != "") {
		return kerrors.NewCatalogInvariantError(u.Name, "link count and link type disagree")
	}
	return nil
}

// Find resolves name per §4.5: a variant name (carrying a trailing
// variation selector) only ever resolves through linkedJinmei or
// linkedOther (first entry) - it never falls back to the primary map, since
// a variant's non-variant base is a different Ucd entry, not itself. A
// variant with neither link returns nil.
func (t *UcdTable) Find(name string) *Ucd {
	base, hasVariant := stripVariationSelector(name)
	if hasVariant {
		if target, ok := t.linkedJinmei[base]; ok {
			return t.byName[target]
		}
		if others, ok := t.linkedOther[base]; ok && len(others) > 0 {
			return t.byName[others[0]]
		}
		return nil
	}
	return t.byName[name]
}

// stripVariationSelector removes a trailing U+FE00..U+FE0F selector from
// name, reporting whether one was present.
func stripVariationSelector(name string) (string, bool) {
	r := []rune(name)
	if len(r) < 2 {
		return name, false
	}
	last := r[len(r)-1]
	if last >= 0xFE00 && last <= 0xFE0F {
		return string(r[:len(r)-1]), true
	}
	return name, false
}
