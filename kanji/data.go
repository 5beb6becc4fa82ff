package kanji

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"

	"kanjitools/columnfile"
	"kanjitools/kerrors"
)

// kanjiList is an append-only, insertion-ordered list of Kanji, backed by
// gods' arraylist rather than a bare slice: the grade/level/kyu/type and
// frequency/Morohashi/Nelson secondary indexes of §4.7 are exactly the
// "ordered, append-only, duplicates-harmless" shape arraylist models.
type kanjiList struct {
	l *arraylist.List
}

func newKanjiList() *kanjiList { return &kanjiList{l: arraylist.New()} }

func (kl *kanjiList) append(k *Kanji) { kl.l.Add(k) }

func (kl *kanjiList) slice() []*Kanji {
	values := kl.l.Values()
	out := make([]*Kanji, len(values))
	for i, v := range values {
		out[i] = v.(*Kanji)
	}
	return out
}

// KanjiData is the aggregator built by loading the ten reference files in
// the fixed order of §4.7. All public query methods are pure reads of
// immutable state (§5).
type KanjiData struct {
	ucd          *UcdTable
	radicals     *RadicalTable
	freqReadings map[string]string

	byName       map[string]*Kanji
	byCompatName map[string]*Kanji
	byFrequency  map[uint32]*Kanji
	byMorohashi  map[string]*kanjiList
	byNelson     map[int]*kanjiList

	byGrade map[Grade]*kanjiList
	byLevel map[Level]*kanjiList
	byKyu   map[Kyu]*kanjiList
	byType  map[Type]*kanjiList

	freqLists [5]*kanjiList

	maxFrequency uint32

	// Errors is every CatalogInvariantError accumulated during loading;
	// loading continues past them (§4.7, §7).
	Errors []error
}

// Load reads the ten reference files from dir in the fixed order of §4.7.
// A DataFileError (missing/malformed file) aborts immediately; a
// CatalogInvariantError is appended to the returned KanjiData.Errors and
// loading continues.
func Load(dir string) (*KanjiData, error) {
	d := &KanjiData{
		byName:       map[string]*Kanji{},
		byCompatName: map[string]*Kanji{},
		byFrequency:  map[uint32]*Kanji{},
		byMorohashi:  map[string]*kanjiList{},
		byNelson:     map[int]*kanjiList{},
		byGrade:      map[Grade]*kanjiList{},
		byLevel:      map[Level]*kanjiList{},
		byKyu:        map[Kyu]*kanjiList{},
		byType:       map[Type]*kanjiList{},
	}
	for i := range d.freqLists {
		d.freqLists[i] = newKanjiList()
	}

	path := func(name string) string { return dir + string(os.PathSeparator) + name }

	ucd, ucdErrs := LoadUcdTable(path("ucd.txt"))
	if ucd == nil {
		return nil, ucdErrs[0]
	}
	for _, e := range ucdErrs {
		if dfe, ok := e.(*kerrors.DataFileError); ok {
			return nil, dfe
		}
	}
	d.ucd = ucd
	d.Errors = append(d.Errors, ucdErrs...)

	radicals, radErrs := LoadRadicalTable(path("radicals.txt"))
	if radicals == nil {
		return nil, radErrs[0]
	}
	for _, e := range radErrs {
		if dfe, ok := e.(*kerrors.DataFileError); ok {
			return nil, dfe
		}
	}
	d.radicals = radicals
	d.Errors = append(d.Errors, radErrs...)

	freqReadings, err := loadNameReadingMap(path("frequency-readings.txt"))
	if err != nil {
		return nil, err
	}
	d.freqReadings = freqReadings

	if err := d.loadJouyou(path("jouyou.txt")); err != nil {
		return nil, err
	}
	if err := d.loadLinkedJinmei(path("linked-jinmei.txt")); err != nil {
		return nil, err
	}
	d.deriveLinkedOld()
	if err := d.loadJinmei(path("jinmei.txt")); err != nil {
		return nil, err
	}
	if err := d.loadExtra(path("extra.txt")); err != nil {
		return nil, err
	}
	for _, level := range jlptLoadOrder {
		if err := d.loadJLPT(path("jlpt/"+level.fileName()+".txt"), level); err != nil {
			return nil, err
		}
	}
	if err := d.loadFrequency(path("frequency.txt")); err != nil {
		return nil, err
	}
	for _, kyu := range kenteiLoadOrder {
		if err := d.loadKentei(path("kentei/"+kyu.fileName()+".txt"), kyu); err != nil {
			return nil, err
		}
	}
	d.loadRemainingUcd()

	for i, e := range d.Errors {
		tracer().Errorf("ERROR[%04d] --- %v", i+1, e)
	}
	tracer().Infof("kanji catalog loaded: %d entries, %d invariant errors", len(d.byName), len(d.Errors))
	return d, nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, kerrors.NewDataFileError(path, 0, "", "", "cannot open file: "+err.Error())
	}
	defer f.Close()
	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func loadNameReadingMap(path string) (map[string]string, error) {
	cf, err := columnfile.Open(path, []columnfile.Column{{ID: 0, Name: "Name"}, {ID: 1, Name: "Reading"}}, '\t')
	if err != nil {
		return nil, err
	}
	m := map[string]string{}
	for cf.NextRow() {
		name, err := cf.Get(0)
		if err != nil {
			return nil, err
		}
		reading, err := cf.Get(1)
		if err != nil {
			return nil, err
		}
		m[name] = reading
	}
	if err := cf.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

// checkInsert enforces §4.7's insertion invariants. It returns nothing:
// catalog-level problems are appended to d.Errors.
func (d *KanjiData) checkInsert(k *Kanji) {
	if _, exists := d.byName[k.Name]; exists {
		d.Errors = append(d.Errors, kerrors.NewCatalogInvariantError(k.Name, "duplicate name in catalog"))
		return
	}
	if k.IsVariant() {
		if _, exists := d.byCompatName[k.CompatibilityName]; exists {
			d.Errors = append(d.Errors, kerrors.NewCatalogInvariantError(k.Name, "duplicate compatibility name"))
			return
		}
	}

	u := d.ucd.Find(k.Name)
	if u == nil {
		d.Errors = append(d.Errors, kerrors.NewCatalogInvariantError(k.Name, "no matching Ucd entry"))
	} else {
		switch k.Type {
		case Jouyou:
			if !u.Joyo {
				d.Errors = append(d.Errors, kerrors.NewCatalogInvariantError(k.Name, "Ucd.Joyo disagrees with type Jouyou"))
			}
		case Jinmei:
			if !u.Jinmei {
				d.Errors = append(d.Errors, kerrors.NewCatalogInvariantError(k.Name, "Ucd.Jinmei disagrees with type Jinmei"))
			}
		case LinkedJinmei:
			if !u.Jinmei {
				d.Errors = append(d.Errors, kerrors.NewCatalogInvariantError(k.Name, "linked entry's Ucd.Jinmei not set"))
			}
			if len(u.Links) == 0 {
				d.Errors = append(d.Errors, kerrors.NewCatalogInvariantError(k.Name, "linked entry missing Ucd link"))
			}
		}
	}

	d.byName[k.Name] = k
	if k.IsVariant() {
		d.byCompatName[k.CompatibilityName] = k
	}
	appendType(d.byType, k.Type, k)

	if k.HasFrequency {
		if k.Frequency < 1 || k.Frequency > 2501 {
			d.Errors = append(d.Errors, kerrors.NewCatalogInvariantError(k.Name, "frequency rank out of range"))
		} else {
			d.byFrequency[k.Frequency] = k
			if k.Frequency+1 > d.maxFrequency {
				d.maxFrequency = k.Frequency + 1
			}
			d.freqLists[frequencyBucket(k.Frequency)].append(k)
		}
	}
	if k.HasGrade {
		appendGrade(d.byGrade, k.Grade, k)
	}
	if k.HasLevel {
		appendLevel(d.byLevel, k.Level, k)
	}
	if k.HasKyu {
		appendKyu(d.byKyu, k.Kyu, k)
	}
	if k.MorohashiID != "" {
		appendString(d.byMorohashi, k.MorohashiID, k)
	}
	for _, n := range k.NelsonIDs {
		appendInt(d.byNelson, n, k)
	}
}

// frequencyBucket maps a 1..2501 rank onto one of five ~500-wide buckets
// (§4.7 step 8: 500/500/500/500/501).
func frequencyBucket(rank uint32) int {
	b := int((rank - 1) / 500)
	if b > 4 {
		b = 4
	}
	return b
}

func appendType(m map[Type]*kanjiList, key Type, k *Kanji) {
	if m[key] == nil {
		m[key] = newKanjiList()
	}
	m[key].append(k)
}

func appendGrade(m map[Grade]*kanjiList, key Grade, k *Kanji) {
	if m[key] == nil {
		m[key] = newKanjiList()
	}
	m[key].append(k)
}

func appendLevel(m map[Level]*kanjiList, key Level, k *Kanji) {
	if m[key] == nil {
		m[key] = newKanjiList()
	}
	m[key].append(k)
}

func appendKyu(m map[Kyu]*kanjiList, key Kyu, k *Kanji) {
	if m[key] == nil {
		m[key] = newKanjiList()
	}
	m[key].append(k)
}

func appendString(m map[string]*kanjiList, key string, k *Kanji) {
	if m[key] == nil {
		m[key] = newKanjiList()
	}
	m[key].append(k)
}

func appendInt(m map[int]*kanjiList, key int, k *Kanji) {
	if m[key] == nil {
		m[key] = newKanjiList()
	}
	m[key].append(k)
}

func compatibilityNameOf(name string) string {
	base, hasVariant := stripVariationSelector(name)
	if !hasVariant {
		return ""
	}
	return base
}

func (d *KanjiData) newCommonFromUcd(name string) (Kanji, *Ucd) {
	u := d.ucd.Find(name)
	k := Kanji{Name: name, CompatibilityName: compatibilityNameOf(name)}
	if u != nil {
		k.RadicalNumber = u.Radical
		k.Strokes = u.Strokes
		k.Pinyin = u.Pinyin
		k.MorohashiID = u.MorohashiID
		k.NelsonIDs = u.NelsonIDs
	}
	return k, u
}

// --- Loaders for each of the ten files, in the §4.7 order. ---

const (
	jouyouNumber = iota
	jouyouName
	jouyouRadical
	jouyouOldNames
	jouyouYear
	jouyouStrokes
	jouyouGrade
	jouyouMeaning
	jouyouReading
)

var jouyouColumns = []columnfile.Column{
	{ID: jouyouNumber, Name: "Number"},
	{ID: jouyouName, Name: "Name"},
	{ID: jouyouRadical, Name: "Radical"},
	{ID: jouyouOldNames, Name: "OldNames"},
	{ID: jouyouYear, Name: "Year"},
	{ID: jouyouStrokes, Name: "Strokes"},
	{ID: jouyouGrade, Name: "Grade"},
	{ID: jouyouMeaning, Name: "Meaning"},
	{ID: jouyouReading, Name: "Reading"},
}

func (d *KanjiData) loadJouyou(path string) error {
	cf, err := columnfile.Open(path, jouyouColumns, '\t')
	if err != nil {
		return err
	}
	for cf.NextRow() {
		name, err := cf.Get(jouyouName)
		if err != nil {
			return err
		}
		k, _ := d.newCommonFromUcd(name)
		k.Type = Jouyou
		if num, err := cf.GetU64(jouyouNumber, 0); err == nil {
			k.Number = uint32(num)
		}
		gradeStr, _ := cf.Get(jouyouGrade)
		grade, ok := ParseGrade(gradeStr)
		if !ok {
			d.Errors = append(d.Errors, kerrors.NewCatalogInvariantError(name, "Jouyou entry missing grade"))
			continue
		}
		k.Grade, k.HasGrade = grade, true
		if oldNames, err := cf.Get(jouyouOldNames); err == nil && oldNames != "" {
			k.OldNames = strings.Split(oldNames, ",")
		}
		if year, err := cf.GetOptU16(jouyouYear); err == nil {
			k.Year = year
		}
		if k.Meaning, err = cf.Get(jouyouMeaning); err != nil {
			return err
		}
		if k.Reading, err = cf.Get(jouyouReading); err != nil {
			return err
		}
		kk := k
		d.checkInsert(&kk)
	}
	if err := cf.Err(); err != nil {
		return err
	}
	return nil
}

func (d *KanjiData) loadLinkedJinmei(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return kerrors.NewDataFileError(path, 0, "", "", "cannot open file: "+err.Error())
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	row := 0
	for sc.Scan() {
		row++
		line := sc.Text()
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "\t", 2)
		if len(parts) != 2 {
			return kerrors.NewDataFileError(path, row, "", line, "expected two tab-separated columns")
		}
		jouyouName, linkedName := parts[0], parts[1]
		target, ok := d.byName[jouyouName]
		if !ok {
			d.Errors = append(d.Errors, kerrors.NewCatalogInvariantError(linkedName, "linked-jinmei references unknown jouyou "+jouyouName))
			continue
		}
		k, _ := d.newCommonFromUcd(linkedName)
		k.Type = LinkedJinmei
		k.Link = target
		k.Reading = target.effectiveReading()
		k.Meaning = target.effectiveMeaning()
		d.checkInsert(&k)
	}
	return nil
}

// deriveLinkedOld walks every catalogued Kanji's OldNames; any old name not
// yet in the catalog becomes a LinkedOld pointing back to it (§4.7 step 4).
// Load runs it right after linked-jinmei.txt, so it only sees the Jouyou
// and LinkedJinmei entries loaded so far.
func (d *KanjiData) deriveLinkedOld() {
	var current []*Kanji
	for _, k := range d.byName {
		current = append(current, k)
	}
	for _, k := range current {
		for _, old := range k.OldNames {
			if _, exists := d.byName[old]; exists {
				continue
			}
			nk, _ := d.newCommonFromUcd(old)
			nk.Type = LinkedOld
			nk.Link = k
			nk.Reading = k.effectiveReading()
			nk.Meaning = k.effectiveMeaning()
			d.checkInsert(&nk)
		}
	}
}

const (
	jinmeiNumber = iota
	jinmeiName
	jinmeiRadical
	jinmeiOldNames
	jinmeiYear
	jinmeiReason
	jinmeiReading
)

var jinmeiColumns = []columnfile.Column{
	{ID: jinmeiNumber, Name: "Number"},
	{ID: jinmeiName, Name: "Name"},
	{ID: jinmeiRadical, Name: "Radical"},
	{ID: jinmeiOldNames, Name: "OldNames"},
	{ID: jinmeiYear, Name: "Year"},
	{ID: jinmeiReason, Name: "Reason"},
	{ID: jinmeiReading, Name: "Reading"},
}

func (d *KanjiData) loadJinmei(path string) error {
	cf, err := columnfile.Open(path, jinmeiColumns, '\t')
	if err != nil {
		return err
	}
	for cf.NextRow() {
		name, err := cf.Get(jinmeiName)
		if err != nil {
			return err
		}
		k, u := d.newCommonFromUcd(name)
		k.Type = Jinmei
		if num, err := cf.GetU64(jinmeiNumber, 0); err == nil {
			k.Number = uint32(num)
		}
		if oldNames, err := cf.Get(jinmeiOldNames); err == nil && oldNames != "" {
			k.OldNames = strings.Split(oldNames, ",")
		}
		if year, err := cf.GetOptU16(jinmeiYear); err == nil {
			k.Year = year
		}
		reasonStr, _ := cf.Get(jinmeiReason)
		if reason, ok := ParseJinmeiReason(reasonStr); ok {
			k.Reason, k.HasReason = reason, true
		}
		if u != nil {
			k.Meaning = u.Meaning
		}
		if k.Reading, err = cf.Get(jinmeiReading); err != nil {
			return err
		}
		kk := k
		d.checkInsert(&kk)

		for _, old := range kk.OldNames {
			if _, exists := d.byName[old]; exists {
				continue
			}
			nk, _ := d.newCommonFromUcd(old)
			nk.Type = LinkedJinmei
			nk.Link = d.byName[name]
			nk.Reading = nk.Link.effectiveReading()
			nk.Meaning = nk.Link.effectiveMeaning()
			d.checkInsert(&nk)
		}
	}
	if err := cf.Err(); err != nil {
		return err
	}
	return nil
}

const (
	extraNumber = iota
	extraName
	extraRadical
	extraStrokes
	extraMeaning
	extraReading
)

var extraColumns = []columnfile.Column{
	{ID: extraNumber, Name: "Number"},
	{ID: extraName, Name: "Name"},
	{ID: extraRadical, Name: "Radical"},
	{ID: extraStrokes, Name: "Strokes"},
	{ID: extraMeaning, Name: "Meaning"},
	{ID: extraReading, Name: "Reading"},
}

func (d *KanjiData) loadExtra(path string) error {
	cf, err := columnfile.Open(path, extraColumns, '\t')
	if err != nil {
		return err
	}
	for cf.NextRow() {
		name, err := cf.Get(extraName)
		if err != nil {
			return err
		}
		k, _ := d.newCommonFromUcd(name)
		k.Type = Extra
		if num, err := cf.GetU64(extraNumber, 0); err == nil {
			k.Number = uint32(num)
		}
		if k.Meaning, err = cf.Get(extraMeaning); err != nil {
			return err
		}
		if k.Reading, err = cf.Get(extraReading); err != nil {
			return err
		}
		kk := k
		d.checkInsert(&kk)
	}
	if err := cf.Err(); err != nil {
		return err
	}
	return nil
}

func (d *KanjiData) loadJLPT(path string, level Level) error {
	names, err := readLines(path)
	if err != nil {
		return err
	}
	for _, name := range names {
		k, exists := d.byName[name]
		if !exists {
			return kerrors.NewDataFileError(path, 0, "", name, "JLPT list references uncatalogued name")
		}
		k.Level, k.HasLevel = level, true
	}
	return nil
}

func (d *KanjiData) loadFrequency(path string) error {
	names, err := readLines(path)
	if err != nil {
		return err
	}
	for i, name := range names {
		rank := uint32(i + 1)
		if k, exists := d.byName[name]; exists {
			k.Frequency, k.HasFrequency = rank, true
			if rank+1 > d.maxFrequency {
				d.maxFrequency = rank + 1
			}
			d.byFrequency[rank] = k
			d.freqLists[frequencyBucket(rank)].append(k)
			continue
		}
		k2, u := d.newCommonFromUcd(name)
		k2.Type = Frequency
		k2.Frequency, k2.HasFrequency = rank, true
		if reading, ok := d.freqReadings[name]; ok {
			k2.Reading = reading
		}
		if u != nil {
			k2.Meaning = u.Meaning
		}
		d.checkInsert(&k2)
	}
	return nil
}

func (d *KanjiData) loadKentei(path string, kyu Kyu) error {
	names, err := readLines(path)
	if err != nil {
		return err
	}
	for _, name := range names {
		if k, exists := d.byName[name]; exists {
			k.Kyu, k.HasKyu = kyu, true
			continue
		}
		k, u := d.newCommonFromUcd(name)
		k.Type = Kentei
		k.Kyu, k.HasKyu = kyu, true
		if u != nil {
			k.Meaning = u.Meaning
			k.Reading = u.On + " " + u.Kun
		}
		d.checkInsert(&k)
	}
	return nil
}

func (d *KanjiData) loadRemainingUcd() {
	for name, u := range d.ucd.byName {
		if _, exists := d.byName[name]; exists {
			continue
		}
		k, _ := d.newCommonFromUcd(name)
		k.Type = UcdType
		k.Meaning = u.Meaning
		k.Reading = strings.TrimSpace(u.On + " " + u.Kun)
		d.checkInsert(&k)
	}
}

// --- Queries (§4.7). ---

// FindByName looks name up in the catalog; when that fails and name carries
// a variation selector, it falls back to the compatibility-name index keyed
// by name without the selector.
func (d *KanjiData) FindByName(name string) *Kanji {
	if k, ok := d.byName[name]; ok {
		return k
	}
	base, hasVariant := stripVariationSelector(name)
	if hasVariant {
		return d.byCompatName[base]
	}
	return nil
}

// FindByFrequency returns the Kanji at rank, or nil.
func (d *KanjiData) FindByFrequency(rank uint32) *Kanji { return d.byFrequency[rank] }

// FindByMorohashiID returns every Kanji sharing id (which may carry a 'P'
// suffix).
func (d *KanjiData) FindByMorohashiID(id string) []*Kanji {
	if kl, ok := d.byMorohashi[id]; ok {
		return kl.slice()
	}
	return nil
}

// FindByNelsonID returns every Kanji sharing id.
func (d *KanjiData) FindByNelsonID(id int) []*Kanji {
	if kl, ok := d.byNelson[id]; ok {
		return kl.slice()
	}
	return nil
}

func (d *KanjiData) Grades(g Grade) []*Kanji {
	if kl, ok := d.byGrade[g]; ok {
		return kl.slice()
	}
	return nil
}

func (d *KanjiData) Levels(l Level) []*Kanji {
	if kl, ok := d.byLevel[l]; ok {
		return kl.slice()
	}
	return nil
}

func (d *KanjiData) Kyus(k Kyu) []*Kanji {
	if kl, ok := d.byKyu[k]; ok {
		return kl.slice()
	}
	return nil
}

func (d *KanjiData) Types(t Type) []*Kanji {
	if kl, ok := d.byType[t]; ok {
		return kl.slice()
	}
	return nil
}

// FrequencyList returns the bucket'th frequency sub-list (0..4), per §4.7
// step 8: 500 entries each except the last, which holds 501.
func (d *KanjiData) FrequencyList(bucket int) []*Kanji {
	if bucket < 0 || bucket > 4 {
		return nil
	}
	return d.freqLists[bucket].slice()
}

// MaxFrequency is 1 + the highest loaded frequency rank.
func (d *KanjiData) MaxFrequency() uint32 { return d.maxFrequency }

func (d *KanjiData) GetType(name string) (Type, bool) {
	k := d.FindByName(name)
	if k == nil {
		return 0, false
	}
	return k.Type, true
}

func (d *KanjiData) GetPinyin(u *Ucd) string {
	if u == nil {
		return ""
	}
	return u.Pinyin
}

func (d *KanjiData) GetMorohashiID(u *Ucd) string {
	if u == nil {
		return ""
	}
	return u.MorohashiID
}

func (d *KanjiData) GetNelsonIDs(u *Ucd) []int {
	if u == nil {
		return nil
	}
	return u.NelsonIDs
}

func (d *KanjiData) GetCompatibilityName(name string) string {
	k := d.FindByName(name)
	if k == nil {
		return ""
	}
	return k.CompatibilityName
}

// GetStrokes returns a Kanji's stroke count, optionally preferring the Ucd
// table's VStrokes override for a variant, or the Ucd table exclusively
// when onlyUcd is set.
func (d *KanjiData) GetStrokes(name string, u *Ucd, variant, onlyUcd bool) uint8 {
	if onlyUcd {
		if u == nil {
			return 0
		}
		return u.Strokes
	}
	k := d.FindByName(name)
	if k == nil {
		return 0
	}
	if variant && u != nil && u.VStrokes != nil {
		return *u.VStrokes
	}
	return k.Strokes
}

// UcdRadical returns the Radical referenced by name (falling back to u's
// Radical field when name isn't catalogued).
func (d *KanjiData) UcdRadical(name string, u *Ucd) *Radical {
	if k := d.FindByName(name); k != nil {
		return d.radicals.ByNumber(k.RadicalNumber)
	}
	if u != nil {
		return d.radicals.ByNumber(u.Radical)
	}
	return nil
}

// Ucd exposes the loaded Ucd table for query helpers that need a *Ucd.
func (d *KanjiData) Ucd(name string) *Ucd { return d.ucd.Find(name) }

// Radical exposes the loaded Radical table.
func (d *KanjiData) Radical(number uint8) *Radical { return d.radicals.ByNumber(number) }

func (d *KanjiData) String() string {
	return fmt.Sprintf("KanjiData{%d kanji, maxFrequency=%d, %d errors}", len(d.byName), d.maxFrequency, len(d.Errors))
}
