package kanji

import (
	"strings"

	"kanjitools/columnfile"
	"kanjitools/kerrors"
)

// Radical is one entry of radicals.txt (§4.6): a 1-based, sequential number,
// a primary name plus any alternate forms, a long (descriptive) name, and a
// reading.
type Radical struct {
	Number   uint8
	Name     string // primary form
	Altforms []string
	LongName string
	Reading  string
}

// AllNames returns the primary name followed by every alternate form.
func (r *Radical) AllNames() []string {
	return append([]string{r.Name}, r.Altforms...)
}

// RadicalTable indexes Radicals by number and by every name form.
type RadicalTable struct {
	byNumber map[uint8]*Radical
	byName   map[string]*Radical
}

const (
	radNumber = iota
	radName
	radLongName
	radReading
)

var radicalColumns = []columnfile.Column{
	{ID: radNumber, Name: "Number"},
	{ID: radName, Name: "Name"},
	{ID: radLongName, Name: "LongName"},
	{ID: radReading, Name: "Reading"},
}

// LoadRadicalTable reads radicals.txt.
func LoadRadicalTable(path string) (*RadicalTable, []error) {
	cf, err := columnfile.Open(path, radicalColumns, '\t')
	if err != nil {
		return nil, []error{err}
	}

	t := &RadicalTable{byNumber: map[uint8]*Radical{}, byName: map[string]*Radical{}}
	var errs []error

	for cf.NextRow() {
		r := &Radical{}
		if r.Number, err = cf.GetU8(radNumber); err != nil {
			errs = append(errs, err)
			continue
		}
		names, getErr := cf.Get(radName)
		if getErr != nil {
			errs = append(errs, getErr)
			continue
		}
		forms := strings.Fields(names)
		if len(forms) == 0 {
			errs = append(errs, kerrors.NewDataFileError(path, cf.CurrentRow(), "Name", names, "empty radical name"))
			continue
		}
		r.Name = forms[0]
		r.Altforms = forms[1:]
		if r.LongName, err = cf.Get(radLongName); err != nil {
			errs = append(errs, err)
			continue
		}
		if r.Reading, err = cf.Get(radReading); err != nil {
			errs = append(errs, err)
			continue
		}

		if _, exists := t.byNumber[r.Number]; exists {
			errs = append(errs, kerrors.NewDataFileError(path, cf.CurrentRow(), "Number", names, "duplicate radical number"))
			continue
		}
		t.byNumber[r.Number] = r
		for _, n := range r.AllNames() {
			t.byName[n] = r
		}
	}
	if err := cf.Err(); err != nil {
		errs = append(errs, err)
	}
	return t, errs
}

// ByNumber returns the Radical with the given 1-based number, or nil.
func (t *RadicalTable) ByNumber(n uint8) *Radical { return t.byNumber[n] }

// ByName returns the Radical matching any of its primary or alternate
// forms, or nil.
func (t *RadicalTable) ByName(name string) *Radical { return t.byName[name] }
