// Package columnfile implements the TSV reader described in §4.4: a file is
// opened once, its header line is matched against a set of expected columns
// (each identified by a small numeric id), and each data row is then read
// through typed getters keyed by that id.
package columnfile

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"kanjitools/kerrors"
)

// Column is a single expected header cell together with the numeric id
// callers use to address it from Get/GetU64/... . IDs must be unique
// within one ColumnFile and are typically declared as a small const block
// in the calling package (e.g. colName = iota).
type Column struct {
	ID   int
	Name string
}

// ColumnFile reads a delimiter-separated file with a header row, where
// callers address fields by a declared column id rather than position.
type ColumnFile struct {
	file      string
	delimiter byte
	positions map[int]int // column id -> field position
	columns   int         // total number of header fields

	scanner    *bufio.Scanner
	currentRow int
	fields     []string
	started    bool
	err        error
}

// Open validates and opens path, matching its header line against cols.
func Open(path string, cols []Column, delimiter byte) (*ColumnFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, kerrors.NewDataFileError(path, 0, "", "", "cannot stat file: "+err.Error())
	}
	if !info.Mode().IsRegular() {
		return nil, kerrors.NewDataFileError(path, 0, "", "", "not a regular file")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, kerrors.NewDataFileError(path, 0, "", "", "cannot open file: "+err.Error())
	}

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	if !sc.Scan() {
		f.Close()
		return nil, kerrors.NewDataFileError(path, 0, "", "", "empty header")
	}
	header := strings.Split(sc.Text(), string(delimiter))

	if err := checkNoDuplicateColumns(path, cols); err != nil {
		f.Close()
		return nil, err
	}
	if err := checkNoDuplicateHeaderCells(path, header); err != nil {
		f.Close()
		return nil, err
	}

	positions := make(map[int]int, len(cols))
	var missing []string
	for _, c := range cols {
		pos := indexOf(header, c.Name)
		if pos < 0 {
			missing = append(missing, c.Name)
			continue
		}
		positions[c.ID] = pos
	}
	if len(missing) > 0 {
		f.Close()
		return nil, kerrors.NewDataFileError(path, 0, "", strings.Join(missing, ", "), "column(s) not found")
	}

	return &ColumnFile{
		file:      path,
		delimiter: delimiter,
		positions: positions,
		columns:   len(header),
		scanner:   sc,
	}, nil
}

func indexOf(header []string, name string) int {
	for i, h := range header {
		if h == name {
			return i
		}
	}
	return -1
}

func checkNoDuplicateColumns(path string, cols []Column) error {
	seenID := map[int]bool{}
	seenName := map[string]bool{}
	for _, c := range cols {
		if seenID[c.ID] || seenName[c.Name] {
			return kerrors.NewDataFileError(path, 0, c.Name, "", "duplicate expected column")
		}
		seenID[c.ID] = true
		seenName[c.Name] = true
	}
	return nil
}

func checkNoDuplicateHeaderCells(path string, header []string) error {
	seen := map[string]bool{}
	for _, h := range header {
		if seen[h] {
			return kerrors.NewDataFileError(path, 0, h, "", "duplicate header cell")
		}
		seen[h] = true
	}
	return nil
}

// NextRow advances to the next data row, returning false at EOF or when the
// row's field count doesn't match the header. Err distinguishes the two,
// mirroring bufio.Scanner's Scan()/Err() split.
func (cf *ColumnFile) NextRow() bool {
	if !cf.scanner.Scan() {
		if err := cf.scanner.Err(); err != nil {
			cf.err = kerrors.NewDataFileError(cf.file, cf.currentRow+1, "", "", "read error: "+err.Error())
		}
		return false
	}
	line := cf.scanner.Text()
	fields := strings.Split(line, string(cf.delimiter))
	cf.currentRow++

	// Unlike the original's getline-based splitting, strings.Split already
	// yields a trailing empty field when the line ends with the delimiter,
	// so the row's field count can be compared against the header directly -
	// no separate trailing-delimiter case is needed.
	if len(fields) != cf.columns {
		cf.err = kerrors.NewDataFileError(cf.file, cf.currentRow, "", line,
			fmt.Sprintf("expected %d columns, got %d", cf.columns, len(fields)))
		return false
	}

	cf.fields = fields
	cf.started = true
	return true
}

// Err returns the error that stopped the most recent NextRow from
// advancing, or nil if iteration simply reached EOF.
func (cf *ColumnFile) Err() error { return cf.err }

// CurrentRow returns the 1-based row number of the most recently read row.
func (cf *ColumnFile) CurrentRow() int { return cf.currentRow }

func (cf *ColumnFile) field(col int) (string, error) {
	if !cf.started {
		return "", kerrors.NewDataFileError(cf.file, cf.currentRow, "", "", "get called before first NextRow")
	}
	pos, ok := cf.positions[col]
	if !ok || pos >= len(cf.fields) {
		return "", kerrors.NewDataFileError(cf.file, cf.currentRow, "", "", "column not present in row")
	}
	return cf.fields[pos], nil
}

// Get returns the raw string value of col.
func (cf *ColumnFile) Get(col int) (string, error) {
	return cf.field(col)
}

// GetU64 parses col as an unsigned integer, enforcing max when max > 0.
func (cf *ColumnFile) GetU64(col int, max uint64) (uint64, error) {
	s, err := cf.field(col)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, kerrors.NewDataFileError(cf.file, cf.currentRow, "", s, "not an unsigned integer")
	}
	if max > 0 && v > max {
		return 0, kerrors.NewDataFileError(cf.file, cf.currentRow, "", s, "value out of range")
	}
	return v, nil
}

// GetU8 and GetU16 are narrowed variants of GetU64.
func (cf *ColumnFile) GetU8(col int) (uint8, error) {
	v, err := cf.GetU64(col, 0xFF)
	return uint8(v), err
}

func (cf *ColumnFile) GetU16(col int) (uint16, error) {
	v, err := cf.GetU64(col, 0xFFFF)
	return uint16(v), err
}

// GetOptU64, GetOptU8, GetOptU16 return (nil, nil) for an empty field.
func (cf *ColumnFile) GetOptU64(col int, max uint64) (*uint64, error) {
	s, err := cf.field(col)
	if err != nil {
		return nil, err
	}
	if s == "" {
		return nil, nil
	}
	v, err := cf.GetU64(col, max)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (cf *ColumnFile) GetOptU8(col int) (*uint8, error) {
	s, err := cf.field(col)
	if err != nil {
		return nil, err
	}
	if s == "" {
		return nil, nil
	}
	v, err := cf.GetU8(col)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (cf *ColumnFile) GetOptU16(col int) (*uint16, error) {
	s, err := cf.field(col)
	if err != nil {
		return nil, err
	}
	if s == "" {
		return nil, nil
	}
	v, err := cf.GetU16(col)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// GetBool parses Y/T -> true, N/F -> false, empty -> false, else error.
func (cf *ColumnFile) GetBool(col int) (bool, error) {
	s, err := cf.field(col)
	if err != nil {
		return false, err
	}
	switch s {
	case "Y", "T":
		return true, nil
	case "N", "F", "":
		return false, nil
	default:
		return false, kerrors.NewDataFileError(cf.file, cf.currentRow, "", s, "not a recognized boolean")
	}
}

// GetCode parses col as 4 or 5 uppercase hex digits into a code point.
func (cf *ColumnFile) GetCode(col int) (rune, error) {
	s, err := cf.field(col)
	if err != nil {
		return 0, err
	}
	if len(s) != 4 && len(s) != 5 {
		return 0, kerrors.NewDataFileError(cf.file, cf.currentRow, "", s, "not 4 or 5 hex digits")
	}
	for _, r := range s {
		if !((r >= '0' && r <= '9') || (r >= 'A' && r <= 'F')) {
			return 0, kerrors.NewDataFileError(cf.file, cf.currentRow, "", s, "not uppercase hex")
		}
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, kerrors.NewDataFileError(cf.file, cf.currentRow, "", s, "not a valid code point")
	}
	return rune(v), nil
}

// SortedColumnNames returns the names of cols in sorted order, for
// diagnostics.
func SortedColumnNames(cols []Column) []string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	sort.Strings(names)
	return names
}
