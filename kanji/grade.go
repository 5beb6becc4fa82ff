package kanji

import "kanjitools/enum"

// Grade is a Jouyou Kanji's school grade, G1...G6 plus S (secondary school).
type Grade int

const (
	G1 Grade = iota
	G2
	G3
	G4
	G5
	G6
	SGrade
)

var gradeNames = enum.NewDescriptor[Grade]("G1", "G2", "G3", "G4", "G5", "G6", "S")

func (g Grade) String() string { return gradeNames.Name(g) }

// ParseGrade looks up a Grade by its display name ("G1".."G6", "S").
func ParseGrade(name string) (Grade, bool) { return gradeNames.Parse(name) }
