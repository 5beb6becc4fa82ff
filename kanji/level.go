package kanji

import "kanjitools/enum"

// Level is a JLPT proficiency tier, N5 (easiest) through N1 (hardest).
type Level int

const (
	N5 Level = iota
	N4
	N3
	N2
	N1
)

var levelNames = enum.NewDescriptor[Level]("N5", "N4", "N3", "N2", "N1")

func (l Level) String() string { return levelNames.Name(l) }

// ParseLevel looks up a Level by its display name ("N5".."N1").
func ParseLevel(name string) (Level, bool) { return levelNames.Parse(name) }

// jlptLoadOrder is the fixed order §4.7 step 7 loads the level lists in.
var jlptLoadOrder = []Level{N5, N4, N3, N2, N1}

func (l Level) fileName() string {
	switch l {
	case N5:
		return "n5"
	case N4:
		return "n4"
	case N3:
		return "n3"
	case N2:
		return "n2"
	case N1:
		return "n1"
	}
	return ""
}
