package kanji

import "kanjitools/enum"

// Kyu is a Kanji Aptitude Test (Kanji Kentei) level, K10 (easiest) through
// K1 (hardest), with two pre-level kyus (KJ2, KJ1) inserted before K2/K1.
type Kyu int

const (
	K10 Kyu = iota
	K9
	K8
	K7
	K6
	K5
	K4
	K3
	KJ2
	K2
	KJ1
	K1
)

var kyuNames = enum.NewDescriptor[Kyu](
	"K10", "K9", "K8", "K7", "K6", "K5", "K4", "K3", "KJ2", "K2", "KJ1", "K1",
)

func (k Kyu) String() string { return kyuNames.Name(k) }

// ParseKyu looks up a Kyu by its display name ("K10".."K1", "KJ2", "KJ1").
func ParseKyu(name string) (Kyu, bool) { return kyuNames.Parse(name) }

// kenteiLoadOrder is the fixed file load order of §6.1/§4.7 step 9.
var kenteiLoadOrder = []Kyu{K10, K9, K8, K7, K6, K5, K4, K3, KJ2, K2, KJ1, K1}

func (k Kyu) fileName() string {
	switch k {
	case K10:
		return "k10"
	case K9:
		return "k9"
	case K8:
		return "k8"
	case K7:
		return "k7"
	case K6:
		return "k6"
	case K5:
		return "k5"
	case K4:
		return "k4"
	case K3:
		return "k3"
	case KJ2:
		return "kj2"
	case K2:
		return "k2"
	case KJ1:
		return "kj1"
	case K1:
		return "k1"
	}
	return ""
}
