package kanji

import "kanjitools/enum"

// Type discriminates the Kanji tagged variant (§3.3, §9 DESIGN NOTES:
// "abstract base class with virtual getters" replaced by a plain enum tag).
type Type int

const (
	Jouyou Type = iota
	Jinmei
	Extra
	LinkedJinmei
	LinkedOld
	Frequency
	Kentei
	UcdType
)

var typeNames = enum.NewDescriptor[Type](
	"Jouyou", "Jinmei", "Extra", "LinkedJinmei", "LinkedOld", "Frequency", "Kentei", "Ucd",
)

func (t Type) String() string { return typeNames.Name(t) }

// JinmeiReason classifies why a Jinmei-use Kanji was added to the list.
type JinmeiReason int

const (
	ReasonNames JinmeiReason = iota
	ReasonPrint
	ReasonMoyou
	ReasonSimple
	ReasonVariant
	ReasonOther
)

var jinmeiReasonNames = enum.NewDescriptor[JinmeiReason](
	"Names", "Print", "Moyou", "Simple", "Variant", "Other",
)

func (r JinmeiReason) String() string { return jinmeiReasonNames.Name(r) }

// ParseJinmeiReason looks up a JinmeiReason by its display name.
func ParseJinmeiReason(name string) (JinmeiReason, bool) { return jinmeiReasonNames.Parse(name) }
