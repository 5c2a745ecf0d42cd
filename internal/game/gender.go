package game

import "strings"

// Gender selects the pronoun set used when a message refers to an entity.
type Gender string

const (
	GenderMale      Gender = "male"
	GenderFemale    Gender = "female"
	GenderNeutral   Gender = "neutral"
	GenderAmbiguous Gender = "ambiguous"
)

// GenderAttribute is the attribute key holding an entity's gender.
const GenderAttribute = "gender"

// Genders lists the supported genders in display order.
func Genders() []Gender {
	return []Gender{GenderMale, GenderFemale, GenderNeutral, GenderAmbiguous}
}

// ParseGender normalises user input into a supported gender.
func ParseGender(value string) (Gender, bool) {
	switch g := Gender(strings.ToLower(strings.TrimSpace(value))); g {
	case GenderMale, GenderFemale, GenderNeutral, GenderAmbiguous:
		return g, true
	default:
		return "", false
	}
}

// GenderOf reads the gender attribute of an entity. Missing or unrecognised
// values resolve to GenderAmbiguous.
func GenderOf(attrs AttributeReader) Gender {
	if attrs == nil {
		return GenderAmbiguous
	}
	value, ok := attrs.Attribute(GenderAttribute)
	if !ok {
		return GenderAmbiguous
	}
	var raw string
	switch v := value.(type) {
	case string:
		raw = v
	case Gender:
		raw = string(v)
	default:
		return GenderAmbiguous
	}
	// Stored values are exact; "Male" is as unknown as "robot".
	switch g := Gender(raw); g {
	case GenderMale, GenderFemale, GenderNeutral:
		return g
	}
	return GenderAmbiguous
}

// PronounCase is the grammatical form a marker asks for.
type PronounCase int

const (
	Subjective PronounCase = iota
	Objective
	Possessive
	PossessiveAbsolute
)

func (c PronounCase) String() string {
	switch c {
	case Subjective:
		return "subjective"
	case Objective:
		return "objective"
	case Possessive:
		return "possessive"
	case PossessiveAbsolute:
		return "possessive-absolute"
	default:
		return "unknown"
	}
}

var pronounTable = map[Gender][4]string{
	GenderMale:      {"he", "him", "his", "his"},
	GenderFemale:    {"she", "her", "her", "hers"},
	GenderNeutral:   {"it", "it", "its", "its"},
	GenderAmbiguous: {"they", "them", "their", "theirs"},
}

// Pronoun returns the lower-case pronoun for the gender and case.
func Pronoun(g Gender, c PronounCase) string {
	forms, ok := pronounTable[g]
	if !ok {
		forms = pronounTable[GenderAmbiguous]
	}
	if c < Subjective || c > PossessiveAbsolute {
		c = Subjective
	}
	return forms[c]
}

// caseForMarker maps a marker letter to its case. The bool reports whether
// the letter asked for a capitalised pronoun.
func caseForMarker(letter byte) (PronounCase, bool, bool) {
	upper := letter >= 'A' && letter <= 'Z'
	switch letter | 0x20 {
	case 's':
		return Subjective, upper, true
	case 'o':
		return Objective, upper, true
	case 'p':
		return Possessive, upper, true
	case 'a':
		return PossessiveAbsolute, upper, true
	}
	return 0, false, false
}
