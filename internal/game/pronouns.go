package game

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

// Pronoun markers are "|" followed by one of sSoOpPaA. A doubled "||" is a
// literal escape for the markup renderer and never starts a marker.
var pronounMarker = func() *regexp2.Regexp {
	re := regexp2.MustCompile(`(?<!\|)\|(?!\|)[sSoOpPaA]`, regexp2.None)
	re.MatchTimeout = 250 * time.Millisecond
	return re
}()

// replaceMarkers runs the marker pattern over text.
var replaceMarkers = func(text string, eval regexp2.MatchEvaluator) (string, error) {
	return pronounMarker.ReplaceFunc(text, eval, -1, -1)
}

var (
	// ErrUnsupportedPayload reports a payload that carries no text to rewrite.
	ErrUnsupportedPayload = errors.New("unsupported payload")
	// ErrTransformFailed reports a failure while rewriting markers.
	ErrTransformFailed = errors.New("pronoun substitution failed")
)

// Tuple is a message payload whose head is the text and whose remaining
// elements travel with it untouched.
type Tuple []any

// Substitution is the outcome of SubstitutePronouns. Text is always safe to
// deliver: on failure it is the original payload.
type Substitution struct {
	Text any
	Err  error
}

// SubstitutePronouns replaces every pronoun marker in text with the form
// matching g. Strings are rewritten directly; for a Tuple only the head is
// rewritten. nil is returned as-is.
func SubstitutePronouns(text any, g Gender) (result Substitution) {
	result.Text = text
	if text == nil {
		return result
	}
	defer func() {
		if r := recover(); r != nil {
			result = Substitution{Text: text, Err: fmt.Errorf("%w: %v", ErrTransformFailed, r)}
		}
	}()

	switch v := text.(type) {
	case string:
		out, err := replacePronouns(v, g)
		if err != nil {
			result.Err = err
			return result
		}
		result.Text = out
	case Tuple:
		if len(v) == 0 {
			result.Err = ErrUnsupportedPayload
			return result
		}
		head, ok := v[0].(string)
		if !ok {
			result.Err = ErrUnsupportedPayload
			return result
		}
		out, err := replacePronouns(head, g)
		if err != nil {
			result.Err = err
			return result
		}
		rewritten := make(Tuple, len(v))
		rewritten[0] = out
		copy(rewritten[1:], v[1:])
		result.Text = rewritten
	default:
		result.Err = ErrUnsupportedPayload
	}
	return result
}

func replacePronouns(text string, g Gender) (string, error) {
	if !utf8.ValidString(text) {
		// the matcher works on runes and would turn stray bytes into U+FFFD
		return replacePronounBytes(text, g), nil
	}
	out, err := replaceMarkers(text, func(m regexp2.Match) string {
		marker := m.String()
		if word, ok := pronounFor(marker[len(marker)-1], g); ok {
			return word
		}
		return marker
	})
	if err != nil {
		return text, fmt.Errorf("%w: %v", ErrTransformFailed, err)
	}
	return out, nil
}

// replacePronounBytes applies the marker rule byte by byte. Markers are
// ASCII, so everything else is copied through unchanged.
func replacePronounBytes(text string, g Gender) string {
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		if text[i] == '|' && i+1 < len(text) && (i == 0 || text[i-1] != '|') {
			if word, ok := pronounFor(text[i+1], g); ok {
				b.WriteString(word)
				i++
				continue
			}
		}
		b.WriteByte(text[i])
	}
	return b.String()
}

func pronounFor(letter byte, g Gender) (string, bool) {
	c, upper, ok := caseForMarker(letter)
	if !ok {
		return "", false
	}
	word := Pronoun(g, c)
	if upper {
		word = capitalizeFirst(word)
	}
	return word, true
}

// capitalizeFirst upper-cases the first rune only.
func capitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
