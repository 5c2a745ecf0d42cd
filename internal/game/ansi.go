package game

import (
	"strings"
	"unicode"
)

const (
	AnsiReset     = "\x1b[0m"
	AnsiBold      = "\x1b[1m"
	AnsiDim       = "\x1b[2m"
	AnsiItalic    = "\x1b[3m"
	AnsiUnderline = "\x1b[4m"
	AnsiBlack     = "\x1b[30m"
	AnsiRed       = "\x1b[31m"
	AnsiGreen     = "\x1b[32m"
	AnsiYellow    = "\x1b[33m"
	AnsiBlue      = "\x1b[34m"
	AnsiMagenta   = "\x1b[35m"
	AnsiCyan      = "\x1b[36m"
	AnsiWhite     = "\x1b[37m"
)

// Style wraps text with the provided ANSI attributes.
func Style(text string, attrs ...string) string {
	if len(attrs) == 0 {
		return text
	}
	return strings.Join(attrs, "") + text + AnsiReset
}

// Trim normalises a telnet input line: control and formatting characters are
// dropped, other whitespace becomes a plain space.
func Trim(s string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r == ' ':
			return r
		case unicode.IsSpace(r):
			return ' '
		case unicode.IsControl(r), unicode.Is(unicode.Cf, r), !unicode.IsPrint(r):
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(cleaned)
}

// Ansi ensures output strings end with a reset sequence.
func Ansi(c string) string {
	if strings.Contains(c, "\x1b[") && !strings.HasSuffix(c, AnsiReset) {
		return c + AnsiReset
	}
	return c
}

// Prompt renders the player's prompt. Players who set a custom prompt (for
// example through diagnose) see it ahead of the marker.
func Prompt(p *Player) string {
	marker := Style("> ", AnsiBold, AnsiYellow)
	if p != nil {
		if custom := p.PromptText(); custom != "" {
			return Ansi("\r\n" + Style(custom, AnsiDim) + " " + marker)
		}
	}
	return Ansi("\r\n" + marker)
}

var markupColors = map[byte]string{
	'x': AnsiBlack,
	'r': AnsiRed,
	'g': AnsiGreen,
	'y': AnsiYellow,
	'b': AnsiBlue,
	'm': AnsiMagenta,
	'c': AnsiCyan,
	'w': AnsiWhite,
}

var markupBackgrounds = map[byte]string{
	'X': "\x1b[40m",
	'R': "\x1b[41m",
	'G': "\x1b[42m",
	'Y': "\x1b[43m",
	'B': "\x1b[44m",
	'M': "\x1b[45m",
	'C': "\x1b[46m",
	'W': "\x1b[47m",
}

// markupCode decodes the code starting at s[i] == '|'. It returns the ANSI
// sequence, the number of bytes consumed and whether a code was recognised.
func markupCode(s string, i int) (string, int, bool) {
	if i+1 >= len(s) {
		return "", 0, false
	}
	c := s[i+1]
	switch c {
	case '|':
		return "|", 2, true
	case '/':
		return "\r\n", 2, true
	case 'n':
		return AnsiReset, 2, true
	case 'h':
		return AnsiBold, 2, true
	case 'u':
		return AnsiUnderline, 2, true
	case 'i':
		return AnsiItalic, 2, true
	case '[', '!':
		if i+2 >= len(s) {
			return "", 0, false
		}
		key := unicode.ToUpper(rune(s[i+2]))
		if key > unicode.MaxASCII {
			return "", 0, false
		}
		if c == '[' {
			if bg, ok := markupBackgrounds[byte(key)]; ok {
				return bg, 3, true
			}
			return "", 0, false
		}
		if fg, ok := markupColors[byte(unicode.ToLower(key))]; ok {
			return fg, 3, true
		}
		return "", 0, false
	}
	if fg, ok := markupColors[c]; ok {
		return fg, 2, true
	}
	if fg, ok := markupColors[c|0x20]; ok && c >= 'A' && c <= 'Z' {
		return AnsiBold + fg, 2, true
	}
	return "", 0, false
}

// RenderMarkup converts "|c"-style colour markup into ANSI sequences. "||"
// renders a literal bar and unknown codes are left untouched.
func RenderMarkup(s string) string {
	if !strings.Contains(s, "|") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 16)
	styled := false
	for i := 0; i < len(s); {
		if s[i] != '|' {
			b.WriteByte(s[i])
			i++
			continue
		}
		seq, n, ok := markupCode(s, i)
		if !ok {
			b.WriteByte('|')
			i++
			continue
		}
		if strings.HasPrefix(seq, "\x1b[") {
			styled = true
		}
		b.WriteString(seq)
		i += n
	}
	out := b.String()
	if styled {
		return Ansi(out)
	}
	return out
}

// StripMarkup removes colour markup, keeping only the visible text.
func StripMarkup(s string) string {
	if !strings.Contains(s, "|") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] != '|' {
			b.WriteByte(s[i])
			i++
			continue
		}
		seq, n, ok := markupCode(s, i)
		if !ok {
			b.WriteByte('|')
			i++
			continue
		}
		if !strings.HasPrefix(seq, "\x1b[") {
			b.WriteString(seq)
		}
		i += n
	}
	return b.String()
}
