package format

import "strings"

// Span is a piece of text tagged with a display color and weight. The draw
// layer (internal/tui) turns spans into lipgloss-rendered ANSI; format
// itself stays free of any terminal library.
type Span struct {
	Text  string
	Color string
	Bold  bool
}

// bracketPalette is the 8-color rainbow indexed by nesting depth (depth %
// len(bracketPalette)); the 16-color ANSI ids below are chosen so adjacent
// depths are visually distinct.
var bracketPalette = []string{"1", "3", "2", "6", "4", "5", "9", "13"}

const (
	colorKey    = "14" // bright cyan
	colorString = "10" // bright green
	colorNumber = "11" // bright yellow
	colorBool   = "3"
	colorNull   = "8" // dark gray
)

// ColorizeJSON walks pretty-printed JSON text (as returned by Pretty with
// KindJSON) and emits spans with an 8-color bracket-rainbow indexed by
// nesting depth, keys colored distinctly from string values, and
// numbers/booleans/null colored distinctly from both. Only called by the
// draw layer when content-type contains "json"; format never colors
// on its own initiative.
func ColorizeJSON(pretty string) []Span {
	var spans []Span
	depth := 0
	i := 0
	n := len(pretty)
	for i < n {
		c := pretty[i]
		switch {
		case c == '{' || c == '[':
			color := bracketPalette[depth%len(bracketPalette)]
			depth++
			spans = append(spans, Span{Text: string(c), Color: color, Bold: true})
			i++
		case c == '}' || c == ']':
			if depth > 0 {
				depth--
			}
			color := bracketPalette[depth%len(bracketPalette)]
			spans = append(spans, Span{Text: string(c), Color: color, Bold: true})
			i++
		case c == '"':
			lit, end := scanString(pretty, i)
			isKey := nextSignificantIs(pretty, end, ':')
			color := colorString
			if isKey {
				color = colorKey
			}
			spans = append(spans, Span{Text: lit, Color: color})
			i = end
		case isTokenStart(c):
			tok, end := scanToken(pretty, i)
			spans = append(spans, Span{Text: tok, Color: tokenColor(tok)})
			i = end
		default:
			start := i
			for i < n && pretty[i] != '{' && pretty[i] != '}' && pretty[i] != '[' && pretty[i] != ']' && pretty[i] != '"' && !isTokenStart(pretty[i]) {
				i++
			}
			if i == start {
				i++
			}
			spans = append(spans, Span{Text: pretty[start:i]})
		}
	}
	return spans
}

func scanString(s string, start int) (string, int) {
	i := start + 1
	for i < len(s) {
		if s[i] == '\\' {
			i += 2
			continue
		}
		if s[i] == '"' {
			i++
			break
		}
		i++
	}
	if i > len(s) {
		i = len(s)
	}
	return s[start:i], i
}

func nextSignificantIs(s string, from int, want byte) bool {
	for i := from; i < len(s); i++ {
		if s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r' {
			continue
		}
		return s[i] == want
	}
	return false
}

func isTokenStart(c byte) bool {
	return (c >= '0' && c <= '9') || c == '-' || c == 't' || c == 'f' || c == 'n'
}

func scanToken(s string, start int) (string, int) {
	i := start
	for i < len(s) {
		c := s[i]
		if (c >= '0' && c <= '9') || c == '-' || c == '+' || c == '.' || c == 'e' || c == 'E' ||
			c == 't' || c == 'r' || c == 'u' || c == 'f' || c == 'a' || c == 'l' || c == 's' || c == 'n' {
			i++
			continue
		}
		break
	}
	return s[start:i], i
}

func tokenColor(tok string) string {
	switch {
	case tok == "true" || tok == "false":
		return colorBool
	case tok == "null":
		return colorNull
	default:
		return colorNumber
	}
}

// Render flattens spans back to plain text, ignoring color — used by
// callers that only need the raw string (e.g. clipboard copy).
func Render(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Text)
	}
	return b.String()
}
