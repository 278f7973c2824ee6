package prefixdict

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Part is one step of a composition: either a reference to an atom
// (AtomID > 0) or a run of literal text.
type Part struct {
	AtomID  int
	Literal string
}

// AtomRef returns a part referencing atom id.
func AtomRef(id int) Part {
	return Part{AtomID: id}
}

// Literal returns a literal text part.
func Literal(text string) Part {
	return Part{Literal: text}
}

// IsAtom is true for atom references.
func (p Part) IsAtom() bool {
	return p.AtomID > 0
}

func (p Part) String() string {
	if p.IsAtom() {
		return "@" + strconv.Itoa(p.AtomID)
	}
	return strconv.Quote(p.Literal)
}

// Composition is the recipe which rebuilds one level-1 prefix from atoms
// and literal runs. ID equals the composition ID of its prefix.
type Composition struct {
	ID        int
	Prefix    string
	Frequency int
	Parts     []Part
}

// Expression returns the serialized form of c's parts.
func (c Composition) Expression() string {
	return EncodeExpression(c.Parts)
}

// decompose rewrites text greedily: at every position the longest matching
// atom wins, otherwise one rune is taken over as literal text. Adjacent
// literal runes coalesce into a single part.
func decompose(text string, m atomMatcher) []Part {
	var parts []Part
	for rest := text; len(rest) > 0; {
		if id, n := m.LongestMatch(rest); n > 0 {
			parts = append(parts, AtomRef(id))
			rest = rest[n:]
			continue
		}
		_, size := utf8.DecodeRuneInString(rest)
		if last := len(parts) - 1; last >= 0 && !parts[last].IsAtom() {
			parts[last].Literal += rest[:size]
		} else {
			parts = append(parts, Literal(rest[:size]))
		}
		rest = rest[size:]
	}
	return parts
}

// EncodeExpression serializes parts. An atom reference is written as its ID
// followed by '>', literal text is written as is, except that '\' and '>'
// are escaped with a backslash, and so are the trailing digits of a literal
// directly followed by an atom reference. Line breaks are written as `\n`
// and `\r`, so an expression always fits on one line.
func EncodeExpression(parts []Part) string {
	var sb strings.Builder
	for i, p := range parts {
		if p.IsAtom() {
			sb.WriteString(strconv.Itoa(p.AtomID))
			sb.WriteByte('>')
			continue
		}
		protect := len(p.Literal)
		if i+1 < len(parts) && parts[i+1].IsAtom() {
			protect = len(strings.TrimRight(p.Literal, "0123456789"))
		}
		for j := 0; j < len(p.Literal); j++ {
			c := p.Literal[j]
			switch c {
			case '\n':
				sb.WriteString(`\n`)
				continue
			case '\r':
				sb.WriteString(`\r`)
				continue
			}
			if c == '\\' || c == '>' || j >= protect {
				sb.WriteByte('\\')
			}
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// DecodeExpression is the inverse of EncodeExpression. `\n` and `\r` stand
// for line breaks, any other escaped character for itself. atom looks up the
// text of an atom ID. A digit run followed by '>' whose ID is unknown to atom
// is kept as literal text.
func DecodeExpression(expr string, atom func(id int) (string, bool)) string {
	var sb strings.Builder
	sb.Grow(len(expr) * 2)
	for i := 0; i < len(expr); {
		c := expr[i]
		switch {
		case c == '\\' && i+1 < len(expr) && expr[i+1] == 'n':
			sb.WriteByte('\n')
			i += 2
		case c == '\\' && i+1 < len(expr) && expr[i+1] == 'r':
			sb.WriteByte('\r')
			i += 2
		case c == '\\' && i+1 < len(expr):
			_, size := utf8.DecodeRuneInString(expr[i+1:])
			sb.WriteString(expr[i+1 : i+1+size])
			i += 1 + size
		case isDigit(c):
			j := i
			for j < len(expr) && isDigit(expr[j]) {
				j++
			}
			if j < len(expr) && expr[j] == '>' {
				if id, err := strconv.Atoi(expr[i:j]); err == nil {
					if text, ok := atom(id); ok {
						sb.WriteString(text)
						i = j + 1
						continue
					}
				}
				j++ // unresolvable reference stays literal, including '>'
			}
			sb.WriteString(expr[i:j])
			i = j
		default:
			sb.WriteByte(c)
			i++
		}
	}
	return sb.String()
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
