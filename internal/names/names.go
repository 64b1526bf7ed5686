// Package names parses BibTeX author fields into structured person names.
//
// A BibTeX author field is a single string: persons separated by the
// word "and" at brace depth zero, each person in one of three forms:
//
//	First von Last
//	von Last, First
//	von Last, Suffix, First
//
// The "von" part is the run of lowercase-initial tokens between the
// given and family names. Brace groups count as single tokens.
package names

import (
	"strings"
	"unicode"
)

// Person is one parsed name. Each part is an ordered token list in
// written order. Family never includes the lowercase particle tokens.
type Person struct {
	Given    []string
	Particle []string
	Family   []string
	Suffix   []string
}

// SplitList splits an author field on the separator word "and" at
// brace depth zero. Empty segments are dropped.
func SplitList(field string) []string {
	var names []string
	var cur strings.Builder
	depth := 0
	tokens := strings.Fields(field)
	for _, tok := range tokens {
		if depth == 0 && tok == "and" {
			if s := strings.TrimSpace(cur.String()); s != "" {
				names = append(names, s)
			}
			cur.Reset()
			continue
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(tok)
		depth += strings.Count(tok, "{") - strings.Count(tok, "}")
		if depth < 0 {
			depth = 0
		}
	}
	if s := strings.TrimSpace(cur.String()); s != "" {
		names = append(names, s)
	}
	return names
}

// Parse parses a single person name in any of the three BibTeX forms.
func Parse(name string) Person {
	parts := splitDepthZero(name, ',')
	var p Person
	switch len(parts) {
	case 0:
		return Person{}
	case 1:
		p = parseFirstVonLast(tokenize(parts[0]))
	case 2:
		p = parseVonLast(tokenize(parts[0]))
		p.Given = tokenize(parts[1])
	default:
		// von Last, Suffix, First; extra commas fold into First.
		p = parseVonLast(tokenize(parts[0]))
		p.Suffix = tokenize(parts[1])
		p.Given = tokenize(strings.Join(parts[2:], " "))
	}
	p.Given = stripAll(p.Given)
	p.Particle = stripAll(p.Particle)
	p.Family = stripAll(p.Family)
	p.Suffix = stripAll(p.Suffix)
	return p
}

// FirstSurname returns the first surname component of the first person
// in an author field. Reports false when the field yields no usable
// surname.
func FirstSurname(field string) (string, bool) {
	persons := SplitList(field)
	if len(persons) == 0 {
		return "", false
	}
	p := Parse(persons[0])
	if len(p.Family) == 0 || p.Family[0] == "" {
		return "", false
	}
	return p.Family[0], true
}

// parseFirstVonLast handles the no-comma form. The final token always
// belongs to Family; the von part is the span from the first to the
// last lowercase-initial token among the preceding tokens.
func parseFirstVonLast(tokens []string) Person {
	if len(tokens) == 0 {
		return Person{}
	}
	if len(tokens) == 1 {
		return Person{Family: tokens}
	}
	head := tokens[:len(tokens)-1]
	vonStart, vonEnd := -1, -1
	for i, tok := range head {
		if isLowercaseToken(tok) {
			if vonStart == -1 {
				vonStart = i
			}
			vonEnd = i
		}
	}
	if vonStart == -1 {
		return Person{
			Given:  head,
			Family: tokens[len(tokens)-1:],
		}
	}
	return Person{
		Given:    tokens[:vonStart],
		Particle: tokens[vonStart : vonEnd+1],
		Family:   tokens[vonEnd+1:],
	}
}

// parseVonLast handles the part before the first comma: a leading run
// of lowercase-initial tokens is the von part, the rest is Family. At
// least one token stays in Family.
func parseVonLast(tokens []string) Person {
	if len(tokens) == 0 {
		return Person{}
	}
	von := 0
	for von < len(tokens)-1 && isLowercaseToken(tokens[von]) {
		von++
	}
	p := Person{Family: tokens[von:]}
	if von > 0 {
		p.Particle = tokens[:von]
	}
	return p
}

// tokenize splits on whitespace at brace depth zero. Braces stay in
// the tokens so later decisions can tell brace groups apart; they are
// stripped on output.
func tokenize(s string) []string {
	var tokens []string
	var cur strings.Builder
	depth := 0
	for _, r := range s {
		switch {
		case r == '{':
			depth++
			cur.WriteRune(r)
		case r == '}':
			if depth > 0 {
				depth--
			}
			cur.WriteRune(r)
		case unicode.IsSpace(r) && depth == 0:
			if cur.Len() > 0 {
				tokens = append(tokens, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteRune(r)
		}
	}
	if cur.Len() > 0 {
		tokens = append(tokens, cur.String())
	}
	return tokens
}

// stripAll strips one level of outer braces from every token.
func stripAll(tokens []string) []string {
	for i, tok := range tokens {
		tokens[i] = stripOuterBraces(tok)
	}
	return tokens
}

// splitDepthZero splits s on sep outside brace groups, trimming each part.
func splitDepthZero(s string, sep rune) []string {
	var parts []string
	var cur strings.Builder
	depth := 0
	for _, r := range s {
		switch {
		case r == '{':
			depth++
			cur.WriteRune(r)
		case r == '}':
			if depth > 0 {
				depth--
			}
			cur.WriteRune(r)
		case r == sep && depth == 0:
			parts = append(parts, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	parts = append(parts, strings.TrimSpace(cur.String()))

	// Drop empty trailing/leading segments but keep interior structure.
	var out []string
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// stripOuterBraces removes one matched pair of braces enclosing the
// whole token, e.g. "{van Beethoven}" -> "van Beethoven".
func stripOuterBraces(tok string) string {
	if len(tok) < 2 || tok[0] != '{' || tok[len(tok)-1] != '}' {
		return tok
	}
	depth := 0
	for i, r := range tok {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 && i != len(tok)-1 {
				return tok // braces close before the end, not an outer pair
			}
		}
	}
	return tok[1 : len(tok)-1]
}

// isLowercaseToken reports whether a token's first letter is lowercase.
// Brace groups are never von tokens; tokens with no letters are not either.
func isLowercaseToken(tok string) bool {
	if strings.HasPrefix(tok, "{") {
		return false
	}
	for _, r := range tok {
		if unicode.IsLetter(r) {
			return unicode.IsLower(r)
		}
	}
	return false
}
