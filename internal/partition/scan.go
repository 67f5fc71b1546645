package partition

import "strings"

// token kinds produced by the clause scanner.
const (
	tokWord  = iota // bare word, e.g. PARTITION, ENGINE, 10
	tokIdent        // backquoted identifier, unquoted
	tokStr          // quoted string, unquoted
	tokGroup        // parenthesized group, inner content
	tokSym          // single symbol, e.g. "=" or ","
	tokEOF
)

type token struct {
	kind int
	text string
}

// scanner walks a partition clause respecting quotes and nested parens.
type scanner struct {
	s   string
	pos int
}

func (sc *scanner) skipSpace() {
	for sc.pos < len(sc.s) && isSpace(sc.s[sc.pos]) {
		sc.pos++
	}
}

// peek returns the next token without consuming it.
func (sc *scanner) peek() token {
	save := sc.pos
	t := sc.next()
	sc.pos = save
	return t
}

func (sc *scanner) next() token {
	sc.skipSpace()
	if sc.pos >= len(sc.s) {
		return token{kind: tokEOF}
	}
	switch c := sc.s[sc.pos]; {
	case c == '`':
		return token{kind: tokIdent, text: sc.readQuoted('`')}
	case c == '\'' || c == '"':
		return token{kind: tokStr, text: sc.readQuoted(c)}
	case c == '(':
		end := matchingParen(sc.s, sc.pos)
		if end < 0 {
			inner := sc.s[sc.pos+1:]
			sc.pos = len(sc.s)
			return token{kind: tokGroup, text: inner}
		}
		inner := sc.s[sc.pos+1 : end]
		sc.pos = end + 1
		return token{kind: tokGroup, text: inner}
	case c == '=' || c == ',' || c == ')':
		sc.pos++
		return token{kind: tokSym, text: string(c)}
	default:
		start := sc.pos
		for sc.pos < len(sc.s) && !isSpace(sc.s[sc.pos]) &&
			!strings.ContainsRune("`'\"(),=", rune(sc.s[sc.pos])) {
			sc.pos++
		}
		return token{kind: tokWord, text: sc.s[start:sc.pos]}
	}
}

// readQuoted consumes a quoted region starting at the current position and
// returns its unquoted content. A doubled quote char escapes itself.
func (sc *scanner) readQuoted(q byte) string {
	var out strings.Builder
	sc.pos++ // opening quote
	for sc.pos < len(sc.s) {
		c := sc.s[sc.pos]
		if c == '\\' && q != '`' && sc.pos+1 < len(sc.s) {
			out.WriteByte(sc.s[sc.pos+1])
			sc.pos += 2
			continue
		}
		if c == q {
			if sc.pos+1 < len(sc.s) && sc.s[sc.pos+1] == q {
				out.WriteByte(q)
				sc.pos += 2
				continue
			}
			sc.pos++
			break
		}
		out.WriteByte(c)
		sc.pos++
	}
	return out.String()
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// matchingParen returns the index of the ')' matching the '(' at open,
// skipping quoted regions, or -1 when unbalanced.
func matchingParen(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '`', '\'', '"':
			i = skipQuoted(s, i)
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// skipQuoted returns the index of the quote closing the region opened at i.
func skipQuoted(s string, i int) int {
	q := s[i]
	for j := i + 1; j < len(s); j++ {
		if s[j] == '\\' && q != '`' {
			j++
			continue
		}
		if s[j] == q {
			if j+1 < len(s) && s[j+1] == q {
				j++
				continue
			}
			return j
		}
	}
	return len(s) - 1
}

// splitTopLevel splits s on sep at paren depth zero, outside quoted regions.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '`', '\'', '"':
			i = skipQuoted(s, i)
		case '(':
			depth++
		case ')':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}

// indexKeyword finds kw as a standalone word outside quoted regions,
// case-insensitively, and returns its byte offset or -1.
func indexKeyword(s, kw string) int {
	upper := strings.ToUpper(s)
	kw = strings.ToUpper(kw)
	for i := 0; i+len(kw) <= len(upper); i++ {
		switch upper[i] {
		case '`', '\'', '"':
			i = skipQuoted(upper, i)
			continue
		}
		if upper[i:i+len(kw)] != kw {
			continue
		}
		if i > 0 && isWordChar(upper[i-1]) {
			continue
		}
		if i+len(kw) < len(upper) && isWordChar(upper[i+len(kw)]) {
			continue
		}
		return i
	}
	return -1
}

func isWordChar(c byte) bool {
	return c == '_' || (c >= '0' && c <= '9') || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
