package highlight

import "unicode"

// Definition describes a language to the rule-based lexer.
type Definition struct {
	Name       string
	Extensions []string

	Keywords []string
	Types    []string

	LineComment       string
	BlockCommentStart string
	BlockCommentEnd   string

	StringDelims   []rune
	RawStringDelim string
}

// Simple is a rule-based single-pass line lexer driven by a Definition.
// It handles line and block comments, quoted and raw strings, numbers,
// and keyword/type identifiers. It is deliberately approximate; the
// goal is useful coloring, not a parser.
type Simple struct {
	def      Definition
	keywords map[string]bool
	types    map[string]bool
}

// NewSimple builds a lexer from a language definition.
func NewSimple(def Definition) *Simple {
	s := &Simple{
		def:      def,
		keywords: make(map[string]bool, len(def.Keywords)),
		types:    make(map[string]bool, len(def.Types)),
	}
	for _, kw := range def.Keywords {
		s.keywords[kw] = true
	}
	for _, ty := range def.Types {
		s.types[ty] = true
	}
	return s
}

// Name returns the language name.
func (s *Simple) Name() string {
	return s.def.Name
}

// HighlightLine lexes one line.
func (s *Simple) HighlightLine(text string, state LexerState) ([]Token, LexerState) {
	runes := []rune(text)
	var tokens []Token
	pos := 0

	// Resume a construct left open by the previous line.
	switch state {
	case StateBlockComment:
		end, found := s.findAt(runes, 0, s.def.BlockCommentEnd)
		if !found {
			return []Token{{Start: 0, End: len(runes), Type: TokenComment}}, StateBlockComment
		}
		tokens = append(tokens, Token{Start: 0, End: end, Type: TokenComment})
		pos = end
	case StateRawString:
		end, found := s.findAt(runes, 0, s.def.RawStringDelim)
		if !found {
			return []Token{{Start: 0, End: len(runes), Type: TokenString}}, StateRawString
		}
		tokens = append(tokens, Token{Start: 0, End: end, Type: TokenString})
		pos = end
	}

	for pos < len(runes) {
		r := runes[pos]

		switch {
		case s.hasAt(runes, pos, s.def.LineComment):
			tokens = append(tokens, Token{Start: pos, End: len(runes), Type: TokenComment})
			return tokens, StateInitial

		case s.hasAt(runes, pos, s.def.BlockCommentStart):
			start := pos
			end, found := s.findAt(runes, pos+len([]rune(s.def.BlockCommentStart)), s.def.BlockCommentEnd)
			if !found {
				tokens = append(tokens, Token{Start: start, End: len(runes), Type: TokenComment})
				return tokens, StateBlockComment
			}
			tokens = append(tokens, Token{Start: start, End: end, Type: TokenComment})
			pos = end

		case s.hasAt(runes, pos, s.def.RawStringDelim):
			start := pos
			end, found := s.findAt(runes, pos+len([]rune(s.def.RawStringDelim)), s.def.RawStringDelim)
			if !found {
				tokens = append(tokens, Token{Start: start, End: len(runes), Type: TokenString})
				return tokens, StateRawString
			}
			tokens = append(tokens, Token{Start: start, End: end, Type: TokenString})
			pos = end

		case s.isStringDelim(r):
			start := pos
			pos = s.scanString(runes, pos+1, r)
			tokens = append(tokens, Token{Start: start, End: pos, Type: TokenString})

		case unicode.IsDigit(r):
			start := pos
			pos = s.scanNumber(runes, pos)
			tokens = append(tokens, Token{Start: start, End: pos, Type: TokenNumber})

		case isIdentStart(r):
			start := pos
			pos = scanIdent(runes, pos)
			word := string(runes[start:pos])
			switch {
			case s.keywords[word]:
				tokens = append(tokens, Token{Start: start, End: pos, Type: TokenKeyword})
			case s.types[word]:
				tokens = append(tokens, Token{Start: start, End: pos, Type: TokenTypeName})
			case pos < len(runes) && runes[pos] == '(':
				tokens = append(tokens, Token{Start: start, End: pos, Type: TokenFunction})
			}

		default:
			pos++
		}
	}

	return tokens, StateInitial
}

// hasAt reports whether the literal starts at pos. An empty literal
// never matches.
func (s *Simple) hasAt(runes []rune, pos int, lit string) bool {
	if lit == "" {
		return false
	}
	for _, lr := range lit {
		if pos >= len(runes) || runes[pos] != lr {
			return false
		}
		pos++
	}
	return true
}

// findAt scans forward for the literal and returns the index just past
// it. Reports false when the literal does not occur.
func (s *Simple) findAt(runes []rune, from int, lit string) (int, bool) {
	if lit == "" {
		return len(runes), false
	}
	width := len([]rune(lit))
	for i := from; i+width <= len(runes); i++ {
		if s.hasAt(runes, i, lit) {
			return i + width, true
		}
	}
	return len(runes), false
}

func (s *Simple) isStringDelim(r rune) bool {
	for _, d := range s.def.StringDelims {
		if r == d {
			return true
		}
	}
	return false
}

// scanString scans a quoted string with backslash escapes. An
// unterminated string runs to end of line.
func (s *Simple) scanString(runes []rune, pos int, delim rune) int {
	for pos < len(runes) {
		switch runes[pos] {
		case '\\':
			pos += 2
		case delim:
			return pos + 1
		default:
			pos++
		}
	}
	return len(runes)
}

func (s *Simple) scanNumber(runes []rune, pos int) int {
	for pos < len(runes) {
		r := runes[pos]
		if !unicode.IsDigit(r) && r != '.' && r != '_' && r != 'x' && r != 'X' &&
			!(r >= 'a' && r <= 'f') && !(r >= 'A' && r <= 'F') {
			return pos
		}
		pos++
	}
	return pos
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func scanIdent(runes []rune, pos int) int {
	for pos < len(runes) && (unicode.IsLetter(runes[pos]) || unicode.IsDigit(runes[pos]) || runes[pos] == '_') {
		pos++
	}
	return pos
}
