// Package highlight provides incremental syntax highlighting.
//
// A Highlighter lexes one line at a time. Because constructs like block
// comments span lines, each line is lexed against the state the lexer
// was left in at the end of the previous line, and reports the state it
// ends in. The Cache stores per-line results keyed by the buffer's line
// generation stamps and re-lexes only lines whose content or incoming
// state changed.
package highlight

// TokenType classifies a lexed span for theming.
type TokenType int

// Token classifications.
const (
	TokenText TokenType = iota
	TokenKeyword
	TokenTypeName
	TokenString
	TokenComment
	TokenNumber
	TokenFunction
	TokenHeading
)

// LexerState is the lexer state carried across line boundaries.
// StateInitial is the state at the top of every document.
type LexerState int

// Cross-line lexer states.
const (
	StateInitial LexerState = iota
	StateBlockComment
	StateRawString
	StateCodeFence
)

// Token is a classified span within a single line. Start and End are
// rune offsets; End is exclusive.
type Token struct {
	Start int
	End   int
	Type  TokenType
}

// Highlighter lexes a single line given the state left by the line
// above, and returns the state it ends in.
type Highlighter interface {
	// Name returns the language name for the status line.
	Name() string

	// HighlightLine lexes one line of text. The returned tokens are
	// ordered and non-overlapping; uncovered columns take the default
	// style.
	HighlightLine(line string, state LexerState) ([]Token, LexerState)
}
