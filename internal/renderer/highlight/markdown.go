package highlight

import "strings"

// Markdown is a minimal markdown highlighter: headings, inline code,
// and fenced code blocks. Fences carry state across lines.
type Markdown struct{}

// NewMarkdown returns the markdown highlighter.
func NewMarkdown() *Markdown {
	return &Markdown{}
}

// Name returns the language name.
func (m *Markdown) Name() string {
	return "markdown"
}

// HighlightLine lexes one line of markdown.
func (m *Markdown) HighlightLine(text string, state LexerState) ([]Token, LexerState) {
	runes := []rune(text)
	trimmed := strings.TrimSpace(text)
	fence := strings.HasPrefix(trimmed, "```")

	if state == StateCodeFence {
		if fence {
			return []Token{{Start: 0, End: len(runes), Type: TokenComment}}, StateInitial
		}
		return []Token{{Start: 0, End: len(runes), Type: TokenString}}, StateCodeFence
	}

	if fence {
		return []Token{{Start: 0, End: len(runes), Type: TokenComment}}, StateCodeFence
	}

	if strings.HasPrefix(trimmed, "#") {
		return []Token{{Start: 0, End: len(runes), Type: TokenHeading}}, StateInitial
	}

	// Inline code spans.
	var tokens []Token
	start := -1
	for i, r := range runes {
		if r != '`' {
			continue
		}
		if start < 0 {
			start = i
		} else {
			tokens = append(tokens, Token{Start: start, End: i + 1, Type: TokenString})
			start = -1
		}
	}
	return tokens, StateInitial
}
