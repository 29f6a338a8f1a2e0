package highlight

import "github.com/filedesless/ted/internal/renderer/core"

// Theme maps token types to render styles.
type Theme map[TokenType]core.Style

// DefaultTheme returns the built-in color scheme.
func DefaultTheme() Theme {
	return Theme{
		TokenKeyword:  core.NewStyle(hexColor("#c678dd")).Bold(),
		TokenTypeName: core.NewStyle(hexColor("#e5c07b")),
		TokenString:   core.NewStyle(hexColor("#98c379")),
		TokenComment:  core.NewStyle(hexColor("#5c6370")).Italic(),
		TokenNumber:   core.NewStyle(hexColor("#d19a66")),
		TokenFunction: core.NewStyle(hexColor("#61afef")),
		TokenHeading:  core.NewStyle(hexColor("#61afef")).Bold(),
	}
}

// LightTheme returns a scheme for light terminal backgrounds.
func LightTheme() Theme {
	return Theme{
		TokenKeyword:  core.NewStyle(hexColor("#a626a4")).Bold(),
		TokenTypeName: core.NewStyle(hexColor("#c18401")),
		TokenString:   core.NewStyle(hexColor("#50a14f")),
		TokenComment:  core.NewStyle(hexColor("#a0a1a7")).Italic(),
		TokenNumber:   core.NewStyle(hexColor("#986801")),
		TokenFunction: core.NewStyle(hexColor("#4078f2")),
		TokenHeading:  core.NewStyle(hexColor("#4078f2")).Bold(),
	}
}

// ThemeByName returns the named color scheme, falling back to the
// default for unknown names.
func ThemeByName(name string) Theme {
	switch name {
	case "light":
		return LightTheme()
	default:
		return DefaultTheme()
	}
}

func hexColor(s string) core.Color {
	c, err := core.ColorFromHex(s)
	if err != nil {
		return core.ColorDefault
	}
	return c
}

// Style returns the style for a token type, falling back to default.
func (t Theme) Style(tt TokenType) core.Style {
	if s, ok := t[tt]; ok {
		return s
	}
	return core.DefaultStyle()
}

// Spans converts lexed tokens into style spans under this theme.
// Tokens with the default style produce no span.
func (t Theme) Spans(tokens []Token) []core.StyleSpan {
	spans := make([]core.StyleSpan, 0, len(tokens))
	for _, tok := range tokens {
		style := t.Style(tok.Type)
		if style.IsDefault() {
			continue
		}
		spans = append(spans, core.StyleSpan{StartCol: tok.Start, EndCol: tok.End, Style: style})
	}
	return spans
}
