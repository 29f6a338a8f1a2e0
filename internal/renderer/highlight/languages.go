package highlight

import (
	"path/filepath"
	"strings"
)

// GoDefinition describes the Go language.
func GoDefinition() Definition {
	return Definition{
		Name:       "go",
		Extensions: []string{".go"},
		Keywords: []string{
			"break", "case", "chan", "const", "continue", "default", "defer",
			"else", "fallthrough", "for", "func", "go", "goto", "if", "import",
			"interface", "map", "package", "range", "return", "select",
			"struct", "switch", "type", "var", "nil", "true", "false", "iota",
		},
		Types: []string{
			"bool", "byte", "complex64", "complex128", "error", "float32",
			"float64", "int", "int8", "int16", "int32", "int64", "rune",
			"string", "uint", "uint8", "uint16", "uint32", "uint64", "uintptr",
			"any",
		},
		LineComment:       "//",
		BlockCommentStart: "/*",
		BlockCommentEnd:   "*/",
		StringDelims:      []rune{'"', '\''},
		RawStringDelim:    "`",
	}
}

// RustDefinition describes the Rust language.
func RustDefinition() Definition {
	return Definition{
		Name:       "rust",
		Extensions: []string{".rs"},
		Keywords: []string{
			"as", "async", "await", "break", "const", "continue", "crate",
			"dyn", "else", "enum", "extern", "fn", "for", "if", "impl", "in",
			"let", "loop", "match", "mod", "move", "mut", "pub", "ref",
			"return", "self", "Self", "static", "struct", "trait", "type",
			"unsafe", "use", "where", "while", "true", "false",
		},
		Types: []string{
			"bool", "char", "f32", "f64", "i8", "i16", "i32", "i64", "i128",
			"isize", "str", "u8", "u16", "u32", "u64", "u128", "usize",
			"String", "Vec", "Option", "Result", "Box",
		},
		LineComment:       "//",
		BlockCommentStart: "/*",
		BlockCommentEnd:   "*/",
		StringDelims:      []rune{'"'},
	}
}

// PythonDefinition describes Python. Triple-quoted strings are treated
// as the raw multi-line string form.
func PythonDefinition() Definition {
	return Definition{
		Name:       "python",
		Extensions: []string{".py"},
		Keywords: []string{
			"and", "as", "assert", "async", "await", "break", "class",
			"continue", "def", "del", "elif", "else", "except", "finally",
			"for", "from", "global", "if", "import", "in", "is", "lambda",
			"nonlocal", "not", "or", "pass", "raise", "return", "try",
			"while", "with", "yield", "None", "True", "False",
		},
		Types: []string{
			"bool", "bytes", "dict", "float", "int", "list", "set", "str",
			"tuple",
		},
		LineComment:    "#",
		StringDelims:   []rune{'"', '\''},
		RawStringDelim: `"""`,
	}
}

// Registry maps file extensions to highlighters. The zero value is not
// usable; use NewRegistry.
type Registry struct {
	byExt map[string]Highlighter
}

// NewRegistry returns a registry with the built-in languages.
func NewRegistry() *Registry {
	r := &Registry{byExt: make(map[string]Highlighter)}
	for _, def := range []Definition{GoDefinition(), RustDefinition(), PythonDefinition()} {
		hl := NewSimple(def)
		for _, ext := range def.Extensions {
			r.byExt[ext] = hl
		}
	}
	r.byExt[".md"] = NewMarkdown()
	r.byExt[".markdown"] = NewMarkdown()
	return r
}

// Register adds or replaces the highlighter for the given extensions.
func (r *Registry) Register(hl Highlighter, exts ...string) {
	for _, ext := range exts {
		r.byExt[ext] = hl
	}
}

// ForPath returns the highlighter for a file path, or nil when the
// extension is unknown.
func (r *Registry) ForPath(path string) Highlighter {
	ext := strings.ToLower(filepath.Ext(path))
	return r.byExt[ext]
}
