package buffer

import "path/filepath"

// Option configures a Buffer at construction time.
type Option func(*Buffer)

// WithName sets the buffer's display name.
func WithName(name string) Option {
	return func(b *Buffer) {
		b.name = name
	}
}

// WithPath associates the buffer with a file path. The display name
// defaults to the path's base name unless WithName is also given.
func WithPath(path string) Option {
	return func(b *Buffer) {
		b.file.path = path
		if b.name == "" {
			b.name = filepath.Base(path)
		}
	}
}
