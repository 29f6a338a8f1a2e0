package buffer

import (
	"fmt"
	"os"
	"time"
)

// backingFile tracks the file a buffer was loaded from, including the
// modification time observed at load or last save. Save refuses to
// overwrite a file that changed on disk in the meantime.
type backingFile struct {
	path    string
	modTime time.Time
}

// Load reads a file into a new buffer. A path that does not exist
// yields an empty buffer associated with that path, so the first save
// creates the file. Any other read failure is returned to the caller.
func Load(path string, opts ...Option) (*Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(append([]Option{WithPath(path)}, opts...)...), nil
		}
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	b := NewFromString(string(data), append([]Option{WithPath(path)}, opts...)...)

	if info, err := os.Stat(path); err == nil {
		b.file.modTime = info.ModTime()
	}
	return b, nil
}

// Save writes the buffer to its backing file and clears the dirty flag.
// It returns ErrNoPath if the buffer has no path, and ErrFileChanged if
// the file's modification time no longer matches the one recorded when
// the buffer was loaded or last saved.
func (b *Buffer) Save() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.file.path == "" {
		return ErrNoPath
	}
	return b.save(b.file.path)
}

// SaveAs writes the buffer to the given path and re-associates the
// buffer with it.
func (b *Buffer) SaveAs(path string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if path != b.file.path {
		b.file = backingFile{path: path}
	}
	if b.name == "" {
		b.name = path
	}
	return b.save(path)
}

// save performs the write. Callers must hold the write lock.
func (b *Buffer) save(path string) error {
	if !b.file.modTime.IsZero() {
		if info, err := os.Stat(path); err == nil && !info.ModTime().Equal(b.file.modTime) {
			return fmt.Errorf("save %s: %w", path, ErrFileChanged)
		}
	}

	var sb []byte
	for _, ln := range b.lines {
		sb = append(sb, string(ln.runes)...)
		sb = append(sb, '\n')
	}

	if err := os.WriteFile(path, sb, 0o644); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	if info, err := os.Stat(path); err == nil {
		b.file.modTime = info.ModTime()
	}
	b.dirty = false
	return nil
}

// Touch re-reads the backing file's modification time, accepting the
// on-disk state as current. Used after the user confirms an overwrite.
func (b *Buffer) Touch() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.file.path == "" {
		return
	}
	if info, err := os.Stat(b.file.path); err == nil {
		b.file.modTime = info.ModTime()
	}
}
