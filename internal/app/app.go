// Package app wires the editor together and runs the main loop.
package app

import (
	"fmt"
	"sync/atomic"

	"github.com/filedesless/ted/internal/config"
	"github.com/filedesless/ted/internal/dispatcher"
	"github.com/filedesless/ted/internal/engine/buffer"
	"github.com/filedesless/ted/internal/engine/clipboard"
	"github.com/filedesless/ted/internal/engine/selection"
	"github.com/filedesless/ted/internal/input/mode"
	"github.com/filedesless/ted/internal/renderer"
	"github.com/filedesless/ted/internal/renderer/backend"
	"github.com/filedesless/ted/internal/renderer/highlight"
	"github.com/filedesless/ted/internal/renderer/viewport"
)

// bufferTab is one entry in the buffer ring: a buffer and its
// highlight cache.
type bufferTab struct {
	buf   *buffer.Buffer
	cache *highlight.Cache
}

// Editor owns every component and runs the read-dispatch-render loop.
// All editing state is confined to the loop goroutine; the only
// cross-goroutine traffic is the config watcher publishing a pointer.
type Editor struct {
	be       backend.Backend
	tabs     []*bufferTab
	cur      int
	sel      *selection.Model
	reg      *clipboard.Register
	modes    *mode.Manager
	vp       *viewport.Viewport
	registry *highlight.Registry
	disp     *dispatcher.Dispatcher
	rend     *renderer.Renderer
	log      *Logger

	cfg       atomic.Pointer[config.Config]
	watcher   *config.Watcher
	status    string
	themeName string
}

// New builds an editor around the given backend. When path is
// non-empty the file is loaded; a nonexistent path starts an empty
// buffer bound to it, while an unreadable one is a fatal startup
// error.
func New(be backend.Backend, cfg config.Config, path string, log *Logger) (*Editor, error) {
	if log == nil {
		log = &Logger{level: LogOff}
	}

	var buf *buffer.Buffer
	var err error
	if path != "" {
		buf, err = buffer.Load(path)
		if err != nil {
			return nil, err
		}
	} else {
		buf = buffer.New()
	}

	e := &Editor{
		be:        be,
		sel:       selection.New(),
		reg:       clipboard.New(),
		modes:     mode.NewManager(),
		registry:  highlight.NewRegistry(),
		log:       log,
		themeName: cfg.Theme,
	}
	e.cfg.Store(&cfg)

	tab := &bufferTab{buf: buf, cache: highlight.NewCache(e.registry.ForPath(buf.Path()))}
	e.tabs = []*bufferTab{tab}

	width, height := be.Size()
	if width < 1 {
		width = 80
	}
	if height < 2 {
		height = 24
	}
	e.vp = viewport.New(width, height-1)
	e.disp = dispatcher.New(tab.buf, e.sel, e.reg, e.modes, e.vp, tab.cache)
	e.rend = renderer.New(be, highlight.ThemeByName(cfg.Theme))

	log.Infof("editor started, buffer %q", buf.Name())
	return e, nil
}

// WatchConfig reloads settings when the config file changes. Safe to
// skip; the editor then keeps its startup config.
func (e *Editor) WatchConfig(path string) error {
	w, err := config.Watch(path, func(cfg config.Config) {
		e.cfg.Store(&cfg)
		e.log.SetLevel(ParseLogLevel(cfg.LogLevel))
		e.log.Infof("config reloaded from %s", path)
	})
	if err != nil {
		return err
	}
	e.watcher = w
	return nil
}

// Run executes the editor loop until the user quits. The backend must
// already be initialized.
func (e *Editor) Run() error {
	defer func() {
		if e.watcher != nil {
			e.watcher.Close()
		}
	}()

	for {
		e.vp.SetMargin(e.cfg.Load().ScrollMargin)
		e.draw()

		switch ev := e.be.PollEvent().(type) {
		case backend.KeyEvent:
			res := e.disp.Handle(ev.Key)
			e.status = res.Status
			if res.Status != "" {
				e.log.Debugf("status: %s", res.Status)
			}
			switch {
			case res.NewBuffer:
				e.newScratchBuffer()
			case res.NextBuffer:
				e.nextBuffer()
			case res.Open != "":
				e.openFile(res.Open)
			}
			if res.Quit {
				e.log.Infof("quit")
				return nil
			}
			e.vp.EnsureVisible(e.active().buf.Cursor())

		case backend.ResizeEvent:
			height := ev.Height - 1
			if height < 1 {
				height = 1
			}
			e.vp.Resize(ev.Width, height)
			e.vp.EnsureVisible(e.active().buf.Cursor())
			e.log.Debugf("resize to %dx%d", ev.Width, ev.Height)

		case backend.QuitEvent:
			return nil

		default:
			_ = ev
		}
	}
}

func (e *Editor) active() *bufferTab {
	return e.tabs[e.cur]
}

// switchTo makes the given ring entry current and points the
// dispatcher at it.
func (e *Editor) switchTo(i int) {
	e.cur = i
	tab := e.active()
	e.disp.SetBuffer(tab.buf, tab.cache)
	e.vp.EnsureVisible(tab.buf.Cursor())
}

// newScratchBuffer appends an empty unnamed buffer to the ring and
// switches to it. The previous buffer stays reachable via the ring.
func (e *Editor) newScratchBuffer() {
	tab := &bufferTab{buf: buffer.New(), cache: highlight.NewCache(nil)}
	e.tabs = append(e.tabs, tab)
	e.switchTo(len(e.tabs) - 1)
	e.status = fmt.Sprintf("new buffer #%d", len(e.tabs))
	e.log.Infof("new scratch buffer")
}

// nextBuffer cycles to the next ring entry.
func (e *Editor) nextBuffer() {
	if len(e.tabs) < 2 {
		e.status = "no other buffer"
		return
	}
	e.switchTo((e.cur + 1) % len(e.tabs))
	e.status = fmt.Sprintf("switched to %q", e.active().buf.Name())
	e.log.Debugf("switched to buffer %d", e.cur)
}

// openFile loads a path into a new ring entry and switches to it. A
// nonexistent path starts an empty buffer bound to it, like startup.
func (e *Editor) openFile(path string) {
	buf, err := buffer.Load(path)
	if err != nil {
		e.status = fmt.Sprintf("cannot open %s: %v", path, err)
		e.log.Errorf("open %s: %v", path, err)
		return
	}
	tab := &bufferTab{buf: buf, cache: highlight.NewCache(e.registry.ForPath(buf.Path()))}
	e.tabs = append(e.tabs, tab)
	e.switchTo(len(e.tabs) - 1)
	e.status = fmt.Sprintf("%q opened", buf.Name())
	e.log.Infof("opened %s", path)
}

func (e *Editor) draw() {
	modeLabel := e.modes.Current().String()
	if e.modes.Current() == mode.Visual {
		modeLabel = e.sel.Kind().String()
	}

	cfg := e.cfg.Load()
	if cfg.Theme != e.themeName {
		e.themeName = cfg.Theme
		e.rend.SetTheme(highlight.ThemeByName(cfg.Theme))
	}

	tab := e.active()
	e.rend.Draw(renderer.Frame{
		Buffer:         tab.buf,
		Cache:          tab.cache,
		Viewport:       e.vp,
		Selection:      e.sel,
		Mode:           modeLabel,
		Pending:        e.disp.Pending(),
		Status:         e.status,
		TabWidth:       cfg.TabWidth,
		ShowWhitespace: cfg.ShowWhitespace,
	})
}

// Buffer exposes the active buffer, for tests and the save-on-exit
// prompt in main.
func (e *Editor) Buffer() *buffer.Buffer {
	return e.active().buf
}

// Buffers returns how many buffers the ring holds.
func (e *Editor) Buffers() int {
	return len(e.tabs)
}

// Status returns the current status message.
func (e *Editor) Status() string {
	return e.status
}

// Config returns the live configuration.
func (e *Editor) Config() config.Config {
	return *e.cfg.Load()
}
