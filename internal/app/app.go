package app

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/dragstream/internal/dom"
	"github.com/dshills/dragstream/internal/drag"
	"github.com/dshills/dragstream/internal/term"
)

// ErrQuit signals a normal user-requested exit from Run.
var ErrQuit = errors.New("quit")

// Config configures the demo application.
type Config struct {
	// Items is the number of list items. Defaults to 6.
	Items int

	// Horizontal lays the list out left-to-right instead of stacked.
	Horizontal bool

	// SettingsPath is an optional JSON settings file for engine
	// options.
	SettingsPath string

	// Verbose enables debug logging.
	Verbose bool
}

// App is the demo application.
type App struct {
	logger *log.Logger
	cfg    Config

	doc  *dom.Document
	list *dom.Node
	ctrl *drag.Controller
	syn  *term.Synthesizer

	terminal *term.Terminal
	colors   map[string]tcell.Color

	indicator *indicator
	highlight *highlight
}

// New builds the document, the engine, and the middleware subscribers.
func New(cfg Config) (*App, error) {
	if cfg.Items <= 0 {
		cfg.Items = 6
	}

	level := log.InfoLevel
	if cfg.Verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})

	a := &App{logger: logger, cfg: cfg, doc: dom.NewDocument()}
	a.buildTree()

	opts, err := a.engineOptions()
	if err != nil {
		return nil, err
	}
	a.ctrl, err = drag.New(a.doc, opts)
	if err != nil {
		return nil, err
	}

	a.indicator, err = newIndicator(a.ctrl)
	if err != nil {
		return nil, err
	}
	a.highlight, err = newHighlight(a.ctrl)
	if err != nil {
		return nil, err
	}
	if _, err := a.ctrl.Subscribe(a.onPayload); err != nil {
		return nil, err
	}

	a.syn = term.NewSynthesizer(a.doc)
	return a, nil
}

// buildTree creates body > ul > li[data-id]* with one palette color per
// item.
func (a *App) buildTree() {
	a.list = dom.NewNode("ul")
	a.doc.Body().Append(a.list)

	a.colors = make(map[string]tcell.Color, a.cfg.Items)
	palette := term.Palette(a.cfg.Items)
	for i := 0; i < a.cfg.Items; i++ {
		id := fmt.Sprintf("item-%d", i+1)
		li := dom.NewNode("li")
		li.SetAttr("data-id", id)
		li.SetAttr("label", fmt.Sprintf("Item %d", i+1))
		a.list.Append(li)
		a.colors[id] = palette[i]
	}
}

// engineOptions merges the settings file (if any) with the demo's fixed
// choices.
func (a *App) engineOptions() (drag.Options, error) {
	opts := drag.Options{}
	if a.cfg.SettingsPath != "" {
		loaded, err := drag.LoadSettings(a.cfg.SettingsPath)
		if err != nil {
			return drag.Options{}, err
		}
		opts = loaded
	}
	if a.cfg.Horizontal {
		opts.Axis = drag.AxisHorizontal
	}
	opts.Logger = a.logger
	return opts, nil
}

// SetTerminal attaches the terminal used for rendering and input.
func (a *App) SetTerminal(t *term.Terminal) {
	a.terminal = t
}

// Run drives the event loop until the user quits.
func (a *App) Run() error {
	if a.terminal == nil {
		return errors.New("app: no terminal attached")
	}
	if err := a.terminal.Init(); err != nil {
		return fmt.Errorf("app: init terminal: %w", err)
	}

	a.relayout()
	a.render()

	for {
		switch ev := a.terminal.PollEvent().(type) {
		case *tcell.EventResize:
			a.relayout()
			a.render()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
				(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
				return ErrQuit
			}
		case *tcell.EventMouse:
			a.syn.Translate(ev)
			a.render()
		case nil:
			// Screen finalized underneath us.
			return nil
		}
	}
}

// Shutdown releases the engine and the terminal.
func (a *App) Shutdown() {
	if a.ctrl != nil {
		a.ctrl.Close()
	}
	if a.terminal != nil {
		a.terminal.Shutdown()
	}
}

// onPayload is the app's own stream consumer: it logs the lifecycle and
// applies the reorder on drop.
func (a *App) onPayload(p drag.Payload) {
	switch p.Phase {
	case drag.PhaseDragStart:
		a.logger.Info("drag started", "elements", len(p.DragElements))
	case drag.PhaseDragEnd:
		if p.DropElement != nil && p.Position != drag.PositionNone {
			a.logger.Info("dropped",
				"target", p.DropElement.Attr("data-id"),
				"position", p.Position.String())
			applyDrop(p)
			a.relayout()
		} else {
			a.logger.Info("drag cancelled")
		}
	}
}

// applyDrop moves the dragged elements relative to the drop target,
// preserving their order.
func applyDrop(p drag.Payload) {
	target := p.DropElement
	parent := target.Parent()
	if parent == nil {
		return
	}

	// The reference sibling is fixed up front so a multi-element drag
	// lands in selection order.
	var ref *dom.Node
	switch p.Position {
	case drag.PositionBefore:
		ref = target
	case drag.PositionAfter:
		ref = target.NextSibling()
	}

	for _, el := range p.DragElements {
		if el == target {
			continue
		}
		if p.Position == drag.PositionIn {
			target.Append(el)
			continue
		}
		parent.InsertBefore(el, ref)
	}
}
