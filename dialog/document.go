package dialog

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/cornish/cellnotes/clipboard"
	"github.com/cornish/cellnotes/config"
	"github.com/cornish/cellnotes/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// Options configures a Document. Zero fields take defaults.
type Options struct {
	Styles    *ui.Styles
	Box       *ui.BoxChars
	Keys      *config.KeybindingsConfig
	Layout    *config.DialogConfig
	Clipboard *clipboard.Clipboard // nil disables copy and paste
	Logger    *slog.Logger
}

// Document is the overlay layer dialogs attach to. It routes input to the
// topmost visible dialog and paints it over the host's view.
type Document struct {
	ctx    context.Context
	logger *slog.Logger
	styles ui.Styles
	box    ui.BoxChars
	keys   keyMap
	layout config.DialogConfig
	clip   *clipboard.Clipboard

	width, height int
	stack         []*Dialog // attached dialogs, oldest first
	closed        []int     // disposed since the last Update
}

// NewDocument creates a document. ctx is handed to dialog callbacks.
func NewDocument(ctx context.Context, opts Options) *Document {
	doc := &Document{
		ctx:    ctx,
		logger: opts.Logger,
		keys:   newKeyMap(opts.Keys),
		clip:   opts.Clipboard,
	}
	if doc.ctx == nil {
		doc.ctx = context.Background()
	}
	if doc.logger == nil {
		doc.logger = slog.New(slog.DiscardHandler)
	}
	if opts.Styles != nil {
		doc.styles = *opts.Styles
	} else {
		doc.styles = ui.DefaultStyles()
	}
	if opts.Box != nil {
		doc.box = *opts.Box
	} else {
		doc.box = ui.UnicodeBox
	}
	if opts.Layout != nil {
		doc.layout = *opts.Layout
	} else {
		doc.layout = config.DefaultConfig().Dialog
	}
	return doc
}

// Show renders, attaches and shows d, skipping the steps already done. A
// dialog that fails to render or attach is disposed.
func (doc *Document) Show(d *Dialog) error {
	if d.State() == Constructed {
		if err := d.CreateDom(); err != nil {
			d.Dispose()
			return err
		}
	}
	if d.State() == Rendered {
		if err := d.EnterDocument(doc); err != nil {
			d.Dispose()
			return err
		}
	}
	return d.SetVisible(true)
}

func (doc *Document) attach(d *Dialog) func() {
	doc.stack = append(doc.stack, d)
	doc.logger.Debug("dialog attached", "id", d.ID(), "title", d.Title())
	return func() {
		if i := slices.Index(doc.stack, d); i >= 0 {
			doc.stack = slices.Delete(doc.stack, i, i+1)
		}
		doc.closed = append(doc.closed, d.ID())
	}
}

// Active returns the topmost visible dialog, or nil
func (doc *Document) Active() *Dialog {
	for i := len(doc.stack) - 1; i >= 0; i-- {
		if doc.stack[i].Visible() {
			return doc.stack[i]
		}
	}
	return nil
}

// Len returns the number of attached dialogs
func (doc *Document) Len() int {
	return len(doc.stack)
}

// Context returns the context handed to callbacks
func (doc *Document) Context() context.Context {
	return doc.ctx
}

// SetSize records the terminal size
func (doc *Document) SetSize(width, height int) {
	doc.width, doc.height = width, height
}

// Update routes msg and returns the resulting command. Completion messages
// go to the dialog that issued them; input goes to the active dialog.
func (doc *Document) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		doc.SetSize(msg.Width, msg.Height)
	case settledMsg:
		if d := doc.find(msg.id); d != nil {
			cmd = d.Update(msg)
		} else {
			doc.logger.Debug("completion for detached dialog dropped", "id", msg.id)
		}
	case ClosedMsg, FailedMsg:
		// Upward messages; nothing to route
	default:
		if d := doc.Active(); d != nil {
			cmd = d.Update(msg)
		}
	}

	return tea.Batch(cmd, doc.flushClosed())
}

func (doc *Document) flushClosed() tea.Cmd {
	if len(doc.closed) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, len(doc.closed))
	for i, id := range doc.closed {
		cmds[i] = func() tea.Msg { return ClosedMsg{ID: id} }
	}
	doc.closed = nil
	return tea.Batch(cmds...)
}

func (doc *Document) find(id int) *Dialog {
	for _, d := range doc.stack {
		if d.ID() == id {
			return d
		}
	}
	return nil
}

// dialogWidth clamps the configured width to the terminal
func (doc *Document) dialogWidth() int {
	w := doc.layout.Width
	if doc.width > 0 {
		w = min(w, doc.width)
	}
	return max(w, 12)
}

// View paints the active dialog centered over background
func (doc *Document) View(background string) string {
	d := doc.Active()
	if d == nil {
		return background
	}

	width := doc.dialogWidth()
	lines := d.render(width)

	bgLines := strings.Split(background, "\n")
	for len(bgLines) < doc.height {
		bgLines = append(bgLines, "")
	}
	viewW, viewH := doc.width, len(bgLines)
	if viewW == 0 {
		viewW = width
	}

	startX := max(0, (viewW-width)/2)
	startY := max(0, (viewH-len(lines))/2)
	d.originX, d.originY = startX, startY

	for i, line := range lines {
		y := startY + i
		if y >= len(bgLines) {
			bgLines = append(bgLines, "")
		}
		bgLines[y] = overlayLineAt(doc.styles.Palette.Dialog+line+ui.Reset, bgLines[y], startX)
	}
	return strings.Join(bgLines, "\n")
}

// overlayLineAt replaces the cells of bg starting at column offset with
// line, keeping the styling of the background on both sides
func overlayLineAt(line, bg string, offset int) string {
	w := ansi.StringWidth(line)

	var sb strings.Builder
	prefix := ansi.Truncate(bg, offset, "")
	sb.WriteString(prefix)
	if pw := ansi.StringWidth(prefix); pw < offset {
		sb.WriteString(strings.Repeat(" ", offset-pw))
	}
	sb.WriteString(ui.Reset)
	sb.WriteString(line)
	if ansi.StringWidth(bg) > offset+w {
		sb.WriteString(ansi.TruncateLeft(bg, offset+w, ""))
	}
	return sb.String()
}
