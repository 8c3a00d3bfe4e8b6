package dialog

import (
	"strings"

	"github.com/cornish/cellnotes/ui"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// margin is the blank space between the side borders and body content
const margin = 1

// builder paints dialog rows between box borders
type builder struct {
	box        ui.BoxChars
	pal        ui.Palette
	width      int // Total box width including borders
	innerWidth int // Width inside borders
	lines      []string
}

func newBuilder(box ui.BoxChars, pal ui.Palette, width int) *builder {
	return &builder{
		box:        box,
		pal:        pal,
		width:      width,
		innerWidth: width - 2,
	}
}

func (b *builder) row(inner string) string {
	return b.pal.Border + b.box.Vertical + b.pal.Dialog + inner + b.pal.Border + b.box.Vertical + b.pal.Dialog
}

// addTitleBorder adds the top border with an embedded title and, when
// closeMark is set, a close control in the right corner. It returns the
// x range of the close control.
func (b *builder) addTitleBorder(title, closeMark string) (int, int) {
	closeW := runewidth.StringWidth(closeMark)
	room := b.innerWidth - closeW
	if closeW > 0 {
		room -= 1 // keep one rule char after the control
	}
	if title != "" {
		title = " " + title + " "
	}
	if runewidth.StringWidth(title) > room {
		title = runewidth.Truncate(title, room, "")
	}
	tw := runewidth.StringWidth(title)
	padLeft := (room - tw) / 2
	padRight := room - tw - padLeft

	var sb strings.Builder
	sb.WriteString(b.pal.Border + b.box.TopLeft + strings.Repeat(b.box.Horizontal, padLeft))
	sb.WriteString(b.pal.Title + title + b.pal.Dialog)
	sb.WriteString(b.pal.Border + strings.Repeat(b.box.Horizontal, padRight))

	x0, x1 := -1, -1
	if closeW > 0 {
		x0 = 1 + room
		x1 = x0 + closeW
		sb.WriteString(closeMark + b.box.Horizontal)
	}
	sb.WriteString(b.box.TopRight + b.pal.Dialog)
	b.lines = append(b.lines, sb.String())
	return x0, x1
}

func (b *builder) addBottomBorder() {
	b.lines = append(b.lines, b.pal.Border+b.box.BottomLeft+strings.Repeat(b.box.Horizontal, b.innerWidth)+b.box.BottomRight+b.pal.Dialog)
}

func (b *builder) addSeparator() {
	b.lines = append(b.lines, b.pal.Border+b.box.TeeLeft+strings.Repeat(b.box.Horizontal, b.innerWidth)+b.box.TeeRight+b.pal.Dialog)
}

func (b *builder) addEmptyLine() {
	b.lines = append(b.lines, b.row(strings.Repeat(" ", b.innerWidth)))
}

// addText word-wraps plain text inside the margins
func (b *builder) addText(text string) {
	b.addStyledText("", text)
}

// addStyledText word-wraps text and paints it with an escape prefix
func (b *builder) addStyledText(style, text string) {
	width := b.contentWidth()
	wrapped := ansi.Wrap(text, width, "")
	for _, line := range strings.Split(wrapped, "\n") {
		pad := strings.Repeat(" ", margin)
		b.lines = append(b.lines, b.row(pad+style+b.padText(line, width)+b.pal.Dialog+pad))
	}
}

// addRaw adds an already-styled widget line inside the margins
func (b *builder) addRaw(line string) {
	width := b.contentWidth()
	if ansi.StringWidth(line) > width {
		line = ansi.Truncate(line, width, "")
	}
	fill := width - ansi.StringWidth(line)
	pad := strings.Repeat(" ", margin)
	b.lines = append(b.lines, b.row(pad+line+b.pal.Dialog+strings.Repeat(" ", fill)+pad))
}

// buttonCell is one painted button with its x range in the row
type buttonCell struct {
	key    ButtonKey
	x0, x1 int
}

// addButtonRow centers the buttons and returns their x ranges
func (b *builder) addButtonRow(buttons []ButtonSpec, focused ButtonKey, busy func(ButtonKey) bool) []buttonCell {
	const gap = 2
	labels := make([]string, len(buttons))
	total := 0
	for i, spec := range buttons {
		labels[i] = "[ " + spec.Label + " ]"
		total += runewidth.StringWidth(labels[i])
	}
	total += gap * max(0, len(buttons)-1)

	padLeft := max(0, (b.innerWidth-total)/2)
	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", padLeft))

	cells := make([]buttonCell, 0, len(buttons))
	x := 1 + padLeft
	for i, spec := range buttons {
		if i > 0 {
			sb.WriteString(strings.Repeat(" ", gap))
			x += gap
		}
		w := runewidth.StringWidth(labels[i])
		switch {
		case busy(spec.Key):
			sb.WriteString(b.pal.Disabled + labels[i] + b.pal.Dialog)
		case spec.Key == focused:
			sb.WriteString(b.pal.Focus + labels[i] + b.pal.Dialog)
		default:
			sb.WriteString(labels[i])
		}
		cells = append(cells, buttonCell{key: spec.Key, x0: x, x1: x + w})
		x += w
	}

	used := padLeft + total
	if used < b.innerWidth {
		sb.WriteString(strings.Repeat(" ", b.innerWidth-used))
	}
	b.lines = append(b.lines, b.row(sb.String()))
	return cells
}

// padText pads plain text to width (left-aligned)
func (b *builder) padText(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw > width {
		return runewidth.Truncate(s, width, "")
	}
	return s + strings.Repeat(" ", width-sw)
}

func (b *builder) contentWidth() int {
	return max(1, b.innerWidth-2*margin)
}

func (b *builder) height() int {
	return len(b.lines)
}

// render paints the dialog at the given total width and records the
// clickable regions relative to the dialog's top-left corner
func (d *Dialog) render(width int) []string {
	doc := d.doc
	b := newBuilder(doc.box, doc.styles.Palette, width)
	var regions []hitRegion

	closeMark := ""
	if d.titleClose {
		closeMark = doc.box.Close
	}
	if x0, x1 := b.addTitleBorder(d.title, closeMark); x0 >= 0 {
		regions = append(regions, hitRegion{y: 0, x0: x0, x1: x1, close: true})
	}
	b.addEmptyLine()

	for _, block := range d.frame.Blocks {
		if block.Widget == nil {
			b.addText(block.Text)
			continue
		}
		for row, line := range block.Widget.Lines(b.contentWidth()) {
			regions = append(regions, hitRegion{
				y: b.height(), x0: 1 + margin, x1: 1 + margin + b.contentWidth(),
				widget: block.Widget, row: row,
			})
			b.addRaw(line)
		}
	}

	if d.errText != "" {
		b.addEmptyLine()
		b.addStyledText(doc.styles.Palette.Error, d.errText)
	}

	b.addEmptyLine()
	b.addSeparator()
	y := b.height()
	focused, _ := d.focusedButton()
	for _, c := range b.addButtonRow(d.buttons, focused.Key, d.Busy) {
		regions = append(regions, hitRegion{y: y, x0: c.x0, x1: c.x1, button: c.key})
	}
	b.addBottomBorder()

	d.regions = regions
	return b.lines
}
