package editor

import (
	"fmt"
	"strings"

	"github.com/cornish/cellnotes/matrix"

	"github.com/mattn/go-runewidth"
)

// headerRows is the number of body rows above the character list
const headerRows = 2

// bodyHeight is the screen minus the status bar
func (e *Editor) bodyHeight() int {
	return max(1, e.height-1)
}

func (e *Editor) listHeight() int {
	return max(1, e.bodyHeight()-headerRows)
}

// ensureVisible scrolls the character list so the cursor row is shown
func (e *Editor) ensureVisible() {
	rows := e.listHeight()
	if e.column < e.scroll {
		e.scroll = e.column
	}
	if e.column >= e.scroll+rows {
		e.scroll = e.column - rows + 1
	}
}

// columnAt maps a screen row to a character index
func (e *Editor) columnAt(y int) (int, bool) {
	if y < headerRows {
		return 0, false
	}
	col := e.scroll + y - headerRows
	if col >= len(e.matrix.Columns) {
		return 0, false
	}
	return col, true
}

// View implements tea.Model
func (e *Editor) View() string {
	if e.hasCell() {
		e.statusbar.SetCell(e.taxon, e.column, e.matrix.Taxa[e.taxon], e.matrix.Columns[e.column].Label)
		e.statusbar.SetNoteCount(e.notebook.CountFor(e.column))
	}
	body := e.doc.View(e.renderBody())
	return body + "\n" + e.statusbar.View()
}

func (e *Editor) renderBody() string {
	lines := make([]string, 0, e.bodyHeight())

	header := " " + e.matrix.Title
	if len(e.matrix.Taxa) > 0 {
		header += fmt.Sprintf("  |  Taxon %d/%d: %s", e.taxon+1, len(e.matrix.Taxa), e.matrix.Taxa[e.taxon])
	}
	lines = append(lines, e.styles.Header.Render(fitWidth(header, e.width)))
	lines = append(lines, strings.Repeat(" ", e.width))

	labelW := max(8, min(28, e.width/2-6))
	end := min(len(e.matrix.Columns), e.scroll+e.listHeight())
	for i := e.scroll; i < end; i++ {
		col := e.matrix.Columns[i]
		marker := "  "
		if i == e.column {
			marker = "> "
		}
		label := runewidth.FillRight(runewidth.Truncate(col.Label, labelW, "…"), labelW)
		row := fitWidth(fmt.Sprintf("%s%3d  %s  %s", marker, i+1, label, e.summary(i)), e.width)
		if i == e.column {
			row = e.styles.Selection.Render(row)
		}
		lines = append(lines, row)
	}

	for len(lines) < e.bodyHeight() {
		lines = append(lines, strings.Repeat(" ", e.width))
	}
	return strings.Join(lines, "\n")
}

// summary describes the notes on the current taxon's cell in column i and
// the column total
func (e *Editor) summary(i int) string {
	var parts []string
	if len(e.matrix.Taxa) > 0 {
		notes := e.notebook.NotesFor(matrix.Target{Taxon: e.taxon, Column: i})
		if n := len(notes); n > 0 {
			last := notes[n-1].Status
			parts = append(parts, fmt.Sprintf("%d %s (%s)", n, plural(n, "note"),
				matrix.NameFor(e.config.StatusOptions(), last)))
		}
	}
	if n := e.notebook.CountFor(i); n > 0 {
		parts = append(parts, fmt.Sprintf("%d in column", n))
	}
	return strings.Join(parts, ", ")
}

// fitWidth pads or truncates s to exactly width cells
func fitWidth(s string, width int) string {
	if runewidth.StringWidth(s) > width {
		return runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(s, width)
}
