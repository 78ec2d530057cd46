// Package writer provides a line-aware text sink used to emit C source.
package writer

import (
	"io"
	"strings"
)

// DefaultTabWidth is the indentation step used by PushTab.
const DefaultTabWidth = 2

// Source is anything that can render itself through a SourceWriter.
type Source interface {
	Render(w *SourceWriter)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(w *SourceWriter)

// Render calls f(w).
func (f SourceFunc) Render(w *SourceWriter) { f(w) }

// SourceWriter writes text sequentially while tracking the current column,
// so that continuation lines can be aligned.
//
// Indentation is a stack of column counts. It is emitted lazily, on the
// first write after a new line. The first write error is kept and every
// later write becomes a no-op; check Err when done.
type SourceWriter struct {
	out      io.Writer
	tabWidth int
	spaces   []int

	lineStarted   bool
	lineLength    int
	maxLineLength int

	err error
}

// New returns a SourceWriter writing to out with the default tab width.
func New(out io.Writer) *SourceWriter {
	return NewWithTabWidth(out, DefaultTabWidth)
}

// NewWithTabWidth returns a SourceWriter with the given tab width.
func NewWithTabWidth(out io.Writer, tabWidth int) *SourceWriter {
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}
	return &SourceWriter{
		out:        out,
		tabWidth:   tabWidth,
		spaces:     []int{0},
	}
}

// Err returns the first error returned by the underlying writer.
func (w *SourceWriter) Err() error {
	return w.err
}

func (w *SourceWriter) raw(s string) {
	if w.err != nil || s == "" {
		return
	}
	_, w.err = io.WriteString(w.out, s)
}

// Write writes s, which must not contain a newline.
func (w *SourceWriter) Write(s string) {
	if !w.lineStarted {
		w.raw(strings.Repeat(" ", w.Spaces()))
		w.lineStarted = true
		w.lineLength += w.Spaces()
	}
	w.raw(s)
	w.lineLength += len(s)
	if w.lineLength > w.maxLineLength {
		w.maxLineLength = w.lineLength
	}
}

// NewLine ends the current line.
func (w *SourceWriter) NewLine() {
	w.raw("\n")
	w.lineStarted = false
	w.lineLength = 0
}

// Spaces returns the current indentation.
func (w *SourceWriter) Spaces() int {
	return w.spaces[len(w.spaces)-1]
}

// PushTab indents by one tab stop.
func (w *SourceWriter) PushTab() {
	spaces := w.Spaces() - w.Spaces()%w.tabWidth
	w.spaces = append(w.spaces, spaces+w.tabWidth)
}

// PushSetSpaces sets the indentation to an absolute column.
func (w *SourceWriter) PushSetSpaces(spaces int) {
	w.spaces = append(w.spaces, spaces)
}

// PopTab restores the indentation in effect before the last push.
func (w *SourceWriter) PopTab() {
	if len(w.spaces) == 1 {
		panic("writer: PopTab without matching push")
	}
	w.spaces = w.spaces[:len(w.spaces)-1]
}

// LineLengthForAlign returns the column the next write lands on.
func (w *SourceWriter) LineLengthForAlign() int {
	if w.lineStarted {
		return w.lineLength
	}
	return w.Spaces()
}

// MaxLineLength returns the length of the longest line written so far,
// indentation included.
func (w *SourceWriter) MaxLineLength() int {
	return w.maxLineLength
}

// WriteHorizontalList renders items on the current line separated by sep.
func (w *SourceWriter) WriteHorizontalList(items []Source, sep string) {
	for i, item := range items {
		if i != 0 {
			w.Write(sep)
		}
		item.Render(w)
	}
}

// WriteVerticalList renders items one per line, aligned to the current
// column. sep is written at the end of every line but the last.
func (w *SourceWriter) WriteVerticalList(items []Source, sep string) {
	w.PushSetSpaces(w.LineLengthForAlign())
	for i, item := range items {
		if i != 0 {
			w.Write(sep)
			w.NewLine()
		}
		item.Render(w)
	}
	w.PopTab()
}
