// Package report renders printed ASTs for people: character diffs between
// two printers, and an indented layout for long single-line output.
package report

import (
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

var (
	deleted  = color.New(color.FgRed)
	inserted = color.New(color.FgGreen)
)

// Diff writes a character level diff between the current and previous
// printers' output and reports whether the two differ. Text only the current
// printer produced is red and prefixed with "-"; text only the previous one
// produced is green and prefixed with "+". Equal texts write nothing.
func Diff(w io.Writer, current, previous string) bool {
	if current == previous {
		return false
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(current, previous, false))

	changed := false
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			changed = true
			deleted.Fprint(w, "-"+d.Text)
		case diffmatchpatch.DiffInsert:
			changed = true
			inserted.Fprint(w, "+"+d.Text)
		default:
			io.WriteString(w, d.Text)
		}
	}
	return changed
}

// Indent writes s with a line break and two extra spaces of indentation
// after every "(" and a line break before every ")". Existing line breaks
// are dropped.
func Indent(w io.Writer, s string) {
	var b strings.Builder
	depth := 0
	newline := func() {
		b.WriteByte('\n')
		b.WriteString(strings.Repeat("  ", depth))
	}

	for _, r := range s {
		switch r {
		case '(':
			b.WriteRune(r)
			depth++
			newline()
		case ')':
			if depth > 0 {
				depth--
			}
			newline()
			b.WriteRune(r)
		case '\n', '\r':
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('\n')
	io.WriteString(w, b.String())
}
