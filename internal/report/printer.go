package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// spacing indents subjects below a heading, matching the event column.
const spacing = "      "

// Printer renders events as aligned, colored lines:
//
//	  invoke  putup.scaffold:define_structure
//	  create  my-project/README.md
type Printer struct {
	w      io.Writer
	colors map[Kind]*color.Color
	title  *color.Color
}

// NewPrinter creates a Printer writing to w. With noColor set, no escape
// sequences are emitted regardless of the terminal.
func NewPrinter(w io.Writer, noColor bool) *Printer {
	p := &Printer{
		w: w,
		colors: map[Kind]*color.Color{
			KindInvoke: color.New(color.FgBlue, color.Bold),
			KindCreate: color.New(color.FgGreen, color.Bold),
			KindSkip:   color.New(color.FgYellow, color.Bold),
			KindRun:    color.New(color.FgMagenta, color.Bold),
		},
		title: color.New(color.FgCyan, color.Bold),
	}
	if noColor {
		for _, c := range p.colors {
			c.DisableColor()
		}
		p.title.DisableColor()
	}
	return p
}

// Emit implements Sink.
func (p *Printer) Emit(e Event) {
	kind := fmt.Sprintf("%8s", e.Kind)
	if c, ok := p.colors[e.Kind]; ok {
		kind = c.Sprint(kind)
	}
	line := kind + "  " + e.Subject
	if e.Detail != "" {
		line += " (" + e.Detail + ")"
	}
	fmt.Fprintln(p.w, line)
}

// PrintPlan writes the resolved action identifiers under a heading.
func (p *Printer) PrintPlan(ids []string) {
	fmt.Fprintln(p.w, p.title.Sprint("Planned Actions:"))
	fmt.Fprintln(p.w)
	for _, id := range ids {
		fmt.Fprintln(p.w, spacing+id)
	}
}
