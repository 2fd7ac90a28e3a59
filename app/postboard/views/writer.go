package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// writer keeps the first write error so components can emit markup
// without checking every call.
type writer struct {
	w   io.Writer
	err error
}

func (p *writer) raw(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

func (p *writer) rawf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *writer) text(s string) {
	p.raw(templ.EscapeString(s))
}

// attr writes name="value" with value escaped.
func (p *writer) attr(name, value string) {
	p.rawf(` %s="%s"`, name, templ.EscapeString(value))
}

func (p *writer) component(ctx context.Context, c templ.Component) {
	if p.err != nil || c == nil {
		return
	}
	p.err = c.Render(ctx, p.w)
}
