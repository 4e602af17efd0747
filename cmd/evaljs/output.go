package main

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"

	"github.com/linkxzhou/evaljs"
)

// printer writes results and errors, colored when the terminal allows it.
type printer struct {
	out *termenv.Output
	err *termenv.Output
}

func newPrinter(stdout, stderr io.Writer, color bool) *printer {
	opts := []termenv.OutputOption{}
	if !color {
		opts = append(opts, termenv.WithProfile(termenv.Ascii))
	}
	return &printer{
		out: termenv.NewOutput(stdout, opts...),
		err: termenv.NewOutput(stderr, opts...),
	}
}

func (p *printer) value(v evaljs.Value) {
	s := v.Inspect()
	style := p.out.String(s)
	switch v.Type {
	case evaljs.TypeNumber, evaljs.TypeBoolean:
		style = style.Foreground(termenv.ANSIYellow)
	case evaljs.TypeString:
		style = style.Foreground(termenv.ANSIGreen)
	case evaljs.TypeUndefined, evaljs.TypeNull:
		style = style.Faint()
	case evaljs.TypeFunction:
		style = style.Foreground(termenv.ANSICyan)
	}
	fmt.Fprintln(p.out, style)
}

func (p *printer) raw(s string) {
	fmt.Fprintln(p.out, s)
}

func (p *printer) error(err error) {
	fmt.Fprintln(p.err, p.err.String(err.Error()).Foreground(termenv.ANSIRed))
}
