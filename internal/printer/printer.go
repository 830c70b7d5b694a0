// Package printer writes human oriented output for CLI commands. Colors are
// only emitted when the destination is a terminal.
package printer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hay-kot/criterio"
	"golang.org/x/term"
)

// ANSI sequences, Tokyo Night palette.
const (
	ColorReset     = "\033[0m"
	ColorRed       = "\033[38;2;215;95;107m"  // #d75f6b
	ColorGreen     = "\033[38;2;158;206;106m" // #9ece6a
	ColorYellow    = "\033[38;2;224;175;104m" // #e0af68
	ColorGray      = "\033[38;2;86;95;137m"   // #565f89
	ColorBold      = "\033[1m"
	ColorUnderline = "\033[4m"
)

// Symbols
const (
	Check = "✔"
	Cross = "✘"
	Dot   = "•"
	Arrow = "→"
)

type ctxKey struct{}

// Printer writes formatted lines to a writer.
type Printer struct {
	w     io.Writer
	color bool
}

// New creates a Printer for w. Color is enabled when w is a terminal.
func New(w io.Writer) *Printer {
	color := false
	if f, ok := w.(*os.File); ok {
		color = term.IsTerminal(int(f.Fd()))
	}
	return &Printer{w: w, color: color}
}

// NewContext returns a context carrying p.
func NewContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the printer stored in ctx, or one writing to stderr.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return New(os.Stderr)
}

func (p *Printer) line(s string) {
	_, _ = io.WriteString(p.w, s+"\n")
}

func (p *Printer) paint(color, text string) string {
	if !p.color {
		return text
	}
	return color + text + ColorReset
}

// FatalError prints err in a box. criterio field errors are listed one per
// line. It does not exit.
func (p *Printer) FatalError(err error) {
	if err == nil {
		return
	}

	bar := p.paint(ColorRed, "│")

	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		p.line(p.paint(ColorRed, "╭ Error"))
		p.line(bar + " " + p.paint(ColorGray, err.Error()))
		p.line(p.paint(ColorRed, "╵"))
		return
	}

	// The wrapping context, e.g. "load config", precedes the field errors
	// in the message.
	prefix := ""
	if idx := strings.Index(err.Error(), fieldErrs.Error()); idx > 0 {
		prefix = strings.TrimSuffix(err.Error()[:idx], ": ")
	}

	p.line(p.paint(ColorRed, "╭ Validation Error"))
	if prefix != "" {
		p.line(bar + " " + p.paint(ColorGray, prefix))
		p.line(bar)
	}
	for _, fe := range fieldErrs {
		msg := fe.Err.Error()
		if fe.Field != "" {
			msg = p.paint(ColorGray, fe.Field+": ") + msg
		}
		p.line(bar + " " + p.paint(ColorRed, Cross) + " " + msg)
	}
	p.line(p.paint(ColorRed, "╵"))
}

// Errorf prints a red error line.
func (p *Printer) Errorf(format string, args ...any) {
	p.line(p.paint(ColorRed, Cross+" "+fmt.Sprintf(format, args...)))
}

// Successf prints a green success line.
func (p *Printer) Successf(format string, args ...any) {
	p.line(p.paint(ColorGreen, Check+" "+fmt.Sprintf(format, args...)))
}

// Infof prints a gray informational line.
func (p *Printer) Infof(format string, args ...any) {
	p.line(p.paint(ColorGray, Dot+" "+fmt.Sprintf(format, args...)))
}

// Printf prints an unstyled line.
func (p *Printer) Printf(format string, args ...any) {
	p.line(fmt.Sprintf(format, args...))
}

// Section prints a bold underlined header.
func (p *Printer) Section(title string) {
	p.line(p.paint(ColorBold+ColorUnderline, title))
}

// CheckItem prints an indented passing item.
func (p *Printer) CheckItem(label, detail string) {
	p.item(ColorGreen, Check, label, detail)
}

// WarnItem prints an indented warning item.
func (p *Printer) WarnItem(label, detail string) {
	p.item(ColorYellow, Dot, label, detail)
}

// FailItem prints an indented failing item.
func (p *Printer) FailItem(label, detail string) {
	p.item(ColorRed, Cross, label, detail)
}

func (p *Printer) item(color, symbol, label, detail string) {
	s := "  " + p.paint(color, symbol) + " " + label
	if detail != "" {
		s += ": " + detail
	}
	p.line(s)
}

// KeyValue prints an indented key, its value and an optional note. Keys
// are padded so consecutive rows line up.
func (p *Printer) KeyValue(key, value, note string) {
	s := fmt.Sprintf("  %-10s %s %s", key, p.paint(ColorGray, Arrow), value)
	if note != "" {
		s += " " + p.paint(ColorGray, "("+note+")")
	}
	p.line(s)
}
