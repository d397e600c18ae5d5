package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/charmbracelet/lipgloss"
)

// Printer writes command results either as JSON or as text for people.
// Errors and warnings in text mode go to a separate writer.
type Printer struct {
	out    io.Writer
	errOut io.Writer
	json   bool
	color  bool
	styles Styles
}

// NewPrinter creates a Printer writing to w. Styles are applied only when
// color is true, which callers derive from --color and the terminal.
func NewPrinter(w io.Writer, jsonMode bool, color bool) *Printer {
	return &Printer{
		out:    w,
		errOut: w,
		json:   jsonMode,
		color:  color,
		styles: DefaultStyles(),
	}
}

// WithStderr routes text-mode errors, warnings and progress to w.
func (p *Printer) WithStderr(w io.Writer) *Printer {
	p.errOut = w
	return p
}

// IsJSON reports whether the printer emits JSON.
func (p *Printer) IsJSON() bool {
	return p.json
}

// IsTTY reports whether styles are applied.
func (p *Printer) IsTTY() bool {
	return p.color
}

// paint renders s with style when color is enabled.
func (p *Printer) paint(style lipgloss.Style, s string) string {
	if !p.color {
		return s
	}
	return style.Render(s)
}

// Success reports a completed operation. JSON mode writes data as is; text
// mode prints data["message"], or every key in sorted order when absent.
func (p *Printer) Success(data map[string]any) error {
	if p.json {
		return p.writeJSON(data)
	}

	if msg, ok := data["message"].(string); ok {
		p.line(p.out, p.paint(p.styles.Success, msg))
		return nil
	}
	for _, key := range slices.Sorted(maps.Keys(data)) {
		p.line(p.out, fmt.Sprintf("%s: %v", p.paint(p.styles.Bold, key), data[key]))
	}
	return nil
}

// Error reports err. JSON mode writes {"error", "code"} to the main writer;
// text mode writes "Error: message" to the error writer. Errors that are not
// an *ExitError count as user errors.
func (p *Printer) Error(err error) {
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		exitErr = NewUserError(err.Error())
	}

	if p.json {
		p.line(p.out, string(ErrorJSON(exitErr.Message, exitErr.Code)))
		return
	}
	p.line(p.errOut, p.paint(p.styles.Error, "Error")+": "+exitErr.Message)
}

// Warn reports a non-fatal problem.
func (p *Printer) Warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if p.json {
		_ = p.writeJSON(map[string]any{"warning": msg})
		return
	}
	p.line(p.errOut, p.paint(p.styles.Warning, "Warning")+": "+msg)
}

// Stderr writes progress text to the error writer. JSON mode drops it.
func (p *Printer) Stderr(format string, args ...any) {
	if p.json {
		return
	}
	mustWrite(fmt.Fprintf(p.errOut, format, args...))
}

// Print writes formatted text to the main writer.
func (p *Printer) Print(format string, args ...any) {
	mustWrite(fmt.Fprintf(p.out, format, args...))
}

// Println writes args and a newline to the main writer.
func (p *Printer) Println(args ...any) {
	mustWrite(fmt.Fprintln(p.out, args...))
}

// WriteJSON writes any value as indented JSON.
func (p *Printer) WriteJSON(data any) error {
	return p.writeJSON(data)
}

// writeJSON leaves <, > and & unescaped so snippet bodies stay readable.
func (p *Printer) writeJSON(data any) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// ErrorJSON returns {"code": N, "error": message}.
func ErrorJSON(message string, code int) []byte {
	data, _ := json.Marshal(map[string]any{
		"error": message,
		"code":  code,
	})
	return data
}

func (p *Printer) line(w io.Writer, s string) {
	mustWrite(fmt.Fprintln(w, s))
}

// mustWrite panics on a failed write to the terminal or a buffer.
func mustWrite(_ int, err error) {
	if err != nil {
		panic(fmt.Sprintf("write failed: %v", err))
	}
}
