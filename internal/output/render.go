package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const columnGap = "  "

// Table prints rows under bold headers, columns left-aligned. The last
// column is not padded.
func (p *Printer) Table(headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}

	widths := columnWidths(headers, rows)
	p.tableRow(headers, widths, p.styles.Bold)
	for _, row := range rows {
		p.tableRow(row, widths, lipgloss.NewStyle())
	}
}

func columnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = lipgloss.Width(header)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}
	return widths
}

func (p *Printer) tableRow(row []string, widths []int, style lipgloss.Style) {
	var b strings.Builder
	n := min(len(row), len(widths))
	for i := range n {
		if i > 0 {
			b.WriteString(columnGap)
		}
		cell := row[i]
		if i < n-1 {
			cell += strings.Repeat(" ", max(0, widths[i]-lipgloss.Width(cell)))
		}
		b.WriteString(p.paint(style, cell))
	}
	p.line(p.out, b.String())
}

// Box frames content with a rounded border and an optional title. Without
// color the title and content are printed plainly.
func (p *Printer) Box(title string, content string) {
	if !p.color {
		if title != "" {
			p.line(p.out, title+"\n")
		}
		p.line(p.out, content)
		return
	}

	if title != "" {
		content = p.styles.Title.Render(title) + "\n\n" + content
	}
	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.styles.Border).
		Padding(0, 1)
	p.line(p.out, frame.Render(content))
}

// Section prints a blank line, then title underlined.
func (p *Printer) Section(title string) {
	p.line(p.out, "")
	p.line(p.out, p.paint(p.styles.Title, title))
	p.line(p.out, p.paint(p.styles.Dim, strings.Repeat("─", lipgloss.Width(title))))
}

// KeyValue prints "key: value".
func (p *Printer) KeyValue(key string, value string) {
	p.line(p.out, fmt.Sprintf("%s %s", p.paint(p.styles.Key, key+":"), value))
}

// Diff prints a unified diff, coloring headers, hunks and changed lines.
func (p *Printer) Diff(diff string) {
	for line := range strings.SplitSeq(strings.TrimSuffix(diff, "\n"), "\n") {
		style, ok := p.diffStyle(line)
		if ok {
			line = p.paint(style, line)
		}
		p.line(p.out, line)
	}
}

func (p *Printer) diffStyle(line string) (lipgloss.Style, bool) {
	switch {
	case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		return p.styles.Bold, true
	case strings.HasPrefix(line, "@@"):
		return p.styles.Dim, true
	case strings.HasPrefix(line, "+"):
		return p.styles.Success, true
	case strings.HasPrefix(line, "-"):
		return p.styles.Error, true
	default:
		return lipgloss.Style{}, false
	}
}
