package snippets

import (
	"sort"
	"strconv"
	"strings"
)

// TabStop is a cursor position in an expanded snippet.
type TabStop struct {
	Index   int      `json:"index"`
	Default string   `json:"default,omitempty"`
	Choices []string `json:"choices,omitempty"`
}

// Expansion is a snippet body rendered as the editor inserts it, before the
// user edits any field.
type Expansion struct {
	Text     string    `json:"text"`
	TabStops []TabStop `json:"tab_stops,omitempty"`
}

// Expand renders a snippet body using the editor snippet grammar:
//
//	$1, ${1}          empty tab stop
//	${1:default}      placeholder, may nest other fields
//	${1|one,two|}     choice, renders the first option
//	$NAME, ${NAME}    variable from vars; unknown names render as the name
//	${NAME:default}   variable with a fallback
//	\$ \} \\          literal characters
//
// Malformed fields are copied through as text. Tab stops are returned in
// index order with $0, the final cursor, last.
func Expand(body string, vars map[string]string) Expansion {
	p := &expander{src: body, vars: vars, stops: map[int]*TabStop{}}
	text := p.text("")

	stops := make([]TabStop, 0, len(p.stops))
	for _, s := range p.stops {
		stops = append(stops, *s)
	}
	sort.Slice(stops, func(i, j int) bool {
		a, b := stops[i].Index, stops[j].Index
		if a == 0 || b == 0 {
			return b == 0 && a != 0
		}
		return a < b
	})
	return Expansion{Text: text, TabStops: stops}
}

type expander struct {
	src   string
	pos   int
	vars  map[string]string
	stops map[int]*TabStop
}

// text renders until end of input or an unescaped byte in stop.
func (p *expander) text(stop string) string {
	var b strings.Builder
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == '\\' && p.pos+1 < len(p.src) && strings.IndexByte(`$}\`+stop, p.src[p.pos+1]) >= 0:
			b.WriteByte(p.src[p.pos+1])
			p.pos += 2
		case strings.IndexByte(stop, c) >= 0:
			return b.String()
		case c == '$':
			b.WriteString(p.dollar())
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
	return b.String()
}

// dollar renders the field starting at the current '$'.
func (p *expander) dollar() string {
	start := p.pos
	p.pos++

	switch {
	case p.pos >= len(p.src):
		return "$"
	case isDigit(p.src[p.pos]):
		p.record(p.number(), "", nil)
		return ""
	case isVarStart(p.src[p.pos]):
		return p.variable(p.ident(), "", false)
	case p.src[p.pos] == '{':
		p.pos++
		if out, ok := p.braced(); ok {
			return out
		}
		return p.src[start:p.pos]
	default:
		return "$"
	}
}

// braced renders the body of ${...}; ok is false for malformed input.
func (p *expander) braced() (string, bool) {
	if p.pos >= len(p.src) {
		return "", false
	}

	if isDigit(p.src[p.pos]) {
		index := p.number()
		switch {
		case p.accept('}'):
			p.record(index, "", nil)
			return "", true
		case p.accept(':'):
			inner := p.text("}")
			if !p.accept('}') {
				return "", false
			}
			p.record(index, inner, nil)
			return inner, true
		case p.accept('|'):
			choices, ok := p.choices()
			if !ok {
				return "", false
			}
			p.record(index, choices[0], choices)
			return choices[0], true
		}
		return "", false
	}

	if isVarStart(p.src[p.pos]) {
		name := p.ident()
		switch {
		case p.accept('}'):
			return p.variable(name, "", false), true
		case p.accept(':'):
			inner := p.text("}")
			if !p.accept('}') {
				return "", false
			}
			return p.variable(name, inner, true), true
		case p.accept('/'):
			// Transforms are not applied; skip to the closing brace.
			p.skipTransform()
			if !p.accept('}') {
				return "", false
			}
			return p.variable(name, "", false), true
		}
	}
	return "", false
}

// choices parses "a,b|}" after the opening '|'.
func (p *expander) choices() ([]string, bool) {
	var out []string
	for {
		out = append(out, p.text(",|"))
		switch {
		case p.accept(','):
			continue
		case p.accept('|'):
			return out, p.accept('}')
		default:
			return nil, false
		}
	}
}

// skipTransform consumes a /regex/format/options section up to, not past, '}'.
func (p *expander) skipTransform() {
	for p.pos < len(p.src) && p.src[p.pos] != '}' {
		if p.src[p.pos] == '\\' && p.pos+1 < len(p.src) {
			p.pos++
		}
		p.pos++
	}
}

func (p *expander) variable(name, fallback string, hasFallback bool) string {
	if val, ok := p.vars[name]; ok && val != "" {
		return val
	}
	if hasFallback {
		return fallback
	}
	return name
}

// record notes a tab stop; the first placeholder text for an index wins.
func (p *expander) record(index int, def string, choices []string) {
	if existing, ok := p.stops[index]; ok {
		if existing.Default == "" {
			existing.Default = def
		}
		if existing.Choices == nil {
			existing.Choices = choices
		}
		return
	}
	p.stops[index] = &TabStop{Index: index, Default: def, Choices: choices}
}

func (p *expander) accept(c byte) bool {
	if p.pos < len(p.src) && p.src[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *expander) number() int {
	start := p.pos
	for p.pos < len(p.src) && isDigit(p.src[p.pos]) {
		p.pos++
	}
	n, _ := strconv.Atoi(p.src[start:p.pos])
	return n
}

func (p *expander) ident() string {
	start := p.pos
	for p.pos < len(p.src) && (isVarStart(p.src[p.pos]) || isDigit(p.src[p.pos])) {
		p.pos++
	}
	return p.src[start:p.pos]
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isVarStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
