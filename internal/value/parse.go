package value

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Parse reads zero or more top-level forms from source text. The full
// grammar-level parser lives outside this module; this reader covers
// the bracketed notation the engine's own entry points and tests speak:
// <OP args>, (lists), "strings", numbers, atoms, and the ,GLOBAL
// .LOCAL 'QUOTED prefixes. Comments run from ; to end of line.
func Parse(source string) ([]Value, error) {
	p := &parser{src: []rune(source)}
	var forms []Value
	for {
		p.skipSpace()
		if p.done() {
			return forms, nil
		}
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		forms = append(forms, v)
	}
}

// ParseOne reads exactly one value and rejects trailing input.
func ParseOne(source string) (Value, error) {
	vs, err := Parse(source)
	if err != nil {
		return nil, err
	}
	if len(vs) != 1 {
		return nil, fmt.Errorf("expected one form, got %d", len(vs))
	}
	return vs[0], nil
}

type parser struct {
	src  []rune
	pos  int
	line int
}

func (p *parser) done() bool { return p.pos >= len(p.src) }

func (p *parser) peek() rune { return p.src[p.pos] }

func (p *parser) next() rune {
	r := p.src[p.pos]
	p.pos++
	if r == '\n' {
		p.line++
	}
	return r
}

func (p *parser) skipSpace() {
	for !p.done() {
		r := p.peek()
		switch {
		case unicode.IsSpace(r):
			p.next()
		case r == ';':
			for !p.done() && p.peek() != '\n' {
				p.next()
			}
		default:
			return
		}
	}
}

func (p *parser) value() (Value, error) {
	p.skipSpace()
	if p.done() {
		return nil, fmt.Errorf("unexpected end of input")
	}
	switch r := p.peek(); {
	case r == '<':
		return p.form()
	case r == '(':
		return p.list()
	case r == '"':
		return p.text()
	case r == '\'':
		p.next()
		name, err := p.word()
		if err != nil {
			return nil, err
		}
		return QuotedAtom{Name: name}, nil
	case r == ',':
		p.next()
		name, err := p.word()
		if err != nil {
			return nil, err
		}
		return GlobalRef{Name: name}, nil
	case r == '.':
		p.next()
		name, err := p.word()
		if err != nil {
			return nil, err
		}
		return LocalRef{Name: name}, nil
	case r == '>' || r == ')':
		return nil, fmt.Errorf("unexpected %q", string(r))
	default:
		return p.atomOrNumber()
	}
}

func (p *parser) form() (Value, error) {
	p.next() // consume <
	p.skipSpace()
	if !p.done() && p.peek() == '>' {
		p.next()
		return False{}, nil
	}
	op, err := p.word()
	if err != nil {
		return nil, fmt.Errorf("form operator: %w", err)
	}
	var args []Value
	for {
		p.skipSpace()
		if p.done() {
			return nil, fmt.Errorf("unterminated form <%s", op)
		}
		if p.peek() == '>' {
			p.next()
			return Form{Op: op, Args: args}, nil
		}
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
}

func (p *parser) list() (Value, error) {
	p.next() // consume (
	var items []Value
	for {
		p.skipSpace()
		if p.done() {
			return nil, fmt.Errorf("unterminated list")
		}
		if p.peek() == ')' {
			p.next()
			return List{Items: items}, nil
		}
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
}

func (p *parser) text() (Value, error) {
	p.next() // consume opening quote
	var sb strings.Builder
	for {
		if p.done() {
			return nil, fmt.Errorf("unterminated string")
		}
		r := p.next()
		switch r {
		case '"':
			return Text{Value: sb.String()}, nil
		case '\\':
			if p.done() {
				return nil, fmt.Errorf("unterminated string escape")
			}
			e := p.next()
			switch e {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			default:
				sb.WriteRune(e)
			}
		default:
			sb.WriteRune(r)
		}
	}
}

func isWordRune(r rune) bool {
	if unicode.IsSpace(r) {
		return false
	}
	switch r {
	case '<', '>', '(', ')', '"', ';', '\'', ',':
		return false
	}
	return true
}

func (p *parser) word() (string, error) {
	p.skipSpace()
	var sb strings.Builder
	for !p.done() && isWordRune(p.peek()) {
		sb.WriteRune(p.next())
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("expected identifier at offset %d", p.pos)
	}
	return sb.String(), nil
}

func (p *parser) atomOrNumber() (Value, error) {
	w, err := p.word()
	if err != nil {
		return nil, err
	}
	if n, err := strconv.Atoi(w); err == nil {
		return Number{Value: n}, nil
	}
	return Atom{Name: w}, nil
}
