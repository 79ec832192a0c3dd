package fsw

import (
	"strings"
)

const (
	symbolKeyLen = 6
	coordLen     = 3
	pointLen     = 2*coordLen + 1
)

// Parse splits FSW text on single spaces and parses every sign.
func Parse(text string) ([]Sign, error) {
	if text == "" {
		return nil, &ParseError{Reason: "empty text"}
	}

	parts := strings.Split(text, " ")
	signs := make([]Sign, 0, len(parts))

	for _, part := range parts {
		sign, err := ParseSign(part)
		if err != nil {
			return nil, err
		}
		signs = append(signs, sign)
	}

	return signs, nil
}

// ParseSign parses a single sign. A sign without a box symbol, such as a
// standalone punctuation symbol, is placed in the default box at 500x500.
func ParseSign(s string) (Sign, error) {
	p := signParser{src: s}
	if s == "" {
		return Sign{}, p.fail("empty sign")
	}

	var sign Sign

	if p.peek() == 'A' {
		p.pos++
		for p.peek() == 'S' {
			key, err := p.symbolKey()
			if err != nil {
				return Sign{}, err
			}
			sign.Sort = append(sign.Sort, key)
		}
		if len(sign.Sort) == 0 {
			return Sign{}, p.fail("sort prefix without symbols")
		}
	}

	if IsBoxKey(string(p.peek())) {
		key := string(p.peek())
		p.pos++
		pt, err := p.point()
		if err != nil {
			return Sign{}, err
		}
		sign.Box = Symbol{Key: key, Position: pt}
	} else {
		if len(sign.Sort) > 0 {
			return Sign{}, p.fail("sort prefix without box")
		}
		sign.Box = Symbol{Key: DefaultBox, Position: Point{X: DefaultX, Y: DefaultY}}
	}

	for !p.done() {
		key, err := p.symbolKey()
		if err != nil {
			return Sign{}, err
		}
		pt, err := p.point()
		if err != nil {
			return Sign{}, err
		}
		sign.Symbols = append(sign.Symbols, Symbol{Key: key, Position: pt})
	}

	return sign, nil
}

type signParser struct {
	src string
	pos int
}

func (p *signParser) done() bool { return p.pos >= len(p.src) }

func (p *signParser) peek() byte {
	if p.done() {
		return 0
	}
	return p.src[p.pos]
}

func (p *signParser) fail(reason string) *ParseError {
	return &ParseError{Sign: p.src, Offset: p.pos, Reason: reason}
}

func (p *signParser) symbolKey() (string, error) {
	if p.pos+symbolKeyLen > len(p.src) {
		return "", p.fail("truncated symbol key")
	}
	key := p.src[p.pos : p.pos+symbolKeyLen]
	if !ValidSymbolKey(key) {
		return "", p.fail("invalid symbol key " + key)
	}
	p.pos += symbolKeyLen
	return key, nil
}

func (p *signParser) point() (Point, error) {
	if p.pos+pointLen > len(p.src) {
		return Point{}, p.fail("truncated coordinate")
	}
	raw := p.src[p.pos : p.pos+pointLen]
	x, okX := parseCoord(raw[:coordLen])
	y, okY := parseCoord(raw[coordLen+1:])
	if !okX || !okY || raw[coordLen] != 'x' {
		return Point{}, p.fail("invalid coordinate " + raw)
	}
	p.pos += pointLen
	return Point{X: x, Y: y}, nil
}

func parseCoord(s string) (int, bool) {
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}
