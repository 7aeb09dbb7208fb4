// Package toml decodes the TOML subset used by the embedded asset tables:
// tables, arrays of tables, dotted keys, inline tables, arrays, basic and
// literal strings, integers (decimal and 0x/0o/0b), floats and booleans.
package toml

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrSyntax is wrapped by every parse error
var ErrSyntax = errors.New("toml syntax error")

type scanner struct {
	src  []byte
	pos  int
	line int
}

func newScanner(src []byte) *scanner {
	return &scanner{src: src, line: 1}
}

func (s *scanner) eof() bool { return s.pos >= len(s.src) }

// peek returns 0 at end of input
func (s *scanner) peek() byte {
	if s.eof() {
		return 0
	}
	return s.src[s.pos]
}

func (s *scanner) next() byte {
	c := s.peek()
	if c == 0 {
		return 0
	}
	s.pos++
	if c == '\n' {
		s.line++
	}
	return c
}

func (s *scanner) expect(c byte) error {
	if got := s.peek(); got != c {
		return s.errorf("expected %q, found %s", c, describe(got))
	}
	s.next()
	return nil
}

func (s *scanner) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrSyntax, s.line, fmt.Sprintf(format, args...))
}

func describe(c byte) string {
	if c == 0 {
		return "end of input"
	}
	return strconv.QuoteRune(rune(c))
}

// skipSpace skips spaces and tabs on the current line
func (s *scanner) skipSpace() {
	for c := s.peek(); c == ' ' || c == '\t'; c = s.peek() {
		s.next()
	}
}

func (s *scanner) skipComment() {
	if s.peek() != '#' {
		return
	}
	for c := s.peek(); c != '\n' && c != 0; c = s.peek() {
		s.next()
	}
}

// skipBlank skips whitespace, newlines and comments; arrays span lines
func (s *scanner) skipBlank() {
	for {
		s.skipSpace()
		s.skipComment()
		switch s.peek() {
		case '\n', '\r':
			s.next()
		default:
			return
		}
	}
}

// endLine consumes trailing space and an optional comment up to the newline
func (s *scanner) endLine() error {
	s.skipSpace()
	s.skipComment()
	if s.peek() == '\r' {
		s.next()
	}
	switch c := s.peek(); c {
	case '\n':
		s.next()
		return nil
	case 0:
		return nil
	default:
		return s.errorf("unexpected %s after value", describe(c))
	}
}

func isBare(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_' || c == '-'
}

func isNumeric(c byte) bool {
	return isBare(c) || c == '+' || c == '.'
}

// key reads a possibly dotted key
func (s *scanner) key() ([]string, error) {
	var parts []string
	for {
		s.skipSpace()
		part, err := s.keyPart()
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
		s.skipSpace()
		if s.peek() != '.' {
			return parts, nil
		}
		s.next()
	}
}

func (s *scanner) keyPart() (string, error) {
	switch c := s.peek(); {
	case c == '"':
		return s.basicString()
	case c == '\'':
		return s.literalString()
	case isBare(c):
		start := s.pos
		for isBare(s.peek()) {
			s.next()
		}
		return string(s.src[start:s.pos]), nil
	default:
		return "", s.errorf("expected key, found %s", describe(c))
	}
}

func (s *scanner) basicString() (string, error) {
	s.next()
	var b strings.Builder
	for {
		c := s.next()
		switch c {
		case 0, '\n':
			return "", s.errorf("unterminated string")
		case '"':
			return b.String(), nil
		case '\\':
			if err := s.escape(&b); err != nil {
				return "", err
			}
		default:
			b.WriteByte(c)
		}
	}
}

func (s *scanner) escape(b *strings.Builder) error {
	c := s.next()
	switch c {
	case 'n':
		b.WriteByte('\n')
	case 't':
		b.WriteByte('\t')
	case 'r':
		b.WriteByte('\r')
	case '"', '\\':
		b.WriteByte(c)
	case 'u', 'U':
		n := 4
		if c == 'U' {
			n = 8
		}
		if s.pos+n > len(s.src) {
			return s.errorf("short unicode escape")
		}
		v, err := strconv.ParseUint(string(s.src[s.pos:s.pos+n]), 16, 32)
		if err != nil || !utf8.ValidRune(rune(v)) {
			return s.errorf("invalid unicode escape")
		}
		s.pos += n
		b.WriteRune(rune(v))
	default:
		return s.errorf("invalid escape \\%c", c)
	}
	return nil
}

func (s *scanner) literalString() (string, error) {
	s.next()
	start := s.pos
	for {
		switch s.peek() {
		case 0, '\n':
			return "", s.errorf("unterminated literal string")
		case '\'':
			lit := string(s.src[start:s.pos])
			s.next()
			return lit, nil
		}
		s.next()
	}
}

func (s *scanner) word() string {
	start := s.pos
	for isNumeric(s.peek()) {
		s.next()
	}
	return string(s.src[start:s.pos])
}

func (s *scanner) number() (any, error) {
	raw := s.word()
	lit := strings.ReplaceAll(raw, "_", "")
	unsigned := strings.TrimLeft(lit, "+-")
	switch {
	case lit == "":
		return nil, s.errorf("expected value, found %s", describe(s.peek()))
	case len(unsigned) > 1 && unsigned[0] == '0' && strings.ContainsRune("xob", rune(unsigned[1])):
		v, err := strconv.ParseInt(lit, 0, 64)
		if err != nil {
			return nil, s.errorf("invalid integer %q", raw)
		}
		return v, nil
	case strings.ContainsAny(unsigned, ".eE") || unsigned == "inf" || unsigned == "nan":
		v, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			return nil, s.errorf("invalid float %q", raw)
		}
		return v, nil
	default:
		v, err := strconv.ParseInt(lit, 10, 64)
		if err != nil {
			return nil, s.errorf("invalid integer %q", raw)
		}
		return v, nil
	}
}
