package lisp

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// tried in this order: a float needs digits after its decimal point,
	// so 1.5 never reads as the integer 1 followed by garbage, while a
	// bare trailing point is just an integer, as in 1.
	floatPattern = regexp.MustCompile(`^[+-]?[0-9]*\.[0-9]+$`)
	intPattern   = regexp.MustCompile(`^[+-]?[0-9]+\.?$`)
)

// Reader is a cursor over the remaining input. Each call to Read consumes
// exactly one expression.
type Reader struct {
	input string
	pos   int
}

func NewReader(input string) *Reader {
	return &Reader{input: input}
}

// Done reports whether only whitespace and comments are left.
func (r *Reader) Done() bool {
	r.skipWhitespace()
	return r.pos >= len(r.input)
}

func (r *Reader) Read() (SExpression, error) {
	r.skipWhitespace()
	c, size := r.peek()
	if size == 0 {
		return nil, fmt.Errorf("%w: expected an expression", ErrReaderEOF)
	}
	switch c {
	case '\'':
		r.pos++
		e, err := r.Read()
		if err != nil {
			return nil, err
		}
		return list2cons(Symbol("quote"), e), nil
	case '"':
		return r.readString()
	case '(':
		open := r.pos
		r.pos++
		return r.readCons(open)
	case ')':
		return nil, &ReaderError{Pos: r.pos, Msg: "unexpected ')'"}
	}
	return r.readAtom()
}

func (r *Reader) readCons(open int) (SExpression, error) {
	r.skipWhitespace()
	c, size := r.peek()
	if size == 0 {
		return nil, fmt.Errorf("%w: unclosed '(' at %d", ErrReaderEOF, open)
	}
	if c == ')' {
		r.pos++
		return Nil, nil
	}
	if r.atDot() {
		return nil, &ReaderError{Pos: r.pos, Msg: "nothing before '.' in list"}
	}
	car, err := r.Read()
	if err != nil {
		return nil, err
	}
	r.skipWhitespace()
	if !r.atDot() {
		cdr, err := r.readCons(open)
		if err != nil {
			return nil, err
		}
		return NewCons(car, cdr), nil
	}
	r.pos++
	cdr, err := r.Read()
	if err != nil {
		return nil, err
	}
	r.skipWhitespace()
	c, size = r.peek()
	if size == 0 {
		return nil, fmt.Errorf("%w: unclosed '(' at %d", ErrReaderEOF, open)
	}
	if c != ')' {
		return nil, &ReaderError{Pos: r.pos, Msg: "expected ')' after dotted pair"}
	}
	r.pos++
	return NewCons(car, cdr), nil
}

// only \" and \\ are valid escapes
func (r *Reader) readString() (SExpression, error) {
	open := r.pos
	r.pos++
	var s strings.Builder
	for {
		c, size := r.peek()
		if size == 0 {
			return nil, fmt.Errorf("%w: unclosed string quote at %d", ErrReaderEOF, open)
		}
		r.pos += size
		switch c {
		case '"':
			return String(s.String()), nil
		case '\\':
			esc, n := r.peek()
			if n == 0 {
				return nil, fmt.Errorf("%w: unclosed string quote at %d", ErrReaderEOF, open)
			}
			if esc != '"' && esc != '\\' {
				return nil, &EscapeError{Pos: r.pos, Char: esc}
			}
			r.pos += n
			s.WriteRune(esc)
		default:
			s.WriteRune(c)
		}
	}
}

func (r *Reader) readAtom() (SExpression, error) {
	start := r.pos
	token := r.token()
	switch {
	case token == ".":
		return nil, &ReaderError{Pos: start, Msg: "unexpected '.'"}
	case token == ":":
		return Symbol(token), nil
	case strings.HasPrefix(token, ":"):
		return Keyword(token[1:]), nil
	case floatPattern.MatchString(token):
		f, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return nil, &ReaderError{Pos: start, Msg: fmt.Sprintf("invalid float %s", token)}
		}
		return Float(f), nil
	case intPattern.MatchString(token):
		n, err := strconv.ParseInt(strings.TrimSuffix(token, "."), 10, 64)
		if err != nil {
			return nil, &ReaderError{Pos: start, Msg: fmt.Sprintf("integer %s out of range", token)}
		}
		return Int(n), nil
	}
	return Symbol(token), nil
}

// token consumes a maximal run of characters up to whitespace or a paren.
func (r *Reader) token() string {
	start := r.pos
	for {
		c, size := r.peek()
		if size == 0 || isDelimiter(c) {
			break
		}
		r.pos += size
	}
	return r.input[start:r.pos]
}

func isDelimiter(c rune) bool {
	return c == '(' || c == ')' || unicode.IsSpace(c)
}

// atDot reports whether the cursor sits on a standalone '.'.
func (r *Reader) atDot() bool {
	if r.pos >= len(r.input) || r.input[r.pos] != '.' {
		return false
	}
	next, size := utf8.DecodeRuneInString(r.input[r.pos+1:])
	return size == 0 || isDelimiter(next)
}

// peek returns the next rune and its width in bytes, or a width of 0 at
// the end of input.
func (r *Reader) peek() (rune, int) {
	if r.pos >= len(r.input) {
		return 0, 0
	}
	return utf8.DecodeRuneInString(r.input[r.pos:])
}

// skipWhitespace also skips ';' comments running to the end of the line.
func (r *Reader) skipWhitespace() {
	for r.pos < len(r.input) {
		c, size := utf8.DecodeRuneInString(r.input[r.pos:])
		if c == ';' {
			end := strings.IndexByte(r.input[r.pos:], '\n')
			if end < 0 {
				r.pos = len(r.input)
				return
			}
			r.pos += end + 1
			continue
		}
		if !unicode.IsSpace(c) {
			return
		}
		r.pos += size
	}
}

func parse(program string) (SExpression, error) {
	return NewReader(program).Read()
}

func mustParse(program string) SExpression {
	p, err := parse(program)
	if err != nil {
		panic(err)
	}
	return p
}
