package lisp

import (
	"math"
	"strconv"
	"strings"
)

func (i Int) String() string {
	return strconv.FormatInt(int64(i), 10)
}

// Floats always print with a decimal point so they read back as floats.
func (f Float) String() string {
	x := float64(f)
	switch {
	case math.IsNaN(x):
		return "0.0e+NaN"
	case math.IsInf(x, 1):
		return "1.0e+INF"
	case math.IsInf(x, -1):
		return "-1.0e+INF"
	}
	abs := math.Abs(x)
	if abs != 0 && (abs < 1e-4 || abs >= 1e21) {
		return strconv.FormatFloat(x, 'e', -1, 64)
	}
	s := strconv.FormatFloat(x, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func (s String) String() string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range string(s) {
		if r == '"' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}

func (s Symbol) String() string {
	return string(s)
}

func (k Keyword) String() string {
	return ":" + string(k)
}

func (b *Builtin) String() string {
	return "#<subr " + string(b.Name) + ">"
}

func (l *Lambda) String() string {
	return list2cons(Symbol("lambda"), l.Params, l.Body).String()
}

func (c *Cons) String() string {
	if q, ok := quoted(c); ok {
		return "'" + q.String()
	}
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(c.Car.String())
	e := c.Cdr
	for {
		next, ok := e.(*Cons)
		if !ok {
			break
		}
		b.WriteByte(' ')
		b.WriteString(next.Car.String())
		e = next.Cdr
	}
	if !isNil(e) {
		b.WriteString(" . ")
		b.WriteString(e.String())
	}
	b.WriteByte(')')
	return b.String()
}

// quoted matches the shape (quote X).
func quoted(c *Cons) (SExpression, bool) {
	if s, ok := c.Car.(Symbol); !ok || s != "quote" {
		return nil, false
	}
	rest, ok := c.Cdr.(*Cons)
	if !ok || !isNil(rest.Cdr) {
		return nil, false
	}
	return rest.Car, true
}
