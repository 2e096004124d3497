package repl

import (
	"errors"
	"strings"

	"github.com/deosjr/rusp/lisp"
)

// Session accumulates lines until they form complete expressions.
type Session struct {
	lisp    lisp.Lisp
	pending []string
}

func NewSession(l lisp.Lisp) *Session {
	return &Session{lisp: l}
}

// Feed adds one line of input. When the buffered text ends in the middle
// of an expression, more is true and nothing has been evaluated yet.
func (s *Session) Feed(line string) (out string, more bool, err error) {
	s.pending = append(s.pending, line)
	out, err = s.lisp.Rep(strings.Join(s.pending, "\n"))
	if errors.Is(err, lisp.ErrReaderEOF) {
		return "", true, nil
	}
	s.pending = nil
	return out, false, err
}

// Pending reports whether an incomplete expression is buffered.
func (s *Session) Pending() bool {
	return len(s.pending) > 0
}

func (s *Session) Reset() {
	s.pending = nil
}
