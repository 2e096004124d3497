package lisp

import (
	"io"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"
)

// Lisp ties a global environment to a logger. It is not safe for
// concurrent use: callers must serialize evaluations against one Env.
type Lisp struct {
	Env *Env
	log logrus.FieldLogger
}

type Option func(*Lisp)

func WithLogger(log logrus.FieldLogger) Option {
	return func(l *Lisp) {
		l.log = log
	}
}

// WithMaxDepth bounds nested evaluation; 0 disables the guard.
func WithMaxDepth(n int) Option {
	return func(l *Lisp) {
		l.Env.SetMaxDepth(n)
	}
}

func New(opts ...Option) Lisp {
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)
	l := Lisp{Env: GlobalEnv(), log: quiet}
	for _, opt := range opts {
		opt(&l)
	}
	return l
}

// Eval reads a single expression from input and evaluates it. Anything but
// whitespace and comments after that expression is a ReaderError.
func (l Lisp) Eval(input string) (SExpression, error) {
	r := NewReader(input)
	sexp, err := r.Read()
	if err != nil {
		return nil, err
	}
	if !r.Done() {
		return nil, &ReaderError{Pos: r.pos, Msg: "unexpected input after expression"}
	}
	return l.EvalExpr(sexp)
}

func (l Lisp) EvalExpr(e SExpression) (SExpression, error) {
	v, err := Eval(e, l.Env)
	if err != nil {
		l.log.WithField("form", e.String()).WithError(err).Debug("evaluation failed")
		return nil, err
	}
	l.log.WithFields(logrus.Fields{"form": e.String(), "result": v.String()}).Debug("evaluated")
	return v, nil
}

// Rep reads every expression in input, evaluates them in order and prints
// the last result. Nothing is evaluated unless all of input reads cleanly,
// so a caller seeing ErrReaderEOF can append more text and call again.
// Blank input gives ErrEmptyInput.
func (l Lisp) Rep(input string) (string, error) {
	input = strings.TrimLeftFunc(input, unicode.IsSpace)
	if input == "" {
		return "", ErrEmptyInput
	}
	sexprs, err := Multiparse(input)
	if err != nil {
		return "", err
	}
	if len(sexprs) == 0 {
		return "", ErrEmptyInput
	}
	var result SExpression
	for _, e := range sexprs {
		result, err = l.EvalExpr(e)
		if err != nil {
			return "", err
		}
	}
	return result.String(), nil
}
