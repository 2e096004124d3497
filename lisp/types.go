package lisp

// SExpression is either an atom or a *Cons.
// Atoms are Int, Float, String, Symbol, Keyword, Builtin and *Lambda.
type SExpression interface {
	String() string
	sexpression()
}

type Int int64
type Float float64
type String string
type Symbol string

// Keyword is stored without its leading ':'.
type Keyword string

// BuiltinFunc receives its argument list unevaluated, together with the
// environment of the caller. Evaluating arguments is up to the builtin.
type BuiltinFunc func(args SExpression, env *Env) (SExpression, error)

type Builtin struct {
	Name Symbol
	fn   BuiltinFunc
	// special forms see their arguments as written and cannot be applied
	// to a list of values
	special bool
}

// Lambda is a closure over the variables its body could see where the
// lambda was created.
type Lambda struct {
	Params SExpression
	Body   SExpression
	lex    *closure
}

type Cons struct {
	Car SExpression
	Cdr SExpression
}

func (Int) sexpression()      {}
func (Float) sexpression()    {}
func (String) sexpression()   {}
func (Symbol) sexpression()   {}
func (Keyword) sexpression()  {}
func (*Builtin) sexpression() {}
func (*Lambda) sexpression()  {}
func (*Cons) sexpression()    {}

const (
	Nil Symbol = "nil"
	T   Symbol = "t"
)

func NewCons(car, cdr SExpression) *Cons {
	return &Cons{Car: car, Cdr: cdr}
}

func list2cons(list ...SExpression) SExpression {
	var e SExpression = Nil
	for i := len(list) - 1; i >= 0; i-- {
		e = NewCons(list[i], e)
	}
	return e
}

// List builds a nil-terminated list.
func List(elems ...SExpression) SExpression {
	return list2cons(elems...)
}

// cons2list flattens a proper list. Anything not ending in nil is an error.
func cons2list(e SExpression) ([]SExpression, error) {
	list := []SExpression{}
	for {
		switch v := e.(type) {
		case *Cons:
			list = append(list, v.Car)
			e = v.Cdr
			continue
		case Symbol:
			if v == Nil {
				return list, nil
			}
		}
		return nil, &WrongTypeArgumentError{Expected: "listp", Actual: e}
	}
}

func isNil(e SExpression) bool {
	s, ok := e.(Symbol)
	return ok && s == Nil
}

// IsTruthy reports whether e counts as true: everything but nil does.
func IsTruthy(e SExpression) bool {
	return !isNil(e)
}

func boolean(b bool) SExpression {
	if b {
		return T
	}
	return Nil
}

func isNumber(e SExpression) bool {
	switch e.(type) {
	case Int, Float:
		return true
	}
	return false
}

func isConstant(s Symbol) bool {
	return s == Nil || s == T
}

// Equal is structural equality. Builtins are incomparable and never equal,
// not even to themselves.
func Equal(a, b SExpression) bool {
	switch x := a.(type) {
	case *Builtin:
		return false
	case *Cons:
		y, ok := b.(*Cons)
		if !ok {
			return false
		}
		return Equal(x.Car, y.Car) && Equal(x.Cdr, y.Cdr)
	case *Lambda:
		y, ok := b.(*Lambda)
		if !ok {
			return false
		}
		return x.lex == y.lex && Equal(x.Params, y.Params) && Equal(x.Body, y.Body)
	case Int, Float, String, Symbol, Keyword:
		return a == b
	}
	return false
}
