package lisp

import (
	"math"
	"strings"

	"github.com/google/uuid"
)

// GlobalEnv returns a fresh global scope with nil, t and every builtin bound.
func GlobalEnv() *Env {
	env := NewEnv()
	env.BindVariable(Nil, Nil)
	env.BindVariable(T, T)
	for name, f := range map[Symbol]BuiltinFunc{
		"+":        arith{name: "+", identity: 0, ints: addInt, floats: addFloat}.call,
		"-":        arith{name: "-", identity: 0, seeded: true, ints: subInt, floats: subFloat}.call,
		"*":        arith{name: "*", identity: 1, ints: mulInt, floats: mulFloat}.call,
		"/":        arith{name: "/", identity: 1, seeded: true, ints: divInt, floats: divFloat}.call,
		"=":        relation{name: "=", ints: func(a, b int64) bool { return a == b }, floats: func(a, b float64) bool { return a == b }}.call,
		"!=":       relation{name: "!=", ints: func(a, b int64) bool { return a != b }, floats: func(a, b float64) bool { return a != b }}.call,
		"<":        relation{name: "<", ints: func(a, b int64) bool { return a < b }, floats: func(a, b float64) bool { return a < b }}.call,
		"<=":       relation{name: "<=", ints: func(a, b int64) bool { return a <= b }, floats: func(a, b float64) bool { return a <= b }}.call,
		">":        relation{name: ">", ints: func(a, b int64) bool { return a > b }, floats: func(a, b float64) bool { return a > b }}.call,
		">=":       relation{name: ">=", ints: func(a, b int64) bool { return a >= b }, floats: func(a, b float64) bool { return a >= b }}.call,
		"mod":      mod,
		"apply":    applyFunc,
		"funcall":  funcall,
		"car":      car,
		"cdr":      cdr,
		"cons":     cons,
		"list":     listFunc,
		"null":     null,
		"not":      null,
		"atom":     predicate("atom", func(e SExpression) bool { _, ok := e.(*Cons); return !ok }),
		"consp":    predicate("consp", func(e SExpression) bool { _, ok := e.(*Cons); return ok }),
		"listp":    predicate("listp", isList),
		"numberp":  predicate("numberp", isNumber),
		"integerp": predicate("integerp", func(e SExpression) bool { _, ok := e.(Int); return ok }),
		"floatp":   predicate("floatp", func(e SExpression) bool { _, ok := e.(Float); return ok }),
		"symbolp":  predicate("symbolp", func(e SExpression) bool { _, ok := e.(Symbol); return ok }),
		"stringp":  predicate("stringp", func(e SExpression) bool { _, ok := e.(String); return ok }),
		"keywordp": predicate("keywordp", func(e SExpression) bool { _, ok := e.(Keyword); return ok }),
		"functionp": predicate("functionp", func(e SExpression) bool {
			switch f := e.(type) {
			case *Builtin:
				return !f.special
			case *Lambda:
				return true
			}
			return false
		}),
		"eq":     eq,
		"equal":  equal,
		"gensym": gensym,
	} {
		env.addBuiltin(name, f)
	}
	for name, f := range map[Symbol]BuiltinFunc{
		"if":     ifForm,
		"quote":  quote,
		"set":    set,
		"setq":   setq,
		"lambda": lambda,
		"defun":  defun,
		"progn":  progn,
	} {
		env.addSpecialForm(name, f)
	}
	return env
}

// evalShape destructures args against shape and evaluates every slot.
func evalShape(name Symbol, shape []param, args SExpression, env *Env) ([]SExpression, error) {
	list, err := destructure(name, shape, args)
	if err != nil {
		return nil, err
	}
	for i, arg := range list {
		v, err := Eval(arg, env)
		if err != nil {
			return nil, err
		}
		list[i] = v
	}
	return list, nil
}

func numericArgs(args SExpression, env *Env) ([]SExpression, bool, error) {
	values, err := evalArgs(args, env)
	if err != nil {
		return nil, false, err
	}
	floating := false
	for _, v := range values {
		switch v.(type) {
		case Int:
		case Float:
			floating = true
		default:
			return nil, false, &WrongTypeArgumentError{Expected: "number-or-marker-p", Actual: v}
		}
	}
	return values, floating, nil
}

func toFloat(e SExpression) float64 {
	if i, ok := e.(Int); ok {
		return float64(i)
	}
	return float64(e.(Float))
}

// arith folds a variadic numeric operation. If any operand is a float the
// whole fold happens in floats. A seeded operation starts from its first
// operand instead of the identity.
type arith struct {
	name     Symbol
	identity int64
	seeded   bool
	ints     func(a, b int64) (int64, bool)
	floats   func(a, b float64) float64
}

func (op arith) call(args SExpression, env *Env) (SExpression, error) {
	values, floating, err := numericArgs(args, env)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return Int(op.identity), nil
	}
	rest := values
	if floating {
		acc := float64(op.identity)
		if op.seeded {
			acc, rest = toFloat(values[0]), values[1:]
		}
		for _, v := range rest {
			acc = op.floats(acc, toFloat(v))
		}
		return Float(acc), nil
	}
	acc := op.identity
	if op.seeded {
		acc, rest = int64(values[0].(Int)), values[1:]
	}
	for _, v := range rest {
		n, ok := op.ints(acc, int64(v.(Int)))
		if !ok {
			return nil, &ArithError{Op: op.name}
		}
		acc = n
	}
	return Int(acc), nil
}

func addInt(a, b int64) (int64, bool) { return a + b, true }
func subInt(a, b int64) (int64, bool) { return a - b, true }
func mulInt(a, b int64) (int64, bool) { return a * b, true }
func addFloat(a, b float64) float64 { return a + b }
func subFloat(a, b float64) float64 { return a - b }
func mulFloat(a, b float64) float64 { return a * b }
func divFloat(a, b float64) float64 { return a / b }

func divInt(a, b int64) (int64, bool) {
	if b == 0 {
		return 0, false
	}
	return a / b, true
}

// relation is a chained comparison: (< a b c) holds when a<b and b<c.
type relation struct {
	name   Symbol
	ints   func(a, b int64) bool
	floats func(a, b float64) bool
}

func (r relation) call(args SExpression, env *Env) (SExpression, error) {
	values, _, err := numericArgs(args, env)
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(values); i++ {
		a, b := values[i-1], values[i]
		x, aok := a.(Int)
		y, bok := b.(Int)
		var holds bool
		if aok && bok {
			holds = r.ints(int64(x), int64(y))
		} else {
			holds = r.floats(toFloat(a), toFloat(b))
		}
		if !holds {
			return Nil, nil
		}
	}
	return T, nil
}

// (mod x y) takes the sign of y.
func mod(args SExpression, env *Env) (SExpression, error) {
	values, err := evalShape("mod", []param{required("dividend"), required("divisor")}, args, env)
	if err != nil {
		return nil, err
	}
	for _, v := range values {
		if !isNumber(v) {
			return nil, &WrongTypeArgumentError{Expected: "number-or-marker-p", Actual: v}
		}
	}
	x, xok := values[0].(Int)
	y, yok := values[1].(Int)
	if xok && yok {
		if y == 0 {
			return nil, &ArithError{Op: "mod"}
		}
		r := x % y
		if r != 0 && (r < 0) != (y < 0) {
			r += y
		}
		return r, nil
	}
	a, b := toFloat(values[0]), toFloat(values[1])
	r := math.Mod(a, b)
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return Float(r), nil
}

func ifForm(args SExpression, env *Env) (SExpression, error) {
	list, err := destructure("if", []param{required("cond"), required("then"), optional("else")}, args)
	if err != nil {
		return nil, err
	}
	tested, err := Eval(list[0], env)
	if err != nil {
		return nil, err
	}
	if IsTruthy(tested) {
		return Eval(list[1], env)
	}
	return Eval(list[2], env)
}

func quote(args SExpression, env *Env) (SExpression, error) {
	list, err := destructure("quote", []param{required("arg")}, args)
	if err != nil {
		return nil, err
	}
	return list[0], nil
}

func bindable(e SExpression) (Symbol, error) {
	switch s := e.(type) {
	case Symbol:
		if isConstant(s) {
			return "", &SettingConstantError{Name: s}
		}
		return s, nil
	case Keyword:
		return "", &SettingConstantError{Name: s}
	}
	return "", &WrongTypeArgumentError{Expected: "symbolp", Actual: e}
}

// (set name value) binds the literal symbol name in the current scope.
func set(args SExpression, env *Env) (SExpression, error) {
	list, err := destructure("set", []param{required("symbol"), required("value")}, args)
	if err != nil {
		return nil, err
	}
	return bindVariable(list[0], list[1], env)
}

// (setq a 1 b 2 ...) binds pairs left to right and returns the last value.
func setq(args SExpression, env *Env) (SExpression, error) {
	list, err := cons2list(args)
	if err != nil {
		return nil, err
	}
	if len(list)%2 != 0 {
		return nil, &WrongNumberOfArgumentsError{Name: "setq", Required: len(list) + 1, Allowed: len(list) + 1, Actual: len(list)}
	}
	var last SExpression = Nil
	for i := 0; i < len(list); i += 2 {
		last, err = bindVariable(list[i], list[i+1], env)
		if err != nil {
			return nil, err
		}
	}
	return last, nil
}

func bindVariable(name, exp SExpression, env *Env) (SExpression, error) {
	sym, err := bindable(name)
	if err != nil {
		return nil, err
	}
	v, err := Eval(exp, env)
	if err != nil {
		return nil, err
	}
	env.BindVariable(sym, v)
	return v, nil
}

func lambda(args SExpression, env *Env) (SExpression, error) {
	list, err := destructure("lambda", []param{required("params"), required("body")}, args)
	if err != nil {
		return nil, err
	}
	return &Lambda{Params: list[0], Body: list[1], lex: env.capture(list[1])}, nil
}

// (defun name params body) binds a closure in the global function namespace.
func defun(args SExpression, env *Env) (SExpression, error) {
	list, err := destructure("defun", []param{required("name"), required("params"), required("body")}, args)
	if err != nil {
		return nil, err
	}
	sym, err := bindable(list[0])
	if err != nil {
		return nil, err
	}
	env.root().BindFunction(sym, &Lambda{Params: list[1], Body: list[2], lex: env.capture(list[2])})
	return sym, nil
}

func progn(args SExpression, env *Env) (SExpression, error) {
	list, err := cons2list(args)
	if err != nil {
		return nil, err
	}
	var last SExpression = Nil
	for _, e := range list {
		last, err = Eval(e, env)
		if err != nil {
			return nil, err
		}
	}
	return last, nil
}

// resolve turns a function designator into something callable: a symbol
// names an entry in the function namespace.
func resolve(f SExpression, env *Env) (Symbol, SExpression, error) {
	if s, ok := f.(Symbol); ok {
		fn, err := env.GetFunction(s)
		return s, fn, err
	}
	return "lambda", f, nil
}

// (apply f args) evaluates both, then calls f with the elements of args.
func applyFunc(args SExpression, env *Env) (SExpression, error) {
	list, err := evalShape("apply", []param{required("function"), required("arguments")}, args, env)
	if err != nil {
		return nil, err
	}
	name, f, err := resolve(list[0], env)
	if err != nil {
		return nil, err
	}
	values, err := cons2list(list[1])
	if err != nil {
		return nil, err
	}
	return apply(name, f, values, env)
}

func funcall(args SExpression, env *Env) (SExpression, error) {
	values, err := evalArgs(args, env)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, &WrongNumberOfArgumentsError{Name: "funcall", Required: 1, Allowed: -1, Actual: 0}
	}
	name, f, err := resolve(values[0], env)
	if err != nil {
		return nil, err
	}
	return apply(name, f, values[1:], env)
}

func car(args SExpression, env *Env) (SExpression, error) {
	list, err := evalShape("car", []param{required("list")}, args, env)
	if err != nil {
		return nil, err
	}
	switch c := list[0].(type) {
	case *Cons:
		return c.Car, nil
	case Symbol:
		if c == Nil {
			return Nil, nil
		}
	}
	return nil, &WrongTypeArgumentError{Expected: "listp", Actual: list[0]}
}

func cdr(args SExpression, env *Env) (SExpression, error) {
	list, err := evalShape("cdr", []param{required("list")}, args, env)
	if err != nil {
		return nil, err
	}
	switch c := list[0].(type) {
	case *Cons:
		return c.Cdr, nil
	case Symbol:
		if c == Nil {
			return Nil, nil
		}
	}
	return nil, &WrongTypeArgumentError{Expected: "listp", Actual: list[0]}
}

func cons(args SExpression, env *Env) (SExpression, error) {
	list, err := evalShape("cons", []param{required("car"), required("cdr")}, args, env)
	if err != nil {
		return nil, err
	}
	return NewCons(list[0], list[1]), nil
}

func listFunc(args SExpression, env *Env) (SExpression, error) {
	values, err := evalArgs(args, env)
	if err != nil {
		return nil, err
	}
	return list2cons(values...), nil
}

func null(args SExpression, env *Env) (SExpression, error) {
	list, err := evalShape("null", []param{required("object")}, args, env)
	if err != nil {
		return nil, err
	}
	return boolean(isNil(list[0])), nil
}

func isList(e SExpression) bool {
	_, ok := e.(*Cons)
	return ok || isNil(e)
}

func predicate(name Symbol, test func(SExpression) bool) BuiltinFunc {
	return func(args SExpression, env *Env) (SExpression, error) {
		list, err := evalShape(name, []param{required("object")}, args, env)
		if err != nil {
			return nil, err
		}
		return boolean(test(list[0])), nil
	}
}

// eq is identity: conses and closures compare by pointer, builtins never
// compare equal.
func eq(args SExpression, env *Env) (SExpression, error) {
	list, err := evalShape("eq", []param{required("a"), required("b")}, args, env)
	if err != nil {
		return nil, err
	}
	if _, ok := list[0].(*Builtin); ok {
		return Nil, nil
	}
	return boolean(list[0] == list[1]), nil
}

func equal(args SExpression, env *Env) (SExpression, error) {
	list, err := evalShape("equal", []param{required("a"), required("b")}, args, env)
	if err != nil {
		return nil, err
	}
	return boolean(Equal(list[0], list[1])), nil
}

// (gensym [prefix]) returns a fresh symbol that nothing else can spell.
func gensym(args SExpression, env *Env) (SExpression, error) {
	list, err := evalShape("gensym", []param{optional("prefix")}, args, env)
	if err != nil {
		return nil, err
	}
	prefix := "g"
	switch p := list[0].(type) {
	case String:
		prefix = string(p)
	case Symbol:
		if p != Nil {
			return nil, &WrongTypeArgumentError{Expected: "stringp", Actual: p}
		}
	default:
		return nil, &WrongTypeArgumentError{Expected: "stringp", Actual: p}
	}
	return Symbol(prefix + strings.ReplaceAll(uuid.New().String(), "-", "")), nil
}
