package lisp

// Eval evaluates e in env. Symbols are looked up as variables, lists are
// applications and every other atom evaluates to itself.
func Eval(e SExpression, env *Env) (SExpression, error) {
	if err := env.enter(); err != nil {
		return nil, err
	}
	defer env.leave()
	switch x := e.(type) {
	case Symbol:
		return env.GetVariable(x)
	case *Cons:
		return evalCons(x, env)
	}
	return e, nil
}

func evalCons(c *Cons, env *Env) (SExpression, error) {
	switch head := c.Car.(type) {
	case Symbol:
		f, err := env.GetFunction(head)
		if err != nil {
			return nil, err
		}
		return call(head, f, c.Cdr, env)
	case *Cons:
		// ((lambda params body) args...) is an inline application
		if s, ok := head.Car.(Symbol); ok && s == "lambda" {
			f, err := Eval(head, env)
			if err != nil {
				return nil, err
			}
			return call(s, f, c.Cdr, env)
		}
	}
	return nil, &WrongTypeArgumentError{Expected: "symbolp", Actual: c.Car}
}

// call applies f to an unevaluated argument list. Builtins decide for
// themselves what to evaluate; closures get every argument evaluated in
// the caller's environment.
func call(name Symbol, f, args SExpression, env *Env) (SExpression, error) {
	switch fn := f.(type) {
	case *Builtin:
		return fn.fn(args, env)
	case *Lambda:
		params, err := fn.params()
		if err != nil {
			return nil, err
		}
		list, err := cons2list(args)
		if err != nil {
			return nil, err
		}
		if len(list) != len(params) {
			return nil, arityError(name, len(params), len(list))
		}
		for i, arg := range list {
			v, err := Eval(arg, env)
			if err != nil {
				return nil, err
			}
			list[i] = v
		}
		return fn.invoke(params, list)
	}
	return nil, &WrongTypeArgumentError{Expected: "functionp", Actual: f}
}

// apply calls f on arguments that have already been evaluated. Special
// forms only make sense on code as written, so they are refused.
func apply(name Symbol, f SExpression, values []SExpression, env *Env) (SExpression, error) {
	switch fn := f.(type) {
	case *Builtin:
		if fn.special {
			return nil, &WrongTypeArgumentError{Expected: "functionp", Actual: fn}
		}
		quoted := make([]SExpression, len(values))
		for i, v := range values {
			quoted[i] = list2cons(Symbol("quote"), v)
		}
		return fn.fn(list2cons(quoted...), env)
	case *Lambda:
		params, err := fn.params()
		if err != nil {
			return nil, err
		}
		if len(values) != len(params) {
			return nil, arityError(name, len(params), len(values))
		}
		return fn.invoke(params, values)
	}
	return nil, &WrongTypeArgumentError{Expected: "functionp", Actual: f}
}

func (l *Lambda) params() ([]Symbol, error) {
	list, err := cons2list(l.Params)
	if err != nil {
		return nil, err
	}
	params := make([]Symbol, len(list))
	for i, p := range list {
		s, ok := p.(Symbol)
		if !ok {
			return nil, &WrongTypeArgumentError{Expected: "symbolp", Actual: p}
		}
		if isConstant(s) {
			return nil, &SettingConstantError{Name: s}
		}
		params[i] = s
	}
	return params, nil
}

// invoke evaluates the body once in a fresh scope over the captured variables.
func (l *Lambda) invoke(params []Symbol, values []SExpression) (SExpression, error) {
	env := l.lex.frame()
	defer env.release()
	for i, p := range params {
		env.BindVariable(p, values[i])
	}
	return Eval(l.Body, env)
}

func arityError(name Symbol, want, got int) error {
	return &WrongNumberOfArgumentsError{Name: name, Required: want, Allowed: want, Actual: got}
}
