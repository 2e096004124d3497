package lisp

// param is one slot in the argument shape of a special form.
type param struct {
	name     string
	optional bool
}

func required(name string) param { return param{name: name} }
func optional(name string) param { return param{name: name, optional: true} }

// destructure binds an unevaluated argument list against a fixed shape.
// Required slots must all be filled, optional ones default to nil, and
// leftover arguments are an arity error just like missing ones.
func destructure(name Symbol, shape []param, args SExpression) ([]SExpression, error) {
	list, err := cons2list(args)
	if err != nil {
		return nil, err
	}
	nreq := 0
	for _, p := range shape {
		if !p.optional {
			nreq++
		}
	}
	if len(list) < nreq || len(list) > len(shape) {
		return nil, &WrongNumberOfArgumentsError{
			Name:     name,
			Required: nreq,
			Allowed:  len(shape),
			Actual:   len(list),
		}
	}
	out := make([]SExpression, len(shape))
	for i := range shape {
		if i < len(list) {
			out[i] = list[i]
			continue
		}
		out[i] = Nil
	}
	return out, nil
}

// evalArgs evaluates every element of a proper argument list in env.
func evalArgs(args SExpression, env *Env) ([]SExpression, error) {
	list, err := cons2list(args)
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
