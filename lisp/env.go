package lisp

// Env is a handle on one scope record in an arena shared by a whole
// environment chain. Parent links are arena indices.
type Env struct {
	arena *arena
	id    int
}

type scope struct {
	variables map[Symbol]SExpression
	functions map[Symbol]SExpression
	outer     int // -1 for the global scope
	// lexical holds the variables of the closure being applied. Variable
	// lookup ends there instead of continuing outward.
	lexical map[Symbol]SExpression
	free    bool
}

type arena struct {
	scopes   []scope
	free     []int
	depth    int
	maxDepth int
}

// closure is what a lambda keeps of the place it was made: the variables
// its body can see. It is not an arena record, so it lives exactly as
// long as the lambda holding it.
type closure struct {
	arena *arena
	vars  map[Symbol]SExpression
}

const (
	noScope         = -1
	defaultMaxDepth = 10000
)

func newScope(outer int) scope {
	return scope{
		variables: map[Symbol]SExpression{},
		functions: map[Symbol]SExpression{},
		outer:     outer,
	}
}

// NewEnv returns an empty global scope in a fresh arena.
func NewEnv() *Env {
	a := &arena{scopes: []scope{newScope(noScope)}, maxDepth: defaultMaxDepth}
	return &Env{arena: a, id: 0}
}

func (e *Env) scope() *scope {
	return &e.arena.scopes[e.id]
}

func (e *Env) global() bool {
	return e.id == 0
}

func (e *Env) root() *Env {
	return &Env{arena: e.arena, id: 0}
}

// SetMaxDepth bounds nested evaluation for every scope in the arena.
func (e *Env) SetMaxDepth(n int) {
	e.arena.maxDepth = n
}

func (e *Env) GetVariable(s Symbol) (SExpression, error) {
	for id := e.id; id != noScope; {
		sc := e.arena.scopes[id]
		if v, ok := sc.variables[s]; ok {
			return v, nil
		}
		if sc.lexical != nil {
			if v, ok := sc.lexical[s]; ok {
				return v, nil
			}
			break
		}
		id = sc.outer
	}
	return nil, &VoidVariableError{Name: s}
}

func (e *Env) GetFunction(s Symbol) (SExpression, error) {
	for id := e.id; id != noScope; id = e.arena.scopes[id].outer {
		if f, ok := e.arena.scopes[id].functions[s]; ok {
			return f, nil
		}
	}
	return nil, &VoidFunctionError{Name: s}
}

// BindVariable only ever writes to the local scope; outer scopes are
// shadowed, never mutated.
func (e *Env) BindVariable(s Symbol, v SExpression) {
	e.scope().variables[s] = v
}

func (e *Env) BindFunction(s Symbol, f SExpression) {
	e.scope().functions[s] = f
}

func (e *Env) addBuiltin(s Symbol, f BuiltinFunc) {
	e.BindFunction(s, &Builtin{Name: s, fn: f})
}

func (e *Env) addSpecialForm(s Symbol, f BuiltinFunc) {
	e.BindFunction(s, &Builtin{Name: s, fn: f, special: true})
}

// child puts a new scope whose parent is e into the arena, reusing a
// released slot when there is one.
func (e *Env) child() *Env {
	return e.arena.push(newScope(e.id))
}

func (a *arena) push(sc scope) *Env {
	for len(a.free) > 0 {
		id := a.free[len(a.free)-1]
		a.free = a.free[:len(a.free)-1]
		if id < len(a.scopes) && a.scopes[id].free {
			a.scopes[id] = sc
			return &Env{arena: a, id: id}
		}
	}
	a.scopes = append(a.scopes, sc)
	return &Env{arena: a, id: len(a.scopes) - 1}
}

// release discards a call scope once its application has returned. Nothing
// refers to a call scope after that: closures copy the variables they need.
func (e *Env) release() {
	a := e.arena
	if e.global() || e.id >= len(a.scopes) || a.scopes[e.id].free {
		return
	}
	a.scopes[e.id] = scope{outer: noScope, free: true}
	if e.id != len(a.scopes)-1 {
		a.free = append(a.free, e.id)
		return
	}
	n := len(a.scopes)
	for n > 1 && a.scopes[n-1].free {
		n--
	}
	a.scopes = a.scopes[:n]
}

// capture copies the current value of every variable body mentions that is
// visible from e. Later rebinding anywhere in the chain is invisible to the
// copy. Names that are unbound right now stay unbound for the closure.
func (e *Env) capture(body SExpression) *closure {
	vars := map[Symbol]SExpression{}
	mentioned(body, func(s Symbol) {
		if _, ok := vars[s]; ok {
			return
		}
		if v, err := e.GetVariable(s); err == nil {
			vars[s] = v
		}
	})
	return &closure{arena: e.arena, vars: vars}
}

// frame opens the scope a closure body runs in. Its parent is the global
// scope, so function lookup from the body is always live.
func (c *closure) frame() *Env {
	sc := newScope(0)
	sc.lexical = c.vars
	return c.arena.push(sc)
}

func mentioned(e SExpression, f func(Symbol)) {
	for {
		switch x := e.(type) {
		case Symbol:
			f(x)
			return
		case *Cons:
			mentioned(x.Car, f)
			e = x.Cdr
		default:
			return
		}
	}
}

func (e *Env) enter() error {
	a := e.arena
	if a.maxDepth > 0 && a.depth >= a.maxDepth {
		return &RecursionTooDeepError{Limit: a.maxDepth}
	}
	a.depth++
	return nil
}

func (e *Env) leave() {
	e.arena.depth--
}
