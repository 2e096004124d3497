package lisp

import "os"

func ParseFile(filename string) ([]SExpression, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return Multiparse(string(b))
}

// Multiparse reads expressions until the input is exhausted.
func Multiparse(program string) ([]SExpression, error) {
	r := NewReader(program)
	list := []SExpression{}
	for !r.Done() {
		e, err := r.Read()
		if err != nil {
			return nil, err
		}
		list = append(list, e)
	}
	return list, nil
}

// Load a string of lisp code/data into the environment.
func (l Lisp) Load(data string) error {
	sexprs, err := Multiparse(data)
	if err != nil {
		return err
	}
	return l.loadAll(sexprs)
}

func (l Lisp) LoadFile(filename string) error {
	sexprs, err := ParseFile(filename)
	if err != nil {
		return err
	}
	l.log.WithField("file", filename).WithField("forms", len(sexprs)).Debug("loading")
	return l.loadAll(sexprs)
}

func (l Lisp) loadAll(sexprs []SExpression) error {
	for _, def := range sexprs {
		if _, err := l.EvalExpr(def); err != nil {
			return err
		}
	}
	return nil
}
