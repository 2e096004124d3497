package lisp

import (
	"testing"
)

func TestLisp(t *testing.T) {
	// NOTE: one shared global env for test, meaning order matters here!
	l := New()
	for i, tt := range []struct {
		input string
		want  string
	}{
		{input: "(+ 1 2 3)", want: "6"},
		{input: "(+ 1 2.0)", want: "3.0"},
		{input: "(+)", want: "0"},
		{input: "(*)", want: "1"},
		{input: "(* 2 3 4)", want: "24"},
		{input: "(* 1.5 2)", want: "3.0"},
		{input: "(- 5 2)", want: "3"},
		{input: "(- 10 1 2 3)", want: "4"},
		{input: "(-)", want: "0"},
		{input: "(- 5)", want: "5"},
		{input: "(/)", want: "1"},
		{input: "(/ 2)", want: "2"},
		{input: "(/ 7 2)", want: "3"},
		{input: "(/ 7 2.0)", want: "3.5"},
		{input: "(/ 1 0.0)", want: "1.0e+INF"},
		{input: "(mod -7 3)", want: "2"},
		{input: "(mod 7.5 2)", want: "1.5"},
		{input: "(< 1 2 3)", want: "t"},
		{input: "(< 1 3 2)", want: "nil"},
		{input: "(<)", want: "t"},
		{input: "(> 1)", want: "t"},
		{input: "(= 1 1.0)", want: "t"},
		{input: "(!= 1 2 1)", want: "t"},
		{input: "(>= 3 3 1)", want: "t"},
		{input: "(<= 1 2.5 2)", want: "nil"},
		{input: "(if nil 1 2)", want: "2"},
		{input: "(if t 1)", want: "1"},
		{input: "(if nil 1)", want: "nil"},
		{input: "(if 0 'yes 'no)", want: "yes"},
		{input: `(if "" 1 2)`, want: "1"},
		{input: "(if (> (* 11 11) 120) (* 7 6) oops)", want: "42"},
		{input: "(quote (a b))", want: "(a b)"},
		{input: "'(a b)", want: "(a b)"},
		{input: "''a", want: "'a"},
		{input: "'(1 . 2)", want: "(1 . 2)"},
		{input: "nil", want: "nil"},
		{input: "t", want: "t"},
		{input: ":key", want: ":key"},
		{input: `"hello"`, want: `"hello"`},
		{input: `"say \"hi\""`, want: `"say \"hi\""`},
		{input: "(setq x 5)", want: "5"},
		{input: "(+ x 1)", want: "6"},
		{input: "(set y (* x 2))", want: "10"},
		{input: "(setq a 1 b 2)", want: "2"},
		{input: "(+ a b)", want: "3"},
		{input: "((lambda (a b) (+ a b)) 1 2)", want: "3"},
		{input: "((lambda () 7))", want: "7"},
		{input: "(setq add1 (lambda (n) (+ n 1)))", want: "(lambda (n) (+ n 1))"},
		{input: "(apply add1 '(41))", want: "42"},
		{input: "(apply add1 (list x))", want: "6"},
		{input: "(funcall add1 1)", want: "2"},
		{input: "(apply '+ '(1 2 3))", want: "6"},
		{input: "(apply '+ (list 1 2.5))", want: "3.5"},
		{input: "(defun fact (n) (if (<= n 1) 1 (* n (fact (- n 1)))))", want: "fact"},
		{input: "(fact 10)", want: "3628800"},
		{input: "(defun twice (x) (* 2 x))", want: "twice"},
		{input: "(twice 5)", want: "10"},
		{input: "(defun repeat (f) (lambda (x) (funcall f (funcall f x))))", want: "repeat"},
		{input: "(funcall (repeat 'twice) 10)", want: "40"},
		{input: "(funcall (repeat (repeat 'twice)) 10)", want: "160"},
		{input: "(cons 1 2)", want: "(1 . 2)"},
		{input: "(cons 1 (cons 2 3))", want: "(1 2 . 3)"},
		{input: "(cons 1 '(2 3))", want: "(1 2 3)"},
		{input: "(list 1 'b \"c\" :d)", want: `(1 b "c" :d)`},
		{input: "(list)", want: "nil"},
		{input: "(car '(1 2 3))", want: "1"},
		{input: "(cdr '(1 2 3))", want: "(2 3)"},
		{input: "(car nil)", want: "nil"},
		{input: "(progn (setq z 1) (+ z 1))", want: "2"},
		{input: "(progn)", want: "nil"},
		{input: "(equal '(1 (2 \"x\")) (list 1 (list 2 \"x\")))", want: "t"},
		{input: "(equal 1 1.0)", want: "nil"},
		{input: "(eq '(1) '(1))", want: "nil"},
		{input: "(eq 'a 'a)", want: "t"},
		{input: "(eq add1 add1)", want: "t"},
		{input: "(null nil)", want: "t"},
		{input: "(not 0)", want: "nil"},
		{input: "(atom 'a)", want: "t"},
		{input: "(consp '(a))", want: "t"},
		{input: "(listp nil)", want: "t"},
		{input: "(numberp 1.5)", want: "t"},
		{input: "(integerp 1.5)", want: "nil"},
		{input: "(floatp 1.5)", want: "t"},
		{input: "(symbolp nil)", want: "t"},
		{input: "(stringp :a)", want: "nil"},
		{input: "(keywordp :a)", want: "t"},
		{input: "(functionp add1)", want: "t"},
		{input: "(symbolp (gensym))", want: "t"},
		{input: "(eq (gensym) (gensym))", want: "nil"},
	} {
		e, err := l.Eval(tt.input)
		if err != nil {
			t.Errorf("%d) eval error %v", i, err)
			continue
		}
		got := e.String()
		if got != tt.want {
			t.Errorf("%d) got %s want %s", i, got, tt.want)
		}
	}
}

func TestLexicalScope(t *testing.T) {
	l := New()
	for i, tt := range []struct {
		input string
		want  string
	}{
		{input: "(setq x 1)", want: "1"},
		{input: "(setq f (lambda () x))", want: "(lambda nil x)"},
		{input: "(setq x 2)", want: "2"},
		// rebinding x after f was made is invisible to f
		{input: "(funcall f)", want: "1"},
		{input: "(defun adder (n) (lambda (m) (+ n m)))", want: "adder"},
		{input: "(setq add5 (adder 5))", want: "(lambda (m) (+ n m))"},
		{input: "(setq n 100)", want: "100"},
		{input: "(funcall add5 10)", want: "15"},
		{input: "(setq y 10)", want: "10"},
		{input: "(defun gety () y)", want: "gety"},
		{input: "(defun calls-gety (y) (gety))", want: "calls-gety"},
		// lexical, not dynamic: the caller's y is not seen
		{input: "(calls-gety 99)", want: "10"},
		{input: "((lambda (x) (+ x x)) 21)", want: "42"},
		// the parameter shadowed x only for the duration of the call
		{input: "x", want: "2"},
	} {
		e, err := l.Eval(tt.input)
		if err != nil {
			t.Errorf("%d) eval error %v", i, err)
			continue
		}
		got := e.String()
		if got != tt.want {
			t.Errorf("%d) got %s want %s", i, got, tt.want)
		}
	}
}

// a symbol can name a variable and a function at the same time
func TestSeparateNamespaces(t *testing.T) {
	l := New()
	for i, tt := range []struct {
		input string
		want  string
	}{
		{input: "(setq car 5)", want: "5"},
		{input: "(car (list car))", want: "5"},
		{input: "(defun sq (x) (* x x))", want: "sq"},
		{input: "(setq sq 3)", want: "3"},
		{input: "(sq sq)", want: "9"},
	} {
		e, err := l.Eval(tt.input)
		if err != nil {
			t.Errorf("%d) eval error %v", i, err)
			continue
		}
		got := e.String()
		if got != tt.want {
			t.Errorf("%d) got %s want %s", i, got, tt.want)
		}
	}
}
