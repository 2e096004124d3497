package lisp

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoader(t *testing.T) {
	l := New()
	if err := l.Load("(setq r 10) ; radius\n(defun area (r) (* 3 r r))"); err != nil {
		t.Fatal(err)
	}

	for i, tt := range []struct {
		input string
		want  string
	}{
		{
			input: "(* r r)",
			want:  "100",
		},
		{
			input: "(area r)",
			want:  "300",
		},
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

func TestLoadFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "prelude.lisp")
	if err := os.WriteFile(filename, []byte("(defun sq (x) (* x x))\n(setq nine (sq 3))\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	l := New()
	if err := l.LoadFile(filename); err != nil {
		t.Fatal(err)
	}
	e, err := l.Eval("nine")
	if err != nil {
		t.Fatal(err)
	}
	if e.String() != "9" {
		t.Errorf("got %s want 9", e)
	}
	if err := l.LoadFile(filepath.Join(t.TempDir(), "missing.lisp")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("got %v want not exist", err)
	}
}

func TestRep(t *testing.T) {
	l := New()
	for i, tt := range []struct {
		input string
		want  string
		err   error
	}{
		{input: "", err: ErrEmptyInput},
		{input: "  \n\t", err: ErrEmptyInput},
		{input: "; only a comment", err: ErrEmptyInput},
		{input: "  (+ 1 2)", want: "3"},
		{input: "(+ 1 2) (* 2 3)", want: "6"},
		{input: "'(1 . 2)", want: "(1 . 2)"},
		{input: "(quote (quote x))", want: "'x"},
		// nothing runs when a later form is incomplete
		{input: "(setq q 1) (+ q", err: ErrReaderEOF},
	} {
		got, err := l.Rep(tt.input)
		if tt.err != nil {
			if !errors.Is(err, tt.err) {
				t.Errorf("%d) got error %v want %v", i, err, tt.err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%d) rep error %v", i, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%d) got %s want %s", i, got, tt.want)
		}
	}
	if _, err := l.Rep("q"); !isVoidVariable("q")(err) {
		t.Errorf("q should be unbound, got %v", err)
	}
}
