package lisp

import (
	"errors"
	"fmt"
)

var (
	// ErrReaderEOF means the input ended in the middle of an expression.
	// A line-buffering caller should read more input and try again.
	ErrReaderEOF = errors.New("end of input")

	// ErrEmptyInput is returned by Rep for blank input.
	ErrEmptyInput = errors.New("empty input")
)

type ReaderError struct {
	Pos int
	Msg string
}

func (e *ReaderError) Error() string {
	return fmt.Sprintf("read error at %d: %s", e.Pos, e.Msg)
}

// EscapeError is an unknown escape sequence inside a string literal.
type EscapeError struct {
	Pos  int
	Char rune
}

func (e *EscapeError) Error() string {
	return fmt.Sprintf("read error at %d: invalid escape character %q in string", e.Pos, e.Char)
}

type VoidVariableError struct {
	Name Symbol
}

func (e *VoidVariableError) Error() string {
	return fmt.Sprintf("void variable: %s", e.Name)
}

type VoidFunctionError struct {
	Name Symbol
}

func (e *VoidFunctionError) Error() string {
	return fmt.Sprintf("void function: %s", e.Name)
}

type WrongTypeArgumentError struct {
	Expected string
	Actual   SExpression
}

func (e *WrongTypeArgumentError) Error() string {
	return fmt.Sprintf("wrong type argument: %s, %s", e.Expected, e.Actual)
}

// WrongNumberOfArgumentsError reports an arity mismatch.
// Allowed is -1 when any number of arguments past Required is accepted.
type WrongNumberOfArgumentsError struct {
	Name     Symbol
	Required int
	Allowed  int
	Actual   int
}

func (e *WrongNumberOfArgumentsError) Error() string {
	arity := fmt.Sprintf("%d", e.Required)
	switch {
	case e.Allowed < 0:
		arity += " or more"
	case e.Allowed != e.Required:
		arity = fmt.Sprintf("%d to %d", e.Required, e.Allowed)
	}
	return fmt.Sprintf("wrong number of arguments: %s wants %s, got %d", e.Name, arity, e.Actual)
}

type SettingConstantError struct {
	Name SExpression
}

func (e *SettingConstantError) Error() string {
	return fmt.Sprintf("setting constant: %s", e.Name)
}

type ArithError struct {
	Op Symbol
}

func (e *ArithError) Error() string {
	return fmt.Sprintf("arith error: %s by zero", e.Op)
}

type RecursionTooDeepError struct {
	Limit int
}

func (e *RecursionTooDeepError) Error() string {
	return fmt.Sprintf("recursion too deep: exceeded %d nested evaluations", e.Limit)
}
