package asm

import (
	"errors"

	"github.com/ezrec/starjconf/translate"
)

var f = translate.From

var (
	ErrFallthrough = errors.New(f("control reaches end of program without halt"))
	ErrOperandForm = errors.New(f("operand form invalid"))
)

type ErrLabelInvalid string

func (err ErrLabelInvalid) Error() string {
	return f("label '%v' invalid", string(err))
}

type ErrLabelDuplicate string

func (err ErrLabelDuplicate) Error() string {
	return f("label '%v' duplicated", string(err))
}

type ErrLabelUndefined string

func (err ErrLabelUndefined) Error() string {
	return f("label '%v' undefined", string(err))
}

// ErrSentinel reports a guard value that is not used exactly as a guard.
type ErrSentinel struct {
	Sentinel int
	Uses     int
}

func (err *ErrSentinel) Error() string {
	return f("sentinel %#04x pushed %v times, want 2", err.Sentinel, err.Uses)
}

func (err *ErrSentinel) Is(target error) (ok bool) {
	other, ok := target.(*ErrSentinel)
	return ok && *other == *err
}

// ErrStatement locates a bad statement.
type ErrStatement struct {
	Index int
	Text  string
	Err   error
}

func (err *ErrStatement) Error() string {
	return f("statement %v '%v' %v", err.Index, err.Text, err.Err)
}

func (err *ErrStatement) Unwrap() error {
	return err.Err
}

// ErrProgram names the fixture that failed validation.
type ErrProgram struct {
	Name string
	Err  error
}

func (err *ErrProgram) Error() string {
	return f("fixture %v: %v", err.Name, err.Err)
}

func (err *ErrProgram) Unwrap() error {
	return err.Err
}
