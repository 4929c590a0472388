package catalog

import (
	"github.com/ezrec/starjconf/translate"
)

var f = translate.From

// ErrTableMissing is returned for a mnemonic without a case table.
type ErrTableMissing string

func (err ErrTableMissing) Error() string {
	return f("no case table for '%v'", string(err))
}

// ErrCase locates a malformed row.
type ErrCase struct {
	Mnemonic string
	Index    int
	Err      error
}

func (err *ErrCase) Error() string {
	return f("%v case %v: %v", err.Mnemonic, err.Index, err.Err)
}

func (err *ErrCase) Unwrap() error {
	return err.Err
}

// ErrOperandCount is a row with the wrong number of operands.
type ErrOperandCount struct {
	Want int
	Got  int
}

func (err *ErrOperandCount) Error() string {
	return f("%v operands, want %v", err.Got, err.Want)
}

// ErrOperandRange is a value that does not fit a 16-bit word.
type ErrOperandRange int

func (err ErrOperandRange) Error() string {
	return f("value %v does not fit in 16 bits", int(err))
}

// ErrImmediateRange is a shi immediate outside a byte.
type ErrImmediateRange int

func (err ErrImmediateRange) Error() string {
	return f("immediate %v outside 0..255", int(err))
}

// ErrMismatch is a row whose expected value disagrees with the documented
// semantics.
type ErrMismatch struct {
	Want string
	Got  string
}

func (err *ErrMismatch) Error() string {
	return f("expected %v, semantics give %v", err.Want, err.Got)
}

// ErrSemantics is a failure to evaluate the semantics expression.
type ErrSemantics struct {
	Expr string
	Err  error
}

func (err *ErrSemantics) Error() string {
	return f("semantics '%v': %v", err.Expr, err.Err)
}

func (err *ErrSemantics) Unwrap() error {
	return err.Err
}
