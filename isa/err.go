package isa

import (
	"github.com/ezrec/starjconf/translate"
)

var f = translate.From

// ErrInstructionUnknown is returned for a mnemonic outside the instruction set.
type ErrInstructionUnknown string

func (err ErrInstructionUnknown) Error() string {
	return f("instruction '%v' unknown", string(err))
}

func (err ErrInstructionUnknown) Is(target error) (ok bool) {
	_, ok = target.(ErrInstructionUnknown)
	return
}

// ErrRegisterUnknown is returned for a name that is not a machine register.
type ErrRegisterUnknown string

func (err ErrRegisterUnknown) Error() string {
	return f("register '%v' unknown", string(err))
}
