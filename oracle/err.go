package oracle

import (
	"github.com/ezrec/starjconf/translate"
)

var f = translate.From

// ErrArity is a row whose shape does not match the instruction.
type ErrArity struct {
	Mnemonic string
	Want     int
	Got      int
}

func (err *ErrArity) Error() string {
	return f("%v takes %v operands, row has %v", err.Mnemonic, err.Want, err.Got)
}
