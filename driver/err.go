package driver

import (
	"errors"

	"github.com/ezrec/starjconf/translate"
)

var f = translate.From

var (
	ErrNotDir = errors.New(f("not a directory"))
)

// ErrOnlyUnknown is a selection naming neither a fixture nor a mnemonic.
type ErrOnlyUnknown string

func (err ErrOnlyUnknown) Error() string {
	return f("'%v' is neither a fixture nor an instruction", string(err))
}

// ErrFixture names the fixture that could not be produced.
type ErrFixture struct {
	Name string
	Err  error
}

func (err *ErrFixture) Error() string {
	return f("fixture %v: %v", err.Name, err.Err)
}

func (err *ErrFixture) Unwrap() error {
	return err.Err
}
