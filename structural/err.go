package structural

import (
	"github.com/ezrec/starjconf/translate"
)

var f = translate.From

// ErrGeneratorMissing is returned for a fixture with no structural generator.
type ErrGeneratorMissing string

func (err ErrGeneratorMissing) Error() string {
	return f("no structural generator for '%v'", string(err))
}
