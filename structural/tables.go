package structural

import (
	"github.com/ezrec/starjconf/asm"
	"github.com/ezrec/starjconf/catalog"
	"github.com/ezrec/starjconf/isa"
	"github.com/ezrec/starjconf/oracle"
)

// catalogFixture renders a value table in hexadecimal.
func catalogFixture(mnemonic string) func() (*asm.Program, error) {
	return func() (prog *asm.Program, err error) {
		inst, err := isa.Lookup(mnemonic)
		if err != nil {
			return
		}
		cases, err := catalog.Cases(mnemonic)
		if err != nil {
			return
		}
		return oracle.Encoder{Hex: true}.Fixture(inst, cases)
	}
}

// stackFixture renders a stack-shape table in hexadecimal.
func stackFixture(mnemonic string) func() (*asm.Program, error) {
	return func() (prog *asm.Program, err error) {
		inst, err := isa.Lookup(mnemonic)
		if err != nil {
			return
		}
		cases, err := catalog.StackCases(mnemonic)
		if err != nil {
			return
		}
		return oracle.Encoder{Hex: true}.StackFixture(inst, cases)
	}
}
