// Package structural builds the fixtures for instructions whose effect is
// control flow, memory, registers or stack shape, which a single
// push-execute-compare row cannot express.
package structural

import (
	"iter"
	"slices"
	"strings"

	"github.com/ezrec/starjconf/asm"
	"github.com/ezrec/starjconf/isa"
	"github.com/ezrec/starjconf/oracle"
)

// Generator builds one fixture.
type Generator struct {
	Name   string                      // Fixture name.
	Covers []string                    // Mnemonics exercised.
	Build  func() (*asm.Program, error) // Fixture builder.
}

var registry = []Generator{
	{Name: "select", Covers: []string{"select"}, Build: catalogFixture("select")},
	{Name: "fsl", Covers: []string{"fsl"}, Build: catalogFixture("fsl")},
	{Name: "push_pop_reg", Covers: []string{"push", "pop"}, Build: buildPushPopReg},
	{Name: "add_reg", Covers: []string{"add"}, Build: buildAddReg},
	{Name: "drop", Covers: []string{"drop"}, Build: stackFixture("drop")},
	{Name: "dup", Covers: []string{"dup"}, Build: stackFixture("dup")},
	{Name: "swap", Covers: []string{"swap"}, Build: stackFixture("swap")},
	{Name: "over", Covers: []string{"over"}, Build: stackFixture("over")},
	{Name: "rot", Covers: []string{"rot"}, Build: stackFixture("rot")},
	{Name: "beqz", Covers: []string{"beqz"}, Build: buildBeqz},
	{Name: "bnez", Covers: []string{"bnez"}, Build: buildBnez},
	{Name: "jump", Covers: []string{"jump"}, Build: buildJump},
	{Name: "failnez", Covers: []string{"failnez", "halt"}, Build: buildFailnez},
	{Name: "lw_sw", Covers: []string{"lw", "sw"}, Build: buildLwSw},
	{Name: "lh_sh", Covers: []string{"lh", "sh"}, Build: buildLhSh},
	{Name: "lb_sb", Covers: []string{"lb", "sb"}, Build: buildLbSb},
	{Name: "call_ret", Covers: []string{"call"}, Build: buildCallRet},
	{Name: "callp", Covers: []string{"callp"}, Build: buildCallp},
	{Name: "llw_slw", Covers: []string{"llw", "slw"}, Build: buildLlwSlw},
	{Name: "lnw_snw", Covers: []string{"lnw", "snw"}, Build: buildLnwSnw},
	{Name: "shi", Covers: []string{"shi"}, Build: catalogFixture("shi")},
}

// All yields every structural generator.
func All() iter.Seq[Generator] {
	return slices.Values(registry)
}

// Lookup finds a generator by fixture name.
func Lookup(name string) (gen Generator, err error) {
	for _, gen = range registry {
		if gen.Name == name {
			return
		}
	}
	err = ErrGeneratorMissing(name)
	return
}

// newFixture starts a program with the standard header for the mnemonics
// it covers.
func newFixture(name string, covers ...string) (prog *asm.Program) {
	prog = asm.NewProgram(name, "Test "+strings.Join(covers, " and ")+" instructions")
	if len(covers) == 1 {
		prog.Title = "Test " + covers[0] + " instruction"
	}
	for _, mnemonic := range covers {
		inst, err := isa.Lookup(mnemonic)
		if err != nil {
			continue
		}
		prog.Add(asm.Comment("%v: %v", inst.Mnemonic, inst.Summary))
	}
	prog.Add(asm.Blank())
	return
}

// finish appends the success epilogue and the failure tail.
func finish(prog *asm.Program) *asm.Program {
	prog.Add(oracle.Epilogue()...)
	prog.Add(oracle.FailTail()...)
	return prog
}

// check compares tos with v.
func check(v int) []asm.Statement {
	return oracle.Check(asm.Hex(v))
}
