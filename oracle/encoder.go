// Package oracle renders catalog rows into self-checking assembler
// fragments: push the operands, run the instruction, push the expected
// result, xor, and fail on any difference.
package oracle

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ezrec/starjconf/asm"
	"github.com/ezrec/starjconf/catalog"
	"github.com/ezrec/starjconf/isa"
)

// Encoder turns catalog rows into program fragments.
type Encoder struct {
	Hex bool // Render operand and result literals in hexadecimal.
}

func (enc Encoder) imm(v int) asm.Imm {
	if enc.Hex {
		return asm.Hex(v)
	}
	return asm.Dec(v)
}

func (enc Encoder) text(v int) string {
	return enc.imm(v).String()
}

// describe renders the case comment.
func (enc Encoder) describe(inst isa.Instruction, index int, c catalog.Case) string {
	var desc string

	switch {
	case inst.Immediate:
		ops := []string{enc.text(c.Operands[0])}
		for _, imm := range c.Immediates {
			ops = append(ops, inst.Mnemonic, asm.Hex(imm).String())
		}
		desc = strings.Join(ops, " ")
	case len(c.Operands) == 2:
		desc = fmt.Sprintf("%v %v %v", enc.text(c.Operands[0]), inst.Mnemonic, enc.text(c.Operands[1]))
	default:
		ops := make([]string, len(c.Operands))
		for n, v := range c.Operands {
			ops[n] = enc.text(v)
		}
		desc = inst.Mnemonic + " " + strings.Join(ops, ", ")
	}

	desc = fmt.Sprintf("Case %v: %v -> %v", index, desc, enc.text(c.Expected))
	if len(c.Note) != 0 {
		desc += " (" + c.Note + ")"
	}
	return desc
}

// stackNames label the pushes of a three operand row.
var stackNames = []string{"ros", "nos", "tos"}

// Encode renders one value row.
func (enc Encoder) Encode(inst isa.Instruction, index int, c catalog.Case) (stmts []asm.Statement, err error) {
	if inst.Pushes != 1 || len(c.Operands) != inst.Pops {
		err = &ErrArity{Mnemonic: inst.Mnemonic, Want: inst.Pops, Got: len(c.Operands)}
		return
	}
	if inst.Immediate != (len(c.Immediates) != 0) {
		err = &ErrArity{Mnemonic: inst.Mnemonic, Want: inst.Pops, Got: len(c.Operands)}
		return
	}

	stmts = append(stmts, asm.Comment("%v", enc.describe(inst, index, c)))
	for n, v := range c.Operands {
		push := asm.Push(enc.imm(v))
		if len(c.Operands) == len(stackNames) {
			push = push.Note("%v", stackNames[n])
		}
		stmts = append(stmts, push)
	}
	if inst.Immediate {
		for _, imm := range c.Immediates {
			stmts = append(stmts, asm.OpImm(inst.Mnemonic, asm.Hex(imm)))
		}
	} else {
		stmts = append(stmts, asm.Op(inst.Mnemonic))
	}
	stmts = append(stmts, Check(enc.imm(c.Expected))...)
	stmts = append(stmts, asm.Blank())

	return
}

// EncodeStack renders one stack-shape row: the after-stack is compared
// from the top down, which also empties it.
func (enc Encoder) EncodeStack(inst isa.Instruction, index int, sc catalog.StackCase) (stmts []asm.Statement, err error) {
	if sc.Repeat < 1 || len(sc.Before) < inst.Pops {
		err = &ErrArity{Mnemonic: inst.Mnemonic, Want: inst.Pops, Got: len(sc.Before)}
		return
	}

	before := make([]string, len(sc.Before))
	for n, v := range sc.Before {
		before[n] = enc.text(v)
	}
	after := make([]string, len(sc.After))
	for n, v := range sc.After {
		after[n] = enc.text(v)
	}
	op := inst.Mnemonic
	if sc.Repeat > 1 {
		op = fmt.Sprintf("%v x%v", op, sc.Repeat)
	}
	desc := fmt.Sprintf("Case %v: [%v] %v -> [%v]", index, strings.Join(before, " "), op, strings.Join(after, " "))
	if len(sc.Note) != 0 {
		desc += " (" + sc.Note + ")"
	}

	stmts = append(stmts, asm.Comment("%v", desc))
	for _, v := range sc.Before {
		stmts = append(stmts, asm.Push(enc.imm(v)))
	}
	for range sc.Repeat {
		stmts = append(stmts, asm.Op(inst.Mnemonic))
	}
	for _, v := range slices.Backward(sc.After) {
		stmts = append(stmts, Check(enc.imm(v))...)
	}
	stmts = append(stmts, asm.Blank())

	return
}

func header(inst isa.Instruction) *asm.Program {
	prog := asm.NewProgram(inst.FixtureName(), fmt.Sprintf("Test %v instruction", inst.Mnemonic))
	prog.Add(
		asm.Comment("%v: %v", inst.Mnemonic, inst.Summary),
		asm.Blank(),
	)
	return prog
}

// Fixture builds the complete value fixture for an instruction. Every row
// is checked against the documented semantics first.
func (enc Encoder) Fixture(inst isa.Instruction, cases []catalog.Case) (prog *asm.Program, err error) {
	if len(cases) == 0 {
		err = catalog.ErrTableMissing(inst.Mnemonic)
		return
	}
	for n, c := range cases {
		err = catalog.Check(inst, n, c)
		if err != nil {
			return
		}
	}

	prog = header(inst)
	for n, c := range cases {
		var stmts []asm.Statement
		stmts, err = enc.Encode(inst, n, c)
		if err != nil {
			return
		}
		prog.Add(stmts...)
	}
	prog.Add(Epilogue()...)

	return
}

// StackFixture builds the complete stack-shape fixture for an instruction,
// after checking every row.
func (enc Encoder) StackFixture(inst isa.Instruction, cases []catalog.StackCase) (prog *asm.Program, err error) {
	if len(cases) == 0 {
		err = catalog.ErrTableMissing(inst.Mnemonic)
		return
	}
	for n, sc := range cases {
		err = catalog.CheckStack(inst, n, sc)
		if err != nil {
			return
		}
	}

	prog = header(inst)
	for n, sc := range cases {
		var stmts []asm.Statement
		stmts, err = enc.EncodeStack(inst, n, sc)
		if err != nil {
			return
		}
		prog.Add(stmts...)
	}
	prog.Add(Epilogue()...)

	return
}

// Fixture builds a value fixture with decimal literals.
func Fixture(inst isa.Instruction, cases []catalog.Case) (*asm.Program, error) {
	return Encoder{}.Fixture(inst, cases)
}
