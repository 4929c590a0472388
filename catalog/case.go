// Package catalog holds the hand-curated operand tables for every
// instruction checked by value, and verifies each row against the
// instruction's documented semantics.
package catalog

import (
	"slices"

	"github.com/ezrec/starjconf/isa"
)

// Case is one row of an instruction table: operands in push order, the
// inline immediates (one instruction per immediate), and the result.
type Case struct {
	Operands   []int
	Immediates []int
	Expected   int
	Note       string
}

// Bin is a binary row: a OP b -> want.
func Bin(a, b, want int) Case {
	return Case{Operands: []int{a, b}, Expected: want}
}

// Un is a unary row.
func Un(a, want int) Case {
	return Case{Operands: []int{a}, Expected: want}
}

// Tri is a three operand row, pushed as ros, nos, tos.
func Tri(ros, nos, tos, want int) Case {
	return Case{Operands: []int{ros, nos, tos}, Expected: want}
}

// Chain is a unary row that applies the instruction once per immediate.
func Chain(start int, imms []int, want int) Case {
	return Case{Operands: []int{start}, Immediates: imms, Expected: want}
}

// With annotates a row.
func (c Case) With(note string) Case {
	c.Note = note
	return c
}

// StackCase is a stack-shape row: the stack before (bottom first), how many
// times the instruction runs, and the stack after (bottom first).
type StackCase struct {
	Before []int
	Repeat int
	After  []int
	Note   string
}

// Shape is a stack-shape row that runs the instruction once.
func Shape(before []int, after []int) StackCase {
	return StackCase{Before: before, Repeat: 1, After: after}
}

// Times sets the repeat count.
func (sc StackCase) Times(n int) StackCase {
	sc.Repeat = n
	return sc
}

// With annotates a row.
func (sc StackCase) With(note string) StackCase {
	sc.Note = note
	return sc
}

// Cases returns the value rows for a mnemonic.
func Cases(mnemonic string) (cases []Case, err error) {
	cases, ok := valueTables[mnemonic]
	if !ok {
		err = ErrTableMissing(mnemonic)
		return
	}
	cases = slices.Clone(cases)
	return
}

// StackCases returns the stack-shape rows for a mnemonic.
func StackCases(mnemonic string) (cases []StackCase, err error) {
	cases, ok := stackTables[mnemonic]
	if !ok {
		err = ErrTableMissing(mnemonic)
		return
	}
	cases = slices.Clone(cases)
	return
}

// Mnemonics lists every mnemonic with a table, in instruction set order.
func Mnemonics() (names []string) {
	for inst := range isa.All() {
		_, value := valueTables[inst.Mnemonic]
		_, stack := stackTables[inst.Mnemonic]
		if value || stack {
			names = append(names, inst.Mnemonic)
		}
	}
	return
}
