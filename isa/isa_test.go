package isa

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

// vocabulary is the mnemonic set accepted by the starj assembler.
var vocabulary = []string{
	"push", "pop", "drop", "dup", "swap", "over", "rot",
	"add", "sub", "and", "or", "xor", "lt", "ltu",
	"div", "divu", "mod", "modu", "mul", "mulh",
	"sll", "srl", "sra", "fsl", "select",
	"beqz", "bnez", "jump", "call", "callp",
	"lw", "sw", "lb", "sb", "lh", "sh",
	"llw", "slw", "lnw", "snw", "shi", "halt", "failnez",
}

func TestVocabulary(t *testing.T) {
	assert := assert.New(t)

	names := Mnemonics()
	assert.ElementsMatch(vocabulary, names)

	// No duplicates.
	sorted := slices.Clone(names)
	slices.Sort(sorted)
	assert.Equal(len(sorted), len(slices.Compact(sorted)))
}

func TestLookup(t *testing.T) {
	assert := assert.New(t)

	inst, err := Lookup("add")
	assert.NoError(err)
	assert.Equal(ARITY_BINARY, inst.Arity)
	assert.Equal(CAT_ARITHMETIC, inst.Category)
	assert.Equal("add", inst.FixtureName())
	assert.True(inst.Oracle())

	inst, err = Lookup("lb")
	assert.NoError(err)
	assert.Equal("lb_sb", inst.FixtureName())
	assert.False(inst.Oracle())

	_, err = Lookup("nop")
	assert.Error(err)
	assert.True(errors.Is(err, ErrInstructionUnknown("")))
	assert.Contains(err.Error(), "nop")
}

func TestInstructionTable(t *testing.T) {
	assert := assert.New(t)

	for inst := range All() {
		switch inst.Arity {
		case ARITY_BINARY:
			assert.Equal(2, inst.Pops, inst.Mnemonic)
			assert.Equal(1, inst.Pushes, inst.Mnemonic)
			assert.NotEmpty(inst.Semantics, inst.Mnemonic)
		case ARITY_UNARY:
			assert.Equal(1, inst.Pops, inst.Mnemonic)
			assert.Equal(1, inst.Pushes, inst.Mnemonic)
		}
		assert.NotEmpty(inst.Summary, inst.Mnemonic)
	}
}

func TestInCategory(t *testing.T) {
	assert := assert.New(t)

	var names []string
	for inst := range InCategory(CAT_MEMORY) {
		names = append(names, inst.Mnemonic)
	}
	assert.Equal([]string{"lw", "sw", "lh", "sh", "lb", "sb"}, names)
}

func TestFamilies(t *testing.T) {
	assert := assert.New(t)

	names, covers := Families()
	assert.Contains(names, "lw_sw")
	assert.Equal([]string{"lw", "sw"}, covers["lw_sw"])
	assert.Equal([]string{"push", "pop"}, covers["push_pop_reg"])
	assert.Equal([]string{"failnez", "halt"}, covers["failnez"])

	total := 0
	for _, name := range names {
		total += len(covers[name])
	}
	assert.Equal(len(vocabulary), total)
}

func TestRegisters(t *testing.T) {
	assert := assert.New(t)

	for _, name := range []string{"fp", "ra", "ar", "pc"} {
		reg, err := ParseRegister(name)
		assert.NoError(err)
		assert.Equal(name, reg.String())
	}

	_, err := ParseRegister("sp")
	assert.Error(err)
}

func TestWordHelpers(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(-1, Signed(0xffff))
	assert.Equal(-32768, Signed(0x8000))
	assert.Equal(32767, Signed(0x7fff))
	assert.Equal(0xffff, Unsigned(-1))
	assert.Equal(0, Signed(0x10000))
	assert.True(InRange(-32768))
	assert.True(InRange(0xffff))
	assert.False(InRange(0x10000))
	assert.False(InRange(-32769))
}

func TestStringers(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("binary", ARITY_BINARY.String())
	assert.Equal("immediate", CAT_IMMEDIATE.String())
	assert.Equal("addressing", CAT_ADDRESSING.String())
	assert.Equal("pc", REG_PC.String())
	assert.Equal("Arity(9)", Arity(9).String())
}
