package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/starjconf/isa"
)

func mustLookup(t *testing.T, mnemonic string) isa.Instruction {
	inst, err := isa.Lookup(mnemonic)
	require.NoError(t, err)
	return inst
}

func TestCheckAll(t *testing.T) {
	assert.NoError(t, CheckAll())
}

func TestEveryOracleInstructionHasTable(t *testing.T) {
	assert := assert.New(t)

	for inst := range isa.All() {
		if !inst.Oracle() {
			continue
		}
		cases, err := Cases(inst.Mnemonic)
		assert.NoError(err, inst.Mnemonic)
		assert.NotEmpty(cases, inst.Mnemonic)
		for n, c := range cases {
			assert.Len(c.Operands, inst.Pops, "%v case %v", inst.Mnemonic, n)
		}
	}
}

func TestCasesMissing(t *testing.T) {
	assert := assert.New(t)

	_, err := Cases("jump")
	assert.Error(err)
	assert.Equal(ErrTableMissing("jump"), err)

	_, err = StackCases("add")
	assert.Error(err)
}

func TestCasesAreCopies(t *testing.T) {
	assert := assert.New(t)

	cases, err := Cases("add")
	assert.NoError(err)
	cases[0] = Bin(1, 1, 3)

	again, err := Cases("add")
	assert.NoError(err)
	assert.Equal(Bin(10, 20, 30), again[0])
}

func TestEvaluate(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		mnemonic string
		operands []int
		imms     []int
		want     int
	}{
		{"add", []int{32767, 1}, nil, -32768},
		{"sub", []int{0, 1}, nil, -1},
		{"mul", []int{1000, 1000}, nil, 0x4240},
		{"mulh", []int{0xffff, 0xffff}, nil, -2},
		{"div", []int{-7, 2}, nil, -3},
		{"divu", []int{0x8000, 2}, nil, 0x4000},
		{"mod", []int{-10, 3}, nil, -1},
		{"modu", []int{0xffff, 256}, nil, 255},
		{"lt", []int{0x8000, 1}, nil, 1},
		{"ltu", []int{0x8000, 1}, nil, 0},
		{"sll", []int{1, 16}, nil, 1},
		{"srl", []int{0x8000, 17}, nil, 0x4000},
		{"sra", []int{-32768, 15}, nil, -1},
		{"fsl", []int{0xaaaa, 0x5555, 32}, nil, isa.Signed(0xaaaa)},
		{"select", []int{1, 2, 0}, nil, 1},
		{"shi", []int{2}, []int{0x57, 0x4d}, isa.Signed(0xabcd)},
		{"shi", []int{0}, []int{0x85}, 5},
	}

	for _, entry := range table {
		inst := mustLookup(t, entry.mnemonic)
		got, err := Evaluate(inst, entry.operands, entry.imms)
		assert.NoError(err, entry.mnemonic)
		assert.Equal(entry.want, isa.Signed(got), entry.mnemonic)
	}
}

func TestEvaluateErrors(t *testing.T) {
	assert := assert.New(t)

	_, err := Evaluate(mustLookup(t, "div"), []int{1, 0}, nil)
	assert.Error(err)
	assert.Contains(err.Error(), errDivideByZero.Error())

	_, err = Evaluate(mustLookup(t, "add"), []int{1}, nil)
	var count *ErrOperandCount
	assert.True(errors.As(err, &count))

	_, err = Evaluate(mustLookup(t, "jump"), nil, nil)
	var sem *ErrSemantics
	assert.True(errors.As(err, &sem))

	_, err = Evaluate(mustLookup(t, "shi"), []int{1}, nil)
	assert.Error(err)
}

func TestEvaluateStack(t *testing.T) {
	assert := assert.New(t)

	got, err := EvaluateStack(mustLookup(t, "rot"), []int{3, 2, 1}, 1)
	assert.NoError(err)
	assert.Equal([]int{1, 3, 2}, got)

	got, err = EvaluateStack(mustLookup(t, "rot"), []int{3, 2, 1}, 3)
	assert.NoError(err)
	assert.Equal([]int{3, 2, 1}, got)

	_, err = EvaluateStack(mustLookup(t, "over"), []int{1}, 1)
	assert.Error(err)
}

func TestCheckRejectsWrongExpectation(t *testing.T) {
	assert := assert.New(t)

	// Saturation is a bug, not a documented result.
	err := Check(mustLookup(t, "add"), 7, Bin(32767, 1, 32767))
	require.Error(t, err)

	var ec *ErrCase
	require.ErrorAs(t, err, &ec)
	assert.Equal("add", ec.Mnemonic)
	assert.Equal(7, ec.Index)

	var mismatch *ErrMismatch
	assert.ErrorAs(err, &mismatch)

	// 32768 and -32768 are the same 16-bit word.
	assert.NoError(Check(mustLookup(t, "add"), 8, Bin(32767, 1, 32768)))
}

func TestCheckRejectsMalformedRows(t *testing.T) {
	assert := assert.New(t)

	add := mustLookup(t, "add")

	err := Check(add, 0, Bin(0x10000, 0, 0))
	assert.ErrorIs(err, ErrOperandRange(0x10000))

	err = Check(add, 0, Un(1, 1))
	var count *ErrOperandCount
	assert.True(errors.As(err, &count))

	err = Check(add, 0, Case{Operands: []int{1, 2}, Immediates: []int{3}, Expected: 3})
	assert.Error(err)

	err = Check(mustLookup(t, "shi"), 0, Chain(0, []int{0x100}, 0))
	assert.ErrorIs(err, ErrImmediateRange(0x100))
}

func TestCheckStack(t *testing.T) {
	assert := assert.New(t)

	swap := mustLookup(t, "swap")
	assert.NoError(CheckStack(swap, 0, Shape([]int{1, 2}, []int{2, 1})))
	assert.Error(CheckStack(swap, 0, Shape([]int{1, 2}, []int{1, 2})))
	assert.Error(CheckStack(swap, 0, Shape([]int{1, 2}, []int{2, 1}).Times(0)))
}

func TestShiftTablesMaskAmounts(t *testing.T) {
	assert := assert.New(t)

	// Each plain shift must include amount 0, an amount of the word width,
	// and an amount beyond it.
	for _, mnemonic := range []string{"sll", "srl", "sra"} {
		cases, err := Cases(mnemonic)
		assert.NoError(err)
		amounts := map[int]bool{}
		for _, c := range cases {
			amounts[c.Operands[1]] = true
		}
		assert.True(amounts[0], mnemonic)
		assert.True(amounts[isa.WORD_BITS], mnemonic)
		assert.True(amounts[isa.WORD_BITS+1], mnemonic)
	}

	cases, err := Cases("fsl")
	assert.NoError(err)
	found := false
	for _, c := range cases {
		if c.Operands[2] == 32 {
			found = true
		}
	}
	assert.True(found, "fsl must probe the 5-bit amount mask")
}

func TestFunnelComposesShifts(t *testing.T) {
	assert := assert.New(t)

	fsl := mustLookup(t, "fsl")
	srl := mustLookup(t, "srl")
	sll := mustLookup(t, "sll")

	for _, v := range []int{0x0001, 0x1234, 0x8000, 0xffff} {
		for n := 1; n < 16; n++ {
			right, err := Evaluate(srl, []int{v, n}, nil)
			assert.NoError(err)
			funnel, err := Evaluate(fsl, []int{0, v, 16 - n}, nil)
			assert.NoError(err)
			assert.Equal(right, funnel, "srl %#x by %v", v, n)

			left, err := Evaluate(sll, []int{v, n}, nil)
			assert.NoError(err)
			funnel, err = Evaluate(fsl, []int{v, 0, n}, nil)
			assert.NoError(err)
			assert.Equal(left, funnel, "sll %#x by %v", v, n)
		}
	}
}

func TestMnemonics(t *testing.T) {
	assert := assert.New(t)

	names := Mnemonics()
	assert.Contains(names, "add")
	assert.Contains(names, "rot")
	assert.Contains(names, "shi")
	assert.NotContains(names, "jump")
	assert.Equal("add", names[0])
}
