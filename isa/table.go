package isa

import (
	"iter"
	"slices"

	"github.com/ezrec/starjconf/internal"
)

var arithmetic = []Instruction{
	{Mnemonic: "add", Arity: ARITY_BINARY, Category: CAT_ARITHMETIC, Pops: 2, Pushes: 1,
		Semantics: "s16(a + b)", Summary: "push(nos + tos)"},
	{Mnemonic: "sub", Arity: ARITY_BINARY, Category: CAT_ARITHMETIC, Pops: 2, Pushes: 1,
		Semantics: "s16(a - b)", Summary: "push(nos - tos)"},
	{Mnemonic: "mul", Arity: ARITY_BINARY, Category: CAT_ARITHMETIC, Pops: 2, Pushes: 1,
		Semantics: "s16(a * b)", Summary: "push(low word of nos * tos)"},
	{Mnemonic: "mulh", Arity: ARITY_BINARY, Category: CAT_ARITHMETIC, Pops: 2, Pushes: 1,
		Semantics: "s16((u16(a) * u16(b)) >> 16)", Summary: "push(high word of unsigned nos * tos)"},
	{Mnemonic: "div", Arity: ARITY_BINARY, Category: CAT_ARITHMETIC, Pops: 2, Pushes: 1,
		Semantics: "s16(tdiv(s16(a), s16(b)))", Summary: "push(nos / tos), signed, rounds toward zero"},
	{Mnemonic: "divu", Arity: ARITY_BINARY, Category: CAT_ARITHMETIC, Pops: 2, Pushes: 1,
		Semantics: "s16(u16(a) // u16(b))", Summary: "push(nos / tos), unsigned"},
	{Mnemonic: "mod", Arity: ARITY_BINARY, Category: CAT_ARITHMETIC, Pops: 2, Pushes: 1,
		Semantics: "s16(tmod(s16(a), s16(b)))", Summary: "push(nos % tos), signed, sign of dividend"},
	{Mnemonic: "modu", Arity: ARITY_BINARY, Category: CAT_ARITHMETIC, Pops: 2, Pushes: 1,
		Semantics: "s16(u16(a) % u16(b))", Summary: "push(nos % tos), unsigned"},
}

var logical = []Instruction{
	{Mnemonic: "and", Arity: ARITY_BINARY, Category: CAT_LOGICAL, Pops: 2, Pushes: 1,
		Semantics: "s16(u16(a) & u16(b))", Summary: "push(nos & tos)"},
	{Mnemonic: "or", Arity: ARITY_BINARY, Category: CAT_LOGICAL, Pops: 2, Pushes: 1,
		Semantics: "s16(u16(a) | u16(b))", Summary: "push(nos | tos)"},
	{Mnemonic: "xor", Arity: ARITY_BINARY, Category: CAT_LOGICAL, Pops: 2, Pushes: 1,
		Semantics: "s16(u16(a) ^ u16(b))", Summary: "push(nos ^ tos)"},
	{Mnemonic: "lt", Arity: ARITY_BINARY, Category: CAT_LOGICAL, Pops: 2, Pushes: 1,
		Semantics: "1 if s16(a) < s16(b) else 0", Summary: "push(nos < tos), signed"},
	{Mnemonic: "ltu", Arity: ARITY_BINARY, Category: CAT_LOGICAL, Pops: 2, Pushes: 1,
		Semantics: "1 if u16(a) < u16(b) else 0", Summary: "push(nos < tos), unsigned"},
	{Mnemonic: "select", Arity: ARITY_STRUCTURAL, Category: CAT_LOGICAL, Pops: 3, Pushes: 1,
		Semantics: "s16(b) if s16(c) != 0 else s16(a)", Summary: "push(tos != 0 ? nos : ros)"},
}

var shift = []Instruction{
	{Mnemonic: "sll", Arity: ARITY_BINARY, Category: CAT_SHIFT, Pops: 2, Pushes: 1,
		Semantics: "s16(u16(a) << (u16(b) & 15))", Summary: "push(nos << (tos & 15))"},
	{Mnemonic: "srl", Arity: ARITY_BINARY, Category: CAT_SHIFT, Pops: 2, Pushes: 1,
		Semantics: "s16(u16(a) >> (u16(b) & 15))", Summary: "push(nos >> (tos & 15)), zero fill"},
	{Mnemonic: "sra", Arity: ARITY_BINARY, Category: CAT_SHIFT, Pops: 2, Pushes: 1,
		Semantics: "s16(s16(a) >> (u16(b) & 15))", Summary: "push(nos >> (tos & 15)), sign fill"},
	{Mnemonic: "fsl", Arity: ARITY_STRUCTURAL, Category: CAT_SHIFT, Pops: 3, Pushes: 1,
		Semantics: "s16((((u16(a) << 16) | u16(b)) << (u16(c) & 31)) >> 16)",
		Summary:   "push(({ros, nos} << (tos & 31)) >> 16)"},
}

var stack = []Instruction{
	{Mnemonic: "push", Arity: ARITY_STRUCTURAL, Category: CAT_STACK, Pops: 0, Pushes: 1,
		Family: "push_pop_reg", Summary: "push(literal, label or register)"},
	{Mnemonic: "drop", Arity: ARITY_STRUCTURAL, Category: CAT_STACK, Pops: 1, Pushes: 0,
		Semantics: "s[:-1]", Summary: "discard tos"},
	{Mnemonic: "dup", Arity: ARITY_STRUCTURAL, Category: CAT_STACK, Pops: 1, Pushes: 2,
		Semantics: "s + [s[-1]]", Summary: "push(tos)"},
	{Mnemonic: "swap", Arity: ARITY_STRUCTURAL, Category: CAT_STACK, Pops: 2, Pushes: 2,
		Semantics: "s[:-2] + [s[-1], s[-2]]", Summary: "exchange tos and nos"},
	{Mnemonic: "over", Arity: ARITY_STRUCTURAL, Category: CAT_STACK, Pops: 2, Pushes: 3,
		Semantics: "s + [s[-2]]", Summary: "push(nos)"},
	{Mnemonic: "rot", Arity: ARITY_STRUCTURAL, Category: CAT_STACK, Pops: 3, Pushes: 3,
		Semantics: "s[:-3] + [s[-1], s[-3], s[-2]]", Summary: "tos, nos, ros = nos, ros, tos"},
}

var control = []Instruction{
	{Mnemonic: "beqz", Arity: ARITY_STRUCTURAL, Category: CAT_CONTROL, Pops: 1, Pushes: 0,
		Summary: "branch to label if tos == 0"},
	{Mnemonic: "bnez", Arity: ARITY_STRUCTURAL, Category: CAT_CONTROL, Pops: 1, Pushes: 0,
		Summary: "branch to label if tos != 0"},
	{Mnemonic: "jump", Arity: ARITY_STRUCTURAL, Category: CAT_CONTROL, Pops: 0, Pushes: 0,
		Summary: "branch to label"},
	{Mnemonic: "failnez", Arity: ARITY_STRUCTURAL, Category: CAT_CONTROL, Pops: 1, Pushes: 0,
		Summary: "halt with 0 if tos != 0"},
	{Mnemonic: "halt", Arity: ARITY_STRUCTURAL, Category: CAT_CONTROL, Pops: 0, Pushes: 0,
		Family: "failnez", Summary: "stop, result is tos"},
}

var memory = []Instruction{
	{Mnemonic: "lw", Arity: ARITY_STRUCTURAL, Category: CAT_MEMORY, Pops: 1, Pushes: 1,
		Family: "lw_sw", Summary: "push(mem:word[tos])"},
	{Mnemonic: "sw", Arity: ARITY_STRUCTURAL, Category: CAT_MEMORY, Pops: 2, Pushes: 0,
		Family: "lw_sw", Summary: "mem:word[tos] = nos"},
	{Mnemonic: "lh", Arity: ARITY_STRUCTURAL, Category: CAT_MEMORY, Pops: 1, Pushes: 1,
		Family: "lh_sh", Summary: "push(sign_extend(mem:half[tos]))"},
	{Mnemonic: "sh", Arity: ARITY_STRUCTURAL, Category: CAT_MEMORY, Pops: 2, Pushes: 0,
		Family: "lh_sh", Summary: "mem:half[tos] = nos"},
	{Mnemonic: "lb", Arity: ARITY_STRUCTURAL, Category: CAT_MEMORY, Pops: 1, Pushes: 1,
		Family: "lb_sb", Summary: "push(sign_extend(mem:byte[tos]))"},
	{Mnemonic: "sb", Arity: ARITY_STRUCTURAL, Category: CAT_MEMORY, Pops: 2, Pushes: 0,
		Family: "lb_sb", Summary: "mem:byte[tos] = nos"},
}

var register = []Instruction{
	{Mnemonic: "pop", Arity: ARITY_STRUCTURAL, Category: CAT_REGISTER, Pops: 1, Pushes: 0,
		Family: "push_pop_reg", Summary: "register = tos"},
}

var call = []Instruction{
	{Mnemonic: "call", Arity: ARITY_STRUCTURAL, Category: CAT_CALL, Pops: 0, Pushes: 0,
		Family: "call_ret", Summary: "ra = next; branch to label"},
	{Mnemonic: "callp", Arity: ARITY_STRUCTURAL, Category: CAT_CALL, Pops: 1, Pushes: 0,
		Summary: "ra = next; branch to tos"},
}

var addressing = []Instruction{
	{Mnemonic: "llw", Arity: ARITY_STRUCTURAL, Category: CAT_ADDRESSING, Pops: 1, Pushes: 1,
		Family: "llw_slw", Summary: "push(mem:word[fp + tos])"},
	{Mnemonic: "slw", Arity: ARITY_STRUCTURAL, Category: CAT_ADDRESSING, Pops: 2, Pushes: 0,
		Family: "llw_slw", Summary: "mem:word[fp + tos] = nos"},
	{Mnemonic: "lnw", Arity: ARITY_STRUCTURAL, Category: CAT_ADDRESSING, Pops: 0, Pushes: 1,
		Family: "lnw_snw", Summary: "push(mem:word[ar]); ar += 2"},
	{Mnemonic: "snw", Arity: ARITY_STRUCTURAL, Category: CAT_ADDRESSING, Pops: 1, Pushes: 0,
		Family: "lnw_snw", Summary: "mem:word[ar] = tos; ar += 2"},
}

var immediate = []Instruction{
	{Mnemonic: "shi", Arity: ARITY_STRUCTURAL, Category: CAT_IMMEDIATE, Pops: 1, Pushes: 1,
		Immediate: true, Semantics: "s16((u16(a) << 7) | (imm & 127))",
		Summary: "tos = (tos << 7) | (imm & 0x7f)"},
}

var byMnemonic = func() map[string]Instruction {
	table := make(map[string]Instruction)
	for inst := range All() {
		table[inst.Mnemonic] = inst
	}
	return table
}()

// All yields every instruction, grouped by category.
func All() iter.Seq[Instruction] {
	return internal.SeqConcat(
		slices.Values(arithmetic),
		slices.Values(logical),
		slices.Values(shift),
		slices.Values(stack),
		slices.Values(control),
		slices.Values(memory),
		slices.Values(register),
		slices.Values(call),
		slices.Values(addressing),
		slices.Values(immediate),
	)
}

// InCategory yields the instructions of a single category.
func InCategory(cat Category) iter.Seq[Instruction] {
	return internal.SeqFilter(All(), func(inst Instruction) bool {
		return inst.Category == cat
	})
}

// Lookup finds the instruction for a mnemonic.
func Lookup(mnemonic string) (inst Instruction, err error) {
	inst, ok := byMnemonic[mnemonic]
	if !ok {
		err = ErrInstructionUnknown(mnemonic)
	}
	return
}

// Mnemonics returns every mnemonic in table order.
func Mnemonics() (names []string) {
	for inst := range All() {
		names = append(names, inst.Mnemonic)
	}
	return
}

// Families returns the fixture names in first-use order, each with the
// mnemonics it covers.
func Families() (names []string, covers map[string][]string) {
	covers = make(map[string][]string)
	for inst := range All() {
		name := inst.FixtureName()
		if _, ok := covers[name]; !ok {
			names = append(names, name)
		}
		covers[name] = append(covers[name], inst.Mnemonic)
	}
	return
}
