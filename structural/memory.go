package structural

import (
	"github.com/ezrec/starjconf/asm"
	"github.com/ezrec/starjconf/isa"
)

// fpAddr pushes fp + offset.
func fpAddr(offset int) []asm.Statement {
	return []asm.Statement{
		asm.PushReg(isa.REG_FP),
		asm.Push(asm.Dec(offset)),
		asm.Op("add"),
	}
}

// put stores value at fp + offset.
func put(store string, offset int, value int) (stmts []asm.Statement) {
	stmts = append(stmts, asm.Push(asm.Hex(value)).Note("value"))
	stmts = append(stmts, fpAddr(offset)...)
	stmts = append(stmts, asm.Op(store).Note("mem[fp%+d] = %v", offset, asm.Hex(value)))
	return
}

// get loads from fp + offset and compares with expect.
func get(load string, offset int, expect int) (stmts []asm.Statement) {
	stmts = append(stmts, fpAddr(offset)...)
	stmts = append(stmts, asm.Op(load))
	stmts = append(stmts, check(expect)...)
	return
}

// roundTrip is one store and load pair.
type roundTrip struct {
	Offset int
	Store  int
	Expect int
	Note   string
}

// memoryFixture stores and reloads each row, then reloads earlier rows to
// prove that later stores did not alias them.
func memoryFixture(load, store string, rows []roundTrip, keep []roundTrip) (prog *asm.Program, err error) {
	prog = newFixture(load+"_"+store, load, store)

	for n, row := range rows {
		prog.Add(asm.Comment("Case %v: %v at fp%+d reads back %v (%v)", n, asm.Hex(row.Store), row.Offset, asm.Hex(row.Expect), row.Note))
		prog.Add(put(store, row.Offset, row.Store)...)
		prog.Add(get(load, row.Offset, row.Expect)...)
		prog.Add(asm.Blank())
	}

	for _, row := range keep {
		prog.Add(asm.Comment("fp%+d still holds %v (%v)", row.Offset, asm.Hex(row.Expect), row.Note))
		prog.Add(get(load, row.Offset, row.Expect)...)
		prog.Add(asm.Blank())
	}

	return finish(prog), nil
}

func buildLwSw() (*asm.Program, error) {
	return memoryFixture("lw", "sw", []roundTrip{
		{Offset: -4, Store: 0x1234, Expect: 0x1234, Note: "word"},
		{Offset: -6, Store: 0xabcd, Expect: 0xabcd, Note: "adjacent word"},
		{Offset: -8, Store: 0x8000, Expect: 0x8000, Note: "high bit"},
		{Offset: -10, Store: 0xffff, Expect: 0xffff, Note: "all ones"},
	}, []roundTrip{
		{Offset: -4, Expect: 0x1234, Note: "no aliasing"},
		{Offset: -6, Expect: 0xabcd, Note: "no aliasing"},
	})
}

func buildLhSh() (*asm.Program, error) {
	return memoryFixture("lh", "sh", []roundTrip{
		{Offset: -4, Store: 0x5678, Expect: 0x5678, Note: "half is a full word"},
		{Offset: -6, Store: 0xfb2e, Expect: 0xfb2e, Note: "-1234"},
		{Offset: -8, Store: 0x7fff, Expect: 0x7fff, Note: "largest positive"},
		{Offset: -10, Store: 0x8000, Expect: 0x8000, Note: "smallest negative"},
	}, []roundTrip{
		{Offset: -4, Expect: 0x5678, Note: "no aliasing"},
		{Offset: -6, Expect: 0xfb2e, Note: "no aliasing"},
	})
}

func buildLbSb() (*asm.Program, error) {
	return memoryFixture("lb", "sb", []roundTrip{
		{Offset: -4, Store: 0x42, Expect: 0x42, Note: "positive byte"},
		{Offset: -4, Store: 0x7f, Expect: 0x7f, Note: "127 stays positive"},
		{Offset: -4, Store: 0x80, Expect: 0xff80, Note: "sign extends to -128"},
		{Offset: -4, Store: 0xff, Expect: 0xffff, Note: "sign extends to -1"},
		{Offset: -4, Store: 0x1234, Expect: 0x34, Note: "only the low byte is stored"},
		{Offset: -5, Store: 0x11, Expect: 0x11, Note: "odd address"},
		{Offset: -6, Store: 0x22, Expect: 0x22, Note: "neighbour byte"},
	}, []roundTrip{
		{Offset: -4, Expect: 0x34, Note: "no aliasing"},
		{Offset: -5, Expect: 0x11, Note: "no aliasing"},
	})
}

// buildLlwSlw moves fp down, stores and loads through fp-relative offsets,
// then restores fp.
func buildLlwSlw() (prog *asm.Program, err error) {
	prog = newFixture("llw_slw", "llw", "slw")

	prog.Add(
		asm.PushReg(isa.REG_FP).Note("saved fp"),
		asm.Push(asm.Dec(-8)),
		asm.OpReg("add", isa.REG_FP).Note("allocate 4 words"),
		asm.Blank(),
	)

	locals := []struct {
		offset int
		value  int
	}{
		{0, 0x1111},
		{2, 0x2222},
		{4, 0x3333},
		{-2, 0x4444},
	}

	for _, local := range locals {
		prog.Add(
			asm.Comment("fp%+d = %v", local.offset, asm.Hex(local.value)),
			asm.Push(asm.Hex(local.value)),
			asm.Push(asm.Dec(local.offset)),
			asm.Op("slw"),
		)
	}
	prog.Add(asm.Blank())

	for _, local := range locals {
		prog.Add(
			asm.Comment("Load fp%+d", local.offset),
			asm.Push(asm.Dec(local.offset)),
			asm.Op("llw"),
		)
		prog.Add(check(local.value)...)
	}
	prog.Add(asm.Blank())

	prog.Add(asm.Comment("slw wrote absolute address fp+2"))
	prog.Add(get("lw", 2, 0x2222)...)
	prog.Add(asm.Comment("llw reads what sw wrote"))
	prog.Add(put("sw", 6, 0x5a5a)...)
	prog.Add(asm.Push(asm.Dec(6)), asm.Op("llw"))
	prog.Add(check(0x5a5a)...)
	prog.Add(asm.Blank())

	prog.Add(
		asm.Comment("Restore fp"),
		asm.Push(asm.Dec(8)),
		asm.OpReg("add", isa.REG_FP),
		asm.PushReg(isa.REG_FP),
		asm.Op("xor"),
		asm.Op("failnez"),
		asm.Blank(),
	)

	return finish(prog), nil
}

// buildLnwSnw walks ar across four words and checks ar after each pass.
func buildLnwSnw() (prog *asm.Program, err error) {
	prog = newFixture("lnw_snw", "lnw", "snw")

	setAr := func() []asm.Statement {
		return append(fpAddr(-8), asm.Pop(isa.REG_AR).Note("ar = fp-8"))
	}
	arAtFp := func() []asm.Statement {
		return []asm.Statement{
			asm.Comment("ar advanced by %v per access", isa.WORD_BYTES),
			asm.PushReg(isa.REG_AR),
			asm.PushReg(isa.REG_FP),
			asm.Op("xor"),
			asm.Op("failnez"),
		}
	}

	words := []int{0x1111, 0x2222, 0x3333, 0x4444}

	prog.Add(asm.Comment("Store 4 words"))
	prog.Add(setAr()...)
	for n, v := range words {
		prog.Add(asm.Push(asm.Hex(v)), asm.Op("snw").Note("mem[fp%+d]", -8+n*isa.WORD_BYTES))
	}
	prog.Add(arAtFp()...)
	prog.Add(asm.Blank())

	prog.Add(asm.Comment("Load them back"))
	prog.Add(setAr()...)
	for n, v := range words {
		prog.Add(asm.Op("lnw").Note("mem[fp%+d]", -8+n*isa.WORD_BYTES))
		prog.Add(check(v)...)
	}
	prog.Add(arAtFp()...)
	prog.Add(asm.Blank())

	prog.Add(asm.Comment("snw stores are visible to lw"))
	for n, v := range words {
		prog.Add(get("lw", -8+n*isa.WORD_BYTES, v)...)
	}
	prog.Add(asm.Blank())

	prog.Add(asm.Comment("Overwrite two words, the rest are untouched"))
	prog.Add(setAr()...)
	prog.Add(
		asm.Push(asm.Hex(0xaaaa)),
		asm.Op("snw"),
		asm.Push(asm.Hex(0xbbbb)),
		asm.Op("snw"),
	)
	prog.Add(setAr()...)
	for _, v := range []int{0xaaaa, 0xbbbb, 0x3333, 0x4444} {
		prog.Add(asm.Op("lnw"))
		prog.Add(check(v)...)
	}
	prog.Add(asm.Blank())

	return finish(prog), nil
}
