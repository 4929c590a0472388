package structural

import (
	"github.com/ezrec/starjconf/asm"
	"github.com/ezrec/starjconf/isa"
)

// roundTripReg writes v to a register and reads it back.
func roundTripReg(reg isa.Register, v int) (stmts []asm.Statement) {
	stmts = append(stmts,
		asm.Comment("%v = %v", reg, asm.Hex(v)),
		asm.Push(asm.Hex(v)),
		asm.Pop(reg),
		asm.PushReg(reg),
	)
	stmts = append(stmts, check(v)...)
	return
}

// addReg adds delta to a register and compares the result.
func addReg(reg isa.Register, delta int, want int) (stmts []asm.Statement) {
	stmts = append(stmts,
		asm.Push(asm.Dec(delta)),
		asm.OpReg("add", reg).Note("%v += %v", reg, delta),
		asm.PushReg(reg),
	)
	stmts = append(stmts, check(want)...)
	return
}

// buildPushPopReg covers every push operand form and pop into each
// register, including pc.
func buildPushPopReg() (prog *asm.Program, err error) {
	prog = newFixture("push_pop_reg", "push", "pop")
	prog.Sentinel = SENTINEL_REG

	prog.Add(
		asm.Push(asm.Hex(SENTINEL_REG)).Note("sentinel"),
		asm.PushReg(isa.REG_FP).Note("saved fp, for the final check"),
		asm.Blank(),
		asm.Comment("Literal forms name the same word"),
		asm.Push(asm.Dec(-1)),
		asm.Push(asm.Hex(0xffff)),
		asm.Op("xor"),
		asm.Op("failnez"),
		asm.Push(asm.Dec(-32768)),
		asm.Push(asm.Hex(0x8000)),
		asm.Op("xor"),
		asm.Op("failnez"),
		asm.Blank(),
		asm.PushReg(isa.REG_FP).Note("saved fp"),
	)
	prog.Add(roundTripReg(isa.REG_FP, 0x1234)...)
	prog.Add(asm.Pop(isa.REG_FP).Note("restore fp"))
	prog.Add(roundTripReg(isa.REG_RA, 0x5678)...)
	prog.Add(roundTripReg(isa.REG_AR, 0xabcd)...)
	prog.Add(roundTripReg(isa.REG_AR, 0)...)
	prog.Add(
		asm.Blank(),
		asm.Comment("push pc yields the address of the push itself"),
		asm.Label("_pc_here"),
		asm.PushReg(isa.REG_PC),
		asm.PushLabel("_pc_here"),
		asm.Op("xor"),
		asm.Op("failnez"),
		asm.Blank(),
		asm.Comment("pop pc transfers control"),
		asm.PushLabel("_pc_target"),
		asm.Pop(isa.REG_PC),
		shadow(MARKER_1),
		asm.Branch("jump", asm.LABEL_FAIL),
		asm.Label("_pc_target"),
		asm.Blank(),
		asm.Comment("fp was restored"),
		asm.PushReg(isa.REG_FP),
		asm.Op("xor"),
		asm.Op("failnez"),
		asm.Comment("Only the sentinel remains"),
	)
	prog.Add(check(SENTINEL_REG)...)
	prog.Add(asm.Blank())

	return finish(prog), nil
}

// buildAddReg covers the register form of add on fp, ra and ar.
func buildAddReg() (prog *asm.Program, err error) {
	prog = newFixture("add_reg", "add")
	prog.Title = "Test add register operation"

	prog.Add(
		asm.PushReg(isa.REG_FP).Note("saved fp, for the final check"),
		asm.PushReg(isa.REG_FP).Note("saved fp"),
		asm.Push(asm.Dec(100)),
		asm.OpReg("add", isa.REG_FP).Note("fp += 100"),
		asm.Comment("fp - 100 == saved fp"),
		asm.PushReg(isa.REG_FP),
		asm.Push(asm.Dec(-100)),
		asm.Op("add"),
		asm.Op("xor"),
		asm.Op("failnez"),
		asm.Push(asm.Dec(-100)),
		asm.OpReg("add", isa.REG_FP).Note("restore fp"),
		asm.PushReg(isa.REG_FP),
		asm.Op("xor"),
		asm.Op("failnez"),
		asm.Blank(),
		asm.Push(asm.Dec(0)),
		asm.Pop(isa.REG_RA),
	)
	prog.Add(addReg(isa.REG_RA, 50, 50)...)
	prog.Add(addReg(isa.REG_RA, -60, 0xfff6)...)
	prog.Add(
		asm.Blank(),
		asm.Push(asm.Dec(0)),
		asm.Pop(isa.REG_AR),
	)
	prog.Add(addReg(isa.REG_AR, 200, 200)...)
	prog.Add(
		asm.Push(asm.Hex(0xffff)),
		asm.Pop(isa.REG_AR),
	)
	prog.Add(addReg(isa.REG_AR, 2, 1)...)
	prog.Add(asm.Blank())

	return finish(prog), nil
}
