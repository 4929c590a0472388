package structural

import (
	"github.com/ezrec/starjconf/asm"
	"github.com/ezrec/starjconf/isa"
	"github.com/ezrec/starjconf/oracle"
)

// MARKER_CALLEE is left on the stack by the test callee.
const MARKER_CALLEE = 0x5a5a

// callees are the subroutines shared by the call fixtures.
func callees() []asm.Statement {
	return []asm.Statement{
		asm.Blank(),
		asm.Label("_callee"),
		asm.Push(asm.Hex(MARKER_CALLEE)),
		asm.PushReg(isa.REG_RA),
		asm.Pop(isa.REG_PC).Note("return"),
		shadow(MARKER_6),
		asm.Branch("jump", asm.LABEL_FAIL),
		asm.Blank(),
		asm.Label("_ra_probe"),
		asm.PushReg(isa.REG_RA).Note("result is ra"),
		asm.PushReg(isa.REG_RA),
		asm.Pop(isa.REG_PC).Note("return"),
	}
}

// returned checks the callee marker after a call.
func returned() []asm.Statement {
	return check(MARKER_CALLEE)
}

// raCheck compares the ra left by _ra_probe with the return label.
func raCheck(label string) []asm.Statement {
	return []asm.Statement{
		asm.Label(label),
		asm.PushLabel(label).Note("ra is the statement after the call"),
		asm.Op("xor"),
		asm.Op("failnez"),
	}
}

func buildCallRet() (prog *asm.Program, err error) {
	prog = newFixture("call_ret", "call")
	prog.Title = "Test call and ret instructions"
	prog.Sentinel = SENTINEL_CALL

	prog.Add(
		asm.Push(asm.Hex(SENTINEL_CALL)).Note("sentinel"),
		asm.Comment("Call and return"),
		asm.Branch("call", "_callee"),
	)
	prog.Add(returned()...)
	prog.Add(
		asm.Comment("Second call from another site"),
		asm.Branch("call", "_callee"),
	)
	prog.Add(returned()...)
	prog.Add(
		asm.Blank(),
		asm.Branch("call", "_ra_probe"),
	)
	prog.Add(raCheck("_ra_return")...)
	prog.Add(asm.Blank(), asm.Comment("Only the sentinel remains"))
	prog.Add(check(SENTINEL_CALL)...)
	prog.Add(oracle.Epilogue()...)
	prog.Add(callees()...)
	prog.Add(oracle.FailTail()...)

	return
}

func buildCallp() (prog *asm.Program, err error) {
	prog = newFixture("callp", "callp")
	prog.Title = "Test callp instruction (call function pointer)"
	prog.Sentinel = SENTINEL_CALL

	prog.Add(
		asm.Push(asm.Hex(SENTINEL_CALL)).Note("sentinel"),
		asm.Comment("Call through a pushed label"),
		asm.PushLabel("_callee"),
		asm.Op("callp"),
	)
	prog.Add(returned()...)
	prog.Add(
		asm.Comment("Call through a computed address"),
		asm.PushLabel("_callee"),
		asm.Push(asm.Dec(1)),
		asm.Op("add"),
		asm.Push(asm.Dec(-1)),
		asm.Op("add"),
		asm.Op("callp"),
	)
	prog.Add(returned()...)
	prog.Add(
		asm.Comment("Call through an address held in a register"),
		asm.PushLabel("_callee"),
		asm.Pop(isa.REG_AR),
		asm.PushReg(isa.REG_AR),
		asm.Op("callp"),
	)
	prog.Add(returned()...)
	prog.Add(
		asm.Blank(),
		asm.PushLabel("_ra_probe"),
		asm.Op("callp"),
	)
	prog.Add(raCheck("_ra_return")...)
	prog.Add(asm.Blank(), asm.Comment("Only the sentinel remains"))
	prog.Add(check(SENTINEL_CALL)...)
	prog.Add(oracle.Epilogue()...)
	prog.Add(callees()...)
	prog.Add(oracle.FailTail()...)

	return
}
