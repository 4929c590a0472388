package structural

import (
	"fmt"

	"github.com/ezrec/starjconf/asm"
	"github.com/ezrec/starjconf/isa"
	"github.com/ezrec/starjconf/oracle"
)

// Guard values left under every branch probe and checked at the end.
const (
	SENTINEL_BEQZ = 0xaaaa
	SENTINEL_BNEZ = 0xbbbb
	SENTINEL_JUMP = 0xcccc
	SENTINEL_CALL = 0xdddd
	SENTINEL_FAIL = 0xeeee
	SENTINEL_REG  = 0x7e7e
)

// Shadow markers sit after every taken transfer. Executing one leaves an
// extra value above the sentinel.
const (
	MARKER_1 = 0x1111
	MARKER_2 = 0x2222
	MARKER_3 = 0x3333
	MARKER_4 = 0x4444
	MARKER_5 = 0x5555
	MARKER_6 = 0x6666
)

func shadow(marker int) asm.Statement {
	return asm.Push(asm.Hex(marker)).Note("shadow marker")
}

// branchFixture probes a conditional branch forward and backward, taken
// and not taken.
func branchFixture(mnemonic string, sentinel int, taken []int, notTaken []int) (prog *asm.Program, err error) {
	prog = newFixture(mnemonic, mnemonic)
	prog.Sentinel = sentinel

	prog.Add(
		asm.Push(asm.Hex(sentinel)).Note("sentinel"),
		asm.Branch("jump", "_forward"),
		shadow(MARKER_1),
		asm.Blank(),
		asm.Label(asm.LABEL_BACKWARD_NOT_TAKEN_FAIL),
		asm.Push(asm.Dec(0)),
		asm.Op("halt"),
		asm.Blank(),
		asm.Label("_forward"),
	)

	for n, v := range taken {
		label := fmt.Sprintf("_forward_taken_%d", n)
		prog.Add(
			asm.Comment("Forward taken, tos = %v", asm.Hex(v)),
			asm.Push(asm.Hex(v)),
			asm.Branch(mnemonic, label),
			shadow(MARKER_2),
			asm.Branch("jump", asm.LABEL_FAIL),
			asm.Label(label),
		)
	}

	for _, v := range notTaken {
		prog.Add(
			asm.Comment("Forward not taken, tos = %v", asm.Hex(v)),
			asm.Push(asm.Hex(v)),
			asm.Branch(mnemonic, asm.LABEL_FORWARD_NOT_TAKEN_FAIL),
		)
	}

	prog.Add(
		asm.Blank(),
		asm.Comment("Backward taken"),
		asm.Branch("jump", "_backward_setup"),
		shadow(MARKER_3),
		asm.Label("_backward_target"),
		asm.Branch("jump", "_backward_not_taken"),
		shadow(MARKER_4),
		asm.Label("_backward_setup"),
		asm.Push(asm.Hex(taken[0])),
		asm.Branch(mnemonic, "_backward_target"),
		shadow(MARKER_5),
		asm.Branch("jump", asm.LABEL_FAIL),
		asm.Blank(),
		asm.Label("_backward_not_taken"),
	)

	for _, v := range notTaken {
		prog.Add(
			asm.Comment("Backward not taken, tos = %v", asm.Hex(v)),
			asm.Push(asm.Hex(v)),
			asm.Branch(mnemonic, asm.LABEL_BACKWARD_NOT_TAKEN_FAIL),
		)
	}

	prog.Add(asm.Blank(), asm.Comment("Only the sentinel remains"))
	prog.Add(check(sentinel)...)
	prog.Add(asm.Blank())
	prog.Add(oracle.Epilogue()...)
	prog.Add(
		asm.Blank(),
		asm.Label(asm.LABEL_FORWARD_NOT_TAKEN_FAIL),
		asm.Push(asm.Dec(0)),
		asm.Op("halt"),
	)
	prog.Add(oracle.FailTail()...)

	return
}

func buildBeqz() (*asm.Program, error) {
	return branchFixture("beqz", SENTINEL_BEQZ, []int{0}, []int{1, isa.WORD_MASK, 0x8000})
}

func buildBnez() (*asm.Program, error) {
	return branchFixture("bnez", SENTINEL_BNEZ, []int{1, isa.WORD_MASK, 0x8000}, []int{0})
}

func buildJump() (prog *asm.Program, err error) {
	prog = newFixture("jump", "jump")
	prog.Sentinel = SENTINEL_JUMP

	prog.Add(
		asm.Push(asm.Hex(SENTINEL_JUMP)).Note("sentinel"),
		asm.Comment("Forward"),
		asm.Branch("jump", "_forward"),
		shadow(MARKER_1),
		asm.Branch("jump", asm.LABEL_FAIL),
		asm.Blank(),
		asm.Label("_backward"),
		asm.Branch("jump", "_done"),
		shadow(MARKER_2),
		asm.Branch("jump", asm.LABEL_FAIL),
		asm.Blank(),
		asm.Label("_forward"),
		asm.Comment("Backward"),
		asm.Branch("jump", "_backward"),
		shadow(MARKER_3),
		asm.Branch("jump", asm.LABEL_FAIL),
		asm.Blank(),
		asm.Label("_done"),
		asm.Comment("Only the sentinel remains"),
	)
	prog.Add(check(SENTINEL_JUMP)...)
	prog.Add(asm.Blank())

	return finish(prog), nil
}

// buildFailnez checks that failnez consumes a zero and continues, and
// that halt reports tos.
func buildFailnez() (prog *asm.Program, err error) {
	prog = newFixture("failnez", "failnez", "halt")
	prog.Sentinel = SENTINEL_FAIL

	prog.Add(
		asm.Push(asm.Hex(SENTINEL_FAIL)).Note("sentinel"),
		asm.Comment("Zero continues"),
		asm.Push(asm.Dec(0)),
		asm.Op("failnez"),
		asm.Comment("Computed zero continues"),
		asm.Push(asm.Dec(-1)),
		asm.Push(asm.Dec(1)),
		asm.Op("add"),
		asm.Op("failnez"),
		asm.Comment("Zero made by xor continues"),
		asm.Push(asm.Hex(0x8000)),
		asm.Push(asm.Hex(0x8000)),
		asm.Op("xor"),
		asm.Op("failnez"),
		asm.Blank(),
		asm.Comment("Each failnez consumed its operand"),
	)
	prog.Add(check(SENTINEL_FAIL)...)
	prog.Add(
		asm.Blank(),
		asm.Comment("halt reports tos, not the value below it"),
		asm.Push(asm.Dec(0)),
	)

	return finish(prog), nil
}
