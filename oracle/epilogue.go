package oracle

import (
	"github.com/ezrec/starjconf/asm"
)

// Results left on the stack by a halted fixture.
const (
	RESULT_FAIL = 0
	RESULT_PASS = 1
)

// Epilogue is the success tail of every fixture.
func Epilogue() []asm.Statement {
	return []asm.Statement{
		asm.Comment("All passed"),
		asm.Push(asm.Dec(RESULT_PASS)),
		asm.Op("halt"),
	}
}

// FailTail is the shared failure path, reached by explicit branches.
func FailTail() []asm.Statement {
	return []asm.Statement{
		asm.Blank(),
		asm.Label(asm.LABEL_FAIL),
		asm.Push(asm.Dec(RESULT_FAIL)),
		asm.Op("halt"),
	}
}

// Check compares tos with an expected literal and fails the fixture on
// any difference.
func Check(expected asm.Imm) []asm.Statement {
	return []asm.Statement{
		asm.Push(expected),
		asm.Op("xor"),
		asm.Op("failnez"),
	}
}
