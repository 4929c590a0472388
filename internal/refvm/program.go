package refvm

import (
	"github.com/ezrec/starjconf/isa"
)

// Operand is the shape of an opcode's operand.
type Operand int

const (
	OPERAND_NONE     = Operand(0)
	OPERAND_VALUE    = Operand(1)
	OPERAND_REGISTER = Operand(2)
	OPERAND_LABEL    = Operand(3)
)

// Opcode is one assembled instruction. Code addresses are opcode indexes.
type Opcode struct {
	LineNo    int          // Source line.
	Words     []string     // Source words.
	Mnemonic  string       // Instruction.
	Operand   Operand      // Operand shape.
	Value     int          // Literal value, or the linked label address.
	Register  isa.Register // Register operand.
	LinkLabel string       // Label to link, if any.
}

// Program is an assembled fixture.
type Program struct {
	Opcodes []Opcode
	Label   map[string]int
}

// Debug returns the source line of an address, or -1.
func (prog *Program) Debug(pc int) (lineno int) {
	if pc < 0 || pc >= len(prog.Opcodes) {
		return -1
	}
	return prog.Opcodes[pc].LineNo
}
