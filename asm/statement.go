package asm

import (
	"fmt"

	"github.com/ezrec/starjconf/isa"
)

// Reserved labels.
const (
	LABEL_FAIL                    = "_fail"                    // Shared failure tail.
	LABEL_FORWARD_NOT_TAKEN_FAIL  = "_forward_not_taken_fail"  // Forward branch wrongly taken.
	LABEL_BACKWARD_NOT_TAKEN_FAIL = "_backward_not_taken_fail" // Backward branch wrongly taken.
)

// Kind tags the variant held by a Statement.
type Kind int

//go:generate go tool stringer -linecomment -type=Kind
const (
	KIND_COMMENT = Kind(0) // comment
	KIND_BLANK   = Kind(1) // blank
	KIND_LABEL   = Kind(2) // label
	KIND_PUSH    = Kind(3) // push
	KIND_POP     = Kind(4) // pop
	KIND_OP      = Kind(5) // op
	KIND_BRANCH  = Kind(6) // branch
)

// Imm is an integer literal with its preferred display base.
type Imm struct {
	Value int
	Hex   bool
}

// Dec is a literal rendered in decimal.
func Dec(v int) Imm {
	return Imm{Value: v}
}

// Hex is a literal rendered in hexadecimal.
func Hex(v int) Imm {
	return Imm{Value: v, Hex: true}
}

// Word returns the 16-bit signed value the literal assembles to.
func (imm Imm) Word() int {
	return isa.Signed(imm.Value)
}

func (imm Imm) String() string {
	if imm.Hex && imm.Value >= 0 {
		return fmt.Sprintf("0x%04X", imm.Value)
	}
	return fmt.Sprintf("%d", imm.Value)
}

// Form is the operand shape of a statement.
type Form int

const (
	FORM_NONE  = Form(0) // No operand.
	FORM_IMM   = Form(1) // Literal operand.
	FORM_REG   = Form(2) // Register operand.
	FORM_LABEL = Form(3) // Label operand.
)

// Statement is one line of a fixture program.
type Statement struct {
	Kind     Kind
	Mnemonic string       // Instruction for push, pop, op and branch.
	Imm      Imm          // Literal operand.
	Register isa.Register // Register operand.
	Label    string       // Label defined, or label operand.
	Text     string       // Comment text.
	Trailer  string       // Trailing comment.
	Form     Form         // Operand shape.
}

// Comment is a full-line comment.
func Comment(format string, args ...any) Statement {
	return Statement{Kind: KIND_COMMENT, Text: fmt.Sprintf(format, args...)}
}

// Blank is an empty separator line.
func Blank() Statement {
	return Statement{Kind: KIND_BLANK}
}

// Label defines a branch target.
func Label(name string) Statement {
	return Statement{Kind: KIND_LABEL, Label: name}
}

// Push pushes a literal.
func Push(imm Imm) Statement {
	return Statement{Kind: KIND_PUSH, Mnemonic: "push", Imm: imm, Form: FORM_IMM}
}

// PushReg pushes the value of a register.
func PushReg(reg isa.Register) Statement {
	return Statement{Kind: KIND_PUSH, Mnemonic: "push", Register: reg, Form: FORM_REG}
}

// PushLabel pushes the address of a label.
func PushLabel(name string) Statement {
	return Statement{Kind: KIND_PUSH, Mnemonic: "push", Label: name, Form: FORM_LABEL}
}

// Pop pops tos into a register.
func Pop(reg isa.Register) Statement {
	return Statement{Kind: KIND_POP, Mnemonic: "pop", Register: reg, Form: FORM_REG}
}

// Op is an instruction without operands.
func Op(mnemonic string) Statement {
	return Statement{Kind: KIND_OP, Mnemonic: mnemonic}
}

// OpImm is an instruction with an inline immediate.
func OpImm(mnemonic string, imm Imm) Statement {
	return Statement{Kind: KIND_OP, Mnemonic: mnemonic, Imm: imm, Form: FORM_IMM}
}

// OpReg is an instruction with a register operand, such as `add fp`.
func OpReg(mnemonic string, reg isa.Register) Statement {
	return Statement{Kind: KIND_OP, Mnemonic: mnemonic, Register: reg, Form: FORM_REG}
}

// Branch is a control transfer to a label: jump, beqz, bnez or call.
func Branch(mnemonic string, label string) Statement {
	return Statement{Kind: KIND_BRANCH, Mnemonic: mnemonic, Label: label, Form: FORM_LABEL}
}

// Note attaches a trailing comment.
func (st Statement) Note(format string, args ...any) Statement {
	st.Trailer = fmt.Sprintf(format, args...)
	return st
}

// Executable reports whether the statement assembles to an instruction.
func (st Statement) Executable() bool {
	switch st.Kind {
	case KIND_PUSH, KIND_POP, KIND_OP, KIND_BRANCH:
		return true
	}
	return false
}

// Target returns the label operand, if any.
func (st Statement) Target() (label string, ok bool) {
	if st.Form == FORM_LABEL {
		return st.Label, true
	}
	return
}

// Instruction renders the instruction part of an executable statement.
func (st Statement) Instruction() string {
	switch st.Form {
	case FORM_IMM:
		return st.Mnemonic + " " + st.Imm.String()
	case FORM_REG:
		return st.Mnemonic + " " + st.Register.String()
	case FORM_LABEL:
		return st.Mnemonic + " " + st.Label
	}
	return st.Mnemonic
}
