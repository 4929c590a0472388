package asm

import (
	"io"
	"regexp"
	"strings"

	"github.com/ezrec/starjconf/isa"
)

// Program is a complete fixture: one self-checking assembler source file.
type Program struct {
	Name       string      // Fixture name, used for the output file.
	Title      string      // First line comment.
	Sentinel   int         // Guard value, zero when the fixture has none.
	Statements []Statement // Program body.
}

// NewProgram creates an empty program.
func NewProgram(name string, title string) *Program {
	return &Program{Name: name, Title: title}
}

// Add appends statements to the program.
func (prog *Program) Add(stmts ...Statement) *Program {
	prog.Statements = append(prog.Statements, stmts...)
	return prog
}

// Labels maps each defined label to the index of its statement.
func (prog *Program) Labels() (labels map[string]int) {
	labels = make(map[string]int)
	for n, st := range prog.Statements {
		if st.Kind == KIND_LABEL {
			labels[st.Label] = n
		}
	}
	return
}

// Count returns how many statements execute the given mnemonic.
func (prog *Program) Count(mnemonic string) (count int) {
	for _, st := range prog.Statements {
		if st.Executable() && st.Mnemonic == mnemonic {
			count++
		}
	}
	return
}

// String renders the program text.
func (prog *Program) String() string {
	var sb strings.Builder

	if len(prog.Title) != 0 {
		sb.WriteString("; " + prog.Title + "\n")
	}

	for _, st := range prog.Statements {
		switch st.Kind {
		case KIND_BLANK:
		case KIND_COMMENT:
			sb.WriteString("    ;")
			if len(st.Text) != 0 {
				sb.WriteString(" " + st.Text)
			}
		case KIND_LABEL:
			sb.WriteString(st.Label + ":")
		default:
			sb.WriteString("    " + st.Instruction())
		}
		if len(st.Trailer) != 0 {
			sb.WriteString(" ; " + st.Trailer)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// Render writes the program text.
func (prog *Program) Render(w io.Writer) (err error) {
	_, err = io.WriteString(w, prog.String())
	return
}

var labelSyntax = regexp.MustCompile(`^[_A-Za-z][_A-Za-z0-9]*$`)

// branchOps are the mnemonics that take a label operand.
var branchOps = map[string]bool{
	"jump": true,
	"beqz": true,
	"bnez": true,
	"call": true,
}

// Validate checks the structure of the program.
func (prog *Program) Validate() (err error) {
	defer func() {
		if err != nil {
			err = &ErrProgram{Name: prog.Name, Err: err}
		}
	}()

	labels := make(map[string]int)
	for n, st := range prog.Statements {
		if st.Kind != KIND_LABEL {
			continue
		}
		if !labelSyntax.MatchString(st.Label) {
			return ErrLabelInvalid(st.Label)
		}
		if _, err = isa.ParseRegister(st.Label); err == nil {
			return ErrLabelInvalid(st.Label)
		}
		if _, ok := labels[st.Label]; ok {
			return ErrLabelDuplicate(st.Label)
		}
		labels[st.Label] = n
	}
	err = nil

	for n, st := range prog.Statements {
		if !st.Executable() {
			continue
		}
		err = checkStatement(st)
		if err != nil {
			return &ErrStatement{Index: n, Text: st.Instruction(), Err: err}
		}
		label, ok := st.Target()
		if !ok {
			continue
		}
		if _, ok := labels[label]; !ok {
			return ErrLabelUndefined(label)
		}
	}

	if prog.Sentinel != 0 {
		guard := isa.Signed(prog.Sentinel)
		uses := 0
		for _, st := range prog.Statements {
			if st.Kind == KIND_PUSH && st.Form == FORM_IMM && st.Imm.Word() == guard {
				uses++
			}
		}
		if uses != 2 {
			return &ErrSentinel{Sentinel: prog.Sentinel, Uses: uses}
		}
	}

	return prog.checkTermination()
}

// checkStatement verifies that the operand form suits the mnemonic.
func checkStatement(st Statement) (err error) {
	inst, err := isa.Lookup(st.Mnemonic)
	if err != nil {
		return
	}

	switch {
	case branchOps[st.Mnemonic]:
		if st.Kind != KIND_BRANCH || st.Form != FORM_LABEL {
			err = ErrOperandForm
		}
	case st.Kind == KIND_BRANCH:
		err = ErrOperandForm
	case st.Mnemonic == "push":
		if st.Form == FORM_NONE {
			err = ErrOperandForm
		}
	case st.Mnemonic == "pop":
		if st.Form != FORM_REG {
			err = ErrOperandForm
		}
	case st.Form == FORM_IMM:
		if !inst.Immediate {
			err = ErrOperandForm
		}
	case st.Form == FORM_REG:
		if st.Mnemonic != "add" {
			err = ErrOperandForm
		}
	case st.Form == FORM_LABEL:
		err = ErrOperandForm
	case inst.Immediate:
		err = ErrOperandForm
	}

	return
}

// checkTermination walks every control path from the entry point and from
// every pushed code address, and fails if any path runs off the end.
func (prog *Program) checkTermination() (err error) {
	var code []Statement
	target := make(map[string]int)
	for _, st := range prog.Statements {
		switch {
		case st.Kind == KIND_LABEL:
			target[st.Label] = len(code)
		case st.Executable():
			code = append(code, st)
		}
	}

	roots := []int{0}
	for _, st := range code {
		if st.Kind == KIND_PUSH && st.Form == FORM_LABEL {
			roots = append(roots, target[st.Label])
		}
	}

	seen := make([]bool, len(code)+1)
	for len(roots) > 0 {
		ip := roots[len(roots)-1]
		roots = roots[:len(roots)-1]
		if seen[ip] {
			continue
		}
		seen[ip] = true
		if ip == len(code) {
			return ErrFallthrough
		}

		st := code[ip]
		switch {
		case st.Mnemonic == "halt":
		case st.Mnemonic == "pop" && st.Register == isa.REG_PC:
		case st.Mnemonic == "jump":
			roots = append(roots, target[st.Label])
		case st.Kind == KIND_BRANCH:
			roots = append(roots, ip+1, target[st.Label])
		default:
			roots = append(roots, ip+1)
		}
	}

	return
}
