package refvm

import (
	"bufio"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/ezrec/starjconf/isa"
)

// Assembler is a single pass assembler for starj fixture text.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	Label map[string]int // Map of labels to opcode indexes.
}

var labelSyntax = regexp.MustCompile(`^[_A-Za-z][_A-Za-z0-9]*$`)

// Operand requirements beyond "no operand".
var operandNeed = map[string]Operand{
	"push": OPERAND_VALUE, // Or a register, or a label.
	"pop":  OPERAND_REGISTER,
	"jump": OPERAND_LABEL,
	"beqz": OPERAND_LABEL,
	"bnez": OPERAND_LABEL,
	"call": OPERAND_LABEL,
	"shi":  OPERAND_VALUE,
}

// valueOf parses a literal word.
func valueOf(word string) (value int, err error) {
	v64, err := strconv.ParseInt(word, 0, 32)
	if err != nil || !isa.InRange(int(v64)) {
		err = ErrParseNumber(word)
		return
	}
	value = int(v64)
	return
}

// parseOperand classifies the operand word of an opcode.
func (asm *Assembler) parseOperand(op *Opcode, word string) (err error) {
	if reg, rerr := isa.ParseRegister(word); rerr == nil {
		op.Operand = OPERAND_REGISTER
		op.Register = reg
		return
	}

	if word[0] == '-' || (word[0] >= '0' && word[0] <= '9') {
		op.Operand = OPERAND_VALUE
		op.Value, err = valueOf(word)
		return
	}

	if !labelSyntax.MatchString(word) {
		err = ErrParseValue(word)
		return
	}
	op.Operand = OPERAND_LABEL
	op.LinkLabel = word
	return
}

// parseWords assembles one line.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	if len(words) == 0 {
		return
	}

	if len(words) == 1 && strings.HasSuffix(words[0], ":") {
		label := strings.TrimSuffix(words[0], ":")
		if !labelSyntax.MatchString(label) {
			err = ErrLabelInvalid
			return
		}
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}
		asm.Label[label] = len(asm.Opcode)
		return
	}

	if len(words) > 2 {
		err = ErrOpcodeExtraArgs
		return
	}

	mnemonic := words[0]
	_, err = isa.Lookup(mnemonic)
	if err != nil {
		return
	}

	op := Opcode{
		LineNo:   lineno,
		Words:    slices.Clone(words),
		Mnemonic: mnemonic,
	}
	if len(words) == 2 {
		err = asm.parseOperand(&op, words[1])
		if err != nil {
			return
		}
	}

	need, ok := operandNeed[mnemonic]
	switch {
	case mnemonic == "push":
		if op.Operand == OPERAND_NONE {
			err = ErrOpcodeValueMissing
		}
	case mnemonic == "add":
		if op.Operand != OPERAND_NONE && op.Operand != OPERAND_REGISTER {
			err = ErrOperandInvalid
		}
		if op.Register == isa.REG_PC && op.Operand == OPERAND_REGISTER {
			err = ErrRegisterInvalid
		}
	case ok:
		if op.Operand == OPERAND_NONE {
			err = ErrOpcodeValueMissing
		} else if op.Operand != need {
			err = ErrOperandInvalid
		}
	case op.Operand != OPERAND_NONE:
		err = ErrOpcodeExtraArgs
	}
	if err != nil {
		return
	}

	asm.Opcode = append(asm.Opcode, op)
	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	if asm.Label == nil {
		asm.Label = make(map[string]int)
	}
	clear(asm.Label)
	asm.Opcode = asm.Opcode[:0]

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, ";")
		line = strings.TrimSpace(text_comment[0])

		err = asm.parseWords(strings.Fields(line), lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	// Final linking of labels.
	for n := range asm.Opcode {
		op := &asm.Opcode[n]

		if len(op.LinkLabel) == 0 {
			continue
		}
		ip, ok := asm.Label[op.LinkLabel]
		if !ok {
			lineno = op.LineNo
			line = strings.Join(op.Words, " ")
			err = ErrLabelMissing(op.LinkLabel)
			return
		}
		op.Value = ip
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
		Label:   maps.Clone(asm.Label),
	}

	return
}
