package refvm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/starjconf/isa"
)

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(prog.Opcodes))
}

func TestAssemblerParse(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"; Test sample",
		"    push 0x1234 ; literal",
		"top:",
		"    push fp",
		"    push top",
		"    add ar",
		"    add",
		"    shi 0x7F",
		"    beqz top",
		"    pop pc",
	}

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	if !assert.NoError(err) {
		return
	}

	expected := []Opcode{
		{LineNo: 2, Words: []string{"push", "0x1234"}, Mnemonic: "push", Operand: OPERAND_VALUE, Value: 0x1234},
		{LineNo: 4, Words: []string{"push", "fp"}, Mnemonic: "push", Operand: OPERAND_REGISTER, Register: isa.REG_FP},
		{LineNo: 5, Words: []string{"push", "top"}, Mnemonic: "push", Operand: OPERAND_LABEL, Value: 1, LinkLabel: "top"},
		{LineNo: 6, Words: []string{"add", "ar"}, Mnemonic: "add", Operand: OPERAND_REGISTER, Register: isa.REG_AR},
		{LineNo: 7, Words: []string{"add"}, Mnemonic: "add"},
		{LineNo: 8, Words: []string{"shi", "0x7F"}, Mnemonic: "shi", Operand: OPERAND_VALUE, Value: 0x7f},
		{LineNo: 9, Words: []string{"beqz", "top"}, Mnemonic: "beqz", Operand: OPERAND_LABEL, Value: 1, LinkLabel: "top"},
		{LineNo: 10, Words: []string{"pop", "pc"}, Mnemonic: "pop", Operand: OPERAND_REGISTER, Register: isa.REG_PC},
	}
	assert.Equal(expected, prog.Opcodes)
	assert.Equal(map[string]int{"top": 1}, prog.Label)
	assert.Equal(9, prog.Debug(6))
	assert.Equal(-1, prog.Debug(8))
}

func TestAssemblerErrors(t *testing.T) {
	table := [](struct {
		line string
		err  error
	}){
		{"frob", isa.ErrInstructionUnknown("frob")},
		{"push", ErrOpcodeValueMissing},
		{"push 1 2", ErrOpcodeExtraArgs},
		{"push 0x10000", ErrParseNumber("0x10000")},
		{"push -32769", ErrParseNumber("-32769")},
		{"push $", ErrParseValue("$")},
		{"pop 1", ErrOperandInvalid},
		{"jump fp", ErrOperandInvalid},
		{"add 3", ErrOperandInvalid},
		{"add pc", ErrRegisterInvalid},
		{"xor 1", ErrOpcodeExtraArgs},
		{"beqz nowhere", ErrLabelMissing("nowhere")},
		{"9lives:", ErrLabelInvalid},
		{"a:\na:", ErrLabelDuplicate},
	}

	for _, entry := range table {
		t.Run(entry.line, func(t *testing.T) {
			assert := assert.New(t)
			asm := &Assembler{}
			_, err := asm.Parse(strings.NewReader(entry.line))
			assert.ErrorIs(err, entry.err)
			var syntax *ErrSyntax
			assert.ErrorAs(err, &syntax)
		})
	}
}
