// Package isa describes the starj 16-bit stack machine instruction set.
//
// Each Instruction records the mnemonic accepted by the starj assembler, how
// many values it pops and pushes, the fixture family that exercises it, and
// its documented semantics as a starlark expression. The expression names the
// popped operands in push order as a, b and c (so for a binary operation a is
// nos and b is tos), the instruction immediate as imm, and the whole stack as
// the list s for stack-shape instructions.
package isa
