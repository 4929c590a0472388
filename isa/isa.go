package isa

// Machine geometry.
const (
	WORD_BITS   = 16     // Width of a machine word.
	WORD_BYTES  = 2      // Bytes per machine word.
	WORD_MASK   = 0xffff // Mask of a machine word.
	SHIFT_MASK  = 15     // sll/srl/sra use the low 4 bits of the amount.
	FUNNEL_MASK = 31     // fsl uses the low 5 bits of the amount.
	SHI_BITS    = 7      // shi shifts the accumulator by this many bits.
	SHI_MASK    = 0x7f   // shi keeps only these immediate bits.

	SIGNED_MIN   = -0x8000 // Smallest signed word.
	SIGNED_MAX   = 0x7fff  // Largest signed word.
	UNSIGNED_MAX = 0xffff  // Largest unsigned word.
)

// Arity classifies how an instruction consumes and produces stack values.
type Arity int

//go:generate go tool stringer -linecomment -type=Arity
const (
	ARITY_UNARY      = Arity(0) // unary
	ARITY_BINARY     = Arity(1) // binary
	ARITY_STRUCTURAL = Arity(2) // structural
)

// Category groups instructions the way the ISA manual does.
type Category int

//go:generate go tool stringer -linecomment -type=Category
const (
	CAT_ARITHMETIC = Category(0) // arithmetic
	CAT_LOGICAL    = Category(1) // logical
	CAT_SHIFT      = Category(2) // shift
	CAT_STACK      = Category(3) // stack
	CAT_CONTROL    = Category(4) // control
	CAT_MEMORY     = Category(5) // memory
	CAT_REGISTER   = Category(6) // register
	CAT_CALL       = Category(7) // call
	CAT_ADDRESSING = Category(8) // addressing
	CAT_IMMEDIATE  = Category(9) // immediate
)

// Instruction describes one mnemonic of the instruction set.
type Instruction struct {
	Mnemonic  string   // Assembler mnemonic.
	Arity     Arity    // Fixture shape.
	Category  Category // Manual grouping.
	Pops      int      // Values consumed from the stack.
	Pushes    int      // Values produced onto the stack.
	Immediate bool     // Takes an inline immediate operand.
	Family    string   // Fixture that exercises the instruction.
	Semantics string   // Documented result, as a starlark expression.
	Summary   string   // One line manual description.
}

// FixtureName returns the name of the fixture covering the instruction.
func (inst Instruction) FixtureName() string {
	if len(inst.Family) != 0 {
		return inst.Family
	}
	return inst.Mnemonic
}

// Oracle reports whether the instruction is checked by the flat
// push, execute, compare oracle rather than a structural generator.
func (inst Instruction) Oracle() bool {
	return inst.Arity == ARITY_UNARY || inst.Arity == ARITY_BINARY
}

// Signed reduces v to a 16-bit two's complement value.
func Signed(v int) int {
	return int(int16(uint16(v)))
}

// Unsigned reduces v to a 16-bit unsigned value.
func Unsigned(v int) int {
	return int(uint16(v))
}

// InRange reports whether v is a literal the assembler accepts for a word:
// any signed or unsigned 16-bit value.
func InRange(v int) bool {
	return v >= SIGNED_MIN && v <= UNSIGNED_MAX
}
