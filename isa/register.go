package isa

// Register is a named machine register usable with push, pop and add.
type Register int

//go:generate go tool stringer -linecomment -type=Register
const (
	REG_FP = Register(0) // fp
	REG_RA = Register(1) // ra
	REG_AR = Register(2) // ar
	REG_PC = Register(3) // pc
)

// Registers lists every named register.
var Registers = []Register{REG_FP, REG_RA, REG_AR, REG_PC}

// ParseRegister maps an assembler register name to its Register.
func ParseRegister(name string) (reg Register, err error) {
	for _, reg = range Registers {
		if reg.String() == name {
			return
		}
	}
	err = ErrRegisterUnknown(name)
	return
}
