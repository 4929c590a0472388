// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package refvm

import (
	"strings"

	"github.com/ezrec/starjconf/isa"
)

const (
	MEMORY_SIZE = 1 << isa.WORD_BITS // Byte addressed memory.
	FP_RESET    = 0xf000             // Initial frame pointer.
	STEP_LIMIT  = 1 << 20            // Default execution budget.
)

// Fault replaces the behaviour of one mnemonic.
type Fault func(vm *Machine, op *Opcode) (err error)

// Machine is the reference interpreter state.
type Machine struct {
	Memory [MEMORY_SIZE]byte
	Stack  Stack
	Fp     int // Registers hold unsigned 16-bit values.
	Ra     int
	Ar     int
	Pc     int // Index of the next opcode.

	Steps     int  // Opcodes executed.
	StepLimit int  // Zero selects STEP_LIMIT.
	Checks    int  // failnez executions.
	Halted    bool // Set by halt and a failing failnez.
	Result    int  // Halt result.

	Faults       map[string]Fault // Broken instruction behaviours.
	BranchShadow bool             // Run the opcode after a taken branch.
}

// Option configures a Machine.
type Option func(vm *Machine)

// WithFault replaces the behaviour of a mnemonic.
func WithFault(mnemonic string, fault Fault) Option {
	return func(vm *Machine) {
		if vm.Faults == nil {
			vm.Faults = make(map[string]Fault)
		}
		vm.Faults[mnemonic] = fault
	}
}

// WithBranchShadow makes taken branches also run their shadow opcode.
func WithBranchShadow() Option {
	return func(vm *Machine) {
		vm.BranchShadow = true
	}
}

// WithStepLimit sets the execution budget.
func WithStepLimit(limit int) Option {
	return func(vm *Machine) {
		vm.StepLimit = limit
	}
}

// New creates a machine in reset state.
func New(opts ...Option) (vm *Machine) {
	vm = &Machine{}
	for _, opt := range opts {
		opt(vm)
	}
	vm.Reset()
	return
}

// Reset clears registers, stack and memory.
func (vm *Machine) Reset() {
	clear(vm.Memory[:])
	vm.Stack.Reset()
	vm.Fp = FP_RESET
	vm.Ra = 0
	vm.Ar = 0
	vm.Pc = 0
	vm.Steps = 0
	vm.Checks = 0
	vm.Halted = false
	vm.Result = 0
}

// BinaryFault builds a fault for a binary mnemonic computing nos OP tos.
func BinaryFault(fn func(nos, tos int) int) Fault {
	return func(vm *Machine, op *Opcode) (err error) {
		args, err := vm.Stack.PopN(2)
		if err != nil {
			return
		}
		return vm.push(fn(args[0], args[1]))
	}
}

// Execute assembles and runs fixture text.
func Execute(text string, opts ...Option) (result int, vm *Machine, err error) {
	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(text))
	if err != nil {
		return
	}

	vm = New(opts...)
	result, err = vm.Run(prog)
	return
}

// Run executes the program from address 0 until it halts.
func (vm *Machine) Run(prog *Program) (result int, err error) {
	limit := vm.StepLimit
	if limit == 0 {
		limit = STEP_LIMIT
	}

	for !vm.Halted {
		if vm.Steps >= limit {
			err = ErrStepLimit
			return
		}
		err = vm.Step(prog)
		if err != nil {
			return
		}
	}

	result = vm.Result
	return
}

// Step executes one opcode.
func (vm *Machine) Step(prog *Program) (err error) {
	pc := vm.Pc
	defer func() {
		if err != nil {
			err = &ErrExec{Pc: pc, LineNo: prog.Debug(pc), Err: err}
		}
	}()

	if pc < 0 || pc >= len(prog.Opcodes) {
		err = ErrPcRange
		return
	}

	vm.Steps++
	vm.Pc = pc + 1
	target, taken, err := vm.execute(&prog.Opcodes[pc])
	if err != nil || !taken {
		return
	}

	if vm.BranchShadow && pc+1 < len(prog.Opcodes) {
		_, _, err = vm.execute(&prog.Opcodes[pc+1])
		if err != nil {
			return
		}
	}
	vm.Pc = target

	return
}

func (vm *Machine) push(v int) error {
	return vm.Stack.Push(isa.Signed(v))
}

func (vm *Machine) load16(addr int) int {
	addr = isa.Unsigned(addr)
	lo := int(vm.Memory[addr])
	hi := int(vm.Memory[(addr+1)&isa.WORD_MASK])
	return isa.Signed(lo | hi<<8)
}

func (vm *Machine) store16(addr int, v int) {
	addr = isa.Unsigned(addr)
	vm.Memory[addr] = byte(v)
	vm.Memory[(addr+1)&isa.WORD_MASK] = byte(v >> 8)
}

func (vm *Machine) register(reg isa.Register) (ptr *int) {
	switch reg {
	case isa.REG_FP:
		ptr = &vm.Fp
	case isa.REG_RA:
		ptr = &vm.Ra
	case isa.REG_AR:
		ptr = &vm.Ar
	case isa.REG_PC:
		ptr = &vm.Pc
	}
	return
}

func flag(cond bool) int {
	if cond {
		return 1
	}
	return 0
}

// binaryOps compute nos OP tos.
var binaryOps = map[string]func(a, b int) (int, error){
	"add": func(a, b int) (int, error) { return a + b, nil },
	"sub": func(a, b int) (int, error) { return a - b, nil },
	"mul": func(a, b int) (int, error) { return a * b, nil },
	"mulh": func(a, b int) (int, error) {
		return (isa.Unsigned(a) * isa.Unsigned(b)) >> isa.WORD_BITS, nil
	},
	"div": func(a, b int) (int, error) {
		if b == 0 {
			return 0, ErrDivideByZero
		}
		return a / b, nil
	},
	"divu": func(a, b int) (int, error) {
		if b == 0 {
			return 0, ErrDivideByZero
		}
		return isa.Unsigned(a) / isa.Unsigned(b), nil
	},
	"mod": func(a, b int) (int, error) {
		if b == 0 {
			return 0, ErrDivideByZero
		}
		return a % b, nil
	},
	"modu": func(a, b int) (int, error) {
		if b == 0 {
			return 0, ErrDivideByZero
		}
		return isa.Unsigned(a) % isa.Unsigned(b), nil
	},
	"and": func(a, b int) (int, error) { return a & b, nil },
	"or":  func(a, b int) (int, error) { return a | b, nil },
	"xor": func(a, b int) (int, error) { return a ^ b, nil },
	"lt":  func(a, b int) (int, error) { return flag(a < b), nil },
	"ltu": func(a, b int) (int, error) { return flag(isa.Unsigned(a) < isa.Unsigned(b)), nil },
	"sll": func(a, b int) (int, error) { return a << (b & isa.SHIFT_MASK), nil },
	"srl": func(a, b int) (int, error) { return isa.Unsigned(a) >> (b & isa.SHIFT_MASK), nil },
	"sra": func(a, b int) (int, error) { return a >> (b & isa.SHIFT_MASK), nil },
}

// execute runs the semantics of one opcode. Taken control transfers are
// returned rather than applied, so that Step can model a branch shadow.
func (vm *Machine) execute(op *Opcode) (target int, taken bool, err error) {
	if fault, ok := vm.Faults[op.Mnemonic]; ok {
		err = fault(vm, op)
		return
	}

	if fn, ok := binaryOps[op.Mnemonic]; ok && op.Operand == OPERAND_NONE {
		var args []int
		args, err = vm.Stack.PopN(2)
		if err != nil {
			return
		}
		var v int
		v, err = fn(args[0], args[1])
		if err != nil {
			return
		}
		err = vm.push(v)
		return
	}

	var args []int
	var v int

	switch op.Mnemonic {
	case "push":
		switch op.Operand {
		case OPERAND_REGISTER:
			v = *vm.register(op.Register)
			if op.Register == isa.REG_PC {
				v = vm.Pc - 1
			}
		default:
			v = op.Value
		}
		err = vm.push(v)
	case "pop":
		v, err = vm.Stack.Pop()
		if err != nil {
			return
		}
		if op.Register == isa.REG_PC {
			target, taken = isa.Unsigned(v), true
			return
		}
		*vm.register(op.Register) = isa.Unsigned(v)
	case "add":
		// Register form: reg += pop.
		v, err = vm.Stack.Pop()
		if err != nil {
			return
		}
		reg := vm.register(op.Register)
		*reg = isa.Unsigned(*reg + v)
	case "drop":
		_, err = vm.Stack.Pop()
	case "dup":
		v, err = vm.Stack.Peek()
		if err == nil {
			err = vm.push(v)
		}
	case "swap":
		args, err = vm.Stack.PopN(2)
		if err == nil {
			_ = vm.push(args[1])
			err = vm.push(args[0])
		}
	case "over":
		args, err = vm.Stack.PopN(2)
		if err == nil {
			_ = vm.push(args[0])
			_ = vm.push(args[1])
			err = vm.push(args[0])
		}
	case "rot":
		// ros nos tos -> tos ros nos
		args, err = vm.Stack.PopN(3)
		if err == nil {
			_ = vm.push(args[2])
			_ = vm.push(args[0])
			err = vm.push(args[1])
		}
	case "select":
		args, err = vm.Stack.PopN(3)
		if err == nil {
			v = args[0]
			if args[2] != 0 {
				v = args[1]
			}
			err = vm.push(v)
		}
	case "fsl":
		args, err = vm.Stack.PopN(3)
		if err == nil {
			wide := isa.Unsigned(args[0])<<isa.WORD_BITS | isa.Unsigned(args[1])
			wide <<= args[2] & isa.FUNNEL_MASK
			err = vm.push(wide >> isa.WORD_BITS)
		}
	case "shi":
		v, err = vm.Stack.Pop()
		if err == nil {
			err = vm.push(v<<isa.SHI_BITS | op.Value&isa.SHI_MASK)
		}
	case "jump":
		target, taken = op.Value, true
	case "beqz", "bnez":
		v, err = vm.Stack.Pop()
		if err == nil && (v == 0) == (op.Mnemonic == "beqz") {
			target, taken = op.Value, true
		}
	case "call":
		vm.Ra = vm.Pc
		target, taken = op.Value, true
	case "callp":
		v, err = vm.Stack.Pop()
		if err == nil {
			vm.Ra = vm.Pc
			target, taken = isa.Unsigned(v), true
		}
	case "failnez":
		v, err = vm.Stack.Pop()
		vm.Checks++
		if err == nil && v != 0 {
			vm.Halted = true
			vm.Result = 0
		}
	case "halt":
		v, err = vm.Stack.Peek()
		if err == nil {
			vm.Halted = true
			vm.Result = v
		}
	case "lw", "lh":
		v, err = vm.Stack.Pop()
		if err == nil {
			err = vm.push(vm.load16(v))
		}
	case "lb":
		v, err = vm.Stack.Pop()
		if err == nil {
			err = vm.push(int(int8(vm.Memory[isa.Unsigned(v)])))
		}
	case "sw", "sh":
		args, err = vm.Stack.PopN(2)
		if err == nil {
			vm.store16(args[1], args[0])
		}
	case "sb":
		args, err = vm.Stack.PopN(2)
		if err == nil {
			vm.Memory[isa.Unsigned(args[1])] = byte(args[0])
		}
	case "llw":
		v, err = vm.Stack.Pop()
		if err == nil {
			err = vm.push(vm.load16(vm.Fp + v))
		}
	case "slw":
		args, err = vm.Stack.PopN(2)
		if err == nil {
			vm.store16(vm.Fp+args[1], args[0])
		}
	case "lnw":
		err = vm.push(vm.load16(vm.Ar))
		vm.Ar = isa.Unsigned(vm.Ar + isa.WORD_BYTES)
	case "snw":
		v, err = vm.Stack.Pop()
		if err == nil {
			vm.store16(vm.Ar, v)
			vm.Ar = isa.Unsigned(vm.Ar + isa.WORD_BYTES)
		}
	default:
		_, err = isa.Lookup(op.Mnemonic)
	}

	return
}
