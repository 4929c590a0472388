package structural

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/starjconf/asm"
	"github.com/ezrec/starjconf/internal/refvm"
	"github.com/ezrec/starjconf/isa"
	"github.com/ezrec/starjconf/oracle"
)

func mustBuild(t *testing.T, name string) *asm.Program {
	gen, err := Lookup(name)
	require.NoError(t, err)
	prog, err := gen.Build()
	require.NoError(t, err)
	require.NoError(t, prog.Validate())
	return prog
}

func TestLookup(t *testing.T) {
	assert := assert.New(t)

	gen, err := Lookup("lw_sw")
	assert.NoError(err)
	assert.Equal([]string{"lw", "sw"}, gen.Covers)

	_, err = Lookup("add")
	assert.Equal(ErrGeneratorMissing("add"), err)
}

func TestEveryStructuralFamilyHasGenerator(t *testing.T) {
	assert := assert.New(t)

	names, covers := isa.Families()
	for _, name := range names {
		inst, err := isa.Lookup(covers[name][0])
		assert.NoError(err)
		if inst.Oracle() {
			continue
		}
		gen, err := Lookup(name)
		if assert.NoError(err, name) {
			assert.Equal(covers[name], gen.Covers, name)
		}
	}
}

func TestGeneratorsPass(t *testing.T) {
	for gen := range All() {
		t.Run(gen.Name, func(t *testing.T) {
			assert := assert.New(t)

			prog := mustBuild(t, gen.Name)
			assert.Equal(gen.Name, prog.Name)
			for _, mnemonic := range gen.Covers {
				assert.NotZero(prog.Count(mnemonic), mnemonic)
			}

			result, vm, err := refvm.Execute(prog.String())
			assert.NoError(err)
			assert.Equal(oracle.RESULT_PASS, result)
			assert.NotZero(vm.Checks)
		})
	}
}

func TestBranchFixtureShape(t *testing.T) {
	for _, name := range []string{"beqz", "bnez"} {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			prog := mustBuild(t, name)
			labels := prog.Labels()
			assert.Contains(labels, asm.LABEL_FORWARD_NOT_TAKEN_FAIL)
			assert.Contains(labels, asm.LABEL_BACKWARD_NOT_TAKEN_FAIL)
			assert.Contains(labels, asm.LABEL_FAIL)

			// The backward not-taken probe jumps to a label defined earlier.
			var branch int
			for n, st := range prog.Statements {
				if st.Kind == asm.KIND_BRANCH && st.Label == asm.LABEL_BACKWARD_NOT_TAKEN_FAIL {
					branch = n
				}
			}
			assert.Less(labels[asm.LABEL_BACKWARD_NOT_TAKEN_FAIL], branch)
			assert.Less(labels["_backward_target"], labels["_backward_setup"])
		})
	}

	assert.Equal(t, SENTINEL_BEQZ, mustBuild(t, "beqz").Sentinel)
	assert.Equal(t, SENTINEL_BNEZ, mustBuild(t, "bnez").Sentinel)
	assert.Equal(t, SENTINEL_JUMP, mustBuild(t, "jump").Sentinel)
}

// neverTaken is a branch that pops its operand and falls through.
func neverTaken(vm *refvm.Machine, op *refvm.Opcode) (err error) {
	_, err = vm.Stack.Pop()
	return
}

// keepsOperand is a branch that is taken on zero without popping.
func keepsOperand(vm *refvm.Machine, op *refvm.Opcode) (err error) {
	v, err := vm.Stack.Peek()
	if err == nil && v == 0 {
		vm.Pc = op.Value
	}
	return
}

// zeroExtend is an lb that forgets sign extension.
func zeroExtend(vm *refvm.Machine, op *refvm.Opcode) (err error) {
	addr, err := vm.Stack.Pop()
	if err != nil {
		return
	}
	return vm.Stack.Push(int(vm.Memory[isa.Unsigned(addr)]))
}

// shortStride is an snw that advances ar by one byte.
func shortStride(vm *refvm.Machine, op *refvm.Opcode) (err error) {
	v, err := vm.Stack.Pop()
	if err != nil {
		return
	}
	vm.Memory[vm.Ar] = byte(v)
	vm.Memory[(vm.Ar+1)&isa.WORD_MASK] = byte(v >> 8)
	vm.Ar = (vm.Ar + 1) & isa.WORD_MASK
	return
}

// unmasked is a shi that keeps all immediate bits.
func unmasked(vm *refvm.Machine, op *refvm.Opcode) (err error) {
	v, err := vm.Stack.Pop()
	if err != nil {
		return
	}
	return vm.Stack.Push(isa.Signed(v<<isa.SHI_BITS | op.Value))
}

// staleRa is a call that does not update ra.
func staleRa(vm *refvm.Machine, op *refvm.Opcode) (err error) {
	vm.Pc = op.Value
	return
}

// pcAhead pushes the address after the push for `push pc`.
func pcAhead(vm *refvm.Machine, op *refvm.Opcode) (err error) {
	v := op.Value
	if op.Operand == refvm.OPERAND_REGISTER {
		switch op.Register {
		case isa.REG_FP:
			v = vm.Fp
		case isa.REG_RA:
			v = vm.Ra
		case isa.REG_AR:
			v = vm.Ar
		case isa.REG_PC:
			v = vm.Pc
		}
	}
	return vm.Stack.Push(isa.Signed(v))
}

func TestGeneratorsDetectFaults(t *testing.T) {
	table := [](struct {
		name    string
		fixture string
		options []refvm.Option
	}){
		{"branch shadow beqz", "beqz", []refvm.Option{refvm.WithBranchShadow()}},
		{"branch shadow bnez", "bnez", []refvm.Option{refvm.WithBranchShadow()}},
		{"jump shadow", "jump", []refvm.Option{refvm.WithBranchShadow()}},
		{"call shadow", "call_ret", []refvm.Option{refvm.WithBranchShadow()}},
		{"pop pc shadow", "push_pop_reg", []refvm.Option{refvm.WithBranchShadow()}},
		{"beqz never taken", "beqz", []refvm.Option{refvm.WithFault("beqz", neverTaken)}},
		{"bnez never taken", "bnez", []refvm.Option{refvm.WithFault("bnez", neverTaken)}},
		{"beqz keeps operand", "beqz", []refvm.Option{refvm.WithFault("beqz", keepsOperand)}},
		{"lb zero extends", "lb_sb", []refvm.Option{refvm.WithFault("lb", zeroExtend)}},
		{"snw short stride", "lnw_snw", []refvm.Option{refvm.WithFault("snw", shortStride)}},
		{"shi unmasked", "shi", []refvm.Option{refvm.WithFault("shi", unmasked)}},
		{"call stale ra", "call_ret", []refvm.Option{refvm.WithFault("call", staleRa)}},
		{"push pc next address", "push_pop_reg", []refvm.Option{refvm.WithFault("push", pcAhead)}},
		{"fsl as or", "fsl", []refvm.Option{refvm.WithFault("fsl", func(vm *refvm.Machine, op *refvm.Opcode) (err error) {
			args, err := vm.Stack.PopN(3)
			if err == nil {
				err = vm.Stack.Push(isa.Signed(args[0] | args[1]))
			}
			return
		})}},
		{"select inverted", "select", []refvm.Option{refvm.WithFault("select", func(vm *refvm.Machine, op *refvm.Opcode) (err error) {
			args, err := vm.Stack.PopN(3)
			if err == nil {
				v := args[1]
				if args[2] != 0 {
					v = args[0]
				}
				err = vm.Stack.Push(v)
			}
			return
		})}},
		{"rot reversed", "rot", []refvm.Option{refvm.WithFault("rot", func(vm *refvm.Machine, op *refvm.Opcode) (err error) {
			args, err := vm.Stack.PopN(3)
			if err == nil {
				_ = vm.Stack.Push(args[1])
				_ = vm.Stack.Push(args[2])
				err = vm.Stack.Push(args[0])
			}
			return
		})}},
	}

	for _, entry := range table {
		t.Run(entry.name, func(t *testing.T) {
			assert := assert.New(t)

			prog := mustBuild(t, entry.fixture)
			result, _, err := refvm.Execute(prog.String(), entry.options...)
			detected := err != nil || result == oracle.RESULT_FAIL
			assert.True(detected, "result %v, err %v", result, err)
		})
	}
}
