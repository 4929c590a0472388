package catalog

import (
	"errors"
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/starjconf/isa"
)

var (
	errDivideByZero = errors.New(f("division by zero"))
	errNotInteger   = errors.New(f("not an integer"))
	errNotList      = errors.New(f("not a list"))
)

// int64Args unpacks exactly n integer arguments.
func int64Args(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple, n int) (values []int64, err error) {
	if len(kwargs) != 0 || len(args) != n {
		err = fmt.Errorf("%s: %w", b.Name(), &ErrOperandCount{Want: n, Got: len(args)})
		return
	}
	for _, arg := range args {
		i, ok := arg.(starlark.Int)
		if !ok {
			err = fmt.Errorf("%s: %w", b.Name(), errNotInteger)
			return
		}
		v, ok := i.Int64()
		if !ok {
			err = fmt.Errorf("%s: %w", b.Name(), ErrOperandRange(0))
			return
		}
		values = append(values, v)
	}
	return
}

func unaryBuiltin(name string, fn func(v int64) int64) *starlark.Builtin {
	return starlark.NewBuiltin(name, func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		v, err := int64Args(b, args, kwargs, 1)
		if err != nil {
			return nil, err
		}
		return starlark.MakeInt64(fn(v[0])), nil
	})
}

func divideBuiltin(name string, fn func(a, b int64) int64) *starlark.Builtin {
	return starlark.NewBuiltin(name, func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		v, err := int64Args(b, args, kwargs, 2)
		if err != nil {
			return nil, err
		}
		if v[1] == 0 {
			return nil, errDivideByZero
		}
		return starlark.MakeInt64(fn(v[0], v[1])), nil
	})
}

// builtins are the helpers available to every semantics expression.
// Go division truncates toward zero, which is what the ISA documents.
var builtins = starlark.StringDict{
	"s16":  unaryBuiltin("s16", func(v int64) int64 { return int64(int16(uint16(v))) }),
	"u16":  unaryBuiltin("u16", func(v int64) int64 { return int64(uint16(v)) }),
	"tdiv": divideBuiltin("tdiv", func(a, b int64) int64 { return a / b }),
	"tmod": divideBuiltin("tmod", func(a, b int64) int64 { return a % b }),
}

// eval evaluates a semantics expression with the given bindings.
func eval(expr string, bindings starlark.StringDict) (result starlark.Value, err error) {
	thread := starlark.Thread{Name: "semantics"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, value := range builtins {
		pred[key] = value
	}
	for key, value := range bindings {
		pred[key] = value
	}

	prog := "rc = " + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "semantics", prog, pred)
	if err != nil {
		err = &ErrSemantics{Expr: expr, Err: err}
		return
	}

	result, ok := dict["rc"]
	if !ok {
		err = &ErrSemantics{Expr: expr, Err: errNotInteger}
	}
	return
}

// toInt converts a starlark result to a Go integer.
func toInt(value starlark.Value) (v int, err error) {
	i, ok := value.(starlark.Int)
	if !ok {
		err = errNotInteger
		return
	}
	v64, ok := i.Int64()
	if !ok {
		err = errNotInteger
		return
	}
	v = int(v64)
	return
}

// Evaluate computes the documented result of inst applied to the operands,
// once per immediate when the instruction takes one.
func Evaluate(inst isa.Instruction, operands []int, imms []int) (result int, err error) {
	if len(operands) != inst.Pops {
		err = &ErrOperandCount{Want: inst.Pops, Got: len(operands)}
		return
	}
	if len(inst.Semantics) == 0 {
		err = &ErrSemantics{Expr: inst.Mnemonic, Err: ErrTableMissing(inst.Mnemonic)}
		return
	}

	bindings := starlark.StringDict{}
	for n, name := range []string{"a", "b", "c"}[:len(operands)] {
		bindings[name] = starlark.MakeInt(operands[n])
	}

	if !inst.Immediate {
		var value starlark.Value
		value, err = eval(inst.Semantics, bindings)
		if err != nil {
			return
		}
		return toInt(value)
	}

	if len(imms) == 0 {
		err = &ErrOperandCount{Want: 1, Got: 0}
		return
	}
	result = operands[0]
	for _, imm := range imms {
		bindings["a"] = starlark.MakeInt(result)
		bindings["imm"] = starlark.MakeInt(imm)
		var value starlark.Value
		value, err = eval(inst.Semantics, bindings)
		if err != nil {
			return
		}
		result, err = toInt(value)
		if err != nil {
			return
		}
	}
	return
}

// EvaluateStack computes the documented stack after running inst repeat
// times on the given stack (bottom first).
func EvaluateStack(inst isa.Instruction, stack []int, repeat int) (after []int, err error) {
	if len(inst.Semantics) == 0 {
		err = &ErrSemantics{Expr: inst.Mnemonic, Err: ErrTableMissing(inst.Mnemonic)}
		return
	}

	after = stack
	for range repeat {
		if len(after) < inst.Pops {
			err = &ErrOperandCount{Want: inst.Pops, Got: len(after)}
			return
		}
		values := make([]starlark.Value, len(after))
		for n, v := range after {
			values[n] = starlark.MakeInt(v)
		}
		var value starlark.Value
		value, err = eval(inst.Semantics, starlark.StringDict{"s": starlark.NewList(values)})
		if err != nil {
			return
		}
		list, ok := value.(*starlark.List)
		if !ok {
			err = &ErrSemantics{Expr: inst.Semantics, Err: errNotList}
			return
		}
		after = make([]int, list.Len())
		for n := range list.Len() {
			after[n], err = toInt(list.Index(n))
			if err != nil {
				return
			}
		}
	}
	return
}

// Check verifies one value row against the instruction semantics.
func Check(inst isa.Instruction, index int, c Case) (err error) {
	defer func() {
		if err != nil {
			err = &ErrCase{Mnemonic: inst.Mnemonic, Index: index, Err: err}
		}
	}()

	for _, v := range append(append([]int{}, c.Operands...), c.Expected) {
		if !isa.InRange(v) {
			return ErrOperandRange(v)
		}
	}
	if !inst.Immediate && len(c.Immediates) != 0 {
		return &ErrOperandCount{Want: 0, Got: len(c.Immediates)}
	}
	for _, imm := range c.Immediates {
		if imm < 0 || imm > 0xff {
			return ErrImmediateRange(imm)
		}
	}

	got, err := Evaluate(inst, c.Operands, c.Immediates)
	if err != nil {
		return
	}
	if isa.Signed(got) != isa.Signed(c.Expected) {
		return &ErrMismatch{Want: fmt.Sprint(isa.Signed(c.Expected)), Got: fmt.Sprint(isa.Signed(got))}
	}
	return
}

// CheckStack verifies one stack-shape row against the instruction semantics.
func CheckStack(inst isa.Instruction, index int, sc StackCase) (err error) {
	defer func() {
		if err != nil {
			err = &ErrCase{Mnemonic: inst.Mnemonic, Index: index, Err: err}
		}
	}()

	for _, v := range append(append([]int{}, sc.Before...), sc.After...) {
		if !isa.InRange(v) {
			return ErrOperandRange(v)
		}
	}
	if sc.Repeat < 1 {
		return &ErrOperandCount{Want: 1, Got: sc.Repeat}
	}

	got, err := EvaluateStack(inst, sc.Before, sc.Repeat)
	if err != nil {
		return
	}

	want := make([]int, len(sc.After))
	for n, v := range sc.After {
		want[n] = isa.Signed(v)
	}
	for n, v := range got {
		got[n] = isa.Signed(v)
	}
	if fmt.Sprint(want) != fmt.Sprint(got) {
		return &ErrMismatch{Want: fmt.Sprint(want), Got: fmt.Sprint(got)}
	}
	return
}

// CheckAll verifies every row of every table.
func CheckAll() (err error) {
	for _, mnemonic := range Mnemonics() {
		var inst isa.Instruction
		inst, err = isa.Lookup(mnemonic)
		if err != nil {
			return
		}
		for n, c := range valueTables[mnemonic] {
			err = Check(inst, n, c)
			if err != nil {
				return
			}
		}
		for n, sc := range stackTables[mnemonic] {
			err = CheckStack(inst, n, sc)
			if err != nil {
				return
			}
		}
	}
	return
}
