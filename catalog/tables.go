package catalog

// valueTables holds the rows checked by value, keyed by mnemonic.
var valueTables = map[string][]Case{
	"add": {
		Bin(10, 20, 30),
		Bin(0, 0, 0),
		Bin(-10, 5, -5),
		Bin(32767, 1, -32768).With("signed overflow wraps"),
		Bin(-1, 1, 0),
		Bin(-32768, -1, 32767).With("signed underflow wraps"),
		Bin(0xffff, 0xffff, -2),
	},
	"sub": {
		Bin(20, 10, 10),
		Bin(10, 20, -10),
		Bin(0, 0, 0),
		Bin(-5, -5, 0),
		Bin(0, 1, -1),
		Bin(-32768, 1, 32767).With("signed underflow wraps"),
		Bin(32767, -1, -32768).With("signed overflow wraps"),
	},
	"mul": {
		Bin(10, 10, 100),
		Bin(1000, 1000, 0x4240).With("1000000 truncated to 16 bits"),
		Bin(0, 12345, 0),
		Bin(1, 12345, 12345),
		Bin(256, 256, 0).With("65536 truncated to 16 bits"),
		Bin(2, 0x4000, 0x8000),
		Bin(-1, 2, -2),
		Bin(-3, -3, 9),
		Bin(0x100, 0x100, 0),
	},
	"mulh": {
		Bin(10, 10, 0),
		Bin(0x100, 0x100, 1),
		Bin(0xffff, 2, 1),
		Bin(0xffff, 0xffff, 0xfffe).With("operands are unsigned"),
		Bin(0x8000, 2, 1),
		Bin(-1, 1, 0),
	},
	"div": {
		Bin(20, 10, 2),
		Bin(20, -10, -2),
		Bin(-20, 10, -2),
		Bin(-20, -10, 2),
		Bin(7, 2, 3).With("rounds toward zero"),
		Bin(-7, 2, -3).With("rounds toward zero"),
		Bin(7, -2, -3).With("rounds toward zero"),
		Bin(0x8000, 2, -16384).With("signed view of 0x8000"),
		Bin(0, 5, 0),
	},
	"divu": {
		Bin(20, 10, 2),
		Bin(0xffff, 1, 0xffff),
		Bin(10, 20, 0),
		Bin(0x8000, 2, 0x4000).With("unsigned view of 0x8000"),
		Bin(-1, 0x100, 0xff),
	},
	"mod": {
		Bin(10, 3, 1),
		Bin(-10, 3, -1).With("sign follows dividend"),
		Bin(10, -3, 1).With("sign follows dividend"),
		Bin(-10, -3, -1).With("sign follows dividend"),
		Bin(9, 3, 0),
		Bin(2, 5, 2),
	},
	"modu": {
		Bin(10, 3, 1),
		Bin(20, 6, 2),
		Bin(100, 7, 2),
		Bin(0xffff, 256, 255),
		Bin(1000, 1000, 0),
		Bin(5, 10, 5),
		Bin(0, 5, 0),
		Bin(-10, 3, 0).With("65526 % 3, unsigned"),
	},
	"and": {
		Bin(0b1100, 0b1010, 0b1000),
		Bin(0, 0xffff, 0),
		Bin(0xffff, 0xffff, -1),
		Bin(0xff00, 0x0ff0, 0x0f00),
		Bin(0x5555, 0xaaaa, 0),
		Bin(0x1234, 0xffff, 0x1234),
		Bin(0x8000, 0x8000, 0x8000),
	},
	"or": {
		Bin(0b1100, 0b1010, 0b1110),
		Bin(0, 0, 0),
		Bin(0, 1234, 1234),
		Bin(0x5555, 0xaaaa, 0xffff),
		Bin(0xff00, 0x00ff, 0xffff),
		Bin(0x1234, 0, 0x1234),
		Bin(0x8000, 0x0001, 0x8001),
	},
	"xor": {
		Bin(0b1100, 0b1010, 0b0110),
		Bin(12345, 12345, 0),
		Bin(0, -1, -1),
		Bin(0xffff, 0xffff, 0),
		Bin(0x5555, 0xaaaa, 0xffff),
		Bin(0xff00, 0x00ff, 0xffff),
		Bin(0x1234, 0xffff, 0xedcb),
	},
	"lt": {
		Bin(10, 20, 1),
		Bin(20, 10, 0),
		Bin(10, 10, 0),
		Bin(-10, 5, 1),
		Bin(5, -10, 0),
		Bin(-20, -10, 1),
		Bin(0x8000, 1, 1).With("0x8000 is negative when signed"),
		Bin(0x7fff, 0x8000, 0),
	},
	"ltu": {
		Bin(10, 20, 1),
		Bin(20, 10, 0),
		Bin(10, 10, 0),
		Bin(-1, 10, 0).With("-1 is the largest unsigned value"),
		Bin(0, -1, 1),
		Bin(0x8000, 1, 0).With("0x8000 is large when unsigned"),
		Bin(0x7fff, 0x8000, 1),
	},
	"sll": {
		Bin(0b0001, 1, 0b0010),
		Bin(0b0001, 4, 0b00010000),
		Bin(0x0001, 15, 0x8000),
		Bin(0xffff, 1, 0xfffe),
		Bin(0x1234, 0, 0x1234),
		Bin(0x8001, 1, 0x0002).With("high bit shifted out"),
		Bin(0x1234, 16, 0x1234).With("amount masked to 4 bits"),
		Bin(0x0001, 17, 0x0002).With("amount masked to 4 bits"),
		Bin(0x0001, 31, 0x8000).With("amount masked to 4 bits"),
	},
	"srl": {
		Bin(0b1111, 1, 0b0111),
		Bin(0xffff, 4, 0x0fff),
		Bin(0x8000, 1, 0x4000).With("zero fill"),
		Bin(0x1234, 0, 0x1234),
		Bin(0xffff, 15, 1),
		Bin(0x1234, 16, 0x1234).With("amount masked to 4 bits"),
		Bin(0x8000, 17, 0x4000).With("amount masked to 4 bits"),
	},
	"sra": {
		Bin(0b1111, 1, 0b0111),
		Bin(-4, 1, -2),
		Bin(-1, 4, -1),
		Bin(0x4000, 1, 0x2000),
		Bin(-32768, 1, -16384).With("sign fill"),
		Bin(-32768, 15, -1),
		Bin(0x7fff, 15, 0),
		Bin(100, 0, 100),
		Bin(-32768, 16, -32768).With("amount masked to 4 bits"),
		Bin(-32768, 17, -16384).With("amount masked to 4 bits"),
	},
	"fsl": {
		Tri(0xaaaa, 0x5555, 0, 0xaaaa).With("shift 0 yields ros"),
		Tri(0xaaaa, 0x5555, 16, 0x5555).With("shift 16 yields nos"),
		Tri(0x0000, 0x1234, 4, 0x0001),
		Tri(0x0000, 0xff00, 8, 0x00ff),
		Tri(0x8000, 0x0000, 1, 0x0000).With("ros high bit shifted out"),
		Tri(0x0000, 0x8000, 1, 0x0001).With("nos high bit carries into result"),
		Tri(0x0001, 0x0000, 15, 0x8000),
		Tri(0x0000, 0x0001, 31, 0x8000).With("largest shift"),
		Tri(0xaaaa, 0x5555, 32, 0xaaaa).With("amount masked to 5 bits"),
		Tri(0xffff, 0xffff, 4, 0xffff),
		Tri(0x00f0, 0x0f00, 8, 0xf00f).With("halves meet"),
		Tri(0x0000, 0x0001, 20, 0x0010).With("sll 4 as {0, v} << 20"),
		Tri(0x0001, 0x0000, 4, 0x0010).With("sll 4 as {v, 0} << 4"),
		Tri(0x1234, 0x0000, 4, 0x2340).With("sll 4 as {v, 0} << 4"),
		Tri(0x0000, 0x8000, 12, 0x0800).With("srl 4 as {0, v} << 12"),
		Tri(0x0000, 0xf000, 12, 0x0f00).With("srl 4 as {0, v} << 12"),
		Tri(0x0000, 0xffff, 1, 0x0001).With("srl 15 as {0, v} << 1"),
	},
	"select": {
		Tri(0xaaaa, 0xbbbb, 1, 0xbbbb).With("true selects nos"),
		Tri(0xaaaa, 0xbbbb, 0, 0xaaaa).With("false selects ros"),
		Tri(0x1111, 0x2222, -1, 0x2222).With("-1 is true"),
		Tri(0x3333, 0x4444, 0x7fff, 0x4444),
		Tri(0x3333, 0x4444, 0x8000, 0x4444).With("only zero is false"),
		Tri(0x5555, 0x5555, 1, 0x5555),
		Tri(0, 0, 0, 0),
	},
	"shi": {
		Chain(1, []int{0}, 0x80),
		Chain(0, []int{0x55}, 0x55),
		Chain(1, []int{0, 0}, 0x4000),
		Chain(0, []int{0x24, 0x34}, 0x1234).With("0x1234 = 00 0100100 0110100"),
		Chain(0, []int{0x7f}, 127).With("all-one immediate"),
		Chain(0, []int{0x00}, 0).With("all-zero immediate"),
		Chain(2, []int{0x57, 0x4d}, 0xabcd).With("0xabcd = 10 1010111 1001101"),
		Chain(1, []int{0x02}, 0x82),
		Chain(-2, []int{0}, 0xff00).With("negative high part"),
		Chain(1, []int{0x7f, 0x7f}, 0x7fff),
		Chain(-1, []int{0x7f}, -1),
		Chain(0x0200, []int{0}, 0).With("bits above 16 are lost"),
		Chain(0, []int{0x85}, 0x05).With("only the low 7 immediate bits are used"),
		Chain(0, []int{0xff}, 0x7f).With("only the low 7 immediate bits are used"),
	},
}

// stackTables holds the stack-shape rows, keyed by mnemonic.
var stackTables = map[string][]StackCase{
	"dup": {
		Shape([]int{123}, []int{123, 123}),
		Shape([]int{0}, []int{0, 0}),
		Shape([]int{-1}, []int{-1, -1}),
		Shape([]int{0x7fff}, []int{0x7fff, 0x7fff}),
		Shape([]int{0xaaaa, 0xbbbb}, []int{0xaaaa, 0xbbbb, 0xbbbb}).With("values below tos untouched"),
	},
	"drop": {
		Shape([]int{10, 20}, []int{10}),
		Shape([]int{1, 2, 3}, []int{1}).Times(2),
		Shape([]int{0xabcd, 0}, []int{0xabcd}),
		Shape([]int{0x1234, -1}, []int{0x1234}),
	},
	"swap": {
		Shape([]int{10, 20}, []int{20, 10}),
		Shape([]int{0xaaaa, 0xbbbb}, []int{0xbbbb, 0xaaaa}),
		Shape([]int{0x1111, 0x2222}, []int{0x1111, 0x2222}).Times(2).With("double swap restores"),
		Shape([]int{0, 0x5678}, []int{0x5678, 0}),
		Shape([]int{99, 99}, []int{99, 99}),
		Shape([]int{0x7777, 1, 2}, []int{0x7777, 2, 1}).With("ros untouched"),
	},
	"over": {
		Shape([]int{10, 20}, []int{10, 20, 10}),
		Shape([]int{0xaaaa, 0xbbbb}, []int{0xaaaa, 0xbbbb, 0xaaaa}),
		Shape([]int{0, 0x1234}, []int{0, 0x1234, 0}),
		Shape([]int{42, 42}, []int{42, 42, 42}),
	},
	"rot": {
		Shape([]int{0xcccc, 0xbbbb, 0xaaaa}, []int{0xaaaa, 0xcccc, 0xbbbb}),
		Shape([]int{0x1111, 0x2222, 0x3333}, []int{0x3333, 0x1111, 0x2222}),
		Shape([]int{1, 2, 3}, []int{1, 2, 3}).Times(3).With("three rotations restore"),
		Shape([]int{0, 0, 0x1234}, []int{0x1234, 0, 0}),
		Shape([]int{0x7777, 1, 2, 3}, []int{0x7777, 3, 1, 2}).With("fourth value untouched"),
	},
}
