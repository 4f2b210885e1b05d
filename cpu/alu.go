package cpu

import (
	"math/bits"

	"github.com/XwanXuanX/Misim/bitop"
)

// AluOp is an ALU micro-operation.
type AluOp uint8

//go:generate go tool stringer -linecomment -type=AluOp
const (
	ALU_OP_ADD  = AluOp(0)  // add
	ALU_OP_UMUL = AluOp(1)  // umul
	ALU_OP_UDIV = AluOp(2)  // udiv
	ALU_OP_UMOL = AluOp(3)  // umol
	ALU_OP_PASS = AluOp(4)  // pass
	ALU_OP_AND  = AluOp(5)  // and
	ALU_OP_ORR  = AluOp(6)  // orr
	ALU_OP_XOR  = AluOp(7)  // xor
	ALU_OP_COMP = AluOp(8)  // comp
	ALU_OP_SHL  = AluOp(9)  // shl
	ALU_OP_SHR  = AluOp(10) // shr
	ALU_OP_RTL  = AluOp(11) // rtl
	ALU_OP_RTR  = AluOp(12) // rtr
)

// FlagSet is the set of PSR flags an ALU operation produced.
type FlagSet uint8

// Has reports whether flag is in the set.
func (fs FlagSet) Has(flag PsrFlag) bool {
	return fs&(FlagSet(1)<<flag) != 0
}

// With returns the set extended by flag.
func (fs FlagSet) With(flag PsrFlag) FlagSet {
	return fs | (FlagSet(1) << flag)
}

// AluInput carries the opcode and the two operands A and B.
type AluInput struct {
	Op AluOp
	A  uint32
	B  uint32
}

// AluOutput carries the result word and the produced flag set. The ALU is
// the single authority on flags; the control unit only mirrors them into
// the PSR.
type AluOutput struct {
	Result uint32
	Flags  FlagSet
}

// AluExecute runs a single micro-operation. It never fails: division and
// modulus by zero yield a zeroed output with no flags set.
func AluExecute(in AluInput) (out AluOutput) {
	switch in.Op {
	case ALU_OP_ADD:
		return aluAdd(in.A, in.B)
	case ALU_OP_UMUL:
		return aluUmul(in.A, in.B)
	case ALU_OP_UDIV:
		return aluUdiv(in.A, in.B)
	case ALU_OP_UMOL:
		return aluUmol(in.A, in.B)
	case ALU_OP_PASS:
		return aluMakeOutput(in.A)
	case ALU_OP_AND:
		return aluMakeOutput(in.A & in.B)
	case ALU_OP_ORR:
		return aluMakeOutput(in.A | in.B)
	case ALU_OP_XOR:
		return aluMakeOutput(in.A ^ in.B)
	case ALU_OP_COMP:
		return aluComp(in.A)
	case ALU_OP_SHL:
		return aluMakeOutput(aluShift(in.A, in.B, false))
	case ALU_OP_SHR:
		return aluMakeOutput(aluShift(in.A, in.B, true))
	case ALU_OP_RTL:
		return aluMakeOutput(bits.RotateLeft32(in.A, int(in.B%bitop.Width)))
	case ALU_OP_RTR:
		return aluMakeOutput(bits.RotateLeft32(in.A, -int(in.B%bitop.Width)))
	}

	return
}

// aluFlagsNZ derives the unconditional flags: N iff the sign bit of the
// result is set, Z iff the result is zero.
func aluFlagsNZ(r uint32) (flags FlagSet) {
	if msb, _ := bitop.TestBit(r, bitop.Width-1); msb {
		flags = flags.With(FLAG_N)
	}
	if bitop.TestBitNone(r) {
		flags = flags.With(FLAG_Z)
	}

	return
}

func aluMakeOutput(r uint32) AluOutput {
	return AluOutput{
		Result: r,
		Flags:  aluFlagsNZ(r),
	}
}

func aluAdd(a, b uint32) AluOutput {
	r := a + b

	flags := aluFlagsNZ(r)

	// Carry: the modular sum wrapped below both operands.
	if r < a && r < b {
		flags = flags.With(FLAG_C)
	}

	// Signed overflow: operand sign bits agree and differ from the
	// result's sign bit.
	msbA, _ := bitop.TestBit(a, bitop.Width-1)
	msbB, _ := bitop.TestBit(b, bitop.Width-1)
	msbR, _ := bitop.TestBit(r, bitop.Width-1)
	if msbA == msbB && msbA != msbR {
		flags = flags.With(FLAG_V)
	}

	return AluOutput{Result: r, Flags: flags}
}

func aluUmul(a, b uint32) AluOutput {
	// EXPERIMENTAL! No C/V flags are detected for multiplication.
	return aluMakeOutput(uint32(bitop.Promote(a) * bitop.Promote(b)))
}

func aluUdiv(a, b uint32) (out AluOutput) {
	if bitop.TestBitNone(b) {
		return
	}

	return aluMakeOutput(a / b)
}

func aluUmol(a, b uint32) (out AluOutput) {
	if bitop.TestBitNone(b) {
		return
	}

	return aluMakeOutput(a % b)
}

func aluComp(a uint32) AluOutput {
	r, _ := bitop.FlipBit(a)
	return aluMakeOutput(r)
}

// aluShift performs a logical shift; counts at or above the word width
// shift out every bit.
func aluShift(a, b uint32, right bool) uint32 {
	if b >= bitop.Width {
		return 0
	}
	if right {
		return a >> b
	}
	return a << b
}
