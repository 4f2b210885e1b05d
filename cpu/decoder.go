package cpu

// OpType is the instruction format class.
type OpType uint8

//go:generate go tool stringer -linecomment -type=OpType
const (
	TYPE_R = OpType(0) // R type
	TYPE_I = OpType(1) // I type
	TYPE_U = OpType(2) // U type
	TYPE_S = OpType(3) // S type
	TYPE_J = OpType(4) // J type
)

// OpCode selects the operation within a format class.
type OpCode uint8

//go:generate go tool stringer -linecomment -type=OpCode
const (
	OP_ADD  = OpCode(0)  // ADD
	OP_UMUL = OpCode(1)  // UMUL
	OP_UDIV = OpCode(2)  // UDIV
	OP_UMOL = OpCode(3)  // UMOL
	OP_AND  = OpCode(4)  // AND
	OP_ORR  = OpCode(5)  // ORR
	OP_XOR  = OpCode(6)  // XOR
	OP_SHL  = OpCode(7)  // SHL
	OP_SHR  = OpCode(8)  // SHR
	OP_RTL  = OpCode(9)  // RTL
	OP_RTR  = OpCode(10) // RTR
	OP_NOT  = OpCode(11) // NOT
	OP_LDR  = OpCode(12) // LDR
	OP_STR  = OpCode(13) // STR
	OP_PUSH = OpCode(14) // PUSH
	OP_POP  = OpCode(15) // POP
	OP_JMP  = OpCode(16) // JMP
	OP_JZ   = OpCode(17) // JZ
	OP_JN   = OpCode(18) // JN
	OP_JC   = OpCode(19) // JC
	OP_JV   = OpCode(20) // JV
	OP_JZN  = OpCode(21) // JZN
	OP_SYS  = OpCode(22) // SYSCALL
)

// Sentinel is the all-ones word that terminates execution when fetched
// from the code segment.
const Sentinel = uint32(0xffffffff)

// Field is a bit field inside an encoded instruction word. Start is the
// least significant bit of the field.
type Field struct {
	Start  uint8
	Length uint8
}

// Extract shifts and masks the field out of word. The mask is formed by
// right-shifting an all-ones word, so a full-width field never shifts by
// the word width.
func (fd Field) Extract(word uint32) uint32 {
	mask := ^uint32(0) >> (32 - fd.Length)
	return (word >> fd.Start) & mask
}

// Insert places value into the field position of word.
func (fd Field) Insert(word uint32, value uint32) uint32 {
	mask := ^uint32(0) >> (32 - fd.Length)
	return word | ((value & mask) << fd.Start)
}

// Encoding is a frozen table of instruction fields.
//
// Basic layout (bit 0 least significant):
//
//	1 0 9 8   7 6 5 4   3 2 1 0   9 8 7 6   5 4 3 2   1 0 9 8   7 6 5 4   3 2 1 0
//	0 0 0 0 , 0 0 0 0 , 0 0 0 0 , 0 0 0 0 , 0 0 0 0 , 0 0 0 0 , 0 0 0 0 , 0 0 0 0
//	                    \____/    \____/    \_____/   \_______________/   \_____/
//	\_____________________|_/       |          |               |             |
//	          imm         Rn        Rm         Rd            OpCode        OpType
//
// Rn shares its bits with the low part of imm; each opcode consumes one
// or the other, never both.
type Encoding struct {
	OpType Field
	OpCode Field
	Rd     Field
	Rm     Field
	Rn     Field
	Imm    Field
}

// DefaultEncoding is the reference 32-bit encoding rule.
var DefaultEncoding = Encoding{
	OpType: Field{Start: 0, Length: 4},
	OpCode: Field{Start: 4, Length: 8},
	Rd:     Field{Start: 12, Length: 4},
	Rm:     Field{Start: 16, Length: 4},
	Rn:     Field{Start: 20, Length: 4},
	Imm:    Field{Start: 20, Length: 12},
}

// Instruction is the decoded form of one machine word.
type Instruction struct {
	Type OpType
	Code OpCode
	Rd   GpReg
	Rm   GpReg
	Rn   GpReg
	Imm  uint32
}

// Decode extracts the instruction fields from a fetched word. Decoding is
// pure and total; semantic validity is checked by the control unit.
func Decode(word uint32) Instruction {
	enc := DefaultEncoding

	return Instruction{
		Type: OpType(enc.OpType.Extract(word)),
		Code: OpCode(enc.OpCode.Extract(word)),
		Rd:   GpReg(enc.Rd.Extract(word)),
		Rm:   GpReg(enc.Rm.Extract(word)),
		Rn:   GpReg(enc.Rn.Extract(word)),
		Imm:  enc.Imm.Extract(word),
	}
}

// Encode renders the instruction back into its binary form. Jump-type
// instructions carry an immediate; register-register forms carry Rn in
// the bits the immediate would occupy.
func (in Instruction) Encode() (word uint32) {
	enc := DefaultEncoding

	word = enc.OpType.Insert(word, uint32(in.Type))
	word = enc.OpCode.Insert(word, uint32(in.Code))
	word = enc.Rd.Insert(word, uint32(in.Rd))
	word = enc.Rm.Insert(word, uint32(in.Rm))

	if in.Type == TYPE_R {
		word = enc.Rn.Insert(word, uint32(in.Rn))
	} else {
		word = enc.Imm.Insert(word, in.Imm)
	}

	return
}
