package cpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleAsm = `; A sample of own .asm file
; Comments start with ';'

.data
Arr:    1, 34, 62, 4, 100

.extra
Fld:    17

.text
        ; Equal to move 23 to R0
        XOR     R0, R0, R0
        ADD     R0, R0, 23

        PUSH    R0
        JMP     Label

Ret:    POP     R0
        END     ; Put 'END' where the program returns

Label:  JMP Ret ; Perform very complicated calculations
`

func TestAssembler_Sample(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(sampleAsm), 300)
	assert.NoError(err)

	// Seven statements plus the sentinel, laid out from address zero.
	assert.Equal(8, len(prog.Text))
	assert.Equal(Sentinel, prog.Text[7])
	assert.Equal(Segment{Start: 0, End: 7}, prog.Segments[SEG_CS])
	assert.Equal(Segment{Start: 8, End: 12}, prog.Segments[SEG_DS])
	assert.Equal(Segment{Start: 13, End: 13}, prog.Segments[SEG_ES])
	assert.Equal(Segment{Start: 14, End: 299}, prog.Segments[SEG_SS])

	assert.Equal([]uint32{1, 34, 62, 4, 100}, prog.Data)
	assert.Equal([]uint32{17}, prog.Extra)

	// Labels resolved to absolute addresses.
	assert.Equal(uint32(8), asm.Label["Arr"])
	assert.Equal(uint32(13), asm.Label["Fld"])
	assert.Equal(uint32(4), asm.Label["Ret"])
	assert.Equal(uint32(6), asm.Label["Label"])

	// The END statement sits between Ret and Label.
	assert.Equal(Sentinel, prog.Text[5])

	// JMP Label carries the resolved address.
	jmp := Decode(prog.Text[3])
	assert.Equal(TYPE_J, jmp.Type)
	assert.Equal(OP_JMP, jmp.Code)
	assert.Equal(uint32(6), jmp.Imm)
}

func TestAssembler_SampleRuns(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(sampleAsm), 300)
	assert.NoError(err)

	core, err := NewCore(300, prog.Segments, nil)
	assert.NoError(err)
	core.LoadData(prog.Data)
	core.LoadText(prog.Text)
	core.LoadExtra(prog.Extra)

	// The program moves 23 into R0, bounces through the stack and the
	// jumps, and halts at the END in the Ret path.
	assert.NoError(core.Run())
	assert.Equal(uint32(23), core.Register.Gp[REG_R0])
	assert.Equal(prog.Segments[SEG_SS].End+1, core.Register.Gp[REG_SP])
}

func TestAssembler_Formats(t *testing.T) {
	assert := assert.New(t)

	src := `.text
	ADD R1, R2, R3
	ADD R1, R2, 7
	NOT R4, R5
	LDR R6, R7
	STR R6, R7
	PUSH SP
	POP LR
	SYSCALL 1
	JZN 0
`
	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(src), 300)
	assert.NoError(err)

	expect := []Instruction{
		{Type: TYPE_R, Code: OP_ADD, Rd: REG_R1, Rm: REG_R2, Rn: REG_R3},
		{Type: TYPE_I, Code: OP_ADD, Rd: REG_R1, Rm: REG_R2, Imm: 7},
		{Type: TYPE_U, Code: OP_NOT, Rd: REG_R4, Rm: REG_R5},
		{Type: TYPE_U, Code: OP_LDR, Rd: REG_R6, Rm: REG_R7},
		{Type: TYPE_U, Code: OP_STR, Rd: REG_R6, Rm: REG_R7},
		{Type: TYPE_S, Code: OP_PUSH, Rd: REG_SP},
		{Type: TYPE_S, Code: OP_POP, Rd: REG_LR},
		{Type: TYPE_J, Code: OP_SYS, Imm: 1},
		{Type: TYPE_J, Code: OP_JZN, Imm: 0},
	}
	for n, want := range expect {
		assert.Equal(want.Encode(), prog.Text[n], "statement %d", n)
	}
}

func TestAssembler_Equates(t *testing.T) {
	assert := assert.New(t)

	src := `.equ COUNT 5
.equ BASE 0x10
.text
	ADD R1, R0, COUNT
	ADD R2, R0, BASE
`
	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(src), 300)
	assert.NoError(err)

	assert.Equal(uint32(5), Decode(prog.Text[0]).Imm)
	assert.Equal(uint32(0x10), Decode(prog.Text[1]).Imm)
}

func TestAssembler_ParenEval(t *testing.T) {
	assert := assert.New(t)

	src := `.equ BASE 8
.text
	ADD R1, R0, $(BASE * 2 + 1)
`
	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(src), 300)
	assert.NoError(err)

	assert.Equal(uint32(17), Decode(prog.Text[0]).Imm)
}

func TestAssembler_Predefine(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("SYS_CONSOLE_OUT", "1")

	src := `.text
	SYSCALL SYS_CONSOLE_OUT
`
	prog, err := asm.Parse(strings.NewReader(src), 300)
	assert.NoError(err)
	assert.Equal(uint32(1), Decode(prog.Text[0]).Imm)
}

func TestAssembler_Errors(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		name string
		src  string
		want error
	}{
		{"equ_syntax", ".equ ONLY\n", ErrEquateSyntax},
		{"equ_duplicate", ".equ A 1\n.equ A 2\n", ErrEquateDuplicate},
		{"label_duplicate", ".text\nL: END\nL: END\n", ErrLabelDuplicate},
		{"section_unknown", ".bss\n", ErrSectionUnknown},
		{"section_missing", "ADD R1, R0, 1\n", ErrSectionMissing},
		{"opcode_invalid", ".text\nFROB R1\n", ErrOpcodeInvalid},
		{"operand_count", ".text\nADD R1, R2\n", ErrOperandCount},
		{"register_invalid", ".text\nNOT R1, R99\n", ErrRegisterInvalid},
		{"imm_range", ".text\nJMP 4096\n", ErrImmRange},
		{"bad_number", ".data\nV: what\n", ErrParseNumber("what")},
	}

	for _, entry := range table {
		asm := &Assembler{}
		_, err := asm.Parse(strings.NewReader(entry.src), 300)
		assert.ErrorIs(err, entry.want, entry.name)
	}
}

func TestAssembler_MissingLabel(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	_, err := asm.Parse(strings.NewReader(".text\nJMP Nowhere\n"), 300)
	assert.ErrorIs(err, ErrLabelMissing("Nowhere"))
}

func TestAssembler_LineNumbers(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	_, err := asm.Parse(strings.NewReader(".text\n\nADD R1, R2\n"), 300)

	var line *ErrLine
	assert.ErrorAs(err, &line)
	assert.Equal(3, line.LineNo)
}
