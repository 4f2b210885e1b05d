package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// gpMap is the register name lookup for operand parsing.
var gpMap = map[string]GpReg{
	"R0": REG_R0, "R1": REG_R1, "R2": REG_R2, "R3": REG_R3,
	"R4": REG_R4, "R5": REG_R5, "R6": REG_R6, "R7": REG_R7,
	"R8": REG_R8, "R9": REG_R9, "R10": REG_R10, "R11": REG_R11,
	"R12": REG_R12, "SP": REG_SP, "LR": REG_LR, "PC": REG_PC,
}

// binaryOps are the two-source operations that pick R type or I type
// from their third operand.
var binaryOps = map[string]OpCode{
	"ADD": OP_ADD, "UMUL": OP_UMUL, "UDIV": OP_UDIV, "UMOL": OP_UMOL,
	"AND": OP_AND, "ORR": OP_ORR, "XOR": OP_XOR,
	"SHL": OP_SHL, "SHR": OP_SHR, "RTL": OP_RTL, "RTR": OP_RTR,
}

// unaryOps take a destination and a single source register.
var unaryOps = map[string]OpCode{
	"NOT": OP_NOT, "LDR": OP_LDR, "STR": OP_STR,
}

// stackOps take only a destination register.
var stackOps = map[string]OpCode{
	"PUSH": OP_PUSH, "POP": OP_POP,
}

// jumpOps take a label or a value.
var jumpOps = map[string]OpCode{
	"JMP": OP_JMP, "JZ": OP_JZ, "JN": OP_JN, "JC": OP_JC,
	"JV": OP_JV, "JZN": OP_JZN, "SYSCALL": OP_SYS,
}

// asmSection is the active source section.
type asmSection int

const (
	asmNone  asmSection = iota
	asmData             // .data
	asmExtra            // .extra
	asmText             // .text
)

// statement is a text-section line waiting for the link phase.
type statement struct {
	LineNo int
	Words  []string
}

// Assembler is a two-phase assembler for the Misim instruction set:
// parse collects sections, labels and equates, link lays out segments
// and encodes instructions.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	Equate map[string]string // Map of equates.
	Label  map[string]uint32 // Map of labels to resolved addresses.

	predefine map[string]string
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf resolves a word as an equate or a number.
func (asm *Assembler) valueOf(word string) (value uint32, err error) {
	if resolved, ok := asm.Equate[word]; ok {
		word = resolved
	}

	v64, err := strconv.ParseUint(word, 0, 32)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	value = uint32(v64)
	return
}

// equateGlobals exposes the integer-valued equates to the expression
// evaluator. Equates that do not resolve to a number (register names,
// for instance) are not visible inside $().
func (asm *Assembler) equateGlobals() starlark.StringDict {
	globals := starlark.StringDict{}
	for name, str := range asm.Equate {
		if value, err := asm.valueOf(str); err == nil {
			globals[name] = starlark.MakeInt64(int64(value))
		}
	}

	return globals
}

// parenEval runs a compile-time $(...) expression under starlark, with
// the current equates in scope.
func (asm *Assembler) parenEval(expr string) (value uint32, err error) {
	var thread starlark.Thread

	chunk := "result = (" + expr + ")\n"
	globals, err := starlark.ExecFileOptions(&syntax.FileOptions{}, &thread, "$()", chunk, asm.equateGlobals())
	if err != nil {
		return
	}

	result, ok := globals["result"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}

	var n int64
	if starlark.AsInt(result, &n) != nil {
		err = ErrParseExpression(expr)
		return
	}

	value = uint32(n)
	return
}

var parenRe = regexp.MustCompile(`\$\([^\$]*\)`)

// expandLine strips the comment and substitutes $() expressions.
func (asm *Assembler) expandLine(line string, lineno int) (expanded string, err error) {
	if n := strings.IndexByte(line, ';'); n >= 0 {
		line = line[:n]
	}

	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	expanded = parenRe.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%#v", value)
	})
	if err != nil {
		return
	}

	expanded = strings.TrimSpace(expanded)
	return
}

// Parse assembles the source into a Program. The code segment is laid
// out from address zero, followed by the data and extra segments; the
// stack takes the remainder up to memSize.
func (asm *Assembler) Parse(r io.Reader, memSize uint32) (prog *Program, err error) {
	asm.Equate = map[string]string{"LINENO": "0"}
	for key, value := range asm.predefine {
		asm.Equate[key] = value
	}
	asm.Label = map[string]uint32{}

	var data, extra []string
	var text []statement

	// Pending label names per section, by item offset.
	dataLabels := map[string]uint32{}
	extraLabels := map[string]uint32{}
	textLabels := map[string]uint32{}

	section := asmNone
	lineno := 0

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineno++

		var line string
		line, err = asm.expandLine(scanner.Text(), lineno)
		if err != nil {
			err = &ErrLine{LineNo: lineno, Err: err}
			return
		}
		if len(line) == 0 {
			continue
		}

		words := strings.Fields(line)

		// .equ CONST VALUE
		if words[0] == ".equ" {
			if len(words) != 3 {
				err = &ErrLine{LineNo: lineno, Err: ErrEquateSyntax}
				return
			}
			if _, ok := asm.Equate[words[1]]; ok {
				err = &ErrLine{LineNo: lineno, Err: ErrEquateDuplicate}
				return
			}
			asm.Equate[words[1]] = words[2]
			continue
		}

		// Section headings.
		if strings.HasPrefix(words[0], ".") {
			switch words[0] {
			case ".data":
				section = asmData
			case ".extra":
				section = asmExtra
			case ".text":
				section = asmText
			default:
				err = &ErrLine{LineNo: lineno, Err: ErrSectionUnknown}
				return
			}
			continue
		}

		// Optional leading "Label:".
		line, err = asm.takeLabel(line, section, uint32(len(data)), uint32(len(extra)), uint32(len(text)),
			dataLabels, extraLabels, textLabels)
		if err != nil {
			err = &ErrLine{LineNo: lineno, Err: err}
			return
		}
		if len(line) == 0 {
			continue
		}

		switch section {
		case asmData:
			data = append(data, splitItems(line)...)
		case asmExtra:
			extra = append(extra, splitItems(line)...)
		case asmText:
			text = append(text, statement{LineNo: lineno, Words: strings.Fields(line)})
		default:
			err = &ErrLine{LineNo: lineno, Err: ErrSectionMissing}
			return
		}
	}
	if err = scanner.Err(); err != nil {
		return
	}

	return asm.link(memSize, data, extra, text, dataLabels, extraLabels, textLabels)
}

// takeLabel records a leading label definition and returns the rest of
// the line.
func (asm *Assembler) takeLabel(line string, section asmSection, nData, nExtra, nText uint32,
	dataLabels, extraLabels, textLabels map[string]uint32) (rest string, err error) {
	rest = line

	n := strings.IndexByte(line, ':')
	if n < 0 {
		return
	}
	name := strings.TrimSpace(line[:n])
	if len(name) == 0 || len(strings.Fields(name)) != 1 {
		return
	}

	var labels map[string]uint32
	var offset uint32
	switch section {
	case asmData:
		labels, offset = dataLabels, nData
	case asmExtra:
		labels, offset = extraLabels, nExtra
	case asmText:
		labels, offset = textLabels, nText
	default:
		err = ErrSectionMissing
		return
	}

	if _, ok := labels[name]; ok {
		err = ErrLabelDuplicate
		return
	}
	labels[name] = offset

	rest = strings.TrimSpace(line[n+1:])
	return
}

// splitItems splits a data body on commas.
func splitItems(line string) (items []string) {
	for _, item := range strings.Split(line, ",") {
		item = strings.TrimSpace(item)
		if len(item) > 0 {
			items = append(items, item)
		}
	}

	return
}

// link lays out the segments, resolves labels and encodes the text.
func (asm *Assembler) link(memSize uint32, data, extra []string, text []statement,
	dataLabels, extraLabels, textLabels map[string]uint32) (prog *Program, err error) {
	// A segment cannot be empty; an unused one still reserves a word.
	span := func(start uint32, n int) Segment {
		if n == 0 {
			n = 1
		}
		return Segment{Start: start, End: start + uint32(n) - 1}
	}

	cs := span(0, len(text)+1) // text plus the sentinel
	ds := span(cs.End+1, len(data))
	es := span(ds.End+1, len(extra))

	prog = &Program{
		Segments: Segments{SEG_CS: cs, SEG_DS: ds, SEG_ES: es},
	}
	prog.appendStackSegment(memSize)

	// Labels become absolute addresses.
	for name, offset := range textLabels {
		asm.Label[name] = cs.Start + offset
	}
	for name, offset := range dataLabels {
		asm.Label[name] = ds.Start + offset
	}
	for name, offset := range extraLabels {
		asm.Label[name] = es.Start + offset
	}

	for _, item := range data {
		var value uint32
		if value, err = asm.valueOf(item); err != nil {
			prog = nil
			return
		}
		prog.Data = append(prog.Data, value)
	}
	for _, item := range extra {
		var value uint32
		if value, err = asm.valueOf(item); err != nil {
			prog = nil
			return
		}
		prog.Extra = append(prog.Extra, value)
	}

	for _, st := range text {
		var word uint32
		word, err = asm.encodeStatement(st)
		if err != nil {
			prog = nil
			err = &ErrLine{LineNo: st.LineNo, Err: err}
			return
		}
		if asm.Verbose {
			log.Printf("%03d: %08x  %v", len(prog.Text), word, strings.Join(st.Words, " "))
		}
		prog.Text = append(prog.Text, word)
	}
	prog.Text = append(prog.Text, Sentinel)

	return
}

// operands splits "Rd, Rm, Rn" words that may carry commas.
func operands(words []string) (ops []string) {
	for _, word := range words {
		ops = append(ops, splitItems(word)...)
	}

	return
}

func (asm *Assembler) register(word string) (reg GpReg, err error) {
	reg, ok := gpMap[strings.ToUpper(word)]
	if !ok {
		err = ErrRegisterInvalid
	}

	return
}

// target resolves a jump or immediate operand: a label, an equate, or a
// number.
func (asm *Assembler) target(word string) (value uint32, err error) {
	if addr, ok := asm.Label[word]; ok {
		value = addr
		return
	}

	value, err = asm.valueOf(word)
	if err != nil && len(word) > 0 && (word[0] == '_' || unicode.IsLetter(rune(word[0]))) {
		err = ErrLabelMissing(word)
	}

	return
}

// encodeStatement turns one text statement into a machine word.
func (asm *Assembler) encodeStatement(st statement) (word uint32, err error) {
	if len(st.Words) == 0 {
		err = ErrOpcodeMissing
		return
	}

	mnemonic := strings.ToUpper(st.Words[0])
	ops := operands(st.Words[1:])

	// END assembles to the terminating sentinel.
	if mnemonic == "END" {
		if len(ops) != 0 {
			err = ErrOperandCount
			return
		}
		word = Sentinel
		return
	}

	in := Instruction{}

	switch code, kind := classify(mnemonic); kind {
	case asmBinary:
		if len(ops) != 3 {
			err = ErrOperandCount
			return
		}
		in.Code = code
		if in.Rd, err = asm.register(ops[0]); err != nil {
			return
		}
		if in.Rm, err = asm.register(ops[1]); err != nil {
			return
		}
		if rn, rerr := asm.register(ops[2]); rerr == nil {
			in.Type = TYPE_R
			in.Rn = rn
		} else {
			in.Type = TYPE_I
			if in.Imm, err = asm.immediate(ops[2]); err != nil {
				return
			}
		}

	case asmUnary:
		if len(ops) != 2 {
			err = ErrOperandCount
			return
		}
		in.Type = TYPE_U
		in.Code = code
		if in.Rd, err = asm.register(ops[0]); err != nil {
			return
		}
		if in.Rm, err = asm.register(ops[1]); err != nil {
			return
		}

	case asmStack:
		if len(ops) != 1 {
			err = ErrOperandCount
			return
		}
		in.Type = TYPE_S
		in.Code = code
		if in.Rd, err = asm.register(ops[0]); err != nil {
			return
		}

	case asmJump:
		if len(ops) != 1 {
			err = ErrOperandCount
			return
		}
		in.Type = TYPE_J
		in.Code = code
		var value uint32
		if value, err = asm.target(ops[0]); err != nil {
			return
		}
		if in.Imm, err = checkImmediate(value); err != nil {
			return
		}

	default:
		err = ErrOpcodeInvalid
		return
	}

	word = in.Encode()
	return
}

// asmKind is the operand shape of a mnemonic.
type asmKind int

const (
	asmUnknown asmKind = iota
	asmBinary
	asmUnary
	asmStack
	asmJump
)

func classify(mnemonic string) (code OpCode, kind asmKind) {
	if code, ok := binaryOps[mnemonic]; ok {
		return code, asmBinary
	}
	if code, ok := unaryOps[mnemonic]; ok {
		return code, asmUnary
	}
	if code, ok := stackOps[mnemonic]; ok {
		return code, asmStack
	}
	if code, ok := jumpOps[mnemonic]; ok {
		return code, asmJump
	}

	return 0, asmUnknown
}

// immediate resolves a value operand and checks the field width.
func (asm *Assembler) immediate(word string) (value uint32, err error) {
	if value, err = asm.target(word); err != nil {
		return
	}

	return checkImmediate(value)
}

func checkImmediate(value uint32) (imm uint32, err error) {
	mask := ^uint32(0) >> (32 - DefaultEncoding.Imm.Length)
	if value > mask {
		err = ErrImmRange
		return
	}

	imm = value
	return
}
