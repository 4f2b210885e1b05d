package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/XwanXuanX/Misim/bitop"
)

// LogLevel classifies a trace log message.
type LogLevel int8

//go:generate go tool stringer -linecomment -type=LogLevel
const (
	LOG_INFO    = LogLevel(0) // INFO
	LOG_WARNING = LogLevel(1) // WARNING
	LOG_ERROR   = LogLevel(2) // ERROR
)

// Tracer receives leveled log messages and one structured record per
// executed instruction. A nil Tracer suppresses all emission.
type Tracer interface {
	Log(level LogLevel, message string) error
	Trace(binary uint32, in Instruction, mem *Memory, reg *Registers, seg Segments)
}

// Core is the control unit. It owns the memory, the register file and
// the segment map, and drives the fetch-decode-execute loop.
type Core struct {
	Verbose bool // Set to enable verbose logging.

	Memory   *Memory
	Register Registers
	Segment  Segments
	Syscall  *Syscalls

	tracer Tracer
}

// NewCore builds a core over a memory of memSize words laid out by the
// given segment map. PC starts at the bottom of the code segment and SP
// one past the top of the stack segment.
func NewCore(memSize uint32, segments Segments, tracer Tracer) (core *Core, err error) {
	core = &Core{
		Memory:  NewMemory(memSize),
		Segment: segments,
		Syscall: NewSyscalls(),
		tracer:  tracer,
	}

	if err = segments.Validate(memSize); err != nil {
		if tracer != nil {
			tracer.Log(LOG_ERROR, err.Error())
		}
		core = nil
		return
	}

	core.Register.Gp[REG_SP] = segments[SEG_SS].End + 1
	core.Register.Gp[REG_PC] = segments[SEG_CS].Start

	return
}

// Defines returns the memory geometry as assembler predefines.
func (c *Core) Defines() iter.Seq2[string, string] {
	defines := map[string]string{
		"MEM_SIZE": fmt.Sprintf("%v", c.Memory.Size()),
	}
	for kind, rng := range c.Segment.All() {
		switch kind {
		case SEG_CS:
			defines["CS_START"] = fmt.Sprintf("%v", rng.Start)
			defines["CS_END"] = fmt.Sprintf("%v", rng.End)
		case SEG_DS:
			defines["DS_START"] = fmt.Sprintf("%v", rng.Start)
			defines["DS_END"] = fmt.Sprintf("%v", rng.End)
		case SEG_SS:
			defines["SS_START"] = fmt.Sprintf("%v", rng.Start)
			defines["SS_END"] = fmt.Sprintf("%v", rng.End)
		case SEG_ES:
			defines["ES_START"] = fmt.Sprintf("%v", rng.Start)
			defines["ES_END"] = fmt.Sprintf("%v", rng.End)
		}
	}

	return maps.All(defines)
}

// LoadData places words sequentially from the bottom of the data
// segment, stopping at the segment end.
func (c *Core) LoadData(words []uint32) {
	c.loadRange(c.Segment[SEG_DS], words)
}

// LoadText places instruction words sequentially from the bottom of the
// code segment, stopping at the segment end.
func (c *Core) LoadText(words []uint32) {
	c.loadRange(c.Segment[SEG_CS], words)
}

// LoadExtra places words sequentially from the bottom of the extra
// segment, stopping at the segment end.
func (c *Core) LoadExtra(words []uint32) {
	c.loadRange(c.Segment[SEG_ES], words)
}

func (c *Core) loadRange(seg Segment, words []uint32) {
	addr := seg.Start
	for _, word := range words {
		if addr > seg.End {
			return
		}
		c.Memory.Write(word, addr)
		addr++
	}
}

// traceLog reports a fatal condition through the tracer, if installed,
// and hands the error back for propagation.
func (c *Core) traceLog(err error) error {
	if c.tracer != nil {
		c.tracer.Log(LOG_ERROR, err.Error())
	}

	return err
}

func (c *Core) trace(binary uint32, in Instruction) {
	if c.tracer != nil {
		c.tracer.Trace(binary, in, c.Memory, &c.Register, c.Segment)
	}
}

// Run executes instructions until the sentinel word is fetched. Every
// error raised during fetch, decode, execute or access is fatal.
func (c *Core) Run() (err error) {
	for {
		var binary uint32
		binary, err = c.fetch()
		if err != nil {
			return
		}

		if bitop.TestBitAll(binary) {
			return
		}

		in := Decode(binary)
		if c.Verbose {
			log.Printf("%08x: %v %v", binary, in.Type, in.Code)
		}

		if in.Type == TYPE_J {
			if err = c.jump(in); err != nil {
				return
			}
			c.trace(binary, in)
			continue
		}

		var result uint32
		result, err = c.execute(in)
		if err != nil {
			return
		}

		if err = c.memoryAccess(in, result); err != nil {
			return
		}

		c.trace(binary, in)
	}
}

// fetch reads the next instruction word and advances PC past it.
func (c *Core) fetch() (binary uint32, err error) {
	pc := c.Register.Gp[REG_PC]

	if !c.Segment[SEG_CS].Contains(pc) {
		err = c.traceLog(ErrExceedsCs)
		return
	}

	binary, err = c.Memory.Read(pc)
	if err != nil {
		err = c.traceLog(errors.Join(ErrFetch, err))
		return
	}

	c.Register.Gp[REG_PC] = pc + 1
	return
}

// jump handles the jump-type instructions: PC updates and syscalls.
func (c *Core) jump(in Instruction) (err error) {
	perform := func(condition bool) {
		if condition {
			c.Register.Gp[REG_PC] = in.Imm
		}
	}

	psr := func(flag PsrFlag) bool {
		set, _ := c.Register.Psr(flag)
		return set
	}

	switch in.Code {
	case OP_JMP:
		perform(true)
	case OP_JZ:
		perform(psr(FLAG_Z))
	case OP_JN:
		perform(psr(FLAG_N))
	case OP_JC:
		perform(psr(FLAG_C))
	case OP_JV:
		perform(psr(FLAG_V))
	case OP_JZN:
		perform(psr(FLAG_Z) || psr(FLAG_N))
	case OP_SYS:
		if err = c.Syscall.Invoke(in.Imm, c.Memory, &c.Register); err != nil {
			err = c.traceLog(err)
		}
	default:
		err = c.traceLog(ErrUnknownOpcode)
	}

	return
}

// aluInput assembles the ALU input for a non-jump instruction.
func (c *Core) aluInput(in Instruction) (input AluInput, err error) {
	if in.Type == TYPE_J {
		err = c.traceLog(ErrFallThrough)
		return
	}

	// Binary operations read the second operand from Rn or the
	// immediate depending on format class.
	binary := func(op AluOp) (AluInput, error) {
		switch in.Type {
		case TYPE_R:
			return AluInput{Op: op, A: c.Register.Gp[in.Rm], B: c.Register.Gp[in.Rn]}, nil
		case TYPE_I:
			return AluInput{Op: op, A: c.Register.Gp[in.Rm], B: in.Imm}, nil
		}

		return AluInput{}, c.traceLog(ErrUnknownOpcode)
	}

	switch in.Code {
	case OP_ADD:
		return binary(ALU_OP_ADD)
	case OP_UMUL:
		return binary(ALU_OP_UMUL)
	case OP_UDIV:
		return binary(ALU_OP_UDIV)
	case OP_UMOL:
		return binary(ALU_OP_UMOL)
	case OP_AND:
		return binary(ALU_OP_AND)
	case OP_ORR:
		return binary(ALU_OP_ORR)
	case OP_XOR:
		return binary(ALU_OP_XOR)
	case OP_SHL:
		return binary(ALU_OP_SHL)
	case OP_SHR:
		return binary(ALU_OP_SHR)
	case OP_RTL:
		return binary(ALU_OP_RTL)
	case OP_RTR:
		return binary(ALU_OP_RTR)
	case OP_NOT:
		input = AluInput{Op: ALU_OP_COMP, A: c.Register.Gp[in.Rm]}
	case OP_LDR, OP_STR:
		// The effective address is the source register passed through.
		input = AluInput{Op: ALU_OP_PASS, A: c.Register.Gp[in.Rm]}
	case OP_PUSH:
		// One below SP, via two's-complement add.
		input = AluInput{Op: ALU_OP_ADD, A: c.Register.Gp[REG_SP], B: ^uint32(0)}
	case OP_POP:
		input = AluInput{Op: ALU_OP_ADD, A: c.Register.Gp[REG_SP], B: 1}
	default:
		err = c.traceLog(ErrUnknownOpcode)
	}

	return
}

// execute runs the ALU and mirrors its flag set into the PSR.
func (c *Core) execute(in Instruction) (result uint32, err error) {
	input, err := c.aluInput(in)
	if err != nil {
		return
	}

	out := AluExecute(input)
	c.updatePsr(out.Flags)
	result = out.Result
	return
}

func (c *Core) updatePsr(flags FlagSet) {
	c.Register.ClearPsr()

	for _, flag := range []PsrFlag{FLAG_N, FLAG_Z, FLAG_C, FLAG_V} {
		if flags.Has(flag) {
			c.Register.SetPsr(flag, true)
		}
	}
}

// memoryAccess performs the opcode-specific memory access or register
// writeback with the ALU result.
func (c *Core) memoryAccess(in Instruction, result uint32) (err error) {
	switch in.Code {
	case OP_LDR:
		var value uint32
		value, err = c.Memory.Read(result)
		if err != nil {
			err = c.traceLog(errors.Join(ErrAccess, err))
			return
		}
		c.Register.Gp[in.Rd] = value

	case OP_STR:
		if err = c.Memory.Write(c.Register.Gp[in.Rd], result); err != nil {
			err = c.traceLog(errors.Join(ErrAccess, err))
			return
		}

	case OP_PUSH:
		if !c.Segment[SEG_SS].Contains(result) {
			err = c.traceLog(ErrStackOverflow)
			return
		}
		if err = c.Memory.Write(c.Register.Gp[in.Rd], result); err != nil {
			err = c.traceLog(errors.Join(ErrAccess, err))
			return
		}
		c.Register.Gp[REG_SP] = result

	case OP_POP:
		// Popping an empty stack has no effect.
		if !c.Segment[SEG_SS].Contains(result - 1) {
			return
		}
		var value uint32
		value, err = c.Memory.Read(c.Register.Gp[REG_SP])
		if err != nil {
			err = c.traceLog(errors.Join(ErrAccess, err))
			return
		}
		c.Register.Gp[in.Rd] = value
		c.Register.Gp[REG_SP] = result

	default:
		c.Register.Gp[in.Rd] = result
	}

	return
}
