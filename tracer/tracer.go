// Package tracer records the execution of a cpu.Core: leveled log
// messages and one structured record per executed instruction, in a
// CSV-like layout with a heading row above each value row.
package tracer

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/XwanXuanX/Misim/cpu"
)

// Tracer writes trace records to a sink, usually a log file. It
// satisfies the cpu.Tracer interface. A fatal log message closes the
// underlying file before the error propagates through the core.
type Tracer struct {
	out  io.Writer
	file *os.File

	count uint32
}

// New creates a file-backed tracer at path.
func New(path string) (tr *Tracer, err error) {
	file, err := os.Create(path)
	if err != nil {
		return
	}

	tr = &Tracer{out: file, file: file}
	return
}

// NewWriter creates a tracer over an arbitrary sink.
func NewWriter(w io.Writer) *Tracer {
	return &Tracer{out: w}
}

// Close releases the trace file, if any.
func (tr *Tracer) Close() (err error) {
	if tr.file != nil {
		err = tr.file.Close()
		tr.file = nil
		tr.out = nil
	}

	return
}

// Log writes a leveled message. An ERROR message is the last thing the
// trace file sees: the file is closed before returning.
func (tr *Tracer) Log(level cpu.LogLevel, message string) (err error) {
	if tr.out == nil {
		return
	}

	_, err = fmt.Fprintf(tr.out, "%v: %v\n", level, message)

	if level == cpu.LOG_ERROR {
		err = tr.Close()
	}

	return
}

// Trace emits one record for an executed instruction: the raw word, the
// decoded fields, the register file, the PSR flags, and the contents of
// every segment.
func (tr *Tracer) Trace(binary uint32, in cpu.Instruction, mem *cpu.Memory, reg *cpu.Registers, seg cpu.Segments) {
	if tr.out == nil {
		return
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "Instruction #%d, 0x%08x\n", tr.count, binary)
	tr.instructionRows(&sb, in)
	tr.registerRows(&sb, reg)
	tr.segmentRows(&sb, mem, seg)
	sb.WriteByte('\n')

	io.WriteString(tr.out, sb.String())
	tr.count++
}

// pair writes a heading row and its value row.
func pair(sb *strings.Builder, labels, values []string) {
	sb.WriteString(strings.Join(labels, ","))
	sb.WriteByte('\n')
	sb.WriteString(strings.Join(values, ","))
	sb.WriteByte('\n')
}

func (tr *Tracer) instructionRows(sb *strings.Builder, in cpu.Instruction) {
	pair(sb,
		[]string{"OpType", "OpCode", "Rd", "Rm", "Rn", "Imm"},
		[]string{
			in.Type.String(),
			in.Code.String(),
			in.Rd.String(),
			in.Rm.String(),
			in.Rn.String(),
			fmt.Sprintf("%d", in.Imm),
		})
}

func (tr *Tracer) registerRows(sb *strings.Builder, reg *cpu.Registers) {
	labels := make([]string, 0, len(reg.Gp))
	values := make([]string, 0, len(reg.Gp))
	for i := range reg.Gp {
		labels = append(labels, cpu.GpReg(i).String())
		values = append(values, fmt.Sprintf("%d", reg.Gp[i]))
	}
	pair(sb, labels, values)

	labels = labels[:0]
	values = values[:0]
	for _, flag := range []cpu.PsrFlag{cpu.FLAG_N, cpu.FLAG_Z, cpu.FLAG_C, cpu.FLAG_V} {
		set, _ := reg.Psr(flag)
		bit := "0"
		if set {
			bit = "1"
		}
		labels = append(labels, flag.String())
		values = append(values, bit)
	}
	pair(sb, labels, values)
}

func (tr *Tracer) segmentRows(sb *strings.Builder, mem *cpu.Memory, seg cpu.Segments) {
	for kind, rng := range seg.All() {
		values := make([]string, 0, rng.Size())
		for addr := rng.Start; addr <= rng.End; addr++ {
			word, err := mem.Read(addr)
			if err != nil {
				tr.Log(cpu.LOG_WARNING, err.Error())
				return
			}
			values = append(values, fmt.Sprintf("%d", word))
		}
		pair(sb, []string{kind.String()}, values)
	}
}
