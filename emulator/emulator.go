package emulator

import (
	"fmt"
	"iter"
	"maps"

	"github.com/XwanXuanX/Misim/cpu"
	"github.com/XwanXuanX/Misim/internal"
)

const (
	MEMORY_SIZE = 300 // Reference machine memory, in words.
)

var _emulator_defines = map[string]string{
	"MEMORY_SIZE": fmt.Sprintf("%v", MEMORY_SIZE),
}

// Emulator owns a core built from a program image, together with the
// optional trace sink, and runs it to completion.
type Emulator struct {
	Verbose bool // If set, enables verbose logging.

	Core    *cpu.Core    // The control unit and machine state.
	Program *cpu.Program // The loaded program image.
}

// NewEmulator builds a core from the program's segment map and places
// the program payloads into memory. A nil tracer suppresses tracing.
func NewEmulator(memSize uint32, prog *cpu.Program, tracer cpu.Tracer) (emu *Emulator, err error) {
	core, err := cpu.NewCore(memSize, prog.Segments, tracer)
	if err != nil {
		err = &ErrProgram{Err: err}
		return
	}

	core.LoadData(prog.Data)
	core.LoadText(prog.Text)
	core.LoadExtra(prog.Extra)

	emu = &Emulator{
		Core:    core,
		Program: prog,
	}

	return
}

// Defines returns an iterator over all of the assembler predefines.
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Core.Defines(),
		emu.Core.Syscall.Defines(),
	)
}

// Run executes the program until the sentinel instruction.
func (emu *Emulator) Run() (err error) {
	emu.Core.Verbose = emu.Verbose

	if err = emu.Core.Run(); err != nil {
		err = &ErrProgram{Err: err}
	}

	return
}
