package cpu

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"maps"
	"os"
)

// Syscall numbers.
const (
	SYS_WELCOME     = uint32(0)
	SYS_CONSOLE_OUT = uint32(1)
	SYS_CONSOLE_IN  = uint32(2)
)

var _syscall_defines = map[string]string{
	"SYS_WELCOME":     fmt.Sprintf("%v", SYS_WELCOME),
	"SYS_CONSOLE_OUT": fmt.Sprintf("%v", SYS_CONSOLE_OUT),
	"SYS_CONSOLE_IN":  fmt.Sprintf("%v", SYS_CONSOLE_IN),
}

const welcomeBanner = "Welcome stranger!\n\n" +
	"This is the CPU speaking - I'm glad that you found this easter egg left by my creator.\n" +
	"If you see this message, it means that you must be browsing through the code or experimenting with me.\n" +
	"I hope you have the same enthusiasm as my creator does - because enthusiasm is the " +
	"most important thing in the world.\n\n" +
	"Well, wish you a good day. Bye, adios!\n"

// SyscallFn is a host routine invoked by SYSCALL with direct handles to
// the machine state.
type SyscallFn func(mem *Memory, reg *Registers) error

// Syscalls is the numbered table of host routines. Input and Output are
// the console streams; they default to the process stdin and stdout.
type Syscalls struct {
	Input  io.Reader
	Output io.Writer

	table map[uint32]SyscallFn
}

// NewSyscalls builds the reference table: welcome, console_out,
// console_in.
func NewSyscalls() (sc *Syscalls) {
	sc = &Syscalls{
		Input:  os.Stdin,
		Output: os.Stdout,
	}

	sc.table = map[uint32]SyscallFn{
		SYS_WELCOME:     sc.welcome,
		SYS_CONSOLE_OUT: sc.consoleOut,
		SYS_CONSOLE_IN:  sc.consoleIn,
	}

	return
}

// Defines returns the syscall numbers as assembler predefines.
func (sc *Syscalls) Defines() iter.Seq2[string, string] {
	return maps.All(_syscall_defines)
}

// Invoke looks up number and runs the routine.
func (sc *Syscalls) Invoke(number uint32, mem *Memory, reg *Registers) (err error) {
	routine, ok := sc.table[number]
	if !ok {
		err = ErrUnknownSyscall
		return
	}

	return routine(mem, reg)
}

func (sc *Syscalls) welcome(mem *Memory, reg *Registers) (err error) {
	_, err = io.WriteString(sc.Output, welcomeBanner)
	if err != nil {
		err = errors.Join(ErrHostIo, err)
	}

	return
}

// consoleOut writes R1 bytes taken from memory[R0 .. R0+R1) to the
// console, one byte per word.
func (sc *Syscalls) consoleOut(mem *Memory, reg *Registers) (err error) {
	start := reg.Gp[REG_R0]
	length := reg.Gp[REG_R1]

	text := make([]byte, 0, length)
	for i := start; i < start+length; i++ {
		var word uint32
		word, err = mem.Read(i)
		if err != nil {
			err = errors.Join(ErrHostIo, err)
			return
		}
		text = append(text, byte(word))
	}

	_, err = sc.Output.Write(text)
	if err != nil {
		err = errors.Join(ErrHostIo, err)
	}

	return
}

// consoleIn reads one newline-terminated line from the console and
// stores its bytes to memory starting at R0. A line longer than R1
// bytes is a host error.
func (sc *Syscalls) consoleIn(mem *Memory, reg *Registers) (err error) {
	line, err := sc.readLine()
	if err != nil {
		err = errors.Join(ErrHostIo, err)
		return
	}

	if uint32(len(line)) > reg.Gp[REG_R1] {
		err = errors.Join(ErrHostIo, errors.New(f("input exceeds maximum length")))
		return
	}

	addr := reg.Gp[REG_R0]
	for _, ch := range line {
		if err = mem.Write(uint32(ch), addr); err != nil {
			err = errors.Join(ErrHostIo, err)
			return
		}
		addr++
	}

	return
}

// readLine consumes input up to and including a newline. Reading is
// byte-wise so no look-ahead is buffered between syscalls.
func (sc *Syscalls) readLine() (line []byte, err error) {
	var one [1]byte
	for {
		_, err = sc.Input.Read(one[:])
		if err == io.EOF && len(line) > 0 {
			err = nil
			return
		}
		if err != nil {
			return
		}
		if one[0] == '\n' {
			return
		}
		line = append(line, one[0])
	}
}
