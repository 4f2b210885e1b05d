package main

import (
	"flag"
	"log"
	"os"

	"github.com/XwanXuanX/Misim/cpu"
	"github.com/XwanXuanX/Misim/emulator"
	"github.com/XwanXuanX/Misim/tracer"
)

func main() {
	var compile string
	var output string
	var trace string
	var verbose bool

	flag.StringVar(&compile, "c", "", ".asm file to assemble")
	flag.StringVar(&output, "o", "", "Write the assembled .bin, do not execute")
	flag.StringVar(&trace, "t", "", "Trace log file")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	var prog *cpu.Program
	var err error

	switch {
	case len(compile) != 0:
		if flag.NArg() != 0 {
			log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
		}

		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: verbose}
		prog, err = asm.Parse(inf, emulator.MEMORY_SIZE)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}

		if len(output) != 0 {
			if err = os.WriteFile(output, prog.Binary(), 0o644); err != nil {
				log.Fatalf("%v: %v", output, err)
			}
			return
		}

	case flag.NArg() == 1:
		prog, err = cpu.LoadBin(flag.Arg(0), emulator.MEMORY_SIZE)
		if err != nil {
			log.Fatalf("%v: %v", flag.Arg(0), err)
		}

	default:
		log.Fatalf("usage: %v [-v] [-t trace.log] [-c prog.asm [-o prog.bin] | prog.bin]", os.Args[0])
	}

	var sink cpu.Tracer
	if len(trace) != 0 {
		tr, err := tracer.New(trace)
		if err != nil {
			log.Fatalf("%v: %v", trace, err)
		}
		defer tr.Close()
		sink = tr
	}

	emu, err := emulator.NewEmulator(emulator.MEMORY_SIZE, prog, sink)
	if err != nil {
		log.Fatal(err)
	}
	emu.Verbose = verbose

	if err = emu.Run(); err != nil {
		log.Fatal(err)
	}
}
