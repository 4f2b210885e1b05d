// Package cpu implements the Misim processor model.
//
// The processor is a simple, non-pipelined machine over 32-bit words: a
// bounds-checked memory, a 16-slot register file with a 4-flag program
// status register, a pure ALU, a bit-field instruction decoder, and a
// segmented address map (code, data, stack, extra). The control unit in
// Core drives fetch, decode and execute until the all-ones sentinel word
// is fetched from the code segment.
//
// The package also carries the program tooling: a Program container for
// assembled words, a parser for the textual .bin interchange format, and
// a small assembler with labels, equates and compile-time expression
// evaluation.
package cpu
