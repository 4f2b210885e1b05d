package cpu

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// binSection is a parser state of the .bin format.
type binSection int

const (
	binNone binSection = iota
	binDs              // DS range heading
	binEs              // ES range heading
	binTs              // CS range heading
	binDd              // data payload
	binTd              // text payload
)

var binSections = map[string]binSection{
	"ds": binDs,
	"es": binEs,
	"ts": binTs,
	"dd": binDd,
	"td": binTd,
}

// LoadBin opens a .bin file and parses it against a memory of memSize
// words.
func LoadBin(path string, memSize uint32) (prog *Program, err error) {
	if filepath.Ext(path) != ".bin" {
		err = ErrBinPath
		return
	}

	file, err := os.Open(path)
	if err != nil {
		return
	}
	defer file.Close()

	return ParseBin(file, memSize)
}

// ParseBin reads the textual .bin format: heading lines (ds, es, ts, dd,
// td) select a section; ds/es/ts bodies carry "start end"; dd/td bodies
// carry one word per line. Blank lines and lines starting with ';' are
// skipped. The stack segment is computed to span from one past the
// highest declared segment to the top of memory.
func ParseBin(r io.Reader, memSize uint32) (prog *Program, err error) {
	prog = &Program{
		Segments: Segments{},
	}

	section := binNone
	lineno := 0

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())

		if len(line) == 0 || strings.HasPrefix(line, ";") {
			continue
		}

		if state, ok := binSections[line]; ok {
			section = state
			continue
		}

		if err = prog.parseBinLine(section, line); err != nil {
			prog = nil
			err = &ErrLine{LineNo: lineno, Err: err}
			return
		}
	}
	if err = scanner.Err(); err != nil {
		prog = nil
		return
	}

	prog.appendStackSegment(memSize)
	return
}

func (prog *Program) parseBinLine(section binSection, line string) (err error) {
	switch section {
	case binDs:
		return prog.parseBinRange(SEG_DS, line)
	case binEs:
		return prog.parseBinRange(SEG_ES, line)
	case binTs:
		return prog.parseBinRange(SEG_CS, line)
	case binDd:
		var word uint32
		if word, err = parseBinWord(line); err == nil {
			prog.Data = append(prog.Data, word)
		}
		return
	case binTd:
		var word uint32
		if word, err = parseBinWord(line); err == nil {
			prog.Text = append(prog.Text, word)
		}
		return
	}

	return ErrBinSection
}

func (prog *Program) parseBinRange(kind SegReg, line string) (err error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return ErrBinNumeric
	}

	start, err := parseBinWord(fields[0])
	if err != nil {
		return
	}
	end, err := parseBinWord(fields[1])
	if err != nil {
		return
	}

	if start > end {
		return ErrBinRange
	}

	prog.Segments[kind] = Segment{Start: start, End: end}
	return
}

// parseBinWord accepts the decimal-only body syntax of the format.
func parseBinWord(word string) (value uint32, err error) {
	v64, err := strconv.ParseUint(word, 10, 32)
	if err != nil {
		err = ErrBinNumeric
		return
	}

	value = uint32(v64)
	return
}

// appendStackSegment grants the stack everything above the highest
// declared segment.
func (prog *Program) appendStackSegment(memSize uint32) {
	var highest uint32
	for _, rng := range prog.Segments {
		if rng.End > highest {
			highest = rng.End
		}
	}

	prog.Segments[SEG_SS] = Segment{Start: highest + 1, End: memSize - 1}
}
