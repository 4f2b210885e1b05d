package cpu

import (
	"fmt"
	"strings"
)

// Program is a machine image ready to be loaded: the data payload, the
// instruction payload, an optional extra-segment payload, and the
// segment map they were assembled against.
type Program struct {
	Data  []uint32
	Text  []uint32
	Extra []uint32

	Segments Segments
}

// Binary renders the program in the textual .bin interchange format:
// heading lines select a section, numeric lines carry the content. The
// format has no extra-segment payload section, so Extra is not emitted;
// see Assembler for the in-memory path that preserves it.
func (prog *Program) Binary() []byte {
	var sb strings.Builder

	section := func(heading string, rng Segment) {
		fmt.Fprintf(&sb, "%s\n%d %d\n", heading, rng.Start, rng.End)
	}
	payload := func(heading string, words []uint32) {
		fmt.Fprintf(&sb, "%s\n", heading)
		for _, word := range words {
			fmt.Fprintf(&sb, "%d\n", word)
		}
	}

	section("ds", prog.Segments[SEG_DS])
	section("es", prog.Segments[SEG_ES])
	section("ts", prog.Segments[SEG_CS])
	payload("dd", prog.Data)
	payload("td", prog.Text)

	return []byte(sb.String())
}
