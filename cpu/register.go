package cpu

import (
	"github.com/XwanXuanX/Misim/bitop"
)

// GpReg names a slot of the general-purpose register file.
type GpReg uint8

//go:generate go tool stringer -linecomment -type=GpReg
const (
	REG_R0  = GpReg(0)  // R0
	REG_R1  = GpReg(1)  // R1
	REG_R2  = GpReg(2)  // R2
	REG_R3  = GpReg(3)  // R3
	REG_R4  = GpReg(4)  // R4
	REG_R5  = GpReg(5)  // R5
	REG_R6  = GpReg(6)  // R6
	REG_R7  = GpReg(7)  // R7
	REG_R8  = GpReg(8)  // R8
	REG_R9  = GpReg(9)  // R9
	REG_R10 = GpReg(10) // R10
	REG_R11 = GpReg(11) // R11
	REG_R12 = GpReg(12) // R12
	REG_SP  = GpReg(13) // SP
	REG_LR  = GpReg(14) // LR
	REG_PC  = GpReg(15) // PC
)

// PsrFlag names a program status register flag bit.
type PsrFlag uint8

//go:generate go tool stringer -linecomment -type=PsrFlag
const (
	FLAG_N = PsrFlag(0) // N
	FLAG_Z = PsrFlag(1) // Z
	FLAG_C = PsrFlag(2) // C
	FLAG_V = PsrFlag(3) // V
)

// Registers is the register file: sixteen general-purpose words plus the
// four-flag program status register. The general-purpose file is exposed
// directly; writes land through the array.
type Registers struct {
	Gp [16]uint32

	psr uint8
}

// Psr reads a program status flag.
func (r *Registers) Psr(flag PsrFlag) (set bool, err error) {
	if flag > FLAG_V {
		err = ErrPsrFlag
		return
	}

	set, _ = bitop.TestBit(uint32(r.psr), uint(flag))
	return
}

// SetPsr sets or clears a program status flag.
func (r *Registers) SetPsr(flag PsrFlag, value bool) (err error) {
	if flag > FLAG_V {
		err = ErrPsrFlag
		return
	}

	var psr uint32
	if value {
		psr, _ = bitop.SetBit(uint32(r.psr), uint(flag))
	} else {
		psr, _ = bitop.ResetBit(uint32(r.psr), uint(flag))
	}
	r.psr = uint8(psr)

	return
}

// PsrValue returns the raw flag byte.
func (r *Registers) PsrValue() uint8 {
	return r.psr
}

// ClearPsr resets all four flags.
func (r *Registers) ClearPsr() {
	r.psr = 0
}
