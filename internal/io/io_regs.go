// Package io holds the flat MMIO register file (§4.1). Width-specific
// read/write and IF's acknowledge-on-write rule live here; the
// PPU owns the meaning of the display registers that alias into this
// same backing store, reading/writing it directly.
package io

const (
	RegDISPCNT  = 0x000
	RegDISPSTAT = 0x004
	RegVCOUNT   = 0x006
	RegBG0CNT   = 0x008
	RegBG1CNT   = 0x00A
	RegBG2CNT   = 0x00C
	RegBG3CNT   = 0x00E
	RegBG0HOFS  = 0x010
	RegBG0VOFS  = 0x012
	RegBG1HOFS  = 0x014
	RegBG1VOFS  = 0x016
	RegBG2HOFS  = 0x018
	RegBG2VOFS  = 0x01A
	RegBG3HOFS  = 0x01C
	RegBG3VOFS  = 0x01E
	RegKEYINPUT = 0x130
	RegIE       = 0x200
	RegIF       = 0x202
	RegIME      = 0x208
)

type IORegs struct {
	regs [0x400]byte
}

func NewIORegs() *IORegs { return &IORegs{} }

func (r *IORegs) GetReg(addr uint32) uint8  { return r.regs[addr&0x3FF] }
func (r *IORegs) SetReg(addr uint32, v uint8) { r.regs[addr&0x3FF] = v }

func (r *IORegs) Read16(addr uint32) uint16 {
	addr &^= 1
	return uint16(r.GetReg(addr)) | uint16(r.GetReg(addr+1))<<8
}

func (r *IORegs) Read32(addr uint32) uint32 {
	addr &^= 3
	return uint32(r.Read16(addr)) | uint32(r.Read16(addr+2))<<16
}

// Write8 stores a byte literally, except for IF's two bytes, which
// acknowledge: the bits written are cleared in the stored value, not
// set (§4.1).
func (r *IORegs) Write8(addr uint32, v uint8) {
	if addr == RegIF || addr == RegIF+1 {
		r.regs[addr&0x3FF] &^= v
		return
	}
	r.regs[addr&0x3FF] = v
}

func (r *IORegs) Write16(addr uint32, v uint16) {
	addr &^= 1
	r.Write8(addr, uint8(v))
	r.Write8(addr+1, uint8(v>>8))
}

// Write32 splits across the two halves, applying IF's
// acknowledge-on-write semantic only to the half(s) that land on it —
// a 32-bit write spanning IE/IF acknowledges on the upper (IF) half
// while storing IE literally (§4.1).
func (r *IORegs) Write32(addr uint32, v uint32) {
	addr &^= 3
	r.Write16(addr, uint16(v))
	r.Write16(addr+2, uint16(v>>16))
}

// RaiseIF ORs the given bits into IF, the form the PPU uses to post an
// interrupt request — never an acknowledge.
func (r *IORegs) RaiseIF(bits uint16) {
	cur := r.Read16(RegIF)
	cur |= bits
	r.regs[RegIF] = uint8(cur)
	r.regs[RegIF+1] = uint8(cur >> 8)
}

// PendingInterrupt reports IME bit 0, IE&IF != 0 (§4.1's
// pending_interrupt), independent of the CPU's own IRQ-disable flag.
func (r *IORegs) PendingInterrupt() bool {
	ime := r.Read16(RegIME)&1 != 0
	ie := r.Read16(RegIE)
	iflags := r.Read16(RegIF)
	return ime && ie&iflags != 0
}
