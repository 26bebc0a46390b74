package cpu

// execHalfwordTransfer implements the four halfword/signed-byte
// sub-opcodes (§4.3.8): store halfword, load signed byte, load
// halfword, load signed halfword.
func (c *CPU) execHalfwordTransfer(i HalfwordTransferInstruction) {
	var offset uint32
	if i.I {
		offset = uint32(i.ImmOffset)
	} else {
		offset = c.readReg(i.Rm)
	}
	base := c.readReg(i.Rn)

	addr := base
	if i.P {
		addr = applyOffset(base, offset, i.U)
	}

	if i.L {
		var value uint32
		switch {
		case i.Sign && i.Half:
			value = c.loadSignedHalfword(addr)
		case i.Sign && !i.Half:
			value = uint32(int32(int8(c.bus.Read8(addr))))
		case !i.Sign && i.Half:
			value = uint32(c.loadHalfword(addr))
		default:
			// S=0,H=0 is the SWP encoding space; not reached via this class.
			value = uint32(c.loadHalfword(addr))
		}
		if !(i.Rn == i.Rd) {
			c.halfwordWriteback(i, base, offset)
		}
		c.writeReg(i.Rd, value)
		return
	}

	c.bus.Write16(addr&^1, uint16(c.readReg(i.Rd)))
	c.halfwordWriteback(i, base, offset)
}

func (c *CPU) halfwordWriteback(i HalfwordTransferInstruction, base, offset uint32) {
	if !i.P || i.W {
		c.regs.SetReg(i.Rn, applyOffset(base, offset, i.U))
	}
}

// loadHalfword implements the misaligned-load rule: an odd address
// reads the containing aligned halfword... in practice GBA halfword
// addresses used here are already even from the bus's perspective, so
// this rotates by 8 only when the low bit is set.
func (c *CPU) loadHalfword(addr uint32) uint16 {
	aligned := addr &^ 1
	h := c.bus.Read16(aligned)
	if addr&1 != 0 {
		return (h >> 8) | (h << 8)
	}
	return h
}

// loadSignedHalfword degrades to a signed-byte load at the misaligned
// address when addr is odd (§4.3.8).
func (c *CPU) loadSignedHalfword(addr uint32) uint32 {
	if addr&1 != 0 {
		return uint32(int32(int8(c.bus.Read8(addr))))
	}
	return uint32(int32(int16(c.bus.Read16(addr))))
}
