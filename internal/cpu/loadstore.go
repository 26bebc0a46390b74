package cpu

// transferOffset evaluates a SingleTransferInstruction's offset
// field, which is either a 12-bit immediate or a shifted register
// (the shift carry is discarded — it does not feed the ALU flags).
func (c *CPU) transferOffset(i SingleTransferInstruction) uint32 {
	if !i.I {
		return i.Imm
	}
	rm := c.readReg(i.Rm)
	return applyShift(i.ShiftType, uint32(i.Is), rm, c.regs.GetFlagC(), true).value
}

// execSingleTransfer implements LDR/STR, word or byte, with
// pre/post-index, up/down, and writeback (§4.3.8).
func (c *CPU) execSingleTransfer(i SingleTransferInstruction) {
	offset := c.transferOffset(i)
	base := c.readReg(i.Rn)

	addr := base
	if i.P {
		addr = applyOffset(base, offset, i.U)
	}

	if i.L {
		var value uint32
		if i.B {
			value = uint32(c.bus.Read8(addr))
		} else {
			value = c.loadWord(addr)
		}
		// writeback happens before the load completes architecturally,
		// but is suppressed entirely when rn==rd on a load so the
		// loaded value isn't clobbered by the computed address.
		if !i.P || i.W {
			if !(i.Rn == i.Rd) {
				c.writebackSingle(i, base, offset)
			}
		}
		c.writeReg(i.Rd, value)
		return
	}

	storeVal := c.readReg(i.Rd)
	if i.B {
		c.bus.Write8(addr, uint8(storeVal))
	} else {
		c.bus.Write32(addr&^3, storeVal)
	}
	if !i.P || i.W {
		c.writebackSingle(i, base, offset)
	}
}

func (c *CPU) writebackSingle(i SingleTransferInstruction, base, offset uint32) {
	c.regs.SetReg(i.Rn, applyOffset(base, offset, i.U))
}

func applyOffset(base, offset uint32, up bool) uint32 {
	if up {
		return base + offset
	}
	return base - offset
}

// loadWord implements the misaligned-load rotate rule (§4.3.8): a
// word load from an address not aligned to 4 reads the aligned word
// and rotates it right by (addr&3)*8.
func (c *CPU) loadWord(addr uint32) uint32 {
	aligned := addr &^ 3
	word := c.bus.Read32(aligned)
	rot := (addr & 3) * 8
	if rot == 0 {
		return word
	}
	return (word >> rot) | (word << (32 - rot))
}
