package cpu

// execMultiply implements MUL/MLA: 32x32->32 with optional accumulate
// (§4.3.10). Rd and Rn are swapped relative to data-processing's
// naming in the encoding (Rd holds the destination, Rn the
// accumulate-operand register) per the ARM encoding of this class.
func (c *CPU) execMultiply(i MultiplyInstruction) {
	rm := c.regs.GetReg(i.Rm)
	rs := c.regs.GetReg(i.Rs)
	result := rm * rs
	if i.A {
		result += c.regs.GetReg(i.Rn)
	}
	c.regs.SetReg(i.Rd, result)
	if i.S {
		c.regs.SetFlagN(result&(1<<31) != 0)
		c.regs.SetFlagZ(result == 0)
	}
}

// execMultiplyLong implements UMULL/UMLAL/SMULL/SMLAL: 32x32->64 with
// optional accumulate, signed or unsigned (§4.3.10).
func (c *CPU) execMultiplyLong(i MultiplyLongInstruction) {
	rm := c.regs.GetReg(i.Rm)
	rs := c.regs.GetReg(i.Rs)

	var result uint64
	if i.Signed {
		result = uint64(int64(int32(rm)) * int64(int32(rs)))
	} else {
		result = uint64(rm) * uint64(rs)
	}

	if i.A {
		hi := uint64(c.regs.GetReg(i.RdHi))
		lo := uint64(c.regs.GetReg(i.RdLo))
		result += (hi << 32) | lo
	}

	resHi := uint32(result >> 32)
	resLo := uint32(result)
	c.regs.SetReg(i.RdHi, resHi)
	c.regs.SetReg(i.RdLo, resLo)

	if i.S {
		c.regs.SetFlagN(resHi&(1<<31) != 0)
		c.regs.SetFlagZ(result == 0)
	}
}
