package cpu

const statusFlagsMask = 0xFF000000
const statusCtlMask = 0x000000FF

// execMRS copies CPSR or the current mode's SPSR into a register
// (§4.3.10).
func (c *CPU) execMRS(i MRSInstruction) {
	if i.FromSPSR {
		c.writeReg(i.Rd, c.regs.GetSPSR())
	} else {
		c.writeReg(i.Rd, c.regs.GetCPSR())
	}
}

// execMSR writes the flag byte and/or control byte of CPSR or SPSR
// (§4.3.10). A control-byte write while in USER mode is ignored;
// otherwise, if it changes the mode field, the register bank switches
// immediately (derive-on-access, so nothing else has to happen here).
func (c *CPU) execMSR(i MSRInstruction) {
	var operand uint32
	if i.I {
		operand = i.Imm
	} else {
		operand = c.readReg(i.Rm)
	}

	if i.ToSPSR {
		cur := c.regs.GetSPSR()
		cur = mergeStatus(cur, operand, i.WriteFlags, i.WriteCtl)
		c.regs.SetSPSR(cur)
		return
	}

	privileged := c.regs.GetMode() != ModeUSR
	writeCtl := i.WriteCtl && privileged

	cur := c.regs.GetCPSR()
	cur = mergeStatus(cur, operand, i.WriteFlags, writeCtl)
	c.regs.SetCPSR(cur)
}

func mergeStatus(cur, operand uint32, writeFlags, writeCtl bool) uint32 {
	if writeFlags {
		cur = (cur &^ statusFlagsMask) | (operand & statusFlagsMask)
	}
	if writeCtl {
		cur = (cur &^ statusCtlMask) | (operand & statusCtlMask)
	}
	return cur
}
