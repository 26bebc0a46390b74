package cpu

// execBranch implements B/BL (§4.3.9): a 24-bit signed word offset
// added to the pipeline-ahead PC (r15 = PC+8 for ARM).
func (c *CPU) execBranch(i BranchInstruction) {
	target := uint32(int32(c.readReg(15)) + i.Offset)
	if i.Link {
		// readReg(15) gives PC+8 of the branch instruction; PC-4 of
		// that is the address of the instruction right after it,
		// which is c.pc itself at this point in the fetch cycle.
		c.regs.SetReg(14, c.pc)
	}
	c.writePC(target)
}

// execBranchExchange implements BX: jump to rn, switching to THUMB
// state iff its bit 0 is set (§4.3.9).
func (c *CPU) execBranchExchange(i BranchExchangeInstruction) {
	target := c.readReg(i.Rn)
	c.regs.SetThumbState(target&1 != 0)
	c.writePC(target)
}
