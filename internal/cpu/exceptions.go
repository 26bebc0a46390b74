package cpu

// execSWI implements the software interrupt entry sequence (§4.3.10):
// save CPSR into SVC's SPSR, set r14_svc to the return address,
// switch to supervisor mode with IRQ disabled and THUMB cleared, and
// vector to 0x00000008.
func (c *CPU) execSWI(i SWIInstruction) {
	returnPC := c.pc
	savedCPSR := c.regs.GetCPSR()

	c.regs.SetMode(ModeSVC)
	c.regs.SetSPSR(savedCPSR)
	c.regs.SetReg(14, returnPC)
	c.regs.SetIRQDisabled(true)
	c.regs.SetThumbState(false)
	c.writePC(swiVector)
}
