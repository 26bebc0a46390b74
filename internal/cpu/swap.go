package cpu

// execSwap implements SWP/SWPB: an atomic read-modify-write exchange
// of a word or byte between memory and a register (§4.3.10). The
// loaded value goes through the single-transfer misalignment rotate
// rule.
func (c *CPU) execSwap(i SwapInstruction) {
	addr := c.readReg(i.Rn)
	rm := c.readReg(i.Rm)

	if i.B {
		old := c.bus.Read8(addr)
		c.bus.Write8(addr, uint8(rm))
		c.writeReg(i.Rd, uint32(old))
		return
	}

	old := c.loadWord(addr)
	c.bus.Write32(addr&^3, rm)
	c.writeReg(i.Rd, old)
}
