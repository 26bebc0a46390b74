package cpu

import "math/bits"

// execBlockTransfer implements LDM/STM (§4.3.8), including the
// empty-list edge case and the base-in-list storage rule.
func (c *CPU) execBlockTransfer(i BlockTransferInstruction) {
	base := c.regs.GetReg(i.Rn)
	list := i.RegisterList

	if list == 0 {
		// Documented edge case: r15 alone is transferred and the base
		// moves by +-0x40 as if a 16-register list were present.
		addr := blockStartAddr(base, 16, i.P, i.U)
		if i.L {
			c.writeReg(15, c.loadWord(addr))
		} else {
			c.bus.Write32(addr&^3, c.pc+8)
		}
		c.regs.SetReg(i.Rn, blockWriteback(base, 16, i.U))
		return
	}

	count := bits.OnesCount16(list)
	startAddr := blockStartAddr(base, count, i.P, i.U)

	// USER-bank transfer: S set, and (not a load-with-r15, which uses
	// return-from-exception semantics instead).
	userBank := i.S && !(i.L && list&(1<<15) != 0)

	regs := registersAscending(list, i.U)

	addr := startAddr
	lowestInList := lowestSetBit(list)
	// The base register's writeback value is computed up front: on
	// STM, if Rn is in the list but not its lowest register, hardware
	// has already updated the base by the time that register's store
	// reaches the bus, so it stores the *written-back* value rather
	// than the value it held when the instruction started (§4.3.8).
	newBase := blockWriteback(base, count, i.U)

	for _, n := range regs {
		if i.L {
			value := c.loadWord(addr)
			if n == 15 {
				c.writePC(value)
				if i.S {
					c.regs.SetCPSR(c.regs.GetSPSR())
				}
			} else if userBank {
				c.regs.SetRegMode(n, ModeUSR, value)
			} else {
				c.regs.SetReg(n, value)
			}
		} else {
			var value uint32
			if n == 15 {
				value = c.pc + 8
			} else if userBank {
				value = c.regs.GetRegMode(n, ModeUSR)
			} else {
				value = c.regs.GetReg(n)
			}
			if n == i.Rn {
				if n == lowestInList {
					value = base // original value, since this reg is lowest in the list
				} else {
					value = newBase
				}
			}
			c.bus.Write32(addr&^3, value)
		}
		addr += 4
	}

	if i.W && !(i.L && list&(1<<i.Rn) != 0) {
		c.regs.SetReg(i.Rn, newBase)
	}
}

// blockStartAddr computes the lowest address touched, per the "always
// ascending in memory" rule: P/U select which end of the block the
// base sits at.
func blockStartAddr(base uint32, count int, pre, up bool) uint32 {
	span := uint32(count) * 4
	switch {
	case up && pre:
		return base + 4
	case up && !pre:
		return base
	case !up && pre:
		return base - span
	default: // !up && !pre
		return base - span + 4
	}
}

func blockWriteback(base uint32, count int, up bool) uint32 {
	span := uint32(count) * 4
	if up {
		return base + span
	}
	return base - span
}

func lowestSetBit(list uint16) uint8 {
	for n := uint8(0); n < 16; n++ {
		if list&(1<<n) != 0 {
			return n
		}
	}
	return 0
}

// registersAscending returns the register numbers in the list always
// in ascending order: memory order is always ascending (§4.3.8), the
// up/down bit only selects which end of the computed range the block
// occupies, not the iteration order.
func registersAscending(list uint16, up bool) []uint8 {
	var regs []uint8
	for n := uint8(0); n < 16; n++ {
		if list&(1<<n) != 0 {
			regs = append(regs, n)
		}
	}
	return regs
}
