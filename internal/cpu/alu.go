package cpu

// addWithCarry implements the ARM ADC/SBC/ADD/SUB carry-and-overflow
// rule common to every arithmetic data-processing opcode: result,
// carry-out, and signed-overflow are all derived from one 33-bit-wide
// computation rather than computed separately per opcode, which is
// where the teacher's hardcoded carry-in of 0 diverged from hardware.
func addWithCarry(a, b uint32, carryIn bool) (result uint32, carryOut, overflow bool) {
	var c uint64
	if carryIn {
		c = 1
	}
	wide := uint64(a) + uint64(b) + c
	result = uint32(wide)
	carryOut = wide > 0xFFFFFFFF
	signA, signB, signR := a&(1<<31) != 0, b&(1<<31) != 0, result&(1<<31) != 0
	overflow = signA == signB && signR != signA
	return
}

// operand2 evaluates a DataProcessingInstruction's second operand
// through the barrel shifter, returning the value and the carry it
// produces (relevant only to S=1 logical opcodes).
func (c *CPU) operand2(i DataProcessingInstruction) shiftResult {
	if i.I {
		return shiftResult{
			value: rorImmediate(uint32(i.Nn), uint32(i.Is)*2),
			carry: c.regs.GetFlagC(),
		}
	}
	var amount uint32
	if i.R {
		amount = c.readReg(i.Rs) & 0xFF
	} else {
		amount = uint32(i.Is)
	}
	rm := c.readRegShifted(i.Rm, i.R)
	return applyShift(i.ShiftType, amount, rm, c.regs.GetFlagC(), !i.R)
}

// execDataProcessing runs one of the sixteen ALU opcodes and writes
// flags/Rd per the S bit, per spec.md §4.3.7.
func (c *CPU) execDataProcessing(i DataProcessingInstruction) {
	op2 := c.operand2(i)
	rn := c.readRegShifted(i.Rn, i.R && !i.I)

	var result uint32
	var carryOut, overflow bool
	carryOutValid := true

	switch i.Opcode {
	case OpAND, OpTST:
		result = rn & op2.value
		carryOut = op2.carry
	case OpEOR, OpTEQ:
		result = rn ^ op2.value
		carryOut = op2.carry
	case OpORR:
		result = rn | op2.value
		carryOut = op2.carry
	case OpMOV:
		result = op2.value
		carryOut = op2.carry
	case OpBIC:
		result = rn &^ op2.value
		carryOut = op2.carry
	case OpMVN:
		result = ^op2.value
		carryOut = op2.carry
	case OpADD, OpCMN:
		result, carryOut, overflow = addWithCarry(rn, op2.value, false)
	case OpADC:
		result, carryOut, overflow = addWithCarry(rn, op2.value, c.regs.GetFlagC())
	case OpSUB, OpCMP:
		result, carryOut, overflow = addWithCarry(rn, ^op2.value, true)
	case OpSBC:
		result, carryOut, overflow = addWithCarry(rn, ^op2.value, c.regs.GetFlagC())
	case OpRSB:
		result, carryOut, overflow = addWithCarry(op2.value, ^rn, true)
	case OpRSC:
		result, carryOut, overflow = addWithCarry(op2.value, ^rn, c.regs.GetFlagC())
	default:
		carryOutValid = false
	}

	if !i.Opcode.isCompareOp() {
		if i.Rd == 15 {
			c.writePC(result)
			if i.S {
				// Return-from-exception form: restore CPSR from the
				// current mode's SPSR rather than setting flags
				// individually.
				c.regs.SetCPSR(c.regs.GetSPSR())
			}
			return
		}
		c.writeReg(i.Rd, result)
	}

	if i.S {
		c.regs.SetFlagN(result&(1<<31) != 0)
		c.regs.SetFlagZ(result == 0)
		if carryOutValid {
			c.regs.SetFlagC(carryOut)
		}
		if !i.Opcode.isLogical() {
			c.regs.SetFlagV(overflow)
		}
	}
}
