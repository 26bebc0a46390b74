package cpu

import "GoBA/util/convert"

// executeThumbInstr decodes and executes one 16-bit THUMB instruction.
// THUMB has no condition field (conditional branch excepted, which
// carries its own 4-bit condition) and always executes unconditionally
// otherwise.
func (c *CPU) executeThumbInstr(instr uint16) {
	form := thumbDecodeTable[instr>>6]
	switch form {
	case ThumbMoveShifted:
		c.thumbMoveShifted(instr)
	case ThumbAddSubtract:
		c.thumbAddSubtract(instr)
	case ThumbImmediateOp:
		c.thumbImmediateOp(instr)
	case ThumbALUOp:
		c.thumbALUOp(instr)
	case ThumbHiRegBX:
		c.thumbHiRegBX(instr)
	case ThumbPCRelLoad:
		c.thumbPCRelLoad(instr)
	case ThumbLoadStoreReg:
		c.thumbLoadStoreReg(instr)
	case ThumbLoadStoreSignExt:
		c.thumbLoadStoreSignExt(instr)
	case ThumbLoadStoreImm:
		c.thumbLoadStoreImm(instr)
	case ThumbLoadStoreHalf:
		c.thumbLoadStoreHalf(instr)
	case ThumbSPRelLoadStore:
		c.thumbSPRelLoadStore(instr)
	case ThumbLoadAddress:
		c.thumbLoadAddress(instr)
	case ThumbAddOffsetSP:
		c.thumbAddOffsetSP(instr)
	case ThumbPushPop:
		c.thumbPushPop(instr)
	case ThumbMultipleLoadStore:
		c.thumbMultipleLoadStore(instr)
	case ThumbCondBranch:
		c.thumbCondBranch(instr)
	case ThumbSWI:
		c.execSWI(SWIInstruction{Comment: uint32(instr & 0xFF)})
	case ThumbUncondBranch:
		c.thumbUncondBranch(instr)
	case ThumbLongBranchLink:
		c.thumbLongBranchLink(instr)
	default:
		c.raiseFault("undefined THUMB instruction")
	}
}

// --- Format 1: move shifted register ---

func (c *CPU) thumbMoveShifted(instr uint16) {
	op := (instr >> 11) & 0x3
	offset := uint32((instr >> 6) & 0x1F)
	rs := uint8((instr >> 3) & 0x7)
	rd := uint8(instr & 0x7)

	value := c.regs.GetReg(rs)
	var res shiftResult
	switch op {
	case 0:
		res = applyShift(ShiftLSL, offset, value, c.regs.GetFlagC(), true)
	case 1:
		res = applyShift(ShiftLSR, offset, value, c.regs.GetFlagC(), true)
	case 2:
		res = applyShift(ShiftASR, offset, value, c.regs.GetFlagC(), true)
	}
	c.regs.SetReg(rd, res.value)
	c.regs.SetFlagN(res.value&(1<<31) != 0)
	c.regs.SetFlagZ(res.value == 0)
	c.regs.SetFlagC(res.carry)
}

// --- Format 2: add/subtract ---

func (c *CPU) thumbAddSubtract(instr uint16) {
	immFlag := instr&(1<<10) != 0
	sub := instr&(1<<9) != 0
	rnOrImm := uint32((instr >> 6) & 0x7)
	rs := uint8((instr >> 3) & 0x7)
	rd := uint8(instr & 0x7)

	var operand uint32
	if immFlag {
		operand = rnOrImm
	} else {
		operand = c.regs.GetReg(uint8(rnOrImm))
	}

	rsVal := c.regs.GetReg(rs)
	var result uint32
	var carry, overflow bool
	if sub {
		result, carry, overflow = addWithCarry(rsVal, ^operand, true)
	} else {
		result, carry, overflow = addWithCarry(rsVal, operand, false)
	}
	c.regs.SetReg(rd, result)
	c.regs.SetFlagN(result&(1<<31) != 0)
	c.regs.SetFlagZ(result == 0)
	c.regs.SetFlagC(carry)
	c.regs.SetFlagV(overflow)
}

// --- Format 3: move/compare/add/subtract immediate ---

func (c *CPU) thumbImmediateOp(instr uint16) {
	op := (instr >> 11) & 0x3
	rd := uint8((instr >> 8) & 0x7)
	imm := uint32(instr & 0xFF)

	rdVal := c.regs.GetReg(rd)
	switch op {
	case 0: // MOV
		c.regs.SetReg(rd, imm)
		c.regs.SetFlagN(false)
		c.regs.SetFlagZ(imm == 0)
	case 1: // CMP
		result, carry, overflow := addWithCarry(rdVal, ^imm, true)
		c.regs.SetFlagN(result&(1<<31) != 0)
		c.regs.SetFlagZ(result == 0)
		c.regs.SetFlagC(carry)
		c.regs.SetFlagV(overflow)
	case 2: // ADD
		result, carry, overflow := addWithCarry(rdVal, imm, false)
		c.regs.SetReg(rd, result)
		c.regs.SetFlagN(result&(1<<31) != 0)
		c.regs.SetFlagZ(result == 0)
		c.regs.SetFlagC(carry)
		c.regs.SetFlagV(overflow)
	case 3: // SUB
		result, carry, overflow := addWithCarry(rdVal, ^imm, true)
		c.regs.SetReg(rd, result)
		c.regs.SetFlagN(result&(1<<31) != 0)
		c.regs.SetFlagZ(result == 0)
		c.regs.SetFlagC(carry)
		c.regs.SetFlagV(overflow)
	}
}

// --- Format 4: ALU operations ---

func (c *CPU) thumbALUOp(instr uint16) {
	op := (instr >> 6) & 0xF
	rs := uint8((instr >> 3) & 0x7)
	rd := uint8(instr & 0x7)

	rdVal := c.regs.GetReg(rd)
	rsVal := c.regs.GetReg(rs)

	var result uint32
	var carry, overflow bool
	write := true
	setLogical := false

	switch op {
	case 0x0: // AND
		result = rdVal & rsVal
		setLogical = true
	case 0x1: // EOR
		result = rdVal ^ rsVal
		setLogical = true
	case 0x2: // LSL
		r := applyShift(ShiftLSL, rsVal&0xFF, rdVal, c.regs.GetFlagC(), false)
		result, carry = r.value, r.carry
		c.regs.SetFlagC(carry)
		setLogical = true
	case 0x3: // LSR
		r := applyShift(ShiftLSR, rsVal&0xFF, rdVal, c.regs.GetFlagC(), false)
		result, carry = r.value, r.carry
		c.regs.SetFlagC(carry)
		setLogical = true
	case 0x4: // ASR
		r := applyShift(ShiftASR, rsVal&0xFF, rdVal, c.regs.GetFlagC(), false)
		result, carry = r.value, r.carry
		c.regs.SetFlagC(carry)
		setLogical = true
	case 0x5: // ADC
		result, carry, overflow = addWithCarry(rdVal, rsVal, c.regs.GetFlagC())
		c.regs.SetFlagC(carry)
		c.regs.SetFlagV(overflow)
	case 0x6: // SBC
		result, carry, overflow = addWithCarry(rdVal, ^rsVal, c.regs.GetFlagC())
		c.regs.SetFlagC(carry)
		c.regs.SetFlagV(overflow)
	case 0x7: // ROR
		r := applyShift(ShiftROR, rsVal&0xFF, rdVal, c.regs.GetFlagC(), false)
		result, carry = r.value, r.carry
		c.regs.SetFlagC(carry)
		setLogical = true
	case 0x8: // TST
		result = rdVal & rsVal
		write = false
		setLogical = true
	case 0x9: // NEG
		result, carry, overflow = addWithCarry(0, ^rsVal, true)
		c.regs.SetFlagC(carry)
		c.regs.SetFlagV(overflow)
	case 0xA: // CMP
		result, carry, overflow = addWithCarry(rdVal, ^rsVal, true)
		write = false
		c.regs.SetFlagC(carry)
		c.regs.SetFlagV(overflow)
	case 0xB: // CMN
		result, carry, overflow = addWithCarry(rdVal, rsVal, false)
		write = false
		c.regs.SetFlagC(carry)
		c.regs.SetFlagV(overflow)
	case 0xC: // ORR
		result = rdVal | rsVal
		setLogical = true
	case 0xD: // MUL
		result = rdVal * rsVal
		setLogical = true
	case 0xE: // BIC
		result = rdVal &^ rsVal
		setLogical = true
	case 0xF: // MVN
		result = ^rsVal
		setLogical = true
	}
	_ = setLogical

	if write {
		c.regs.SetReg(rd, result)
	}
	c.regs.SetFlagN(result&(1<<31) != 0)
	c.regs.SetFlagZ(result == 0)
}

// --- Format 5: hi register operations / branch exchange ---

func (c *CPU) thumbHiRegBX(instr uint16) {
	op := (instr >> 8) & 0x3
	h1 := instr&(1<<7) != 0
	h2 := instr&(1<<6) != 0
	rs := uint8((instr>>3)&0x7) + boolToReg(h2)*8
	rd := uint8(instr&0x7) + boolToReg(h1)*8

	rsVal := c.readReg(rs)

	switch op {
	case 0: // ADD
		c.writeReg(rd, c.readReg(rd)+rsVal)
	case 1: // CMP
		result, carry, overflow := addWithCarry(c.readReg(rd), ^rsVal, true)
		c.regs.SetFlagN(result&(1<<31) != 0)
		c.regs.SetFlagZ(result == 0)
		c.regs.SetFlagC(carry)
		c.regs.SetFlagV(overflow)
	case 2: // MOV
		c.writeReg(rd, rsVal)
	case 3: // BX
		c.regs.SetThumbState(rsVal&1 != 0)
		c.writePC(rsVal)
	}
}

func boolToReg(b bool) uint8 { return uint8(convert.BoolToInt(b)) }

// --- Format 6: PC-relative load ---

func (c *CPU) thumbPCRelLoad(instr uint16) {
	rd := uint8((instr >> 8) & 0x7)
	imm := uint32(instr&0xFF) << 2
	base := (c.readReg(15)) &^ 3
	c.regs.SetReg(rd, c.bus.Read32(base+imm))
}

// --- Format 7: load/store with register offset ---

func (c *CPU) thumbLoadStoreReg(instr uint16) {
	l := instr&(1<<11) != 0
	b := instr&(1<<10) != 0
	ro := uint8((instr >> 6) & 0x7)
	rb := uint8((instr >> 3) & 0x7)
	rd := uint8(instr & 0x7)

	addr := c.regs.GetReg(rb) + c.regs.GetReg(ro)
	switch {
	case l && b:
		c.regs.SetReg(rd, uint32(c.bus.Read8(addr)))
	case l && !b:
		c.regs.SetReg(rd, c.loadWord(addr))
	case !l && b:
		c.bus.Write8(addr, uint8(c.regs.GetReg(rd)))
	default:
		c.bus.Write32(addr&^3, c.regs.GetReg(rd))
	}
}

// --- Format 8: load/store sign-extended byte/halfword ---

func (c *CPU) thumbLoadStoreSignExt(instr uint16) {
	hFlag := instr&(1<<11) != 0
	signFlag := instr&(1<<10) != 0
	ro := uint8((instr >> 6) & 0x7)
	rb := uint8((instr >> 3) & 0x7)
	rd := uint8(instr & 0x7)

	addr := c.regs.GetReg(rb) + c.regs.GetReg(ro)
	switch {
	case !signFlag && !hFlag: // STRH
		c.bus.Write16(addr&^1, uint16(c.regs.GetReg(rd)))
	case !signFlag && hFlag: // LDRH
		c.regs.SetReg(rd, uint32(c.loadHalfword(addr)))
	case signFlag && !hFlag: // LDSB
		c.regs.SetReg(rd, uint32(int32(int8(c.bus.Read8(addr)))))
	default: // LDSH
		c.regs.SetReg(rd, c.loadSignedHalfword(addr))
	}
}

// --- Format 9: load/store with immediate offset ---

func (c *CPU) thumbLoadStoreImm(instr uint16) {
	b := instr&(1<<12) != 0
	l := instr&(1<<11) != 0
	imm := uint32((instr >> 6) & 0x1F)
	rb := uint8((instr >> 3) & 0x7)
	rd := uint8(instr & 0x7)

	if !b {
		imm <<= 2
	}
	addr := c.regs.GetReg(rb) + imm

	switch {
	case l && b:
		c.regs.SetReg(rd, uint32(c.bus.Read8(addr)))
	case l && !b:
		c.regs.SetReg(rd, c.loadWord(addr))
	case !l && b:
		c.bus.Write8(addr, uint8(c.regs.GetReg(rd)))
	default:
		c.bus.Write32(addr&^3, c.regs.GetReg(rd))
	}
}

// --- Format 10: load/store halfword ---

func (c *CPU) thumbLoadStoreHalf(instr uint16) {
	l := instr&(1<<11) != 0
	imm := uint32((instr>>6)&0x1F) << 1
	rb := uint8((instr >> 3) & 0x7)
	rd := uint8(instr & 0x7)

	addr := c.regs.GetReg(rb) + imm
	if l {
		c.regs.SetReg(rd, uint32(c.loadHalfword(addr)))
	} else {
		c.bus.Write16(addr&^1, uint16(c.regs.GetReg(rd)))
	}
}

// --- Format 11: SP-relative load/store ---

func (c *CPU) thumbSPRelLoadStore(instr uint16) {
	l := instr&(1<<11) != 0
	rd := uint8((instr >> 8) & 0x7)
	imm := uint32(instr&0xFF) << 2

	addr := c.regs.GetReg(13) + imm
	if l {
		c.regs.SetReg(rd, c.loadWord(addr))
	} else {
		c.bus.Write32(addr&^3, c.regs.GetReg(rd))
	}
}

// --- Format 12: load address ---

func (c *CPU) thumbLoadAddress(instr uint16) {
	sp := instr&(1<<11) != 0
	rd := uint8((instr >> 8) & 0x7)
	imm := uint32(instr&0xFF) << 2

	var base uint32
	if sp {
		base = c.regs.GetReg(13)
	} else {
		base = c.readReg(15) &^ 3
	}
	c.regs.SetReg(rd, base+imm)
}

// --- Format 13: add offset to SP ---

func (c *CPU) thumbAddOffsetSP(instr uint16) {
	neg := instr&(1<<7) != 0
	imm := uint32(instr&0x7F) << 2
	sp := c.regs.GetReg(13)
	if neg {
		c.regs.SetReg(13, sp-imm)
	} else {
		c.regs.SetReg(13, sp+imm)
	}
}

// --- Format 14: push/pop registers ---

func (c *CPU) thumbPushPop(instr uint16) {
	pop := instr&(1<<11) != 0
	extra := instr&(1<<8) != 0
	list := instr & 0xFF

	if pop {
		sp := c.regs.GetReg(13)
		for n := uint8(0); n < 8; n++ {
			if list&(1<<n) != 0 {
				c.regs.SetReg(n, c.loadWord(sp))
				sp += 4
			}
		}
		if extra { // POP pc
			c.writePC(c.loadWord(sp))
			sp += 4
		}
		c.regs.SetReg(13, sp)
		return
	}

	count := 0
	for n := uint8(0); n < 8; n++ {
		if list&(1<<n) != 0 {
			count++
		}
	}
	if extra {
		count++
	}
	sp := c.regs.GetReg(13) - uint32(count)*4
	writeAddr := sp
	for n := uint8(0); n < 8; n++ {
		if list&(1<<n) != 0 {
			c.bus.Write32(writeAddr, c.regs.GetReg(n))
			writeAddr += 4
		}
	}
	if extra { // PUSH lr
		c.bus.Write32(writeAddr, c.regs.GetReg(14))
	}
	c.regs.SetReg(13, sp)
}

// --- Format 15: multiple load/store ---

func (c *CPU) thumbMultipleLoadStore(instr uint16) {
	l := instr&(1<<11) != 0
	rb := uint8((instr >> 8) & 0x7)
	list := instr & 0xFF

	addr := c.regs.GetReg(rb)
	if list == 0 {
		// documented edge case, mirrors the ARM block-transfer one:
		// only r15 moves, base advances by 0x40 (a 16-register span).
		if l {
			c.writeReg(15, c.loadWord(addr))
		} else {
			c.bus.Write32(addr, c.readReg(15))
		}
		c.regs.SetReg(rb, addr+0x40)
		return
	}

	for n := uint8(0); n < 8; n++ {
		if list&(1<<n) == 0 {
			continue
		}
		if l {
			c.regs.SetReg(n, c.loadWord(addr))
		} else {
			c.bus.Write32(addr, c.regs.GetReg(n))
		}
		addr += 4
	}
	// Writeback is suppressed when Rb is itself in the load list: the
	// loaded value already overwrote it above and must not be clobbered
	// by the post-transfer address, matching the ARM block-transfer rule.
	if !(l && list&(1<<rb) != 0) {
		c.regs.SetReg(rb, addr)
	}
}

// --- Format 16: conditional branch ---

func (c *CPU) thumbCondBranch(instr uint16) {
	cond := ARMCondition((instr >> 8) & 0xF)
	if !checkCondition(cond, c.regs) {
		return
	}
	offset := int32(int8(instr & 0xFF))
	target := uint32(int32(c.readReg(15)) + offset*2)
	c.writePC(target)
}

// --- Format 18: unconditional branch ---

func (c *CPU) thumbUncondBranch(instr uint16) {
	offset := signExtend11(instr & 0x7FF)
	target := uint32(int32(c.readReg(15)) + offset*2)
	c.writePC(target)
}

// --- Format 19: long branch with link ---

func (c *CPU) thumbLongBranchLink(instr uint16) {
	low := instr&(1<<11) != 0
	offset11 := uint32(instr & 0x7FF)

	if !low {
		hi := signExtend11(uint16(offset11)) << 12
		c.regs.SetReg(14, uint32(int32(c.readReg(15))+hi))
		return
	}

	lr := c.regs.GetReg(14)
	next := lr + (offset11 << 1)
	// c.pc already holds the address of the instruction after this
	// suffix (the prefetch advance happened in fetchThumb); bit 0 set
	// marks the return as a Thumb-state resume address.
	returnAddr := c.pc | 1
	c.regs.SetReg(14, returnAddr)
	c.writePC(next)
}

func signExtend11(v uint16) int32 {
	if v&0x400 != 0 {
		return int32(v) - 0x800
	}
	return int32(v)
}
