package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBus is a bare memory backing the cpu.Bus interface, without the
// PPU/IORegs wiring the real bus needs — this package's CPU tests
// only care about instruction semantics.
type fakeBus struct {
	mem      map[uint32]uint8
	pending  bool
}

func newFakeBus() *fakeBus { return &fakeBus{mem: make(map[uint32]uint8)} }

func (b *fakeBus) Read8(addr uint32) uint8  { return b.mem[addr] }
func (b *fakeBus) Write8(addr uint32, v uint8) { b.mem[addr] = v }

func (b *fakeBus) Read16(addr uint32) uint16 {
	addr &^= 1
	return uint16(b.Read8(addr)) | uint16(b.Read8(addr+1))<<8
}
func (b *fakeBus) Write16(addr uint32, v uint16) {
	addr &^= 1
	b.Write8(addr, uint8(v))
	b.Write8(addr+1, uint8(v>>8))
}
func (b *fakeBus) Read32(addr uint32) uint32 {
	addr &^= 3
	return uint32(b.Read16(addr)) | uint32(b.Read16(addr+2))<<16
}
func (b *fakeBus) Write32(addr uint32, v uint32) {
	addr &^= 3
	b.Write16(addr, uint16(v))
	b.Write16(addr+2, uint16(v>>16))
}
func (b *fakeBus) PendingInterrupt() bool { return b.pending }

func (b *fakeBus) loadProgram(base uint32, words ...uint32) {
	for i, w := range words {
		b.Write32(base+uint32(i*4), w)
	}
}

// encodeDP builds a data-processing instruction word (§4.3.7).
// operand2 is already the fully-formed 12-bit field (immediate
// rotate+imm8, or immediate-shift/register-shift register form).
func encodeDP(cond ARMCondition, immediate bool, op ARMDataProcessingOperation, s bool, rn, rd uint32, operand2 uint32) uint32 {
	i := uint32(0)
	if immediate {
		i = 1
	}
	sBit := uint32(0)
	if s {
		sBit = 1
	}
	return uint32(cond)<<28 | i<<25 | uint32(op)<<21 | sBit<<20 | rn<<16 | rd<<12 | operand2
}

func dpImmOperand(imm8, rot uint32) uint32 { return rot<<8 | imm8 }
func dpShiftImmOperand(shiftAmount, shiftType, rm uint32) uint32 {
	return shiftAmount<<7 | shiftType<<5 | rm
}
func dpShiftRegOperand(rs, shiftType, rm uint32) uint32 {
	return rs<<8 | 1<<4 | shiftType<<5 | rm
}

// encodeBlockTransfer builds an LDM/STM instruction word (§4.3.8).
func encodeBlockTransfer(cond ARMCondition, p, u, s, w, l uint32, rn uint32, list uint16) uint32 {
	return uint32(cond)<<28 | 1<<27 | p<<24 | u<<23 | s<<22 | w<<21 | l<<20 | rn<<16 | uint32(list)
}

// encodeThumbMultipleLoadStore builds a THUMB format-15 LDMIA/STMIA
// instruction word (§4.3.9).
func encodeThumbMultipleLoadStore(l bool, rb uint16, list uint16) uint16 {
	word := uint16(0xC000) | rb<<8 | list
	if l {
		word |= 1 << 11
	}
	return word
}

// encodeSingleTransfer builds a single data-transfer instruction word
// (§4.3.8) with an immediate offset.
func encodeSingleTransfer(cond ARMCondition, p, u, b, w, l uint32, rn, rd uint32, offset uint32) uint32 {
	return uint32(cond)<<28 | 1<<26 | p<<24 | u<<23 | b<<22 | w<<21 | l<<20 | rn<<16 | rd<<12 | offset
}

func encodeSWI(cond ARMCondition, comment uint32) uint32 {
	return uint32(cond)<<28 | 0xF<<24 | comment
}

func newTestCPU() (*CPU, *fakeBus) {
	bus := newFakeBus()
	c := NewCPU(bus)
	return c, bus
}

func TestConditionFalseIsNoOp(t *testing.T) {
	c, bus := newTestCPU()
	// Z flag is clear after reset, so EQ is false.
	require.False(t, c.regs.GetFlagZ())
	movR0_5 := encodeDP(CondEQ, true, OpMOV, false, 0, 0, dpImmOperand(5, 0))
	bus.loadProgram(ResetPC, movR0_5)

	c.Step()

	assert.Equal(t, uint32(0), c.regs.GetReg(0))
	assert.Nil(t, c.Fault())
}

func TestPCReadsPipelineAhead(t *testing.T) {
	c, _ := newTestCPU()
	// Pipeline invalid immediately after reset; fetchARM validates it
	// on the first step, after which readReg(15) == pc+4 (ARM).
	assert.Equal(t, c.pc+4, c.readReg(15))
}

func TestScenario1_MovAddLSL(t *testing.T) {
	c, bus := newTestCPU()
	movR0 := encodeDP(CondAL, true, OpMOV, false, 0, 0, dpImmOperand(0x12, 4)) // 0x12 ror 8 = 0x12000000
	movR1 := encodeDP(CondAL, true, OpMOV, false, 0, 1, dpImmOperand(1, 0))
	addR0 := encodeDP(CondAL, false, OpADD, false, 0, 0, dpShiftImmOperand(4, 0 /*LSL*/, 1))
	bus.loadProgram(ResetPC, movR0, movR1, addR0)

	c.Step()
	c.Step()
	c.Step()

	assert.Equal(t, uint32(0x12000010), c.regs.GetReg(0))
}

func TestScenario2_SubsUnderflow(t *testing.T) {
	c, bus := newTestCPU()
	// SUBS r0, r0, #1 with r0 == 0.
	subs := encodeDP(CondAL, true, OpSUB, true, 0, 0, dpImmOperand(1, 0))
	bus.loadProgram(ResetPC, subs)

	c.Step()

	assert.Equal(t, uint32(0xFFFFFFFF), c.regs.GetReg(0))
	assert.True(t, c.regs.GetFlagN())
	assert.False(t, c.regs.GetFlagZ())
	assert.False(t, c.regs.GetFlagC())
	assert.False(t, c.regs.GetFlagV())
}

func TestScenario3_LdrPCRelative(t *testing.T) {
	c, bus := newTestCPU()
	// LDR r0, [pc, #0] at PC == ResetPC: reads the word at PC+8.
	ldr := encodeSingleTransfer(CondAL, 1, 1, 0, 0, 1, 15, 0, 0)
	bus.loadProgram(ResetPC, ldr)
	bus.Write32(ResetPC+8, 0xCAFEBABE)

	c.Step()

	assert.Equal(t, uint32(0xCAFEBABE), c.regs.GetReg(0))
}

// TestRegisterShiftReadsPCPlus12 covers the documented ARM boundary
// case (§8): a data-processing instruction whose shift amount comes
// from a register reads r15 as PC+12, not the usual PC+8, for any
// operand that is r15.
func TestRegisterShiftReadsPCPlus12(t *testing.T) {
	c, bus := newTestCPU()
	c.regs.SetReg(1, 0x100)
	c.regs.SetReg(2, 0) // shift amount register: LSL #0 is a passthrough
	// ADD r0, r15, r1, LSL r2
	add := encodeDP(CondAL, false, OpADD, false, 15, 0, dpShiftRegOperand(2, 0 /*LSL*/, 1))
	bus.loadProgram(ResetPC, add)

	c.Step()

	assert.Equal(t, uint32(ResetPC+12+0x100), c.regs.GetReg(0))
}

// TestBlockTransferStoresWrittenBackBase covers the §4.3.8 edge case:
// when the base register is in an STM list but isn't its lowest
// register, the stored value is the written-back base, not the
// original one.
func TestBlockTransferStoresWrittenBackBase(t *testing.T) {
	c, bus := newTestCPU()
	c.regs.SetReg(0, 0x11111111)
	c.regs.SetReg(1, 0x2000) // base; not the lowest register in the list
	c.regs.SetReg(2, 0x33333333)
	// STMIA r1!, {r0, r1, r2}
	stm := encodeBlockTransfer(CondAL, 0, 1, 0, 1, 0, 1, 0b0111)
	bus.loadProgram(ResetPC, stm)

	c.Step()

	assert.Equal(t, uint32(0x11111111), bus.Read32(0x2000))
	assert.Equal(t, uint32(0x200C), bus.Read32(0x2004)) // written-back base, not 0x2000
	assert.Equal(t, uint32(0x33333333), bus.Read32(0x2008))
	assert.Equal(t, uint32(0x200C), c.regs.GetReg(1))
}

// TestThumbMultipleLoadSuppressesBaseWriteback covers the THUMB
// format-15 edge case mirrored from the ARM block-transfer rule: when
// the base register is itself in the load list, the writeback address
// must not clobber the value just loaded into it.
func TestThumbMultipleLoadSuppressesBaseWriteback(t *testing.T) {
	c, bus := newTestCPU()
	c.regs.SetThumbState(true)
	c.SetPC(ResetPC)
	c.regs.SetReg(0, 0x3000) // rb, also in the load list
	bus.Write32(0x3000, 0xAAAA0000)
	bus.Write32(0x3004, 0xBBBB0000)
	// LDMIA r0!, {r0, r1}
	ldm := encodeThumbMultipleLoadStore(true, 0, 0b0011)
	bus.Write16(ResetPC, ldm)

	c.Step()

	assert.Equal(t, uint32(0xAAAA0000), c.regs.GetReg(0))
	assert.Equal(t, uint32(0xBBBB0000), c.regs.GetReg(1))
}

func TestScenario4_SWIEntersSupervisor(t *testing.T) {
	c, bus := newTestCPU()
	swi := encodeSWI(CondAL, 0x05) // VBlankIntrWait comment byte, unused by the interpreter
	bus.loadProgram(ResetPC, swi)

	c.Step()

	assert.Equal(t, uint8(ModeSVC), c.regs.GetMode())
	assert.False(t, c.regs.IsThumb())
	assert.True(t, c.regs.IsIRQDisabled())
	assert.Equal(t, uint32(swiVector), c.pc)
	// Fetching the SWI word advances pc by 4 before execSWI reads it
	// as the return address.
	assert.Equal(t, uint32(ResetPC+4), c.regs.GetReg(14))
}
