package cpu

// Bus is the subset of the memory bus the CPU needs, kept as its own
// interface here so tests can supply a bare-bones fake bus without
// pulling in IORegs/Tick.
type Bus interface {
	Read8(uint32) uint8
	Write8(uint32, uint8)
	Read16(uint32) uint16
	Write16(uint32, uint16)
	Read32(uint32) uint32
	Write32(uint32, uint32)
	PendingInterrupt() bool
}

// ResetPC is r15's value immediately after construction (§3): the
// start of cartridge ROM, not the BIOS entry point — the GBA's real
// boot ROM has already run and jumped here by the time a game's own
// code is observable.
const ResetPC = 0x08000000

const (
	irqVector = 0x00000018
	swiVector = 0x00000008
)

// CPU is the ARM7TDMI interpreter: banked registers, a single-slot
// prefetch pipeline, and the ARM/THUMB execute paths.
type CPU struct {
	regs *Registers
	bus  Bus

	pc      uint32
	prefetch uint32
	pipelineValid bool

	fault *Fault
}

func NewCPU(bus Bus) *CPU {
	c := &CPU{bus: bus}
	c.Reset()
	return c
}

// Reset reinitialises every register bank and invalidates the
// pipeline, per §3/§4.4.
func (c *CPU) Reset() {
	c.regs = NewRegisters()
	c.pc = ResetPC
	c.regs.SetReg(14, ResetPC)
	c.pipelineValid = false
	c.fault = nil
}

func (c *CPU) Registers() *Registers { return c.regs }

// PC returns the raw program-counter value (the address of the
// instruction about to be fetched, not the pipeline-adjusted value an
// executing instruction observes through r15).
func (c *CPU) PC() uint32 { return c.pc }

func (c *CPU) SetPC(addr uint32) {
	c.pc = addr
	c.pipelineValid = false
}

// Fault reports the most recent decode/execute fault, if any (§7,
// SPEC_FULL.md §2).
func (c *CPU) Fault() *Fault { return c.fault }

// Step executes exactly one instruction and returns the cycle cost
// charged to the frame budget. A pending IRQ is only honored here, at
// instruction boundaries (§5 "Ordering").
func (c *CPU) Step() int {
	if c.pipelineValid && !c.regs.IsIRQDisabled() && c.bus.PendingInterrupt() {
		c.enterIRQ()
		return 1
	}

	if c.regs.IsThumb() {
		return c.stepThumb()
	}
	return c.stepARM()
}

func (c *CPU) stepARM() int {
	instr := c.fetchARM()
	if !checkCondition(ARMCondition((instr>>28)&0xF), c.regs) {
		return 1
	}
	class, parsed := decodeARM(instr)
	c.executeARM(class, parsed)
	return 1
}

func (c *CPU) stepThumb() int {
	instr := c.fetchThumb()
	c.executeThumbInstr(instr)
	return 1
}

// fetchARM returns the next ARM instruction, refilling the prefetch
// slot as needed, and advances PC by one word.
func (c *CPU) fetchARM() uint32 {
	if !c.pipelineValid {
		c.prefetch = c.bus.Read32(c.pc)
		c.pipelineValid = true
	}
	instr := c.prefetch
	c.pc += 4
	c.prefetch = c.bus.Read32(c.pc)
	return instr
}

func (c *CPU) fetchThumb() uint16 {
	if !c.pipelineValid {
		c.prefetch = uint32(c.bus.Read16(c.pc))
		c.pipelineValid = true
	}
	instr := uint16(c.prefetch)
	c.pc += 2
	c.prefetch = uint32(c.bus.Read16(c.pc))
	return instr
}

// readReg implements r15's pipeline-ahead read (§3 "Pipeline"): r0-r14
// come straight from the bank, r15 observes PC+8 in ARM / PC+4 in
// THUMB.
func (c *CPU) readReg(n uint8) uint32 {
	if n == 15 {
		if c.regs.IsThumb() {
			return c.pc + 2
		}
		return c.pc + 4
	}
	return c.regs.GetReg(n)
}

// readRegShifted is readReg with the register-specified-shift quirk
// (§8 boundary cases): a data-processing instruction whose shift
// amount comes from a register takes an extra internal cycle, so any
// r15 operand it reads (Rn or the shifted Rm) observes PC+12 in ARM
// state rather than PC+8.
func (c *CPU) readRegShifted(n uint8, registerShift bool) uint32 {
	if n == 15 && registerShift && !c.regs.IsThumb() {
		return c.pc + 8
	}
	return c.readReg(n)
}

func (c *CPU) writeReg(n uint8, v uint32) {
	if n == 15 {
		c.writePC(v)
		return
	}
	c.regs.SetReg(n, v)
}

// writePC installs a new program counter and invalidates the
// pipeline; used by every instruction that can branch (data
// processing into r15, B/BL/BX, LDM with r15 in the list, SWI, IRQ
// entry).
func (c *CPU) writePC(addr uint32) {
	if c.regs.IsThumb() {
		addr &^= 1
	} else {
		addr &^= 3
	}
	c.pc = addr
	c.pipelineValid = false
}

func (c *CPU) enterIRQ() {
	returnPC := c.pc
	savedCPSR := c.regs.GetCPSR()
	thumb := c.regs.IsThumb()

	c.regs.SetMode(ModeIRQ)
	c.regs.SetSPSR(savedCPSR)

	offset := uint32(4)
	if thumb {
		offset = 2
	}
	c.regs.SetReg(14, returnPC+offset)

	c.regs.SetIRQDisabled(true)
	c.regs.SetThumbState(false)
	c.writePC(irqVector)
}

func checkCondition(cond ARMCondition, r *Registers) bool {
	n, z, cf, v := r.GetFlagN(), r.GetFlagZ(), r.GetFlagC(), r.GetFlagV()
	switch cond {
	case CondEQ:
		return z
	case CondNE:
		return !z
	case CondCS:
		return cf
	case CondCC:
		return !cf
	case CondMI:
		return n
	case CondPL:
		return !n
	case CondVS:
		return v
	case CondVC:
		return !v
	case CondHI:
		return cf && !z
	case CondLS:
		return !cf || z
	case CondGE:
		return n == v
	case CondLT:
		return n != v
	case CondGT:
		return !z && n == v
	case CondLE:
		return z || n != v
	case CondAL:
		return true
	default: // CondNV: reserved, architecturally never executes
		return false
	}
}
