package cpu

// ARM7TDMI operating modes, encoded exactly as they appear in the low
// 5 bits of CPSR. USR and SYS share every register below; they are
// kept as distinct codes because software (and MSR) distinguishes them.
const (
	ModeUSR = 0b10000
	ModeFIQ = 0b10001
	ModeIRQ = 0b10010
	ModeSVC = 0b10011
	ModeABT = 0b10111
	ModeUND = 0b11011
	ModeSYS = 0b11111
)

// CPSR bit positions.
const (
	flagT = 5 // Thumb state
	flagF = 6 // FIQ disable
	flagI = 7 // IRQ disable
	flagV = 28
	flagC = 29
	flagZ = 30
	flagN = 31
)

// Registers holds the full ARM7TDMI register file: the banked copies
// for every privileged mode, plus the live CPSR. r15 is not stored
// here — the CPU owns the program counter and the prefetch pipeline,
// since PC semantics are bound up with pipeline state (see cpu.go).
//
// GetReg/SetReg derive the active bank from CPSR's mode bits on every
// call rather than copying a "live" register set in and out on mode
// switches. There is then no separate live array to alias against the
// banked ones, which is the hazard a copy-based model has to avoid.
type Registers struct {
	r [13]uint32 // r0-r12, shared by every mode except FIQ's r8-r12

	fiqR8_12 [5]uint32 // r8_fiq .. r12_fiq
	fiqSP    uint32
	fiqLR    uint32

	svcSP, svcLR uint32
	abtSP, abtLR uint32
	undSP, undLR uint32
	irqSP, irqLR uint32
	usrSP, usrLR uint32

	spsrFIQ, spsrSVC, spsrABT, spsrUND, spsrIRQ uint32

	cpsr uint32
}

// NewRegisters builds the post-construction register state from
// spec.md §3's initial-state table.
func NewRegisters() *Registers {
	return &Registers{
		cpsr:  0x0000001F, // SYSTEM mode, ARM state, IRQs enabled
		svcSP: 0x03007FE0,
		irqSP: 0x03007FA0,
		usrSP: 0x03007F00,
	}
}

func (r *Registers) GetMode() uint8 { return uint8(r.cpsr & 0x1F) }

// SetMode rewrites only the mode bits of CPSR. Every register access
// re-derives its bank from these bits, so no copying happens here.
func (r *Registers) SetMode(mode uint8) {
	r.cpsr = (r.cpsr &^ 0x1F) | uint32(mode&0x1F)
}

func (r *Registers) GetCPSR() uint32 { return r.cpsr }

// SetCPSR installs a full status word, including the mode field. Used
// by the return-from-exception path (S-bit data processing into r15)
// and by MSR writes to the control byte.
func (r *Registers) SetCPSR(v uint32) { r.cpsr = v }

func (r *Registers) IsThumb() bool        { return r.cpsr&(1<<flagT) != 0 }
func (r *Registers) SetThumbState(t bool) { r.setBit(flagT, t) }
func (r *Registers) IsIRQDisabled() bool  { return r.cpsr&(1<<flagI) != 0 }
func (r *Registers) SetIRQDisabled(d bool) { r.setBit(flagI, d) }
func (r *Registers) IsFIQDisabled() bool   { return r.cpsr&(1<<flagF) != 0 }
func (r *Registers) SetFIQDisabled(d bool) { r.setBit(flagF, d) }

func (r *Registers) GetFlagN() bool { return r.cpsr&(1<<flagN) != 0 }
func (r *Registers) GetFlagZ() bool { return r.cpsr&(1<<flagZ) != 0 }
func (r *Registers) GetFlagC() bool { return r.cpsr&(1<<flagC) != 0 }
func (r *Registers) GetFlagV() bool { return r.cpsr&(1<<flagV) != 0 }

func (r *Registers) SetFlagN(v bool) { r.setBit(flagN, v) }
func (r *Registers) SetFlagZ(v bool) { r.setBit(flagZ, v) }
func (r *Registers) SetFlagC(v bool) { r.setBit(flagC, v) }
func (r *Registers) SetFlagV(v bool) { r.setBit(flagV, v) }

func (r *Registers) setBit(bit uint, v bool) {
	if v {
		r.cpsr |= 1 << bit
	} else {
		r.cpsr &^= 1 << bit
	}
}

// GetReg reads r0-r14 (r15 is handled by the CPU, not here) through
// the bank selected by the current mode.
func (r *Registers) GetReg(n uint8) uint32 {
	return r.GetRegMode(n, r.GetMode())
}

func (r *Registers) SetReg(n uint8, v uint32) {
	r.SetRegMode(n, r.GetMode(), v)
}

// GetRegMode/SetRegMode read or write r0-r14 through the bank for an
// explicitly named mode rather than the live mode, which block
// transfer's USER-bank transfer (§4.3.8, the S bit without r15 in the
// list) needs: it must touch the USR bank while the CPU stays in a
// privileged mode throughout.
func (r *Registers) GetRegMode(n, mode uint8) uint32 {
	if mode == ModeFIQ && n >= 8 && n <= 12 {
		return r.fiqR8_12[n-8]
	}
	if n == 13 {
		switch mode {
		case ModeFIQ:
			return r.fiqSP
		case ModeSVC:
			return r.svcSP
		case ModeABT:
			return r.abtSP
		case ModeUND:
			return r.undSP
		case ModeIRQ:
			return r.irqSP
		default:
			return r.usrSP
		}
	}
	if n == 14 {
		switch mode {
		case ModeFIQ:
			return r.fiqLR
		case ModeSVC:
			return r.svcLR
		case ModeABT:
			return r.abtLR
		case ModeUND:
			return r.undLR
		case ModeIRQ:
			return r.irqLR
		default:
			return r.usrLR
		}
	}
	return r.r[n]
}

func (r *Registers) SetRegMode(n, mode uint8, v uint32) {
	if mode == ModeFIQ && n >= 8 && n <= 12 {
		r.fiqR8_12[n-8] = v
		return
	}
	if n == 13 {
		switch mode {
		case ModeFIQ:
			r.fiqSP = v
		case ModeSVC:
			r.svcSP = v
		case ModeABT:
			r.abtSP = v
		case ModeUND:
			r.undSP = v
		case ModeIRQ:
			r.irqSP = v
		default:
			r.usrSP = v
		}
		return
	}
	if n == 14 {
		switch mode {
		case ModeFIQ:
			r.fiqLR = v
		case ModeSVC:
			r.svcLR = v
		case ModeABT:
			r.abtLR = v
		case ModeUND:
			r.undLR = v
		case ModeIRQ:
			r.irqLR = v
		default:
			r.usrLR = v
		}
		return
	}
	r.r[n] = v
}

// GetSPSR returns the saved status word for the current privileged
// mode. USR/SYS have no SPSR; callers must not reach here for them
// (MRS from SPSR in USR/SYS is architecturally unpredictable).
func (r *Registers) GetSPSR() uint32 {
	switch r.GetMode() {
	case ModeFIQ:
		return r.spsrFIQ
	case ModeSVC:
		return r.spsrSVC
	case ModeABT:
		return r.spsrABT
	case ModeUND:
		return r.spsrUND
	case ModeIRQ:
		return r.spsrIRQ
	default:
		return 0
	}
}

func (r *Registers) SetSPSR(v uint32) {
	switch r.GetMode() {
	case ModeFIQ:
		r.spsrFIQ = v
	case ModeSVC:
		r.spsrSVC = v
	case ModeABT:
		r.spsrABT = v
	case ModeUND:
		r.spsrUND = v
	case ModeIRQ:
		r.spsrIRQ = v
	}
}
