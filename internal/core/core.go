// Package core wires the bus, CPU, and PPU together and drives them
// one frame at a time (spec.md §4.4, §2).
package core

import (
	"fmt"

	"GoBA/internal/bus"
	"GoBA/internal/cartridge"
	"GoBA/internal/cpu"
	"GoBA/internal/io"
	"GoBA/internal/memory"
	"GoBA/internal/ppu"
)

// CyclesPerFrame is 228 lines * 1,232 cycles (§3 invariant v).
const CyclesPerFrame = 228 * 1232

// Option configures a Core at construction. The firmware and
// cartridge images are always required and stay positional
// (mirroring the teacher's NewBus(bios, ewram, iwram, ppu, cart,
// regs) construction); only the genuinely optional breakpoint is a
// functional option.
type Option func(*Core)

// WithBreakpoint installs a program-counter breakpoint: RenderFrame
// returns early the moment PC equals addr at the top of the inner
// loop.
func WithBreakpoint(addr uint32) Option {
	return func(c *Core) {
		c.breakpoint = &addr
	}
}

// Core is the assembled emulator: bus, CPU, and the devices hanging
// off the bus. It owns all state singly (§5 "Shared resources").
type Core struct {
	Bus *bus.Bus
	CPU *cpu.CPU

	bios  *memory.BIOS
	ewram *memory.EWRAM
	iwram *memory.IWRAM
	io    *io.IORegs
	ppu   *ppu.PPU

	breakpoint  *uint32
	lastFault   error
	lastFaultPC uint32
}

// NewCore validates and wires a firmware image and a cartridge image
// into a running core (§6 "Constructor input").
func NewCore(firmware, cartridgeData []byte, opts ...Option) (*Core, error) {
	if len(firmware) != memory.BIOSSize {
		return nil, fmt.Errorf("firmware image must be exactly %d bytes, got %d", memory.BIOSSize, len(firmware))
	}
	cart, err := cartridge.NewCartridge(cartridgeData)
	if err != nil {
		return nil, err
	}

	c := &Core{
		bios:  memory.NewBIOS(),
		ewram: memory.NewEWRAM(),
		iwram: memory.NewIWRAM(),
		io:    io.NewIORegs(),
	}
	if err := c.bios.LoadFirmware(firmware); err != nil {
		return nil, err
	}
	c.ppu = ppu.NewPPU(c.io)
	c.Bus = bus.NewBus(c.bios, c.ewram, c.iwram, c.io, c.ppu)
	c.Bus.Cartridge = cart
	c.CPU = cpu.NewCPU(c.Bus)

	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Reset zeroes all register banks and volatile component state and
// reinitialises per §3 (§4.4 "a reset that zeroes all register banks
// and all component state"). The loaded firmware and cartridge images
// (including battery-backed save RAM) are not component state in this
// sense and survive the reset, the way power-cycling real hardware
// does not erase the cartridge.
func (c *Core) Reset() {
	c.ewram = memory.NewEWRAM()
	c.iwram = memory.NewIWRAM()
	c.io = io.NewIORegs()
	c.ppu = ppu.NewPPU(c.io)
	cart := c.Bus.Cartridge
	c.Bus = bus.NewBus(c.bios, c.ewram, c.iwram, c.io, c.ppu)
	c.Bus.Cartridge = cart
	c.CPU = cpu.NewCPU(c.Bus)
	c.lastFault = nil
	c.lastFaultPC = 0
}

// Step runs exactly one CPU instruction and ticks the bus by its
// cycle cost — the single-step form for debugger use (§4.4).
func (c *Core) Step() int {
	cycles := c.CPU.Step()
	c.Bus.Tick(cycles)
	if f := c.CPU.Fault(); f != nil {
		c.lastFault = f
		c.lastFaultPC = f.PC
	}
	if f := c.ppu.Fault(); f != nil {
		c.lastFault = f
		c.lastFaultPC = c.CPU.PC()
	}
	return cycles
}

// RenderFrame writes keyInput into KEYINPUT, then runs the CPU/PPU
// for one frame's cycle budget or until the breakpoint is hit,
// whichever comes first, and returns the PPU's frame buffer (§4.4).
// keyInput uses the active-low bit encoding of §6.
func (c *Core) RenderFrame(keyInput uint16) (frame *[ppu.ScreenWidth * ppu.ScreenHeight]uint16, hit bool) {
	c.io.Write16(io.RegKEYINPUT, keyInput)

	cycles := 0
	for cycles < CyclesPerFrame {
		if c.breakpoint != nil && c.CPU.PC() == *c.breakpoint {
			return c.ppu.Frame(), true
		}
		cycles += c.Step()
	}
	return c.ppu.Frame(), false
}

// Fault reports the most recent CPU or PPU fault, if any (SPEC_FULL.md
// §2).
func (c *Core) Fault() error {
	return c.lastFault
}

// LastFault reports the PC a fault was raised at, adapting the
// original's debugger breakpoint-hit/last-fault diagnostics
// (SPEC_FULL.md §4) without carrying over its interactive debugger. For
// a PPU fault (which has no PC of its own, only a scanline) this is the
// CPU's program counter at the moment the fault was observed.
func (c *Core) LastFault() (pc uint32, ok bool) {
	if c.lastFault == nil {
		return 0, false
	}
	return c.lastFaultPC, true
}
