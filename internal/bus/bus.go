package bus

import (
	"GoBA/internal/cartridge"
	"GoBA/internal/io"
	"GoBA/internal/memory"
	"GoBA/internal/ppu"
	"GoBA/util/dbg"
)

var log = dbg.Subsystem("bus")

// Memory map base addresses and region sizes (§3).
const (
	biosBase  = 0x00000000
	ewramBase = 0x02000000
	ewramMask = 0x02FFFFFF
	iwramBase = 0x03000000
	iwramMask = 0x03FFFFFF
	ioBase    = 0x04000000
	ioMask    = 0x04FFFFFF
	palBase   = 0x05000000
	palMask   = 0x05FFFFFF
	vramBase  = 0x06000000
	vramMask  = 0x06FFFFFF
	oamBase   = 0x07000000
	oamMask   = 0x07FFFFFF
	romBase   = 0x08000000
	romEnd    = 0x0DFFFFFF
	sramBase  = 0x0E000000
	sramEnd   = 0x0E00FFFF
)

// Bus routes typed reads and writes to the region the address falls
// in (§4.1) and fans per-instruction ticks out to the PPU.
type Bus struct {
	BIOS      *memory.BIOS
	EWRAM     *memory.EWRAM
	IWRAM     *memory.IWRAM
	IORegs    *io.IORegs
	PPU       *ppu.PPU
	Cartridge *cartridge.Cartridge

	CycleCount uint64
}

func NewBus(bios *memory.BIOS, ewram *memory.EWRAM, iwram *memory.IWRAM, ioRegs *io.IORegs, p *ppu.PPU) *Bus {
	return &Bus{
		BIOS:   bios,
		EWRAM:  ewram,
		IWRAM:  iwram,
		IORegs: ioRegs,
		PPU:    p,
	}
}

// LoadFirmware and LoadCartridge fill the BIOS and ROM regions (§4.1).
func (b *Bus) LoadFirmware(data []byte) error { return b.BIOS.LoadFirmware(data) }

func (b *Bus) LoadCartridge(data []byte) error {
	cart, err := cartridge.NewCartridge(data)
	if err != nil {
		return err
	}
	b.Cartridge = cart
	return nil
}

func (b *Bus) Read8(addr uint32) uint8 {
	switch {
	case addr < ewramBase:
		return b.BIOS.Read8(addr - biosBase)
	case addr <= ewramMask:
		return b.EWRAM.Read8(addr - ewramBase)
	case addr <= iwramMask:
		return b.IWRAM.Read8(addr - iwramBase)
	case addr <= ioMask:
		return b.IORegs.GetReg((addr - ioBase) & 0x3FF)
	case addr <= palMask:
		return b.PPU.ReadPalette8((addr - palBase) & 0x3FF)
	case addr <= vramMask:
		return b.PPU.ReadVRAM8(addr - vramBase)
	case addr <= oamMask:
		return b.PPU.ReadOAM8((addr - oamBase) & 0x3FF)
	case addr <= romEnd:
		return b.Cartridge.ReadROM8(addr - romBase)
	case addr <= sramEnd:
		return b.Cartridge.ReadSRAM8(addr - sramBase)
	default:
		log.Warnf("unmapped 8-bit read at %#08x", addr)
		return 0
	}
}

func (b *Bus) Write8(addr uint32, v uint8) {
	switch {
	case addr < ewramBase:
		return // BIOS is read-only
	case addr <= ewramMask:
		b.EWRAM.Write8(addr-ewramBase, v)
	case addr <= iwramMask:
		b.IWRAM.Write8(addr-iwramBase, v)
	case addr <= ioMask:
		b.IORegs.Write8((addr-ioBase)&0x3FF, v)
	case addr <= palMask:
		b.PPU.WritePalette8((addr-palBase)&0x3FF, v)
	case addr <= vramMask:
		b.PPU.WriteVRAM8(addr-vramBase, v)
	case addr <= oamMask:
		// OAM 8-bit writes are silently dropped (§4.1).
		return
	case addr <= romEnd:
		return // ROM is read-only
	case addr <= sramEnd:
		b.Cartridge.WriteSRAM8(addr-sramBase, v)
	}
}

// Read16/Write16/Read32/Write32 dispatch per region rather than
// composing from Read8/Write8: palette RAM and VRAM only duplicate a
// byte across a halfword on genuine 8-bit accesses (§4.1), so a
// 16/32-bit access has to reach the PPU's native halfword/word path
// instead of two single-byte calls that would each re-trigger the
// duplicate rule and clobber each other.
func (b *Bus) Read16(addr uint32) uint16 {
	addr &^= 1
	switch {
	case addr < ewramBase:
		return b.BIOS.Read16(addr - biosBase)
	case addr <= ewramMask:
		return b.EWRAM.Read16(addr - ewramBase)
	case addr <= iwramMask:
		return b.IWRAM.Read16(addr - iwramBase)
	case addr <= ioMask:
		return b.IORegs.Read16((addr - ioBase) & 0x3FF)
	case addr <= palMask:
		return b.PPU.ReadPalette16((addr - palBase) & 0x3FF)
	case addr <= vramMask:
		return b.PPU.ReadVRAM16(addr - vramBase)
	case addr <= oamMask:
		return b.PPU.ReadOAM16((addr - oamBase) & 0x3FF)
	case addr <= romEnd:
		return uint16(b.Cartridge.ReadROM8(addr-romBase)) | uint16(b.Cartridge.ReadROM8(addr-romBase+1))<<8
	case addr <= sramEnd:
		return uint16(b.Cartridge.ReadSRAM8(addr - sramBase))
	default:
		return 0
	}
}

func (b *Bus) Write16(addr uint32, v uint16) {
	addr &^= 1
	switch {
	case addr < ewramBase:
		return
	case addr <= ewramMask:
		b.EWRAM.Write16(addr-ewramBase, v)
	case addr <= iwramMask:
		b.IWRAM.Write16(addr-iwramBase, v)
	case addr <= ioMask:
		b.IORegs.Write16((addr-ioBase)&0x3FF, v)
	case addr <= palMask:
		b.PPU.WritePalette16((addr-palBase)&0x3FF, v)
	case addr <= vramMask:
		b.PPU.WriteVRAM16(addr-vramBase, v)
	case addr <= oamMask:
		b.PPU.WriteOAM16((addr-oamBase)&0x3FF, v)
	case addr <= romEnd:
		return
	case addr <= sramEnd:
		b.Cartridge.WriteSRAM8(addr-sramBase, uint8(v))
	}
}

func (b *Bus) Read32(addr uint32) uint32 {
	addr &^= 3
	switch {
	case addr < ewramBase:
		return b.BIOS.Read32(addr - biosBase)
	case addr <= ewramMask:
		return b.EWRAM.Read32(addr - ewramBase)
	case addr <= iwramMask:
		return b.IWRAM.Read32(addr - iwramBase)
	case addr <= ioMask:
		return b.IORegs.Read32((addr - ioBase) & 0x3FF)
	case addr <= palMask:
		return uint32(b.PPU.ReadPalette16((addr-palBase)&0x3FF)) | uint32(b.PPU.ReadPalette16((addr-palBase+2)&0x3FF))<<16
	case addr <= vramMask:
		return uint32(b.PPU.ReadVRAM16(addr-vramBase)) | uint32(b.PPU.ReadVRAM16(addr-vramBase+2))<<16
	case addr <= oamMask:
		return uint32(b.PPU.ReadOAM16((addr-oamBase)&0x3FF)) | uint32(b.PPU.ReadOAM16((addr-oamBase+2)&0x3FF))<<16
	case addr <= romEnd:
		return uint32(b.Read16(addr)) | uint32(b.Read16(addr+2))<<16
	case addr <= sramEnd:
		return uint32(b.Cartridge.ReadSRAM8(addr - sramBase))
	default:
		return 0
	}
}

func (b *Bus) Write32(addr uint32, v uint32) {
	addr &^= 3
	switch {
	case addr < ewramBase:
		return
	case addr <= ewramMask:
		b.EWRAM.Write32(addr-ewramBase, v)
	case addr <= iwramMask:
		b.IWRAM.Write32(addr-iwramBase, v)
	case addr <= ioMask:
		b.IORegs.Write32((addr-ioBase)&0x3FF, v)
	case addr <= palMask:
		b.PPU.WritePalette16((addr-palBase)&0x3FF, uint16(v))
		b.PPU.WritePalette16((addr-palBase+2)&0x3FF, uint16(v>>16))
	case addr <= vramMask:
		b.PPU.WriteVRAM16(addr-vramBase, uint16(v))
		b.PPU.WriteVRAM16(addr-vramBase+2, uint16(v>>16))
	case addr <= oamMask:
		b.PPU.WriteOAM16((addr-oamBase)&0x3FF, uint16(v))
		b.PPU.WriteOAM16((addr-oamBase+2)&0x3FF, uint16(v>>16))
	case addr <= romEnd:
		return
	case addr <= sramEnd:
		b.Cartridge.WriteSRAM8(addr-sramBase, uint8(v))
	}
}

// Tick advances the PPU by cycles ticks (§4.1). Timers, DMA, sound,
// and serial I/O are acknowledged by spec but not implemented, so
// there is nothing else to fan out to.
func (b *Bus) Tick(cycles int) {
	b.CycleCount += uint64(cycles)
	b.PPU.Tick(cycles)
}

// PendingInterrupt reports IME && IE&IF != 0; the CPU additionally
// gates this on its own CPSR IRQ-disable bit before acting on it.
func (b *Bus) PendingInterrupt() bool {
	return b.IORegs.PendingInterrupt()
}
