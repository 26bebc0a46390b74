package cartridge

import "fmt"

const (
	// ROMSize is the full 32 MiB address window mirrored across the
	// three wait-state regions (§3); a cartridge image smaller than
	// this is zero-padded out to the full window, not mirrored within
	// its own length.
	ROMSize = 32 * 1024 * 1024
	// SRAMSize is the save-RAM window (§3). The teacher sized this at
	// 1 KiB, a copy-paste of the OAM region's size comment.
	SRAMSize = 64 * 1024
)

// Cartridge holds the loaded game image and its battery-backed save
// RAM. The ROM window is always the full 32 MiB, with a shorter image
// copied at the front and the tail left zero (§6 "shorter images leave
// the tail zero-filled"); only the three wait-state windows mirror the
// same backing store, never a short image onto itself.
type Cartridge struct {
	rom  [ROMSize]byte
	sram [SRAMSize]byte
}

// NewCartridge validates and wraps a cartridge ROM image (SPEC_FULL.md
// §2's construction-time error surface).
func NewCartridge(romData []byte) (*Cartridge, error) {
	if len(romData) == 0 {
		return nil, fmt.Errorf("cartridge image is empty")
	}
	if len(romData) > ROMSize {
		return nil, fmt.Errorf("cartridge image exceeds %d bytes (got %d)", ROMSize, len(romData))
	}
	c := &Cartridge{}
	copy(c.rom[:], romData)
	return c, nil
}

// ReadROM8 reads a byte from anywhere in the 32 MiB ROM window,
// wrapping across the three mirrored wait-state windows.
func (c *Cartridge) ReadROM8(addr uint32) uint8 {
	return c.rom[addr%ROMSize]
}

func (c *Cartridge) ReadSRAM8(addr uint32) uint8    { return c.sram[addr%SRAMSize] }
func (c *Cartridge) WriteSRAM8(addr uint32, v uint8) { c.sram[addr%SRAMSize] = v }
