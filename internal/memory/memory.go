// Package memory holds the GBA's fixed-size, linearly-addressed RAM
// regions (§3's memory table): the boot ROM, on-board work RAM, and
// on-chip work RAM. MMIO, palette/VRAM/OAM, and cartridge ROM/SRAM
// live in their own packages (internal/io, internal/ppu,
// internal/cartridge) since each has its own write semantics; this
// package only covers the three that behave as plain byte arrays.
package memory

const (
	BIOSSize  = 16 * 1024
	EWRAMSize = 256 * 1024
	IWRAMSize = 32 * 1024
)
