package memory

import "fmt"

// BIOS is the GBA's internal boot ROM. Unlike the teacher's version,
// its bytes are supplied at construction (LoadFirmware) rather than
// through a //go:embed package that doesn't exist in this module —
// an embedding host hands in a firmware image the way it hands in a
// cartridge image.
type BIOS struct {
	data [BIOSSize]byte
}

func NewBIOS() *BIOS { return &BIOS{} }

// LoadFirmware installs firmware bytes, which must be exactly
// BIOSSize long (§4.1's load_firmware operation).
func (b *BIOS) LoadFirmware(data []byte) error {
	if len(data) != BIOSSize {
		return fmt.Errorf("firmware image must be exactly %d bytes, got %d", BIOSSize, len(data))
	}
	copy(b.data[:], data)
	return nil
}

func (b *BIOS) Read8(addr uint32) byte { return b.data[addr%BIOSSize] }

func (b *BIOS) Read16(addr uint32) uint16 {
	addr &^= 1
	lo := uint16(b.data[addr%BIOSSize])
	hi := uint16(b.data[(addr+1)%BIOSSize])
	return lo | hi<<8
}

func (b *BIOS) Read32(addr uint32) uint32 {
	addr &^= 3
	b0 := uint32(b.data[addr%BIOSSize])
	b1 := uint32(b.data[(addr+1)%BIOSSize])
	b2 := uint32(b.data[(addr+2)%BIOSSize])
	b3 := uint32(b.data[(addr+3)%BIOSSize])
	return b0 | b1<<8 | b2<<16 | b3<<24
}
