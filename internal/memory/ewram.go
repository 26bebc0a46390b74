package memory

// EWRAM is the 256 KiB external work RAM, mirrored across its full
// 0x02000000-0x02FFFFFF window (§3).
type EWRAM struct {
	data [EWRAMSize]byte
}

func NewEWRAM() *EWRAM { return &EWRAM{} }

func (e *EWRAM) Read8(addr uint32) uint8  { return e.data[addr%EWRAMSize] }
func (e *EWRAM) Write8(addr uint32, v uint8) { e.data[addr%EWRAMSize] = v }

func (e *EWRAM) Read16(addr uint32) uint16 {
	addr &^= 1
	lo := uint16(e.data[addr%EWRAMSize])
	hi := uint16(e.data[(addr+1)%EWRAMSize])
	return lo | hi<<8
}

func (e *EWRAM) Write16(addr uint32, v uint16) {
	addr &^= 1
	e.data[addr%EWRAMSize] = uint8(v)
	e.data[(addr+1)%EWRAMSize] = uint8(v >> 8)
}

func (e *EWRAM) Read32(addr uint32) uint32 {
	addr &^= 3
	b0 := uint32(e.data[addr%EWRAMSize])
	b1 := uint32(e.data[(addr+1)%EWRAMSize])
	b2 := uint32(e.data[(addr+2)%EWRAMSize])
	b3 := uint32(e.data[(addr+3)%EWRAMSize])
	return b0 | b1<<8 | b2<<16 | b3<<24
}

func (e *EWRAM) Write32(addr uint32, v uint32) {
	addr &^= 3
	e.data[addr%EWRAMSize] = uint8(v)
	e.data[(addr+1)%EWRAMSize] = uint8(v >> 8)
	e.data[(addr+2)%EWRAMSize] = uint8(v >> 16)
	e.data[(addr+3)%EWRAMSize] = uint8(v >> 24)
}
