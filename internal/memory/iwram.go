package memory

// IWRAM is the 32 KiB internal work RAM, mirrored across its full
// 0x03000000-0x03FFFFFF window (§3).
type IWRAM struct {
	data [IWRAMSize]byte
}

func NewIWRAM() *IWRAM { return &IWRAM{} }

func (w *IWRAM) Read8(addr uint32) uint8     { return w.data[addr%IWRAMSize] }
func (w *IWRAM) Write8(addr uint32, v uint8) { w.data[addr%IWRAMSize] = v }

func (w *IWRAM) Read16(addr uint32) uint16 {
	addr &^= 1
	lo := uint16(w.data[addr%IWRAMSize])
	hi := uint16(w.data[(addr+1)%IWRAMSize])
	return lo | hi<<8
}

func (w *IWRAM) Write16(addr uint32, v uint16) {
	addr &^= 1
	w.data[addr%IWRAMSize] = uint8(v)
	w.data[(addr+1)%IWRAMSize] = uint8(v >> 8)
}

func (w *IWRAM) Read32(addr uint32) uint32 {
	addr &^= 3
	b0 := uint32(w.data[addr%IWRAMSize])
	b1 := uint32(w.data[(addr+1)%IWRAMSize])
	b2 := uint32(w.data[(addr+2)%IWRAMSize])
	b3 := uint32(w.data[(addr+3)%IWRAMSize])
	return b0 | b1<<8 | b2<<16 | b3<<24
}

func (w *IWRAM) Write32(addr uint32, v uint32) {
	addr &^= 3
	w.data[addr%IWRAMSize] = uint8(v)
	w.data[(addr+1)%IWRAMSize] = uint8(v >> 8)
	w.data[(addr+2)%IWRAMSize] = uint8(v >> 16)
	w.data[(addr+3)%IWRAMSize] = uint8(v >> 24)
}
