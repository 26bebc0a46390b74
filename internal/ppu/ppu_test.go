package ppu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"GoBA/internal/io"
)

func TestRenderScanlineUnimplementedModeRaisesFault(t *testing.T) {
	regs := io.NewIORegs()
	regs.Write16(io.RegDISPCNT, 1) // mode 1: affine background, out of scope
	p := NewPPU(regs)

	p.renderScanline(0)

	f := p.Fault()
	if assert.NotNil(t, f) {
		assert.Equal(t, 0, f.Line)
		assert.Contains(t, f.Error(), "unimplemented display mode 1")
	}
}

func TestRenderScanlineMode3NoFault(t *testing.T) {
	regs := io.NewIORegs()
	regs.Write16(io.RegDISPCNT, 3) // mode 3: linear RGB555 bitmap, supported
	p := NewPPU(regs)

	p.renderScanline(0)

	assert.Nil(t, p.Fault())
}

// TestHBlankAndVCountTiming covers the §8 scenario: from line 0 column
// 0, ticking exactly 1,007 cycles sets the hblank DISPSTAT bit, and
// ticking on to exactly 1,232 cycles clears it again, advances VCOUNT
// to 1, and advances Line() to 1.
func TestHBlankAndVCountTiming(t *testing.T) {
	regs := io.NewIORegs()
	p := NewPPU(regs)

	p.Tick(hblankCycle)

	assert.NotZero(t, regs.Read16(io.RegDISPSTAT)&dispstatHBlank, "hblank bit should be set at cycle 1007")
	assert.Equal(t, 0, p.Line())
	assert.Equal(t, uint16(0), regs.Read16(io.RegVCOUNT))

	p.Tick(cyclesPerLine - hblankCycle)

	assert.Zero(t, regs.Read16(io.RegDISPSTAT)&dispstatHBlank, "hblank bit should clear at line end")
	assert.Equal(t, 1, p.Line())
	assert.Equal(t, uint16(1), regs.Read16(io.RegVCOUNT))
}
