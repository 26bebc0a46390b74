package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GoBA/internal/memory"
)

func newTestCore(t *testing.T) *Core {
	t.Helper()
	firmware := make([]byte, memory.BIOSSize)
	cartridgeData := make([]byte, 4) // zero-filled ROM decodes as harmless ANDEQ no-ops
	c, err := NewCore(firmware, cartridgeData)
	require.NoError(t, err)
	return c
}

// TestPPUFaultSurfacesThroughCore drives the core long enough to reach
// the first scanline's render cycle with an unimplemented display mode
// selected, and checks the PPU's fault reaches Core.Fault/LastFault
// the same way a CPU fault would (§7).
func TestPPUFaultSurfacesThroughCore(t *testing.T) {
	c := newTestCore(t)
	const regDISPCNT = 0x04000000
	c.Bus.Write16(regDISPCNT, 1) // mode 1: out of scope

	require.Nil(t, c.Fault())
	for i := 0; i < CyclesPerFrame && c.Fault() == nil; i++ {
		c.Step()
	}

	err := c.Fault()
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "unimplemented display mode 1")
	}
	pc, ok := c.LastFault()
	assert.True(t, ok)
	assert.Equal(t, c.CPU.PC(), pc)
}

// TestHBlankAndVCountTimingThroughCore covers spec.md §8 scenario 6 at
// the Core/Bus level: each no-op instruction over the zero-filled ROM
// ticks the bus (and so the PPU) by exactly one cycle, so 1,007 Step
// calls from reset land exactly on the hblank-set boundary, and 1,232
// land on the next line with VCOUNT advanced to 1.
func TestHBlankAndVCountTimingThroughCore(t *testing.T) {
	c := newTestCore(t)
	const regDISPSTAT = 0x04000004
	const regVCOUNT = 0x04000006

	for i := 0; i < 1007; i++ {
		c.Step()
	}
	assert.NotZero(t, c.Bus.Read16(regDISPSTAT)&(1<<1), "hblank bit should be set at cycle 1007")
	assert.Equal(t, uint16(0), c.Bus.Read16(regVCOUNT))

	for i := 0; i < 1232-1007; i++ {
		c.Step()
	}
	assert.Zero(t, c.Bus.Read16(regDISPSTAT)&(1<<1), "hblank bit should clear at line end")
	assert.Equal(t, uint16(1), c.Bus.Read16(regVCOUNT))
}

func TestResetClearsFault(t *testing.T) {
	c := newTestCore(t)
	c.Bus.Write16(0x04000000, 1)
	for i := 0; i < CyclesPerFrame && c.Fault() == nil; i++ {
		c.Step()
	}
	require.Error(t, c.Fault())

	c.Reset()

	assert.Nil(t, c.Fault())
	_, ok := c.LastFault()
	assert.False(t, ok)
}
