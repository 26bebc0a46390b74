package ppu

import "GoBA/internal/io"

// bgTileDims returns a background's tile-map dimensions in tiles for
// its BGxCNT size field (§4.2.1).
func bgTileDims(size uint16) (width, height int) {
	switch size {
	case 0:
		return 32, 32
	case 1:
		return 64, 32
	case 2:
		return 32, 64
	default:
		return 64, 64
	}
}

func (p *PPU) bgCnt(n int) uint16 {
	return p.regs.Read16(uint32(io.RegBG0CNT + n*2))
}

func (p *PPU) bgHofs(n int) uint16 {
	return p.regs.Read16(uint32(io.RegBG0HOFS+n*4)) & 0x1FF
}

func (p *PPU) bgVofs(n int) uint16 {
	return p.regs.Read16(uint32(io.RegBG0VOFS+n*4)) & 0x1FF
}

func (p *PPU) bgPriority(n int) int { return int(p.bgCnt(n) & 0x3) }

// renderMode0 paints the four text backgrounds and interleaves
// sprites by priority level (§4.2): for each priority, lowest to
// highest precedence, first the backgrounds at that priority (ties
// broken by ascending background index, which is painted last so it
// ends up on top), then the sprites at that same priority.
func (p *PPU) renderMode0(line int) {
	for prio := 3; prio >= 0; prio-- {
		for n := 3; n >= 0; n-- {
			if p.bgEnabled(n) && p.bgPriority(n) == prio {
				p.renderTextBG(n, line)
			}
		}
		p.renderSprites(line, prio)
	}
}

// renderTextBG implements the text-background scanline algorithm of
// §4.2.1: walk tile columns left to right starting from the scrolled
// position, looking up each tile-map entry's id/palette/flip bits,
// and emitting the tile's current row pixel by pixel.
func (p *PPU) renderTextBG(n int, line int) {
	cnt := p.bgCnt(n)
	colorDepth8 := cnt&0x80 != 0
	charBase := uint32((cnt>>2)&0x3) * 0x4000
	screenBase := uint32((cnt>>8)&0x1F) * 0x800
	sizeField := (cnt >> 14) & 0x3
	tmWidth, tmHeight := bgTileDims(sizeField)

	hofs := int(p.bgHofs(n))
	vofs := int(p.bgVofs(n))

	y := line + vofs
	tileRow := (y &^ 7) / 8 % tmHeight
	rowInTile := y & 7

	startTileCol := ((hofs &^ 7) / 8) % tmWidth
	subTileX := hofs & 7

	tileCol := startTileCol
	emitted := 0
	for emitted < ScreenWidth {
		entry := p.vram16(screenBase + tileMapEntryOffset(tileCol, tileRow, tmWidth, sizeField))
		tileID := uint32(entry & 0x3FF)
		paletteBank := uint32((entry >> 12) & 0xF)
		hflip := entry&0x400 != 0
		vflip := entry&0x800 != 0

		rowWithinTile := rowInTile
		if vflip {
			rowWithinTile = 7 - rowInTile
		}

		startPx := 0
		if emitted == 0 {
			startPx = subTileX
		}
		for px := startPx; px < 8 && emitted < ScreenWidth; px++ {
			colInTile := px
			if hflip {
				colInTile = 7 - px
			}
			idx := p.tilePixelIndex(charBase, tileID, colorDepth8, rowWithinTile, colInTile)
			if idx != 0 {
				p.frame[line*ScreenWidth+emitted] = p.bgPaletteColor(idx, colorDepth8, paletteBank)
			}
			emitted++
		}
		tileCol = (tileCol + 1) % tmWidth
	}
}

// tileMapEntryOffset locates a tile-map entry's byte offset within
// the screen-base region, accounting for the multi-screen-block
// layout of the wider/taller map sizes.
func tileMapEntryOffset(tileCol, tileRow, tmWidth int, sizeField uint16) uint32 {
	blockCol := tileCol / 32
	blockRow := tileRow / 32
	localCol := tileCol % 32
	localRow := tileRow % 32

	block := 0
	switch sizeField {
	case 1:
		block = blockCol
	case 2:
		block = blockRow
	case 3:
		block = blockRow*2 + blockCol
	}
	return uint32(block*0x800 + (localRow*32+localCol)*2)
}

func (p *PPU) tilePixelIndex(charBase, tileID uint32, colorDepth8 bool, row, col int) uint32 {
	if colorDepth8 {
		addr := charBase + tileID*64 + uint32(row*8+col)
		return uint32(p.vram[mirrorVRAMAddr(addr)])
	}
	addr := charBase + tileID*32 + uint32(row*4+col/2)
	b := p.vram[mirrorVRAMAddr(addr)]
	if col&1 != 0 {
		return uint32(b >> 4)
	}
	return uint32(b & 0xF)
}

func (p *PPU) bgPaletteColor(idx uint32, colorDepth8 bool, bank uint32) uint16 {
	if colorDepth8 {
		return p.palette16(idx * 2)
	}
	return p.palette16((bank*16 + idx) * 2)
}
