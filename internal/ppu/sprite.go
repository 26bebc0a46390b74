package ppu

// objCharBase is the fixed start of sprite tile data within VRAM
// (§4.2.2); it never moves with the background's own char base.
const objCharBase = 0x10000

const maxSprites = 128

// spriteDims maps an OAM entry's shape/size fields to pixel
// dimensions (§4.2.2).
func spriteDims(shape, size uint16) (width, height int) {
	switch shape {
	case 0: // square
		switch size {
		case 0:
			return 8, 8
		case 1:
			return 16, 16
		case 2:
			return 32, 32
		default:
			return 64, 64
		}
	case 1: // horizontal
		switch size {
		case 0:
			return 16, 8
		case 1:
			return 32, 8
		case 2:
			return 32, 16
		default:
			return 64, 32
		}
	default: // vertical
		switch size {
		case 0:
			return 8, 16
		case 1:
			return 8, 32
		case 2:
			return 16, 32
		default:
			return 32, 64
		}
	}
}

// renderSprites walks OAM in index order and paints the sprites
// contributing to line at the given priority level, interleaved with
// backgrounds of the same priority (§4.2.2).
func (p *PPU) renderSprites(line int, priority int) {
	for i := 0; i < maxSprites; i++ {
		attr0 := p.oamEntry16(i, 0)
		attr1 := p.oamEntry16(i, 2)
		attr2 := p.oamEntry16(i, 4)

		objMode := (attr0 >> 8) & 0x3
		if objMode == 2 { // disabled (non-affine hidden bit)
			continue
		}
		if int((attr2>>10)&0x3) != priority {
			continue
		}

		shape := (attr0 >> 14) & 0x3
		size := (attr1 >> 14) & 0x3
		width, height := spriteDims(shape, size)

		y := int(attr0 & 0xFF)
		if y+height > 256 {
			y -= 256
		}
		if line < y || line >= y+height {
			continue
		}

		x := int(attr1 & 0x1FF)
		if x >= 0x1C0 {
			x -= 0x200
		}

		hflip := attr1&0x1000 != 0
		vflip := attr1&0x2000 != 0
		colorDepth8 := attr0&0x2000 != 0
		paletteBank := uint32((attr2 >> 12) & 0xF)
		tileID := uint32(attr2 & 0x3FF)

		rowInSprite := line - y
		if vflip {
			rowInSprite = height - 1 - rowInSprite
		}
		tileRow := rowInSprite / 8
		rowInTile := rowInSprite % 8
		tilesWide := width / 8
		tileSlots := uint32(1)
		if colorDepth8 {
			tileSlots = 2
		}

		for col := 0; col < width; col++ {
			screenX := x + col
			if screenX < 0 || screenX >= ScreenWidth {
				continue
			}
			colInSprite := col
			if hflip {
				colInSprite = width - 1 - colInSprite
			}
			tileCol := colInSprite / 8
			colInTile := colInSprite % 8

			tileIndex := tileID + uint32(tileRow*tilesWide+tileCol)*tileSlots
			idx := p.tilePixelIndex(objCharBase, tileIndex, colorDepth8, rowInTile, colInTile)
			if idx == 0 {
				continue
			}
			p.frame[line*ScreenWidth+screenX] = p.objPaletteColor(idx, colorDepth8, paletteBank)
		}
	}
}

func (p *PPU) oamEntry16(index int, byteOffset int) uint16 {
	addr := uint32(index*8 + byteOffset)
	return uint16(p.oam[addr]) | uint16(p.oam[addr+1])<<8
}

// objPaletteColor looks up a sprite pixel in the OBJ half of palette
// RAM, which starts at byte offset 0x200 (§4.2.2).
func (p *PPU) objPaletteColor(idx uint32, colorDepth8 bool, bank uint32) uint16 {
	if colorDepth8 {
		return p.palette16(0x200 + idx*2)
	}
	return p.palette16(0x200 + (bank*16+idx)*2)
}
