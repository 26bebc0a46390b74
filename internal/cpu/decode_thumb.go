package cpu

// ThumbForm is one of the nineteen THUMB instruction formats (§4.3.4).
type ThumbForm uint8

const (
	ThumbUnknown ThumbForm = iota
	ThumbMoveShifted
	ThumbAddSubtract
	ThumbImmediateOp // MOV/CMP/ADD/SUB Rd, #imm8
	ThumbALUOp       // two-register ALU ops (AND..MVN)
	ThumbHiRegBX     // ADD/CMP/MOV on hi registers, and BX
	ThumbPCRelLoad   // LDR Rd, [PC, #imm]
	ThumbLoadStoreReg
	ThumbLoadStoreSignExt
	ThumbLoadStoreImm
	ThumbLoadStoreHalf
	ThumbSPRelLoadStore
	ThumbLoadAddress
	ThumbAddOffsetSP
	ThumbPushPop
	ThumbMultipleLoadStore
	ThumbCondBranch
	ThumbSWI
	ThumbUncondBranch
	ThumbLongBranchLink
)

// thumbDecodeTable maps the top 10 bits of a 16-bit THUMB opcode to
// its format (§4.3.4).
var thumbDecodeTable [1024]ThumbForm

func init() {
	for key := 0; key < 1024; key++ {
		thumbDecodeTable[key] = classifyThumb(uint16(key << 6))
	}
}

func classifyThumb(opHigh uint16) ThumbForm {
	switch {
	case opHigh&0xF800 == 0x1800: // 000 11 ...
		return ThumbAddSubtract
	case opHigh&0xE000 == 0x0000: // 000 xx (not add/sub)
		return ThumbMoveShifted
	case opHigh&0xE000 == 0x2000: // 001 xx
		return ThumbImmediateOp
	case opHigh&0xFC00 == 0x4000: // 0100 00
		return ThumbALUOp
	case opHigh&0xFC00 == 0x4400: // 0100 01
		return ThumbHiRegBX
	case opHigh&0xF800 == 0x4800: // 0100 1
		return ThumbPCRelLoad
	case opHigh&0xF200 == 0x5000: // 0101 xx0
		return ThumbLoadStoreReg
	case opHigh&0xF200 == 0x5200: // 0101 xx1
		return ThumbLoadStoreSignExt
	case opHigh&0xE000 == 0x6000: // 011 xx
		return ThumbLoadStoreImm
	case opHigh&0xF000 == 0x8000: // 1000
		return ThumbLoadStoreHalf
	case opHigh&0xF000 == 0x9000: // 1001
		return ThumbSPRelLoadStore
	case opHigh&0xF000 == 0xA000: // 1010
		return ThumbLoadAddress
	case opHigh&0xFF00 == 0xB000: // 1011 0000
		return ThumbAddOffsetSP
	case opHigh&0xF600 == 0xB400: // 1011 x10
		return ThumbPushPop
	case opHigh&0xF000 == 0xC000: // 1100
		return ThumbMultipleLoadStore
	case opHigh&0xFF00 == 0xDF00: // 1101 1111
		return ThumbSWI
	case opHigh&0xF000 == 0xD000: // 1101
		return ThumbCondBranch
	case opHigh&0xF800 == 0xE000: // 11100
		return ThumbUncondBranch
	case opHigh&0xF000 == 0xF000: // 1111
		return ThumbLongBranchLink
	default:
		return ThumbUnknown
	}
}
