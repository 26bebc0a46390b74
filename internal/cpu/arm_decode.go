package cpu

// decodeARM classifies a 32-bit ARM instruction via armDecodeTable
// and parses it into the matching instruction struct.
func decodeARM(instr uint32) (ArmDecodeClass, interface{}) {
	cond := ARMCondition((instr >> 28) & 0xF)
	hi := (instr >> 20) & 0xFF
	lo := (instr >> 4) & 0xF
	class := armDecodeTable[(hi<<4)|lo]

	base := ARMInstruction{Cond: cond}

	switch class {
	case ClassALU:
		i := DataProcessingInstruction{
			ARMInstruction: base,
			I:              instr&(1<<25) != 0,
			Opcode:         ARMDataProcessingOperation((instr >> 21) & 0xF),
			S:              instr&(1<<20) != 0,
			Rn:             uint8((instr >> 16) & 0xF),
			Rd:             uint8((instr >> 12) & 0xF),
			ShiftType:      ARMShiftType((instr >> 5) & 0x3),
			R:              instr&(1<<4) != 0,
			Rm:             uint8(instr & 0xF),
		}
		if i.I {
			i.Is = uint8((instr >> 8) & 0xF)
			i.Nn = uint8(instr & 0xFF)
		} else if i.R {
			i.Rs = uint8((instr >> 8) & 0xF)
		} else {
			i.Is = uint8((instr >> 7) & 0x1F)
		}
		return class, i

	case ClassSingleTransfer:
		i := SingleTransferInstruction{
			ARMInstruction: base,
			I:              instr&(1<<25) != 0,
			P:              instr&(1<<24) != 0,
			U:              instr&(1<<23) != 0,
			B:              instr&(1<<22) != 0,
			W:              instr&(1<<21) != 0,
			L:              instr&(1<<20) != 0,
			Rn:             uint8((instr >> 16) & 0xF),
			Rd:             uint8((instr >> 12) & 0xF),
		}
		if i.I {
			i.ShiftType = ARMShiftType((instr >> 5) & 0x3)
			i.Is = uint8((instr >> 7) & 0x1F)
			i.Rm = uint8(instr & 0xF)
		} else {
			i.Imm = instr & 0xFFF
		}
		return class, i

	case ClassHalfwordTransfer:
		i := HalfwordTransferInstruction{
			ARMInstruction: base,
			P:              instr&(1<<24) != 0,
			U:              instr&(1<<23) != 0,
			I:              instr&(1<<22) != 0,
			W:              instr&(1<<21) != 0,
			L:              instr&(1<<20) != 0,
			Rn:             uint8((instr >> 16) & 0xF),
			Rd:             uint8((instr >> 12) & 0xF),
			Sign:           instr&(1<<6) != 0,
			Half:           instr&(1<<5) != 0,
			Rm:             uint8(instr & 0xF),
		}
		if i.I {
			i.ImmOffset = uint8(((instr>>8)&0xF)<<4 | (instr & 0xF))
		}
		return class, i

	case ClassBlockTransfer:
		return class, BlockTransferInstruction{
			ARMInstruction: base,
			P:              instr&(1<<24) != 0,
			U:              instr&(1<<23) != 0,
			S:              instr&(1<<22) != 0,
			W:              instr&(1<<21) != 0,
			L:              instr&(1<<20) != 0,
			Rn:             uint8((instr >> 16) & 0xF),
			RegisterList:   uint16(instr & 0xFFFF),
		}

	case ClassBranch:
		offset := instr & 0x00FFFFFF
		signed := int32(offset<<8) >> 8 // sign-extend 24 -> 32
		return class, BranchInstruction{
			ARMInstruction: base,
			Link:           instr&(1<<24) != 0,
			Offset:         signed << 2,
		}

	case ClassBranchExchange:
		return class, BranchExchangeInstruction{
			ARMInstruction: base,
			Rn:             uint8(instr & 0xF),
		}

	case ClassSWI:
		return class, SWIInstruction{ARMInstruction: base, Comment: instr & 0x00FFFFFF}

	case ClassSWP:
		return class, SwapInstruction{
			ARMInstruction: base,
			B:              instr&(1<<22) != 0,
			Rn:             uint8((instr >> 16) & 0xF),
			Rd:             uint8((instr >> 12) & 0xF),
			Rm:             uint8(instr & 0xF),
		}

	case ClassMUL:
		return class, MultiplyInstruction{
			ARMInstruction: base,
			A:              instr&(1<<21) != 0,
			S:              instr&(1<<20) != 0,
			Rd:             uint8((instr >> 16) & 0xF),
			Rn:             uint8((instr >> 12) & 0xF),
			Rs:             uint8((instr >> 8) & 0xF),
			Rm:             uint8(instr & 0xF),
		}

	case ClassMULL:
		return class, MultiplyLongInstruction{
			ARMInstruction: base,
			Signed:         instr&(1<<22) != 0,
			A:              instr&(1<<21) != 0,
			S:              instr&(1<<20) != 0,
			RdHi:           uint8((instr >> 16) & 0xF),
			RdLo:           uint8((instr >> 12) & 0xF),
			Rs:             uint8((instr >> 8) & 0xF),
			Rm:             uint8(instr & 0xF),
		}

	case ClassMRS:
		return class, MRSInstruction{
			ARMInstruction: base,
			FromSPSR:       instr&(1<<22) != 0,
			Rd:             uint8((instr >> 12) & 0xF),
		}

	case ClassMSR:
		i := MSRInstruction{
			ARMInstruction: base,
			ToSPSR:         instr&(1<<22) != 0,
			WriteFlags:     instr&(1<<19) != 0,
			WriteCtl:       instr&(1<<16) != 0,
			I:              instr&(1<<25) != 0,
		}
		if i.I {
			rot := (instr >> 8) & 0xF
			i.Imm = rorImmediate(instr&0xFF, rot*2)
		} else {
			i.Rm = uint8(instr & 0xF)
		}
		return class, i

	default:
		return ClassNOP, nil
	}
}

func rorImmediate(v, amount uint32) uint32 {
	amount %= 32
	if amount == 0 {
		return v
	}
	return (v >> amount) | (v << (32 - amount))
}
