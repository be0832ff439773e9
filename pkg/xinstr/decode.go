package xinstr

import (
	"github.com/x86hook/x86hook/pkg/xopcode"
	"github.com/x86hook/x86hook/pkg/xparam"
)

// Decode fetches one x86 instruction from the start of code and returns the
// filled-in record; the number of bytes consumed is ins.Size. It runs the pipeline prefixes -> opcode -> ModR/M -> SIB ->
// displacement -> immediate, each stage reading from where the previous one
// left off.
//
// code must hold at least as many bytes as the instruction actually
// occupies; the worst case is 16 bytes (4 prefixes + 2 opcode + modrm + sib
// + 4 disp + 4 immd), so callers decoding at an arbitrary address should
// supply a 16-byte (or longer) window where possible.
func Decode(code []byte) (Instruction, error) {
	var ins Instruction
	pos := 0

	pos += detectPrefixes(&ins, code[pos:])

	n, err := detectOpcode(&ins, code[pos:])
	pos += n
	if err != nil {
		return Instruction{}, err
	}

	pos += detectModRM(&ins, code[pos:])
	pos += detectSIB(&ins, code[pos:])
	pos += detectDisp(&ins, code[pos:])
	pos += detectImmd(&ins, code[pos:])

	ins.Size = pos
	return ins, nil
}

// detectPrefixes accumulates legacy prefix bytes, up to MaxPrefixes, and
// returns how many bytes it consumed.
func detectPrefixes(ins *Instruction, code []byte) int {
	n := 0
	for ins.Prefixes < MaxPrefixes && n < len(code) && isPrefixByte(code[n]) {
		b := code[n]
		ins.Prefix[ins.Prefixes] = b
		ins.Prefixes++
		if b == prefixOpSize {
			ins.OpsizePrefix = true
		} else if b == prefixAdSize {
			ins.AddrsizePrefix = true
		}
		n++
	}
	return n
}

// detectOpcode reads the opcode byte(s), following the 0x0F escape into
// Table2 when present, and reports ErrCoprocessor for the coprocessor
// escape class.
func detectOpcode(ins *Instruction, code []byte) (int, error) {
	ins.Flags = xopcode.Table1[code[0]]
	ins.Opcode[0] = code[0]
	ins.Opcodes = 1
	n := 1

	if ins.Flags&xopcode.Escape != 0 {
		ins.Flags = xopcode.Table2[code[1]]
		ins.Opcode[1] = code[1]
		ins.Opcodes = 2
		n = 2
	} else if ins.Flags&xopcode.Coprocessor != 0 {
		return n, ErrCoprocessor
	}
	return n, nil
}

// detectModRM reads the ModR/M byte when the opcode flags call for one.
func detectModRM(ins *Instruction, code []byte) int {
	if ins.Flags&xopcode.HasModRM == 0 {
		return 0
	}
	ins.HasModRM = true
	ins.ModRM = code[0]
	return 1
}

// detectSIB reads the SIB byte. The SIB byte can only be present when a
// ModR/M byte is present and ModR/M reads 00/01/10-xxx-100 (mod is not 11
// and r/m is 100).
//
// The source code gates this on the operand-size prefix (OpsizePrefix ==
// false), not the address-size prefix, even though per Intel the SIB byte's
// presence depends on *address* size, not operand size. This is the open
// question flagged in the spec's design notes: the decoder replicates the
// source's OpsizePrefix gate verbatim rather than "fixing" it to gate on
// AddrsizePrefix instead. See TestDecode_SIBGateUsesOpsizePrefix and
// TestDecode_SIBGateDivergesFromAddrsizeConvention.
func detectSIB(ins *Instruction, code []byte) int {
	if !ins.HasModRM {
		return 0
	}
	if ins.OpsizePrefix {
		return 0
	}
	switch ins.ModRM & 0xC7 {
	case 0x04, 0x44, 0x84:
		ins.HasSIB = true
		ins.SIB = code[0]
		return 1
	}
	return 0
}

// displacement size, resolved by detectDisp below.
type dispKind int

const (
	dispNone dispKind = iota
	dispByte
	dispWord
	dispDWord
)

// detectDisp reads the ModR/M-implied displacement, whose size depends on
// the active address-size mode and the mod/r-m bits of ModR/M.
func detectDisp(ins *Instruction, code []byte) int {
	if !ins.HasModRM {
		return 0
	}

	kind := dispNone

	if ins.AddrsizePrefix {
		// 16-bit address mode.
		switch ins.ModRM & 0xC0 {
		case 0x00:
			if ins.ModRM&0x07 == 0x06 {
				kind = dispWord
			}
		case 0x40:
			kind = dispByte
		case 0x80:
			kind = dispWord
		default:
			return 0
		}
	} else {
		// 32-bit address mode.
		switch ins.ModRM & 0xC0 {
		case 0x00:
			if ins.ModRM&0x07 == 0x05 {
				kind = dispDWord
			}
		case 0x40:
			kind = dispByte
		case 0x80:
			kind = dispDWord
		default:
			return 0
		}
	}

	if kind == dispNone {
		return 0
	}

	ins.HasDisp = true
	switch kind {
	case dispByte:
		return ins.Disp.ReadFrom(xparam.Byte, code)
	case dispWord:
		return ins.Disp.ReadFrom(xparam.Word, code)
	default:
		return ins.Disp.ReadFrom(xparam.DWord, code)
	}
}

// detectImmd reads the immediate operand, whose kind is chosen by the
// single immediate-kind bit set in the opcode flags (possibly adjusted by
// the active operand-size or address-size prefix).
func detectImmd(ins *Instruction, code []byte) int {
	switch ins.Flags.ImmKind() {
	case xopcode.ImmByte:
		ins.HasImmd = true
		return ins.Immd.ReadFrom(xparam.Byte, code)
	case xopcode.ImmWord:
		ins.HasImmd = true
		return ins.Immd.ReadFrom(xparam.Word, code)
	case xopcode.ImmDWord:
		ins.HasImmd = true
		return ins.Immd.ReadFrom(xparam.DWord, code)
	case xopcode.ImmQWord:
		ins.HasImmd = true
		return ins.Immd.ReadFrom(xparam.QWord, code)
	case xopcode.ImmWordOrDWord:
		ins.HasImmd = true
		if ins.OpsizePrefix {
			return ins.Immd.ReadFrom(xparam.Word, code)
		}
		return ins.Immd.ReadFrom(xparam.DWord, code)
	case xopcode.ImmFarPtr:
		ins.HasImmd = true
		if ins.AddrsizePrefix {
			return ins.Immd.ReadFrom(xparam.DWord, code)
		}
		return ins.Immd.ReadFrom(xparam.OffSel, code)
	case xopcode.Imm24:
		ins.HasImmd = true
		return ins.Immd.ReadFrom(xparam.D24, code)
	default:
		return 0
	}
}
