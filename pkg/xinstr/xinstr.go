// Package xinstr decodes and re-emits a single 32-bit x86 instruction. It is
// the length-decoder at the center of the hooking scheme: Decode walks the
// prefix/opcode/ModR/M/SIB/displacement/immediate pipeline far enough to
// report how many bytes one instruction occupies, and Emit writes an
// Instruction record back out byte-for-byte.
package xinstr

import (
	"errors"

	"github.com/x86hook/x86hook/pkg/xopcode"
	"github.com/x86hook/x86hook/pkg/xparam"
)

// Legacy prefix bytes recognised by the decoder.
const (
	prefixLock   = 0xF0
	prefixRepNZ  = 0xF1 // treated as a prefix here, matching the source's REPNZ slot
	prefixRepZ   = 0xF2
	prefixCSSeg  = 0x2E
	prefixSSSeg  = 0x36
	prefixDSSeg  = 0x3E
	prefixESSeg  = 0x26
	prefixFSSeg  = 0x64
	prefixGSSeg  = 0x65
	prefixOpSize = 0x66
	prefixAdSize = 0x67
)

// MaxPrefixes is the most legacy prefix bytes the decoder will accumulate
// before it stops and treats the next byte as the opcode.
const MaxPrefixes = 4

// MaxOpcodeBytes is the most opcode bytes an instruction can have (one, or
// two behind the 0x0F escape).
const MaxOpcodeBytes = 2

// Opcode byte values the decoder and relocator both need to recognise by
// name.
const (
	OpcodeEscape = 0x0F // two-byte opcode escape
	OpcodeCall32 = 0xE8 // CALL rel32
	OpcodeJmp32  = 0xE9 // JMP rel32
	OpcodeJmp8   = 0xEB // JMP rel8
	OpcodePush32 = 0x68 // PUSH imm32
	OpcodePopEAX = 0x58 // POP EAX
)

// ErrCoprocessor is returned by Decode when the opcode maps to the
// coprocessor-escape class (flag xopcode.Coprocessor). The cursor position
// in the input is undefined after this error; callers must not resume
// decoding from it.
var ErrCoprocessor = errors.New("xinstr: coprocessor opcode, decode stopped")

// Instruction is a decoded x86 instruction. It is a pure value: Decode never
// retains a reference into its input buffer, so an Instruction is safe to
// copy and outlives the bytes it was decoded from.
type Instruction struct {
	Size  int           // total byte length consumed
	Flags xopcode.Flags // the opcode-table flag word describing this opcode

	Prefixes int // number of legacy prefix bytes, 0..MaxPrefixes
	Prefix   [MaxPrefixes]byte

	Opcodes int // 1 or 2
	Opcode  [MaxOpcodeBytes]byte

	OpsizePrefix   bool // 0x66 appeared among the prefixes
	AddrsizePrefix bool // 0x67 appeared among the prefixes

	HasModRM bool
	ModRM    byte

	HasSIB bool
	SIB    byte

	HasDisp bool
	Disp    xparam.Value

	HasImmd bool
	Immd    xparam.Value
}

func isPrefixByte(b byte) bool {
	switch b {
	case prefixLock, prefixRepNZ, prefixRepZ,
		prefixCSSeg, prefixSSSeg, prefixDSSeg, prefixESSeg, prefixFSSeg, prefixGSSeg,
		prefixOpSize, prefixAdSize:
		return true
	}
	return false
}
