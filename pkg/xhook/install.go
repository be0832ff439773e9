// Package xhook installs an inline hook: it overwrites the first bytes of
// a target function with a jump into caller-supplied trampoline memory
// that calls back into user code before resuming the original function.
package xhook

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/x86hook/x86hook/pkg/xinstr"
	"github.com/x86hook/x86hook/pkg/xreloc"
)

const (
	sizeofPush32 = 5
	sizeofCall32 = 5
	sizeofPopEAX = 1
	sizeofJmp32  = 5

	// offsetRecoded is where the re-encoded original instructions start,
	// right after the push/call/pop prologue.
	offsetRecoded = sizeofPush32 + sizeofCall32 + sizeofPopEAX

	// maxRecodedSize bounds the re-encoded instructions: at most 5
	// instructions need relocating to cover 5 bytes (the worst case is
	// four 1-byte instructions plus one 16-byte instruction), and the
	// worst per-instruction relocated size is the 9-byte LOOP stub, so
	// 5*16 is a generous upper bound that also covers that stub.
	maxRecodedSize = 5 * 16

	// MinTrampolineSize is the smallest trampoline buffer Install will
	// accept: prologue + worst-case recoded instructions + tail jump.
	MinTrampolineSize = offsetRecoded + maxRecodedSize + sizeofJmp32
)

// ErrTrampolineTooSmall is returned when the caller-supplied trampoline
// buffer is smaller than MinTrampolineSize.
var ErrTrampolineTooSmall = errors.New("xhook: trampoline buffer smaller than MinTrampolineSize")

// ErrShortFunction is returned when fn runs out of bytes before 5 bytes
// of original instructions have been decoded and relocated.
var ErrShortFunction = errors.New("xhook: ran out of function bytes before covering 5 bytes")

// Install builds, in tramp, the hooking code for fn: a prologue that calls
// callback with arg and the live return address, the re-encoded
// instructions originally at the start of fn, and a tail jump back into fn
// past the bytes it is about to overwrite. It then overwrites the first
// bytes of fn with a jump into tramp.
//
// fnAddr and trampAddr are the addresses at which fn and tramp respectively
// will execute; they need not equal unsafe.Pointer values of the slices
// (the caller may be operating on a staged copy), but the emitted relative
// jumps are only valid once the bytes end up executing at those addresses.
//
// On success it returns the number of bytes of fn that were overwritten
// (bytesReplaced, always >= 5) and the number of bytes written into tramp
// (trampBytesUsed). On failure fn is left untouched: Install decodes and
// relocates entirely into tramp before patching fn.
func Install(fn, tramp []byte, fnAddr, trampAddr, arg, callback uint32) (bytesReplaced, trampBytesUsed int, err error) {
	if len(tramp) < MinTrampolineSize {
		return 0, 0, ErrTrampolineTooSmall
	}

	dstPos := emitPrologue(tramp, trampAddr, arg, callback)

	consumed := 0
	srcPos := 0
	for consumed < sizeofJmp32 {
		if srcPos >= len(fn) {
			return 0, 0, ErrShortFunction
		}
		// Decode from a zero-padded window so an instruction running past
		// the end of fn is reported as ErrShortFunction, not read out of range.
		var window [16]byte
		copy(window[:], fn[srcPos:])
		ins, decErr := xinstr.Decode(window[:])
		if decErr != nil {
			return 0, 0, fmt.Errorf("xhook: decode at fn+%d: %w", srcPos, decErr)
		}
		if srcPos+ins.Size > len(fn) {
			return 0, 0, ErrShortFunction
		}
		srcPos += ins.Size
		consumed += ins.Size

		n, relErr := xreloc.Relocate(tramp[dstPos:], &ins, trampAddr+uint32(dstPos), fnAddr+uint32(srcPos))
		if relErr != nil {
			return 0, 0, fmt.Errorf("xhook: relocate at fn+%d: %w", srcPos-ins.Size, relErr)
		}
		dstPos += n
	}

	tramp[dstPos] = xinstr.OpcodeJmp32
	tailTarget := fnAddr + uint32(consumed)
	binary.LittleEndian.PutUint32(tramp[dstPos+1:], tailTarget-(trampAddr+uint32(dstPos)+sizeofJmp32))
	dstPos += sizeofJmp32

	fn[0] = xinstr.OpcodeJmp32
	binary.LittleEndian.PutUint32(fn[1:], trampAddr-(fnAddr+sizeofJmp32))

	return consumed, dstPos, nil
}

// emitPrologue writes PUSH imm32(arg) / CALL rel32(callback) / POP eax at
// the start of tramp and returns the number of bytes written.
func emitPrologue(tramp []byte, trampAddr, arg, callback uint32) int {
	pos := 0

	tramp[pos] = xinstr.OpcodePush32
	binary.LittleEndian.PutUint32(tramp[pos+1:], arg)
	pos += sizeofPush32

	tramp[pos] = xinstr.OpcodeCall32
	binary.LittleEndian.PutUint32(tramp[pos+1:], callback-(trampAddr+uint32(pos)+sizeofCall32))
	pos += sizeofCall32

	tramp[pos] = xinstr.OpcodePopEAX
	pos += sizeofPopEAX

	return pos
}
