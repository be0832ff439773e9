// Package xreloc rewrites a single decoded x86 instruction so that, moved
// from its original address to a new one, it still transfers control to the
// exact absolute destination it would have from the original site.
package xreloc

import (
	"errors"

	"github.com/x86hook/x86hook/pkg/xinstr"
	"github.com/x86hook/x86hook/pkg/xopcode"
	"github.com/x86hook/x86hook/pkg/xparam"
)

// ErrUnsupported is returned when an instruction is flagged PC-relative but
// matches none of the five recognised relocate cases (short-Jcc opcode 0x7F,
// for instance). Nothing is written to dst in that case.
var ErrUnsupported = errors.New("xreloc: relative instruction has no recognised relocate case")

const (
	sizeofRel32   = 5 // CALL rel32 / JMP rel32, one opcode byte + 4-byte disp
	sizeofNearJcc = 6 // 0F 8x + 4-byte disp
	sizeofLoop    = 9 // the LOOP/LOOPE/LOOPN/JCXZ stub, see relocateLoopStub
)

// Relocate writes, at dst (which the caller has already positioned at
// absolute address dstAddr), an instruction equivalent to ins — which was
// originally decoded ending at absolute address srcAddr (the cursor
// position immediately after the original instruction, not its start). It
// returns the number of bytes written.
//
// Non-relative instructions are a straight re-emit, unaffected by dstAddr
// or srcAddr. Relative instructions are dispatched to one of five cases,
// tried in order; an instruction flagged Relative that fits none of them
// is ErrUnsupported.
func Relocate(dst []byte, ins *xinstr.Instruction, dstAddr, srcAddr uint32) (int, error) {
	if ins.Flags&xopcode.Relative == 0 {
		return xinstr.Emit(dst, ins), nil
	}

	op0 := ins.Opcode[0]
	switch {
	case ins.Opcodes == 1 && (op0 == xinstr.OpcodeCall32 || op0 == xinstr.OpcodeJmp32):
		return relocateRel32(dst, op0, dstAddr, srcAddr, ins.Immd.Int32())

	case ins.Opcodes == 1 && op0 == xinstr.OpcodeJmp8:
		return relocateRel32(dst, xinstr.OpcodeJmp32, dstAddr, srcAddr, ins.Immd.Int32())

	case ins.Opcodes == 1 && op0 >= 0x70 && op0 <= 0x7E:
		return relocateNearJcc(dst, op0+0x10, dstAddr, srcAddr, ins.Immd.Int32())

	case ins.Opcodes == 2 && op0 == xinstr.OpcodeEscape && ins.Opcode[1] >= 0x80 && ins.Opcode[1] <= 0x8F:
		return relocateNearJcc(dst, ins.Opcode[1], dstAddr, srcAddr, ins.Immd.Int32())

	case ins.Opcodes == 1 && op0 >= 0xE0 && op0 <= 0xE3:
		return relocateLoopStub(dst, op0, dstAddr, srcAddr, ins.Immd.Int32())
	}

	return 0, ErrUnsupported
}

// rel32 computes the signed 32-bit displacement a jump positioned so that
// its next instruction starts at from must carry to land exactly on to.
func rel32(from, to uint32) int32 {
	return int32(to - from)
}

// relocateRel32 handles CALL rel32, and JMP rel32/rel8 widened to JMP rel32:
// one opcode byte followed by a fresh 32-bit relative displacement, 5 bytes
// total.
func relocateRel32(dst []byte, opcode byte, dstAddr, srcAddr uint32, oldDisp int32) (int, error) {
	target := srcAddr + uint32(oldDisp)
	delta := rel32(dstAddr+sizeofRel32, target)

	dst[0] = opcode
	var v xparam.Value
	v.SetDWord(delta)
	v.WriteTo(dst[1:])
	return sizeofRel32, nil
}

// relocateNearJcc handles short-Jcc widened to near-Jcc and near-Jcc
// passed through unchanged: 0F, then the (possibly already near) condition
// byte, then a fresh 32-bit relative displacement, 6 bytes total.
func relocateNearJcc(dst []byte, condByte byte, dstAddr, srcAddr uint32, oldDisp int32) (int, error) {
	target := srcAddr + uint32(oldDisp)
	delta := rel32(dstAddr+sizeofNearJcc, target)

	dst[0] = xinstr.OpcodeEscape
	dst[1] = condByte
	var v xparam.Value
	v.SetDWord(delta)
	v.WriteTo(dst[2:])
	return sizeofNearJcc, nil
}

// relocateLoopStub handles LOOP/LOOPE/LOOPN/JCXZ (E0-E3), which have no
// 32-bit form. It emits a 9-byte stub:
//
//	+0: original opcode, rel8 +0x02 (branch target = stub+4)
//	+2: JMP rel8 +0x05   (branch target = stub+9, falls past the JMP rel32)
//	+4: JMP rel32 target
//
// If the loop condition holds, execution falls into the JMP rel32 at +4
// and reaches target; otherwise the short JMP at +2 skips over it to
// stub+9, continuing immediately after the stub.
func relocateLoopStub(dst []byte, opcode byte, dstAddr, srcAddr uint32, oldDisp int32) (int, error) {
	target := srcAddr + uint32(oldDisp)
	delta := rel32(dstAddr+sizeofLoop, target)

	dst[0] = opcode
	dst[1] = 0x02
	dst[2] = xinstr.OpcodeJmp8
	dst[3] = 0x05
	dst[4] = xinstr.OpcodeJmp32
	var v xparam.Value
	v.SetDWord(delta)
	v.WriteTo(dst[5:])
	return sizeofLoop, nil
}
