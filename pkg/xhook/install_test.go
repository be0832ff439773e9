package xhook

import (
	"encoding/binary"
	"testing"

	"github.com/x86hook/x86hook/pkg/xinstr"
)

func TestInstallPatchesFunctionPrologue(t *testing.T) {
	fn := []byte{0x90, 0x90, 0x90, 0x90, 0x90, 0x90, 0xC3} // 6 NOPs then RET
	tramp := make([]byte, MinTrampolineSize)

	const fnAddr, trampAddr = 0x1000, 0x5000
	const arg, callback = 0xAABBCCDD, 0x9000

	bytesReplaced, trampUsed, err := Install(fn, tramp, fnAddr, trampAddr, arg, callback)
	if err != nil {
		t.Fatalf("Install: %v", err)
	}
	if bytesReplaced < 5 {
		t.Fatalf("bytesReplaced = %d, want >= 5", bytesReplaced)
	}
	if trampUsed <= 0 || trampUsed > len(tramp) {
		t.Fatalf("trampUsed = %d out of range", trampUsed)
	}

	if fn[0] != xinstr.OpcodeJmp32 {
		t.Fatalf("fn[0] = %#x, want JMP rel32 opcode", fn[0])
	}
	fnJmpDisp := int32(binary.LittleEndian.Uint32(fn[1:5]))
	fnJmpTarget := uint32(fnAddr+5) + uint32(fnJmpDisp)
	if fnJmpTarget != trampAddr {
		t.Errorf("fn's patched jump targets %#x, want trampoline at %#x", fnJmpTarget, uint32(trampAddr))
	}

	if tramp[0] != xinstr.OpcodePush32 {
		t.Errorf("tramp[0] = %#x, want PUSH imm32", tramp[0])
	}
	if gotArg := binary.LittleEndian.Uint32(tramp[1:5]); gotArg != arg {
		t.Errorf("pushed arg = %#x, want %#x", gotArg, uint32(arg))
	}
	if tramp[5] != xinstr.OpcodeCall32 {
		t.Errorf("tramp[5] = %#x, want CALL rel32", tramp[5])
	}
	callDisp := int32(binary.LittleEndian.Uint32(tramp[6:10]))
	callTarget := uint32(trampAddr+10) + uint32(callDisp)
	if callTarget != callback {
		t.Errorf("call targets %#x, want callback %#x", callTarget, uint32(callback))
	}
	if tramp[10] != xinstr.OpcodePopEAX {
		t.Errorf("tramp[10] = %#x, want POP eax", tramp[10])
	}

	recoded := tramp[11 : 11+bytesReplaced]
	for i, b := range recoded {
		if b != 0x90 {
			t.Errorf("recoded[%d] = %#x, want NOP (fn had no relative instructions)", i, b)
		}
	}

	tailPos := 11 + bytesReplaced
	if tramp[tailPos] != xinstr.OpcodeJmp32 {
		t.Fatalf("tramp tail opcode = %#x, want JMP rel32", tramp[tailPos])
	}
	tailDisp := int32(binary.LittleEndian.Uint32(tramp[tailPos+1 : tailPos+5]))
	tailTarget := uint32(trampAddr+tailPos+5) + uint32(tailDisp)
	if tailTarget != uint32(fnAddr+bytesReplaced) {
		t.Errorf("tramp tail jump targets %#x, want fn+%d = %#x", tailTarget, bytesReplaced, uint32(fnAddr+bytesReplaced))
	}
}

func TestInstallRelocatesRelativeInstruction(t *testing.T) {
	// A short JMP over the next three NOPs, then padding: the hook must widen
	// it correctly when moving it into the trampoline.
	fn := []byte{0xEB, 0x03, 0x90, 0x90, 0x90, 0x90, 0x90, 0x90}
	tramp := make([]byte, MinTrampolineSize)
	const fnAddr, trampAddr = 0x2000, 0x6000

	bytesReplaced, _, err := Install(fn, tramp, fnAddr, trampAddr, 0, 0x7000)
	if err != nil {
		t.Fatalf("Install: %v", err)
	}

	if tramp[11] != xinstr.OpcodeJmp32 {
		t.Fatalf("recoded JMP rel8 should widen to rel32, got opcode %#x", tramp[11])
	}
	disp := int32(binary.LittleEndian.Uint32(tramp[12:16]))
	gotTarget := uint32(trampAddr+11+5) + uint32(disp)
	wantTarget := uint32(fnAddr) + 2 + 3 // orig JMP: 2-byte instruction, +3 rel8
	if gotTarget != wantTarget {
		t.Errorf("relocated JMP targets %#x, want %#x", gotTarget, wantTarget)
	}
	if bytesReplaced < 5 {
		t.Errorf("bytesReplaced = %d, want >= 5", bytesReplaced)
	}
}

func TestInstallTrampolineTooSmall(t *testing.T) {
	fn := make([]byte, 16)
	tramp := make([]byte, MinTrampolineSize-1)
	_, _, err := Install(fn, tramp, 0x1000, 0x2000, 0, 0x3000)
	if err != ErrTrampolineTooSmall {
		t.Errorf("Install: err = %v, want ErrTrampolineTooSmall", err)
	}
}

func TestInstallDecodeFailurePropagates(t *testing.T) {
	fn := []byte{0xD8, 0x00, 0x90, 0x90, 0x90, 0x90} // coprocessor opcode
	tramp := make([]byte, MinTrampolineSize)
	_, _, err := Install(fn, tramp, 0x1000, 0x2000, 0, 0x3000)
	if err == nil {
		t.Fatal("Install: expected error for coprocessor opcode")
	}
	if fn[0] != 0xD8 {
		t.Errorf("fn must be left untouched on failure, got fn[0] = %#x", fn[0])
	}
}
