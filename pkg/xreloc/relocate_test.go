package xreloc

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/x86hook/x86hook/pkg/xinstr"
)

func decodeOrFatal(t *testing.T, code []byte) xinstr.Instruction {
	t.Helper()
	buf := make([]byte, 16)
	copy(buf, code)
	ins, err := xinstr.Decode(buf)
	if err != nil {
		t.Fatalf("Decode(%x): %v", code, err)
	}
	return ins
}

// target recomputes the absolute address a relocated relative instruction
// (starting at dstAddr) actually jumps to, given the 32-bit displacement
// sitting in the last 4 bytes of its out slice.
func target(dstAddr uint32, out []byte) uint32 {
	n := len(out)
	disp := int32(binary.LittleEndian.Uint32(out[n-4:]))
	return dstAddr + uint32(n) + uint32(disp)
}

// TestRelocateCallRel32ExactBytes pins the one worked example from the
// design notes (CALL $+5 at S=0x1000 relocated to D=0x2000) whose literal
// byte sequence is internally consistent with the post-decode-cursor
// convention: srcAddr=0x1005, target=0x1005, relocated bytes E8 00 F0 FF FF.
func TestRelocateCallRel32ExactBytes(t *testing.T) {
	ins := decodeOrFatal(t, []byte{0xE8, 0x00, 0x00, 0x00, 0x00})
	out := make([]byte, 5)
	n, err := Relocate(out, &ins, 0x2000, 0x1000+uint32(ins.Size))
	if err != nil {
		t.Fatalf("Relocate: %v", err)
	}
	want := []byte{0xE8, 0x00, 0xF0, 0xFF, 0xFF}
	if n != 5 || !bytes.Equal(out, want) {
		t.Errorf("Relocate(CALL) = %x (n=%d), want %x", out, n, want)
	}
}

// TestRelocateJmp8Widening checks the JMP-rel8-to-rel32 widening case by
// the actual correctness contract (reached target matches), rather than a
// literal byte comparison, since independently recomputing the design
// notes' own "targeting 0x1012" label is what the decoder/relocator must
// satisfy; see DESIGN.md for why the literal hex shown alongside that
// label does not itself satisfy the label under this project's (and the
// design notes') own conventions.
func TestRelocateJmp8Widening(t *testing.T) {
	ins := decodeOrFatal(t, []byte{0xEB, 0x10})
	S, D := uint32(0x1000), uint32(0x2000)
	out := make([]byte, 5)
	n, err := Relocate(out, &ins, D, S+uint32(ins.Size))
	if err != nil {
		t.Fatalf("Relocate: %v", err)
	}
	if n != 5 || out[0] != xinstr.OpcodeJmp32 {
		t.Fatalf("Relocate(JMP rel8) = %x (n=%d), want opcode E9, 5 bytes", out, n)
	}
	wantTarget := S + uint32(ins.Size) + uint32(int32(ins.Immd.Int32()))
	if got := target(D, out); got != wantTarget {
		t.Errorf("relocated JMP targets %#x, want %#x", got, wantTarget)
	}
	if wantTarget != 0x1012 {
		t.Fatalf("test setup error: expected target 0x1012, computed %#x", wantTarget)
	}
}

func TestRelocateShortJccWidening(t *testing.T) {
	ins := decodeOrFatal(t, []byte{0x74, 0x05}) // JZ rel8
	S, D := uint32(0x1000), uint32(0x2000)
	out := make([]byte, 6)
	n, err := Relocate(out, &ins, D, S+uint32(ins.Size))
	if err != nil {
		t.Fatalf("Relocate: %v", err)
	}
	if n != 6 || out[0] != xinstr.OpcodeEscape || out[1] != 0x84 {
		t.Fatalf("Relocate(JZ rel8) = %x (n=%d), want 0F 84 ...", out, n)
	}
	wantTarget := S + uint32(ins.Size) + uint32(ins.Immd.Int32())
	if got := target(D, out); got != wantTarget || wantTarget != 0x1007 {
		t.Errorf("relocated JZ targets %#x, want %#x (0x1007)", got, wantTarget)
	}
}

func TestRelocateNearJccPassthrough(t *testing.T) {
	ins := decodeOrFatal(t, []byte{0x0F, 0x84, 0x10, 0x00, 0x00, 0x00})
	S, D := uint32(0x1000), uint32(0x2000)
	out := make([]byte, 6)
	n, err := Relocate(out, &ins, D, S+uint32(ins.Size))
	if err != nil {
		t.Fatalf("Relocate: %v", err)
	}
	if n != 6 || out[0] != 0x0F || out[1] != 0x84 {
		t.Fatalf("Relocate(near JZ) = %x, want same opcode bytes", out)
	}
	wantTarget := S + uint32(ins.Size) + uint32(ins.Immd.Int32())
	if got := target(D, out); got != wantTarget || wantTarget != 0x1016 {
		t.Errorf("relocated near JZ targets %#x, want %#x (0x1016)", got, wantTarget)
	}
}

func TestRelocateLoopStub(t *testing.T) {
	ins := decodeOrFatal(t, []byte{0xE2, 0x04}) // LOOP +4
	S, D := uint32(0x1000), uint32(0x2000)
	out := make([]byte, 9)
	n, err := Relocate(out, &ins, D, S+uint32(ins.Size))
	if err != nil {
		t.Fatalf("Relocate: %v", err)
	}
	if n != 9 {
		t.Fatalf("Relocate(LOOP) wrote %d bytes, want 9", n)
	}
	wantHeader := []byte{0xE2, 0x02, xinstr.OpcodeJmp8, 0x05, xinstr.OpcodeJmp32}
	if !bytes.Equal(out[:5], wantHeader) {
		t.Errorf("stub header = %x, want %x", out[:5], wantHeader)
	}
	wantTarget := S + uint32(ins.Size) + uint32(ins.Immd.Int32())
	if got := target(D, out); got != wantTarget || wantTarget != 0x1006 {
		t.Errorf("stub jmp32 targets %#x, want %#x (0x1006)", got, wantTarget)
	}
}

func TestRelocateNonRelativePassthrough(t *testing.T) {
	ins := decodeOrFatal(t, []byte{0x01, 0xC8}) // ADD EAX, ECX
	direct := make([]byte, ins.Size)
	xinstr.Emit(direct, &ins)

	for _, addrs := range [][2]uint32{{0x1000, 0x2000}, {0, 0}, {0xFFFF0000, 0x10}} {
		out := make([]byte, ins.Size)
		n, err := Relocate(out, &ins, addrs[1], addrs[0])
		if err != nil {
			t.Fatalf("Relocate: %v", err)
		}
		if n != ins.Size || !bytes.Equal(out, direct) {
			t.Errorf("Relocate(non-relative, S=%#x D=%#x) = %x, want %x", addrs[0], addrs[1], out, direct)
		}
	}
}

// TestRelocateUnsupportedShortJccUpperBound documents that opcode 0x7F is,
// by design (mirroring the source's own range check), NOT treated as a
// relocatable short-Jcc even though the opcode table flags it Relative.
func TestRelocateUnsupportedShortJccUpperBound(t *testing.T) {
	ins := decodeOrFatal(t, []byte{0x7F, 0x05})
	out := make([]byte, 6)
	_, err := Relocate(out, &ins, 0x2000, 0x1000+uint32(ins.Size))
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("Relocate(0x7F): err = %v, want ErrUnsupported", err)
	}
}
