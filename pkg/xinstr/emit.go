package xinstr

// Emit serialises ins to dst in the same layout Decode would accept:
// prefixes, then opcode bytes, then (if present) ModR/M, then SIB, then
// displacement, then immediate. It returns ins.Size, the number of bytes
// written. dst must have at least ins.Size bytes of room.
//
// Emitting a freshly decoded record at a fresh buffer yields exactly the
// original input bytes (see TestDecodeEmitRoundTrip).
func Emit(dst []byte, ins *Instruction) int {
	pos := 0

	for i := 0; i < ins.Prefixes; i++ {
		dst[pos] = ins.Prefix[i]
		pos++
	}

	for i := 0; i < ins.Opcodes; i++ {
		dst[pos] = ins.Opcode[i]
		pos++
	}

	if ins.HasModRM {
		dst[pos] = ins.ModRM
		pos++
	}

	if ins.HasSIB {
		dst[pos] = ins.SIB
		pos++
	}

	if ins.HasDisp {
		pos += ins.Disp.WriteTo(dst[pos:])
	}

	if ins.HasImmd {
		pos += ins.Immd.WriteTo(dst[pos:])
	}

	return ins.Size
}
