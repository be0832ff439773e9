// Package xparam implements the typed, little-endian instruction-parameter
// codec shared by the decoder, emitter and relocator: displacements and
// immediates are read from and written to raw instruction bytes through a
// single Value type rather than ad-hoc byte slicing at each call site.
package xparam

import "encoding/binary"

// Kind identifies the shape of a parameter value.
type Kind int

const (
	None Kind = iota
	Byte
	Word
	DWord
	QWord
	OffSel // 32-bit offset + 16-bit selector, 6 bytes
	D24    // 16-bit word followed by an 8-bit byte, 3 bytes
)

// Size returns the number of bytes Kind occupies on the wire.
func (k Kind) Size() int {
	switch k {
	case Byte:
		return 1
	case Word:
		return 2
	case D24:
		return 3
	case DWord:
		return 4
	case OffSel:
		return 6
	case QWord:
		return 8
	case None:
		fallthrough
	default:
		return 0
	}
}

// Value is a tagged union holding one parameter of the instruction's
// displacement or immediate field. It is a pure value: copying it never
// aliases the buffer it was read from.
type Value struct {
	Kind Kind

	U8   uint8
	U16  uint16
	U32  uint32
	U64  uint64
	Sel  uint16 // selector, valid when Kind == OffSel
	D24B uint8  // trailing byte (third on the wire), valid when Kind == D24
}

// ReadFrom interprets the next Kind.Size() bytes of src as a little-endian
// field of that kind and stores the result in v. It returns the number of
// bytes consumed. None consumes zero bytes. src must hold at least
// Kind.Size() bytes; ReadFrom does not bounds-check beyond what Go's slice
// indexing already enforces, so callers must size src generously (the
// decoder passes on the window its own caller supplied, which Decode asks
// to be at least 16 bytes).
func (v *Value) ReadFrom(kind Kind, src []byte) int {
	v.Kind = kind
	switch kind {
	case Byte:
		v.U8 = src[0]
		return 1
	case Word:
		v.U16 = binary.LittleEndian.Uint16(src)
		return 2
	case D24:
		v.U16 = binary.LittleEndian.Uint16(src)
		v.D24B = src[2]
		return 3
	case DWord:
		v.U32 = binary.LittleEndian.Uint32(src)
		return 4
	case OffSel:
		v.U32 = binary.LittleEndian.Uint32(src)
		v.Sel = binary.LittleEndian.Uint16(src[4:])
		return 6
	case QWord:
		v.U64 = binary.LittleEndian.Uint64(src)
		return 8
	case None:
		fallthrough
	default:
		return 0
	}
}

// WriteTo emits v to dst as little-endian bytes and returns the number of
// bytes written. D24 is round-tripped here for symmetry with ReadFrom; the
// relocator never synthesises a fresh D24 value, but Emit writes a decoded
// ENTER immediate back out through this method.
func (v *Value) WriteTo(dst []byte) int {
	switch v.Kind {
	case Byte:
		dst[0] = v.U8
		return 1
	case Word:
		binary.LittleEndian.PutUint16(dst, v.U16)
		return 2
	case D24:
		binary.LittleEndian.PutUint16(dst, v.U16)
		dst[2] = v.D24B
		return 3
	case DWord:
		binary.LittleEndian.PutUint32(dst, v.U32)
		return 4
	case OffSel:
		binary.LittleEndian.PutUint32(dst, v.U32)
		binary.LittleEndian.PutUint16(dst[4:], v.Sel)
		return 6
	case QWord:
		binary.LittleEndian.PutUint64(dst, v.U64)
		return 8
	case None:
		fallthrough
	default:
		return 0
	}
}

// Int32 interprets the value as a signed 32-bit displacement, the shape the
// relocator needs regardless of whether the original field was a Byte, Word
// or DWord.
func (v *Value) Int32() int32 {
	switch v.Kind {
	case Byte:
		return int32(int8(v.U8))
	case Word:
		return int32(int16(v.U16))
	case DWord:
		return int32(v.U32)
	default:
		return 0
	}
}

// SetDWord overwrites v in place with a fresh signed 32-bit value, the
// shape every widened relative branch uses (rel8/rel16 -> rel32).
func (v *Value) SetDWord(x int32) {
	v.Kind = DWord
	v.U32 = uint32(x)
}
