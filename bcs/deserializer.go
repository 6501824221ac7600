package bcs

import (
	"encoding/binary"
	"math/big"

	"github.com/cockroachdb/errors"
)

// Unmarshaler is implemented by any type that can deserialize itself from
// BCS. Mirrors [Marshaler].
type Unmarshaler interface {
	UnmarshalBCS(des *Deserializer)
}

// Deserializer reads BCS values from a byte slice. Like [Serializer], the
// first error sticks and later reads return zero values.
type Deserializer struct {
	source []byte
	pos    int
	err    error
}

// NewDeserializer creates a Deserializer over the given bytes.
func NewDeserializer(source []byte) *Deserializer {
	return &Deserializer{source: source}
}

// Error returns the first error hit while deserializing, or nil.
func (des *Deserializer) Error() error {
	return des.err
}

// SetError records err if no earlier error is already recorded.
func (des *Deserializer) SetError(err error) {
	if des.err == nil {
		des.err = err
	}
}

// Remaining reports how many bytes have not been consumed yet.
func (des *Deserializer) Remaining() int {
	return len(des.source) - des.pos
}

func (des *Deserializer) read(n int) []byte {
	if des.err != nil {
		return nil
	}
	if des.Remaining() < n {
		des.SetError(errors.Newf("unexpected end of input reading %d bytes at offset %d", n, des.pos))
		return nil
	}
	out := des.source[des.pos : des.pos+n]
	des.pos += n
	return out
}

// Bool deserializes a single-byte boolean.
func (des *Deserializer) Bool() bool {
	switch b := des.U8(); b {
	case 0:
		return false
	case 1:
		return true
	default:
		des.SetError(errors.Newf("invalid bool byte 0x%x", b))
		return false
	}
}

// U8 deserializes a single byte.
func (des *Deserializer) U8() uint8 {
	b := des.read(1)
	if b == nil {
		return 0
	}
	return b[0]
}

// U16 deserializes a little-endian uint16.
func (des *Deserializer) U16() uint16 {
	b := des.read(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

// U32 deserializes a little-endian uint32.
func (des *Deserializer) U32() uint32 {
	b := des.read(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// U64 deserializes a little-endian uint64.
func (des *Deserializer) U64() uint64 {
	b := des.read(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

// U128 deserializes a little-endian unsigned 128-bit integer.
func (des *Deserializer) U128() big.Int {
	return des.uBig(16)
}

// U256 deserializes a little-endian unsigned 256-bit integer.
func (des *Deserializer) U256() big.Int {
	return des.uBig(32)
}

func (des *Deserializer) uBig(width int) big.Int {
	le := des.read(width)
	if le == nil {
		return *big.NewInt(0)
	}
	be := make([]byte, width)
	for i, b := range le {
		be[width-1-i] = b
	}
	var out big.Int
	out.SetBytes(be)
	return out
}

// Uleb128 deserializes a ULEB128-encoded unsigned integer.
func (des *Deserializer) Uleb128() uint32 {
	var out uint32
	var shift uint
	for {
		b := des.read(1)
		if b == nil {
			return 0
		}
		out |= uint32(b[0]&0x7f) << shift
		if b[0]&0x80 == 0 {
			return out
		}
		shift += 7
		if shift > 31 {
			des.SetError(errors.New("uleb128 value exceeds 32 bits"))
			return 0
		}
	}
}

// ReadBytes deserializes a ULEB128 length followed by that many bytes.
func (des *Deserializer) ReadBytes() []byte {
	length := des.Uleb128()
	raw := des.read(int(length))
	if raw == nil {
		return nil
	}
	out := make([]byte, length)
	copy(out, raw)
	return out
}

// ReadString deserializes a length-prefixed UTF-8 string.
func (des *Deserializer) ReadString() string {
	return string(des.ReadBytes())
}

// ReadFixedBytes deserializes exactly length raw bytes.
func (des *Deserializer) ReadFixedBytes(length int) []byte {
	raw := des.read(length)
	if raw == nil {
		return nil
	}
	out := make([]byte, length)
	copy(out, raw)
	return out
}

// Struct deserializes an [Unmarshaler] in place.
func (des *Deserializer) Struct(v Unmarshaler) {
	if v == nil {
		des.SetError(errors.New("cannot deserialize into nil value"))
		return
	}
	v.UnmarshalBCS(des)
}

// Deserialize parses all of source into an [Unmarshaler], failing on
// trailing bytes.
func Deserialize(v Unmarshaler, source []byte) error {
	des := NewDeserializer(source)
	v.UnmarshalBCS(des)
	if des.Error() != nil {
		return des.Error()
	}
	if des.Remaining() > 0 {
		return errors.Newf("deserialize left %d trailing bytes", des.Remaining())
	}
	return nil
}

// DeserializeSequence parses a BCS vector of T.
func DeserializeSequence[T any](des *Deserializer) []T {
	length := des.Uleb128()
	if des.Error() != nil {
		return nil
	}
	out := make([]T, 0, length)
	for i := uint32(0); i < length; i++ {
		var item T
		unmarshaler, ok := any(&item).(Unmarshaler)
		if !ok {
			des.SetError(errors.Newf("type %T does not implement bcs.Unmarshaler", item))
			return nil
		}
		unmarshaler.UnmarshalBCS(des)
		if des.Error() != nil {
			return nil
		}
		out = append(out, item)
	}
	return out
}
