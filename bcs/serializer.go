package bcs

import (
	"bytes"
	"encoding/binary"
	"math/big"

	"github.com/cockroachdb/errors"
)

// Marshaler is implemented by any type that can serialize itself to BCS.
// Implementations report failures through [Serializer.SetError] rather than
// returning an error, so that struct fields can be written without
// per-field error plumbing.
type Marshaler interface {
	MarshalBCS(ser *Serializer)
}

// Serializer accumulates the BCS encoding of a value. The zero value is
// ready to use. The first error sticks: once set, all later writes are
// dropped and [Serializer.Error] reports it.
type Serializer struct {
	out bytes.Buffer
	err error
}

// Error returns the first error hit while serializing, or nil.
func (ser *Serializer) Error() error {
	return ser.err
}

// SetError records err if no earlier error is already recorded.
func (ser *Serializer) SetError(err error) {
	if ser.err == nil {
		ser.err = err
	}
}

// ToBytes returns the bytes written so far.
func (ser *Serializer) ToBytes() []byte {
	return ser.out.Bytes()
}

// Bool serializes a boolean as a single byte, 0x01 for true.
func (ser *Serializer) Bool(v bool) {
	if v {
		ser.U8(1)
	} else {
		ser.U8(0)
	}
}

// U8 serializes a single byte.
func (ser *Serializer) U8(v uint8) {
	if ser.err != nil {
		return
	}
	ser.out.WriteByte(v)
}

// U16 serializes a uint16 little-endian.
func (ser *Serializer) U16(v uint16) {
	ser.writeLE(make([]byte, 2), func(b []byte) { binary.LittleEndian.PutUint16(b, v) })
}

// U32 serializes a uint32 little-endian.
func (ser *Serializer) U32(v uint32) {
	ser.writeLE(make([]byte, 4), func(b []byte) { binary.LittleEndian.PutUint32(b, v) })
}

// U64 serializes a uint64 little-endian.
func (ser *Serializer) U64(v uint64) {
	ser.writeLE(make([]byte, 8), func(b []byte) { binary.LittleEndian.PutUint64(b, v) })
}

// U128 serializes an unsigned 128-bit integer little-endian.
func (ser *Serializer) U128(v big.Int) {
	ser.uBig(v, 16)
}

// U256 serializes an unsigned 256-bit integer little-endian.
func (ser *Serializer) U256(v big.Int) {
	ser.uBig(v, 32)
}

// Uleb128 serializes an unsigned integer as a variable-length ULEB128,
// used by BCS for sequence lengths and enum variant tags.
func (ser *Serializer) Uleb128(v uint32) {
	if ser.err != nil {
		return
	}
	for v >= 0x80 {
		ser.out.WriteByte(byte(v&0x7f) | 0x80)
		v >>= 7
	}
	ser.out.WriteByte(byte(v))
}

// WriteBytes serializes a byte slice as a ULEB128 length followed by the
// raw bytes.
func (ser *Serializer) WriteBytes(v []byte) {
	ser.Uleb128(uint32(len(v)))
	ser.FixedBytes(v)
}

// WriteString serializes a string as UTF-8 bytes with a ULEB128 length.
func (ser *Serializer) WriteString(v string) {
	ser.WriteBytes([]byte(v))
}

// FixedBytes writes raw bytes with no length prefix, for fixed-width
// fields such as addresses and digests.
func (ser *Serializer) FixedBytes(v []byte) {
	if ser.err != nil {
		return
	}
	ser.out.Write(v)
}

// Struct serializes a [Marshaler] in place.
func (ser *Serializer) Struct(v Marshaler) {
	if v == nil {
		ser.SetError(errors.New("cannot serialize nil value"))
		return
	}
	v.MarshalBCS(ser)
}

func (ser *Serializer) writeLE(buf []byte, put func([]byte)) {
	if ser.err != nil {
		return
	}
	put(buf)
	ser.out.Write(buf)
}

func (ser *Serializer) uBig(v big.Int, width int) {
	if ser.err != nil {
		return
	}
	if v.Sign() < 0 {
		ser.SetError(errors.Newf("cannot serialize negative value %s", v.String()))
		return
	}
	raw := v.Bytes()
	if len(raw) > width {
		ser.SetError(errors.Newf("value %s overflows u%d", v.String(), width*8))
		return
	}
	le := make([]byte, width)
	for i, b := range raw {
		le[len(raw)-1-i] = b
	}
	ser.out.Write(le)
}

// Serialize converts a [Marshaler] to its BCS bytes.
func Serialize(v Marshaler) ([]byte, error) {
	return SerializeSingle(func(ser *Serializer) {
		v.MarshalBCS(ser)
	})
}

// SerializeSingle runs one serialization closure over a fresh [Serializer]
// and returns the bytes. It is the escape hatch for values that do not
// implement [Marshaler] themselves.
func SerializeSingle(marshal func(ser *Serializer)) ([]byte, error) {
	ser := &Serializer{}
	marshal(ser)
	if ser.Error() != nil {
		return nil, ser.Error()
	}
	return ser.ToBytes(), nil
}

// SerializeBool serializes a single boolean.
func SerializeBool(v bool) ([]byte, error) {
	return SerializeSingle(func(ser *Serializer) { ser.Bool(v) })
}

// SerializeU8 serializes a single uint8.
func SerializeU8(v uint8) ([]byte, error) {
	return SerializeSingle(func(ser *Serializer) { ser.U8(v) })
}

// SerializeU16 serializes a single uint16.
func SerializeU16(v uint16) ([]byte, error) {
	return SerializeSingle(func(ser *Serializer) { ser.U16(v) })
}

// SerializeU32 serializes a single uint32.
func SerializeU32(v uint32) ([]byte, error) {
	return SerializeSingle(func(ser *Serializer) { ser.U32(v) })
}

// SerializeU64 serializes a single uint64.
func SerializeU64(v uint64) ([]byte, error) {
	return SerializeSingle(func(ser *Serializer) { ser.U64(v) })
}

// SerializeU128 serializes a single unsigned 128-bit integer.
func SerializeU128(v big.Int) ([]byte, error) {
	return SerializeSingle(func(ser *Serializer) { ser.U128(v) })
}

// SerializeU256 serializes a single unsigned 256-bit integer.
func SerializeU256(v big.Int) ([]byte, error) {
	return SerializeSingle(func(ser *Serializer) { ser.U256(v) })
}

// SerializeBytes serializes a byte slice with its ULEB128 length prefix.
func SerializeBytes(v []byte) ([]byte, error) {
	return SerializeSingle(func(ser *Serializer) { ser.WriteBytes(v) })
}

// SerializeSequence serializes a slice of [Marshaler]s as a BCS vector.
func SerializeSequence[T Marshaler](items []T) ([]byte, error) {
	return SerializeSingle(func(ser *Serializer) {
		SerializeSequenceWithFunction(items, ser, func(ser *Serializer, item T) {
			item.MarshalBCS(ser)
		})
	})
}

// SerializeSequenceWithFunction writes a BCS vector into ser, one closure
// call per element, prefixed by the ULEB128 element count.
func SerializeSequenceWithFunction[T any](items []T, ser *Serializer, marshal func(ser *Serializer, item T)) {
	ser.Uleb128(uint32(len(items)))
	for _, item := range items {
		marshal(ser, item)
		if ser.Error() != nil {
			return
		}
	}
}

// SerializeOption writes a BCS Option: a 0x00 byte for nil, or 0x01
// followed by the value.
func SerializeOption[T any](value *T, ser *Serializer, marshal func(ser *Serializer, item T)) {
	if value == nil {
		ser.U8(0)
		return
	}
	ser.U8(1)
	marshal(ser, *value)
}
