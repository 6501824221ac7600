package sui

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/BigdraCo1/sui-object-model-workshop/bcs"
)

// SuiCoinType is the canonical type tag of the gas coin.
const SuiCoinType = "0x2::sui::SUI"

// TypeTag identifies a Move type, used as type arguments to move calls.
// It is a tagged variant; each implementation maps to one BCS enum index.
type TypeTag interface {
	bcs.Marshaler
	// TypeTagKind returns the BCS enum variant index of the tag.
	TypeTagKind() uint32
	String() string
}

// BCS enum variant indexes for TypeTag. The order is fixed by the
// network's serialization format.
const (
	typeTagBool uint32 = iota
	typeTagU8
	typeTagU64
	typeTagU128
	typeTagAddress
	typeTagSigner
	typeTagVector
	typeTagStruct
	typeTagU16
	typeTagU32
	typeTagU256
)

// BoolTag is the Move bool type.
type BoolTag struct{}

func (BoolTag) TypeTagKind() uint32          { return typeTagBool }
func (BoolTag) String() string               { return "bool" }
func (BoolTag) MarshalBCS(ser *bcs.Serializer) {}

// U8Tag is the Move u8 type.
type U8Tag struct{}

func (U8Tag) TypeTagKind() uint32          { return typeTagU8 }
func (U8Tag) String() string               { return "u8" }
func (U8Tag) MarshalBCS(ser *bcs.Serializer) {}

// U64Tag is the Move u64 type.
type U64Tag struct{}

func (U64Tag) TypeTagKind() uint32          { return typeTagU64 }
func (U64Tag) String() string               { return "u64" }
func (U64Tag) MarshalBCS(ser *bcs.Serializer) {}

// U128Tag is the Move u128 type.
type U128Tag struct{}

func (U128Tag) TypeTagKind() uint32          { return typeTagU128 }
func (U128Tag) String() string               { return "u128" }
func (U128Tag) MarshalBCS(ser *bcs.Serializer) {}

// AddressTag is the Move address type.
type AddressTag struct{}

func (AddressTag) TypeTagKind() uint32          { return typeTagAddress }
func (AddressTag) String() string               { return "address" }
func (AddressTag) MarshalBCS(ser *bcs.Serializer) {}

// VectorTag is a Move vector over an element type.
type VectorTag struct {
	Element TypeTag
}

func (v VectorTag) TypeTagKind() uint32 { return typeTagVector }
func (v VectorTag) String() string      { return "vector<" + v.Element.String() + ">" }
func (v VectorTag) MarshalBCS(ser *bcs.Serializer) {
	serializeTypeTag(ser, v.Element)
}

// StructTag names a concrete Move struct such as 0x2::sui::SUI.
type StructTag struct {
	Address    AccountAddress
	Module     string
	Name       string
	TypeParams []TypeTag
}

func (s StructTag) TypeTagKind() uint32 { return typeTagStruct }

func (s StructTag) String() string {
	out := s.Address.String() + "::" + s.Module + "::" + s.Name
	if len(s.TypeParams) > 0 {
		params := make([]string, len(s.TypeParams))
		for i, p := range s.TypeParams {
			params[i] = p.String()
		}
		out += "<" + strings.Join(params, ", ") + ">"
	}
	return out
}

func (s StructTag) MarshalBCS(ser *bcs.Serializer) {
	s.Address.MarshalBCS(ser)
	ser.WriteString(s.Module)
	ser.WriteString(s.Name)
	bcs.SerializeSequenceWithFunction(s.TypeParams, ser, serializeTypeTag)
}

// serializeTypeTag writes the enum variant index followed by the tag body.
func serializeTypeTag(ser *bcs.Serializer, tag TypeTag) {
	if tag == nil {
		ser.SetError(errors.New("nil type tag"))
		return
	}
	ser.Uleb128(tag.TypeTagKind())
	tag.MarshalBCS(ser)
}

// ParseStructTag parses a package::module::name type string, without
// generic type parameters.
func ParseStructTag(s string) (*StructTag, error) {
	parts := strings.Split(s, "::")
	if len(parts) != 3 {
		return nil, errors.Newf("struct tag %q must have the form package::module::name", s)
	}
	if strings.ContainsAny(s, "<>") {
		return nil, errors.Newf("struct tag %q: generic type parameters are not supported", s)
	}
	addr, err := ParseAccountAddress(parts[0])
	if err != nil {
		return nil, err
	}
	if parts[1] == "" || parts[2] == "" {
		return nil, errors.Newf("struct tag %q has an empty component", s)
	}
	return &StructTag{Address: addr, Module: parts[1], Name: parts[2]}, nil
}
