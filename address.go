package sui

import (
	"encoding/hex"

	"github.com/cockroachdb/errors"

	"github.com/BigdraCo1/sui-object-model-workshop/bcs"
	"github.com/BigdraCo1/sui-object-model-workshop/crypto"
	"github.com/BigdraCo1/sui-object-model-workshop/internal/util"
)

// AccountAddressLength is the byte length of addresses and object ids.
const AccountAddressLength = 32

// AccountAddress is a fixed-length identifier of an account on chain.
// Object ids share the same representation.
type AccountAddress [AccountAddressLength]byte

// ObjectID identifies an object on chain. Structurally identical to an
// account address.
type ObjectID = AccountAddress

// AccountZero is the zero address.
var AccountZero = AccountAddress{}

// AccountTwo is 0x2, the address of the Sui framework package.
var AccountTwo = AccountAddress{31: 0x02}

// ParseAccountAddress parses a 0x-prefixed hex address. Short forms such
// as "0x2" are left-padded to the full 32 bytes.
func ParseAccountAddress(s string) (AccountAddress, error) {
	raw, err := util.ParseHex(s)
	if err != nil {
		return AccountZero, errors.Wrapf(err, "invalid account address %q", s)
	}
	if len(raw) > AccountAddressLength {
		return AccountZero, errors.Newf("account address %q longer than %d bytes", s, AccountAddressLength)
	}
	var addr AccountAddress
	copy(addr[AccountAddressLength-len(raw):], raw)
	return addr, nil
}

// NewAddressFromPublicKey derives the account address owned by an
// ed25519 public key.
func NewAddressFromPublicKey(pub *crypto.Ed25519PublicKey) AccountAddress {
	return pub.SuiAddress()
}

// String returns the full-width 0x-prefixed hex form.
func (addr AccountAddress) String() string {
	return "0x" + hex.EncodeToString(addr[:])
}

// MarshalBCS serializes the address as 32 fixed bytes.
func (addr AccountAddress) MarshalBCS(ser *bcs.Serializer) {
	ser.FixedBytes(addr[:])
}

// UnmarshalBCS deserializes 32 fixed bytes into the address.
func (addr *AccountAddress) UnmarshalBCS(des *bcs.Deserializer) {
	copy(addr[:], des.ReadFixedBytes(AccountAddressLength))
}

// MarshalJSON encodes the address as its hex string.
func (addr AccountAddress) MarshalJSON() ([]byte, error) {
	return []byte(`"` + addr.String() + `"`), nil
}

// UnmarshalJSON decodes a hex string address.
func (addr *AccountAddress) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return errors.New("account address must be a JSON string")
	}
	parsed, err := ParseAccountAddress(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*addr = parsed
	return nil
}
