package sui

import (
	"encoding/base64"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/cockroachdb/errors"
	"golang.org/x/crypto/blake2b"

	"github.com/BigdraCo1/sui-object-model-workshop/bcs"
	"github.com/BigdraCo1/sui-object-model-workshop/crypto"
)

// DefaultGasBudget is the gas budget the examples and convenience paths
// use when the caller does not set one.
var DefaultGasBudget = uint64(10_000_000)

// ObjectDigestLength is the byte length of object and transaction digests.
const ObjectDigestLength = 32

// ObjectDigest is the content digest of an object version, rendered in
// base58 on the wire.
type ObjectDigest [ObjectDigestLength]byte

// ParseObjectDigest decodes the base58 digest strings the node returns.
func ParseObjectDigest(s string) (ObjectDigest, error) {
	raw := base58.Decode(s)
	if len(raw) != ObjectDigestLength {
		return ObjectDigest{}, errors.Newf("object digest %q must decode to %d bytes, got %d", s, ObjectDigestLength, len(raw))
	}
	var digest ObjectDigest
	copy(digest[:], raw)
	return digest, nil
}

// String returns the base58 form.
func (digest ObjectDigest) String() string {
	return base58.Encode(digest[:])
}

// MarshalBCS serializes the digest as length-prefixed bytes.
func (digest ObjectDigest) MarshalBCS(ser *bcs.Serializer) {
	ser.WriteBytes(digest[:])
}

// GasData names the coins paying for the transaction and the price and
// budget they are spent under.
type GasData struct {
	Payment []ObjectRef
	Owner   AccountAddress
	Price   uint64
	Budget  uint64
}

// MarshalBCS serializes payment refs, owner, price, budget.
func (gas GasData) MarshalBCS(ser *bcs.Serializer) {
	bcs.SerializeSequenceWithFunction(gas.Payment, ser, func(ser *bcs.Serializer, ref ObjectRef) {
		ref.MarshalBCS(ser)
	})
	gas.Owner.MarshalBCS(ser)
	ser.U64(gas.Price)
	ser.U64(gas.Budget)
}

// TransactionData is a finalized transaction payload ready for signing:
// the programmable command sequence, the sender, and the gas data.
// Constructed in memory, used once, and discarded after submission.
type TransactionData struct {
	Sender      AccountAddress
	Transaction *ProgrammableTransaction
	Gas         GasData
	// ExpirationEpoch bounds the epoch the transaction may execute in.
	// Nil means no expiration.
	ExpirationEpoch *uint64
}

// NewProgrammableTransactionData assembles transaction data from a
// finished programmable transaction.
func NewProgrammableTransactionData(
	sender AccountAddress,
	gasPayment []ObjectRef,
	pt *ProgrammableTransaction,
	gasBudget uint64,
	gasPrice uint64,
) (*TransactionData, error) {
	if pt == nil {
		return nil, errors.Wrap(ErrBuild, "programmable transaction is nil")
	}
	return &TransactionData{
		Sender:      sender,
		Transaction: pt,
		Gas: GasData{
			Payment: gasPayment,
			Owner:   sender,
			Price:   gasPrice,
			Budget:  gasBudget,
		},
	}, nil
}

// MarshalBCS serializes the V1 transaction data envelope: version tag,
// transaction kind, sender, gas data, expiration.
func (td *TransactionData) MarshalBCS(ser *bcs.Serializer) {
	// TransactionData::V1
	ser.Uleb128(0)
	// TransactionKind::ProgrammableTransaction
	ser.Uleb128(0)
	td.Transaction.MarshalBCS(ser)
	td.Sender.MarshalBCS(ser)
	td.Gas.MarshalBCS(ser)
	// TransactionExpiration::{None, Epoch}
	if td.ExpirationEpoch == nil {
		ser.Uleb128(0)
	} else {
		ser.Uleb128(1)
		ser.U64(*td.ExpirationEpoch)
	}
}

// SigningMessage returns the BCS bytes a signature covers, before the
// intent wrapping.
func (td *TransactionData) SigningMessage() ([]byte, error) {
	return bcs.Serialize(td)
}

// Digest computes the transaction digest the network will report, in
// base58.
func (td *TransactionData) Digest() (string, error) {
	message, err := td.SigningMessage()
	if err != nil {
		return "", err
	}
	prefixed := append([]byte("TransactionData::"), message...)
	digest := blake2b.Sum256(prefixed)
	return base58.Encode(digest[:]), nil
}

// SignedTransaction pairs transaction data with the serialized
// signatures authorizing it.
type SignedTransaction struct {
	Data       *TransactionData
	Signatures []*crypto.Signature
}

// NewSignedTransaction signs the transaction data under the transaction
// intent with the given key.
func NewSignedTransaction(td *TransactionData, key *crypto.Ed25519PrivateKey) (*SignedTransaction, error) {
	message, err := td.SigningMessage()
	if err != nil {
		return nil, err
	}
	sig, err := key.SignWithIntent(crypto.SuiTransactionIntent(), message)
	if err != nil {
		return nil, errors.Mark(err, ErrSigning)
	}
	return &SignedTransaction{Data: td, Signatures: []*crypto.Signature{sig}}, nil
}

// TxBytes returns the base64 BCS transaction bytes for submission.
func (st *SignedTransaction) TxBytes() (string, error) {
	message, err := st.Data.SigningMessage()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(message), nil
}

// SerializedSignatures returns the base64 signature strings for
// submission.
func (st *SignedTransaction) SerializedSignatures() []string {
	out := make([]string, len(st.Signatures))
	for i, sig := range st.Signatures {
		out[i] = sig.String()
	}
	return out
}
