package crypto

import (
	"crypto/ed25519"
	"encoding/base64"

	"github.com/cockroachdb/errors"
)

// serializedEd25519Length is flag (1) + signature (64) + public key (32).
const serializedEd25519Length = 1 + ed25519.SignatureSize + ed25519.PublicKeySize

// Signature is a serialized signature as the network expects it on
// submission: a scheme flag byte, the raw signature, then the public key
// of the signer.
type Signature struct {
	data [serializedEd25519Length]byte
}

func newEd25519Signature(raw []byte, pub *Ed25519PublicKey) (*Signature, error) {
	if len(raw) != ed25519.SignatureSize {
		return nil, errors.Newf("ed25519 signature must be %d bytes, got %d", ed25519.SignatureSize, len(raw))
	}
	sig := &Signature{}
	sig.data[0] = Ed25519Scheme
	copy(sig.data[1:1+ed25519.SignatureSize], raw)
	copy(sig.data[1+ed25519.SignatureSize:], pub.Bytes())
	return sig, nil
}

// ParseSignature decodes a base64 serialized signature.
func ParseSignature(encoded string) (*Signature, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, errors.Wrap(err, "invalid signature encoding")
	}
	if len(raw) != serializedEd25519Length {
		return nil, errors.Newf("serialized signature must be %d bytes, got %d", serializedEd25519Length, len(raw))
	}
	if raw[0] != Ed25519Scheme {
		return nil, errors.Newf("unsupported signature scheme flag 0x%02x", raw[0])
	}
	sig := &Signature{}
	copy(sig.data[:], raw)
	return sig, nil
}

// Scheme returns the scheme flag byte.
func (sig *Signature) Scheme() byte {
	return sig.data[0]
}

// SignatureBytes returns the raw 64-byte signature.
func (sig *Signature) SignatureBytes() []byte {
	return sig.data[1 : 1+ed25519.SignatureSize]
}

// PublicKeyBytes returns the signer's 32-byte public key.
func (sig *Signature) PublicKeyBytes() []byte {
	return sig.data[1+ed25519.SignatureSize:]
}

// String returns the base64 form submitted to the network.
func (sig *Signature) String() string {
	return base64.StdEncoding.EncodeToString(sig.data[:])
}
