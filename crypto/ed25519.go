package crypto

import (
	"crypto/ed25519"
	"crypto/rand"

	"github.com/cockroachdb/errors"
	"golang.org/x/crypto/blake2b"
)

// Ed25519Scheme is the signature scheme flag byte for ed25519 keys. It
// prefixes both the public key in address derivation and the serialized
// signature on the wire.
const Ed25519Scheme byte = 0x00

// Ed25519SeedLength is the length of the raw seed stored in a keystore
// entry.
const Ed25519SeedLength = ed25519.SeedSize

// Ed25519PrivateKey is a signing key for the ed25519 scheme.
type Ed25519PrivateKey struct {
	inner ed25519.PrivateKey
}

// GenerateEd25519PrivateKey creates a new random signing key.
func GenerateEd25519PrivateKey() (*Ed25519PrivateKey, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, errors.Wrap(err, "generate ed25519 key")
	}
	return &Ed25519PrivateKey{inner: priv}, nil
}

// NewEd25519PrivateKeyFromSeed rebuilds a signing key from its 32-byte
// seed, the form keys take in the keystore file.
func NewEd25519PrivateKeyFromSeed(seed []byte) (*Ed25519PrivateKey, error) {
	if len(seed) != Ed25519SeedLength {
		return nil, errors.Newf("ed25519 seed must be %d bytes, got %d", Ed25519SeedLength, len(seed))
	}
	return &Ed25519PrivateKey{inner: ed25519.NewKeyFromSeed(seed)}, nil
}

// Seed returns the 32-byte seed of the key.
func (key *Ed25519PrivateKey) Seed() []byte {
	return key.inner.Seed()
}

// PublicKey returns the verifying half of the key.
func (key *Ed25519PrivateKey) PublicKey() *Ed25519PublicKey {
	return &Ed25519PublicKey{inner: key.inner.Public().(ed25519.PublicKey)}
}

// SignWithIntent signs an intent-wrapped message and returns the
// network's serialized signature form.
func (key *Ed25519PrivateKey) SignWithIntent(intent Intent, message []byte) (*Signature, error) {
	digest := HashIntentMessage(intent, message)
	raw := ed25519.Sign(key.inner, digest[:])
	return newEd25519Signature(raw, key.PublicKey())
}

// Ed25519PublicKey is the verifying half of an [Ed25519PrivateKey].
type Ed25519PublicKey struct {
	inner ed25519.PublicKey
}

// Bytes returns the 32-byte public key.
func (key *Ed25519PublicKey) Bytes() []byte {
	return []byte(key.inner)
}

// SuiAddress derives the account address owned by this key:
// Blake2b-256 over the scheme flag followed by the public key bytes.
func (key *Ed25519PublicKey) SuiAddress() [32]byte {
	material := make([]byte, 0, 1+len(key.inner))
	material = append(material, Ed25519Scheme)
	material = append(material, key.inner...)
	return blake2b.Sum256(material)
}

// VerifyWithIntent reports whether sig is a valid signature by this key
// over the intent-wrapped message.
func (key *Ed25519PublicKey) VerifyWithIntent(intent Intent, message []byte, sig *Signature) bool {
	digest := HashIntentMessage(intent, message)
	return ed25519.Verify(key.inner, digest[:], sig.SignatureBytes())
}
