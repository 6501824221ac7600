package crypto

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEd25519_SignAndVerify(t *testing.T) {
	key, err := GenerateEd25519PrivateKey()
	assert.NoError(t, err)

	message := []byte("some transaction bytes")
	sig, err := key.SignWithIntent(SuiTransactionIntent(), message)
	assert.NoError(t, err)

	assert.True(t, key.PublicKey().VerifyWithIntent(SuiTransactionIntent(), message, sig))
	// The same bytes under a different intent scope must not verify.
	assert.False(t, key.PublicKey().VerifyWithIntent(PersonalMessageIntent(), message, sig))
}

func TestEd25519_FromSeedDeterministic(t *testing.T) {
	seed := make([]byte, Ed25519SeedLength)
	for i := range seed {
		seed[i] = byte(i)
	}
	first, err := NewEd25519PrivateKeyFromSeed(seed)
	assert.NoError(t, err)
	second, err := NewEd25519PrivateKeyFromSeed(seed)
	assert.NoError(t, err)
	assert.Equal(t, first.PublicKey().Bytes(), second.PublicKey().Bytes())
	assert.Equal(t, first.PublicKey().SuiAddress(), second.PublicKey().SuiAddress())
	assert.Equal(t, seed, first.Seed())
}

func TestEd25519_BadSeedLength(t *testing.T) {
	_, err := NewEd25519PrivateKeyFromSeed([]byte{1, 2, 3})
	assert.Error(t, err)
}

func TestIntent_Bytes(t *testing.T) {
	assert.Equal(t, []byte{0, 0, 0}, SuiTransactionIntent().Bytes())
	assert.Equal(t, []byte{3, 0, 0}, PersonalMessageIntent().Bytes())

	wrapped := MessageWithIntent(SuiTransactionIntent(), []byte{0xaa})
	assert.Equal(t, []byte{0, 0, 0, 0xaa}, wrapped)
}

func TestSignature_Serialization(t *testing.T) {
	key, err := GenerateEd25519PrivateKey()
	assert.NoError(t, err)
	sig, err := key.SignWithIntent(SuiTransactionIntent(), []byte("payload"))
	assert.NoError(t, err)

	encoded := sig.String()
	raw, err := base64.StdEncoding.DecodeString(encoded)
	assert.NoError(t, err)
	assert.Len(t, raw, 97)
	assert.Equal(t, Ed25519Scheme, raw[0])
	assert.Equal(t, key.PublicKey().Bytes(), raw[65:])

	parsed, err := ParseSignature(encoded)
	assert.NoError(t, err)
	assert.Equal(t, sig.SignatureBytes(), parsed.SignatureBytes())
	assert.Equal(t, sig.PublicKeyBytes(), parsed.PublicKeyBytes())
}

func TestSignature_ParseErrors(t *testing.T) {
	_, err := ParseSignature("not base64!!!")
	assert.Error(t, err)

	_, err = ParseSignature(base64.StdEncoding.EncodeToString([]byte{1, 2, 3}))
	assert.Error(t, err)

	// Wrong scheme flag
	raw := make([]byte, 97)
	raw[0] = 0xff
	_, err = ParseSignature(base64.StdEncoding.EncodeToString(raw))
	assert.Error(t, err)
}

func TestSuiAddress_Derivation(t *testing.T) {
	key, err := GenerateEd25519PrivateKey()
	assert.NoError(t, err)
	address := key.PublicKey().SuiAddress()
	assert.NotEqual(t, [32]byte{}, address)

	other, err := GenerateEd25519PrivateKey()
	assert.NoError(t, err)
	assert.NotEqual(t, address, other.PublicKey().SuiAddress())
}
