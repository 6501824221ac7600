package sui

import (
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"

	"github.com/BigdraCo1/sui-object-model-workshop/crypto"
)

// FileBasedKeystore holds signing keys backed by a JSON file of
// base64-encoded scheme-flag-prefixed seeds, the same format the network
// CLI uses, so the two can share a keystore.
//
// The file is read on open and written on Save; concurrent processes
// mutating the same file are not coordinated.
type FileBasedKeystore struct {
	path  string
	keys  map[AccountAddress]*crypto.Ed25519PrivateKey
	order []AccountAddress
}

// NewFileBasedKeystore opens the keystore at path, loading existing keys
// if the file exists and starting empty otherwise.
func NewFileBasedKeystore(path string) (*FileBasedKeystore, error) {
	keystore := &FileBasedKeystore{
		path: path,
		keys: make(map[AccountAddress]*crypto.Ed25519PrivateKey),
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return keystore, nil
	}
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "read keystore %s", path), ErrConfig)
	}
	var entries []string
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "keystore %s is not a JSON string array", path), ErrConfig)
	}
	for i, entry := range entries {
		key, err := decodeKeystoreEntry(entry)
		if err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "keystore %s entry %d", path, i), ErrConfig)
		}
		keystore.add(key)
	}
	return keystore, nil
}

func decodeKeystoreEntry(entry string) (*crypto.Ed25519PrivateKey, error) {
	raw, err := base64.StdEncoding.DecodeString(entry)
	if err != nil {
		return nil, errors.Wrap(err, "invalid base64")
	}
	if len(raw) != 1+crypto.Ed25519SeedLength {
		return nil, errors.Newf("expected %d bytes, got %d", 1+crypto.Ed25519SeedLength, len(raw))
	}
	if raw[0] != crypto.Ed25519Scheme {
		return nil, errors.Newf("unsupported key scheme flag 0x%02x", raw[0])
	}
	return crypto.NewEd25519PrivateKeyFromSeed(raw[1:])
}

func encodeKeystoreEntry(key *crypto.Ed25519PrivateKey) string {
	raw := make([]byte, 0, 1+crypto.Ed25519SeedLength)
	raw = append(raw, crypto.Ed25519Scheme)
	raw = append(raw, key.Seed()...)
	return base64.StdEncoding.EncodeToString(raw)
}

func (ks *FileBasedKeystore) add(key *crypto.Ed25519PrivateKey) AccountAddress {
	address := NewAddressFromPublicKey(key.PublicKey())
	if _, exists := ks.keys[address]; !exists {
		ks.order = append(ks.order, address)
	}
	ks.keys[address] = key
	return address
}

// Save writes the keystore file, creating parent directories as needed.
func (ks *FileBasedKeystore) Save() error {
	entries := make([]string, 0, len(ks.order))
	for _, address := range ks.order {
		entries = append(entries, encodeKeystoreEntry(ks.keys[address]))
	}
	raw, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return errors.Mark(err, ErrConfig)
	}
	if err := os.MkdirAll(filepath.Dir(ks.path), 0o700); err != nil {
		return errors.Mark(errors.Wrap(err, "create keystore directory"), ErrConfig)
	}
	if err := os.WriteFile(ks.path, raw, 0o600); err != nil {
		return errors.Mark(errors.Wrapf(err, "write keystore %s", ks.path), ErrConfig)
	}
	return nil
}

// Addresses returns the known addresses in insertion order.
func (ks *FileBasedKeystore) Addresses() []AccountAddress {
	return append([]AccountAddress{}, ks.order...)
}

// GenerateAndAddKey creates a new ed25519 key, adds it to the keystore,
// and returns its address. Call Save to persist.
func (ks *FileBasedKeystore) GenerateAndAddKey() (AccountAddress, error) {
	key, err := crypto.GenerateEd25519PrivateKey()
	if err != nil {
		return AccountZero, err
	}
	return ks.add(key), nil
}

// SignSecure signs the transaction data with the key of the given
// address under the given intent. Fails with ErrSigning if the keystore
// has no key for the address.
func (ks *FileBasedKeystore) SignSecure(signer AccountAddress, td *TransactionData, intent crypto.Intent) (*crypto.Signature, error) {
	key, ok := ks.keys[signer]
	if !ok {
		return nil, errors.Wrapf(ErrSigning, "no key for address %s", signer)
	}
	message, err := td.SigningMessage()
	if err != nil {
		return nil, err
	}
	return key.SignWithIntent(intent, message)
}

// SignTransaction signs transaction data under the transaction intent and
// returns the submittable signed transaction.
func (ks *FileBasedKeystore) SignTransaction(signer AccountAddress, td *TransactionData) (*SignedTransaction, error) {
	sig, err := ks.SignSecure(signer, td, crypto.SuiTransactionIntent())
	if err != nil {
		return nil, err
	}
	return &SignedTransaction{Data: td, Signatures: []*crypto.Signature{sig}}, nil
}
