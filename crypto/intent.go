package crypto

import "golang.org/x/crypto/blake2b"

// IntentScope tags what kind of message a signature covers.
type IntentScope uint8

const (
	// IntentScopeTransactionData marks signing bytes as a transaction.
	IntentScopeTransactionData IntentScope = 0
	// IntentScopeTransactionEffects marks signing bytes as transaction effects.
	IntentScopeTransactionEffects IntentScope = 1
	// IntentScopeCheckpointSummary marks signing bytes as a checkpoint summary.
	IntentScopeCheckpointSummary IntentScope = 2
	// IntentScopePersonalMessage marks signing bytes as a user-presented message.
	IntentScopePersonalMessage IntentScope = 3
)

// IntentVersion is the version field of an intent. Only V0 exists today.
type IntentVersion uint8

// IntentVersionV0 is the only defined intent version.
const IntentVersionV0 IntentVersion = 0

// AppId identifies which application domain the signature belongs to.
type AppId uint8

// AppIdSui is the application id for the Sui network itself.
const AppIdSui AppId = 0

// Intent is the domain separator prepended to a message before hashing
// and signing, binding the signature to one message kind.
type Intent struct {
	Scope   IntentScope
	Version IntentVersion
	AppId   AppId
}

// SuiTransactionIntent is the intent for signing transaction data.
func SuiTransactionIntent() Intent {
	return Intent{Scope: IntentScopeTransactionData, Version: IntentVersionV0, AppId: AppIdSui}
}

// PersonalMessageIntent is the intent for signing off-chain user messages.
func PersonalMessageIntent() Intent {
	return Intent{Scope: IntentScopePersonalMessage, Version: IntentVersionV0, AppId: AppIdSui}
}

// Bytes returns the three-byte wire form of the intent.
func (intent Intent) Bytes() []byte {
	return []byte{byte(intent.Scope), byte(intent.Version), byte(intent.AppId)}
}

// MessageWithIntent prepends the intent to the message bytes, producing
// the exact bytes that get hashed for signing.
func MessageWithIntent(intent Intent, message []byte) []byte {
	out := make([]byte, 0, len(message)+3)
	out = append(out, intent.Bytes()...)
	out = append(out, message...)
	return out
}

// HashIntentMessage hashes an intent-wrapped message with Blake2b-256.
// The resulting digest is both what gets signed and, for transaction
// data, the transaction digest reported by the network.
func HashIntentMessage(intent Intent, message []byte) [32]byte {
	return blake2b.Sum256(MessageWithIntent(intent, message))
}
