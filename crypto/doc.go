// Package crypto holds the key material and signing primitives the SDK
// uses: ed25519 keys, Sui address derivation, intent-scoped signing, and
// the serialized signature format the network expects.
//
// Signatures are never produced over raw payload bytes. The payload is
// first wrapped in an intent — a three byte (scope, version, app id)
// prefix identifying what kind of message is being signed — then hashed
// with Blake2b-256, and the hash is what gets signed. The scope prevents a
// signature over, say, a personal message from being replayed as a
// transaction.
package crypto
