// Package bcs implements Binary Canonical Serialization (BCS), the wire
// format the Sui network uses for transaction payloads and Move values.
//
// BCS is not self-describing: readers and writers must agree on the schema
// out of band. Integers are little-endian, sequences are length-prefixed
// with a ULEB128 count, and enum variants are tagged with a ULEB128 index.
//
// Types serialize themselves by implementing [Marshaler]:
//
//	func (o ObjectRef) MarshalBCS(ser *bcs.Serializer) {
//		o.ObjectId.MarshalBCS(ser)
//		ser.U64(o.Version)
//		ser.WriteBytes(o.Digest[:])
//	}
//
// and are converted to bytes with [Serialize] or the typed helpers such as
// [SerializeU64].
package bcs
