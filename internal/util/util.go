// Package util contains small helpers shared across the SDK packages.
package util

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// ParseHex decodes a hex string with or without a 0x prefix.
func ParseHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(s, "0x")
	if len(s)%2 == 1 {
		s = "0" + s
	}
	out, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(err, "invalid hex string")
	}
	return out, nil
}

// BytesToHex encodes bytes as a 0x-prefixed hex string.
func BytesToHex(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}

// StrToUint64 parses the decimal string integers the node returns for u64
// JSON fields.
func StrToUint64(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 64)
}
