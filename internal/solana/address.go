// Package solana provides address validation for Solana-chain pairs.
package solana

import (
	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"
)

// PublicKeyLength is the byte length of a Solana public key.
const PublicKeyLength = 32

// ValidAddress reports whether s is a plausible Solana address: base58
// text decoding to exactly 32 bytes. Program-derived addresses are off
// the ed25519 curve, so curve membership is not required here.
func ValidAddress(s string) bool {
	decoded, err := base58.Decode(s)
	if err != nil {
		return false
	}
	return len(decoded) == PublicKeyLength
}

// OnCurve reports whether the address decodes to a point on the
// ed25519 curve, i.e. a wallet key rather than a derived address.
func OnCurve(s string) bool {
	decoded, err := base58.Decode(s)
	if err != nil || len(decoded) != PublicKeyLength {
		return false
	}
	_, err = new(edwards25519.Point).SetBytes(decoded)
	return err == nil
}
