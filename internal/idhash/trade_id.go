// Package idhash computes deterministic record identifiers.
package idhash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"dexwatch/internal/domain"
)

// ComputeTradeID computes a deterministic trade_id using SHA256.
// Formula: SHA256(pair_address|action|timestamp_ms)
// Returns hex-encoded hash (64 characters). The same decision produced
// twice maps to the same ID, so duplicate inserts surface as
// ErrDuplicateKey instead of double-counted trades.
func ComputeTradeID(pairAddress string, action domain.TradeAction, timestampMs int64) string {
	data := fmt.Sprintf("%s|%s|%d", pairAddress, string(action), timestampMs)

	hash := sha256.Sum256([]byte(data))
	return hex.EncodeToString(hash[:])
}
