package utils

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// IsValidAddress reports whether s is a well-formed hex address.
func IsValidAddress(s string) bool {
	return common.IsHexAddress(s)
}

// NormalizeAddress canonicalizes a hex address to its lowercase form so map
// and DB keys compare consistently.
func NormalizeAddress(s string) string {
	return strings.ToLower(common.HexToAddress(s).Hex())
}
