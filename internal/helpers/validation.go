package helpers

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// IsAddressValid checks if the provided string is a valid 0x-prefixed
// Ethereum address (42 characters, hex payload).
func IsAddressValid(address string) bool {
	if !strings.HasPrefix(address, "0x") && !strings.HasPrefix(address, "0X") {
		return false
	}
	return common.IsHexAddress(address)
}
