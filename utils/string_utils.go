package utils

import (
	"fmt"
	"regexp"
)

var capacityDigits = regexp.MustCompile(`\d+`)

// ExtractCapacityValue returns the leading number of a capacity label, which
// is what the reseller API expects ("5GB" -> "5"). Labels with no digits
// pass through unchanged.
func ExtractCapacityValue(capacity string) string {
	if match := capacityDigits.FindString(capacity); match != "" {
		return match
	}
	return capacity
}

// FormatCedis renders an amount for receipts and logs
func FormatCedis(amount float64) string {
	return fmt.Sprintf("GHS %.2f", amount)
}
