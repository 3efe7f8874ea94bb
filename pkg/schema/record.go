// Package schema defines universal data structures shared between the
// Warga Store engine, its network protocol, and its clients.
package schema

import (
	"math"
	"strings"
)

// AmountNaN is the sentinel stored when an amount field could not be
// parsed as a number at all. It deliberately flows downstream into
// formatting instead of being rejected.
const AmountNaN = math.MinInt64

// Record is a single civil-registry entry. The JSON keys double as the
// persisted form: the registry file is one JSON array of these.
type Record struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	NationalID string `json:"nationalId"`
	Address    string `json:"address"`
	Amount     int64  `json:"amount"`
	CreatedAt  string `json:"createdAt"`
}

// ParseAmount converts a raw amount string to whole currency units.
// It reads an optional sign and then consumes leading decimal digits,
// discarding everything after them, so "5000.75" yields 5000. Input
// with no leading digits yields AmountNaN.
func ParseAmount(raw string) int64 {
	s := strings.TrimSpace(raw)

	i := 0
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}

	start := i
	var n int64
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		d := int64(s[i] - '0')
		if n > (math.MaxInt64-d)/10 {
			return AmountNaN
		}
		n = n*10 + d
		i++
	}
	if i == start {
		return AmountNaN
	}

	if neg {
		return -n
	}
	return n
}
