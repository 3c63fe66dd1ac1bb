package shopify

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Shopify money amounts arrive as decimal strings ("12.50"). Anything
// unparseable is treated as zero so a single bad field never aborts a sync.
func ParseMoney(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return f
}

// RoundMoney rounds to 2 decimal places for currency-safe storage.
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

// ParseTimeMillis converts an ISO-8601 timestamp to epoch milliseconds.
// Absent or malformed timestamps map to nil, never zero.
func ParseTimeMillis(s string) *int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	ms := t.UTC().UnixMilli()
	return &ms
}

// StripGID removes the global-id prefix for one entity type:
// "gid://shopify/Order/123" -> "123". Already-stripped ids pass through.
func StripGID(id, typ string) string {
	return strings.TrimPrefix(id, "gid://shopify/"+typ+"/")
}
