package shopify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	assert.Equal(t, 12.5, ParseMoney("12.50"))
	assert.Equal(t, 0.0, ParseMoney(""))
	assert.Equal(t, 0.0, ParseMoney("not-a-number"))
	assert.Equal(t, -3.25, ParseMoney("-3.25"))
	assert.Equal(t, 7.0, ParseMoney("  7  "))
}

func TestRoundMoney(t *testing.T) {
	assert.Equal(t, 10.57, RoundMoney(10.565))
	assert.Equal(t, 0.1, RoundMoney(0.1+0.2-0.2))
	assert.Equal(t, -2.5, RoundMoney(-2.499999))
}

func TestParseTimeMillis(t *testing.T) {
	ms := ParseTimeMillis("2025-06-01T00:00:00Z")
	require.NotNil(t, ms)
	assert.Equal(t, int64(1748736000000), *ms)

	assert.Nil(t, ParseTimeMillis(""))
	assert.Nil(t, ParseTimeMillis("yesterday"))

	// Offsets normalize to UTC.
	withOffset := ParseTimeMillis("2025-06-01T02:00:00+02:00")
	require.NotNil(t, withOffset)
	assert.Equal(t, *ms, *withOffset)
}

func TestStripGID(t *testing.T) {
	assert.Equal(t, "123", StripGID("gid://shopify/Order/123", "Order"))
	assert.Equal(t, "123", StripGID("123", "Order"))
	// A mismatched type leaves the id untouched.
	assert.Equal(t, "gid://shopify/Product/9", StripGID("gid://shopify/Product/9", "Order"))
}
