package pagination_test

import (
	"testing"
	"time"

	"github.com/laquila/backend/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	ts := time.Date(2025, time.August, 29, 14, 30, 12, 345678000, time.UTC)
	token := pagination.EncodeToken(ts, "ord_123")

	gotTS, gotID, err := pagination.DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, ts.Equal(gotTS))
	assert.Equal(t, "ord_123", gotID)
}

func TestTokenRoundTrip_IDWithSeparator(t *testing.T) {
	ts := time.Now().UTC()
	token := pagination.EncodeToken(ts, "a|b")

	_, gotID, err := pagination.DecodeToken(token)
	require.NoError(t, err)
	assert.Equal(t, "a|b", gotID)
}

func TestDecodeToken_Invalid(t *testing.T) {
	_, _, err := pagination.DecodeToken("not-base64!!")
	assert.Error(t, err)

	_, _, err = pagination.DecodeToken("bm8tc2VwYXJhdG9y") // "no-separator"
	assert.Error(t, err)
}
