package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken(t *testing.T) {
	createdAt := time.Date(2024, 5, 15, 14, 30, 45, 123456789, time.UTC)

	token := EncodeToken(createdAt, 42)
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedCreatedAt, decodedID, err := DecodeToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, createdAt, decodedCreatedAt, "Created at time should match after decode")
	assert.Equal(t, int64(42), decodedID, "ID should match after decode")

	// Current time round-trip
	now := time.Now().UTC()
	nowToken := EncodeToken(now, 1)
	decodedNow, _, err := DecodeToken(nowToken)
	assert.NoError(t, err)
	assert.True(t, now.Equal(decodedNow), "Current time should match after decode")
}

func TestDecodeTokenError(t *testing.T) {
	// Invalid base64
	_, _, err := DecodeToken("this is not base64!")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")

	// Missing separator
	_, _, err = DecodeToken("MjAyMy0wNS0xNVQwMDowMDowMFo=")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	// Bad timestamp
	_, _, err = DecodeToken("bm90YWRhdGV8NDI=") // "notadate|42"
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "created_at parse")

	// Bad id
	_, _, err = DecodeToken("MjAyMy0wNS0xNVQxNDozMDo0NVp8bm90YW5pZA==") // "2023-05-15T14:30:45Z|notanid"
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "id parse")
}
