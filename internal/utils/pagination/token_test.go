package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken(t *testing.T) {
	documentDate := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2026, 3, 12, 14, 30, 45, 123456789, time.UTC)

	token := EncodeToken(documentDate, createdAt)
	assert.NotEmpty(t, token)

	decodedDate, decodedCreatedAt, err := DecodeToken(token)
	assert.NoError(t, err)
	assert.Equal(t, documentDate, decodedDate)
	assert.Equal(t, createdAt, decodedCreatedAt)

	zeroTime := time.Time{}
	zeroToken := EncodeToken(zeroTime, zeroTime)
	decodedZeroDate, decodedZeroTime, err := DecodeToken(zeroToken)
	assert.NoError(t, err)
	assert.Equal(t, zeroTime, decodedZeroDate)
	assert.Equal(t, zeroTime, decodedZeroTime)

	now := time.Now().UTC()
	nowToken := EncodeToken(now, now)
	decodedNowDate, decodedNowTime, err := DecodeToken(nowToken)
	assert.NoError(t, err)
	assert.True(t, now.Equal(decodedNowDate))
	assert.True(t, now.Equal(decodedNowTime))
}

func TestDecodeTokenError(t *testing.T) {
	_, _, err := DecodeToken("this is not base64!")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode")

	// Base64 of a single date without the separator.
	_, _, err = DecodeToken("MjAyMy0wNS0xNVQwMDowMDowMFo=")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	// Base64 of "notadate|2023-05-15T14:30:45.123456789Z".
	_, _, err = DecodeToken("bm90YWRhdGV8MjAyMy0wNS0xNVQxNDozMDo0NS4xMjM0NTY3ODla")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "document date parse")
}

func TestEncodeMultiFieldToken(t *testing.T) {
	fields := []string{"line-1", "line-2", "line-3"}
	token := EncodeMultiFieldToken(fields...)

	decodedFields, err := DecodeMultiFieldToken(token)
	assert.NoError(t, err)
	assert.Equal(t, fields, decodedFields)

	// An empty token splits to a single empty field.
	emptyToken := EncodeMultiFieldToken()
	decodedEmpty, err := DecodeMultiFieldToken(emptyToken)
	assert.NoError(t, err)
	assert.Equal(t, []string{""}, decodedEmpty)

	// Pipes inside fields split too; callers must not embed them.
	specialToken := EncodeMultiFieldToken("a|b", "c")
	decodedSpecial, err := DecodeMultiFieldToken(specialToken)
	assert.NoError(t, err)
	assert.Len(t, decodedSpecial, 3)

	timestampStr := time.Now().UTC().Format(time.RFC3339Nano)
	timeToken := EncodeMultiFieldToken("account123", timestampStr)
	decodedTime, err := DecodeMultiFieldToken(timeToken)
	assert.NoError(t, err)
	assert.Equal(t, []string{"account123", timestampStr}, decodedTime)
}
