package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountLenientDecoding(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`500`, "500"},
		{`499.995`, "499.995"},
		{`"250.50"`, "250.5"},
		{`" 12 "`, "12"},
		{`"abc"`, "0"},
		{`null`, "0"},
		{`true`, "0"},
		{`{}`, "0"},
		{`[1]`, "0"},
		{`""`, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var a Amount
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &a))
			assert.True(t, a.Equal(decimal.RequireFromString(tt.want)), "got %s", a.String())
		})
	}
}

func TestAmountMissingFieldIsZero(t *testing.T) {
	var line JournalLineRequest
	require.NoError(t, json.Unmarshal([]byte(`{"accountId":"a","credit":"100"}`), &line))
	assert.True(t, line.Debit.IsZero())
	assert.True(t, line.Credit.Equal(decimal.NewFromInt(100)))
}

func TestCoordinateDecoding(t *testing.T) {
	var req CheckDeliveryRequest
	require.NoError(t, json.Unmarshal([]byte(`{"latitude":"23.81","longitude":90.41}`), &req))
	assert.True(t, req.Latitude.Valid)
	assert.Equal(t, 23.81, req.Latitude.Value)
	assert.Equal(t, 90.41, req.Longitude.Value)

	var bad CheckDeliveryRequest
	require.NoError(t, json.Unmarshal([]byte(`{"latitude":"north"}`), &bad))
	assert.False(t, bad.Latitude.Valid)
	assert.False(t, bad.Longitude.Valid)
}

func TestDateDecoding(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-01-15"`), &d))
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), d.Time)

	require.NoError(t, json.Unmarshal([]byte(`"2024-01-15T10:30:00+06:00"`), &d))
	assert.Equal(t, time.Date(2024, 1, 15, 4, 30, 0, 0, time.UTC), d.Time)

	require.NoError(t, json.Unmarshal([]byte(`null`), &d))
	assert.True(t, d.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`"15/01/2024"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`20240115`), &d))
}

func TestEndOfDay(t *testing.T) {
	assert.Nil(t, EndOfDay(nil))

	day := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 1, 31, 23, 59, 59, 999999999, time.UTC), *EndOfDay(&day))

	stamp := time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, stamp, *EndOfDay(&stamp))
}
