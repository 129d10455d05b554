package store

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subtrack-dev/subtrack/internal/model"
)

func sampleTxns() []model.Transaction {
	return []model.Transaction{
		{
			ID:                    "t-1",
			Date:                  time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC),
			Description:           "NETFLIX.COM",
			Amount:                decimal.RequireFromString("24.10"),
			Vendor:                "Netflix.com",
			Category:              "Subscriptions",
			Direction:             model.Debit,
			IsSubscription:        true,
			SubscriptionFrequency: model.FrequencyMonthly,
		},
		{
			ID:          "t-2",
			Date:        time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC),
			Description: "TOM SUSHI #50929 BC",
			Amount:      decimal.RequireFromString("45.80"),
			Vendor:      "Tom Sushi",
			Category:    "Dining",
			Direction:   model.Debit,
		},
	}
}

func TestWriteRead_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleTxns()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, Header, lines[0])

	got, err := Read(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)

	want := sampleTxns()
	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.True(t, want[i].Date.Equal(got[i].Date))
		assert.Equal(t, want[i].Description, got[i].Description)
		assert.True(t, want[i].Amount.Equal(got[i].Amount))
		assert.Equal(t, want[i].Direction, got[i].Direction)
		assert.Equal(t, want[i].IsSubscription, got[i].IsSubscription)
		assert.Equal(t, want[i].SubscriptionFrequency, got[i].SubscriptionFrequency)
	}
}

func TestRead_Empty(t *testing.T) {
	got, err := Read(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUnmarshal_FieldCount(t *testing.T) {
	_, err := Unmarshal([]string{"t-1", "2025-02-14"})
	assert.Error(t, err)
}

func TestUnmarshal_BadDate(t *testing.T) {
	rec := Marshal(sampleTxns()[0])
	rec[1] = "14/02/2025"
	_, err := Unmarshal(rec)
	assert.Error(t, err)
}

func TestUnmarshal_BadAmount(t *testing.T) {
	rec := Marshal(sampleTxns()[0])
	rec[3] = "twenty"
	_, err := Unmarshal(rec)
	assert.Error(t, err)
}

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, Save(dir, sampleTxns()))

	got, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "t-1", got[0].ID)
}

func TestLoad_MissingFileIsEmptyLedger(t *testing.T) {
	got, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, got)
}
