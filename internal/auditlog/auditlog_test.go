package auditlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEntry(action string) Entry {
	return Entry{
		Timestamp:  time.Date(2025, 2, 14, 9, 30, 0, 0, time.UTC),
		Action:     action,
		Details:    "statement.csv",
		RowCount:   12,
		CommitHash: "abc1234",
	}
}

func TestAppendRead_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, Append(dir, []Entry{sampleEntry("import")}))
	require.NoError(t, Append(dir, []Entry{sampleEntry("detect")}))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "import", entries[0].Action)
	assert.Equal(t, "detect", entries[1].Action)
	assert.Equal(t, 12, entries[0].RowCount)
	assert.True(t, entries[0].Timestamp.Equal(sampleEntry("import").Timestamp))
}

func TestAppend_WritesHeaderOnce(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, Append(dir, []Entry{sampleEntry("import")}))
	require.NoError(t, Append(dir, []Entry{sampleEntry("import")}))

	data, err := os.ReadFile(filepath.Join(dir, "logs", "actions.csv"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, Header, lines[0])
}

func TestRead_Missing(t *testing.T) {
	entries, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestUnmarshalEntry_BadRowCount(t *testing.T) {
	rec := MarshalEntry(sampleEntry("import"))
	rec[3] = "lots"
	_, err := UnmarshalEntry(rec)
	assert.Error(t, err)
}
