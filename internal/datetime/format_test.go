package datetime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatters(t *testing.T) {
	tests := []struct {
		name         string
		ts           Timestamp
		wantDateTime string
		wantDate     string
		wantTime     string
	}{
		{"evening", mustTimestamp(2024, 12, 15, 18, 0), "Dec 15 2024, 18:00", "Dec 15 2024", "18:00"},
		{"padded", mustTimestamp(2025, 1, 5, 9, 7), "Jan 05 2025, 09:07", "Jan 05 2025", "09:07"},
		{"midnight", mustTimestamp(2024, 3, 10, 0, 0), "Mar 10 2024, 00:00", "Mar 10 2024", "00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantDateTime, FormatDateTime(tt.ts))
			assert.Equal(t, tt.wantDate, FormatDate(tt.ts))
			assert.Equal(t, tt.wantTime, FormatTime(tt.ts))
		})
	}
}

func TestFormatDateTime_OfParsedISODate(t *testing.T) {
	ts, err := Parse("2024-12-15", wednesday)
	require.NoError(t, err)
	assert.Equal(t, "Dec 15 2024, 00:00", FormatDateTime(ts))
}

func TestISO(t *testing.T) {
	ts := mustTimestamp(2024, 12, 15, 18, 0)
	assert.Equal(t, "2024-12-15T18:00", FormatISO(ts))
	assert.Equal(t, "2024-12-15T18:00", ts.String())

	back, err := ParseISO("2024-12-15T18:00")
	require.NoError(t, err)
	assert.Equal(t, ts, back)

	withSeconds, err := ParseISO("2024-12-15T18:00:30")
	require.NoError(t, err)
	assert.Equal(t, ts, withSeconds)

	_, err = ParseISO("15/12/2024 1800")
	assert.Error(t, err)
}
