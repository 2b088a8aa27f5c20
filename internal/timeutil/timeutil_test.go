// AngelaMos | 2026
// timeutil_test.go

package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDate(t *testing.T) {
	ts := time.Date(2026, 3, 9, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, "03/09/2026 14:30", FormatDate(ts))
}

func TestFormatDate_ZeroTime(t *testing.T) {
	assert.Equal(t, "", FormatDate(time.Time{}))
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{
			name:  "rfc3339",
			input: "2026-03-09T14:30:00Z",
			want:  time.Date(2026, 3, 9, 14, 30, 0, 0, time.UTC),
		},
		{
			name:  "date only",
			input: "2026-03-09",
			want:  time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "display layout round trip",
			input: "03/09/2026 14:30",
			want:  time.Date(2026, 3, 9, 14, 30, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v want %v", got, tt.want)
		})
	}
}

func TestParseDate_Invalid(t *testing.T) {
	_, err := ParseDate("not-a-date")
	assert.Error(t, err)
}
