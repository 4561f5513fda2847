package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// testTime is a fixed time for consistent test results
var testTime = time.Date(2024, 1, 23, 15, 4, 5, 0, time.Local)

func TestDateTime_Defaults(t *testing.T) {
	t.Setenv(DateFormatEnv, "")
	t.Setenv(TimeFormatEnv, "")

	require.Equal(t, "2024-01-23 15:04", DateTime(testTime))
}

func TestDate_Presets(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"mm/dd/yyyy", "01/23/2024"},
		{"dd/mm/yyyy", "23/01/2024"},
		{"yyyy-mm-dd", "2024-01-23"},
		{"Jan 02", "Jan 23"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			t.Setenv(DateFormatEnv, tt.format)
			require.Equal(t, tt.want, Date(testTime))
		})
	}
}

func TestTime_12h(t *testing.T) {
	t.Setenv(TimeFormatEnv, "12h")
	require.Equal(t, "3:04 PM", Time(testTime))
}

func TestDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{-time.Second, "-"},
		{850 * time.Millisecond, "850ms"},
		{12400 * time.Millisecond, "12.4s"},
		{3*time.Minute + 5*time.Second, "3m05s"},
		{time.Hour + 2*time.Minute + 30*time.Second, "1h02m"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			require.Equal(t, tt.want, Duration(tt.in))
		})
	}
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "short", Truncate("  short ", 10))
	require.Equal(t, "abcde...", Truncate("abcdefgh", 5))
	require.Equal(t, "héllo...", Truncate("héllo wörld", 5))
	require.Equal(t, "anything", Truncate("anything", 0))
}
