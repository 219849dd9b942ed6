package postname

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParse_ValidNames(t *testing.T) {
	tests := []struct {
		input string
		want  Name
		link  string
	}{
		{"2024-01-05-hello", Name{2024, 1, 5, "hello"}, "/2024/01/05/hello"},
		{"1999-12-31-party-time", Name{1999, 12, 31, "party-time"}, "/1999/12/31/party-time"},
		{"2024-02-29-leap", Name{2024, 2, 29, "leap"}, "/2024/02/29/leap"},
		{"0042-07-04-Old_Post2", Name{42, 7, 4, "Old_Post2"}, "/0042/07/04/Old_Post2"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := Parse(tt.input)
			require.True(t, ok)
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.link, got.Link())
			require.Equal(t, tt.input, got.String())
			require.Equal(t, time.Date(tt.want.Year, time.Month(tt.want.Month), tt.want.Day, 0, 0, 0, 0, time.UTC), got.Date())
		})
	}
}

func TestParse_RejectsInvalidCalendarDates(t *testing.T) {
	for _, input := range []string{
		"2023-02-30-x",
		"2023-02-29-not-leap",
		"2024-13-01-month",
		"2024-00-10-zero-month",
		"2024-04-31-april",
		"2024-01-00-zero-day",
		"0000-01-01-year-zero",
	} {
		t.Run(input, func(t *testing.T) {
			_, ok := Parse(input)
			require.False(t, ok)
		})
	}
}

func TestParse_RejectsMalformedNames(t *testing.T) {
	for _, input := range []string{
		"",
		"hello",
		"2024-01-05",
		"2024-01-05-",
		"24-01-05-short-year",
		"2024-1-05-single-digit",
		"2024-01-05-has space",
		"2024-01-05-dots.in.slug",
		"x2024-01-05-prefix",
	} {
		t.Run(input, func(t *testing.T) {
			_, ok := Parse(input)
			require.False(t, ok)
		})
	}
}
