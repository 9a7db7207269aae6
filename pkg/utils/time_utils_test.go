package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapDownHalfHour(t *testing.T) {
	cases := map[string]string{
		"09:00": "09:00",
		"09:15": "09:00",
		"09:30": "09:30",
		"09:45": "09:30",
	}
	for in, want := range cases {
		parsed, err := ParseClock(in)
		require.NoError(t, err)
		assert.Equal(t, want, FormatClock(SnapDownHalfHour(parsed)), "input %s", in)
	}
}

func TestSnapUpHalfHour(t *testing.T) {
	cases := map[string]string{
		"21:00": "21:00",
		"21:01": "21:30",
		"21:30": "21:30",
		"21:31": "22:00",
		"21:45": "22:00",
	}
	for in, want := range cases {
		parsed, err := ParseClock(in)
		require.NoError(t, err)
		assert.Equal(t, want, FormatClock(SnapUpHalfHour(parsed)), "input %s", in)
	}
}

func TestParseClockRejectsGarbage(t *testing.T) {
	_, err := ParseClock("25:99")
	assert.Error(t, err)
	_, err = ParseClock("noon")
	assert.Error(t, err)
}
