package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{5 * time.Minute, "5m"},
		{59 * time.Minute, "59m"},
		{time.Hour, "1h 00m"},
		{2*time.Hour + 5*time.Minute, "2h 05m"},
		{90 * time.Second, "2m"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, formatDuration(tc.in), tc.in)
	}
}
