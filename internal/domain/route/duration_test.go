package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		seconds  int
		expected string
	}{
		{name: "zero seconds", seconds: 0, expected: "1m"},
		{name: "under one minute", seconds: 59, expected: "1m"},
		{name: "exactly one minute", seconds: 60, expected: "1m"},
		{name: "almost two minutes floors", seconds: 119, expected: "1m"},
		{name: "exact hour bumps remainder", seconds: 3600, expected: "1h 1m"},
		{name: "hour and one minute", seconds: 3660, expected: "1h 1m"},
		{name: "hour and a half", seconds: 5400, expected: "1h 30m"},
		{name: "multiple hours", seconds: 2*3600 + 5*60 + 30, expected: "2h 5m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDuration(tt.seconds))
		})
	}
}
