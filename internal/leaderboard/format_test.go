package leaderboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatLapTime(t *testing.T) {
	tests := []struct {
		name string
		ms   int
		want string
	}{
		{"typical lap", 88123, "1:28.123"},
		{"under a minute", 59999, "0:59.999"},
		{"exact minute", 60000, "1:00.000"},
		{"long lap", 601005, "10:01.005"},
		{"zero", 0, "-"},
		{"negative", -100, "-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatLapTime(tt.ms))
		})
	}
}
