package allocation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProratedRate(t *testing.T) {
	tests := []struct {
		name   string
		annual int
		term   int64
		want   int64
	}{
		{"rounds down below half", 40, 30, 3},   // 3.33
		{"rounds up above half", 50, 30, 4},     // 4.17
		{"exact half rounds up", 45, 4, 1},      // 0.5
		{"full year", 360, 360, 360},            // 360
		{"zero rate", 0, 90, 0},                 // 0
		{"zero term", 50, 0, 0},                 // 0
		{"long term", 1200, 720, 2400},          // 2400
		{"negative term half", 45, -4, 0},       // -0.5 -> floor(0) = 0
		{"negative term rounds", 50, -30, -4},   // -4.17
		{"large values stay exact", 10000, 3600, 100000},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProratedRate(tt.annual, tt.term))
		})
	}
}

func TestInterestAndEarlyPayment(t *testing.T) {
	tests := []struct {
		name      string
		face      int64
		rate      int64
		interest  int64
		remainder int64
	}{
		{"reference invoice", 1_000_000, 3, 300, 999_700},
		{"below half a cent", 4_999, 1, 0, 4_999},
		{"exact half a cent rounds up", 5_000, 1, 1, 4_999},
		{"one and a half cents", 15_000, 1, 2, 14_998},
		{"zero face", 0, 30, 0, 0},
		{"zero rate", 123_456, 0, 0, 123_456},
		{"whole face", 9_000_000, 10_000, 9_000_000, 0},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.interest, Interest(tt.face, tt.rate))
			assert.Equal(t, tt.remainder, EarlyPayment(tt.face, tt.rate))
		})
	}
}
