package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrustLevelFor(t *testing.T) {
	tests := []struct {
		name     string
		score    float64
		max      float64
		expected TrustLevel
	}{
		{"negative score", -1, 10, TrustNegative},
		{"negative with zero max", -3, 0, TrustNegative},
		{"zero max", 0, 0, TrustLow},
		{"top score", 10, 10, TrustHigh},
		{"two thirds", 6.7, 10, TrustHigh},
		{"half", 5, 10, TrustMedium},
		{"one third", 3.4, 10, TrustMedium},
		{"small", 1, 10, TrustLow},
		{"zero", 0, 10, TrustLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TrustLevelFor(tt.score, tt.max))
		})
	}
}

func TestParseTrustLevel(t *testing.T) {
	level, err := ParseTrustLevel("High")
	assert.NoError(t, err)
	assert.Equal(t, TrustHigh, level)

	_, err = ParseTrustLevel("trusted")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
