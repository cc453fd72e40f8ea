package domain

import (
	"fmt"
	"strings"
)

// TrustLevel is a coarse bucket derived from a web-of-trust score.
type TrustLevel string

// Available trust levels.
const (
	TrustHigh     TrustLevel = "high"
	TrustMedium   TrustLevel = "medium"
	TrustLow      TrustLevel = "low"
	TrustNegative TrustLevel = "negative"
)

// IsValid returns true if the trust level is recognised.
func (l TrustLevel) IsValid() bool {
	switch l {
	case TrustHigh, TrustMedium, TrustLow, TrustNegative:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (l TrustLevel) String() string {
	return string(l)
}

// ParseTrustLevel converts a stored or user supplied name into a TrustLevel.
func ParseTrustLevel(s string) (TrustLevel, error) {
	level := TrustLevel(strings.ToLower(strings.TrimSpace(s)))
	if !level.IsValid() {
		return "", fmt.Errorf("%w: unknown trust level %q", ErrInvalidInput, s)
	}
	return level, nil
}

// TrustLevelFor buckets score relative to the highest score observed in the
// same result set. Negative scores are always TrustNegative.
func TrustLevelFor(score, maxScore float64) TrustLevel {
	if score < 0 {
		return TrustNegative
	}
	if maxScore <= 0 {
		return TrustLow
	}
	ratio := score / maxScore
	switch {
	case ratio >= 2.0/3.0:
		return TrustHigh
	case ratio >= 1.0/3.0:
		return TrustMedium
	default:
		return TrustLow
	}
}
