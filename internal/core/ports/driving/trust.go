package driving

import "context"

// TrustService computes web-of-trust scores relative to a viewer.
type TrustService interface {
	// Score returns the trust score of target as seen by viewer.
	Score(ctx context.Context, viewer, target string) (float64, error)

	// Scores returns scores for every target as seen by viewer.
	Scores(ctx context.Context, viewer string, targets []string) (map[string]float64, error)
}
