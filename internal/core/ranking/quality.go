package ranking

// Reference scales and weights for quality scoring.
const (
	profileFollowerScale  = 1000.0
	profileFollowingScale = 500.0
	profileFollowerWeight = 0.5
	profileFollowWeight   = 0.2
	profileVerifiedBoost  = 0.3

	contentLikeScale    = 100.0
	contentReplyScale   = 50.0
	contentRepostScale  = 20.0
	contentLengthScale  = 280.0
	contentLikeWeight   = 0.4
	contentReplyWeight  = 0.3
	contentRepostWeight = 0.2
	contentLengthWeight = 0.1
)

// ProfileQualityScore blends network size and verification into [0,1].
// Negative counts are treated as zero.
func ProfileQualityScore(followers, following int, verified bool) float64 {
	score := profileFollowerWeight*nonNegative(followers)/profileFollowerScale +
		profileFollowWeight*nonNegative(following)/profileFollowingScale
	if verified {
		score += profileVerifiedBoost
	}
	return clamp01(score)
}

// ContentQualityScore blends engagement and body length into [0,1].
// Negative counts are treated as zero.
func ContentQualityScore(likes, replies, reposts, length int) float64 {
	lengthTerm := nonNegative(length) / contentLengthScale
	if lengthTerm > 1 {
		lengthTerm = 1
	}

	score := contentLikeWeight*nonNegative(likes)/contentLikeScale +
		contentReplyWeight*nonNegative(replies)/contentReplyScale +
		contentRepostWeight*nonNegative(reposts)/contentRepostScale +
		contentLengthWeight*lengthTerm
	return clamp01(score)
}

func nonNegative(n int) float64 {
	if n < 0 {
		return 0
	}
	return float64(n)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
