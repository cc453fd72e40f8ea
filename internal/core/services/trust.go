package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/plaza/internal/core/domain"
	"github.com/custodia-labs/plaza/internal/core/ports/driven"
	"github.com/custodia-labs/plaza/internal/core/ports/driving"
	"github.com/custodia-labs/plaza/internal/logger"
)

// Ensure TrustService implements the interface.
var _ driving.TrustService = (*TrustService)(nil)

var trustLog = logger.For("trust")

// TrustService scores accounts by how the viewer's follows treat them.
// A target gains one point for every followed account that also follows it
// and loses one for every followed account that mutes it.
type TrustService struct {
	graph driven.FollowGraph
}

// NewTrustService creates a new trust service.
// The graph may be nil, in which case every call fails with ErrTrustUnavailable.
func NewTrustService(graph driven.FollowGraph) *TrustService {
	return &TrustService{graph: graph}
}

// Score returns the trust score of target as seen by viewer.
func (s *TrustService) Score(ctx context.Context, viewer, target string) (float64, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return 0, fmt.Errorf("%w: target is required", domain.ErrInvalidInput)
	}
	scores, err := s.Scores(ctx, viewer, []string{target})
	if err != nil {
		return 0, err
	}
	return scores[target], nil
}

// Scores returns scores for every target as seen by viewer.
// Targets nobody in the viewer's neighbourhood mentions score zero.
func (s *TrustService) Scores(ctx context.Context, viewer string, targets []string) (map[string]float64, error) {
	if s.graph == nil {
		return nil, domain.ErrTrustUnavailable
	}
	viewer = strings.TrimSpace(viewer)
	if viewer == "" {
		return nil, fmt.Errorf("%w: viewer is required", domain.ErrInvalidInput)
	}

	scores := make(map[string]float64, len(targets))
	wanted := make(map[string]struct{}, len(targets))
	for _, t := range targets {
		if t == "" {
			continue
		}
		scores[t] = 0
		wanted[t] = struct{}{}
	}
	if len(wanted) == 0 {
		return scores, nil
	}

	follows, err := s.graph.Follows(ctx, viewer)
	if err != nil {
		return nil, fmt.Errorf("load follows of %s: %w", viewer, err)
	}
	trustLog.Debug("viewer %s follows %d accounts", viewer, len(follows))

	for _, friend := range dedupe(follows) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if friend == viewer {
			continue
		}

		theirFollows, err := s.graph.Follows(ctx, friend)
		if err != nil {
			return nil, fmt.Errorf("load follows of %s: %w", friend, err)
		}
		for _, t := range dedupe(theirFollows) {
			if _, ok := wanted[t]; ok {
				scores[t]++
			}
		}

		theirMutes, err := s.graph.Mutes(ctx, friend)
		if err != nil {
			return nil, fmt.Errorf("load mutes of %s: %w", friend, err)
		}
		for _, t := range dedupe(theirMutes) {
			if _, ok := wanted[t]; ok {
				scores[t]--
			}
		}
	}

	return scores, nil
}

// dedupe returns values without repeats, preserving first-seen order.
func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok || v == "" {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
