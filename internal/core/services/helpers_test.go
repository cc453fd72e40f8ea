package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/plaza/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/plaza/internal/core/domain"
	"github.com/custodia-labs/plaza/internal/core/ports/driven"
)

// fixedNow is the reference clock for ranking in service tests.
var fixedNow = time.Unix(1_700_000_000, 0).UTC()

func daysBefore(days int) time.Time {
	return fixedNow.Add(-time.Duration(days) * 24 * time.Hour)
}

// --- Mock implementations ---

// mockProfileIndex implements driven.ProfileIndex for testing.
type mockProfileIndex struct {
	profiles []domain.Profile
	err      error
	calls    int
}

func (m *mockProfileIndex) SearchProfiles(_ context.Context, q driven.IndexQuery) ([]domain.Profile, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	var hits []domain.Profile
	for i := range m.profiles {
		if domain.ActiveSince(m.profiles[i].ActiveAt(), q.Since) {
			hits = append(hits, m.profiles[i])
		}
	}
	return window(hits, q.Limit, q.Offset), nil
}

// mockContentIndex implements driven.ContentIndex for testing.
type mockContentIndex struct {
	notes []domain.Note
	err   error
	calls int
}

func (m *mockContentIndex) SearchNotes(_ context.Context, q driven.IndexQuery) ([]domain.Note, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	var hits []domain.Note
	for i := range m.notes {
		if domain.ActiveSince(m.notes[i].CreatedAt, q.Since) {
			hits = append(hits, m.notes[i])
		}
	}
	return window(hits, q.Limit, q.Offset), nil
}

// mockTrustService implements driving.TrustService for testing.
type mockTrustService struct {
	scores map[string]float64
	err    error
}

func (m *mockTrustService) Score(_ context.Context, _, target string) (float64, error) {
	return m.scores[target], m.err
}

func (m *mockTrustService) Scores(_ context.Context, _ string, targets []string) (map[string]float64, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make(map[string]float64, len(targets))
	for _, t := range targets {
		out[t] = m.scores[t]
	}
	return out, nil
}

func window[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

// newTestSearchService builds a service with a fixed clock and no throttling.
func newTestSearchService(
	profiles *mockProfileIndex, contents *mockContentIndex, trust *mockTrustService,
) *SearchService {
	var svc *SearchService
	switch {
	case trust != nil:
		svc = NewSearchService(profiles, contents, trust)
	default:
		svc = NewSearchService(profiles, contents, nil)
	}
	svc.SetClock(func() time.Time { return fixedNow })
	svc.SetLoadInterval(0)
	return svc
}

// setupSocialStore seeds a memory store with a small social graph.
//
//	viewer follows f1, f2, f3
//	f1 follows alice, bob; f2 follows alice; f3 follows bob and mutes alice
func setupSocialStore(t *testing.T) *memory.EventStore {
	t.Helper()
	ctx := context.Background()
	store := memory.NewEventStore()

	edges := map[string][]string{
		"viewer": {"f1", "f2", "f3"},
		"f1":     {"alice", "bob"},
		"f2":     {"alice"},
		"f3":     {"bob"},
	}
	for who, targets := range edges {
		_, err := store.ReplaceFollows(ctx, who, 1, targets)
		require.NoError(t, err)
	}
	_, err := store.ReplaceMutes(ctx, "f3", 1, []string{"alice"})
	require.NoError(t, err)

	return store
}
