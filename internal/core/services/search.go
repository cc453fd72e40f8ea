package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/plaza/internal/core/domain"
	"github.com/custodia-labs/plaza/internal/core/ports/driven"
	"github.com/custodia-labs/plaza/internal/core/ports/driving"
	"github.com/custodia-labs/plaza/internal/core/ranking"
	"github.com/custodia-labs/plaza/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// defaultLoadInterval throttles "load more" requests within a session.
const defaultLoadInterval = 250 * time.Millisecond

// maxTitleRunes bounds the title derived from a note's first line.
const maxTitleRunes = 80

// SearchService fetches profile and note hits, enriches them and ranks the
// merged list.
type SearchService struct {
	profiles driven.ProfileIndex
	contents driven.ContentIndex
	trust    driving.TrustService
	ranker   ranking.Ranker

	loadInterval time.Duration
}

// NewSearchService creates a new search service.
// Either index may be nil; the matching category then returns nothing.
// The trust service is optional (can be nil).
func NewSearchService(
	profiles driven.ProfileIndex,
	contents driven.ContentIndex,
	trust driving.TrustService,
) *SearchService {
	return &SearchService{
		profiles:     profiles,
		contents:     contents,
		trust:        trust,
		loadInterval: defaultLoadInterval,
	}
}

// SetClock overrides the reference time used for recency bonuses.
func (s *SearchService) SetClock(now func() time.Time) {
	s.ranker = ranking.Ranker{Now: now}
}

// SetLoadInterval sets the minimum delay between session page loads.
// Zero disables throttling.
func (s *SearchService) SetLoadInterval(d time.Duration) {
	s.loadInterval = d
}

// Search fetches candidates, ranks them and applies pagination.
// Every category contributes up to Offset+Limit candidates so that the
// requested page is cut from a consistently ranked window.
func (s *SearchService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	logger.Section("Search Execution")
	logger.Debug("Query: %q", query)

	query = strings.TrimSpace(query)
	if query == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.SearchResult{}, nil
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = domain.DefaultPageSize
	}
	offset := max(opts.Offset, 0)
	strategy := opts.EffectiveStrategy()
	cats := opts.EffectiveCategories()
	logger.Debug("Limit: %d, Offset: %d, Strategy: %s, Categories: %s", limit, offset, strategy, cats)

	window := opts
	window.Offset = 0
	window.Limit = offset + limit

	set, err := s.Fetch(ctx, query, window)
	if err != nil {
		return nil, err
	}

	ranked := s.ranker.Rank(set.Profiles, set.Contents, cats, strategy)
	results := applyPagination(ranked, offset, limit)
	logger.Info("Final results: %d", len(results))

	return results, nil
}

// Fetch queries the selected indexes concurrently and returns enriched but
// unranked results. A failing side is logged and dropped; Fetch only fails
// when every selected side fails.
func (s *SearchService) Fetch(
	ctx context.Context, query string, opts domain.SearchOptions,
) (*domain.ResultSet, error) {
	set := &domain.ResultSet{
		Profiles: []domain.SearchResult{},
		Contents: []domain.SearchResult{},
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return set, nil
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = domain.DefaultPageSize
	}
	offset := max(opts.Offset, 0)
	cats := opts.EffectiveCategories()

	var (
		g                     errgroup.Group
		profileErr, noteErr   error
		profiles              []domain.Profile
		notes                 []domain.Note
		wantProfile, wantNote = cats.Has(domain.CategoryProfile), cats.Has(domain.CategoryContent)
	)

	if wantProfile {
		g.Go(func() error {
			profiles, profileErr = s.searchProfiles(ctx, driven.IndexQuery{Text: query, Since: opts.Since, Limit: limit, Offset: offset})
			return profileErr
		})
	}
	if wantNote {
		g.Go(func() error {
			notes, noteErr = s.searchNotes(ctx, driven.IndexQuery{Text: query, Since: opts.Since, Limit: limit, Offset: offset})
			return noteErr
		})
	}
	if err := g.Wait(); err != nil {
		// One failed side degrades to the other; the request fails only
		// when nothing it asked for came back.
		if (!wantProfile || profileErr != nil) && (!wantNote || noteErr != nil) {
			return nil, fmt.Errorf("search: %w", errors.Join(profileErr, noteErr))
		}
		if profileErr != nil {
			logger.Warn("Profile search failed, continuing with notes: %v", profileErr)
		}
		if noteErr != nil {
			logger.Warn("Note search failed, continuing with profiles: %v", noteErr)
		}
	}

	for i := range profiles {
		set.Profiles = append(set.Profiles, ProfileResult(&profiles[i]))
	}
	for i := range notes {
		set.Contents = append(set.Contents, NoteResult(&notes[i]))
	}
	logger.Debug("Fetched %d profiles, %d notes", len(set.Profiles), len(set.Contents))

	if opts.WebOfTrust {
		s.attachTrust(ctx, opts.Viewer, set)
	}

	return set, nil
}

// Score returns the key strategy orders res by under the service clock.
func (s *SearchService) Score(strategy domain.RankingStrategy, res domain.SearchResult) float64 {
	return s.ranker.Score(strategy, res)
}

// NewSession starts an incremental search for query.
func (s *SearchService) NewSession(query string, opts domain.SearchOptions) driving.SearchSession {
	return newSearchSession(s, query, opts)
}

func (s *SearchService) searchProfiles(ctx context.Context, q driven.IndexQuery) ([]domain.Profile, error) {
	if s.profiles == nil {
		return nil, fmt.Errorf("profile index: %w", domain.ErrIndexUnavailable)
	}
	hits, err := s.profiles.SearchProfiles(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("profile search: %w", err)
	}
	logger.Debug("Profile search: %d hits", len(hits))
	return hits, nil
}

func (s *SearchService) searchNotes(ctx context.Context, q driven.IndexQuery) ([]domain.Note, error) {
	if s.contents == nil {
		return nil, fmt.Errorf("content index: %w", domain.ErrIndexUnavailable)
	}
	hits, err := s.contents.SearchNotes(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("note search: %w", err)
	}
	logger.Debug("Note search: %d hits", len(hits))
	return hits, nil
}

// attachTrust scores every author relative to viewer. Failures leave the
// results without trust signals.
func (s *SearchService) attachTrust(ctx context.Context, viewer string, set *domain.ResultSet) {
	if s.trust == nil || viewer == "" {
		logger.Debug("Web of trust requested but not configured")
		return
	}

	authors := make([]string, 0, set.Len())
	for _, list := range [][]domain.SearchResult{set.Profiles, set.Contents} {
		for i := range list {
			authors = append(authors, list[i].Author)
		}
	}

	scores, err := s.trust.Scores(ctx, viewer, authors)
	if err != nil {
		logger.Warn("Trust scoring failed, ranking without trust: %v", err)
		return
	}

	for _, list := range [][]domain.SearchResult{set.Profiles, set.Contents} {
		for i := range list {
			list[i].Metadata.TrustScore = domain.Ptr(scores[list[i].Author])
		}
	}
	applyTrustLevels(set.Profiles, set.Contents)
}

// applyTrustLevels derives TrustLevel for every scored result relative to
// the highest score across all lists.
func applyTrustLevels(lists ...[]domain.SearchResult) {
	var best float64
	for _, list := range lists {
		for i := range list {
			if score := list[i].Metadata.TrustScore; score != nil && *score > best {
				best = *score
			}
		}
	}
	for _, list := range lists {
		for i := range list {
			if score := list[i].Metadata.TrustScore; score != nil {
				list[i].Metadata.TrustLevel = domain.Ptr(domain.TrustLevelFor(*score, best))
			}
		}
	}
}

// ProfileResult converts a stored profile into a search result.
func ProfileResult(p *domain.Profile) domain.SearchResult {
	verified := p.NIP05 != ""
	meta := domain.Metadata{
		FollowerCount:  domain.Ptr(p.Followers),
		FollowingCount: domain.Ptr(p.Following),
		Verified:       domain.Ptr(verified),
		QualityScore:   domain.Ptr(ranking.ProfileQualityScore(p.Followers, p.Following, verified)),
	}
	if !p.CreatedAt.IsZero() {
		meta.Timestamp = domain.Ptr(p.CreatedAt.Unix())
	}
	if !p.LastActiveAt.IsZero() {
		meta.RecentActivityTimestamp = domain.Ptr(p.LastActiveAt.Unix())
	}

	return domain.SearchResult{
		ID:       p.Pubkey,
		Category: domain.CategoryProfile,
		Title:    p.Label(),
		Summary:  p.About,
		Author:   p.Pubkey,
		Metadata: meta,
	}
}

// NoteResult converts a stored note into a search result.
func NoteResult(n *domain.Note) domain.SearchResult {
	meta := domain.Metadata{
		LikeCount:   domain.Ptr(n.Likes),
		ReplyCount:  domain.Ptr(n.Replies),
		RepostCount: domain.Ptr(n.Reposts),
		QualityScore: domain.Ptr(ranking.ContentQualityScore(
			n.Likes, n.Replies, n.Reposts, utf8.RuneCountInString(n.Content),
		)),
	}
	if !n.CreatedAt.IsZero() {
		meta.Timestamp = domain.Ptr(n.CreatedAt.Unix())
	}

	return domain.SearchResult{
		ID:       n.ID,
		Category: domain.CategoryContent,
		Title:    noteTitle(n.Content),
		Summary:  n.Content,
		Author:   n.Pubkey,
		Metadata: meta,
	}
}

// noteTitle returns the first non-blank line of content, truncated.
func noteTitle(content string) string {
	for line := range strings.Lines(content) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if utf8.RuneCountInString(line) <= maxTitleRunes {
			return line
		}
		runes := []rune(line)
		return string(runes[:maxTitleRunes-1]) + "…"
	}
	return ""
}

// applyPagination applies offset and limit to results.
func applyPagination(results []domain.SearchResult, offset, limit int) []domain.SearchResult {
	if offset >= len(results) {
		return []domain.SearchResult{}
	}
	results = results[offset:]
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}
