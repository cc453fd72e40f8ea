package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/plaza/internal/core/domain"
	"github.com/custodia-labs/plaza/internal/core/ports/driving"
	"github.com/custodia-labs/plaza/internal/logger"
)

// Ensure SearchSession implements the interface.
var _ driving.SearchSession = (*SearchSession)(nil)

var sessionLog = logger.For("session")

// SearchSession accumulates result pages for one query.
// Each category is paged independently; a category is drained once a page
// comes back shorter than the page size.
type SearchSession struct {
	id      string
	query   string
	search  *SearchService
	opts    domain.SearchOptions
	limiter *rate.Limiter

	// loadMu serialises LoadMore so each page is fetched at the offset the
	// previous call advanced to.
	loadMu sync.Mutex

	mu         sync.Mutex
	strategy   domain.RankingStrategy
	categories domain.CategorySet
	profiles   []domain.SearchResult
	contents   []domain.SearchResult
	seen       map[string]struct{}
	offsets    map[domain.Category]int
	drained    map[domain.Category]bool
	ranked     []domain.SearchResult
}

func newSearchSession(search *SearchService, query string, opts domain.SearchOptions) *SearchSession {
	if opts.Limit <= 0 {
		opts.Limit = domain.DefaultPageSize
	}

	limit := rate.Inf
	if search.loadInterval > 0 {
		limit = rate.Every(search.loadInterval)
	}

	sess := &SearchSession{
		id:         uuid.NewString(),
		query:      strings.TrimSpace(query),
		search:     search,
		opts:       opts,
		limiter:    rate.NewLimiter(limit, 1),
		strategy:   opts.EffectiveStrategy(),
		categories: opts.EffectiveCategories(),
		profiles:   []domain.SearchResult{},
		contents:   []domain.SearchResult{},
		seen:       make(map[string]struct{}),
		offsets:    make(map[domain.Category]int),
		drained:    make(map[domain.Category]bool),
	}
	sess.ranked = sess.rank()
	sessionLog.Debug("session %s started for %q", sess.id, sess.query)
	return sess
}

// ID identifies the session in logs.
func (s *SearchSession) ID() string {
	return s.id
}

// Query returns the search term.
func (s *SearchSession) Query() string {
	return s.query
}

// LoadMore fetches the next page of every selected category that is not
// drained yet. It returns the number of results that were not seen before.
// Concurrent calls run one after another.
func (s *SearchSession) LoadMore(ctx context.Context) (int, error) {
	if s.query == "" {
		return 0, domain.ErrSessionExhausted
	}

	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	s.mu.Lock()
	pending := s.pendingLocked()
	s.mu.Unlock()
	if len(pending) == 0 {
		return 0, domain.ErrSessionExhausted
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("session %s: %w", s.id, err)
	}

	type page struct {
		cat     domain.Category
		results []domain.SearchResult
		err     error
	}

	s.mu.Lock()
	offsets := make(map[domain.Category]int, len(pending))
	for _, cat := range pending {
		offsets[cat] = s.offsets[cat]
	}
	s.mu.Unlock()

	pages := make([]page, 0, len(pending))
	for _, cat := range pending {
		opts := s.opts
		opts.Categories = domain.NewCategorySet(cat)
		opts.Offset = offsets[cat]

		set, err := s.search.Fetch(ctx, s.query, opts)
		if err != nil {
			sessionLog.Warn("session %s: %s page failed: %v", s.id, cat, err)
			pages = append(pages, page{cat: cat, err: err})
			continue
		}
		results := set.Profiles
		if cat == domain.CategoryContent {
			results = set.Contents
		}
		pages = append(pages, page{cat: cat, results: results})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	var errs []error
	for _, p := range pages {
		if p.err != nil {
			errs = append(errs, p.err)
			continue
		}
		s.offsets[p.cat] += s.opts.Limit
		if len(p.results) < s.opts.Limit {
			s.drained[p.cat] = true
		}
		for _, res := range p.results {
			if _, dup := s.seen[res.ID]; dup {
				continue
			}
			s.seen[res.ID] = struct{}{}
			if res.Category == domain.CategoryProfile {
				s.profiles = append(s.profiles, res)
			} else {
				s.contents = append(s.contents, res)
			}
			added++
		}
	}

	if len(errs) == len(pages) {
		return 0, fmt.Errorf("session %s: %w", s.id, errors.Join(errs...))
	}

	applyTrustLevels(s.profiles, s.contents)
	s.ranked = s.rank()
	sessionLog.Debug("session %s: +%d results (%d total)", s.id, added, len(s.ranked))

	return added, nil
}

// Results returns the accumulated results in ranked order.
func (s *SearchSession) Results() []domain.SearchResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.SearchResult, len(s.ranked))
	copy(out, s.ranked)
	return out
}

// Exhausted reports whether every selected category is drained.
func (s *SearchSession) Exhausted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query == "" || len(s.pendingLocked()) == 0
}

// Strategy returns the current ranking strategy.
func (s *SearchSession) Strategy() domain.RankingStrategy {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.strategy
}

// SetStrategy re-ranks the accumulated results with strategy.
func (s *SearchSession) SetStrategy(strategy domain.RankingStrategy) {
	if !strategy.IsValid() {
		strategy = domain.StrategyRelevance
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.strategy = strategy
	s.ranked = s.rank()
}

// Categories returns the current category selection.
func (s *SearchSession) Categories() domain.CategorySet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.categories
}

// SetCategories changes the visible categories. Newly selected categories
// start paging on the next LoadMore.
func (s *SearchSession) SetCategories(categories domain.CategorySet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = categories
	s.ranked = s.rank()
}

func (s *SearchSession) pendingLocked() []domain.Category {
	var pending []domain.Category
	for _, cat := range s.categories.List() {
		if !s.drained[cat] {
			pending = append(pending, cat)
		}
	}
	return pending
}

func (s *SearchSession) rank() []domain.SearchResult {
	return s.search.ranker.Rank(s.profiles, s.contents, s.categories, s.strategy)
}
