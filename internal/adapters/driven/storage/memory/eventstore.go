package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/plaza/internal/core/domain"
	"github.com/custodia-labs/plaza/internal/core/ports/driven"
)

// Ensure EventStore implements the storage interfaces.
var (
	_ driven.EventStore   = (*EventStore)(nil)
	_ driven.ProfileIndex = (*EventStore)(nil)
	_ driven.ContentIndex = (*EventStore)(nil)
	_ driven.FollowGraph  = (*EventStore)(nil)
)

type edgeList struct {
	createdAt int64
	targets   []string
}

type engagement struct {
	noteID string
	pubkey string
	like   bool
}

// EventStore is an in-memory event store and search index.
// Searches scan every record, so it suits tests and small imports.
type EventStore struct {
	mu        sync.RWMutex
	profiles  map[string]domain.Profile
	notes     map[string]domain.Note
	follows   map[string]edgeList
	mutes     map[string]edgeList
	reactions map[string]engagement
	reposts   map[string]engagement
}

// NewEventStore creates a new in-memory event store.
func NewEventStore() *EventStore {
	return &EventStore{
		profiles:  make(map[string]domain.Profile),
		notes:     make(map[string]domain.Note),
		follows:   make(map[string]edgeList),
		mutes:     make(map[string]edgeList),
		reactions: make(map[string]engagement),
		reposts:   make(map[string]engagement),
	}
}

// SaveProfile stores profile metadata if it is newer than the stored copy.
func (s *EventStore) SaveProfile(_ context.Context, profile domain.Profile) (bool, error) {
	if profile.Pubkey == "" {
		return false, domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.profiles[profile.Pubkey]; ok && !profile.CreatedAt.After(existing.CreatedAt) {
		return false, nil
	}
	profile.Followers, profile.Following = 0, 0
	profile.LastActiveAt = time.Time{}
	s.profiles[profile.Pubkey] = profile
	return true, nil
}

// SaveNote stores a note. Saving an existing ID is a no-op.
func (s *EventStore) SaveNote(_ context.Context, note domain.Note) error {
	if note.ID == "" || note.Pubkey == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notes[note.ID]; ok {
		return nil
	}
	note.Likes, note.Replies, note.Reposts = 0, 0, 0
	s.notes[note.ID] = note
	return nil
}

// ReplaceFollows replaces the follow list of pubkey if createdAt is newer.
func (s *EventStore) ReplaceFollows(_ context.Context, pubkey string, createdAt int64, targets []string) (bool, error) {
	return s.replaceEdges(s.follows, pubkey, createdAt, targets)
}

// ReplaceMutes replaces the mute list of pubkey if createdAt is newer.
func (s *EventStore) ReplaceMutes(_ context.Context, pubkey string, createdAt int64, targets []string) (bool, error) {
	return s.replaceEdges(s.mutes, pubkey, createdAt, targets)
}

func (s *EventStore) replaceEdges(edges map[string]edgeList, pubkey string, createdAt int64, targets []string) (bool, error) {
	if pubkey == "" {
		return false, domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := edges[pubkey]; ok && createdAt <= existing.createdAt {
		return false, nil
	}
	edges[pubkey] = edgeList{createdAt: createdAt, targets: slices.Clone(targets)}
	return true, nil
}

// AddReaction records a reaction event against a note.
func (s *EventStore) AddReaction(_ context.Context, eventID, noteID, pubkey string, like bool) error {
	if eventID == "" || noteID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reactions[eventID] = engagement{noteID: noteID, pubkey: pubkey, like: like}
	return nil
}

// AddRepost records a repost event against a note.
func (s *EventStore) AddRepost(_ context.Context, eventID, noteID, pubkey string) error {
	if eventID == "" || noteID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reposts[eventID] = engagement{noteID: noteID, pubkey: pubkey}
	return nil
}

// SearchProfiles returns matching profiles ordered by pubkey.
func (s *EventStore) SearchProfiles(_ context.Context, q driven.IndexQuery) ([]domain.Profile, error) {
	needle := strings.ToLower(strings.TrimSpace(q.Text))

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []domain.Profile
	for _, p := range s.profiles {
		if !profileMatches(&p, needle) {
			continue
		}
		p.LastActiveAt = s.lastActive(p.Pubkey)
		if domain.ActiveSince(p.ActiveAt(), q.Since) {
			matches = append(matches, p)
		}
	}
	slices.SortFunc(matches, func(a, b domain.Profile) int {
		return cmp.Compare(a.Pubkey, b.Pubkey)
	})
	matches = paginate(matches, q.Limit, q.Offset)

	for i := range matches {
		s.fillProfileCounters(&matches[i])
	}
	return matches, nil
}

// SearchNotes returns matching notes, newest first.
func (s *EventStore) SearchNotes(_ context.Context, q driven.IndexQuery) ([]domain.Note, error) {
	needle := strings.ToLower(strings.TrimSpace(q.Text))

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []domain.Note
	for _, n := range s.notes {
		if strings.Contains(strings.ToLower(n.Content), needle) && domain.ActiveSince(n.CreatedAt, q.Since) {
			matches = append(matches, n)
		}
	}
	slices.SortFunc(matches, func(a, b domain.Note) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	matches = paginate(matches, q.Limit, q.Offset)

	for i := range matches {
		s.fillNoteCounters(&matches[i])
	}
	return matches, nil
}

// Follows returns the accounts pubkey follows.
func (s *EventStore) Follows(_ context.Context, pubkey string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.follows[pubkey].targets), nil
}

// Mutes returns the accounts pubkey mutes.
func (s *EventStore) Mutes(_ context.Context, pubkey string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.mutes[pubkey].targets), nil
}

func profileMatches(p *domain.Profile, needle string) bool {
	if needle == "" {
		return true
	}
	if p.Pubkey == needle {
		return true
	}
	for _, field := range []string{p.Name, p.DisplayName, p.About, p.NIP05} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func (s *EventStore) fillProfileCounters(p *domain.Profile) {
	p.Following = len(s.follows[p.Pubkey].targets)
	p.Followers = 0
	for _, edges := range s.follows {
		if slices.Contains(edges.targets, p.Pubkey) {
			p.Followers++
		}
	}
	p.LastActiveAt = s.lastActive(p.Pubkey)
}

// lastActive returns the newest note time for pubkey, zero if none.
func (s *EventStore) lastActive(pubkey string) time.Time {
	var last time.Time
	for _, n := range s.notes {
		if n.Pubkey == pubkey && n.CreatedAt.After(last) {
			last = n.CreatedAt
		}
	}
	return last
}

func (s *EventStore) fillNoteCounters(n *domain.Note) {
	likers := make(map[string]struct{})
	for _, r := range s.reactions {
		if r.noteID == n.ID && r.like {
			likers[r.pubkey] = struct{}{}
		}
	}
	reposters := make(map[string]struct{})
	for _, r := range s.reposts {
		if r.noteID == n.ID {
			reposters[r.pubkey] = struct{}{}
		}
	}
	replies := 0
	for _, other := range s.notes {
		if other.ReplyTo == n.ID {
			replies++
		}
	}
	n.Likes, n.Reposts, n.Replies = len(likers), len(reposters), replies
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}
