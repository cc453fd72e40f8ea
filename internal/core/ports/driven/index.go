package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/plaza/internal/core/domain"
)

// IndexQuery selects one page of index hits.
type IndexQuery struct {
	// Text is matched case-insensitively. Empty matches everything.
	Text string

	// Since drops hits whose activity is older, before paging.
	// See domain.ActiveSince. Zero disables the filter.
	Since time.Time

	// Limit caps the page size. Zero or less means no cap.
	Limit int

	// Offset skips that many filtered hits.
	Offset int
}

// ProfileIndex searches stored profiles.
type ProfileIndex interface {
	// SearchProfiles returns profiles whose name, display name, about or
	// NIP-05 contain the query text, ordered by pubkey, with follower,
	// following and last-activity fields populated. A profile's activity is
	// its newest note, else its creation time.
	SearchProfiles(ctx context.Context, q IndexQuery) ([]domain.Profile, error)
}

// ContentIndex searches stored notes.
type ContentIndex interface {
	// SearchNotes returns notes whose content contains the query text,
	// newest first, with like, reply and repost counts populated.
	SearchNotes(ctx context.Context, q IndexQuery) ([]domain.Note, error)
}

// FollowGraph exposes follow and mute edges.
type FollowGraph interface {
	// Follows returns the accounts pubkey follows.
	Follows(ctx context.Context, pubkey string) ([]string, error)

	// Mutes returns the accounts pubkey mutes.
	Mutes(ctx context.Context, pubkey string) ([]string, error)
}
