package driven

import (
	"context"

	"github.com/custodia-labs/plaza/internal/core/domain"
)

// EventStore persists imported social records.
// Replace-style writes only apply when the incoming record is newer than
// the stored one; they report whether anything changed.
type EventStore interface {
	// SaveProfile stores profile metadata if it is newer than the stored copy.
	SaveProfile(ctx context.Context, profile domain.Profile) (bool, error)

	// SaveNote stores a note. Saving an existing ID is a no-op.
	SaveNote(ctx context.Context, note domain.Note) error

	// ReplaceFollows replaces the follow list of pubkey if createdAt is newer.
	ReplaceFollows(ctx context.Context, pubkey string, createdAt int64, targets []string) (bool, error)

	// ReplaceMutes replaces the mute list of pubkey if createdAt is newer.
	ReplaceMutes(ctx context.Context, pubkey string, createdAt int64, targets []string) (bool, error)

	// AddReaction records a reaction event against a note.
	AddReaction(ctx context.Context, eventID, noteID, pubkey string, like bool) error

	// AddRepost records a repost event against a note.
	AddRepost(ctx context.Context, eventID, noteID, pubkey string) error
}
