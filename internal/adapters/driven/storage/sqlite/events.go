package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/custodia-labs/plaza/internal/core/domain"
	"github.com/custodia-labs/plaza/internal/core/ports/driven"
)

// eventStore implements driven.EventStore.
type eventStore struct {
	store *Store
}

var _ driven.EventStore = (*eventStore)(nil)

// SaveProfile stores profile metadata if it is newer than the stored copy.
func (s *eventStore) SaveProfile(ctx context.Context, profile domain.Profile) (bool, error) {
	if profile.Pubkey == "" {
		return false, domain.ErrInvalidInput
	}

	res, err := s.store.db.ExecContext(ctx, `
		INSERT INTO profiles (pubkey, name, display_name, about, picture, nip05, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(pubkey) DO UPDATE SET
			name = excluded.name,
			display_name = excluded.display_name,
			about = excluded.about,
			picture = excluded.picture,
			nip05 = excluded.nip05,
			created_at = excluded.created_at
		WHERE excluded.created_at > profiles.created_at
	`, profile.Pubkey, profile.Name, profile.DisplayName, profile.About,
		profile.Picture, profile.NIP05, profile.CreatedAt.Unix())
	if err != nil {
		return false, fmt.Errorf("saving profile: %w", err)
	}
	return affected(res)
}

// SaveNote stores a note. Saving an existing ID is a no-op.
func (s *eventStore) SaveNote(ctx context.Context, note domain.Note) error {
	if note.ID == "" || note.Pubkey == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO notes (id, pubkey, content, created_at, reply_to)
		VALUES (?, ?, ?, ?, ?)
	`, note.ID, note.Pubkey, note.Content, note.CreatedAt.Unix(), nullString(note.ReplyTo))
	if err != nil {
		return fmt.Errorf("saving note: %w", err)
	}
	return nil
}

// ReplaceFollows replaces the follow list of pubkey if createdAt is newer.
func (s *eventStore) ReplaceFollows(ctx context.Context, pubkey string, createdAt int64, targets []string) (bool, error) {
	return s.replaceEdges(ctx, domain.KindContacts, pubkey, createdAt, targets)
}

// ReplaceMutes replaces the mute list of pubkey if createdAt is newer.
func (s *eventStore) ReplaceMutes(ctx context.Context, pubkey string, createdAt int64, targets []string) (bool, error) {
	return s.replaceEdges(ctx, domain.KindMuteList, pubkey, createdAt, targets)
}

func (s *eventStore) replaceEdges(
	ctx context.Context, kind domain.EventKind, pubkey string, createdAt int64, targets []string,
) (bool, error) {
	if pubkey == "" {
		return false, domain.ErrInvalidInput
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	var existing int64
	err = tx.QueryRowContext(ctx,
		"SELECT created_at FROM edge_lists WHERE pubkey = ? AND kind = ?", pubkey, int(kind),
	).Scan(&existing)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return false, fmt.Errorf("reading edge list: %w", err)
	case createdAt <= existing:
		return false, nil
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO edge_lists (pubkey, kind, created_at) VALUES (?, ?, ?)
		ON CONFLICT(pubkey, kind) DO UPDATE SET created_at = excluded.created_at
	`, pubkey, int(kind), createdAt); err != nil {
		return false, fmt.Errorf("saving edge list: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM edges WHERE pubkey = ? AND kind = ?", pubkey, int(kind),
	); err != nil {
		return false, fmt.Errorf("clearing edges: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT OR IGNORE INTO edges (pubkey, kind, target) VALUES (?, ?, ?)")
	if err != nil {
		return false, fmt.Errorf("preparing edge insert: %w", err)
	}
	defer stmt.Close()

	for _, target := range targets {
		if target == "" {
			continue
		}
		if _, err := stmt.ExecContext(ctx, pubkey, int(kind), target); err != nil {
			return false, fmt.Errorf("saving edge: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("committing edge list: %w", err)
	}
	return true, nil
}

// AddReaction records a reaction event against a note.
func (s *eventStore) AddReaction(ctx context.Context, eventID, noteID, pubkey string, like bool) error {
	if eventID == "" || noteID == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO reactions (id, note_id, pubkey, is_like) VALUES (?, ?, ?, ?)
	`, eventID, noteID, pubkey, boolToInt(like))
	if err != nil {
		return fmt.Errorf("saving reaction: %w", err)
	}
	return nil
}

// AddRepost records a repost event against a note.
func (s *eventStore) AddRepost(ctx context.Context, eventID, noteID, pubkey string) error {
	if eventID == "" || noteID == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO reposts (id, note_id, pubkey) VALUES (?, ?, ?)
	`, eventID, noteID, pubkey)
	if err != nil {
		return fmt.Errorf("saving repost: %w", err)
	}
	return nil
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("reading rows affected: %w", err)
	}
	return n > 0, nil
}
