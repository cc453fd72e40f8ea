package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/plaza/internal/core/domain"
	"github.com/custodia-labs/plaza/internal/core/ports/driven"
)

// searchIndex implements driven.ProfileIndex and driven.ContentIndex.
// Matching is a case-insensitive substring test on the stored text.
type searchIndex struct {
	store *Store
}

var (
	_ driven.ProfileIndex = (*searchIndex)(nil)
	_ driven.ContentIndex = (*searchIndex)(nil)
)

// SearchProfiles returns matching profiles ordered by pubkey.
// The activity filter runs before LIMIT and OFFSET.
func (s *searchIndex) SearchProfiles(ctx context.Context, q driven.IndexQuery) ([]domain.Profile, error) {
	needle := strings.ToLower(strings.TrimSpace(q.Text))

	rows, err := s.store.db.QueryContext(ctx, `
		WITH matched AS (
			SELECT p.pubkey, p.name, p.display_name, p.about, p.picture, p.nip05, p.created_at,
				(SELECT MAX(n.created_at) FROM notes n WHERE n.pubkey = p.pubkey) AS last_active
			FROM profiles p
			WHERE ?1 = ''
				OR p.pubkey = ?1
				OR instr(lower(p.name), ?1) > 0
				OR instr(lower(p.display_name), ?1) > 0
				OR instr(lower(p.about), ?1) > 0
				OR instr(lower(p.nip05), ?1) > 0
		)
		SELECT m.pubkey, m.name, m.display_name, m.about, m.picture, m.nip05, m.created_at,
			(SELECT COUNT(*) FROM edges e WHERE e.target = m.pubkey AND e.kind = ?2) AS followers,
			(SELECT COUNT(*) FROM edges e WHERE e.pubkey = m.pubkey AND e.kind = ?2) AS following,
			m.last_active
		FROM matched m
		WHERE ?5 = 0
			OR COALESCE(m.last_active, m.created_at) <= 0
			OR COALESCE(m.last_active, m.created_at) >= ?5
		ORDER BY m.pubkey
		LIMIT ?3 OFFSET ?4
	`, needle, int(domain.KindContacts), sqlLimit(q.Limit), max(q.Offset, 0), sinceUnix(q.Since))
	if err != nil {
		return nil, fmt.Errorf("querying profiles: %w", err)
	}
	defer rows.Close()

	profiles := []domain.Profile{}
	for rows.Next() {
		var (
			p          domain.Profile
			createdAt  int64
			lastActive sql.NullInt64
		)
		if err := rows.Scan(&p.Pubkey, &p.Name, &p.DisplayName, &p.About, &p.Picture, &p.NIP05,
			&createdAt, &p.Followers, &p.Following, &lastActive); err != nil {
			return nil, fmt.Errorf("scanning profile: %w", err)
		}
		p.CreatedAt = time.Unix(createdAt, 0).UTC()
		if lastActive.Valid {
			p.LastActiveAt = time.Unix(lastActive.Int64, 0).UTC()
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating profiles: %w", err)
	}

	return profiles, nil
}

// SearchNotes returns matching notes, newest first.
func (s *searchIndex) SearchNotes(ctx context.Context, q driven.IndexQuery) ([]domain.Note, error) {
	needle := strings.ToLower(strings.TrimSpace(q.Text))

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT n.id, n.pubkey, n.content, n.created_at, COALESCE(n.reply_to, ''),
			(SELECT COUNT(DISTINCT r.pubkey) FROM reactions r WHERE r.note_id = n.id AND r.is_like = 1),
			(SELECT COUNT(*) FROM notes c WHERE c.reply_to = n.id),
			(SELECT COUNT(DISTINCT rp.pubkey) FROM reposts rp WHERE rp.note_id = n.id)
		FROM notes n
		WHERE (?1 = '' OR instr(lower(n.content), ?1) > 0)
			AND (?4 = 0 OR n.created_at <= 0 OR n.created_at >= ?4)
		ORDER BY n.created_at DESC, n.id
		LIMIT ?2 OFFSET ?3
	`, needle, sqlLimit(q.Limit), max(q.Offset, 0), sinceUnix(q.Since))
	if err != nil {
		return nil, fmt.Errorf("querying notes: %w", err)
	}
	defer rows.Close()

	notes := []domain.Note{}
	for rows.Next() {
		var (
			n         domain.Note
			createdAt int64
		)
		if err := rows.Scan(&n.ID, &n.Pubkey, &n.Content, &createdAt, &n.ReplyTo,
			&n.Likes, &n.Replies, &n.Reposts); err != nil {
			return nil, fmt.Errorf("scanning note: %w", err)
		}
		n.CreatedAt = time.Unix(createdAt, 0).UTC()
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating notes: %w", err)
	}

	return notes, nil
}
