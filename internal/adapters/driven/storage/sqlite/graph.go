package sqlite

import (
	"context"
	"fmt"

	"github.com/custodia-labs/plaza/internal/core/domain"
	"github.com/custodia-labs/plaza/internal/core/ports/driven"
)

// followGraph implements driven.FollowGraph.
type followGraph struct {
	store *Store
}

var _ driven.FollowGraph = (*followGraph)(nil)

// Follows returns the accounts pubkey follows.
func (g *followGraph) Follows(ctx context.Context, pubkey string) ([]string, error) {
	return g.targets(ctx, domain.KindContacts, pubkey)
}

// Mutes returns the accounts pubkey mutes.
func (g *followGraph) Mutes(ctx context.Context, pubkey string) ([]string, error) {
	return g.targets(ctx, domain.KindMuteList, pubkey)
}

func (g *followGraph) targets(ctx context.Context, kind domain.EventKind, pubkey string) ([]string, error) {
	rows, err := g.store.db.QueryContext(ctx,
		"SELECT target FROM edges WHERE pubkey = ? AND kind = ? ORDER BY target", pubkey, int(kind))
	if err != nil {
		return nil, fmt.Errorf("querying edges: %w", err)
	}
	defer rows.Close()

	var targets []string //nolint:prealloc // size unknown from query
	for rows.Next() {
		var target string
		if err := rows.Scan(&target); err != nil {
			return nil, fmt.Errorf("scanning edge: %w", err)
		}
		targets = append(targets, target)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating edges: %w", err)
	}
	return targets, nil
}
