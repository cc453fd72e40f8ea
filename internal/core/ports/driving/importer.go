package driving

import (
	"context"
	"io"

	"github.com/custodia-labs/plaza/internal/core/domain"
)

// ImportService loads newline-delimited JSON events into the local store.
type ImportService interface {
	// Import reads events from r until EOF. Malformed lines and unknown
	// kinds are counted in the returned stats, not treated as errors.
	Import(ctx context.Context, r io.Reader) (domain.ImportStats, error)
}
