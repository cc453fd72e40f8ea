package services

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/custodia-labs/plaza/internal/core/domain"
	"github.com/custodia-labs/plaza/internal/core/ports/driven"
	"github.com/custodia-labs/plaza/internal/core/ports/driving"
	"github.com/custodia-labs/plaza/internal/logger"
)

// Ensure ImportService implements the interface.
var _ driving.ImportService = (*ImportService)(nil)

// maxEventLine bounds a single JSONL record. Longer lines count as
// malformed.
const maxEventLine = 4 << 20

var importLog = logger.For("import")

// profileContent is the JSON document carried by a kind 0 event.
type profileContent struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	About       string `json:"about"`
	Picture     string `json:"picture"`
	NIP05       string `json:"nip05"`
}

// ImportService loads newline-delimited events into an EventStore.
type ImportService struct {
	store driven.EventStore
}

// NewImportService creates a new import service.
func NewImportService(store driven.EventStore) *ImportService {
	return &ImportService{store: store}
}

// Import reads events from r until EOF.
// Malformed lines and unsupported kinds are counted and skipped; only
// storage failures and read errors abort the run.
func (s *ImportService) Import(ctx context.Context, r io.Reader) (domain.ImportStats, error) {
	var stats domain.ImportStats
	if s.store == nil {
		return stats, fmt.Errorf("event store: %w", domain.ErrIndexUnavailable)
	}

	logger.Section("Import")

	br := bufio.NewReaderSize(r, 64*1024)
	var buf []byte

	line := 0
	for {
		next, oversize, err := readEventLine(br, buf)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return stats, fmt.Errorf("read events: %w", err)
		}
		buf = next
		line++
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		if oversize {
			importLog.Debug("line %d: longer than %s", line, humanize.IBytes(maxEventLine))
			stats.Malformed++
			continue
		}
		raw := bytes.TrimSpace(next)
		if len(raw) == 0 {
			continue
		}

		var ev domain.Event
		if err := json.Unmarshal(raw, &ev); err != nil {
			importLog.Debug("line %d: %v", line, err)
			stats.Malformed++
			continue
		}
		if ev.ID == "" || ev.Pubkey == "" {
			importLog.Debug("line %d: missing id or pubkey", line)
			stats.Malformed++
			continue
		}

		if err := s.apply(ctx, &ev, &stats); err != nil {
			return stats, fmt.Errorf("line %d: %w", line, err)
		}
	}

	importLog.Info("stored %d events (%d skipped, %d malformed)", stats.Total(), stats.Skipped, stats.Malformed)
	return stats, nil
}

// readEventLine reads one line into buf, reusing its storage. A line over
// maxEventLine is consumed to its newline and returned empty with oversize
// set. io.EOF is returned only once no bytes remain.
func readEventLine(br *bufio.Reader, buf []byte) (line []byte, oversize bool, err error) {
	line = buf[:0]
	read := false
	for {
		chunk, err := br.ReadSlice('\n')
		read = read || len(chunk) > 0
		if !oversize {
			if len(line)+len(chunk) > maxEventLine+1 {
				oversize = true
				line = line[:0]
			} else {
				line = append(line, chunk...)
			}
		}
		switch {
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF) && read:
			return line, oversize, nil
		default:
			return line, oversize, err
		}
	}
}

func (s *ImportService) apply(ctx context.Context, ev *domain.Event, stats *domain.ImportStats) error {
	switch ev.Kind {
	case domain.KindProfile:
		var pc profileContent
		if err := json.Unmarshal([]byte(ev.Content), &pc); err != nil {
			stats.Malformed++
			return nil
		}
		applied, err := s.store.SaveProfile(ctx, domain.Profile{
			Pubkey:      ev.Pubkey,
			Name:        pc.Name,
			DisplayName: pc.DisplayName,
			About:       pc.About,
			Picture:     pc.Picture,
			NIP05:       pc.NIP05,
			CreatedAt:   eventTime(ev),
		})
		if err != nil {
			return fmt.Errorf("save profile %s: %w", ev.Pubkey, err)
		}
		count(applied, &stats.Profiles, &stats.Skipped)

	case domain.KindNote:
		err := s.store.SaveNote(ctx, domain.Note{
			ID:        ev.ID,
			Pubkey:    ev.Pubkey,
			Content:   ev.Content,
			CreatedAt: eventTime(ev),
			ReplyTo:   replyTarget(ev),
		})
		if err != nil {
			return fmt.Errorf("save note %s: %w", ev.ID, err)
		}
		stats.Notes++

	case domain.KindContacts:
		applied, err := s.store.ReplaceFollows(ctx, ev.Pubkey, ev.CreatedAt, dedupe(ev.TagValues("p")))
		if err != nil {
			return fmt.Errorf("save contacts of %s: %w", ev.Pubkey, err)
		}
		count(applied, &stats.Contacts, &stats.Skipped)

	case domain.KindMuteList:
		applied, err := s.store.ReplaceMutes(ctx, ev.Pubkey, ev.CreatedAt, dedupe(ev.TagValues("p")))
		if err != nil {
			return fmt.Errorf("save mutes of %s: %w", ev.Pubkey, err)
		}
		count(applied, &stats.Mutes, &stats.Skipped)

	case domain.KindRepost:
		target := lastTag(ev, "e")
		if target == "" {
			stats.Malformed++
			return nil
		}
		if err := s.store.AddRepost(ctx, ev.ID, target, ev.Pubkey); err != nil {
			return fmt.Errorf("save repost %s: %w", ev.ID, err)
		}
		stats.Reposts++

	case domain.KindReaction:
		target := lastTag(ev, "e")
		if target == "" {
			stats.Malformed++
			return nil
		}
		if err := s.store.AddReaction(ctx, ev.ID, target, ev.Pubkey, ev.Content != "-"); err != nil {
			return fmt.Errorf("save reaction %s: %w", ev.ID, err)
		}
		stats.Reactions++

	default:
		stats.Skipped++
	}
	return nil
}

func count(applied bool, stored, skipped *int) {
	if applied {
		*stored++
	} else {
		*skipped++
	}
}

func eventTime(ev *domain.Event) time.Time {
	return time.Unix(ev.CreatedAt, 0).UTC()
}

// replyTarget returns the note a kind 1 event answers: the "e" tag marked
// "reply" if present, otherwise the last "e" tag.
func replyTarget(ev *domain.Event) string {
	for _, tag := range ev.Tags {
		if len(tag) >= 4 && tag[0] == "e" && tag[1] != "" && tag[3] == "reply" {
			return tag[1]
		}
	}
	return lastTag(ev, "e")
}

func lastTag(ev *domain.Event, name string) string {
	values := ev.TagValues(name)
	if len(values) == 0 {
		return ""
	}
	return values[len(values)-1]
}
