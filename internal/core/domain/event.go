package domain

import "time"

// EventKind is the numeric kind of an imported social event.
type EventKind int

// Event kinds understood by the importer.
const (
	KindProfile  EventKind = 0
	KindNote     EventKind = 1
	KindContacts EventKind = 3
	KindRepost   EventKind = 6
	KindReaction EventKind = 7
	KindMuteList EventKind = 10000
)

// Event is a signed social event as it appears on the wire.
type Event struct {
	ID        string     `json:"id"`
	Pubkey    string     `json:"pubkey"`
	CreatedAt int64      `json:"created_at"`
	Kind      EventKind  `json:"kind"`
	Tags      [][]string `json:"tags"`
	Content   string     `json:"content"`
	Sig       string     `json:"sig,omitempty"`
}

// TagValues returns the first value of every tag named name.
func (e *Event) TagValues(name string) []string {
	var values []string
	for _, tag := range e.Tags {
		if len(tag) >= 2 && tag[0] == name && tag[1] != "" {
			values = append(values, tag[1])
		}
	}
	return values
}

// Profile is the latest known metadata for an account plus derived counters.
type Profile struct {
	Pubkey      string
	Name        string
	DisplayName string
	About       string
	Picture     string
	NIP05       string
	CreatedAt   time.Time

	// LastActiveAt is the newest note by this account, zero if none.
	LastActiveAt time.Time

	Followers int
	Following int
}

// Label returns the best human-readable name for the profile.
func (p *Profile) Label() string {
	switch {
	case p.DisplayName != "":
		return p.DisplayName
	case p.Name != "":
		return p.Name
	default:
		return p.Pubkey
	}
}

// ActiveAt returns the newest known activity: the last note, else creation.
func (p *Profile) ActiveAt() time.Time {
	if !p.LastActiveAt.IsZero() {
		return p.LastActiveAt
	}
	return p.CreatedAt
}

// ActiveSince reports whether activity at t is at or after since.
// A zero since matches everything, and so does an unknown activity time
// (zero or not after the unix epoch).
func ActiveSince(t, since time.Time) bool {
	if since.IsZero() || t.IsZero() || t.Unix() <= 0 {
		return true
	}
	return !t.Before(since)
}

// Note is a short text post plus derived engagement counters.
type Note struct {
	ID        string
	Pubkey    string
	Content   string
	CreatedAt time.Time

	// ReplyTo is the note this one answers, empty for top-level notes.
	ReplyTo string

	Likes   int
	Replies int
	Reposts int
}

// ImportStats summarises an import run.
type ImportStats struct {
	Profiles  int
	Notes     int
	Contacts  int
	Reposts   int
	Reactions int
	Mutes     int
	Skipped   int
	Malformed int
}

// Total returns the number of events that were stored.
func (s ImportStats) Total() int {
	return s.Profiles + s.Notes + s.Contacts + s.Reposts + s.Reactions + s.Mutes
}
