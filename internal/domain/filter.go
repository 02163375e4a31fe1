package domain

import (
	"cmp"
	"slices"
)

// EventFilter restricts an event listing. Zero values mean "no restriction".
type EventFilter struct {
	// DateFrom and DateTo are inclusive ISO dates compared as strings.
	DateFrom string
	DateTo   string
	// ArtistIDs keeps events sharing at least one artist with the set.
	ArtistIDs []int64
	// FormatIDs keeps events whose non-null format is in the set.
	FormatIDs []int64
}

// InRange reports whether date satisfies the DateFrom/DateTo bounds.
func (f EventFilter) InRange(date string) bool {
	if f.DateFrom != "" && date < f.DateFrom {
		return false
	}
	if f.DateTo != "" && date > f.DateTo {
		return false
	}
	return true
}

// Matches applies the membership filters. The date range is not checked here because the
// store evaluates it before rows reach application code.
func (f EventFilter) Matches(e *Event) bool {
	if len(f.ArtistIDs) > 0 && !f.matchesArtist(e) {
		return false
	}
	if len(f.FormatIDs) > 0 {
		if e.FormatID == nil || !containsID(f.FormatIDs, *e.FormatID) {
			return false
		}
	}
	return true
}

// matchesArtist is any-match. An undecodable artist list never matches.
func (f EventFilter) matchesArtist(e *Event) bool {
	if e.ArtistIDs.IsRaw() {
		return false
	}
	for _, id := range e.ArtistIDs.Items {
		if containsID(f.ArtistIDs, id) {
			return true
		}
	}
	return false
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// SortEventsByDate orders events by date, then id, in place.
func SortEventsByDate(events []*Event) {
	slices.SortStableFunc(events, func(a, b *Event) int {
		if c := cmp.Compare(a.Date, b.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
