package activity

import (
	"github.com/Sumatoshi-tech/osmfang/internal/source"
)

// NameRecord is the most recent known display name for an editor, together
// with the epoch timestamp of the event that carried it.
type NameRecord struct {
	Username  string
	Timestamp int64
}

// Stats is one worker's partial triple of activity indexes. Each worker owns
// its Stats exclusively during the fold; partials are combined with Merge
// into the single global triple, which is read-only afterwards.
type Stats struct {
	// UserDays maps editor id to the set of distinct days with at least
	// one edit by that editor.
	UserDays map[int64]map[Day]struct{}

	// DayUsers maps a calendar day to the set of editors active that day.
	// Days with no activity have no entry.
	DayUsers map[Day]map[int64]struct{}

	// Names maps editor id to the latest known display name.
	Names map[int64]NameRecord

	// Events counts folded events, for the run summary and the empty-input
	// check.
	Events int64
}

// NewStats returns an empty partial triple.
func NewStats() *Stats {
	return &Stats{
		UserDays: make(map[int64]map[Day]struct{}),
		DayUsers: make(map[Day]map[int64]struct{}),
		Names:    make(map[int64]NameRecord),
	}
}

// Fold applies a single edit event to the triple.
func (s *Stats) Fold(ev source.Event) {
	day := DayOf(ev.Timestamp)

	userDays, ok := s.UserDays[ev.UID]
	if !ok {
		userDays = make(map[Day]struct{})
		s.UserDays[ev.UID] = userDays
	}

	userDays[day] = struct{}{}

	dayUsers, ok := s.DayUsers[day]
	if !ok {
		dayUsers = make(map[int64]struct{})
		s.DayUsers[day] = dayUsers
	}

	dayUsers[ev.UID] = struct{}{}

	s.applyName(ev.UID, ev.Timestamp.Unix(), ev.Username)
	s.Events++
}

// applyName is the last-write-wins update for the latest-name index. An
// incoming record replaces the stored one when the editor is unseen, or when
// the incoming timestamp is not older and the name differs. Equal-timestamp
// events with distinct names therefore keep whichever name arrives last,
// which makes the surviving name depend on merge order for that pathological
// case.
func (s *Stats) applyName(uid, timestamp int64, username string) {
	rec, ok := s.Names[uid]
	if !ok || (timestamp >= rec.Timestamp && username != rec.Username) {
		s.Names[uid] = NameRecord{Timestamp: timestamp, Username: username}
	}
}

// Merge folds other into s. The activity indexes combine by per-key set
// union, so any association order of pairwise merges yields the same
// contents. The name index combines with applyName, with the order
// sensitivity documented there.
func (s *Stats) Merge(other *Stats) {
	for uid, days := range other.UserDays {
		mine, ok := s.UserDays[uid]
		if !ok {
			s.UserDays[uid] = days

			continue
		}

		for day := range days {
			mine[day] = struct{}{}
		}
	}

	for day, uids := range other.DayUsers {
		mine, ok := s.DayUsers[day]
		if !ok {
			s.DayUsers[day] = uids

			continue
		}

		for uid := range uids {
			mine[uid] = struct{}{}
		}
	}

	for uid, rec := range other.Names {
		s.applyName(uid, rec.Timestamp, rec.Username)
	}

	s.Events += other.Events
}
