// Package leaderboard keeps the ten quickest solves.
package leaderboard

import (
	"sort"
	"time"
)

// Size is the number of entries the board holds.
const Size = 10

// Entry is one ranked solve.
type Entry struct {
	ID         string
	Name       string
	Time       time.Duration
	Moves      int
	RecordedAt time.Time
}

// Board is an ordered leaderboard, quickest first.
type Board struct {
	entries []Entry
}

// New creates a board from stored entries. Entries beyond Size are dropped
// after sorting.
func New(entries []Entry) *Board {
	b := &Board{entries: append([]Entry(nil), entries...)}
	b.sort()
	if len(b.entries) > Size {
		b.entries = b.entries[:Size]
	}
	return b
}

// Entries returns a copy of the board, quickest first.
func (b *Board) Entries() []Entry {
	return append([]Entry(nil), b.entries...)
}

// Len returns the number of entries on the board.
func (b *Board) Len() int {
	return len(b.entries)
}

// Qualifies reports whether a solve taking t would make the board.
func (b *Board) Qualifies(t time.Duration) bool {
	if len(b.entries) < Size {
		return true
	}
	return b.entries[len(b.entries)-1].Time > t
}

// Submit offers a solve to the board. While the board has room every solve
// goes on; once full a solve replaces the slowest entry only if it is
// strictly quicker. It reports whether the board changed.
func (b *Board) Submit(e Entry) bool {
	switch {
	case len(b.entries) < Size:
		b.entries = append(b.entries, e)
	case b.entries[len(b.entries)-1].Time <= e.Time:
		return false
	default:
		b.entries[len(b.entries)-1] = e
	}
	b.sort()
	return true
}

// Rank returns the 1-based position of the entry with the given ID, or 0 if
// it is not on the board.
func (b *Board) Rank(id string) int {
	for i, e := range b.entries {
		if e.ID == id {
			return i + 1
		}
	}
	return 0
}

// sort orders by time. Equal times keep their existing order.
func (b *Board) sort() {
	sort.SliceStable(b.entries, func(i, j int) bool {
		return b.entries[i].Time < b.entries[j].Time
	})
}
