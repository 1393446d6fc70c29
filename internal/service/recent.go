package service

import (
	"sync"
	"time"
)

// maxRecentSearches bounds the recent-search store; the oldest entry is
// evicted once the bound is exceeded.
const maxRecentSearches = 10

type recentEntry struct {
	term string
	at   time.Time
}

// RecentSearches is an explicit store of recently searched terms, passed to
// the components that need it instead of living as ambient package state.
type RecentSearches struct {
	mu      sync.Mutex
	entries []recentEntry
	now     func() time.Time
}

// NewRecentSearches creates an empty recent-search store.
func NewRecentSearches() *RecentSearches {
	return &RecentSearches{now: time.Now}
}

// Append records a search term. Re-searching an existing term moves it to
// the front with a fresh timestamp rather than duplicating it.
func (r *RecentSearches) Append(term string) {
	if term == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, e := range r.entries {
		if e.term == term {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			break
		}
	}

	r.entries = append(r.entries, recentEntry{term: term, at: r.now()})

	for len(r.entries) > maxRecentSearches {
		oldest := 0
		for i, e := range r.entries {
			if e.at.Before(r.entries[oldest].at) {
				oldest = i
			}
		}
		r.entries = append(r.entries[:oldest], r.entries[oldest+1:]...)
	}
}

// Recent returns the stored terms, most recent first.
func (r *RecentSearches) Recent() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	terms := make([]string, 0, len(r.entries))
	for i := len(r.entries) - 1; i >= 0; i-- {
		terms = append(terms, r.entries[i].term)
	}
	return terms
}
