package journal

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/jasonroy7dct/site/internal/kv"
	"github.com/jasonroy7dct/site/internal/logging"
)

// EntriesKey is the slot holding the entry collection.
const EntriesKey = "rb_entries_v1"

// MaxEntries caps the stored collection.
const MaxEntries = 200

var (
	ErrNotFound        = errors.New("journal: entry not found")
	ErrNothingToExport = errors.New("journal: no entries to export")
	ErrNotArray        = errors.New("journal: invalid file: expected an array of entries")
)

// Store reads and writes the entry collection.
type Store struct {
	mu    sync.Mutex
	slots kv.Slots
	now   func() time.Time
}

// NewStore returns a store over slots.
func NewStore(slots kv.Slots) *Store {
	return &Store{slots: slots, now: time.Now}
}

// SetClock replaces time.Now, for done timestamps.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Load returns a snapshot of every entry in stored order (oldest first).
// Unreadable or corrupt data loads as an empty collection.
func (s *Store) Load() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) load() []Entry {
	raw, err := s.slots.Get(EntriesKey)
	if errors.Is(err, kv.ErrNotFound) {
		return []Entry{}
	}
	if err != nil {
		logging.Warn("journal load failed", "error", err)
		return []Entry{}
	}
	var entries []Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		logging.Warn("journal data corrupt, starting empty", "error", err)
		return []Entry{}
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries
}

func (s *Store) save(entries []Entry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal entries: %w", err)
	}
	return s.slots.Set(EntriesKey, string(data))
}

// Create appends e and keeps the most recent MaxEntries. An empty or
// duplicate id is replaced with a fresh one. Write failures are logged and
// dropped.
func (s *Store) Create(e Entry) Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.load()
	if e.ID == "" || indexOf(entries, e.ID) >= 0 {
		e.ID = NewID(s.now())
	}
	if e.TS.IsZero() {
		e.TS = s.now()
	}
	e = e.clone()
	entries = append(entries, e)
	if n := len(entries) - MaxEntries; n > 0 {
		logging.Warn("journal full, evicting oldest", "evicted", n, "max", MaxEntries)
		entries = entries[n:]
	}
	if err := s.save(entries); err != nil {
		logging.Warn("journal create not saved", "id", e.ID, "error", err)
	}
	return e.clone()
}

// Patch is a partial update; nil fields are left alone.
type Patch struct {
	Pinned *bool
	Done   *bool
}

// Update applies p to the entry with id and returns the result.
func (s *Store) Update(id string, p Patch) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.load()
	i := indexOf(entries, id)
	if i < 0 {
		return Entry{}, ErrNotFound
	}
	e := &entries[i]
	if p.Pinned != nil {
		e.Pinned = *p.Pinned
	}
	if p.Done != nil {
		switch {
		case *p.Done && e.DoneTS == nil:
			t := s.now()
			e.DoneTS = &t
		case !*p.Done:
			e.DoneTS = nil
		}
	}
	if err := s.save(entries); err != nil {
		logging.Warn("journal update not saved", "id", id, "error", err)
	}
	return e.clone(), nil
}

// Delete removes every entry whose id is in ids and returns how many went.
func (s *Store) Delete(ids ...string) int {
	if len(ids) == 0 {
		return 0
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries := s.load()
	kept := entries[:0]
	for _, e := range entries {
		if !set[e.ID] {
			kept = append(kept, e)
		}
	}
	removed := len(entries) - len(kept)
	if removed == 0 {
		return 0
	}
	if err := s.save(kept); err != nil {
		logging.Warn("journal delete not saved", "count", removed, "error", err)
	}
	return removed
}

// Get returns the entry with id.
func (s *Store) Get(id string) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := s.load()
	if i := indexOf(entries, id); i >= 0 {
		return entries[i].clone(), nil
	}
	return Entry{}, ErrNotFound
}

// Import merges list into the store. Existing ids win, entries without an
// id are skipped, and the result is resorted oldest first and capped. It
// returns how many entries were added.
func (s *Store) Import(list []Entry) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.load()
	seen := make(map[string]bool, len(existing)+len(list))
	merged := make([]Entry, 0, len(existing)+len(list))
	for _, e := range existing {
		seen[e.ID] = true
		merged = append(merged, e)
	}
	for _, e := range list {
		if e.ID == "" || seen[e.ID] {
			continue
		}
		seen[e.ID] = true
		merged = append(merged, e.clone())
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].TS.Before(merged[j].TS)
	})
	if len(merged) > MaxEntries {
		merged = merged[len(merged)-MaxEntries:]
	}
	if err := s.save(merged); err != nil {
		return 0, fmt.Errorf("import: %w", err)
	}
	return max(0, len(merged)-len(existing)), nil
}

// ImportJSON reads a JSON array of entries from r and imports it.
func (s *Store) ImportJSON(r io.Reader) (int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("import: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return 0, ErrNotArray
	}
	var list []Entry
	if err := json.Unmarshal(data, &list); err != nil {
		return 0, fmt.Errorf("import: %w", err)
	}
	return s.Import(list)
}

// ExportAll returns a snapshot of the whole collection.
func (s *Store) ExportAll() []Entry {
	return s.Load()
}

// ExportJSON writes the collection to w as indented JSON.
func (s *Store) ExportJSON(w io.Writer) error {
	entries := s.Load()
	if len(entries) == 0 {
		return ErrNothingToExport
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

// Wipe removes the collection.
func (s *Store) Wipe() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.slots.Delete(EntriesKey); err != nil && !errors.Is(err, kv.ErrNotFound) {
		return fmt.Errorf("wipe: %w", err)
	}
	return nil
}

func indexOf(entries []Entry, id string) int {
	for i, e := range entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}
