package memory

import (
	"sync"
	"time"

	"github.com/ukane-philemon/srms/internal/record"
)

type store struct {
	mu      sync.Mutex
	records []*record.Record
}

// New returns a new in memory record.Store. Records do not survive the
// process; the CSV-backed store is the durable one.
func New() record.Store {
	return &store{}
}

// Add implements record.Store.Add
func (s *store) Add(r *record.Record) error {
	if err := r.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findByRoll(r.Roll) != nil {
		return record.ErrDuplicateRoll
	}

	cloned := r.Clone()
	if cloned.CreatedAt == 0 {
		cloned.CreatedAt = time.Now().Unix()
	}
	s.records = append(s.records, &cloned)

	return nil
}

// Update implements record.Store.Update
func (s *store) Update(roll string, name string, score float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.findByRoll(roll)
	if item == nil {
		return record.ErrNotFound
	}

	updated := item.Clone()
	updated.Name = name
	updated.Score = score
	if err := updated.Validate(); err != nil {
		return err
	}

	item.Name = updated.Name
	item.Score = updated.Score

	return nil
}

// Delete implements record.Store.Delete
func (s *store) Delete(roll string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, item := range s.records {
		if item.Roll == roll {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return nil
		}
	}

	return record.ErrNotFound
}

// Get implements record.Store.Get
func (s *store) Get(roll string) (*record.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.findByRoll(roll)
	if item == nil {
		return nil, record.ErrNotFound
	}

	cloned := item.Clone()
	return &cloned, nil
}

// Search implements record.Store.Search
func (s *store) Search(query string) []*record.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matches []*record.Record
	for _, item := range s.records {
		if item.Matches(query) {
			cloned := item.Clone()
			matches = append(matches, &cloned)
		}
	}

	return matches
}

// All implements record.Store.All
func (s *store) All() []*record.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]*record.Record, 0, len(s.records))
	for _, item := range s.records {
		cloned := item.Clone()
		all = append(all, &cloned)
	}

	return all
}

func (s *store) findByRoll(roll string) *record.Record {
	for _, item := range s.records {
		if item.Roll == roll {
			return item
		}
	}
	return nil
}

func (s *store) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
}
