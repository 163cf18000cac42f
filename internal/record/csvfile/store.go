// Package csvfile implements the durable record.Store backed by a delimited
// text file. The whole collection is loaded into memory once at construction
// and rewritten wholesale after every mutation.
package csvfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ukane-philemon/srms/internal/record"
)

// Config is the csvfile store configuration.
type Config struct {
	// Path is the location of the backing file. A missing file is not an
	// error; the store starts empty and creates it on the first persist.
	Path string

	// Strict aborts the load with record.ErrMalformedRecord when the backing
	// file contains lines that cannot be parsed. The default is to skip such
	// lines with a warning.
	Strict bool
}

// Store implements record.Store.
type Store struct {
	mu      sync.Mutex
	path    string
	strict  bool
	records []*record.Record
	log     *logrus.Entry
}

// New loads the backing file at cfg.Path and returns a new *Store.
func New(cfg Config) (*Store, error) {
	s := &Store{
		path:   cfg.Path,
		strict: cfg.Strict,
		log:    logrus.StandardLogger().WithField("type", "csvfile.Store"),
	}

	err := s.load()
	if err != nil {
		return nil, err
	}

	return s, nil
}

// Add implements record.Store.Add
func (s *Store) Add(r *record.Record) error {
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
	err := s.persist()
	if err != nil {
		s.records = s.records[:len(s.records)-1]
		return err
	}

	return nil
}

// Update implements record.Store.Update
func (s *Store) Update(roll string, name string, score float64) error {
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

	prev := item.Clone()
	item.Name = updated.Name
	item.Score = updated.Score

	err := s.persist()
	if err != nil {
		item.Name = prev.Name
		item.Score = prev.Score
		return err
	}

	return nil
}

// Delete implements record.Store.Delete
func (s *Store) Delete(roll string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, item := range s.records {
		if item.Roll != roll {
			continue
		}

		prev := s.records
		s.records = append(append([]*record.Record{}, prev[:i]...), prev[i+1:]...)
		err := s.persist()
		if err != nil {
			s.records = prev
			return err
		}

		return nil
	}

	return record.ErrNotFound
}

// Get implements record.Store.Get
func (s *Store) Get(roll string) (*record.Record, error) {
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
func (s *Store) Search(query string) []*record.Record {
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
func (s *Store) All() []*record.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]*record.Record, 0, len(s.records))
	for _, item := range s.records {
		cloned := item.Clone()
		all = append(all, &cloned)
	}

	return all
}

// load reads the entire backing file into memory. A missing file leaves the
// store empty. The header line is skipped when present.
func (s *Store) load() error {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to open backing file %s: %w", s.path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	var records []*record.Record
	var skipped int
	for line := 1; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err == nil {
			if line == 1 && isHeader(row) {
				continue
			}
			var r *record.Record
			r, err = parseRow(row)
			if err == nil && findByRoll(records, r.Roll) != nil {
				err = fmt.Errorf("duplicate roll %s", r.Roll)
			}
			if err == nil {
				records = append(records, r)
				continue
			}
		}

		if s.strict {
			return fmt.Errorf("%w: %s line %d: %v", record.ErrMalformedRecord, s.path, line, err)
		}

		skipped++
		s.log.WithField("line", line).Warnf("Skipping malformed record: %v", err)
	}

	if skipped > 0 {
		s.log.Warnf("Skipped %d malformed record(s) while loading %s", skipped, s.path)
	}

	s.records = records
	return nil
}

// persist rewrites the entire backing file from memory. The new contents are
// written to a temporary file in the same directory and renamed over the
// backing file, so a failed write leaves the prior file unchanged.
func (s *Store) persist() error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	err = writeAll(tmp, s.records)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmp.Name(), s.path)
	}
	if err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to persist %s: %w", s.path, err)
	}

	return nil
}

func writeAll(w io.Writer, records []*record.Record) error {
	writer := csv.NewWriter(w)

	err := writer.Write(record.FieldNames)
	if err != nil {
		return err
	}

	for _, r := range records {
		err = writer.Write(r.Fields())
		if err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func parseRow(row []string) (*record.Record, error) {
	if len(row) != len(record.FieldNames) {
		return nil, fmt.Errorf("expected %d fields, got %d", len(record.FieldNames), len(row))
	}

	score, err := record.ParseScore(row[2])
	if err != nil {
		return nil, err
	}

	createdAt, err := strconv.ParseInt(row[3], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid created_at %q: %w", row[3], err)
	}

	r := &record.Record{
		Roll:      row[0],
		Name:      row[1],
		Score:     score,
		CreatedAt: createdAt,
	}

	return r, r.Validate()
}

func isHeader(row []string) bool {
	return len(row) > 0 && row[0] == record.FieldNames[0]
}

func (s *Store) findByRoll(roll string) *record.Record {
	return findByRoll(s.records, roll)
}

func findByRoll(records []*record.Record, roll string) *record.Record {
	for _, item := range records {
		if item.Roll == roll {
			return item
		}
	}
	return nil
}
