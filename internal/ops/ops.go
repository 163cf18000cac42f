// Package ops implements the stateless operations the CLI shell runs against
// a record.Store: enrolment, updates, deletion, search and statistics.
package ops

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/ukane-philemon/srms/internal/record"
)

// StartRoll is the first roll number handed out for an empty collection.
const StartRoll = 1001

// Operations runs student record operations against a store.
type Operations struct {
	store record.Store
}

// New creates and returns a new instance of *Operations.
func New(store record.Store) (*Operations, error) {
	if store == nil {
		return nil, errors.New("a record store is required")
	}

	return &Operations{store: store}, nil
}

// NextRoll returns the roll number the next enrolled student will receive:
// one past the highest numeric roll in the collection, StartRoll when the
// collection is empty. Only digit-only rolls count as numeric; signed rolls
// like "-5" are ignored, and if no roll is numeric the next roll falls back
// to StartRoll plus the collection size.
func (o *Operations) NextRoll() string {
	records := o.store.All()
	if len(records) == 0 {
		return strconv.Itoa(StartRoll)
	}

	var maxRoll uint64
	var numericRolls int
	for _, r := range records {
		roll, err := strconv.ParseUint(r.Roll, 10, 64)
		if err != nil {
			continue
		}
		numericRolls++
		if roll > maxRoll {
			maxRoll = roll
		}
	}

	if numericRolls == 0 {
		return strconv.Itoa(StartRoll + len(records))
	}

	return strconv.FormatUint(maxRoll+1, 10)
}

// Enroll adds a new student under a generated roll number and returns the
// stored record.
func (o *Operations) Enroll(name string, score float64) (*record.Record, error) {
	r := &record.Record{
		Roll:  o.NextRoll(),
		Name:  name,
		Score: score,
	}

	err := o.store.Add(r)
	if err != nil {
		return nil, err
	}

	return o.store.Get(r.Roll)
}

// Add adds a student record under a caller-supplied roll number. Returns
// record.ErrDuplicateRoll if the roll is taken.
func (o *Operations) Add(r *record.Record) error {
	return o.store.Add(r)
}

// Get returns the record with exactly the given roll.
func (o *Operations) Get(roll string) (*record.Record, error) {
	return o.store.Get(roll)
}

// Update replaces the name and/or score of the record with the given roll. A
// nil field keeps the current value; the roll itself never changes. Returns
// the updated record.
func (o *Operations) Update(roll string, name *string, score *float64) (*record.Record, error) {
	current, err := o.store.Get(roll)
	if err != nil {
		return nil, err
	}

	newName := current.Name
	if name != nil {
		newName = *name
	}

	newScore := current.Score
	if score != nil {
		newScore = *score
	}

	err = o.store.Update(roll, newName, newScore)
	if err != nil {
		return nil, err
	}

	return o.store.Get(roll)
}

// Delete removes the record with the given roll. Returns record.ErrNotFound
// if no record exists.
func (o *Operations) Delete(roll string) error {
	return o.store.Delete(roll)
}

// Search returns all records whose roll or name contains query,
// case-insensitively, in store order.
func (o *Operations) Search(query string) ([]*record.Record, error) {
	if query == "" {
		return nil, fmt.Errorf("%w: empty search query", record.ErrInvalidRecord)
	}

	return o.store.Search(query), nil
}

// List returns every record in store (insertion) order.
func (o *Operations) List() []*record.Record {
	return o.store.All()
}

// ListByRoll returns every record sorted by roll number, numerically when
// both rolls are numeric.
func (o *Operations) ListByRoll() []*record.Record {
	records := o.store.All()
	sort.SliceStable(records, func(i, j int) bool {
		a, errA := strconv.ParseInt(records[i].Roll, 10, 64)
		b, errB := strconv.ParseInt(records[j].Roll, 10, 64)
		if errA == nil && errB == nil {
			return a < b
		}
		return records[i].Roll < records[j].Roll
	})

	return records
}
