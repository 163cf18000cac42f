package ops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukane-philemon/srms/internal/record"
	"github.com/ukane-philemon/srms/internal/record/memory"
)

func newTestOperations(t *testing.T) *Operations {
	t.Helper()

	o, err := New(memory.New())
	require.NoError(t, err)
	return o
}

func TestNew(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
}

func TestNextRoll(t *testing.T) {
	o := newTestOperations(t)

	// Empty collection starts at StartRoll.
	assert.Equal(t, "1001", o.NextRoll())

	_, err := o.Enroll("Asha", 88)
	require.NoError(t, err)
	assert.Equal(t, "1002", o.NextRoll())

	// The highest numeric roll wins, not the latest.
	require.NoError(t, o.Add(&record.Record{Roll: "2005", Name: "Maria", Score: 70}))
	require.NoError(t, o.Add(&record.Record{Roll: "1500", Name: "Ravi", Score: 60}))
	assert.Equal(t, "2006", o.NextRoll())

	// Non-numeric rolls are ignored.
	require.NoError(t, o.Add(&record.Record{Roll: "TRF-1", Name: "Transfer", Score: 55}))
	assert.Equal(t, "2006", o.NextRoll())
}

func TestNextRollNonNumericOnly(t *testing.T) {
	o := newTestOperations(t)

	require.NoError(t, o.Add(&record.Record{Roll: "TRF-1", Name: "A", Score: 10}))
	require.NoError(t, o.Add(&record.Record{Roll: "TRF-2", Name: "B", Score: 20}))

	// Count-based fallback when no roll is numeric.
	assert.Equal(t, "1003", o.NextRoll())
}

func TestNextRollDigitOnly(t *testing.T) {
	o := newTestOperations(t)

	// Signed rolls are not numeric; the count-based fallback applies.
	require.NoError(t, o.Add(&record.Record{Roll: "-5", Name: "A", Score: 10}))
	require.NoError(t, o.Add(&record.Record{Roll: "+7", Name: "B", Score: 20}))
	assert.Equal(t, "1003", o.NextRoll())

	// A digit-only roll of zero is numeric and wins over the fallback.
	require.NoError(t, o.Add(&record.Record{Roll: "0", Name: "C", Score: 30}))
	assert.Equal(t, "1", o.NextRoll())
}

func TestEnroll(t *testing.T) {
	o := newTestOperations(t)

	r, err := o.Enroll("Asha", 88)
	require.NoError(t, err)
	assert.Equal(t, "1001", r.Roll)
	assert.Equal(t, "Asha", r.Name)
	assert.Equal(t, float64(88), r.Score)

	_, err = o.Enroll("", 50)
	assert.ErrorIs(t, err, record.ErrInvalidRecord)

	_, err = o.Enroll("Ravi", 101)
	assert.ErrorIs(t, err, record.ErrInvalidRecord)
}

func TestUpdateKeepsUnsetFields(t *testing.T) {
	o := newTestOperations(t)

	require.NoError(t, o.Add(&record.Record{Roll: "1001", Name: "Asha", Score: 88}))

	// Update only the score; roll and name are preserved.
	score := 92.0
	updated, err := o.Update("1001", nil, &score)
	require.NoError(t, err)
	assert.Equal(t, "1001", updated.Roll)
	assert.Equal(t, "Asha", updated.Name)
	assert.Equal(t, 92.0, updated.Score)

	// Update only the name.
	name := "Asha Rao"
	updated, err = o.Update("1001", &name, nil)
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", updated.Name)
	assert.Equal(t, 92.0, updated.Score)

	_, err = o.Update("9999", &name, nil)
	assert.ErrorIs(t, err, record.ErrNotFound)
}

func TestSearch(t *testing.T) {
	o := newTestOperations(t)

	require.NoError(t, o.Add(&record.Record{Roll: "1001", Name: "Asha", Score: 88}))

	results, err := o.Search("ash")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "1001", results[0].Roll)

	_, err = o.Search("")
	assert.ErrorIs(t, err, record.ErrInvalidRecord)
}

func TestListByRoll(t *testing.T) {
	o := newTestOperations(t)

	for _, r := range []*record.Record{
		{Roll: "1010", Name: "C", Score: 30},
		{Roll: "1002", Name: "A", Score: 10},
		{Roll: "999", Name: "B", Score: 20},
	} {
		require.NoError(t, o.Add(r))
	}

	sorted := o.ListByRoll()
	require.Len(t, sorted, 3)
	assert.Equal(t, "999", sorted[0].Roll)
	assert.Equal(t, "1002", sorted[1].Roll)
	assert.Equal(t, "1010", sorted[2].Roll)

	// List keeps insertion order.
	inOrder := o.List()
	assert.Equal(t, "1010", inOrder[0].Roll)
}

// TestLifecycle walks the full add/topper/delete/list flow.
func TestLifecycle(t *testing.T) {
	o := newTestOperations(t)

	require.NoError(t, o.Add(&record.Record{Roll: "1", Name: "Asha", Score: 88}))
	require.NoError(t, o.Add(&record.Record{Roll: "2", Name: "Ravi", Score: 95}))

	summary, err := o.Statistics()
	require.NoError(t, err)
	assert.Equal(t, "2", summary.Topper.Roll)

	require.NoError(t, o.Delete("1"))

	remaining := o.List()
	require.Len(t, remaining, 1)
	assert.Equal(t, "2", remaining[0].Roll)
}
