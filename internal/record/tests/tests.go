package tests

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukane-philemon/srms/internal/record"
)

// RunTests runs the record.Store conformance suite against s, calling
// teardown to clear the store between test functions.
func RunTests(t *testing.T, s record.Store, teardown func()) {
	for _, tf := range []func(t *testing.T, s record.Store){
		testHappyPath,
		testValidation,
		testUpdate,
		testDelete,
		testSearch,
		testOrdering,
	} {
		tf(t, s)
		teardown()
	}
}

func testHappyPath(t *testing.T, s record.Store) {
	t.Run("testHappyPath", func(t *testing.T) {
		start := time.Now().Unix()

		r := &record.Record{
			Roll:  "1001",
			Name:  "Asha",
			Score: 88,
		}
		cloned := r.Clone()

		_, err := s.Get(r.Roll)
		assert.ErrorIs(t, err, record.ErrNotFound)

		require.NoError(t, s.Add(r))
		assert.ErrorIs(t, s.Add(r), record.ErrDuplicateRoll)

		actual, err := s.Get(r.Roll)
		require.NoError(t, err)
		assert.Equal(t, cloned.Roll, actual.Roll)
		assert.Equal(t, cloned.Name, actual.Name)
		assert.Equal(t, cloned.Score, actual.Score)
		assert.GreaterOrEqual(t, actual.CreatedAt, start)

		// The duplicate add must not have grown the collection.
		assert.Len(t, s.All(), 1)
	})
}

func testValidation(t *testing.T, s record.Store) {
	t.Run("testValidation", func(t *testing.T) {
		for _, bad := range []*record.Record{
			{Roll: "", Name: "Asha", Score: 50},
			{Roll: "1001", Name: "", Score: 50},
			{Roll: "1001", Name: "Asha", Score: -1},
			{Roll: "1001", Name: "Asha", Score: 101},
		} {
			assert.ErrorIs(t, s.Add(bad), record.ErrInvalidRecord)
		}

		assert.Empty(t, s.All())
	})
}

func testUpdate(t *testing.T, s record.Store) {
	t.Run("testUpdate", func(t *testing.T) {
		assert.ErrorIs(t, s.Update("1001", "Asha", 90), record.ErrNotFound)

		require.NoError(t, s.Add(&record.Record{Roll: "1001", Name: "Asha", Score: 88}))

		// Only the score changes; roll and name survive.
		require.NoError(t, s.Update("1001", "Asha", 91.5))
		actual, err := s.Get("1001")
		require.NoError(t, err)
		assert.Equal(t, "1001", actual.Roll)
		assert.Equal(t, "Asha", actual.Name)
		assert.Equal(t, 91.5, actual.Score)

		// Invalid updates leave the record untouched.
		assert.ErrorIs(t, s.Update("1001", "", 91.5), record.ErrInvalidRecord)
		assert.ErrorIs(t, s.Update("1001", "Asha", 200), record.ErrInvalidRecord)
		actual, err = s.Get("1001")
		require.NoError(t, err)
		assert.Equal(t, "Asha", actual.Name)
		assert.Equal(t, 91.5, actual.Score)
	})
}

func testDelete(t *testing.T, s record.Store) {
	t.Run("testDelete", func(t *testing.T) {
		assert.ErrorIs(t, s.Delete("1001"), record.ErrNotFound)

		require.NoError(t, s.Add(&record.Record{Roll: "1001", Name: "Asha", Score: 88}))
		require.NoError(t, s.Add(&record.Record{Roll: "1002", Name: "Ravi", Score: 95}))

		require.NoError(t, s.Delete("1001"))
		assert.Empty(t, s.Search("1001"))
		assert.ErrorIs(t, s.Delete("1001"), record.ErrNotFound)

		all := s.All()
		require.Len(t, all, 1)
		assert.Equal(t, "1002", all[0].Roll)
	})
}

func testSearch(t *testing.T, s record.Store) {
	t.Run("testSearch", func(t *testing.T) {
		require.NoError(t, s.Add(&record.Record{Roll: "1001", Name: "Asha Rao", Score: 88}))
		require.NoError(t, s.Add(&record.Record{Roll: "1002", Name: "Ravi Kumar", Score: 95}))
		require.NoError(t, s.Add(&record.Record{Roll: "2001", Name: "Maria", Score: 72}))

		// Exact roll.
		results := s.Search("1002")
		require.Len(t, results, 1)
		assert.Equal(t, "Ravi Kumar", results[0].Name)

		// Partial roll matches multiple records in store order.
		results = s.Search("100")
		require.Len(t, results, 2)
		assert.Equal(t, "1001", results[0].Roll)
		assert.Equal(t, "1002", results[1].Roll)

		// Case-insensitive partial name.
		results = s.Search("rAvI")
		require.Len(t, results, 1)
		assert.Equal(t, "1002", results[0].Roll)

		assert.Empty(t, s.Search("zidane"))
		assert.Empty(t, s.Search(""))
	})
}

func testOrdering(t *testing.T, s record.Store) {
	t.Run("testOrdering", func(t *testing.T) {
		rolls := []string{"3", "1", "2"}
		for _, roll := range rolls {
			require.NoError(t, s.Add(&record.Record{Roll: roll, Name: "Student " + roll, Score: 50}))
		}

		// All returns insertion order, not roll order.
		all := s.All()
		require.Len(t, all, len(rolls))
		for i, roll := range rolls {
			assert.Equal(t, roll, all[i].Roll)
		}

		// Snapshots are clones; mutating one must not leak into the store.
		all[0].Name = "mutated"
		fresh, err := s.Get("3")
		require.NoError(t, err)
		assert.Equal(t, "Student 3", fresh.Name)
	})
}
