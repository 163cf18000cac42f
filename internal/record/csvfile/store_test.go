package csvfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukane-philemon/srms/internal/record"
	"github.com/ukane-philemon/srms/internal/record/tests"
	_ "github.com/ukane-philemon/srms/internal/testutil" // quiet logs
)

func (s *Store) reset(t *testing.T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		t.Fatalf("failed to remove backing file: %v", err)
	}
}

func TestCSVFileStore(t *testing.T) {
	testStore, err := New(Config{Path: filepath.Join(t.TempDir(), "students.csv")})
	require.NoError(t, err)

	tests.RunTests(t, testStore, func() { testStore.reset(t) })
}

func TestMissingBackingFile(t *testing.T) {
	s, err := New(Config{Path: filepath.Join(t.TempDir(), "students.csv")})
	require.NoError(t, err)
	assert.Empty(t, s.All())
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "students.csv")

	s, err := New(Config{Path: path})
	require.NoError(t, err)

	records := []*record.Record{
		{Roll: "1001", Name: "Asha Rao", Score: 88},
		{Roll: "1002", Name: "Ravi, Jr.", Score: 95.5}, // comma survives csv quoting
		{Roll: "1003", Name: "Maria", Score: 72.25},
	}
	for _, r := range records {
		require.NoError(t, s.Add(r))
	}

	// A fresh store on the same path must see the identical collection in
	// the same order.
	reloaded, err := New(Config{Path: path})
	require.NoError(t, err)

	actual := reloaded.All()
	require.Len(t, actual, len(records))
	expected := s.All()
	for i := range expected {
		assert.Equal(t, expected[i].Roll, actual[i].Roll)
		assert.Equal(t, expected[i].Name, actual[i].Name)
		assert.Equal(t, expected[i].Score, actual[i].Score)
		assert.Equal(t, expected[i].CreatedAt, actual[i].CreatedAt)
	}

	// No temp files left behind.
	matches, err := filepath.Glob(path + ".tmp-*")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestMalformedRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "students.csv")
	contents := "roll,name,score,created_at\n" +
		"1001,Asha,88,1700000000\n" +
		"not,enough\n" +
		"1002,Ravi,not-a-score,1700000000\n" +
		"1001,Duplicate,50,1700000000\n" +
		"1003,Maria,72,1700000000\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	// Default policy: skip malformed lines, keep the rest.
	s, err := New(Config{Path: path})
	require.NoError(t, err)
	all := s.All()
	require.Len(t, all, 2)
	assert.Equal(t, "1001", all[0].Roll)
	assert.Equal(t, "Asha", all[0].Name)
	assert.Equal(t, "1003", all[1].Roll)

	// Strict policy: abort the load.
	_, err = New(Config{Path: path, Strict: true})
	assert.ErrorIs(t, err, record.ErrMalformedRecord)
}

func TestPersistFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "students.csv")

	s, err := New(Config{Path: path})
	require.NoError(t, err)
	require.NoError(t, s.Add(&record.Record{Roll: "1001", Name: "Asha", Score: 88}))

	before, err := os.ReadFile(path)
	require.NoError(t, err)

	// Redirect persistence at a path occupied by a non-empty directory so
	// the rename step fails.
	blocked := filepath.Join(dir, "blocked")
	require.NoError(t, os.MkdirAll(filepath.Join(blocked, "occupied"), 0o755))
	s.path = blocked

	assert.Error(t, s.Add(&record.Record{Roll: "1002", Name: "Ravi", Score: 95}))
	assert.Error(t, s.Update("1001", "Asha", 90))
	assert.Error(t, s.Delete("1001"))

	s.path = path

	// The prior backing file is byte-for-byte unchanged and no temp file
	// was left behind.
	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	for _, pattern := range []string{path + ".tmp-*", blocked + ".tmp-*"} {
		matches, err := filepath.Glob(pattern)
		require.NoError(t, err)
		assert.Empty(t, matches)
	}

	// The in-memory collection rolled back to match the file.
	all := s.All()
	require.Len(t, all, 1)
	assert.Equal(t, "1001", all[0].Roll)
	assert.Equal(t, "Asha", all[0].Name)
	assert.Equal(t, float64(88), all[0].Score)

	// The store keeps working once persistence recovers.
	require.NoError(t, s.Add(&record.Record{Roll: "1002", Name: "Ravi", Score: 95}))
	assert.Len(t, s.All(), 2)
}

func TestHeaderHandling(t *testing.T) {
	path := filepath.Join(t.TempDir(), "students.csv")

	// A file with only a header is an empty collection.
	require.NoError(t, os.WriteFile(path, []byte("roll,name,score,created_at\n"), 0o644))
	s, err := New(Config{Path: path})
	require.NoError(t, err)
	assert.Empty(t, s.All())

	// Persisting always writes the header back.
	require.NoError(t, s.Add(&record.Record{Roll: "1001", Name: "Asha", Score: 88}))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "roll,name,score,created_at\n")
}
