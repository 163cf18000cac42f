package memory

import (
	"testing"

	"github.com/ukane-philemon/srms/internal/record/tests"
)

func TestMemoryStore(t *testing.T) {
	testStore := New()
	teardown := func() {
		testStore.(*store).reset()
	}

	tests.RunTests(t, testStore, teardown)
}
