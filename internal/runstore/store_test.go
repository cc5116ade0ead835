package runstore

import (
	"testing"
	"time"

	"lendsim/internal/sim"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testResult() *sim.Result {
	return &sim.Result{
		Ledger: []sim.StepRow{{Run: 1, Step: 0}},
		Steps:  1,
		Runs:   1,
	}
}

func TestStorePutGet(t *testing.T) {
	s := NewStore(time.Minute)
	defer s.Close()

	run := s.Put(testResult())
	require.NotEmpty(t, run.ID)
	assert.False(t, run.CreatedAt.IsZero())

	got, ok := s.Get(run.ID)
	require.True(t, ok)
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, 1, got.Result.Steps)

	_, ok = s.Get("unknown")
	assert.False(t, ok)
}

func TestStoreDistinctIDs(t *testing.T) {
	s := NewStore(time.Minute)
	defer s.Close()

	a := s.Put(testResult())
	b := s.Put(testResult())
	assert.NotEqual(t, a.ID, b.ID)
}

func TestStoreExpiry(t *testing.T) {
	s := NewStore(time.Millisecond)
	defer s.Close()

	run := s.Put(testResult())
	time.Sleep(5 * time.Millisecond)

	_, ok := s.Get(run.ID)
	assert.False(t, ok, "expired run should not be returned")
}
