package checker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, opts ServiceOptions) *Service {
	t.Helper()
	s, err := NewService(DefaultConfig(), opts, nil)
	require.NoError(t, err)
	return s
}

func TestServiceCheckRegistersRun(t *testing.T) {
	s := newTestService(t, ServiceOptions{})

	run, err := s.Check(context.Background(), "export.csv", []byte("h\na,b\n"))
	require.NoError(t, err)
	require.NotNil(t, run.Result)

	assert.NotEmpty(t, run.ID)
	assert.Equal(t, "export.csv", run.FileName)
	assert.Equal(t, int64(6), run.Size)

	got, ok := s.Get(run.ID)
	require.True(t, ok)
	assert.Same(t, run, got)
}

func TestServiceGetUnknown(t *testing.T) {
	s := newTestService(t, ServiceOptions{})

	_, ok := s.Get("does-not-exist")
	assert.False(t, ok)
}

func TestServiceDedupesIdenticalUploads(t *testing.T) {
	s := newTestService(t, ServiceOptions{})
	data := []byte("h\na,b\n")

	first, err := s.Check(context.Background(), "export.csv", data)
	require.NoError(t, err)

	second, err := s.Check(context.Background(), "export.csv", data)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "identical upload should return the cached run")

	// Same bytes under a different name is a different run.
	other, err := s.Check(context.Background(), "other.csv", data)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)

	// Different bytes under the same name is a different run.
	changed, err := s.Check(context.Background(), "export.csv", []byte("h\nc,d\n"))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, changed.ID)
}

func TestServiceRunExpiry(t *testing.T) {
	s := newTestService(t, ServiceOptions{RunTTL: 10 * time.Minute})

	current := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return current }

	run, err := s.Check(context.Background(), "export.csv", []byte("h\na,b\n"))
	require.NoError(t, err)

	_, ok := s.Get(run.ID)
	assert.True(t, ok)

	current = current.Add(11 * time.Minute)
	_, ok = s.Get(run.ID)
	assert.False(t, ok, "run should expire after the TTL")

	// Expired runs are not reused for deduplication either.
	again, err := s.Check(context.Background(), "export.csv", []byte("h\na,b\n"))
	require.NoError(t, err)
	assert.NotEqual(t, run.ID, again.ID)
}

func TestServiceCheckFailureReturnsNoRun(t *testing.T) {
	s := newTestService(t, ServiceOptions{})

	run, err := s.Check(context.Background(), "bad.csv", []byte{0x80, 0x80})
	require.Error(t, err)
	assert.Nil(t, run)

	var decodeErr *DecodeError
	assert.ErrorAs(t, err, &decodeErr)
}

func TestServiceLimiterRejectsWhenFull(t *testing.T) {
	s := newTestService(t, ServiceOptions{MaxConcurrent: 1, MaxWait: 50 * time.Millisecond})

	// Occupy the single slot directly.
	require.NoError(t, s.limiter.acquire(context.Background()))
	defer s.limiter.release()

	_, err := s.Check(context.Background(), "export.csv", []byte("h\na,b\n"))
	assert.ErrorIs(t, err, ErrTooManyChecks)
}

func TestServiceActiveChecksAndDrain(t *testing.T) {
	s := newTestService(t, ServiceOptions{MaxConcurrent: 2})

	assert.Equal(t, 0, s.ActiveChecks())

	require.NoError(t, s.limiter.acquire(context.Background()))
	assert.Equal(t, 1, s.ActiveChecks())

	done := make(chan error, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		done <- s.WaitForChecks(ctx)
	}()

	s.limiter.release()
	require.NoError(t, <-done)
	assert.Equal(t, 0, s.ActiveChecks())
}
