package crawler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type retryableErr struct{ msg string }

func (e *retryableErr) Error() string   { return e.msg }
func (e *retryableErr) Retryable() bool { return true }

func TestSchedulerRetriesThenSucceeds(t *testing.T) {
	s := NewScheduler(1, 0, 5)

	var attempts int32
	result, err := s.Schedule("example.com", func() (interface{}, error) {
		n := atomic.AddInt32(&attempts, 1)
		if n < 3 {
			return nil, &retryableErr{msg: "not yet"}
		}
		return "ok", nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.EqualValues(t, 3, attempts)
}

func TestSchedulerGivesUpAfterMaxRetries(t *testing.T) {
	s := NewScheduler(1, 0, 2)

	var attempts int32
	_, err := s.Schedule("example.com", func() (interface{}, error) {
		atomic.AddInt32(&attempts, 1)
		return nil, &retryableErr{msg: "always fails"}
	})

	var maxRetries *MaxRetriesExceeded
	assert.ErrorAs(t, err, &maxRetries)
	assert.LessOrEqual(t, attempts, int32(3))
}

func TestSchedulerDoesNotRetryNonRetryableErrors(t *testing.T) {
	s := NewScheduler(1, 0, 5)

	var attempts int32
	_, err := s.Schedule("example.com", func() (interface{}, error) {
		atomic.AddInt32(&attempts, 1)
		return nil, &ErrInvalidURL{URL: "ftp://example.com/non-retryable"}
	})

	assert.Error(t, err)
	assert.EqualValues(t, 1, attempts)
}

func TestSchedulerEnforcesPerDomainDelay(t *testing.T) {
	s := NewScheduler(2, 500*time.Millisecond, 0)

	_, err := s.Schedule("example.com", func() (interface{}, error) { return nil, nil })
	assert.NoError(t, err)

	start := time.Now()
	_, err = s.Schedule("example.com", func() (interface{}, error) { return nil, nil })
	assert.NoError(t, err)

	assert.GreaterOrEqual(t, time.Since(start), 400*time.Millisecond)
}
