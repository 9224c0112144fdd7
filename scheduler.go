package crawler

import (
	"fmt"
	"sync"
	"time"

	"github.com/shreyas-bk24/anvesha-crawler/logging"
)

// MaxRetriesExceeded is returned by Scheduler.Schedule when a task never
// succeeds within the configured retry budget.
type MaxRetriesExceeded struct {
	Inner string
}

func (e *MaxRetriesExceeded) Error() string {
	return fmt.Sprintf("max retries exceeded: %s", e.Inner)
}

// Retryable is implemented by errors that carry their own retry
// classification. If a task's error does not implement this, Scheduler
// treats it as retryable.
type Retryable interface {
	Retryable() bool
}

// Scheduler enforces global fetch concurrency and per-domain politeness
// spacing with bounded retry: a buffered channel caps in-flight fetches,
// and a lock-free per-domain timestamp map enforces request spacing.
type Scheduler struct {
	permits chan struct{}

	lastRequest sync.Map // domain -> time.Time

	requestDelay time.Duration
	maxRetries   int
}

// NewScheduler builds a Scheduler with the given global concurrency limit,
// per-domain politeness delay, and retry budget.
func NewScheduler(concurrentRequests int, requestDelay time.Duration, maxRetries int) *Scheduler {
	if concurrentRequests < 1 {
		concurrentRequests = 1
	}
	return &Scheduler{
		permits:      make(chan struct{}, concurrentRequests),
		requestDelay: requestDelay,
		maxRetries:   maxRetries,
	}
}

// Task is a replayable unit of work: the Scheduler may invoke it more than
// once on retry, so it must not consume state it cannot reconstruct.
type Task func() (interface{}, error)

// Schedule runs task for domain, observing global concurrency, per-domain
// spacing, and bounded retry.
func (s *Scheduler) Schedule(domain string, task Task) (interface{}, error) {
	s.permits <- struct{}{}
	defer func() { <-s.permits }()

	s.waitForSlot(domain)

	var lastErr error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		s.lastRequest.Store(domain, time.Now())

		result, err := task()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !isRetryable(err) {
			return nil, err
		}
		if attempt == s.maxRetries {
			break
		}

		delay := time.Duration(attempt+1) * time.Second
		logging.Debug("scheduler retrying task", "domain", domain, "attempt", attempt+1, "delay", delay.String())
		time.Sleep(delay)
	}

	return nil, &MaxRetriesExceeded{Inner: lastErr.Error()}
}

// waitForSlot blocks until request_delay has elapsed since the last request
// to domain. It does not record a timestamp itself; Schedule stores the new
// last-request time right before each task attempt. This is advisory
// politeness, not a hard interval: concurrent calls may both pass once
// request_delay has fully elapsed.
func (s *Scheduler) waitForSlot(domain string) {
	if s.requestDelay <= 0 {
		return
	}
	if v, ok := s.lastRequest.Load(domain); ok {
		last := v.(time.Time)
		if elapsed := time.Since(last); elapsed < s.requestDelay {
			time.Sleep(s.requestDelay - elapsed)
		}
	}
}

func isRetryable(err error) bool {
	if r, ok := err.(Retryable); ok {
		return r.Retryable()
	}
	return true
}
