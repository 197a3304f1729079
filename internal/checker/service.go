package checker

// service.go wraps the pure validator for the HTTP front end: a
// concurrency limiter, an in-memory run registry with TTL cleanup, and
// metrics. Runs are never persisted; re-uploading the same bytes under
// the same name returns the cached run instead of re-validating.

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ktsuji/csvchecker/internal/metrics"
)

// Run is one finished validation, addressable by ID until it expires.
type Run struct {
	ID        string    `json:"id"`
	FileName  string    `json:"fileName"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
	Result    *Result   `json:"result"`

	signature string
}

// ServiceOptions bound the service's resource usage.
type ServiceOptions struct {
	// MaxConcurrent is the number of parallel validation slots.
	MaxConcurrent int
	// MaxWait is how long a request waits for a slot.
	MaxWait time.Duration
	// RunTTL is how long a finished run stays retrievable.
	RunTTL time.Duration
}

// DefaultRunTTL keeps results around long enough for the operator to
// download both issue CSVs.
const DefaultRunTTL = 30 * time.Minute

// Service owns the run registry. Safe for concurrent use.
type Service struct {
	checker *Checker
	limiter *checkLimiter
	metrics *metrics.Metrics
	ttl     time.Duration

	mu    sync.Mutex
	runs  map[string]*Run
	order []string // insertion order for pruning

	now   func() time.Time
	newID func() string
}

// NewService builds a Service around cfg. m may be nil when metrics are
// not wanted (CLI, tests).
func NewService(cfg Config, opts ServiceOptions, m *metrics.Metrics) (*Service, error) {
	c, err := New(cfg)
	if err != nil {
		return nil, err
	}

	ttl := opts.RunTTL
	if ttl <= 0 {
		ttl = DefaultRunTTL
	}

	return &Service{
		checker: c,
		limiter: newCheckLimiter(opts.MaxConcurrent, opts.MaxWait),
		metrics: m,
		ttl:     ttl,
		runs:    make(map[string]*Run),
		now:     time.Now,
		newID:   uuid.NewString,
	}, nil
}

// Check validates data under the concurrency limiter and registers the
// finished run. Identical re-uploads (same name, size and content hash)
// return the cached run.
func (s *Service) Check(ctx context.Context, fileName string, data []byte) (*Run, error) {
	if err := s.limiter.acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.release()

	sig := runSignature(fileName, data)
	if run, ok := s.findBySignature(sig); ok {
		return run, nil
	}

	start := s.now()
	res, err := s.checker.Check(data)
	if err != nil {
		s.recordFailure(err)
		return nil, err
	}
	res.FileName = fileName
	res.Duration = s.now().Sub(start)
	s.recordSuccess(res, start)

	run := &Run{
		ID:        s.newID(),
		FileName:  fileName,
		Size:      int64(len(data)),
		CreatedAt: s.now(),
		Result:    res,
		signature: sig,
	}
	s.store(run)
	return run, nil
}

// Get returns a run by ID if it has not expired.
func (s *Service) Get(id string) (*Run, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, ok := s.runs[id]
	if !ok || s.now().Sub(run.CreatedAt) > s.ttl {
		return nil, false
	}
	return run, true
}

// ActiveChecks returns the number of runs currently executing.
func (s *Service) ActiveChecks() int { return s.limiter.activeCount() }

// WaitForChecks blocks until in-flight runs finish or ctx is cancelled.
func (s *Service) WaitForChecks(ctx context.Context) error {
	return s.limiter.waitForDrain(ctx)
}

func (s *Service) store(run *Run) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked()
	s.runs[run.ID] = run
	s.order = append(s.order, run.ID)
}

func (s *Service) findBySignature(sig string) (*Run, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, run := range s.runs {
		if run.signature == sig && s.now().Sub(run.CreatedAt) <= s.ttl {
			return run, true
		}
	}
	return nil, false
}

// pruneLocked drops expired runs. Caller holds s.mu.
func (s *Service) pruneLocked() {
	cutoff := s.now().Add(-s.ttl)
	kept := s.order[:0]
	for _, id := range s.order {
		run, ok := s.runs[id]
		if !ok {
			continue
		}
		if run.CreatedAt.Before(cutoff) {
			delete(s.runs, id)
			continue
		}
		kept = append(kept, id)
	}
	s.order = kept
}

func (s *Service) recordSuccess(res *Result, start time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.ChecksTotal.Inc()
	s.metrics.ObserveCheck(start)
	s.metrics.FinancialIssues.Add(float64(len(res.Financial)))
	s.metrics.Findings.WithLabelValues(string(SeverityError)).Add(float64(res.Dates.Errors))
	s.metrics.Findings.WithLabelValues(string(SeverityWarn)).Add(float64(res.Dates.Warnings))
}

func (s *Service) recordFailure(err error) {
	if s.metrics == nil {
		return
	}
	reason := "other"
	var decodeErr *DecodeError
	var limitErr *LimitError
	switch {
	case errors.As(err, &decodeErr):
		reason = "decode"
	case errors.As(err, &limitErr):
		reason = "limit"
	}
	s.metrics.CheckFailures.WithLabelValues(reason).Inc()
}

// runSignature identifies an upload by name and content hash.
func runSignature(fileName string, data []byte) string {
	sum := sha256.Sum256(data)
	return fileName + "/" + hex.EncodeToString(sum[:])
}
