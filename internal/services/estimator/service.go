package estimator

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"pumpsizer/internal/domain"
	"pumpsizer/internal/project"
)

// Service keeps the last estimate and remembers which warnings were already
// reported for the current inputs.
type Service struct {
	opts Options
	log  *slog.Logger

	mu    sync.Mutex
	last  Estimate
	shown map[string]string // guard code -> signature last reported
}

// New returns a Service. A nil logger uses slog.Default().
func New(opts Options, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{opts: opts, log: log, shown: make(map[string]string)}
}

// Run computes the estimate for doc and returns it with the warnings that
// have not been reported for these inputs yet. New warnings are logged.
func (s *Service) Run(doc domain.Document) (Estimate, []Warning) {
	est := Compute(doc, s.opts)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = est

	active := make(map[string]bool, len(est.Warnings))
	var fresh []Warning
	for _, w := range est.Warnings {
		active[w.Code] = true
		if s.shown[w.Code] == w.Signature {
			continue
		}
		s.shown[w.Code] = w.Signature
		fresh = append(fresh, w)
		s.log.Warn("head estimate guard rail", "code", w.Code, "message", w.Message)
	}
	for code := range s.shown {
		if !active[code] {
			delete(s.shown, code)
		}
	}
	return est, fresh
}

// Last returns the most recent estimate computed by Run or Apply.
func (s *Service) Last() Estimate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Apply writes the estimated head into every pump matching the apply scope
// and returns the resulting snapshot. When a guard rail trips, snap is
// returned unchanged together with ErrNotApplicable.
func (s *Service) Apply(snap project.Snapshot) (project.Snapshot, Estimate, int, error) {
	est, _ := s.Run(snap.Doc)
	if !est.Applicable {
		codes := make([]string, len(est.Warnings))
		for i, w := range est.Warnings {
			codes[i] = w.Code
		}
		return snap, est, 0, fmt.Errorf("%w: %s", ErrNotApplicable, strings.Join(codes, ", "))
	}
	n := 0
	next := snap.Update(func(doc *domain.Document) { n = est.ApplyTo(doc) })
	s.log.Info("applied head estimate", "head", est.Rounded(), "scope", est.Scope.String(), "pumps", n)
	return next, est, n, nil
}
