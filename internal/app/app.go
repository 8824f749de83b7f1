package app

import (
	"io"
	"sync"

	"pumpsizer/internal/digest"
	"pumpsizer/internal/domain"
	"pumpsizer/internal/project"
	"pumpsizer/internal/services/estimator"
	"pumpsizer/internal/services/evaluate"
)

// App is the loaded project and the services acting on it. It is safe for
// concurrent use.
type App struct {
	*Wire

	mu   sync.Mutex
	snap project.Snapshot
}

// New loads the stored document into a fresh snapshot.
func New(w *Wire) (*App, error) {
	doc, err := w.Documents.LoadDocument()
	if err != nil {
		return nil, err
	}
	return &App{Wire: w, snap: project.New(doc)}, nil
}

// Snapshot returns the current snapshot.
func (a *App) Snapshot() project.Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snap
}

// Update applies fn to a copy of the document, saves the result and makes it
// current. On a save error the current snapshot is kept.
func (a *App) Update(fn func(doc *domain.Document)) (project.Snapshot, error) {
	return a.Change(func(doc *domain.Document) error {
		fn(doc)
		return nil
	})
}

// Change is Update for edits that can fail. When fn returns an error nothing
// is saved and the current snapshot is kept.
func (a *App) Change(fn func(doc *domain.Document) error) (project.Snapshot, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	edited := project.Clone(a.snap.Doc)
	if err := fn(&edited); err != nil {
		return a.snap, err
	}
	next := a.snap.Update(func(doc *domain.Document) { *doc = edited })
	if err := a.Documents.SaveDocument(next.Doc); err != nil {
		return a.snap, err
	}
	a.snap = next
	return next, nil
}

// Report evaluates the current snapshot.
func (a *App) Report() (evaluate.Report, error) {
	return a.Evaluator.Evaluate(a.Snapshot())
}

// ApplyEstimate writes the head estimate into the pumps of the configured
// scope. Nothing is saved when a guard rail trips.
func (a *App) ApplyEstimate() (estimator.Estimate, int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	next, est, n, err := a.Estimator.Apply(a.snap)
	if err != nil {
		return est, 0, err
	}
	if err := a.Documents.SaveDocument(next.Doc); err != nil {
		return est, 0, err
	}
	a.snap = next
	return est, n, nil
}

// Import replaces the document with one read from r.
func (a *App) Import(r io.Reader) (project.Snapshot, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	doc, err := a.Documents.Import(r)
	if err != nil {
		return a.snap, err
	}
	a.snap = project.Snapshot{Version: a.snap.Version + 1, Doc: project.Sanitize(doc)}
	return a.snap, nil
}

// Fingerprint identifies the current document revision.
func (a *App) Fingerprint() (string, error) {
	return digest.JSON(a.Snapshot().Doc)
}
