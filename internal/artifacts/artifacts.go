// Package artifacts owns diagnostic outputs of a harness run: failure
// screenshots, the structured run report, and optional upload of the whole
// run directory to S3-compatible storage. Artifacts are write-only; nothing
// in the harness reads them back.
package artifacts

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/quorumhq/quorum-e2e/internal/errs"
	"github.com/quorumhq/quorum-e2e/internal/obs"
)

var log = obs.Pkg("artifacts")

// Step statuses recorded in the run report.
const (
	StatusPassed  = "passed"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// StepResult is one recorded test step.
type StepResult struct {
	Name       string        `json:"name"`
	Status     string        `json:"status"`
	Duration   time.Duration `json:"duration_ns"`
	Error      string        `json:"error,omitempty"`
	Screenshot string        `json:"screenshot,omitempty"`
}

// Run collects artifacts for one harness run under a run-scoped directory.
type Run struct {
	ID        string
	Dir       string
	startedAt time.Time

	mu    sync.Mutex
	steps []StepResult
	shots map[string]int
}

// NewRun creates the run directory under root and returns the run handle.
func NewRun(root string) (*Run, error) {
	id := uuid.NewString()
	dir := filepath.Join(root, id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create run directory: %w", err)
	}
	log.Info("run started", "run_id", id, "dir", dir)
	return &Run{
		ID:        id,
		Dir:       dir,
		startedAt: time.Now(),
		shots:     make(map[string]int),
	}, nil
}

// SaveScreenshot writes a PNG under the run directory and returns its path.
// Repeated names get a numeric suffix so earlier captures survive.
// Implements the resolver's ScreenshotSink.
func (r *Run) SaveScreenshot(name string, png []byte) (string, error) {
	r.mu.Lock()
	n := r.shots[name]
	r.shots[name] = n + 1
	r.mu.Unlock()

	filename := name + ".png"
	if n > 0 {
		filename = fmt.Sprintf("%s-%d.png", name, n)
	}
	path := filepath.Join(r.Dir, filename)
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return "", fmt.Errorf("write screenshot: %w", err)
	}
	return path, nil
}

// Record appends one step outcome derived from err and reports whether the
// run should continue. A nil err records a passed step. A failed step aborts
// the run except for recoverable absence, which optional steps tolerate.
func (r *Run) Record(name string, duration time.Duration, err error) bool {
	step := StepResult{Name: name, Status: StatusPassed, Duration: duration}
	if err != nil {
		step.Status = StatusFailed
		step.Error = errs.MessageOf(err)
	}
	r.RecordStep(step)
	if err == nil {
		return true
	}
	return !errs.Fatal(errs.CodeOf(err))
}

// RecordStep appends one step outcome to the run report.
func (r *Run) RecordStep(step StepResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps = append(r.steps, step)
}

// Steps returns a copy of the recorded steps in order.
func (r *Run) Steps() []StepResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]StepResult, len(r.steps))
	copy(out, r.steps)
	return out
}

// Finish freezes the run, writes report.json, report.md and report.html
// into the run directory, and returns the report.
func (r *Run) Finish() (*Report, error) {
	report := &Report{
		RunID:      r.ID,
		StartedAt:  r.startedAt.UTC(),
		FinishedAt: time.Now().UTC(),
		Steps:      r.Steps(),
	}
	for _, s := range report.Steps {
		switch s.Status {
		case StatusPassed:
			report.Passed++
		case StatusFailed:
			report.Failed++
		case StatusSkipped:
			report.Skipped++
		}
	}
	if err := report.Write(r.Dir); err != nil {
		return nil, err
	}
	log.Info("run finished", "run_id", r.ID,
		"passed", report.Passed, "failed", report.Failed, "skipped", report.Skipped)
	return report, nil
}
