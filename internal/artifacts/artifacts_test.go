package artifacts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/quorumhq/quorum-e2e/internal/errs"
)

func TestRun_SaveScreenshotKeepsEarlierCaptures(t *testing.T) {
	t.Parallel()

	run, err := NewRun(t.TempDir())
	if err != nil {
		t.Fatalf("NewRun: %v", err)
	}

	first, err := run.SaveScreenshot("notfound-join-button", []byte("png-1"))
	if err != nil {
		t.Fatalf("SaveScreenshot: %v", err)
	}
	second, err := run.SaveScreenshot("notfound-join-button", []byte("png-2"))
	if err != nil {
		t.Fatalf("SaveScreenshot: %v", err)
	}

	if first == second {
		t.Fatal("repeated name must not overwrite the earlier capture")
	}
	data, err := os.ReadFile(first)
	if err != nil || string(data) != "png-1" {
		t.Fatalf("first capture clobbered: %q err=%v", data, err)
	}
}

func TestRun_FinishWritesAllReportFormats(t *testing.T) {
	t.Parallel()

	run, err := NewRun(t.TempDir())
	if err != nil {
		t.Fatalf("NewRun: %v", err)
	}
	run.RecordStep(StepResult{Name: "login", Status: StatusPassed, Duration: 1200 * time.Millisecond})
	run.RecordStep(StepResult{Name: "join meeting", Status: StatusFailed, Duration: 5 * time.Second,
		Error: `element "join button" not found`, Screenshot: "notfound-join-button.png"})
	run.RecordStep(StepResult{Name: "notifications", Status: StatusSkipped})

	report, err := run.Finish()
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if report.Passed != 1 || report.Failed != 1 || report.Skipped != 1 {
		t.Errorf("counts = %d/%d/%d, want 1/1/1", report.Passed, report.Failed, report.Skipped)
	}

	for _, name := range []string{"report.json", "report.md", "report.html"} {
		if _, err := os.Stat(filepath.Join(run.Dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}

	md, _ := os.ReadFile(filepath.Join(run.Dir, "report.md"))
	if !strings.Contains(string(md), "join meeting") {
		t.Error("markdown report missing failed step name")
	}
	if !strings.Contains(string(md), "notfound-join-button.png") {
		t.Error("markdown report missing screenshot reference")
	}
}

func TestRun_RecordPassedStepContinues(t *testing.T) {
	t.Parallel()

	run, err := NewRun(t.TempDir())
	if err != nil {
		t.Fatalf("NewRun: %v", err)
	}
	if !run.Record("login", 1200*time.Millisecond, nil) {
		t.Error("passed step must let the run continue")
	}

	steps := run.Steps()
	if len(steps) != 1 || steps[0].Status != StatusPassed {
		t.Fatalf("steps = %+v, want one passed step", steps)
	}
	if steps[0].Duration != 1200*time.Millisecond {
		t.Errorf("duration = %v, want 1.2s", steps[0].Duration)
	}
}

func TestRun_RecordAbortsOnFatalFailure(t *testing.T) {
	t.Parallel()

	run, err := NewRun(t.TempDir())
	if err != nil {
		t.Fatalf("NewRun: %v", err)
	}
	cause := errs.New(errs.Timeout, "dashboard never loaded")
	if run.Record("open dashboard", 5*time.Second, cause) {
		t.Error("timeout must abort the run")
	}

	steps := run.Steps()
	if len(steps) != 1 || steps[0].Status != StatusFailed {
		t.Fatalf("steps = %+v, want one failed step", steps)
	}
	if steps[0].Error != "dashboard never loaded" {
		t.Errorf("step error = %q", steps[0].Error)
	}
}

func TestRun_RecordContinuesPastMissingOptionalElement(t *testing.T) {
	t.Parallel()

	run, err := NewRun(t.TempDir())
	if err != nil {
		t.Fatalf("NewRun: %v", err)
	}
	cause := errs.New(errs.ElementNotFound, `element "promo banner" not found`)
	if !run.Record("dismiss promo banner", time.Second, cause) {
		t.Error("missing optional element must not abort the run")
	}
	if run.Steps()[0].Status != StatusFailed {
		t.Error("the step itself still records as failed")
	}
}

func TestRun_StepsReturnsCopyInOrder(t *testing.T) {
	t.Parallel()

	run, err := NewRun(t.TempDir())
	if err != nil {
		t.Fatalf("NewRun: %v", err)
	}
	run.RecordStep(StepResult{Name: "a", Status: StatusPassed})
	run.RecordStep(StepResult{Name: "b", Status: StatusPassed})

	steps := run.Steps()
	steps[0].Name = "mutated"
	if run.Steps()[0].Name != "a" {
		t.Error("Steps must return a copy")
	}
	if run.Steps()[1].Name != "b" {
		t.Error("step order lost")
	}
}
