package artifacts

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

// Report is the structured outcome of one harness run.
type Report struct {
	RunID      string       `json:"run_id"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	Passed     int          `json:"passed"`
	Failed     int          `json:"failed"`
	Skipped    int          `json:"skipped"`
	Steps      []StepResult `json:"steps"`
}

// Write renders the report as JSON, Markdown and sanitized HTML into dir.
func (rep *Report) Write(dir string) error {
	raw, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "report.json"), raw, 0o644); err != nil {
		return fmt.Errorf("write report.json: %w", err)
	}

	md := rep.Markdown()
	if err := os.WriteFile(filepath.Join(dir, "report.md"), []byte(md), 0o644); err != nil {
		return fmt.Errorf("write report.md: %w", err)
	}

	html := RenderHTML(md)
	if err := os.WriteFile(filepath.Join(dir, "report.html"), []byte(html), 0o644); err != nil {
		return fmt.Errorf("write report.html: %w", err)
	}
	return nil
}

// Markdown renders the report as a human-readable summary. Step errors come
// from the driven page, so the HTML rendering path sanitizes them.
func (rep *Report) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Run %s\n\n", rep.RunID)
	fmt.Fprintf(&b, "Started %s, finished %s.\n\n",
		rep.StartedAt.Format(time.RFC3339), rep.FinishedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "**%d passed**, **%d failed**, %d skipped.\n\n",
		rep.Passed, rep.Failed, rep.Skipped)

	b.WriteString("| Step | Status | Duration | Detail |\n")
	b.WriteString("| --- | --- | --- | --- |\n")
	for _, s := range rep.Steps {
		detail := s.Error
		if s.Screenshot != "" {
			if detail != "" {
				detail += "; "
			}
			detail += filepath.Base(s.Screenshot)
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			escapePipes(s.Name), s.Status, s.Duration.Round(time.Millisecond), escapePipes(detail))
	}
	return b.String()
}

// RenderHTML converts report markdown to sanitized HTML. Error strings can
// echo markup captured from the driven application, so everything passes
// through a UGC sanitization policy.
func RenderHTML(md string) string {
	extensions := parser.CommonExtensions | parser.AutoHeadingIDs | parser.Tables
	p := parser.NewWithExtensions(extensions)
	doc := p.Parse([]byte(md))

	opts := mdhtml.RendererOptions{Flags: mdhtml.CommonFlags}
	renderer := mdhtml.NewRenderer(opts)
	unsafe := markdown.Render(doc, renderer)

	policy := bluemonday.UGCPolicy()
	return string(policy.SanitizeBytes(unsafe))
}

func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
