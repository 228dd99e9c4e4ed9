// Package progress reports progress of long or interactive CLI tasks.
package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// Reporter provides progress feedback: through the questions of a walk, or
// over the pages of a generated site.
type Reporter interface {
	Start(total int, title string)
	Update(current int, message string)
	Finish()
}

// NewReporter returns a TerminalReporter if running in an interactive terminal,
// or a CIReporter if the CI environment variable is set.
func NewReporter(w io.Writer) Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &CIReporter{w: w}
	}
	return &TerminalReporter{w: w}
}

// TerminalReporter displays a progress bar in the terminal.
type TerminalReporter struct {
	w     io.Writer
	title string
	bar   *progressbar.ProgressBar
}

func (r *TerminalReporter) Start(total int, title string) {
	r.title = title
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(r.w),
		progressbar.OptionSetDescription(title),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *TerminalReporter) Update(current int, message string) {
	if r.bar == nil {
		return
	}
	// An empty message keeps the title.
	if message == "" {
		message = r.title
	}
	r.bar.Describe(message)
	_ = r.bar.Set(current)
}

func (r *TerminalReporter) Finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}

// CIReporter prints line-by-line progress suitable for CI logs.
type CIReporter struct {
	w     io.Writer
	total int
	title string
}

func (r *CIReporter) Start(total int, title string) {
	r.total = total
	r.title = title
	fmt.Fprintf(r.w, "%s: 0/%d\n", title, total)
}

func (r *CIReporter) Update(current int, message string) {
	if message == "" {
		fmt.Fprintf(r.w, "[%d/%d]\n", current, r.total)
		return
	}
	fmt.Fprintf(r.w, "[%d/%d] %s\n", current, r.total, message)
}

func (r *CIReporter) Finish() {
	fmt.Fprintf(r.w, "%s: done\n", r.title)
}
