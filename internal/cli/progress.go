package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

// batchProgress reports progress of `gen --dir` with a progress bar.
type batchProgress struct {
	quiet     bool
	out       io.Writer
	fileBar   *progressbar.ProgressBar
	startTime time.Time
	total     int
	generated int
	failed    []string
}

// newBatchProgress creates a reporter for total files. A quiet reporter
// only keeps counts.
func newBatchProgress(out io.Writer, total int, quiet bool) *batchProgress {
	p := &batchProgress{
		quiet:     quiet,
		out:       out,
		startTime: time.Now(),
		total:     total,
	}
	if quiet {
		return p
	}

	p.fileBar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription("Generating docs"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(out)
		}),
	)
	return p
}

// OnFileGenerated records a documented file.
func (p *batchProgress) OnFileGenerated(path string) {
	p.generated++
	p.advance()
}

// OnFileFailed records a file whose documentation could not be produced.
func (p *batchProgress) OnFileFailed(path string, err error) {
	p.failed = append(p.failed, fmt.Sprintf("%s: %v", path, err))
	p.advance()
}

func (p *batchProgress) advance() {
	if p.fileBar != nil {
		_ = p.fileBar.Add(1)
	}
}

// OnComplete prints the summary.
func (p *batchProgress) OnComplete() {
	if p.fileBar != nil {
		_ = p.fileBar.Finish()
	}
	if p.quiet {
		return
	}

	fmt.Fprintln(p.out, successStyle.Render(fmt.Sprintf("✓ Generated %d of %d files in %.1fs",
		p.generated, p.total, time.Since(p.startTime).Seconds())))
	for _, failure := range p.failed {
		fmt.Fprintln(p.out, errorStyle.Render("  ✗ "+failure))
	}
}
