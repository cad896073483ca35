package output

import (
	"io"

	"github.com/cheggaaa/pb/v3"

	"github.com/sdejongh/mergenorris/pkg/models"
)

// ProgressFormatter renders a live progress bar. The bar total grows as
// sources are enumerated, so multi-source runs display a single bar.
type ProgressFormatter struct {
	out     io.Writer
	errOut  io.Writer
	summary bool
	bar     *pb.ProgressBar
}

// NewProgressFormatter creates a new progress bar formatter
func NewProgressFormatter(summary bool) *ProgressFormatter {
	return &ProgressFormatter{summary: summary}
}

// Start initializes the formatter and starts the bar
func (f *ProgressFormatter) Start(out, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	f.out = out
	f.errOut = errOut

	f.bar = pb.New(0)
	f.bar.SetTemplate(pb.Full)
	f.bar.SetWriter(out)
	f.bar.Start()

	return nil
}

// Progress advances the bar. Scan updates grow the total, every resolved
// entry (action or error) advances the current position by one.
func (f *ProgressFormatter) Progress(update Update) error {
	if f.bar == nil {
		return nil
	}

	switch update.Type {
	case "scan":
		f.bar.SetTotal(f.bar.Total() + int64(update.Total))

	case "action":
		f.bar.Increment()

	case "error":
		f.bar.Increment()
		writeErrorLine(f.errOut, update)
	}

	return nil
}

// writeErrorLine writes one error line to the error stream
func writeErrorLine(w io.Writer, update Update) {
	if w == nil {
		return
	}
	io.WriteString(w, "error: "+update.SourcePath+": "+update.Err.Error()+"\n")
}

// Complete stops the bar and prints the summary when requested
func (f *ProgressFormatter) Complete(report *models.RunReport) error {
	if f.bar != nil {
		f.bar.Finish()
	}
	if f.out == nil {
		f.out = io.Discard
	}

	if f.summary {
		writeSummary(f.out, &report.Stats)
	}

	return nil
}

// Name returns the formatter name
func (f *ProgressFormatter) Name() string {
	return "progress"
}
