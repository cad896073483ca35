package output

import (
	"encoding/json"
	"io"
	"time"

	"github.com/sdejongh/mergenorris/pkg/models"
)

// JSONFormatter formats output as JSON for automation and scripting
type JSONFormatter struct {
	out    io.Writer
	errOut io.Writer
	events []JSONEvent
}

// JSONEvent represents a single recorded event
type JSONEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"type"`
	Data      any       `json:"data,omitempty"`
}

// JSONActionData represents one per-entry action
type JSONActionData struct {
	Verb       string `json:"verb"`
	SourcePath string `json:"source_path"`
	DestPath   string `json:"dest_path,omitempty"`
	DryRun     bool   `json:"dry_run,omitempty"`
	Detail     string `json:"detail,omitempty"`
}

// JSONComparisonData represents one comparator invocation
type JSONComparisonData struct {
	SourcePath     string `json:"source_path"`
	DestPath       string `json:"dest_path"`
	Result         string `json:"result"`
	Reason         string `json:"reason"`
	SourceSize     int64  `json:"source_size"`
	DestSize       int64  `json:"dest_size"`
	SourceModTime  string `json:"source_mod_time"`
	DestModTime    string `json:"dest_mod_time"`
	SourceChecksum string `json:"source_checksum,omitempty"`
	DestChecksum   string `json:"dest_checksum,omitempty"`
}

// JSONErrorData represents an error entry
type JSONErrorData struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// JSONStatsData represents the run counters in JSON format
type JSONStatsData struct {
	Moved       int `json:"moved"`
	Copied      int `json:"copied"`
	Overwritten int `json:"overwritten"`
	Removed     int `json:"removed"`
	Skipped     int `json:"skipped"`
	Compared    int `json:"compared"`
	Errors      int `json:"errors"`
}

// JSONReportData represents the final report
type JSONReportData struct {
	OperationID string          `json:"operation_id"`
	Sources     []string        `json:"sources"`
	Destination string          `json:"destination"`
	DryRun      bool            `json:"dry_run"`
	Status      string          `json:"status"`
	Duration    string          `json:"duration"`
	DurationMs  int64           `json:"duration_ms"`
	Stats       JSONStatsData   `json:"stats"`
	Errors      []JSONErrorData `json:"errors,omitempty"`
	Events      []JSONEvent     `json:"events,omitempty"`
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{
		events: make([]JSONEvent, 0),
	}
}

// Start initializes the formatter
func (f *JSONFormatter) Start(out, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	f.out = out
	f.errOut = errOut
	return nil
}

// Progress records events for the final report. Nothing is written until
// Complete so the output stays a single parseable document.
func (f *JSONFormatter) Progress(update Update) error {
	switch update.Type {
	case "action":
		f.events = append(f.events, JSONEvent{
			Timestamp: time.Now(),
			Type:      "action",
			Data: JSONActionData{
				Verb:       update.Verb,
				SourcePath: update.SourcePath,
				DestPath:   update.DestPath,
				DryRun:     update.DryRun,
				Detail:     update.Detail,
			},
		})

	case "comparison":
		if update.Comparison == nil {
			return nil
		}
		cmp := update.Comparison
		f.events = append(f.events, JSONEvent{
			Timestamp: time.Now(),
			Type:      "comparison",
			Data: JSONComparisonData{
				SourcePath:     cmp.SourcePath,
				DestPath:       cmp.DestPath,
				Result:         string(cmp.Result),
				Reason:         cmp.Reason,
				SourceSize:     cmp.SourceSize,
				DestSize:       cmp.DestSize,
				SourceModTime:  cmp.SourceModTime.Format(time.RFC3339),
				DestModTime:    cmp.DestModTime.Format(time.RFC3339),
				SourceChecksum: cmp.SourceChecksum,
				DestChecksum:   cmp.DestChecksum,
			},
		})

	case "error":
		f.events = append(f.events, JSONEvent{
			Timestamp: time.Now(),
			Type:      "error",
			Data: JSONErrorData{
				Path:  update.SourcePath,
				Error: update.Err.Error(),
			},
		})
	}

	return nil
}

// Complete outputs the final report as a single JSON document
func (f *JSONFormatter) Complete(report *models.RunReport) error {
	if f.out == nil {
		f.out = io.Discard
	}

	var errors []JSONErrorData
	for _, err := range report.Errors {
		errors = append(errors, JSONErrorData{
			Path:  err.Path,
			Error: err.Error,
		})
	}

	reportData := JSONReportData{
		OperationID: report.OperationID,
		Sources:     report.Sources,
		Destination: report.DestPath,
		DryRun:      report.DryRun,
		Status:      string(report.Status),
		Duration:    report.Duration.Round(time.Millisecond).String(),
		DurationMs:  report.Duration.Milliseconds(),
		Stats: JSONStatsData{
			Moved:       report.Stats.Moved,
			Copied:      report.Stats.Copied,
			Overwritten: report.Stats.Overwritten,
			Removed:     report.Stats.Removed,
			Skipped:     report.Stats.Skipped,
			Compared:    report.Stats.Compared,
			Errors:      report.Stats.Errors,
		},
		Errors: errors,
		Events: f.events,
	}

	encoder := json.NewEncoder(f.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(reportData)
}

// Name returns the formatter name
func (f *JSONFormatter) Name() string {
	return "json"
}
