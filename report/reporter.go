package report

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Reporter is responsible for reporting errors, warnings, and other kinds of
// messages to the user.  The reporter respects the set log level and is
// synchronized: its methods can be safely called from multiple goroutines.
type Reporter struct {
	// The mutex used to synchonize different report method calls.
	m *sync.Mutex

	// The stream messages are displayed on.
	out io.Writer

	// The selected log level of the reporter.  This must be one of the
	// enumerated log levels below.
	logLevel int

	// The number of errors and warnings reported so far.  Messages are counted
	// even when the log level hides them.
	errorCount, warningCount int
}

// Enumeration of the different possible log levels.
const (
	LogLevelSilent  = iota // Displays no output.
	LogLevelError          // Displays only errors to the user.
	LogLevelWarn           // Displays only warnings and errors to the user.
	LogLevelVerbose        // Displays all messages to the user (default).
)

var logLevelNames = map[string]int{
	"silent":  LogLevelSilent,
	"error":   LogLevelError,
	"warn":    LogLevelWarn,
	"verbose": LogLevelVerbose,
}

// LogLevelNames are the accepted log level names in increasing order of
// verbosity.
var LogLevelNames = []string{"silent", "error", "warn", "verbose"}

// ParseLogLevel converts a log level name into a log level.
func ParseLogLevel(name string) (int, error) {
	if level, ok := logLevelNames[strings.ToLower(name)]; ok {
		return level, nil
	}

	return 0, fmt.Errorf("unknown log level `%s`: expected one of %s", name, strings.Join(LogLevelNames, ", "))
}

// NewReporter creates a new reporter displaying to out.
func NewReporter(out io.Writer, logLevel int) *Reporter {
	return &Reporter{
		m:        &sync.Mutex{},
		out:      out,
		logLevel: logLevel,
	}
}

// ReportWarning reports a warning.
func (r *Reporter) ReportWarning(msg string) {
	r.m.Lock()
	defer r.m.Unlock()

	r.warningCount++
	if r.logLevel >= LogLevelWarn {
		PrintWarningMessage(r.out, "Warning:", msg)
	}
}

// ReportError reports an error that does not stop the run on its own.
func (r *Reporter) ReportError(err error) {
	r.m.Lock()
	defer r.m.Unlock()

	r.errorCount++
	if r.logLevel >= LogLevelError {
		PrintErrorMessage(r.out, "Error:", err)
	}
}

// ReportFatal reports an error that stops the run.  It is displayed at every
// log level except silent.
func (r *Reporter) ReportFatal(tag string, err error) {
	r.m.Lock()
	defer r.m.Unlock()

	r.errorCount++
	if r.logLevel > LogLevelSilent {
		PrintErrorMessage(r.out, tag, err)
	}
}

// ReportInfo reports an informational message.  It is only displayed in
// verbose mode.
func (r *Reporter) ReportInfo(msg string) {
	r.m.Lock()
	defer r.m.Unlock()

	if r.logLevel >= LogLevelVerbose {
		PrintInfoMessage(r.out, "Info:", msg)
	}
}

// ReportFinished displays the summary of a run: the number of outputs written,
// their total size and the number of errors and warnings.
func (r *Reporter) ReportFinished(outputs int, written uint64) {
	r.m.Lock()
	defer r.m.Unlock()

	if r.logLevel >= LogLevelVerbose {
		displayFinished(r.out, outputs, written, r.errorCount, r.warningCount)
	}
}

// AnyErrors returns whether any errors have been reported.
func (r *Reporter) AnyErrors() bool {
	r.m.Lock()
	defer r.m.Unlock()

	return r.errorCount > 0
}

// ErrorCount returns the number of errors reported.
func (r *Reporter) ErrorCount() int {
	r.m.Lock()
	defer r.m.Unlock()

	return r.errorCount
}

// WarningCount returns the number of warnings reported.
func (r *Reporter) WarningCount() int {
	r.m.Lock()
	defer r.m.Unlock()

	return r.warningCount
}
