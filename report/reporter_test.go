package report

import (
	"bytes"
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	pterm.DisableColor()
	os.Exit(m.Run())
}

func TestParseLogLevel(t *testing.T) {
	for i, name := range LogLevelNames {
		level, err := ParseLogLevel(name)
		require.NoError(t, err)
		assert.Equal(t, i, level)
	}

	level, err := ParseLogLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, LogLevelWarn, level)

	_, err = ParseLogLevel("loud")
	assert.ErrorContains(t, err, "loud")
}

func TestReportWarning(t *testing.T) {
	var buf bytes.Buffer
	rep := NewReporter(&buf, LogLevelVerbose)

	rep.ReportWarning("can't convert function bodies (at main)")
	assert.Equal(t, "Warning: can't convert function bodies (at main)\n", buf.String())
	assert.Equal(t, 1, rep.WarningCount())
	assert.False(t, rep.AnyErrors())
}

func TestReportLogLevels(t *testing.T) {
	tests := []struct {
		level                   int
		warning, errMsg, info bool
	}{
		{LogLevelSilent, false, false, false},
		{LogLevelError, false, true, false},
		{LogLevelWarn, true, true, false},
		{LogLevelVerbose, true, true, true},
	}

	for _, tt := range tests {
		t.Run(LogLevelNames[tt.level], func(t *testing.T) {
			var buf bytes.Buffer
			rep := NewReporter(&buf, tt.level)

			rep.ReportWarning("careful")
			rep.ReportError(errors.New("broken"))
			rep.ReportInfo("wrote foo.nim")

			out := buf.String()
			assert.Equal(t, tt.warning, bytes.Contains(buf.Bytes(), []byte("careful")), out)
			assert.Equal(t, tt.errMsg, bytes.Contains(buf.Bytes(), []byte("broken")), out)
			assert.Equal(t, tt.info, bytes.Contains(buf.Bytes(), []byte("wrote foo.nim")), out)

			// counts do not depend on the log level
			assert.Equal(t, 1, rep.WarningCount())
			assert.Equal(t, 1, rep.ErrorCount())
			assert.True(t, rep.AnyErrors())
		})
	}
}

func TestReportFatal(t *testing.T) {
	var buf bytes.Buffer
	rep := NewReporter(&buf, LogLevelError)

	rep.ReportFatal("Config Error:", errors.New("no bindings"))
	assert.Equal(t, "Config Error: no bindings\n", buf.String())
	assert.True(t, rep.AnyErrors())
}

func TestReportFinished(t *testing.T) {
	var buf bytes.Buffer
	rep := NewReporter(&buf, LogLevelVerbose)

	rep.ReportWarning("one")
	buf.Reset()

	rep.ReportFinished(2, 2048)
	assert.Equal(t, "All done! (2 outputs, 2.0 kB written, 0 errors, 1 warning)\n", buf.String())

	rep.ReportError(errors.New("bad"))
	buf.Reset()

	rep.ReportFinished(1, 10)
	assert.Equal(t, "Oh no! (1 output, 10 B written, 1 error, 1 warning)\n", buf.String())
}

func TestReporterConcurrent(t *testing.T) {
	var buf bytes.Buffer
	rep := NewReporter(&buf, LogLevelSilent)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				rep.ReportWarning("w")
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 800, rep.WarningCount())
	assert.Empty(t, buf.String())
}

func TestDebugLogger(t *testing.T) {
	var buf bytes.Buffer

	log := NewDebugLogger(&buf, false)
	log.Debug().Msg("hidden")
	assert.Empty(t, buf.String())

	log = NewDebugLogger(&buf, true)
	log.Debug().Str("pass", "typedefs").Msg("running pass")
	assert.Contains(t, buf.String(), "running pass")
	assert.Contains(t, buf.String(), "pass=typedefs")
}
