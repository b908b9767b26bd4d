package report

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	WarnColorFG    = pterm.FgYellow
	WarnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = SuccessColorFG
	InfoStyleBG    = SuccessStyleBG
)

// PrintErrorMessage prints a standard Go error to w.
func PrintErrorMessage(w io.Writer, tag string, err error) {
	fmt.Fprintln(w, ErrorStyleBG.Sprint(tag)+" "+ErrorColorFG.Sprint(err.Error()))
}

// PrintWarningMessage prints a warning message to w.
func PrintWarningMessage(w io.Writer, tag, msg string) {
	fmt.Fprintln(w, WarnStyleBG.Sprint(tag)+" "+WarnColorFG.Sprint(msg))
}

// PrintInfoMessage prints an informational message to w.
func PrintInfoMessage(w io.Writer, tag, msg string) {
	fmt.Fprintln(w, InfoStyleBG.Sprint(tag)+" "+InfoColorFG.Sprint(msg))
}

// displayFinished displays the summary line printed at the end of a run.
func displayFinished(w io.Writer, outputs int, written uint64, errorCount, warningCount int) {
	if errorCount == 0 {
		fmt.Fprint(w, SuccessColorFG.Sprint("All done! "))
	} else {
		fmt.Fprint(w, ErrorColorFG.Sprint("Oh no! "))
	}

	fmt.Fprintf(w, "(%s, %s written, ", plural(outputs, "output"), humanize.Bytes(written))

	switch errorCount {
	case 0:
		fmt.Fprint(w, SuccessColorFG.Sprint(0), " errors, ")
	default:
		fmt.Fprint(w, ErrorColorFG.Sprint(errorCount), " ", pluralWord(errorCount, "error"), ", ")
	}

	switch warningCount {
	case 0:
		fmt.Fprintln(w, SuccessColorFG.Sprint(0), "warnings)")
	default:
		fmt.Fprintln(w, WarnColorFG.Sprint(warningCount), pluralWord(warningCount, "warning")+")")
	}
}

func plural(n int, word string) string {
	return fmt.Sprintf("%d %s", n, pluralWord(n, word))
}

func pluralWord(n int, word string) string {
	if n == 1 {
		return word
	}

	return word + "s"
}
