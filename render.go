package clip

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	errorLabel   = color.New(color.FgRed, color.Bold)
	missingLabel = color.New(color.FgYellow, color.Bold)
	suggestText  = color.New(color.FgCyan)
)

// renderErrors prints every resolution error, one line each. Missing
// required arguments get their own label since the user omitted
// something rather than provided something malformed. The first
// suggestion of an unrecognized name becomes a "Did you mean" hint.
// Colors respect NO_COLOR and non-terminal writers via fatih/color.
func renderErrors(w io.Writer, errs Errors) {
	for _, e := range errs {
		label := errorLabel
		if e.Kind == MissingRequired {
			label = missingLabel
		}
		fmt.Fprintf(w, "%s %s\n", label.Sprintf("%s:", e.Kind), e.Message)
		if len(e.Suggestions) > 0 {
			fmt.Fprintf(w, "  %s\n", suggestText.Sprintf("Did you mean: %s?", e.Suggestions[0]))
		}
	}
}
