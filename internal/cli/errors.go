package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/agentx-labs/putup/internal/apperrors"
	"github.com/agentx-labs/putup/internal/branding"
)

// detailer is implemented by errors that carry output of an external tool.
type detailer interface {
	Detail() string
}

// printError writes a one-line diagnostic for err. With verbose set, the
// error kind, every layer of the wrap chain and any tool output follow.
func printError(w io.Writer, err error, verbose bool) {
	fmt.Fprintf(w, "%s: %v\n", branding.CLIName(), err)
	if !verbose {
		return
	}
	fmt.Fprintf(w, "  kind: %s\n", apperrors.KindOf(err))
	for i, msg := range apperrors.Chain(err) {
		fmt.Fprintf(w, "  %d: %s\n", i, msg)
	}
	var d detailer
	if errors.As(err, &d) && d.Detail() != "" {
		fmt.Fprintln(w, "  output:")
		for _, line := range strings.Split(d.Detail(), "\n") {
			fmt.Fprintf(w, "    %s\n", line)
		}
	}
}
