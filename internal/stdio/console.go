package stdio

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/mgaudreault/deckhand/internal/ui"
)

// Console is the host IO handle used by the CLI. It implements the full
// capability set, styling status prefixes when the output is a terminal.
type Console struct {
	out     io.Writer
	verbose bool
	palette ui.Palette
}

// NewConsole creates a Console writing to out. Styling is enabled only when
// out is a terminal.
func NewConsole(out io.Writer, verbose bool) *Console {
	colored := false
	if f, ok := out.(*os.File); ok {
		colored = term.IsTerminal(int(f.Fd()))
	}
	return &Console{out: out, verbose: verbose, palette: ui.NewPalette(colored)}
}

// Print writes a plain output line.
func (c *Console) Print(msg string) {
	fmt.Fprintln(c.out, msg)
}

// Verbose writes a diagnostic line when verbose mode is on.
func (c *Console) Verbose(msg string) {
	if !c.verbose {
		return
	}
	fmt.Fprintln(c.out, c.palette.Muted(msg))
}

// Warn writes a warning line.
func (c *Console) Warn(msg string) {
	fmt.Fprintf(c.out, "%s %s\n", c.palette.Warning("warn:"), msg)
}

// Error writes an error line.
func (c *Console) Error(msg string) {
	fmt.Fprintf(c.out, "%s %s\n", c.palette.Failure("error:"), msg)
}

// Exception records a script runtime failure.
func (c *Console) Exception(msg string) {
	fmt.Fprintf(c.out, "%s %s\n", c.palette.Failure("exception:"), msg)
}
