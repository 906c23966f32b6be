package stdio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

type fullHost struct {
	prints     []string
	verboses   []string
	warns      []string
	errs       []string
	exceptions []string
}

func (h *fullHost) Print(msg string)     { h.prints = append(h.prints, msg) }
func (h *fullHost) Verbose(msg string)   { h.verboses = append(h.verboses, msg) }
func (h *fullHost) Warn(msg string)      { h.warns = append(h.warns, msg) }
func (h *fullHost) Error(msg string)     { h.errs = append(h.errs, msg) }
func (h *fullHost) Exception(msg string) { h.exceptions = append(h.exceptions, msg) }

type printOnlyHost struct {
	prints []string
}

func (h *printOnlyHost) Print(msg string) { h.prints = append(h.prints, msg) }

type derivingHost struct {
	sub any
}

func (h *derivingHost) SubIO() any { return h.sub }

// The deriving host also prints, which must be ignored once SubIO yields a
// derived handle.
func (h *derivingHost) Print(msg string) { panic("host Print must not be used") }

func TestScopedBindsEveryCapability(t *testing.T) {
	host := &fullHost{}
	scoped := NewScoped(host)

	scoped.Print("p")
	scoped.Verbose("v")
	scoped.Warn("w")
	scoped.Error("e")
	scoped.Exception("x")

	require.Equal(t, []string{"p"}, host.prints)
	require.Equal(t, []string{"v"}, host.verboses)
	require.Equal(t, []string{"w"}, host.warns)
	require.Equal(t, []string{"e"}, host.errs)
	require.Equal(t, []string{"x"}, host.exceptions)
}

func TestScopedPartialHostNoOpsMissingCapabilities(t *testing.T) {
	host := &printOnlyHost{}
	scoped := NewScoped(host)

	require.NotPanics(t, func() {
		scoped.Print("p")
		scoped.Verbose("v")
		scoped.Warn("w")
		scoped.Error("e")
	})
	require.Equal(t, []string{"p"}, host.prints)
}

func TestScopedNilHostAndNilHandle(t *testing.T) {
	scoped := NewScoped(nil)
	require.NotPanics(t, func() {
		scoped.Print("p")
		scoped.Warn("w")
	})

	var nilScoped *Scoped
	require.NotPanics(t, func() {
		nilScoped.Print("p")
		nilScoped.Error("e")
	})
}

func TestScopedDerivesSubIO(t *testing.T) {
	sub := &fullHost{}
	scoped := NewScoped(&derivingHost{sub: sub})

	scoped.Print("from the invocation")
	require.Equal(t, []string{"from the invocation"}, sub.prints)
}

func TestScopedNilSubIOFallsBackToHost(t *testing.T) {
	host := &derivingHost{}
	scoped := NewScoped(host)

	// SubIO returned a nil handle, so the host itself is wrapped; its Print
	// panics to prove the wiring, and the panic must surface.
	require.Panics(t, func() { scoped.Print("boom") })
}

func TestExceptionFallsBackToPrint(t *testing.T) {
	host := &printOnlyHost{}
	scoped := NewScoped(host)

	scoped.Exception("RuntimeError: boom")
	require.Equal(t, []string{"RuntimeError: boom"}, host.prints)
}

func TestWritersForwardCompleteLines(t *testing.T) {
	host := &fullHost{}
	scoped := NewScoped(host)

	w := scoped.Writer()
	_, err := w.Write([]byte("first line\nsecond "))
	require.NoError(t, err)
	_, err = w.Write([]byte("half\ntrailing"))
	require.NoError(t, err)
	require.Equal(t, []string{"first line", "second half"}, host.prints)

	w.Flush()
	require.Equal(t, []string{"first line", "second half", "trailing"}, host.prints)

	ew := scoped.ErrWriter()
	_, err = ew.Write([]byte("bad thing\n"))
	require.NoError(t, err)
	require.Equal(t, []string{"bad thing"}, host.errs)
}

func TestLineWriterFlushOnEmptyBuffer(t *testing.T) {
	var lines []string
	w := NewLineWriter(func(line string) { lines = append(lines, line) })

	w.Flush()
	require.Empty(t, lines)
}

func TestConsoleOutput(t *testing.T) {
	var buf bytes.Buffer
	console := NewConsole(&buf, false)

	console.Print("deployed")
	console.Warn("disk almost full")
	console.Error("bind failed")
	console.Exception("RuntimeError: boom")
	console.Verbose("hidden")

	out := buf.String()
	require.Contains(t, out, "deployed\n")
	require.Contains(t, out, "warn: disk almost full")
	require.Contains(t, out, "error: bind failed")
	require.Contains(t, out, "exception: RuntimeError: boom")
	require.NotContains(t, out, "hidden")
}

func TestConsoleVerboseMode(t *testing.T) {
	var buf bytes.Buffer
	console := NewConsole(&buf, true)

	console.Verbose("shown")
	require.Contains(t, buf.String(), "shown")
}
