// Package stdio defines the I/O surface handed to script plugins. The host
// passes any object it likes; Scoped enumerates the exact methods scripts are
// permitted to call and binds each one to the host's implementation when
// present, or to a silent no-op when absent.
package stdio

import (
	"fmt"
)

// Capability interfaces a host IO handle may implement. Scoped detects each
// one independently, so a minimal host providing only Print still works.
type (
	// Printer writes a plain line of output.
	Printer interface{ Print(msg string) }
	// Verboser writes diagnostic output shown only in verbose mode.
	Verboser interface{ Verbose(msg string) }
	// Warner writes a warning line.
	Warner interface{ Warn(msg string) }
	// ErrorReporter writes an error line.
	ErrorReporter interface{ Error(msg string) }
	// ExceptionReporter records a script runtime failure.
	ExceptionReporter interface{ Exception(msg string) }
	// SubDeriver lets a host hand out a derived handle scoped to one
	// invocation. When implemented and non-nil, the derived handle is
	// wrapped instead of the host itself.
	SubDeriver interface{ SubIO() any }
)

// Scoped is the per-invocation IO handle given to scripts. Every method is
// safe to call regardless of what the underlying host implements.
type Scoped struct {
	print     func(string)
	verbose   func(string)
	warn      func(string)
	errorFn   func(string)
	exception func(string)
}

// NewScoped wraps a host IO handle. A nil host produces a handle whose
// methods all no-op except Exception, which falls back to plain printing so
// script failures are never fully silent.
func NewScoped(host any) *Scoped {
	if deriver, ok := host.(SubDeriver); ok {
		if sub := deriver.SubIO(); sub != nil {
			host = sub
		}
	}

	s := &Scoped{}
	if p, ok := host.(Printer); ok {
		s.print = p.Print
	}
	if v, ok := host.(Verboser); ok {
		s.verbose = v.Verbose
	}
	if w, ok := host.(Warner); ok {
		s.warn = w.Warn
	}
	if e, ok := host.(ErrorReporter); ok {
		s.errorFn = e.Error
	}
	if e, ok := host.(ExceptionReporter); ok {
		s.exception = e.Exception
	}
	return s
}

// Print writes a plain output line.
func (s *Scoped) Print(msg string) {
	if s == nil || s.print == nil {
		return
	}
	s.print(msg)
}

// Verbose writes a diagnostic line.
func (s *Scoped) Verbose(msg string) {
	if s == nil || s.verbose == nil {
		return
	}
	s.verbose(msg)
}

// Warn writes a warning line.
func (s *Scoped) Warn(msg string) {
	if s == nil || s.warn == nil {
		return
	}
	s.warn(msg)
}

// Error writes an error line.
func (s *Scoped) Error(msg string) {
	if s == nil || s.errorFn == nil {
		return
	}
	s.errorFn(msg)
}

// Exception records a script runtime failure. It prefers the host's
// Exception method, then Print, then falls back to stdout.
func (s *Scoped) Exception(msg string) {
	switch {
	case s != nil && s.exception != nil:
		s.exception(msg)
	case s != nil && s.print != nil:
		s.print(msg)
	default:
		fmt.Println(msg)
	}
}

// Writer returns a line-buffered writer that forwards complete lines to
// Print. Callers flush it once the producing side is done.
func (s *Scoped) Writer() *LineWriter {
	return NewLineWriter(s.Print)
}

// ErrWriter returns a line-buffered writer that forwards complete lines to
// Error.
func (s *Scoped) ErrWriter() *LineWriter {
	return NewLineWriter(s.Error)
}
