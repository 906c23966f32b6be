package plugin

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	"github.com/mgaudreault/deckhand/internal/logger"
	"github.com/mgaudreault/deckhand/internal/remote"
	"github.com/mgaudreault/deckhand/internal/stdio"
	deckerrors "github.com/mgaudreault/deckhand/pkg/errors"

	"github.com/mgaudreault/deckhand/internal/config"
)

// Invocation bundles the collaborators handed to one script run.
type Invocation struct {
	Components []string
	Clients    map[string]remote.Client
	Cluster    *config.ClusterConfig
	Command    string
	Options    map[string]string
	IO         any
	Extra      []string
}

// ScriptArtifact is an executable plugin: a shell script whose entry
// function carries the script's name. Each invocation runs load, context
// build, entry call, envelope capture and unload in sequence; the loaded
// unit is private to the artifact, so distinct artifacts never collide.
//
// A ScriptArtifact must not be invoked concurrently with itself.
type ScriptArtifact struct {
	artifactInfo

	entry      string
	scriptPath string
	log        *logger.Logger

	prog  *syntax.File
	funcs map[string]*syntax.FuncDecl
}

// NewScriptArtifact constructs a script artifact whose entry function is
// named after the script.
func NewScriptArtifact(component, script, root string, version Version, log *logger.Logger) *ScriptArtifact {
	kind := ScriptKind(script)
	return &ScriptArtifact{
		artifactInfo: newArtifactInfo(component, kind, version, root),
		entry:        script,
		scriptPath:   filepath.Join(root, script+ScriptExtension),
		log:          log,
	}
}

// Entry returns the name of the script's entry function.
func (a *ScriptArtifact) Entry() string {
	return a.entry
}

// Loaded reports whether the script unit is currently loaded.
func (a *ScriptArtifact) Loaded() bool {
	return a.prog != nil
}

// Load parses the script and populates the entry-point registry mapping
// function names to their declarations. It is idempotent; Unload releases
// the unit again.
func (a *ScriptArtifact) Load() error {
	if a.prog != nil {
		return nil
	}

	f, err := os.Open(a.scriptPath)
	if err != nil {
		return deckerrors.NewExecutionError(a.String(), err)
	}
	defer f.Close()

	prog, err := syntax.NewParser().Parse(f, filepath.Base(a.scriptPath))
	if err != nil {
		return deckerrors.NewExecutionError(a.String(), fmt.Errorf("parse script: %w", err))
	}

	funcs := make(map[string]*syntax.FuncDecl)
	syntax.Walk(prog, func(node syntax.Node) bool {
		if decl, ok := node.(*syntax.FuncDecl); ok {
			funcs[decl.Name.Value] = decl
		}
		return true
	})

	a.prog = prog
	a.funcs = funcs
	return nil
}

// Unload releases the loaded unit and its entry-point registry.
func (a *ScriptArtifact) Unload() {
	a.prog = nil
	a.funcs = nil
}

// Invoke executes the artifact once. A fresh ExecutionContext is built for
// the invocation and its envelope is the result; the unit is unloaded before
// returning. Script runtime failures are logged through the IO handle's
// exception path and never propagate: callers inspect the envelope's success
// flag instead. A script whose entry function is absent is a no-op that
// still yields the default failure envelope.
func (a *ScriptArtifact) Invoke(ctx context.Context, inv Invocation) *ReturnEnvelope {
	if ctx == nil {
		ctx = context.Background()
	}

	if err := a.Load(); err != nil {
		sio := stdio.NewScoped(inv.IO)
		sio.Exception(fmt.Sprintf("%s RuntimeError: %v", a, err))
		return NewReturnEnvelope()
	}
	defer a.Unload()

	execCtx := NewExecutionContext(inv.Components, inv.Clients, inv.Cluster, inv.Command, inv.Options, inv.IO)

	if _, ok := a.funcs[a.entry]; !ok {
		a.log.WithFields(map[string]any{"plugin": a.String()}).
			Debugf("entry function %q not defined, invocation is a no-op", a.entry)
		return execCtx.Envelope()
	}

	if err := a.run(ctx, execCtx, inv.Extra); err != nil {
		execCtx.IO.Exception(fmt.Sprintf("%s RuntimeError: %v", a, err))
	}

	return execCtx.Envelope()
}

func (a *ScriptArtifact) run(ctx context.Context, execCtx *ExecutionContext, extra []string) error {
	stdout := execCtx.IO.Writer()
	stderr := execCtx.IO.ErrWriter()
	defer stdout.Flush()
	defer stderr.Flush()

	runner, err := interp.New(
		interp.Dir(a.Root()),
		interp.Env(expand.ListEnviron(os.Environ()...)),
		interp.StdIO(strings.NewReader(""), stdout, stderr),
		interp.ExecHandlers(a.builtins(execCtx)),
	)
	if err != nil {
		return err
	}

	// Top-level statements run here, defining the entry function among
	// whatever else the script declares.
	if err := runner.Run(ctx, a.prog); err != nil {
		return err
	}

	call, err := entryCall(a.entry, extra)
	if err != nil {
		return err
	}
	return runner.Run(ctx, call)
}

// entryCall builds the statement invoking the entry function with the extra
// arguments quoted for the shell.
func entryCall(entry string, extra []string) (*syntax.File, error) {
	var sb strings.Builder
	sb.WriteString(entry)
	for _, arg := range extra {
		quoted, err := syntax.Quote(arg, syntax.LangBash)
		if err != nil {
			return nil, fmt.Errorf("quote argument %q: %w", arg, err)
		}
		sb.WriteString(" ")
		sb.WriteString(quoted)
	}
	return syntax.NewParser().Parse(strings.NewReader(sb.String()), "entry")
}

// builtins exposes the execution context to the script as commands:
//
//	return_true [arg...] [key=value...]   mark success, set payloads
//	return_false [arg...] [key=value...]  mark failure, set payloads
//	client <host> exec <command...>       run a command through the host's client
//	client <host> put <local> <target>    copy a file through the host's client
//	log_info | log_warn | log_error       write through the scoped IO handle
//
// Anything else falls through to normal command execution.
func (a *ScriptArtifact) builtins(execCtx *ExecutionContext) func(next interp.ExecHandlerFunc) interp.ExecHandlerFunc {
	return func(next interp.ExecHandlerFunc) interp.ExecHandlerFunc {
		return func(ctx context.Context, args []string) error {
			if len(args) == 0 {
				return next(ctx, args)
			}

			switch args[0] {
			case "return_true":
				pos, kw := splitPayload(args[1:])
				execCtx.ReturnTrue(pos, kw)
				return nil
			case "return_false":
				pos, kw := splitPayload(args[1:])
				execCtx.ReturnFalse(pos, kw)
				return nil
			case "client":
				return dispatchClient(ctx, execCtx, args[1:])
			case "log_info":
				execCtx.IO.Verbose(strings.Join(args[1:], " "))
				return nil
			case "log_warn":
				execCtx.IO.Warn(strings.Join(args[1:], " "))
				return nil
			case "log_error":
				execCtx.IO.Error(strings.Join(args[1:], " "))
				return nil
			}
			return next(ctx, args)
		}
	}
}

// dispatchClient routes a script's client command to the scoped client of
// the named host. Failures become a non-zero exit status for the script
// rather than aborting the interpreter.
func dispatchClient(ctx context.Context, execCtx *ExecutionContext, args []string) error {
	hc := interp.HandlerCtx(ctx)

	fail := func(format string, a ...any) error {
		fmt.Fprintf(hc.Stderr, format+"\n", a...)
		return interp.ExitStatus(1)
	}

	if len(args) < 2 {
		return fail("client: usage: client <host> <exec|put> ...")
	}

	host, op := args[0], args[1]
	client, ok := execCtx.Clients[host]
	if !ok {
		return fail("client: unknown host %q", host)
	}

	switch op {
	case "exec":
		if len(args) < 3 {
			return fail("client: exec needs a command")
		}
		out, err := client.ExecuteCommand(ctx, strings.Join(args[2:], " "))
		if out != "" {
			fmt.Fprint(hc.Stdout, out)
		}
		if err != nil {
			return fail("client: %v", err)
		}
		return nil
	case "put":
		if len(args) != 4 {
			return fail("client: put needs local and target paths")
		}
		if err := client.PutFile(ctx, args[2], args[3]); err != nil {
			return fail("client: %v", err)
		}
		return nil
	default:
		return fail("client: unsupported operation %q", op)
	}
}

// splitPayload separates builtin arguments into positional payload and
// key=value named payload.
func splitPayload(args []string) ([]string, map[string]string) {
	var pos []string
	kw := make(map[string]string)
	for _, arg := range args {
		if key, value, ok := strings.Cut(arg, "="); ok && key != "" {
			kw[key] = value
			continue
		}
		pos = append(pos, arg)
	}
	return pos, kw
}
