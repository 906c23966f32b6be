package plugin

import (
	"github.com/mgaudreault/deckhand/internal/logger"
)

// ScriptLoader specializes ComponentLoader for executable scripts. Script
// names are not known in advance: the loader synthesizes (or reuses) the
// kind for its script name, so a new lifecycle step exists as soon as a
// matching script file is dropped under a version directory.
type ScriptLoader struct {
	*ComponentLoader

	script string
}

// NewScriptLoader creates a loader for one (script name, component) pair.
func NewScriptLoader(dir, script string, log *logger.Logger) *ScriptLoader {
	kind := ScriptKind(script)
	_, build, _ := LookupKind(kind.Name)
	return &ScriptLoader{
		ComponentLoader: NewComponentLoader(dir, kind, build, log),
		script:          script,
	}
}

// Script returns the script name this loader serves.
func (l *ScriptLoader) Script() string { return l.script }

// ResolveScript resolves like Resolve but returns the concrete script
// artifact, nil when no compatible version exists.
func (l *ScriptLoader) ResolveScript(requested string) *ScriptArtifact {
	artifact := l.Resolve(requested)
	if artifact == nil {
		return nil
	}

	script, ok := artifact.(*ScriptArtifact)
	if !ok {
		return nil
	}
	return script
}
