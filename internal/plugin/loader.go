package plugin

import (
	"path/filepath"

	"github.com/mgaudreault/deckhand/internal/logger"
)

// ComponentLoader discovers the versioned artifacts of one (component, kind)
// pair under dir/{version}/{flag file} and resolves the best match for a
// requested component version.
//
// Artifacts are cached by absolute flag-file path, so repeated discovery
// reuses existing objects and manifests are never re-parsed. The loader is
// the sole owner of its cache and is not safe for concurrent use.
type ComponentLoader struct {
	kind      Kind
	build     Factory
	dir       string
	component string
	log       *logger.Logger

	artifacts map[string]Artifact
}

// NewComponentLoader creates a loader for the component whose plugin
// directory is dir; the component name is dir's basename.
func NewComponentLoader(dir string, kind Kind, build Factory, log *logger.Logger) *ComponentLoader {
	if log == nil {
		log = logger.Discard()
	}
	return &ComponentLoader{
		kind:      kind,
		build:     build,
		dir:       dir,
		component: filepath.Base(dir),
		log:       log,
		artifacts: make(map[string]Artifact),
	}
}

// Component returns the component this loader serves.
func (l *ComponentLoader) Component() string { return l.component }

// Kind returns the plugin kind this loader serves.
func (l *ComponentLoader) Kind() Kind { return l.kind }

// Discover scans the immediate version subdirectories for the kind's flag
// file and returns one artifact per match, the version being the
// subdirectory name. Already-known flag paths yield the cached artifact.
func (l *ComponentLoader) Discover() []Artifact {
	matches, err := filepath.Glob(filepath.Join(l.dir, "*", l.kind.FlagFile))
	if err != nil {
		// Only reachable with a malformed pattern, which a fixed flag
		// file name cannot produce.
		return nil
	}

	artifacts := make([]Artifact, 0, len(matches))
	for _, flagPath := range matches {
		key, err := filepath.Abs(flagPath)
		if err != nil {
			key = flagPath
		}

		if artifact, ok := l.artifacts[key]; ok {
			artifacts = append(artifacts, artifact)
			continue
		}

		root := filepath.Dir(flagPath)
		artifact := l.build(l.component, root, ParseVersion(filepath.Base(root)), l.log)
		l.artifacts[key] = artifact
		artifacts = append(artifacts, artifact)
	}
	return artifacts
}

// Resolve maps a requested component version to the best available artifact:
// the exact version when present, otherwise the highest version below the
// request, reported once as a fallback warning. A strictly newer plugin is
// never applied to an older target, so when nothing is at or below the
// request the result is nil and the caller must treat the component as
// having no compatible plugin.
func (l *ComponentLoader) Resolve(requested string) Artifact {
	want := ParseVersion(requested)

	var best Artifact
	for _, artifact := range l.Discover() {
		switch {
		case artifact.Version().Equal(want):
			return artifact
		case artifact.Version().Less(want):
			if best == nil || best.Version().Less(artifact.Version()) {
				best = artifact
			}
		}
	}

	if best == nil {
		return nil
	}

	l.log.WithFields(map[string]any{
		"component": l.component,
		"kind":      l.kind.Name,
		"requested": requested,
		"selected":  best.Version().String(),
	}).Warnf("%s %s plugin version %s not found, using best suitable version %s; run `deckhand update` to refresh the local plugin repository",
		l.component, l.kind.Name, requested, best.Version())
	return best
}
