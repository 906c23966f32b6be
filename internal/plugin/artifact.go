package plugin

import (
	"fmt"

	"github.com/mgaudreault/deckhand/internal/logger"
)

// Kind identifies one plugin capability together with the flag file whose
// presence in a version directory marks an artifact of that capability.
type Kind struct {
	Name     string
	FlagFile string
}

// Artifact is one versioned, on-disk plugin instance for a single component
// and capability kind. Artifacts are immutable once constructed from their
// on-disk location; manifest payloads are parsed lazily and cached.
type Artifact interface {
	Component() string
	Kind() Kind
	Version() Version
	Root() string
	String() string
}

// Factory builds the concrete artifact for one discovered flag file.
type Factory func(component, root string, version Version, log *logger.Logger) Artifact

type artifactInfo struct {
	component string
	kind      Kind
	version   Version
	root      string
}

func newArtifactInfo(component string, kind Kind, version Version, root string) artifactInfo {
	return artifactInfo{component: component, kind: kind, version: version, root: root}
}

// Component returns the component this artifact extends.
func (a artifactInfo) Component() string { return a.component }

// Kind returns the artifact's capability kind.
func (a artifactInfo) Kind() Kind { return a.kind }

// Version returns the artifact's parsed version.
func (a artifactInfo) Version() Version { return a.version }

// Root returns the directory holding the artifact's manifest or script.
func (a artifactInfo) Root() string { return a.root }

// String returns the component-kind-version identity used in diagnostics.
func (a artifactInfo) String() string {
	return fmt.Sprintf("%s-%s-%s", a.component, a.kind.Name, a.version)
}
