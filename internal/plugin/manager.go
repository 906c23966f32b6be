package plugin

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/mgaudreault/deckhand/internal/logger"
	deckerrors "github.com/mgaudreault/deckhand/pkg/errors"
)

// PluginsRelativePath is where the plugin repository lives under the
// manager's home. The directory layout is
// {home}/plugins/{component}/{version}/{flag file}.
const PluginsRelativePath = "plugins"

// Manager is the top-level façade over the plugin repository. It caches one
// ComponentLoader per (kind, component) and one ScriptLoader per
// (script name, component) and delegates resolution to them.
//
// The caches are unsynchronized; the manager expects a single execution
// thread, matching the deployment tool's synchronous command flow.
type Manager struct {
	home string
	root string
	log  *logger.Logger

	componentLoaders map[string]map[string]*ComponentLoader
	scriptLoaders    map[string]map[string]*ScriptLoader
}

// NewManager creates a manager rooted at home.
func NewManager(home string, log *logger.Logger) *Manager {
	if log == nil {
		log = logger.Discard()
	}
	return &Manager{
		home:             home,
		root:             filepath.Join(home, PluginsRelativePath),
		log:              log,
		componentLoaders: make(map[string]map[string]*ComponentLoader),
		scriptLoaders:    make(map[string]map[string]*ScriptLoader),
	}
}

// Root returns the plugin repository directory.
func (m *Manager) Root() string { return m.root }

// Resolve maps a requested component version to the best artifact of the
// named kind. An unregistered kind is a PluginError, distinct from a
// resolution miss which is a nil artifact with a nil error.
func (m *Manager) Resolve(kindName, component, version string) (Artifact, error) {
	kind, build, ok := LookupKind(kindName)
	if !ok {
		return nil, deckerrors.NewPluginError(kindName, fmt.Errorf("no plugin kind registered"))
	}

	loaders := m.componentLoaders[kindName]
	if loaders == nil {
		loaders = make(map[string]*ComponentLoader)
		m.componentLoaders[kindName] = loaders
	}

	loader, ok := loaders[component]
	if !ok {
		loader = NewComponentLoader(filepath.Join(m.root, component), kind, build, m.log)
		loaders[component] = loader
	}

	return loader.Resolve(version), nil
}

// ResolveScript maps a requested component version to the best artifact of
// the named script. Script kinds self-register on first use, so there is no
// unknown-kind case; a nil result means no compatible version exists.
func (m *Manager) ResolveScript(script, component, version string) *ScriptArtifact {
	loaders := m.scriptLoaders[script]
	if loaders == nil {
		loaders = make(map[string]*ScriptLoader)
		m.scriptLoaders[script] = loaders
	}

	loader, ok := loaders[component]
	if !ok {
		loader = NewScriptLoader(filepath.Join(m.root, component), script, m.log)
		loaders[component] = loader
	}

	return loader.ResolveScript(version)
}

// Components lists the component directories present in the repository.
func (m *Manager) Components() ([]string, error) {
	entries, err := os.ReadDir(m.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var components []string
	for _, entry := range entries {
		if entry.IsDir() {
			components = append(components, entry.Name())
		}
	}
	sort.Strings(components)
	return components, nil
}

// Versions lists the version directories present for one component.
func (m *Manager) Versions(component string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(m.root, component))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var versions []string
	for _, entry := range entries {
		if entry.IsDir() {
			versions = append(versions, entry.Name())
		}
	}
	sort.Slice(versions, func(i, j int) bool {
		return ParseVersion(versions[i]).Less(ParseVersion(versions[j]))
	})
	return versions, nil
}
