package plugin

import (
	"fmt"
	"sync"

	"github.com/mgaudreault/deckhand/internal/logger"
	deckerrors "github.com/mgaudreault/deckhand/pkg/errors"
)

// Flag files of the built-in declarative kinds, and the extension that marks
// executable script plugins.
const (
	ParamManifest   = "parameter.yaml"
	FileMapManifest = "file_map.yaml"
	ScriptExtension = ".sh"
)

// Built-in kind names accepted by Manager.Resolve.
const (
	KindParam   = "param"
	KindFileMap = "files"
)

var (
	kindsMu sync.RWMutex
	kinds   = make(map[string]registeredKind)
)

type registeredKind struct {
	kind  Kind
	build Factory
}

func init() {
	mustRegisterKind(Kind{Name: KindParam, FlagFile: ParamManifest}, newParamArtifact)
	mustRegisterKind(Kind{Name: KindFileMap, FlagFile: FileMapManifest}, newFileMapArtifact)
}

// RegisterKind adds a plugin kind and its artifact factory to the registry.
func RegisterKind(kind Kind, build Factory) error {
	if kind.Name == "" || kind.FlagFile == "" {
		return deckerrors.NewPluginError(kind.Name, fmt.Errorf("kind needs a name and a flag file"))
	}
	if build == nil {
		return deckerrors.NewPluginError(kind.Name, fmt.Errorf("kind factory is nil"))
	}

	kindsMu.Lock()
	defer kindsMu.Unlock()

	if _, exists := kinds[kind.Name]; exists {
		return deckerrors.NewPluginError(kind.Name, fmt.Errorf("kind already registered"))
	}

	kinds[kind.Name] = registeredKind{kind: kind, build: build}
	return nil
}

// LookupKind retrieves a registered kind and its factory by name.
func LookupKind(name string) (Kind, Factory, bool) {
	kindsMu.RLock()
	defer kindsMu.RUnlock()

	rk, ok := kinds[name]
	if !ok {
		return Kind{}, nil, false
	}
	return rk.kind, rk.build, true
}

// ScriptKind returns the synthesized kind for an ad-hoc script name,
// registering it on first use. The flag file is "{name}.sh" and the entry
// function carries the script name. Later calls for the same name reuse the
// registered kind, so new lifecycle steps need nothing beyond dropping a
// script file under a version directory.
func ScriptKind(name string) Kind {
	kindsMu.Lock()
	defer kindsMu.Unlock()

	key := scriptKindName(name)
	if rk, ok := kinds[key]; ok {
		return rk.kind
	}

	kind := Kind{Name: key, FlagFile: name + ScriptExtension}
	kinds[key] = registeredKind{kind: kind, build: scriptFactory(name)}
	return kind
}

func scriptKindName(script string) string {
	return "script/" + script
}

func scriptFactory(script string) Factory {
	return func(component, root string, version Version, log *logger.Logger) Artifact {
		return NewScriptArtifact(component, script, root, version, log)
	}
}

func mustRegisterKind(kind Kind, build Factory) {
	if err := RegisterKind(kind, build); err != nil {
		panic(err)
	}
}
