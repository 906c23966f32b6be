package plugin

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScriptKindSynthesizedOnFirstUse(t *testing.T) {
	kind := ScriptKind("init_dirs")
	require.Equal(t, "script/init_dirs", kind.Name)
	require.Equal(t, "init_dirs.sh", kind.FlagFile)

	// Repeated synthesis reuses the registered kind.
	require.Equal(t, kind, ScriptKind("init_dirs"))

	registered, build, ok := LookupKind("script/init_dirs")
	require.True(t, ok)
	require.Equal(t, kind, registered)
	require.NotNil(t, build)
}

func TestRegisterKindRejectsDuplicatesAndBlanks(t *testing.T) {
	err := RegisterKind(Kind{Name: KindParam, FlagFile: ParamManifest}, newParamArtifact)
	require.ErrorContains(t, err, "already registered")

	err = RegisterKind(Kind{Name: "", FlagFile: "x.yaml"}, newParamArtifact)
	require.ErrorContains(t, err, "needs a name")

	err = RegisterKind(Kind{Name: "custom", FlagFile: "custom.yaml"}, nil)
	require.ErrorContains(t, err, "factory is nil")
}

func TestScriptLoaderResolvesScriptArtifacts(t *testing.T) {
	root := t.TempDir()
	writePluginFile(t, root, "obproxy", "2.0.0", "start"+ScriptExtension, "start() { return_true; }\n")
	writePluginFile(t, root, "obproxy", "3.0.0", "start"+ScriptExtension, "start() { return_true; }\n")

	log, buf := captureLogger(t)
	loader := NewScriptLoader(filepath.Join(root, "obproxy"), "start", log)
	require.Equal(t, "start", loader.Script())

	artifact := loader.ResolveScript("2.5.0")
	require.NotNil(t, artifact)
	require.Equal(t, "2.0.0", artifact.Version().String())
	require.Equal(t, "start", artifact.Entry())
	require.Contains(t, buf.String(), "not found")
}

func TestScriptLoaderMissReturnsNil(t *testing.T) {
	loader := NewScriptLoader(filepath.Join(t.TempDir(), "obproxy"), "start", nil)
	require.Nil(t, loader.ResolveScript("1.0.0"))
}
