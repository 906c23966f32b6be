package plugin

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mgaudreault/deckhand/internal/logger"
)

// writePluginFile drops one flag file into root/component/version, creating
// the directories as needed, and returns the version directory.
func writePluginFile(t *testing.T, root, component, version, name, content string) string {
	t.Helper()

	dir := filepath.Join(root, component, version)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	return dir
}

// captureLogger returns a logger writing JSON entries into the buffer.
func captureLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	log, err := logger.New(logger.Options{Level: "debug", Writer: &buf})
	require.NoError(t, err)
	return log, &buf
}

func paramLoader(t *testing.T, dir string, log *logger.Logger) *ComponentLoader {
	t.Helper()

	kind, build, ok := LookupKind(KindParam)
	require.True(t, ok)
	return NewComponentLoader(dir, kind, build, log)
}

func TestDiscoverFindsOneArtifactPerVersion(t *testing.T) {
	root := t.TempDir()
	writePluginFile(t, root, "obproxy", "2.0.0", ParamManifest, "")
	writePluginFile(t, root, "obproxy", "3.0.0", ParamManifest, "")
	// Other flag files in the same directories must not surface.
	writePluginFile(t, root, "obproxy", "3.0.0", FileMapManifest, "")

	loader := paramLoader(t, filepath.Join(root, "obproxy"), nil)
	artifacts := loader.Discover()
	require.Len(t, artifacts, 2)

	versions := []string{artifacts[0].Version().String(), artifacts[1].Version().String()}
	require.ElementsMatch(t, []string{"2.0.0", "3.0.0"}, versions)
	for _, artifact := range artifacts {
		require.Equal(t, "obproxy", artifact.Component())
		require.Equal(t, KindParam, artifact.Kind().Name)
	}
}

func TestDiscoverReusesCachedArtifacts(t *testing.T) {
	root := t.TempDir()
	writePluginFile(t, root, "obproxy", "2.0.0", ParamManifest, "")

	loader := paramLoader(t, filepath.Join(root, "obproxy"), nil)
	first := loader.Discover()
	second := loader.Discover()
	require.Len(t, first, 1)
	require.Len(t, second, 1)
	require.Same(t, first[0], second[0])
}

func TestResolveExactMatch(t *testing.T) {
	root := t.TempDir()
	for _, version := range []string{"2.0.0", "2.1.0", "3.0.0"} {
		writePluginFile(t, root, "obproxy", version, ParamManifest, "")
	}

	log, buf := captureLogger(t)
	loader := paramLoader(t, filepath.Join(root, "obproxy"), log)

	artifact := loader.Resolve("3.0.0")
	require.NotNil(t, artifact)
	require.Equal(t, "3.0.0", artifact.Version().String())
	require.NotContains(t, buf.String(), "not found")
}

func TestResolveFallbackSelectsMaxBelow(t *testing.T) {
	root := t.TempDir()
	for _, version := range []string{"2.0.0", "2.1.0", "3.0.0"} {
		writePluginFile(t, root, "obproxy", version, ParamManifest, "")
	}

	log, buf := captureLogger(t)
	loader := paramLoader(t, filepath.Join(root, "obproxy"), log)

	artifact := loader.Resolve("2.5.0")
	require.NotNil(t, artifact)
	require.Equal(t, "2.1.0", artifact.Version().String())
	require.Equal(t, 1, strings.Count(buf.String(), "not found"))
	require.Contains(t, buf.String(), "2.5.0")
	require.Contains(t, buf.String(), "2.1.0")
}

func TestResolveNothingAtOrBelowRequest(t *testing.T) {
	root := t.TempDir()
	for _, version := range []string{"2.0.0", "2.1.0", "3.0.0"} {
		writePluginFile(t, root, "obproxy", version, ParamManifest, "")
	}

	log, buf := captureLogger(t)
	loader := paramLoader(t, filepath.Join(root, "obproxy"), log)

	require.Nil(t, loader.Resolve("1.0.0"))
	require.NotContains(t, buf.String(), "not found")
}

func TestResolveUsesIntegerTokenOrdering(t *testing.T) {
	root := t.TempDir()
	writePluginFile(t, root, "obproxy", "3.9", ParamManifest, "")
	writePluginFile(t, root, "obproxy", "3.10", ParamManifest, "")

	loader := paramLoader(t, filepath.Join(root, "obproxy"), logger.Discard())

	// Under naive string ordering the max below 3.12 would be "3.9".
	artifact := loader.Resolve("3.12")
	require.NotNil(t, artifact)
	require.Equal(t, "3.10", artifact.Version().String())
}

func TestResolveEmptyDirectory(t *testing.T) {
	loader := paramLoader(t, filepath.Join(t.TempDir(), "obproxy"), nil)
	require.Nil(t, loader.Resolve("1.0.0"))
}
