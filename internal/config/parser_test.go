package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	deckerrors "github.com/mgaudreault/deckhand/pkg/errors"
)

const clusterFixture = `name: prod-cluster
user: admin
components:
  - name: oceanbase
    version: 3.1.0
    servers:
      - host: 10.0.0.1
        port: 2881
      - host: 10.0.0.2
        port: 2881
    options:
      memory_limit: 8G
  - name: obproxy
    version: 3.2.0
    servers:
      - host: 10.0.0.3
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "cluster.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseClusterConfig(t *testing.T) {
	cfg, err := ParseClusterConfig(writeConfig(t, clusterFixture))
	require.NoError(t, err)

	require.Equal(t, "prod-cluster", cfg.Name)
	require.Equal(t, "admin", cfg.User)
	require.Equal(t, []string{"oceanbase", "obproxy"}, cfg.ComponentNames())

	oceanbase, ok := cfg.Component("oceanbase")
	require.True(t, ok)
	require.Equal(t, "3.1.0", oceanbase.Version)
	require.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, oceanbase.Hosts())
	require.Equal(t, "8G", oceanbase.Options["memory_limit"])

	_, ok = cfg.Component("missing")
	require.False(t, ok)
}

func TestParseClusterConfigMissingFile(t *testing.T) {
	_, err := ParseClusterConfig(filepath.Join(t.TempDir(), "nope.yaml"))

	var parseErr *deckerrors.ParseError
	require.True(t, errors.As(err, &parseErr))
}

func TestParseClusterConfigMalformedYAMLReportsLine(t *testing.T) {
	_, err := ParseClusterConfig(writeConfig(t, "name: ok\ncomponents: [\n"))

	var parseErr *deckerrors.ParseError
	require.True(t, errors.As(err, &parseErr))
	require.Greater(t, parseErr.Line, 0)
}

func TestParseClusterConfigInvalidModel(t *testing.T) {
	_, err := ParseClusterConfig(writeConfig(t, "name: prod\ncomponents: []\n"))

	var validationErr *deckerrors.ValidationError
	require.True(t, errors.As(err, &validationErr))
}
