package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	deckerrors "github.com/mgaudreault/deckhand/pkg/errors"
)

func validCluster() *ClusterConfig {
	return &ClusterConfig{
		Name: "prod-cluster",
		Components: []ComponentConfig{
			{
				Name:    "oceanbase",
				Version: "3.1.0",
				Servers: []ServerConfig{{Host: "10.0.0.1", Port: 2881}},
			},
		},
	}
}

func TestValidateClusterConfig(t *testing.T) {
	require.NoError(t, ValidateClusterConfig(validCluster()))
}

func TestValidateClusterConfigFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *ClusterConfig)
		field  string
	}{
		{
			name:   "missing name",
			mutate: func(cfg *ClusterConfig) { cfg.Name = "" },
			field:  "name",
		},
		{
			name:   "uppercase cluster name",
			mutate: func(cfg *ClusterConfig) { cfg.Name = "Prod" },
			field:  "name",
		},
		{
			name:   "no components",
			mutate: func(cfg *ClusterConfig) { cfg.Components = nil },
			field:  "components",
		},
		{
			name:   "bad version",
			mutate: func(cfg *ClusterConfig) { cfg.Components[0].Version = "3..1" },
			field:  "version",
		},
		{
			name:   "component without servers",
			mutate: func(cfg *ClusterConfig) { cfg.Components[0].Servers = nil },
			field:  "servers",
		},
		{
			name:   "port out of range",
			mutate: func(cfg *ClusterConfig) { cfg.Components[0].Servers[0].Port = 70000 },
			field:  "port",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validCluster()
			tc.mutate(cfg)

			err := ValidateClusterConfig(cfg)
			require.Error(t, err)

			var validationErr *deckerrors.ValidationError
			require.True(t, errors.As(err, &validationErr))
			require.Contains(t, validationErr.Field, tc.field)
		})
	}
}

func TestValidateClusterConfigDuplicateComponent(t *testing.T) {
	cfg := validCluster()
	cfg.Components = append(cfg.Components, cfg.Components[0])

	err := ValidateClusterConfig(cfg)
	require.ErrorContains(t, err, `duplicate component "oceanbase"`)
}

func TestValidateClusterConfigDuplicateHost(t *testing.T) {
	cfg := validCluster()
	cfg.Components[0].Servers = append(cfg.Components[0].Servers, ServerConfig{Host: "10.0.0.1"})

	err := ValidateClusterConfig(cfg)
	require.ErrorContains(t, err, `duplicate host "10.0.0.1"`)
}

func TestValidateClusterConfigNil(t *testing.T) {
	require.Error(t, ValidateClusterConfig(nil))
}
