package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	deckerrors "github.com/mgaudreault/deckhand/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// ParseClusterConfig loads a cluster configuration file from disk, validates
// it, and returns the resulting model.
func ParseClusterConfig(path string) (*ClusterConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, deckerrors.NewParseError(path, 0, err)
	}

	var cfg ClusterConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, deckerrors.NewParseError(path, extractLine(err), err)
	}

	if err := ValidateClusterConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	_, scanErr := fmt.Sscanf(matches[1], "%d", &line)
	if scanErr != nil {
		return 0
	}

	return line
}
