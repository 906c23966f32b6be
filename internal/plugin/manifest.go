package plugin

import (
	"fmt"
	"os"
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/mgaudreault/deckhand/internal/logger"
	deckerrors "github.com/mgaudreault/deckhand/pkg/errors"
)

var (
	yamlLineRegex = regexp.MustCompile(`line (\d+)`)

	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New()
	})
	return validateInst
}

// decodeManifest reads one YAML manifest into out. A missing or malformed
// manifest is reported as a ParseError; callers log it and fall back to an
// empty payload rather than failing the resolution.
func decodeManifest(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return deckerrors.NewParseError(path, 0, err)
	}

	if err := yaml.Unmarshal(data, out); err != nil {
		return deckerrors.NewParseError(path, extractLine(err), err)
	}

	return nil
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

func warnManifest(log *logger.Logger, plugin, path string, err error) {
	log.WithFields(map[string]any{
		"plugin":   plugin,
		"manifest": path,
	}).Warnf("manifest unusable, treating as empty: %v", err)
}
