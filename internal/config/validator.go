package config

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	deckerrors "github.com/mgaudreault/deckhand/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	clusterNamePattern   = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)
	componentNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)
	dottedVersionPattern = regexp.MustCompile(`^[0-9A-Za-z]+(?:\.[0-9A-Za-z]+)*$`)
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("cluster_name", func(fl validator.FieldLevel) bool {
			return clusterNamePattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("component_name", func(fl validator.FieldLevel) bool {
			return componentNamePattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("dotted_version", func(fl validator.FieldLevel) bool {
			return dottedVersionPattern.MatchString(fl.Field().String())
		})

		validateInst = v
	})

	return validateInst
}

// ValidateClusterConfig performs schema and cross-field validation on the
// configuration.
func ValidateClusterConfig(cfg *ClusterConfig) error {
	if cfg == nil {
		return deckerrors.NewValidationError("config", "configuration is nil", nil)
	}

	v := validatorInstance()
	if err := v.Struct(cfg); err != nil {
		return convertValidationError(err)
	}

	seen := make(map[string]struct{}, len(cfg.Components))
	for i, component := range cfg.Components {
		if _, exists := seen[component.Name]; exists {
			return deckerrors.NewValidationError(
				fmt.Sprintf("components[%d].name", i),
				fmt.Sprintf("duplicate component %q", component.Name), nil)
		}
		seen[component.Name] = struct{}{}

		hosts := make(map[string]struct{}, len(component.Servers))
		for j, server := range component.Servers {
			if _, exists := hosts[server.Host]; exists {
				return deckerrors.NewValidationError(
					fmt.Sprintf("components[%d].servers[%d].host", i, j),
					fmt.Sprintf("duplicate host %q", server.Host), nil)
			}
			hosts[server.Host] = struct{}{}
		}
	}

	return nil
}

func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	if ves, ok := err.(validator.ValidationErrors); ok {
		ve := ves[0]
		field := yamlishFieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return deckerrors.NewValidationError(field, msg, err)
	}

	return deckerrors.NewValidationError("config", err.Error(), err)
}

func yamlishFieldName(fe validator.FieldError) string {
	ns := fe.StructNamespace()
	parts := strings.Split(ns, ".")
	var lowered []string
	for _, part := range parts {
		lowered = append(lowered, strings.ToLower(part))
	}
	return strings.Join(lowered, ".")
}
