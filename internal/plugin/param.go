package plugin

import (
	"path/filepath"
	"sort"

	"github.com/mgaudreault/deckhand/internal/logger"
)

// ParamSpec declares one configuration parameter of a component: its default
// value, whether operators must supply it, and which deployment actions a
// change to it requires. Values are opaque metadata; no type checking happens
// here.
type ParamSpec struct {
	Name         string `yaml:"name" validate:"required"`
	Default      any    `yaml:"default"`
	Require      bool   `yaml:"require"`
	NeedRestart  bool   `yaml:"need_restart"`
	NeedRedeploy bool   `yaml:"need_redeploy"`
}

// ParamArtifact is a parameter-declaration plugin backed by parameter.yaml.
type ParamArtifact struct {
	artifactInfo

	manifestPath string
	log          *logger.Logger

	parsed bool
	params map[string]ParamSpec
}

func newParamArtifact(component, root string, version Version, log *logger.Logger) Artifact {
	kind, _, _ := LookupKind(KindParam)
	return &ParamArtifact{
		artifactInfo: newArtifactInfo(component, kind, version, root),
		manifestPath: filepath.Join(root, ParamManifest),
		log:          log,
	}
}

// Params returns the declared parameters keyed by name, parsing the manifest
// on first access. An unusable manifest yields an empty declaration after a
// logged warning; resolution stays best-effort.
func (a *ParamArtifact) Params() map[string]ParamSpec {
	if a.parsed {
		return a.params
	}
	a.parsed = true
	a.params = make(map[string]ParamSpec)

	var specs []ParamSpec
	if err := decodeManifest(a.manifestPath, &specs); err != nil {
		warnManifest(a.log, a.String(), a.manifestPath, err)
		return a.params
	}

	v := validatorInstance()
	for _, spec := range specs {
		if err := v.Struct(spec); err != nil {
			a.log.WithFields(map[string]any{
				"plugin":   a.String(),
				"manifest": a.manifestPath,
			}).Warnf("skipping parameter record without a name")
			continue
		}
		a.params[spec.Name] = spec
	}
	return a.params
}

// Defaults returns the default value of every declared parameter.
func (a *ParamArtifact) Defaults() map[string]any {
	params := a.Params()
	defaults := make(map[string]any, len(params))
	for name, spec := range params {
		defaults[name] = spec.Default
	}
	return defaults
}

// RestartItems lists the parameters whose change requires a component
// restart, in sorted order.
func (a *ParamArtifact) RestartItems() []string {
	return a.itemsWhere(func(spec ParamSpec) bool { return spec.NeedRestart })
}

// RedeployItems lists the parameters whose change requires a full redeploy,
// in sorted order.
func (a *ParamArtifact) RedeployItems() []string {
	return a.itemsWhere(func(spec ParamSpec) bool { return spec.NeedRedeploy })
}

func (a *ParamArtifact) itemsWhere(match func(ParamSpec) bool) []string {
	var items []string
	for name, spec := range a.Params() {
		if match(spec) {
			items = append(items, name)
		}
	}
	sort.Strings(items)
	return items
}
