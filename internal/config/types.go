// Package config models the cluster configuration handed to script plugins:
// which components are deployed, at which version, onto which servers.
package config

// ClusterConfig is the root of a deployment description.
type ClusterConfig struct {
	Name       string            `yaml:"name" validate:"required,cluster_name"`
	User       string            `yaml:"user"`
	Components []ComponentConfig `yaml:"components" validate:"required,min=1,dive"`
}

// ComponentConfig describes one deployed component: its version, target
// servers and free-form options forwarded to plugins.
type ComponentConfig struct {
	Name    string            `yaml:"name" validate:"required,component_name"`
	Version string            `yaml:"version" validate:"required,dotted_version"`
	Servers []ServerConfig    `yaml:"servers" validate:"required,min=1,dive"`
	Options map[string]string `yaml:"options"`
}

// ServerConfig identifies one target host of a component.
type ServerConfig struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"gte=0,lte=65535"`
}

// Component returns the named component configuration.
func (c *ClusterConfig) Component(name string) (*ComponentConfig, bool) {
	for i := range c.Components {
		if c.Components[i].Name == name {
			return &c.Components[i], true
		}
	}
	return nil, false
}

// ComponentNames lists the configured components in declaration order.
func (c *ClusterConfig) ComponentNames() []string {
	names := make([]string, 0, len(c.Components))
	for _, component := range c.Components {
		names = append(names, component.Name)
	}
	return names
}

// Hosts lists the target hosts of the component in declaration order.
func (c *ComponentConfig) Hosts() []string {
	hosts := make([]string, 0, len(c.Servers))
	for _, server := range c.Servers {
		hosts = append(hosts, server.Host)
	}
	return hosts
}
