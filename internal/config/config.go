package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

///////////////////////////////////////////////////////////////////////////////////
// Seshin cluster config
///////////////////////////////////////////////////////////////////////////////////

// ClusterConfig holds the control CLI settings and the endpoint list
type ClusterConfig struct {
	Ctl       *CtlConfig  `toml:"ctl"`
	Endpoints []*Endpoint `toml:"endpoint"`
}

// CtlConfig stores svcctl settings
type CtlConfig struct {
	Timeout duration `toml:"timeout"`
	Verbose bool     `toml:"verbose"`
}

// Endpoint is the fixed (name, host, port) triple identifying one
// controllable service
type Endpoint struct {
	Name string `toml:"name"`
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// AgentConfig holds the per-machine control agent settings
type AgentConfig struct {
	Agent  *AgentSettings  `toml:"agent"`
	Broker *BrokerSettings `toml:"broker"`
}

// AgentSettings stores svcagent settings
type AgentSettings struct {
	Service  string `toml:"service"`
	Address  string `toml:"address"`
	Manifest string `toml:"manifest"`
	Verbose  bool   `toml:"verbose"`
}

// BrokerSettings stores the connection settings for the message bus
type BrokerSettings struct {
	URL string `toml:"url"`
}

// ParseClusterConfig parses the cluster config from the file passed in
// otherwise returns an error
func ParseClusterConfig(configFile string) (*ClusterConfig, error) {
	var cluster ClusterConfig
	if _, err := toml.DecodeFile(configFile, &cluster); err != nil {
		return nil, err
	}
	setDefaults(&cluster)
	return &cluster, nil
}

// ParseAgentConfig parses the agent config from the file passed in
func ParseAgentConfig(configFile string) (*AgentConfig, error) {
	var agent AgentConfig
	if _, err := toml.DecodeFile(configFile, &agent); err != nil {
		return nil, err
	}
	setAgentDefaults(&agent)
	return &agent, nil
}

// Verify that an endpoint descriptor is well formed
func (e *Endpoint) Verify() error {
	if e.Name == "" {
		return fmt.Errorf("endpoint must specify a name")
	}
	if e.Host == "" {
		return fmt.Errorf("endpoint %s must specify a host", e.Name)
	}
	if e.Port <= 0 || e.Port > 65535 {
		return fmt.Errorf("endpoint %s has an invalid port %d", e.Name, e.Port)
	}
	return nil
}

// setDefaults fills in the blanks with default settings on the important config values
func setDefaults(c *ClusterConfig) {
	if c.Ctl == nil {
		c.Ctl = DefaultCtlConfig
	}
	if c.Ctl.Timeout.Duration == 0 {
		c.Ctl.Timeout = DefaultCtlConfig.Timeout
	}
	if len(c.Endpoints) == 0 {
		c.Endpoints = DefaultEndpoints
	}
}

func setAgentDefaults(c *AgentConfig) {
	if c.Agent == nil {
		c.Agent = &AgentSettings{}
	}
	if c.Agent.Address == "" {
		c.Agent.Address = DefaultAgentAddress
	}
	if c.Broker == nil {
		c.Broker = &BrokerSettings{}
	}
	if c.Broker.URL == "" {
		c.Broker.URL = DefaultBrokerURL
	}
}

type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}
