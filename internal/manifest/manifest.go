package manifest

import (
	"errors"
	"os"

	yaml "gopkg.in/yaml.v2"
)

// Manifest is the parsable launch description for the service managed on
// this machine
type Manifest struct {
	Name    string   `yaml:"name"`
	BinPath string   `yaml:"path_to_bin"`
	Dir     string   `yaml:"dir"`
	Args    []string `yaml:"args"`
	Env     []string `yaml:"env"`
	LogDir  string   `yaml:"log_dir"`
}

// Parse attempts to parse a yaml file at path and return the manifest
func Parse(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("could not open yaml file: " + err.Error())
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.New("could not parse yaml file: " + err.Error())
	}
	return &m, nil
}

// Validate returns an error if the manifest is missing required information
func (m *Manifest) Validate() error {
	if m.Name == "" {
		return errors.New("manifest must name the service")
	}
	if m.BinPath == "" {
		return errors.New("manifest must specify path_to_bin")
	}
	return nil
}
