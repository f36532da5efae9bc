// Package config loads the stylegen YAML configuration and builds the
// program logger from it.
package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"github.com/rupor-github/gencfg"
	yaml "gopkg.in/yaml.v3"

	"github.com/goliatone/go-stylegen/pkg/declaration"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	CompileConfig struct {
		Policy   string `yaml:"policy" validate:"required,oneof=lenient strict"`
		Renderer string `yaml:"renderer" validate:"required"`
		Modules  string `yaml:"modules"`
	}

	Config struct {
		Version int           `yaml:"version" validate:"eq=1"`
		Logging LoggerConfig  `yaml:"logging"`
		Compile CompileConfig `yaml:"compile"`
	}
)

// DeclarationPolicy returns the configured policy. Validation has already
// restricted the value, so parse failures fall back to lenient.
func (c CompileConfig) DeclarationPolicy() declaration.Policy {
	policy, err := declaration.ParsePolicy(c.Policy)
	if err != nil {
		return declaration.PolicyLenient
	}
	return policy
}

func unmarshalConfig(data []byte, cfg *Config, validate bool) (*Config, error) {
	// only fields defined above are accepted
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if validate {
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration file at path on top of the
// embedded defaults and validates the result. An empty path returns the
// defaults.
func LoadConfiguration(path string) (*Config, error) {
	haveFile := len(path) > 0

	data, err := Prepare()
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, true)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare expands the embedded configuration template.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl)
}

// Dump serialises cfg back to YAML.
func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}
