// Package config loads sankeyflow render configuration files.
//
// A config file is TOML (.toml) or YAML (.yaml, .yml) with the sections
// data, canvas, layout, style and output. ${VAR} references are expanded
// from the environment before decoding:
//
//	[data]
//	dataset = "revenue"
//	jmu = "${SANKEY_DATA}/jmu.json"
//
//	[canvas]
//	width = 1200
//
// Values in a config file are defaults: [Config.ApplyTo] only fills
// pipeline options the command line left unset.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	sferrors "github.com/jmuviz/sankeyflow/pkg/errors"
)

// EnvVar names a config file when no path is given explicitly.
const EnvVar = "SANKEY_CONFIG"

// Validator is implemented by configurations that can check themselves.
type Validator interface {
	Validate() error
}

// Load reads filename into target, choosing the decoder by extension.
// If target implements [Validator], it is validated after decoding.
func Load[T any](filename string, target *T) error {
	if err := sferrors.ValidatePath(filename); err != nil {
		return err
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return sferrors.Wrap(sferrors.ErrCodeInvalidConfig, err, "read config file %s", filename)
	}

	expanded := os.ExpandEnv(string(data))

	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".toml":
		_, err = toml.Decode(expanded, target)
	case ".yaml", ".yml":
		err = yaml.Unmarshal([]byte(expanded), target)
	default:
		return sferrors.New(sferrors.ErrCodeInvalidConfig, "unsupported config format %q (use .toml, .yaml or .yml)", ext)
	}
	if err != nil {
		return sferrors.Wrap(sferrors.ErrCodeInvalidConfig, err, "parse config file %s", filename)
	}

	if v, ok := any(target).(Validator); ok {
		if err := v.Validate(); err != nil {
			return sferrors.Wrap(sferrors.ErrCodeInvalidConfig, err, "config validation failed")
		}
	}
	return nil
}

// Resolve returns the config file to use: explicit if set, otherwise the
// file named by [EnvVar]. An empty result means no config file.
func Resolve(explicit string) string {
	if explicit != "" {
		return explicit
	}
	return os.Getenv(EnvVar)
}
