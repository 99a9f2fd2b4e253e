// Package config carries dc4eu-vc's envconfig+yaml+defaults configuration
// pattern (pkg/configuration/config.go) into the engine, scoped down to
// the handful of defaults the core actually needs: the IotaDID default
// network name, the default JWS algorithm, and the
// RevocationBitmap/StatusList2021 default capacities. Document/validator
// APIs otherwise take explicit options structs; this Config backs the
// *FromConfig convenience constructors those packages expose for callers
// that would rather thread one Config through their wiring than pass
// each default explicitly: did.PlaceholderFromConfig/
// ParseIotaDIDFromConfig, document.JwsSignatureOptions.Config,
// revocation.NewBitmapFromConfig/NewStatusListFromConfig, and
// storage/mongostore.ConnectFromConfig.
package config

import (
	"os"
	"path/filepath"

	"github.com/creasty/defaults"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config holds the defaults the engine falls back to when callers don't
// supply explicit options.
type Config struct {
	// DefaultNetwork is the IotaDID network name used when none is given
	// to NewPlaceholder or when a DID's network segment is omitted.
	DefaultNetwork string `yaml:"default_network" default:"iota"`

	// DefaultJWSAlgorithm names the signature algorithm CoreDocument
	// assumes when a JWK carries no explicit "alg".
	DefaultJWSAlgorithm string `yaml:"default_jws_algorithm" default:"EdDSA"`

	// RevocationBitmapDefaultCapacity bounds the number of distinct
	// indices a fresh RevocationBitmap2022 service is sized for before it
	// must grow.
	RevocationBitmapDefaultCapacity int `yaml:"revocation_bitmap_default_capacity" default:"128"`

	// StatusList2021DefaultBits is the bit length of a freshly issued
	// StatusList2021Credential (131072 = 16 KiB).
	StatusList2021DefaultBits int `yaml:"statuslist2021_default_bits" default:"131072"`

	// MongoURI optionally points storage/mongostore at a deployment; left
	// empty, callers must supply a *mongo.Client themselves.
	MongoURI string `yaml:"mongo_uri" envconfig:"IDENTITY_MONGO_URI"`
}

type envVars struct {
	ConfigYAML string `envconfig:"IDENTITY_CONFIG_YAML"`
}

// Default returns a Config populated purely from struct tag defaults, with
// no file or environment lookup -- the shape library callers reach for most
// often.
func Default() (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load mirrors dc4eu-vc's configuration.New: it reads the
// IDENTITY_CONFIG_YAML environment variable, applies struct defaults, and
// overlays the YAML file's content, if any. A missing or empty
// IDENTITY_CONFIG_YAML is not an error -- Load falls back to Default().
func Load() (*Config, error) {
	env := envVars{}
	if err := envconfig.Process("", &env); err != nil {
		return nil, err
	}

	cfg, err := Default()
	if err != nil {
		return nil, err
	}

	if env.ConfigYAML == "" {
		return cfg, nil
	}

	path := filepath.Clean(env.ConfigYAML)
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
