package config

import (
	"fmt"
	"time"

	"github.com/aravindh-murugesan/oci-provisioner-go/internal/cloud"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// Config mirrors the layout of the provisioning config file: the OCI profile to
// authenticate with, the description of the instance to create, and the retry
// behavior for capacity shortages.
type Config struct {
	OCIProfile string      `mapstructure:"oci_profile"`
	VM         VMConfig    `mapstructure:"vm_config"`
	Retry      RetryConfig `mapstructure:"retry_config"`
}

// ShapeConfig carries the explicit sizing required by flexible shapes.
type ShapeConfig struct {
	OCPUs       *float32 `mapstructure:"ocpus"`
	MemoryInGBs *float32 `mapstructure:"memory_in_gbs"`
}

// VMConfig describes the instance to launch. The three id fields are OCIDs.
type VMConfig struct {
	Region              string       `mapstructure:"region"`
	CompartmentID       string       `mapstructure:"compartment_id"`
	ImageID             string       `mapstructure:"image_id"`
	Shape               string       `mapstructure:"shape"`
	SubnetID            string       `mapstructure:"subnet_id"`
	AvailabilityDomain  string       `mapstructure:"availability_domain"`
	DisplayName         string       `mapstructure:"display_name"`
	ShapeConfig         *ShapeConfig `mapstructure:"shape_config"`
	BootVolumeSizeInGBs *int64       `mapstructure:"boot_volume_size_in_gbs"`
	AssignPublicIP      *bool        `mapstructure:"assign_public_ip"`

	// SSHPublicKey is either a path to a public key file or the key material itself.
	SSHPublicKey string `mapstructure:"ssh_public_key"`
}

// RetryConfig holds the capacity-retry tuning knobs from the config file.
type RetryConfig struct {
	MaxAttempts         int     `mapstructure:"max_attempts"`
	InitialDelaySeconds float64 `mapstructure:"initial_delay_seconds"`
	MaxDelaySeconds     float64 `mapstructure:"max_delay_seconds"`
	BackoffMultiplier   float64 `mapstructure:"backoff_multiplier"`

	// CapacityIndicators replaces the built-in capacity-error phrase table when set.
	CapacityIndicators []string `mapstructure:"capacity_indicators"`
}

// Load reads, decodes, and validates the config file at the given path.
// Supported formats are whatever viper infers from the extension (json, yaml, toml).
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Defaults match the original deployment values.
	v.SetDefault("retry_config.max_attempts", 30)
	v.SetDefault("retry_config.initial_delay_seconds", 5)
	v.SetDefault("retry_config.max_delay_seconds", 300)
	v.SetDefault("retry_config.backoff_multiplier", 1.5)
	v.SetDefault("vm_config.display_name", "compute-instance")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg, err := decodeConfig(v.AllSettings())
	if err != nil {
		return nil, fmt.Errorf("failed to decode config file '%s': %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// decodeConfig unmarshals the merged settings map into a strongly-typed Config.
// Weak typing tolerates JSON/YAML sources that represent numbers or booleans as strings.
func decodeConfig(settings map[string]any) (*Config, error) {
	var cfg Config

	decoderConfig := &mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	}

	decoder, err := mapstructure.NewDecoder(decoderConfig)
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(settings); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Policy converts the file-level retry settings into the immutable runtime policy.
func (r RetryConfig) Policy() cloud.RetryPolicy {
	return cloud.RetryPolicy{
		MaxAttempts:       r.MaxAttempts,
		InitialDelay:      time.Duration(r.InitialDelaySeconds * float64(time.Second)),
		MaxDelay:          time.Duration(r.MaxDelaySeconds * float64(time.Second)),
		BackoffMultiplier: r.BackoffMultiplier,
	}
}

// LaunchSpec builds the read-only launch specification for this run, resolving the
// SSH public key on the way. Every retry replays this exact spec.
func (c *Config) LaunchSpec() (cloud.LaunchSpec, error) {
	sshKey, err := c.VM.ResolveSSHKey()
	if err != nil {
		return cloud.LaunchSpec{}, err
	}

	spec := cloud.LaunchSpec{
		CompartmentID:       c.VM.CompartmentID,
		ImageID:             c.VM.ImageID,
		Shape:               c.VM.Shape,
		SubnetID:            c.VM.SubnetID,
		AvailabilityDomain:  c.VM.AvailabilityDomain,
		DisplayName:         c.VM.DisplayName,
		BootVolumeSizeInGBs: c.VM.BootVolumeSizeInGBs,
		AssignPublicIP:      c.VM.AssignPublicIP,
		SSHAuthorizedKeys:   sshKey,
	}

	if c.VM.ShapeConfig != nil {
		spec.OCPUs = c.VM.ShapeConfig.OCPUs
		spec.MemoryInGBs = c.VM.ShapeConfig.MemoryInGBs
	}

	return spec, nil
}
