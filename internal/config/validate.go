package config

import (
	"fmt"
	"os"
	"strings"
)

// ocidPrefix is the marker every Oracle Cloud identifier starts with.
const ocidPrefix = "ocid1."

// Validate enforces the structural rules the provisioning run depends on:
// required fields, OCID formats, flexible-shape sizing, and retry policy sanity.
// It runs once at load time; the rest of the program trusts a validated Config.
func (c *Config) Validate() error {
	ocidFields := map[string]string{
		"compartment_id": c.VM.CompartmentID,
		"image_id":       c.VM.ImageID,
		"subnet_id":      c.VM.SubnetID,
	}
	for field, value := range ocidFields {
		if value == "" {
			return fmt.Errorf("missing required field in vm_config: %s", field)
		}
		if !strings.HasPrefix(value, ocidPrefix) {
			return fmt.Errorf("invalid OCID format for %s: %s", field, value)
		}
	}

	if c.VM.Shape == "" {
		return fmt.Errorf("missing required field in vm_config: shape")
	}
	if c.VM.AvailabilityDomain == "" {
		return fmt.Errorf("missing required field in vm_config: availability_domain")
	}

	// Flex shapes require an explicit sizing payload (OCPUs/memory).
	if strings.Contains(c.VM.Shape, "Flex") {
		sc := c.VM.ShapeConfig
		if sc == nil || sc.OCPUs == nil || sc.MemoryInGBs == nil {
			return fmt.Errorf(
				"flex shape '%s' requires vm_config.shape_config.ocpus and vm_config.shape_config.memory_in_gbs",
				c.VM.Shape)
		}
	}

	r := c.Retry
	if r.MaxAttempts <= 0 {
		return fmt.Errorf("retry_config.max_attempts must be positive, got %d", r.MaxAttempts)
	}
	if r.InitialDelaySeconds <= 0 {
		return fmt.Errorf("retry_config.initial_delay_seconds must be positive, got %v", r.InitialDelaySeconds)
	}
	if r.MaxDelaySeconds < r.InitialDelaySeconds {
		return fmt.Errorf("retry_config.max_delay_seconds (%v) must be >= initial_delay_seconds (%v)",
			r.MaxDelaySeconds, r.InitialDelaySeconds)
	}
	if r.BackoffMultiplier < 1.0 {
		return fmt.Errorf("retry_config.backoff_multiplier must be >= 1.0, got %v", r.BackoffMultiplier)
	}

	return nil
}

// ResolveSSHKey loads the SSH public key content from the config value.
// The value may be a path to a key file or the literal key material; either way the
// resolved text must look like an OpenSSH public key. An empty value means no key.
func (v *VMConfig) ResolveSSHKey() (string, error) {
	value := v.SSHPublicKey
	if value == "" {
		return "", nil
	}

	keyText := value
	if info, err := os.Stat(value); err == nil && info.Mode().IsRegular() {
		raw, err := os.ReadFile(value)
		if err != nil {
			return "", fmt.Errorf("failed reading ssh_public_key file '%s': %w", value, err)
		}
		keyText = string(raw)
	}

	keyText = strings.TrimSpace(keyText)
	if keyText == "" {
		return "", nil
	}

	if !strings.HasPrefix(keyText, "ssh-") {
		preview := keyText
		if len(preview) > 40 {
			preview = preview[:40]
		}
		return "", fmt.Errorf("ssh_public_key must be an OpenSSH public key (starts with 'ssh-'), got: %q", preview)
	}

	return keyText, nil
}
