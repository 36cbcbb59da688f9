package oci

import (
	"fmt"
	"log/slog"

	"github.com/aravindh-murugesan/oci-provisioner-go/internal/cloud"
	"github.com/oracle/oci-go-sdk/v65/common"
	"github.com/oracle/oci-go-sdk/v65/core"
)

// Client manages the connection and service clients for OCI interactions.
// It wraps the standard OCI compute client with capacity-aware error
// classification and profile management.
type Client struct {
	// Profile corresponds to the entry in ~/.oci/config
	Profile string
	// Region overrides the profile's region when non-empty
	Region string
	// Classifier decides which launch failures are transient capacity shortages
	Classifier cloud.CapacityClassifier

	// Internal service clients
	ComputeClient *core.ComputeClient
}

// GetCloudProviderName returns the identifier for this provider.
func (c *Client) GetCloudProviderName() string {
	return "oci"
}

// NewClient initializes the OCI compute service client.
// Credentials are resolved from the SDK config file (~/.oci/config) using the
// configured Profile; a region from vm_config takes precedence over the profile's.
func (c *Client) NewClient() error {
	slog.Debug("Initializing OCI client", "profile", c.Profile)

	provider := common.CustomProfileConfigProvider("", c.Profile)

	compute, err := core.NewComputeClientWithConfigurationProvider(provider)
	if err != nil {
		return fmt.Errorf("failed to initialize compute client for profile '%s': %w", c.Profile, err)
	}

	if c.Region != "" {
		compute.SetRegion(c.Region)
	}

	c.ComputeClient = &compute
	return nil
}
