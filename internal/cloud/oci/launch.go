package oci

import (
	"context"
	"fmt"

	"github.com/aravindh-murugesan/oci-provisioner-go/internal/cloud"
	"github.com/oracle/oci-go-sdk/v65/common"
	"github.com/oracle/oci-go-sdk/v65/core"
)

// BuildLaunchDetails maps the provider-neutral spec onto the OCI wire payload.
// It is pure so the dry-run mode can render the exact payload without a client.
func BuildLaunchDetails(spec cloud.LaunchSpec) core.LaunchInstanceDetails {
	details := core.LaunchInstanceDetails{
		CompartmentId:      common.String(spec.CompartmentID),
		AvailabilityDomain: common.String(spec.AvailabilityDomain),
		DisplayName:        common.String(spec.DisplayName),
		Shape:              common.String(spec.Shape),
		SourceDetails: core.InstanceSourceViaImageDetails{
			ImageId:             common.String(spec.ImageID),
			BootVolumeSizeInGBs: spec.BootVolumeSizeInGBs,
		},
		CreateVnicDetails: &core.CreateVnicDetails{
			SubnetId:       common.String(spec.SubnetID),
			AssignPublicIp: spec.AssignPublicIP,
		},
	}

	// Flex shapes require an explicit sizing payload.
	if spec.OCPUs != nil || spec.MemoryInGBs != nil {
		details.ShapeConfig = &core.LaunchInstanceShapeConfigDetails{
			Ocpus:       spec.OCPUs,
			MemoryInGBs: spec.MemoryInGBs,
		}
	}

	if spec.SSHAuthorizedKeys != "" {
		details.Metadata = map[string]string{
			"ssh_authorized_keys": spec.SSHAuthorizedKeys,
		}
	}

	return details
}

// Launch performs exactly one create-instance call and classifies the result.
//
// Behavior:
//   - Success: returns the instance OCID assigned by OCI.
//   - ServiceError: classified by message and service code. Capacity shortages are
//     reported as retryable; anything else is fatal and carries the HTTP status,
//     service code, opc-request-id, and the full message for debugging.
//   - Any other error (transport, unexpected): fatal.
//
// The SDK's own retry machinery is disabled; the provisioning loop owns retries.
// On success this call creates a real remote resource, and no compensating cleanup
// is attempted if the response cannot be processed afterwards.
func (c *Client) Launch(ctx context.Context, spec cloud.LaunchSpec) cloud.AttemptOutcome {
	noRetry := common.NoRetryPolicy()
	request := core.LaunchInstanceRequest{
		LaunchInstanceDetails: BuildLaunchDetails(spec),
		RequestMetadata: common.RequestMetadata{
			RetryPolicy: &noRetry,
		},
	}

	response, err := c.ComputeClient.LaunchInstance(ctx, request)
	if err == nil {
		instanceID := ""
		if response.Instance.Id != nil {
			instanceID = *response.Instance.Id
		}
		return cloud.SuccessOutcome(instanceID)
	}

	if serviceErr, ok := common.IsServiceError(err); ok {
		if c.Classifier.IsCapacityError(serviceErr.GetMessage(), serviceErr.GetCode()) {
			return cloud.RetryableOutcome(serviceErr.GetMessage())
		}
		return cloud.FatalOutcome(fmt.Errorf(
			"launch rejected (status %d, code %s, opc-request-id %s): %w",
			serviceErr.GetHTTPStatusCode(), serviceErr.GetCode(), serviceErr.GetOpcRequestID(), err))
	}

	return cloud.FatalOutcome(fmt.Errorf("launch failed unexpectedly: %w", err))
}
