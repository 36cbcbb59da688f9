package oci

import (
	"testing"

	"github.com/aravindh-murugesan/oci-provisioner-go/internal/cloud"
	"github.com/oracle/oci-go-sdk/v65/core"
)

func float32Ptr(v float32) *float32 { return &v }
func int64Ptr(v int64) *int64       { return &v }
func boolPtr(v bool) *bool          { return &v }

func TestBuildLaunchDetails_RequiredFields(t *testing.T) {
	spec := cloud.LaunchSpec{
		CompartmentID:      "ocid1.compartment.oc1..aaaa",
		ImageID:            "ocid1.image.oc1..bbbb",
		Shape:              "VM.Standard2.1",
		SubnetID:           "ocid1.subnet.oc1..cccc",
		AvailabilityDomain: "Uocm:PHX-AD-1",
		DisplayName:        "compute-instance",
	}

	details := BuildLaunchDetails(spec)

	if got := *details.CompartmentId; got != spec.CompartmentID {
		t.Errorf("CompartmentId = %q, want %q", got, spec.CompartmentID)
	}
	if got := *details.AvailabilityDomain; got != spec.AvailabilityDomain {
		t.Errorf("AvailabilityDomain = %q, want %q", got, spec.AvailabilityDomain)
	}
	if got := *details.Shape; got != spec.Shape {
		t.Errorf("Shape = %q, want %q", got, spec.Shape)
	}
	if got := *details.DisplayName; got != spec.DisplayName {
		t.Errorf("DisplayName = %q, want %q", got, spec.DisplayName)
	}

	source, ok := details.SourceDetails.(core.InstanceSourceViaImageDetails)
	if !ok {
		t.Fatalf("SourceDetails has type %T, want InstanceSourceViaImageDetails", details.SourceDetails)
	}
	if got := *source.ImageId; got != spec.ImageID {
		t.Errorf("ImageId = %q, want %q", got, spec.ImageID)
	}
	if source.BootVolumeSizeInGBs != nil {
		t.Errorf("BootVolumeSizeInGBs = %v, want nil", *source.BootVolumeSizeInGBs)
	}

	if got := *details.CreateVnicDetails.SubnetId; got != spec.SubnetID {
		t.Errorf("SubnetId = %q, want %q", got, spec.SubnetID)
	}
	if details.CreateVnicDetails.AssignPublicIp != nil {
		t.Error("AssignPublicIp should stay unset when not configured")
	}

	// Optional payloads must be omitted entirely, not sent as empty objects.
	if details.ShapeConfig != nil {
		t.Error("ShapeConfig should be nil without sizing parameters")
	}
	if details.Metadata != nil {
		t.Error("Metadata should be nil without an ssh key")
	}
}

func TestBuildLaunchDetails_OptionalFields(t *testing.T) {
	spec := cloud.LaunchSpec{
		CompartmentID:       "ocid1.compartment.oc1..aaaa",
		ImageID:             "ocid1.image.oc1..bbbb",
		Shape:               "VM.Standard.E4.Flex",
		SubnetID:            "ocid1.subnet.oc1..cccc",
		AvailabilityDomain:  "Uocm:PHX-AD-1",
		DisplayName:         "flex-instance",
		OCPUs:               float32Ptr(2),
		MemoryInGBs:         float32Ptr(16),
		BootVolumeSizeInGBs: int64Ptr(100),
		AssignPublicIP:      boolPtr(true),
		SSHAuthorizedKeys:   "ssh-ed25519 AAAAC3Nza example",
	}

	details := BuildLaunchDetails(spec)

	if details.ShapeConfig == nil {
		t.Fatal("ShapeConfig is nil for a flex shape")
	}
	if got := *details.ShapeConfig.Ocpus; got != 2 {
		t.Errorf("Ocpus = %v, want 2", got)
	}
	if got := *details.ShapeConfig.MemoryInGBs; got != 16 {
		t.Errorf("MemoryInGBs = %v, want 16", got)
	}

	source := details.SourceDetails.(core.InstanceSourceViaImageDetails)
	if got := *source.BootVolumeSizeInGBs; got != 100 {
		t.Errorf("BootVolumeSizeInGBs = %v, want 100", got)
	}

	if got := *details.CreateVnicDetails.AssignPublicIp; got != true {
		t.Errorf("AssignPublicIp = %v, want true", got)
	}

	if got := details.Metadata["ssh_authorized_keys"]; got != spec.SSHAuthorizedKeys {
		t.Errorf("ssh_authorized_keys = %q, want %q", got, spec.SSHAuthorizedKeys)
	}
}
