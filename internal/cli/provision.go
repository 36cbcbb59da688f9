package cli

import (
	"fmt"

	"github.com/aravindh-murugesan/oci-provisioner-go/internal/notifications"
	"github.com/aravindh-murugesan/oci-provisioner-go/internal/workflow"
	"github.com/spf13/cobra"
)

var dryRun bool

var provisionCommand = &cobra.Command{
	Use:     "provision",
	GroupID: "provisioner",
	Short:   "Launch the configured instance, retrying on capacity errors",
	Long: `Builds the launch request from the configuration file and submits it to OCI.
Transient "out of host capacity" failures are retried with exponential backoff up to
the configured attempt limit; any other error ends the run immediately. On success
the new instance OCID is printed to stdout and the process exits 0.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if dryRun {
			fmt.Println(headerStyle.Render("OCI Provisioner - Dry Run"))
			return workflow.RunDryRunWorkflow(configPath, ociProfile, logLevel)
		}

		fmt.Println(headerStyle.Render("OCI Provisioner - Launch Workflow"))

		webhookProvider := notifications.Webhook{
			URL:      webhookURL,
			Username: webhookUsername,
			Password: webhookPassword,
		}

		return workflow.RunProvisionWorkflow(
			configPath,
			ociProfile,
			timeout,
			webhookProvider,
			logLevel,
		)
	},
}

func init() {
	provisionCommand.Flags().BoolVar(&dryRun, "dry-run", false, "Validate the config and print the launch payload without creating an instance")
	rootCommand.AddCommand(provisionCommand)
}
