package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	ProvisionerVersion, ProvisionerCommit, ProvisionerDate string
)

var versionCommand = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  "Display version, commit hash, build date, and other build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("OCI Provisioner version: %s\n", ProvisionerVersion)
		fmt.Printf("Commit: %s\n", ProvisionerCommit)
		fmt.Printf("Built: %s\n", ProvisionerDate)
	},
}

func init() {
	rootCommand.AddCommand(versionCommand)
}
