package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configPath, ociProfile, logLevel string
	timeout                          int
	webhookURL                       string
	webhookUsername                  string
	webhookPassword                  string
)

var rootCommand = &cobra.Command{
	Use:     "oci-provisioner-go",
	Aliases: []string{"oci-provisioner"},
	Short:   "OCI Provisioner: capacity-aware VM provisioning",
	Long: `OCI Provisioner launches a single compute instance on Oracle Cloud Infrastructure
and automatically retries with exponential backoff while the target availability
domain is out of host capacity. Any other launch error fails the run immediately
with full diagnostic detail.

Author: Aravindh Murugesan`,
}

func Execute() error {
	return rootCommand.Execute()
}

func init() {
	rootCommand.AddGroup(&cobra.Group{ID: "provisioner", Title: "Provisioner"})

	// Global Persistent Flags with env vars support
	rootCommand.PersistentFlags().StringVar(&configPath, "config", "config.json", "Path to the provisioning configuration file")
	rootCommand.PersistentFlags().StringVar(&ociProfile, "profile", "", "OCI profile to use (overrides config file and OCI_PROFILE env var)")
	rootCommand.PersistentFlags().IntVar(&timeout, "timeout", 0, "Global execution timeout in seconds (0 = run to completion)")
	rootCommand.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Logging level (debug, info, warn, error)")
	rootCommand.PersistentFlags().StringVar(&webhookURL, "webhook-url", "", "Webhook URL for failure alerting")
	rootCommand.PersistentFlags().StringVar(&webhookUsername, "webhook-username", "", "Webhook username for alerting")
	rootCommand.PersistentFlags().StringVar(&webhookPassword, "webhook-password", "", "Webhook password for alerting")
	// Bind to env vars
	_ = viper.BindPFlag("config", rootCommand.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("profile", rootCommand.PersistentFlags().Lookup("profile"))
	_ = viper.BindPFlag("timeout", rootCommand.PersistentFlags().Lookup("timeout"))
	_ = viper.BindPFlag("log-level", rootCommand.PersistentFlags().Lookup("log-level"))

	viper.SetEnvPrefix("OCIPROV")
	viper.AutomaticEnv()

}
