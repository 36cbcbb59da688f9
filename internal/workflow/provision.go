package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/aravindh-murugesan/oci-provisioner-go/internal/cloud"
	"github.com/aravindh-murugesan/oci-provisioner-go/internal/cloud/oci"
	"github.com/aravindh-murugesan/oci-provisioner-go/internal/config"
	"github.com/aravindh-murugesan/oci-provisioner-go/internal/notifications"
	"github.com/google/uuid"
)

// RunProvisionWorkflow orchestrates the end-to-end provisioning of one instance.
//
// Responsibilities:
//  1. Configuration: Loads and validates the config file, builds the immutable
//     launch spec and retry policy for this run.
//  2. Connection: Initializes the OCI compute client for the resolved profile.
//  3. Execution: Drives the retry loop until success, a fatal error, or exhaustion.
//  4. Reporting: Emits a final summary event and fires the failure webhook when the
//     run ends without an instance. The returned error is nil only on success, so
//     the CLI maps it directly to the process exit status.
//
// Parameters:
//   - configPath: Path to the provisioning config file.
//   - profileOverride: OCI profile from the command line; wins over env and config.
//   - timeoutSeconds: Hard limit for the whole run (0 = run to completion).
func RunProvisionWorkflow(
	configPath string,
	profileOverride string,
	timeoutSeconds int,
	webhook notifications.Webhook,
	logLevel string,
) error {
	// 1. Load Configuration First
	// The profile precedence needs the config file's oci_profile, so the logger is
	// bootstrapped only after a successful load.
	cfg, err := config.Load(configPath)
	if err != nil {
		SetupLogger(logLevel, "").Error("Configuration loading failed", "error", err, "path", configPath)
		return fmt.Errorf("config loading failed: %w", err)
	}

	profile := resolveProfile(profileOverride, cfg.OCIProfile)

	// 2. Initialize Structured Logger
	// Every event of this run carries the profile and a unique run id for tracing.
	runID := fmt.Sprintf("run-%s", uuid.New().String())
	logger := SetupLogger(logLevel, profile).With("run_id", runID)

	logger.Info("Starting OCI VM provisioning",
		"display_name", cfg.VM.DisplayName,
		"shape", cfg.VM.Shape,
		"region", cfg.VM.Region,
		"max_attempts", cfg.Retry.MaxAttempts)

	// 3. Setup Context (Optional Timeout)
	// This ensures the run doesn't hang indefinitely if the API becomes unresponsive.
	ctx := context.Background()
	if timeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(timeoutSeconds)*time.Second)
		defer cancel()
		logger.Debug("Global run timeout configured", "timeout_seconds", timeoutSeconds)
	}

	// 4. Build the Launch Spec
	// Built exactly once; every retry replays this identical payload.
	spec, err := cfg.LaunchSpec()
	if err != nil {
		logger.Error("Launch spec construction failed", "error", err)
		return fmt.Errorf("launch spec construction failed: %w", err)
	}

	// 5. Initialize OCI Client
	client := oci.Client{
		Profile:    profile,
		Region:     cfg.VM.Region,
		Classifier: cloud.NewCapacityClassifier(cfg.Retry.CapacityIndicators),
	}

	logger.Debug("Attempting to connect to OCI", "profile", profile)
	if err := client.NewClient(); err != nil {
		logger.Error("OCI client initialization failed", "error", err)
		return fmt.Errorf("client initialization failed: %w", err)
	}
	logger.Debug("OCI compute client initialized")

	// 6. Drive the Retry Loop
	loop := Loop{
		Launcher: &client,
		Policy:   cfg.Retry.Policy(),
		Logger:   logger,
	}
	result := loop.Run(ctx, spec)

	// 7. Report the Terminal Outcome
	switch result.State {
	case StateSucceeded:
		logger.Info("VM provisioning completed successfully",
			"instance_id", result.InstanceID,
			"attempts", result.Attempts)
		fmt.Println(result.InstanceID)
		return nil

	case StateFailedExhausted:
		logger.Error("VM provisioning failed: capacity still unavailable",
			"attempts", result.Attempts,
			"error", result.Err)
		notifyFailure(ctx, webhook, cfg, result, logger)
		return result.Err

	default:
		logger.Error("VM provisioning failed",
			"attempts", result.Attempts,
			"error", result.Err)
		notifyFailure(ctx, webhook, cfg, result, logger)
		return result.Err
	}
}

// RunDryRunWorkflow validates the configuration and prints the exact launch payload
// without creating a client or invoking the retry loop. Used to debug malformed
// requests (e.g. 400 CannotParseRequest) before burning real attempts.
func RunDryRunWorkflow(configPath string, profileOverride string, logLevel string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		SetupLogger(logLevel, "").Error("Configuration loading failed", "error", err, "path", configPath)
		return fmt.Errorf("config loading failed: %w", err)
	}

	profile := resolveProfile(profileOverride, cfg.OCIProfile)
	logger := SetupLogger(logLevel, profile)

	spec, err := cfg.LaunchSpec()
	if err != nil {
		logger.Error("Launch spec construction failed", "error", err)
		return fmt.Errorf("launch spec construction failed: %w", err)
	}

	payload, err := json.MarshalIndent(oci.BuildLaunchDetails(spec), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to render launch payload: %w", err)
	}

	logger.Info("Dry run: no instance will be created", "display_name", cfg.VM.DisplayName)
	fmt.Println(string(payload))
	return nil
}

// notifyFailure fires the webhook for terminal failure outcomes. Delivery problems
// are logged and swallowed; they never change the run's exit status.
func notifyFailure(
	ctx context.Context,
	webhook notifications.Webhook,
	cfg *config.Config,
	result ProvisionResult,
	logger *slog.Logger,
) {
	if webhook.URL == "" {
		return
	}

	message := ""
	if result.Err != nil {
		message = result.Err.Error()
	}

	failure := notifications.ProvisioningFailure{
		Service:     "oci-provisioner",
		DisplayName: cfg.VM.DisplayName,
		Shape:       cfg.VM.Shape,
		Region:      cfg.VM.Region,
		Outcome:     result.State.String(),
		Attempts:    result.Attempts,
		Message:     message,
	}

	// A fresh context: the run's timeout may already be spent, and the alert about
	// that timeout still has to go out.
	if ctx.Err() != nil {
		ctx = context.Background()
	}

	if err := webhook.Notify(ctx, failure); err != nil {
		logger.Warn("Failure notification delivery failed", "error", err)
	}
}
