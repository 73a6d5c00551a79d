package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scribetools/scribelog/pkg/config"
	"github.com/scribetools/scribelog/pkg/scribe"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [config-file]",
		Short: "Validate a configuration file",
		Long: `Validate a ScribeLog configuration file without parsing any logs.

Checks:
  - YAML syntax
  - Output format and severity names
  - Webhook URLs, triggers, and timeouts
  - Source patterns (warning only when nothing matches)

With no argument, the usual search order applies: ./scribelog.yaml,
then ~/.scribelog/config.yaml.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var explicit string
	if len(args) == 1 {
		explicit = args[0]
	}

	path, err := config.Resolve(explicit)
	if err != nil {
		return err
	}
	if path == "" {
		return errors.New("no config file found (looked for ./scribelog.yaml and ~/.scribelog/config.yaml)")
	}

	fmt.Printf("Validating %s...\n", path)

	// Load and validate config
	cfg, err := config.Load(ctx, path)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	// Report what we found
	fmt.Printf("\nConfiguration valid!\n")
	fmt.Printf("  Sources:  %d pattern(s)\n", len(cfg.Sources))
	fmt.Printf("  Format:   %s\n", cfg.Output.Format)
	fmt.Printf("  Merge:    %v\n", cfg.Merge.Enabled)
	fmt.Printf("  Webhooks: %d\n", len(cfg.Webhooks))
	if cfg.Stats.MinSeverity != "" {
		fmt.Printf("  Min severity: %s\n", cfg.Stats.MinSeverity)
	}

	// Check if sources match files (warnings only)
	if len(cfg.Sources) == 0 {
		return nil
	}

	files, err := scribe.ExpandGlobs(cfg.Sources)
	if err != nil {
		fmt.Printf("\nWarning: Error expanding source patterns: %v\n", err)
	} else if len(files) == 0 {
		fmt.Printf("\nWarning: No files match source patterns\n")
	} else {
		fmt.Printf("\nLog files matched: %d\n", len(files))
		for _, f := range files {
			fmt.Printf("  - %s\n", f)
		}
	}

	return nil
}
