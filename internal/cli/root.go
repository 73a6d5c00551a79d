// Package cli provides the command-line interface for ScribeLog.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scribetools/scribelog/internal/cli/commands"
	"github.com/scribetools/scribelog/internal/cli/plugins"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	rootCmd := NewRootCommand()

	// Check if the first argument might be a plugin command
	if len(os.Args) > 1 {
		potentialCommand := os.Args[1]
		// Skip flags (start with -)
		if len(potentialCommand) > 0 && potentialCommand[0] != '-' {
			// Check if it's a known built-in command
			if !isBuiltinCommand(rootCmd, potentialCommand) {
				// Try to find and execute a plugin
				if pluginPath, err := plugins.FindPlugin(potentialCommand); err == nil {
					// Plugin found - execute it with remaining args
					return plugins.Execute(pluginPath, os.Args[2:])
				}
				// Plugin not found - will fall through to Cobra which will show error
			}
		}
	}

	if err := rootCmd.Execute(); err != nil {
		// Check if this was an unknown command that could be a plugin
		if len(os.Args) > 1 {
			potentialCommand := os.Args[1]
			if len(potentialCommand) > 0 && potentialCommand[0] != '-' {
				if !isBuiltinCommand(rootCmd, potentialCommand) {
					// Show helpful plugin error message
					_, _ = fmt.Fprintln(os.Stderr, plugins.FormatNotFoundError(potentialCommand))
					return 2
				}
			}
		}
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2 // Configuration or runtime error
	}
	return commands.ExitCode
}

// isBuiltinCommand checks if a command name is a built-in cobra command.
func isBuiltinCommand(rootCmd *cobra.Command, name string) bool {
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == name || cmd.HasAlias(name) {
			return true
		}
	}
	// Also check for special commands like help and completion
	return name == "help" || name == "completion"
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "scribelog",
		Short: "Parse Scribe vendor logs into structured records",
		Long: `ScribeLog is a batch tool that parses the Scribe vendor log format.

Scribe entries sit between 40-hyphen delimiter lines and carry five
labeled fields: Timestamp, Severity, Title, Win32 ThreadID, and Message,
where the message may continue over multiple lines. ScribeLog turns them
into structured records you can render as TSV or JSON, merge across
files, summarize, and forward to webhooks.

PLUGINS:
  ScribeLog supports plugins for extended functionality. Plugins are standalone
  binaries named scribelog-<command> that are automatically discovered and invoked.

  Plugin locations (searched in order):
    1. Same directory as the scribelog binary
    2. ~/.scribelog/plugins/
    3. Anywhere in PATH

  Available plugins:
    watch    Continuous log monitoring (https://github.com/scribetools/scribelog-watch)`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add subcommands
	rootCmd.AddCommand(commands.NewParseCommand())
	rootCmd.AddCommand(commands.NewDetectCommand())
	rootCmd.AddCommand(commands.NewStatsCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
