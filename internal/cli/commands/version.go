package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version information set via ldflags at build time.
var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  "Print the version of ScribeLog.",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("scribelog %s", Version)
			if Commit != "" {
				fmt.Printf(" (%s)", Commit)
			}
			if Date != "" {
				fmt.Printf(" built %s", Date)
			}
			fmt.Println()
		},
	}
}
