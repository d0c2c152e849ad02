// =============================================================================
// NetBox to Darkbot - Version Command
// =============================================================================
//
// This file defines the 'version' command, which displays the application
// version and build information.
//
// COMMAND USAGE:
//   netbox2darkbot version
//
// =============================================================================

package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/netbox2darkbot/internal/converter"
)

// These variables are set at build time using ldflags.
// Example build command:
//   go build -ldflags "-X 'github.com/ginjaninja78/netbox2darkbot/cmd.Version=1.0.0'"

// Version is the application version.
var Version = "1.0.0"

// BuildDate is the date the application was built.
var BuildDate = "unknown"

// newVersionCmd creates the 'version' command. Version information goes to
// standard output like a database would, since it is the requested output.
func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display the application version",
		Long:  `Display the application version, build date, and Go runtime version.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 {
				return &converter.UsageError{Usage: usageLine(cmd)}
			}
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(a.stdout, "NetBox to Darkbot")
			fmt.Fprintf(a.stdout, "Version:    %s\n", Version)
			fmt.Fprintf(a.stdout, "Build Date: %s\n", BuildDate)
			fmt.Fprintf(a.stdout, "Go Version: %s\n", runtime.Version())
		},
	}
}
