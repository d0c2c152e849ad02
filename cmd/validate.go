// =============================================================================
// NetBox to Darkbot - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, which lints a NetBox export
// without producing a database.
//
// COMMAND USAGE:
//   netbox2darkbot validate <Netbox CSV file>
//
// CHECKS:
//   - address parses as an IP address or prefix
//   - dns_name, when set, is a valid domain name
//   - status is not empty
//
// Each finding is logged as a warning and listed again in a numbered
// summary. The command exits with 4 when there is at least one finding.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/netbox2darkbot/internal/converter"
	"github.com/ginjaninja78/netbox2darkbot/internal/validation"
)

// newValidateCmd creates the 'validate' command.
func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <Netbox CSV file>",
		Short: "Check a NetBox export for invalid addresses and DNS names",
		Long: `The validate command reads a NetBox export and reports records whose
address is not an IP address or prefix, whose DNS name is not a valid domain
name, or whose status is empty. The header row is skipped.`,

		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return &converter.UsageError{Usage: usageLine(cmd)}
			}
			return nil
		},

		RunE: func(cmd *cobra.Command, args []string) error {
			conv := converter.New(a.cfg, a.logger, a.stdout)

			result, err := conv.Validate(args[0], true)
			if result == nil {
				return err
			}

			a.logger.Info("validation complete", "records", result.RecordsValidated, "warnings", len(result.Errors))
			if !result.IsValid() {
				fmt.Fprint(a.stderr, validation.FormatErrors(result.Errors))
			}
			return err
		},
	}
}
