// =============================================================================
// NetBox to Darkbot - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command
// performs the conversion itself; subcommands are attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (netbox2darkbot <content type> <Netbox CSV file>)
//   ├── validateCmd (netbox2darkbot validate <Netbox CSV file>)
//   └── versionCmd (netbox2darkbot version)
//
// EXIT CODES:
//   0 - success
//   1 - usage error (missing arguments, bad flags)
//   2 - unknown content type
//   3 - source, row or output failure
//   4 - validation warnings (validate only)
//
// Standard output carries only the generated database. Everything else,
// including usage text, goes to the error stream.
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/netbox2darkbot/internal/config"
	"github.com/ginjaninja78/netbox2darkbot/internal/converter"
	"github.com/ginjaninja78/netbox2darkbot/internal/logging"
	"github.com/ginjaninja78/netbox2darkbot/internal/types"
)

// programName is the command name shown in usage text.
const programName = "netbox2darkbot"

// =============================================================================
// APPLICATION STATE
// =============================================================================

// app holds the flags and the resources shared by all commands of one
// invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer

	// cfgFile holds the path to the configuration file (--config).
	cfgFile string

	// verbose enables debug logging (--verbose).
	verbose bool

	// outputPath and outputDir redirect the database to a file.
	outputPath string
	outputDir  string

	// lint reports validation warnings during conversion.
	lint bool

	cfg    *config.Config
	logger *log.Logger
}

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// newRootCmd builds the command tree for one invocation.
func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   programName + " <content type> <Netbox CSV file>",
		Short: "Convert a NetBox IP address export into a Darkbot database",
		Long: `netbox2darkbot reads a NetBox IP address export (CSV or XLSX with the
columns address, dns_name, description, status) and writes a Darkbot
database to standard output.

Content types:
  ips       one line per address:  <ip> <details> [status]
  reverse   one line per DNS name: <name> <ip> / <ip> [status]

The first row of the export is the header and is always skipped.

Example Usage:
  netbox2darkbot ips ip-addresses.csv > ips.db
  netbox2darkbot reverse ip-addresses.csv -o reverse.db
  netbox2darkbot validate ip-addresses.csv`,

		Args:          rootArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},

		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runConvert(args[0], args[1])
		},
	}

	rootCmd.SetOut(a.stderr)
	rootCmd.SetErr(a.stderr)

	// "help" is a content type like any other word in the first slot, so
	// cobra must not claim it. -h/--help still prints the long help.
	rootCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &converter.UsageError{Usage: usageLine(cmd), Err: err}
	})

	// ==========================================================================
	// PERSISTENT FLAGS
	// ==========================================================================

	rootCmd.PersistentFlags().StringVar(
		&a.cfgFile,
		"config",
		config.DefaultConfigFile,
		"Path to the configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&a.verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)

	// ==========================================================================
	// LOCAL FLAGS
	// ==========================================================================

	rootCmd.Flags().StringVarP(
		&a.outputPath,
		"output",
		"o",
		"",
		"Write the database to this file instead of standard output",
	)

	rootCmd.Flags().StringVar(
		&a.outputDir,
		"output-dir",
		"",
		"Write the database into this directory, named after output_name_format",
	)

	rootCmd.Flags().BoolVar(
		&a.lint,
		"lint",
		false,
		"Report invalid addresses and DNS names while converting",
	)

	rootCmd.AddCommand(newValidateCmd(a), newVersionCmd(a))

	return rootCmd
}

// rootArgs requires a content type and a source file.
func rootArgs(cmd *cobra.Command, args []string) error {
	if len(args) < 2 {
		return &converter.UsageError{
			Usage: usageLine(cmd),
			Hints: []string{"Supported content types are: " + supportedContentTypes()},
		}
	}
	return nil
}

// usageLine returns the synopsis of cmd.
func usageLine(cmd *cobra.Command) string {
	if cmd.HasParent() {
		return fmt.Sprintf("Usage: %s %s", programName, cmd.Use)
	}
	return "Usage: " + cmd.Use
}

func supportedContentTypes() string {
	names := make([]string, len(types.SupportedContentTypes))
	for i, ct := range types.SupportedContentTypes {
		names[i] = string(ct)
	}
	return strings.Join(names, ", ")
}

// =============================================================================
// SETUP
// =============================================================================

// setup loads the environment, the configuration and the logger.
func (a *app) setup(cmd *cobra.Command) error {
	a.logger = logging.New(a.stderr, "info")

	if err := config.LoadEnv(); err != nil {
		return err
	}

	path, explicit := config.ResolvePath(a.cfgFile, cmd.Flags().Changed("config"))
	cfg, err := config.Load(path, explicit)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := cfg.LogLevel
	if a.verbose {
		level = "debug"
	}
	a.logger.SetLevel(logging.ParseLevel(level))
	a.logger.Debug("configuration loaded", "file", path, "explicit", explicit)

	return nil
}

// runConvert converts one source file.
func (a *app) runConvert(contentType, sourcePath string) error {
	conv := converter.New(a.cfg, a.logger, a.stdout)

	_, err := conv.Run(converter.Options{
		ContentType: contentType,
		SourcePath:  sourcePath,
		OutputPath:  a.outputPath,
		OutputDir:   a.outputDir,
		SkipFirst:   true,
		Lint:        a.lint,
	})
	return err
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Run executes the command line args and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr}

	rootCmd := newRootCmd(a)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	if err != nil {
		reportError(stderr, err)
	}
	return converter.ExitCode(err)
}

// reportError prints err to the error stream in the form its kind calls for.
func reportError(w io.Writer, err error) {
	var (
		usageErr   *converter.UsageError
		contentErr *converter.ContentTypeError
	)
	switch {
	case errors.As(err, &usageErr):
		if usageErr.Err != nil {
			fmt.Fprintf(w, "Error: %v\n", usageErr.Err)
		}
		fmt.Fprintln(w, usageErr.Usage)
		for _, hint := range usageErr.Hints {
			fmt.Fprintln(w, hint)
		}
	case errors.As(err, &contentErr):
		fmt.Fprintln(w, contentErr.Error())
	case converter.IsRowError(err):
		fmt.Fprintf(w, "Error: %v\n", err)
		fmt.Fprintln(w, "Every row, header included, needs the address, dns_name, description and status columns")
	default:
		fmt.Fprintf(w, "Error: %v\n", err)
	}
}

// Execute runs the CLI with the process arguments and exits.
// This is called by main.main().
func Execute() {
	os.Exit(Run(os.Args[1:], os.Stdout, os.Stderr))
}
