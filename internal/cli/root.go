package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lherron/scomadm/internal/cli/appctx"
	"github.com/lherron/scomadm/internal/config"
)

// Process exit codes
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// NewRootCmd builds the scomadm command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "scomadm",
		Short: "Simple admin queries against the SCOM database",
		Long: `scomadm runs administrative queries against the SCOM database: listing
users and page comments, deleting a user and promoting a user to admin.
Each command runs a single statement over one connection.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if output, _ := cmd.Flags().GetString("output"); output != "" && !config.IsOutputFormat(output) {
				return fmt.Errorf("invalid --output %q: must be one of: %s", output, strings.Join(config.OutputFormats, ", "))
			}
			return nil
		},
	}

	root.PersistentFlags().String("dsn", "", fmt.Sprintf("Database connection string (overrides SCOM_DSN, default %s)", config.DefaultDSN))
	root.PersistentFlags().StringP("output", "o", "", "Listing format: pipe, json, ndjson or yaml (overrides SCOM_OUTPUT)")

	root.AddCommand(
		newListUsersCmd(),
		newDeleteUserCmd(),
		newListCommentsCmd(),
		newPromoteAdminCmd(),
		newDoctorCmd(),
		newVersionCmd(),
	)

	return root
}

// Execute runs scomadm with args and returns the process exit code.
// Argument errors print the error and usage to stderr and return
// ExitUsage; failures after dispatch print the error and return
// ExitFailure. Running with no command prints help and connects to
// nothing.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if args == nil {
		// cobra falls back to os.Args when given nil
		args = []string{}
	}

	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	cmd, err := root.ExecuteContextC(ctx)
	if err == nil {
		return ExitOK
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)

	var runErr *appctx.RunError
	if errors.As(err, &runErr) {
		return ExitFailure
	}

	if cmd == nil {
		cmd = root
	}
	fmt.Fprint(stderr, cmd.UsageString())
	return ExitUsage
}
