package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lherron/scomadm/internal/cli/appctx"
	"github.com/lherron/scomadm/internal/domain"
)

func newListUsersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-users",
		Short: "List all users, oldest first",
		Long: `Lists every user as "id | username | email | role | created_at",
ordered by creation time. Prints nothing when there are no users.`,
		Args: cobra.NoArgs,
		RunE: appctx.WithApp(appctx.DefaultOptions(), runListUsers),
	}
}

func newDeleteUserCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-user <username>",
		Short: "Delete a user by username",
		Long: `Deletes the user with exactly this username. There is no confirmation
prompt. A missing user is reported but is not an error.`,
		Args: cobra.ExactArgs(1),
		RunE: appctx.WithApp(appctx.DefaultOptions(), runDeleteUser),
	}
}

func newPromoteAdminCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "promote-admin <username>",
		Short: "Promote a user to the admin role",
		Long: `Sets the role of the user with exactly this username to admin.
Promoting a user who is already admin succeeds. A missing user is
reported but is not an error.`,
		Args: cobra.ExactArgs(1),
		RunE: appctx.WithApp(appctx.DefaultOptions(), runPromoteAdmin),
	}
}

func runListUsers(app *appctx.App, cmd *cobra.Command, args []string) error {
	users, err := app.Store.Users.List(cmd.Context())
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, userFields(u))
	}
	return app.Renderer(cmd.OutOrStdout()).Records(users, rows)
}

func runDeleteUser(app *appctx.App, cmd *cobra.Command, args []string) error {
	result, err := app.Store.Users.Delete(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), mutationMessage(result, userRemovedMessage))
	return nil
}

func runPromoteAdmin(app *appctx.App, cmd *cobra.Command, args []string) error {
	result, err := app.Store.Users.Promote(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), mutationMessage(result, userPromotedMessage))
	return nil
}

func userFields(u domain.User) []string {
	return []string{
		u.ID,
		u.Username,
		u.Email,
		string(u.Role),
		domain.FormatTimestamp(u.CreatedAt, u.CreatedAtNaive),
	}
}
