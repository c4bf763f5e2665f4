package cli

import (
	"github.com/spf13/cobra"

	"github.com/lherron/scomadm/internal/cli/appctx"
	"github.com/lherron/scomadm/internal/domain"
)

func newListCommentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-comments <slug>",
		Short: "List the 20 most recent comments on a page",
		Long: `Lists comments whose page slug equals <slug> as
"id | author | created_at | message", newest first, at most 20 rows.`,
		Args: cobra.ExactArgs(1),
		RunE: appctx.WithApp(appctx.DefaultOptions(), runListComments),
	}
}

func runListComments(app *appctx.App, cmd *cobra.Command, args []string) error {
	comments, err := app.Store.Comments.ListBySlug(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(comments))
	for _, c := range comments {
		rows = append(rows, commentFields(c))
	}
	return app.Renderer(cmd.OutOrStdout()).Records(comments, rows)
}

func commentFields(c domain.Comment) []string {
	return []string{
		c.ID,
		c.Author,
		domain.FormatTimestamp(c.CreatedAt, c.CreatedAtNaive),
		c.Message,
	}
}
