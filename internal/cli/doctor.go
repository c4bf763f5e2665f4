package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lherron/scomadm/internal/cli/appctx"
	"github.com/lherron/scomadm/internal/db"
	"github.com/lherron/scomadm/internal/render"
)

type checkResult struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // "ok", "error"
	Message string `json:"message,omitempty"`
}

type doctorReport struct {
	Endpoint      string        `json:"endpoint"`
	Checks        []checkResult `json:"checks"`
	Errors        int           `json:"errors"`
	OverallStatus string        `json:"overall_status"`
}

// tableChecks are read-only statements proving a table and its columns exist
var tableChecks = []struct {
	name  string
	query string
}{
	{"users table", "SELECT id, username, email, role, created_at FROM users LIMIT 0"},
	{"comments table", "SELECT id, author, message, page_slug, created_at FROM comments LIMIT 0"},
}

func newDoctorCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check connectivity and the tables scomadm reads",
		Long: `Connects with the configured DSN and checks that the users and comments
tables are readable with the expected columns. Never writes. Exits
non-zero when any check fails.`,
		Args: cobra.NoArgs,
		RunE: appctx.WithApp(appctx.ConfigOnly(), func(app *appctx.App, cmd *cobra.Command, args []string) error {
			report := runChecks(app, cmd)

			if asJSON {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				if err := encoder.Encode(report); err != nil {
					return err
				}
			} else {
				rows := make([][]string, 0, len(report.Checks))
				for _, c := range report.Checks {
					rows = append(rows, []string{c.Name, c.Status, c.Message})
				}
				r := render.NewRenderer(cmd.OutOrStdout(), render.Options{Format: render.FormatTable})
				if err := r.RenderTable([]string{"Check", "Status", "Message"}, rows); err != nil {
					return err
				}
			}

			if report.Errors > 0 {
				return fmt.Errorf("%d check(s) failed", report.Errors)
			}
			return nil
		}),
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	return cmd
}

func runChecks(app *appctx.App, cmd *cobra.Command) *doctorReport {
	report := &doctorReport{OverallStatus: "ok"}
	add := func(c checkResult) {
		if c.Status == "error" {
			report.Errors++
			report.OverallStatus = "error"
		}
		report.Checks = append(report.Checks, c)
	}

	database, err := db.Open(cmd.Context(), app.Config.Database, app.Log)
	if err != nil {
		var connErr *db.ConnectionError
		if errors.As(err, &connErr) {
			report.Endpoint = connErr.Endpoint
		}
		add(checkResult{Name: "connection", Status: "error", Message: err.Error()})
		return report
	}
	defer database.Close()

	report.Endpoint = database.Endpoint()
	add(checkResult{Name: "connection", Status: "ok", Message: string(database.Dialect())})

	for _, p := range tableChecks {
		rows, err := database.QueryContext(cmd.Context(), p.query)
		if err != nil {
			add(checkResult{Name: p.name, Status: "error", Message: err.Error()})
			continue
		}
		rows.Close()
		add(checkResult{Name: p.name, Status: "ok"})
	}

	return report
}
