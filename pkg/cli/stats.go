package cli

import (
	"context"
	"sort"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/caseflow-lab/doctrack/pkg/cli/config"
	"github.com/caseflow-lab/doctrack/pkg/domain/types"
	"github.com/caseflow-lab/doctrack/pkg/usecase"
	"github.com/caseflow-lab/doctrack/pkg/utils/logging"
)

func cmdStats() *cli.Command {
	var ownerID string
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "owner",
			Usage:       "Owner identity to summarize",
			Required:    true,
			Sources:     cli.EnvVars("DOCTRACK_OWNER"),
			Destination: &ownerID,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:  "stats",
		Usage: "Print caseload statistics for an owner",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			uc := usecase.New(repo)

			stats, err := uc.Case.Stats(ctx, ownerID)
			if err != nil {
				return goerr.Wrap(err, "failed to compute stats", goerr.V("owner", ownerID))
			}

			title := color.New(color.FgHiWhite, color.Bold)
			label := color.New(color.FgCyan)
			warn := color.New(color.FgYellow, color.Bold)
			alert := color.New(color.FgRed, color.Bold)

			title.Printf("Caseload for %s\n\n", ownerID)
			label.Printf("  Active cases:      ")
			color.New(color.FgHiWhite).Printf("%d\n", stats.Active)

			statuses := make([]types.CaseStatus, 0, len(stats.ByStatus))
			for status := range stats.ByStatus {
				statuses = append(statuses, status)
			}
			sort.Slice(statuses, func(i, j int) bool { return statuses[i] < statuses[j] })
			for _, status := range statuses {
				label.Printf("    %-16s ", status.String())
				color.New(color.FgHiWhite).Printf("%d\n", stats.ByStatus[status])
			}

			label.Printf("  Due soon:          ")
			warn.Printf("%d\n", stats.DueSoon)
			label.Printf("  Overdue:           ")
			alert.Printf("%d\n", stats.Overdue)
			label.Printf("  Open pendencies:   ")
			warn.Printf("%d\n", stats.TotalPendencies)

			return nil
		},
	}
}
