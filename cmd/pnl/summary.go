package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/ndewijer/pnl-dashboard/internal/api/request"
	"github.com/ndewijer/pnl-dashboard/internal/render"
)

type summaryCmd struct {
	from string
	to   string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display performance metrics for a date range" }
func (*summaryCmd) Usage() string {
	return `pnl summary [-from YYYY-MM-DD] [-to YYYY-MM-DD]

  Displays ROI, win rate and per-day statistics. Both bounds default to
  the first and last entry.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "first day of the range")
	f.StringVar(&c.to, "to", "", "last day of the range")
}

func (c *summaryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	start, end, err := request.ParseDateRange(c.from, c.to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	s, err := openSession()
	if err != nil {
		return fail(err)
	}
	defer s.close()

	summary, err := s.service.Summary(ctx, start, end)
	if err != nil {
		return fail(err)
	}

	printMarkdown(render.SummaryMarkdown(summary, s.cfg.Dashboard.Currency))
	return subcommands.ExitSuccess
}
