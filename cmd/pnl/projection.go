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

type projectionCmd struct {
	amount string
}

func (*projectionCmd) Name() string     { return "projection" }
func (*projectionCmd) Synopsis() string { return "project an investment over the full history" }
func (*projectionCmd) Usage() string {
	return `pnl projection [-amount n]

  Shows what an investment made at the first entry would be worth today.
  The amount defaults to DEFAULT_INVESTMENT.
`
}

func (c *projectionCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.amount, "amount", "", "amount invested, e.g. 50,000,000")
}

func (c *projectionCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession()
	if err != nil {
		return fail(err)
	}
	defer s.close()

	amount, err := request.ParseAmount(c.amount, s.cfg.Dashboard.DefaultInvestment)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	projection, err := s.service.Projection(ctx, amount)
	if err != nil {
		return fail(err)
	}

	printMarkdown(render.ProjectionMarkdown(projection, s.cfg.Dashboard.Currency))
	return subcommands.ExitSuccess
}
