package main

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"github.com/ndewijer/pnl-dashboard/internal/render"
)

type skippedCmd struct{}

func (*skippedCmd) Name() string     { return "skipped" }
func (*skippedCmd) Synopsis() string { return "list source rows dropped during cleaning" }
func (*skippedCmd) Usage() string {
	return `pnl skipped

  Lists rows whose date or gain could not be parsed, with their line number.
`
}

func (*skippedCmd) SetFlags(*flag.FlagSet) {}

func (*skippedCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession()
	if err != nil {
		return fail(err)
	}
	defer s.close()

	table, err := s.loader.Load(ctx)
	if err != nil {
		return fail(err)
	}

	printMarkdown(render.SkippedMarkdown(table.Skipped))
	return subcommands.ExitSuccess
}
