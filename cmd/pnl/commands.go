package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/ndewijer/pnl-dashboard/internal/config"
	"github.com/ndewijer/pnl-dashboard/internal/logger"
	"github.com/ndewijer/pnl-dashboard/internal/service"
	"github.com/ndewijer/pnl-dashboard/internal/source"
)

var commands = []subcommands.Command{
	&summaryCmd{},
	&projectionCmd{},
	&skippedCmd{},
}

// session is the configured service a command works against.
type session struct {
	cfg     *config.Config
	loader  source.Loader
	service *service.DashboardService
	close   func() error
}

// openSession loads configuration and builds the dashboard service over
// the configured source. Logs go to stderr so stdout stays clean markdown.
func openSession() (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log := logger.NewWithWriter(logger.Config{Level: "warn", Pretty: true}, os.Stderr)

	loader, closeSource, err := source.New(cfg.Source, log)
	if err != nil {
		return nil, err
	}

	return &session{
		cfg:     cfg,
		loader:  loader,
		service: service.NewDashboardService(loader, cfg.Dashboard.StartingCapital, log),
		close:   closeSource,
	}, nil
}

func printMarkdown(md string) {
	out, err := glamour.Render(md, "dark")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}
