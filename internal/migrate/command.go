package migrate

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/sdweddings/backend/internal/cms"
	"github.com/sdweddings/backend/internal/config"
	"github.com/sdweddings/backend/internal/logger"
	"github.com/sdweddings/backend/internal/repo"
)

// Runner is one migration job.
type Runner interface {
	Run(ctx context.Context) (Report, error)
}

var (
	_ Runner = (*VendorMigrator)(nil)
	_ Runner = (*VenueMigrator)(nil)
)

// Command is the process wrapper shared by the migration binaries: flag
// parsing, configuration, logging and the exit code.
type Command struct {
	Name      string
	NewRunner func(client cms.Client, log *zap.Logger, opts Options) Runner

	// NewClient and Logger replace the Sanity client and the configured
	// logger; both are nil in production.
	NewClient func(cfg cms.Config) cms.Client
	Logger    *zap.Logger
}

// VendorCommand migrates inline vendor entries.
func VendorCommand() Command {
	return Command{
		Name: "migrate-vendors",
		NewRunner: func(client cms.Client, log *zap.Logger, opts Options) Runner {
			return NewVendorMigrator(repo.NewVendorRepo(client), repo.NewCoupleRepo(client), log, opts)
		},
	}
}

// VenueCommand migrates legacy venue strings.
func VenueCommand() Command {
	return Command{
		Name: "migrate-venues",
		NewRunner: func(client cms.Client, log *zap.Logger, opts Options) Runner {
			return NewVenueMigrator(repo.NewVenueRepo(client), repo.NewCoupleRepo(client), log, opts)
		},
	}
}

// Main runs the command with args (without the program name) and returns
// the process exit code: 0 on success, 1 on failure, 2 on bad usage.
func (c Command) Main(ctx context.Context, args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet(c.Name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	var opts Options
	fs.BoolVar(&opts.DryRun, "dry-run", false, "log every intended write without making it")
	fs.BoolVar(&opts.Verbose, "verbose", false, "log per-entry reuse and skip decisions")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "%s: unexpected arguments: %v\n", c.Name, fs.Args())
		fs.Usage()
		return 2
	}

	cfg, err := config.LoadMigration(opts.DryRun)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", c.Name, err)
		return 1
	}

	log := c.Logger
	if log == nil {
		log, err = logger.New(cfg.LogLevel, cfg.LogFormat, c.Name)
		if err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", c.Name, err)
			return 1
		}
		defer func() { _ = log.Sync() }()
	}

	newClient := c.NewClient
	if newClient == nil {
		newClient = func(cfg cms.Config) cms.Client { return cms.NewSanity(cfg) }
	}
	// Migrations must see every write they made, so never read from the CDN.
	cfg.CMS.UseCDN = false

	log.Info("migration starting",
		zap.String("project", cfg.CMS.ProjectID),
		zap.String("dataset", cfg.CMS.Dataset),
		zap.Bool("dry_run", opts.DryRun),
	)
	report, err := c.NewRunner(newClient(cfg.CMS), log, opts).Run(ctx)
	if err != nil {
		log.Error("migration failed", append(report.Fields(), zap.Error(err))...)
		fmt.Fprintf(stderr, "%s: %+v\n", c.Name, err)
		return 1
	}
	log.Info("migration finished", append(report.Fields(), zap.Bool("dry_run", opts.DryRun))...)
	return 0
}
