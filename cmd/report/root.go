package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"guestcomplaints/internal/app"
	"guestcomplaints/internal/config"
	"guestcomplaints/internal/dataprocessing"
	"guestcomplaints/internal/infrastructure"
	"guestcomplaints/internal/validation"
	"guestcomplaints/pkg/contracts"
	"guestcomplaints/pkg/contracts/domain"
)

// options holds the flags shared by every command.
type options struct {
	configFile string
	envFile    string
	workbook   string
	locations  []string

	months   []string
	location string
	units    []string
	topics   []string

	out    string
	render bool
}

func (o *options) filter() domain.Filter {
	return domain.Filter{
		Months:   o.months,
		Location: o.location,
		Units:    o.units,
		Topics:   o.topics,
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:     "report",
		Short:   "Generate the guest complaint topic report",
		Long:    `Loads the complaint workbooks, classifies each comment into topics and writes the Markdown report for the selected months, location, units and topics.`,
		Version: contracts.Version,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, opts)
		},
		SilenceUsage: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configFile, "config", "", "YAML configuration file")
	pf.StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before the configuration")
	pf.StringVar(&opts.workbook, "workbook", "", "single complaint workbook (overrides configuration)")
	pf.StringArrayVar(&opts.locations, "locations", nil, "Label=path workbook per location, repeatable (overrides configuration)")
	pf.StringSliceVar(&opts.months, "month", nil, "month sheet to include, repeatable or comma separated")
	pf.StringVar(&opts.location, "location", "", `location to include ("Todas" for all)`)
	pf.StringArrayVar(&opts.units, "unit", nil, "unit to include, repeatable")
	pf.StringSliceVar(&opts.topics, "topic", nil, "topic to include, repeatable or comma separated")
	pf.BoolVar(&opts.render, "render", false, "render Markdown for the terminal")

	cmd.Flags().StringVarP(&opts.out, "out", "o", config.ReportFileName, `report file, "-" for stdout`)

	cmd.SetVersionTemplate(contracts.GetVersionString() + "\n")
	cmd.AddCommand(newTableCmd(opts), newCheckCmd(opts))
	return cmd
}

// environment is the resolved configuration and services of one command run.
type environment struct {
	cfg      *config.Config
	paths    *config.Paths
	services *app.ServiceContainer
	logger   *slog.Logger
}

// setup loads configuration and builds the complaint services. Logs go to
// stderr so stdout only carries command output.
func setup(cmd *cobra.Command, opts *options) (*environment, error) {
	if err := godotenv.Load(opts.envFile); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read %s: %w", opts.envFile, err)
	}
	if opts.configFile != "" {
		os.Setenv(config.EnvPrefix+"_CONFIG_FILE", opts.configFile)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if opts.workbook != "" {
		cfg.Inputs.Workbook = opts.workbook
		cfg.Inputs.Locations = nil
		cfg.Inputs.DiscoverLocations = false
	}
	if len(opts.locations) > 0 {
		cfg.Inputs.Locations = opts.locations
	}

	logger, err := infrastructure.NewLogger(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	paths, err := cfg.ResolvePaths()
	if err != nil {
		return nil, err
	}

	svc, err := app.NewServices(cfg, paths, logger, nil, nil)
	if err != nil {
		return nil, err
	}
	return &environment{cfg: cfg, paths: paths, services: svc, logger: logger}, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func runReport(cmd *cobra.Command, opts *options) error {
	ctx := commandContext(cmd)

	env, err := setup(cmd, opts)
	if err != nil {
		return err
	}

	report, err := env.services.Complaints.Report(ctx, opts.filter())
	if err != nil {
		return err
	}

	if opts.out == "-" {
		return writeMarkdown(cmd.OutOrStdout(), report.Markdown, opts.render)
	}

	if err := validation.NewFileValidator(env.logger).ValidateOutputDirectory(filepath.Dir(opts.out)); err != nil {
		return err
	}

	summarizer := dataprocessing.NewSummarizer(env.logger, dataprocessing.DefaultSummarizerConfig())
	if err := summarizer.WriteMarkdown(ctx, opts.out, report); err != nil {
		return err
	}

	if opts.render {
		return writeMarkdown(cmd.OutOrStdout(), report.Markdown, true)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s (%d topics)\n", opts.out, len(report.Ranked))
	return nil
}

// writeMarkdown prints md, rendered for the terminal when render is set.
func writeMarkdown(w io.Writer, md string, render bool) error {
	if !render {
		_, err := io.WriteString(w, md)
		return err
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	out, err := renderer.Render(md)
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}
