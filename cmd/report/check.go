package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"guestcomplaints/internal/files"
	"guestcomplaints/internal/validation"
	"guestcomplaints/pkg/contracts/domain"
)

func newCheckCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the input files and print what they contain",
		Long:  `Checks that every configured workbook and the suggestion table exist and are readable, then loads the workbooks and prints the records per location and the available months.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts)
		},
	}
}

func runCheck(cmd *cobra.Command, opts *options) error {
	ctx := commandContext(cmd)

	env, err := setup(cmd, opts)
	if err != nil {
		return err
	}

	validator := validation.NewFileValidator(env.logger)
	sources := env.services.Sources.Sources()
	if err := errors.Join(
		validator.ValidateSources(sources),
		validator.ValidateFile(env.paths.DataFile(env.cfg.Inputs.SuggestionsFile)),
	); err != nil {
		return err
	}

	ds, err := env.services.Sources.Get(ctx)
	if err != nil {
		return err
	}
	selectors, err := env.services.Complaints.Options(ctx, domain.Filter{})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	configured := make(map[string]bool, len(sources.Sources))
	for _, src := range sources.Sources {
		configured[filepath.Clean(src.Path)] = true
		fmt.Fprintf(out, "%s: %s\n", src.Location, src.Path)
	}

	workbooks, err := files.NewDiscovery(env.paths.DataDir).FindExcelFiles(".")
	if err != nil {
		return err
	}
	for _, wb := range workbooks {
		if !configured[filepath.Clean(wb.Path)] {
			fmt.Fprintf(out, "Unused workbook: %s\n", wb.Name)
		}
	}

	locations := make([]string, 0, len(ds.PerLocation))
	for loc := range ds.PerLocation {
		locations = append(locations, loc)
	}
	sort.Strings(locations)
	for _, loc := range locations {
		fmt.Fprintf(out, "%s: %d records\n", loc, ds.PerLocation[loc])
	}

	fmt.Fprintf(out, "Months: %v\n", selectors.Months)
	fmt.Fprintf(out, "Units: %d\n", len(selectors.Units))
	fmt.Fprintf(out, "Total: %d records\n", len(ds.Records))
	return nil
}
