package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"guestcomplaints/internal/exporter"
)

func newTableCmd(opts *options) *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print or export the filtered complaint table",
		Long:  `Prints the complaint table for the selected filters, sorted by review date. The table can be written as Markdown, CSV or XLSX.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTable(cmd, opts, format, out)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "markdown", "output format: markdown, csv or xlsx")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (stdout when empty; required for xlsx)")
	return cmd
}

func runTable(cmd *cobra.Command, opts *options, format, out string) error {
	switch format {
	case "markdown", "csv":
	case "xlsx":
		if out == "" {
			return fmt.Errorf("--out is required for xlsx output")
		}
	default:
		return fmt.Errorf("unsupported format %q", format)
	}

	ctx := commandContext(cmd)

	env, err := setup(cmd, opts)
	if err != nil {
		return err
	}

	rows, err := env.services.Complaints.Table(ctx, opts.filter())
	if err != nil {
		return err
	}

	switch format {
	case "xlsx":
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", out, err)
		}
		if err := exporter.WriteTableXLSX(f, rows); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d rows written to %s\n", len(rows), out)

	case "csv":
		if out == "" {
			return exporter.WriteTable(cmd.OutOrStdout(), rows)
		}
		path, err := exporter.NewCSVWriter(nil).WriteTableFile(out, rows)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d rows written to %s\n", len(rows), path)

	default:
		var buf bytes.Buffer
		if err := exporter.WriteTableMarkdown(&buf, rows); err != nil {
			return err
		}
		if out != "" {
			return os.WriteFile(out, buf.Bytes(), 0644)
		}
		return writeMarkdown(cmd.OutOrStdout(), buf.String(), opts.render)
	}

	return nil
}
