package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"requestScope/internal/codec"
)

func runSignature(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	schemaFile, _ := cmd.Flags().GetString("schema")
	if schemaFile != "" {
		schema, err := codec.LoadSchemaFile(schemaFile)
		if err != nil {
			return err
		}
		sig, err := codec.Compile(schema)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, sig)
		return nil
	}

	formats, err := codec.CompileFormats()
	if err != nil {
		return err
	}
	header, err := codec.Compile(codec.HeaderSchema())
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	rows := []struct{ name, sig string }{
		{"header", header},
		{"withdraw", formats.Withdraw},
		{"poolMove", formats.PoolMove},
		{"delegate", formats.Delegate},
		{"accountMove", formats.AccountMove},
		{"settle", formats.Settle},
	}
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\n", row.name, row.sig)
	}
	return tw.Flush()
}
