package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RowanDark/cipherdeck/internal/batch"
)

func newBatchCmd(a *app) *cobra.Command {
	var (
		file    string
		workers int
	)
	cmd := &cobra.Command{
		Use:   "batch <scheme> <encode|decode>",
		Short: "Transcode every line of a file or stdin",
		Args:  exactArgs(2),
	}
	pf := addParamFlags(cmd)
	cmd.Flags().StringVarP(&file, "file", "f", "", "Input file (default: stdin)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Concurrent workers (default: batch.workers from config)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		scheme, err := parseSchemeArg(args[0])
		if err != nil {
			return err
		}
		dir, err := parseDirectionArg(args[1])
		if err != nil {
			return err
		}
		params, err := pf.params()
		if err != nil {
			return err
		}
		input, err := readSource(file, a.stdin)
		if err != nil {
			return err
		}
		if !cmd.Flags().Changed("workers") {
			workers = a.cfg.Batch.Workers
		}

		report, err := batch.Process(cmd.Context(), a.engine, batch.Job{
			Scheme:    scheme,
			Direction: dir,
			Params:    params,
			Workers:   workers,
		}, input, batch.WithLogger(a.logger.WithComponent("batch")))
		if err != nil {
			return err
		}
		if len(report.Lines) > 0 {
			fmt.Fprintln(a.stdout, report.Output())
		}

		failures := report.Failures()
		for _, l := range failures {
			fmt.Fprintf(a.stderr, "line %d: %s\n", l.Number, l.Result.Message)
		}
		if len(failures) > 0 {
			return errInvalidInput
		}
		return nil
	}
	return cmd
}
