package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/RowanDark/cipherdeck/internal/cipher"
	"github.com/RowanDark/cipherdeck/internal/logging"
)

func newChainCmd(a *app) *cobra.Command {
	var (
		steps    []string
		file     string
		reversed bool
	)
	cmd := &cobra.Command{
		Use:   "chain [text...]",
		Short: "Run text through a sequence of schemes",
		Long: `Run text through a sequence of schemes, either given inline with --step or
loaded from a YAML pipeline file:

  name: double
  steps:
    - scheme: caesar
      direction: encode
      params: {shift: 5}
    - scheme: base64
      direction: encode

--reverse undoes a pipeline by running the steps backwards with each
direction flipped.`,
	}
	pf := addParamFlags(cmd)
	cmd.Flags().StringArrayVarP(&steps, "step", "s", nil, "Step as scheme[:encode|decode], repeatable")
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML pipeline definition")
	cmd.Flags().BoolVar(&reversed, "reverse", false, "Run the inverse pipeline")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		var pipeline *cipher.Pipeline
		switch {
		case file != "" && len(steps) > 0:
			return usagef("--step and --file are mutually exclusive")
		case file != "":
			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read pipeline: %w", err)
			}
			pipeline, err = cipher.ParsePipeline(data)
			if err != nil {
				return err
			}
		case len(steps) > 0:
			params, err := pf.params()
			if err != nil {
				return err
			}
			pipeline = &cipher.Pipeline{}
			for _, spec := range steps {
				step, err := cipher.ParseStep(spec)
				if err != nil {
					return err
				}
				step.Params = params
				pipeline.Steps = append(pipeline.Steps, step)
			}
		default:
			return usagef("at least one --step or a --file is required")
		}

		if reversed {
			var err error
			pipeline, err = pipeline.Reverse()
			if err != nil {
				return err
			}
		}

		text, err := readText(args, a.stdin)
		if err != nil {
			return err
		}

		requestID := logging.NewRequestID()
		out, err := pipeline.Execute(cmd.Context(), a.engine, text)
		event := logging.Event{
			RequestID: requestID,
			EventType: logging.EventPipeline,
			Outcome:   logging.OutcomeOK,
			Metadata: map[string]any{
				"name":  pipeline.Name,
				"steps": stepNames(pipeline),
				"input": text,
			},
		}
		if err != nil {
			event.Outcome = logging.OutcomeError
			event.Reason = err.Error()
			a.emit(event)
			return err
		}
		a.emit(event)
		fmt.Fprintln(a.stdout, out)
		return nil
	}
	return cmd
}

func stepNames(p *cipher.Pipeline) []string {
	names := make([]string, len(p.Steps))
	for i, s := range p.Steps {
		names[i] = s.String()
	}
	return names
}
