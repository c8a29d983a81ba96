package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RowanDark/cipherdeck/internal/cipher"
	"github.com/RowanDark/cipherdeck/internal/logging"
)

func newDetectCmd(a *app) *cobra.Command {
	var decode bool
	cmd := &cobra.Command{
		Use:   "detect [text...]",
		Short: "Guess which scheme produced a piece of text",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(args, a.stdin)
			if err != nil {
				return err
			}

			detections, err := cipher.NewDetector().Detect(cmd.Context(), text)
			if err != nil {
				return usageError{err: err}
			}
			a.emit(logging.Event{
				RequestID: logging.NewRequestID(),
				EventType: logging.EventDetect,
				Outcome:   logging.OutcomeInfo,
				Metadata:  map[string]any{"input": text, "candidates": len(detections)},
			})
			if len(detections) == 0 {
				fmt.Fprintln(a.stdout, "no known encoding detected")
				return nil
			}

			if !decode {
				w := newTableWriter(a.stdout, 10, 6)
				w.row("SCHEME", "SCORE", "REASONING")
				for _, d := range detections {
					w.row(string(d.Scheme), fmt.Sprintf("%.2f", d.Confidence), d.Reasoning)
				}
				return nil
			}

			decoded, err := cipher.DecodeAll(cmd.Context(), a.engine, text)
			if err != nil {
				return err
			}
			w := newTableWriter(a.stdout, 10, 6)
			w.row("SCHEME", "SCORE", "DECODED")
			for _, d := range decoded {
				w.row(string(d.Detection.Scheme), fmt.Sprintf("%.2f", d.Detection.Confidence), d.Decoded)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&decode, "decode", "d", false, "Decode the text with every detected scheme")
	return cmd
}
