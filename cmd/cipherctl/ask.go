package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/RowanDark/cipherdeck/internal/assistant"
	"github.com/RowanDark/cipherdeck/internal/logging"
)

func newAskCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ask [message...]",
		Short: "Ask the cipher assistant a question",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && (a.stdin == nil || isTerminal(a.stdin)) {
				fmt.Fprintln(a.stdout, assistant.Greeting)
				return nil
			}
			message, err := readText(args, a.stdin)
			if err != nil {
				return err
			}
			reply, rule := assistant.New().Match(message)
			a.emit(logging.Event{
				RequestID: logging.NewRequestID(),
				EventType: logging.EventAssistant,
				Outcome:   logging.OutcomeInfo,
				Metadata:  map[string]any{"rule": dash(rule)},
			})
			fmt.Fprintln(a.stdout, reply)
			return nil
		},
	}
}
