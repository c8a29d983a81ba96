package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/RowanDark/cipherdeck/internal/cipher"
	"github.com/RowanDark/cipherdeck/internal/logging"
)

var titleCaser = cases.Title(language.English)

// paramFlags binds the per-scheme parameters. Only flags set on the command
// line override the configured defaults.
type paramFlags struct {
	flags     *pflag.FlagSet
	shift     int
	key       string
	rails     int
	intensity int
	cover     string
	mode      string
	seed      uint64
}

func addParamFlags(cmd *cobra.Command) *paramFlags {
	p := &paramFlags{flags: cmd.Flags()}
	f := cmd.Flags()
	f.IntVar(&p.shift, "shift", 0, "Caesar shift")
	f.StringVar(&p.key, "key", "", "Vigenère keyword")
	f.IntVar(&p.rails, "rails", 0, "Rail fence rail count")
	f.IntVar(&p.intensity, "intensity", 0, "Zalgo intensity (1-10)")
	f.StringVar(&p.cover, "cover", "", "Cover text for invisible ink")
	f.StringVar(&p.mode, "mode", "", "Reverse mode: full, words or order")
	f.Uint64Var(&p.seed, "seed", 0, "Seed for reproducible zalgo output")
	return p
}

func (p *paramFlags) params() (cipher.Params, error) {
	var out cipher.Params
	if p.flags.Changed("shift") {
		out.Shift = p.shift
		out.Explicit = out.Explicit.With(cipher.ParamShift)
	}
	if p.flags.Changed("key") {
		out.Key = p.key
		out.Explicit = out.Explicit.With(cipher.ParamKey)
	}
	if p.flags.Changed("rails") {
		out.Rails = p.rails
		out.Explicit = out.Explicit.With(cipher.ParamRails)
	}
	if p.flags.Changed("intensity") {
		if p.intensity < cipher.MinZalgoIntensity || p.intensity > cipher.MaxZalgoIntensity {
			return cipher.Params{}, usagef("--intensity must be between %d and %d",
				cipher.MinZalgoIntensity, cipher.MaxZalgoIntensity)
		}
		out.Intensity = p.intensity
		out.Explicit = out.Explicit.With(cipher.ParamIntensity)
	}
	if p.flags.Changed("cover") {
		out.Cover = p.cover
		out.Explicit = out.Explicit.With(cipher.ParamCover)
	}
	if p.flags.Changed("mode") {
		mode, err := cipher.ParseReverseMode(p.mode)
		if err != nil {
			return cipher.Params{}, usageError{err: err}
		}
		out.Mode = mode
		out.Explicit = out.Explicit.With(cipher.ParamMode)
	}
	if p.flags.Changed("seed") {
		out.Rand = rand.New(rand.NewPCG(p.seed, p.seed))
	}
	return out, nil
}

func parseSchemeArg(name string) (cipher.Scheme, error) {
	scheme, err := cipher.ParseScheme(name)
	if err != nil {
		return "", usageError{err: err}
	}
	return scheme, nil
}

func parseDirectionArg(name string) (cipher.Direction, error) {
	dir, err := cipher.ParseDirection(name)
	if err != nil {
		return "", usageError{err: err}
	}
	return dir, nil
}

func minArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.MinimumNArgs(n)(cmd, args); err != nil {
			return usageError{err: err}
		}
		return nil
	}
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageError{err: err}
		}
		return nil
	}
}

func newTranscodeCmd(a *app, dir cipher.Direction) *cobra.Command {
	var bruteForce bool
	cmd := &cobra.Command{
		Use:   string(dir) + " <scheme> [text...]",
		Short: fmt.Sprintf("%s text with a scheme", titleCaser.String(string(dir))),
		Args:  minArgs(1),
	}
	pf := addParamFlags(cmd)
	if dir == cipher.DirectionDecode {
		cmd.Flags().BoolVar(&bruteForce, "brute-force", false, "Also list all 25 Caesar shifts")
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		scheme, err := parseSchemeArg(args[0])
		if err != nil {
			return err
		}
		params, err := pf.params()
		if err != nil {
			return err
		}
		text, err := readText(args[1:], a.stdin)
		if err != nil {
			return err
		}

		requestID := logging.NewRequestID()
		res, err := a.engine.Compute(cipher.Request{
			Scheme:    scheme,
			Direction: dir,
			Text:      text,
			Params:    params,
		})
		if err != nil {
			return err
		}
		if !res.Valid {
			a.reportRejected(requestID, scheme, dir, text, res)
			return errInvalidInput
		}

		a.emit(logging.Event{
			RequestID: requestID,
			EventType: logging.EventTranscode,
			Scheme:    string(scheme),
			Direction: string(dir),
			Outcome:   logging.OutcomeOK,
			Metadata:  map[string]any{"input": text, "output": res.Output},
		})
		fmt.Fprintln(a.stdout, res.Output)

		if bruteForce && len(res.BruteForce) > 0 {
			fmt.Fprintln(a.stdout)
			writeBruteForce(a, requestID, res.BruteForce)
		}
		return nil
	}
	return cmd
}

func (a *app) reportRejected(requestID string, scheme cipher.Scheme, dir cipher.Direction, text string, res cipher.Result) {
	a.emit(logging.Event{
		RequestID: requestID,
		EventType: logging.EventValidationRejected,
		Scheme:    string(scheme),
		Direction: string(dir),
		Outcome:   logging.OutcomeRejected,
		Metadata:  map[string]any{"input": text},
		Reason:    res.Message,
	})
	fmt.Fprintln(a.stderr, res.Message)
	if res.Suggestion != "" {
		fmt.Fprintf(a.stderr, "suggestion: %s\n", res.Suggestion)
	}
}

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <scheme> <encode|decode> [text...]",
		Short: "Check whether text is acceptable input for a scheme",
		Args:  minArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			scheme, err := parseSchemeArg(args[0])
			if err != nil {
				return err
			}
			dir, err := parseDirectionArg(args[1])
			if err != nil {
				return err
			}
			text, err := readText(args[2:], a.stdin)
			if err != nil {
				return err
			}

			v, err := cipher.Validate(scheme, dir, text)
			if err != nil {
				return err
			}
			if !v.Valid {
				a.reportRejected(logging.NewRequestID(), scheme, dir, text, cipher.Result{
					Message:    cipher.InvalidInputMessage(scheme, dir),
					Suggestion: v.Suggestion,
				})
				return errInvalidInput
			}
			fmt.Fprintln(a.stdout, "valid")
			return nil
		},
	}
}

func newBruteForceCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "bruteforce [text...]",
		Short: "List every Caesar shift of a ciphertext",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(args, a.stdin)
			if err != nil {
				return err
			}
			writeBruteForce(a, logging.NewRequestID(), cipher.BruteForce(text))
			return nil
		},
	}
}

func writeBruteForce(a *app, requestID string, entries []cipher.BruteForceEntry) {
	a.emit(logging.Event{
		RequestID: requestID,
		EventType: logging.EventBruteForce,
		Scheme:    string(cipher.SchemeCaesar),
		Direction: string(cipher.DirectionDecode),
		Outcome:   logging.OutcomeOK,
		Metadata:  map[string]any{"candidates": len(entries)},
	})
	for _, e := range entries {
		fmt.Fprintf(a.stdout, "%2d  %s\n", e.Shift, e.Result)
	}
}
