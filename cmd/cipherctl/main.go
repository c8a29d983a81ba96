package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/RowanDark/cipherdeck/internal/cipher"
	"github.com/RowanDark/cipherdeck/internal/config"
	"github.com/RowanDark/cipherdeck/internal/logging"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// errInvalidInput marks a run whose input was rejected. The rejection has
// already been reported when it is returned.
var errInvalidInput = errors.New("invalid input")

// usageError wraps mistakes in how the command was invoked.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return usageError{err: fmt.Errorf(format, args...)}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}
	defer a.close()

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}
	if !errors.Is(err, errInvalidInput) {
		fmt.Fprintf(stderr, "cipherctl: %v\n", err)
	}
	return exitCode(err)
}

func exitCode(err error) int {
	var ue usageError
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &ue),
		errors.Is(err, cipher.ErrUnknownScheme),
		errors.Is(err, cipher.ErrUnknownDirection),
		errors.Is(err, cipher.ErrUnknownReverseMode),
		errors.Is(err, cipher.ErrMalformedStep),
		strings.HasPrefix(err.Error(), "unknown command"),
		strings.HasPrefix(err.Error(), "unknown flag"):
		return exitUsage
	default:
		return exitFailure
	}
}

// app holds the state shared by every subcommand. It is populated by the
// root command's pre-run hook.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	configPath string
	verbose    bool
	logFile    string

	cfg    config.Config
	engine *cipher.Engine
	logger *logging.Logger
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "cipherctl",
		Short: "Encode, decode and identify classical ciphers and text encodings",
		Long: `cipherctl transcodes text with fifteen schemes: a1z26, emoji, base64, morse,
binary, hex, caesar, url, atbash, vigenere, railfence, reverse, leet, zalgo
and invisible.

Text is taken from the arguments or, when none are given, from piped stdin:
  cipherctl encode morse sos
  echo "8.9" | cipherctl decode a1z26
  cipherctl chain --step caesar:encode --step base64:encode hello`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err: err}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "Path to a config file (default: ~/.cipherdeck/config.yaml and ./cipherdeck.yml)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "Write JSON events to stderr")
	pf.StringVar(&a.logFile, "log-file", "", "Append JSON events to this file")

	root.AddCommand(
		newTranscodeCmd(a, cipher.DirectionEncode),
		newTranscodeCmd(a, cipher.DirectionDecode),
		newValidateCmd(a),
		newBruteForceCmd(a),
		newBatchCmd(a),
		newChainCmd(a),
		newDetectCmd(a),
		newSchemesCmd(a),
		newTableCmd(a),
		newAskCmd(a),
	)
	return root
}

func (a *app) setup() error {
	var (
		cfg config.Config
		err error
	)
	if a.configPath != "" {
		cfg, err = config.LoadFile(a.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg
	a.engine = cipher.NewEngine(cipher.WithDefaults(cfg.Params()))

	logger, err := a.newLogger()
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	a.logger = logger
	return nil
}

func (a *app) newLogger() (*logging.Logger, error) {
	opts := []logging.Option{logging.WithoutStderr()}
	if a.verbose || a.cfg.Log.Verbose {
		opts = append(opts, logging.WithWriter(a.stderr))
	}
	path := a.logFile
	if path == "" {
		path = a.cfg.Log.File
	}
	if path != "" {
		opts = append(opts, logging.WithFile(path))
	}
	if len(opts) == 1 {
		return logging.Discard(), nil
	}
	return logging.New("cipherctl", opts...)
}

func (a *app) close() {
	if a.logger != nil {
		_ = a.logger.Close()
	}
}

func (a *app) emit(event logging.Event) {
	if a.logger == nil {
		return
	}
	_ = a.logger.Emit(event)
}
