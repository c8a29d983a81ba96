// Package batch applies one scheme to every line of a multi-line input.
// Lines are transcoded concurrently and reported in input order.
package batch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/RowanDark/cipherdeck/internal/cipher"
	"github.com/RowanDark/cipherdeck/internal/logging"
)

const defaultWorkers = 4

var ErrNilEngine = errors.New("batch: engine is required")

// Job describes a batch run.
type Job struct {
	ID        string
	Scheme    cipher.Scheme
	Direction cipher.Direction
	Params    cipher.Params
	// Workers bounds concurrency. Values below one use the default.
	Workers int
}

// Line is the outcome for one input line.
type Line struct {
	Number int           `json:"line"`
	Input  string        `json:"input"`
	Result cipher.Result `json:"result"`
}

// Report collects the per-line results of a job.
type Report struct {
	JobID    string        `json:"job_id"`
	Scheme   cipher.Scheme `json:"scheme"`
	Lines    []Line        `json:"lines"`
	Duration time.Duration `json:"duration_ns"`
}

// Output joins the line outputs with newlines. Rejected lines contribute an
// empty line so positions stay aligned with the input.
func (r Report) Output() string {
	outs := make([]string, len(r.Lines))
	for i, l := range r.Lines {
		outs[i] = l.Result.Output
	}
	return strings.Join(outs, "\n")
}

// Failures lists the lines whose input was rejected.
func (r Report) Failures() []Line {
	var out []Line
	for _, l := range r.Lines {
		if !l.Result.Valid {
			out = append(out, l)
		}
	}
	return out
}

// Option configures Process.
type Option func(*options)

type options struct {
	logger *logging.Logger
}

// WithLogger emits a batch_line event per line and a batch_complete summary.
func WithLogger(l *logging.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// SplitLines splits input on newlines and trims each line. Blank input
// yields no lines.
func SplitLines(input string) []string {
	if strings.TrimSpace(input) == "" {
		return nil
	}
	lines := strings.Split(input, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return lines
}

// Process transcodes every line of input with the job's scheme and
// direction. An unknown scheme or direction fails the whole job before any
// line runs; rejected lines are recorded in the report.
func Process(ctx context.Context, engine *cipher.Engine, job Job, input string, opts ...Option) (Report, error) {
	if engine == nil {
		return Report{}, ErrNilEngine
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if job.ID == "" {
		job.ID = logging.NewRequestID()
	}
	if _, _, err := engine.Resolve(cipher.Request{Scheme: job.Scheme, Direction: job.Direction, Params: job.Params}); err != nil {
		return Report{}, fmt.Errorf("batch %s: %w", job.ID, err)
	}

	started := time.Now()
	lines := SplitLines(input)
	results := make([]Line, len(lines))

	workers := job.Workers
	if workers < 1 {
		workers = defaultWorkers
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, line := range lines {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := engine.Compute(cipher.Request{
				Scheme:    job.Scheme,
				Direction: job.Direction,
				Text:      line,
				Params:    job.Params,
			})
			if err != nil {
				return fmt.Errorf("line %d: %w", i+1, err)
			}
			results[i] = Line{Number: i + 1, Input: line, Result: res}
			o.emitLine(job, results[i])
			return nil
		})
	}
	err := g.Wait()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return Report{}, ctxErr
	}
	if err != nil {
		return Report{}, fmt.Errorf("batch %s: %w", job.ID, err)
	}

	report := Report{
		JobID:    job.ID,
		Scheme:   job.Scheme,
		Lines:    results,
		Duration: time.Since(started),
	}
	o.emitComplete(job, report)
	return report, nil
}

func (o options) emitLine(job Job, l Line) {
	if o.logger == nil {
		return
	}
	outcome := logging.OutcomeOK
	if !l.Result.Valid {
		outcome = logging.OutcomeRejected
	}
	_ = o.logger.Emit(logging.Event{
		RequestID: job.ID,
		EventType: logging.EventBatchLine,
		Scheme:    string(job.Scheme),
		Direction: string(job.Direction),
		Outcome:   outcome,
		Metadata: map[string]any{
			"line":  l.Input,
			"index": l.Number,
		},
		Reason: l.Result.Message,
	})
}

func (o options) emitComplete(job Job, r Report) {
	if o.logger == nil {
		return
	}
	_ = o.logger.Emit(logging.Event{
		RequestID: job.ID,
		EventType: logging.EventBatchComplete,
		Scheme:    string(job.Scheme),
		Direction: string(job.Direction),
		Outcome:   logging.OutcomeInfo,
		Metadata: map[string]any{
			"lines":       len(r.Lines),
			"failures":    len(r.Failures()),
			"duration_ms": r.Duration.Milliseconds(),
		},
	})
}
