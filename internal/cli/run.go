package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/tracetm"
	"github.com/aretw0/tracetm/internal/presentation/trace"
	"github.com/aretw0/tracetm/internal/presentation/tui"
	"github.com/aretw0/tracetm/pkg/domain"
	"github.com/aretw0/tracetm/pkg/observability"
	"github.com/aretw0/tracetm/pkg/runner"
)

// RunOptions configures a tracing session.
type RunOptions struct {
	Program     string
	MachinePath string
	Inputs      []string
	MaxSteps    int
	Output      string
	Parallelism int
	Store       StoreOptions

	// TraceDir receives trace_<machine>.txt. Empty means the working directory.
	TraceDir string
	NoTrace  bool

	Debug    bool
	LogLevel string
}

// Summary counts the outcomes of a session.
type Summary struct {
	Accepted int
	Rejected int
	Stopped  int
	Errors   int
}

// Execute simulates every input of opts and reports to stdout and the trace file.
// Per-input errors are reported, not returned.
func Execute(ctx context.Context, opts RunOptions, stdout io.Writer) (*Summary, error) {
	logger := CreateLogger(opts.Debug, opts.LogLevel)
	if err := checkRunOptions(&opts); err != nil {
		return nil, err
	}

	traceOut := io.Discard
	if !opts.NoTrace {
		f, err := createTraceFile(opts)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		traceOut = f
	}

	header := trace.Header{
		Program:     opts.Program,
		MachineFile: opts.MachinePath,
		Inputs:      opts.Inputs,
		MaxSteps:    opts.MaxSteps,
	}
	if err := trace.WriteHeader(traceOut, header); err != nil {
		return nil, fmt.Errorf("failed to write trace: %w", err)
	}

	engine, err := tracetm.New(opts.MachinePath,
		tracetm.WithLogger(logger),
		tracetm.WithLifecycleHooks(observability.LoggingHooks(logger)),
	)
	if err != nil {
		if errors.Is(err, domain.ErrMachineNotFound) {
			_ = trace.WriteMachineNotFound(traceOut)
		}
		return nil, err
	}

	store, closeStore, err := OpenStore(ctx, opts.Store)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warn("failed to close store", "error", err)
		}
	}()

	tty := isTerminal(stdout)
	if opts.Output == OutputPretty && tty {
		tui.PrintBanner(stdout)
	}

	summary := &Summary{}
	handler := runner.MultiHandler(
		runner.NewTextHandler(traceOut),
		stdoutHandler(opts.Output, stdout, tty, logger),
		runner.HandlerFunc(func(ctx context.Context, res runner.Result) error {
			summary.add(res)
			return nil
		}),
	)

	runOpts := []runner.Option{
		runner.WithHandler(handler),
		runner.WithLogger(logger),
	}
	if opts.Parallelism > 0 {
		runOpts = append(runOpts, runner.WithParallelism(opts.Parallelism))
	}
	if store != nil {
		runOpts = append(runOpts, runner.WithStore(store))
	}

	if _, err := runner.NewRunner(engine, runOpts...).Run(ctx, opts.Inputs, opts.MaxSteps); err != nil {
		return nil, err
	}
	return summary, nil
}

func checkRunOptions(opts *RunOptions) error {
	if opts.MachinePath == "" {
		return errors.New("machine file is required")
	}
	if len(opts.Inputs) == 0 {
		return errors.New("at least one input string is required (use '_' for the empty string)")
	}
	if opts.MaxSteps < 0 {
		return fmt.Errorf("%w: %d", domain.ErrNegativeStepBound, opts.MaxSteps)
	}
	if opts.Program == "" {
		opts.Program = "tracetm"
	}
	switch opts.Output {
	case "":
		opts.Output = OutputText
	case OutputText, OutputJSON, OutputPretty:
	default:
		return fmt.Errorf("unknown output %q (want text, json or pretty)", opts.Output)
	}
	return nil
}

func createTraceFile(opts RunOptions) (*os.File, error) {
	dir := opts.TraceDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create trace dir: %w", err)
	}
	f, err := os.Create(filepath.Join(dir, trace.FileName(opts.MachinePath)))
	if err != nil {
		return nil, fmt.Errorf("failed to create trace file: %w", err)
	}
	return f, nil
}

// stdoutHandler picks the stdout format. Pretty output is only rendered through
// glamour on a terminal; redirected output gets the raw markdown.
func stdoutHandler(mode string, w io.Writer, tty bool, logger *slog.Logger) runner.Handler {
	switch mode {
	case OutputJSON:
		return runner.NewJSONHandler(w)
	case OutputPretty:
		render := func(md string) (string, error) { return md, nil }
		if tty {
			render = tui.NewRenderer()
		}
		return runner.HandlerFunc(func(ctx context.Context, res runner.Result) error {
			out, err := render(tui.FormatResult(res.Input, res.Verdict, res.Err))
			if err != nil {
				logger.Debug("markdown render failed", "error", err)
				out = tui.FormatResult(res.Input, res.Verdict, res.Err)
			}
			_, err = io.WriteString(w, out)
			return err
		})
	default:
		return runner.NewTextHandler(w)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && tui.IsTerminal(f)
}

func (s *Summary) add(res runner.Result) {
	switch {
	case res.Err != nil:
		s.Errors++
	case res.Verdict.Kind == domain.VerdictAccepted:
		s.Accepted++
	case res.Verdict.Kind == domain.VerdictRejected:
		s.Rejected++
	default:
		s.Stopped++
	}
}

// String renders the summary with coloured labels.
func (s *Summary) String() string {
	return fmt.Sprintf("%s %d  %s %d  %s %d  %s %d",
		tui.VerdictLabel("accepted"), s.Accepted,
		tui.VerdictLabel("rejected"), s.Rejected,
		tui.VerdictLabel("step_limit_exceeded"), s.Stopped,
		tui.VerdictLabel("error"), s.Errors,
	)
}
