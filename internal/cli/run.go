package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ZanzyTHEbar/phonikud-go/phonikud/config"
	"github.com/ZanzyTHEbar/phonikud-go/phonikud/engine"
	"github.com/ZanzyTHEbar/phonikud-go/phonikud/inference"
	"github.com/ZanzyTHEbar/phonikud-go/phonikud/nikud"

	"github.com/rs/zerolog"
)

// RunOptions holds the inputs of one diacritize invocation.
type RunOptions struct {
	Config *config.Config
	// Inputs are diacritized as given; when empty, lines are read from Stdin.
	Inputs []string
	Stdin  io.Reader
	Stdout io.Writer
	Logger zerolog.Logger
	// Factory overrides engine construction from Config.
	Factory EngineFactory
}

// Diacritize runs the engine over the inputs and writes one result per line.
// The ONNX runtime is shut down once every engine has been closed.
func Diacritize(ctx context.Context, opts RunOptions) (err error) {
	inputs := opts.Inputs
	if len(inputs) == 0 {
		lines, err := ReadLines(opts.Stdin)
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		inputs = lines
	}
	if len(inputs) == 0 {
		return nil
	}

	factory := opts.Factory
	if factory == nil {
		factory = func() (*engine.Engine, error) {
			return engine.NewFromConfig(opts.Config, engine.WithLogger(opts.Logger))
		}
	}
	jobs := min(max(opts.Config.CLI.Jobs, 1), len(inputs))
	batch, err := NewBatch(jobs, factory)
	if err != nil {
		return errors.Join(err, inference.ShutdownRuntime())
	}
	defer func() {
		err = errors.Join(err, batch.Close(), inference.ShutdownRuntime())
	}()

	results, err := batch.Run(ctx, inputs, opts.Config.Diacritics.Options())
	if err != nil {
		return err
	}
	w := bufio.NewWriter(opts.Stdout)
	for _, r := range results {
		if _, err := fmt.Fprintln(w, r); err != nil {
			return err
		}
	}
	return w.Flush()
}

// Strip writes each input with its diacritics removed.
func Strip(inputs []string, stdin io.Reader, stdout io.Writer) error {
	if len(inputs) == 0 {
		lines, err := ReadLines(stdin)
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		inputs = lines
	}
	w := bufio.NewWriter(stdout)
	for _, in := range inputs {
		if _, err := fmt.Fprintln(w, nikud.StripDiacritics(in)); err != nil {
			return err
		}
	}
	return w.Flush()
}

// ReadLines reads r line by line. A nil reader yields no lines.
func ReadLines(r io.Reader) ([]string, error) {
	if r == nil {
		return nil, nil
	}
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}
