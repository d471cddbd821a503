package optimizer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"unicode/utf8"

	"accneat/internal/logging"
)

const DefaultBinary = "accneat"

// InvalidStdout replaces stdout that is not valid UTF-8.
const InvalidStdout = "[ERROR] optimizer stdout is not valid UTF-8"

type Output struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner executes the optimizer binary from Dir, where it creates the
// experiments tree.
type Runner struct {
	Binary string
	Dir    string
	Logger logging.Logger
}

// Run waits for the optimizer to exit. A non-zero exit status is reported in
// Output.ExitCode, not as an error; errors mean the process could not be
// started or ctx ended first.
func (r Runner) Run(ctx context.Context, args Args) (Output, error) {
	if err := args.Validate(); err != nil {
		return Output{}, err
	}
	binary := r.Binary
	if binary == "" {
		binary = DefaultBinary
	}
	logger := r.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	argv := args.Argv()
	cmd := exec.CommandContext(ctx, binary, argv...)
	cmd.Dir = r.Dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Info("running optimizer", logging.String("binary", binary), logging.String("experiment", argv[len(argv)-1]))
	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return Output{}, fmt.Errorf("run %s: %w", binary, ctxErr)
	}
	out := Output{Stdout: decode(stdout.Bytes(), InvalidStdout), Stderr: decode(stderr.Bytes(), "")}
	var exitErr *exec.ExitError
	switch {
	case errors.As(err, &exitErr):
		out.ExitCode = exitErr.ExitCode()
		logger.Warn("optimizer exited with failure", logging.Int("exit_code", out.ExitCode))
	case err != nil:
		return Output{}, fmt.Errorf("run %s: %w", binary, err)
	}
	return out, nil
}

func decode(b []byte, fallback string) string {
	if !utf8.Valid(b) {
		return fallback
	}
	return string(b)
}
