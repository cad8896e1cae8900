package digest

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// ExecEvaluator bridges an external program into the candidate contract.
// Each evaluation spawns one process: the stream item is written to stdin
// and stdout is taken as the function output. A non-zero exit is an
// evaluator failure carrying the captured stderr.
type ExecEvaluator struct {
	ctx     context.Context
	command string
	args    []string
}

// NewExecEvaluator creates an evaluator running command with args.
// Processes are bound to ctx; cancellation kills in-flight evaluations.
func NewExecEvaluator(ctx context.Context, command string, args ...string) *ExecEvaluator {
	return &ExecEvaluator{ctx: ctx, command: command, args: args}
}

// Name returns a display name for the wrapped command line.
func (e *ExecEvaluator) Name() string {
	if len(e.args) == 0 {
		return e.command
	}
	return e.command + " " + strings.Join(e.args, " ")
}

// Evaluate runs one process over the stream item.
func (e *ExecEvaluator) Evaluate(input []byte) ([]byte, error) {
	cmd := exec.CommandContext(e.ctx, e.command, e.args...)
	cmd.Stdin = bytes.NewReader(input)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("%s: %w: %s", e.command, err, msg)
		}
		return nil, fmt.Errorf("%s: %w", e.command, err)
	}
	return stdout.Bytes(), nil
}
