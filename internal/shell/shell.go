// Package shell runs action commands through the system shell with
// bounded output capture and context-based cancellation.
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout bounds every filter and shell execution.
const DefaultTimeout = 5 * time.Second

// maxCapture caps captured stdout/stderr so a runaway process cannot grow
// memory without bound.
const maxCapture = 1 << 20

// ErrOutputTruncated is returned when a process wrote more than the
// capture bound.
var ErrOutputTruncated = errors.New("process output exceeded capture limit")

// Result is the outcome of one process execution. Stdout is trimmed of
// trailing whitespace.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// cappedBuffer stops accepting writes past a fixed size.
type cappedBuffer struct {
	buf bytes.Buffer
	max int
}

func (c *cappedBuffer) Write(p []byte) (int, error) {
	if c.buf.Len()+len(p) > c.max {
		return 0, ErrOutputTruncated
	}
	return c.buf.Write(p)
}

// Run executes command via `sh -c` with input piped to stdin and extraEnv
// appended to the inherited environment. The process is killed when ctx
// is done; partial output is discarded by the caller in that case.
func Run(ctx context.Context, command string, input string, extraEnv []string) (Result, error) {
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Env = append(os.Environ(), extraEnv...)
	cmd.WaitDelay = time.Second

	stdout := &cappedBuffer{max: maxCapture}
	stderr := &cappedBuffer{max: maxCapture}
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.Stdin = strings.NewReader(input)

	err := cmd.Run()
	result := Result{
		Stdout: strings.TrimRight(stdout.buf.String(), " \t\r\n"),
		Stderr: strings.TrimRight(stderr.buf.String(), " \t\r\n"),
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return result, fmt.Errorf("command %q: %w", command, ctxErr)
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			return result, fmt.Errorf("command %q exited %d: %s",
				command, result.ExitCode, firstLine(result.Stderr))
		}
		return result, fmt.Errorf("command %q: %w", command, err)
	}
	return result, nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

var _ io.Writer = (*cappedBuffer)(nil)
