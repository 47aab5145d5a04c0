package rsync

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Invocation is a single rsync process to spawn. Args never pass through a
// shell.
type Invocation struct {
	Path string
	Args []string
	Dir  string
	Env  []string // appended to the parent environment
}

// Executor runs an Invocation and reports its combined output and exit code.
// err is only set when the process could not be run or was cancelled; a
// non-zero exit is reported through exitCode.
type Executor interface {
	Execute(ctx context.Context, inv Invocation) (output []string, exitCode int, err error)
}

// ExecExecutor spawns processes with os/exec
type ExecExecutor struct{}

// Execute runs inv and blocks until it exits. A working directory that
// cannot be entered is reported like a failed "cd": exit code 1 and the
// reason as output.
func (ExecExecutor) Execute(ctx context.Context, inv Invocation) ([]string, int, error) {
	if inv.Dir != "" {
		if err := checkDir(inv.Dir); err != nil {
			return []string{"cd: " + err.Error()}, 1, nil
		}
	}

	cmd := exec.CommandContext(ctx, inv.Path, inv.Args...)
	cmd.Dir = inv.Dir
	cmd.Env = append(os.Environ(), inv.Env...)

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	runErr := cmd.Run()
	output := splitLines(buf.Bytes())

	if runErr == nil {
		return output, 0, nil
	}
	if ctx.Err() != nil {
		return output, -1, ctx.Err()
	}

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		return output, exitErr.ExitCode(), nil
	}

	return output, -1, runErr
}

func checkDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: not a directory", dir)
	}
	return nil
}

// splitLines splits combined output into lines without a length limit
func splitLines(b []byte) []string {
	text := strings.TrimSuffix(string(b), "\n")
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
