package rsync

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecExecutor(t *testing.T) {
	ctx := context.Background()

	t.Run("combined_output_and_exit_code", func(t *testing.T) {
		output, code, err := ExecExecutor{}.Execute(ctx, Invocation{
			Path: "sh",
			Args: []string{"-c", "echo out; echo err 1>&2; exit 3"},
		})
		require.NoError(t, err)
		assert.Equal(t, 3, code)
		assert.ElementsMatch(t, []string{"out", "err"}, output)
	})

	t.Run("env_is_appended", func(t *testing.T) {
		output, code, err := ExecExecutor{}.Execute(ctx, Invocation{
			Path: "sh",
			Args: []string{"-c", `printf '%s\n' "$RSYNC_PASSWORD"`},
			Env:  []string{"RSYNC_PASSWORD=s3cret"},
		})
		require.NoError(t, err)
		assert.Equal(t, 0, code)
		assert.Equal(t, []string{"s3cret"}, output)
	})

	t.Run("working_directory", func(t *testing.T) {
		dir, err := filepath.EvalSymlinks(t.TempDir())
		require.NoError(t, err)

		output, _, err := ExecExecutor{}.Execute(ctx, Invocation{
			Path: "sh",
			Args: []string{"-c", "pwd -P"},
			Dir:  dir,
		})
		require.NoError(t, err)
		require.Len(t, output, 1)
		assert.Equal(t, dir, output[0])
	})

	t.Run("missing_working_directory_is_a_failed_exit", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "missing")

		output, code, err := ExecExecutor{}.Execute(ctx, Invocation{Path: "/nonexistent/rsync", Dir: dir})
		require.NoError(t, err)
		assert.Equal(t, 1, code)
		require.Len(t, output, 1)
		assert.Contains(t, output[0], dir)
	})

	t.Run("working_directory_is_a_file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(file, nil, 0644))

		output, code, err := ExecExecutor{}.Execute(ctx, Invocation{Path: "sh", Args: []string{"-c", "true"}, Dir: file})
		require.NoError(t, err)
		assert.Equal(t, 1, code)
		assert.Equal(t, []string{"cd: " + file + ": not a directory"}, output)
	})

	t.Run("arguments_are_not_shell_expanded", func(t *testing.T) {
		output, _, err := ExecExecutor{}.Execute(ctx, Invocation{
			Path: "echo",
			Args: []string{"$HOME", "a;b", "*"},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"$HOME a;b *"}, output)
	})

	t.Run("missing_binary", func(t *testing.T) {
		_, code, err := ExecExecutor{}.Execute(ctx, Invocation{Path: "/nonexistent/rsync"})
		assert.Error(t, err)
		assert.Equal(t, -1, code)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
		defer cancel()

		_, _, err := ExecExecutor{}.Execute(ctx, Invocation{Path: "sleep", Args: []string{"5"}})
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestSplitLines(t *testing.T) {
	assert.Nil(t, splitLines(nil))
	assert.Equal(t, []string{"a", "b"}, splitLines([]byte("a\r\nb\n")))
	assert.Equal(t, []string{"a", "", "b"}, splitLines([]byte("a\n\nb")))

	long := strings.Repeat("x", 2*1024*1024)
	lines := splitLines([]byte(long + "\ntail\n"))
	require.Len(t, lines, 2)
	assert.Len(t, lines[0], len(long))
	assert.Equal(t, "tail", lines[1])
}
