package rsync

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/williamokano/rsyncer/pkg/connection"
)

// DefaultBinary is the rsync executable looked up in PATH
const DefaultBinary = "rsync"

// Rsync builds and runs rsync commands against one connection
type Rsync struct {
	conn   *connection.Connection
	logger zerolog.Logger

	// Defaults are the options overrides are merged over. New sets them to
	// DefaultOptions().
	Defaults Options
	Binary   string
	Executor Executor
}

// New creates a runner for conn. Pass zerolog.Nop() to disable logging.
func New(conn *connection.Connection, logger zerolog.Logger) *Rsync {
	return &Rsync{
		conn:     conn,
		logger:   logger,
		Defaults: DefaultOptions(),
		Binary:   DefaultBinary,
		Executor: ExecExecutor{},
	}
}

// Connection returns the target this runner syncs to
func (r *Rsync) Connection() *connection.Connection { return r.conn }

// Command merges ov over the defaults and returns the shell command line
// without running it
func (r *Rsync) Command(sourceDir, destDir string, ov Overrides) string {
	return r.CompileCommand(sourceDir, destDir, r.Defaults.Merge(ov))
}

// CompileCommand renders a general transfer as a single shell command line,
// stderr merged into stdout
func (r *Rsync) CompileCommand(sourceDir, destDir string, opts Options) string {
	var tokens []string

	if opts.WorkingDir != "" {
		tokens = append(tokens, "cd "+opts.WorkingDir+" &&")
	}

	tokens = append(tokens, r.binary(), r.conn.SSHKeyFragment())

	if opts.DryRun {
		tokens = append(tokens, "--dry-run --verbose")
	}
	if opts.Archive {
		tokens = append(tokens, "--archive")
	}
	if opts.Delete {
		tokens = append(tokens, "--delete")
	}
	for _, p := range opts.Include {
		tokens = append(tokens, filterToken("include", p))
	}
	for _, p := range opts.Exclude {
		tokens = append(tokens, filterToken("exclude", p))
	}

	tokens = append(tokens,
		NormalizeDir(sourceDir),
		r.conn.Destination(NormalizeDir(destDir)),
		"2>&1",
	)

	return joinTokens(tokens)
}

// Args renders a general transfer as the argument vector passed to the rsync
// process. The working directory is applied by the executor instead of a cd.
func (r *Rsync) Args(sourceDir, destDir string, opts Options) []string {
	args := r.sshArgs()

	if opts.DryRun {
		args = append(args, "--dry-run", "--verbose")
	}
	if opts.Archive {
		args = append(args, "--archive")
	}
	if opts.Delete {
		args = append(args, "--delete")
	}
	for _, p := range opts.Include {
		args = append(args, filterArg("include", p))
	}
	for _, p := range opts.Exclude {
		args = append(args, filterArg("exclude", p))
	}

	if src := NormalizeDir(sourceDir); src != "" {
		args = append(args, src)
	}
	return append(args, r.conn.Destination(NormalizeDir(destDir)))
}

// Run transfers sourceDir to destDir under the connection root and returns
// rsync's exit code. A non-zero exit is returned as *ExecError.
func (r *Rsync) Run(ctx context.Context, sourceDir, destDir string, ov Overrides) (int, error) {
	opts := r.Defaults.Merge(ov)

	inv := Invocation{
		Path: r.binary(),
		Args: r.Args(sourceDir, destDir, opts),
		Dir:  opts.WorkingDir,
		Env:  r.conn.Env(),
	}

	return r.execute(ctx, inv, r.CompileCommand(sourceDir, destDir, opts), opts.DryRun)
}

// CompileFilesCommand renders a transfer of exactly the listed files: each
// one is included and everything else is excluded. The general options are
// not consulted.
func (r *Rsync) CompileFilesCommand(sourceDir, destDir string, files []string) (string, error) {
	if len(files) == 0 {
		return "", fmt.Errorf("%w: List of files to include cannot be empty", ErrInvalidConfig)
	}

	tokens := []string{r.binary(), r.conn.SSHKeyFragment(), "-a"}
	for _, f := range files {
		tokens = append(tokens, fileToken(f))
	}
	tokens = append(tokens,
		`--exclude="*"`,
		NormalizeDir(sourceDir),
		r.conn.Destination(NormalizeDir(destDir)),
		"2>&1",
	)

	return joinTokens(tokens), nil
}

// FilesArgs is the argument vector form of CompileFilesCommand
func (r *Rsync) FilesArgs(sourceDir, destDir string, files []string) ([]string, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: List of files to include cannot be empty", ErrInvalidConfig)
	}

	args := append(r.sshArgs(), "-a")
	for _, f := range files {
		args = append(args, "--include="+f)
	}
	args = append(args, "--exclude=*")

	if src := NormalizeDir(sourceDir); src != "" {
		args = append(args, src)
	}
	return append(args, r.conn.Destination(NormalizeDir(destDir))), nil
}

// RunFiles transfers only the listed files from sourceDir
func (r *Rsync) RunFiles(ctx context.Context, sourceDir, destDir string, files []string) (int, error) {
	args, err := r.FilesArgs(sourceDir, destDir, files)
	if err != nil {
		return 0, err
	}
	command, err := r.CompileFilesCommand(sourceDir, destDir, files)
	if err != nil {
		return 0, err
	}

	inv := Invocation{
		Path: r.binary(),
		Args: args,
		Env:  r.conn.Env(),
	}

	return r.execute(ctx, inv, command, false)
}

func (r *Rsync) execute(ctx context.Context, inv Invocation, command string, dryRun bool) (int, error) {
	start := time.Now()
	r.logger.Debug().
		Str("command", command).
		Str("destination", r.conn.Destination("")).
		Msg("running rsync")

	output, exitCode, err := r.Executor.Execute(ctx, inv)
	if err != nil {
		r.logger.Error().Err(err).Str("command", command).Msg("rsync could not be run")
		return exitCode, fmt.Errorf("failed to run rsync: %w", err)
	}

	if dryRun {
		r.logger.Info().
			Str("command", command).
			Strs("output", output).
			Msg("RSYNC dry run")
	}

	if exitCode != 0 {
		r.logger.Error().
			Int("exit_code", exitCode).
			Dur("duration", time.Since(start)).
			Msg("rsync failed")
		return exitCode, &ExecError{ExitCode: exitCode, Output: output}
	}

	r.logger.Debug().Dur("duration", time.Since(start)).Msg("rsync completed")
	return exitCode, nil
}

func (r *Rsync) sshArgs() []string {
	if ssh := r.conn.SSHCommand(); ssh != "" {
		return []string{"-e", ssh}
	}
	return []string{}
}

func (r *Rsync) binary() string {
	if r.Binary == "" {
		return DefaultBinary
	}
	return r.Binary
}

func joinTokens(tokens []string) string {
	kept := tokens[:0]
	for _, t := range tokens {
		if t != "" {
			kept = append(kept, t)
		}
	}
	return strings.Join(kept, " ")
}
