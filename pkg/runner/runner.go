package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/williamokano/rsyncer/pkg/config"
	"github.com/williamokano/rsyncer/pkg/connection"
	"github.com/williamokano/rsyncer/pkg/rsync"
	"github.com/williamokano/rsyncer/pkg/target"

	// Import targets to register them
	_ "github.com/williamokano/rsyncer/pkg/target/local"
	_ "github.com/williamokano/rsyncer/pkg/target/ssh"
)

// Result represents the outcome of a job
type Result struct {
	Job        string
	Connection string
	Command    string
	ExitCode   int
	Success    bool
	Skipped    bool
	Error      error
	Duration   time.Duration
}

// Runner executes the jobs of a configuration file
type Runner struct {
	cfg    *config.Config
	logger zerolog.Logger

	// ForceDryRun turns every general transfer into a dry run
	ForceDryRun bool

	// OpenTarget and Executor are replaceable for tests
	OpenTarget    func(ctx context.Context, conn *connection.Connection, opts target.Options) (target.Target, error)
	Executor      rsync.Executor
	TargetOptions target.Options
}

// New creates a runner for cfg
func New(cfg *config.Config, logger zerolog.Logger) *Runner {
	return &Runner{
		cfg:           cfg,
		logger:        logger,
		OpenTarget:    target.Open,
		Executor:      rsync.ExecExecutor{},
		TargetOptions: target.DefaultOptions(),
	}
}

// SelectJobs returns the named jobs, or every enabled job when names is empty
func (r *Runner) SelectJobs(names []string) ([]config.JobConfig, error) {
	if len(names) == 0 {
		var jobs []config.JobConfig
		for _, job := range r.cfg.Jobs {
			if job.IsEnabled() {
				jobs = append(jobs, job)
			} else {
				r.logger.Info().Str("job", job.Name).Msg("skipping disabled job")
			}
		}
		return jobs, nil
	}

	jobs := make([]config.JobConfig, 0, len(names))
	for _, name := range names {
		job, ok := r.cfg.FindJob(name)
		if !ok {
			return nil, fmt.Errorf("unknown job %q", name)
		}
		jobs = append(jobs, *job)
	}
	return jobs, nil
}

// Rsync builds the rsync runner for a job's connection
func (r *Runner) Rsync(job config.JobConfig) (*rsync.Rsync, error) {
	_, rs, err := r.build(job)
	return rs, err
}

func (r *Runner) build(job config.JobConfig) (*config.ConnectionConfig, *rsync.Rsync, error) {
	cc, ok := r.cfg.FindConnection(job.Connection)
	if !ok {
		return nil, nil, fmt.Errorf("%w: job %s references unknown connection %s", connection.ErrInvalidConfig, job.Name, job.Connection)
	}

	conn, err := cc.Build()
	if err != nil {
		return nil, nil, err
	}

	rs := rsync.New(conn, r.logger.With().Str("job", job.Name).Str("connection", cc.Name).Logger())
	rs.Defaults = r.cfg.BaseOptions()
	rs.Binary = r.cfg.GetRsyncPath()
	rs.Executor = r.Executor
	return cc, rs, nil
}

// Command returns the shell rendering of a job without running it
func (r *Runner) Command(job config.JobConfig) (string, error) {
	rs, err := r.Rsync(job)
	if err != nil {
		return "", err
	}

	source, err := job.SourceDir()
	if err != nil {
		return "", err
	}

	if job.Files != nil {
		return rs.CompileFilesCommand(source, job.Destination, job.Files)
	}
	return rs.Command(source, job.Destination, r.overrides(job)), nil
}

// RunJob prepares the destination if asked to and runs one transfer
func (r *Runner) RunJob(ctx context.Context, job config.JobConfig) Result {
	start := time.Now()
	result := Result{Job: job.Name, Connection: job.Connection}
	jobLog := r.logger.With().Str("job", job.Name).Logger()

	fail := func(err error) Result {
		result.Error = err
		result.Duration = time.Since(start)
		jobLog.Error().Err(err).Dur("duration", result.Duration).Msg("job failed")
		return result
	}

	cc, rs, err := r.build(job)
	if err != nil {
		return fail(err)
	}

	source, err := job.SourceDir()
	if err != nil {
		return fail(err)
	}

	if job.Files != nil && r.ForceDryRun {
		jobLog.Warn().Msg("file list transfers have no dry run, skipping")
		result.Skipped = true
		result.Success = true
		result.Duration = time.Since(start)
		return result
	}

	if job.Prepare && !r.ForceDryRun {
		if err := r.prepare(ctx, cc, rs.Connection(), job.Destination); err != nil {
			return fail(err)
		}
	}

	jobLog.Info().
		Str("source", source).
		Str("destination", rs.Connection().Destination(rsync.NormalizeDir(job.Destination))).
		Msg("starting transfer")

	if job.Files != nil {
		result.Command, _ = rs.CompileFilesCommand(source, job.Destination, job.Files)
		result.ExitCode, err = rs.RunFiles(ctx, source, job.Destination, job.Files)
	} else {
		ov := r.overrides(job)
		result.Command = rs.Command(source, job.Destination, ov)
		result.ExitCode, err = rs.Run(ctx, source, job.Destination, ov)
	}
	if err != nil {
		return fail(err)
	}

	result.Success = true
	result.Duration = time.Since(start)
	jobLog.Info().Dur("duration", result.Duration).Msg("transfer completed")
	return result
}

// Check opens the target of every connection used by jobs and verifies the
// destination root
func (r *Runner) Check(ctx context.Context, jobs []config.JobConfig) []target.Result {
	var results []target.Result
	checked := make(map[string]bool)

	for _, job := range jobs {
		if checked[job.Connection] {
			continue
		}
		checked[job.Connection] = true

		start := time.Now()
		res := target.Result{Connection: job.Connection}

		err := func() error {
			cc, ok := r.cfg.FindConnection(job.Connection)
			if !ok {
				return fmt.Errorf("%w: unknown connection %s", connection.ErrInvalidConfig, job.Connection)
			}
			conn, err := cc.Build()
			if err != nil {
				return err
			}
			res.Kind = conn.Kind()

			tgt, err := r.OpenTarget(ctx, conn, r.targetOptions(cc))
			if err != nil {
				return err
			}
			defer tgt.Close()

			return tgt.Check(ctx)
		}()

		res.Success = err == nil
		res.Error = err
		res.Duration = time.Since(start)

		if err != nil {
			r.logger.Error().Err(err).Str("connection", job.Connection).Msg("connection check failed")
		} else {
			r.logger.Info().Str("connection", job.Connection).Dur("duration", res.Duration).Msg("connection ok")
		}

		results = append(results, res)
	}

	return results
}

func (r *Runner) prepare(ctx context.Context, cc *config.ConnectionConfig, conn *connection.Connection, dir string) error {
	tgt, err := r.OpenTarget(ctx, conn, r.targetOptions(cc))
	if err != nil {
		return fmt.Errorf("failed to open target: %w", err)
	}
	defer tgt.Close()

	if err := tgt.Prepare(ctx, dir); err != nil {
		return fmt.Errorf("failed to prepare destination: %w", err)
	}
	return nil
}

func (r *Runner) targetOptions(cc *config.ConnectionConfig) target.Options {
	opts := r.TargetOptions
	if cc != nil && cc.KnownHosts != "" {
		opts.KnownHostsPath = cc.KnownHosts
	}
	return opts
}

func (r *Runner) overrides(job config.JobConfig) rsync.Overrides {
	ov := job.Options
	if r.ForceDryRun {
		ov.DryRun = rsync.Bool(true)
	}
	return ov
}

// Summarize joins the errors of failed results, nil when every job succeeded
func Summarize(results []Result) error {
	var errs []error
	for _, res := range results {
		if !res.Success {
			errs = append(errs, fmt.Errorf("job %s: %w", res.Job, res.Error))
		}
	}
	return errors.Join(errs...)
}
