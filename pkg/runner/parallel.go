package runner

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// RunAll runs the selected jobs in parallel with concurrency control via
// semaphore. Each job is still a single blocking rsync process; a failing
// job does not cancel the others. Results keep the order of the jobs.
func (r *Runner) RunAll(ctx context.Context, names []string) ([]Result, error) {
	jobs, err := r.SelectJobs(names)
	if err != nil {
		return nil, err
	}

	if len(jobs) == 0 {
		r.logger.Warn().Msg("no enabled jobs to run")
		return nil, nil
	}

	maxConcurrent := r.cfg.GetMaxConcurrentJobs()
	r.logger.Info().
		Int("total_jobs", len(jobs)).
		Int("max_concurrent", maxConcurrent).
		Bool("dry_run", r.ForceDryRun).
		Msg("starting job execution")

	sem := semaphore.NewWeighted(int64(maxConcurrent))
	g, gCtx := errgroup.WithContext(ctx)

	results := make([]Result, len(jobs))

	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			if err := sem.Acquire(gCtx, 1); err != nil {
				results[i] = Result{Job: job.Name, Connection: job.Connection, Error: err}
				return fmt.Errorf("failed to acquire semaphore: %w", err)
			}
			defer sem.Release(1)

			results[i] = r.RunJob(gCtx, job)
			return nil
		})
	}

	waitErr := g.Wait()

	successCount := 0
	failureCount := 0
	var totalDuration time.Duration

	for _, result := range results {
		if result.Success {
			successCount++
		} else {
			failureCount++
		}
		totalDuration += result.Duration
	}

	r.logger.Info().
		Int("successful", successCount).
		Int("failed", failureCount).
		Dur("total_duration", totalDuration).
		Msg("job execution completed")

	if waitErr != nil {
		return results, waitErr
	}
	return results, Summarize(results)
}
