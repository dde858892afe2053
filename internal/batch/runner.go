// Package batch runs a full day's slate of games concurrently through a
// worker pool, reporting progress and guarding the shared RNG/config
// construction path with a circuit breaker. Grounded on
// shared/pkg/simulator/monte_carlo.go's ctx-cancelable worker loop and
// services/sports-data-service/internal/services/circuit_breaker.go's
// named-breaker-per-resource pattern.
package batch

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/nba-gm-sim/matchengine/internal/adapter"
	"github.com/nba-gm-sim/matchengine/internal/domain"
	"github.com/nba-gm-sim/matchengine/internal/orchestrator"
)

// Job is one game to simulate.
type Job struct {
	Ctx       domain.GameContext
	Home, Away *domain.Team
	Seed      int64
}

// Result pairs a job with its outcome; Err is set when the job's circuit
// breaker tripped or SimulateGame/AdaptRawResult failed.
type Result struct {
	GameID string
	V2     *domain.GameResultV2
	Err    error
}

// ProgressUpdate is pushed to the caller's channel as jobs complete.
type ProgressUpdate struct {
	Completed int
	Total     int
	GameID    string
	Err       error
}

// Runner executes a slate of games with a bounded worker pool.
type Runner struct {
	cfg     *domain.GameConfig
	workers int
	breaker *gobreaker.CircuitBreaker
	logger  *logrus.Logger
}

// NewRunner builds a slate runner. The breaker opens once it has seen at
// least 3 requests with a failure ratio of 0.6 or more (ReadyToTrip,
// matching the teacher's circuit breaker settings); threshold sets how many
// trial requests it lets through while half-open; timeout is how long it
// stays open.
func NewRunner(cfg *domain.GameConfig, workers int, threshold int, timeout time.Duration, logger *logrus.Logger) *Runner {
	settings := gobreaker.Settings{
		Name:        "slate-runner",
		MaxRequests: uint32(threshold),
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"component": "batch_runner", "breaker": name, "from": from.String(), "to": to.String(),
			}).Info("circuit breaker state changed")
		},
	}
	return &Runner{cfg: cfg, workers: workers, breaker: gobreaker.NewCircuitBreaker(settings), logger: logger}
}

// RunSlate fans a list of jobs out across the worker pool, returning once
// all jobs complete or ctx is canceled. progress may be nil.
func (r *Runner) RunSlate(ctx context.Context, jobs []Job, progress chan<- ProgressUpdate) ([]Result, error) {
	if len(jobs) == 0 {
		return nil, fmt.Errorf("no games provided for slate run")
	}
	if r.workers <= 0 {
		return nil, fmt.Errorf("worker count must be positive")
	}

	jobCh := make(chan Job)
	results := make([]Result, len(jobs))
	var completed int
	var mu sync.Mutex
	var wg sync.WaitGroup

	for w := 0; w < r.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobCh {
				res := r.runOne(job)
				mu.Lock()
				idx := indexOf(jobs, job)
				results[idx] = res
				completed++
				n := completed
				mu.Unlock()
				if progress != nil {
					progress <- ProgressUpdate{Completed: n, Total: len(jobs), GameID: job.Ctx.GameID, Err: res.Err}
				}
			}
		}()
	}

feed:
	for _, job := range jobs {
		select {
		case <-ctx.Done():
			break feed
		case jobCh <- job:
		}
	}
	close(jobCh)
	wg.Wait()

	if progress != nil {
		close(progress)
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}

func indexOf(jobs []Job, j Job) int {
	for i, x := range jobs {
		if x.Ctx.GameID == j.Ctx.GameID {
			return i
		}
	}
	return -1
}

func (r *Runner) runOne(job Job) Result {
	out, err := r.breaker.Execute(func() (interface{}, error) {
		rng := rand.New(rand.NewSource(job.Seed))
		raw, err := orchestrator.SimulateGame(rng, job.Home, job.Away, r.cfg)
		if err != nil {
			return nil, err
		}
		v2, err := adapter.AdaptRawResult(raw, job.Ctx)
		if err != nil {
			return nil, err
		}
		return v2, nil
	})
	if err != nil {
		r.logger.WithError(err).WithField("game_id", job.Ctx.GameID).Warn("slate job failed")
		return Result{GameID: job.Ctx.GameID, Err: err}
	}
	return Result{GameID: job.Ctx.GameID, V2: out.(*domain.GameResultV2)}
}
