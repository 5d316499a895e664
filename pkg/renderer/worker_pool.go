package renderer

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// RowTask renders a single image row
type RowTask struct {
	Y int
}

// RowResult reports a finished row
type RowResult struct {
	Y           int
	PrimaryRays int
}

// WorkerPool runs row tasks with bounded parallelism. Results are delivered
// on a single channel so that the caller can consume them from one goroutine.
type WorkerPool struct {
	eg         *errgroup.Group
	ctx        context.Context
	sem        *semaphore.Weighted
	numWorkers int
	results    chan RowResult
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// The pool stops accepting tasks once ctx is done.
func NewWorkerPool(ctx context.Context, numWorkers, maxTasks int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	eg, ctx := errgroup.WithContext(ctx)
	return &WorkerPool{
		eg:         eg,
		ctx:        ctx,
		sem:        semaphore.NewWeighted(int64(numWorkers)),
		numWorkers: numWorkers,
		results:    make(chan RowResult, maxTasks), // Buffer for all results
	}
}

// SubmitTask blocks until a worker is free and then runs fn for the task in
// the background. It returns the context error once the pool is cancelled,
// in which case the task is not run.
func (wp *WorkerPool) SubmitTask(task RowTask, fn func(RowTask) RowResult) error {
	if err := wp.ctx.Err(); err != nil {
		return err
	}
	if err := wp.sem.Acquire(wp.ctx, 1); err != nil {
		return err
	}

	wp.eg.Go(func() error {
		defer wp.sem.Release(1)
		// Cancellation is checked between rows, never inside one
		if err := wp.ctx.Err(); err != nil {
			return nil
		}
		wp.results <- fn(task)
		return nil
	})
	return nil
}

// Stop waits for running tasks to finish and closes the result channel
func (wp *WorkerPool) Stop() error {
	err := wp.eg.Wait()
	close(wp.results)
	return err
}

// Results returns the channel of completed rows
func (wp *WorkerPool) Results() <-chan RowResult {
	return wp.results
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}
