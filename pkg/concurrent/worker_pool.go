package concurrent

import (
	"context"
	"sync"
)

type JobFunc[T any, G any] func(job T) G

// Job carries its position in the batch so results can be put back in input order.
type Job[T any] struct {
	Index   int
	Payload T
}

type Result[G any] struct {
	Index int
	Value G
}

type WorkerPool[T any, G any] struct {
	numWorkers int
	jobQueue   chan Job[T]
	results    chan Result[G]
	wg         sync.WaitGroup
}

func NewWorkerPool[T any, G any](numWorkers, jobQueueSize int) *WorkerPool[T, G] {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &WorkerPool[T, G]{
		numWorkers: numWorkers,
		jobQueue:   make(chan Job[T], jobQueueSize),
		results:    make(chan Result[G], jobQueueSize),
	}
}

func (wp *WorkerPool[T, G]) worker(jobFunc JobFunc[T, G]) {
	defer wp.wg.Done()
	for job := range wp.jobQueue {
		wp.results <- Result[G]{Index: job.Index, Value: jobFunc(job.Payload)}
	}
}

func (wp *WorkerPool[T, G]) Start(jobFunc JobFunc[T, G]) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(jobFunc)
	}
}

// Wait blocks until every worker is done, then closes the result channel. call Close first.
func (wp *WorkerPool[T, G]) Wait() {
	wp.wg.Wait()
	close(wp.results)
}

func (wp *WorkerPool[T, G]) AddJob(index int, job T) {
	wp.jobQueue <- Job[T]{Index: index, Payload: job}
}

func (wp *WorkerPool[T, G]) CollectResults() <-chan Result[G] {
	return wp.results
}

func (wp *WorkerPool[T, G]) Close() {
	close(wp.jobQueue)
}

// Map runs jobFunc over jobs on numWorkers goroutines and returns the results in input order.
// jobs that were not started before ctx is cancelled are skipped and ctx.Err() is returned.
func Map[T any, G any](ctx context.Context, numWorkers int, jobs []T, jobFunc JobFunc[T, G]) ([]G, error) {
	out := make([]G, len(jobs))
	if len(jobs) == 0 {
		return out, nil
	}

	wp := NewWorkerPool[T, G](numWorkers, len(jobs))
	wp.Start(jobFunc)

	var err error
	for i, job := range jobs {
		if err = ctx.Err(); err != nil {
			break
		}
		wp.AddJob(i, job)
	}
	wp.Close()

	go wp.Wait()

	for res := range wp.CollectResults() {
		out[res.Index] = res.Value
	}
	return out, err
}
