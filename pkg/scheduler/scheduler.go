package scheduler

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

type queue[T any] []T

func (q *queue[T]) Len() int { return len(*q) }

func (q *queue[T]) Pop() T {
	old := *q
	x := old[0]
	*q = old[1:]
	return x
}

func (q *queue[T]) Push(t T) {
	*q = append(*q, t)
}

type workRequest struct {
	name string
	fn   Work[any]
	c    chan Result[any]
	ctx  context.Context
}

// execute runs r and reports the worker idle once r returned, even when it
// panicked.
func (s *Scheduler) execute(r workRequest) {
	defer func() {
		if rec := recover(); rec != nil {
			zap.S().Named("scheduler").Errorw("work panicked", "work", r.name, "panic", rec)
			r.c <- Result[any]{Err: errors.Newf("work %q panicked: %v", r.name, rec)}
		}
		s.idle <- struct{}{}
		s.running.Done()
	}()

	v, err := r.fn(r.ctx)
	r.c <- Result[any]{Data: v, Err: err}
}

// Scheduler runs work on a fixed pool of workers. Work beyond the pool size
// waits in a FIFO queue.
type Scheduler struct {
	free    int
	pending *queue[workRequest]

	work    chan workRequest
	idle    chan struct{}
	close   chan struct{}
	stopped chan struct{}

	ctx     context.Context
	cancel  context.CancelFunc
	running sync.WaitGroup
	once    sync.Once
}

func NewScheduler(nbWorkers int) *Scheduler {
	if nbWorkers < 1 {
		nbWorkers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		free:    nbWorkers,
		pending: &queue[workRequest]{},
		work:    make(chan workRequest),
		idle:    make(chan struct{}, nbWorkers),
		close:   make(chan struct{}),
		stopped: make(chan struct{}),
		ctx:     ctx,
		cancel:  cancel,
	}
	go s.loop()
	return s
}

// AddWork queues w and returns its future. After Close the future holds
// context.Canceled.
func (s *Scheduler) AddWork(w Work[any]) *Future[Result[any]] {
	return s.AddNamedWork("", w)
}

// AddNamedWork is AddWork with a name used when reporting panics.
func (s *Scheduler) AddNamedWork(name string, w Work[any]) *Future[Result[any]] {
	c := make(chan Result[any], 1)
	ctx, cancel := context.WithCancel(s.ctx)

	select {
	case <-s.ctx.Done():
		c <- Result[any]{Err: context.Canceled}
	case s.work <- workRequest{name: name, fn: w, c: c, ctx: ctx}:
	}

	return NewFuture(c, cancel)
}

// Close cancels every queued and running work and returns once running work
// has returned. It is safe to call more than once.
func (s *Scheduler) Close() {
	s.once.Do(func() {
		s.cancel()
		close(s.close)
	})
	<-s.stopped
}

func (s *Scheduler) loop() {
	defer close(s.stopped)
	for {
		select {
		case r := <-s.work:
			s.pending.Push(r)
			s.dispatch()
		case <-s.idle:
			s.free++
			s.dispatch()
		case <-s.close:
			for s.pending.Len() > 0 {
				s.pending.Pop().c <- Result[any]{Err: context.Canceled}
			}
			s.running.Wait()
			return
		}
	}
}

// dispatch pairs free workers with queued work.
func (s *Scheduler) dispatch() {
	for s.free > 0 && s.pending.Len() > 0 {
		s.free--
		s.running.Add(1)
		go s.execute(s.pending.Pop())
	}
}
