package scheduler_test

import (
	"context"
	"runtime"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/node-inspector/pkg/scheduler"
)

var _ = Describe("Scheduler", func() {
	var s *scheduler.Scheduler

	AfterEach(func() {
		if s != nil {
			s.Close()
		}
	})

	Describe("AddWork", func() {
		It("should add work and return a future", func() {
			s = scheduler.NewScheduler(1)

			work := func(ctx context.Context) (any, error) {
				return "done", nil
			}

			future := s.AddWork(work)
			Expect(future).NotTo(BeNil())

			var result scheduler.Result[any]
			Eventually(future.C(), 2*time.Second).Should(Receive(&result))
			Expect(result.Data).To(Equal("done"))
		})
	})

	Describe("Run work", func() {
		It("should execute multiple work items", func() {
			s = scheduler.NewScheduler(2)

			results := make(chan int, 3)
			for i := range 3 {
				idx := i
				work := func(ctx context.Context) (any, error) {
					results <- idx
					return idx, nil
				}
				s.AddWork(work)
			}

			Eventually(func() int {
				return len(results)
			}, 2*time.Second, 100*time.Millisecond).Should(Equal(3))
		})
	})

	Describe("Cancel work", func() {
		It("should cancel work via future.Stop()", func() {
			s = scheduler.NewScheduler(1)

			cancelled := make(chan bool, 1)
			work := func(ctx context.Context) (any, error) {
				select {
				case <-ctx.Done():
					cancelled <- true
					return nil, ctx.Err()
				case <-time.After(5 * time.Second):
					return "completed", nil
				}
			}

			future := s.AddWork(work)
			time.Sleep(100 * time.Millisecond)
			future.Stop()

			Eventually(cancelled, 2*time.Second).Should(Receive(BeTrue()))
		})

		It("should cancel work when scheduler is closed", func() {
			s = scheduler.NewScheduler(1)

			cancelled := make(chan bool, 1)
			work := func(ctx context.Context) (any, error) {
				select {
				case <-ctx.Done():
					cancelled <- true
					return nil, ctx.Err()
				case <-time.After(5 * time.Second):
					return "completed", nil
				}
			}

			s.AddWork(work)
			time.Sleep(100 * time.Millisecond)
			s.Close()
			s = nil // prevent AfterEach from closing again

			Eventually(cancelled, 2*time.Second).Should(Receive(BeTrue()))
		})
	})

	Describe("Goroutine cleanup", func() {
		It("should not leak goroutines after Close under load", func() {
			base := runtime.NumGoroutine()
			s = scheduler.NewScheduler(4)

			work := func(ctx context.Context) (any, error) {
				<-ctx.Done()
				return nil, ctx.Err()
			}

			for i := 0; i < 200; i++ {
				s.AddWork(work)
			}

			time.Sleep(100 * time.Millisecond)
			s.Close()
			s = nil // prevent AfterEach from closing again

			Eventually(func() int {
				return runtime.NumGoroutine()
			}, 5*time.Second, 100*time.Millisecond).Should(BeNumerically("<=", base+10))
		})
	})

	Describe("Close behavior", func() {
		It("should return canceled when AddWork is called after Close", func() {
			s = scheduler.NewScheduler(1)
			s.Close()

			future := s.AddWork(func(ctx context.Context) (any, error) {
				return "done", nil
			})

			var result scheduler.Result[any]
			Eventually(future.C(), 1*time.Second).Should(Receive(&result))
			Expect(result.Err).To(MatchError(context.Canceled))
		})

		It("should wait for in-flight work to finish on Close", func() {
			s = scheduler.NewScheduler(1)

			started := make(chan struct{})
			unblock := make(chan struct{})
			work := func(ctx context.Context) (any, error) {
				close(started)
				<-unblock
				return "done", nil
			}

			s.AddWork(work)
			Eventually(started, 1*time.Second).Should(BeClosed())

			closeDone := make(chan struct{})
			go func() {
				s.Close()
				close(closeDone)
			}()

			Consistently(closeDone, 200*time.Millisecond).ShouldNot(BeClosed())
			close(unblock)
			Eventually(closeDone, 1*time.Second).Should(BeClosed())
			s = nil // prevent AfterEach from closing again
		})
	})

	Describe("Close with several workers", func() {
		// Given every worker busy with work finishing at about the same time
		// When we close the scheduler
		// Then Close should only return once all of them have returned
		It("should wait for every running work", func() {
			s = scheduler.NewScheduler(4)

			var finished atomic.Int32
			started := make(chan struct{}, 4)
			work := func(ctx context.Context) (any, error) {
				started <- struct{}{}
				time.Sleep(50 * time.Millisecond)
				finished.Add(1)
				return nil, nil
			}

			for range 4 {
				s.AddWork(work)
			}
			for range 4 {
				Eventually(started, time.Second).Should(Receive())
			}

			s.Close()
			Expect(finished.Load()).To(Equal(int32(4)))
			s = nil // prevent AfterEach from closing again
		})

		It("should hand queued work a canceled result", func() {
			s = scheduler.NewScheduler(1)

			unblock := make(chan struct{})
			s.AddWork(func(ctx context.Context) (any, error) {
				<-unblock
				return nil, nil
			})
			queued := s.AddWork(func(ctx context.Context) (any, error) {
				return "ran", nil
			})

			go func() {
				time.Sleep(50 * time.Millisecond)
				close(unblock)
			}()
			s.Close()
			s.Close()
			s = nil // prevent AfterEach from closing again

			var result scheduler.Result[any]
			Eventually(queued.C(), time.Second).Should(Receive(&result))
			Expect(result.Err).To(MatchError(context.Canceled))
		})
	})

	Describe("Panics", func() {
		It("should report a panicking work as an error and keep the worker", func() {
			s = scheduler.NewScheduler(1)

			future := s.AddNamedWork("memory", func(ctx context.Context) (any, error) {
				panic("boom")
			})

			var result scheduler.Result[any]
			Eventually(future.C(), 2*time.Second).Should(Receive(&result))
			Expect(result.Err).To(MatchError(ContainSubstring(`work "memory" panicked: boom`)))

			next := s.AddWork(func(ctx context.Context) (any, error) {
				return "done", nil
			})
			Eventually(next.C(), 2*time.Second).Should(Receive(&result))
			Expect(result.Data).To(Equal("done"))
		})
	})

	Describe("Wait", func() {
		It("should return the result", func() {
			s = scheduler.NewScheduler(1)

			future := s.AddWork(func(ctx context.Context) (any, error) {
				return 42, nil
			})

			result, err := future.Wait(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Data).To(Equal(42))
		})

		It("should stop the work when the context ends first", func() {
			s = scheduler.NewScheduler(1)

			cancelled := make(chan bool, 1)
			future := s.AddWork(func(ctx context.Context) (any, error) {
				<-ctx.Done()
				cancelled <- true
				return nil, ctx.Err()
			})

			ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer cancel()

			_, err := future.Wait(ctx)
			Expect(err).To(MatchError(context.DeadlineExceeded))
			Eventually(cancelled, 2*time.Second).Should(Receive(BeTrue()))
		})
	})
})
