// Package scheduler runs independent work on a bounded worker pool.
//
// The monitor uses it to fan bridge probes out: every probe is one HTTP call
// and none of them touches the database, so probes never share a session.
//
//	┌──────────────────────────────────────────────────────────┐
//	│                        Scheduler                         │
//	│                                                          │
//	│   AddNamedWork(name, fn) ──► work queue (FIFO)           │
//	│                                   │                      │
//	│                              dispatch()                  │
//	│                                   ▼                      │
//	│        [worker 1]  [worker 2]  ...  [worker N]           │
//	│                                   │                      │
//	│                     Future.C() / Future.Wait(ctx)        │
//	└──────────────────────────────────────────────────────────┘
//
// Each work gets a context derived from the scheduler's own. Future.Stop
// cancels one work; Close cancels all of them and waits for running work to
// return. A panicking work is logged and reported as an error result; its
// worker goes back to the pool.
//
//	sched := scheduler.NewScheduler(4)
//	defer sched.Close()
//
//	future := sched.AddNamedWork("memory", func(ctx context.Context) (any, error) {
//	    return client.Memory(ctx)
//	})
//	result, err := future.Wait(ctx)
package scheduler
