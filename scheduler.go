package reactorfx

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// ErrPlatformNotRunning is returned when scheduling is attempted before a
// toolkit binding has registered its UI-thread dispatch primitive.
var ErrPlatformNotRunning = errors.New("reactorfx: platform dispatch not registered")

// ErrSchedulerDisposed is returned when scheduling on a disposed scheduler.
var ErrSchedulerDisposed = errors.New("reactorfx: scheduler disposed")

var (
	platformMu       sync.RWMutex
	platformDispatch func(func())
	platformCheck    func() bool
	platformInstance = &Scheduler{}
)

// RegisterPlatform wires the toolkit's UI-thread primitives into the
// process-wide scheduler. dispatch posts a callback onto the UI thread;
// isPlatformThread reports whether the caller already is the UI thread and
// may be nil when the toolkit cannot tell, in which case every task is
// posted. Called once by the toolkit binding during startup.
func RegisterPlatform(dispatch func(func()), isPlatformThread func() bool) {
	platformMu.Lock()
	platformDispatch = dispatch
	platformCheck = isPlatformThread
	platformMu.Unlock()
}

// ResetPlatform drops the registered primitives and re-arms the platform
// scheduler. Intended for toolkit shutdown and for tests.
func ResetPlatform() {
	platformMu.Lock()
	platformDispatch = nil
	platformCheck = nil
	platformInstance = &Scheduler{}
	platformMu.Unlock()
}

// Platform returns the process-wide scheduler representing the toolkit's
// single UI thread.
func Platform() *Scheduler {
	platformMu.RLock()
	defer platformMu.RUnlock()
	return platformInstance
}

// Scheduler marshals tasks onto the toolkit's UI thread.
type Scheduler struct {
	mu       sync.Mutex
	disposed bool
	tasks    CompositeDisposable
}

// scheduledTask is one unit of work between submission and execution. The
// cancellation flag is checked right before the body runs, so disposing a
// task already sitting in the UI thread's queue still prevents its effect.
type scheduledTask struct {
	cancelled atomic.Bool
	timer     *time.Timer
}

func (t *scheduledTask) Dispose() {
	t.cancelled.Store(true)
	if t.timer != nil {
		t.timer.Stop()
	}
}

func (t *scheduledTask) IsDisposed() bool {
	return t.cancelled.Load()
}

// Schedule submits task to run on the UI thread. If the caller already is the
// UI thread the task runs inline; otherwise it is posted. The returned handle
// cancels the task if disposed before it runs.
func (s *Scheduler) Schedule(task func()) (Disposable, error) {
	dispatch, onPlatform, err := s.primitives()
	if err != nil {
		return nil, err
	}
	t := &scheduledTask{}
	s.tasks.Add(t)
	run := s.runner(t, task)
	if onPlatform != nil && onPlatform() {
		run()
		return t, nil
	}
	dispatch(run)
	return t, nil
}

// ScheduleDelayed submits task to run on the UI thread after delay. Disposing
// the handle before the timer fires prevents submission entirely. If the
// timer has fired and the task is already queued on the UI thread,
// cancellation is best-effort: the queue slot is consumed but the task body
// does not run.
func (s *Scheduler) ScheduleDelayed(task func(), delay time.Duration) (Disposable, error) {
	if _, _, err := s.primitives(); err != nil {
		return nil, err
	}
	t := &scheduledTask{}
	run := s.runner(t, task)
	t.timer = time.AfterFunc(delay, func() {
		// re-read the primitives: the platform may have gone away while
		// the timer was pending
		dispatch, _, err := s.primitives()
		if err != nil {
			s.tasks.Remove(t)
			return
		}
		dispatch(run)
	})
	s.tasks.Add(t)
	return t, nil
}

// Dispose cancels all outstanding tasks and rejects further scheduling.
// Idempotent.
func (s *Scheduler) Dispose() {
	s.mu.Lock()
	s.disposed = true
	s.mu.Unlock()
	s.tasks.Dispose()
}

func (s *Scheduler) IsDisposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}

func (s *Scheduler) runner(t *scheduledTask, task func()) func() {
	return func() {
		defer s.tasks.Remove(t)
		if t.IsDisposed() {
			return
		}
		task()
	}
}

func (s *Scheduler) primitives() (dispatch func(func()), onPlatform func() bool, err error) {
	s.mu.Lock()
	disposed := s.disposed
	s.mu.Unlock()
	if disposed {
		return nil, nil, ErrSchedulerDisposed
	}
	platformMu.RLock()
	dispatch, onPlatform = platformDispatch, platformCheck
	platformMu.RUnlock()
	if dispatch == nil {
		return nil, nil, ErrPlatformNotRunning
	}
	return dispatch, onPlatform, nil
}
