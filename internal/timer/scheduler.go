package timer

import (
	"context"
	"time"
)

// waitTask tracks the goroutine armed for one timer. gen snapshots the
// timer's mutation generation: a goroutine firing with a stale generation
// lost a race against snooze or cancel and must stand down.
type waitTask struct {
	cancel context.CancelFunc
	gen    uint64
}

// startLocked arms a timer. A timer whose expiry is already due fires
// immediately. With a pre-expire warning configured and enough time left,
// the wait runs in two stages: sleep until the warning point, publish the
// warning, sleep the rest. announce controls the started event so restart
// recovery and snoozes do not re-announce.
func (s *Store) startLocked(t *Timer, announce bool) {
	now := s.clock.Now()
	remaining := t.ExpiresAt.Sub(now)
	if remaining <= 0 {
		s.expireLocked(t)
		return
	}

	t.Status = StatusRunning
	t.UpdatedAt = now.Truncate(time.Second)
	s.persistLocked(s.baseCtx, t, false)

	warn := time.Duration(t.PreExpireWarning) * time.Second
	var pre, warnWait time.Duration
	if warn > 0 && remaining > warn {
		pre, warnWait = remaining-warn, warn
	} else {
		pre = remaining
	}
	s.armLocked(t.ID, pre, warnWait)

	if announce {
		s.publish(newEvent(EventStarted, t))
		s.record(EventStarted, t)
	}
}

// armLocked replaces any existing wait goroutine for the timer with a
// fresh one.
func (s *Store) armLocked(id string, pre, warnWait time.Duration) {
	s.cancelTaskLocked(id)

	s.gens[id]++
	gen := s.gens[id]
	ctx, cancel := context.WithCancel(s.baseCtx)
	s.tasks[id] = &waitTask{cancel: cancel, gen: gen}

	s.wg.Add(1)
	go s.runWait(ctx, id, gen, pre, warnWait)
}

// cancelTaskLocked stops the wait goroutine for a timer, if any.
func (s *Store) cancelTaskLocked(id string) {
	if task, ok := s.tasks[id]; ok {
		task.cancel()
		delete(s.tasks, id)
	}
}

func (s *Store) runWait(ctx context.Context, id string, gen uint64, pre, warnWait time.Duration) {
	defer s.wg.Done()

	if !sleepCtx(ctx, pre) {
		return
	}
	if warnWait > 0 {
		if !s.fireWarning(id, gen) {
			return
		}
		if !sleepCtx(ctx, warnWait) {
			return
		}
	}
	s.fireExpiry(id, gen)
}

// fireWarning publishes the pre-expire warning. Returns false when the
// timer changed under the goroutine and the wait should abort.
func (s *Store) fireWarning(id string, gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.timers[id]
	if !ok || s.gens[id] != gen || t.Status != StatusRunning {
		return false
	}
	s.publish(newEvent(EventWarning, t))
	s.record(EventWarning, t)
	return true
}

// fireExpiry moves a timer to expired and publishes the expiry event,
// unless the timer changed under the goroutine.
func (s *Store) fireExpiry(id string, gen uint64) {
	s.mu.Lock()
	t, ok := s.timers[id]
	if !ok || s.gens[id] != gen || t.Status != StatusRunning {
		s.mu.Unlock()
		return
	}
	s.expireLocked(t)
	s.mu.Unlock()

	s.notify()
}

// expireLocked marks a timer expired and publishes the expiry event. The
// row stays persisted so a restart before dismissal can purge it.
func (s *Store) expireLocked(t *Timer) {
	s.cancelTaskLocked(t.ID)
	s.gens[t.ID]++
	t.Status = StatusExpired
	t.UpdatedAt = s.clock.Now().Truncate(time.Second)
	s.persistLocked(s.baseCtx, t, false)
	s.record(EventExpired, t)
	s.publish(newEvent(EventExpired, t))
}

// sleepCtx sleeps for d, returning false if the context ends first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
