package timer

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/voxtime/voxtime-core/internal/lang"
	"github.com/voxtime/voxtime-core/internal/timespeech"
)

// Logger is the minimal logging interface the package needs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Config tunes store behaviour.
type Config struct {
	// DefaultPreExpireWarning is the warning head start, in seconds,
	// applied when an add request does not specify one.
	DefaultPreExpireWarning int

	// ContextualTime shifts ambiguous small-hours readings into the
	// afternoon when resolving absolute times.
	ContextualTime bool

	// Use24Hour picks the clock style for spoken confirmations.
	Use24Hour bool

	// DefaultLanguage is used when a request carries no language code.
	DefaultLanguage lang.Code
}

// Deps wires the store's collaborators. Repository, Languages and Events
// are required; Hub and Telemetry are optional.
type Deps struct {
	Repository Repository
	Languages  *lang.Registry
	Events     EventPublisher
	Hub        Broadcaster
	Telemetry  Telemetry
	Clock      timespeech.Clock
	Logger     Logger
	Config     Config
}

// Store owns all live timers. All exported methods are safe for concurrent
// use.
type Store struct {
	repo      Repository
	languages *lang.Registry
	events    EventPublisher
	hub       Broadcaster
	telemetry Telemetry
	clock     timespeech.Clock
	logger    Logger
	cfg       Config

	baseCtx context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	mu     sync.Mutex
	timers map[string]*Timer
	tasks  map[string]*waitTask
	gens   map[string]uint64
}

// NewStore creates a store. Call Load to recover persisted timers, and
// Close on shutdown.
func NewStore(deps Deps) (*Store, error) {
	if deps.Repository == nil {
		return nil, fmt.Errorf("timer: repository is required")
	}
	if deps.Languages == nil {
		return nil, fmt.Errorf("timer: language registry is required")
	}
	if deps.Events == nil {
		return nil, fmt.Errorf("timer: event publisher is required")
	}
	if deps.Clock == nil {
		deps.Clock = timespeech.SystemClock
	}
	if deps.Logger == nil {
		deps.Logger = noopLogger{}
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Store{
		repo:      deps.Repository,
		languages: deps.Languages,
		events:    deps.Events,
		hub:       deps.Hub,
		telemetry: deps.Telemetry,
		clock:     deps.Clock,
		logger:    deps.Logger,
		cfg:       deps.Config,
		baseCtx:   ctx,
		cancel:    cancel,
		timers:    make(map[string]*Timer),
		tasks:     make(map[string]*waitTask),
		gens:      make(map[string]uint64),
	}, nil
}

// Close stops every wait goroutine and blocks until they exit. Timers stay
// persisted; the next Load re-arms them.
func (s *Store) Close() {
	s.cancel()
	s.wg.Wait()
}

// Load recovers persisted timers after a restart. Timers that were
// already expired when the daemon went down are purged; the rest are
// re-armed, and any whose expiry passed while the daemon was down fires
// immediately. Re-arming a timer that was already announced does not
// publish a second started event.
func (s *Store) Load(ctx context.Context) error {
	persisted, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("load timers: %w", err)
	}

	s.mu.Lock()
	restored, purged := 0, 0
	for _, t := range persisted {
		if t.Status == StatusExpired {
			if err := s.repo.Delete(ctx, t.ID); err != nil {
				s.logger.Warn("purging expired timer failed",
					"timer_id", t.ID, "error", err)
			}
			purged++
			continue
		}
		announce := t.Status == StatusInactive
		s.timers[t.ID] = t
		s.startLocked(t, announce)
		restored++
	}
	s.mu.Unlock()

	s.logger.Info("timer state recovered", "restored", restored, "purged", purged)
	s.notify()
	return nil
}

// Add creates a timer from a decoded time value and returns its read model
// together with the spoken confirmation.
func (s *Store) Add(ctx context.Context, req AddRequest) (*FormattedTimer, string, error) {
	if req.Value == nil {
		return nil, "", ErrInvalidValue
	}
	lc := req.Language
	if lc == "" {
		lc = s.cfg.DefaultLanguage
	}
	pack := s.languages.Resolve(lc)

	var expires time.Time
	switch v := req.Value.(type) {
	case timespeech.Interval:
		if v.IsZero() {
			return nil, "", ErrInvalidValue
		}
		expires = timespeech.ResolveInterval(s.clock, v)
	case timespeech.AbsoluteTime:
		expires = timespeech.ResolveAbsoluteTime(s.clock, v, pack.Pack(), s.cfg.ContextualTime)
	default:
		return nil, "", ErrInvalidValue
	}

	warning := s.cfg.DefaultPreExpireWarning
	if req.PreExpireWarning != nil {
		warning = *req.PreExpireWarning
	}
	use24 := s.cfg.Use24Hour
	if req.Use24Hour != nil {
		use24 = *req.Use24Hour
	}

	now := s.clock.Now().Truncate(time.Second)
	t := &Timer{
		ID:                GenerateID(),
		Class:             req.Class,
		EntityID:          req.EntityID,
		Name:              req.Name,
		ExpiresAt:         expires,
		OriginalExpiresAt: expires,
		PreExpireWarning:  warning,
		Status:            StatusInactive,
		Language:          pack.Pack().Code(),
		Use24Hour:         use24,
		CreatedAt:         now,
		UpdatedAt:         now,
		ExtraInfo:         deepCopyMap(req.ExtraInfo),
	}
	if t.ExtraInfo == nil {
		t.ExtraInfo = make(map[string]any)
	}
	t.ExtraInfo["kind"] = string(req.Value.Kind())
	if req.Sentence != "" {
		t.ExtraInfo["sentence"] = req.Sentence
	}

	if err := validate(t); err != nil {
		return nil, "", err
	}

	s.mu.Lock()
	if s.isDuplicateLocked(t) {
		s.mu.Unlock()
		return nil, "", ErrDuplicate
	}
	s.timers[t.ID] = t
	s.persistLocked(ctx, t, true)
	if req.Start {
		s.startLocked(t, true)
	}
	formatted := s.formatLocked(t)
	s.mu.Unlock()

	confirmation := timespeech.Confirmation(s.clock, req.Value.Kind(), t.Name,
		t.ExpiresAt, pack.Pack(), s.speechOptions(t))

	s.notify()
	return &formatted, confirmation, nil
}

// Start arms an inactive timer.
func (s *Store) Start(ctx context.Context, id string) error {
	s.mu.Lock()
	t, ok := s.timers[id]
	if !ok {
		s.mu.Unlock()
		return ErrNotFound
	}
	if t.Status != StatusInactive {
		s.mu.Unlock()
		return fmt.Errorf("%w: cannot start %s timer", ErrInvalidTransition, t.Status)
	}
	s.startLocked(t, true)
	s.mu.Unlock()

	s.notify()
	return nil
}

// Snooze pushes an expired timer out by the given interval and re-arms it.
// Only expired timers can be snoozed.
func (s *Store) Snooze(ctx context.Context, id string, iv timespeech.Interval) (string, error) {
	if iv.IsZero() {
		return "", ErrInvalidValue
	}

	s.mu.Lock()
	t, ok := s.timers[id]
	if !ok {
		s.mu.Unlock()
		return "", ErrNotFound
	}
	if t.Status != StatusExpired {
		s.mu.Unlock()
		return "", fmt.Errorf("%w: cannot snooze %s timer", ErrInvalidTransition, t.Status)
	}

	now := s.clock.Now().Truncate(time.Second)
	t.ExpiresAt = timespeech.ResolveInterval(s.clock, iv)
	t.Status = StatusSnoozed
	t.UpdatedAt = now
	if t.ExtraInfo == nil {
		t.ExtraInfo = make(map[string]any)
	}
	t.ExtraInfo["snooze_duration"] = int(iv.Duration().Seconds())
	s.persistLocked(ctx, t, false)
	s.publish(newEvent(EventSnoozed, t))
	s.record(EventSnoozed, t)

	// Re-arm without a second started announcement.
	s.startLocked(t, false)
	pack := s.languages.Resolve(t.Language)
	confirmation := timespeech.DurationToSpeech(s.clock, t.ExpiresAt, pack.Pack())
	s.mu.Unlock()

	s.notify()
	return confirmation, nil
}

// Cancel removes timers selected by the request and returns how many were
// cancelled. Cancelling a specific id that does not exist is ErrNotFound;
// an entity or catch-all cancel with no matches is a zero-count success.
func (s *Store) Cancel(ctx context.Context, req CancelRequest) (int, error) {
	s.mu.Lock()
	var victims []*Timer
	for _, t := range s.timers {
		switch {
		case req.TimerID != "":
			if t.ID == req.TimerID {
				victims = append(victims, t)
			}
		case req.All:
			victims = append(victims, t)
		case req.EntityID != "":
			if t.EntityID == req.EntityID {
				victims = append(victims, t)
			}
		}
	}
	if req.TimerID != "" && len(victims) == 0 {
		s.mu.Unlock()
		return 0, ErrNotFound
	}

	for _, t := range victims {
		s.cancelTaskLocked(t.ID)
		delete(s.timers, t.ID)
		delete(s.gens, t.ID)
		if err := s.repo.Delete(ctx, t.ID); err != nil {
			s.logger.Error("deleting timer failed", "timer_id", t.ID, "error", err)
		}
		s.publish(newEvent(EventCancelled, t))
		s.record(EventCancelled, t)
	}
	s.mu.Unlock()

	if len(victims) > 0 {
		s.notify()
	}
	return len(victims), nil
}

// Get returns the timers matching the request, soonest expiry first.
// Expired timers are excluded unless asked for.
func (s *Store) Get(req GetRequest) []FormattedTimer {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []FormattedTimer
	for _, t := range s.timers {
		if req.TimerID != "" && t.ID != req.TimerID {
			continue
		}
		if req.EntityID != "" && t.EntityID != req.EntityID {
			continue
		}
		if req.Name != "" && t.Name != req.Name {
			continue
		}
		if t.Status == StatusExpired && !req.IncludeExpired {
			continue
		}
		out = append(out, s.formatLocked(t))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ExpiresAt.Equal(out[j].ExpiresAt) {
			return out[i].ExpiresAt.Before(out[j].ExpiresAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// isDuplicateLocked reports whether another timer for the same entity
// already expires at the same second.
func (s *Store) isDuplicateLocked(t *Timer) bool {
	for _, other := range s.timers {
		if other.ID == t.ID {
			continue
		}
		if other.EntityID == t.EntityID && other.ExpiresAt.Unix() == t.ExpiresAt.Unix() {
			return true
		}
	}
	return false
}

// persistLocked writes a timer through to the repository. Failures are
// logged only: in-memory state is authoritative while the daemon runs.
func (s *Store) persistLocked(ctx context.Context, t *Timer, create bool) {
	var err error
	if create {
		err = s.repo.Create(ctx, t)
	} else {
		err = s.repo.Update(ctx, t)
	}
	if err != nil {
		s.logger.Error("persisting timer failed",
			"timer_id", t.ID, "create", create, "error", err)
	}
}

func (s *Store) formatLocked(t *Timer) FormattedTimer {
	now := s.clock.Now()
	remaining := t.Remaining(now)
	pack := s.languages.Resolve(t.Language).Pack()

	var speech string
	if kind, _ := t.ExtraInfo["kind"].(string); kind == string(timespeech.KindInterval) {
		speech = timespeech.DurationToSpeech(s.clock, t.ExpiresAt, pack)
	} else {
		speech = timespeech.TimeToSpeech(s.clock, t.ExpiresAt, pack, s.speechOptions(t))
	}

	return FormattedTimer{
		ID:               t.ID,
		Class:            t.Class,
		EntityID:         t.EntityID,
		Name:             t.Name,
		ExpiresAt:        t.ExpiresAt,
		Status:           t.Status,
		RemainingSeconds: int64((remaining + time.Second - 1) / time.Second),
		ExpiresSpeech:    speech,
		ExtraInfo:        deepCopyMap(t.ExtraInfo),
	}
}

func (s *Store) speechOptions(t *Timer) timespeech.SpeechOptions {
	return timespeech.SpeechOptions{Use24Hour: t.Use24Hour}
}

// notify pushes a full list snapshot to the hub. Listener delivery is
// fire-and-forget; the hub drops messages for slow clients.
func (s *Store) notify() {
	if s.hub == nil {
		return
	}
	s.hub.Broadcast(BroadcastChannel, s.Get(GetRequest{IncludeExpired: true}))
}

// publish hands an event to the publisher off the lock path.
func (s *Store) publish(ev Event) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.events.PublishTimerEvent(ev); err != nil {
			s.logger.Error("publishing timer event failed",
				"event", ev.Type, "timer_id", ev.TimerID, "error", err)
		}
	}()
}

func (s *Store) record(typ EventType, t *Timer) {
	if s.telemetry == nil {
		return
	}
	s.telemetry.RecordTimerEvent(string(typ), string(t.Class),
		t.Remaining(s.clock.Now()).Seconds())
}
