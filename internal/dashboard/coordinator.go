// Package dashboard owns the client-side view of a user's task lists:
// optimistic completion toggles, the single running task timer, the
// rest countdown and the completion celebration.
package dashboard

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/agua-vida/internal/fixtures"
	"github.com/adanyl0v/agua-vida/internal/models"
)

const (
	timerTick          = time.Second
	restTick           = time.Second
	celebrationTimeout = 3 * time.Second
)

var (
	ErrListNotFound     = errors.New("task list not found")
	ErrTaskNotFound     = errors.New("task not found")
	ErrTimerUnavailable = errors.New("task list has no timer")
	ErrTitleRequired    = errors.New("title is required")
	ErrTextRequired     = errors.New("task text is required")
	ErrClosed           = errors.New("dashboard is closed")
	ErrNoSource         = errors.New("live mode requires a source")
)

type Mode int

const (
	ModeLive Mode = iota
	ModeDemo
)

func (m Mode) String() string {
	if m == ModeDemo {
		return "demo"
	}
	return "live"
}

// Source is the remote side of live mode. client.Client satisfies it.
type Source interface {
	TaskLists(ctx context.Context) ([]models.TaskList, error)
	CreateTaskList(ctx context.Context, data models.NewTaskList) (*models.TaskList, error)
	UpdateTaskList(ctx context.Context, listID string, update models.TaskListUpdate) (*models.TaskList, error)
	ToggleTask(ctx context.Context, listID, taskID string) (*models.TaskList, error)
	CreateTask(ctx context.Context, listID string, data models.NewTask) (*models.TaskList, error)
}

type Config struct {
	Mode   Mode
	Source Source

	// Scheduler drives the timer, the rest countdown and the
	// celebration. Defaults to the wall clock.
	Scheduler Scheduler

	// OnEvent is called outside the internal lock, possibly from a
	// scheduler goroutine.
	OnEvent func(Event)

	// NewID generates ids for lists and tasks created in demo mode.
	NewID func() string

	// Fixture supplies the demo mode data set.
	Fixture func() []models.TaskList
}

type runningTimer struct {
	listID string
	taskID string
	seq    uint64
	cancel Cancel
}

type restCountdown struct {
	listID      string
	secondsLeft int
	seq         uint64
	cancel      Cancel
}

type celebration struct {
	seq    uint64
	cancel Cancel
}

type Coordinator struct {
	logger  zerolog.Logger
	mode    Mode
	source  Source
	sched   Scheduler
	onEvent func(Event)
	newID   func() string
	fixture func() []models.TaskList

	mu         sync.Mutex
	lists      []models.TaskList
	generation uint64
	selectedID string
	closed     bool
	pending    []Event

	seq          uint64
	timer        *runningTimer
	rest         *restCountdown
	restSpent    map[string]bool
	incomplete   map[string]bool
	celebrations map[string]celebration

	nextRequest uint64
	inflight    map[uint64]context.CancelFunc
}

func New(logger zerolog.Logger, cfg Config) (*Coordinator, error) {
	if cfg.Mode == ModeLive && cfg.Source == nil {
		return nil, ErrNoSource
	}

	c := &Coordinator{
		logger:       logger,
		mode:         cfg.Mode,
		source:       cfg.Source,
		sched:        cfg.Scheduler,
		onEvent:      cfg.OnEvent,
		newID:        cfg.NewID,
		fixture:      cfg.Fixture,
		lists:        []models.TaskList{},
		restSpent:    make(map[string]bool),
		incomplete:   make(map[string]bool),
		celebrations: make(map[string]celebration),
		inflight:     make(map[uint64]context.CancelFunc),
	}
	if c.sched == nil {
		c.sched = NewScheduler()
	}
	if c.onEvent == nil {
		c.onEvent = func(Event) {}
	}
	if c.newID == nil {
		c.newID = uuid.NewString
	}
	if c.fixture == nil {
		c.fixture = fixtures.TaskLists
	}
	return c, nil
}

func (c *Coordinator) Mode() Mode {
	return c.mode
}

// lock and unlock guard all state. unlock delivers the events queued
// while the lock was held.
func (c *Coordinator) lock() {
	c.mu.Lock()
}

func (c *Coordinator) unlock() {
	events := c.pending
	c.pending = nil
	c.mu.Unlock()

	for _, ev := range events {
		c.onEvent(ev)
	}
}

func (c *Coordinator) emitLocked(ev Event) {
	c.pending = append(c.pending, ev)
}

// Load replaces the local lists with the fixture set in demo mode or
// with the server's lists in live mode. Completion state present at load
// time never triggers a celebration.
func (c *Coordinator) Load(ctx context.Context) error {
	var lists []models.TaskList
	if c.mode == ModeDemo {
		lists = c.fixture()
	} else {
		remote, err := c.source.TaskLists(ctx)
		if err != nil {
			c.logger.Error().
				Err(err).
				Msg("failed to load task lists")
			return err
		}
		lists = remote
	}

	c.lock()
	defer c.unlock()

	if c.closed {
		return ErrClosed
	}

	c.stopTimerLocked()
	c.clearRestLocked()
	for id := range c.celebrations {
		c.cancelCelebrationLocked(id)
	}

	c.lists = models.CloneTaskLists(lists)
	for i := range c.lists {
		for j := range c.lists[i].Tasks {
			c.lists[i].Tasks[j].IsTimerRunning = false
		}
	}
	c.generation++
	c.restSpent = make(map[string]bool)
	c.incomplete = make(map[string]bool, len(c.lists))
	for _, l := range c.lists {
		c.incomplete[l.ID] = hasIncomplete(l)
	}
	if c.selectedID != "" && c.indexLocked(c.selectedID) < 0 {
		c.selectedID = ""
	}

	c.evaluateRestLocked()
	c.emitLocked(Event{Kind: EventListsChanged})

	c.logger.Debug().
		Str("mode", c.mode.String()).
		Int("lists", len(c.lists)).
		Msg("task lists loaded")
	return nil
}

// Snapshot returns a deep copy of the local lists.
func (c *Coordinator) Snapshot() []models.TaskList {
	c.mu.Lock()
	defer c.mu.Unlock()
	return models.CloneTaskLists(c.lists)
}

func (c *Coordinator) List(listID string) (models.TaskList, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexLocked(listID)
	if i < 0 {
		return models.TaskList{}, false
	}
	return c.lists[i].Clone(), true
}

// Open selects a list for the detail view.
func (c *Coordinator) Open(listID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.indexLocked(listID) < 0 {
		return ErrListNotFound
	}
	c.selectedID = listID
	return nil
}

func (c *Coordinator) CloseView() {
	c.lock()
	defer c.unlock()

	if c.selectedID == "" {
		return
	}
	listID := c.selectedID
	c.selectedID = ""
	c.emitLocked(Event{Kind: EventViewClosed, ListID: listID})
}

// Selected returns the id of the list in the detail view, or "".
func (c *Coordinator) Selected() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectedID
}

// Close stops every timer and cancels requests still in flight. Their
// results are discarded.
func (c *Coordinator) Close() {
	c.lock()
	defer c.unlock()

	if c.closed {
		return
	}
	c.closed = true

	c.stopTimerLocked()
	c.clearRestLocked()
	for id := range c.celebrations {
		c.cancelCelebrationLocked(id)
	}
	for id, cancel := range c.inflight {
		cancel()
		delete(c.inflight, id)
	}
}

func (c *Coordinator) indexLocked(listID string) int {
	for i := range c.lists {
		if c.lists[i].ID == listID {
			return i
		}
	}
	return -1
}

func (c *Coordinator) findLocked(listID, taskID string) (*models.TaskList, *models.Task, error) {
	i := c.indexLocked(listID)
	if i < 0 {
		return nil, nil, ErrListNotFound
	}
	list := &c.lists[i]
	task, ok := list.Task(taskID)
	if !ok {
		return list, nil, ErrTaskNotFound
	}
	return list, task, nil
}

// trackLocked derives a request context that Close can cancel.
func (c *Coordinator) trackLocked(ctx context.Context) (context.Context, uint64) {
	reqCtx, cancel := context.WithCancel(ctx)
	c.nextRequest++
	c.inflight[c.nextRequest] = cancel
	return reqCtx, c.nextRequest
}

func (c *Coordinator) untrackLocked(id uint64) {
	if cancel, ok := c.inflight[id]; ok {
		cancel()
		delete(c.inflight, id)
	}
}

// changedLocked runs after every change to the lists.
func (c *Coordinator) changedLocked() {
	c.observeCompletionLocked()
	c.evaluateRestLocked()
	c.emitLocked(Event{Kind: EventListsChanged})
}

func hasIncomplete(l models.TaskList) bool {
	for _, t := range l.Tasks {
		if !t.Completed {
			return true
		}
	}
	return false
}
