package dashboard

import (
	"context"
	"net/url"
	"strings"

	"github.com/adanyl0v/agua-vida/internal/models"
)

// Outcome reports what became of an optimistic toggle.
type Outcome int

const (
	// OutcomeApplied means the local change stands.
	OutcomeApplied Outcome = iota + 1

	// OutcomeRolledBack means the request failed and the lists were
	// restored to the state right before the toggle.
	OutcomeRolledBack

	// OutcomeCompensated means the request failed after newer local
	// changes had been made, so only the toggled task was flipped back.
	OutcomeCompensated

	// OutcomeDiscarded means the dashboard was closed before the
	// request finished.
	OutcomeDiscarded
)

func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeRolledBack:
		return "rolled back"
	case OutcomeCompensated:
		return "compensated"
	case OutcomeDiscarded:
		return "discarded"
	}
	return "unknown"
}

// ToggleTask flips a task's completion locally right away. In live mode
// it then asks the server and undoes the flip if the server refuses.
// Completing a task whose timer is running stops the timer.
func (c *Coordinator) ToggleTask(ctx context.Context, listID, taskID string) (Outcome, error) {
	c.lock()
	if c.closed {
		c.unlock()
		return OutcomeDiscarded, ErrClosed
	}
	_, task, err := c.findLocked(listID, taskID)
	if err != nil {
		c.unlock()
		return 0, err
	}

	snapshot := models.CloneTaskLists(c.lists)
	c.generation++
	gen := c.generation
	c.flipLocked(task)
	c.changedLocked()

	if c.mode == ModeDemo {
		c.unlock()
		return OutcomeApplied, nil
	}
	reqCtx, reqID := c.trackLocked(ctx)
	c.unlock()

	_, err = c.source.ToggleTask(reqCtx, listID, taskID)

	c.lock()
	defer c.unlock()
	c.untrackLocked(reqID)

	if c.closed {
		c.logger.Debug().
			Str("list_id", listID).
			Str("task_id", taskID).
			Msg("toggle result discarded")
		return OutcomeDiscarded, err
	}
	if err == nil {
		return OutcomeApplied, nil
	}

	c.logger.Error().
		Err(err).
		Str("list_id", listID).
		Str("task_id", taskID).
		Msg("failed to toggle task")

	if gen == c.generation {
		c.restoreLocked(snapshot)
		return OutcomeRolledBack, err
	}

	if _, task, ferr := c.findLocked(listID, taskID); ferr == nil {
		c.generation++
		c.flipLocked(task)
		c.changedLocked()
	}
	return OutcomeCompensated, err
}

func (c *Coordinator) flipLocked(task *models.Task) {
	task.Completed = !task.Completed
	if task.Completed && task.IsTimerRunning {
		c.stopTimerLocked()
	}
}

// restoreLocked puts back a snapshot taken before a mutation, including
// the running timer it recorded.
func (c *Coordinator) restoreLocked(snapshot []models.TaskList) {
	c.stopTimerLocked()
	c.lists = snapshot
	c.generation++

	var listID, taskID string
	for i := range c.lists {
		for j := range c.lists[i].Tasks {
			t := &c.lists[i].Tasks[j]
			if !t.IsTimerRunning {
				continue
			}
			if taskID == "" {
				listID, taskID = c.lists[i].ID, t.ID
				continue
			}
			t.IsTimerRunning = false
		}
	}
	if taskID != "" {
		c.startTimerLocked(listID, taskID)
	}
	c.changedLocked()
}

// UpdateTaskList changes a list's timer mode or rest interval. In live
// mode the local list changes only once the server has answered.
func (c *Coordinator) UpdateTaskList(ctx context.Context, listID string, update models.TaskListUpdate) error {
	c.lock()
	if c.closed {
		c.unlock()
		return ErrClosed
	}
	i := c.indexLocked(listID)
	if i < 0 {
		c.unlock()
		return ErrListNotFound
	}

	if c.mode == ModeDemo {
		defer c.unlock()
		update.ApplyTo(&c.lists[i])
		c.generation++
		c.changedLocked()
		return nil
	}
	reqCtx, reqID := c.trackLocked(ctx)
	c.unlock()

	remote, err := c.source.UpdateTaskList(reqCtx, listID, update)

	c.lock()
	defer c.unlock()
	c.untrackLocked(reqID)

	if c.closed {
		return ErrClosed
	}
	if err != nil {
		c.logger.Error().
			Err(err).
			Str("list_id", listID).
			Msg("failed to update task list")
		return err
	}
	c.mergeLocked(*remote)
	return nil
}

// CreateTaskList adds an empty list to the end of the dashboard.
func (c *Coordinator) CreateTaskList(ctx context.Context, data models.NewTaskList) (models.TaskList, error) {
	data.Title = strings.TrimSpace(data.Title)
	if data.Title == "" {
		return models.TaskList{}, ErrTitleRequired
	}

	c.lock()
	if c.closed {
		c.unlock()
		return models.TaskList{}, ErrClosed
	}

	if c.mode == ModeDemo {
		defer c.unlock()
		list := models.BuildTaskList(c.newID(), data)
		c.appendLocked(list)
		return list.Clone(), nil
	}
	reqCtx, reqID := c.trackLocked(ctx)
	c.unlock()

	remote, err := c.source.CreateTaskList(reqCtx, data)

	c.lock()
	defer c.unlock()
	c.untrackLocked(reqID)

	if c.closed {
		return models.TaskList{}, ErrClosed
	}
	if err != nil {
		c.logger.Error().
			Err(err).
			Str("title", data.Title).
			Msg("failed to create task list")
		return models.TaskList{}, err
	}
	c.appendLocked(*remote)
	return remote.Clone(), nil
}

// CreateStack starts a new stack by creating its first list. Stack
// lists carry a placeholder image seeded by their title and neither a
// timer nor financial values.
func (c *Coordinator) CreateStack(ctx context.Context, stack, title string) (models.TaskList, error) {
	stack = strings.TrimSpace(stack)
	if stack == "" {
		return models.TaskList{}, ErrTitleRequired
	}
	title = strings.TrimSpace(title)
	return c.CreateTaskList(ctx, models.NewTaskList{
		Title:    title,
		Stack:    stack,
		ImageURL: models.PlaceholderImageURL(url.PathEscape(title)),
	})
}

// CreateTask appends a task to a list and returns the list as it now
// stands.
func (c *Coordinator) CreateTask(ctx context.Context, listID string, data models.NewTask) (models.TaskList, error) {
	data.Text = strings.TrimSpace(data.Text)
	if data.Text == "" {
		return models.TaskList{}, ErrTextRequired
	}

	c.lock()
	if c.closed {
		c.unlock()
		return models.TaskList{}, ErrClosed
	}
	i := c.indexLocked(listID)
	if i < 0 {
		c.unlock()
		return models.TaskList{}, ErrListNotFound
	}

	if c.mode == ModeDemo {
		defer c.unlock()
		list := &c.lists[i]
		list.Tasks = append(list.Tasks, models.BuildTask(c.newID(), data, list.IsFinancial))
		c.generation++
		c.changedLocked()
		return list.Clone(), nil
	}
	reqCtx, reqID := c.trackLocked(ctx)
	c.unlock()

	remote, err := c.source.CreateTask(reqCtx, listID, data)

	c.lock()
	defer c.unlock()
	c.untrackLocked(reqID)

	if c.closed {
		return models.TaskList{}, ErrClosed
	}
	if err != nil {
		c.logger.Error().
			Err(err).
			Str("list_id", listID).
			Msg("failed to create task")
		return models.TaskList{}, err
	}
	return c.mergeLocked(*remote), nil
}

func (c *Coordinator) appendLocked(list models.TaskList) {
	c.lists = append(c.lists, list.Clone())
	c.generation++
	c.incomplete[list.ID] = hasIncomplete(list)
	c.changedLocked()
}

// mergeLocked replaces a local list with the server's copy. The timer
// fields are local state and survive the merge.
func (c *Coordinator) mergeLocked(remote models.TaskList) models.TaskList {
	merged := remote.Clone()
	i := c.indexLocked(remote.ID)
	if i < 0 {
		return merged
	}

	local := &c.lists[i]
	for j := range merged.Tasks {
		t := &merged.Tasks[j]
		t.IsTimerRunning = false
		prev, ok := local.Task(t.ID)
		if !ok {
			continue
		}
		t.IsTimerRunning = prev.IsTimerRunning
		if prev.TimeSpent > t.TimeSpent {
			t.TimeSpent = prev.TimeSpent
		}
	}
	c.lists[i] = merged
	c.generation++

	if c.timer != nil && c.timer.listID == remote.ID {
		if t, ok := c.lists[i].Task(c.timer.taskID); !ok || t.Completed {
			c.stopTimerLocked()
		}
	}
	c.changedLocked()
	return c.lists[i].Clone()
}
