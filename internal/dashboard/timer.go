package dashboard

// ToggleTimer starts the timer of a task, or stops it if it is the one
// already running. At most one timer runs across all lists, so starting
// one stops any other. It reports whether the task's timer now runs.
func (c *Coordinator) ToggleTimer(listID, taskID string) (bool, error) {
	c.lock()
	defer c.unlock()

	if c.closed {
		return false, ErrClosed
	}
	list, task, err := c.findLocked(listID, taskID)
	if err != nil {
		return false, err
	}
	if !list.HasTimer {
		return false, ErrTimerUnavailable
	}

	wasRunning := task.IsTimerRunning
	c.stopTimerLocked()
	if wasRunning {
		return false, nil
	}
	c.startTimerLocked(listID, taskID)
	return true, nil
}

// Running returns the list and task whose timer is running.
func (c *Coordinator) Running() (listID, taskID string, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer == nil {
		return "", "", false
	}
	return c.timer.listID, c.timer.taskID, true
}

func (c *Coordinator) startTimerLocked(listID, taskID string) {
	_, task, err := c.findLocked(listID, taskID)
	if err != nil {
		return
	}
	task.IsTimerRunning = true

	c.seq++
	seq := c.seq
	c.timer = &runningTimer{
		listID: listID,
		taskID: taskID,
		seq:    seq,
	}
	c.timer.cancel = c.sched.Every(timerTick, func() { c.tickTimer(seq) })
	c.emitLocked(Event{Kind: EventTimerStarted, ListID: listID, TaskID: taskID, TimeSpent: task.TimeSpent})
}

// stopTimerLocked cancels the ticker and clears every running flag.
func (c *Coordinator) stopTimerLocked() {
	for i := range c.lists {
		for j := range c.lists[i].Tasks {
			c.lists[i].Tasks[j].IsTimerRunning = false
		}
	}
	if c.timer == nil {
		return
	}
	t := c.timer
	c.timer = nil
	t.cancel()
	c.emitLocked(Event{Kind: EventTimerStopped, ListID: t.listID, TaskID: t.taskID})
}

// tickTimer adds a second to the running task. Ticks from a ticker that
// has since been replaced are ignored.
func (c *Coordinator) tickTimer(seq uint64) {
	c.lock()
	defer c.unlock()

	if c.closed || c.timer == nil || c.timer.seq != seq {
		return
	}
	_, task, err := c.findLocked(c.timer.listID, c.timer.taskID)
	if err != nil || !task.IsTimerRunning {
		c.stopTimerLocked()
		return
	}
	task.TimeSpent++
	c.emitLocked(Event{Kind: EventTimerTick, ListID: c.timer.listID, TaskID: task.ID, TimeSpent: task.TimeSpent})
}
