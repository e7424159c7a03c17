package dashboard

import "github.com/adanyl0v/agua-vida/internal/models"

// A rest countdown starts when a list in rest mode has every task done.
// It counts down restInterval minutes one second at a time. A list that
// already had its countdown does not get another one until it becomes
// incomplete again or leaves rest mode.

// Rest returns the list whose countdown is running and the seconds left.
func (c *Coordinator) Rest() (listID string, secondsLeft int, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.rest == nil {
		return "", 0, false
	}
	return c.rest.listID, c.rest.secondsLeft, true
}

// CloseRest dismisses the running countdown.
func (c *Coordinator) CloseRest() {
	c.lock()
	defer c.unlock()
	c.clearRestLocked()
}

func restEligible(l models.TaskList) bool {
	return l.TimerMode == models.TimerModeRest && l.Status() == models.StatusCompleted
}

func (c *Coordinator) evaluateRestLocked() {
	for _, l := range c.lists {
		if !restEligible(l) {
			delete(c.restSpent, l.ID)
		}
	}
	if c.rest != nil {
		if i := c.indexLocked(c.rest.listID); i < 0 || !restEligible(c.lists[i]) {
			c.clearRestLocked()
		}
	}

	for _, l := range c.lists {
		if restEligible(l) && !c.restSpent[l.ID] {
			c.startRestLocked(l)
			return
		}
	}
}

func (c *Coordinator) startRestLocked(l models.TaskList) {
	c.clearRestLocked()

	interval := l.RestInterval
	if interval <= 0 {
		interval = models.DefaultRestInterval
	}
	c.restSpent[l.ID] = true

	c.seq++
	seq := c.seq
	c.rest = &restCountdown{
		listID:      l.ID,
		secondsLeft: interval * 60,
		seq:         seq,
	}
	c.rest.cancel = c.sched.Every(restTick, func() { c.tickRest(seq) })
	c.emitLocked(Event{Kind: EventRestStarted, ListID: l.ID, SecondsLeft: c.rest.secondsLeft})

	c.logger.Debug().
		Str("list_id", l.ID).
		Int("seconds", c.rest.secondsLeft).
		Msg("rest countdown started")
}

func (c *Coordinator) clearRestLocked() {
	if c.rest == nil {
		return
	}
	r := c.rest
	c.rest = nil
	r.cancel()
	c.emitLocked(Event{Kind: EventRestCleared, ListID: r.listID, SecondsLeft: r.secondsLeft})
}

func (c *Coordinator) tickRest(seq uint64) {
	c.lock()
	defer c.unlock()

	if c.closed || c.rest == nil || c.rest.seq != seq {
		return
	}
	c.rest.secondsLeft--
	if c.rest.secondsLeft > 0 {
		c.emitLocked(Event{Kind: EventRestTick, ListID: c.rest.listID, SecondsLeft: c.rest.secondsLeft})
		return
	}

	r := c.rest
	c.rest = nil
	r.cancel()
	c.emitLocked(Event{Kind: EventRestFinished, ListID: r.listID})
}
