package dashboard

// observeCompletionLocked fires a celebration for every list that went
// from having an incomplete task to having all of its tasks done.
func (c *Coordinator) observeCompletionLocked() {
	seen := make(map[string]bool, len(c.lists))
	for _, l := range c.lists {
		seen[l.ID] = true
		before := c.incomplete[l.ID]
		now := hasIncomplete(l)
		c.incomplete[l.ID] = now

		switch {
		case before && !now && len(l.Tasks) > 0:
			c.celebrateLocked(l.ID)
		case now:
			c.cancelCelebrationLocked(l.ID)
		}
	}
	for id := range c.incomplete {
		if !seen[id] {
			delete(c.incomplete, id)
			c.cancelCelebrationLocked(id)
		}
	}
}

// Celebrating reports whether a celebration for the list is showing.
func (c *Coordinator) Celebrating(listID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.celebrations[listID]
	return ok
}

func (c *Coordinator) celebrateLocked(listID string) {
	if prev, ok := c.celebrations[listID]; ok {
		prev.cancel()
	}

	c.seq++
	seq := c.seq
	cancel := c.sched.After(celebrationTimeout, func() { c.endCelebration(listID, seq) })
	c.celebrations[listID] = celebration{seq: seq, cancel: cancel}
	c.emitLocked(Event{Kind: EventCelebrationStarted, ListID: listID})
}

func (c *Coordinator) cancelCelebrationLocked(listID string) {
	cel, ok := c.celebrations[listID]
	if !ok {
		return
	}
	delete(c.celebrations, listID)
	cel.cancel()
	c.emitLocked(Event{Kind: EventCelebrationEnded, ListID: listID})
}

// endCelebration closes the detail view of the celebrated list.
func (c *Coordinator) endCelebration(listID string, seq uint64) {
	c.lock()
	defer c.unlock()

	cel, ok := c.celebrations[listID]
	if c.closed || !ok || cel.seq != seq {
		return
	}
	delete(c.celebrations, listID)
	c.emitLocked(Event{Kind: EventCelebrationEnded, ListID: listID})

	if c.selectedID == listID {
		c.selectedID = ""
		c.emitLocked(Event{Kind: EventViewClosed, ListID: listID})
	}
}
