package dashboard

type EventKind int

const (
	EventListsChanged EventKind = iota + 1
	EventTimerStarted
	EventTimerTick
	EventTimerStopped
	EventRestStarted
	EventRestTick
	EventRestFinished
	EventRestCleared
	EventCelebrationStarted
	EventCelebrationEnded
	EventViewClosed
)

var eventNames = map[EventKind]string{
	EventListsChanged:       "lists_changed",
	EventTimerStarted:       "timer_started",
	EventTimerTick:          "timer_tick",
	EventTimerStopped:       "timer_stopped",
	EventRestStarted:        "rest_started",
	EventRestTick:           "rest_tick",
	EventRestFinished:       "rest_finished",
	EventRestCleared:        "rest_cleared",
	EventCelebrationStarted: "celebration_started",
	EventCelebrationEnded:   "celebration_ended",
	EventViewClosed:         "view_closed",
}

func (k EventKind) String() string {
	if name, ok := eventNames[k]; ok {
		return name
	}
	return "unknown"
}

// Event tells the presentation layer that something changed. Only the
// fields relevant to Kind are set.
type Event struct {
	Kind        EventKind
	ListID      string
	TaskID      string
	TimeSpent   int64
	SecondsLeft int
}
