package models

const (
	StatusCompleted  Status = "completed"
	StatusInProgress Status = "in-progress"
	StatusOpen       Status = "open"
)

type Status string

// ClassifyTasks puts a collection of tasks into exactly one status.
// An empty collection is open.
func ClassifyTasks(tasks []Task) Status {
	var done int
	for _, t := range tasks {
		if t.Completed {
			done++
		}
	}
	switch {
	case len(tasks) > 0 && done == len(tasks):
		return StatusCompleted
	case done > 0:
		return StatusInProgress
	default:
		return StatusOpen
	}
}
