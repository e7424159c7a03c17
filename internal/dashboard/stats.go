package dashboard

import (
	"fmt"
	"time"

	"github.com/adanyl0v/agua-vida/internal/models"
)

const UncategorizedStack = "Uncategorized"

var statusLabels = map[models.Status]string{
	models.StatusCompleted:  "Completed",
	models.StatusInProgress: "In Progress",
	models.StatusOpen:       "Open",
}

// Slice is one non-empty category of a chart breakdown.
type Slice struct {
	Status models.Status
	Label  string
	Count  int
	Share  float64
}

type Summary struct {
	Completed  int
	InProgress int
	Open       int

	average    time.Duration
	hasAverage bool
}

func (s Summary) Total() int {
	return s.Completed + s.InProgress + s.Open
}

// AverageCompletion is the mean time spent on completed collections
// that recorded any time at all. ok is false when there are none.
func (s Summary) AverageCompletion() (avg time.Duration, ok bool) {
	return s.average, s.hasAverage
}

// AverageLabel renders the average as "1h 5m", "12m" or "N/A".
func (s Summary) AverageLabel() string {
	if !s.hasAverage {
		return "N/A"
	}
	total := int64(s.average / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

func (s Summary) Breakdown() []Slice {
	total := s.Total()
	if total == 0 {
		return []Slice{}
	}

	out := make([]Slice, 0, 3)
	for _, part := range []struct {
		status models.Status
		count  int
	}{
		{models.StatusCompleted, s.Completed},
		{models.StatusInProgress, s.InProgress},
		{models.StatusOpen, s.Open},
	} {
		if part.count == 0 {
			continue
		}
		out = append(out, Slice{
			Status: part.status,
			Label:  statusLabels[part.status],
			Count:  part.count,
			Share:  float64(part.count) / float64(total),
		})
	}
	return out
}

// Summarize classifies every list on its own.
func Summarize(lists []models.TaskList) Summary {
	groups := make([][]models.Task, len(lists))
	for i, l := range lists {
		groups[i] = l.Tasks
	}
	return summarize(groups)
}

// SummarizeStacks classifies every stack by the tasks of all its lists
// taken together.
func SummarizeStacks(lists []models.TaskList) Summary {
	stacks := GroupByStack(lists)
	groups := make([][]models.Task, len(stacks))
	for i, s := range stacks {
		groups[i] = s.Tasks()
	}
	return summarize(groups)
}

func summarize(groups [][]models.Task) Summary {
	var (
		s       Summary
		total   int64
		counted int64
	)
	for _, tasks := range groups {
		switch models.ClassifyTasks(tasks) {
		case models.StatusCompleted:
			s.Completed++
			var spent int64
			for _, t := range tasks {
				spent += t.TimeSpent
			}
			if spent > 0 {
				total += spent
				counted++
			}
		case models.StatusInProgress:
			s.InProgress++
		default:
			s.Open++
		}
	}

	if counted > 0 {
		s.average = time.Duration(total) * time.Second / time.Duration(counted)
		s.hasAverage = true
	}
	return s
}

type Stack struct {
	Name  string
	Lists []models.TaskList
}

func (s Stack) Tasks() []models.Task {
	var tasks []models.Task
	for _, l := range s.Lists {
		tasks = append(tasks, l.Tasks...)
	}
	return tasks
}

// GroupByStack groups lists by stack name in order of first appearance.
// Lists without a stack fall under UncategorizedStack.
func GroupByStack(lists []models.TaskList) []Stack {
	index := make(map[string]int)
	var stacks []Stack
	for _, l := range lists {
		name := l.Stack
		if name == "" {
			name = UncategorizedStack
		}
		i, ok := index[name]
		if !ok {
			i = len(stacks)
			index[name] = i
			stacks = append(stacks, Stack{Name: name})
		}
		stacks[i].Lists = append(stacks[i].Lists, l)
	}
	return stacks
}

// Stats summarizes the current lists and stacks.
func (c *Coordinator) Stats() (lists, stacks Summary) {
	snapshot := c.Snapshot()
	return Summarize(snapshot), SummarizeStacks(snapshot)
}
