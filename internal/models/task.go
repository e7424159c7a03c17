package models

import (
	"fmt"
	"slices"
)

const (
	TimerModeNone     TimerMode = "none"
	TimerModePomodoro TimerMode = "pomodoro"
	TimerModeRest     TimerMode = "rest"
)

const DefaultRestInterval = 5

type TimerMode string

func (m TimerMode) Valid() bool {
	switch m {
	case TimerModeNone, TimerModePomodoro, TimerModeRest:
		return true
	}
	return false
}

type Task struct {
	ID             string   `json:"id" yaml:"id"`
	Text           string   `json:"text" yaml:"text"`
	Completed      bool     `json:"completed" yaml:"completed"`
	TimeSpent      int64    `json:"timeSpent" yaml:"timeSpent"`
	IsTimerRunning bool     `json:"isTimerRunning,omitempty" yaml:"isTimerRunning,omitempty"`
	Value          *float64 `json:"value,omitempty" yaml:"value,omitempty"`
}

func (t Task) Clone() Task {
	if t.Value != nil {
		v := *t.Value
		t.Value = &v
	}
	return t
}

type TaskList struct {
	ID           string    `json:"id" yaml:"id"`
	Title        string    `json:"title" yaml:"title"`
	ImageURL     string    `json:"imageUrl" yaml:"imageUrl"`
	Stack        string    `json:"stack,omitempty" yaml:"stack,omitempty"`
	HasTimer     bool      `json:"hasTimer" yaml:"hasTimer"`
	TimerMode    TimerMode `json:"timerMode" yaml:"timerMode"`
	RestInterval int       `json:"restInterval" yaml:"restInterval"`
	IsFinancial  bool      `json:"isFinancial,omitempty" yaml:"isFinancial,omitempty"`
	Tasks        []Task    `json:"tasks" yaml:"tasks"`
}

// Clone returns a deep copy of the list; the copy shares no memory
// with the receiver.
func (l TaskList) Clone() TaskList {
	tasks := make([]Task, len(l.Tasks))
	for i, t := range l.Tasks {
		tasks[i] = t.Clone()
	}
	l.Tasks = tasks
	return l
}

func (l *TaskList) Task(taskID string) (*Task, bool) {
	for i := range l.Tasks {
		if l.Tasks[i].ID == taskID {
			return &l.Tasks[i], true
		}
	}
	return nil, false
}

func (l TaskList) Status() Status {
	return ClassifyTasks(l.Tasks)
}

// TimeSpent is the sum of elapsed seconds over every task in the list.
func (l TaskList) TimeSpent() int64 {
	var total int64
	for _, t := range l.Tasks {
		total += t.TimeSpent
	}
	return total
}

// DisplayTasks returns the tasks with incomplete ones first. The order
// inside each group is the insertion order.
func (l TaskList) DisplayTasks() []Task {
	tasks := slices.Clone(l.Tasks)
	slices.SortStableFunc(tasks, func(a, b Task) int {
		switch {
		case a.Completed == b.Completed:
			return 0
		case !a.Completed:
			return -1
		default:
			return 1
		}
	})
	return tasks
}

func CloneTaskLists(lists []TaskList) []TaskList {
	out := make([]TaskList, len(lists))
	for i, l := range lists {
		out[i] = l.Clone()
	}
	return out
}

type NewTaskList struct {
	Title       string `json:"title"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Stack       string `json:"stack,omitempty"`
	HasTimer    bool   `json:"hasTimer"`
	IsFinancial bool   `json:"isFinancial"`
}

// BuildTaskList creates an empty list with the default timer settings.
func BuildTaskList(id string, data NewTaskList) TaskList {
	imageURL := data.ImageURL
	if imageURL == "" {
		imageURL = PlaceholderImageURL(id)
	}
	return TaskList{
		ID:           id,
		Title:        data.Title,
		ImageURL:     imageURL,
		Stack:        data.Stack,
		HasTimer:     data.HasTimer,
		TimerMode:    TimerModeNone,
		RestInterval: DefaultRestInterval,
		IsFinancial:  data.IsFinancial,
		Tasks:        []Task{},
	}
}

func PlaceholderImageURL(seed string) string {
	return fmt.Sprintf("https://picsum.photos/seed/%s/400/300", seed)
}

type NewTask struct {
	Text  string   `json:"text"`
	Value *float64 `json:"value,omitempty"`
}

// BuildTask creates an incomplete task. The value is kept only
// for financial lists.
func BuildTask(id string, data NewTask, financial bool) Task {
	task := Task{
		ID:   id,
		Text: data.Text,
	}
	if financial && data.Value != nil {
		v := *data.Value
		task.Value = &v
	}
	return task
}

// TaskListUpdate holds the only list fields that may be changed after
// creation. Nil fields are left untouched.
type TaskListUpdate struct {
	TimerMode    *TimerMode `json:"timerMode,omitempty"`
	RestInterval *int       `json:"restInterval,omitempty"`
}

// ApplyTo writes the valid fields of u into l and silently drops the
// rest: unknown timer modes and non-positive intervals are ignored.
func (u TaskListUpdate) ApplyTo(l *TaskList) {
	if u.TimerMode != nil && u.TimerMode.Valid() {
		l.TimerMode = *u.TimerMode
	}
	if u.RestInterval != nil && *u.RestInterval > 0 {
		l.RestInterval = *u.RestInterval
	}
}
