// Package store keeps users and their task lists in process memory.
//
// Nothing is durable: a restart loses every user and list. All methods
// are safe for concurrent use and return deep copies, so callers never
// alias the stored data.
package store

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/adanyl0v/agua-vida/internal/fixtures"
	"github.com/adanyl0v/agua-vida/internal/models"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrTaskListNotFound = errors.New("task list not found")
	ErrTaskNotFound     = errors.New("task not found")
)

type Memory struct {
	mu        sync.RWMutex
	users     map[string]models.User
	taskLists map[string][]models.TaskList

	newID func() string
	seed  func() []models.TaskList
}

type Option func(*Memory)

// WithIDGenerator replaces the uuid based identifiers.
func WithIDGenerator(fn func() string) Option {
	return func(m *Memory) { m.newID = fn }
}

// WithSeed replaces the lists given to every new user.
func WithSeed(fn func() []models.TaskList) Option {
	return func(m *Memory) { m.seed = fn }
}

func NewMemory(opts ...Option) *Memory {
	m := &Memory{
		users:     make(map[string]models.User),
		taskLists: make(map[string][]models.TaskList),
		newID:     newUUID,
		seed:      fixtures.TaskLists,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func newUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Reset drops every user and list.
func (m *Memory) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.users = make(map[string]models.User)
	m.taskLists = make(map[string][]models.TaskList)
}

// FindOrCreateUser returns the stored user with profile.ID, storing the
// profile and seeding the demo lists when it is seen for the first time.
// The second return value reports whether the user was created.
func (m *Memory) FindOrCreateUser(profile models.User) (models.User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if user, ok := m.users[profile.ID]; ok {
		return user, false
	}

	m.users[profile.ID] = profile
	m.taskLists[profile.ID] = models.CloneTaskLists(m.seed())
	return profile, true
}

func (m *Memory) FindUserByID(userID string) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[userID]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}

// ListTaskLists never fails: an unknown user has no lists.
func (m *Memory) ListTaskLists(userID string) []models.TaskList {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return models.CloneTaskLists(m.taskLists[userID])
}

func (m *Memory) CreateTaskList(userID string, data models.NewTaskList) models.TaskList {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := models.BuildTaskList(m.newID(), data)
	m.taskLists[userID] = append(m.taskLists[userID], list)
	return list.Clone()
}

func (m *Memory) ToggleTaskCompletion(userID, listID, taskID string) (models.TaskList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	list, err := m.findTaskList(userID, listID)
	if err != nil {
		return models.TaskList{}, err
	}

	task, ok := list.Task(taskID)
	if !ok {
		return models.TaskList{}, ErrTaskNotFound
	}
	task.Completed = !task.Completed
	return list.Clone(), nil
}

func (m *Memory) UpdateTaskList(userID, listID string, updates models.TaskListUpdate) (models.TaskList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	list, err := m.findTaskList(userID, listID)
	if err != nil {
		return models.TaskList{}, err
	}

	updates.ApplyTo(list)
	return list.Clone(), nil
}

// CreateTask appends a task and returns the whole list, matching what
// the API sends back to clients.
func (m *Memory) CreateTask(userID, listID string, data models.NewTask) (models.TaskList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	list, err := m.findTaskList(userID, listID)
	if err != nil {
		return models.TaskList{}, err
	}

	list.Tasks = append(list.Tasks, models.BuildTask(m.newID(), data, list.IsFinancial))
	return list.Clone(), nil
}

func (m *Memory) findTaskList(userID, listID string) (*models.TaskList, error) {
	lists, ok := m.taskLists[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	for i := range lists {
		if lists[i].ID == listID {
			return &lists[i], nil
		}
	}
	return nil, ErrTaskListNotFound
}
