package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/agua-vida/internal/models"
	"github.com/adanyl0v/agua-vida/internal/store"
)

type taskListServiceImpl struct {
	logger zerolog.Logger
	store  *store.Memory
}

func NewTaskListService(
	logger zerolog.Logger,
	store *store.Memory,
) TaskListService {
	return &taskListServiceImpl{
		logger: logger,
		store:  store,
	}
}

func (s *taskListServiceImpl) List(_ context.Context, userID string) ([]models.TaskList, error) {
	lists := s.store.ListTaskLists(userID)
	s.logger.Debug().
		Str("user_id", userID).
		Int("count", len(lists)).
		Msg("selected task lists")
	return lists, nil
}

func (s *taskListServiceImpl) Create(_ context.Context, userID string, data models.NewTaskList) (*models.TaskList, error) {
	list := s.store.CreateTaskList(userID, data)
	s.logger.Info().
		Str("user_id", userID).
		Str("list_id", list.ID).
		Msg("created task list")
	return &list, nil
}

func (s *taskListServiceImpl) Update(_ context.Context, userID, listID string, update models.TaskListUpdate) (*models.TaskList, error) {
	list, err := s.store.UpdateTaskList(userID, listID, update)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", userID).
			Str("list_id", listID).
			Msg("failed to update task list")
		return nil, err
	}
	s.logger.Info().
		Str("list_id", list.ID).
		Str("timer_mode", string(list.TimerMode)).
		Int("rest_interval", list.RestInterval).
		Msg("updated task list")
	return &list, nil
}

func (s *taskListServiceImpl) ToggleTask(_ context.Context, userID, listID, taskID string) (*models.TaskList, error) {
	list, err := s.store.ToggleTaskCompletion(userID, listID, taskID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", userID).
			Str("list_id", listID).
			Str("task_id", taskID).
			Msg("failed to toggle task")
		return nil, err
	}
	s.logger.Info().
		Str("list_id", listID).
		Str("task_id", taskID).
		Msg("toggled task")
	return &list, nil
}

func (s *taskListServiceImpl) CreateTask(_ context.Context, userID, listID string, data models.NewTask) (*models.TaskList, error) {
	list, err := s.store.CreateTask(userID, listID, data)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("user_id", userID).
			Str("list_id", listID).
			Msg("failed to create task")
		return nil, err
	}
	s.logger.Info().
		Str("list_id", listID).
		Int("tasks", len(list.Tasks)).
		Msg("created task")
	return &list, nil
}
