package v1

import (
	"errors"
	"io"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/agua-vida/internal/models"
	"github.com/adanyl0v/agua-vida/internal/services"
)

type createTaskListRequest struct {
	Title       string `json:"title" binding:"required"`
	ImageURL    string `json:"imageUrl"`
	Stack       string `json:"stack"`
	HasTimer    bool   `json:"hasTimer"`
	IsFinancial bool   `json:"isFinancial"`
}

// updateTaskListRequest keeps raw values so that fields of the wrong
// type are ignored instead of failing the whole request.
type updateTaskListRequest struct {
	TimerMode    any `json:"timerMode"`
	RestInterval any `json:"restInterval"`
}

func (r updateTaskListRequest) toUpdate() models.TaskListUpdate {
	var update models.TaskListUpdate
	if mode, ok := r.TimerMode.(string); ok {
		m := models.TimerMode(mode)
		update.TimerMode = &m
	}
	if minutes, ok := r.RestInterval.(float64); ok && minutes == math.Trunc(minutes) && minutes <= math.MaxInt32 {
		n := int(minutes)
		update.RestInterval = &n
	}
	return update
}

type createTaskRequest struct {
	Text  string `json:"text" binding:"required"`
	Value any    `json:"value"`
}

func (r createTaskRequest) toNewTask() models.NewTask {
	task := models.NewTask{Text: r.Text}
	if value, ok := r.Value.(float64); ok {
		task.Value = &value
	}
	return task
}

func (h *handlerImpl) HandleGetTaskLists(c *gin.Context) {
	user, ok := userFromContext(c)
	if !ok {
		h.logger.Error().Msg("no user found in context")
		abort(c, newUnauthorizedError(errNotLoggedIn))
		return
	}

	lists, err := h.taskLists.List(c, user.ID)
	if err != nil {
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	h.logger.Info().
		Str("user_id", user.ID).
		Msg("fetched task lists")
	c.JSON(http.StatusOK, lists)
}

func (h *handlerImpl) HandleCreateTaskList(c *gin.Context) {
	user, ok := userFromContext(c)
	if !ok {
		h.logger.Error().Msg("no user found in context")
		abort(c, newUnauthorizedError(errNotLoggedIn))
		return
	}

	var req createTaskListRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errTitleRequired))
		return
	}

	list, err := h.taskLists.Create(c, user.ID, models.NewTaskList{
		Title:       req.Title,
		ImageURL:    req.ImageURL,
		Stack:       req.Stack,
		HasTimer:    req.HasTimer,
		IsFinancial: req.IsFinancial,
	})
	if err != nil {
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusCreated, list)
}

func (h *handlerImpl) HandleUpdateTaskList(c *gin.Context) {
	user, ok := userFromContext(c)
	if !ok {
		h.logger.Error().Msg("no user found in context")
		abort(c, newUnauthorizedError(errNotLoggedIn))
		return
	}

	var req updateTaskListRequest
	err := c.ShouldBindJSON(&req)
	if err != nil && !errors.Is(err, io.EOF) {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newStatusTextError(http.StatusBadRequest))
		return
	}

	listID := c.Param("listId")
	list, err := h.taskLists.Update(c, user.ID, listID, req.toUpdate())
	if err != nil {
		if isNotFound(err) {
			abort(c, newNotFoundError(errListNotFound))
			return
		}
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *handlerImpl) HandleToggleTask(c *gin.Context) {
	user, ok := userFromContext(c)
	if !ok {
		h.logger.Error().Msg("no user found in context")
		abort(c, newUnauthorizedError(errNotLoggedIn))
		return
	}

	list, err := h.taskLists.ToggleTask(c, user.ID, c.Param("listId"), c.Param("taskId"))
	if err != nil {
		if isNotFound(err) {
			abort(c, newNotFoundError(errListOrTaskMissing))
			return
		}
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, list)
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	user, ok := userFromContext(c)
	if !ok {
		h.logger.Error().Msg("no user found in context")
		abort(c, newUnauthorizedError(errNotLoggedIn))
		return
	}

	var req createTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errTextRequired))
		return
	}

	list, err := h.taskLists.CreateTask(c, user.ID, c.Param("listId"), req.toNewTask())
	if err != nil {
		if isNotFound(err) {
			abort(c, newNotFoundError(errListNotFound))
			return
		}
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusCreated, list)
}

func isNotFound(err error) bool {
	return errors.Is(err, services.ErrUserNotFound) ||
		errors.Is(err, services.ErrTaskListNotFound) ||
		errors.Is(err, services.ErrTaskNotFound)
}
