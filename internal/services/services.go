package services

import (
	"context"
	"errors"
	"time"

	"github.com/adanyl0v/agua-vida/internal/models"
	"github.com/adanyl0v/agua-vida/internal/store"
)

var (
	ErrUserNotFound     = store.ErrUserNotFound
	ErrTaskListNotFound = store.ErrTaskListNotFound
	ErrTaskNotFound     = store.ErrTaskNotFound
	ErrSessionInvalid   = errors.New("session invalid")
	ErrSessionExpired   = errors.New("session expired")
	ErrIdentityExchange = errors.New("identity exchange failed")
)

type UserService interface {
	// FindOrCreate returns the user with the profile's ID. A user seen
	// for the first time is stored and given the demo task lists.
	FindOrCreate(ctx context.Context, profile models.User) (*models.User, error)

	// GetByID returns ErrUserNotFound for unknown IDs.
	GetByID(ctx context.Context, userID string) (*models.User, error)
}

type TaskListService interface {
	// List returns the user's task lists. Unknown users have none.
	List(ctx context.Context, userID string) ([]models.TaskList, error)

	Create(ctx context.Context, userID string, data models.NewTaskList) (*models.TaskList, error)

	// Update applies the timer mode and rest interval from the update
	// when they are valid and ignores everything else.
	//
	// It returns ErrTaskListNotFound if the list doesn't exist.
	Update(ctx context.Context, userID, listID string, update models.TaskListUpdate) (*models.TaskList, error)

	// ToggleTask flips the completion flag of a task and returns the
	// list containing it.
	//
	// It returns ErrTaskListNotFound or ErrTaskNotFound when either
	// lookup misses.
	ToggleTask(ctx context.Context, userID, listID, taskID string) (*models.TaskList, error)

	// CreateTask appends a task and returns the updated list. The
	// monetary value is dropped unless the list is financial.
	CreateTask(ctx context.Context, userID, listID string, data models.NewTask) (*models.TaskList, error)
}

type SessionService interface {
	// Issue signs a session token for the user.
	Issue(userID string) (*Session, error)

	// Parse validates the token and returns the user ID it was issued
	// for, or ErrSessionExpired / ErrSessionInvalid.
	Parse(token string) (string, error)

	// TTL is the lifetime of issued tokens.
	TTL() time.Duration
}

type IdentityService interface {
	// AuthCodeURL is the consent page the browser is sent to.
	AuthCodeURL(state string) string

	// Exchange trades the authorization code for the user's profile.
	Exchange(ctx context.Context, code string) (*models.User, error)
}

type Session struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
}
