package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/agua-vida/internal/services"
)

type Handler interface {
	HandleGoogleLogin(c *gin.Context)
	HandleGoogleCallback(c *gin.Context)
	HandleCurrentUser(c *gin.Context)
	HandleLogout(c *gin.Context)
	HandleAuthMiddleware(c *gin.Context)

	HandleGetTaskLists(c *gin.Context)
	HandleCreateTaskList(c *gin.Context)
	HandleUpdateTaskList(c *gin.Context)
	HandleToggleTask(c *gin.Context)
	HandleCreateTask(c *gin.Context)
}

type CookieConfig struct {
	Name   string
	Secure bool
}

type handlerImpl struct {
	logger      zerolog.Logger
	frontendURL string
	cookie      CookieConfig
	users       services.UserService
	taskLists   services.TaskListService
	sessions    services.SessionService
	identity    services.IdentityService
}

func New(
	logger zerolog.Logger,
	frontendURL string,
	cookie CookieConfig,
	userService services.UserService,
	taskListService services.TaskListService,
	sessionService services.SessionService,
	identityService services.IdentityService,
) Handler {
	return &handlerImpl{
		logger:      logger,
		frontendURL: frontendURL,
		cookie:      cookie,
		users:       userService,
		taskLists:   taskListService,
		sessions:    sessionService,
		identity:    identityService,
	}
}

// RegisterRoutes mounts the auth flow under /auth and the JSON API
// under /api. Task list routes require a session.
func RegisterRoutes(router gin.IRouter, h Handler) {
	authRouter := router.Group("/auth")
	authRouter.GET("/google", h.HandleGoogleLogin)
	authRouter.GET("/google/callback", h.HandleGoogleCallback)

	apiRouter := router.Group("/api")
	apiRouter.GET("/current_user", h.HandleCurrentUser)
	apiRouter.GET("/logout", h.HandleLogout)

	listsRouter := apiRouter.Group("/tasklists", h.HandleAuthMiddleware)
	listsRouter.GET("", h.HandleGetTaskLists)
	listsRouter.POST("", h.HandleCreateTaskList)
	listsRouter.PATCH("/:listId", h.HandleUpdateTaskList)
	listsRouter.POST("/:listId/tasks", h.HandleCreateTask)
	listsRouter.PATCH("/:listId/tasks/:taskId", h.HandleToggleTask)
}
