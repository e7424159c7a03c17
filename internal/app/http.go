package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/agua-vida/internal/config"
	v1 "github.com/adanyl0v/agua-vida/internal/delivery/http/v1"
	"github.com/adanyl0v/agua-vida/internal/services"
)

func MustListenAndServeHTTP() {
	cfg := config.Global()
	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	httpCfg := cfg.HTTP

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
	}))
	registerRoutes(router)

	server := &http.Server{
		Addr:    net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler: router,
	}

	go func() {
		globalLogger.Info().
			Str("host", httpCfg.Host).
			Str("port", httpCfg.Port).
			Msg("setting up http server")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			globalLogger.Error().
				Err(err).
				Msg("failed to listen and serve http")
			panic(err)
		}
	}()

	// kill (no params) sends SIGTERM, kill -2 sends SIGINT.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	globalLogger.Info().
		Msg("shutting down http server")

	ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to shutdown http server")
		panic(err)
	}
	globalLogger.Info().Msg("shut down http server")
}

func registerRoutes(router *gin.Engine) {
	cfg := config.Global()
	sessionCfg := cfg.Session
	googleCfg := cfg.Google

	v1Handler := v1.New(
		globalLogger,
		cfg.FrontendURL,
		v1.CookieConfig{
			Name:   sessionCfg.CookieName,
			Secure: sessionCfg.CookieSecure,
		},
		services.NewUserService(globalLogger, globalStore),
		services.NewTaskListService(globalLogger, globalStore),
		services.NewSessionService(
			globalLogger,
			sessionCfg.Issuer,
			[]byte(sessionCfg.SigningKey),
			sessionCfg.TTL,
		),
		services.NewGoogleIdentityService(
			globalLogger,
			googleCfg.ClientID,
			googleCfg.ClientSecret,
			googleCfg.CallbackURL,
		),
	)

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Água Vida Backend is running!")
	})
	v1.RegisterRoutes(router, v1Handler)
}
