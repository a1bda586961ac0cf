package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/facebookgo/inject"
	"github.com/gin-gonic/gin"
	"github.com/op/go-logging"
	chttp "github.com/ummahdev/core/core/http"
	"github.com/ummahdev/core/deps"
	"github.com/ummahdev/core/modules/api/controller"
)

var log = logging.MustGetLogger("api")

type Module struct {
	Deps  *deps.Deps `inject:""`
	Flags controller.FlagsAPI
	Users controller.UsersAPI
}

// Router builds the gin engine with every route and middleware.
func (module *Module) Router() *gin.Engine {
	cfg := module.Deps.Config()
	debug := cfg.UString("environment", "development") == "development"
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(chttp.RequestID())
	router.Use(chttp.ErrorTracking(module.Deps.Errors(), debug))
	router.Use(chttp.APM(module.Deps.APM()))
	router.Use(chttp.CORS())
	if debug {
		router.Use(gin.Recovery())
	}

	v1 := router.Group("/v1")
	v1.Use(chttp.Authorization(cfg.UString("application.secret")))

	// Reasons are public so the report dialog can render before sign in.
	v1.GET("/flags/reasons", module.Flags.FlagReasons)

	authorized := v1.Group("")
	authorized.Use(chttp.NeedAuthorization())
	{
		// Flag routes
		authorized.POST("/flags", module.Flags.NewFlag)
		authorized.GET("/flags", module.Flags.Flags)
		authorized.GET("/flags/counts", module.Flags.Counts)
		authorized.GET("/flags/:id", module.Flags.Flag)
		authorized.PUT("/flags/:id/approve", module.Flags.Approve)
		authorized.PUT("/flags/:id/reject", module.Flags.Reject)
		authorized.DELETE("/flags/:id", module.Flags.Resolve)

		// User management routes
		authorized.GET("/users", module.Users.Users)
		authorized.PUT("/users/:id/role", module.Users.ChangeRole)
		authorized.POST("/users/:id/ban", module.Users.Ban)
		authorized.DELETE("/users/:id/ban", module.Users.Unban)
	}
	return router
}

// Run serves until an interrupt arrives or the listener fails.
func (module *Module) Run(bindTo string) error {
	// Start the http server as an isolated goroutine.
	srv := &http.Server{
		Addr:    bindTo,
		Handler: module.Router(),
	}
	failed := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			failed <- err
		}
	}()
	log.Infof("Listening on %s", bindTo)

	// Wait for interrupt signal to gracefully shutdown the server with
	// a timeout of 5 seconds.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)
	select {
	case err := <-failed:
		return fmt.Errorf("listen on %s: %w", bindTo, err)
	case <-quit:
	}
	log.Info("Shutdown Server ...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info("Server exiting")
	return nil
}

func (module *Module) Populate(g inject.Graph) {
	err := g.Provide(
		&inject.Object{Value: &module.Flags},
		&inject.Object{Value: &module.Users},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Populate the DI with the instances
	if err := g.Populate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
