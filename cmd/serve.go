package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackgraver/simple-track/logger"
	"github.com/jackgraver/simple-track/routes"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		if len(a.cfg.JWTSecret) == 0 {
			logger.Warn("JWT_SECRET not set, protected routes will reject every token")
		}
		if a.cfg.Env == "production" {
			gin.SetMode(gin.ReleaseMode)
		}

		r := routes.SetupRouter(routes.Deps{
			Log:         logger.L(),
			CORSOrigins: a.cfg.CORSOrigins,
			Auth:        a.auth,
			Foods:       a.foods,
			Meals:       a.meals,
			Days:        a.days,
			Alerts:      a.alerts,
			Exports:     a.exports,
			Hub:         a.hub,
		})
		srv := &http.Server{
			Addr:              ":" + a.cfg.Port,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			logger.Info("server starting", zap.String("port", a.cfg.Port))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			logger.Info("server shutting down")
			return srv.Shutdown(shutdownCtx)
		})
		return g.Wait()
	},
}
