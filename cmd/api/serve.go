package main

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"quote_negotiation/internal/adapter/http/routes"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func newServeCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := c.load(cmd)
			if err != nil {
				return err
			}
			if err := c.cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			log.Info().Interface("config", c.cfg.Redacted()).Msg("configuration")

			if strings.EqualFold(c.cfg.LogLevel, "debug") {
				gin.SetMode(gin.DebugMode)
			} else {
				gin.SetMode(gin.ReleaseMode)
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv, err := routes.New(ctx, c.cfg, log)
			if err != nil {
				return fmt.Errorf("startup: %w", err)
			}
			return srv.Run(ctx)
		},
	}
}
