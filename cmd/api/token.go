package main

import (
	"errors"
	"fmt"
	"time"

	"quote_negotiation/internal/adapter/http/middleware"

	"github.com/spf13/cobra"
)

func newTokenCommand(c *cli) *cobra.Command {
	var (
		userID string
		ttl    time.Duration
	)
	cmd := &cobra.Command{
		Use:     "token",
		Short:   "Mint a development bearer token for a user id",
		Example: "  quotes-api token --user F1 --ttl 1h",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := c.load(cmd); err != nil {
				return err
			}
			if c.cfg.JWTSecret == "" {
				return errors.New("JWT_SECRET is required")
			}
			token, err := middleware.GenerateToken(c.cfg.JWTSecret, c.cfg.JWTIssuer, userID, ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "user id placed in the token")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
