package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/examhall/backend/internal/auth"
)

var tokenCmd = &cobra.Command{
	Use:   "token <user-id|email>",
	Short: "Issue a bearer token for a stored user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ttl, _ := cmd.Flags().GetDuration("ttl")

		s, cfg, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()
		if cfg.JWTSecret == "" {
			return errors.New("JWT_SECRET is not set")
		}

		ctx := cmd.Context()
		u, err := s.GetUser(ctx, args[0])
		if err != nil {
			u, err = s.GetUserByEmail(ctx, args[0])
		}
		if err != nil {
			return fmt.Errorf("user %q: %w", args[0], err)
		}

		token, err := auth.NewTokens(cfg.JWTSecret, ttl).Issue(u.ID)
		if err != nil {
			return fmt.Errorf("sign token: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "token for %s\n", u.DisplayName())
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().Duration("ttl", 0, "Token lifetime; 0 issues a token without expiry")
}
