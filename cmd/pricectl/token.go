package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/infrastructure/auth"
	"github.com/FabiaMarchiori/aplicativodeprecificacao-sub000/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type tokenFlags struct {
	tenantID string
	userID   string
	username string
	ttl      time.Duration
	verbose  bool
}

func tokenCmd() *cobra.Command {
	f := &tokenFlags{}

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Sign an access token for local testing",
		Long: `Sign an HS256 access token with the configured jwt.secret. The API only
validates tokens; in production they come from the identity provider.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return runToken(cmd.OutOrStdout(), cfg.JWT, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.tenantID, "tenant", "", "organization (tenant) ID the token is scoped to")
	flags.StringVar(&f.userID, "user", "", "user ID (default: random)")
	flags.StringVar(&f.username, "username", "operator", "username claim")
	flags.DurationVar(&f.ttl, "ttl", time.Hour, "token lifetime")
	flags.BoolVarP(&f.verbose, "verbose", "v", false, "print the claims after the token")
	_ = cmd.MarkFlagRequired("tenant")

	return cmd
}

func runToken(out io.Writer, jwtCfg config.JWTConfig, f *tokenFlags) error {
	if jwtCfg.Secret == "" {
		return errors.New("jwt.secret is not configured")
	}
	if f.ttl <= 0 {
		return fmt.Errorf("ttl must be positive, got %s", f.ttl)
	}

	tenantID, err := uuid.Parse(f.tenantID)
	if err != nil {
		return fmt.Errorf("invalid tenant ID %q: %w", f.tenantID, err)
	}
	userID := uuid.New()
	if f.userID != "" {
		userID, err = uuid.Parse(f.userID)
		if err != nil {
			return fmt.Errorf("invalid user ID %q: %w", f.userID, err)
		}
	}

	token, claims, err := auth.NewJWTService(jwtCfg).IssueAccessToken(auth.IssueInput{
		TenantID: tenantID,
		UserID:   userID,
		Username: f.username,
		TTL:      f.ttl,
	})
	if err != nil {
		return fmt.Errorf("failed to sign token: %w", err)
	}

	fmt.Fprintln(out, token)
	if f.verbose {
		fmt.Fprintf(out, "tenant:  %s\nuser:    %s\nexpires: %s\n",
			claims.TenantID, claims.UserID, claims.ExpiresAt.Time.Format(time.RFC3339))
	}
	return nil
}
