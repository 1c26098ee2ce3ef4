package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pageza/recipe-recommender/backend/config"
	"github.com/pageza/recipe-recommender/backend/internal/service"
	"github.com/pageza/recipe-recommender/backend/internal/types"
)

var (
	tokenSubject string
	tokenRole    string
	tokenTTL     time.Duration
)

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "", "who the token is issued to (required)")
	tokenCmd.Flags().StringVar(&tokenRole, "role", types.RoleAdmin, "role claim")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", time.Hour, "token lifetime")
	_ = tokenCmd.MarkFlagRequired("subject")
	rootCmd.AddCommand(tokenCmd)
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an API token signed with JWT_SECRET",
	Long: `Issue a bearer token for the recommendation API. Tokens with the admin
role may call POST /api/v1/admin/catalog/reload.`,
	Args: cobra.NoArgs,
	RunE: runToken,
}

func runToken(cmd *cobra.Command, args []string) error {
	if tokenTTL <= 0 {
		return errors.New("--ttl must be positive")
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	token, err := service.NewTokenService(cfg.JWTSecret).GenerateToken(tokenSubject, tokenRole, tokenTTL)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
