package main

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/punch-analytics/internal/config"
	"github.com/cmlabs-hris/punch-analytics/internal/pkg/jwt"
	"github.com/spf13/cobra"
)

var tokenSubject string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an access token for the upload endpoints",
	Long: `Sign an access token with JWT_SECRET_KEY from the environment or .env
file. The token lifetime follows JWT_ACCESS_EXPIRATION_TIME.`,
	Example: `  punchctl token --subject device-export`,
	RunE:    runToken,
}

func init() {
	tokenCmd.Flags().StringVarP(&tokenSubject, "subject", "s", "", "Token subject, e.g. the uploading system (required)")
	tokenCmd.MarkFlagRequired("subject")

	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	token, expiresAt, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration).GenerateAccessToken(tokenSubject)
	if err != nil {
		return fmt.Errorf("sign token: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	fmt.Fprintf(cmd.ErrOrStderr(), "expires at %s\n", time.Unix(expiresAt, 0).UTC().Format(time.RFC3339))
	return nil
}
