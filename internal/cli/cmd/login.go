package cmd

import (
	"errors"
	"fmt"

	"github.com/dataroom/backend/internal/cli/api"
	"github.com/dataroom/backend/internal/cli/config"
	"github.com/spf13/cobra"
)

var flagToken string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate with your Data Room server",
	Long: `Authenticate with a session token.

Sign in through the web app first, then copy the token it issues:

  dataroom login --token eyJhbGciOi...`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagToken == "" {
			return fmt.Errorf("a token is required — sign in via the web app and run \"dataroom login --token X\"")
		}

		// Validate the token by calling /auth/me.
		client := api.NewClient(cfg.ServerURL, flagToken)
		var resp api.Response[api.UserEnvelope]
		if err := client.Get("/auth/me", nil, &resp); err != nil {
			var apiErr *api.APIError
			if errors.As(err, &apiErr) && apiErr.Status == 401 {
				return fmt.Errorf("invalid token — server returned 401")
			}
			return fmt.Errorf("validating token: %w", err)
		}

		cfg.Token = flagToken
		if err := config.Save(cfg); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}

		fmt.Printf("Logged in as %s (%s)\n", resp.Data.User.Name, resp.Data.User.Email)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&flagToken, "token", "", "Session token issued after web sign-in")
	rootCmd.AddCommand(loginCmd)
}
