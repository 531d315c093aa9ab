package cmd

import (
	"fmt"
	"net/url"

	"github.com/dataroom/backend/internal/cli/api"
	"github.com/dataroom/backend/internal/cli/output"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search files by name",
	Long: `Search your whole workspace for files whose name contains the term,
case-insensitively.

  dataroom search report
  dataroom search "Q1 budget"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		params := url.Values{}
		params.Set("search", args[0])

		var resp api.Response[api.Listing]
		if err := apiClient.Get("/files", params, &resp); err != nil {
			return fmt.Errorf("searching files: %w", err)
		}

		if flagJSON {
			output.JSON(resp.Data.Files)
			return nil
		}

		output.Listing(api.Listing{Files: resp.Data.Files})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
