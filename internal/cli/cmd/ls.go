package cmd

import (
	"fmt"
	"net/url"

	"github.com/dataroom/backend/internal/cli/api"
	"github.com/dataroom/backend/internal/cli/output"
	"github.com/spf13/cobra"
)

var flagStarred bool

var lsCmd = &cobra.Command{
	Use:   "ls [folder-id]",
	Short: "List files and folders",
	Long: `List the root level, a folder's contents, or your starred files.

  dataroom ls                       List root
  dataroom ls 550e8400-...          List a folder by ID
  dataroom ls --starred             List starred files`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		params := url.Values{}
		if len(args) > 0 {
			params.Set("folderId", args[0])
		}
		if flagStarred {
			params.Set("starred", "true")
		}

		var resp api.Response[api.Listing]
		if err := apiClient.Get("/files", params, &resp); err != nil {
			return fmt.Errorf("listing files: %w", err)
		}

		if flagJSON {
			output.JSON(resp.Data)
			return nil
		}

		output.Listing(resp.Data)
		return nil
	},
}

func init() {
	lsCmd.Flags().BoolVar(&flagStarred, "starred", false, "List starred files only")
	rootCmd.AddCommand(lsCmd)
}
