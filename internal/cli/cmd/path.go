package cmd

import (
	"fmt"

	"github.com/dataroom/backend/internal/cli/api"
	"github.com/dataroom/backend/internal/cli/output"
	"github.com/spf13/cobra"
)

var pathCmd = &cobra.Command{
	Use:   "path <folder-id>",
	Short: "Show the breadcrumb trail to a folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		var resp api.Response[api.Path]
		if err := apiClient.Get("/folders/"+args[0]+"/path", nil, &resp); err != nil {
			return fmt.Errorf("fetching folder path: %w", err)
		}

		if flagJSON {
			output.JSON(resp.Data)
			return nil
		}

		output.Breadcrumb(resp.Data)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pathCmd)
}
