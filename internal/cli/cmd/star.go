package cmd

import (
	"fmt"

	"github.com/dataroom/backend/internal/cli/api"
	"github.com/dataroom/backend/internal/cli/output"
	"github.com/spf13/cobra"
)

var flagUnstar bool

var starCmd = &cobra.Command{
	Use:   "star <file-id>",
	Short: "Star or unstar a file",
	Long: `Mark a file as starred so it shows up in the starred view, or clear
the flag with --remove.

  dataroom star 550e8400-...
  dataroom star 550e8400-... --remove`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		body := map[string]interface{}{
			"fileId":  args[0],
			"starred": !flagUnstar,
		}

		var resp api.Response[api.FileEnvelope]
		if err := apiClient.Patch("/files/starred", body, &resp); err != nil {
			return fmt.Errorf("updating star flag: %w", err)
		}

		if flagJSON {
			output.JSON(resp.Data.File)
			return nil
		}

		if flagUnstar {
			fmt.Printf("Unstarred %s\n", resp.Data.File.Name)
		} else {
			fmt.Printf("Starred %s\n", resp.Data.File.Name)
		}
		return nil
	},
}

func init() {
	starCmd.Flags().BoolVar(&flagUnstar, "remove", false, "Remove the star instead of adding it")
	rootCmd.AddCommand(starCmd)
}
