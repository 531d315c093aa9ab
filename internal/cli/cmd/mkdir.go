package cmd

import (
	"fmt"

	"github.com/dataroom/backend/internal/cli/api"
	"github.com/dataroom/backend/internal/cli/output"
	"github.com/spf13/cobra"
)

var flagParent string

var mkdirCmd = &cobra.Command{
	Use:   "mkdir <name>",
	Short: "Create a new folder",
	Long: `Create a folder at root level or inside another folder.

  dataroom mkdir "My Documents"
  dataroom mkdir Reports --parent <uuid>`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		body := map[string]interface{}{"name": args[0]}
		if flagParent != "" {
			body["parentFolderId"] = flagParent
		}

		var resp api.Response[api.FolderEnvelope]
		if err := apiClient.Post("/folders", body, &resp); err != nil {
			return fmt.Errorf("creating folder: %w", err)
		}

		if flagJSON {
			output.JSON(resp.Data.Folder)
			return nil
		}

		fmt.Printf("Created folder: %s (id: %s)\n", resp.Data.Folder.Name, resp.Data.Folder.ID)
		return nil
	},
}

func init() {
	mkdirCmd.Flags().StringVar(&flagParent, "parent", "", "Parent folder ID")
	rootCmd.AddCommand(mkdirCmd)
}
