package cmd

import (
	"fmt"

	"github.com/dataroom/backend/internal/cli/api"
	"github.com/dataroom/backend/internal/cli/output"
	"github.com/spf13/cobra"
)

var flagRenameFolder bool

var renameCmd = &cobra.Command{
	Use:   "rename <id> <new-name>",
	Short: "Rename a file or folder",
	Long: `Rename a file, or a folder with --folder. The server rejects names
that collide with a sibling.

  dataroom rename 550e8400-... "report-final.pdf"
  dataroom rename 550e8400-... Archive --folder`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		if flagRenameFolder {
			body := map[string]interface{}{"folderId": args[0], "name": args[1]}
			var resp api.Response[api.FolderEnvelope]
			if err := apiClient.Patch("/folders", body, &resp); err != nil {
				return fmt.Errorf("renaming folder: %w", err)
			}
			if flagJSON {
				output.JSON(resp.Data.Folder)
				return nil
			}
			fmt.Printf("Renamed folder to %s\n", resp.Data.Folder.Name)
			return nil
		}

		body := map[string]interface{}{"fileId": args[0], "name": args[1]}
		var resp api.Response[api.FileEnvelope]
		if err := apiClient.Patch("/files", body, &resp); err != nil {
			return fmt.Errorf("renaming file: %w", err)
		}
		if flagJSON {
			output.JSON(resp.Data.File)
			return nil
		}
		fmt.Printf("Renamed file to %s\n", resp.Data.File.Name)
		return nil
	},
}

func init() {
	renameCmd.Flags().BoolVar(&flagRenameFolder, "folder", false, "Rename a folder instead of a file")
	rootCmd.AddCommand(renameCmd)
}
