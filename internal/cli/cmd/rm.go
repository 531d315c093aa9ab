package cmd

import (
	"fmt"
	"net/url"

	"github.com/dataroom/backend/internal/cli/api"
	"github.com/dataroom/backend/internal/cli/output"
	"github.com/spf13/cobra"
)

var (
	flagRmFolder bool
	flagRmAll    bool
)

var rmCmd = &cobra.Command{
	Use:   "rm [id]...",
	Short: "Delete files or folders",
	Long: `Delete files, folders (recursively), or the whole workspace.

  dataroom rm 550e8400-...                 Delete one file
  dataroom rm 550e8400-... --folder        Delete a folder and its contents
  dataroom rm <id> <id> <id>               Bulk delete several files
  dataroom rm --all                        Delete everything`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		if flagRmAll {
			if len(args) > 0 {
				return fmt.Errorf("--all does not take ids")
			}
			var resp api.Response[api.Message]
			if err := apiClient.Delete("/files", url.Values{"all": {"true"}}, &resp); err != nil {
				return fmt.Errorf("clearing workspace: %w", err)
			}
			fmt.Println("Workspace cleared.")
			return nil
		}

		if len(args) == 0 {
			return fmt.Errorf("at least one id is required (or --all)")
		}

		// Several ids go through the bulk endpoint so each item reports its
		// own outcome.
		if len(args) > 1 {
			body := map[string]interface{}{}
			if flagRmFolder {
				body["folderIds"] = args
			} else {
				body["fileIds"] = args
			}

			var resp api.Response[api.BulkDeleteReport]
			if err := apiClient.Post("/files/bulk-delete", body, &resp); err != nil {
				return fmt.Errorf("bulk deleting: %w", err)
			}
			if flagJSON {
				output.JSON(resp.Data)
				return nil
			}
			output.BulkDeleteReport(resp.Data)
			return nil
		}

		if flagRmFolder {
			var resp api.Response[api.Message]
			if err := apiClient.Delete("/folders", url.Values{"folderId": {args[0]}}, &resp); err != nil {
				return fmt.Errorf("deleting folder: %w", err)
			}
			fmt.Println("Folder deleted.")
			return nil
		}

		var resp api.Response[api.Message]
		if err := apiClient.Delete("/files", url.Values{"fileId": {args[0]}}, &resp); err != nil {
			return fmt.Errorf("deleting file: %w", err)
		}
		fmt.Println("File deleted.")
		return nil
	},
}

func init() {
	rmCmd.Flags().BoolVar(&flagRmFolder, "folder", false, "Treat ids as folder ids (recursive delete)")
	rmCmd.Flags().BoolVar(&flagRmAll, "all", false, "Delete every file and folder in the workspace")
	rootCmd.AddCommand(rmCmd)
}
