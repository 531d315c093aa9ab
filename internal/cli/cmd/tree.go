package cmd

import (
	"fmt"
	"net/url"

	"github.com/dataroom/backend/internal/cli/api"
	"github.com/dataroom/backend/internal/cli/output"
	"github.com/spf13/cobra"
)

var flagTreeSearch string

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Show the folder hierarchy",
	Long: `Print your folders as a nested tree. With --search the tree is pruned
to matching folders and the ancestors leading to them.

  dataroom tree
  dataroom tree --search reports`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		params := url.Values{}
		if flagTreeSearch != "" {
			params.Set("search", flagTreeSearch)
		}

		var resp api.Response[api.Tree]
		if err := apiClient.Get("/folders/tree", params, &resp); err != nil {
			return fmt.Errorf("fetching folder tree: %w", err)
		}

		if flagJSON {
			output.JSON(resp.Data.Tree)
			return nil
		}

		output.Tree(resp.Data.Tree)
		return nil
	},
}

func init() {
	treeCmd.Flags().StringVar(&flagTreeSearch, "search", "", "Filter folders by name")
	rootCmd.AddCommand(treeCmd)
}
