package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var categoriesJSON bool

var categoriesCmd = &cobra.Command{
	Use:   "categories [type]",
	Short: "Group records of a type by category",
	Long: `Lists every record of an entity type bucketed by normalized
category, in hub-page order.`,
	Args: cobra.ExactArgs(1),
	RunE: runCategories,
}

func init() {
	categoriesCmd.Flags().BoolVar(&categoriesJSON, "json", false, "output groups as JSON")
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}
	if navigatorService == nil {
		return errors.New("navigator not configured")
	}

	entityType, err := parseEntityType(args[0])
	if err != nil {
		return err
	}

	groups, err := navigatorService.Categories(cmd.Context(), entityType)
	if err != nil {
		return fmt.Errorf("grouping categories: %w", err)
	}

	if categoriesJSON {
		data, err := json.MarshalIndent(groups, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal groups: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(groups) == 0 {
		cmd.Printf("No %s records.\n", entityType)
		return nil
	}

	for _, group := range groups {
		cmd.Printf("%s (%s): %d\n", group.Label, group.Slug, len(group.Items))
		for _, item := range group.Items {
			cmd.Printf("  - %s %s\n", item.Title, item.Href())
		}
		cmd.Println()
	}
	return nil
}
