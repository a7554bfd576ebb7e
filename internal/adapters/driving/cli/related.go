package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var relatedJSON bool

var relatedCmd = &cobra.Command{
	Use:   "related [type] [slug]",
	Short: "Resolve the related links for a record",
	Long: `Runs the three-step relationship resolution for a catalog record:
shared attribute, shared passage references, then keyword overlap.`,
	Args: cobra.ExactArgs(2),
	RunE: runRelated,
}

func init() {
	relatedCmd.Flags().BoolVar(&relatedJSON, "json", false, "output links as JSON")
	rootCmd.AddCommand(relatedCmd)
}

func runRelated(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}
	if resolverService == nil {
		return errors.New("relationship resolver not configured")
	}

	record, err := loadRecord(cmd, args)
	if err != nil {
		return err
	}

	links, err := resolverService.RelatedLinks(cmd.Context(), record)
	if err != nil {
		return fmt.Errorf("resolving related links: %w", err)
	}

	if relatedJSON {
		data, err := json.MarshalIndent(links, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal links: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(links) == 0 {
		cmd.Println("No related links.")
		return nil
	}

	cmd.Printf("Related links for %s/%s:\n", record.EntityType(), record.Meta().Slug)
	cmd.Println()
	for i, link := range links {
		cmd.Printf("  [%d] %s (%s)\n", i+1, link.Title, link.LinkType)
		cmd.Printf("      %s\n", link.Href)
		if link.Snippet != "" {
			cmd.Printf("      %s\n", link.Snippet)
		}
	}
	return nil
}
