package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/versewell/lumen/internal/core/domain"
)

var intelJSON bool

var intelCmd = &cobra.Command{
	Use:   "intel [passage-id]",
	Short: "Show the intelligence payload for a passage",
	Long: `Resolves the intelligence payload for a scripture passage: its
snapshot, the catalog records mentioning it, and its top semantic matches.`,
	Args: cobra.ExactArgs(1),
	RunE: runIntel,
}

func init() {
	intelCmd.Flags().BoolVar(&intelJSON, "json", false, "output payload as JSON")
	rootCmd.AddCommand(intelCmd)
}

func runIntel(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}
	if intelService == nil {
		return errors.New("intelligence provider not configured")
	}

	payload, err := intelService.IntelligenceFor(cmd.Context(), args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("no passage with id %q", args[0])
		}
		return fmt.Errorf("resolving intelligence: %w", err)
	}

	if intelJSON {
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal payload: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("Passage: %s (%s)\n", payload.Subject.Reference, payload.Subject.Href())
	cmd.Println()

	if len(payload.Mentions) == 0 {
		cmd.Println("No catalog mentions.")
	} else {
		cmd.Println("Mentions:")
		for _, mention := range payload.Mentions {
			cmd.Printf("  - %s (%s) %s\n", mention.Title, mention.LinkType, mention.Href)
		}
	}
	cmd.Println()

	if len(payload.Matches) == 0 {
		cmd.Println("No semantic matches.")
		return nil
	}
	cmd.Println("Semantic matches:")
	for i, match := range payload.Matches {
		cmd.Printf("  [%d] %s (%.3f)\n", i+1, match.Reference, match.Score)
		cmd.Printf("      %s\n", match.Href)
		if match.Snippet != "" {
			cmd.Printf("      %s\n", match.Snippet)
		}
	}
	return nil
}
