package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	knowledgeCmd := &cobra.Command{
		Use:   "knowledge",
		Short: "Inspect the travel knowledge base",
	}

	search := &cobra.Command{
		Use:   "search [query]",
		Short: "Semantic search over travel tips",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runKnowledgeSearch,
	}
	search.Flags().IntP("limit", "l", 3, "Max results")

	knowledgeCmd.AddCommand(search)
	rootCmd.AddCommand(knowledgeCmd)
}

func runKnowledgeSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")

	container := NewContainer(cmd.Context(), cfg)
	defer container.Cleanup()

	hits, err := container.Knowledge.Search(cmd.Context(), strings.Join(args, " "), limit)
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(hits, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return nil
}
