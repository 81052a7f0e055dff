// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/geodes-sms/IFT3150-ProjetCurationMetadonnees-sub000/internal/catalog"
)

var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Full-text search over cataloged titles and abstracts",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().Int("limit", 0, "maximum results (default from config)")
	searchCmd.Flags().String("catalog-dir", "", "catalog directory (default from config)")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig()
	if dir, _ := cmd.Flags().GetString("catalog-dir"); dir != "" {
		cfg.Catalog.Dir = dir
	}
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := catalog.New(cfg.Catalog)
	if err != nil {
		return err
	}
	defer store.Close()

	recs, err := store.Search(strings.Join(args, " "), limit)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Println("No matches.")
		return nil
	}

	for _, rec := range recs {
		fmt.Printf("%s (%s)\n", rec.Title, rec.Year)
		if rec.Authors != "" {
			fmt.Printf("  %s\n", rec.Authors)
		}
		if rec.DOI != "" {
			fmt.Printf("  doi: %s\n", rec.DOI)
		}
		fmt.Println()
	}
	return nil
}
