// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/geodes-sms/IFT3150-ProjetCurationMetadonnees-sub000/internal/catalog"
	"github.com/geodes-sms/IFT3150-ProjetCurationMetadonnees-sub000/internal/dataset"
)

var importCmd = &cobra.Command{
	Use:   "import <dataset.csv>",
	Short: "Load a uniform-schema dataset into the curated catalog",
	Long: `Import reads a uniform-schema CSV and upserts every row into the catalog
database, keyed by project and normalized title. Re-importing a dataset
updates the existing records rather than duplicating them.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().String("catalog-dir", "", "catalog directory (default from config)")

	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig()
	if dir, _ := cmd.Flags().GetString("catalog-dir"); dir != "" {
		cfg.Catalog.Dir = dir
	}

	recs, dropped, err := dataset.Load(args[0])
	if err != nil {
		return err
	}
	if dropped > 0 {
		fmt.Fprintf(os.Stderr, "Dropped %d row(s) without a title\n", dropped)
	}

	store, err := catalog.New(cfg.Catalog)
	if err != nil {
		return err
	}
	defer store.Close()

	failed := 0
	for _, rec := range recs {
		if err := store.Upsert(rec); err != nil {
			logger.Warn().Err(err).Str("title", rec.Title).Msg("import failed")
			failed++
		}
	}

	total, err := store.Count()
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d row(s) (%d failed); catalog now holds %d article(s)\n",
		len(recs)-failed, failed, total)

	if failed > 0 {
		return fmt.Errorf("%d row(s) failed import", failed)
	}
	return nil
}
