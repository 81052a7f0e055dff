// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/geodes-sms/IFT3150-ProjetCurationMetadonnees-sub000/internal/cache"
	"github.com/geodes-sms/IFT3150-ProjetCurationMetadonnees-sub000/internal/dataset"
	"github.com/geodes-sms/IFT3150-ProjetCurationMetadonnees-sub000/internal/extract"
	"github.com/geodes-sms/IFT3150-ProjetCurationMetadonnees-sub000/internal/reconcile"
	"github.com/geodes-sms/IFT3150-ProjetCurationMetadonnees-sub000/internal/source"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile <dataset.csv>",
	Short: "Fill missing metadata for a uniform-schema dataset",
	Long: `Reconcile loads a uniform-schema CSV, resolves each row with missing
metadata against cached publisher pages or live extraction, and writes the
updated dataset back in place (or to --out). Rows are processed one at a
time; an interrupted run loses no work because every fetched page lands in
the cache before parsing.`,
	Args: cobra.ExactArgs(1),
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().String("out", "", "output CSV path (default: overwrite the input)")
	reconcileCmd.Flags().String("report", "", "write a YAML batch report to this path")
	reconcileCmd.Flags().String("cache-dir", "", "page cache directory (default from config)")
	reconcileCmd.Flags().StringSlice("fallback", nil, "source order for title-only search, by name (e.g. ACM,IEEE)")

	rootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	inPath := args[0]
	outPath, _ := cmd.Flags().GetString("out")
	if outPath == "" {
		outPath = inPath
	}
	reportPath, _ := cmd.Flags().GetString("report")

	cfg := pipelineConfig()
	if dir, _ := cmd.Flags().GetString("cache-dir"); dir != "" {
		cfg.Cache.Dir = dir
	}
	if order, _ := cmd.Flags().GetStringSlice("fallback"); len(order) > 0 {
		cfg.Reconcile.FallbackOrder = order
	}

	fallback, err := parseFallback(cfg.Reconcile.FallbackOrder)
	if err != nil {
		return err
	}

	recs, dropped, err := dataset.Load(inPath)
	if err != nil {
		return err
	}
	if dropped > 0 {
		fmt.Fprintf(os.Stderr, "Dropped %d row(s) without a title\n", dropped)
	}
	if len(recs) == 0 {
		return fmt.Errorf("dataset %s has no usable rows", inPath)
	}

	store, err := cache.New(cfg.Cache.Dir)
	if err != nil {
		return err
	}

	extractor := extract.NewHTMLMeta(cfg.Extract, cfg.Reconcile.Retry, store)
	orch := reconcile.New(store, extractor, reconcile.Config{
		FallbackOrder: fallback,
		Retry:         cfg.Reconcile.Retry,
	}, logger)

	report := orch.Batch(cmd.Context(), recs, os.Stdout)

	if err := dataset.Save(outPath, recs); err != nil {
		return err
	}
	if reportPath != "" {
		if err := reconcile.WriteReport(reportPath, report); err != nil {
			return err
		}
	}

	fmt.Printf("Reconciled %d row(s): %d matched, %d rejected, %d exhausted, %d already complete\n",
		report.Summary.Total, report.Summary.Matched, report.Summary.Rejected,
		report.Summary.Exhausted, report.Summary.Complete)

	if report.Summary.Errors > 0 {
		return fmt.Errorf("%d row(s) failed reconciliation", report.Summary.Errors)
	}
	return nil
}

// parseFallback resolves source names from config or flags to the enum.
// An empty list means the built-in default order.
func parseFallback(names []string) ([]source.Source, error) {
	var order []source.Source
	for _, name := range names {
		s, ok := source.FromName(name)
		if !ok {
			return nil, fmt.Errorf("unknown source %q in fallback order", name)
		}
		order = append(order, s)
	}
	return order, nil
}
