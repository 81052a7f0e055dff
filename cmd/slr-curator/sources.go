// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/geodes-sms/IFT3150-ProjetCurationMetadonnees-sub000/internal/source"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List known publisher platforms and their cache codes",
	RunE:  runSources,
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

func runSources(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tSOURCE")
	for _, s := range source.All() {
		fmt.Fprintf(w, "%s\t%s\n", s.Code(), s)
	}
	return w.Flush()
}
