// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dataset reads and writes the uniform-schema CSV shared by every
// research project's export. Per-project column mappings happen upstream;
// by the time a file reaches this package it already uses the uniform
// header. Rows without a title are dropped at load time: the title is the
// primary matching key and a record must never be retained with an empty
// one.
package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/geodes-sms/IFT3150-ProjetCurationMetadonnees-sub000/pkg/types"
)

// Header is the uniform schema column order.
var Header = []string{
	"project", "title", "abstract", "keywords", "authors", "venue", "doi",
	"references", "bibtex", "pages", "year", "link", "publisher", "source",
	"screened_decision", "final_decision", "mode",
	"inclusion_criteria", "exclusion_criteria", "reviewer_count",
	"metadata_missing",
}

// Load reads a uniform-schema CSV. It returns the retained records and the
// number of rows dropped for having no title. Unknown columns are ignored
// and missing columns read as empty, so older exports keep loading.
func Load(path string) ([]*types.ArticleRecord, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("opening dataset %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, 0, fmt.Errorf("parsing dataset %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, 0, nil
	}

	col := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		col[strings.TrimSpace(strings.ToLower(name))] = i
	}
	if _, ok := col["title"]; !ok {
		return nil, 0, fmt.Errorf("dataset %s: no title column", path)
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var recs []*types.ArticleRecord
	dropped := 0
	for _, row := range rows[1:] {
		if field(row, "title") == "" {
			dropped++
			continue
		}

		rec := &types.ArticleRecord{
			Project:           field(row, "project"),
			Title:             field(row, "title"),
			Abstract:          field(row, "abstract"),
			Keywords:          field(row, "keywords"),
			Authors:           field(row, "authors"),
			Venue:             field(row, "venue"),
			DOI:               field(row, "doi"),
			References:        field(row, "references"),
			Bibtex:            field(row, "bibtex"),
			Pages:             field(row, "pages"),
			Year:              field(row, "year"),
			Link:              field(row, "link"),
			Publisher:         field(row, "publisher"),
			Source:            field(row, "source"),
			ScreenedDecision:  types.ParseDecision(field(row, "screened_decision")),
			FinalDecision:     types.ParseDecision(field(row, "final_decision")),
			InclusionCriteria: field(row, "inclusion_criteria"),
			ExclusionCriteria: field(row, "exclusion_criteria"),
		}

		switch field(row, "mode") {
		case string(types.ModeNewScreen):
			rec.Mode = types.ModeNewScreen
		case string(types.ModeSnowballing):
			rec.Mode = types.ModeSnowballing
		}

		if n, err := strconv.Atoi(field(row, "reviewer_count")); err == nil {
			rec.ReviewerCount = n
		}
		if m := field(row, "metadata_missing"); m != "" {
			rec.MetadataMissing = strings.Split(m, ";")
		}

		recs = append(recs, rec)
	}

	return recs, dropped, nil
}

// Save writes records back to the uniform schema.
func Save(path string, recs []*types.ArticleRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating dataset %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		return fmt.Errorf("writing dataset header: %w", err)
	}

	for _, rec := range recs {
		row := []string{
			rec.Project, rec.Title, rec.Abstract, rec.Keywords, rec.Authors,
			rec.Venue, rec.DOI, rec.References, rec.Bibtex, rec.Pages,
			rec.Year, rec.Link, rec.Publisher, rec.Source,
			string(rec.ScreenedDecision), string(rec.FinalDecision),
			string(rec.Mode), rec.InclusionCriteria, rec.ExclusionCriteria,
			reviewerCount(rec.ReviewerCount),
			strings.Join(rec.MetadataMissing, ";"),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing dataset row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing dataset %s: %w", path, err)
	}
	return nil
}

func reviewerCount(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
