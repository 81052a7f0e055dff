// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geodes-sms/IFT3150-ProjetCurationMetadonnees-sub000/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(types.CatalogConfig{Dir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRecord() *types.ArticleRecord {
	return &types.ArticleRecord{
		Project:          "proj1",
		Title:            "A Study of Flaky Tests",
		Abstract:         "Flaky tests fail nondeterministically.",
		Authors:          "Smith, Jane; Doe, John",
		DOI:              "10.1007/s10664-021-0001",
		Year:             "2021",
		Source:           "03",
		ScreenedDecision: types.DecisionIncluded,
		Mode:             types.ModeNewScreen,
		ReviewerCount:    2,
		MetadataMissing:  []string{"keywords", "venue"},
	}
}

func TestUpsertAndGet(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Upsert(sampleRecord()))

	got, err := s.Get("proj1", "A Study of Flaky Tests")
	require.NoError(t, err)
	assert.Equal(t, "10.1007/s10664-021-0001", got.DOI)
	assert.Equal(t, types.DecisionIncluded, got.ScreenedDecision)
	assert.Equal(t, types.ModeNewScreen, got.Mode)
	assert.Equal(t, 2, got.ReviewerCount)
	assert.Equal(t, []string{"keywords", "venue"}, got.MetadataMissing)
}

func TestGetNormalizesTitle(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Upsert(sampleRecord()))

	// Punctuation and case variants of the same title resolve to one key.
	got, err := s.Get("proj1", "a study of FLAKY tests!")
	require.NoError(t, err)
	assert.Equal(t, "A Study of Flaky Tests", got.Title)
}

func TestUpsertReplacesExisting(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Upsert(sampleRecord()))

	updated := sampleRecord()
	updated.Abstract = "An expanded abstract."
	require.NoError(t, s.Upsert(updated))

	n, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n, "re-import duplicated the record")

	got, err := s.Get("proj1", "A Study of Flaky Tests")
	require.NoError(t, err)
	assert.Equal(t, "An expanded abstract.", got.Abstract)
}

func TestUpsertRejectsUntitled(t *testing.T) {
	s := newTestStore(t)
	err := s.Upsert(&types.ArticleRecord{Project: "p", Title: "  "})
	assert.Error(t, err)
}

func TestSearch(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Upsert(sampleRecord()))

	other := sampleRecord()
	other.Title = "Requirements Elicitation in Agile Teams"
	other.Abstract = "Interviews with practitioners."
	require.NoError(t, s.Upsert(other))

	recs, err := s.Search("flaky", 10)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "A Study of Flaky Tests", recs[0].Title)

	// Terms are quoted, so FTS operators in queries search literally.
	recs, err = s.Search(`tests AND "quotes"`, 10)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(recs), 2)
}

func TestSearchDefaultLimit(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Upsert(sampleRecord()))

	recs, err := s.Search("flaky", 0)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}
