// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract defines the collaborator surface the reconciliation
// orchestrator fetches metadata through, plus a generic implementation that
// covers publishers exposing Highwire citation_* meta tags. Site-specific
// extractors (browser automation, per-publisher selectors) live outside
// this repository and plug in behind the same interface.
package extract

import (
	"context"
	"errors"

	"github.com/geodes-sms/IFT3150-ProjetCurationMetadonnees-sub000/internal/cache"
	"github.com/geodes-sms/IFT3150-ProjetCurationMetadonnees-sub000/internal/source"
	"github.com/geodes-sms/IFT3150-ProjetCurationMetadonnees-sub000/pkg/types"
)

// ErrNoLink reports that an extractor cannot locate the article without a
// link hint. The orchestrator treats it as "this source failed" and moves
// on to the next source.
var ErrNoLink = errors.New("no link available for extraction")

// Extractor fetches and parses publisher metadata for one article.
//
// Extract performs the live fetch: given the classified source, the raw row
// title and an optional direct link, it returns a candidate or an error.
// Errors are local to the attempt and never abort a batch.
//
// Parse converts an already-fetched page (typically a cache entry) into a
// candidate without network access.
type Extractor interface {
	Extract(ctx context.Context, src source.Source, title, link string) (*types.MetadataCandidate, error)
	Parse(src source.Source, content []byte, kind cache.Kind) (*types.MetadataCandidate, error)
}
