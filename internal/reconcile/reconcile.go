// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package reconcile drives metadata recovery for dataset rows: cache check,
// extraction through a collaborator, match validation, and merge. Rows are
// processed strictly sequentially; concurrent extraction against one
// publisher session trips anti-bot defenses and corrupts shared session
// state, so throughput must come from running distinct sources in distinct
// processes, never from parallelizing rows here.
package reconcile

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/geodes-sms/IFT3150-ProjetCurationMetadonnees-sub000/internal/cache"
	"github.com/geodes-sms/IFT3150-ProjetCurationMetadonnees-sub000/internal/extract"
	"github.com/geodes-sms/IFT3150-ProjetCurationMetadonnees-sub000/internal/match"
	"github.com/geodes-sms/IFT3150-ProjetCurationMetadonnees-sub000/internal/merge"
	"github.com/geodes-sms/IFT3150-ProjetCurationMetadonnees-sub000/internal/normalize"
	"github.com/geodes-sms/IFT3150-ProjetCurationMetadonnees-sub000/internal/source"
	"github.com/geodes-sms/IFT3150-ProjetCurationMetadonnees-sub000/pkg/types"
)

// ErrMissingTitle marks a row that cannot be reconciled because its primary
// matching key is empty. Fatal for the row only; the batch continues.
var ErrMissingTitle = errors.New("row has no title")

// State tracks a row through the reconciliation state machine:
//
//	NeedsMetadata → CacheHit | ExtractionAttempted →
//	    MatchedAndMerged | Rejected | Failed | Exhausted
type State int

const (
	StateNeedsMetadata State = iota
	StateCacheHit
	StateExtractionAttempted
	StateMatchedAndMerged
	StateRejected

	// StateFailed is the terminal state for a classified row whose source
	// could not be fetched after the retry budget.
	StateFailed

	// StateExhausted is the terminal state when every fallback source was
	// tried and none produced an accepted match.
	StateExhausted

	// StateComplete is the short-circuit for rows with nothing missing.
	StateComplete

	// StateSkipped is the terminal state for rows without a title.
	StateSkipped
)

var stateNames = [...]string{
	StateNeedsMetadata:       "needs_metadata",
	StateCacheHit:            "cache_hit",
	StateExtractionAttempted: "extraction_attempted",
	StateMatchedAndMerged:    "matched_and_merged",
	StateRejected:            "rejected",
	StateFailed:              "failed",
	StateExhausted:           "exhausted",
	StateComplete:            "complete",
	StateSkipped:             "skipped",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// Outcome is the terminal result of reconciling one row.
type Outcome struct {
	State State

	// Source is the source that produced the accepted candidate, when any.
	Source source.Source

	// FromCache reports whether the accepted candidate came from the cache.
	FromCache bool

	// Missing lists the tracked fields still unresolved on the row.
	Missing []string

	// Err is the row-local error for StateSkipped or StateFailed, or the
	// last extraction error when every fallback source failed.
	Err error
}

// DefaultFallbackOrder is the source priority used for title-only searches
// when a row carries no source or link hint. The ordering is a policy
// inherited from historical runs; override it through Config.
var DefaultFallbackOrder = []source.Source{
	source.ACM, source.IEEE, source.ScienceDirect, source.SpringerLink,
	source.Scopus, source.WoS, source.PubMedCentral, source.ArXiv,
	source.DOIUnresolved,
}

// Config holds the orchestrator's explicit settings. There is no
// process-wide state: two orchestrators with different configs can run in
// the same process, which is what the tests do.
type Config struct {
	// FallbackOrder is tried, first accepted match wins, when a row has no
	// source or link hint. Defaults to DefaultFallbackOrder.
	FallbackOrder []source.Source

	// Retry bounds extraction attempts per source.
	Retry types.RetryPolicy
}

// Orchestrator reconciles dataset rows against cached and freshly
// extracted publisher metadata.
type Orchestrator struct {
	store     *cache.Store
	extractor extract.Extractor
	cfg       Config
	log       zerolog.Logger
}

// New builds an orchestrator from its explicit collaborators.
func New(store *cache.Store, extractor extract.Extractor, cfg Config, log zerolog.Logger) *Orchestrator {
	if len(cfg.FallbackOrder) == 0 {
		cfg.FallbackOrder = DefaultFallbackOrder
	}
	return &Orchestrator{store: store, extractor: extractor, cfg: cfg, log: log}
}

// Reconcile runs the state machine for one row. The row is mutated only
// when a candidate passes the strict title match; a rejected candidate
// leaves every prior value in place. The MetadataMissing diagnostic is
// refreshed on every terminal state except StateSkipped.
func (o *Orchestrator) Reconcile(ctx context.Context, rec *types.ArticleRecord) Outcome {
	key := normalize.Title(rec.Title)
	if key == "" {
		return Outcome{State: StateSkipped, Err: ErrMissingTitle}
	}

	missing := rec.MissingFields()
	if len(missing) == 0 {
		return Outcome{State: StateComplete}
	}

	if src, ok := o.classify(rec); ok {
		out := o.trySource(ctx, rec, key, src)
		rec.MetadataMissing = rec.MissingFields()
		out.Missing = rec.MetadataMissing
		return out
	}

	// No usable hint: title-only search across the configured order,
	// greedy, first accepted match wins.
	var lastErr error
	for _, src := range o.cfg.FallbackOrder {
		out := o.trySource(ctx, rec, key, src)
		switch out.State {
		case StateMatchedAndMerged:
			rec.MetadataMissing = rec.MissingFields()
			out.Missing = rec.MetadataMissing
			return out
		case StateRejected:
			o.log.Debug().Str("title", rec.Title).Stringer("source", src).
				Msg("candidate rejected, trying next source")
		}
		if out.Err != nil {
			lastErr = out.Err
		}
		if ctx.Err() != nil {
			break
		}
	}

	rec.MetadataMissing = rec.MissingFields()
	return Outcome{State: StateExhausted, Missing: rec.MetadataMissing, Err: lastErr}
}

// classify resolves the row's source hints: explicit source code first,
// then link domain, then publisher text.
func (o *Orchestrator) classify(rec *types.ArticleRecord) (source.Source, bool) {
	if s, ok := source.FromCode(rec.Source); ok {
		return s, true
	}
	if s, ok := source.FromURL(rec.Link); ok {
		return s, true
	}
	if s, ok := source.FromPublisher(rec.Publisher); ok {
		return s, true
	}
	return source.Unknown, false
}

// trySource resolves one source for the row: cached page if present,
// otherwise live extraction under the retry policy, then validation and
// merge.
func (o *Orchestrator) trySource(ctx context.Context, rec *types.ArticleRecord, key string, src source.Source) Outcome {
	if entry, ok, err := o.store.Lookup(key, src.Code()); err != nil {
		o.log.Warn().Err(err).Stringer("source", src).Msg("cache lookup failed")
	} else if ok {
		c, err := o.extractor.Parse(src, entry.Content, entry.Kind)
		if err != nil {
			// Corrupt beyond permissive decoding; fall through to extraction.
			o.log.Warn().Err(err).Str("path", entry.Path).Msg("cache entry unparsable")
		} else {
			out := o.accept(rec, src, c)
			out.FromCache = true
			return out
		}
	}

	c, err := o.extractWithRetry(ctx, rec, src)
	if err != nil {
		o.log.Warn().Err(err).Stringer("source", src).Str("title", rec.Title).
			Msg("extraction failed")
		return Outcome{State: StateFailed, Err: err}
	}
	return o.accept(rec, src, c)
}

// extractWithRetry calls the collaborator under the bounded retry policy.
// ErrNoLink is not retried: without a link the outcome cannot change.
func (o *Orchestrator) extractWithRetry(ctx context.Context, rec *types.ArticleRecord, src source.Source) (*types.MetadataCandidate, error) {
	link := rec.Link
	if link == "" && rec.DOI != "" && src == source.DOIUnresolved {
		link = extract.DOILink(rec.DOI)
	}

	backoff := o.cfg.Retry.BaseDelay
	var lastErr error
	for attempt := 1; attempt <= o.cfg.Retry.Attempts(); attempt++ {
		c, err := o.extractor.Extract(ctx, src, rec.Title, link)
		if err == nil {
			return c, nil
		}
		lastErr = err
		if errors.Is(err, extract.ErrNoLink) || ctx.Err() != nil {
			break
		}
		if attempt == o.cfg.Retry.Attempts() {
			break
		}
		if backoff > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}
	}
	return nil, lastErr
}

// accept validates a candidate against the row title and merges it on
// success. Near misses that only the audit matcher accepts are logged for
// human review, never merged.
func (o *Orchestrator) accept(rec *types.ArticleRecord, src source.Source, c *types.MetadataCandidate) Outcome {
	if c == nil || c.IsEmpty() {
		return Outcome{State: StateRejected}
	}

	if !match.SameArticle(c.Title, rec.Title) {
		if match.AuditSameArticle(c.Title, rec.Title) {
			o.log.Warn().Str("row_title", rec.Title).Str("candidate_title", c.Title).
				Stringer("source", src).Msg("near match flagged for review")
		}
		return Outcome{State: StateRejected}
	}

	merge.Record(rec, *c)
	return Outcome{State: StateMatchedAndMerged, Source: src}
}
