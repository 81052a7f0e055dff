// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog persists curated ArticleRecords in a SQLite database and
// serves full-text search over titles and abstracts.
package catalog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/geodes-sms/IFT3150-ProjetCurationMetadonnees-sub000/internal/normalize"
	"github.com/geodes-sms/IFT3150-ProjetCurationMetadonnees-sub000/pkg/types"
)

const dbFile = "catalog.db"

// Store manages the catalog SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// New opens or creates the catalog database at cfg.Dir/catalog.db,
// creating the schema if it does not exist.
func New(cfg types.CatalogConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening catalog database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating catalog schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS articles (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			project TEXT NOT NULL,
			title_key TEXT NOT NULL,
			title TEXT NOT NULL,
			abstract TEXT,
			keywords TEXT,
			authors TEXT,
			venue TEXT,
			doi TEXT,
			refs TEXT,
			bibtex TEXT,
			pages TEXT,
			year TEXT,
			link TEXT,
			publisher TEXT,
			source TEXT,
			screened_decision TEXT,
			final_decision TEXT,
			mode TEXT,
			inclusion_criteria TEXT,
			exclusion_criteria TEXT,
			reviewer_count INTEGER,
			metadata_missing TEXT,
			UNIQUE(project, title_key)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_doi ON articles(doi)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_source ON articles(source)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='articles_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE articles_fts USING fts5(title, abstract, content=articles, content_rowid=rowid)`,
			`CREATE TRIGGER articles_ai AFTER INSERT ON articles BEGIN
				INSERT INTO articles_fts(rowid, title, abstract) VALUES (new.rowid, new.title, new.abstract);
			END`,
			`CREATE TRIGGER articles_ad AFTER DELETE ON articles BEGIN
				INSERT INTO articles_fts(articles_fts, rowid, title, abstract) VALUES('delete', old.rowid, old.title, old.abstract);
			END`,
			`CREATE TRIGGER articles_au AFTER UPDATE ON articles BEGIN
				INSERT INTO articles_fts(articles_fts, rowid, title, abstract) VALUES('delete', old.rowid, old.title, old.abstract);
				INSERT INTO articles_fts(rowid, title, abstract) VALUES (new.rowid, new.title, new.abstract);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// Upsert inserts or replaces the record, keyed by project and normalized
// title.
func (s *Store) Upsert(rec *types.ArticleRecord) error {
	key := normalize.Title(rec.Title)
	if key == "" {
		return fmt.Errorf("record has no title")
	}

	_, err := s.db.Exec(`
		INSERT INTO articles (
			project, title_key, title, abstract, keywords, authors, venue,
			doi, refs, bibtex, pages, year, link, publisher, source,
			screened_decision, final_decision, mode,
			inclusion_criteria, exclusion_criteria, reviewer_count,
			metadata_missing
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(project, title_key) DO UPDATE SET
			title=excluded.title, abstract=excluded.abstract,
			keywords=excluded.keywords, authors=excluded.authors,
			venue=excluded.venue, doi=excluded.doi, refs=excluded.refs,
			bibtex=excluded.bibtex, pages=excluded.pages, year=excluded.year,
			link=excluded.link, publisher=excluded.publisher,
			source=excluded.source,
			screened_decision=excluded.screened_decision,
			final_decision=excluded.final_decision, mode=excluded.mode,
			inclusion_criteria=excluded.inclusion_criteria,
			exclusion_criteria=excluded.exclusion_criteria,
			reviewer_count=excluded.reviewer_count,
			metadata_missing=excluded.metadata_missing`,
		rec.Project, key, rec.Title, rec.Abstract, rec.Keywords, rec.Authors,
		rec.Venue, rec.DOI, rec.References, rec.Bibtex, rec.Pages, rec.Year,
		rec.Link, rec.Publisher, rec.Source,
		string(rec.ScreenedDecision), string(rec.FinalDecision),
		string(rec.Mode), rec.InclusionCriteria, rec.ExclusionCriteria,
		rec.ReviewerCount, strings.Join(rec.MetadataMissing, ";"),
	)
	if err != nil {
		return fmt.Errorf("upserting article %q: %w", rec.Title, err)
	}
	return nil
}

// Get retrieves a record by project and title; the title is normalized
// before lookup so any encoding variant of it resolves.
func (s *Store) Get(project, title string) (*types.ArticleRecord, error) {
	row := s.db.QueryRow(selectColumns+` FROM articles WHERE project = ? AND title_key = ?`,
		project, normalize.Title(title))
	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("article %q not found in project %s", title, project)
	}
	if err != nil {
		return nil, fmt.Errorf("reading article %q: %w", title, err)
	}
	return rec, nil
}

// Search runs a full-text query over titles and abstracts, best match first.
func (s *Store) Search(query string, limit int) ([]*types.ArticleRecord, error) {
	if limit <= 0 {
		limit = s.maxResults
	}

	rows, err := s.db.Query(selectColumns+`
		FROM articles
		JOIN articles_fts ON articles_fts.rowid = articles.rowid
		WHERE articles_fts MATCH ?
		ORDER BY articles_fts.rank
		LIMIT ?`, ftsQuery(query), limit)
	if err != nil {
		return nil, fmt.Errorf("searching catalog: %w", err)
	}
	defer rows.Close()

	var recs []*types.ArticleRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning search result: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// Count returns the number of cataloged articles.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT count(*) FROM articles`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting articles: %w", err)
	}
	return n, nil
}

const selectColumns = `SELECT project, title, abstract, keywords, authors,
	venue, doi, refs, bibtex, pages, year, link, publisher, source,
	screened_decision, final_decision, mode,
	inclusion_criteria, exclusion_criteria, reviewer_count, metadata_missing`

// scanner abstracts sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (*types.ArticleRecord, error) {
	var rec types.ArticleRecord
	var screened, final, mode, missing string
	if err := sc.Scan(
		&rec.Project, &rec.Title, &rec.Abstract, &rec.Keywords, &rec.Authors,
		&rec.Venue, &rec.DOI, &rec.References, &rec.Bibtex, &rec.Pages,
		&rec.Year, &rec.Link, &rec.Publisher, &rec.Source,
		&screened, &final, &mode,
		&rec.InclusionCriteria, &rec.ExclusionCriteria, &rec.ReviewerCount,
		&missing,
	); err != nil {
		return nil, err
	}
	rec.ScreenedDecision = types.ParseDecision(screened)
	rec.FinalDecision = types.ParseDecision(final)
	rec.Mode = types.Mode(mode)
	if missing != "" {
		rec.MetadataMissing = strings.Split(missing, ";")
	}
	return &rec, nil
}

// ftsQuery quotes each term so titles with FTS5 operators ("AND", quotes)
// search literally.
func ftsQuery(q string) string {
	terms := strings.Fields(q)
	for i, t := range terms {
		terms[i] = `"` + strings.ReplaceAll(t, `"`, `""`) + `"`
	}
	return strings.Join(terms, " ")
}
