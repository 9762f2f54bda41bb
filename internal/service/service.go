
package service

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"abit-rating/internal/catalog"
	"abit-rating/internal/config"
	"abit-rating/internal/models"
	"abit-rating/internal/parser"
	"abit-rating/pkg/logger"
)

// Fetcher supplies rating pages.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (models.Document, error)
}

type Service struct {
	catalog *catalog.Catalog
	fetcher Fetcher
	log     *logger.Logger
	opts    []parser.Option
}

func New(cat *catalog.Catalog, fetcher Fetcher, log *logger.Logger, opts ...parser.Option) *Service {
	return &Service{catalog: cat, fetcher: fetcher, log: log, opts: opts}
}

// ParserOptions translates parser settings into extraction options.
func ParserOptions(cfg config.ParserConfig) []parser.Option {
	var opts []parser.Option
	if cfg.Encoding != "" {
		opts = append(opts, parser.WithEncoding(cfg.Encoding))
	}
	if cfg.SequentialTables {
		opts = append(opts, parser.WithSequentialTables())
	}
	return opts
}

func (s *Service) Catalog() *catalog.Catalog { return s.catalog }

// Rating fetches the faculty's rating page and extracts its records.
func (s *Service) Rating(ctx context.Context, universityID, facultyID int) (models.Rating, error) {
	u, f, err := s.catalog.Faculty(universityID, facultyID)
	if err != nil {
		return models.Rating{}, err
	}
	s.log.Debugf("fetching %s", f.URL)
	doc, err := s.fetcher.Fetch(ctx, f.URL)
	if err != nil {
		return models.Rating{}, fmt.Errorf("fetch rating: %w", err)
	}
	rating, err := s.extract(u, f, bytes.NewReader(doc.Body), doc.ContentType)
	if err != nil {
		return models.Rating{}, err
	}
	rating.SourceURL = doc.SourceURL
	rating.FetchMs = doc.Fetch.Milliseconds()
	s.log.Infof("%s / %s: %d records in %dms", u.Name, f.Name, len(rating.Records), rating.FetchMs)
	return rating, nil
}

// RatingFromHTML extracts records from a page that is already at hand.
func (s *Service) RatingFromHTML(universityID, facultyID int, r io.Reader, contentType string) (models.Rating, error) {
	u, f, err := s.catalog.Faculty(universityID, facultyID)
	if err != nil {
		return models.Rating{}, err
	}
	return s.extract(u, f, r, contentType)
}

func (s *Service) extract(u models.University, f models.Faculty, r io.Reader, contentType string) (models.Rating, error) {
	recs, err := parser.New(u.TableClass, f.Schema(), s.opts...).Extract(r, contentType)
	if err != nil {
		return models.Rating{}, fmt.Errorf("extract rating: %w", err)
	}
	if len(recs) == 0 {
		s.log.Warnf("%s / %s: no rows in a table with class %q", u.Name, f.Name, u.TableClass)
	}
	return models.Rating{
		University:   u.Name,
		Faculty:      f.Name,
		BudgetPlaces: f.BudgetPlaces,
		Records:      recs,
	}, nil
}
