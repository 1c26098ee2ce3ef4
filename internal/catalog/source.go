package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gorm.io/gorm"

	"github.com/pageza/recipe-recommender/backend/config"
	"github.com/pageza/recipe-recommender/backend/internal/logger"
	"github.com/pageza/recipe-recommender/backend/internal/types"
)

var (
	// ErrUnknownSource is returned for an unrecognised CATALOG_SOURCE.
	ErrUnknownSource = errors.New("unknown catalog source")
	// ErrMissingColumn is returned when a CSV lacks a mandatory column.
	ErrMissingColumn = errors.New("catalog csv is missing a required column")
	// ErrNotLoaded is returned before the first successful load.
	ErrNotLoaded = errors.New("catalog not loaded")
)

// Source produces the full catalog in position order.
type Source interface {
	Load(ctx context.Context) ([]types.RecipeRecord, error)
	Describe() string
}

// ObjectGetter fetches a single object from a bucket.
type ObjectGetter interface {
	GetObject(ctx context.Context, key string) (io.ReadCloser, error)
}

// Deps carries the clients a source may need.
type Deps struct {
	DB      *gorm.DB
	Objects ObjectGetter
}

// NewSource picks the source named by cfg.CatalogSource.
func NewSource(cfg *config.Config, deps Deps) (Source, error) {
	switch cfg.CatalogSource {
	case config.CatalogSourceFile:
		return &FileSource{Path: cfg.CatalogPath}, nil
	case config.CatalogSourceS3:
		if deps.Objects == nil {
			return nil, errors.New("s3 catalog source requires an object store client")
		}
		return &S3Source{Objects: deps.Objects, Bucket: cfg.CatalogBucket, Key: cfg.CatalogKey}, nil
	case config.CatalogSourceDatabase:
		if deps.DB == nil {
			return nil, errors.New("database catalog source requires a database connection")
		}
		return &DatabaseSource{DB: deps.DB}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, cfg.CatalogSource)
	}
}

// FileSource reads a CSV file from local disk.
type FileSource struct {
	Path string
}

func (s *FileSource) Load(ctx context.Context) ([]types.RecipeRecord, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog %s: %w", s.Path, err)
	}
	defer f.Close()

	return parseLogged(f, s.Describe())
}

func (s *FileSource) Describe() string {
	return "file:" + s.Path
}

// S3Source reads a CSV object from a bucket.
type S3Source struct {
	Objects ObjectGetter
	Bucket  string
	Key     string
}

func (s *S3Source) Load(ctx context.Context) ([]types.RecipeRecord, error) {
	body, err := s.Objects.GetObject(ctx, s.Key)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	return parseLogged(body, s.Describe())
}

func (s *S3Source) Describe() string {
	return fmt.Sprintf("s3://%s/%s", s.Bucket, s.Key)
}

func parseLogged(r io.Reader, origin string) ([]types.RecipeRecord, error) {
	records, report, err := ParseCSV(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", origin, err)
	}
	logger.Infow("parsed catalog",
		"source", origin,
		"rows", report.Rows,
		"accepted", report.Accepted,
		"skipped", len(report.Skipped),
	)
	return records, nil
}
