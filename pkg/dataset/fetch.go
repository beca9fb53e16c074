package dataset

import (
	"context"
	"fmt"
	"os"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
	"github.com/syndtr/goleveldb/leveldb"
)

// Fetcher downloads dataset sources over HTTP and keeps their bodies in an
// optional leveldb cache.
type Fetcher struct {
	client *resty.Client
	db     *leveldb.DB
}

func NewFetcher(db *leveldb.DB) *Fetcher {
	return &Fetcher{client: resty.New(), db: db}
}

func (f *Fetcher) WithClient(client *resty.Client) *Fetcher {
	f.client = client
	return f
}

func (f *Fetcher) Fetch(ctx context.Context, source Source) ([]byte, error) {
	if data, err := cached(f.db, source); err != nil {
		return nil, err
	} else if data != nil {
		log.Debug().Str("dataset", source.Name).Int("bytes", len(data)).Msg("dataset cache hit")
		return data, nil
	}

	resp, err := f.client.R().SetContext(ctx).Get(source.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", source.URL, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to fetch %s: %s", source.URL, resp.Status())
	}

	data := resp.Body()
	log.Info().Str("dataset", source.Name).Str("url", source.URL).Int("bytes", len(data)).Msg("downloaded dataset")

	if err := store(f.db, source, data); err != nil {
		return nil, err
	}
	return data, nil
}

// Load fetches source and parses it with LoadCSV.
func (f *Fetcher) Load(ctx context.Context, source Source) (*Dataset, error) {
	data, err := f.Fetch(ctx, source)
	if err != nil {
		return nil, err
	}

	file, err := os.CreateTemp("", fmt.Sprintf("classifiers-%s-*.csv", source.Name))
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(file.Name())

	if _, err := file.Write(data); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to write %s: %w", file.Name(), err)
	}
	if err := file.Close(); err != nil {
		return nil, fmt.Errorf("failed to close %s: %w", file.Name(), err)
	}

	d, err := LoadCSV(file.Name(), source.HasHeaders)
	if err != nil {
		return nil, err
	}
	d.Name = source.Name
	return d, nil
}
