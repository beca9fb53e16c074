package dataset

import (
	"errors"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
)

func cacheKey(source Source) []byte {
	return fmt.Appendf([]byte{}, "dataset-%s-%s", source.Name, source.URL)
}

// cached returns the stored body for source, or nil when nothing is cached.
func cached(db *leveldb.DB, source Source) ([]byte, error) {
	if db == nil {
		return nil, nil
	}
	if data, err := db.Get(cacheKey(source), nil); errors.Is(err, leveldb.ErrNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read cache for %s: %w", source.Name, err)
	} else {
		return data, nil
	}
}

func store(db *leveldb.DB, source Source, data []byte) error {
	if db == nil {
		return nil
	}
	if err := db.Put(cacheKey(source), data, nil); err != nil {
		return fmt.Errorf("failed to cache %s: %w", source.Name, err)
	}
	return nil
}
