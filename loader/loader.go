// Package loader streams large JSON-array source files through a source
// adapter one element at a time, so peak memory is bounded by a single
// element rather than the whole parsed document.
package loader

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"autoagora/mappers"
	"autoagora/models"
)

// Load reads a top-level JSON array from path and maps every element with
// the given adapter. Output order matches input order.
//
// A missing file is an empty source: (nil, nil) plus a warning, so one
// absent feed never fails the overall build. Malformed JSON is a
// file-level error for the caller to handle. Elements the adapter cannot
// map are skipped individually and never abort the stream.
func Load(path string, adapter mappers.Adapter) ([]models.Listing, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("Warning: source file not found, skipping: %s", path)
			return nil, nil
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, fmt.Errorf("read %s: expected top-level array, got %v", path, tok)
	}

	var (
		listings []models.Listing
		seen     int
	)
	for dec.More() {
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decode element %d of %s: %w", seen, path, err)
		}
		seen++

		if l := adapter.Map(raw); l != nil {
			listings = append(listings, *l)
		}
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	log.Printf("%s => streamed %d items, mapped %d", filepath.Base(path), seen, len(listings))
	return listings, nil
}
