// Package catalog assembles the canonical listing collection: every
// configured source drained sequentially through the streaming loader,
// one cross-cutting normalization pass, one stable sort, then cached for
// the rest of the process lifetime.
package catalog

import (
	"log"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"autoagora/config"
	"autoagora/loader"
	"autoagora/mappers"
	"autoagora/models"
)

// Catalog owns the materialized collection. The first call to All builds
// it; concurrent first callers share that single build via sync.Once and
// every later call returns the cached slice. The collection is immutable
// once built — treat the returned slice as read-only.
type Catalog struct {
	cfg  *config.Config
	once sync.Once
	all  []models.Listing
}

func New(cfg *config.Config) *Catalog {
	return &Catalog{cfg: cfg}
}

// All returns the cached collection, building it on first use.
func (c *Catalog) All() []models.Listing {
	c.once.Do(c.build)
	return c.all
}

func (c *Catalog) build() {
	var all []models.Listing

	// Sources are drained one at a time, in registry order, so peak
	// memory stays bounded by a single file's streaming state. A file
	// that fails to parse contributes zero records; the build goes on.
	for _, src := range c.cfg.Sources {
		path := filepath.Join(c.cfg.DataDir, src.File)
		listings, err := loader.Load(path, mappers.ForName(src.Adapter))
		if err != nil {
			log.Printf("Warning: skipping source %s: %v", src.File, err)
			continue
		}
		all = append(all, listings...)
	}

	for i := range all {
		all[i].ID = uuid.New()
		all[i].Brand = unifyBrand(all[i].Brand)
	}

	// Listings with a real photo come first; relative order is otherwise
	// preserved.
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].HasImage && !all[j].HasImage
	})

	withImages := 0
	for i := range all {
		if all[i].HasImage {
			withImages++
		}
	}
	log.Printf("Total listings loaded: %d", len(all))
	log.Printf("Listings with images: %d", withImages)
	log.Printf("Listings without images: %d", len(all)-withImages)

	c.all = all
}

// brandAliases maps a lowercase manufacturer substring to the canonical
// brand name. Any brand containing the substring is rewritten.
var brandAliases = []struct {
	substring string
	canonical string
}{
	{"mercedes", "Mercedes-Benz"},
	{"volkswagen", "Volkswagen"},
}

func unifyBrand(brand string) string {
	trimmed := strings.TrimSpace(brand)
	if trimmed == "" {
		return "Unknown"
	}
	lower := strings.ToLower(trimmed)
	for _, alias := range brandAliases {
		if strings.Contains(lower, alias.substring) {
			return alias.canonical
		}
	}
	return trimmed
}
