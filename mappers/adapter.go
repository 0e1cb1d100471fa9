// Package mappers translates the raw per-source records into the canonical
// models.Listing. One adapter per upstream source; the file name of a data
// file decides which adapter applies.
package mappers

import (
	"encoding/json"
	"log"
	"path/filepath"
	"strings"

	"autoagora/models"
)

// Adapter maps one raw source record onto the canonical Listing. Map
// returns a fully-formed Listing or nil ("unmappable, skip"); it never
// panics past its own boundary and never returns a partially-defaulted
// record.
type Adapter interface {
	Source() string
	Map(data json.RawMessage) *models.Listing
}

// ForFile returns the adapter responsible for the named source file.
// The carsbg shards share the cars.json shape, as does any file we have
// no dedicated adapter for.
func ForFile(name string) Adapter {
	base := strings.ToLower(filepath.Base(name))
	switch base {
	case "cars.json":
		return &CarsAdapter{}
	case "carsparking.json":
		return &CarsParkingAdapter{}
	case "caaarrssssss.json":
		return &CaaarrssssssAdapter{}
	case "openlane.json":
		return &OpenLaneAdapter{}
	case "hertzcars.json":
		return &HertzAdapter{}
	case "cargr.json":
		return &CargrAdapter{}
	case "autoscoutcars.json":
		return &AutoscoutAdapter{}
	case "aclass.json":
		return &AClassAdapter{}
	case "kleinanzegencars.json":
		return &KleinanzeigenAdapter{}
	}
	if strings.HasPrefix(base, "carsbg_part_") {
		return &CarsAdapter{}
	}
	return &CarsAdapter{}
}

// ForName resolves an adapter by its registry name, used when the source
// list comes from config rather than from file identity.
func ForName(name string) Adapter {
	return ForFile(name + ".json")
}

// Display sentinels. Greek-language sources keep their original sentinel
// so the rendered value matches the rest of that source's free text.
const (
	notAvailable   = "Unknown"
	notAvailableNA = "N/A"
	notAvailableGR = "Δε Διατίθεται"
)

// recoverRecord is the per-record error boundary: a panic while mapping
// one record logs the offending raw payload and drops the record, nothing
// more.
func recoverRecord(source string, data json.RawMessage, l **models.Listing) {
	if r := recover(); r != nil {
		log.Printf("Warning: %s: dropping record after mapping panic: %v (record: %s)", source, r, clip(data, 512))
		*l = nil
	}
}

// badRecord logs an unparseable record and returns nil for the adapter to
// pass through.
func badRecord(source string, data json.RawMessage, err error) *models.Listing {
	log.Printf("Warning: %s: dropping unparseable record: %v (record: %s)", source, err, clip(data, 512))
	return nil
}

func clip(data json.RawMessage, n int) string {
	if len(data) <= n {
		return string(data)
	}
	return string(data[:n]) + "..."
}

func fallback(s, sentinel string) string {
	if strings.TrimSpace(s) == "" {
		return sentinel
	}
	return s
}

func orHash(link string) string {
	if strings.TrimSpace(link) == "" {
		return "#"
	}
	return link
}
